package engine_test

import (
	"context"
	"net/http"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/rohmanhakim/docs-crawler/internal/dedup"
	"github.com/rohmanhakim/docs-crawler/internal/downloader"
	"github.com/rohmanhakim/docs-crawler/internal/engine"
	"github.com/rohmanhakim/docs-crawler/internal/extractor"
	"github.com/rohmanhakim/docs-crawler/internal/frontier"
	"github.com/rohmanhakim/docs-crawler/internal/politeness"
	"github.com/rohmanhakim/docs-crawler/internal/stats"
	"github.com/rohmanhakim/docs-crawler/pkg/failure"
	"github.com/rohmanhakim/docs-crawler/pkg/hashutil"
)

type fakeDownloader struct {
	mu    sync.Mutex
	pages map[string]string
}

func (f *fakeDownloader) Fetch(_ context.Context, url string) (downloader.Response, failure.ClassifiedError) {
	f.mu.Lock()
	defer f.mu.Unlock()
	body, ok := f.pages[url]
	if !ok {
		return downloader.Response{}, &downloader.FetchError{Message: "not found", Cause: downloader.ErrCauseNetworkFailure}
	}
	return downloader.Response{
		Status:  http.StatusOK,
		Headers: http.Header{"Content-Type": []string{"text/html"}},
		Content: []byte(body),
		URL:     url,
	}, nil
}

type fakeEngineLog struct{}

func (fakeEngineLog) Started(int, int)         {}
func (fakeEngineLog) Fetched(string, int, int) {}
func (fakeEngineLog) Skipped(string, string)   {}
func (fakeEngineLog) Duplicate(string, string) {}
func (fakeEngineLog) WorkerError(string, error) {}
func (fakeEngineLog) Checkpoint(int)            {}
func (fakeEngineLog) Stopped()                  {}

type recordingRejectLog struct {
	mu      sync.Mutex
	rejects []string
}

func (r *recordingRejectLog) Reject(host string, reason string, url string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rejects = append(r.rejects, url)
}

func TestEngine_CrawlsSeedAndDiscoveredLinks(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "frontier.db")
	f, err := frontier.Open(dbPath, false, hashutil.HashAlgoSHA256, []string{"https://ics.uci.edu/start"})
	if err != nil {
		t.Fatalf("unexpected error opening frontier: %v", err)
	}
	defer f.Close()

	dl := &fakeDownloader{pages: map[string]string{
		"https://ics.uci.edu/start": `<html><body><p>` + longText("start") + `</p>
			<a href="/next">next</a>
			<a href="https://evil.com/x">off domain</a>
		</body></html>`,
		"https://ics.uci.edu/next": `<html><body><p>` + longText("next") + `</p></body></html>`,
	}}

	reject := &recordingRejectLog{}
	e := engine.New(
		f,
		dl,
		extractor.NewGoqueryExtractor(),
		politeness.NewGate(0),
		dedup.NewDetector(3),
		stats.NewAggregator(),
		map[string]struct{}{},
		fakeEngineLog{},
		reject,
		2,
		0,
		"",
	)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	e.Run(ctx)

	if len(reject.rejects) != 1 {
		t.Errorf("expected exactly 1 off-domain rejection, got %d: %v", len(reject.rejects), reject.rejects)
	}
}

func longText(word string) string {
	out := ""
	for i := 0; i < 20; i++ {
		out += word + " filler content words here "
	}
	return out
}
