// Package engine runs the fixed worker pool that drives a crawl: pulling
// URLs from the frontier, fetching, extracting, deduplicating,
// recording statistics, and discovering new links.
//
// Responsibilities:
//   - Engine: wires the frontier, downloader, extractor, politeness
//     gate, duplicate detector and stats aggregator together behind a
//     fixed number of worker goroutines, with cooperative shutdown
package engine

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rohmanhakim/docs-crawler/internal/dedup"
	"github.com/rohmanhakim/docs-crawler/internal/downloader"
	"github.com/rohmanhakim/docs-crawler/internal/extractor"
	"github.com/rohmanhakim/docs-crawler/internal/frontier"
	"github.com/rohmanhakim/docs-crawler/internal/logging"
	"github.com/rohmanhakim/docs-crawler/internal/policy"
	"github.com/rohmanhakim/docs-crawler/internal/politeness"
	"github.com/rohmanhakim/docs-crawler/internal/stats"
	"github.com/rohmanhakim/docs-crawler/internal/tokenizer"
)

// idlePollInterval is how long an idle worker sleeps before checking the
// frontier again. idleStableRounds is how many consecutive rounds every
// worker must observe the frontier empty, at the same time, before the
// crawl is declared done.
const (
	idlePollInterval = 100 * time.Millisecond
	idleStableRounds = 5
)

// Engine owns every collaborator a worker needs and runs a fixed pool of
// them until the frontier has been stably empty for a while or ctx is
// cancelled.
type Engine struct {
	frontier      *frontier.Frontier
	downloader    downloader.Downloader
	extractor     extractor.Extractor
	gate          *politeness.Gate
	dedup         *dedup.Detector
	stats         *stats.Aggregator
	stopwords     map[string]struct{}
	engineLog     logging.EngineLog
	rejectLog     logging.RejectLog
	threads       int
	saveFrequency int
	statsFile     string

	completed int64 // atomic: pages recorded in stats, for checkpoint cadence
	idle      int32 // atomic: workers currently observing an empty frontier
}

// New builds an Engine from its fully-constructed collaborators.
func New(
	f *frontier.Frontier,
	dl downloader.Downloader,
	ext extractor.Extractor,
	gate *politeness.Gate,
	dd *dedup.Detector,
	agg *stats.Aggregator,
	stopwords map[string]struct{},
	engineLog logging.EngineLog,
	rejectLog logging.RejectLog,
	threads int,
	saveFrequency int,
	statsFile string,
) *Engine {
	return &Engine{
		frontier:      f,
		downloader:    dl,
		extractor:     ext,
		gate:          gate,
		dedup:         dd,
		stats:         agg,
		stopwords:     stopwords,
		engineLog:     engineLog,
		rejectLog:     rejectLog,
		threads:       threads,
		saveFrequency: saveFrequency,
		statsFile:     statsFile,
	}
}

// Run starts the worker pool and blocks until every worker has exited,
// either because the frontier ran dry or ctx was cancelled.
func (e *Engine) Run(ctx context.Context) {
	workerCtx, stop := context.WithCancel(ctx)
	defer stop()

	e.engineLog.Started(e.threads, 0)

	var wg sync.WaitGroup
	wg.Add(e.threads)
	for i := 0; i < e.threads; i++ {
		go func() {
			defer wg.Done()
			e.workerLoop(workerCtx, stop)
		}()
	}
	wg.Wait()

	if e.statsFile != "" {
		_ = e.stats.Checkpoint(e.statsFile)
	}
	e.engineLog.Stopped()
}

// workerLoop is one worker's iteration per spec.md §4.8: pop a URL, wait
// for its host's politeness slot, fetch, extract, dedup, record, and
// enqueue newly discovered links. A worker that finds the frontier empty
// counts itself idle and, once every worker has done so for
// idleStableRounds consecutive rounds, calls stop to end the crawl.
func (e *Engine) workerLoop(ctx context.Context, stop context.CancelFunc) {
	stableIdleRounds := 0

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		next, ok := e.frontier.Next()
		if !ok {
			atomic.AddInt32(&e.idle, 1)
			stableIdleRounds++
			if int(atomic.LoadInt32(&e.idle)) >= e.threads && stableIdleRounds >= idleStableRounds {
				stop()
				return
			}

			select {
			case <-ctx.Done():
				atomic.AddInt32(&e.idle, -1)
				return
			case <-time.After(idlePollInterval):
			}
			atomic.AddInt32(&e.idle, -1)
			continue
		}

		stableIdleRounds = 0

		e.processURL(ctx, next)
	}
}

// processURL runs one URL through the full pipeline. Any failure along
// the way is logged and the worker moves on; per spec.md §5's failure
// isolation rule, nothing here may propagate out and kill the worker.
func (e *Engine) processURL(ctx context.Context, rawURL string) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		e.engineLog.WorkerError(rawURL, err)
		_ = e.frontier.MarkComplete(rawURL)
		return
	}

	if err := e.gate.Wait(ctx, parsed.Hostname()); err != nil {
		return
	}

	resp, fetchErr := e.downloader.Fetch(ctx, rawURL)
	if fetchErr != nil {
		e.engineLog.Skipped(rawURL, fetchErr.Error())
		_ = e.frontier.MarkComplete(rawURL)
		return
	}
	if resp.Status < 200 || resp.Status >= 300 || len(resp.Content) == 0 || !isHTML(resp.Headers) {
		e.engineLog.Skipped(rawURL, "non-2xx, empty, or non-HTML response")
		_ = e.frontier.MarkComplete(rawURL)
		return
	}

	extraction, extractErr := e.extractor.Extract(resp.Content)
	if extractErr != nil {
		e.engineLog.Skipped(rawURL, extractErr.Error())
		_ = e.frontier.MarkComplete(rawURL)
		return
	}

	tokens := tokenizer.Tokenize(extraction.Text)
	filtered := stats.Filter(tokens, e.stopwords)

	if result := e.dedup.Check(extraction.Text, filtered); result.Duplicate {
		e.engineLog.Duplicate(rawURL, result.Reason)
		_ = e.frontier.MarkComplete(rawURL)
		return
	}

	host := stats.HostFromURL(rawURL)
	e.stats.Record(rawURL, host, filtered)
	e.engineLog.Fetched(rawURL, resp.Status, len(resp.Content))

	for _, href := range extraction.Hrefs {
		e.admitLink(href, parsed)
	}

	_ = e.frontier.MarkComplete(rawURL)

	if e.saveFrequency > 0 && e.statsFile != "" {
		if n := atomic.AddInt64(&e.completed, 1); n%int64(e.saveFrequency) == 0 {
			if err := e.stats.Checkpoint(e.statsFile); err == nil {
				e.engineLog.Checkpoint(e.stats.UniquePages())
			}
		}
	}
}

// admitLink resolves href against base, and if the acceptance policy lets
// it through, adds it to the frontier. A rejection is logged against the
// rejected URL's own host, not the referring page's; it is never an error
// condition.
func (e *Engine) admitLink(href string, base *url.URL) {
	resolved, err := base.Parse(href)
	if err != nil {
		return
	}
	resolved.Fragment = ""

	accepted, reason := policy.Accept(*resolved)
	if !accepted {
		e.rejectLog.Reject(resolved.Hostname(), reason, resolved.String())
		return
	}

	_ = e.frontier.Add(resolved.String(), nil)
}

func isHTML(headers http.Header) bool {
	ct := headers.Get("Content-Type")
	if ct == "" {
		return true
	}
	return strings.Contains(strings.ToLower(ct), "text/html")
}
