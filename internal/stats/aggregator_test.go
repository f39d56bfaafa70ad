package stats_test

import (
	"path/filepath"
	"testing"

	"github.com/rohmanhakim/docs-crawler/internal/stats"
)

func TestFilter(t *testing.T) {
	stopwords := map[string]struct{}{"the": {}, "a": {}}
	tokens := []string{"the", "quick", "a", "123", "fox2", "x"}

	got := stats.Filter(tokens, stopwords)
	want := []string{"quick", "fox2"}

	if len(got) != len(want) {
		t.Fatalf("Filter() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Filter()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestAggregator_RecordAndSnapshot(t *testing.T) {
	a := stats.NewAggregator()

	a.Record("https://ics.uci.edu/a", "ics.uci.edu", []string{"alpha", "beta", "alpha"})
	a.Record("https://cs.uci.edu/b", "cs.uci.edu", []string{"alpha", "gamma", "gamma", "gamma"})

	snap := a.Snapshot()

	if snap.UniquePages != 2 {
		t.Errorf("expected 2 unique pages, got %d", snap.UniquePages)
	}
	if snap.MostWordInPage.URL != "https://cs.uci.edu/b" || snap.MostWordInPage.WordCount != 4 {
		t.Errorf("expected longest page to be cs.uci.edu/b with 4 words, got %+v", snap.MostWordInPage)
	}
	// Neither host lies under .ics.uci.edu, so neither is a counted subdomain.
	if snap.Subdomains["ics.uci.edu"] != 0 || snap.Subdomains["cs.uci.edu"] != 0 {
		t.Errorf("unexpected subdomain counts: %v", snap.Subdomains)
	}
	if snap.WordCounter["alpha"] != 3 || snap.WordCounter["gamma"] != 3 {
		t.Errorf("unexpected word counter: %v", snap.WordCounter)
	}
}

func TestAggregator_CheckpointAndLoadRoundTrip(t *testing.T) {
	a := stats.NewAggregator()
	a.Record("https://ics.uci.edu/a", "ics.uci.edu", []string{"alpha", "beta"})
	a.Record("https://ics.uci.edu/b", "ics.uci.edu", []string{"alpha", "alpha", "gamma"})

	path := filepath.Join(t.TempDir(), "stats.json")
	if err := a.Checkpoint(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reloaded := stats.NewAggregator()
	if err := reloaded.Load(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	before := a.Snapshot()
	after := reloaded.Snapshot()

	if before.UniquePages != after.UniquePages {
		t.Errorf("unique pages mismatch: %d vs %d", before.UniquePages, after.UniquePages)
	}
	if before.MostWordInPage != after.MostWordInPage {
		t.Errorf("most_word_in_page mismatch: %+v vs %+v", before.MostWordInPage, after.MostWordInPage)
	}
	if len(before.WordCounter) != len(after.WordCounter) {
		t.Errorf("word_counter size mismatch: %d vs %d", len(before.WordCounter), len(after.WordCounter))
	}
}

func TestAggregator_Load_MissingFileIsNotError(t *testing.T) {
	a := stats.NewAggregator()
	if err := a.Load(filepath.Join(t.TempDir(), "does-not-exist.json")); err != nil {
		t.Errorf("expected no error for a missing snapshot, got %v", err)
	}
}

func TestAggregator_Load_LargerMostWordWins(t *testing.T) {
	a := stats.NewAggregator()
	a.Record("https://ics.uci.edu/small", "ics.uci.edu", []string{"a", "b"})

	path := filepath.Join(t.TempDir(), "stats.json")
	preexisting := stats.NewAggregator()
	preexisting.Record("https://ics.uci.edu/huge", "ics.uci.edu", make([]string, 50))
	if err := preexisting.Checkpoint(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := a.Load(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	snap := a.Snapshot()
	if snap.MostWordInPage.URL != "https://ics.uci.edu/huge" {
		t.Errorf("expected loaded larger most_word_in_page to win, got %+v", snap.MostWordInPage)
	}
}

func TestHostFromURL(t *testing.T) {
	got := stats.HostFromURL("https://Grape.ICS.uci.edu/path?x=1")
	if got != "grape.ics.uci.edu" {
		t.Errorf("HostFromURL() = %q, want %q", got, "grape.ics.uci.edu")
	}
}
