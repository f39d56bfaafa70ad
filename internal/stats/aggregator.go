// Package stats accumulates corpus-level statistics over the course of a
// crawl and checkpoints them to a JSON snapshot so progress survives a
// restart.
//
// Responsibilities:
//   - Filter: reduce a raw token stream to the stop-word-free, single
//     character-free, pure-digit-free set that feeds both the duplicate
//     detector and the word counter
//   - Aggregator: thread-safe word/subdomain/longest-page counters plus
//     Checkpoint/Load for durable snapshots
package stats

import (
	"encoding/json"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/rohmanhakim/docs-crawler/pkg/fileutil"
)

// Filter removes stop-words, single-character tokens and pure-digit
// tokens from tokens. The result is what both the duplicate detector and
// the word counter operate on; unfiltered tokens are never used for
// either.
func Filter(tokens []string, stopwords map[string]struct{}) []string {
	filtered := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if len(t) <= 1 {
			continue
		}
		if _, isStop := stopwords[t]; isStop {
			continue
		}
		if isAllDigits(t) {
			continue
		}
		filtered = append(filtered, t)
	}
	return filtered
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// Aggregator accumulates word frequencies, per-subdomain page counts, and
// the longest page seen, across however many concurrent workers call
// Record. It is safe for concurrent use.
type Aggregator struct {
	mu             sync.Mutex
	wordCounter    map[string]int
	subdomains     map[string]int
	wordInPage     map[string]int
	mostWordURL    string
	mostWordCount  int
}

// NewAggregator returns an empty Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{
		wordCounter: make(map[string]int),
		subdomains:  make(map[string]int),
		wordInPage:  make(map[string]int),
	}
}

// Record registers one accepted, non-duplicate page: each filtered token
// is added to the running word counter, its host's subdomain counter is
// incremented when the host ends in ".ics.uci.edu" (the bare ics.uci.edu
// host and other domains are not counted), and the longest-page record is
// updated if this page's token count is the new maximum.
func (a *Aggregator) Record(pageURL string, host string, filteredTokens []string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, t := range filteredTokens {
		a.wordCounter[t]++
	}

	if strings.HasSuffix(host, ".ics.uci.edu") {
		a.subdomains[host]++
	}

	count := len(filteredTokens)
	a.wordInPage[pageURL] = count
	if count > a.mostWordCount {
		a.mostWordCount = count
		a.mostWordURL = pageURL
	}
}

// UniquePages returns the number of distinct pages recorded so far.
func (a *Aggregator) UniquePages() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.wordInPage)
}

// Snapshot returns an immutable copy of the current aggregate state in
// the wire format Checkpoint writes.
func (a *Aggregator) Snapshot() Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.snapshotLocked()
}

func (a *Aggregator) snapshotLocked() Snapshot {
	wordCounter := make(map[string]int, len(a.wordCounter))
	for k, v := range a.wordCounter {
		wordCounter[k] = v
	}
	subdomains := make(map[string]int, len(a.subdomains))
	for k, v := range a.subdomains {
		subdomains[k] = v
	}
	wordInPage := make(map[string]int, len(a.wordInPage))
	for k, v := range a.wordInPage {
		wordInPage[k] = v
	}

	return Snapshot{
		UniquePages: len(a.wordInPage),
		MostWordInPage: MostWordInPage{
			URL:       a.mostWordURL,
			WordCount: a.mostWordCount,
		},
		Top50Words:  top50(wordCounter),
		Subdomains:  subdomains,
		WordInPage:  wordInPage,
		WordCounter: wordCounter,
	}
}

func top50(counter map[string]int) [][2]any {
	type pair struct {
		word  string
		count int
	}
	pairs := make([]pair, 0, len(counter))
	for w, c := range counter {
		pairs = append(pairs, pair{w, c})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].count != pairs[j].count {
			return pairs[i].count > pairs[j].count
		}
		return pairs[i].word < pairs[j].word
	})
	if len(pairs) > 50 {
		pairs = pairs[:50]
	}

	out := make([][2]any, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, [2]any{p.word, p.count})
	}
	return out
}

// Checkpoint writes the current snapshot to path as indented JSON.
func (a *Aggregator) Checkpoint(path string) error {
	snapshot := a.Snapshot()
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return &StatsError{Message: "failed to marshal snapshot", Cause: err}
	}
	if dir := filepath.Dir(path); dir != "." {
		if dirErr := fileutil.EnsureDir(dir); dirErr != nil {
			return &StatsError{Message: "failed to create snapshot directory", Cause: dirErr}
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return &StatsError{Message: "failed to write snapshot", Cause: err, Retryable: true}
	}
	return nil
}

// Load merges a previously checkpointed snapshot at path into a, per
// spec.md's reload-conflict policy: the larger most_word_in_page wins,
// word_in_page and word_counter are unioned with the loaded value
// overwriting on key collision, and subdomain counts are overwritten
// per-host by the loaded value. A missing file is not an error — it
// simply means there is nothing to resume.
func (a *Aggregator) Load(path string) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return &StatsError{Message: "failed to read snapshot", Cause: err}
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return &StatsError{Message: "failed to parse snapshot", Cause: err}
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if len(snapshot.WordCounter) > 0 {
		for w, c := range snapshot.WordCounter {
			a.wordCounter[w] = c
		}
	} else {
		for _, pair := range snapshot.Top50Words {
			word, ok := pair[0].(string)
			if !ok {
				continue
			}
			count, ok := pair[1].(float64)
			if !ok {
				continue
			}
			a.wordCounter[word] = int(count)
		}
	}

	for host, count := range snapshot.Subdomains {
		a.subdomains[host] = count
	}

	for url, count := range snapshot.WordInPage {
		a.wordInPage[url] = count
	}

	if snapshot.MostWordInPage.URL != "" && snapshot.MostWordInPage.WordCount > a.mostWordCount {
		a.mostWordCount = snapshot.MostWordInPage.WordCount
		a.mostWordURL = snapshot.MostWordInPage.URL
	}

	return nil
}

// HostFromURL extracts the lowercase hostname used as a subdomain
// counter key. An unparseable URL yields the empty string.
func HostFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}
