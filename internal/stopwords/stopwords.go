// Package stopwords provides the default English stop-word list used by
// the Stats Aggregator to exclude common words from the common-words
// report.
package stopwords

import (
	_ "embed"
	"bufio"
	"os"
	"strings"
)

//go:embed default.txt
var defaultList string

// Default returns the embedded default stop-word set, one entry per
// non-blank line of default.txt.
func Default() map[string]struct{} {
	return parse(defaultList)
}

// Load reads a stop-word set from path, one word per line. It is used when
// a config's stopwords_file overrides the embedded default.
func Load(path string) (map[string]struct{}, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	set := make(map[string]struct{})
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word == "" {
			continue
		}
		set[strings.ToLower(word)] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return set, nil
}

func parse(content string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, line := range strings.Split(content, "\n") {
		word := strings.TrimSpace(line)
		if word == "" {
			continue
		}
		set[word] = struct{}{}
	}
	return set
}
