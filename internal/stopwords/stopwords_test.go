package stopwords_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rohmanhakim/docs-crawler/internal/stopwords"
)

func TestDefault(t *testing.T) {
	set := stopwords.Default()
	if len(set) == 0 {
		t.Fatal("expected a non-empty default stopword set")
	}
	for _, w := range []string{"the", "and", "of"} {
		if _, ok := set[w]; !ok {
			t.Errorf("expected %q to be a default stopword", w)
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.txt")
	if err := os.WriteFile(path, []byte("Foo\nBAR\n\nbaz\n"), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	set, err := stopwords.Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, w := range []string{"foo", "bar", "baz"} {
		if _, ok := set[w]; !ok {
			t.Errorf("expected %q in loaded set, got %v", w, set)
		}
	}
	if len(set) != 3 {
		t.Errorf("expected 3 entries, got %d", len(set))
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := stopwords.Load("/nonexistent/stopwords.txt")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
