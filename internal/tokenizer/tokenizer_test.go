package tokenizer_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/rohmanhakim/docs-crawler/internal/tokenizer"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "simple sentence",
			text: "The quick brown fox.",
			want: []string{"the", "quick", "brown", "fox"},
		},
		{
			name: "mixed case and digits",
			text: "Go1.24 Rocks!",
			want: []string{"go1", "24", "rocks"},
		},
		{
			name: "punctuation only",
			text: "!!! ... ---",
			want: []string{},
		},
		{
			name: "non-ascii boundary",
			text: "café naïve",
			want: []string{"caf", "na", "ve"},
		},
		{
			name: "empty string",
			text: "",
			want: []string{},
		},
		{
			name: "no separators at all",
			text: "onelongtoken123",
			want: []string{"onelongtoken123"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tokenizer.Tokenize(tt.text)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestTokenizeIsIdempotentUnderRejoin(t *testing.T) {
	text := "Repeat Repeat REPEAT repeat"
	tokens := tokenizer.Tokenize(text)
	for _, tok := range tokens {
		if tok != "repeat" {
			t.Errorf("expected all tokens to lowercase to 'repeat', got %q", tok)
		}
	}

	rejoined := tokenizer.Tokenize(strings.Join(tokens, " "))
	if !reflect.DeepEqual(rejoined, tokens) {
		t.Errorf("Tokenize(join(Tokenize(s))) = %v, want %v", rejoined, tokens)
	}
}

func TestWordFrequencies(t *testing.T) {
	tokens := tokenizer.Tokenize("a b a c b a")
	freq := tokenizer.WordFrequencies(tokens)

	want := map[string]int{"a": 3, "b": 2, "c": 1}
	if !reflect.DeepEqual(freq, want) {
		t.Errorf("WordFrequencies() = %v, want %v", freq, want)
	}
}

func TestWordFrequenciesEmpty(t *testing.T) {
	freq := tokenizer.WordFrequencies(nil)
	if len(freq) != 0 {
		t.Errorf("expected empty map, got %v", freq)
	}
}
