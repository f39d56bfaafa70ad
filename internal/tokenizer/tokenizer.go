// Package tokenizer splits page text into lowercase alphanumeric tokens.
//
// Responsibilities:
//   - Tokenize: scan text and emit runs of ASCII letters/digits, lowercased
//   - WordFrequencies: reduce a token stream into counts per unique token
package tokenizer

// Tokenize splits text into maximal runs of ASCII letters and digits,
// lowercasing each run. Any other rune, including all non-ASCII characters,
// terminates the current run without being included in it. Tokenize never
// returns an error; a document with no valid characters yields an empty
// slice.
func Tokenize(text string) []string {
	tokens := make([]string, 0)
	current := make([]byte, 0, 16)

	flush := func() {
		if len(current) == 0 {
			return
		}
		tokens = append(tokens, string(current))
		current = current[:0]
	}

	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c >= 'a' && c <= 'z':
			current = append(current, c)
		case c >= 'A' && c <= 'Z':
			current = append(current, c-'A'+'a')
		case c >= '0' && c <= '9':
			current = append(current, c)
		default:
			flush()
		}
	}
	flush()

	return tokens
}

// WordFrequencies counts occurrences of each token.
func WordFrequencies(tokens []string) map[string]int {
	freq := make(map[string]int, len(tokens))
	for _, t := range tokens {
		freq[t]++
	}
	return freq
}
