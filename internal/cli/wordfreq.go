package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/rohmanhakim/docs-crawler/internal/tokenizer"
	"github.com/spf13/cobra"
)

var wordfreqCmd = &cobra.Command{
	Use:   "wordfreq <file>",
	Short: "Print each word in a file with its frequency, most frequent first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("error reading %s: %w", args[0], err)
		}

		freq := tokenizer.WordFrequencies(tokenizer.Tokenize(string(content)))
		for _, token := range sortedByFreqThenAlpha(freq) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s -> %d\n", token, freq[token])
		}
		return nil
	},
}

func sortedByFreqThenAlpha(freq map[string]int) []string {
	tokens := make([]string, 0, len(freq))
	for token := range freq {
		tokens = append(tokens, token)
	}
	sort.Slice(tokens, func(i, j int) bool {
		if freq[tokens[i]] != freq[tokens[j]] {
			return freq[tokens[i]] > freq[tokens[j]]
		}
		return tokens[i] < tokens[j]
	})
	return tokens
}

func init() {
	rootCmd.AddCommand(wordfreqCmd)
}
