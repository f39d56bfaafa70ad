package cmd

import (
	"fmt"
	"os"

	"github.com/rohmanhakim/docs-crawler/internal/tokenizer"
	"github.com/spf13/cobra"
)

var intersectCmd = &cobra.Command{
	Use:   "intersect <file1> <file2>",
	Short: "Print the number of distinct words that appear in both files",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		count, err := fileTokenIntersectionCount(args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), count)
		return nil
	},
}

func fileTokenIntersectionCount(path1, path2 string) (int, error) {
	content1, err := os.ReadFile(path1)
	if err != nil {
		return 0, fmt.Errorf("error reading %s: %w", path1, err)
	}
	content2, err := os.ReadFile(path2)
	if err != nil {
		return 0, fmt.Errorf("error reading %s: %w", path2, err)
	}

	freq1 := tokenizer.WordFrequencies(tokenizer.Tokenize(string(content1)))
	freq2 := tokenizer.WordFrequencies(tokenizer.Tokenize(string(content2)))

	count := 0
	for token := range freq1 {
		if _, ok := freq2[token]; ok {
			count++
		}
	}
	return count, nil
}

func init() {
	rootCmd.AddCommand(intersectCmd)
}
