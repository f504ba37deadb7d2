package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var rankCmd = &cobra.Command{
	Use:   "rank <file> <word>",
	Short: "Print the frequency rank and percentile of a word",
	Example: `  lexis rank essay.txt bank
  cat essay.txt | lexis rank - bank`,
	Args: cobra.ExactArgs(2),
	RunE: runRank,
}

func init() {
	rootCmd.AddCommand(rankCmd)
}

func runRank(cmd *cobra.Command, args []string) error {
	text, err := readInput(cmd, args[:1])
	if err != nil {
		return err
	}

	uc, err := newAnalyzer()
	if err != nil {
		return err
	}

	rank, err := uc.Lookup(cmd.Context(), text, args[1])
	if err != nil {
		return fmt.Errorf("lookup failed: %w", err)
	}

	return render(cmd.OutOrStdout(), rank, func(w io.Writer) { printRank(w, rank) })
}
