package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var (
	analyzeWord string
	analyzeOut  string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Run frequency, Zipf and context analysis",
	Long: `Analyze a text file (or stdin when the file is "-" or omitted) and print
the combined report: ranked frequencies with the Zipf fit, the context of one
word or of the most frequent words, and the derived insights.

Examples:
  lexis analyze essay.txt
  lexis analyze essay.txt --word bank
  cat essay.txt | lexis analyze --out report.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVarP(&analyzeWord, "word", "w", "", "word to report on (default: most frequent words)")
	analyzeCmd.Flags().StringVarP(&analyzeOut, "out", "o", "", "also write the report to a .json or .yaml file")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	text, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	uc, err := newAnalyzer()
	if err != nil {
		return err
	}

	report, err := uc.AnalyzeCombined(cmd.Context(), text, analyzeWord)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if analyzeOut != "" {
		if err := export(analyzeOut, report); err != nil {
			return err
		}
	}

	return render(cmd.OutOrStdout(), report, func(w io.Writer) { printReport(w, report) })
}
