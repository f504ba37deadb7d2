package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var (
	contextWord string
	contextOut  string
)

var contextCmd = &cobra.Command{
	Use:   "context [file]",
	Short: "Describe how words are used in their sentences",
	Long: `Without --word, summarize the twenty most frequent significant words.
With --word, report the word's sentences, neighbors, usage and word class.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runContext,
}

func init() {
	rootCmd.AddCommand(contextCmd)
	contextCmd.Flags().StringVarP(&contextWord, "word", "w", "", "word to report on")
	contextCmd.Flags().StringVarP(&contextOut, "out", "o", "", "also write the result to a .json or .yaml file")
}

func runContext(cmd *cobra.Command, args []string) error {
	text, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	uc, err := newAnalyzer()
	if err != nil {
		return err
	}

	ca, err := uc.AnalyzeContext(cmd.Context(), text, contextWord)
	if err != nil {
		return fmt.Errorf("context analysis failed: %w", err)
	}

	if contextOut != "" {
		if err := export(contextOut, ca); err != nil {
			return err
		}
	}

	return render(cmd.OutOrStdout(), ca, func(w io.Writer) { printContext(w, ca) })
}
