package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var frequencyOut string

var frequencyCmd = &cobra.Command{
	Use:     "frequency [file]",
	Aliases: []string{"freq", "zipf"},
	Short:   "Rank words and measure the fit to Zipf's law",
	Args:    cobra.MaximumNArgs(1),
	RunE:    runFrequency,
}

func init() {
	rootCmd.AddCommand(frequencyCmd)
	frequencyCmd.Flags().StringVarP(&frequencyOut, "out", "o", "", "also write the result to a .json or .yaml file")
}

func runFrequency(cmd *cobra.Command, args []string) error {
	text, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	uc, err := newAnalyzer()
	if err != nil {
		return err
	}

	fa, err := uc.AnalyzeFrequency(cmd.Context(), text)
	if err != nil {
		return fmt.Errorf("frequency analysis failed: %w", err)
	}

	if frequencyOut != "" {
		if err := export(frequencyOut, fa); err != nil {
			return err
		}
	}

	return render(cmd.OutOrStdout(), fa, func(w io.Writer) { printFrequency(w, fa) })
}
