package main

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/probmark/probmark/pkg/model"
)

var previewWidth int

var previewCmd = &cobra.Command{
	Use:   "preview [file]",
	Short: "Render a document as styled markdown in the terminal",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input, err := readInput(args)
		if err != nil {
			return err
		}
		parser, err := buildParser()
		if err != nil {
			return err
		}
		markdown, err := parser.Render(input, model.FormatMarkdown)
		if err != nil {
			return err
		}

		options := []glamour.TermRendererOption{glamour.WithAutoStyle()}
		if previewWidth > 0 {
			options = append(options, glamour.WithWordWrap(previewWidth))
		}
		renderer, err := glamour.NewTermRenderer(options...)
		if err != nil {
			// Plain markdown still beats no output.
			fmt.Fprintln(cmd.OutOrStdout(), markdown)
			return nil
		}
		styled, err := renderer.Render(markdown)
		if err != nil {
			fmt.Fprintln(cmd.OutOrStdout(), markdown)
			return nil
		}
		fmt.Fprint(cmd.OutOrStdout(), styled)
		return nil
	},
}

func init() {
	previewCmd.Flags().IntVarP(&previewWidth, "width", "w", 0,
		"Wrap output at this column (0 = auto)")
	rootCmd.AddCommand(previewCmd)
}
