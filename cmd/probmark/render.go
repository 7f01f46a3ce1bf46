package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/probmark/probmark/pkg/document"
	"github.com/probmark/probmark/pkg/model"
)

var (
	renderFormat string
	renderOutput string
	fullDocument bool
	fontSize     int
	fontFamily   string
)

var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Render a document to markdown, plaintext or latex",
	Long: `Render reads command markup from a file (or stdin when the argument is
omitted or "-") and writes the converted document to stdout or --output.
With --full-document the latex format produces a compilable article.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := parseFormat(renderFormat)
		if err != nil {
			return err
		}
		input, err := readInput(args)
		if err != nil {
			return err
		}
		parser, err := buildParser()
		if err != nil {
			return err
		}

		out, err := parser.Render(input, format)
		if err != nil {
			return err
		}
		if format == model.FormatLaTeX && fullDocument {
			opts := document.DefaultOptions()
			if fontSize > 0 {
				opts.FontSize = fontSize
			}
			opts.FontFamily = fontFamily
			out = document.LaTeXDocument(out, opts)
		}

		if renderOutput != "" {
			return os.WriteFile(renderOutput, []byte(out), 0o644)
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", "markdown",
		"Output format: markdown, plaintext or latex")
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "",
		"Write output to file instead of stdout")
	renderCmd.Flags().BoolVar(&fullDocument, "full-document", false,
		"Wrap latex output in a complete document")
	renderCmd.Flags().IntVar(&fontSize, "font-size", 0,
		"Font size in points for --full-document")
	renderCmd.Flags().StringVar(&fontFamily, "font-family", "",
		"Font family for --full-document")
	rootCmd.AddCommand(renderCmd)
}
