package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/probmark/probmark/pkg/catalog"
	"github.com/probmark/probmark/pkg/document"
	"github.com/probmark/probmark/pkg/logging"
	"github.com/probmark/probmark/pkg/model"
)

var (
	verbosity   int
	commandsDir string

	rootCmd = &cobra.Command{
		Use:   "probmark",
		Short: "Render command-structured problem markup",
		Long: `probmark converts documents written in command markup (#problem, #eq,
#enum and friends) into markdown, plain text or a complete LaTeX document.
Extra commands can be defined in JSON or YAML files and loaded with
--commands.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Setup(verbosity, os.Stderr)
			log.Debug().Str("command", cmd.Name()).Msg("command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command. Called once from main.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	rootCmd.PersistentFlags().StringVar(&commandsDir, "commands", "",
		"Directory of extra command definition files (JSON or YAML)")
}

// loadCatalog builds the default catalog plus any --commands definitions.
func loadCatalog() (*catalog.Catalog, error) {
	cat := catalog.Default()
	if commandsDir != "" {
		if err := cat.LoadFS(os.DirFS(commandsDir)); err != nil {
			return nil, err
		}
	}
	return cat, nil
}

func buildParser() (*document.Parser, error) {
	cat, err := loadCatalog()
	if err != nil {
		return nil, err
	}
	registry, err := cat.Registry()
	if err != nil {
		return nil, err
	}
	return document.NewParser(registry), nil
}

func parseFormat(name string) (model.Format, error) {
	switch strings.ToLower(name) {
	case "markdown", "md":
		return model.FormatMarkdown, nil
	case "plaintext", "text", "txt":
		return model.FormatPlaintext, nil
	case "latex", "tex":
		return model.FormatLaTeX, nil
	default:
		return "", fmt.Errorf("unknown format %q (markdown, plaintext or latex)", name)
	}
}

func readInput(args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", err
	}
	return string(data), nil
}
