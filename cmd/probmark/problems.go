package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/probmark/probmark/internal/store"
	"github.com/probmark/probmark/pkg/document"
	"github.com/probmark/probmark/pkg/model"
)

var (
	dbPath string

	problemSolution   string
	problemAnswer     string
	problemNotes      string
	problemCategories []string

	listCategory string
	listSearch   string
	listLimit    int

	showFormat string
)

var problemsCmd = &cobra.Command{
	Use:   "problems",
	Short: "Manage the problem database",
}

func defaultDBPath() string {
	if dbPath != "" {
		return dbPath
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "probmark.db"
	}
	return filepath.Join(home, ".local", "share", "probmark", "probmark.db")
}

func openStore() (*store.Store, error) {
	path := defaultDBPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return store.Open(path)
}

var problemsAddCmd = &cobra.Command{
	Use:   "add [file]",
	Short: "Add a problem from a markup file or stdin",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := readInput(args)
		if err != nil {
			return err
		}
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		p := &store.Problem{
			Content:    content,
			Solution:   problemSolution,
			Answer:     problemAnswer,
			Notes:      problemNotes,
			Categories: problemCategories,
		}
		if err := s.Save(cmd.Context(), p); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added problem %d\n", p.ID)
		return nil
	},
}

var problemsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored problems",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		problems, err := s.List(cmd.Context(), store.ListFilter{
			Category: listCategory,
			Search:   listSearch,
			Limit:    listLimit,
		})
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, p := range problems {
			summary := strings.SplitN(strings.TrimSpace(p.Content), "\n", 2)[0]
			if len(summary) > 72 {
				summary = summary[:72] + "..."
			}
			fmt.Fprintf(out, "%4d  %s  %s\n", p.ID, p.Modified.Format("2006-01-02"), summary)
		}
		return nil
	},
}

var problemsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Render one stored problem",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid problem id %q", args[0])
		}
		format, err := parseFormat(showFormat)
		if err != nil {
			return err
		}

		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		p, err := s.Get(cmd.Context(), id)
		if err != nil {
			return err
		}
		parser, err := buildParser()
		if err != nil {
			return err
		}
		rendered, err := parser.Render(p.Content, format)
		if err != nil {
			return err
		}
		if format == model.FormatLaTeX {
			rendered = document.LaTeXDocument(rendered, document.DefaultOptions())
		}
		fmt.Fprintln(cmd.OutOrStdout(), rendered)
		return nil
	},
}

var problemsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a stored problem",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid problem id %q", args[0])
		}
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.Delete(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted problem %d\n", id)
		return nil
	},
}

var problemsCategoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List known categories",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		names, err := s.Categories(cmd.Context())
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

func init() {
	problemsCmd.PersistentFlags().StringVar(&dbPath, "db", "",
		"Path to the problem database (default ~/.local/share/probmark/probmark.db)")

	problemsAddCmd.Flags().StringVar(&problemSolution, "solution", "", "Solution markup")
	problemsAddCmd.Flags().StringVar(&problemAnswer, "answer", "", "Final answer")
	problemsAddCmd.Flags().StringVar(&problemNotes, "notes", "", "Free-form notes")
	problemsAddCmd.Flags().StringSliceVar(&problemCategories, "category", nil,
		"Category name (repeatable)")

	problemsListCmd.Flags().StringVar(&listCategory, "category", "", "Filter by category")
	problemsListCmd.Flags().StringVar(&listSearch, "search", "", "Filter by substring")
	problemsListCmd.Flags().IntVar(&listLimit, "limit", 100, "Maximum rows")

	problemsShowCmd.Flags().StringVarP(&showFormat, "format", "f", "markdown",
		"Output format: markdown, plaintext or latex")

	problemsCmd.AddCommand(problemsAddCmd, problemsListCmd, problemsShowCmd,
		problemsDeleteCmd, problemsCategoriesCmd)
	rootCmd.AddCommand(problemsCmd)
}
