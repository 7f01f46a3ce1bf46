package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/probmark/probmark/pkg/model"
)

var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "List the available document commands and their parameters",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, spec := range cat.Specs() {
			fmt.Fprintf(out, "#%s", spec.Name)
			if spec.Structural {
				fmt.Fprint(out, " (structural)")
			}
			fmt.Fprintln(out)
			if spec.Description != "" {
				fmt.Fprintf(out, "  %s\n", spec.Description)
			}

			table, err := model.Resolve(spec)
			if err != nil {
				return fmt.Errorf("command %q: %w", spec.Name, err)
			}
			for _, name := range table.Names() {
				desc, _ := table.Descriptor(name)
				fmt.Fprintf(out, "  %s (%s, default %v)", desc.Name, desc.Kind, desc.Default)
				if desc.Description != "" {
					fmt.Fprintf(out, "  %s", desc.Description)
				}
				fmt.Fprintln(out)
			}
			fmt.Fprintln(out)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(commandsCmd)
}
