package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/willimj3/bella-document-review/internal/template"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the built-in column templates",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for _, tmpl := range template.BuiltIn() {
			fmt.Fprintf(out, "%s\n", tmpl.Name)
			fmt.Fprintf(out, "  %s\n", tmpl.Description)
			for _, col := range tmpl.Columns {
				fmt.Fprintf(out, "    - %s (%s)\n", col.Name, col.Type)
			}
			fmt.Fprintln(out)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(templatesCmd)
}
