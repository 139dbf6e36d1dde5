package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var fieldsCmd = &cobra.Command{
	Use:   "fields",
	Short: "List the extractable field schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		fields, err := loadFields()
		if err != nil {
			return err
		}

		fmt.Printf("%-16s %-28s %-14s %s\n", "KEY", "DISPLAY NAME", "TYPE", "ALIASES")
		for _, spec := range fields.Fields {
			fmt.Printf("%-16s %-28s %-14s %s\n",
				spec.Key, spec.DisplayName, spec.ValueType,
				strings.Join(spec.Aliases, ", "))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fieldsCmd)
}
