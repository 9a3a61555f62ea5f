package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eringen/vizboard"
)

func newInsightsCmd(cfg *vizboard.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "insights [file...]",
		Short: "Print the insight for each file, or the whole mapping",
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := loadInsights(cfg)
			if err != nil {
				return err
			}
			names := args
			if len(names) == 0 {
				names = in.Names()
			}
			for _, name := range names {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", name, in.Lookup(name))
			}
			return nil
		},
	}
}
