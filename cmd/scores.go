package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "scores",
		Short: "Print the high-score table",
		RunE: func(cmd *cobra.Command, args []string) error {
			scores, closeScores, err := openScores(cmd.Context())
			if err != nil {
				return err
			}
			defer closeScores()

			entries := scores.Entries()
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No high scores yet.")
				return nil
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			defer tw.Flush()
			for i, e := range entries {
				fmt.Fprintf(tw, "%d.\t%s\t%d\n", i+1, e.Name, e.Score)
			}
			return nil
		},
	})
}
