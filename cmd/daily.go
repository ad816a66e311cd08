package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/robalobadob/hive/internal/daily"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "daily",
		Short: "Show today's puzzle letters and size",
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := loadWords()
			if err != nil {
				return err
			}
			now := time.Now()
			p, err := daily.Puzzle(now, cfg.DailySalt, src)
			if err != nil {
				return err
			}
			h := p.Help()
			fmt.Fprintf(cmd.OutOrStdout(), "%s  center %c  secondary %s\n", daily.DateKey(now), p.Primary(), string(p.Secondary()))
			fmt.Fprintf(cmd.OutOrStdout(), "%d words, %d points, %d pangrams (%d perfect)\n",
				h.WordCount, p.TotalPoints(), h.Pangrams, h.PerfectPangrams)
			return nil
		},
	})
}
