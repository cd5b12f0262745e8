package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"sweeparr/pkg/logger"
	"sweeparr/pkg/sweep"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "scan the library for deletion candidates",
	Long:  `scan the library and print everything past its retention threshold`,
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.Get()
		ctx := logger.WithCtx(context.Background(), log)

		a := newApp(log)

		result, err := a.engine.Scan(ctx)
		if err != nil {
			log.Fatal("scan failed", err)
		}

		printCandidates(result)
	},
}

func printCandidates(result *sweep.ScanResult) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tKIND\tAGE\tSIZE\tREASON")
	for _, c := range result.Candidates {
		fmt.Fprintf(w, "%s\t%s\t%s\t%dd\t%s\t%s\n",
			c.Item.ID,
			c.Item.DisplayName(),
			c.Item.Type,
			int(c.AgeDays),
			humanize.IBytes(uint64(c.Item.SizeBytes())),
			c.Reason,
		)
	}
	w.Flush()

	fmt.Printf("\n%d scanned, %d eligible, %d within retention, %d excluded\n",
		result.TotalScanned, len(result.Candidates), result.SkippedRecent, result.SkippedExcluded)
}

func init() {
	rootCmd.AddCommand(scanCmd)
}
