package cmd

import (
	"context"
	"fmt"

	"sweeparr/pkg/logger"
	"sweeparr/pkg/sweep"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var sweepYes bool

// sweepCmd represents the sweep command
var sweepCmd = &cobra.Command{
	Use:   "sweep [id...]",
	Short: "scan and delete items past retention",
	Long: `scan the library and delete everything past its retention threshold.
With ids given, only those candidates are deleted. Without --yes the
command stops after printing what it would delete.`,
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.Get()
		ctx := logger.WithCtx(context.Background(), log)

		a := newApp(log)

		result, err := a.engine.Scan(ctx)
		if err != nil {
			log.Fatal("scan failed", err)
		}

		printCandidates(result)

		if len(result.Candidates) == 0 {
			return
		}

		if len(args) > 0 {
			keep := make(map[string]struct{}, len(args))
			for _, id := range args {
				keep[id] = struct{}{}
			}
			for _, c := range result.Candidates {
				if _, ok := keep[c.Item.ID]; !ok {
					if err := a.engine.ToggleSelect(c.Item.ID); err != nil {
						log.Fatal("failed to deselect candidate", err)
					}
				}
			}
		}

		if !sweepYes {
			fmt.Println("\nre-run with --yes to delete")
			return
		}

		outcomes, err := a.engine.DeleteSelected(ctx)
		if err != nil {
			log.Error("delete run failed", err)
		}

		var freed int64
		succeeded := 0
		for _, o := range outcomes {
			if o.Status == sweep.StatusSuccess {
				succeeded++
				freed += o.BytesFreed
			}
			fmt.Printf("%s\t%s\t%s\n", o.Status, o.Title, o.Detail)
		}

		fmt.Printf("\n%d of %d deleted, %s freed\n", succeeded, len(outcomes), humanize.IBytes(uint64(freed)))
	},
}

func init() {
	sweepCmd.Flags().BoolVar(&sweepYes, "yes", false, "actually delete, don't just print")
	rootCmd.AddCommand(sweepCmd)
}
