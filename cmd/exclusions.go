package cmd

import (
	"context"
	"fmt"

	"sweeparr/pkg/logger"

	"github.com/spf13/cobra"
)

// exclusionsCmd represents the exclusions command
var exclusionsCmd = &cobra.Command{
	Use:   "exclusions",
	Short: "manage the exclusion list",
	Long:  `manage the list of items protected from automated deletion`,
}

var exclusionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "list protected item ids",
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.Get()
		ctx := logger.WithCtx(context.Background(), log)

		a := newApp(log)

		members, err := a.store.Members(ctx)
		if err != nil {
			log.Fatal("failed to list exclusions", err)
		}

		for _, id := range members {
			fmt.Println(id)
		}
	},
}

var exclusionsAddCmd = &cobra.Command{
	Use:        "add [id...]",
	Short:      "protect items by id",
	Args:       cobra.MinimumNArgs(1),
	ArgAliases: []string{"item ids"},
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.Get()
		ctx := logger.WithCtx(context.Background(), log)

		a := newApp(log)

		if err := a.store.AddMany(ctx, args); err != nil {
			log.Fatal("failed to add exclusions", err)
		}
	},
}

var exclusionsRemoveCmd = &cobra.Command{
	Use:        "remove [id...]",
	Short:      "lift the protection of items by id",
	Args:       cobra.MinimumNArgs(1),
	ArgAliases: []string{"item ids"},
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.Get()
		ctx := logger.WithCtx(context.Background(), log)

		a := newApp(log)

		for _, id := range args {
			if err := a.store.Remove(ctx, id); err != nil {
				log.Fatal("failed to remove exclusion", err)
			}
		}
	},
}

var exclusionsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "empty the exclusion list",
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.Get()
		ctx := logger.WithCtx(context.Background(), log)

		a := newApp(log)

		if err := a.store.Clear(ctx); err != nil {
			log.Fatal("failed to clear exclusions", err)
		}
	},
}

func init() {
	exclusionsCmd.AddCommand(exclusionsListCmd)
	exclusionsCmd.AddCommand(exclusionsAddCmd)
	exclusionsCmd.AddCommand(exclusionsRemoveCmd)
	exclusionsCmd.AddCommand(exclusionsClearCmd)
	rootCmd.AddCommand(exclusionsCmd)
}
