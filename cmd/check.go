package cmd

import (
	"context"
	"fmt"

	"sweeparr/pkg/logger"

	"github.com/spf13/cobra"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "test the connection to every configured service",
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.Get()
		ctx := logger.WithCtx(context.Background(), log)

		a := newApp(log)

		if info, err := a.jellyfin.SystemInfo(ctx); err != nil {
			fmt.Printf("jellyfin: unreachable: %v\n", err)
		} else {
			fmt.Printf("jellyfin: ok (%s %s)\n", info.ServerName, info.Version)
		}

		if a.radarr == nil {
			fmt.Println("radarr: not configured")
		} else if status, err := a.radarr.SystemStatus(ctx); err != nil {
			fmt.Printf("radarr: unreachable: %v\n", err)
		} else {
			fmt.Printf("radarr: ok (%s %s)\n", status.AppName, status.Version)
		}

		if a.sonarr == nil {
			fmt.Println("sonarr: not configured")
		} else if status, err := a.sonarr.SystemStatus(ctx); err != nil {
			fmt.Printf("sonarr: unreachable: %v\n", err)
		} else {
			fmt.Printf("sonarr: ok (%s %s)\n", status.AppName, status.Version)
		}
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
