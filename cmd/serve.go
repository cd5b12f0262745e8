package cmd

import (
	"sweeparr/pkg/logger"
	"sweeparr/server"

	"github.com/spf13/cobra"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "start the control panel api",
	Long:  `start the control panel api`,
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.Get()

		a := newApp(log)

		srv := server.New(log, a.engine, a.store, a.jellyfin, a.radarr, a.sonarr)
		log.Error(srv.Serve(a.cfg.Server.Port))
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
