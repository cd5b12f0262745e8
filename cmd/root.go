package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "sweeparr",
	Short: "sweeparr cli",
	Long:  `retention-based cleanup for a Jellyfin library managed by Radarr and Sonarr`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file")
}

func initConfig() {
	// an absent config file is fine, everything can come from env
	if _, err := os.Stat(cfgFile); err == nil {
		viper.SetConfigFile(cfgFile)
	}

	viper.SetEnvPrefix("SWEEPARR")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", ""))
	viper.AutomaticEnv()

	viper.SetDefault("jellyfin.url", "")
	viper.SetDefault("jellyfin.apiKey", "")
	viper.SetDefault("jellyfin.userId", "")

	viper.SetDefault("radarr.url", "")
	viper.SetDefault("radarr.apiKey", "")

	viper.SetDefault("sonarr.url", "")
	viper.SetDefault("sonarr.apiKey", "")

	viper.SetDefault("automation.movieRetentionDays", 7)
	viper.SetDefault("automation.seasonRetentionDays", 28)

	viper.SetDefault("webhook.enabled", false)
	viper.SetDefault("webhook.url", "")
	viper.SetDefault("webhook.username", "sweeparr")
	viper.SetDefault("webhook.avatarUrl", "")

	viper.SetDefault("storage.filePath", "sweeparr.sqlite")

	viper.SetDefault("server.port", 8080)
}
