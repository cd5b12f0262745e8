package cmd

import (
	"sweeparr/config"
	"sweeparr/pkg/exclusions"
	mhttp "sweeparr/pkg/http"
	"sweeparr/pkg/jellyfin"
	"sweeparr/pkg/radarr"
	"sweeparr/pkg/sonarr"
	"sweeparr/pkg/sweep"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// app bundles everything a command needs once the configuration has been
// read and the clients are wired up.
type app struct {
	cfg      config.Config
	store    exclusions.Store
	jellyfin jellyfin.ClientInterface
	radarr   radarr.ClientInterface
	sonarr   sonarr.ClientInterface
	engine   *sweep.Engine
}

// newApp builds the client set and sweep engine from the loaded
// configuration. Radarr and Sonarr stay nil when unconfigured.
func newApp(log *zap.SugaredLogger) app {
	cfg, err := config.New(viper.GetViper())
	if err != nil {
		log.Fatal("failed to read configurations", zap.Error(err))
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}

	httpClient := mhttp.NewRateLimitedHTTPClient()

	jellyfinClient, err := jellyfin.New(cfg.Jellyfin.URL, cfg.Jellyfin.APIKey, cfg.Jellyfin.UserID, jellyfin.WithHTTPClient(httpClient))
	if err != nil {
		log.Fatal("failed to create jellyfin client", zap.Error(err))
	}

	a := app{cfg: cfg, jellyfin: jellyfinClient}

	if cfg.RadarrConfigured() {
		radarrClient, err := radarr.New(cfg.Radarr.URL, cfg.Radarr.APIKey, radarr.WithHTTPClient(httpClient))
		if err != nil {
			log.Fatal("failed to create radarr client", zap.Error(err))
		}
		a.radarr = radarrClient
	}

	if cfg.SonarrConfigured() {
		sonarrClient, err := sonarr.New(cfg.Sonarr.URL, cfg.Sonarr.APIKey, sonarr.WithHTTPClient(httpClient))
		if err != nil {
			log.Fatal("failed to create sonarr client", zap.Error(err))
		}
		a.sonarr = sonarrClient
	}

	store, err := exclusions.New(cfg.Storage.FilePath)
	if err != nil {
		log.Fatal("failed to open exclusion store", zap.Error(err))
	}
	a.store = store

	a.engine = sweep.NewEngine(
		sweep.NewScanner(a.jellyfin, a.store),
		sweep.NewExecutor(a.radarr, a.sonarr, sweep.NewResolver(a.jellyfin)),
		sweep.NewNotifier(httpClient, cfg.Webhook),
		a.store,
		func() sweep.Rules {
			return sweep.Rules{
				MovieRetentionDays:  cfg.Automation.MovieRetentionDays,
				SeasonRetentionDays: cfg.Automation.SeasonRetentionDays,
			}
		},
	)

	return a
}
