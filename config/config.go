package config

import (
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Jellyfin   Jellyfin   `json:"jellyfin" yaml:"jellyfin" mapstructure:"jellyfin"`
	Radarr     Radarr     `json:"radarr" yaml:"radarr" mapstructure:"radarr"`
	Sonarr     Sonarr     `json:"sonarr" yaml:"sonarr" mapstructure:"sonarr"`
	Automation Automation `json:"automation" yaml:"automation" mapstructure:"automation"`
	Webhook    Webhook    `json:"webhook" yaml:"webhook" mapstructure:"webhook"`
	Storage    Storage    `json:"storage" yaml:"storage" mapstructure:"storage"`
	Server     Server     `json:"server" yaml:"server" mapstructure:"server"`
}

// Jellyfin is the media server holding library metadata. It is the only
// service that must be configured for a scan to run at all.
type Jellyfin struct {
	URL    string `json:"url" yaml:"url" mapstructure:"url" validate:"required,url"`
	APIKey string `json:"apiKey" yaml:"apiKey" mapstructure:"apiKey" validate:"required"`
	UserID string `json:"userId" yaml:"userId" mapstructure:"userId" validate:"required"`
}

// Radarr is the movie acquisition manager. Optional; movie deletions are
// skipped when it is not configured.
type Radarr struct {
	URL    string `json:"url" yaml:"url" mapstructure:"url" validate:"omitempty,url"`
	APIKey string `json:"apiKey" yaml:"apiKey" mapstructure:"apiKey"`
}

// Sonarr is the tv acquisition manager. Optional; season deletions are
// skipped when it is not configured.
type Sonarr struct {
	URL    string `json:"url" yaml:"url" mapstructure:"url" validate:"omitempty,url"`
	APIKey string `json:"apiKey" yaml:"apiKey" mapstructure:"apiKey"`
}

// Automation holds the retention thresholds in days. An item becomes a
// deletion candidate strictly after its threshold has passed.
type Automation struct {
	MovieRetentionDays  int `json:"movieRetentionDays" yaml:"movieRetentionDays" mapstructure:"movieRetentionDays" validate:"min=0"`
	SeasonRetentionDays int `json:"seasonRetentionDays" yaml:"seasonRetentionDays" mapstructure:"seasonRetentionDays" validate:"min=0"`
}

// Webhook configures the optional outbound notification posted after a
// sweep that deleted at least one item.
type Webhook struct {
	Enabled   bool   `json:"enabled" yaml:"enabled" mapstructure:"enabled"`
	URL       string `json:"url" yaml:"url" mapstructure:"url" validate:"omitempty,url"`
	Username  string `json:"username" yaml:"username" mapstructure:"username"`
	AvatarURL string `json:"avatarUrl" yaml:"avatarUrl" mapstructure:"avatarUrl" validate:"omitempty,url"`
}

// Storage configuration is assumed to be for the sqlite exclusion database only currently
type Storage struct {
	FilePath string `json:"filePath" yaml:"filePath" mapstructure:"filePath"`
}

type Server struct {
	Port int `json:"port" yaml:"port" mapstructure:"port"`
}

// RadarrConfigured reports whether both the URL and key are present.
func (c Config) RadarrConfigured() bool {
	return c.Radarr.URL != "" && c.Radarr.APIKey != ""
}

// SonarrConfigured reports whether both the URL and key are present.
func (c Config) SonarrConfigured() bool {
	return c.Sonarr.URL != "" && c.Sonarr.APIKey != ""
}

type ConfigUnmarshaler interface {
	ReadInConfig() error
	Unmarshal(any, ...viper.DecoderConfigOption) error
	ConfigFileUsed() string
}

// New reads a new configuration
func New(cu ConfigUnmarshaler) (Config, error) {
	var c Config

	if cu.ConfigFileUsed() != "" {
		err := cu.ReadInConfig()
		if err != nil {
			return c, err
		}
	}

	err := cu.Unmarshal(&c)
	return c, err
}

// Validate checks the configuration against its struct tags.
func (c Config) Validate() error {
	return validator.New(validator.WithRequiredStructEnabled()).Struct(c)
}
