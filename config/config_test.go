package config

import (
	"errors"
	"reflect"
	"testing"

	"sweeparr/config/mocks"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestNew(t *testing.T) {
	t.Run("fail to read in config", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cu := mocks.NewMockConfigUnmarshaler(ctrl)

		wantErr := errors.New("expected testing error")
		cu.EXPECT().ConfigFileUsed().Times(1).Return("fake-config.yaml")
		cu.EXPECT().ReadInConfig().Times(1).Return(wantErr)
		c, err := New(cu)
		if err == nil {
			t.Errorf("TestNew() err = %v, want %v", err, wantErr)
		}

		wantConfig := Config{}
		if !reflect.DeepEqual(c, wantConfig) {
			t.Errorf("TestNew() config = %v, want %v", c, wantConfig)
		}
	})

	t.Run("success with file", func(t *testing.T) {
		cu := viper.New()
		cu.SetConfigFile("./testing/config.yaml")
		c, err := New(cu)
		if err != nil {
			t.Errorf("TestNew() err = %v, want %v", err, nil)
		}

		wantConfig := Config{
			Jellyfin: Jellyfin{
				URL:    "https://jellyfin.local",
				APIKey: "my-api-key",
				UserID: "my-user-id",
			},
			Radarr: Radarr{
				URL:    "https://radarr.local",
				APIKey: "my-radarr-key",
			},
			Sonarr: Sonarr{
				URL:    "https://sonarr.local",
				APIKey: "my-sonarr-key",
			},
			Automation: Automation{
				MovieRetentionDays:  7,
				SeasonRetentionDays: 28,
			},
		}

		if !reflect.DeepEqual(c, wantConfig) {
			t.Errorf("TestNew() config = %+v, want %+v", c, wantConfig)
		}
	})

	t.Run("success without file", func(t *testing.T) {
		cu := viper.New()
		cu.SetConfigFile("")
		c, err := New(cu)
		if err != nil {
			t.Errorf("TestNew() err = %v, want %v", err, nil)
		}

		wantConfig := Config{}
		if !reflect.DeepEqual(c, wantConfig) {
			t.Errorf("TestNew() config = %+v, want %+v", c, wantConfig)
		}
	})
}

func TestConfigured(t *testing.T) {
	c := Config{}
	assert.False(t, c.RadarrConfigured())
	assert.False(t, c.SonarrConfigured())

	c.Radarr = Radarr{URL: "http://radarr:7878", APIKey: "key"}
	assert.True(t, c.RadarrConfigured())

	c.Sonarr = Sonarr{URL: "http://sonarr:8989"}
	assert.False(t, c.SonarrConfigured())
}

func TestValidate(t *testing.T) {
	c := Config{
		Jellyfin: Jellyfin{
			URL:    "http://jellyfin:8096",
			APIKey: "key",
			UserID: "user",
		},
	}
	assert.NoError(t, c.Validate())

	c.Jellyfin.URL = "not-a-url"
	assert.Error(t, c.Validate())

	c.Jellyfin = Jellyfin{}
	assert.Error(t, c.Validate())
}
