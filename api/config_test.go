package api

import (
	"context"
	"testing"

	"github.com/alex-pricope/eurovision-scoreboard/logging"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadConfig(t *testing.T) {
	logging.Log = logrus.New()

	t.Run("Happy path - defaults without a config file", func(t *testing.T) {
		viper.Reset()
		t.Cleanup(viper.Reset)
		LoadViper()

		conf := ReadConfig()

		assert.Equal(t, BackendMemory, conf.Backend)
		assert.Equal(t, "modern", conf.DefaultVotingSystem)
		assert.Equal(t, 8080, conf.Port)
		assert.Equal(t, 3, conf.Retries)
		assert.Equal(t, 1920, conf.Viewport.Width)
		assert.Equal(t, "left", conf.Layout.PanelPosition)
		assert.True(t, conf.Layout.ShowFlags)
		assert.Equal(t, 1, conf.RangeStart)
		assert.Equal(t, 0, conf.RangeEnd)
	})

	t.Run("Happy path - environment overrides", func(t *testing.T) {
		viper.Reset()
		t.Cleanup(viper.Reset)
		t.Setenv("EXPORT_RETRIES", "5")
		t.Setenv("LAYOUT_SHOWFLAGS", "false")
		t.Setenv("SCOREBOARDS_SCREENSHOTCOUNT", "12")
		t.Setenv("VOTINGSYSTEM_DEFAULT", "classic")
		LoadViper()

		conf := ReadConfig()

		assert.Equal(t, 5, conf.Retries)
		assert.False(t, conf.Layout.ShowFlags)
		assert.Equal(t, "classic", conf.DefaultVotingSystem)
		require.Equal(t, 12, conf.ScreenshotCount)
		assert.Equal(t, 12, conf.RangeEnd, "range end follows the screenshot count")
		assert.Equal(t, 12, conf.DirectoryPlan().RangeEnd)
	})
}

func TestServerDefaults(t *testing.T) {
	logging.Log = logrus.New()
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("LAYOUT_PANELPOSITION", "right")
	t.Setenv("EXPORT_RETRIES", "-1")
	LoadViper()
	s := NewServer(ReadConfig())

	t.Run("Happy path - settings defaults follow the config", func(t *testing.T) {
		d := s.DefaultSettings()

		assert.Equal(t, "right", d.PanelPosition)
		assert.Equal(t, "win98", d.Theme)
	})

	t.Run("Happy path - negative retries are clamped", func(t *testing.T) {
		assert.Equal(t, uint64(0), s.Renderer().MaxRetries)
	})

	t.Run("Unhappy path - unknown backend", func(t *testing.T) {
		bad := NewServer(&Config{StorageConfig: StorageConfig{Backend: "redis"}})

		_, _, err := bad.Storages(context.Background())

		assert.Error(t, err)
	})
}
