package api

import (
	"strings"
	"sync"

	"github.com/alex-pricope/eurovision-scoreboard/export"
	"github.com/alex-pricope/eurovision-scoreboard/logging"
	"github.com/spf13/viper"
)

const (
	BackendMemory = "memory"
	BackendDynamo = "dynamo"
)

type Config struct {
	StorageConfig
	ServerConfig
	ScoreboardsConfig
	ExportConfig
	LogConfig
}

type StorageConfig struct {
	Backend              string
	TableNameScoreboards string
	TableNameSettings    string
	DefaultVotingSystem  string
}

type ServerConfig struct {
	Port int
}

type ScoreboardsConfig struct {
	Directory       string
	ScreenshotCount int
	RangeStart      int
	RangeEnd        int
	CountryList     []string
}

type ExportConfig struct {
	ServerURL            string
	RendererURL          string
	ScreenshotsDirectory string
	Retries              int
	Viewport             export.Viewport
	Layout               export.LayoutSettings
}

type LogConfig struct {
	Level  string
	Format string
}

var settingsOnce sync.Once

// LoadViper points viper at ./config.yaml and the environment. A missing file is not
// fatal: every key has a default or can come from the environment.
func LoadViper() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logging.Log.Warnf("Failed to read config file, using environment and defaults: %v", err)
	}
}

func ReadConfig() *Config {
	layout := export.DefaultLayout()
	viewport := export.DefaultViewport()

	var conf = &Config{
		StorageConfig: StorageConfig{
			Backend:              getStringOrDefault("storage.backend", BackendMemory),
			TableNameScoreboards: getStringOrDefault("storage.TableNameScoreboards", "Scoreboards"),
			TableNameSettings:    getStringOrDefault("storage.TableNameSettings", "ScoreboardSettings"),
			DefaultVotingSystem:  getStringOrDefault("votingSystem.default", "modern"),
		},
		ServerConfig: ServerConfig{
			Port: getIntOrDefault("server.port", 8080),
		},
		ScoreboardsConfig: ScoreboardsConfig{
			Directory:       getStringOrDefault("scoreboards.directory", "scoreboards"),
			ScreenshotCount: getIntOrDefault("scoreboards.screenshotCount", 0),
			RangeStart:      getIntOrDefault("scoreboards.rangeStart", 1),
			RangeEnd:        getIntOrDefault("scoreboards.rangeEnd", 0),
			CountryList:     viper.GetStringSlice("scoreboards.countryList"),
		},
		ExportConfig: ExportConfig{
			ServerURL:            getStringOrDefault("export.serverUrl", "http://localhost:5173"),
			RendererURL:          getStringOrDefault("export.rendererUrl", "http://localhost:3000/screenshot"),
			ScreenshotsDirectory: getStringOrDefault("export.screenshotsDirectory", "screenshots"),
			Retries:              getIntOrDefault("export.retries", 3),
			Viewport: export.Viewport{
				Width:  getIntOrDefault("viewport.width", viewport.Width),
				Height: getIntOrDefault("viewport.height", viewport.Height),
			},
			Layout: export.LayoutSettings{
				ShowVoterPanel: getBoolOrDefault("layout.showVoterPanel", layout.ShowVoterPanel),
				PanelPosition:  getStringOrDefault("layout.panelPosition", layout.PanelPosition),
				Variant:        getStringOrDefault("layout.variant", layout.Variant),
				ShowFlags:      getBoolOrDefault("layout.showFlags", layout.ShowFlags),
			},
		},
		LogConfig: LogConfig{
			Level:  getStringOrDefault("log.level", "info"),
			Format: getStringOrDefault("log.format", "text"),
		},
	}
	if conf.RangeEnd == 0 {
		conf.RangeEnd = conf.ScreenshotCount
	}

	settingsOnce.Do(func() {
		logging.Log.Print("Reading settings!")
	})

	return conf
}

// DirectoryPlan returns the round bounds for exporting the scoreboards directory.
func (c *Config) DirectoryPlan() export.DirectoryPlanOptions {
	return export.DirectoryPlanOptions{
		ScreenshotCount: c.ScreenshotCount,
		RangeStart:      c.RangeStart,
		RangeEnd:        c.RangeEnd,
	}
}

func getIntOrDefault(name string, def int) int {
	if viper.IsSet(name) {
		v := viper.GetInt(name)
		logging.Log.Debugf("found '%s' in viper", name)
		return v
	}
	logging.Log.Debugf("could not find '%s' in viper! Returning default", name)
	return def
}

func getBoolOrDefault(name string, def bool) bool {
	if viper.IsSet(name) {
		v := viper.GetBool(name)
		logging.Log.Debugf("found '%s' in viper", name)
		return v
	}
	logging.Log.Debugf("could not find '%s' in viper! Returning default", name)
	return def
}

func getStringOrDefault(name string, def string) string {
	if viper.IsSet(name) {
		v := viper.GetString(name)
		logging.Log.Debugf("found '%s' in viper", name)
		return v
	}
	logging.Log.Debugf("could not find '%s' in viper! Returning default", name)
	return def
}
