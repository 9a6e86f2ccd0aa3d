package logging

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

type Config struct {
	Level  string
	Format string
}

func BoostrapLogger() {
	Configure(Config{Level: "debug", Format: "text"})
}

// Configure rebuilds the global logger. Unknown levels fall back to info.
func Configure(cfg Config) {
	level, err := logrus.ParseLevel(strings.TrimSpace(cfg.Level))
	if err != nil {
		level = logrus.InfoLevel
	}

	var formatter logrus.Formatter = &logrus.TextFormatter{
		FullTimestamp: true,
	}
	if strings.EqualFold(cfg.Format, "json") {
		formatter = &logrus.JSONFormatter{}
	}

	Log = &logrus.Logger{
		Out:          os.Stdout,
		Hooks:        make(logrus.LevelHooks),
		Formatter:    formatter,
		ReportCaller: true,
		Level:        level,
		ExitFunc:     os.Exit,
	}
}
