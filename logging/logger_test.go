package logging

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestConfigure(t *testing.T) {
	t.Cleanup(func() { Log = logrus.New() })

	t.Run("Happy path - json formatter and warn level", func(t *testing.T) {
		Configure(Config{Level: "warn", Format: "JSON"})

		assert.Equal(t, logrus.WarnLevel, Log.Level)
		_, isJSON := Log.Formatter.(*logrus.JSONFormatter)
		assert.True(t, isJSON, "expected json formatter")
	})

	t.Run("Unhappy path - unknown level falls back to info", func(t *testing.T) {
		Configure(Config{Level: "chatty"})

		assert.Equal(t, logrus.InfoLevel, Log.Level)
		_, isText := Log.Formatter.(*logrus.TextFormatter)
		assert.True(t, isText, "expected text formatter")
	})

	t.Run("Bootstrap uses debug level", func(t *testing.T) {
		BoostrapLogger()

		assert.Equal(t, logrus.DebugLevel, Log.Level)
	})
}
