package controllers

import (
	"errors"

	"github.com/alex-pricope/eurovision-scoreboard/logging"
	"github.com/alex-pricope/eurovision-scoreboard/scoreboard"
	"github.com/alex-pricope/eurovision-scoreboard/storage"
	"github.com/gin-gonic/gin"
)

// systemResolver picks the voting system for a request: the `system` query parameter,
// then the saved settings, then the configured default. Unknown ids fall back to modern.
type systemResolver struct {
	settings storage.SettingsStorage
	fallback string
}

func (r systemResolver) resolve(g *gin.Context) scoreboard.VotingSystemConfig {
	if id := g.Query("system"); id != "" {
		return scoreboard.VotingSystemByID(id)
	}
	if r.settings != nil {
		s, err := r.settings.Get(g.Request.Context())
		switch {
		case err == nil:
			return scoreboard.VotingSystemByID(s.VotingSystem)
		case !errors.Is(err, storage.ErrSettingsNotFound):
			logging.Log.Warnf("SETTINGS: could not read saved voting system: %v", err)
		}
	}
	return scoreboard.VotingSystemByID(r.fallback)
}
