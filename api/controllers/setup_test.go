package controllers

import (
	"context"
	"testing"

	"github.com/alex-pricope/eurovision-scoreboard/api/transport"
	"github.com/alex-pricope/eurovision-scoreboard/export"
	"github.com/alex-pricope/eurovision-scoreboard/logging"
	"github.com/alex-pricope/eurovision-scoreboard/scoreboard"
	"github.com/alex-pricope/eurovision-scoreboard/storage"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	testutils "github.com/alex-pricope/eurovision-scoreboard/api/controllers/testing"
)

const board = `[
	{"country": "Italy", "placement": "voter", "pointsOverall": "0", "pointsGained": "0", "isVoter": "1"},
	{"country": "Sweden", "placement": "1", "pointsOverall": "12", "pointsGained": "12"},
	{"country": "Norway", "placement": 2, "pointsOverall": 7, "pointsGained": 7}
]`

type testEnv struct {
	router      *gin.Engine
	scoreboards *storage.MemoryScoreboardStorage
	settings    *storage.MemorySettingsStorage
	rendered    []string
}

func setupTestRouter(t *testing.T, renderer export.Renderer) *testEnv {
	t.Helper()
	logging.Log = logrus.New()
	t.Setenv("ADMIN_TOKEN", testutils.AdminToken)

	env := &testEnv{
		scoreboards: storage.NewMemoryScoreboardStorage(),
		settings:    storage.NewMemorySettingsStorage(),
	}
	if renderer == nil {
		renderer = export.RendererFunc(func(_ context.Context, u export.Unit) ([]byte, error) {
			env.rendered = append(env.rendered, u.Filename)
			return []byte("png:" + u.Filename), nil
		})
	}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.NoRoute(transport.NoRouteHandler())
	NewScoreboardController(env.scoreboards, env.settings, "modern").RegisterRoutes(r)
	NewVotingSystemController().RegisterRoutes(r)
	NewSettingsController(env.settings, storage.DefaultSettings()).RegisterRoutes(r)
	NewTelevoteController(env.scoreboards, env.settings, "modern").RegisterRoutes(r)
	NewExportController(env.scoreboards, env.settings, renderer, "modern").RegisterRoutes(r)
	env.router = r
	return env
}

func (e *testEnv) load(t *testing.T, coll scoreboard.Collection) {
	t.Helper()
	require.NoError(t, e.scoreboards.SetAll(context.Background(), coll))
}

func rank(country string, placement, gained int) scoreboard.NormalizedScoreEntry {
	return scoreboard.NormalizedScoreEntry{Country: country, Placement: scoreboard.Rank(placement), PointsGained: gained}
}
