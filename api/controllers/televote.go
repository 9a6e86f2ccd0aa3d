package controllers

import (
	"net/http"

	"github.com/alex-pricope/eurovision-scoreboard/api/models"
	"github.com/alex-pricope/eurovision-scoreboard/scoreboard"
	"github.com/alex-pricope/eurovision-scoreboard/storage"
	"github.com/gin-gonic/gin"
)

type TelevoteController struct {
	scoreboards storage.ScoreboardStorage
	systems     systemResolver
}

func NewTelevoteController(s storage.ScoreboardStorage, settings storage.SettingsStorage, defaultSystem string) *TelevoteController {
	return &TelevoteController{
		scoreboards: s,
		systems:     systemResolver{settings: settings, fallback: defaultSystem},
	}
}

func (c *TelevoteController) RegisterRoutes(engine *gin.Engine) {
	engine.GET("/api/televote", c.aggregate)
}

// revealPhase picks the phase whose points are aggregated: the requested one, else the
// first aggregating phase of the system, else the classic televote phase.
func revealPhase(system scoreboard.VotingSystemConfig, requested string) (scoreboard.VotingPhase, int, bool) {
	if requested != "" {
		phase, ok := system.Phase(requested)
		return phase, system.PhaseIndex(requested), ok
	}
	for i, p := range system.Phases {
		if p.AggregatePoints {
			return p, i, true
		}
	}
	classic := scoreboard.Classic()
	phase, _ := classic.Phase(scoreboard.PhaseTelevote)
	return phase, classic.PhaseIndex(scoreboard.PhaseTelevote), true
}

// aggregate godoc
// @Summary Aggregate televote points over the loaded rounds
// @Description Sums eligible points per country in round order and returns the reveal order (descending placement).
// @Tags televote
// @Produce json
// @Param system query string false "Voting system id"
// @Param phase query string false "Phase whose points are eligible"
// @Success 200 {object} models.TelevoteResponse
// @Failure 400 {object} models.ErrorResponse "Unknown phase"
// @Failure 404 {object} models.ErrorResponse "No scoreboards loaded"
// @Failure 500 {object} models.ErrorResponse
// @Router /api/televote [get]
func (c *TelevoteController) aggregate(g *gin.Context) {
	system := c.systems.resolve(g)
	phase, _, ok := revealPhase(system, g.Query("phase"))
	if !ok {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "unknown phase " + g.Query("phase")})
		return
	}

	coll, err := c.scoreboards.All(g.Request.Context())
	if err != nil {
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: err.Error()})
		return
	}
	if len(coll) == 0 {
		g.JSON(http.StatusNotFound, &models.ErrorResponse{Error: "no scoreboards loaded"})
		return
	}

	sums := scoreboard.AggregateCollection(coll, phase.PointsToShow)
	g.JSON(http.StatusOK, models.TelevoteResponse{
		System:      string(system.ID),
		Phase:       phase.ID,
		Eligible:    phase.PointsToShow.Values(),
		Sums:        sums,
		RevealOrder: scoreboard.RevealOrder(sums),
	})
}
