package controllers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/alex-pricope/eurovision-scoreboard/api/models"
	"github.com/alex-pricope/eurovision-scoreboard/api/transport"
	"github.com/alex-pricope/eurovision-scoreboard/export"
	"github.com/alex-pricope/eurovision-scoreboard/logging"
	"github.com/alex-pricope/eurovision-scoreboard/scoreboard"
	"github.com/alex-pricope/eurovision-scoreboard/storage"
	"github.com/gin-gonic/gin"
)

type ExportController struct {
	scoreboards storage.ScoreboardStorage
	renderer    export.Renderer
	systems     systemResolver
}

func NewExportController(s storage.ScoreboardStorage, settings storage.SettingsStorage, renderer export.Renderer, defaultSystem string) *ExportController {
	return &ExportController{
		scoreboards: s,
		renderer:    renderer,
		systems:     systemResolver{settings: settings, fallback: defaultSystem},
	}
}

func (c *ExportController) RegisterRoutes(engine *gin.Engine) {
	group := engine.Group("/api/export")
	group.GET("/plan", c.plan)
	group.GET("/televote-plan", c.televotePlan)

	admin := engine.Group("/api/admin", transport.AdminAuthMiddleware())
	admin.POST("/export", c.run)
}

// plan godoc
// @Summary Ordered export plan for the loaded scoreboards
// @Tags export
// @Produce json
// @Param system query string false "Voting system id"
// @Success 200 {object} models.ExportPlanResponse
// @Failure 409 {object} models.ErrorResponse "Duplicate filenames"
// @Failure 422 {object} models.ErrorResponse "Nothing to export"
// @Failure 500 {object} models.ErrorResponse
// @Router /api/export/plan [get]
func (c *ExportController) plan(g *gin.Context) {
	system, units, ok := c.buildPlan(g)
	if !ok {
		return
	}
	g.JSON(http.StatusOK, models.ExportPlanResponse{System: string(system.ID), Total: len(units), Units: units})
}

// televotePlan godoc
// @Summary Interactive televote reveal plan
// @Description One step per country in descending placement order.
// @Tags export
// @Produce json
// @Param system query string false "Voting system id"
// @Param phase query string false "Aggregated phase id"
// @Success 200 {object} models.ExportPlanResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/export/televote-plan [get]
func (c *ExportController) televotePlan(g *gin.Context) {
	system := c.systems.resolve(g)
	phase, phaseIndex, ok := revealPhase(system, g.Query("phase"))
	if !ok {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "unknown phase " + g.Query("phase")})
		return
	}

	coll, err := c.scoreboards.All(g.Request.Context())
	if err != nil {
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: err.Error()})
		return
	}

	order := scoreboard.RevealOrder(scoreboard.AggregateCollection(coll, phase.PointsToShow))
	units := export.PlanTelevoteReveal(phaseIndex, order)
	g.JSON(http.StatusOK, models.ExportPlanResponse{System: string(system.ID), Total: len(units), Units: units})
}

// @Security AdminToken
// run godoc
// @Summary Render every planned scoreboard and download them as a zip
// @Description Frames are captured one at a time. The first failed capture aborts the export.
// @Tags export
// @Produce application/zip
// @Param system query string false "Voting system id"
// @Success 200 {file} file
// @Failure 409 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse "Render service failed"
// @Router /api/admin/export [post]
func (c *ExportController) run(g *gin.Context) {
	_, units, ok := c.buildPlan(g)
	if !ok {
		return
	}

	var buf bytes.Buffer
	runner := &export.Runner{OnProgress: func(p export.Progress) {
		logging.Log.Debugf("EXPORT: job %s %s %d/%d %s", p.JobID, p.Status, p.Current, p.Total, p.Filename)
	}}
	result, err := runner.Run(g.Request.Context(), units, c.renderer, export.NewZipSink(&buf))
	if err != nil {
		g.JSON(http.StatusBadGateway, &models.ErrorResponse{Error: err.Error()})
		return
	}

	name := fmt.Sprintf("scoreboards_%s.zip", time.Now().UTC().Format("2006-01-02T15-04-05"))
	g.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	g.Header("X-Export-Job", result.JobID)
	g.Data(http.StatusOK, "application/zip", buf.Bytes())
}

func (c *ExportController) buildPlan(g *gin.Context) (scoreboard.VotingSystemConfig, []export.Unit, bool) {
	system := c.systems.resolve(g)
	coll, err := c.scoreboards.All(g.Request.Context())
	if err != nil {
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: err.Error()})
		return system, nil, false
	}

	units, err := export.PlanCollection(system, coll)
	switch {
	case errors.Is(err, export.ErrNothingToExport):
		g.JSON(http.StatusUnprocessableEntity, &models.ErrorResponse{Error: err.Error()})
		return system, nil, false
	case errors.Is(err, export.ErrDuplicateFilename):
		g.JSON(http.StatusConflict, &models.ErrorResponse{Error: err.Error()})
		return system, nil, false
	case err != nil:
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: err.Error()})
		return system, nil, false
	}
	return system, units, true
}
