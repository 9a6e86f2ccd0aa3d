package controllers

import (
	"errors"
	"net/http"

	"github.com/alex-pricope/eurovision-scoreboard/api/models"
	"github.com/alex-pricope/eurovision-scoreboard/api/transport"
	"github.com/alex-pricope/eurovision-scoreboard/logging"
	"github.com/alex-pricope/eurovision-scoreboard/storage"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type SettingsController struct {
	settings storage.SettingsStorage
	defaults storage.Settings
}

func NewSettingsController(s storage.SettingsStorage, defaults storage.Settings) *SettingsController {
	return &SettingsController{settings: s, defaults: defaults}
}

func (c *SettingsController) RegisterRoutes(engine *gin.Engine) {
	engine.GET("/api/settings", c.get)

	admin := engine.Group("/api/admin", transport.AdminAuthMiddleware())
	admin.PUT("/settings", c.put)
}

// get godoc
// @Summary Get the saved presentation settings
// @Description Returns the configured defaults when nothing has been saved.
// @Tags settings
// @Produce json
// @Success 200 {object} models.SettingsResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/settings [get]
func (c *SettingsController) get(g *gin.Context) {
	s, err := c.settings.Get(g.Request.Context())
	if errors.Is(err, storage.ErrSettingsNotFound) {
		defaults := c.defaults
		g.JSON(http.StatusOK, models.TransformSettingsFromStorage(&defaults))
		return
	}
	if err != nil {
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: err.Error()})
		return
	}
	g.JSON(http.StatusOK, models.TransformSettingsFromStorage(s))
}

// @Security AdminToken
// put godoc
// @Summary Save presentation settings
// @Tags settings
// @Accept json
// @Produce json
// @Param request body models.SettingsRequest true "Settings"
// @Success 200 {object} models.SettingsResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/admin/settings [put]
func (c *SettingsController) put(g *gin.Context) {
	var req models.SettingsRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid request format"})
		return
	}
	if err := validate.Struct(req); err != nil {
		logging.Log.Warnf("SETTINGS: rejected update: %v", err)
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: err.Error()})
		return
	}

	s := models.TransformSettingsToStorage(req, c.defaults.Theme)
	if err := c.settings.Put(g.Request.Context(), s); err != nil {
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not save settings"})
		return
	}

	saved, err := c.settings.Get(g.Request.Context())
	if err != nil {
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: err.Error()})
		return
	}
	g.JSON(http.StatusOK, models.TransformSettingsFromStorage(saved))
}
