package controllers

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/alex-pricope/eurovision-scoreboard/api/models"
	"github.com/alex-pricope/eurovision-scoreboard/api/transport"
	"github.com/alex-pricope/eurovision-scoreboard/logging"
	"github.com/alex-pricope/eurovision-scoreboard/scoreboard"
	"github.com/alex-pricope/eurovision-scoreboard/storage"
	"github.com/gin-gonic/gin"
)

const maxUploadBytes = 32 << 20

type ScoreboardController struct {
	scoreboards storage.ScoreboardStorage
	systems     systemResolver
}

func NewScoreboardController(s storage.ScoreboardStorage, settings storage.SettingsStorage, defaultSystem string) *ScoreboardController {
	return &ScoreboardController{
		scoreboards: s,
		systems:     systemResolver{settings: settings, fallback: defaultSystem},
	}
}

func (c *ScoreboardController) RegisterRoutes(engine *gin.Engine) {
	admin := engine.Group("/api/admin", transport.AdminAuthMiddleware())
	admin.POST("/scoreboards/combined", c.uploadCombined)
	admin.POST("/scoreboards/files", c.uploadFiles)
	admin.DELETE("/scoreboards", c.clear)

	group := engine.Group("/api")
	group.GET("/scoreboards", c.list)
	group.GET("/scoreboards/:key", c.get)
}

// @Security AdminToken
// uploadCombined godoc
// @Summary Replace the loaded scoreboards with a combined JSON file
// @Description Top-level keys holding arrays become scoreboards; nested objects become {outer}_{inner} keys. Invalid scoreboards are skipped.
// @Tags scoreboards
// @Accept json
// @Produce json
// @Success 200 {object} models.UploadResponse
// @Failure 400 {object} models.ErrorResponse "Body is not a JSON object"
// @Failure 422 {object} models.ErrorResponse "No valid scoreboards found"
// @Failure 500 {object} models.ErrorResponse
// @Router /api/admin/scoreboards/combined [post]
func (c *ScoreboardController) uploadCombined(g *gin.Context) {
	data, err := io.ReadAll(io.LimitReader(g.Request.Body, maxUploadBytes))
	if err != nil {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "could not read request body"})
		return
	}

	coll, err := scoreboard.ParseCombined(data)
	if err != nil {
		logging.Log.Warnf("SCOREBOARD: combined upload rejected: %v", err)
		status := http.StatusBadRequest
		if errors.Is(err, scoreboard.ErrNoValidScoreboards) {
			status = http.StatusUnprocessableEntity
		}
		g.JSON(status, &models.ErrorResponse{Error: err.Error()})
		return
	}
	c.store(g, coll)
}

// @Security AdminToken
// uploadFiles godoc
// @Summary Replace the loaded scoreboards with one file per scoreboard
// @Description Every file must parse; one bad file rejects the whole batch. The key is the file name without extension.
// @Tags scoreboards
// @Accept multipart/form-data
// @Produce json
// @Param files formData file true "JSON or CSV scoreboard files"
// @Success 200 {object} models.UploadResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/admin/scoreboards/files [post]
func (c *ScoreboardController) uploadFiles(g *gin.Context) {
	form, err := g.MultipartForm()
	if err != nil {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "expected multipart form with files"})
		return
	}

	headers := append(form.File["files"], form.File["files[]"]...)
	if len(headers) == 0 {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "no files uploaded"})
		return
	}

	files := make([]scoreboard.File, 0, len(headers))
	for _, h := range headers {
		data, err := readFormFile(h)
		if err != nil {
			logging.Log.Errorf("SCOREBOARD: failed to read upload %s: %v", h.Filename, err)
			g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "could not read " + h.Filename})
			return
		}
		files = append(files, scoreboard.File{Name: h.Filename, Data: data})
	}

	coll, err := scoreboard.ParseMultiple(files)
	if err != nil {
		logging.Log.Warnf("SCOREBOARD: file upload rejected: %v", err)
		g.JSON(http.StatusUnprocessableEntity, &models.ErrorResponse{Error: err.Error()})
		return
	}
	c.store(g, coll)
}

func (c *ScoreboardController) store(g *gin.Context, coll scoreboard.Collection) {
	if err := c.scoreboards.SetAll(g.Request.Context(), coll); err != nil {
		logging.Log.Errorf("SCOREBOARD: failed to store collection: %v", err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not store scoreboards"})
		return
	}

	classification, err := storage.Classify(g.Request.Context(), c.scoreboards)
	if err != nil {
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: err.Error()})
		return
	}
	keys := coll.Keys("")
	logging.Log.Infof("SCOREBOARD: loaded %d scoreboards", len(keys))
	g.JSON(http.StatusOK, models.UploadResponse{Keys: keys, Count: len(keys), Classification: classification})
}

// @Security AdminToken
// clear godoc
// @Summary Remove every loaded scoreboard
// @Tags scoreboards
// @Produce json
// @Success 200 {object} models.MessageResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/admin/scoreboards [delete]
func (c *ScoreboardController) clear(g *gin.Context) {
	if err := c.scoreboards.Clear(g.Request.Context()); err != nil {
		logging.Log.Errorf("SCOREBOARD: failed to clear: %v", err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: err.Error()})
		return
	}
	g.JSON(http.StatusOK, models.MessageResponse{Message: "All scoreboards cleared"})
}

// list godoc
// @Summary List loaded scoreboard keys
// @Tags scoreboards
// @Produce json
// @Param prefix query string false "Only keys starting with this prefix"
// @Success 200 {object} models.ScoreboardListResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/scoreboards [get]
func (c *ScoreboardController) list(g *gin.Context) {
	keys, err := c.scoreboards.Keys(g.Request.Context(), g.Query("prefix"))
	if err != nil {
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: err.Error()})
		return
	}
	classification, err := storage.Classify(g.Request.Context(), c.scoreboards)
	if err != nil {
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: err.Error()})
		return
	}
	if keys == nil {
		keys = []string{}
	}
	g.JSON(http.StatusOK, models.ScoreboardListResponse{Keys: keys, Classification: classification})
}

// get godoc
// @Summary Get one scoreboard
// @Description With a phase, points outside the phase are hidden and entries are ordered for that phase.
// @Tags scoreboards
// @Produce json
// @Param key path string true "Scoreboard key"
// @Param phase query string false "Voting phase id"
// @Param system query string false "Voting system id"
// @Success 200 {object} models.ScoreboardResponse
// @Failure 400 {object} models.ErrorResponse "Unknown phase"
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/scoreboards/{key} [get]
func (c *ScoreboardController) get(g *gin.Context) {
	key := g.Param("key")
	entries, err := c.scoreboards.Get(g.Request.Context(), key)
	if err != nil {
		if errors.Is(err, storage.ErrScoreboardNotFound) {
			g.JSON(http.StatusNotFound, &models.ErrorResponse{Error: "scoreboard not found"})
			return
		}
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: err.Error()})
		return
	}

	phaseID := g.Query("phase")
	if phaseID == "" {
		g.JSON(http.StatusOK, models.TransformScoreboard(key, entries, nil, nil))
		return
	}

	system := c.systems.resolve(g)
	phase, ok := system.Phase(phaseID)
	if !ok {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "unknown phase " + phaseID + " for voting system " + string(system.ID)})
		return
	}
	g.JSON(http.StatusOK, models.TransformScoreboard(key, entries, &system, &phase))
}

func readFormFile(h *multipart.FileHeader) ([]byte, error) {
	f, err := h.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
