package controllers

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/alex-pricope/eurovision-scoreboard/api/models"
	"github.com/alex-pricope/eurovision-scoreboard/export"
	"github.com/alex-pricope/eurovision-scoreboard/scoreboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	testutils "github.com/alex-pricope/eurovision-scoreboard/api/controllers/testing"
)

func classicCollection() scoreboard.Collection {
	return scoreboard.Collection{
		"jury_2":     {rank("Sweden", 1, 7)},
		"jury_1":     {rank("Sweden", 1, 5)},
		"televote_1": {rank("Sweden", 2, 4), rank("North Macedonia", 1, 12)},
		"televote_2": {rank("Sweden", 1, 12), rank("North Macedonia", 2, 2)},
	}
}

func TestTelevote(t *testing.T) {
	env := setupTestRouter(t, nil)

	t.Run("Unhappy path - nothing loaded", func(t *testing.T) {
		w := testutils.PerformRequest(env.router, http.MethodGet, "/api/televote?system=classic", nil, nil)

		require.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Happy path - sums and reveal order", func(t *testing.T) {
		env.load(t, classicCollection())
		w := testutils.PerformRequest(env.router, http.MethodGet, "/api/televote?system=classic", nil, nil)

		require.Equal(t, http.StatusOK, w.Code)
		var res models.TelevoteResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.Equal(t, "televote", res.Phase)
		assert.Equal(t, []scoreboard.CountryTelevoteSum{
			{Country: "Sweden", TelevoteSum: 16, Placement: 1},
			{Country: "North Macedonia", TelevoteSum: 14, Placement: 2},
		}, res.Sums)
		assert.Equal(t, []string{"North Macedonia", "Sweden"}, res.RevealOrder)
	})

	t.Run("Unhappy path - unknown phase", func(t *testing.T) {
		w := testutils.PerformRequest(env.router, http.MethodGet, "/api/televote?system=classic&phase=semi", nil, nil)

		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestExportPlan(t *testing.T) {
	env := setupTestRouter(t, nil)

	t.Run("Unhappy path - nothing to export", func(t *testing.T) {
		w := testutils.PerformRequest(env.router, http.MethodGet, "/api/export/plan?system=classic", nil, nil)

		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("Happy path - classic order by round index", func(t *testing.T) {
		env.load(t, classicCollection())
		w := testutils.PerformRequest(env.router, http.MethodGet, "/api/export/plan?system=classic", nil, nil)

		require.Equal(t, http.StatusOK, w.Code)
		var res models.ExportPlanResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		require.Equal(t, 4, res.Total)
		assert.Equal(t, "phase1_jury_scoreboard1.png", res.Units[0].Filename)
		assert.Equal(t, "phase2_televote_scoreboard2.png", res.Units[3].Filename)
	})

	t.Run("Happy path - televote reveal plan", func(t *testing.T) {
		w := testutils.PerformRequest(env.router, http.MethodGet, "/api/export/televote-plan?system=classic", nil, nil)

		require.Equal(t, http.StatusOK, w.Code)
		var res models.ExportPlanResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		require.Equal(t, 2, res.Total)
		assert.Equal(t, "phase2_televote_1_North_Macedonia.png", res.Units[0].Filename)
		assert.Equal(t, "phase2_televote_2_Sweden.png", res.Units[1].Filename)
	})

	t.Run("Unhappy path - colliding keys", func(t *testing.T) {
		env.load(t, scoreboard.Collection{"7": nil, "007": nil})
		w := testutils.PerformRequest(env.router, http.MethodGet, "/api/export/plan?system=modern", nil, nil)

		require.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestExportRun(t *testing.T) {
	t.Run("Happy path - zip holds one frame per unit", func(t *testing.T) {
		env := setupTestRouter(t, nil)
		env.load(t, classicCollection())

		w := testutils.PerformRequest(env.router, http.MethodPost, "/api/admin/export?system=classic", nil, testutils.AdminHeaders())

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "application/zip", w.Header().Get("Content-Type"))
		assert.NotEmpty(t, w.Header().Get("X-Export-Job"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), "scoreboards_")

		zr, err := zip.NewReader(bytes.NewReader(w.Body.Bytes()), int64(w.Body.Len()))
		require.NoError(t, err)
		names := make([]string, 0, len(zr.File))
		for _, f := range zr.File {
			names = append(names, f.Name)
		}
		assert.Equal(t, env.rendered, names)
		assert.Equal(t, []string{
			"phase1_jury_scoreboard1.png",
			"phase1_jury_scoreboard2.png",
			"phase2_televote_scoreboard1.png",
			"phase2_televote_scoreboard2.png",
		}, names)
	})

	t.Run("Unhappy path - a failed capture aborts the export", func(t *testing.T) {
		calls := 0
		env := setupTestRouter(t, export.RendererFunc(func(_ context.Context, u export.Unit) ([]byte, error) {
			calls++
			return nil, export.ErrRenderFailed
		}))
		env.load(t, classicCollection())

		w := testutils.PerformRequest(env.router, http.MethodPost, "/api/admin/export?system=classic", nil, testutils.AdminHeaders())

		require.Equal(t, http.StatusBadGateway, w.Code)
		assert.Equal(t, 1, calls)
		assert.NotEqual(t, "application/zip", w.Header().Get("Content-Type"))
	})

	t.Run("Unhappy path - missing admin token", func(t *testing.T) {
		env := setupTestRouter(t, nil)

		w := testutils.PerformRequest(env.router, http.MethodPost, "/api/admin/export", nil, nil)

		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
