package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alex-pricope/eurovision-scoreboard/logging"
	"github.com/alex-pricope/eurovision-scoreboard/scoreboard"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRound(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func TestFSRoundStorage(t *testing.T) {
	logging.Log = logrus.New()
	dir := t.TempDir()
	writeRound(t, dir, "scoreboard1.json", `[{"country": "Sweden", "placement": "2", "pointsOverall": "4", "pointsGained": "4"}]`)
	writeRound(t, dir, "scoreboard2.json", `[{"country": "Sweden", "placement": 1, "pointsOverall": 16, "pointsGained": 12}]`)
	writeRound(t, dir, "scoreboard4.json", `[{"country": "Sweden", "placement": "one"}]`)

	s := NewFSRoundStorage(dir, "")

	t.Run("Happy path - loads a round", func(t *testing.T) {
		entries, err := s.LoadRound(context.Background(), 2)

		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, 12, entries[0].PointsGained)
	})

	t.Run("Unhappy path - missing round", func(t *testing.T) {
		_, err := s.LoadRound(context.Background(), 3)

		assert.ErrorIs(t, err, scoreboard.ErrRoundNotFound)
	})

	t.Run("Unhappy path - invalid round", func(t *testing.T) {
		_, err := s.LoadRound(context.Background(), 4)

		require.Error(t, err)
		assert.NotErrorIs(t, err, scoreboard.ErrRoundNotFound)
	})

	t.Run("Count stops at the first gap", func(t *testing.T) {
		assert.Equal(t, 2, s.Count())
	})

	t.Run("Happy path - aggregation skips missing and invalid rounds", func(t *testing.T) {
		sums, err := scoreboard.AggregateFromSource(context.Background(), s, 5, scoreboard.TelevotePoints)

		require.NoError(t, err)
		assert.Equal(t, []scoreboard.CountryTelevoteSum{{Country: "Sweden", TelevoteSum: 16, Placement: 1}}, sums)
	})
}
