package models

import (
	"github.com/alex-pricope/eurovision-scoreboard/scoreboard"
	"github.com/alex-pricope/eurovision-scoreboard/storage"
)

type UploadResponse struct {
	Keys           []string               `json:"keys"`
	Count          int                    `json:"count"`
	Classification storage.Classification `json:"classification"`
}

type ScoreboardListResponse struct {
	Keys           []string               `json:"keys"`
	Classification storage.Classification `json:"classification"`
}

type ScoreboardResponse struct {
	Key     string                            `json:"key"`
	System  string                            `json:"system,omitempty"`
	Phase   string                            `json:"phase,omitempty"`
	Voter   *scoreboard.NormalizedScoreEntry  `json:"voter,omitempty"`
	Entries []scoreboard.NormalizedScoreEntry `json:"entries"`
}

// TransformScoreboard builds the response for a stored scoreboard. When a phase is
// given, points outside the phase are hidden and entries use the phase ordering.
func TransformScoreboard(key string, entries []scoreboard.NormalizedScoreEntry, system *scoreboard.VotingSystemConfig, phase *scoreboard.VotingPhase) ScoreboardResponse {
	res := ScoreboardResponse{Key: key, Entries: entries}
	if voter, ok := scoreboard.VoterEntry(entries); ok {
		res.Voter = &voter
	}
	if system == nil || phase == nil {
		return res
	}

	filtered := make([]scoreboard.NormalizedScoreEntry, 0, len(entries))
	for _, e := range entries {
		filtered = append(filtered, scoreboard.FilterPointsForPhase(e, *phase))
	}
	res.System = string(system.ID)
	res.Phase = phase.ID
	res.Entries = scoreboard.SortEntriesForPhase(filtered, *phase)
	res.Voter = nil
	if voter, ok := scoreboard.VoterEntry(filtered); ok {
		res.Voter = &voter
	}
	return res
}
