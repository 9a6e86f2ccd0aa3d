package storage

import (
	"time"

	"github.com/alex-pricope/eurovision-scoreboard/scoreboard"
)

type ScoreboardItem struct {
	Key       string      `dynamodbav:"PK"`
	Entries   []EntryItem `dynamodbav:"Entries"`
	UpdatedAt time.Time   `dynamodbav:"UpdatedAt"`
}

type EntryItem struct {
	Country       string `dynamodbav:"Country"`
	Placement     string `dynamodbav:"Placement"`
	PointsOverall int    `dynamodbav:"PointsOverall"`
	PointsGained  int    `dynamodbav:"PointsGained"`
	IsVoter       bool   `dynamodbav:"IsVoter"`
}

// Settings are the presentation choices persisted between sessions.
type Settings struct {
	ID             string    `dynamodbav:"PK" json:"-"`
	VotingSystem   string    `dynamodbav:"VotingSystem" json:"votingSystem"`
	Theme          string    `dynamodbav:"Theme" json:"theme"`
	ShowVoterPanel bool      `dynamodbav:"ShowVoterPanel" json:"showVoterPanel"`
	PanelPosition  string    `dynamodbav:"PanelPosition" json:"panelPosition"`
	Variant        string    `dynamodbav:"Variant" json:"variant"`
	ShowFlags      bool      `dynamodbav:"ShowFlags" json:"showFlags"`
	UpdatedAt      time.Time `dynamodbav:"UpdatedAt" json:"updatedAt"`
}

func TransformScoreboardToItem(key string, entries []scoreboard.NormalizedScoreEntry) *ScoreboardItem {
	items := make([]EntryItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, EntryItem{
			Country:       e.Country,
			Placement:     e.Placement.String(),
			PointsOverall: e.PointsOverall,
			PointsGained:  e.PointsGained,
			IsVoter:       e.IsVoter,
		})
	}
	return &ScoreboardItem{Key: key, Entries: items, UpdatedAt: time.Now().UTC()}
}

func TransformScoreboardFromItem(item *ScoreboardItem) ([]scoreboard.NormalizedScoreEntry, error) {
	entries := make([]scoreboard.NormalizedScoreEntry, 0, len(item.Entries))
	for _, e := range item.Entries {
		placement, err := scoreboard.ParsePlacement(e.Placement)
		if err != nil {
			return nil, err
		}
		entries = append(entries, scoreboard.NormalizedScoreEntry{
			Country:       e.Country,
			Placement:     placement,
			PointsOverall: e.PointsOverall,
			PointsGained:  e.PointsGained,
			IsVoter:       e.IsVoter,
		})
	}
	return entries, nil
}
