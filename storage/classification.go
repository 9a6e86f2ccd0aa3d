package storage

import (
	"context"

	"github.com/alex-pricope/eurovision-scoreboard/scoreboard"
)

// Classification describes what kind of data the stored collection holds.
// It is recomputed on every call and never cached.
type Classification struct {
	HasJuryData     bool `json:"hasJuryData"`
	HasTelevoteData bool `json:"hasTelevoteData"`
	HasModernData   bool `json:"hasModernData"`
	Total           int  `json:"total"`
}

func Classify(ctx context.Context, store ScoreboardStorage) (Classification, error) {
	keys, err := store.Keys(ctx, "")
	if err != nil {
		return Classification{}, err
	}

	coll := make(scoreboard.Collection, len(keys))
	for _, k := range keys {
		coll[k] = nil
	}
	return Classification{
		HasJuryData:     coll.HasJuryData(),
		HasTelevoteData: coll.HasTelevoteData(),
		HasModernData:   coll.HasModernData(),
		Total:           len(keys),
	}, nil
}
