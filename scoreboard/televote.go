package scoreboard

import (
	"context"
	"errors"
	"sort"

	"github.com/alex-pricope/eurovision-scoreboard/logging"
	"github.com/alex-pricope/eurovision-scoreboard/metrics"
)

// ErrRoundNotFound is returned by a RoundSource when a round has no data.
var ErrRoundNotFound = errors.New("round not found")

// Round is one scoreboard snapshot tagged with its position in the voting sequence.
type Round struct {
	Index   int
	Entries []NormalizedScoreEntry
}

// CountryTelevoteSum is a country's running total across rounds together with the
// placement it held in the most recently seen round.
type CountryTelevoteSum struct {
	Country     string `json:"country"`
	TelevoteSum int    `json:"televoteSum"`
	Placement   int    `json:"placement"`
}

// RoundSource loads a single round by its 1-based index.
type RoundSource interface {
	LoadRound(ctx context.Context, index int) ([]NormalizedScoreEntry, error)
}

// Aggregate sums eligible points per country over rounds in ascending index order.
// Placement is last-write-wins. Marker rows do not compete and are ignored.
func Aggregate(rounds []Round, eligible PointSet) []CountryTelevoteSum {
	ordered := make([]Round, len(rounds))
	copy(ordered, rounds)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Index < ordered[j].Index
	})

	acc := newTelevoteAccumulator()
	for _, r := range ordered {
		acc.add(r.Entries, eligible)
	}
	return acc.result()
}

// RevealOrder lists countries by descending placement. Ties keep their input order.
func RevealOrder(sums []CountryTelevoteSum) []string {
	sorted := make([]CountryTelevoteSum, len(sums))
	copy(sorted, sums)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Placement > sorted[j].Placement
	})

	order := make([]string, 0, len(sorted))
	for _, s := range sorted {
		order = append(order, s.Country)
	}
	return order
}

// AggregateFromSource loads rounds 1..total one at a time. A round that is missing or
// fails to load is logged and skipped. The context is checked before each round.
func AggregateFromSource(ctx context.Context, src RoundSource, total int, eligible PointSet) ([]CountryTelevoteSum, error) {
	acc := newTelevoteAccumulator()
	for i := 1; i <= total; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		entries, err := src.LoadRound(ctx, i)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, err
			}
			reason := "invalid"
			if errors.Is(err, ErrRoundNotFound) {
				reason = "missing"
			}
			logging.Log.Warnf("TELEVOTE: skipping round %d (%s): %v", i, reason, err)
			metrics.RecordRoundSkipped(reason)
			continue
		}
		acc.add(entries, eligible)
	}
	return acc.result(), nil
}

// AggregateCollection aggregates the rounds of a loaded collection. Classic televote
// rounds are used when present, otherwise modern rounds.
func AggregateCollection(coll Collection, eligible PointSet) []CountryTelevoteSum {
	ids := coll.Rounds(KindClassic, PhaseTelevote)
	if len(ids) == 0 {
		ids = coll.Rounds(KindModern, "")
	}

	rounds := make([]Round, 0, len(ids))
	for _, id := range ids {
		rounds = append(rounds, Round{Index: id.Round, Entries: coll[id.Key()]})
	}
	return Aggregate(rounds, eligible)
}

type televoteAccumulator struct {
	order      []string
	sums       map[string]int
	placements map[string]int
}

func newTelevoteAccumulator() *televoteAccumulator {
	return &televoteAccumulator{
		sums:       make(map[string]int),
		placements: make(map[string]int),
	}
}

func (a *televoteAccumulator) add(entries []NormalizedScoreEntry, eligible PointSet) {
	for _, e := range entries {
		rank, ok := e.Placement.Rank()
		if !ok {
			continue
		}
		if _, seen := a.sums[e.Country]; !seen {
			a.order = append(a.order, e.Country)
			a.sums[e.Country] = 0
		}
		if eligible.Contains(e.PointsGained) {
			a.sums[e.Country] += e.PointsGained
		}
		a.placements[e.Country] = rank
	}
}

func (a *televoteAccumulator) result() []CountryTelevoteSum {
	out := make([]CountryTelevoteSum, 0, len(a.order))
	for _, country := range a.order {
		out = append(out, CountryTelevoteSum{
			Country:     country,
			TelevoteSum: a.sums[country],
			Placement:   a.placements[country],
		})
	}
	return out
}
