package scoreboard

import (
	"slices"
	"sort"
)

type SystemID string

const (
	SystemModern  SystemID = "modern"
	SystemClassic SystemID = "classic"
)

const (
	PhaseMain     = "main"
	PhaseJury     = "jury"
	PhaseTelevote = "televote"
)

// OrderBy controls how a phase sorts its rows.
type OrderBy string

const (
	OrderVoter         OrderBy = "voter"
	OrderPlacementAsc  OrderBy = "placement-asc"
	OrderPlacementDesc OrderBy = "placement-desc"
)

// PointSet is an immutable set of point values.
type PointSet struct {
	values []int
}

func NewPointSet(values ...int) PointSet {
	v := slices.Clone(values)
	slices.Sort(v)
	return PointSet{values: slices.Compact(v)}
}

func (p PointSet) Contains(points int) bool {
	_, found := slices.BinarySearch(p.values, points)
	return found
}

// Values returns the points in ascending order.
func (p PointSet) Values() []int {
	return slices.Clone(p.values)
}

func (p PointSet) Len() int { return len(p.values) }

var (
	JuryPoints     = NewPointSet(1, 3, 5, 7)
	TelevotePoints = NewPointSet(2, 4, 6, 8, 10, 12)
	AllPoints      = NewPointSet(1, 2, 3, 4, 5, 6, 7, 8, 10, 12)
)

type VotingPhase struct {
	ID              string
	Name            string
	FilePrefix      string
	PointsToShow    PointSet
	OrderBy         OrderBy
	AggregatePoints bool
}

type VotingSystemConfig struct {
	ID          SystemID
	Name        string
	Description string
	Phases      []VotingPhase
}

// Phase looks up a phase by id.
func (c VotingSystemConfig) Phase(id string) (VotingPhase, bool) {
	i := c.PhaseIndex(id)
	if i < 0 {
		return VotingPhase{}, false
	}
	return c.Phases[i], true
}

// PhaseIndex returns the zero-based position of the phase, or -1.
func (c VotingSystemConfig) PhaseIndex(id string) int {
	for i, p := range c.Phases {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func Modern() VotingSystemConfig {
	return VotingSystemConfig{
		ID:          SystemModern,
		Name:        "Modern Eurovision",
		Description: "Each country reveals all points (1-12)",
		Phases: []VotingPhase{
			{
				ID:           PhaseMain,
				Name:         "Voting",
				FilePrefix:   "scoreboard",
				PointsToShow: AllPoints,
				OrderBy:      OrderVoter,
			},
		},
	}
}

// Classic is the two phase format. Jury always precedes televote.
func Classic() VotingSystemConfig {
	return VotingSystemConfig{
		ID:          SystemClassic,
		Name:        "Classic Eurovision",
		Description: "Jury points (1, 3, 5, 7), then televote reveal (bottom to top)",
		Phases: []VotingPhase{
			{
				ID:           PhaseJury,
				Name:         "Jury Vote",
				FilePrefix:   "jury_",
				PointsToShow: JuryPoints,
				OrderBy:      OrderVoter,
			},
			{
				ID:              PhaseTelevote,
				Name:            "Televote Reveal",
				FilePrefix:      "televote_",
				PointsToShow:    TelevotePoints,
				OrderBy:         OrderPlacementDesc,
				AggregatePoints: true,
			},
		},
	}
}

func VotingSystems() []VotingSystemConfig {
	return []VotingSystemConfig{Modern(), Classic()}
}

// VotingSystemByID never fails: unknown ids resolve to the modern system.
func VotingSystemByID(id string) VotingSystemConfig {
	for _, s := range VotingSystems() {
		if string(s.ID) == id {
			return s
		}
	}
	return Modern()
}

// FilterPointsForPhase zeroes points that are not live in the phase.
func FilterPointsForPhase(entry NormalizedScoreEntry, phase VotingPhase) NormalizedScoreEntry {
	if !phase.PointsToShow.Contains(entry.PointsGained) {
		entry.PointsGained = 0
	}
	return entry
}

// SortEntriesForPhase returns a sorted copy. Marker rows have no rank and are kept
// after the ranked rows in their original relative order.
func SortEntriesForPhase(entries []NormalizedScoreEntry, phase VotingPhase) []NormalizedScoreEntry {
	sorted := slices.Clone(entries)
	var less func(a, b int) bool
	switch phase.OrderBy {
	case OrderPlacementAsc:
		less = func(a, b int) bool { return a < b }
	case OrderPlacementDesc:
		less = func(a, b int) bool { return a > b }
	default:
		return sorted
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		ri, okI := sorted[i].Placement.Rank()
		rj, okJ := sorted[j].Placement.Rank()
		if okI != okJ {
			return okI
		}
		if !okI {
			return false
		}
		return less(ri, rj)
	})
	return sorted
}
