package scoreboard

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Sentinel placements marking a non-competing row.
const (
	MarkerVoter    = "voter"
	MarkerRevealed = "revealed"
)

var validate = validator.New()

// RawScoreEntry is one unvalidated record from a scoreboard file. Numeric fields may
// arrive as JSON numbers or numeric strings.
type RawScoreEntry struct {
	Country       string `json:"country" validate:"required"`
	Placement     any    `json:"placement"`
	PointsOverall any    `json:"pointsOverall"`
	PointsGained  any    `json:"pointsGained"`
	IsVoter       any    `json:"isVoter,omitempty"`
}

// Placement is either a rank or one of the marker sentinels.
type Placement struct {
	rank   int
	marker string
}

func Rank(n int) Placement { return Placement{rank: n} }

func Marker(s string) Placement { return Placement{marker: s} }

func (p Placement) IsMarker() bool { return p.marker != "" }

// Rank returns the numeric placement; ok is false for marker rows.
func (p Placement) Rank() (int, bool) {
	if p.IsMarker() {
		return 0, false
	}
	return p.rank, true
}

func (p Placement) String() string {
	if p.IsMarker() {
		return p.marker
	}
	return strconv.Itoa(p.rank)
}

// Value returns the placement as it appears in score files: an int or a sentinel string.
func (p Placement) Value() any {
	if p.IsMarker() {
		return p.marker
	}
	return p.rank
}

func (p Placement) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Value())
}

func (p *Placement) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	parsed, err := parsePlacement(v)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ParsePlacement parses a placement string, keeping marker sentinels intact.
func ParsePlacement(s string) (Placement, error) {
	return parsePlacement(s)
}

// NormalizedScoreEntry is the canonical form of a score record. It is created once at
// load time and never mutated afterwards.
type NormalizedScoreEntry struct {
	Country       string    `json:"country"`
	Placement     Placement `json:"placement"`
	PointsOverall int       `json:"pointsOverall"`
	PointsGained  int       `json:"pointsGained"`
	IsVoter       bool      `json:"isVoter"`
}

// Raw converts the entry back to its file representation.
func (e NormalizedScoreEntry) Raw() RawScoreEntry {
	return RawScoreEntry{
		Country:       e.Country,
		Placement:     e.Placement.Value(),
		PointsOverall: e.PointsOverall,
		PointsGained:  e.PointsGained,
		IsVoter:       e.IsVoter,
	}
}

// Normalize converts a raw record into its canonical form. Placement strings "voter"
// and "revealed" are preserved as markers; every other value must be a base-10 integer.
func Normalize(raw RawScoreEntry) (NormalizedScoreEntry, error) {
	if err := validate.Struct(raw); err != nil {
		return NormalizedScoreEntry{}, &FieldError{Field: "country", Value: raw.Country, Err: ErrMissingCountry}
	}

	placement, err := parsePlacement(raw.Placement)
	if err != nil {
		return NormalizedScoreEntry{}, &FieldError{Field: "placement", Value: raw.Placement, Err: err}
	}
	overall, err := parseInt(raw.PointsOverall)
	if err != nil {
		return NormalizedScoreEntry{}, &FieldError{Field: "pointsOverall", Value: raw.PointsOverall, Err: err}
	}
	gained, err := parseInt(raw.PointsGained)
	if err != nil {
		return NormalizedScoreEntry{}, &FieldError{Field: "pointsGained", Value: raw.PointsGained, Err: err}
	}

	return NormalizedScoreEntry{
		Country:       raw.Country,
		Placement:     placement,
		PointsOverall: overall,
		PointsGained:  gained,
		IsVoter:       parseVoterFlag(raw.IsVoter),
	}, nil
}

// NormalizeAll normalizes a scoreboard record by record, preserving order and length.
func NormalizeAll(raws []RawScoreEntry) ([]NormalizedScoreEntry, error) {
	out := make([]NormalizedScoreEntry, 0, len(raws))
	for i, raw := range raws {
		entry, err := Normalize(raw)
		if err != nil {
			return nil, &RecordError{Index: i, Err: err}
		}
		out = append(out, entry)
	}
	return out, nil
}

// IsMarker reports whether the entry is the non-competing voter/revealed row.
func IsMarker(e NormalizedScoreEntry) bool {
	return e.Placement.IsMarker()
}

// CompetingEntries drops marker rows.
func CompetingEntries(entries []NormalizedScoreEntry) []NormalizedScoreEntry {
	out := make([]NormalizedScoreEntry, 0, len(entries))
	for _, e := range entries {
		if !IsMarker(e) {
			out = append(out, e)
		}
	}
	return out
}

// VoterEntry returns the first row flagged as the voter.
func VoterEntry(entries []NormalizedScoreEntry) (NormalizedScoreEntry, bool) {
	for _, e := range entries {
		if e.IsVoter {
			return e, true
		}
	}
	return NormalizedScoreEntry{}, false
}

// ValidateScoreboard enforces that a scoreboard holds at most one marker row.
func ValidateScoreboard(entries []NormalizedScoreEntry) error {
	markers := 0
	for _, e := range entries {
		if IsMarker(e) {
			markers++
		}
	}
	if markers > 1 {
		return fmt.Errorf("%w: found %d", ErrMultipleMarkers, markers)
	}
	return nil
}

func parsePlacement(v any) (Placement, error) {
	if s, ok := v.(string); ok && (s == MarkerVoter || s == MarkerRevealed) {
		return Marker(s), nil
	}
	n, err := parseInt(v)
	if err != nil {
		return Placement{}, err
	}
	return Rank(n), nil
}

func parseInt(v any) (int, error) {
	switch val := v.(type) {
	case int:
		return val, nil
	case int64:
		return int(val), nil
	case float64:
		return integralFloat(val)
	case json.Number:
		if n, err := val.Int64(); err == nil {
			return int(n), nil
		}
		f, err := val.Float64()
		if err != nil {
			return 0, ErrInvalidNumber
		}
		return integralFloat(f)
	case string:
		return parseIntString(val)
	default:
		return 0, ErrInvalidType
	}
}

// integralFloat accepts numbers such as 24.0 or 1e1 that hold a whole value.
func integralFloat(f float64) (int, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, ErrInvalidNumber
	}
	return int(f), nil
}

func parseIntString(s string) (int, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 0)
	if err != nil {
		return 0, ErrInvalidNumber
	}
	return int(n), nil
}

func parseVoterFlag(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		return val == "1"
	case int:
		return val == 1
	case int64:
		return val == 1
	case float64:
		return val == 1
	case json.Number:
		f, err := val.Float64()
		return err == nil && f == 1
	default:
		return false
	}
}
