package export

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"

	"github.com/alex-pricope/eurovision-scoreboard/scoreboard"
)

// RenderTarget identifies one frame the renderer has to produce.
type RenderTarget struct {
	Path       string `json:"path"`
	Key        string `json:"key,omitempty"`
	Phase      string `json:"phase"`
	PhaseIndex int    `json:"phaseIndex"`
	Country    string `json:"country,omitempty"`
	Step       int    `json:"step"`
}

// URL resolves the target against the scoreboard server and appends the layout flags.
func (t RenderTarget) URL(serverURL string, layout LayoutSettings) string {
	u, err := url.Parse(serverURL + t.Path)
	if err != nil {
		return serverURL + t.Path
	}
	q := u.Query()
	for k, v := range layout.QueryParams() {
		q[k] = v
	}
	u.RawQuery = q.Encode()
	return u.String()
}

type Unit struct {
	Target   RenderTarget `json:"target"`
	Filename string       `json:"filename"`
}

// DirectoryPlanOptions bound the numbered rounds exported from a scoreboards directory.
type DirectoryPlanOptions struct {
	ScreenshotCount int
	RangeStart      int
	RangeEnd        int
}

var (
	whitespace = regexp.MustCompile(`\s+`)
	nonWord    = regexp.MustCompile(`[^a-zA-Z0-9_]`)
)

// SanitizeCountry turns a country name into a filename-safe token.
func SanitizeCountry(name string) string {
	return nonWord.ReplaceAllString(whitespace.ReplaceAllString(name, "_"), "")
}

// PlanCollection orders the loaded collection for bulk export. Single phase systems
// export numeric keys ascending; multi phase systems export each phase's rounds in
// phase order, rounds ascending within a phase.
func PlanCollection(system scoreboard.VotingSystemConfig, coll scoreboard.Collection) ([]Unit, error) {
	multiPhase := len(system.Phases) > 1

	var units []Unit
	for p, phase := range system.Phases {
		var ids []scoreboard.RoundID
		if multiPhase {
			ids = coll.Rounds(scoreboard.KindClassic, phase.ID)
		} else {
			ids = coll.Rounds(scoreboard.KindModern, "")
		}

		for i, id := range ids {
			units = append(units, Unit{
				Target: RenderTarget{
					Path:       scoreboardPath(id.Key(), phase.ID),
					Key:        id.Key(),
					Phase:      phase.ID,
					PhaseIndex: p,
					Step:       i + 1,
				},
				Filename: boardFilename(multiPhase, p, phase.ID, id.Round),
			})
		}
	}
	return checkPlan(units)
}

// PlanTelevoteReveal produces one unit per country in reveal order.
func PlanTelevoteReveal(phaseIndex int, revealOrder []string) []Unit {
	units := make([]Unit, 0, len(revealOrder))
	for i, country := range revealOrder {
		q := url.Values{}
		q.Set("country", country)
		q.Set("index", strconv.Itoa(i))
		units = append(units, Unit{
			Target: RenderTarget{
				Path:       "/televote?" + q.Encode(),
				Phase:      scoreboard.PhaseTelevote,
				PhaseIndex: phaseIndex,
				Country:    country,
				Step:       i + 1,
			},
			Filename: fmt.Sprintf("phase%d_televote_%d_%s.png", phaseIndex+1, i+1, SanitizeCountry(country)),
		})
	}
	return units
}

// PlanDirectory plans an export of numbered round files. Aggregated phases ordered by
// descending placement are exported as a televote reveal; every other phase exports
// rounds RangeStart..min(ScreenshotCount, RangeEnd).
func PlanDirectory(system scoreboard.VotingSystemConfig, opts DirectoryPlanOptions, revealOrder []string) ([]Unit, error) {
	multiPhase := len(system.Phases) > 1
	last := min(opts.ScreenshotCount, opts.RangeEnd)

	var units []Unit
	for p, phase := range system.Phases {
		if phase.AggregatePoints && phase.OrderBy == scoreboard.OrderPlacementDesc {
			units = append(units, PlanTelevoteReveal(p, revealOrder)...)
			continue
		}
		step := 1
		for i := opts.RangeStart; i <= last; i++ {
			key := strconv.Itoa(i)
			units = append(units, Unit{
				Target: RenderTarget{
					Path:       scoreboardPath(key, phase.ID),
					Key:        key,
					Phase:      phase.ID,
					PhaseIndex: p,
					Step:       step,
				},
				Filename: boardFilename(multiPhase, p, phase.ID, i),
			})
			step++
		}
	}
	return checkPlan(units)
}

func scoreboardPath(key, phaseID string) string {
	return fmt.Sprintf("/scoreboard/%s?phase=%s", url.PathEscape(key), url.QueryEscape(phaseID))
}

func boardFilename(multiPhase bool, phaseIndex int, phaseID string, n int) string {
	if multiPhase {
		return fmt.Sprintf("phase%d_%s_scoreboard%d.png", phaseIndex+1, phaseID, n)
	}
	return fmt.Sprintf("scoreboard%d.png", n)
}

func checkPlan(units []Unit) ([]Unit, error) {
	if len(units) == 0 {
		return nil, ErrNothingToExport
	}
	seen := make(map[string]string, len(units))
	for _, u := range units {
		if prev, ok := seen[u.Filename]; ok {
			return nil, fmt.Errorf("%w: %s (%s and %s)", ErrDuplicateFilename, u.Filename, prev, u.Target.Path)
		}
		seen[u.Filename] = u.Target.Path
	}
	return units, nil
}
