package scoreboard

import (
	"fmt"
	"strconv"
	"strings"
)

type RoundKind int

const (
	KindLabel RoundKind = iota
	KindModern
	KindClassic
)

func (k RoundKind) String() string {
	switch k {
	case KindModern:
		return "modern"
	case KindClassic:
		return "classic"
	default:
		return "label"
	}
}

// RoundID identifies a scoreboard independently of its storage key. Label holds the
// source key when the round was parsed from one.
type RoundID struct {
	Kind  RoundKind
	Phase string
	Round int
	Label string
}

func ModernRound(n int) RoundID { return RoundID{Kind: KindModern, Round: n} }

func JuryRound(n int) RoundID { return RoundID{Kind: KindClassic, Phase: PhaseJury, Round: n} }

func TelevoteRound(n int) RoundID { return RoundID{Kind: KindClassic, Phase: PhaseTelevote, Round: n} }

func LabelRound(label string) RoundID { return RoundID{Kind: KindLabel, Label: label} }

// ParseRoundKey decodes a collection key. Digits-only keys are modern rounds, keys
// prefixed "jury_" or "televote_" are classic rounds numbered by the digits they
// contain, anything else is a label.
func ParseRoundKey(key string) RoundID {
	if n, ok := parseRoundNumber(key); ok {
		return RoundID{Kind: KindModern, Round: n, Label: key}
	}
	for _, phase := range []string{PhaseJury, PhaseTelevote} {
		rest, found := strings.CutPrefix(key, phase+"_")
		if !found {
			continue
		}
		return RoundID{Kind: KindClassic, Phase: phase, Round: digitsOf(rest), Label: key}
	}
	return LabelRound(key)
}

// Key encodes the round back into its collection key.
func (r RoundID) Key() string {
	if r.Label != "" {
		return r.Label
	}
	switch r.Kind {
	case KindModern:
		return strconv.Itoa(r.Round)
	case KindClassic:
		return fmt.Sprintf("%s_%d", r.Phase, r.Round)
	default:
		return r.Label
	}
}

func (r RoundID) IsJury() bool { return r.Kind == KindClassic && r.Phase == PhaseJury }

func (r RoundID) IsTelevote() bool { return r.Kind == KindClassic && r.Phase == PhaseTelevote }

func (r RoundID) String() string { return r.Key() }

func parseRoundNumber(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// digitsOf concatenates every digit in s; strings without digits number as 0.
func digitsOf(s string) int {
	var b strings.Builder
	for _, c := range s {
		if c >= '0' && c <= '9' {
			b.WriteRune(c)
		}
	}
	n, err := strconv.Atoi(b.String())
	if err != nil {
		return 0
	}
	return n
}
