package scoreboard

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alex-pricope/eurovision-scoreboard/logging"
	"github.com/alex-pricope/eurovision-scoreboard/metrics"
)

// Collection maps a scoreboard key to its entries. It is replaced wholesale, never
// edited in place.
type Collection map[string][]NormalizedScoreEntry

// File is one uploaded scoreboard file.
type File struct {
	Name string
	Data []byte
}

// Keys returns the sorted keys starting with prefix. An empty prefix returns all keys.
func (c Collection) Keys(prefix string) []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

func (c Collection) HasJuryData() bool {
	return c.hasRound(func(id RoundID) bool { return id.IsJury() })
}

func (c Collection) HasTelevoteData() bool {
	return c.hasRound(func(id RoundID) bool { return id.IsTelevote() })
}

func (c Collection) HasModernData() bool {
	return c.hasRound(func(id RoundID) bool { return id.Kind == KindModern })
}

// Rounds returns the round ids of the given kind (and phase, for classic rounds)
// sorted ascending by round number, then by key.
func (c Collection) Rounds(kind RoundKind, phase string) []RoundID {
	var ids []RoundID
	for k := range c {
		id := ParseRoundKey(k)
		if id.Kind != kind {
			continue
		}
		if kind == KindClassic && id.Phase != phase {
			continue
		}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if ids[i].Round != ids[j].Round {
			return ids[i].Round < ids[j].Round
		}
		return ids[i].Key() < ids[j].Key()
	})
	return ids
}

func (c Collection) hasRound(match func(RoundID) bool) bool {
	for k := range c {
		if match(ParseRoundKey(k)) {
			return true
		}
	}
	return false
}

// ParseCombined reads a single upload holding many scoreboards. Array values are
// stored under their key, nested objects of arrays under "{outer}_{inner}". Other
// values are ignored. Empty scoreboards and ones that fail to normalize are skipped.
func ParseCombined(data []byte) (Collection, error) {
	var top map[string]json.RawMessage
	if firstToken(data) != '{' {
		return nil, ErrNotAnObject
	}
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotAnObject, err)
	}

	result := make(Collection)
	for _, key := range sortedKeys(top) {
		value := top[key]
		switch firstToken(value) {
		case '[':
			addCombinedScoreboard(result, key, value)
		case '{':
			var nested map[string]json.RawMessage
			if err := json.Unmarshal(value, &nested); err != nil {
				logging.Log.Warnf("SCOREBOARD: skipping %s: %v", key, err)
				metrics.RecordIngestFailure(metrics.ModeCombined)
				continue
			}
			for _, sub := range sortedKeys(nested) {
				if firstToken(nested[sub]) == '[' {
					addCombinedScoreboard(result, key+"_"+sub, nested[sub])
				}
			}
		}
	}

	if len(result) == 0 {
		return nil, ErrNoValidScoreboards
	}
	metrics.RecordScoreboardsLoaded(metrics.ModeCombined, len(result))
	return result, nil
}

// ParseMultiple reads one scoreboard per file, keyed by file name without extension.
// The first bad file, or two files sharing a key, rejects the whole batch.
func ParseMultiple(files []File) (Collection, error) {
	result := make(Collection, len(files))
	sources := make(map[string]string, len(files))
	for _, f := range files {
		key := KeyForFile(f.Name)
		if prev, ok := sources[key]; ok {
			metrics.RecordIngestFailure(metrics.ModeFiles)
			return nil, fmt.Errorf("%w %q: %s and %s", ErrDuplicateKey, key, prev, f.Name)
		}
		entries, err := ParseScoreboardFile(f.Name, f.Data)
		if err != nil {
			metrics.RecordIngestFailure(metrics.ModeFiles)
			return nil, fmt.Errorf("failed to parse %s: %w", f.Name, err)
		}
		sources[key] = f.Name
		result[key] = entries
	}
	if len(result) == 0 {
		return nil, ErrNoValidScoreboards
	}
	metrics.RecordScoreboardsLoaded(metrics.ModeFiles, len(result))
	return result, nil
}

// ParseScoreboardFile parses a single .json or .csv scoreboard.
func ParseScoreboardFile(name string, data []byte) ([]NormalizedScoreEntry, error) {
	var (
		raws []RawScoreEntry
		err  error
	)
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		raws, err = DecodeEntries(data)
	case ".csv":
		raws, err = ParseCSV(data)
	default:
		return nil, ErrUnsupportedFile
	}
	if err != nil {
		return nil, err
	}
	if len(raws) == 0 {
		return nil, ErrEmptyScoreboard
	}
	return normalizeScoreboard(raws)
}

// KeyForFile strips the directory and the .json/.csv extension from a file name.
func KeyForFile(name string) string {
	base := filepath.Base(name)
	ext := filepath.Ext(base)
	switch strings.ToLower(ext) {
	case ".json", ".csv":
		return strings.TrimSuffix(base, ext)
	}
	return base
}

// DecodeEntries decodes a JSON array of raw records, keeping numbers as json.Number.
func DecodeEntries(data []byte) ([]RawScoreEntry, error) {
	if firstToken(data) != '[' {
		return nil, ErrNotAnArray
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raws []RawScoreEntry
	if err := dec.Decode(&raws); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotAnArray, err)
	}
	return raws, nil
}

func addCombinedScoreboard(result Collection, key string, data json.RawMessage) {
	raws, err := DecodeEntries(data)
	if err == nil && len(raws) == 0 {
		err = ErrEmptyScoreboard
	}
	if err == nil {
		var entries []NormalizedScoreEntry
		if entries, err = normalizeScoreboard(raws); err == nil {
			result[key] = entries
			return
		}
	}
	logging.Log.Warnf("SCOREBOARD: skipping %s: %v", key, err)
	metrics.RecordIngestFailure(metrics.ModeCombined)
}

func normalizeScoreboard(raws []RawScoreEntry) ([]NormalizedScoreEntry, error) {
	entries, err := NormalizeAll(raws)
	if err != nil {
		return nil, err
	}
	if err := ValidateScoreboard(entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func firstToken(data []byte) byte {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return 0
	}
	return trimmed[0]
}

func sortedKeys(m map[string]json.RawMessage) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
