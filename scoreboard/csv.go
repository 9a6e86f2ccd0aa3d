package scoreboard

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrCSVHeader = errors.New("CSV must have a header row and at least one data row")
var ErrCSVCountryColumn = errors.New(`CSV must have a "country" column`)

var csvAliases = map[string][]string{
	"country":       {"country"},
	"placement":     {"placement"},
	"pointsGained":  {"pointsgained", "points_gained", "gained"},
	"pointsOverall": {"pointsoverall", "points_overall", "overall", "total"},
	"isVoter":       {"isvoter", "is_voter", "voter"},
}

// ParseCSV reads a scoreboard from CSV. Only the country column is required; a missing
// placement defaults to the row number and missing points default to 0.
func ParseCSV(data []byte) ([]RawScoreEntry, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	records = dropBlankRows(records)
	if len(records) < 2 {
		return nil, ErrCSVHeader
	}

	cols := csvColumns(records[0])
	if cols["country"] < 0 {
		return nil, ErrCSVCountryColumn
	}

	raws := make([]RawScoreEntry, 0, len(records)-1)
	for i, row := range records[1:] {
		raws = append(raws, RawScoreEntry{
			Country:       cell(row, cols["country"], ""),
			Placement:     cell(row, cols["placement"], strconv.Itoa(i+1)),
			PointsGained:  cell(row, cols["pointsGained"], "0"),
			PointsOverall: cell(row, cols["pointsOverall"], "0"),
			IsVoter:       cell(row, cols["isVoter"], "0"),
		})
	}
	return raws, nil
}

func csvColumns(header []string) map[string]int {
	cols := make(map[string]int, len(csvAliases))
	for field := range csvAliases {
		cols[field] = -1
	}
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		for field, aliases := range csvAliases {
			if cols[field] >= 0 {
				continue
			}
			for _, alias := range aliases {
				if name == alias {
					cols[field] = i
				}
			}
		}
	}
	return cols
}

func cell(row []string, idx int, def string) string {
	if idx < 0 {
		return def
	}
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func dropBlankRows(records [][]string) [][]string {
	out := records[:0]
	for _, row := range records {
		blank := true
		for _, v := range row {
			if strings.TrimSpace(v) != "" {
				blank = false
				break
			}
		}
		if !blank {
			out = append(out, row)
		}
	}
	return out
}
