package models

import (
	"github.com/alex-pricope/eurovision-scoreboard/export"
	"github.com/alex-pricope/eurovision-scoreboard/scoreboard"
)

type TelevoteResponse struct {
	System      string                          `json:"system"`
	Phase       string                          `json:"phase"`
	Eligible    []int                           `json:"eligiblePoints"`
	Sums        []scoreboard.CountryTelevoteSum `json:"sums"`
	RevealOrder []string                        `json:"revealOrder"`
}

type ExportPlanResponse struct {
	System string        `json:"system"`
	Total  int           `json:"total"`
	Units  []export.Unit `json:"units"`
}
