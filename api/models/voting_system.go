package models

import "github.com/alex-pricope/eurovision-scoreboard/scoreboard"

type VotingPhaseResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	FilePrefix      string `json:"filePrefix"`
	PointsToShow    []int  `json:"pointsToShow"`
	OrderBy         string `json:"orderBy"`
	AggregatePoints bool   `json:"aggregatePoints"`
}

type VotingSystemResponse struct {
	ID          string                `json:"id"`
	Name        string                `json:"name"`
	Description string                `json:"description"`
	Phases      []VotingPhaseResponse `json:"phases"`
}

func TransformVotingSystem(c scoreboard.VotingSystemConfig) VotingSystemResponse {
	phases := make([]VotingPhaseResponse, 0, len(c.Phases))
	for _, p := range c.Phases {
		phases = append(phases, VotingPhaseResponse{
			ID:              p.ID,
			Name:            p.Name,
			FilePrefix:      p.FilePrefix,
			PointsToShow:    p.PointsToShow.Values(),
			OrderBy:         string(p.OrderBy),
			AggregatePoints: p.AggregatePoints,
		})
	}
	return VotingSystemResponse{
		ID:          string(c.ID),
		Name:        c.Name,
		Description: c.Description,
		Phases:      phases,
	}
}
