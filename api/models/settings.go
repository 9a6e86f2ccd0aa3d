package models

import (
	"time"

	"github.com/alex-pricope/eurovision-scoreboard/storage"
)

type SettingsRequest struct {
	VotingSystem   string `json:"votingSystem" validate:"required,oneof=modern classic"`
	Theme          string `json:"theme" validate:"omitempty,max=64"`
	ShowVoterPanel bool   `json:"showVoterPanel"`
	PanelPosition  string `json:"panelPosition" validate:"required,oneof=left right"`
	Variant        string `json:"variant" validate:"required,oneof=default compact"`
	ShowFlags      bool   `json:"showFlags"`
}

type SettingsResponse struct {
	VotingSystem   string    `json:"votingSystem"`
	Theme          string    `json:"theme"`
	ShowVoterPanel bool      `json:"showVoterPanel"`
	PanelPosition  string    `json:"panelPosition"`
	Variant        string    `json:"variant"`
	ShowFlags      bool      `json:"showFlags"`
	UpdatedAt      time.Time `json:"updatedAt,omitempty"`
}

func TransformSettingsFromStorage(s *storage.Settings) SettingsResponse {
	return SettingsResponse{
		VotingSystem:   s.VotingSystem,
		Theme:          s.Theme,
		ShowVoterPanel: s.ShowVoterPanel,
		PanelPosition:  s.PanelPosition,
		Variant:        s.Variant,
		ShowFlags:      s.ShowFlags,
		UpdatedAt:      s.UpdatedAt,
	}
}

func TransformSettingsToStorage(req SettingsRequest, defaultTheme string) *storage.Settings {
	theme := req.Theme
	if theme == "" {
		theme = defaultTheme
	}
	return &storage.Settings{
		ID:             storage.SettingsID,
		VotingSystem:   req.VotingSystem,
		Theme:          theme,
		ShowVoterPanel: req.ShowVoterPanel,
		PanelPosition:  req.PanelPosition,
		Variant:        req.Variant,
		ShowFlags:      req.ShowFlags,
	}
}
