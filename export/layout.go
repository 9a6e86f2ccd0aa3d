package export

import (
	"net/url"
	"strconv"
)

// LayoutSettings are presentation flags forwarded untouched to the render target.
type LayoutSettings struct {
	ShowVoterPanel bool   `json:"showVoterPanel" mapstructure:"showVoterPanel"`
	PanelPosition  string `json:"panelPosition" mapstructure:"panelPosition" validate:"omitempty,oneof=left right"`
	Variant        string `json:"variant" mapstructure:"variant" validate:"omitempty,oneof=default compact"`
	ShowFlags      bool   `json:"showFlags" mapstructure:"showFlags"`
}

func DefaultLayout() LayoutSettings {
	return LayoutSettings{
		ShowVoterPanel: true,
		PanelPosition:  "left",
		Variant:        "compact",
		ShowFlags:      true,
	}
}

func (l LayoutSettings) QueryParams() url.Values {
	params := url.Values{}
	params.Set("voterPanel", strconv.FormatBool(l.ShowVoterPanel))
	params.Set("panelPosition", l.PanelPosition)
	params.Set("variant", l.Variant)
	params.Set("showFlags", strconv.FormatBool(l.ShowFlags))
	return params
}
