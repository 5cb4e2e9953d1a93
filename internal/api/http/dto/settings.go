package dto

import "github.com/driftpoint/beaconhub/internal/settings"

type UpdateSettingsResponse struct {
	OK     bool              `json:"ok"`
	Config settings.Document `json:"config"`
}
