package bases

import "time"

// ChecklistItem is one line of a base's upkeep checklist.
type ChecklistItem struct {
	Text string `json:"text"`
	Done bool   `json:"done"`
}

// Base is a shared installation record. Alerts are a cached copy of the last
// threat summary for the base's hex; they are replaced wholesale whenever a
// fetch succeeds.
type Base struct {
	ID              int64           `json:"id"`
	Name            string          `json:"name"`
	Region          string          `json:"region"`
	RegionKey       string          `json:"regionKey"`
	SubRegion       string          `json:"subRegion"`
	Landmark        string          `json:"landmark"`
	Notes           string          `json:"notes"`
	Checklist       []ChecklistItem `json:"checklist"`
	Alerts          []string        `json:"alerts"`
	AlertsUpdatedAt *time.Time      `json:"alertsUpdatedAt"`
	CreatedBy       int64           `json:"createdBy"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// HexName picks the identifier used against the war API: the raw API key
// when set, the display name otherwise.
func (b *Base) HexName() string {
	if b.RegionKey != "" {
		return b.RegionKey
	}
	return b.Region
}
