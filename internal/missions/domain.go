package missions

import (
	"fmt"
	"time"
)

// Status is a mission lifecycle stage.
type Status string

// Lifecycle stages.
const (
	StatusPlanning Status = "Planning"
	StatusActive   Status = "Active"
	StatusComplete Status = "Complete"
)

// ParseStatus validates an API-supplied status string.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPlanning, StatusActive, StatusComplete:
		return Status(s), nil
	}
	return "", fmt.Errorf("missions: unknown status %q", s)
}

// ChecklistItem is one line of a mission checklist.
type ChecklistItem struct {
	Text string `json:"text"`
	Done bool   `json:"done"`
}

// Mission is a coordinated operation record.
type Mission struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Status      Status          `json:"status"`
	Checklist   []ChecklistItem `json:"checklist"`
	AssignedTo  []int64         `json:"assignedTo"`
	CreatedBy   int64           `json:"createdBy"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}
