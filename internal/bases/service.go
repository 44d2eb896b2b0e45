package bases

import (
	"context"
	"log/slog"
	"time"

	"github.com/siege-works/garrison/internal/warapi"
)

// ThreatFetcher is the slice of the war API client the service needs.
type ThreatFetcher interface {
	RegionSummary(ctx context.Context, hexName string) (warapi.Summary, error)
}

// Service wraps base record rules and the threat-intel integration.
type Service struct {
	repo    Repository
	threats ThreatFetcher
	logger  *slog.Logger
}

// NewService constructs a Service.
func NewService(repo Repository, threats ThreatFetcher, logger *slog.Logger) *Service {
	return &Service{repo: repo, threats: threats, logger: logger}
}

// CreateInput carries the caller-supplied fields of a new base.
type CreateInput struct {
	Name      string
	Region    string
	RegionKey string
	SubRegion string
	Landmark  string
	Notes     string
	Checklist []ChecklistItem
}

// Create persists a new base, then opportunistically fetches threat intel
// for its hex. A fetch failure is logged and swallowed: the record creation
// already succeeded and stays successful.
func (s *Service) Create(ctx context.Context, createdBy int64, input CreateInput) (*Base, error) {
	base, err := s.repo.Create(ctx, &Base{
		Name:      input.Name,
		Region:    input.Region,
		RegionKey: input.RegionKey,
		SubRegion: input.SubRegion,
		Landmark:  input.Landmark,
		Notes:     input.Notes,
		Checklist: input.Checklist,
		CreatedBy: createdBy,
	})
	if err != nil {
		return nil, err
	}

	summary, err := s.threats.RegionSummary(ctx, base.HexName())
	if err != nil {
		s.logger.Warn("opportunistic threat fetch failed",
			slog.Int64("base_id", base.ID),
			slog.String("hex", base.HexName()),
			slog.Any("error", err))
		return base, nil
	}
	now := time.Now().UTC()
	if err := s.repo.SetAlerts(ctx, base.ID, summary.Alerts, now); err != nil {
		s.logger.Warn("store alerts", slog.Int64("base_id", base.ID), slog.Any("error", err))
		return base, nil
	}
	base.Alerts = summary.Alerts
	base.AlertsUpdatedAt = &now
	return base, nil
}

// List returns all bases.
func (s *Service) List(ctx context.Context) ([]Base, error) {
	return s.repo.List(ctx)
}

// Get fetches one base.
func (s *Service) Get(ctx context.Context, id int64) (*Base, error) {
	return s.repo.Get(ctx, id)
}

// UpdateInput carries the optional fields of a base patch. Nil means "leave
// unchanged".
type UpdateInput struct {
	Name      *string
	Region    *string
	RegionKey *string
	SubRegion *string
	Landmark  *string
	Notes     *string
	Checklist []ChecklistItem
}

// Update applies a partial update to the whitelisted fields.
func (s *Service) Update(ctx context.Context, id int64, input UpdateInput) (*Base, error) {
	base, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		base.Name = *input.Name
	}
	if input.Region != nil {
		base.Region = *input.Region
	}
	if input.RegionKey != nil {
		base.RegionKey = *input.RegionKey
	}
	if input.SubRegion != nil {
		base.SubRegion = *input.SubRegion
	}
	if input.Landmark != nil {
		base.Landmark = *input.Landmark
	}
	if input.Notes != nil {
		base.Notes = *input.Notes
	}
	if input.Checklist != nil {
		base.Checklist = input.Checklist
	}
	return s.repo.Update(ctx, base)
}

// Delete removes a base.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// AlertsResult is the outcome of an explicit threat refresh.
type AlertsResult struct {
	warapi.Summary
	UpdatedAt time.Time `json:"updatedAt"`
}

// RefreshAlerts fetches threat intel for the base's hex and caches the alert
// strings on the record. Unlike the opportunistic path, an upstream failure
// propagates: fetching threat data is the sole purpose of this call.
func (s *Service) RefreshAlerts(ctx context.Context, id int64) (*AlertsResult, error) {
	base, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	summary, err := s.threats.RegionSummary(ctx, base.HexName())
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	if err := s.repo.SetAlerts(ctx, base.ID, summary.Alerts, now); err != nil {
		return nil, err
	}
	return &AlertsResult{Summary: summary, UpdatedAt: now}, nil
}
