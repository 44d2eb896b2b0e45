package missions

import (
	"context"
	"fmt"

	"github.com/siege-works/garrison/internal/shared"
)

// Service wraps mission record rules.
type Service struct {
	repo Repository
}

// NewService constructs a Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateInput carries the caller-supplied fields of a new mission.
type CreateInput struct {
	Title       string
	Description string
	Status      string
	Checklist   []ChecklistItem
	AssignedTo  []int64
}

// Create persists a new mission. An empty status defaults to Planning.
func (s *Service) Create(ctx context.Context, createdBy int64, input CreateInput) (*Mission, error) {
	status := StatusPlanning
	if input.Status != "" {
		parsed, err := ParseStatus(input.Status)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", shared.ErrValidation, err)
		}
		status = parsed
	}
	return s.repo.Create(ctx, &Mission{
		Title:       input.Title,
		Description: input.Description,
		Status:      status,
		Checklist:   input.Checklist,
		AssignedTo:  input.AssignedTo,
		CreatedBy:   createdBy,
	})
}

// List returns all missions.
func (s *Service) List(ctx context.Context) ([]Mission, error) {
	return s.repo.List(ctx)
}

// Get fetches one mission.
func (s *Service) Get(ctx context.Context, id int64) (*Mission, error) {
	return s.repo.Get(ctx, id)
}

// UpdateInput carries the optional fields of a mission patch.
type UpdateInput struct {
	Title       *string
	Description *string
	Status      *string
	Checklist   []ChecklistItem
	AssignedTo  []int64
}

// Update applies a partial update to the whitelisted fields.
func (s *Service) Update(ctx context.Context, id int64, input UpdateInput) (*Mission, error) {
	mission, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Title != nil {
		mission.Title = *input.Title
	}
	if input.Description != nil {
		mission.Description = *input.Description
	}
	if input.Status != nil {
		status, err := ParseStatus(*input.Status)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", shared.ErrValidation, err)
		}
		mission.Status = status
	}
	if input.Checklist != nil {
		mission.Checklist = input.Checklist
	}
	if input.AssignedTo != nil {
		mission.AssignedTo = input.AssignedTo
	}
	return s.repo.Update(ctx, mission)
}

// Delete removes a mission.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
