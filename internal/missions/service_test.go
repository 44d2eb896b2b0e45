package missions_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siege-works/garrison/internal/missions"
	"github.com/siege-works/garrison/internal/shared"
)

type fakeRepo struct {
	nextID int64
	byID   map[int64]*missions.Mission
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{nextID: 1, byID: map[int64]*missions.Mission{}}
}

func (f *fakeRepo) Create(ctx context.Context, mission *missions.Mission) (*missions.Mission, error) {
	m := *mission
	m.ID = f.nextID
	m.CreatedAt = time.Now()
	m.UpdatedAt = m.CreatedAt
	f.byID[m.ID] = &m
	f.nextID++
	return &m, nil
}

func (f *fakeRepo) List(ctx context.Context) ([]missions.Mission, error) {
	out := make([]missions.Mission, 0, len(f.byID))
	for _, m := range f.byID {
		out = append(out, *m)
	}
	return out, nil
}

func (f *fakeRepo) Get(ctx context.Context, id int64) (*missions.Mission, error) {
	if m, ok := f.byID[id]; ok {
		copied := *m
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (f *fakeRepo) Update(ctx context.Context, mission *missions.Mission) (*missions.Mission, error) {
	if _, ok := f.byID[mission.ID]; !ok {
		return nil, shared.ErrNotFound
	}
	m := *mission
	m.UpdatedAt = time.Now()
	f.byID[m.ID] = &m
	return &m, nil
}

func (f *fakeRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return shared.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func TestCreateDefaultsToPlanning(t *testing.T) {
	svc := missions.NewService(newFakeRepo())

	m, err := svc.Create(context.Background(), 7, missions.CreateInput{Title: "Scrap run"})
	require.NoError(t, err)
	assert.Equal(t, missions.StatusPlanning, m.Status)
	assert.Equal(t, int64(7), m.CreatedBy)
}

func TestCreateRejectsUnknownStatus(t *testing.T) {
	repo := newFakeRepo()
	svc := missions.NewService(repo)

	_, err := svc.Create(context.Background(), 7, missions.CreateInput{Title: "Scrap run", Status: "Cancelled"})
	assert.ErrorIs(t, err, shared.ErrValidation)
	assert.Empty(t, repo.byID)
}

func TestUpdateStatusTransition(t *testing.T) {
	repo := newFakeRepo()
	svc := missions.NewService(repo)

	m, err := svc.Create(context.Background(), 7, missions.CreateInput{Title: "Scrap run"})
	require.NoError(t, err)

	active := "Active"
	updated, err := svc.Update(context.Background(), m.ID, missions.UpdateInput{Status: &active})
	require.NoError(t, err)
	assert.Equal(t, missions.StatusActive, updated.Status)

	bogus := "Paused"
	_, err = svc.Update(context.Background(), m.ID, missions.UpdateInput{Status: &bogus})
	assert.ErrorIs(t, err, shared.ErrValidation)
	assert.Equal(t, missions.StatusActive, repo.byID[m.ID].Status)
}

func TestUpdatePartialKeepsAssignments(t *testing.T) {
	repo := newFakeRepo()
	svc := missions.NewService(repo)

	m, err := svc.Create(context.Background(), 7, missions.CreateInput{
		Title:      "Scrap run",
		AssignedTo: []int64{3, 5},
	})
	require.NoError(t, err)

	title := "Salvage run"
	updated, err := svc.Update(context.Background(), m.ID, missions.UpdateInput{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Salvage run", updated.Title)
	assert.Equal(t, []int64{3, 5}, updated.AssignedTo)
}
