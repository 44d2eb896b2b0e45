package users_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/siege-works/garrison/internal/roles"
	"github.com/siege-works/garrison/internal/shared"
	"github.com/siege-works/garrison/internal/users"
)

type fakeRepo struct {
	nextID int64
	byID   map[int64]*users.User
	hashes map[int64]string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{nextID: 1, byID: map[int64]*users.User{}, hashes: map[int64]string{}}
}

func (f *fakeRepo) seed(username string, role roles.Role) *users.User {
	u := &users.User{ID: f.nextID, Username: username, Role: role, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	f.byID[u.ID] = u
	f.nextID++
	return u
}

func (f *fakeRepo) Create(ctx context.Context, username, passwordHash string, role roles.Role) (*users.User, error) {
	for _, u := range f.byID {
		if u.Username == username {
			return nil, shared.ErrDuplicate
		}
	}
	u := f.seed(username, role)
	f.hashes[u.ID] = passwordHash
	return u, nil
}

func (f *fakeRepo) List(ctx context.Context) ([]users.User, error) {
	out := make([]users.User, 0, len(f.byID))
	for _, u := range f.byID {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeRepo) Get(ctx context.Context, id int64) (*users.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, shared.ErrNotFound
}

func (f *fakeRepo) UpdateRole(ctx context.Context, id int64, role roles.Role) (*users.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	u.Role = role
	return u, nil
}

func (f *fakeRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return shared.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func principal(u *users.User) *shared.Principal {
	return &shared.Principal{UserID: u.ID, Username: u.Username, Role: u.Role}
}

func TestCreateDefaultsToMember(t *testing.T) {
	repo := newFakeRepo()
	admin := repo.seed("holt", roles.Admin)
	svc := users.NewService(repo)

	created, err := svc.Create(context.Background(), principal(admin), "recruit", "longenough1", "")
	require.NoError(t, err)
	assert.Equal(t, roles.Member, created.Role)

	// The stored credential is a bcrypt hash, never the raw password.
	hash := repo.hashes[created.ID]
	require.NotEmpty(t, hash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("longenough1")))
}

func TestCreateRejectsUnknownRole(t *testing.T) {
	repo := newFakeRepo()
	admin := repo.seed("holt", roles.Admin)
	svc := users.NewService(repo)

	_, err := svc.Create(context.Background(), principal(admin), "recruit", "longenough1", "Quartermaster")
	assert.ErrorIs(t, err, shared.ErrInvalidRole)
	assert.Len(t, repo.byID, 1)
}

func TestCreateContainment(t *testing.T) {
	repo := newFakeRepo()
	admin := repo.seed("holt", roles.Admin)
	svc := users.NewService(repo)

	_, err := svc.Create(context.Background(), principal(admin), "peer", "longenough1", "Admin")
	assert.ErrorIs(t, err, shared.ErrInsufficientPermission)

	_, err = svc.Create(context.Background(), principal(admin), "boss", "longenough1", "Super Admin")
	assert.ErrorIs(t, err, shared.ErrInsufficientPermission)
}

func TestChangeRoleTerminalRoleUnreachable(t *testing.T) {
	repo := newFakeRepo()
	super := repo.seed("root", roles.SuperAdmin)
	target := repo.seed("holt", roles.Admin)
	svc := users.NewService(repo)

	_, err := svc.ChangeRole(context.Background(), principal(super), target.ID, "Maintainer")
	require.ErrorIs(t, err, shared.ErrInsufficientPermission)
	assert.Equal(t, roles.Admin, repo.byID[target.ID].Role)
}

func TestChangeRoleContainment(t *testing.T) {
	repo := newFakeRepo()
	super := repo.seed("root", roles.SuperAdmin)
	admin := repo.seed("holt", roles.Admin)
	member := repo.seed("recruit", roles.Member)
	maintainer := repo.seed("owner", roles.Maintainer)
	svc := users.NewService(repo)

	// Super Admin cannot lift an Admin to its own rank.
	_, err := svc.ChangeRole(context.Background(), principal(super), admin.ID, "Super Admin")
	assert.ErrorIs(t, err, shared.ErrInsufficientPermission)

	// The Maintainer can.
	updated, err := svc.ChangeRole(context.Background(), principal(maintainer), admin.ID, "Super Admin")
	require.NoError(t, err)
	assert.Equal(t, roles.SuperAdmin, updated.Role)

	// Ordinary promotion within the actor's span.
	updated, err = svc.ChangeRole(context.Background(), principal(super), member.ID, "Trusted")
	require.NoError(t, err)
	assert.Equal(t, roles.Trusted, updated.Role)
}

func TestChangeRoleMissingTarget(t *testing.T) {
	repo := newFakeRepo()
	super := repo.seed("root", roles.SuperAdmin)
	svc := users.NewService(repo)

	_, err := svc.ChangeRole(context.Background(), principal(super), 999, "Trusted")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestDeleteSelfProtection(t *testing.T) {
	repo := newFakeRepo()
	admin := repo.seed("holt", roles.Admin)
	svc := users.NewService(repo)

	err := svc.Delete(context.Background(), principal(admin), admin.ID)
	assert.ErrorIs(t, err, shared.ErrInsufficientPermission)
	assert.Contains(t, repo.byID, admin.ID)
}

func TestDeleteContainment(t *testing.T) {
	repo := newFakeRepo()
	admin := repo.seed("holt", roles.Admin)
	peer := repo.seed("pike", roles.Admin)
	member := repo.seed("recruit", roles.Member)
	svc := users.NewService(repo)

	err := svc.Delete(context.Background(), principal(admin), peer.ID)
	assert.ErrorIs(t, err, shared.ErrInsufficientPermission)

	err = svc.Delete(context.Background(), principal(admin), member.ID)
	require.NoError(t, err)
	assert.NotContains(t, repo.byID, member.ID)
}
