package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/m3rciful/adbot/internal/models"
	"github.com/m3rciful/adbot/internal/storage"
)

type fakeUserStore struct {
	users map[int64]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[int64]*models.User)}
}

func (f *fakeUserStore) GetUser(_ context.Context, id int64) (models.User, error) {
	if u, ok := f.users[id]; ok {
		return *u, nil
	}
	return models.User{}, storage.ErrUserNotFound
}

func (f *fakeUserStore) CreateUser(_ context.Context, id int64) error {
	if _, ok := f.users[id]; ok {
		return nil
	}
	f.users[id] = &models.User{ID: id, Role: models.RoleUnset}
	return nil
}

func (f *fakeUserStore) SetRole(_ context.Context, id int64, role models.Role) error {
	u, ok := f.users[id]
	if !ok {
		return storage.ErrUserNotFound
	}
	u.Role = role
	return nil
}

func (f *fakeUserStore) Balance(_ context.Context, id int64) (float64, error) {
	u, ok := f.users[id]
	if !ok {
		return 0, storage.ErrUserNotFound
	}
	return u.Balance, nil
}

func (f *fakeUserStore) CountUsers(_ context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

func TestRegisterFirstContact(t *testing.T) {
	store := newFakeUserStore()
	svc := NewUsers(store)
	ctx := context.Background()

	u, known, err := svc.Register(ctx, 7)
	require.NoError(t, err)
	require.False(t, known)
	require.Equal(t, models.RoleUnset, u.Role)
	require.Zero(t, u.Balance)
}

func TestRegisterKnownUser(t *testing.T) {
	store := newFakeUserStore()
	svc := NewUsers(store)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, 7)
	require.NoError(t, err)
	require.NoError(t, svc.SetRole(ctx, 7, models.RoleAdvertiser))

	u, known, err := svc.Register(ctx, 7)
	require.NoError(t, err)
	require.True(t, known)
	require.Equal(t, models.RoleAdvertiser, u.Role)
	require.Len(t, store.users, 1)
}

func TestSetRoleTwiceIsIdempotent(t *testing.T) {
	store := newFakeUserStore()
	svc := NewUsers(store)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, 7)
	require.NoError(t, err)

	require.NoError(t, svc.SetRole(ctx, 7, models.RolePublisher))
	require.NoError(t, svc.SetRole(ctx, 7, models.RolePublisher))

	require.Len(t, store.users, 1)
	require.Equal(t, models.RolePublisher, store.users[7].Role)
}

func TestSetRoleCreatesMissingRow(t *testing.T) {
	store := newFakeUserStore()
	svc := NewUsers(store)
	ctx := context.Background()

	// A stale keyboard tap can arrive before /start ever ran.
	require.NoError(t, svc.SetRole(ctx, 9, models.RoleAdvertiser))
	require.Equal(t, models.RoleAdvertiser, store.users[9].Role)
}

func TestSetRoleRejectsUnknownRole(t *testing.T) {
	svc := NewUsers(newFakeUserStore())
	require.Error(t, svc.SetRole(context.Background(), 7, models.Role("moderator")))
	require.Error(t, svc.SetRole(context.Background(), 7, models.RoleUnset))
}
