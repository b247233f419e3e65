package service

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/item-sharing-service/internal/domain"
	"github.com/iliyamo/item-sharing-service/internal/model"
	"github.com/iliyamo/item-sharing-service/internal/repository"
)

// fakeUserStore implements UserStore with email uniqueness, the part
// the real MySQL repo delegates to its unique index.
type fakeUserStore struct {
	nextID uint64
	rows   map[uint64]model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{rows: map[uint64]model.User{}}
}

func (f *fakeUserStore) emailTaken(email string, except uint64) bool {
	for _, u := range f.rows {
		if u.ID != except && strings.EqualFold(u.Email, email) {
			return true
		}
	}
	return false
}

func (f *fakeUserStore) Create(_ context.Context, name, email, passwordHash string) (uint64, error) {
	if f.emailTaken(email, 0) {
		return 0, repository.ErrEmailExists
	}
	f.nextID++
	f.rows[f.nextID] = model.User{ID: f.nextID, Name: name, Email: strings.ToLower(email), PasswordHash: passwordHash}
	return f.nextID, nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id uint64) (model.User, error) {
	u, ok := f.rows[id]
	if !ok {
		return model.User{}, sql.ErrNoRows
	}
	return u, nil
}

func (f *fakeUserStore) Update(_ context.Context, id uint64, name, email string) error {
	if f.emailTaken(email, id) {
		return repository.ErrEmailExists
	}
	u, ok := f.rows[id]
	if !ok {
		return sql.ErrNoRows
	}
	u.Name = name
	u.Email = strings.ToLower(email)
	f.rows[id] = u
	return nil
}

func (f *fakeUserStore) Delete(_ context.Context, id uint64) error {
	delete(f.rows, id)
	return nil
}

func (f *fakeUserStore) List(_ context.Context) ([]model.User, error) {
	out := []model.User{}
	for _, u := range f.rows {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func TestUserCreate(t *testing.T) {
	svc := NewUserService(newFakeUserStore())
	ctx := context.Background()

	u, err := svc.Create(ctx, CreateUserInput{Name: "olga", Email: "olga@example.com"})
	require.NoError(t, err)
	assert.NotZero(t, u.ID)

	_, err = svc.Create(ctx, CreateUserInput{Name: "copy", Email: "OLGA@example.com"})
	assert.True(t, domain.IsConflict(err), "duplicate email conflicts")

	_, err = svc.Create(ctx, CreateUserInput{Email: "x@example.com"})
	assert.True(t, domain.IsValidation(err))

	_, err = svc.Create(ctx, CreateUserInput{Name: "bad", Email: "not-an-email"})
	assert.True(t, domain.IsValidation(err))
}

func TestUserUpdatePartial(t *testing.T) {
	svc := NewUserService(newFakeUserStore())
	ctx := context.Background()

	u, err := svc.Create(ctx, CreateUserInput{Name: "olga", Email: "olga@example.com"})
	require.NoError(t, err)
	other, err := svc.Create(ctx, CreateUserInput{Name: "boris", Email: "boris@example.com"})
	require.NoError(t, err)

	name := "olga k"
	got, err := svc.Update(ctx, u.ID, UpdateUserInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "olga k", got.Name)
	assert.Equal(t, "olga@example.com", got.Email, "email untouched")

	taken := other.Email
	_, err = svc.Update(ctx, u.ID, UpdateUserInput{Email: &taken})
	assert.True(t, domain.IsConflict(err))

	_, err = svc.Update(ctx, 999, UpdateUserInput{Name: &name})
	assert.True(t, domain.IsNotFound(err))
}

func TestUserGetDeleteList(t *testing.T) {
	svc := NewUserService(newFakeUserStore())
	ctx := context.Background()

	u, err := svc.Create(ctx, CreateUserInput{Name: "olga", Email: "olga@example.com"})
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Email, got.Email)

	_, err = svc.GetByID(ctx, 999)
	assert.True(t, domain.IsNotFound(err))

	require.NoError(t, svc.Delete(ctx, u.ID))
	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}
