package access

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/InternHub-Service/internal/domain"
	userRepo "github.com/m04kA/InternHub-Service/internal/infra/storage/user"
)

type fakeUsers struct {
	users map[int64]*domain.User
	err   error
	calls int
}

func (f *fakeUsers) GetByID(_ context.Context, id int64) (*domain.User, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[id]
	if !ok {
		return nil, userRepo.ErrUserNotFound
	}
	return u, nil
}

func TestResolve(t *testing.T) {
	users := &fakeUsers{users: map[int64]*domain.User{
		1: {ID: 1, Role: domain.RoleAdmin},
		2: {ID: 2, Role: domain.RoleIndustryAdmin, IndustryIDs: []int64{4, 5}},
		3: {ID: 3, Role: domain.RoleIndustryAdmin},
	}}
	r := NewResolver(users)

	admin, err := r.Resolve(context.Background(), domain.Actor{UserID: 1, Role: domain.RoleAdmin})
	require.NoError(t, err)
	assert.Nil(t, admin.ScopeIndustryIDs())
	assert.Equal(t, 1, users.calls)

	scoped, err := r.Resolve(context.Background(), domain.Actor{UserID: 2, Role: domain.RoleIndustryAdmin})
	require.NoError(t, err)
	assert.Equal(t, []int64{4, 5}, scoped.IndustryIDs)
	assert.True(t, scoped.CanManageIndustry(5))
	assert.False(t, scoped.CanManageIndustry(6))

	empty, err := r.Resolve(context.Background(), domain.Actor{UserID: 3, Role: domain.RoleIndustryAdmin})
	require.NoError(t, err)
	assert.Equal(t, []int64{}, empty.ScopeIndustryIDs())

	_, err = r.Resolve(context.Background(), domain.Actor{UserID: 99, Role: domain.RoleIndustryAdmin})
	assert.ErrorIs(t, err, ErrUnknownUser)
}

func TestResolve_StudentSkipsLookup(t *testing.T) {
	users := &fakeUsers{}
	r := NewResolver(users)

	student, err := r.Resolve(context.Background(), domain.Actor{UserID: 7, Role: domain.RoleStudent})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleStudent, student.Role)
	assert.Equal(t, 0, users.calls)
}

func TestResolve_StaleAdminTokens(t *testing.T) {
	tests := []struct {
		name    string
		users   map[int64]*domain.User
		actor   domain.Actor
		wantErr error
		check   func(t *testing.T, got domain.Actor)
	}{
		{
			name:    "deleted global admin",
			users:   map[int64]*domain.User{},
			actor:   domain.Actor{UserID: 1, Role: domain.RoleAdmin},
			wantErr: ErrUnknownUser,
		},
		{
			name:    "global admin demoted to student",
			users:   map[int64]*domain.User{1: {ID: 1, Role: domain.RoleStudent}},
			actor:   domain.Actor{UserID: 1, Role: domain.RoleAdmin},
			wantErr: ErrRoleRevoked,
		},
		{
			name:  "global admin narrowed to industry_admin",
			users: map[int64]*domain.User{1: {ID: 1, Role: domain.RoleIndustryAdmin, IndustryIDs: []int64{3}}},
			actor: domain.Actor{UserID: 1, Role: domain.RoleAdmin},
			check: func(t *testing.T, got domain.Actor) {
				assert.Equal(t, domain.RoleIndustryAdmin, got.Role)
				assert.False(t, got.IsGlobalAdmin())
				assert.True(t, got.CanManageIndustry(3))
				assert.False(t, got.CanManageIndustry(4))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(&fakeUsers{users: tt.users})

			got, err := r.Resolve(context.Background(), tt.actor)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, got)
		})
	}
}

func TestResolve_StorageFailure(t *testing.T) {
	r := NewResolver(&fakeUsers{err: errors.New("connection refused")})

	_, err := r.Resolve(context.Background(), domain.Actor{UserID: 1, Role: domain.RoleAdmin})
	assert.ErrorIs(t, err, ErrInternal)
}
