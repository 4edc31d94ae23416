package user_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/fintrack/internal/apperr"
	"github.com/MrJamesThe3rd/fintrack/internal/database/databasetest"
	"github.com/MrJamesThe3rd/fintrack/internal/user"
)

type mocks struct {
	users  *user.MockRepository
	roles  *user.MockRoleRepository
	hasher *user.MockPasswordHasher
}

func newService(t *testing.T, setup func(m mocks)) *user.Service {
	t.Helper()

	ctrl := gomock.NewController(t)

	m := mocks{
		users:  user.NewMockRepository(ctrl),
		roles:  user.NewMockRoleRepository(ctrl),
		hasher: user.NewMockPasswordHasher(ctrl),
	}
	if setup != nil {
		setup(m)
	}

	return user.NewService(m.users, m.roles, m.hasher, databasetest.Passthrough(ctrl))
}

func TestService_Register(t *testing.T) {
	member := &user.Role{ID: uuid.New(), Name: user.RoleMember}
	params := user.RegisterParams{Username: "jane_doe", Email: "Jane@Example.com ", Password: "secret123"}

	type testCase struct {
		name      string
		params    user.RegisterParams
		setupMock func(m mocks)
		wantErr   error
	}

	tests := []testCase{
		{
			name:   "Success",
			params: params,
			setupMock: func(m mocks) {
				m.users.EXPECT().GetUserByUsername(gomock.Any(), "jane_doe").Return(nil, user.ErrNotFound)
				m.users.EXPECT().GetUserByEmail(gomock.Any(), "jane@example.com").Return(nil, user.ErrNotFound)
				m.roles.EXPECT().GetRoleByName(gomock.Any(), user.RoleMember).Return(member, nil)
				m.hasher.EXPECT().Hash("secret123").Return("$2a$hash", nil)
				m.users.EXPECT().
					CreateUser(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, u *user.User) error {
						assert.Equal(t, "jane@example.com", u.Email)
						assert.Equal(t, "$2a$hash", u.PasswordHash)
						assert.Equal(t, []user.Role{*member}, u.Roles)
						return nil
					})
			},
		},
		{
			name:   "CreatesMissingMemberRole",
			params: params,
			setupMock: func(m mocks) {
				m.users.EXPECT().GetUserByUsername(gomock.Any(), gomock.Any()).Return(nil, user.ErrNotFound)
				m.users.EXPECT().GetUserByEmail(gomock.Any(), gomock.Any()).Return(nil, user.ErrNotFound)
				m.roles.EXPECT().GetRoleByName(gomock.Any(), user.RoleMember).Return(nil, user.ErrRoleNotFound)
				m.roles.EXPECT().
					CreateRole(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, r *user.Role) error {
						assert.Equal(t, user.RoleMember, r.Name)
						return nil
					})
				m.hasher.EXPECT().Hash(gomock.Any()).Return("$2a$hash", nil)
				m.users.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name:   "UsernameTaken",
			params: params,
			setupMock: func(m mocks) {
				m.users.EXPECT().GetUserByUsername(gomock.Any(), "jane_doe").Return(&user.User{}, nil)
				m.users.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: user.ErrUsernameTaken,
		},
		{
			name:   "EmailTaken",
			params: params,
			setupMock: func(m mocks) {
				m.users.EXPECT().GetUserByUsername(gomock.Any(), "jane_doe").Return(nil, user.ErrNotFound)
				m.users.EXPECT().GetUserByEmail(gomock.Any(), "jane@example.com").Return(&user.User{}, nil)
				m.users.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: apperr.ErrAlreadyExists,
		},
		{
			name:    "InvalidEmail",
			params:  user.RegisterParams{Username: "jane_doe", Email: "not-an-email", Password: "secret123"},
			wantErr: apperr.ErrValidation,
		},
		{
			name:   "PasswordTooShort",
			params: user.RegisterParams{Username: "jane_doe", Email: "jane@example.com", Password: "123"},
			setupMock: func(m mocks) {
				m.users.EXPECT().GetUserByUsername(gomock.Any(), gomock.Any()).Return(nil, user.ErrNotFound)
				m.users.EXPECT().GetUserByEmail(gomock.Any(), gomock.Any()).Return(nil, user.ErrNotFound)
				m.roles.EXPECT().GetRoleByName(gomock.Any(), user.RoleMember).Return(member, nil)
			},
			wantErr: apperr.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newService(t, tt.setupMock)
			got, err := svc.Register(context.Background(), tt.params)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.True(t, got.HasRole(user.RoleMember))
		})
	}
}

func TestService_Login(t *testing.T) {
	stored := &user.User{ID: uuid.New(), Email: "jane@example.com", PasswordHash: "$2a$hash"}

	type testCase struct {
		name      string
		email     string
		password  string
		setupMock func(m mocks)
		wantErr   error
	}

	tests := []testCase{
		{
			name:     "Success",
			email:    "JANE@example.com",
			password: "secret123",
			setupMock: func(m mocks) {
				m.users.EXPECT().GetUserByEmail(gomock.Any(), "jane@example.com").Return(stored, nil)
				m.hasher.EXPECT().Verify("$2a$hash", "secret123").Return(true)
			},
		},
		{
			name:     "WrongPassword",
			email:    "jane@example.com",
			password: "nope",
			setupMock: func(m mocks) {
				m.users.EXPECT().GetUserByEmail(gomock.Any(), "jane@example.com").Return(stored, nil)
				m.hasher.EXPECT().Verify("$2a$hash", "nope").Return(false)
			},
			wantErr: user.ErrInvalidCredentials,
		},
		{
			name:     "UnknownEmail",
			email:    "ghost@example.com",
			password: "secret123",
			setupMock: func(m mocks) {
				m.users.EXPECT().GetUserByEmail(gomock.Any(), "ghost@example.com").Return(nil, user.ErrNotFound)
			},
			wantErr: user.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newService(t, tt.setupMock)
			got, err := svc.Login(context.Background(), tt.email, tt.password)

			if tt.wantErr != nil {
				assert.Same(t, tt.wantErr, err, "both failures must be indistinguishable")
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, stored.ID, got.ID)
		})
	}
}

func TestService_GrantRole(t *testing.T) {
	admin := &user.Role{ID: uuid.New(), Name: user.RoleAdmin}

	t.Run("AttachesRole", func(t *testing.T) {
		u := &user.User{ID: uuid.New(), Email: "jane@example.com"}

		svc := newService(t, func(m mocks) {
			m.users.EXPECT().GetUserByEmail(gomock.Any(), "jane@example.com").Return(u, nil)
			m.roles.EXPECT().GetRoleByName(gomock.Any(), user.RoleAdmin).Return(admin, nil)
			m.users.EXPECT().AttachRole(gomock.Any(), u.ID, admin.ID).Return(nil)
		})

		got, err := svc.GrantRole(context.Background(), "jane@example.com", user.RoleAdmin)

		require.NoError(t, err)
		assert.True(t, got.HasRole(user.RoleAdmin))
	})

	t.Run("AlreadyHeld", func(t *testing.T) {
		u := &user.User{ID: uuid.New(), Roles: []user.Role{*admin}}

		svc := newService(t, func(m mocks) {
			m.users.EXPECT().GetUserByEmail(gomock.Any(), gomock.Any()).Return(u, nil)
		})

		_, err := svc.GrantRole(context.Background(), "jane@example.com", user.RoleAdmin)
		assert.NoError(t, err)
	})

	t.Run("UnknownUser", func(t *testing.T) {
		svc := newService(t, func(m mocks) {
			m.users.EXPECT().GetUserByEmail(gomock.Any(), gomock.Any()).Return(nil, user.ErrNotFound)
		})

		_, err := svc.GrantRole(context.Background(), "ghost@example.com", user.RoleAdmin)
		assert.ErrorIs(t, err, user.ErrNotFound)
	})
}

func TestService_RevokeRole(t *testing.T) {
	admin := user.Role{ID: uuid.New(), Name: user.RoleAdmin}
	member := user.Role{ID: uuid.New(), Name: user.RoleMember}
	u := &user.User{ID: uuid.New(), Roles: []user.Role{admin, member}}

	svc := newService(t, func(m mocks) {
		m.users.EXPECT().GetUserByEmail(gomock.Any(), "jane@example.com").Return(u, nil)
		m.roles.EXPECT().GetRoleByName(gomock.Any(), user.RoleAdmin).Return(&admin, nil)
		m.users.EXPECT().DetachRole(gomock.Any(), u.ID, admin.ID).Return(nil)
	})

	got, err := svc.RevokeRole(context.Background(), "jane@example.com", user.RoleAdmin)

	require.NoError(t, err)
	assert.Equal(t, []string{user.RoleMember}, got.RoleNames())
}

func TestService_DeleteRole(t *testing.T) {
	role := &user.Role{ID: uuid.New(), Name: user.RoleMember}

	svc := newService(t, func(m mocks) {
		m.roles.EXPECT().GetRoleByName(gomock.Any(), user.RoleMember).Return(role, nil)
		m.roles.EXPECT().DeleteRole(gomock.Any(), role.ID).Return(user.ErrRoleNotDeletable)
	})

	err := svc.DeleteRole(context.Background(), user.RoleMember)
	assert.ErrorIs(t, err, apperr.ErrNotDeletable)
}

func TestService_Delete(t *testing.T) {
	id := uuid.New()

	svc := newService(t, func(m mocks) {
		m.users.EXPECT().GetUser(gomock.Any(), id).Return(&user.User{ID: id}, nil)
		m.users.EXPECT().DeleteUser(gomock.Any(), id).Return(nil)
	})

	assert.NoError(t, svc.Delete(context.Background(), id))
}
