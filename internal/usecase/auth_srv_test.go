package usecase_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap/zaptest"

	"travel-booking/internal/data/entity"
	"travel-booking/internal/data/repository"
	"travel-booking/internal/dto/request"
	"travel-booking/internal/usecase"
	"travel-booking/pkg/utils"
)

type authMocks struct {
	users    *repository.MockUserRepository
	sessions *repository.MockSessionRepository
}

func newAuthService(t *testing.T) (usecase.AuthService, authMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)

	m := authMocks{
		users:    repository.NewMockUserRepository(ctrl),
		sessions: repository.NewMockSessionRepository(ctrl),
	}
	repo := &repository.Repository{User: m.users, Session: m.sessions}
	config := &utils.Config{Session: utils.SessionConfig{ExpiryHours: 2}}

	return usecase.NewAuthService(repo, config, zaptest.NewLogger(t)), m
}

func TestAuthService_Register(t *testing.T) {
	validReq := request.RegisterRequest{
		Username: "traveler",
		Email:    "traveler@example.com",
		Password: "correct-horse",
	}

	tests := []struct {
		name      string
		req       request.RegisterRequest
		setupMock func(m authMocks)
		wantErr   error
	}{
		{
			name: "Success",
			req:  validReq,
			setupMock: func(m authMocks) {
				m.users.EXPECT().FindByEmail(gomock.Any(), validReq.Email).Return(nil, nil)
				m.users.EXPECT().FindByUsername(gomock.Any(), validReq.Username).Return(nil, nil)
				m.users.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, u *entity.User) error {
						assert.NotEqual(t, validReq.Password, u.PasswordHash)
						assert.True(t, utils.CheckPasswordHash(validReq.Password, u.PasswordHash))
						return nil
					})
				m.sessions.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "EmailTaken",
			req:  validReq,
			setupMock: func(m authMocks) {
				m.users.EXPECT().FindByEmail(gomock.Any(), validReq.Email).Return(sampleUser(), nil)
			},
			wantErr: usecase.ErrConflict,
		},
		{
			name: "RaceOnUniqueConstraint",
			req:  validReq,
			setupMock: func(m authMocks) {
				m.users.EXPECT().FindByEmail(gomock.Any(), validReq.Email).Return(nil, nil)
				m.users.EXPECT().FindByUsername(gomock.Any(), validReq.Username).Return(nil, nil)
				m.users.EXPECT().Create(gomock.Any(), gomock.Any()).
					Return(fmt.Errorf("create user: %w", repository.ErrDuplicate))
			},
			wantErr: usecase.ErrConflict,
		},
		{
			name:    "ShortPassword",
			req:     request.RegisterRequest{Username: "traveler", Email: "traveler@example.com", Password: "short"},
			wantErr: usecase.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newAuthService(t)
			if tt.setupMock != nil {
				tt.setupMock(m)
			}

			got, err := svc.Register(context.Background(), &tt.req)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, got.Token)
			assert.WithinDuration(t, time.Now().Add(2*time.Hour), got.ExpiresAt, time.Minute)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hash, err := utils.HashPassword("correct-horse")
	require.NoError(t, err)

	user := sampleUser()
	user.PasswordHash = hash

	t.Run("ByUsername", func(t *testing.T) {
		svc, m := newAuthService(t)
		m.users.EXPECT().FindByEmail(gomock.Any(), "guest").Return(nil, nil)
		m.users.EXPECT().FindByUsername(gomock.Any(), "guest").Return(user, nil)
		m.sessions.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		got, err := svc.Login(context.Background(), &request.LoginRequest{Username: "guest", Password: "correct-horse"})

		require.NoError(t, err)
		assert.Equal(t, user.ID.String(), got.UserID)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		svc, m := newAuthService(t)
		m.users.EXPECT().FindByEmail(gomock.Any(), user.Email).Return(user, nil)

		_, err := svc.Login(context.Background(), &request.LoginRequest{Username: user.Email, Password: "nope"})

		assert.ErrorIs(t, err, usecase.ErrUnauthorized)
	})
}

func TestAuthService_Logout(t *testing.T) {
	svc, m := newAuthService(t)
	m.sessions.EXPECT().Revoke(gomock.Any(), "tok").Return(repository.ErrNotFound)

	assert.ErrorIs(t, svc.Logout(context.Background(), "tok"), usecase.ErrNotFound)
}
