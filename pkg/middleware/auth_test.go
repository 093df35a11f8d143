package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap/zaptest"

	"travel-booking/internal/data/entity"
	"travel-booking/internal/data/repository"
	"travel-booking/pkg/middleware"
	"travel-booking/pkg/utils"
)

func TestAuthSession(t *testing.T) {
	userID := uuid.New()
	token := uuid.NewString()

	tests := []struct {
		name       string
		header     string
		setupMock  func(m *repository.MockSessionRepository)
		wantStatus int
	}{
		{
			name:       "missing header",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong scheme",
			header:     "Basic " + token,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "expired session",
			header: "Bearer " + token,
			setupMock: func(m *repository.MockSessionRepository) {
				m.EXPECT().FindValidSession(gomock.Any(), token).Return(nil, nil)
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "repository error",
			header: "Bearer " + token,
			setupMock: func(m *repository.MockSessionRepository) {
				m.EXPECT().FindValidSession(gomock.Any(), token).Return(nil, errors.New("db down"))
			},
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:   "valid session",
			header: "Bearer " + token,
			setupMock: func(m *repository.MockSessionRepository) {
				m.EXPECT().FindValidSession(gomock.Any(), token).Return(&entity.Session{
					UserID:    userID,
					ExpiresAt: time.Now().Add(time.Hour),
				}, nil)
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			sessions := repository.NewMockSessionRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(sessions)
			}

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got, ok := utils.GetUserIDFromContext(r.Context())
				assert.True(t, ok)
				assert.Equal(t, userID, got)
				gotToken, _ := utils.GetTokenFromContext(r.Context())
				assert.Equal(t, token, gotToken)
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			middleware.AuthSession(sessions, zaptest.NewLogger(t))(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestRecover(t *testing.T) {
	h := middleware.Recover(zaptest.NewLogger(t))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Internal server error")
}
