package profile

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/novelamania/internal/http/middlewarectx"
	"github.com/magabrotheeeer/novelamania/internal/models"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Profile(ctx context.Context, uid string) (*models.User, error) {
	args := m.Called(ctx, uid)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func TestHandler_ServeHTTP(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	id := &models.Identity{UserUID: "user-1", Role: models.RoleCustomer}

	t.Run("profile without password hash", func(t *testing.T) {
		svc := new(ServiceMock)
		svc.On("Profile", mock.Anything, "user-1").Return(&models.User{
			UID: "user-1", FirstName: "Ana", Contact: "841234567", PasswordHash: "$2a$10$secret",
			ResetPasswordToken: "reset-abc", Role: models.RoleCustomer, Status: models.StatusActive,
		}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/user/userprofile", nil)
		req = req.WithContext(middlewarectx.WithIdentity(req.Context(), id))
		rr := httptest.NewRecorder()
		New(log, svc).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"contact1":"841234567"`)
		assert.NotContains(t, rr.Body.String(), "$2a$10$secret")
		assert.NotContains(t, rr.Body.String(), "reset-abc")
	})

	t.Run("store failure", func(t *testing.T) {
		svc := new(ServiceMock)
		svc.On("Profile", mock.Anything, "user-1").Return(nil, errors.New("db down")).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/user/userprofile", nil)
		req = req.WithContext(middlewarectx.WithIdentity(req.Context(), id))
		rr := httptest.NewRecorder()
		New(log, svc).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})

	t.Run("no identity", func(t *testing.T) {
		rr := httptest.NewRecorder()
		New(log, new(ServiceMock)).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/user/userprofile", nil))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
