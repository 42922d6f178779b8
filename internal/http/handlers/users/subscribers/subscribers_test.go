package subscribers

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

	"github.com/magabrotheeeer/novelamania/internal/models"
	services "github.com/magabrotheeeer/novelamania/internal/services/auth"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Subscribers(ctx context.Context) (*services.SubscriberList, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).(*services.SubscriberList)
	return list, args.Error(1)
}

func TestHandler_ServeHTTP(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("both lists", func(t *testing.T) {
		svc := new(ServiceMock)
		svc.On("Subscribers", mock.Anything).Return(&services.SubscriberList{
			Subscribers:    []models.Profile{{ID: "u1", FirstName: "Ana"}},
			NonSubscribers: []models.Profile{},
		}, nil).Once()

		rr := httptest.NewRecorder()
		New(log, svc).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/user/subscribers", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"subscribers":[{"id":"u1"`)
		assert.Contains(t, rr.Body.String(), `"nonSubscribers":[]`)
	})

	t.Run("store failure", func(t *testing.T) {
		svc := new(ServiceMock)
		svc.On("Subscribers", mock.Anything).Return(nil, errors.New("db down")).Once()

		rr := httptest.NewRecorder()
		New(log, svc).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/user/subscribers", nil))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.NotContains(t, rr.Body.String(), "db down")
	})
}
