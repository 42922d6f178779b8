package middlewarectx

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/novelamania/internal/http/response"
	"github.com/magabrotheeeer/novelamania/internal/models"
)

type AuthenticatorMock struct {
	mock.Mock
}

func (m *AuthenticatorMock) Authenticate(ctx context.Context, token string) (*models.Identity, error) {
	args := m.Called(ctx, token)
	id, _ := args.Get(0).(*models.Identity)
	return id, args.Error(1)
}

type GateMock struct {
	mock.Mock
}

func (m *GateMock) RequireActiveSubscription(ctx context.Context, id *models.Identity) (models.Entitlement, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Entitlement), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) response.ErrorResponse {
	t.Helper()
	var body response.ErrorResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	return body
}

// capture запоминает пользователя и токен, дошедшие до обработчика.
type capture struct {
	called bool
	id     *models.Identity
	token  string
	ent    models.Entitlement
}

func (c *capture) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.called = true
		c.id, _ = IdentityFrom(r.Context())
		c.token, _ = r.Context().Value(TokenKey).(string)
		c.ent, _ = EntitlementFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestTokenFromRequest(t *testing.T) {
	tests := []struct {
		name   string
		header string
		cookie string
		want   string
	}{
		{name: "header only", header: "h-token", want: "h-token"},
		{name: "cookie only", cookie: "c-token", want: "c-token"},
		{name: "header wins over cookie", header: "h-token", cookie: "c-token", want: "h-token"},
		{name: "nothing", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(TokenName, tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: TokenName, Value: tt.cookie})
			}
			assert.Equal(t, tt.want, TokenFromRequest(req))
		})
	}
}

func TestAuthenticate(t *testing.T) {
	identity := &models.Identity{UserUID: "user-1", Role: models.RoleSubscriber, Status: models.StatusActive}

	tests := []struct {
		name       string
		header     string
		cookie     string
		token      string
		authResult *models.Identity
		authErr    error
		wantStatus int
		wantError  string
	}{
		{
			name:       "header token",
			header:     "h-token",
			cookie:     "c-token",
			token:      "h-token",
			authResult: identity,
			wantStatus: http.StatusOK,
		},
		{
			name:       "cookie token",
			cookie:     "c-token",
			token:      "c-token",
			authResult: identity,
			wantStatus: http.StatusOK,
		},
		{
			name:       "no token",
			token:      "",
			authErr:    fmt.Errorf("services.auth.Authenticate: %w", models.ErrNoToken),
			wantStatus: http.StatusUnauthorized,
			wantError:  "token is required",
		},
		{
			name:       "expired token",
			header:     "old",
			token:      "old",
			authErr:    fmt.Errorf("services.auth.Authenticate: %w", models.ErrTokenExpired),
			wantStatus: http.StatusUnauthorized,
			wantError:  "token expired",
		},
		{
			name:       "evicted session",
			header:     "evicted",
			token:      "evicted",
			authErr:    fmt.Errorf("services.auth.Authenticate: %w", models.ErrSessionNotFound),
			wantStatus: http.StatusUnauthorized,
			wantError:  "session not found, sign in again",
		},
		{
			name:       "inactive account",
			header:     "t",
			token:      "t",
			authErr:    fmt.Errorf("services.auth.Authenticate: %w", models.ErrAccountInactive),
			wantStatus: http.StatusUnauthorized,
			wantError:  "account is inactive, contact the administrator",
		},
		{
			name:       "store failure",
			header:     "t",
			token:      "t",
			authErr:    fmt.Errorf("storage.FindSessionByToken: connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantError:  "internal error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authn := new(AuthenticatorMock)
			authn.On("Authenticate", mock.Anything, tt.token).Return(tt.authResult, tt.authErr).Once()

			req := httptest.NewRequest(http.MethodGet, "/api/check/verify-token", nil)
			if tt.header != "" {
				req.Header.Set(TokenName, tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: TokenName, Value: tt.cookie})
			}
			rr := httptest.NewRecorder()

			var c capture
			Authenticate(discardLogger(), authn)(c.handler()).ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantError != "" {
				assert.False(t, c.called)
				body := decodeError(t, rr)
				assert.Equal(t, response.StatusError, body.Status)
				assert.Equal(t, tt.wantError, body.Error)
			} else {
				require.True(t, c.called)
				assert.Equal(t, identity, c.id)
				assert.Equal(t, tt.token, c.token)
			}
			authn.AssertExpectations(t)
		})
	}
}

func TestOptionalAuthenticate(t *testing.T) {
	admin := &models.Identity{UserUID: "admin-1", Role: models.RoleAdmin, Status: models.StatusActive}

	t.Run("anonymous request passes without identity", func(t *testing.T) {
		authn := new(AuthenticatorMock)
		req := httptest.NewRequest(http.MethodPost, "/api/user/signup", nil)
		rr := httptest.NewRecorder()

		var c capture
		OptionalAuthenticate(discardLogger(), authn)(c.handler()).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.True(t, c.called)
		assert.Nil(t, c.id)
		authn.AssertNotCalled(t, "Authenticate", mock.Anything, mock.Anything)
	})

	t.Run("valid token sets identity", func(t *testing.T) {
		authn := new(AuthenticatorMock)
		authn.On("Authenticate", mock.Anything, "admin-token").Return(admin, nil).Once()
		req := httptest.NewRequest(http.MethodPost, "/api/user/signup", nil)
		req.Header.Set(TokenName, "admin-token")
		rr := httptest.NewRecorder()

		var c capture
		OptionalAuthenticate(discardLogger(), authn)(c.handler()).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, admin, c.id)
		authn.AssertExpectations(t)
	})

	t.Run("invalid token is rejected", func(t *testing.T) {
		authn := new(AuthenticatorMock)
		authn.On("Authenticate", mock.Anything, "garbage").
			Return(nil, fmt.Errorf("services.auth.Authenticate: %w", models.ErrInvalidToken)).Once()
		req := httptest.NewRequest(http.MethodPost, "/api/user/signup", nil)
		req.Header.Set(TokenName, "garbage")
		rr := httptest.NewRecorder()

		var c capture
		OptionalAuthenticate(discardLogger(), authn)(c.handler()).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.False(t, c.called)
		assert.Equal(t, "invalid token", decodeError(t, rr).Error)
	})
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name       string
		identity   *models.Identity
		wantStatus int
	}{
		{name: "admin allowed", identity: &models.Identity{UserUID: "a", Role: models.RoleAdmin}, wantStatus: http.StatusOK},
		{name: "subscriber forbidden", identity: &models.Identity{UserUID: "s", Role: models.RoleSubscriber}, wantStatus: http.StatusForbidden},
		{name: "partner forbidden", identity: &models.Identity{UserUID: "p", Role: models.RolePartner}, wantStatus: http.StatusForbidden},
		{name: "no identity", identity: nil, wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/package/create", nil)
			if tt.identity != nil {
				req = req.WithContext(WithIdentity(req.Context(), tt.identity))
			}
			rr := httptest.NewRecorder()

			var c capture
			RequireRole(discardLogger(), models.RoleAdmin)(c.handler()).ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantStatus == http.StatusOK, c.called)
		})
	}
}

func TestRequireActiveSubscription(t *testing.T) {
	subscriber := &models.Identity{UserUID: "user-1", Role: models.RoleSubscriber}
	end := time.Date(2026, 11, 14, 9, 0, 0, 0, time.UTC)

	t.Run("active subscription passes with entitlement in context", func(t *testing.T) {
		ent := models.Entitlement{Active: true, DaysRemaining: 30, PackageName: "Mensal", EndDate: &end}
		gate := new(GateMock)
		gate.On("RequireActiveSubscription", mock.Anything, subscriber).Return(ent, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/check/checkSubscription", nil)
		req = req.WithContext(WithIdentity(req.Context(), subscriber))
		rr := httptest.NewRecorder()

		var c capture
		RequireActiveSubscription(discardLogger(), gate)(c.handler()).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		require.True(t, c.called)
		assert.Equal(t, ent, c.ent)
		gate.AssertExpectations(t)
	})

	t.Run("missing subscription tells to contact the administrator", func(t *testing.T) {
		gate := new(GateMock)
		gate.On("RequireActiveSubscription", mock.Anything, subscriber).
			Return(models.Entitlement{}, fmt.Errorf("access.RequireActiveSubscription: %w", models.ErrSubscriptionRequired)).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/package/getall", nil)
		req = req.WithContext(WithIdentity(req.Context(), subscriber))
		rr := httptest.NewRecorder()

		var c capture
		RequireActiveSubscription(discardLogger(), gate)(c.handler()).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
		assert.False(t, c.called)
		assert.Contains(t, decodeError(t, rr).Error, "contact the administrator")
	})

	t.Run("no identity", func(t *testing.T) {
		gate := new(GateMock)
		req := httptest.NewRequest(http.MethodGet, "/api/package/getall", nil)
		rr := httptest.NewRecorder()

		var c capture
		RequireActiveSubscription(discardLogger(), gate)(c.handler()).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.False(t, c.called)
		gate.AssertNotCalled(t, "RequireActiveSubscription", mock.Anything, mock.Anything)
	})
}

func TestRateLimit(t *testing.T) {
	var c capture
	h := RateLimit(discardLogger(), 0.001, 2)(c.handler())

	codes := make([]int, 0, 3)
	for range 3 {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/signin", nil))
		codes = append(codes, rr.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRateLimit_PerClient(t *testing.T) {
	var c capture
	h := RateLimit(discardLogger(), 0.001, 1)(c.handler())

	send := func(remote string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/signin", nil)
		req.RemoteAddr = remote
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		return rr.Code
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.1:5000"))
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1:5001"), "another port of the same host shares the limit")
	assert.Equal(t, http.StatusOK, send("10.0.0.2:5000"), "a throttled client must not block others")
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.2:5000"))
}

func TestClientLimiters_ForgetIdleClients(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	limiters := newClientLimiters(0.001, 1, time.Minute)
	limiters.now = func() time.Time { return now }

	assert.True(t, limiters.allow("10.0.0.1"))
	assert.False(t, limiters.allow("10.0.0.1"))
	assert.Equal(t, 1, limiters.size())

	now = now.Add(2 * time.Minute)
	assert.True(t, limiters.allow("10.0.0.2"))
	assert.Equal(t, 1, limiters.size(), "idle client is dropped on sweep")

	assert.True(t, limiters.allow("10.0.0.1"), "forgotten client starts with a full bucket")
}
