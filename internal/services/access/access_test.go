package access

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/novelamania/internal/models"
)

type MockUsers struct {
	mock.Mock
}

func (m *MockUsers) GetUserByUID(ctx context.Context, uid string) (*models.User, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type MockEvaluator struct {
	mock.Mock
}

func (m *MockEvaluator) Evaluate(ctx context.Context, user *models.User) (models.Entitlement, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(models.Entitlement), args.Error(1)
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name    string
		id      *models.Identity
		allowed []models.Role
		wantErr error
	}{
		{name: "allowed", id: &models.Identity{Role: models.RoleAdmin}, allowed: []models.Role{models.RoleAdmin}},
		{name: "one of several", id: &models.Identity{Role: models.RolePartner}, allowed: []models.Role{models.RoleAdmin, models.RolePartner}},
		{name: "not allowed", id: &models.Identity{Role: models.RoleSubscriber}, allowed: []models.Role{models.RoleAdmin}, wantErr: models.ErrForbidden},
		{name: "customer is not subscriber", id: &models.Identity{Role: models.RoleCustomer}, allowed: []models.Role{models.RoleSubscriber}, wantErr: models.ErrForbidden},
		{name: "anonymous", id: nil, allowed: []models.Role{models.RoleAdmin}, wantErr: models.ErrUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RequireRole(tt.id, tt.allowed...)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRequireResourceOwnerOrAdmin(t *testing.T) {
	assert.NoError(t, RequireResourceOwnerOrAdmin(&models.Identity{UserUID: "u1", Role: models.RoleSubscriber}, "u1"))
	assert.NoError(t, RequireResourceOwnerOrAdmin(&models.Identity{UserUID: "a", Role: models.RoleAdmin}, "u1"))
	assert.NoError(t, RequireResourceOwnerOrAdmin(&models.Identity{UserUID: "p", Role: models.RolePartner}, "u1"))
	assert.ErrorIs(t, RequireResourceOwnerOrAdmin(&models.Identity{UserUID: "u2", Role: models.RoleCustomer}, "u1"), models.ErrForbidden)
	assert.ErrorIs(t, RequireResourceOwnerOrAdmin(nil, "u1"), models.ErrUnauthorized)
}

func TestGate_RequireActiveSubscription(t *testing.T) {
	ctx := context.Background()
	user := &models.User{UID: "u1", Role: models.RoleSubscriber}

	t.Run("admin bypass", func(t *testing.T) {
		users := new(MockUsers)
		ev := new(MockEvaluator)
		ent, err := NewGate(users, ev).RequireActiveSubscription(ctx, &models.Identity{UserUID: "a", Role: models.RoleAdmin})
		require.NoError(t, err)
		assert.True(t, ent.Active)
		users.AssertNotCalled(t, "GetUserByUID", mock.Anything, mock.Anything)
	})

	t.Run("active", func(t *testing.T) {
		users := new(MockUsers)
		ev := new(MockEvaluator)
		users.On("GetUserByUID", ctx, "u1").Return(user, nil).Once()
		ev.On("Evaluate", ctx, user).Return(models.Entitlement{Active: true, DaysRemaining: 12}, nil).Once()

		ent, err := NewGate(users, ev).RequireActiveSubscription(ctx, &models.Identity{UserUID: "u1", Role: models.RoleSubscriber})
		require.NoError(t, err)
		assert.Equal(t, 12, ent.DaysRemaining)
	})

	t.Run("inactive", func(t *testing.T) {
		users := new(MockUsers)
		ev := new(MockEvaluator)
		users.On("GetUserByUID", ctx, "u1").Return(user, nil).Once()
		ev.On("Evaluate", ctx, user).Return(models.Entitlement{}, nil).Once()

		_, err := NewGate(users, ev).RequireActiveSubscription(ctx, &models.Identity{UserUID: "u1", Role: models.RoleSubscriber})
		assert.ErrorIs(t, err, models.ErrSubscriptionRequired)
		assert.Contains(t, err.Error(), "contact the administrator")
	})

	t.Run("partner without subscription is denied", func(t *testing.T) {
		partner := &models.User{UID: "p1", Role: models.RolePartner}
		users := new(MockUsers)
		ev := new(MockEvaluator)
		users.On("GetUserByUID", ctx, "p1").Return(partner, nil).Once()
		ev.On("Evaluate", ctx, partner).Return(models.Entitlement{}, nil).Once()

		_, err := NewGate(users, ev).RequireActiveSubscription(ctx, &models.Identity{UserUID: "p1", Role: models.RolePartner})
		assert.ErrorIs(t, err, models.ErrSubscriptionRequired)
	})

	t.Run("lookup error", func(t *testing.T) {
		users := new(MockUsers)
		users.On("GetUserByUID", ctx, "u1").Return(nil, errors.New("db down")).Once()

		_, err := NewGate(users, new(MockEvaluator)).RequireActiveSubscription(ctx, &models.Identity{UserUID: "u1"})
		require.Error(t, err)
		assert.NotErrorIs(t, err, models.ErrSubscriptionRequired)
	})
}

func TestGate_Entitlement(t *testing.T) {
	ctx := context.Background()
	user := &models.User{UID: "u1", Role: models.RoleSubscriber}

	t.Run("expired subscription is reported without error", func(t *testing.T) {
		users := new(MockUsers)
		ev := new(MockEvaluator)
		users.On("GetUserByUID", ctx, "u1").Return(user, nil).Once()
		ev.On("Evaluate", ctx, user).Return(models.Entitlement{Active: false, DaysRemaining: 0, PackageName: "Mensal"}, nil).Once()

		ent, err := NewGate(users, ev).Entitlement(ctx, &models.Identity{UserUID: "u1", Role: models.RoleSubscriber})
		require.NoError(t, err)
		assert.False(t, ent.Active)
		assert.Equal(t, "Mensal", ent.PackageName)
	})

	t.Run("no identity", func(t *testing.T) {
		_, err := NewGate(new(MockUsers), new(MockEvaluator)).Entitlement(ctx, nil)
		assert.ErrorIs(t, err, models.ErrUnauthorized)
	})
}
