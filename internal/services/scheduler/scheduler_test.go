package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/novelamania/internal/models"
)

type MockPurger struct {
	mock.Mock
}

func (m *MockPurger) PurgeExpired(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type MockFinder struct {
	mock.Mock
}

func (m *MockFinder) FindSubscriptionsExpiringBetween(ctx context.Context, from, to time.Time) ([]*models.ExpiringSubscriptionMessage, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ExpiringSubscriptionMessage), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyExpiringSubscription(ctx context.Context, msg models.ExpiringSubscriptionMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string, result any) (bool, error) {
	args := m.Called(ctx, key, result)
	if args.Bool(0) {
		*(result.(*bool)) = true
	}
	return args.Bool(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

var fixedNow = time.Date(2026, 10, 15, 8, 0, 0, 0, time.UTC)

func newTestService(p SessionPurger, f SubscriptionFinder, n ExpiryNotifier, c Cache) *SchedulerService {
	s := NewSchedulerService(p, f, n, c, newNoopLogger(), Intervals{SessionPurge: time.Hour, ExpiryNotice: 12 * time.Hour})
	s.now = func() time.Time { return fixedNow }
	return s
}

func TestSchedulerService_NotifyExpiring(t *testing.T) {
	from := fixedNow.Add(24 * time.Hour)
	to := from.Add(12 * time.Hour)
	entry := &models.ExpiringSubscriptionMessage{
		UserUID:     "u1",
		Email:       "reader@example.com",
		FirstName:   "Ana",
		PackageName: "Mensal",
		EndDate:     from.Add(time.Hour),
	}

	tests := []struct {
		name       string
		setupMocks func(*MockFinder, *MockNotifier, *MockCache)
	}{
		{
			name: "publishes and marks",
			setupMocks: func(f *MockFinder, n *MockNotifier, c *MockCache) {
				f.On("FindSubscriptionsExpiringBetween", mock.Anything, from, to).
					Return([]*models.ExpiringSubscriptionMessage{entry}, nil).Once()
				c.On("Get", mock.Anything, mock.AnythingOfType("string"), mock.Anything).Return(false, nil).Once()
				n.On("NotifyExpiringSubscription", mock.Anything, *entry).Return(nil).Once()
				c.On("Set", mock.Anything, mock.AnythingOfType("string"), true, 36*time.Hour).Return(nil).Once()
			},
		},
		{
			name: "skips already notified",
			setupMocks: func(f *MockFinder, _ *MockNotifier, c *MockCache) {
				f.On("FindSubscriptionsExpiringBetween", mock.Anything, from, to).
					Return([]*models.ExpiringSubscriptionMessage{entry}, nil).Once()
				c.On("Get", mock.Anything, mock.AnythingOfType("string"), mock.Anything).Return(true, nil).Once()
			},
		},
		{
			name: "cache failure still publishes",
			setupMocks: func(f *MockFinder, n *MockNotifier, c *MockCache) {
				f.On("FindSubscriptionsExpiringBetween", mock.Anything, from, to).
					Return([]*models.ExpiringSubscriptionMessage{entry}, nil).Once()
				c.On("Get", mock.Anything, mock.Anything, mock.Anything).Return(false, errors.New("redis down")).Once()
				n.On("NotifyExpiringSubscription", mock.Anything, *entry).Return(nil).Once()
				c.On("Set", mock.Anything, mock.Anything, true, mock.Anything).Return(errors.New("redis down")).Once()
			},
		},
		{
			name: "publish failure is not marked",
			setupMocks: func(f *MockFinder, n *MockNotifier, c *MockCache) {
				f.On("FindSubscriptionsExpiringBetween", mock.Anything, from, to).
					Return([]*models.ExpiringSubscriptionMessage{entry}, nil).Once()
				c.On("Get", mock.Anything, mock.Anything, mock.Anything).Return(false, nil).Once()
				n.On("NotifyExpiringSubscription", mock.Anything, *entry).Return(errors.New("channel closed")).Once()
			},
		},
		{
			name: "repository error",
			setupMocks: func(f *MockFinder, _ *MockNotifier, _ *MockCache) {
				f.On("FindSubscriptionsExpiringBetween", mock.Anything, from, to).
					Return(nil, errors.New("db error")).Once()
			},
		},
		{
			name: "nothing found",
			setupMocks: func(f *MockFinder, _ *MockNotifier, _ *MockCache) {
				f.On("FindSubscriptionsExpiringBetween", mock.Anything, from, to).
					Return([]*models.ExpiringSubscriptionMessage{}, nil).Once()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			finder := new(MockFinder)
			notifier := new(MockNotifier)
			cache := new(MockCache)
			tt.setupMocks(finder, notifier, cache)

			newTestService(new(MockPurger), finder, notifier, cache).NotifyExpiring(context.Background())

			finder.AssertExpectations(t)
			notifier.AssertExpectations(t)
			cache.AssertExpectations(t)
			if tt.name == "publish failure is not marked" {
				cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}

func TestSchedulerService_NotifyExpiringWithoutCache(t *testing.T) {
	entry := &models.ExpiringSubscriptionMessage{UserUID: "u1", Email: "reader@example.com"}
	finder := new(MockFinder)
	notifier := new(MockNotifier)
	finder.On("FindSubscriptionsExpiringBetween", mock.Anything, mock.Anything, mock.Anything).
		Return([]*models.ExpiringSubscriptionMessage{entry}, nil).Once()
	notifier.On("NotifyExpiringSubscription", mock.Anything, *entry).Return(nil).Once()

	newTestService(new(MockPurger), finder, notifier, nil).NotifyExpiring(context.Background())

	notifier.AssertExpectations(t)
}

func TestSchedulerService_PurgeSessions(t *testing.T) {
	purger := new(MockPurger)
	purger.On("PurgeExpired", mock.Anything).Return(3, nil).Once()
	purger.On("PurgeExpired", mock.Anything).Return(0, errors.New("db error")).Once()

	s := newTestService(purger, new(MockFinder), new(MockNotifier), nil)
	s.PurgeSessions(context.Background())
	s.PurgeSessions(context.Background())

	purger.AssertExpectations(t)
}

func TestSchedulerService_RunStopsOnCancel(t *testing.T) {
	purged := make(chan struct{}, 1)
	checked := make(chan struct{}, 1)
	purger := new(MockPurger)
	finder := new(MockFinder)
	purger.On("PurgeExpired", mock.Anything).Return(0, nil).Run(func(mock.Arguments) {
		select {
		case purged <- struct{}{}:
		default:
		}
	})
	finder.On("FindSubscriptionsExpiringBetween", mock.Anything, mock.Anything, mock.Anything).
		Return([]*models.ExpiringSubscriptionMessage{}, nil).Run(func(mock.Arguments) {
		select {
		case checked <- struct{}{}:
		default:
		}
	})

	s := newTestService(purger, finder, new(MockNotifier), nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	for _, ch := range []chan struct{}{purged, checked} {
		select {
		case <-ch:
		case <-time.After(time.Second):
			t.Fatal("job did not run on start")
		}
	}
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop after cancel")
	}
}
