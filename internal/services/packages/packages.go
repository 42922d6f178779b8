// Package packages управляет каталогом пакетов подписки и оформлением подписки пользователю.
package packages

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/magabrotheeeer/novelamania/internal/lib/sl"
	"github.com/magabrotheeeer/novelamania/internal/models"
	"github.com/magabrotheeeer/novelamania/internal/services/access"
	"github.com/magabrotheeeer/novelamania/internal/services/entitlement"
)

// Repository хранилище пакетов и подписок.
type Repository interface {
	CreatePackage(ctx context.Context, pkg models.Package) (string, error)
	UpdatePackage(ctx context.Context, pkg models.Package) error
	DeletePackage(ctx context.Context, id string) error
	GetPackage(ctx context.Context, id string) (*models.Package, error)
	ListPackages(ctx context.Context) ([]*models.Package, error)
	GetUserByUID(ctx context.Context, uid string) (*models.User, error)
	SetSubscription(ctx context.Context, uid string, sub models.Subscription) error
}

// Cache кэш пакетов.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, keys ...string) error
}

// Input поля пакета, задаваемые администратором.
type Input struct {
	Name           string
	DurationInDays int
	Price          float64
}

func (in Input) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: name is required", models.ErrValidation)
	}
	if in.DurationInDays < 1 {
		return fmt.Errorf("%w: durationInDays must be at least 1", models.ErrValidation)
	}
	if in.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", models.ErrValidation)
	}
	return nil
}

// Service каталог пакетов с кэшированием чтения по ID.
type Service struct {
	repo     Repository
	cache    Cache
	cacheTTL time.Duration
	log      *slog.Logger
	now      func() time.Time
}

// NewService создает Service. cache может быть nil.
func NewService(repo Repository, cache Cache, cacheTTL time.Duration, log *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTL,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// WithClock подменяет источник времени.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func cacheKey(id string) string {
	return "package:" + id
}

// Create добавляет пакет и возвращает его.
func (s *Service) Create(ctx context.Context, in Input) (*models.Package, error) {
	const op = "packages.Create"
	if err := in.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	pkg := models.Package{Name: strings.TrimSpace(in.Name), DurationInDays: in.DurationInDays, Price: in.Price}
	id, err := s.repo.CreatePackage(ctx, pkg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	pkg.ID = id
	s.log.Info("package created", slog.String("package_id", id), slog.String("name", pkg.Name))
	return &pkg, nil
}

// Edit изменяет пакет и сбрасывает его запись в кэше.
func (s *Service) Edit(ctx context.Context, id string, in Input) (*models.Package, error) {
	const op = "packages.Edit"
	if err := in.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	pkg := models.Package{ID: id, Name: strings.TrimSpace(in.Name), DurationInDays: in.DurationInDays, Price: in.Price}
	if err := s.repo.UpdatePackage(ctx, pkg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.invalidate(ctx, id)
	return &pkg, nil
}

// Delete удаляет пакет и его запись в кэше. Подписки на него перестают действовать.
func (s *Service) Delete(ctx context.Context, id string) error {
	const op = "packages.Delete"
	if err := s.repo.DeletePackage(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.invalidate(ctx, id)
	s.log.Info("package deleted", slog.String("package_id", id))
	return nil
}

func (s *Service) invalidate(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, cacheKey(id)); err != nil {
		s.log.Warn("failed to invalidate package cache", slog.String("package_id", id), sl.Err(err))
	}
}

// Get возвращает пакет, сначала пытаясь прочитать его из кэша.
func (s *Service) Get(ctx context.Context, id string) (*models.Package, error) {
	const op = "packages.Get"
	if s.cache != nil {
		var cached models.Package
		found, err := s.cache.Get(ctx, cacheKey(id), &cached)
		if err != nil {
			s.log.Warn("failed to read package cache", slog.String("package_id", id), sl.Err(err))
		} else if found {
			return &cached, nil
		}
	}

	pkg, err := s.repo.GetPackage(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey(id), pkg, s.cacheTTL); err != nil {
			s.log.Warn("failed to cache package", slog.String("package_id", id), sl.Err(err))
		}
	}
	return pkg, nil
}

// List возвращает все пакеты.
func (s *Service) List(ctx context.Context) ([]*models.Package, error) {
	const op = "packages.List"
	list, err := s.repo.ListPackages(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return list, nil
}

// Subscribe оформляет пользователю userUID подписку на пакет с текущего момента.
// Оформить может сам пользователь или администратор, подписчиком может быть только роль subscriber.
func (s *Service) Subscribe(ctx context.Context, caller *models.Identity, packageID, userUID string) (*models.Subscription, error) {
	const op = "packages.Subscribe"
	if err := access.RequireResourceOwnerOrAdmin(caller, userUID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user, err := s.repo.GetUserByUID(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if user.Role != models.RoleSubscriber {
		return nil, fmt.Errorf("%s: %w: only subscribers can hold a subscription", op, models.ErrForbidden)
	}
	pkg, err := s.Get(ctx, packageID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	start := s.now()
	sub := models.Subscription{
		PackageID: pkg.ID,
		StartDate: start,
		EndDate:   entitlement.EndDate(start, pkg.DurationInDays),
	}
	if err := s.repo.SetSubscription(ctx, userUID, sub); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("subscription assigned", sl.UserUID(userUID), slog.String("package_id", pkg.ID),
		slog.Time("end_date", sub.EndDate))
	return &sub, nil
}
