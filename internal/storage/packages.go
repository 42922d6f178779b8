package storage

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/novelamania/internal/models"
)

// CreatePackage сохраняет пакет подписки и возвращает его ID.
func (s *Storage) CreatePackage(ctx context.Context, pkg models.Package) (string, error) {
	const op = "storage.CreatePackage"
	if err := checkCtx(ctx, op); err != nil {
		return "", err
	}
	if pkg.ID == "" {
		pkg.ID = uuid.NewString()
	}
	var id string
	err := s.DB.QueryRowContext(ctx,
		`INSERT INTO packages (id, name, duration_in_days, price) VALUES ($1, $2, $3, $4) RETURNING id::text`,
		pkg.ID, pkg.Name, pkg.DurationInDays, pkg.Price).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, mapError(err))
	}
	return id, nil
}

// UpdatePackage обновляет пакет по ID.
func (s *Storage) UpdatePackage(ctx context.Context, pkg models.Package) error {
	const op = "storage.UpdatePackage"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}
	if _, err := uuid.Parse(pkg.ID); err != nil {
		return fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}
	result, err := s.DB.ExecContext(ctx,
		`UPDATE packages SET name = $1, duration_in_days = $2, price = $3 WHERE id = $4`,
		pkg.Name, pkg.DurationInDays, pkg.Price, pkg.ID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, mapError(err))
	}
	return expectOne(op, result)
}

// DeletePackage удаляет пакет. У подписанных на него пользователей ссылка на пакет обнуляется.
func (s *Storage) DeletePackage(ctx context.Context, id string) error {
	const op = "storage.DeletePackage"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}
	result, err := s.DB.ExecContext(ctx, `DELETE FROM packages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, mapError(err))
	}
	return expectOne(op, result)
}

// GetPackage возвращает пакет по ID.
func (s *Storage) GetPackage(ctx context.Context, id string) (*models.Package, error) {
	const op = "storage.GetPackage"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}
	var pkg models.Package
	err := s.DB.QueryRowContext(ctx,
		`SELECT id::text, name, duration_in_days, price::float8, created_at FROM packages WHERE id = $1`, id).
		Scan(&pkg.ID, &pkg.Name, &pkg.DurationInDays, &pkg.Price, &pkg.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}
	return &pkg, nil
}

// ListPackages возвращает все пакеты, упорядоченные по длительности.
func (s *Storage) ListPackages(ctx context.Context) ([]*models.Package, error) {
	const op = "storage.ListPackages"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}
	rows, err := s.DB.QueryContext(ctx,
		`SELECT id::text, name, duration_in_days, price::float8, created_at FROM packages ORDER BY duration_in_days, name`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	result := make([]*models.Package, 0)
	for rows.Next() {
		var pkg models.Package
		if err := rows.Scan(&pkg.ID, &pkg.Name, &pkg.DurationInDays, &pkg.Price, &pkg.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &pkg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
