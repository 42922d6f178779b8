package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/novelamania/internal/models"
)

const userColumns = `uid::text, first_name, last_name, COALESCE(email, ''), gender, dob,
	COALESCE(province, ''), contact, COALESCE(avatar, ''), password_hash, role, status,
	subscription_package_id::text, subscription_start_date, subscription_end_date,
	COALESCE(reset_password_token, ''), reset_password_expires, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	var (
		u           models.User
		role        int
		status      string
		dob         sql.NullTime
		packageID   sql.NullString
		start, end  sql.NullTime
		resetExpire sql.NullTime
	)
	if err := row.Scan(&u.UID, &u.FirstName, &u.LastName, &u.Email, &u.Gender, &dob,
		&u.Province, &u.Contact, &u.Avatar, &u.PasswordHash, &role, &status,
		&packageID, &start, &end, &u.ResetPasswordToken, &resetExpire, &u.CreatedAt); err != nil {
		return nil, err
	}
	u.Role = models.Role(role)
	u.Status = models.UserStatus(status)
	if dob.Valid {
		d := dob.Time
		u.DateOfBirth = &d
	}
	if packageID.Valid && packageID.String != "" {
		u.Subscription = &models.Subscription{
			PackageID: packageID.String,
			StartDate: start.Time,
			EndDate:   end.Time,
		}
	}
	if resetExpire.Valid {
		e := resetExpire.Time
		u.ResetPasswordExpires = &e
	}
	return &u, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// CreateUser сохраняет нового пользователя и возвращает его UID.
// Повтор контакта или email возвращает models.ErrConflict.
func (s *Storage) CreateUser(ctx context.Context, user models.User) (string, error) {
	const op = "storage.CreateUser"
	if err := checkCtx(ctx, op); err != nil {
		return "", err
	}
	if user.UID == "" {
		user.UID = uuid.NewString()
	}
	if user.Status == "" {
		user.Status = models.StatusActive
	}

	query := `INSERT INTO users (uid, first_name, last_name, email, gender, dob, province,
				contact, avatar, password_hash, role, status)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			  RETURNING uid::text`
	var uid string
	err := s.DB.QueryRowContext(ctx, query,
		user.UID, user.FirstName, user.LastName, nullString(user.Email), user.Gender, user.DateOfBirth,
		nullString(user.Province), user.Contact, nullString(user.Avatar), user.PasswordHash,
		int(user.Role), string(user.Status)).Scan(&uid)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, mapError(err))
	}
	return uid, nil
}

// GetUserByContact ищет пользователя по точному совпадению контакта.
func (s *Storage) GetUserByContact(ctx context.Context, contact string) (*models.User, error) {
	const op = "storage.GetUserByContact"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}
	row := s.DB.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE contact = $1`, contact)
	user, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}
	return user, nil
}

// GetUserByUID ищет пользователя по идентификатору.
func (s *Storage) GetUserByUID(ctx context.Context, uid string) (*models.User, error) {
	const op = "storage.GetUserByUID"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}
	if _, err := uuid.Parse(uid); err != nil {
		return nil, fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}
	row := s.DB.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE uid = $1`, uid)
	user, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}
	return user, nil
}

// SetUserStatus меняет статус пользователя.
func (s *Storage) SetUserStatus(ctx context.Context, uid string, status models.UserStatus) error {
	const op = "storage.SetUserStatus"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}
	if _, err := uuid.Parse(uid); err != nil {
		return fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}
	result, err := s.DB.ExecContext(ctx,
		`UPDATE users SET status = $1, updated_at = NOW() WHERE uid = $2`, string(status), uid)
	if err != nil {
		return fmt.Errorf("%s: %w", op, mapError(err))
	}
	return expectOne(op, result)
}

// SetResetToken сохраняет токен сброса пароля и срок его действия.
func (s *Storage) SetResetToken(ctx context.Context, uid, token string, expires time.Time) error {
	const op = "storage.SetResetToken"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}
	if _, err := uuid.Parse(uid); err != nil {
		return fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}
	result, err := s.DB.ExecContext(ctx,
		`UPDATE users SET reset_password_token = $1, reset_password_expires = $2, updated_at = NOW()
		 WHERE uid = $3`, token, expires, uid)
	if err != nil {
		return fmt.Errorf("%s: %w", op, mapError(err))
	}
	return expectOne(op, result)
}

// ConsumeResetToken одним запросом проверяет токен, заменяет хэш пароля и очищает токен.
// Второй вызов с тем же токеном возвращает models.ErrInvalidOrExpiredToken.
func (s *Storage) ConsumeResetToken(ctx context.Context, token, passwordHash string, now time.Time) (string, error) {
	const op = "storage.ConsumeResetToken"
	if err := checkCtx(ctx, op); err != nil {
		return "", err
	}
	query := `UPDATE users
			  SET password_hash = $1, reset_password_token = NULL, reset_password_expires = NULL, updated_at = NOW()
			  WHERE reset_password_token = $2 AND reset_password_expires > $3
			  RETURNING uid::text`
	var uid string
	err := s.DB.QueryRowContext(ctx, query, passwordHash, token, now).Scan(&uid)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("%s: %w", op, models.ErrInvalidOrExpiredToken)
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return uid, nil
}

// SetSubscription привязывает пакет к пользователю.
func (s *Storage) SetSubscription(ctx context.Context, uid string, sub models.Subscription) error {
	const op = "storage.SetSubscription"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}
	if _, err := uuid.Parse(uid); err != nil {
		return fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}
	result, err := s.DB.ExecContext(ctx,
		`UPDATE users SET subscription_package_id = $1, subscription_start_date = $2,
			subscription_end_date = $3, updated_at = NOW()
		 WHERE uid = $4`, sub.PackageID, sub.StartDate, sub.EndDate, uid)
	if err != nil {
		return fmt.Errorf("%s: %w", op, mapError(err))
	}
	return expectOne(op, result)
}

// UpdateSubscriptionEndDate сохраняет пересчитанную дату окончания подписки.
func (s *Storage) UpdateSubscriptionEndDate(ctx context.Context, uid string, endDate time.Time) error {
	const op = "storage.UpdateSubscriptionEndDate"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}
	if _, err := uuid.Parse(uid); err != nil {
		return fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}
	result, err := s.DB.ExecContext(ctx,
		`UPDATE users SET subscription_end_date = $1, updated_at = NOW()
		 WHERE uid = $2 AND subscription_package_id IS NOT NULL`, endDate, uid)
	if err != nil {
		return fmt.Errorf("%s: %w", op, mapError(err))
	}
	return expectOne(op, result)
}

// FindSubscriptionsExpiringBetween возвращает активных пользователей с email,
// чья подписка заканчивается в полуинтервале [from, to).
func (s *Storage) FindSubscriptionsExpiringBetween(ctx context.Context, from, to time.Time) ([]*models.ExpiringSubscriptionMessage, error) {
	const op = "storage.FindSubscriptionsExpiringBetween"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}
	query := `SELECT u.uid::text, u.email, u.first_name, p.name, u.subscription_end_date
			  FROM users u
			  JOIN packages p ON p.id = u.subscription_package_id
			  WHERE u.status = 'Active'
			    AND u.email IS NOT NULL
			    AND u.subscription_end_date >= $1
			    AND u.subscription_end_date < $2
			  ORDER BY u.subscription_end_date`
	rows, err := s.DB.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var result []*models.ExpiringSubscriptionMessage
	for rows.Next() {
		var m models.ExpiringSubscriptionMessage
		if err := rows.Scan(&m.UserUID, &m.Email, &m.FirstName, &m.PackageName, &m.EndDate); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListUsers возвращает всех пользователей в порядке регистрации.
func (s *Storage) ListUsers(ctx context.Context) ([]*models.User, error) {
	const op = "storage.ListUsers"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}
	rows, err := s.DB.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at, uid`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	result := make([]*models.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// DeleteUser удаляет пользователя. Его сессии удаляются каскадно.
func (s *Storage) DeleteUser(ctx context.Context, uid string) error {
	const op = "storage.DeleteUser"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}
	if _, err := uuid.Parse(uid); err != nil {
		return fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}
	result, err := s.DB.ExecContext(ctx, `DELETE FROM users WHERE uid = $1`, uid)
	if err != nil {
		return fmt.Errorf("%s: %w", op, mapError(err))
	}
	return expectOne(op, result)
}

func expectOne(op string, result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}
	return nil
}
