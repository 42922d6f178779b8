package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/novelamania/internal/models"
)

// Сессии с created_at <= notBefore считаются истёкшими и не видны ни одному запросу.

// AdmitSession в одной транзакции удаляет самые старые живые сессии пользователя так,
// чтобы после вставки их было не больше limit, и вставляет новую сессию.
// Конкурентные входы одного пользователя сериализуются блокировкой строки users.
// Возвращает количество вытесненных сессий.
func (s *Storage) AdmitSession(ctx context.Context, sess models.Session, limit int, notBefore time.Time) (int, error) {
	const op = "storage.AdmitSession"
	if err := checkCtx(ctx, op); err != nil {
		return 0, err
	}
	if sess.ID == "" {
		sess.ID = uuid.NewString()
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var uid string
	if err = tx.QueryRowContext(ctx, `SELECT uid::text FROM users WHERE uid = $1 FOR UPDATE`, sess.UserUID).
		Scan(&uid); err != nil {
		return 0, fmt.Errorf("%s: %w", op, mapError(err))
	}

	var count int
	if err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sessions WHERE user_uid = $1 AND created_at > $2`, uid, notBefore).
		Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	evicted := 0
	if excess := count - limit + 1; excess > 0 {
		result, err := tx.ExecContext(ctx,
			`DELETE FROM sessions WHERE id IN (
				SELECT id FROM sessions
				WHERE user_uid = $1 AND created_at > $2
				ORDER BY created_at, id
				LIMIT $3)`, uid, notBefore, excess)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", op, err)
		}
		n, err := result.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("%s: %w", op, err)
		}
		evicted = int(n)
	}

	if _, err = tx.ExecContext(ctx,
		`INSERT INTO sessions (id, user_uid, token, created_at) VALUES ($1, $2, $3, $4)`,
		sess.ID, uid, sess.Token, sess.CreatedAt); err != nil {
		return 0, fmt.Errorf("%s: %w", op, mapError(err))
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return evicted, nil
}

// CreateSession вставляет сессию без проверки лимита.
func (s *Storage) CreateSession(ctx context.Context, sess models.Session) (string, error) {
	const op = "storage.CreateSession"
	if err := checkCtx(ctx, op); err != nil {
		return "", err
	}
	if sess.ID == "" {
		sess.ID = uuid.NewString()
	}
	if _, err := s.DB.ExecContext(ctx,
		`INSERT INTO sessions (id, user_uid, token, created_at) VALUES ($1, $2, $3, $4)`,
		sess.ID, sess.UserUID, sess.Token, sess.CreatedAt); err != nil {
		return "", fmt.Errorf("%s: %w", op, mapError(err))
	}
	return sess.ID, nil
}

// CountSessions возвращает количество живых сессий пользователя.
func (s *Storage) CountSessions(ctx context.Context, userUID string, notBefore time.Time) (int, error) {
	const op = "storage.CountSessions"
	if err := checkCtx(ctx, op); err != nil {
		return 0, err
	}
	var count int
	if err := s.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sessions WHERE user_uid = $1 AND created_at > $2`, userUID, notBefore).
		Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// EvictOldestSession удаляет одну самую раннюю живую сессию пользователя.
func (s *Storage) EvictOldestSession(ctx context.Context, userUID string, notBefore time.Time) (bool, error) {
	const op = "storage.EvictOldestSession"
	if err := checkCtx(ctx, op); err != nil {
		return false, err
	}
	result, err := s.DB.ExecContext(ctx,
		`DELETE FROM sessions WHERE id = (
			SELECT id FROM sessions
			WHERE user_uid = $1 AND created_at > $2
			ORDER BY created_at, id
			LIMIT 1)`, userUID, notBefore)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return affected(op, result)
}

// FindSessionByToken возвращает живую сессию по токену или models.ErrNotFound.
func (s *Storage) FindSessionByToken(ctx context.Context, token string, notBefore time.Time) (*models.Session, error) {
	const op = "storage.FindSessionByToken"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}
	var sess models.Session
	err := s.DB.QueryRowContext(ctx,
		`SELECT id::text, user_uid::text, token, created_at FROM sessions WHERE token = $1 AND created_at > $2`,
		token, notBefore).Scan(&sess.ID, &sess.UserUID, &sess.Token, &sess.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}
	return &sess, nil
}

// DeleteSessionByToken удаляет сессию по токену. false, если сессии не было.
func (s *Storage) DeleteSessionByToken(ctx context.Context, token string) (bool, error) {
	const op = "storage.DeleteSessionByToken"
	if err := checkCtx(ctx, op); err != nil {
		return false, err
	}
	result, err := s.DB.ExecContext(ctx, `DELETE FROM sessions WHERE token = $1`, token)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return affected(op, result)
}

// DeleteSessionByID удаляет сессию по ID.
func (s *Storage) DeleteSessionByID(ctx context.Context, id string) (bool, error) {
	const op = "storage.DeleteSessionByID"
	if err := checkCtx(ctx, op); err != nil {
		return false, err
	}
	if _, err := uuid.Parse(id); err != nil {
		return false, nil
	}
	result, err := s.DB.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return affected(op, result)
}

// DeleteUserSessions удаляет все сессии пользователя.
func (s *Storage) DeleteUserSessions(ctx context.Context, userUID string) (int, error) {
	const op = "storage.DeleteUserSessions"
	if err := checkCtx(ctx, op); err != nil {
		return 0, err
	}
	result, err := s.DB.ExecContext(ctx, `DELETE FROM sessions WHERE user_uid = $1`, userUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(n), nil
}

// PurgeSessionsBefore удаляет сессии, созданные не позже before.
func (s *Storage) PurgeSessionsBefore(ctx context.Context, before time.Time) (int, error) {
	const op = "storage.PurgeSessionsBefore"
	if err := checkCtx(ctx, op); err != nil {
		return 0, err
	}
	result, err := s.DB.ExecContext(ctx, `DELETE FROM sessions WHERE created_at <= $1`, before)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(n), nil
}

func affected(op string, result interface{ RowsAffected() (int64, error) }) (bool, error) {
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return n > 0, nil
}
