package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dtroode/scorepredictor-server/internal/model"
)

var _ model.SessionStore = (*SessionRepository)(nil)

type SessionRepository struct {
	db DBTX
}

func NewSessionRepository(db DBTX) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(ctx context.Context, record model.SessionRecord) (int64, error) {
	const query = `
        INSERT INTO sessions (user_id, session_token, created_at, expires_at)
        VALUES (?, ?, ?, ?)
    `

	res, err := r.db.ExecContext(ctx, query,
		record.UserID, record.TokenHash, formatTime(record.CreatedAt), formatTime(record.ExpiresAt),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create session: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read session id: %w", err)
	}
	return id, nil
}

func (r *SessionRepository) GetByToken(ctx context.Context, tokenHash string) (model.SessionRecord, error) {
	const query = `
        SELECT id, user_id, session_token, created_at, expires_at
        FROM sessions WHERE session_token = ?
    `

	var (
		rec                  model.SessionRecord
		createdAt, expiresAt string
	)
	err := r.db.QueryRowContext(ctx, query, tokenHash).Scan(&rec.ID, &rec.UserID, &rec.TokenHash, &createdAt, &expiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.SessionRecord{}, model.ErrNotFound
		}
		return model.SessionRecord{}, fmt.Errorf("failed to get session by token: %w", err)
	}

	if rec.CreatedAt, err = parseTime(createdAt); err != nil {
		return model.SessionRecord{}, fmt.Errorf("failed to get session by token: %w", err)
	}
	if rec.ExpiresAt, err = parseTime(expiresAt); err != nil {
		return model.SessionRecord{}, fmt.Errorf("failed to get session by token: %w", err)
	}
	return rec, nil
}

func (r *SessionRepository) DeleteByToken(ctx context.Context, tokenHash string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE session_token = ?`, tokenHash); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (r *SessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= ?`, formatTime(now))
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n, nil
}
