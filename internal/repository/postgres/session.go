package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/dtroode/scorepredictor-server/internal/model"
)

var _ model.SessionStore = (*SessionRepository)(nil)

type SessionRepository struct {
	db Querier
}

func NewSessionRepository(db Querier) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(ctx context.Context, record model.SessionRecord) (int64, error) {
	const query = `
        INSERT INTO sessions (user_id, session_token, created_at, expires_at)
        VALUES ($1, $2, $3, $4)
        RETURNING id
    `

	var id int64
	err := r.db.QueryRow(ctx, query, record.UserID, record.TokenHash, record.CreatedAt, record.ExpiresAt).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create session: %w", err)
	}
	return id, nil
}

func (r *SessionRepository) GetByToken(ctx context.Context, tokenHash string) (model.SessionRecord, error) {
	const query = `
        SELECT id, user_id, session_token, created_at, expires_at
        FROM sessions WHERE session_token = $1
    `

	var rec model.SessionRecord
	err := r.db.QueryRow(ctx, query, tokenHash).Scan(
		&rec.ID, &rec.UserID, &rec.TokenHash, &rec.CreatedAt, &rec.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.SessionRecord{}, model.ErrNotFound
		}
		return model.SessionRecord{}, fmt.Errorf("failed to get session by token: %w", err)
	}
	return rec, nil
}

func (r *SessionRepository) DeleteByToken(ctx context.Context, tokenHash string) error {
	const query = `DELETE FROM sessions WHERE session_token = $1`

	if _, err := r.db.Exec(ctx, query, tokenHash); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (r *SessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	const query = `DELETE FROM sessions WHERE expires_at <= $1`

	tag, err := r.db.Exec(ctx, query, now)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}
