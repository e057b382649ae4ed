package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dtroode/scorepredictor-server/internal/model"
)

var _ model.PredictionStore = (*PredictionRepository)(nil)

type PredictionRepository struct {
	db DBTX
}

func NewPredictionRepository(db DBTX) *PredictionRepository {
	return &PredictionRepository{db: db}
}

func (r *PredictionRepository) Create(ctx context.Context, p model.Prediction) (int64, error) {
	const query = `
        INSERT INTO predictions (user_id, predicted_score, grade, prediction_date, feature_data)
        VALUES (?, ?, ?, ?, ?)
    `

	res, err := r.db.ExecContext(ctx, query, p.UserID, p.Score, p.Grade, formatTime(p.CreatedAt), p.Features)
	if err != nil {
		return 0, fmt.Errorf("failed to create prediction: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read prediction id: %w", err)
	}
	return id, nil
}

func (r *PredictionRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]model.Prediction, error) {
	const query = `
        SELECT id, user_id, predicted_score, grade, prediction_date, feature_data
        FROM predictions WHERE user_id = ?
        ORDER BY prediction_date DESC, id DESC
        LIMIT ?
    `

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list predictions: %w", err)
	}
	defer rows.Close()

	predictions := make([]model.Prediction, 0, limit)
	for rows.Next() {
		var (
			p       model.Prediction
			created string
		)
		if err := rows.Scan(&p.ID, &p.UserID, &p.Score, &p.Grade, &created, &p.Features); err != nil {
			return nil, fmt.Errorf("failed to scan prediction: %w", err)
		}
		if p.CreatedAt, err = parseTime(created); err != nil {
			return nil, fmt.Errorf("failed to scan prediction: %w", err)
		}
		predictions = append(predictions, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate predictions: %w", err)
	}

	return predictions, nil
}

func (r *PredictionRepository) StatsByUser(ctx context.Context, userID int64) (model.PredictionStats, error) {
	const query = `
        SELECT COUNT(*), AVG(predicted_score), MAX(predicted_score)
        FROM predictions WHERE user_id = ?
    `

	var (
		stats        model.PredictionStats
		avg, highest sql.NullFloat64
	)
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&stats.Total, &avg, &highest); err != nil {
		return model.PredictionStats{}, fmt.Errorf("failed to get prediction stats: %w", err)
	}

	stats.Average = avg.Float64
	stats.Highest = highest.Float64
	return stats, nil
}
