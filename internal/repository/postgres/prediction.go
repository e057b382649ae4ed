package postgres

import (
	"context"
	"fmt"

	"github.com/dtroode/scorepredictor-server/internal/model"
)

var _ model.PredictionStore = (*PredictionRepository)(nil)

type PredictionRepository struct {
	db Querier
}

func NewPredictionRepository(db Querier) *PredictionRepository {
	return &PredictionRepository{db: db}
}

func (r *PredictionRepository) Create(ctx context.Context, p model.Prediction) (int64, error) {
	const query = `
        INSERT INTO predictions (user_id, predicted_score, grade, prediction_date, feature_data)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id
    `

	var id int64
	err := r.db.QueryRow(ctx, query, p.UserID, p.Score, p.Grade, p.CreatedAt, p.Features).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create prediction: %w", err)
	}

	return id, nil
}

func (r *PredictionRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]model.Prediction, error) {
	const query = `
        SELECT id, user_id, predicted_score, grade, prediction_date, feature_data
        FROM predictions WHERE user_id = $1
        ORDER BY prediction_date DESC, id DESC
        LIMIT $2
    `

	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list predictions: %w", err)
	}
	defer rows.Close()

	predictions := make([]model.Prediction, 0, limit)
	for rows.Next() {
		var p model.Prediction
		if err := rows.Scan(&p.ID, &p.UserID, &p.Score, &p.Grade, &p.CreatedAt, &p.Features); err != nil {
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
        SELECT COUNT(*), COALESCE(AVG(predicted_score), 0), COALESCE(MAX(predicted_score), 0)
        FROM predictions WHERE user_id = $1
    `

	var stats model.PredictionStats
	if err := r.db.QueryRow(ctx, query, userID).Scan(&stats.Total, &stats.Average, &stats.Highest); err != nil {
		return model.PredictionStats{}, fmt.Errorf("failed to get prediction stats: %w", err)
	}

	return stats, nil
}
