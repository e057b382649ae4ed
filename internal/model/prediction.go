package model

import (
	"context"
	"time"
)

// PredictionStore defines persistence operations for prediction history.
type PredictionStore interface {
	Create(ctx context.Context, prediction Prediction) (int64, error)
	ListByUser(ctx context.Context, userID int64, limit int) ([]Prediction, error)
	StatsByUser(ctx context.Context, userID int64) (PredictionStats, error)
}

// Prediction is an append-only history entry.
type Prediction struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Score     float64   `json:"predicted_score"`
	Grade     string    `json:"grade"`
	CreatedAt time.Time `json:"prediction_date"`
	Features  string    `json:"feature_data"`
}

// PredictionStats aggregates a user's history. Zero values mean no history.
type PredictionStats struct {
	Total   int64   `json:"total"`
	Average float64 `json:"average"`
	Highest float64 `json:"highest"`
}

// FeatureInput is raw user input for the scoring pipeline. Either Named or
// Ordered may be set; absent features default to zero.
type FeatureInput struct {
	Named   map[string]float64 `json:"features,omitempty"`
	Ordered []float64          `json:"values,omitempty"`
}

// Tip is a short piece of study advice.
type Tip struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Assessment is derived from a clamped score.
type Assessment struct {
	Grade      string `json:"grade"`
	Title      string `json:"title"`
	Percentile int    `json:"percentile"`
	Status     string `json:"status"`
	Tips       []Tip  `json:"tips"`
}

// PredictionResult is returned to the presentation layer after scoring.
type PredictionResult struct {
	Score float64 `json:"score"`
	Assessment
	Features     map[string]float64 `json:"features"`
	PredictionID int64              `json:"prediction_id,omitempty"`
	Saved        bool               `json:"saved"`
}
