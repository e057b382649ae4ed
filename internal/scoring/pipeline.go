package scoring

import (
	"fmt"
	"math"

	"github.com/dtroode/scorepredictor-server/internal/model"
)

const (
	MinScore = 0.0
	MaxScore = 100.0
)

// Model maps a scaled feature vector to a raw score.
type Model interface {
	Predict(scaled []float64) (float64, error)
}

// Scaler maps raw feature values to the space the model was trained on.
type Scaler interface {
	Transform(raw []float64) ([]float64, error)
}

// Bounds are the input widget limits of one feature. They are advisory and
// are not enforced on prediction.
type Bounds struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Descriptor names the model's features in input order.
type Descriptor struct {
	Name     string            `json:"name,omitempty"`
	Features []string          `json:"features"`
	Bounds   map[string]Bounds `json:"bounds"`
}

// Pipeline applies a fitted scaler and model to feature vectors. It is safe
// for concurrent use once built.
type Pipeline struct {
	descriptor Descriptor
	index      map[string]int
	scaler     Scaler
	model      Model
}

// NewPipeline validates the descriptor and assembles a pipeline.
func NewPipeline(descriptor Descriptor, scaler Scaler, m Model) (*Pipeline, error) {
	if len(descriptor.Features) == 0 {
		return nil, fmt.Errorf("%w: descriptor lists no features", model.ErrModelLoad)
	}
	if scaler == nil || m == nil {
		return nil, fmt.Errorf("%w: scaler and model are required", model.ErrModelLoad)
	}

	index := make(map[string]int, len(descriptor.Features))
	for i, name := range descriptor.Features {
		if name == "" {
			return nil, fmt.Errorf("%w: feature %d has no name", model.ErrModelLoad, i)
		}
		if _, dup := index[name]; dup {
			return nil, fmt.Errorf("%w: duplicate feature %q", model.ErrModelLoad, name)
		}
		index[name] = i
	}

	return &Pipeline{
		descriptor: descriptor,
		index:      index,
		scaler:     scaler,
		model:      m,
	}, nil
}

// Features returns the feature names in input order.
func (p *Pipeline) Features() []string {
	return append([]string(nil), p.descriptor.Features...)
}

// Descriptor returns the model descriptor.
func (p *Pipeline) Descriptor() Descriptor {
	return p.descriptor
}

// Vector orders input into a full feature vector. Missing features are zero.
func (p *Pipeline) Vector(in model.FeatureInput) ([]float64, error) {
	n := len(p.descriptor.Features)
	if len(in.Ordered) > n {
		return nil, fmt.Errorf("%w: got %d values for %d features", model.ErrPrediction, len(in.Ordered), n)
	}

	values := make([]float64, n)
	copy(values, in.Ordered)
	for name, v := range in.Named {
		i, ok := p.index[name]
		if !ok {
			return nil, fmt.Errorf("%w: unknown feature %q", model.ErrPrediction, name)
		}
		values[i] = v
	}

	return values, nil
}

// Predict scores values and returns a result clamped to [0, 100] and
// rounded to two decimals. Short vectors are padded with zeros.
func (p *Pipeline) Predict(values []float64) (float64, error) {
	vector, err := p.Vector(model.FeatureInput{Ordered: values})
	if err != nil {
		return 0, err
	}
	for i, v := range vector {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("%w: feature %q is not a finite number", model.ErrPrediction, p.descriptor.Features[i])
		}
	}

	scaled, err := p.scaler.Transform(vector)
	if err != nil {
		return 0, fmt.Errorf("%w: transform: %v", model.ErrPrediction, err)
	}

	raw, err := p.model.Predict(scaled)
	if err != nil {
		return 0, fmt.Errorf("%w: predict: %v", model.ErrPrediction, err)
	}
	if math.IsNaN(raw) {
		return 0, fmt.Errorf("%w: model returned NaN", model.ErrPrediction)
	}

	return Round(Clamp(raw, MinScore, MaxScore)), nil
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Round rounds v to two decimal places.
func Round(v float64) float64 {
	return math.Round(v*100) / 100
}
