package scoring

import "fmt"

// LinearModel is a fitted linear regression.
type LinearModel struct {
	Intercept    float64   `json:"intercept"`
	Coefficients []float64 `json:"coefficients"`
}

func (m *LinearModel) Predict(scaled []float64) (float64, error) {
	if len(scaled) != len(m.Coefficients) {
		return 0, fmt.Errorf("expected %d features, got %d", len(m.Coefficients), len(scaled))
	}

	y := m.Intercept
	for i, c := range m.Coefficients {
		y += c * scaled[i]
	}
	return y, nil
}

// StandardScaler centers and scales each feature.
type StandardScaler struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

func (s *StandardScaler) Transform(raw []float64) ([]float64, error) {
	if len(raw) != len(s.Mean) || len(raw) != len(s.Scale) {
		return nil, fmt.Errorf("expected %d features, got %d", len(s.Mean), len(raw))
	}

	out := make([]float64, len(raw))
	for i, v := range raw {
		scale := s.Scale[i]
		// Constant features were fitted with zero variance.
		if scale == 0 {
			scale = 1
		}
		out[i] = (v - s.Mean[i]) / scale
	}
	return out, nil
}
