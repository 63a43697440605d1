package prediction

import (
	"math"

	"github.com/pkg/errors"
)

type (
	// Model is an opaque trained binary classifier.
	Model interface {
		// Predict returns the binary dropout decision (0 or 1).
		Predict(features []float64) (int, error)
	}

	// ProbabilityModel is a Model that also exposes the positive-class
	// probability. Models that don't implement it are scored through their
	// binary decision instead.
	ProbabilityModel interface {
		Model
		PredictProba(features []float64) (float64, error)
	}

	// WeightedModel exposes per-feature weights for importance reporting.
	WeightedModel interface {
		FeatureWeights() []float64
	}
)

// logisticModel is a logistic-regression classifier exported from the
// training pipeline as a JSON artifact (weights + intercept).
type logisticModel struct {
	Weights   []float64 `json:"weights"`
	Intercept float64   `json:"intercept"`
}

var (
	_ ProbabilityModel = (*logisticModel)(nil)
	_ WeightedModel    = (*logisticModel)(nil)
)

func (m *logisticModel) PredictProba(features []float64) (float64, error) {
	if len(features) != len(m.Weights) {
		return 0, errors.Errorf("feature vector has %d values, model expects %d", len(features), len(m.Weights))
	}
	z := m.Intercept
	for i, w := range m.Weights {
		z += w * features[i]
	}
	return 1 / (1 + math.Exp(-z)), nil
}

func (m *logisticModel) Predict(features []float64) (int, error) {
	p, err := m.PredictProba(features)
	if err != nil {
		return 0, err
	}
	if p > 0.5 {
		return 1, nil
	}
	return 0, nil
}

func (m *logisticModel) FeatureWeights() []float64 {
	return m.Weights
}

// StandardScaler standardizes a feature vector with the means and scales the
// training pipeline fit. Feature order correspondence with the paired model
// is an artifact-pairing invariant the deployment guarantees; it is not
// validated here.
type StandardScaler struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

func (s *StandardScaler) Transform(features []float64) ([]float64, error) {
	if len(features) != len(s.Mean) || len(features) != len(s.Scale) {
		return nil, errors.Errorf("feature vector has %d values, scaler expects %d", len(features), len(s.Mean))
	}
	out := make([]float64, len(features))
	for i, f := range features {
		scale := s.Scale[i]
		if scale == 0 {
			scale = 1
		}
		out[i] = (f - s.Mean[i]) / scale
	}
	return out, nil
}
