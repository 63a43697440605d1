package prediction

import "github.com/pkg/errors"

type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

var ErrUnknownRiskLevel = errors.New("unknown risk level")

func ParseRiskLevel(s string) (RiskLevel, error) {
	switch RiskLevel(s) {
	case RiskLow, RiskMedium, RiskHigh:
		return RiskLevel(s), nil
	}
	return "", errors.Wrap(ErrUnknownRiskLevel, s)
}

// RiskLevelFor combines the estimated probability with raw attributes.
// Attribute thresholds fire regardless of probability: a student with a
// reassuring score but catastrophic attendance is still flagged high.
func RiskLevelFor(probability float64, f StudentFeatures) RiskLevel {
	if probability > 0.7 || f.Attendance < 60 || f.Backlogs >= 3 {
		return RiskHigh
	}
	if probability > 0.4 || f.Attendance < 75 || f.Backlogs >= 1 {
		return RiskMedium
	}
	return RiskLow
}

type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// ConfidenceFor grades how far the probability sits from the 0.5 decision
// boundary. The band thresholds are kept exactly as the model team defined
// them, overlap and all; probabilities in [0.4, 0.6] land on low.
func ConfidenceFor(probability float64) Confidence {
	if probability > 0.8 || probability < 0.2 {
		return ConfidenceHigh
	}
	if probability > 0.6 || probability < 0.4 {
		return ConfidenceMedium
	}
	return ConfidenceLow
}
