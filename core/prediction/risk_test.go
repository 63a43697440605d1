package prediction

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRiskLevelFor(t *testing.T) {
	tests := []struct {
		name        string
		probability float64
		features    StudentFeatures
		want        RiskLevel
	}{
		{
			name:        "probability rule fires",
			probability: 0.75,
			features:    StudentFeatures{Attendance: 80, Backlogs: 0},
			want:        RiskHigh,
		},
		{
			name:        "attendance rule fires despite low probability",
			probability: 0.1,
			features:    StudentFeatures{Attendance: 55, Backlogs: 0},
			want:        RiskHigh,
		},
		{
			name:        "backlog rule fires despite low probability",
			probability: 0.1,
			features:    StudentFeatures{Attendance: 90, Backlogs: 3},
			want:        RiskHigh,
		},
		{
			name:        "medium probability band",
			probability: 0.5,
			features:    StudentFeatures{Attendance: 90, Backlogs: 0},
			want:        RiskMedium,
		},
		{
			name:        "single backlog is at least medium",
			probability: 0.1,
			features:    StudentFeatures{Attendance: 90, Backlogs: 1},
			want:        RiskMedium,
		},
		{
			name:        "attendance below 75 is at least medium",
			probability: 0.1,
			features:    StudentFeatures{Attendance: 70, Backlogs: 0},
			want:        RiskMedium,
		},
		{
			name:        "healthy student is low",
			probability: 0.1,
			features:    StudentFeatures{Attendance: 90, Backlogs: 0},
			want:        RiskLow,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RiskLevelFor(tt.probability, tt.features))
		})
	}
}

// Confidence keeps the model team's literal band thresholds: overlapping
// checks and a silent low default on [0.4, 0.6].
func TestConfidenceFor(t *testing.T) {
	tests := []struct {
		probability float64
		want        Confidence
	}{
		{0.85, ConfidenceHigh},
		{0.15, ConfidenceHigh},
		{0.65, ConfidenceMedium},
		{0.35, ConfidenceMedium},
		{0.5, ConfidenceLow},
		{0.4, ConfidenceLow},
		{0.6, ConfidenceLow},
		{0.8, ConfidenceMedium},
		{0.2, ConfidenceMedium},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ConfidenceFor(tt.probability), "p=%v", tt.probability)
	}
}

func TestParseRiskLevel(t *testing.T) {
	for _, valid := range []string{"low", "medium", "high"} {
		level, err := ParseRiskLevel(valid)
		assert.NoError(t, err)
		assert.Equal(t, RiskLevel(valid), level)
	}

	_, err := ParseRiskLevel("critical")
	assert.Error(t, err)
}
