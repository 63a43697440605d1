package prediction

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFallbackProbability(t *testing.T) {
	tests := []struct {
		name     string
		features StudentFeatures
		want     float64
	}{
		{
			name:     "healthy student scores zero",
			features: StudentFeatures{Attendance: 90, InternalMarks: 85, Backlogs: 0},
			want:     0,
		},
		{
			name:     "borderline attendance",
			features: StudentFeatures{Attendance: 70, InternalMarks: 85, Backlogs: 0},
			want:     0.15,
		},
		{
			name:     "critical attendance",
			features: StudentFeatures{Attendance: 50, InternalMarks: 85, Backlogs: 0},
			want:     0.3,
		},
		{
			name:     "marks bands stack with attendance",
			features: StudentFeatures{Attendance: 50, InternalMarks: 30, Backlogs: 0},
			want:     0.6,
		},
		{
			name:     "each backlog adds a tenth",
			features: StudentFeatures{Attendance: 90, InternalMarks: 85, Backlogs: 2},
			want:     0.2,
		},
		{
			name:     "three backlogs cap the backlog term",
			features: StudentFeatures{Attendance: 90, InternalMarks: 85, Backlogs: 3},
			want:     0.3,
		},
		{
			name:     "worst case is capped below certainty",
			features: StudentFeatures{Attendance: 10, InternalMarks: 10, Backlogs: 9},
			want:     0.95,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, FallbackProbability(tt.features), 1e-9)
		})
	}
}

func TestFallbackProbabilityBounds(t *testing.T) {
	// sweep a coarse grid; the estimate must always stay within [0, 0.95]
	for attendance := 0.0; attendance <= 100; attendance += 10 {
		for marks := 0.0; marks <= 100; marks += 10 {
			for backlogs := 0; backlogs <= 8; backlogs++ {
				f := StudentFeatures{Attendance: attendance, InternalMarks: marks, Backlogs: backlogs}
				p := FallbackProbability(f)
				assert.GreaterOrEqual(t, p, 0.0)
				assert.LessOrEqual(t, p, 0.95)
			}
		}
	}
}
