package prediction

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVectorize(t *testing.T) {
	tests := []struct {
		name    string
		values  map[string]interface{}
		want    []float64
		wantErr bool
	}{
		{
			name: "all present",
			values: map[string]interface{}{
				"attendance":        82.5,
				"internal_marks":    64.0,
				"backlogs":          1,
				"study_hours":       3.5,
				"previous_failures": 0,
			},
			want: []float64{82.5, 64, 1, 3.5, 0},
		},
		{
			name:   "missing keys are zero",
			values: map[string]interface{}{"attendance": 90.0},
			want:   []float64{90, 0, 0, 0, 0},
		},
		{
			name:   "nil and empty string are zero",
			values: map[string]interface{}{"attendance": nil, "internal_marks": "", "backlogs": 2},
			want:   []float64{0, 0, 2, 0, 0},
		},
		{
			name:   "numeric strings coerce",
			values: map[string]interface{}{"attendance": "72.5", "backlogs": "3"},
			want:   []float64{72.5, 0, 3, 0, 0},
		},
		{
			name:    "non-numeric string fails",
			values:  map[string]interface{}{"attendance": "eighty"},
			wantErr: true,
		},
		{
			name:    "unsupported type fails",
			values:  map[string]interface{}{"attendance": []int{1}},
			wantErr: true,
		},
		{
			name:   "empty input is the zero vector",
			values: map[string]interface{}{},
			want:   []float64{0, 0, 0, 0, 0},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Vectorize(tt.values, DefaultFeatureOrder)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestVectorizeIsIdempotent(t *testing.T) {
	f := StudentFeatures{Attendance: 65.5, InternalMarks: 55, Backlogs: 2, StudyHours: 3, PreviousFailures: 1}

	first, err := Vectorize(f.values(), DefaultFeatureOrder)
	assert.NoError(t, err)
	second, err := Vectorize(f.values(), DefaultFeatureOrder)
	assert.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, f.Attendance, first[0])
	assert.Equal(t, f.InternalMarks, first[1])
	assert.Equal(t, float64(f.Backlogs), first[2])
	assert.Equal(t, f.StudyHours, first[3])
	assert.Equal(t, float64(f.PreviousFailures), first[4])
}

func TestVectorizeMatchesSchemaLength(t *testing.T) {
	order := []string{"attendance", "gpa", "backlogs"}
	got, err := Vectorize(map[string]interface{}{"attendance": 50.0}, order)
	assert.NoError(t, err)
	assert.Len(t, got, len(order))
}
