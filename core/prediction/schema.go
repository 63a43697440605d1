package prediction

import (
	"fmt"
	"strconv"
)

// Feature names the default classifier was trained with. Order is
// authoritative: vector position i always carries the value of
// DefaultFeatureOrder[i] unless an artifact overrides the schema.
var DefaultFeatureOrder = []string{
	"attendance",
	"internal_marks",
	"backlogs",
	"study_hours",
	"previous_failures",
}

// StudentFeatures is the fully-typed feature record the engine scores.
// Defaults for absent attributes are applied at the ingestion boundary;
// by the time a record gets here every field is total.
type StudentFeatures struct {
	Attendance       float64 `json:"attendance"`
	InternalMarks    float64 `json:"internal_marks"`
	Backlogs         int     `json:"backlogs"`
	StudyHours       float64 `json:"study_hours"`
	PreviousFailures int     `json:"previous_failures"`
}

func (f StudentFeatures) values() map[string]interface{} {
	return map[string]interface{}{
		"attendance":        f.Attendance,
		"internal_marks":    f.InternalMarks,
		"backlogs":          f.Backlogs,
		"study_hours":       f.StudyHours,
		"previous_failures": f.PreviousFailures,
	}
}

// Vectorize maps named attribute values into the fixed-length vector `order`
// declares. Absent, nil and empty-string values contribute 0. A value that
// cannot be coerced to a number is a contract violation upstream ingestion
// should have prevented; it is returned as an error for the caller to handle.
func Vectorize(values map[string]interface{}, order []string) ([]float64, error) {
	vec := make([]float64, len(order))
	for i, name := range order {
		val, ok := values[name]
		if !ok || val == nil || val == "" {
			continue // stays 0
		}
		f, err := toFloat(val)
		if err != nil {
			return nil, fmt.Errorf("feature %q: %v", name, err)
		}
		vec[i] = f
	}
	return vec, nil
}

func toFloat(val interface{}) (float64, error) {
	switch v := val.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("cannot coerce %q to a number", v)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("cannot coerce %T to a number", val)
	}
}
