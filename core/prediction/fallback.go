package prediction

// fallbackCap keeps the rule-based estimate from ever claiming a certain
// dropout.
const fallbackCap = 0.95

// FallbackProbability is the deterministic rule-based dropout estimate used
// whenever the trained classifier is unavailable or errors. It only looks at
// attendance, internal marks and backlogs; no learned artifact is involved.
func FallbackProbability(f StudentFeatures) float64 {
	var score float64

	if f.Attendance < 60 {
		score += 0.3
	} else if f.Attendance < 75 {
		score += 0.15
	}

	if f.InternalMarks < 40 {
		score += 0.3
	} else if f.InternalMarks < 60 {
		score += 0.15
	}

	if f.Backlogs >= 3 {
		score += 0.3
	} else if f.Backlogs > 0 {
		score += 0.1 * float64(f.Backlogs)
	}

	if score > fallbackCap {
		return fallbackCap
	}
	return score
}
