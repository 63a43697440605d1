package prediction

import "fmt"

// Sentinels returned when no factor/recommendation rule triggers; the lists
// are never empty.
const (
	NoRiskFactors   = "No significant risk factors identified"
	NoInterventions = "No specific interventions required"
)

// IdentifyRiskFactors derives human-readable explanations from raw
// attributes. Enumeration order (attendance, marks, backlogs, study hours,
// failures) is fixed for reproducibility.
func IdentifyRiskFactors(f StudentFeatures) []string {
	var factors []string

	if f.Attendance < 75 {
		factors = append(factors, fmt.Sprintf("Low attendance (%g%%)", f.Attendance))
	}
	if f.InternalMarks < 50 {
		factors = append(factors, fmt.Sprintf("Low internal marks (%g)", f.InternalMarks))
	}
	if f.Backlogs > 0 {
		factors = append(factors, fmt.Sprintf("%d backlog(s)", f.Backlogs))
	}
	if f.StudyHours < 3 {
		factors = append(factors, fmt.Sprintf("Insufficient study hours (%gh/day)", f.StudyHours))
	}
	if f.PreviousFailures > 0 {
		factors = append(factors, fmt.Sprintf("%d previous failure(s)", f.PreviousFailures))
	}

	if len(factors) == 0 {
		return []string{NoRiskFactors}
	}
	return factors
}

// GenerateRecommendations derives intervention suggestions from raw
// attributes and the assigned risk tier. Ordering matches the factor
// enumeration with the tier-specific block appended last.
func GenerateRecommendations(f StudentFeatures, level RiskLevel) []string {
	var recs []string

	if f.Attendance < 60 {
		recs = append(recs,
			"Critical: Schedule immediate counseling session",
			"Contact parents/guardians about attendance issues",
		)
	} else if f.Attendance < 75 {
		recs = append(recs,
			"Monitor attendance closely",
			"Send attendance warning notification",
		)
	}

	if f.InternalMarks < 40 {
		recs = append(recs,
			"Assign peer tutor",
			"Create personalized study plan",
		)
	} else if f.InternalMarks < 60 {
		recs = append(recs, "Recommend additional tutoring sessions")
	}

	if f.Backlogs >= 3 {
		recs = append(recs,
			"Urgent: Backlog clearance counseling",
			"Create backlog clearance timeline",
		)
	} else if f.Backlogs > 0 {
		recs = append(recs, "Set up backlog study group")
	}

	if f.StudyHours < 2 {
		recs = append(recs,
			"Time management workshop",
			"Recommend productivity tools",
		)
	} else if f.StudyHours < 4 {
		recs = append(recs, "Optimize study schedule")
	}

	if f.PreviousFailures > 0 {
		recs = append(recs,
			"Academic counseling",
			"Review failure patterns",
		)
	}

	switch level {
	case RiskHigh:
		recs = append(recs,
			"Assign dedicated mentor",
			"Weekly progress monitoring",
		)
	case RiskMedium:
		recs = append(recs,
			"Monthly monitoring",
			"Encourage support programs",
		)
	default:
		recs = append(recs,
			"Maintain current performance",
			"Consider peer mentoring",
		)
	}

	if len(recs) == 0 {
		return []string{NoInterventions}
	}
	return recs
}
