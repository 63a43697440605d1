package student

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/earlysignal/earlysignal/core/prediction"
)

// Attribute defaults injected for columns absent from an uploaded file.
const (
	DefaultAttendance       = 75.0
	DefaultInternalMarks    = 75.0
	DefaultBacklogs         = 0
	DefaultStudyHours       = 4.0
	DefaultPreviousFailures = 0
	DefaultGPA              = 3.0
	DefaultSemester         = 1
)

// Student is a student record. `student_id` is the business key; the Mongo
// `_id` stays storage-owned and never leaves the API.
type Student struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	StudentID  string             `bson:"student_id" json:"student_id"`
	Name       string             `bson:"name,omitempty" json:"name"`
	Email      string             `bson:"email,omitempty" json:"email"`
	Department string             `bson:"department,omitempty" json:"department"`
	Semester   int                `bson:"semester" json:"semester"`
	GPA        float64            `bson:"gpa" json:"gpa"`

	Attendance       float64 `bson:"attendance" json:"attendance"`
	InternalMarks    float64 `bson:"internal_marks" json:"internal_marks"`
	Backlogs         int     `bson:"backlogs" json:"backlogs"`
	StudyHours       float64 `bson:"study_hours" json:"study_hours"`
	PreviousFailures int     `bson:"previous_failures" json:"previous_failures"`

	// scoring write-back fields
	DropoutProbability float64              `bson:"dropout_probability,omitempty" json:"dropout_probability,omitempty"`
	RiskLevel          prediction.RiskLevel `bson:"risk_level,omitempty" json:"risk_level,omitempty"`
	RiskFactors        []string             `bson:"risk_factors,omitempty" json:"risk_factors,omitempty"`
	LastAnalyzedAt     time.Time            `bson:"last_analyzed_at,omitempty" json:"last_analyzed_at,omitempty"`

	CreatedAt time.Time `bson:"created_at,omitempty" json:"created_at,omitempty"`
	UpdatedAt time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// Features builds the typed feature record the prediction engine scores.
func (s Student) Features() prediction.StudentFeatures {
	return prediction.StudentFeatures{
		Attendance:       s.Attendance,
		InternalMarks:    s.InternalMarks,
		Backlogs:         s.Backlogs,
		StudyHours:       s.StudyHours,
		PreviousFailures: s.PreviousFailures,
	}
}

// QueryFilter applies AND equality matches on its non-zero fields.
type QueryFilter struct {
	Department string
	Semester   int
	RiskLevel  prediction.RiskLevel
}

func (f QueryFilter) IsZero() bool {
	return f.Department == "" && f.Semester == 0 && f.RiskLevel == ""
}

// RiskUpdate is the scoring triple written back per analyzed student.
type RiskUpdate struct {
	DropoutProbability float64
	RiskLevel          prediction.RiskLevel
	RiskFactors        []string
	AnalyzedAt         time.Time
}
