package student_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/earlysignal/earlysignal/core/student"
)

func TestParseCSV(t *testing.T) {
	t.Run("full row parses with clamps applied", func(t *testing.T) {
		csv := "student_id,name,email,department,semester,gpa,attendance,internal_marks,backlogs,study_hours,previous_failures\n" +
			"S001,Asha,asha@example.com,CSE,3,4.7,120,-5,2,30,1\n"
		students, skipped, err := student.ParseCSV(strings.NewReader(csv))
		assert.NoError(t, err)
		assert.Equal(t, 0, skipped)
		assert.Len(t, students, 1)

		s := students[0]
		assert.Equal(t, "S001", s.StudentID)
		assert.Equal(t, "Asha", s.Name)
		assert.Equal(t, "asha@example.com", s.Email)
		assert.Equal(t, "CSE", s.Department)
		assert.Equal(t, 3, s.Semester)
		assert.Equal(t, 4.0, s.GPA)            // clamped from 4.7
		assert.Equal(t, 100.0, s.Attendance)   // clamped from 120
		assert.Equal(t, 0.0, s.InternalMarks)  // clamped from -5
		assert.Equal(t, 24.0, s.StudyHours)    // clamped from 30
		assert.Equal(t, 2, s.Backlogs)
		assert.Equal(t, 1, s.PreviousFailures)
		assert.False(t, s.CreatedAt.IsZero())
	})

	t.Run("header names are normalized", func(t *testing.T) {
		csv := " Student ID , Internal Marks ,ATTENDANCE\nS002,68,82\n"
		students, _, err := student.ParseCSV(strings.NewReader(csv))
		assert.NoError(t, err)
		assert.Len(t, students, 1)
		assert.Equal(t, "S002", students[0].StudentID)
		assert.Equal(t, 68.0, students[0].InternalMarks)
		assert.Equal(t, 82.0, students[0].Attendance)
	})

	t.Run("absent columns take schema defaults", func(t *testing.T) {
		csv := "student_id\nS003\n"
		students, _, err := student.ParseCSV(strings.NewReader(csv))
		assert.NoError(t, err)
		assert.Len(t, students, 1)

		s := students[0]
		assert.Equal(t, student.DefaultAttendance, s.Attendance)
		assert.Equal(t, student.DefaultInternalMarks, s.InternalMarks)
		assert.Equal(t, student.DefaultBacklogs, s.Backlogs)
		assert.Equal(t, student.DefaultStudyHours, s.StudyHours)
		assert.Equal(t, student.DefaultPreviousFailures, s.PreviousFailures)
		assert.Equal(t, student.DefaultGPA, s.GPA)
		assert.Equal(t, student.DefaultSemester, s.Semester)
	})

	t.Run("unparseable cells land on the column default", func(t *testing.T) {
		csv := "student_id,attendance,backlogs,gpa\nS004,lots,none,good\n"
		students, _, err := student.ParseCSV(strings.NewReader(csv))
		assert.NoError(t, err)
		assert.Len(t, students, 1)
		assert.Equal(t, student.DefaultAttendance, students[0].Attendance)
		assert.Equal(t, student.DefaultBacklogs, students[0].Backlogs)
		assert.Equal(t, student.DefaultGPA, students[0].GPA)
	})

	t.Run("empty cell in a present column reads as zero", func(t *testing.T) {
		csv := "student_id,attendance,backlogs\nS005,,\n"
		students, _, err := student.ParseCSV(strings.NewReader(csv))
		assert.NoError(t, err)
		assert.Len(t, students, 1)
		assert.Equal(t, 0.0, students[0].Attendance)
		assert.Equal(t, 0, students[0].Backlogs)
	})

	t.Run("count columns cast through float", func(t *testing.T) {
		csv := "student_id,backlogs,semester\nS006,2.9,3.1\n"
		students, _, err := student.ParseCSV(strings.NewReader(csv))
		assert.NoError(t, err)
		assert.Equal(t, 2, students[0].Backlogs)
		assert.Equal(t, 3, students[0].Semester)
	})

	t.Run("rows without a student id are dropped silently", func(t *testing.T) {
		csv := "student_id,attendance\nS007,80\n,90\n  ,70\nS008,60\n"
		students, skipped, err := student.ParseCSV(strings.NewReader(csv))
		assert.NoError(t, err)
		assert.Equal(t, 2, skipped)
		assert.Len(t, students, 2)
		assert.Equal(t, "S007", students[0].StudentID)
		assert.Equal(t, "S008", students[1].StudentID)
	})

	t.Run("ragged rows fill from defaults", func(t *testing.T) {
		csv := "student_id,attendance,internal_marks\nS009,55\n"
		students, _, err := student.ParseCSV(strings.NewReader(csv))
		assert.NoError(t, err)
		assert.Len(t, students, 1)
		assert.Equal(t, 55.0, students[0].Attendance)
		assert.Equal(t, 0.0, students[0].InternalMarks) // column present, cell missing
	})

	t.Run("empty stream errors", func(t *testing.T) {
		_, _, err := student.ParseCSV(strings.NewReader(""))
		assert.Error(t, err)
	})
}

func TestServiceIngestCSV(t *testing.T) {
	svc, repo := setup(t, nil, nil)

	csv := "student_id,name,attendance,internal_marks,backlogs\n" +
		"S601,Ravi,55,45,2\n" +
		",Ghost,80,80,0\n" +
		"S602,Mina,92,88,0\n"

	report, err := svc.IngestCSV(strings.NewReader(csv))
	assert.NoError(t, err)
	assert.Equal(t, student.UploadReport{Total: 3, Ingested: 2, Skipped: 1, Failed: 0}, report)

	// ingested rows are scored immediately
	s, err := repo.GetStudentByStudentID("S601")
	assert.NoError(t, err)
	assert.Equal(t, "Ravi", s.Name)
	assert.NotEmpty(t, s.RiskLevel)
	assert.False(t, s.LastAnalyzedAt.IsZero())
}
