package student

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/earlysignal/earlysignal/core"
)

// per-column defaults used when a column is absent from the file or a cell
// fails to parse
var columnDefaults = map[string]float64{
	"attendance":        DefaultAttendance,
	"internal_marks":    DefaultInternalMarks,
	"backlogs":          float64(DefaultBacklogs),
	"study_hours":       DefaultStudyHours,
	"previous_failures": float64(DefaultPreviousFailures),
	"gpa":               DefaultGPA,
	"semester":          float64(DefaultSemester),
}

// ParseCSV reads an uploaded CSV stream into typed student records.
//
// Column names are normalized (trim, lowercase, spaces to underscores).
// Known numeric columns parse with parse-or-default semantics and are
// clamped to their valid ranges; columns absent from the file take their
// schema defaults. Rows without a student_id are dropped silently; the
// count of dropped rows is returned alongside the records.
func ParseCSV(r io.Reader) ([]Student, int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // ragged rows fill with defaults

	header, err := reader.Read()
	if err != nil {
		return nil, 0, errors.Wrap(err, "reading CSV header")
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[normalizeColumn(name)] = i
	}

	var students []Student
	var skipped int
	now := time.Now().UTC()

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, errors.Wrap(err, "reading CSV row")
		}

		cell := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(row) {
				return ""
			}
			return core.CleanString(row[i])
		}

		studentID := cell("student_id")
		if studentID == "" {
			skipped++
			continue
		}

		s := Student{
			StudentID:        studentID,
			Name:             cell("name"),
			Email:            cell("email"),
			Department:       cell("department"),
			Semester:         parseIntColumn(cell, cols, "semester"),
			GPA:              core.Clamp(parseFloatColumn(cell, cols, "gpa"), 0, 4),
			Attendance:       core.Clamp(parseFloatColumn(cell, cols, "attendance"), 0, 100),
			InternalMarks:    core.Clamp(parseFloatColumn(cell, cols, "internal_marks"), 0, 100),
			Backlogs:         parseIntColumn(cell, cols, "backlogs"),
			StudyHours:       core.Clamp(parseFloatColumn(cell, cols, "study_hours"), 0, 24),
			PreviousFailures: parseIntColumn(cell, cols, "previous_failures"),
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		students = append(students, s)
	}
	return students, skipped, nil
}

func normalizeColumn(name string) string {
	return strings.ReplaceAll(core.CleanString(name, true /* lower */), " ", "_")
}

// parseFloatColumn resolves a known numeric column: the schema default when
// the column is missing from the file, parse-or-default per cell otherwise.
func parseFloatColumn(cell func(string) string, cols map[string]int, name string) float64 {
	def := columnDefaults[name]
	if _, ok := cols[name]; !ok {
		return def
	}
	raw := cell(name)
	if raw == "" {
		return 0 // missing cell in a present column
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return def
	}
	return f
}

// parseIntColumn is the integer cast used for count-like columns; parse
// failure lands on the column default.
func parseIntColumn(cell func(string) string, cols map[string]int, name string) int {
	def := int(columnDefaults[name])
	if _, ok := cols[name]; !ok {
		return def
	}
	raw := cell(name)
	if raw == "" {
		return 0
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return def
	}
	return int(f)
}
