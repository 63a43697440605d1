package dummydb

import (
	"sort"

	"github.com/earlysignal/earlysignal/core/student"
)

type studentRepository struct {
	db *studentTable
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *DB) student.Repository {
	return &studentRepository{db: db.student}
}

func (repo *studentRepository) query() []student.Student {
	students := make([]student.Student, 0, len(repo.db.table))
	for _, s := range repo.db.table {
		students = append(students, *s)
	}
	sort.Slice(students, func(i, j int) bool { return students[i].StudentID < students[j].StudentID })
	return students
}

func (repo *studentRepository) QueryAllStudents() ([]student.Student, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.query(), nil
}

func (repo *studentRepository) FilterStudents(filter student.QueryFilter) ([]student.Student, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	matches := make([]student.Student, 0)
	for _, s := range repo.query() {
		if filter.Department != "" && s.Department != filter.Department {
			continue
		}
		if filter.Semester != 0 && s.Semester != filter.Semester {
			continue
		}
		if filter.RiskLevel != "" && s.RiskLevel != filter.RiskLevel {
			continue
		}
		matches = append(matches, s)
	}
	return matches, nil
}

func (repo *studentRepository) GetStudentByStudentID(studentID string) (student.Student, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if s, ok := repo.db.table[studentID]; ok {
		return *s, nil
	}
	return student.Student{}, student.ErrNotFound
}

func (repo *studentRepository) UpsertStudent(s student.Student) (student.Student, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if existing, ok := repo.db.table[s.StudentID]; ok {
		// preserve scoring fields the attribute upsert does not carry
		s.DropoutProbability = existing.DropoutProbability
		s.RiskLevel = existing.RiskLevel
		s.RiskFactors = existing.RiskFactors
		s.LastAnalyzedAt = existing.LastAnalyzedAt
		s.CreatedAt = existing.CreatedAt
	}
	repo.db.table[s.StudentID] = &s
	return s, nil
}

func (repo *studentRepository) UpdateStudentRisk(studentID string, upd student.RiskUpdate) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	s, ok := repo.db.table[studentID]
	if !ok {
		return student.ErrNotFound
	}
	s.DropoutProbability = upd.DropoutProbability
	s.RiskLevel = upd.RiskLevel
	s.RiskFactors = upd.RiskFactors
	s.LastAnalyzedAt = upd.AnalyzedAt
	return nil
}

func (repo *studentRepository) AverageDropoutProbability() (float64, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var sum float64
	var n int
	for _, s := range repo.db.table {
		if s.LastAnalyzedAt.IsZero() {
			continue
		}
		sum += s.DropoutProbability
		n++
	}
	if n == 0 {
		return 0, nil
	}
	return sum / float64(n), nil
}

func (repo *studentRepository) CountStudents(filter student.QueryFilter) (int64, error) {
	students, err := repo.FilterStudents(filter)
	if err != nil {
		return 0, err
	}
	return int64(len(students)), nil
}
