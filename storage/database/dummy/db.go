package dummydb

import (
	"sync"

	"github.com/earlysignal/earlysignal/core/student"
)

type (
	DB struct {
		student *studentTable
	}

	studentTable struct {
		sync.RWMutex
		table map[string]*student.Student // keyed by student_id
	}
)

func Open() (*DB, error) {
	db := &DB{
		student: &studentTable{table: make(map[string]*student.Student)},
	}
	return db, nil
}

// Reset drops all rows; test helper.
func (db *DB) Reset() {
	db.student.Lock()
	db.student.table = make(map[string]*student.Student)
	db.student.Unlock()
}
