package inmemdb

import (
	"sync"

	"github.com/shulehub/shule/core/course"
	"github.com/shulehub/shule/core/student"
	"github.com/shulehub/shule/core/subject"
	"github.com/shulehub/shule/core/teacher"
)

type (
	// DB is an in-memory store keyed by entity ID. Relationship edges are kept
	// as ID slices on each record; referenced entities are resolved on read
	// and dangling references are skipped.
	DB struct {
		sync.RWMutex
		courses  map[string]*courseRecord
		students map[string]*studentRecord
		teachers map[string]*teacherRecord
		subjects map[string]*subjectRecord
	}

	courseRecord struct {
		crs          course.Course
		studentIDs   []string
		assistantIDs []string
		prereqIDs    []string
	}

	studentRecord struct {
		std       student.Student
		courseIDs []string
	}

	teacherRecord struct {
		tch teacher.Teacher
	}

	subjectRecord struct {
		sub        subject.Subject
		teacherIDs []string
		courseIDs  []string
		prereqIDs  []string
	}
)

func Open() (*DB, error) {
	db := &DB{}
	db.reset()
	return db, nil
}

func (db *DB) reset() {
	db.courses = make(map[string]*courseRecord)
	db.students = make(map[string]*studentRecord)
	db.teachers = make(map[string]*teacherRecord)
	db.subjects = make(map[string]*subjectRecord)
}

// Reset drops all data. Test helper.
func (db *DB) Reset() {
	db.Lock()
	defer db.Unlock()
	db.reset()
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func appendUnique(ids []string, id string) []string {
	if contains(ids, id) {
		return ids
	}
	return append(ids, id)
}

func remove(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
