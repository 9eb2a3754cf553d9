package inmemdb

import (
	"time"

	"github.com/google/uuid"

	"github.com/shulehub/shule/core/student"
)

type studentRepository struct {
	db *DB
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *DB) *studentRepository {
	return &studentRepository{db: db}
}

func (repo *studentRepository) populate(rec *studentRecord) student.Student {
	std := rec.std
	std.Courses = make([]student.CourseRef, 0, len(rec.courseIDs))
	for _, id := range rec.courseIDs {
		if crs, ok := repo.db.courses[id]; ok {
			std.Courses = append(std.Courses, student.CourseRef{
				ID:    crs.crs.ID,
				Title: crs.crs.Title,
				Code:  crs.crs.Code,
			})
		}
	}
	return std
}

func (repo *studentRepository) CheckUniqueness(email, studentID string, excludedStudents ...student.Student) error {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, rec := range repo.db.students {
		excluded := false
		for _, excl := range excludedStudents {
			if excl.ID == rec.std.ID {
				excluded = true
				break
			}
		}
		if excluded {
			continue
		}
		if rec.std.Email == email {
			return student.ErrEmailExists
		}
		if rec.std.StudentID == studentID {
			return student.ErrStudentIDExists
		}
	}
	return nil
}

func (repo *studentRepository) CreateStudent(std student.Student) (student.Student, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	std.ID = uuid.NewString()
	repo.db.students[std.ID] = &studentRecord{std: std}
	return repo.populate(repo.db.students[std.ID]), nil
}

func (repo *studentRepository) QueryAllStudents() ([]student.Student, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	students := make([]student.Student, 0, len(repo.db.students))
	for _, rec := range repo.db.students {
		students = append(students, repo.populate(rec))
	}
	return students, nil
}

func (repo *studentRepository) GetStudentByID(id string) (student.Student, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if rec, ok := repo.db.students[id]; ok {
		return repo.populate(rec), nil
	}
	return student.Student{}, student.ErrNotFound
}

func (repo *studentRepository) GetStudentByEmail(email string) (student.Student, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, rec := range repo.db.students {
		if rec.std.Email == email {
			return repo.populate(rec), nil
		}
	}
	return student.Student{}, student.ErrNotFound
}

func (repo *studentRepository) StudentExists(id string) (bool, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	_, ok := repo.db.students[id]
	return ok, nil
}

func (repo *studentRepository) UpdateStudent(std student.Student) (student.Student, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	rec, ok := repo.db.students[std.ID]
	if !ok {
		return student.Student{}, student.ErrNotFound
	}
	rec.std = std
	return repo.populate(rec), nil
}

func (repo *studentRepository) UpdateStudentStatus(id, status string) (student.Student, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	rec, ok := repo.db.students[id]
	if !ok {
		return student.Student{}, student.ErrNotFound
	}
	rec.std.Status = status
	return repo.populate(rec), nil
}

func (repo *studentRepository) DeleteStudent(id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.students[id]; !ok {
		return student.ErrNotFound
	}
	delete(repo.db.students, id)
	return nil
}

func (repo *studentRepository) SetLastLogin(id string, at time.Time) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	rec, ok := repo.db.students[id]
	if !ok {
		return student.ErrNotFound
	}
	rec.std.LastLogin = at
	return nil
}

func (repo *studentRepository) AddCourse(studentID, courseID string) (student.Student, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	rec, ok := repo.db.students[studentID]
	if !ok {
		return student.Student{}, student.ErrNotFound
	}
	rec.courseIDs = appendUnique(rec.courseIDs, courseID)
	return repo.populate(rec), nil
}

func (repo *studentRepository) RemoveCourse(studentID, courseID string) (student.Student, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	rec, ok := repo.db.students[studentID]
	if !ok {
		return student.Student{}, student.ErrNotFound
	}
	rec.courseIDs = remove(rec.courseIDs, courseID)
	return repo.populate(rec), nil
}

func (repo *studentRepository) UpdateAddress(id string, addr student.Address) (student.Student, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	rec, ok := repo.db.students[id]
	if !ok {
		return student.Student{}, student.ErrNotFound
	}
	rec.std.Address = addr
	rec.std.UpdatedAt = time.Now().UTC()
	return repo.populate(rec), nil
}

func (repo *studentRepository) UpdateGuardian(id string, grd student.Guardian) (student.Student, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	rec, ok := repo.db.students[id]
	if !ok {
		return student.Student{}, student.ErrNotFound
	}
	rec.std.Guardian = grd
	rec.std.UpdatedAt = time.Now().UTC()
	return repo.populate(rec), nil
}

func (repo *studentRepository) AttachCourse(studentID, courseID string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	rec, ok := repo.db.students[studentID]
	if !ok {
		return student.ErrNotFound
	}
	rec.courseIDs = appendUnique(rec.courseIDs, courseID)
	return nil
}

func (repo *studentRepository) DetachCourse(studentID, courseID string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	rec, ok := repo.db.students[studentID]
	if !ok {
		return student.ErrNotFound
	}
	rec.courseIDs = remove(rec.courseIDs, courseID)
	return nil
}

func (repo *studentRepository) DetachCourseFromAll(courseID string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, rec := range repo.db.students {
		rec.courseIDs = remove(rec.courseIDs, courseID)
	}
	return nil
}
