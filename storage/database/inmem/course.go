package inmemdb

import (
	"github.com/google/uuid"

	"github.com/shulehub/shule/core/course"
)

type courseRepository struct {
	db *DB
}

var _ course.Repository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(db *DB) *courseRepository {
	return &courseRepository{db: db}
}

// populate resolves the record's edges into denormalized refs,
// skipping IDs whose entity no longer exists.
func (repo *courseRepository) populate(rec *courseRecord) course.Course {
	crs := rec.crs

	if instr, ok := repo.db.teachers[crs.Instructor.ID]; ok {
		crs.Instructor = course.TeacherRef{
			ID:        instr.tch.ID,
			FirstName: instr.tch.FirstName,
			LastName:  instr.tch.LastName,
			Email:     instr.tch.Email,
		}
	}

	crs.Students = make([]course.StudentRef, 0, len(rec.studentIDs))
	for _, id := range rec.studentIDs {
		if std, ok := repo.db.students[id]; ok {
			crs.Students = append(crs.Students, course.StudentRef{
				ID:        std.std.ID,
				FirstName: std.std.FirstName,
				LastName:  std.std.LastName,
				StudentID: std.std.StudentID,
			})
		}
	}

	crs.Assistants = make([]course.TeacherRef, 0, len(rec.assistantIDs))
	for _, id := range rec.assistantIDs {
		if tch, ok := repo.db.teachers[id]; ok {
			crs.Assistants = append(crs.Assistants, course.TeacherRef{
				ID:        tch.tch.ID,
				FirstName: tch.tch.FirstName,
				LastName:  tch.tch.LastName,
				Email:     tch.tch.Email,
			})
		}
	}

	crs.Prerequisites = make([]course.Ref, 0, len(rec.prereqIDs))
	for _, id := range rec.prereqIDs {
		if prq, ok := repo.db.courses[id]; ok {
			crs.Prerequisites = append(crs.Prerequisites, course.Ref{
				ID:    prq.crs.ID,
				Title: prq.crs.Title,
				Code:  prq.crs.Code,
			})
		}
	}
	return crs
}

func (repo *courseRepository) CheckCodeUniqueness(code string, excludedCourses ...course.Course) error {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, rec := range repo.db.courses {
		if rec.crs.Code != code {
			continue
		}
		excluded := false
		for _, excl := range excludedCourses {
			if excl.ID == rec.crs.ID {
				excluded = true
				break
			}
		}
		if !excluded {
			return course.ErrCodeExists
		}
	}
	return nil
}

func (repo *courseRepository) CreateCourse(crs course.Course) (course.Course, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	crs.ID = uuid.NewString()
	repo.db.courses[crs.ID] = &courseRecord{crs: crs}
	return repo.populate(repo.db.courses[crs.ID]), nil
}

func (repo *courseRepository) QueryAllCourses() ([]course.Course, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	courses := make([]course.Course, 0, len(repo.db.courses))
	for _, rec := range repo.db.courses {
		courses = append(courses, repo.populate(rec))
	}
	return courses, nil
}

func (repo *courseRepository) GetCourseByID(id string) (course.Course, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if rec, ok := repo.db.courses[id]; ok {
		return repo.populate(rec), nil
	}
	return course.Course{}, course.ErrNotFound
}

func (repo *courseRepository) CourseExists(id string) (bool, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	_, ok := repo.db.courses[id]
	return ok, nil
}

func (repo *courseRepository) UpdateCourse(crs course.Course) (course.Course, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	rec, ok := repo.db.courses[crs.ID]
	if !ok {
		return course.Course{}, course.ErrNotFound
	}
	crs.EnrolledCount = len(rec.studentIDs)
	rec.crs = crs
	return repo.populate(rec), nil
}

func (repo *courseRepository) UpdateCourseStatus(id, status string) (course.Course, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	rec, ok := repo.db.courses[id]
	if !ok {
		return course.Course{}, course.ErrNotFound
	}
	rec.crs.Status = status
	return repo.populate(rec), nil
}

func (repo *courseRepository) DeleteCourse(id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.courses[id]; !ok {
		return course.ErrNotFound
	}
	delete(repo.db.courses, id)
	return nil
}

func (repo *courseRepository) AddStudent(courseID, studentID string) (course.Course, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	rec, ok := repo.db.courses[courseID]
	if !ok {
		return course.Course{}, course.ErrNotFound
	}
	rec.studentIDs = appendUnique(rec.studentIDs, studentID)
	rec.crs.EnrolledCount = len(rec.studentIDs)
	return repo.populate(rec), nil
}

func (repo *courseRepository) RemoveStudent(courseID, studentID string) (course.Course, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	rec, ok := repo.db.courses[courseID]
	if !ok {
		return course.Course{}, course.ErrNotFound
	}
	rec.studentIDs = remove(rec.studentIDs, studentID)
	rec.crs.EnrolledCount = len(rec.studentIDs)
	return repo.populate(rec), nil
}

func (repo *courseRepository) AddAssistant(courseID, teacherID string) (course.Course, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	rec, ok := repo.db.courses[courseID]
	if !ok {
		return course.Course{}, course.ErrNotFound
	}
	rec.assistantIDs = appendUnique(rec.assistantIDs, teacherID)
	return repo.populate(rec), nil
}

func (repo *courseRepository) RemoveAssistant(courseID, teacherID string) (course.Course, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	rec, ok := repo.db.courses[courseID]
	if !ok {
		return course.Course{}, course.ErrNotFound
	}
	rec.assistantIDs = remove(rec.assistantIDs, teacherID)
	return repo.populate(rec), nil
}

func (repo *courseRepository) AddPrerequisite(courseID, prerequisiteID string) (course.Course, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	rec, ok := repo.db.courses[courseID]
	if !ok {
		return course.Course{}, course.ErrNotFound
	}
	rec.prereqIDs = appendUnique(rec.prereqIDs, prerequisiteID)
	return repo.populate(rec), nil
}

func (repo *courseRepository) RemovePrerequisite(courseID, prerequisiteID string) (course.Course, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	rec, ok := repo.db.courses[courseID]
	if !ok {
		return course.Course{}, course.ErrNotFound
	}
	rec.prereqIDs = remove(rec.prereqIDs, prerequisiteID)
	return repo.populate(rec), nil
}
