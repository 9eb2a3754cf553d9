package inmemdb

import (
	"github.com/google/uuid"

	"github.com/shulehub/shule/core/subject"
)

type subjectRepository struct {
	db *DB
}

var _ subject.Repository = (*subjectRepository)(nil) // interface compliance check

func NewSubjectRepository(db *DB) *subjectRepository {
	return &subjectRepository{db: db}
}

func (repo *subjectRepository) populate(rec *subjectRecord) subject.Subject {
	sub := rec.sub

	sub.Teachers = make([]subject.TeacherRef, 0, len(rec.teacherIDs))
	for _, id := range rec.teacherIDs {
		if tch, ok := repo.db.teachers[id]; ok {
			sub.Teachers = append(sub.Teachers, subject.TeacherRef{
				ID:        tch.tch.ID,
				FirstName: tch.tch.FirstName,
				LastName:  tch.tch.LastName,
				Email:     tch.tch.Email,
			})
		}
	}

	sub.Courses = make([]subject.CourseRef, 0, len(rec.courseIDs))
	for _, id := range rec.courseIDs {
		if crs, ok := repo.db.courses[id]; ok {
			sub.Courses = append(sub.Courses, subject.CourseRef{
				ID:    crs.crs.ID,
				Title: crs.crs.Title,
				Code:  crs.crs.Code,
			})
		}
	}

	sub.Prerequisites = make([]subject.Ref, 0, len(rec.prereqIDs))
	for _, id := range rec.prereqIDs {
		if prq, ok := repo.db.subjects[id]; ok {
			sub.Prerequisites = append(sub.Prerequisites, subject.Ref{
				ID:   prq.sub.ID,
				Name: prq.sub.Name,
				Code: prq.sub.Code,
			})
		}
	}
	return sub
}

func (repo *subjectRepository) CheckCodeUniqueness(code string, excludedSubjects ...subject.Subject) error {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, rec := range repo.db.subjects {
		if rec.sub.Code != code {
			continue
		}
		excluded := false
		for _, excl := range excludedSubjects {
			if excl.ID == rec.sub.ID {
				excluded = true
				break
			}
		}
		if !excluded {
			return subject.ErrCodeExists
		}
	}
	return nil
}

func (repo *subjectRepository) CreateSubject(sub subject.Subject) (subject.Subject, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	sub.ID = uuid.NewString()
	repo.db.subjects[sub.ID] = &subjectRecord{sub: sub}
	return repo.populate(repo.db.subjects[sub.ID]), nil
}

func (repo *subjectRepository) QueryAllSubjects() ([]subject.Subject, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	subjects := make([]subject.Subject, 0, len(repo.db.subjects))
	for _, rec := range repo.db.subjects {
		subjects = append(subjects, repo.populate(rec))
	}
	return subjects, nil
}

func (repo *subjectRepository) GetSubjectByID(id string) (subject.Subject, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if rec, ok := repo.db.subjects[id]; ok {
		return repo.populate(rec), nil
	}
	return subject.Subject{}, subject.ErrNotFound
}

func (repo *subjectRepository) SubjectExists(id string) (bool, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	_, ok := repo.db.subjects[id]
	return ok, nil
}

func (repo *subjectRepository) UpdateSubject(sub subject.Subject) (subject.Subject, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	rec, ok := repo.db.subjects[sub.ID]
	if !ok {
		return subject.Subject{}, subject.ErrNotFound
	}
	rec.sub = sub
	return repo.populate(rec), nil
}

func (repo *subjectRepository) UpdateSubjectStatus(id, status string) (subject.Subject, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	rec, ok := repo.db.subjects[id]
	if !ok {
		return subject.Subject{}, subject.ErrNotFound
	}
	rec.sub.Status = status
	return repo.populate(rec), nil
}

func (repo *subjectRepository) DeleteSubject(id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.subjects[id]; !ok {
		return subject.ErrNotFound
	}
	delete(repo.db.subjects, id)
	return nil
}

func (repo *subjectRepository) AddTeacher(subjectID, teacherID string) (subject.Subject, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	rec, ok := repo.db.subjects[subjectID]
	if !ok {
		return subject.Subject{}, subject.ErrNotFound
	}
	rec.teacherIDs = appendUnique(rec.teacherIDs, teacherID)
	return repo.populate(rec), nil
}

func (repo *subjectRepository) RemoveTeacher(subjectID, teacherID string) (subject.Subject, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	rec, ok := repo.db.subjects[subjectID]
	if !ok {
		return subject.Subject{}, subject.ErrNotFound
	}
	rec.teacherIDs = remove(rec.teacherIDs, teacherID)
	return repo.populate(rec), nil
}

func (repo *subjectRepository) AddCourse(subjectID, courseID string) (subject.Subject, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	rec, ok := repo.db.subjects[subjectID]
	if !ok {
		return subject.Subject{}, subject.ErrNotFound
	}
	rec.courseIDs = appendUnique(rec.courseIDs, courseID)
	return repo.populate(rec), nil
}

func (repo *subjectRepository) RemoveCourse(subjectID, courseID string) (subject.Subject, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	rec, ok := repo.db.subjects[subjectID]
	if !ok {
		return subject.Subject{}, subject.ErrNotFound
	}
	rec.courseIDs = remove(rec.courseIDs, courseID)
	return repo.populate(rec), nil
}

func (repo *subjectRepository) AddPrerequisite(subjectID, prerequisiteID string) (subject.Subject, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	rec, ok := repo.db.subjects[subjectID]
	if !ok {
		return subject.Subject{}, subject.ErrNotFound
	}
	rec.prereqIDs = appendUnique(rec.prereqIDs, prerequisiteID)
	return repo.populate(rec), nil
}

func (repo *subjectRepository) RemovePrerequisite(subjectID, prerequisiteID string) (subject.Subject, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	rec, ok := repo.db.subjects[subjectID]
	if !ok {
		return subject.Subject{}, subject.ErrNotFound
	}
	rec.prereqIDs = remove(rec.prereqIDs, prerequisiteID)
	return repo.populate(rec), nil
}
