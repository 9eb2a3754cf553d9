package inmemdb

import (
	"github.com/google/uuid"

	"github.com/shulehub/shule/core/teacher"
)

type teacherRepository struct {
	db *DB
}

var _ teacher.Repository = (*teacherRepository)(nil) // interface compliance check

func NewTeacherRepository(db *DB) *teacherRepository {
	return &teacherRepository{db: db}
}

func (repo *teacherRepository) CheckEmailUniqueness(email string, excludedTeachers ...teacher.Teacher) error {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, rec := range repo.db.teachers {
		if rec.tch.Email != email {
			continue
		}
		excluded := false
		for _, excl := range excludedTeachers {
			if excl.ID == rec.tch.ID {
				excluded = true
				break
			}
		}
		if !excluded {
			return teacher.ErrEmailExists
		}
	}
	return nil
}

func (repo *teacherRepository) CreateTeacher(tch teacher.Teacher) (teacher.Teacher, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	tch.ID = uuid.NewString()
	repo.db.teachers[tch.ID] = &teacherRecord{tch: tch}
	return tch, nil
}

func (repo *teacherRepository) QueryAllTeachers() ([]teacher.Teacher, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	teachers := make([]teacher.Teacher, 0, len(repo.db.teachers))
	for _, rec := range repo.db.teachers {
		teachers = append(teachers, rec.tch)
	}
	return teachers, nil
}

func (repo *teacherRepository) GetTeacherByID(id string) (teacher.Teacher, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if rec, ok := repo.db.teachers[id]; ok {
		return rec.tch, nil
	}
	return teacher.Teacher{}, teacher.ErrNotFound
}

func (repo *teacherRepository) GetTeacherByEmail(email string) (teacher.Teacher, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, rec := range repo.db.teachers {
		if rec.tch.Email == email {
			return rec.tch, nil
		}
	}
	return teacher.Teacher{}, teacher.ErrNotFound
}

func (repo *teacherRepository) TeacherExists(id string) (bool, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	_, ok := repo.db.teachers[id]
	return ok, nil
}

func (repo *teacherRepository) UpdateTeacher(tch teacher.Teacher) (teacher.Teacher, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	rec, ok := repo.db.teachers[tch.ID]
	if !ok {
		return teacher.Teacher{}, teacher.ErrNotFound
	}
	rec.tch = tch
	return rec.tch, nil
}

func (repo *teacherRepository) UpdateTeacherStatus(id, status string) (teacher.Teacher, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	rec, ok := repo.db.teachers[id]
	if !ok {
		return teacher.Teacher{}, teacher.ErrNotFound
	}
	rec.tch.Status = status
	return rec.tch, nil
}

func (repo *teacherRepository) DeleteTeacher(id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.teachers[id]; !ok {
		return teacher.ErrNotFound
	}
	delete(repo.db.teachers, id)
	return nil
}

func (repo *teacherRepository) AddSubject(teacherID, subject string) (teacher.Teacher, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	rec, ok := repo.db.teachers[teacherID]
	if !ok {
		return teacher.Teacher{}, teacher.ErrNotFound
	}
	rec.tch.Subjects = appendUnique(rec.tch.Subjects, subject)
	return rec.tch, nil
}

func (repo *teacherRepository) RemoveSubject(teacherID, subject string) (teacher.Teacher, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	rec, ok := repo.db.teachers[teacherID]
	if !ok {
		return teacher.Teacher{}, teacher.ErrNotFound
	}
	rec.tch.Subjects = remove(rec.tch.Subjects, subject)
	return rec.tch, nil
}

func (repo *teacherRepository) AddClass(teacherID, classID string) (teacher.Teacher, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	rec, ok := repo.db.teachers[teacherID]
	if !ok {
		return teacher.Teacher{}, teacher.ErrNotFound
	}
	rec.tch.Classes = appendUnique(rec.tch.Classes, classID)
	return rec.tch, nil
}

func (repo *teacherRepository) RemoveClass(teacherID, classID string) (teacher.Teacher, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	rec, ok := repo.db.teachers[teacherID]
	if !ok {
		return teacher.Teacher{}, teacher.ErrNotFound
	}
	rec.tch.Classes = remove(rec.tch.Classes, classID)
	return rec.tch, nil
}
