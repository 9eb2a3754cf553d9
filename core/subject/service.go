package subject

import (
	"time"

	"github.com/pkg/errors"

	"github.com/shulehub/shule/core"
)

var (
	// errors
	ErrNotFound             = core.NewNotFoundError("subject not found")
	ErrTeacherNotFound      = core.NewNotFoundError("teacher not found")
	ErrCourseNotFound       = core.NewNotFoundError("course not found")
	ErrPrerequisiteNotFound = core.NewNotFoundError("prerequisite subject not found")
	ErrSelfPrerequisite     = core.NewBusinessRuleError("subject cannot be a prerequisite of itself")
	ErrCodeExists           = errors.New("a subject with this code already exists")
)

type (
	Repository interface {
		CheckCodeUniqueness(code string, excludedSubjects ...Subject) error
		CreateSubject(sub Subject) (Subject, error)
		QueryAllSubjects() ([]Subject, error)
		GetSubjectByID(id string) (Subject, error)
		SubjectExists(id string) (bool, error)
		UpdateSubject(sub Subject) (Subject, error)
		UpdateSubjectStatus(id, status string) (Subject, error)
		DeleteSubject(id string) error
		AddTeacher(subjectID, teacherID string) (Subject, error)
		RemoveTeacher(subjectID, teacherID string) (Subject, error)
		AddCourse(subjectID, courseID string) (Subject, error)
		RemoveCourse(subjectID, courseID string) (Subject, error)
		AddPrerequisite(subjectID, prerequisiteID string) (Subject, error)
		RemovePrerequisite(subjectID, prerequisiteID string) (Subject, error)
	}

	// TeacherDirectory is the slice of the teacher store needed here.
	TeacherDirectory interface {
		TeacherExists(id string) (bool, error)
	}

	// CourseDirectory is the slice of the course store needed here.
	CourseDirectory interface {
		CourseExists(id string) (bool, error)
	}

	Service struct {
		repo     Repository
		teachers TeacherDirectory
		courses  CourseDirectory
	}
)

func NewService(repo Repository, teachers TeacherDirectory, courses CourseDirectory) *Service {
	return &Service{
		repo:     repo,
		teachers: teachers,
		courses:  courses,
	}
}

func (svc *Service) CheckCodeUniqueness(code string, exclSubjects ...Subject) error {
	if err := svc.repo.CheckCodeUniqueness(code, exclSubjects...); err != nil {
		if err == ErrCodeExists {
			return core.NewValidationError(err, core.FieldError{Field: "code", Error: err.Error()})
		}
		return err
	}
	return nil
}

func (svc *Service) Create(ns NewSubject) (Subject, error) {
	now := time.Now().UTC()
	sub := Subject{
		Name:        ns.Name,
		Code:        ns.Code,
		Description: ns.Description,
		Department:  ns.Department,
		Level:       ns.Level,
		CreditHours: *ns.CreditHours,
		Status:      ns.Status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if ns.IsElective != nil {
		sub.IsElective = *ns.IsElective
	}
	return svc.repo.CreateSubject(sub)
}

func (svc *Service) QueryAll() ([]Subject, error) {
	return svc.repo.QueryAllSubjects()
}

func (svc *Service) GetByID(id string) (Subject, error) {
	return svc.repo.GetSubjectByID(id)
}

func (svc *Service) Update(id string, us UpdateSubject) (Subject, error) {
	sub, err := svc.repo.GetSubjectByID(id)
	if err != nil {
		return Subject{}, err
	}
	if err = us.Validate(sub, svc); err != nil {
		return Subject{}, err
	}

	if us.Name != nil {
		sub.Name = *us.Name
	}
	if us.Code != nil {
		sub.Code = *us.Code
	}
	if us.Description != nil {
		sub.Description = *us.Description
	}
	if us.Department != nil {
		sub.Department = *us.Department
	}
	if us.Level != nil {
		sub.Level = *us.Level
	}
	if us.CreditHours != nil {
		sub.CreditHours = *us.CreditHours
	}
	if us.Status != nil {
		sub.Status = *us.Status
	}
	if us.IsElective != nil {
		sub.IsElective = *us.IsElective
	}
	sub.UpdatedAt = time.Now().UTC()

	return svc.repo.UpdateSubject(sub)
}

func (svc *Service) UpdateStatus(id, status string) (Subject, error) {
	if !isValidStatus(status) {
		return Subject{}, core.NewValidationError(nil, core.FieldError{Field: "status", Error: "invalid status"})
	}
	return svc.repo.UpdateSubjectStatus(id, status)
}

// Delete removes the subject only. Teacher and course references to it are
// left in place.
func (svc *Service) Delete(id string) error {
	return svc.repo.DeleteSubject(id)
}

// AddTeacher is idempotent. The teacher's own record is not updated.
func (svc *Service) AddTeacher(subjectID, teacherID string) (Subject, error) {
	if _, err := svc.repo.GetSubjectByID(subjectID); err != nil {
		return Subject{}, err
	}
	ok, err := svc.teachers.TeacherExists(teacherID)
	if err != nil {
		return Subject{}, errors.Wrap(err, "checking teacher")
	}
	if !ok {
		return Subject{}, ErrTeacherNotFound
	}
	return svc.repo.AddTeacher(subjectID, teacherID)
}

func (svc *Service) RemoveTeacher(subjectID, teacherID string) (Subject, error) {
	return svc.repo.RemoveTeacher(subjectID, teacherID)
}

// AddCourse is idempotent. The course's own record is not updated.
func (svc *Service) AddCourse(subjectID, courseID string) (Subject, error) {
	if _, err := svc.repo.GetSubjectByID(subjectID); err != nil {
		return Subject{}, err
	}
	ok, err := svc.courses.CourseExists(courseID)
	if err != nil {
		return Subject{}, errors.Wrap(err, "checking course")
	}
	if !ok {
		return Subject{}, ErrCourseNotFound
	}
	return svc.repo.AddCourse(subjectID, courseID)
}

func (svc *Service) RemoveCourse(subjectID, courseID string) (Subject, error) {
	return svc.repo.RemoveCourse(subjectID, courseID)
}

// AddPrerequisite rejects self-reference before checking existence. Circular
// prerequisite chains between distinct subjects are not detected.
func (svc *Service) AddPrerequisite(subjectID, prerequisiteID string) (Subject, error) {
	if subjectID == prerequisiteID {
		return Subject{}, ErrSelfPrerequisite
	}
	if _, err := svc.repo.GetSubjectByID(subjectID); err != nil {
		return Subject{}, err
	}
	ok, err := svc.repo.SubjectExists(prerequisiteID)
	if err != nil {
		return Subject{}, errors.Wrap(err, "checking prerequisite")
	}
	if !ok {
		return Subject{}, ErrPrerequisiteNotFound
	}
	return svc.repo.AddPrerequisite(subjectID, prerequisiteID)
}

func (svc *Service) RemovePrerequisite(subjectID, prerequisiteID string) (Subject, error) {
	return svc.repo.RemovePrerequisite(subjectID, prerequisiteID)
}

func isValidStatus(status string) bool {
	for _, s := range Statuses {
		if s == status {
			return true
		}
	}
	return false
}
