package course

import (
	"time"

	"github.com/pkg/errors"

	"github.com/shulehub/shule/core"
)

var (
	// errors
	ErrNotFound             = core.NewNotFoundError("course not found")
	ErrStudentNotFound      = core.NewNotFoundError("student not found")
	ErrTeacherNotFound      = core.NewNotFoundError("teacher not found")
	ErrPrerequisiteNotFound = core.NewNotFoundError("prerequisite course not found")
	ErrStudentNotEnrolled   = core.NewNotFoundError("student not found in this course")
	ErrFull                 = core.NewBusinessRuleError("course is full")
	ErrAlreadyEnrolled      = core.NewBusinessRuleError("student already enrolled")
	ErrSelfPrerequisite     = core.NewBusinessRuleError("course cannot be a prerequisite of itself")
	ErrCodeExists           = errors.New("a course with this code already exists")
)

type (
	Repository interface {
		CheckCodeUniqueness(code string, excludedCourses ...Course) error
		CreateCourse(crs Course) (Course, error)
		QueryAllCourses() ([]Course, error)
		GetCourseByID(id string) (Course, error)
		CourseExists(id string) (bool, error)
		UpdateCourse(crs Course) (Course, error)
		UpdateCourseStatus(id, status string) (Course, error)
		DeleteCourse(id string) error
		AddStudent(courseID, studentID string) (Course, error)
		RemoveStudent(courseID, studentID string) (Course, error)
		AddAssistant(courseID, teacherID string) (Course, error)
		RemoveAssistant(courseID, teacherID string) (Course, error)
		AddPrerequisite(courseID, prerequisiteID string) (Course, error)
		RemovePrerequisite(courseID, prerequisiteID string) (Course, error)
	}

	// StudentJoiner maintains the student side of the Course<->Student edge.
	// It is satisfied by the student repository.
	StudentJoiner interface {
		StudentExists(id string) (bool, error)
		AttachCourse(studentID, courseID string) error
		DetachCourse(studentID, courseID string) error
		DetachCourseFromAll(courseID string) error
	}

	// TeacherDirectory resolves teacher references. Satisfied by the teacher repository.
	TeacherDirectory interface {
		TeacherExists(id string) (bool, error)
	}

	Service struct {
		repo     Repository
		students StudentJoiner
		teachers TeacherDirectory
	}
)

func NewService(repo Repository, students StudentJoiner, teachers TeacherDirectory) *Service {
	return &Service{
		repo:     repo,
		students: students,
		teachers: teachers,
	}
}

func (svc *Service) CheckCodeUniqueness(code string, exclCourses ...Course) error {
	if err := svc.repo.CheckCodeUniqueness(code, exclCourses...); err != nil {
		if err == ErrCodeExists {
			return core.NewValidationError(err, core.FieldError{Field: "code", Error: err.Error()})
		}
		return err
	}
	return nil
}

func (svc *Service) Create(nc NewCourse) (Course, error) {
	now := time.Now().UTC()
	crs := Course{
		Title:         nc.Title,
		Code:          nc.Code,
		Description:   nc.Description,
		Category:      nc.Category,
		Level:         nc.Level,
		Credits:       *nc.Credits,
		DurationWeeks: nc.DurationWeeks,
		Instructor:    TeacherRef{ID: nc.Instructor},
		Capacity:      nc.Capacity,
		Schedule: Schedule{
			StartDate:  nc.Schedule.StartDate,
			EndDate:    nc.Schedule.EndDate,
			DaysOfWeek: nc.Schedule.DaysOfWeek,
			Time:       nc.Schedule.Time,
		},
		Price:     *nc.Price,
		Currency:  nc.Currency,
		Status:    nc.Status,
		Thumbnail: nc.Thumbnail,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return svc.repo.CreateCourse(crs)
}

func (svc *Service) QueryAll() ([]Course, error) {
	return svc.repo.QueryAllCourses()
}

func (svc *Service) GetByID(id string) (Course, error) {
	return svc.repo.GetCourseByID(id)
}

func (svc *Service) Update(id string, uc UpdateCourse) (Course, error) {
	crs, err := svc.repo.GetCourseByID(id)
	if err != nil {
		return Course{}, err
	}
	if err = uc.Validate(crs, svc); err != nil {
		return Course{}, err
	}

	if uc.Title != nil {
		crs.Title = *uc.Title
	}
	if uc.Code != nil {
		crs.Code = *uc.Code
	}
	if uc.Description != nil {
		crs.Description = *uc.Description
	}
	if uc.Category != nil {
		crs.Category = *uc.Category
	}
	if uc.Level != nil {
		crs.Level = *uc.Level
	}
	if uc.Credits != nil {
		crs.Credits = *uc.Credits
	}
	if uc.DurationWeeks != nil {
		crs.DurationWeeks = *uc.DurationWeeks
	}
	if uc.Instructor != nil {
		crs.Instructor = TeacherRef{ID: *uc.Instructor}
	}
	if uc.Capacity != nil {
		crs.Capacity = *uc.Capacity
	}
	if uc.Schedule != nil {
		crs.Schedule = Schedule{
			StartDate:  uc.Schedule.StartDate,
			EndDate:    uc.Schedule.EndDate,
			DaysOfWeek: uc.Schedule.DaysOfWeek,
			Time:       uc.Schedule.Time,
		}
	}
	if uc.Price != nil {
		crs.Price = *uc.Price
	}
	if uc.Currency != nil {
		crs.Currency = *uc.Currency
	}
	if uc.Status != nil {
		crs.Status = *uc.Status
	}
	if uc.Thumbnail != nil {
		crs.Thumbnail = *uc.Thumbnail
	}
	if uc.IsActive != nil {
		crs.IsActive = *uc.IsActive
	}
	crs.UpdatedAt = time.Now().UTC()

	return svc.repo.UpdateCourse(crs)
}

func (svc *Service) UpdateStatus(id, status string) (Course, error) {
	if !isValidStatus(status) {
		return Course{}, core.NewValidationError(nil, core.FieldError{Field: "status", Error: "invalid status"})
	}
	return svc.repo.UpdateCourseStatus(id, status)
}

// Delete removes the course and pulls its reference from every enrolled
// student's course set. The two writes are not transactional; a failure of the
// second one leaves the course deleted and the student references dangling.
func (svc *Service) Delete(id string) error {
	if _, err := svc.repo.GetCourseByID(id); err != nil {
		return err
	}
	if err := svc.repo.DeleteCourse(id); err != nil {
		return err
	}
	return errors.Wrap(svc.students.DetachCourseFromAll(id), "detaching course from students")
}

// EnrollStudent adds the student to the course's set and the course to the
// student's set. The course side is persisted first and is not rolled back if
// the student side fails.
func (svc *Service) EnrollStudent(courseID, studentID string) (Course, error) {
	crs, err := svc.repo.GetCourseByID(courseID)
	if err != nil {
		return Course{}, err
	}
	ok, err := svc.students.StudentExists(studentID)
	if err != nil {
		return Course{}, errors.Wrap(err, "checking student")
	}
	if !ok {
		return Course{}, ErrStudentNotFound
	}
	if crs.EnrolledCount >= crs.Capacity {
		return Course{}, ErrFull
	}
	if crs.HasStudent(studentID) {
		return Course{}, ErrAlreadyEnrolled
	}

	crs, err = svc.repo.AddStudent(courseID, studentID)
	if err != nil {
		return Course{}, err
	}
	if err = svc.students.AttachCourse(studentID, courseID); err != nil {
		return Course{}, errors.Wrap(err, "attaching course to student")
	}
	return crs, nil
}

// UnenrollStudent removes the edge from both sides and recomputes the
// enrolled count.
func (svc *Service) UnenrollStudent(courseID, studentID string) (Course, error) {
	crs, err := svc.repo.GetCourseByID(courseID)
	if err != nil {
		return Course{}, err
	}
	if !crs.HasStudent(studentID) {
		return Course{}, ErrStudentNotEnrolled
	}

	crs, err = svc.repo.RemoveStudent(courseID, studentID)
	if err != nil {
		return Course{}, err
	}
	if err = svc.students.DetachCourse(studentID, courseID); err != nil {
		return Course{}, errors.Wrap(err, "detaching course from student")
	}
	return crs, nil
}

// AddAssistant is idempotent: adding an already-present assistant is a no-op success.
func (svc *Service) AddAssistant(courseID, teacherID string) (Course, error) {
	ok, err := svc.teachers.TeacherExists(teacherID)
	if err != nil {
		return Course{}, errors.Wrap(err, "checking teacher")
	}
	if !ok {
		return Course{}, ErrTeacherNotFound
	}
	return svc.repo.AddAssistant(courseID, teacherID)
}

// RemoveAssistant succeeds even when the assistant is not present.
func (svc *Service) RemoveAssistant(courseID, teacherID string) (Course, error) {
	return svc.repo.RemoveAssistant(courseID, teacherID)
}

// AddPrerequisite rejects self-references before anything else; prerequisite
// cycles are not detected.
func (svc *Service) AddPrerequisite(courseID, prerequisiteID string) (Course, error) {
	if courseID == prerequisiteID {
		return Course{}, ErrSelfPrerequisite
	}
	ok, err := svc.repo.CourseExists(prerequisiteID)
	if err != nil {
		return Course{}, errors.Wrap(err, "checking prerequisite")
	}
	if !ok {
		return Course{}, ErrPrerequisiteNotFound
	}
	return svc.repo.AddPrerequisite(courseID, prerequisiteID)
}

func (svc *Service) RemovePrerequisite(courseID, prerequisiteID string) (Course, error) {
	return svc.repo.RemovePrerequisite(courseID, prerequisiteID)
}

func isValidStatus(status string) bool {
	for _, s := range Statuses {
		if s == status {
			return true
		}
	}
	return false
}
