package student

import (
	"net/mail"
	"time"

	"github.com/pkg/errors"

	"github.com/shulehub/shule/core"
)

var (
	// errors
	ErrNotFound           = core.NewNotFoundError("student not found")
	ErrInvalidCredentials = core.NewCredentialsError("invalid credentials")
	ErrEmailExists        = errors.New("a student with this email already exists")
	ErrStudentIDExists    = errors.New("a student with this student id already exists")
)

type (
	Repository interface {
		CheckUniqueness(email, studentID string, excludedStudents ...Student) error
		CreateStudent(std Student) (Student, error)
		QueryAllStudents() ([]Student, error)
		GetStudentByID(id string) (Student, error)
		GetStudentByEmail(email string) (Student, error)
		StudentExists(id string) (bool, error)
		UpdateStudent(std Student) (Student, error)
		UpdateStudentStatus(id, status string) (Student, error)
		DeleteStudent(id string) error
		SetLastLogin(id string, at time.Time) error
		AddCourse(studentID, courseID string) (Student, error)
		RemoveCourse(studentID, courseID string) (Student, error)
		UpdateAddress(id string, addr Address) (Student, error)
		UpdateGuardian(id string, grd Guardian) (Student, error)
		// student side of the Course<->Student edge, driven by the course service
		AttachCourse(studentID, courseID string) error
		DetachCourse(studentID, courseID string) error
		DetachCourseFromAll(courseID string) error
	}

	Service struct {
		repo    Repository
		mailSvc core.EmailService
	}
)

func NewService(repo Repository, mailSvc core.EmailService) *Service {
	return &Service{
		repo:    repo,
		mailSvc: mailSvc,
	}
}

func (svc *Service) CheckUniqueness(email, studentID string, exclStudents ...Student) error {
	if err := svc.repo.CheckUniqueness(email, studentID, exclStudents...); err != nil {
		var field string
		switch err {
		case ErrEmailExists:
			field = "email"
		case ErrStudentIDExists:
			field = "studentId"
		default:
			return err
		}
		return core.NewValidationError(err, core.FieldError{Field: field, Error: err.Error()})
	}
	return nil
}

func (svc *Service) Create(ns NewStudent) (Student, error) {
	now := time.Now().UTC()
	enrolled := now
	if ns.EnrollmentDate != nil {
		enrolled = ns.EnrollmentDate.UTC()
	}
	std := Student{
		FirstName:      ns.FirstName,
		LastName:       ns.LastName,
		Email:          ns.Email,
		StudentID:      ns.StudentID,
		Role:           Role,
		Status:         ns.Status,
		DateOfBirth:    ns.DateOfBirth,
		Gender:         ns.Gender,
		PhoneNumber:    ns.PhoneNumber,
		Address:        ns.Address,
		EnrollmentDate: enrolled,
		Class:          ns.Class,
		Guardian:       ns.Guardian,
		ProfilePicture: ns.ProfilePicture,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := std.SetPassword(ns.Password); err != nil {
		return Student{}, err
	}

	std, err := svc.repo.CreateStudent(std)
	if err != nil {
		return Student{}, err
	}
	svc.sendWelcomeMail(std)
	return std, nil
}

func (svc *Service) QueryAll() ([]Student, error) {
	return svc.repo.QueryAllStudents()
}

func (svc *Service) GetByID(id string) (Student, error) {
	return svc.repo.GetStudentByID(id)
}

func (svc *Service) Update(id string, us UpdateStudent) (Student, error) {
	std, err := svc.repo.GetStudentByID(id)
	if err != nil {
		return Student{}, err
	}
	if err = us.Validate(std, svc); err != nil {
		return Student{}, err
	}

	if us.FirstName != nil {
		std.FirstName = *us.FirstName
	}
	if us.LastName != nil {
		std.LastName = *us.LastName
	}
	if us.Email != nil {
		std.Email = *us.Email
	}
	if us.StudentID != nil {
		std.StudentID = *us.StudentID
	}
	if us.Status != nil {
		std.Status = *us.Status
	}
	if us.DateOfBirth != nil {
		std.DateOfBirth = *us.DateOfBirth
	}
	if us.Gender != nil {
		std.Gender = *us.Gender
	}
	if us.PhoneNumber != nil {
		std.PhoneNumber = *us.PhoneNumber
	}
	if us.Address != nil {
		std.Address = *us.Address
	}
	if us.EnrollmentDate != nil {
		std.EnrollmentDate = us.EnrollmentDate.UTC()
	}
	if us.Class != nil {
		std.Class = *us.Class
	}
	if us.Guardian != nil {
		std.Guardian = *us.Guardian
	}
	if us.ProfilePicture != nil {
		std.ProfilePicture = *us.ProfilePicture
	}
	if us.IsEmailVerified != nil {
		std.IsEmailVerified = *us.IsEmailVerified
	}
	std.UpdatedAt = time.Now().UTC()

	return svc.repo.UpdateStudent(std)
}

func (svc *Service) UpdateStatus(id, status string) (Student, error) {
	if !isValidStatus(status) {
		return Student{}, core.NewValidationError(nil, core.FieldError{Field: "status", Error: "invalid status"})
	}
	return svc.repo.UpdateStudentStatus(id, status)
}

// Delete removes the student record only; course-side references to the
// student are left in place and tolerated by readers.
func (svc *Service) Delete(id string) error {
	return svc.repo.DeleteStudent(id)
}

// Login authenticates a student by email. Unknown email and wrong password
// yield the same error.
func (svc *Service) Login(l Login) (Student, error) {
	std, err := svc.repo.GetStudentByEmail(l.Email)
	if err != nil {
		if err == ErrNotFound {
			return Student{}, ErrInvalidCredentials
		}
		return Student{}, errors.Wrap(err, "getting student by email")
	}
	if err = std.CheckPassword(l.Password); err != nil {
		return Student{}, ErrInvalidCredentials
	}

	now := time.Now().UTC()
	if err = svc.repo.SetLastLogin(std.ID, now); err != nil {
		return Student{}, errors.Wrap(err, "touching last login")
	}
	std.LastLogin = now
	return std, nil
}

// AddCourse is the raw, one-sided set add on the student record; the course
// side is not touched and the referenced course is not resolved.
func (svc *Service) AddCourse(studentID, courseID string) (Student, error) {
	return svc.repo.AddCourse(studentID, courseID)
}

func (svc *Service) RemoveCourse(studentID, courseID string) (Student, error) {
	return svc.repo.RemoveCourse(studentID, courseID)
}

func (svc *Service) UpdateAddress(id string, addr Address) (Student, error) {
	if err := core.Validate.Struct(addr); err != nil {
		return Student{}, err
	}
	return svc.repo.UpdateAddress(id, addr)
}

func (svc *Service) UpdateGuardian(id string, grd Guardian) (Student, error) {
	if err := core.Validate.Struct(grd); err != nil {
		return Student{}, err
	}
	return svc.repo.UpdateGuardian(id, grd)
}

func (svc *Service) sendWelcomeMail(std Student) {
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:      []mail.Address{{Name: std.FirstName + " " + std.LastName, Address: std.Email}},
		Subject: "Welcome on board!",
		Body: "Hi " + std.FirstName + ",\n\n" +
			"Your student account has been created. You can now sign in with your email address.\n\n" +
			"The " + core.Conf.AppName + " Team",
	})
}

func isValidStatus(status string) bool {
	for _, s := range Statuses {
		if s == status {
			return true
		}
	}
	return false
}
