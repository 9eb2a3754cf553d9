package teacher

import (
	"net/mail"
	"time"

	"github.com/pkg/errors"

	"github.com/shulehub/shule/core"
)

var (
	// errors
	ErrNotFound           = core.NewNotFoundError("teacher not found")
	ErrInvalidCredentials = core.NewCredentialsError("invalid credentials")
	ErrEmailExists        = errors.New("a teacher with this email already exists")
)

type (
	Repository interface {
		CheckEmailUniqueness(email string, excludedTeachers ...Teacher) error
		CreateTeacher(tch Teacher) (Teacher, error)
		QueryAllTeachers() ([]Teacher, error)
		GetTeacherByID(id string) (Teacher, error)
		GetTeacherByEmail(email string) (Teacher, error)
		TeacherExists(id string) (bool, error)
		UpdateTeacher(tch Teacher) (Teacher, error)
		UpdateTeacherStatus(id, status string) (Teacher, error)
		DeleteTeacher(id string) error
		AddSubject(teacherID, subject string) (Teacher, error)
		RemoveSubject(teacherID, subject string) (Teacher, error)
		AddClass(teacherID, classID string) (Teacher, error)
		RemoveClass(teacherID, classID string) (Teacher, error)
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

func (svc *Service) CheckEmailUniqueness(email string, exclTeachers ...Teacher) error {
	if err := svc.repo.CheckEmailUniqueness(email, exclTeachers...); err != nil {
		if err == ErrEmailExists {
			return core.NewValidationError(err, core.FieldError{Field: "email", Error: err.Error()})
		}
		return err
	}
	return nil
}

func (svc *Service) Create(nt NewTeacher) (Teacher, error) {
	now := time.Now().UTC()
	tch := Teacher{
		FirstName:      nt.FirstName,
		LastName:       nt.LastName,
		Email:          nt.Email,
		Role:           nt.Role,
		Status:         nt.Status,
		Subjects:       nt.Subjects,
		Classes:        nt.Classes,
		PhoneNumber:    nt.PhoneNumber,
		ProfilePicture: nt.ProfilePicture,
		Address:        nt.Address,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if nt.DateOfBirth != nil {
		tch.DateOfBirth = *nt.DateOfBirth
	}
	if err := tch.SetPassword(nt.Password); err != nil {
		return Teacher{}, err
	}

	tch, err := svc.repo.CreateTeacher(tch)
	if err != nil {
		return Teacher{}, err
	}
	svc.sendWelcomeMail(tch)
	return tch, nil
}

func (svc *Service) QueryAll() ([]Teacher, error) {
	return svc.repo.QueryAllTeachers()
}

func (svc *Service) GetByID(id string) (Teacher, error) {
	return svc.repo.GetTeacherByID(id)
}

func (svc *Service) Update(id string, ut UpdateTeacher) (Teacher, error) {
	tch, err := svc.repo.GetTeacherByID(id)
	if err != nil {
		return Teacher{}, err
	}
	if err = ut.Validate(tch, svc); err != nil {
		return Teacher{}, err
	}

	if ut.FirstName != nil {
		tch.FirstName = *ut.FirstName
	}
	if ut.LastName != nil {
		tch.LastName = *ut.LastName
	}
	if ut.Email != nil {
		tch.Email = *ut.Email
	}
	if ut.Password != nil {
		// hash on change only; an unchanged password is never re-hashed
		if err = tch.SetPassword(*ut.Password); err != nil {
			return Teacher{}, err
		}
	}
	if ut.Role != nil {
		tch.Role = *ut.Role
	}
	if ut.Status != nil {
		tch.Status = *ut.Status
	}
	if ut.Subjects != nil {
		tch.Subjects = ut.Subjects
	}
	if ut.Classes != nil {
		tch.Classes = ut.Classes
	}
	if ut.PhoneNumber != nil {
		tch.PhoneNumber = *ut.PhoneNumber
	}
	if ut.ProfilePicture != nil {
		tch.ProfilePicture = *ut.ProfilePicture
	}
	if ut.DateOfBirth != nil {
		tch.DateOfBirth = *ut.DateOfBirth
	}
	if ut.Address != nil {
		tch.Address = *ut.Address
	}
	tch.UpdatedAt = time.Now().UTC()

	return svc.repo.UpdateTeacher(tch)
}

func (svc *Service) UpdateStatus(id, status string) (Teacher, error) {
	if !isValidStatus(status) {
		return Teacher{}, core.NewValidationError(nil, core.FieldError{Field: "status", Error: "invalid status"})
	}
	return svc.repo.UpdateTeacherStatus(id, status)
}

// Delete removes the teacher record only; course and subject references to the
// teacher are left in place and tolerated by readers.
func (svc *Service) Delete(id string) error {
	return svc.repo.DeleteTeacher(id)
}

// Login authenticates a teacher by email. Unknown email and wrong password
// yield the same error.
func (svc *Service) Login(l Login) (Teacher, error) {
	tch, err := svc.repo.GetTeacherByEmail(l.Email)
	if err != nil {
		if err == ErrNotFound {
			return Teacher{}, ErrInvalidCredentials
		}
		return Teacher{}, errors.Wrap(err, "getting teacher by email")
	}
	if err = tch.CheckPassword(l.Password); err != nil {
		return Teacher{}, ErrInvalidCredentials
	}
	return tch, nil
}

// AddSubject adds a free-text subject name to the teacher's set; idempotent.
func (svc *Service) AddSubject(teacherID, subject string) (Teacher, error) {
	subject = core.CleanString(subject)
	if subject == "" || len(subject) > 50 {
		return Teacher{}, core.NewValidationError(nil, core.FieldError{Field: "subject", Error: "must be 1 to 50 characters"})
	}
	return svc.repo.AddSubject(teacherID, subject)
}

func (svc *Service) RemoveSubject(teacherID, subject string) (Teacher, error) {
	return svc.repo.RemoveSubject(teacherID, subject)
}

// AddClass records an opaque class reference; the class itself is not resolved.
func (svc *Service) AddClass(teacherID, classID string) (Teacher, error) {
	return svc.repo.AddClass(teacherID, classID)
}

func (svc *Service) RemoveClass(teacherID, classID string) (Teacher, error) {
	return svc.repo.RemoveClass(teacherID, classID)
}

func (svc *Service) sendWelcomeMail(tch Teacher) {
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:      []mail.Address{{Name: tch.FirstName + " " + tch.LastName, Address: tch.Email}},
		Subject: "Welcome on board!",
		Body: "Hi " + tch.FirstName + ",\n\n" +
			"Your teacher account has been created. You can now sign in with your email address.\n\n" +
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
