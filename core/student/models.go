package student

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/shulehub/shule/core"
)

const Role = "student"

// Statuses
const (
	StatusActive    = "active"
	StatusInactive  = "inactive"
	StatusSuspended = "suspended"
	StatusGraduated = "graduated"
)

var Statuses = []string{StatusActive, StatusInactive, StatusSuspended, StatusGraduated}

type (
	// CourseRef is the denormalized view of a referenced Course.
	CourseRef struct {
		ID    string `json:"id"`
		Title string `json:"title,omitempty"`
		Code  string `json:"code,omitempty"`
	}

	Address struct {
		Street  string `json:"street,omitempty" validate:"omitempty,max=100"`
		City    string `json:"city,omitempty" validate:"omitempty,max=50"`
		State   string `json:"state,omitempty" validate:"omitempty,max=50"`
		ZipCode string `json:"zipCode,omitempty" validate:"omitempty,max=10"`
		Country string `json:"country,omitempty" validate:"omitempty,max=50"`
	}

	Guardian struct {
		FirstName    string `json:"firstName,omitempty" validate:"omitempty,max=50"`
		LastName     string `json:"lastName,omitempty" validate:"omitempty,max=50"`
		Email        string `json:"email,omitempty" validate:"omitempty,email"`
		PhoneNumber  string `json:"phoneNumber,omitempty" validate:"omitempty,phone"`
		Relationship string `json:"relationship,omitempty" validate:"omitempty,oneof=parent guardian sponsor other"`
	}

	Student struct {
		ID              string      `json:"id"`
		FirstName       string      `json:"firstName"`
		LastName        string      `json:"lastName"`
		Email           string      `json:"email"`
		StudentID       string      `json:"studentId"`
		PasswordHash    []byte      `json:"-"`
		Role            string      `json:"role"`
		Status          string      `json:"status"`
		DateOfBirth     time.Time   `json:"dateOfBirth"`
		Gender          string      `json:"gender"`
		PhoneNumber     string      `json:"phoneNumber,omitempty"`
		Address         Address     `json:"address"`
		EnrollmentDate  time.Time   `json:"enrollmentDate"`
		Class           string      `json:"class"`
		Courses         []CourseRef `json:"courses"`
		Guardian        Guardian    `json:"guardian"`
		ProfilePicture  string      `json:"profilePicture,omitempty"`
		IsEmailVerified bool        `json:"isEmailVerified"`
		LastLogin       time.Time   `json:"lastLogin"`
		CreatedAt       time.Time   `json:"createdAt"` // UTC
		UpdatedAt       time.Time   `json:"updatedAt"` // UTC
	}
)

func (s *Student) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	s.PasswordHash = hash
	return nil
}

func (s *Student) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(s.PasswordHash, []byte(pwd))
}

func (s *Student) HasCourse(id string) bool {
	for _, ref := range s.Courses {
		if ref.ID == id {
			return true
		}
	}
	return false
}

// NewStudent contains information needed to create a new Student.
type NewStudent struct {
	FirstName      string     `json:"firstName" validate:"required,max=50"`
	LastName       string     `json:"lastName" validate:"required,max=50"`
	Email          string     `json:"email" validate:"required,email"`
	StudentID      string     `json:"studentId" validate:"required,max=20"`
	Password       string     `json:"password" validate:"required"`
	Status         string     `json:"status" validate:"omitempty,oneof=active inactive suspended graduated"`
	DateOfBirth    time.Time  `json:"dateOfBirth" validate:"required"`
	Gender         string     `json:"gender" validate:"required,oneof=male female other"`
	PhoneNumber    string     `json:"phoneNumber" validate:"omitempty,phone"`
	Address        Address    `json:"address"`
	EnrollmentDate *time.Time `json:"enrollmentDate"`
	Class          string     `json:"class" validate:"required"`
	Guardian       Guardian   `json:"guardian"`
	ProfilePicture string     `json:"profilePicture"`
}

func (ns *NewStudent) Validate(svc *Service) error {
	ns.FirstName = core.CleanString(ns.FirstName)
	ns.LastName = core.CleanString(ns.LastName)
	ns.Email = core.CleanString(ns.Email, true /* lower */)
	ns.StudentID = core.CleanString(ns.StudentID)
	if ns.Status == "" {
		ns.Status = StatusActive
	}

	if err := core.Validate.Struct(ns); err != nil {
		return err
	}
	return svc.CheckUniqueness(ns.Email, ns.StudentID)
}

// UpdateStudent defines what information may be provided to modify an existing
// Student. Nil fields are left untouched. There is deliberately no password
// field: passwords cannot be changed through the generic update path.
type UpdateStudent struct {
	FirstName       *string    `json:"firstName" validate:"omitempty,max=50"`
	LastName        *string    `json:"lastName" validate:"omitempty,max=50"`
	Email           *string    `json:"email" validate:"omitempty,email"`
	StudentID       *string    `json:"studentId" validate:"omitempty,max=20"`
	Status          *string    `json:"status" validate:"omitempty,oneof=active inactive suspended graduated"`
	DateOfBirth     *time.Time `json:"dateOfBirth"`
	Gender          *string    `json:"gender" validate:"omitempty,oneof=male female other"`
	PhoneNumber     *string    `json:"phoneNumber" validate:"omitempty,phone"`
	Address         *Address   `json:"address"`
	EnrollmentDate  *time.Time `json:"enrollmentDate"`
	Class           *string    `json:"class"`
	Guardian        *Guardian  `json:"guardian"`
	ProfilePicture  *string    `json:"profilePicture"`
	IsEmailVerified *bool      `json:"isEmailVerified"`
}

func (us *UpdateStudent) Validate(origStd Student, svc *Service) error {
	if us.FirstName != nil {
		*us.FirstName = core.CleanString(*us.FirstName)
	}
	if us.LastName != nil {
		*us.LastName = core.CleanString(*us.LastName)
	}
	if us.Email != nil {
		*us.Email = core.CleanString(*us.Email, true /* lower */)
	}
	if us.StudentID != nil {
		*us.StudentID = core.CleanString(*us.StudentID)
	}

	if err := core.Validate.Struct(us); err != nil {
		return err
	}

	email, studentID := origStd.Email, origStd.StudentID
	if us.Email != nil {
		email = *us.Email
	}
	if us.StudentID != nil {
		studentID = *us.StudentID
	}
	if email != origStd.Email || studentID != origStd.StudentID {
		return svc.CheckUniqueness(email, studentID, origStd)
	}
	return nil
}

// Login contains credentials for student authentication.
type Login struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (l *Login) Validate() error {
	l.Email = core.CleanString(l.Email, true /* lower */)
	return core.Validate.Struct(l)
}
