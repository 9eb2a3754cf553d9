package teacher

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/shulehub/shule/core"
)

// Roles
const (
	RoleTeacher          = "teacher"
	RoleHeadTeacher      = "head_teacher"
	RoleAssistantTeacher = "assistant_teacher"
)

// Statuses
const (
	StatusActive    = "active"
	StatusInactive  = "inactive"
	StatusSuspended = "suspended"
)

var Statuses = []string{StatusActive, StatusInactive, StatusSuspended}

type (
	Address struct {
		Street  string `json:"street,omitempty" validate:"omitempty,max=100"`
		City    string `json:"city,omitempty" validate:"omitempty,max=50"`
		State   string `json:"state,omitempty" validate:"omitempty,max=50"`
		ZipCode string `json:"zipCode,omitempty" validate:"omitempty,max=10"`
	}

	Teacher struct {
		ID             string    `json:"id"`
		FirstName      string    `json:"firstName"`
		LastName       string    `json:"lastName"`
		Email          string    `json:"email"`
		PasswordHash   []byte    `json:"-"`
		Role           string    `json:"role"`
		Status         string    `json:"status"`
		Subjects       []string  `json:"subjects"`
		Classes        []string  `json:"classes"`
		PhoneNumber    string    `json:"phoneNumber,omitempty"`
		ProfilePicture string    `json:"profilePicture,omitempty"`
		DateOfBirth    time.Time `json:"dateOfBirth,omitempty"`
		Address        Address   `json:"address"`
		CreatedAt      time.Time `json:"createdAt"` // UTC
		UpdatedAt      time.Time `json:"updatedAt"` // UTC
	}
)

func (t *Teacher) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	t.PasswordHash = hash
	return nil
}

func (t *Teacher) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(t.PasswordHash, []byte(pwd))
}

// NewTeacher contains information needed to create a new Teacher.
type NewTeacher struct {
	FirstName      string     `json:"firstName" validate:"required,max=50"`
	LastName       string     `json:"lastName" validate:"required,max=50"`
	Email          string     `json:"email" validate:"required,email"`
	Password       string     `json:"password" validate:"required"`
	Role           string     `json:"role" validate:"omitempty,oneof=teacher head_teacher assistant_teacher"`
	Status         string     `json:"status" validate:"omitempty,oneof=active inactive suspended"`
	Subjects       []string   `json:"subjects" validate:"omitempty,dive,max=50"`
	Classes        []string   `json:"classes"`
	PhoneNumber    string     `json:"phoneNumber" validate:"omitempty,phone"`
	ProfilePicture string     `json:"profilePicture"`
	DateOfBirth    *time.Time `json:"dateOfBirth"`
	Address        Address    `json:"address"`
}

func (nt *NewTeacher) Validate(svc *Service) error {
	nt.FirstName = core.CleanString(nt.FirstName)
	nt.LastName = core.CleanString(nt.LastName)
	nt.Email = core.CleanString(nt.Email, true /* lower */)
	if nt.Role == "" {
		nt.Role = RoleTeacher
	}
	if nt.Status == "" {
		nt.Status = StatusActive
	}

	if err := core.Validate.Struct(nt); err != nil {
		return err
	}
	return svc.CheckEmailUniqueness(nt.Email)
}

// UpdateTeacher defines what information may be provided to modify an existing
// Teacher. Nil fields are left untouched. A provided password is re-hashed;
// an absent one is never touched.
type UpdateTeacher struct {
	FirstName      *string    `json:"firstName" validate:"omitempty,max=50"`
	LastName       *string    `json:"lastName" validate:"omitempty,max=50"`
	Email          *string    `json:"email" validate:"omitempty,email"`
	Password       *string    `json:"password"`
	Role           *string    `json:"role" validate:"omitempty,oneof=teacher head_teacher assistant_teacher"`
	Status         *string    `json:"status" validate:"omitempty,oneof=active inactive suspended"`
	Subjects       []string   `json:"subjects" validate:"omitempty,dive,max=50"`
	Classes        []string   `json:"classes"`
	PhoneNumber    *string    `json:"phoneNumber" validate:"omitempty,phone"`
	ProfilePicture *string    `json:"profilePicture"`
	DateOfBirth    *time.Time `json:"dateOfBirth"`
	Address        *Address   `json:"address"`
}

func (ut *UpdateTeacher) Validate(origTch Teacher, svc *Service) error {
	if ut.FirstName != nil {
		*ut.FirstName = core.CleanString(*ut.FirstName)
	}
	if ut.LastName != nil {
		*ut.LastName = core.CleanString(*ut.LastName)
	}
	if ut.Email != nil {
		*ut.Email = core.CleanString(*ut.Email, true /* lower */)
	}

	if err := core.Validate.Struct(ut); err != nil {
		return err
	}
	if ut.Email != nil && *ut.Email != origTch.Email {
		return svc.CheckEmailUniqueness(*ut.Email, origTch)
	}
	return nil
}

// Login contains credentials for teacher authentication.
type Login struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (l *Login) Validate() error {
	l.Email = core.CleanString(l.Email, true /* lower */)
	return core.Validate.Struct(l)
}
