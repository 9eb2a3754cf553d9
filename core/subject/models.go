package subject

import (
	"strings"
	"time"

	"github.com/shulehub/shule/core"
)

// Levels
const (
	LevelPrimary         = "primary"
	LevelJuniorSecondary = "junior_secondary"
	LevelSeniorSecondary = "senior_secondary"
	LevelUndergraduate   = "undergraduate"
	LevelPostgraduate    = "postgraduate"
)

// Statuses
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusArchived = "archived"
)

var Statuses = []string{StatusActive, StatusInactive, StatusArchived}

type (
	// TeacherRef is the denormalized view of a referenced Teacher.
	TeacherRef struct {
		ID        string `json:"id"`
		FirstName string `json:"firstName,omitempty"`
		LastName  string `json:"lastName,omitempty"`
		Email     string `json:"email,omitempty"`
	}

	// CourseRef is the denormalized view of a referenced Course.
	CourseRef struct {
		ID    string `json:"id"`
		Title string `json:"title,omitempty"`
		Code  string `json:"code,omitempty"`
	}

	// Ref is the denormalized view of a referenced Subject.
	Ref struct {
		ID   string `json:"id"`
		Name string `json:"name,omitempty"`
		Code string `json:"code,omitempty"`
	}

	Subject struct {
		ID            string       `json:"id"`
		Name          string       `json:"name"`
		Code          string       `json:"code"`
		Description   string       `json:"description,omitempty"`
		Department    string       `json:"department"`
		Level         string       `json:"level"`
		CreditHours   int          `json:"creditHours"`
		Teachers      []TeacherRef `json:"teachers"`
		Courses       []CourseRef  `json:"courses"`
		Status        string       `json:"status"`
		IsElective    bool         `json:"isElective"`
		Prerequisites []Ref        `json:"prerequisites"`
		CreatedAt     time.Time    `json:"createdAt"` // UTC
		UpdatedAt     time.Time    `json:"updatedAt"` // UTC
	}
)

func (s *Subject) HasTeacher(id string) bool {
	for _, ref := range s.Teachers {
		if ref.ID == id {
			return true
		}
	}
	return false
}

// NewSubject contains information needed to create a new Subject.
type NewSubject struct {
	Name        string `json:"name" validate:"required,max=100"`
	Code        string `json:"code" validate:"required,max=20"`
	Description string `json:"description" validate:"omitempty,max=1000"`
	Department  string `json:"department" validate:"required,max=100"`
	Level       string `json:"level" validate:"required,oneof=primary junior_secondary senior_secondary undergraduate postgraduate"`
	CreditHours *int   `json:"creditHours" validate:"required,min=0,max=10"`
	Status      string `json:"status" validate:"omitempty,oneof=active inactive archived"`
	IsElective  *bool  `json:"isElective"`
}

func (ns *NewSubject) Validate(svc *Service) error {
	ns.Name = core.CleanString(ns.Name)
	ns.Code = strings.ToUpper(core.CleanString(ns.Code))
	ns.Description = core.CleanString(ns.Description)
	ns.Department = core.CleanString(ns.Department)
	if ns.Status == "" {
		ns.Status = StatusActive
	}

	if err := core.Validate.Struct(ns); err != nil {
		return err
	}
	return svc.CheckCodeUniqueness(ns.Code)
}

// UpdateSubject defines what information may be provided to modify an existing
// Subject. Nil fields are left untouched.
type UpdateSubject struct {
	Name        *string `json:"name" validate:"omitempty,max=100"`
	Code        *string `json:"code" validate:"omitempty,max=20"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	Department  *string `json:"department" validate:"omitempty,max=100"`
	Level       *string `json:"level" validate:"omitempty,oneof=primary junior_secondary senior_secondary undergraduate postgraduate"`
	CreditHours *int    `json:"creditHours" validate:"omitempty,min=0,max=10"`
	Status      *string `json:"status" validate:"omitempty,oneof=active inactive archived"`
	IsElective  *bool   `json:"isElective"`
}

func (us *UpdateSubject) Validate(origSub Subject, svc *Service) error {
	if us.Name != nil {
		*us.Name = core.CleanString(*us.Name)
	}
	if us.Code != nil {
		*us.Code = strings.ToUpper(core.CleanString(*us.Code))
	}

	if err := core.Validate.Struct(us); err != nil {
		return err
	}
	if us.Code != nil && *us.Code != origSub.Code {
		return svc.CheckCodeUniqueness(*us.Code, origSub)
	}
	return nil
}
