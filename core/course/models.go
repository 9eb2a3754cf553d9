package course

import (
	"strings"
	"time"

	"github.com/shulehub/shule/core"
)

// Levels
const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
)

// Statuses
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

var Statuses = []string{StatusDraft, StatusPublished, StatusArchived}

type (
	// TeacherRef is the denormalized view of a referenced Teacher.
	TeacherRef struct {
		ID        string `json:"id"`
		FirstName string `json:"firstName,omitempty"`
		LastName  string `json:"lastName,omitempty"`
		Email     string `json:"email,omitempty"`
	}

	// StudentRef is the denormalized view of a referenced Student.
	StudentRef struct {
		ID        string `json:"id"`
		FirstName string `json:"firstName,omitempty"`
		LastName  string `json:"lastName,omitempty"`
		StudentID string `json:"studentId,omitempty"`
	}

	// Ref is the denormalized view of a referenced Course.
	Ref struct {
		ID    string `json:"id"`
		Title string `json:"title,omitempty"`
		Code  string `json:"code,omitempty"`
	}

	Schedule struct {
		StartDate  time.Time `json:"startDate"`
		EndDate    time.Time `json:"endDate"`
		DaysOfWeek []string  `json:"daysOfWeek,omitempty"`
		Time       string    `json:"time,omitempty"`
	}

	Course struct {
		ID            string       `json:"id"`
		Title         string       `json:"title"`
		Code          string       `json:"code"`
		Description   string       `json:"description"`
		Category      string       `json:"category"`
		Level         string       `json:"level"`
		Credits       int          `json:"credits"`
		DurationWeeks int          `json:"durationWeeks"`
		Instructor    TeacherRef   `json:"instructor"`
		Students      []StudentRef `json:"students"`
		Assistants    []TeacherRef `json:"assistants"`
		Prerequisites []Ref        `json:"prerequisites"`
		Capacity      int          `json:"capacity"`
		EnrolledCount int          `json:"enrolledCount"`
		Schedule      Schedule     `json:"schedule"`
		Price         float64      `json:"price"`
		Currency      string       `json:"currency"`
		Status        string       `json:"status"`
		Thumbnail     string       `json:"thumbnail,omitempty"`
		IsActive      bool         `json:"isActive"`
		CreatedAt     time.Time    `json:"createdAt"` // UTC
		UpdatedAt     time.Time    `json:"updatedAt"` // UTC
	}
)

func (c *Course) HasStudent(id string) bool {
	for _, ref := range c.Students {
		if ref.ID == id {
			return true
		}
	}
	return false
}

func (c *Course) HasAssistant(id string) bool {
	for _, ref := range c.Assistants {
		if ref.ID == id {
			return true
		}
	}
	return false
}

// NewCourse contains information needed to create a new Course.
type NewCourse struct {
	Title         string      `json:"title" validate:"required,max=150"`
	Code          string      `json:"code" validate:"required,max=20"`
	Description   string      `json:"description" validate:"required,max=2000"`
	Category      string      `json:"category" validate:"required,max=100"`
	Level         string      `json:"level" validate:"omitempty,oneof=beginner intermediate advanced"`
	Credits       *int        `json:"credits" validate:"required,min=0,max=10"`
	DurationWeeks int         `json:"durationWeeks" validate:"required,min=1"`
	Instructor    string      `json:"instructor" validate:"required"`
	Capacity      int         `json:"capacity" validate:"required,min=1"`
	Schedule      NewSchedule `json:"schedule"`
	Price         *float64    `json:"price" validate:"required,min=0"`
	Currency      string      `json:"currency" validate:"omitempty,oneof=USD EUR GBP GHS"`
	Status        string      `json:"status" validate:"omitempty,oneof=draft published archived"`
	Thumbnail     string      `json:"thumbnail"`
}

type NewSchedule struct {
	StartDate  time.Time `json:"startDate" validate:"required"`
	EndDate    time.Time `json:"endDate" validate:"required"`
	DaysOfWeek []string  `json:"daysOfWeek" validate:"omitempty,dive,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	Time       string    `json:"time" validate:"max=50"`
}

func (nc *NewCourse) Validate(svc *Service) error {
	nc.Title = core.CleanString(nc.Title)
	nc.Code = strings.ToUpper(core.CleanString(nc.Code))
	nc.Description = core.CleanString(nc.Description)
	nc.Category = core.CleanString(nc.Category)
	if nc.Level == "" {
		nc.Level = LevelBeginner
	}
	if nc.Currency == "" {
		nc.Currency = "USD"
	}
	if nc.Status == "" {
		nc.Status = StatusDraft
	}

	if err := core.Validate.Struct(nc); err != nil {
		return err
	}
	return svc.CheckCodeUniqueness(nc.Code)
}

// UpdateCourse defines what information may be provided to modify an existing Course.
// Nil fields are left untouched.
type UpdateCourse struct {
	Title         *string      `json:"title" validate:"omitempty,max=150"`
	Code          *string      `json:"code" validate:"omitempty,max=20"`
	Description   *string      `json:"description" validate:"omitempty,max=2000"`
	Category      *string      `json:"category" validate:"omitempty,max=100"`
	Level         *string      `json:"level" validate:"omitempty,oneof=beginner intermediate advanced"`
	Credits       *int         `json:"credits" validate:"omitempty,min=0,max=10"`
	DurationWeeks *int         `json:"durationWeeks" validate:"omitempty,min=1"`
	Instructor    *string      `json:"instructor"`
	Capacity      *int         `json:"capacity" validate:"omitempty,min=1"`
	Schedule      *NewSchedule `json:"schedule"`
	Price         *float64     `json:"price" validate:"omitempty,min=0"`
	Currency      *string      `json:"currency" validate:"omitempty,oneof=USD EUR GBP GHS"`
	Status        *string      `json:"status" validate:"omitempty,oneof=draft published archived"`
	Thumbnail     *string      `json:"thumbnail"`
	IsActive      *bool        `json:"isActive"`
}

func (uc *UpdateCourse) Validate(origCrs Course, svc *Service) error {
	if uc.Title != nil {
		*uc.Title = core.CleanString(*uc.Title)
	}
	if uc.Code != nil {
		*uc.Code = strings.ToUpper(core.CleanString(*uc.Code))
	}

	if err := core.Validate.Struct(uc); err != nil {
		return err
	}
	if uc.Code != nil && *uc.Code != origCrs.Code {
		return svc.CheckCodeUniqueness(*uc.Code, origCrs)
	}
	return nil
}
