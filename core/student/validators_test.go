package student_test

import (
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shulehub/shule/core"
	"github.com/shulehub/shule/core/student"
)

func validNewStudent() student.NewStudent {
	return student.NewStudent{
		FirstName:   "Kofi",
		LastName:    "Owusu",
		Email:       "kofi@shule.test",
		StudentID:   "STD-001",
		Password:    "s3cureEnough!",
		DateOfBirth: time.Date(2005, 6, 15, 0, 0, 0, 0, time.UTC),
		Gender:      "male",
		Class:       "Form 1",
	}
}

func pwdErrTags(t *testing.T, err error) []string {
	t.Helper()
	require.Error(t, err)
	verr, ok := err.(validator.ValidationErrors)
	require.True(t, ok, "expected validator.ValidationErrors, got %T", err)

	var tags []string
	for _, fe := range verr {
		if fe.Field() == "password" {
			tags = append(tags, fe.Tag())
		}
	}
	return tags
}

func TestPasswordPolicy(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		ns := validNewStudent()
		assert.NoError(t, core.Validate.Struct(&ns))
	})

	t.Run("too short", func(t *testing.T) {
		ns := validNewStudent()
		ns.Password = "ab1!"
		assert.Contains(t, pwdErrTags(t, core.Validate.Struct(&ns)), "pwdminlen")
	})

	t.Run("all numeric", func(t *testing.T) {
		ns := validNewStudent()
		ns.Password = "8487374662"
		assert.Contains(t, pwdErrTags(t, core.Validate.Struct(&ns)), "pwdnotallnum")
	})

	t.Run("similar to email", func(t *testing.T) {
		ns := validNewStudent()
		ns.Password = "kofi@shule.test"
		assert.Contains(t, pwdErrTags(t, core.Validate.Struct(&ns)), "pwdtoosim")
	})

	t.Run("similar to student id", func(t *testing.T) {
		ns := validNewStudent()
		ns.Password = "std-0012345"
		assert.Contains(t, pwdErrTags(t, core.Validate.Struct(&ns)), "pwdtoosim")
	})
}
