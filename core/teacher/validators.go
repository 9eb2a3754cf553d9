package teacher

import (
	"github.com/go-playground/validator/v10"

	"github.com/shulehub/shule/core"
)

func init() {
	core.Validate.RegisterStructValidation(teacherStructValidation, NewTeacher{})
	core.Validate.RegisterStructValidation(teacherStructValidation, UpdateTeacher{})
}

// teacherStructValidation applies the password policy whenever a password is set.
func teacherStructValidation(sl validator.StructLevel) {
	switch tch := sl.Current().Interface().(type) {
	case NewTeacher:
		core.ValidatePassword(sl, tch.Password, tch.FirstName, tch.LastName, tch.Email)
	case UpdateTeacher:
		if tch.Password != nil {
			var first, last, email string
			if tch.FirstName != nil {
				first = *tch.FirstName
			}
			if tch.LastName != nil {
				last = *tch.LastName
			}
			if tch.Email != nil {
				email = *tch.Email
			}
			core.ValidatePassword(sl, *tch.Password, first, last, email)
		}
	}
}
