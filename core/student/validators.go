package student

import (
	"github.com/go-playground/validator/v10"

	"github.com/shulehub/shule/core"
)

func init() {
	core.Validate.RegisterStructValidation(studentStructValidation, NewStudent{})
}

// studentStructValidation applies the password policy on NewStudent.
func studentStructValidation(sl validator.StructLevel) {
	if ns, ok := sl.Current().Interface().(NewStudent); ok {
		core.ValidatePassword(sl, ns.Password, ns.FirstName, ns.LastName, ns.Email, ns.StudentID)
	}
}
