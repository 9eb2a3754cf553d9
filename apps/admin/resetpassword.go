package main

import (
	"fmt"

	"github.com/shulehub/shule/core"
)

func (cli *commandLine) resetPassword(kind, email, pwd string) error {
	email = core.CleanString(email, true /* lower */)

	switch kind {
	case "teacher":
		tch, err := cli.teacherRepo.GetTeacherByEmail(email)
		if err != nil {
			return err
		}
		if err = tch.SetPassword(pwd); err != nil {
			return err
		}
		_, err = cli.teacherRepo.UpdateTeacher(tch)
		return err
	case "student":
		std, err := cli.studentRepo.GetStudentByEmail(email)
		if err != nil {
			return err
		}
		if err = std.SetPassword(pwd); err != nil {
			return err
		}
		_, err = cli.studentRepo.UpdateStudent(std)
		return err
	default:
		return fmt.Errorf("%q: unknown account kind", kind)
	}
}
