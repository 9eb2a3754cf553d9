package main

import (
	"time"

	"github.com/shulehub/shule/core"
	"github.com/shulehub/shule/core/teacher"
)

// addTeacher updates or creates a teacher account.
func (cli *commandLine) addTeacher(firstName, lastName, email, pwd string, head bool) error {
	email = core.CleanString(email, true /* lower */)

	tch, err := cli.teacherRepo.GetTeacherByEmail(email)
	if err != nil {
		if err != teacher.ErrNotFound {
			return err
		}
		now := time.Now().UTC()
		tch = teacher.Teacher{
			FirstName: core.CleanString(firstName),
			LastName:  core.CleanString(lastName),
			Email:     email,
			Role:      teacher.RoleTeacher,
			Status:    teacher.StatusActive,
			CreatedAt: now,
			UpdatedAt: now,
		}
	}
	if head {
		tch.Role = teacher.RoleHeadTeacher
	}
	if err := tch.SetPassword(pwd); err != nil {
		return err
	}

	if tch.ID == "" {
		_, err = cli.teacherRepo.CreateTeacher(tch)
	} else {
		tch.UpdatedAt = time.Now().UTC()
		_, err = cli.teacherRepo.UpdateTeacher(tch)
	}
	return err
}
