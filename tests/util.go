package testutil

import (
	"testing"
	"time"

	"github.com/shulehub/shule/core/course"
	"github.com/shulehub/shule/core/student"
	"github.com/shulehub/shule/core/subject"
	"github.com/shulehub/shule/core/teacher"
)

func CreateStudent(t *testing.T, repo student.Repository, firstName, lastName, email, studentID, pwd string) student.Student {
	t.Helper()

	now := time.Now().UTC()
	std := student.Student{
		FirstName:      firstName,
		LastName:       lastName,
		Email:          email,
		StudentID:      studentID,
		Role:           student.Role,
		Status:         student.StatusActive,
		DateOfBirth:    time.Date(2005, 6, 15, 0, 0, 0, 0, time.UTC),
		Gender:         "female",
		Class:          "Form 1",
		EnrollmentDate: now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if pwd != "" {
		if err := std.SetPassword(pwd); err != nil {
			t.Fatalf("CreateStudent() failed: %v", err)
		}
	}
	std, err := repo.CreateStudent(std)
	if err != nil {
		t.Fatalf("CreateStudent() failed: %v", err)
	}
	return std
}

func CreateTeacher(t *testing.T, repo teacher.Repository, firstName, lastName, email, pwd string) teacher.Teacher {
	t.Helper()

	now := time.Now().UTC()
	tch := teacher.Teacher{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Role:      teacher.RoleTeacher,
		Status:    teacher.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if pwd != "" {
		if err := tch.SetPassword(pwd); err != nil {
			t.Fatalf("CreateTeacher() failed: %v", err)
		}
	}
	tch, err := repo.CreateTeacher(tch)
	if err != nil {
		t.Fatalf("CreateTeacher() failed: %v", err)
	}
	return tch
}

func CreateCourse(t *testing.T, repo course.Repository, title, code, instructorID string, capacity int) course.Course {
	t.Helper()

	now := time.Now().UTC()
	crs := course.Course{
		Title:         title,
		Code:          code,
		Description:   "course fixture",
		Category:      "general",
		Level:         course.LevelBeginner,
		Credits:       3,
		DurationWeeks: 12,
		Instructor:    course.TeacherRef{ID: instructorID},
		Capacity:      capacity,
		Schedule: course.Schedule{
			StartDate: now,
			EndDate:   now.AddDate(0, 3, 0),
		},
		Currency:  "USD",
		Status:    course.StatusPublished,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	crs, err := repo.CreateCourse(crs)
	if err != nil {
		t.Fatalf("CreateCourse() failed: %v", err)
	}
	return crs
}

func CreateSubject(t *testing.T, repo subject.Repository, name, code string) subject.Subject {
	t.Helper()

	now := time.Now().UTC()
	sub := subject.Subject{
		Name:        name,
		Code:        code,
		Department:  "Sciences",
		Level:       subject.LevelSeniorSecondary,
		CreditHours: 3,
		Status:      subject.StatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	sub, err := repo.CreateSubject(sub)
	if err != nil {
		t.Fatalf("CreateSubject() failed: %v", err)
	}
	return sub
}
