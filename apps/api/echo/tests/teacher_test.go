package tests

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shulehub/shule/core/teacher"
	testutil "github.com/shulehub/shule/tests"
)

func TestTeacherAPI_create(t *testing.T) {
	db.Reset()

	req, rec := newRequest(http.MethodPost, "/api/teachers", marshallObj(t, echo.Map{
		"firstName": "Ama",
		"lastName":  "Mensah",
		"email":     "ama@shule.test",
		"password":  "s3cureEnough!",
		"subjects":  []string{"Mathematics"},
	}))
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var tch teacher.Teacher
	decodeData(t, rec, &tch)
	assert.Equal(t, teacher.RoleTeacher, tch.Role)
	assert.Equal(t, teacher.StatusActive, tch.Status)
	assert.Equal(t, []string{"Mathematics"}, tch.Subjects)

	// duplicate email
	req, rec = newRequest(http.MethodPost, "/api/teachers", marshallObj(t, echo.Map{
		"firstName": "Other",
		"lastName":  "Teacher",
		"email":     "ama@shule.test",
		"password":  "s3cureEnough!",
	}))
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTeacherAPI_login(t *testing.T) {
	db.Reset()
	tch := testutil.CreateTeacher(t, teacherRepo, "Ama", "Mensah", "ama@shule.test", "s3cureEnough!")

	req, rec := newRequest(http.MethodPost, "/api/teachers/login", marshallObj(t, echo.Map{
		"email":    "ama@shule.test",
		"password": "s3cureEnough!",
	}))
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var got teacher.Teacher
	decodeData(t, rec, &got)
	assert.Equal(t, tch.ID, got.ID)

	req, rec = newRequest(http.MethodPost, "/api/teachers/login", marshallObj(t, echo.Map{
		"email":    "ama@shule.test",
		"password": "nope",
	}))
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTeacherAPI_updatePassword(t *testing.T) {
	db.Reset()
	tch := testutil.CreateTeacher(t, teacherRepo, "Ama", "Mensah", "ama@shule.test", "s3cureEnough!")

	req, rec := newRequest(http.MethodPut, "/api/teachers/"+tch.ID, marshallObj(t, echo.Map{
		"password": "an0therSecret!",
	}))
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	after, err := teacherRepo.GetTeacherByID(tch.ID)
	require.NoError(t, err)
	assert.NoError(t, after.CheckPassword("an0therSecret!"))
	assert.Error(t, after.CheckPassword("s3cureEnough!"))
}

func TestTeacherAPI_subjects(t *testing.T) {
	db.Reset()
	tch := testutil.CreateTeacher(t, teacherRepo, "Ama", "Mensah", "ama@shule.test", "")

	req, rec := newRequest(http.MethodPost, "/api/teachers/"+tch.ID+"/subjects", marshallObj(t, echo.Map{"subject": "Physics"}))
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var got teacher.Teacher
	decodeData(t, rec, &got)
	assert.Contains(t, got.Subjects, "Physics")

	// adding the same subject twice keeps a single entry
	req, rec = newRequest(http.MethodPost, "/api/teachers/"+tch.ID+"/subjects", marshallObj(t, echo.Map{"subject": "Physics"}))
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec, &got)
	assert.Len(t, got.Subjects, 1)

	// an empty subject name is rejected
	req, rec = newRequest(http.MethodPost, "/api/teachers/"+tch.ID+"/subjects", marshallObj(t, echo.Map{"subject": ""}))
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req, rec = newRequest(http.MethodDelete, "/api/teachers/"+tch.ID+"/subjects/Physics")
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec, &got)
	assert.Empty(t, got.Subjects)
}

func TestTeacherAPI_classes(t *testing.T) {
	db.Reset()
	tch := testutil.CreateTeacher(t, teacherRepo, "Ama", "Mensah", "ama@shule.test", "")

	req, rec := newRequest(http.MethodPost, "/api/teachers/"+tch.ID+"/classes", marshallObj(t, echo.Map{"classId": "form-1a"}))
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var got teacher.Teacher
	decodeData(t, rec, &got)
	assert.Contains(t, got.Classes, "form-1a")

	req, rec = newRequest(http.MethodDelete, "/api/teachers/"+tch.ID+"/classes/form-1a")
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec, &got)
	assert.Empty(t, got.Classes)
}

func TestTeacherAPI_updateStatus(t *testing.T) {
	db.Reset()
	tch := testutil.CreateTeacher(t, teacherRepo, "Ama", "Mensah", "ama@shule.test", "")

	req, rec := newRequest(http.MethodPatch, "/api/teachers/"+tch.ID+"/status", marshallObj(t, echo.Map{"status": "suspended"}))
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var got teacher.Teacher
	decodeData(t, rec, &got)
	assert.Equal(t, teacher.StatusSuspended, got.Status)
}

func TestTeacherAPI_deleteKeepsCourseAssignment(t *testing.T) {
	db.Reset()
	tch := testutil.CreateTeacher(t, teacherRepo, "Ama", "Mensah", "ama@shule.test", "")
	crs := testutil.CreateCourse(t, courseRepo, "Algebra I", "ALG-101", tch.ID, 30)

	req, rec := newRequest(http.MethodDelete, "/api/teachers/"+tch.ID)
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	// the course keeps its instructor id; the dangling ref is simply not resolved
	after, err := courseRepo.GetCourseByID(crs.ID)
	require.NoError(t, err)
	assert.Equal(t, tch.ID, after.Instructor.ID)
	assert.Empty(t, after.Instructor.FirstName)

	req, rec = newRequest(http.MethodGet, "/api/teachers/"+tch.ID)
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
