package tests

import (
	"net/http"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shulehub/shule/core/student"
	testutil "github.com/shulehub/shule/tests"
)

func newStudentBody(t *testing.T, overrides echo.Map) []byte {
	body := echo.Map{
		"firstName":   "Kofi",
		"lastName":    "Owusu",
		"email":       "kofi@shule.test",
		"studentId":   "STD-001",
		"password":    "s3cureEnough!",
		"dateOfBirth": "2005-06-15T00:00:00Z",
		"gender":      "male",
		"class":       "Form 1",
	}
	for k, v := range overrides {
		body[k] = v
	}
	return marshallObj(t, body)
}

func TestStudentAPI_create(t *testing.T) {
	db.Reset()

	req, rec := newRequest(http.MethodPost, "/api/students", newStudentBody(t, nil))
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	// the password hash never leaves the server
	assert.NotContains(t, strings.ToLower(rec.Body.String()), "password")

	var std student.Student
	decodeData(t, rec, &std)
	assert.Equal(t, "student", std.Role)
	assert.Equal(t, student.StatusActive, std.Status)
	assert.False(t, std.EnrollmentDate.IsZero())
}

func TestStudentAPI_createDuplicates(t *testing.T) {
	db.Reset()
	testutil.CreateStudent(t, studentRepo, "Kofi", "Owusu", "kofi@shule.test", "STD-001", "")

	// duplicate email
	req, rec := newRequest(http.MethodPost, "/api/students", newStudentBody(t, echo.Map{"studentId": "STD-002"}))
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// duplicate student id
	req, rec = newRequest(http.MethodPost, "/api/students", newStudentBody(t, echo.Map{"email": "other@shule.test"}))
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStudentAPI_passwordPolicy(t *testing.T) {
	db.Reset()

	tests := []struct {
		name string
		pwd  string
	}{
		{"too short", "ab1!"},
		{"all numeric", "8487374662"},
		{"similar to email", "kofi@shule.test"},
		{"similar to name", "KofiOwusu"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/api/students", newStudentBody(t, echo.Map{"password": tt.pwd}))
			app.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestStudentAPI_login(t *testing.T) {
	db.Reset()
	std := testutil.CreateStudent(t, studentRepo, "Kofi", "Owusu", "kofi@shule.test", "STD-001", "s3cureEnough!")

	req, rec := newRequest(http.MethodPost, "/api/students/login", marshallObj(t, echo.Map{
		"email":    "kofi@shule.test",
		"password": "s3cureEnough!",
	}))
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, strings.ToLower(rec.Body.String()), "passwordhash")

	var got student.Student
	decodeData(t, rec, &got)
	assert.Equal(t, std.ID, got.ID)
	assert.False(t, got.LastLogin.IsZero())
}

func TestStudentAPI_loginBadCredentials(t *testing.T) {
	db.Reset()
	testutil.CreateStudent(t, studentRepo, "Kofi", "Owusu", "kofi@shule.test", "STD-001", "s3cureEnough!")

	// unknown email and wrong password are indistinguishable
	req, rec := newRequest(http.MethodPost, "/api/students/login", marshallObj(t, echo.Map{
		"email":    "nobody@shule.test",
		"password": "s3cureEnough!",
	}))
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	unknownEmailBody := errorString(t, rec)

	req, rec = newRequest(http.MethodPost, "/api/students/login", marshallObj(t, echo.Map{
		"email":    "kofi@shule.test",
		"password": "wrongpass123!",
	}))
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, unknownEmailBody, errorString(t, rec))
}

func TestStudentAPI_updateIgnoresPassword(t *testing.T) {
	db.Reset()
	std := testutil.CreateStudent(t, studentRepo, "Kofi", "Owusu", "kofi@shule.test", "STD-001", "s3cureEnough!")

	req, rec := newRequest(http.MethodPut, "/api/students/"+std.ID, marshallObj(t, echo.Map{
		"firstName": "Kwame",
		"password":  "newPassword123!",
	}))
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var got student.Student
	decodeData(t, rec, &got)
	assert.Equal(t, "Kwame", got.FirstName)

	// the generic update endpoint never touches credentials
	after, err := studentRepo.GetStudentByID(std.ID)
	require.NoError(t, err)
	assert.NoError(t, after.CheckPassword("s3cureEnough!"))
	assert.Error(t, after.CheckPassword("newPassword123!"))
}

func TestStudentAPI_addRemoveCourse(t *testing.T) {
	db.Reset()
	tch := testutil.CreateTeacher(t, teacherRepo, "Ama", "Mensah", "ama@shule.test", "")
	crs := testutil.CreateCourse(t, courseRepo, "Algebra I", "ALG-101", tch.ID, 30)
	std := testutil.CreateStudent(t, studentRepo, "Kofi", "Owusu", "kofi@shule.test", "STD-001", "")

	req, rec := newRequest(http.MethodPost, "/api/students/"+std.ID+"/courses", marshallObj(t, echo.Map{"courseId": crs.ID}))
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var got student.Student
	decodeData(t, rec, &got)
	assert.True(t, got.HasCourse(crs.ID))

	// the student-side op does not touch the course roster
	crsAfter, err := courseRepo.GetCourseByID(crs.ID)
	require.NoError(t, err)
	assert.False(t, crsAfter.HasStudent(std.ID))
	assert.Equal(t, 0, crsAfter.EnrolledCount)

	req, rec = newRequest(http.MethodDelete, "/api/students/"+std.ID+"/courses/"+crs.ID)
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec, &got)
	assert.False(t, got.HasCourse(crs.ID))
}

func TestStudentAPI_updateAddressAndGuardian(t *testing.T) {
	db.Reset()
	std := testutil.CreateStudent(t, studentRepo, "Kofi", "Owusu", "kofi@shule.test", "STD-001", "")

	req, rec := newRequest(http.MethodPut, "/api/students/"+std.ID+"/address", marshallObj(t, echo.Map{
		"street":  "12 High St",
		"city":    "Accra",
		"country": "Ghana",
	}))
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var got student.Student
	decodeData(t, rec, &got)
	assert.Equal(t, "Accra", got.Address.City)

	req, rec = newRequest(http.MethodPut, "/api/students/"+std.ID+"/guardian", marshallObj(t, echo.Map{
		"firstName":    "Esi",
		"lastName":     "Owusu",
		"relationship": "parent",
	}))
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec, &got)
	assert.Equal(t, "parent", got.Guardian.Relationship)

	// invalid relationship
	req, rec = newRequest(http.MethodPut, "/api/students/"+std.ID+"/guardian", marshallObj(t, echo.Map{
		"relationship": "cousin",
	}))
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStudentAPI_updateStatus(t *testing.T) {
	db.Reset()
	std := testutil.CreateStudent(t, studentRepo, "Kofi", "Owusu", "kofi@shule.test", "STD-001", "")

	req, rec := newRequest(http.MethodPatch, "/api/students/"+std.ID+"/status", marshallObj(t, echo.Map{"status": "graduated"}))
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var got student.Student
	decodeData(t, rec, &got)
	assert.Equal(t, student.StatusGraduated, got.Status)

	req, rec = newRequest(http.MethodPatch, "/api/students/"+std.ID+"/status", marshallObj(t, echo.Map{"status": "bogus"}))
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStudentAPI_retrieveNotFound(t *testing.T) {
	db.Reset()

	req, rec := newRequest(http.MethodGet, "/api/students/nope")
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
