package tests

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shulehub/shule/core/course"
	testutil "github.com/shulehub/shule/tests"
)

func TestCourseAPI_create(t *testing.T) {
	db.Reset()
	tch := testutil.CreateTeacher(t, teacherRepo, "Ama", "Mensah", "ama@shule.test", "")

	body := marshallObj(t, echo.Map{
		"title":         "Algebra I",
		"code":          "alg-101",
		"description":   "Introductory algebra",
		"category":      "Mathematics",
		"credits":       3,
		"durationWeeks": 12,
		"instructor":    tch.ID,
		"capacity":      30,
		"price":         0,
		"schedule": echo.Map{
			"startDate": "2026-09-01T00:00:00Z",
			"endDate":   "2026-12-01T00:00:00Z",
		},
	})
	req, rec := newRequest(http.MethodPost, "/api/courses", body)
	app.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var crs course.Course
	decodeData(t, rec, &crs)
	assert.Equal(t, "ALG-101", crs.Code)
	assert.Equal(t, course.LevelBeginner, crs.Level)
	assert.Equal(t, course.StatusDraft, crs.Status)
	assert.Equal(t, "USD", crs.Currency)
	assert.True(t, crs.IsActive)
	assert.Equal(t, 0, crs.EnrolledCount)

	// duplicate code is rejected
	req, rec = newRequest(http.MethodPost, "/api/courses", body)
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCourseAPI_createValidation(t *testing.T) {
	db.Reset()

	tests := []httpTest{
		{"empty body", http.MethodPost, "/api/courses", []byte(`{}`), http.StatusBadRequest},
		{"missing instructor", http.MethodPost, "/api/courses",
			[]byte(`{"title":"T","code":"C1","description":"d","category":"c","credits":1,"durationWeeks":1,"capacity":1,"price":1}`),
			http.StatusBadRequest},
		{"bad currency", http.MethodPost, "/api/courses",
			[]byte(`{"title":"T","code":"C1","description":"d","category":"c","credits":1,"durationWeeks":1,"instructor":"x","capacity":1,"price":1,"currency":"XXX"}`),
			http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(tt.method, tt.path, tt.body)
			app.ServeHTTP(rec, req)
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestCourseAPI_enrollStudent(t *testing.T) {
	db.Reset()
	tch := testutil.CreateTeacher(t, teacherRepo, "Ama", "Mensah", "ama@shule.test", "")
	crs := testutil.CreateCourse(t, courseRepo, "Algebra I", "ALG-101", tch.ID, 2)
	std := testutil.CreateStudent(t, studentRepo, "Kofi", "Owusu", "kofi@shule.test", "STD-001", "")

	req, rec := newRequest(http.MethodPost, "/api/courses/"+crs.ID+"/students", marshallObj(t, echo.Map{"studentId": std.ID}))
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var got course.Course
	decodeData(t, rec, &got)
	assert.Equal(t, 1, got.EnrolledCount)
	assert.True(t, got.HasStudent(std.ID))

	// both sides of the edge are updated
	stdAfter, err := studentRepo.GetStudentByID(std.ID)
	require.NoError(t, err)
	assert.True(t, stdAfter.HasCourse(crs.ID))

	// enrolling twice is rejected
	req, rec = newRequest(http.MethodPost, "/api/courses/"+crs.ID+"/students", marshallObj(t, echo.Map{"studentId": std.ID}))
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "student already enrolled", errorString(t, rec))
}

func TestCourseAPI_enrollStudentNotFound(t *testing.T) {
	db.Reset()
	tch := testutil.CreateTeacher(t, teacherRepo, "Ama", "Mensah", "ama@shule.test", "")
	crs := testutil.CreateCourse(t, courseRepo, "Algebra I", "ALG-101", tch.ID, 2)

	req, rec := newRequest(http.MethodPost, "/api/courses/"+crs.ID+"/students", marshallObj(t, echo.Map{"studentId": "nope"}))
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	req, rec = newRequest(http.MethodPost, "/api/courses/nope/students", marshallObj(t, echo.Map{"studentId": "nope"}))
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCourseAPI_enrollCourseFull(t *testing.T) {
	db.Reset()
	tch := testutil.CreateTeacher(t, teacherRepo, "Ama", "Mensah", "ama@shule.test", "")
	crs := testutil.CreateCourse(t, courseRepo, "Algebra I", "ALG-101", tch.ID, 1)
	std1 := testutil.CreateStudent(t, studentRepo, "Kofi", "Owusu", "kofi@shule.test", "STD-001", "")
	std2 := testutil.CreateStudent(t, studentRepo, "Abena", "Asante", "abena@shule.test", "STD-002", "")

	req, rec := newRequest(http.MethodPost, "/api/courses/"+crs.ID+"/students", marshallObj(t, echo.Map{"studentId": std1.ID}))
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	req, rec = newRequest(http.MethodPost, "/api/courses/"+crs.ID+"/students", marshallObj(t, echo.Map{"studentId": std2.ID}))
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "course is full", errorString(t, rec))
}

func TestCourseAPI_unenrollStudent(t *testing.T) {
	db.Reset()
	tch := testutil.CreateTeacher(t, teacherRepo, "Ama", "Mensah", "ama@shule.test", "")
	crs := testutil.CreateCourse(t, courseRepo, "Algebra I", "ALG-101", tch.ID, 1)
	std := testutil.CreateStudent(t, studentRepo, "Kofi", "Owusu", "kofi@shule.test", "STD-001", "")

	req, rec := newRequest(http.MethodPost, "/api/courses/"+crs.ID+"/students", marshallObj(t, echo.Map{"studentId": std.ID}))
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	req, rec = newRequest(http.MethodDelete, "/api/courses/"+crs.ID+"/students/"+std.ID)
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var got course.Course
	decodeData(t, rec, &got)
	assert.Equal(t, 0, got.EnrolledCount)
	assert.False(t, got.HasStudent(std.ID))

	stdAfter, err := studentRepo.GetStudentByID(std.ID)
	require.NoError(t, err)
	assert.False(t, stdAfter.HasCourse(crs.ID))

	// unenrolling a student who is not enrolled
	req, rec = newRequest(http.MethodDelete, "/api/courses/"+crs.ID+"/students/"+std.ID)
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// a freed seat can be taken again
	req, rec = newRequest(http.MethodPost, "/api/courses/"+crs.ID+"/students", marshallObj(t, echo.Map{"studentId": std.ID}))
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCourseAPI_assistants(t *testing.T) {
	db.Reset()
	tch := testutil.CreateTeacher(t, teacherRepo, "Ama", "Mensah", "ama@shule.test", "")
	asst := testutil.CreateTeacher(t, teacherRepo, "Yaw", "Boateng", "yaw@shule.test", "")
	crs := testutil.CreateCourse(t, courseRepo, "Algebra I", "ALG-101", tch.ID, 30)

	req, rec := newRequest(http.MethodPost, "/api/courses/"+crs.ID+"/assistants", marshallObj(t, echo.Map{"teacherId": asst.ID}))
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var got course.Course
	decodeData(t, rec, &got)
	assert.True(t, got.HasAssistant(asst.ID))

	// adding the same assistant again is a no-op success
	req, rec = newRequest(http.MethodPost, "/api/courses/"+crs.ID+"/assistants", marshallObj(t, echo.Map{"teacherId": asst.ID}))
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec, &got)
	assert.Len(t, got.Assistants, 1)

	// unknown teacher
	req, rec = newRequest(http.MethodPost, "/api/courses/"+crs.ID+"/assistants", marshallObj(t, echo.Map{"teacherId": "nope"}))
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	req, rec = newRequest(http.MethodDelete, "/api/courses/"+crs.ID+"/assistants/"+asst.ID)
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec, &got)
	assert.Empty(t, got.Assistants)

	// removing an assistant who was never added is a no-op success
	req, rec = newRequest(http.MethodDelete, "/api/courses/"+crs.ID+"/assistants/"+tch.ID)
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec, &got)
	assert.Empty(t, got.Assistants)
}

func TestCourseAPI_prerequisites(t *testing.T) {
	db.Reset()
	tch := testutil.CreateTeacher(t, teacherRepo, "Ama", "Mensah", "ama@shule.test", "")
	crs := testutil.CreateCourse(t, courseRepo, "Algebra II", "ALG-201", tch.ID, 30)
	prq := testutil.CreateCourse(t, courseRepo, "Algebra I", "ALG-101", tch.ID, 30)

	// a course cannot be its own prerequisite
	req, rec := newRequest(http.MethodPost, "/api/courses/"+crs.ID+"/prerequisites", marshallObj(t, echo.Map{"prerequisiteId": crs.ID}))
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// unknown prerequisite
	req, rec = newRequest(http.MethodPost, "/api/courses/"+crs.ID+"/prerequisites", marshallObj(t, echo.Map{"prerequisiteId": "nope"}))
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	req, rec = newRequest(http.MethodPost, "/api/courses/"+crs.ID+"/prerequisites", marshallObj(t, echo.Map{"prerequisiteId": prq.ID}))
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var got course.Course
	decodeData(t, rec, &got)
	require.Len(t, got.Prerequisites, 1)
	assert.Equal(t, prq.ID, got.Prerequisites[0].ID)

	// mutual prerequisites are accepted; only direct self-reference is rejected
	req, rec = newRequest(http.MethodPost, "/api/courses/"+prq.ID+"/prerequisites", marshallObj(t, echo.Map{"prerequisiteId": crs.ID}))
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec, &got)
	require.Len(t, got.Prerequisites, 1)
	assert.Equal(t, crs.ID, got.Prerequisites[0].ID)

	req, rec = newRequest(http.MethodDelete, "/api/courses/"+crs.ID+"/prerequisites/"+prq.ID)
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec, &got)
	assert.Empty(t, got.Prerequisites)
}

func TestCourseAPI_delete(t *testing.T) {
	db.Reset()
	tch := testutil.CreateTeacher(t, teacherRepo, "Ama", "Mensah", "ama@shule.test", "")
	crs := testutil.CreateCourse(t, courseRepo, "Algebra I", "ALG-101", tch.ID, 30)
	std := testutil.CreateStudent(t, studentRepo, "Kofi", "Owusu", "kofi@shule.test", "STD-001", "")

	req, rec := newRequest(http.MethodPost, "/api/courses/"+crs.ID+"/students", marshallObj(t, echo.Map{"studentId": std.ID}))
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	req, rec = newRequest(http.MethodDelete, "/api/courses/"+crs.ID)
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	// deleting a course pulls it from enrolled students
	stdAfter, err := studentRepo.GetStudentByID(std.ID)
	require.NoError(t, err)
	assert.False(t, stdAfter.HasCourse(crs.ID))

	req, rec = newRequest(http.MethodGet, "/api/courses/"+crs.ID)
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCourseAPI_updateStatus(t *testing.T) {
	db.Reset()
	tch := testutil.CreateTeacher(t, teacherRepo, "Ama", "Mensah", "ama@shule.test", "")
	crs := testutil.CreateCourse(t, courseRepo, "Algebra I", "ALG-101", tch.ID, 30)

	req, rec := newRequest(http.MethodPatch, "/api/courses/"+crs.ID+"/status", marshallObj(t, echo.Map{"status": "archived"}))
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var got course.Course
	decodeData(t, rec, &got)
	assert.Equal(t, course.StatusArchived, got.Status)

	req, rec = newRequest(http.MethodPatch, "/api/courses/"+crs.ID+"/status", marshallObj(t, echo.Map{"status": "bogus"}))
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCourseAPI_query(t *testing.T) {
	db.Reset()
	tch := testutil.CreateTeacher(t, teacherRepo, "Ama", "Mensah", "ama@shule.test", "")
	testutil.CreateCourse(t, courseRepo, "Algebra I", "ALG-101", tch.ID, 30)
	testutil.CreateCourse(t, courseRepo, "Algebra II", "ALG-201", tch.ID, 30)

	req, rec := newRequest(http.MethodGet, "/api/courses")
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Count)
	assert.Equal(t, 2, *resp.Count)
}
