package tests

import (
	"os"
	"testing"

	"github.com/shulehub/shule/core"
	"github.com/shulehub/shule/core/course"
	"github.com/shulehub/shule/core/student"
	"github.com/shulehub/shule/core/subject"
	"github.com/shulehub/shule/core/teacher"

	. "github.com/shulehub/shule/apps/api/echo"
	emailsvc "github.com/shulehub/shule/services/email"
	inmemdb "github.com/shulehub/shule/storage/database/inmem"
)

var (
	db  *inmemdb.DB
	app Server

	courseRepo  course.Repository
	studentRepo student.Repository
	teacherRepo teacher.Repository
	subjectRepo subject.Repository
)

func TestMain(m *testing.M) {
	core.Conf.TestMode = true

	var err error
	db, err = inmemdb.Open()
	if err != nil {
		os.Exit(1)
	}

	crsRepo := inmemdb.NewCourseRepository(db)
	stdRepo := inmemdb.NewStudentRepository(db)
	tchRepo := inmemdb.NewTeacherRepository(db)
	subRepo := inmemdb.NewSubjectRepository(db)
	courseRepo, studentRepo, teacherRepo, subjectRepo = crsRepo, stdRepo, tchRepo, subRepo

	// set up services
	mailSvc := emailsvc.NewConsoleServiceMock()
	courseSvc := course.NewService(crsRepo, stdRepo, tchRepo)
	studentSvc := student.NewService(stdRepo, mailSvc)
	teacherSvc := teacher.NewService(tchRepo, mailSvc)
	subjectSvc := subject.NewService(subRepo, tchRepo, crsRepo)

	// set up server
	app = NewServer(
		&Options{
			DisableReqLogs: true,
			Shutdown:       func() {},
			Logger:         testLogger{},
			CourseSvc:      courseSvc,
			StudentSvc:     studentSvc,
			TeacherSvc:     teacherSvc,
			SubjectSvc:     subjectSvc,
		},
	)

	os.Exit(m.Run())
}

type testLogger struct{}

func (testLogger) Enable(bool)                  {}
func (testLogger) Debug(string, ...interface{}) {}
func (testLogger) Info(string, ...interface{})  {}
func (testLogger) Warn(string, ...interface{})  {}
func (testLogger) Error(string, ...interface{}) {}
func (testLogger) Fatal(string, ...interface{}) {}
