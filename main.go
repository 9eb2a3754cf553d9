package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	echoapi "github.com/shulehub/shule/apps/api/echo"
	"github.com/shulehub/shule/core"
	"github.com/shulehub/shule/core/course"
	"github.com/shulehub/shule/core/student"
	"github.com/shulehub/shule/core/subject"
	"github.com/shulehub/shule/core/teacher"
	emailsvc "github.com/shulehub/shule/services/email"
	logsvc "github.com/shulehub/shule/services/logger"
	"github.com/shulehub/shule/storage/database"
	pgdb "github.com/shulehub/shule/storage/database/pg"
)

func main() {
	std := log.New(os.Stdout, core.Conf.AppName+" : ", log.LstdFlags|log.Lshortfile)
	logger := logsvc.NewRollbarLogger(std, core.Conf)
	logger.Enable(!core.Conf.Debug) // console only in DEV mode

	// set up DB
	errAndDie(database.CreateIfNotExist(core.Conf))
	db, err := database.Open(core.Conf)
	errAndDie(err)
	defer db.Close()
	errAndDie(database.Migrate(db))

	courseRepo := pgdb.NewCourseRepository(db)
	studentRepo := pgdb.NewStudentRepository(db)
	teacherRepo := pgdb.NewTeacherRepository(db)
	subjectRepo := pgdb.NewSubjectRepository(db)

	// set up services
	var mailSvc core.EmailService
	if core.Conf.Debug {
		mailSvc = emailsvc.NewConsoleService()
	} else {
		mailSvc = emailsvc.NewSendgridService(logger)
	}
	courseSvc := course.NewService(courseRepo, studentRepo, teacherRepo)
	studentSvc := student.NewService(studentRepo, mailSvc)
	teacherSvc := teacher.NewService(teacherRepo, mailSvc)
	subjectSvc := subject.NewService(subjectRepo, teacherRepo, courseRepo)

	// start API server
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	app := echoapi.NewServer(
		&echoapi.Options{
			Addr:       core.Conf.Server.Address(),
			Shutdown:   func() { shutdown <- syscall.SIGTERM },
			Logger:     logger,
			CourseSvc:  courseSvc,
			StudentSvc: studentSvc,
			TeacherSvc: teacherSvc,
			SubjectSvc: subjectSvc,
		},
	)
	go app.Start()

	<-shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.Stop(ctx); err != nil {
		logger.Error("server shutdown", err)
	}
}

func errAndDie(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
