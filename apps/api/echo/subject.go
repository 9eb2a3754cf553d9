package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/shulehub/shule/core"
	"github.com/shulehub/shule/core/subject"
)

type subjectApi struct {
	svc *subject.Service
}

func registerSubjectAPI(g *echo.Group, svc *subject.Service) {
	api := subjectApi{svc: svc}

	sg := g.Group("/subjects")
	sg.POST("", api.create)
	sg.GET("", api.query)
	sg.GET("/:id", api.retrieve)
	sg.PUT("/:id", api.update)
	sg.DELETE("/:id", api.destroy)
	sg.PATCH("/:id/status", api.updateStatus)

	sg.POST("/:id/teachers", api.addTeacher)
	sg.DELETE("/:id/teachers/:teacherId", api.removeTeacher)
	sg.POST("/:id/courses", api.addCourse)
	sg.DELETE("/:id/courses/:courseId", api.removeCourse)
	sg.POST("/:id/prerequisites", api.addPrerequisite)
	sg.DELETE("/:id/prerequisites/:prerequisiteId", api.removePrerequisite)
}

// Handlers

func (api *subjectApi) create(ctx echo.Context) error {
	var data subject.NewSubject
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSubject")
	}
	if err := data.Validate(api.svc); err != nil {
		return err
	}

	sub, err := api.svc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating subject")
	}
	return respondData(ctx, http.StatusCreated, sub)
}

func (api *subjectApi) query(ctx echo.Context) error {
	subjects, err := api.svc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying subjects")
	}
	if subjects == nil {
		subjects = []subject.Subject{}
	}
	return respondList(ctx, subjects, len(subjects))
}

func (api *subjectApi) retrieve(ctx echo.Context) error {
	sub, err := api.svc.GetByID(ctx.Param("id"))
	if err != nil {
		return err
	}
	return respondData(ctx, http.StatusOK, sub)
}

func (api *subjectApi) update(ctx echo.Context) error {
	var data subject.UpdateSubject
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateSubject")
	}

	sub, err := api.svc.Update(ctx.Param("id"), data)
	if err != nil {
		return err
	}
	return respondData(ctx, http.StatusOK, sub)
}

func (api *subjectApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Param("id")); err != nil {
		return err
	}
	return respondData(ctx, http.StatusOK, nil)
}

func (api *subjectApi) updateStatus(ctx echo.Context) error {
	var data updateStatusRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to updateStatusRequest")
	}
	if err := core.Validate.Struct(&data); err != nil {
		return err
	}

	sub, err := api.svc.UpdateStatus(ctx.Param("id"), data.Status)
	if err != nil {
		return err
	}
	return respondData(ctx, http.StatusOK, sub)
}

func (api *subjectApi) addTeacher(ctx echo.Context) error {
	var data addAssistantRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to addAssistantRequest")
	}
	if err := core.Validate.Struct(&data); err != nil {
		return err
	}

	sub, err := api.svc.AddTeacher(ctx.Param("id"), data.TeacherID)
	if err != nil {
		return err
	}
	return respondData(ctx, http.StatusOK, sub)
}

func (api *subjectApi) removeTeacher(ctx echo.Context) error {
	sub, err := api.svc.RemoveTeacher(ctx.Param("id"), ctx.Param("teacherId"))
	if err != nil {
		return err
	}
	return respondData(ctx, http.StatusOK, sub)
}

func (api *subjectApi) addCourse(ctx echo.Context) error {
	var data addCourseRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to addCourseRequest")
	}
	if err := core.Validate.Struct(&data); err != nil {
		return err
	}

	sub, err := api.svc.AddCourse(ctx.Param("id"), data.CourseID)
	if err != nil {
		return err
	}
	return respondData(ctx, http.StatusOK, sub)
}

func (api *subjectApi) removeCourse(ctx echo.Context) error {
	sub, err := api.svc.RemoveCourse(ctx.Param("id"), ctx.Param("courseId"))
	if err != nil {
		return err
	}
	return respondData(ctx, http.StatusOK, sub)
}

func (api *subjectApi) addPrerequisite(ctx echo.Context) error {
	var data addPrerequisiteRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to addPrerequisiteRequest")
	}
	if err := core.Validate.Struct(&data); err != nil {
		return err
	}

	sub, err := api.svc.AddPrerequisite(ctx.Param("id"), data.PrerequisiteID)
	if err != nil {
		return err
	}
	return respondData(ctx, http.StatusOK, sub)
}

func (api *subjectApi) removePrerequisite(ctx echo.Context) error {
	sub, err := api.svc.RemovePrerequisite(ctx.Param("id"), ctx.Param("prerequisiteId"))
	if err != nil {
		return err
	}
	return respondData(ctx, http.StatusOK, sub)
}
