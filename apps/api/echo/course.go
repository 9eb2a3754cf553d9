package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/shulehub/shule/core"
	"github.com/shulehub/shule/core/course"
)

type courseApi struct {
	svc *course.Service
}

func registerCourseAPI(g *echo.Group, svc *course.Service) {
	api := courseApi{svc: svc}

	cg := g.Group("/courses")
	cg.POST("", api.create)
	cg.GET("", api.query)
	cg.GET("/:id", api.retrieve)
	cg.PUT("/:id", api.update)
	cg.DELETE("/:id", api.destroy)
	cg.PATCH("/:id/status", api.updateStatus)

	cg.POST("/:id/students", api.enrollStudent)
	cg.DELETE("/:id/students/:studentId", api.unenrollStudent)
	cg.POST("/:id/assistants", api.addAssistant)
	cg.DELETE("/:id/assistants/:teacherId", api.removeAssistant)
	cg.POST("/:id/prerequisites", api.addPrerequisite)
	cg.DELETE("/:id/prerequisites/:prerequisiteId", api.removePrerequisite)
}

type (
	enrollStudentRequest struct {
		StudentID string `json:"studentId" validate:"required"`
	}
	addAssistantRequest struct {
		TeacherID string `json:"teacherId" validate:"required"`
	}
	addPrerequisiteRequest struct {
		PrerequisiteID string `json:"prerequisiteId" validate:"required"`
	}
	updateStatusRequest struct {
		Status string `json:"status" validate:"required"`
	}
)

// Handlers

func (api *courseApi) create(ctx echo.Context) error {
	var data course.NewCourse
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCourse")
	}
	if err := data.Validate(api.svc); err != nil {
		return err
	}

	crs, err := api.svc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating course")
	}
	return respondData(ctx, http.StatusCreated, crs)
}

func (api *courseApi) query(ctx echo.Context) error {
	courses, err := api.svc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying courses")
	}
	if courses == nil {
		courses = []course.Course{}
	}
	return respondList(ctx, courses, len(courses))
}

func (api *courseApi) retrieve(ctx echo.Context) error {
	crs, err := api.svc.GetByID(ctx.Param("id"))
	if err != nil {
		return err
	}
	return respondData(ctx, http.StatusOK, crs)
}

func (api *courseApi) update(ctx echo.Context) error {
	var data course.UpdateCourse
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateCourse")
	}

	crs, err := api.svc.Update(ctx.Param("id"), data)
	if err != nil {
		return err
	}
	return respondData(ctx, http.StatusOK, crs)
}

func (api *courseApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Param("id")); err != nil {
		return err
	}
	return respondData(ctx, http.StatusOK, nil)
}

func (api *courseApi) updateStatus(ctx echo.Context) error {
	var data updateStatusRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to updateStatusRequest")
	}
	if err := core.Validate.Struct(&data); err != nil {
		return err
	}

	crs, err := api.svc.UpdateStatus(ctx.Param("id"), data.Status)
	if err != nil {
		return err
	}
	return respondData(ctx, http.StatusOK, crs)
}

func (api *courseApi) enrollStudent(ctx echo.Context) error {
	var data enrollStudentRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to enrollStudentRequest")
	}
	if err := core.Validate.Struct(&data); err != nil {
		return err
	}

	crs, err := api.svc.EnrollStudent(ctx.Param("id"), data.StudentID)
	if err != nil {
		return err
	}
	return respondData(ctx, http.StatusOK, crs)
}

func (api *courseApi) unenrollStudent(ctx echo.Context) error {
	crs, err := api.svc.UnenrollStudent(ctx.Param("id"), ctx.Param("studentId"))
	if err != nil {
		return err
	}
	return respondData(ctx, http.StatusOK, crs)
}

func (api *courseApi) addAssistant(ctx echo.Context) error {
	var data addAssistantRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to addAssistantRequest")
	}
	if err := core.Validate.Struct(&data); err != nil {
		return err
	}

	crs, err := api.svc.AddAssistant(ctx.Param("id"), data.TeacherID)
	if err != nil {
		return err
	}
	return respondData(ctx, http.StatusOK, crs)
}

func (api *courseApi) removeAssistant(ctx echo.Context) error {
	crs, err := api.svc.RemoveAssistant(ctx.Param("id"), ctx.Param("teacherId"))
	if err != nil {
		return err
	}
	return respondData(ctx, http.StatusOK, crs)
}

func (api *courseApi) addPrerequisite(ctx echo.Context) error {
	var data addPrerequisiteRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to addPrerequisiteRequest")
	}
	if err := core.Validate.Struct(&data); err != nil {
		return err
	}

	crs, err := api.svc.AddPrerequisite(ctx.Param("id"), data.PrerequisiteID)
	if err != nil {
		return err
	}
	return respondData(ctx, http.StatusOK, crs)
}

func (api *courseApi) removePrerequisite(ctx echo.Context) error {
	crs, err := api.svc.RemovePrerequisite(ctx.Param("id"), ctx.Param("prerequisiteId"))
	if err != nil {
		return err
	}
	return respondData(ctx, http.StatusOK, crs)
}
