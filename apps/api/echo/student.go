package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/shulehub/shule/core"
	"github.com/shulehub/shule/core/student"
)

type studentApi struct {
	svc *student.Service
}

func registerStudentAPI(g *echo.Group, svc *student.Service) {
	api := studentApi{svc: svc}

	sg := g.Group("/students")
	sg.POST("", api.create)
	sg.GET("", api.query)
	sg.POST("/login", api.login)
	sg.GET("/:id", api.retrieve)
	sg.PUT("/:id", api.update)
	sg.DELETE("/:id", api.destroy)
	sg.PATCH("/:id/status", api.updateStatus)

	sg.POST("/:id/courses", api.addCourse)
	sg.DELETE("/:id/courses/:courseId", api.removeCourse)
	sg.PUT("/:id/address", api.updateAddress)
	sg.PUT("/:id/guardian", api.updateGuardian)
}

type addCourseRequest struct {
	CourseID string `json:"courseId" validate:"required"`
}

// Handlers

func (api *studentApi) create(ctx echo.Context) error {
	var data student.NewStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStudent")
	}
	if err := data.Validate(api.svc); err != nil {
		return err
	}

	std, err := api.svc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating student")
	}
	return respondData(ctx, http.StatusCreated, std)
}

func (api *studentApi) query(ctx echo.Context) error {
	students, err := api.svc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	if students == nil {
		students = []student.Student{}
	}
	return respondList(ctx, students, len(students))
}

func (api *studentApi) login(ctx echo.Context) error {
	var data student.Login
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Login")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	std, err := api.svc.Login(data)
	if err != nil {
		return err
	}
	return respondData(ctx, http.StatusOK, std)
}

func (api *studentApi) retrieve(ctx echo.Context) error {
	std, err := api.svc.GetByID(ctx.Param("id"))
	if err != nil {
		return err
	}
	return respondData(ctx, http.StatusOK, std)
}

func (api *studentApi) update(ctx echo.Context) error {
	var data student.UpdateStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateStudent")
	}

	std, err := api.svc.Update(ctx.Param("id"), data)
	if err != nil {
		return err
	}
	return respondData(ctx, http.StatusOK, std)
}

func (api *studentApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Param("id")); err != nil {
		return err
	}
	return respondData(ctx, http.StatusOK, nil)
}

func (api *studentApi) updateStatus(ctx echo.Context) error {
	var data updateStatusRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to updateStatusRequest")
	}
	if err := core.Validate.Struct(&data); err != nil {
		return err
	}

	std, err := api.svc.UpdateStatus(ctx.Param("id"), data.Status)
	if err != nil {
		return err
	}
	return respondData(ctx, http.StatusOK, std)
}

func (api *studentApi) addCourse(ctx echo.Context) error {
	var data addCourseRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to addCourseRequest")
	}
	if err := core.Validate.Struct(&data); err != nil {
		return err
	}

	std, err := api.svc.AddCourse(ctx.Param("id"), data.CourseID)
	if err != nil {
		return err
	}
	return respondData(ctx, http.StatusOK, std)
}

func (api *studentApi) removeCourse(ctx echo.Context) error {
	std, err := api.svc.RemoveCourse(ctx.Param("id"), ctx.Param("courseId"))
	if err != nil {
		return err
	}
	return respondData(ctx, http.StatusOK, std)
}

func (api *studentApi) updateAddress(ctx echo.Context) error {
	var data student.Address
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Address")
	}

	std, err := api.svc.UpdateAddress(ctx.Param("id"), data)
	if err != nil {
		return err
	}
	return respondData(ctx, http.StatusOK, std)
}

func (api *studentApi) updateGuardian(ctx echo.Context) error {
	var data student.Guardian
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Guardian")
	}

	std, err := api.svc.UpdateGuardian(ctx.Param("id"), data)
	if err != nil {
		return err
	}
	return respondData(ctx, http.StatusOK, std)
}
