package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/shulehub/shule/core"
	"github.com/shulehub/shule/core/teacher"
)

type teacherApi struct {
	svc *teacher.Service
}

func registerTeacherAPI(g *echo.Group, svc *teacher.Service) {
	api := teacherApi{svc: svc}

	tg := g.Group("/teachers")
	tg.POST("", api.create)
	tg.GET("", api.query)
	tg.POST("/login", api.login)
	tg.GET("/:id", api.retrieve)
	tg.PUT("/:id", api.update)
	tg.DELETE("/:id", api.destroy)
	tg.PATCH("/:id/status", api.updateStatus)

	tg.POST("/:id/subjects", api.addSubject)
	tg.DELETE("/:id/subjects/:subject", api.removeSubject)
	tg.POST("/:id/classes", api.addClass)
	tg.DELETE("/:id/classes/:classId", api.removeClass)
}

type (
	addSubjectRequest struct {
		Subject string `json:"subject" validate:"required"`
	}
	addClassRequest struct {
		ClassID string `json:"classId" validate:"required"`
	}
)

// Handlers

func (api *teacherApi) create(ctx echo.Context) error {
	var data teacher.NewTeacher
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewTeacher")
	}
	if err := data.Validate(api.svc); err != nil {
		return err
	}

	tch, err := api.svc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating teacher")
	}
	return respondData(ctx, http.StatusCreated, tch)
}

func (api *teacherApi) query(ctx echo.Context) error {
	teachers, err := api.svc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying teachers")
	}
	if teachers == nil {
		teachers = []teacher.Teacher{}
	}
	return respondList(ctx, teachers, len(teachers))
}

func (api *teacherApi) login(ctx echo.Context) error {
	var data teacher.Login
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Login")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	tch, err := api.svc.Login(data)
	if err != nil {
		return err
	}
	return respondData(ctx, http.StatusOK, tch)
}

func (api *teacherApi) retrieve(ctx echo.Context) error {
	tch, err := api.svc.GetByID(ctx.Param("id"))
	if err != nil {
		return err
	}
	return respondData(ctx, http.StatusOK, tch)
}

func (api *teacherApi) update(ctx echo.Context) error {
	var data teacher.UpdateTeacher
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateTeacher")
	}

	tch, err := api.svc.Update(ctx.Param("id"), data)
	if err != nil {
		return err
	}
	return respondData(ctx, http.StatusOK, tch)
}

func (api *teacherApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Param("id")); err != nil {
		return err
	}
	return respondData(ctx, http.StatusOK, nil)
}

func (api *teacherApi) updateStatus(ctx echo.Context) error {
	var data updateStatusRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to updateStatusRequest")
	}
	if err := core.Validate.Struct(&data); err != nil {
		return err
	}

	tch, err := api.svc.UpdateStatus(ctx.Param("id"), data.Status)
	if err != nil {
		return err
	}
	return respondData(ctx, http.StatusOK, tch)
}

func (api *teacherApi) addSubject(ctx echo.Context) error {
	var data addSubjectRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to addSubjectRequest")
	}
	if err := core.Validate.Struct(&data); err != nil {
		return err
	}

	tch, err := api.svc.AddSubject(ctx.Param("id"), data.Subject)
	if err != nil {
		return err
	}
	return respondData(ctx, http.StatusOK, tch)
}

func (api *teacherApi) removeSubject(ctx echo.Context) error {
	tch, err := api.svc.RemoveSubject(ctx.Param("id"), ctx.Param("subject"))
	if err != nil {
		return err
	}
	return respondData(ctx, http.StatusOK, tch)
}

func (api *teacherApi) addClass(ctx echo.Context) error {
	var data addClassRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to addClassRequest")
	}
	if err := core.Validate.Struct(&data); err != nil {
		return err
	}

	tch, err := api.svc.AddClass(ctx.Param("id"), data.ClassID)
	if err != nil {
		return err
	}
	return respondData(ctx, http.StatusOK, tch)
}

func (api *teacherApi) removeClass(ctx echo.Context) error {
	tch, err := api.svc.RemoveClass(ctx.Param("id"), ctx.Param("classId"))
	if err != nil {
		return err
	}
	return respondData(ctx, http.StatusOK, tch)
}
