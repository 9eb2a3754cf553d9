package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// envelope is the uniform response wrapper.
type envelope struct {
	Success bool        `json:"success"`
	Count   *int        `json:"count,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   interface{} `json:"error,omitempty"`
}

func respondData(ctx echo.Context, code int, data interface{}) error {
	return ctx.JSON(code, envelope{Success: true, Data: data})
}

func respondList(ctx echo.Context, data interface{}, count int) error {
	return ctx.JSON(http.StatusOK, envelope{Success: true, Count: &count, Data: data})
}
