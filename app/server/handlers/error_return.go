package handlers

import (
	"github.com/labstack/echo/v4"

	"user-directory/app/server/errs"
)

func (a *App) er(c echo.Context, err error) error {
	status, message := errs.HTTP(err)
	return c.JSON(status, &errs.Message{
		Message: message,
	})
}
