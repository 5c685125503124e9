package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"user-directory/app/server/constants"
)

func (a *App) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"application_name":       constants.AppName,
		"version":                constants.AppVersion,
		"authentication_api_url": a.cfg.Auth.APIURL,
	})
}

func (a *App) HealthCheck(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}
