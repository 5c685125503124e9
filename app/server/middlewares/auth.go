package middlewares

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"user-directory/app/server/auth"
	"user-directory/app/server/constants"
	"user-directory/app/server/errs"
)

// Auth 校验请求的 bearer token 并把解析出的身份放进 context，
// 校验失败的请求不会进入后续处理
func Auth(validator *auth.Validator, l *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, err := validator.Validate(c.Request().Context(), c.Request().Header.Get("Authorization"))
			if err != nil {
				l.Error("failed to authenticate request", zap.Error(err))
				status, message := errs.HTTP(err)
				return c.JSON(status, &errs.Message{Message: message})
			}

			// 设置 context
			c.Set(constants.ContextKeyIdentity, identity)

			// 继续处理
			return next(c)
		}
	}
}
