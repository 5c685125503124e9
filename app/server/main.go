package main

import (
	"context"
	"fmt"
	"log"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"user-directory/app/server/access"
	"user-directory/app/server/auth"
	"user-directory/app/server/handlers"
	"user-directory/app/server/hash"
	"user-directory/app/server/inits"
	"user-directory/app/server/middlewares"
	"user-directory/app/server/service"
	"user-directory/app/server/store"
)

func main() {
	// 初始化配置
	cfg, err := inits.Config()
	if err != nil {
		log.Fatal(fmt.Errorf("error loading config: %w", err))
	}

	// 初始化日志
	l, err := inits.Logger(cfg.IsProd())
	if err != nil {
		log.Fatal(fmt.Errorf("error initializing logger: %w", err))
	}

	// 切换日志系统
	l.Debug("logger initialized")

	// 初始化数据库连接
	db, err := inits.DB(cfg.System.DBConnectionString)
	if err != nil {
		l.Fatal("error initializing DB connection", zap.Error(err))
	}

	// 准备核心组件
	validator := auth.NewValidator(cfg.Auth.APIURL)
	svc := service.NewAccountService(
		store.NewGormStore(db),
		hash.New(cfg.Security.HashTimeCost),
		access.Policy{
			OpenRegistration:     cfg.Policy.OpenRegistration,
			DropDisallowedFields: cfg.Policy.DropDisallowedFields,
			DeleteAdminOnly:      cfg.Policy.DeleteAdminOnly,
		},
		cfg.Security.DefaultAdminPassword,
	)

	// 确保初始管理员账户存在，必须在开始接受请求之前完成
	if err := svc.Bootstrap(context.Background()); err != nil {
		l.Fatal("error bootstrapping admin account", zap.Error(err))
	}

	// 准备 handler app
	handlerApp := handlers.NewApp(l, svc, cfg)

	// 准备 echo 服务
	e := echo.New()
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			l.Info("request",
				zap.String("URI", v.URI),
				zap.Int("status", v.Status),
			)

			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// 公开路由
	e.GET("/", handlerApp.Root)
	e.GET("/healthz", handlerApp.HealthCheck)

	// 需要认证的路由
	authed := e.Group("", middlewares.Auth(validator, l))
	authed.POST("/user", handlerApp.UserCreate)
	authed.GET("/user", handlerApp.UserGet)
	authed.DELETE("/user", handlerApp.UserDelete)
	authed.POST("/users", handlerApp.UserCreate)
	authed.GET("/users", handlerApp.UserList)
	authed.GET("/users/:user_id", handlerApp.UserGet)
	authed.DELETE("/users/:user_id", handlerApp.UserDelete)
	authed.PATCH("/users/:user_id", handlerApp.UserPatch)
	authed.PUT("/users/:user_id/password", handlerApp.UserPasswordUpdate)

	// 启动 echo 服务
	if err := e.Start(cfg.System.Listen); err != nil {
		l.Fatal("shutting down the server", zap.Error(err))
	}
}
