package handlers

import (
	"go.uber.org/zap"

	"user-directory/app/server/config"
	"user-directory/app/server/service"
)

type App struct {
	l   *zap.Logger             // 日志
	svc *service.AccountService // 账户服务
	cfg *config.Config          // 只读配置，启动后不再变更
}

func NewApp(l *zap.Logger, svc *service.AccountService, cfg *config.Config) *App {
	return &App{
		l:   l,
		svc: svc,
		cfg: cfg,
	}
}
