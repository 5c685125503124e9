package inits

import (
	"fmt"

	"go.uber.org/zap"
)

// Logger 根据 MODE 构建日志器，生产环境输出 JSON，其余环境输出开发格式
func Logger(isProd bool) (*zap.Logger, error) {
	var (
		l   *zap.Logger
		err error
	)
	if isProd {
		l, err = zap.NewProduction()
	} else {
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	return l, nil
}
