package store

import (
	"context"
	"errors"

	"user-directory/app/server/models"
)

// ErrNotFound 表示目标账户不存在
var ErrNotFound = errors.New("account not found")

// AccountStore 是账户持久化的抽象，底层实现保证单条记录操作的原子性，
// 这里的所有操作都只涉及至多一个账户
type AccountStore interface {
	FindByID(ctx context.Context, id uint) (*models.Account, error)
	FindByUsername(ctx context.Context, username string) (*models.Account, error)
	FindAll(ctx context.Context, limit int) ([]models.Account, error)
	Create(ctx context.Context, account *models.Account) error

	// UpdateFields 以合并方式更新指定列，未提及的列保持不变
	UpdateFields(ctx context.Context, id uint, fields map[string]any) (*models.Account, error)

	// DeleteExceptUsername 条件删除：目标用户名等于 protected 时不会删除。
	// 条件在执行时对持久化记录求值，返回受影响的行数
	DeleteExceptUsername(ctx context.Context, id uint, protected string) (int64, error)
}
