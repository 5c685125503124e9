// Package service 负责编排：先交给 access 做授权判定，再调用存储执行，
// 并把存储层的结果映射成带类别的错误。认证和授权失败的请求不会触达存储
package service

import (
	"context"
	"errors"
	"fmt"

	"user-directory/app/server/access"
	"user-directory/app/server/auth"
	"user-directory/app/server/constants"
	"user-directory/app/server/errs"
	"user-directory/app/server/hash"
	"user-directory/app/server/models"
	"user-directory/app/server/store"
)

// patch 请求的字段名到数据库列的映射
var patchColumns = map[string]string{
	"avatar_src":    "avatar_src",
	"last_name":     "last_name",
	"display_name":  "display_name",
	"email_address": "email_address",
	"first_name":    "first_name",
	"isAdmin":       "is_admin",
	"locked":        "locked",
}

type AccountService struct {
	store             store.AccountStore
	hasher            *hash.Hasher
	policy            access.Policy
	bootstrapPassword string
}

func NewAccountService(accountStore store.AccountStore, hasher *hash.Hasher, policy access.Policy, bootstrapPassword string) *AccountService {
	return &AccountService{
		store:             accountStore,
		hasher:            hasher,
		policy:            policy,
		bootstrapPassword: bootstrapPassword,
	}
}

// Create 创建账户。严格策略下仅限管理员，开放注册策略下任何已认证的调用者都可以。
// 明文密码在这里哈希后丢弃，绝不触达存储
func (s *AccountService) Create(ctx context.Context, caller *auth.Identity, properties map[string]any) (*models.Account, error) {
	if !caller.IsAdmin && !s.policy.OpenRegistration {
		return nil, errs.New(errs.Forbidden, "administrators only")
	}

	username, ok := properties["username"].(string)
	if !ok || username == "" {
		return nil, errs.New(errs.ValidationError, "username missing")
	}

	plain, ok := properties["password_plain"].(string)
	if !ok || plain == "" {
		return nil, errs.New(errs.ValidationError, "missing password")
	}

	account := models.Account{Username: username}
	for key, value := range properties {
		switch key {
		case "username", "password_plain":
			// 上面已处理
		case "display_name", "first_name", "last_name", "email_address", "avatar_src":
			str, ok := value.(string)
			if !ok {
				return nil, errs.New(errs.ValidationError, fmt.Sprintf("property %s must be a string", key))
			}
			switch key {
			case "display_name":
				account.DisplayName = str
			case "first_name":
				account.FirstName = str
			case "last_name":
				account.LastName = str
			case "email_address":
				account.EmailAddress = str
			case "avatar_src":
				account.AvatarSrc = str
			}
		case "isAdmin", "locked":
			b, ok := value.(bool)
			if !ok {
				return nil, errs.New(errs.ValidationError, fmt.Sprintf("property %s must be a boolean", key))
			}
			// 权限字段只有管理员能设置，开放注册时对普通用户忽略
			if caller.IsAdmin {
				if key == "isAdmin" {
					account.IsAdmin = b
				} else {
					account.Locked = b
				}
			}
		default:
			// 未知属性：旧版开放注册接受任意属性，沿用该策略时忽略；严格策略下拒绝
			if s.policy.OpenRegistration {
				continue
			}
			return nil, errs.New(errs.ValidationError, fmt.Sprintf("unknown property %s", key))
		}
	}

	hashed, err := s.hasher.Create(plain)
	if err != nil {
		return nil, errs.Wrap(errs.HashError, "error hashing password", err)
	}
	account.PasswordHash = hashed

	if err := s.store.Create(ctx, &account); err != nil {
		return nil, errs.Wrap(errs.StoreError, "error creating account", err)
	}

	return &account, nil
}

// Get 读取账户，未指定目标时返回调用者自己
func (s *AccountService) Get(ctx context.Context, caller *auth.Identity, target *uint) (*models.Account, error) {
	id, err := access.ResolveSelfOrAdmin(caller, target)
	if err != nil {
		return nil, err
	}

	account, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errs.New(errs.NotFound, "account not found")
		}
		return nil, errs.Wrap(errs.StoreError, "error getting account", err)
	}

	return account, nil
}

// List 返回账户列表，数量不超过上限
func (s *AccountService) List(ctx context.Context, caller *auth.Identity) ([]models.Account, error) {
	accounts, err := s.store.FindAll(ctx, constants.AccountListLimit)
	if err != nil {
		return nil, errs.Wrap(errs.StoreError, "error getting accounts", err)
	}

	return accounts, nil
}

// Patch 合并更新账户字段，请求中没有提到的字段保持不变
func (s *AccountService) Patch(ctx context.Context, caller *auth.Identity, target *uint, body map[string]any) (*models.Account, error) {
	id, err := access.ResolveSelfOrAdmin(caller, target)
	if err != nil {
		return nil, err
	}

	fields, err := access.FilterWriteFields(caller, body, s.policy)
	if err != nil {
		return nil, err
	}

	columns := make(map[string]any, len(fields))
	for key, value := range fields {
		column := patchColumns[key]
		switch column {
		case "is_admin", "locked":
			b, ok := value.(bool)
			if !ok {
				return nil, errs.New(errs.ValidationError, fmt.Sprintf("field %s must be a boolean", key))
			}
			columns[column] = b
		default:
			str, ok := value.(string)
			if !ok {
				return nil, errs.New(errs.ValidationError, fmt.Sprintf("field %s must be a string", key))
			}
			columns[column] = str
		}
	}

	account, err := s.store.UpdateFields(ctx, id, columns)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errs.New(errs.NotFound, "account not found")
		}
		return nil, errs.Wrap(errs.StoreError, "error updating account", err)
	}

	return account, nil
}

// UpdatePassword 更新密码，明文在这里哈希后丢弃
func (s *AccountService) UpdatePassword(ctx context.Context, caller *auth.Identity, target *uint, plain string) (*models.Account, error) {
	id, err := access.ResolveSelfOrAdmin(caller, target)
	if err != nil {
		return nil, err
	}

	if plain == "" {
		return nil, errs.New(errs.ValidationError, "password missing from body")
	}

	hashed, err := s.hasher.Create(plain)
	if err != nil {
		return nil, errs.Wrap(errs.HashError, "error hashing password", err)
	}

	account, err := s.store.UpdateFields(ctx, id, map[string]any{"password_hash": hashed})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errs.New(errs.NotFound, "account not found")
		}
		return nil, errs.Wrap(errs.StoreError, "error updating password", err)
	}

	return account, nil
}

// Delete 删除账户。受保护账户的删除在存储层被条件拦截，
// 与目标不存在一样表现为零行受影响
func (s *AccountService) Delete(ctx context.Context, caller *auth.Identity, target *uint) error {
	var (
		id  uint
		err error
	)
	if s.policy.DeleteAdminOnly {
		id, err = access.ResolveAdminNotSelf(caller, target)
	} else {
		id, err = access.ResolveSelfOrAdmin(caller, target)
	}
	if err != nil {
		return err
	}

	affected, err := s.store.DeleteExceptUsername(ctx, id, constants.ProtectedUsername)
	if err != nil {
		return errs.Wrap(errs.StoreError, "error deleting account", err)
	}
	if affected == 0 {
		return errs.New(errs.OperationFailed, "account deletion failed")
	}

	return nil
}

// Bootstrap 确保初始管理员账户存在，可以在重启间幂等地重复执行：
// 管理员标记无条件置位，但已有的密码哈希绝不覆盖
func (s *AccountService) Bootstrap(ctx context.Context) error {
	account, err := s.store.FindByUsername(ctx, constants.ProtectedUsername)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return errs.Wrap(errs.StoreError, "error looking up admin account", err)
		}

		hashed, err := s.hasher.Create(s.bootstrapPassword)
		if err != nil {
			return errs.Wrap(errs.HashError, "error hashing bootstrap password", err)
		}

		if err := s.store.Create(ctx, &models.Account{
			Username:     constants.ProtectedUsername,
			DisplayName:  constants.BootstrapDisplayName,
			IsAdmin:      true,
			PasswordHash: hashed,
		}); err != nil {
			return errs.Wrap(errs.StoreError, "error creating admin account", err)
		}

		return nil
	}

	fields := map[string]any{"is_admin": true}
	if account.PasswordHash == "" {
		hashed, err := s.hasher.Create(s.bootstrapPassword)
		if err != nil {
			return errs.Wrap(errs.HashError, "error hashing bootstrap password", err)
		}
		fields["password_hash"] = hashed
		fields["display_name"] = constants.BootstrapDisplayName
	}

	if _, err := s.store.UpdateFields(ctx, account.ID, fields); err != nil {
		return errs.Wrap(errs.StoreError, "error updating admin account", err)
	}

	return nil
}
