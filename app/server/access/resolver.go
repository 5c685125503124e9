// Package access 是纯粹的授权判定逻辑：给定调用者身份、目标账户和操作类型，
// 得出允许的目标 id 和（对写操作）允许的字段集合，或者一个拒绝
package access

import (
	"fmt"

	"user-directory/app/server/auth"
	"user-directory/app/server/errs"
)

// Policy 显式选择策略变体，零值为最严格的策略
type Policy struct {
	OpenRegistration     bool // 允许非管理员自助注册
	DropDisallowedFields bool // patch 时静默丢弃不允许的字段而不是整体拒绝
	DeleteAdminOnly      bool // 删除操作仅限管理员且不能针对自己
}

// 所有用户都可以修改的字段
var baseWritableFields = []string{
	"avatar_src",
	"last_name",
	"display_name",
	"email_address",
	"first_name",
}

// 仅管理员可以修改的字段
var adminWritableFields = []string{
	"isAdmin",
	"locked",
}

// ResolveSelfOrAdmin 处理默认指向自己的操作：未指定目标时落到调用者自己，
// 指定他人时要求管理员权限
func ResolveSelfOrAdmin(caller *auth.Identity, target *uint) (uint, error) {
	if target == nil {
		return caller.ID, nil
	}

	if *target != caller.ID && !caller.IsAdmin {
		return 0, errs.New(errs.Unauthorized, "cannot act on another account")
	}

	return *target, nil
}

// ResolveAdminNotSelf 处理特权操作：要求管理员权限、必须显式指定目标、且目标不能是自己
func ResolveAdminNotSelf(caller *auth.Identity, target *uint) (uint, error) {
	if !caller.IsAdmin {
		return 0, errs.New(errs.Forbidden, "administrators only")
	}

	if target == nil {
		return 0, errs.New(errs.ValidationError, "target required")
	}

	if *target == caller.ID {
		return 0, errs.New(errs.Conflict, "cannot target self")
	}

	return *target, nil
}

// AllowedWriteFields 返回调用者可以写入的字段集合
func AllowedWriteFields(caller *auth.Identity) map[string]bool {
	allowed := make(map[string]bool, len(baseWritableFields)+len(adminWritableFields))
	for _, field := range baseWritableFields {
		allowed[field] = true
	}
	if caller.IsAdmin {
		for _, field := range adminWritableFields {
			allowed[field] = true
		}
	}
	return allowed
}

// FilterWriteFields 校验写请求的字段集合。
// 严格策略下出现不允许的字段会拒绝整个请求，宽松策略下仅过滤掉
func FilterWriteFields(caller *auth.Identity, body map[string]any, policy Policy) (map[string]any, error) {
	allowed := AllowedWriteFields(caller)

	fields := make(map[string]any, len(body))
	for key, value := range body {
		if !allowed[key] {
			if policy.DropDisallowedFields {
				continue
			}
			return nil, errs.New(errs.Forbidden, fmt.Sprintf("cannot modify field %s", key))
		}
		fields[key] = value
	}

	return fields, nil
}
