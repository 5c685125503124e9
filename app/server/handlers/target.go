package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"strconv"

	"github.com/labstack/echo/v4"

	"user-directory/app/server/auth"
	"user-directory/app/server/constants"
	"user-directory/app/server/errs"
)

// identity 取出认证中间件放进 context 的调用者身份
func (a *App) identity(c echo.Context) (*auth.Identity, error) {
	identity, ok := c.Get(constants.ContextKeyIdentity).(*auth.Identity)
	if !ok {
		return nil, errs.New(errs.MissingCredential, "missing identity")
	}
	return identity, nil
}

// targetID 按固定顺序解析目标账户：请求体 user_id → 查询参数 user_id → 查询参数 id
// → 路径参数。都没有时返回 nil（表示调用者自己），"self" 是显式指向自己的哨兵值
func (a *App) targetID(c echo.Context, body map[string]any) (*uint, error) {
	var raw string

	if body != nil {
		if value, ok := body["user_id"]; ok {
			switch v := value.(type) {
			case string:
				raw = v
			case float64:
				raw = strconv.FormatFloat(v, 'f', -1, 64)
			default:
				return nil, errs.New(errs.ValidationError, "invalid user_id")
			}
		}
	}

	if raw == "" {
		raw = c.QueryParam("user_id")
	}
	if raw == "" {
		raw = c.QueryParam("id")
	}
	if raw == "" {
		raw = c.Param("user_id")
	}

	if raw == "" || raw == "self" {
		return nil, nil
	}

	idUint64, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, errs.New(errs.ValidationError, "invalid account id")
	}

	id := uint(idUint64)
	return &id, nil
}

// decodeOptionalBody 解析可有可无的 JSON 请求体：没有请求体时返回 nil，
// 有请求体但不是合法 JSON 时报错，而不是静默丢弃后落回默认目标
func decodeOptionalBody(c echo.Context) (map[string]any, error) {
	if c.Request().Body == nil {
		return nil, nil
	}

	var body map[string]any
	if err := json.NewDecoder(c.Request().Body).Decode(&body); err != nil {
		if errors.Is(err, io.EOF) {
			// 空请求体
			return nil, nil
		}
		return nil, errs.New(errs.ValidationError, "invalid request body")
	}

	return body, nil
}
