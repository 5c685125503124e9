package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"user-directory/app/server/errs"
	"user-directory/app/server/models"
)

// 对外返回的账户表示，不包含密码哈希
type AccountInfo struct {
	Id           uint   `json:"id"`
	Username     string `json:"username"`
	DisplayName  string `json:"display_name"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	EmailAddress string `json:"email_address"`
	AvatarSrc    string `json:"avatar_src"`
	IsAdmin      bool   `json:"isAdmin"`
	Locked       bool   `json:"locked"`
}

func accountInfo(account *models.Account) *AccountInfo {
	return &AccountInfo{
		Id:           account.ID,
		Username:     account.Username,
		DisplayName:  account.DisplayName,
		FirstName:    account.FirstName,
		LastName:     account.LastName,
		EmailAddress: account.EmailAddress,
		AvatarSrc:    account.AvatarSrc,
		IsAdmin:      account.IsAdmin,
		Locked:       account.Locked,
	}
}

func (a *App) UserCreate(c echo.Context) error {
	// 抓取调用者身份（认证）
	identity, err := a.identity(c)
	if err != nil {
		return a.er(c, err)
	}

	rctx := c.Request().Context()

	// 绑定请求体
	var req struct {
		User *struct {
			Properties map[string]any `json:"properties"`
		} `json:"user"`
	}
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind request", zap.Error(err))
		return a.er(c, errs.New(errs.ValidationError, "invalid request body"))
	}
	if req.User == nil {
		return a.er(c, errs.New(errs.ValidationError, "user missing from body"))
	}
	if req.User.Properties == nil {
		return a.er(c, errs.New(errs.ValidationError, "user properties missing from user"))
	}

	// 创建账户
	account, err := a.svc.Create(rctx, identity, req.User.Properties)
	if err != nil {
		a.l.Error("failed to create account", zap.Error(err))
		return a.er(c, err)
	}

	return c.JSON(http.StatusCreated, accountInfo(account))
}

func (a *App) UserGet(c echo.Context) error {
	// 抓取调用者身份（认证）
	identity, err := a.identity(c)
	if err != nil {
		return a.er(c, err)
	}

	rctx := c.Request().Context()

	// 解析目标账户
	target, err := a.targetID(c, nil)
	if err != nil {
		return a.er(c, err)
	}

	// 读取账户
	account, err := a.svc.Get(rctx, identity, target)
	if err != nil {
		a.l.Error("failed to get account", zap.Error(err))
		return a.er(c, err)
	}

	return c.JSON(http.StatusOK, accountInfo(account))
}

func (a *App) UserList(c echo.Context) error {
	// 抓取调用者身份（认证）
	identity, err := a.identity(c)
	if err != nil {
		return a.er(c, err)
	}

	rctx := c.Request().Context()

	accounts, err := a.svc.List(rctx, identity)
	if err != nil {
		a.l.Error("failed to get account list", zap.Error(err))
		return a.er(c, err)
	}

	resAccounts := []*AccountInfo{}
	for i := range accounts {
		resAccounts = append(resAccounts, accountInfo(&accounts[i]))
	}

	return c.JSON(http.StatusOK, resAccounts)
}

func (a *App) UserPatch(c echo.Context) error {
	// 抓取调用者身份（认证）
	identity, err := a.identity(c)
	if err != nil {
		return a.er(c, err)
	}

	rctx := c.Request().Context()

	// 绑定请求体
	var body map[string]any
	if err := json.NewDecoder(c.Request().Body).Decode(&body); err != nil {
		a.l.Error("failed to bind request", zap.Error(err))
		return a.er(c, errs.New(errs.ValidationError, "invalid request body"))
	}

	// 解析目标账户，user_id 是寻址字段而不是写入字段，解析后从补丁内容里剔除
	target, err := a.targetID(c, body)
	if err != nil {
		return a.er(c, err)
	}
	delete(body, "user_id")

	// 更新账户
	account, err := a.svc.Patch(rctx, identity, target, body)
	if err != nil {
		a.l.Error("failed to patch account", zap.Error(err))
		return a.er(c, err)
	}

	return c.JSON(http.StatusOK, accountInfo(account))
}

func (a *App) UserPasswordUpdate(c echo.Context) error {
	// 抓取调用者身份（认证）
	identity, err := a.identity(c)
	if err != nil {
		return a.er(c, err)
	}

	rctx := c.Request().Context()

	// 绑定请求体
	var body map[string]any
	if err := json.NewDecoder(c.Request().Body).Decode(&body); err != nil {
		a.l.Error("failed to bind request", zap.Error(err))
		return a.er(c, errs.New(errs.ValidationError, "invalid request body"))
	}

	// 解析目标账户
	target, err := a.targetID(c, body)
	if err != nil {
		return a.er(c, err)
	}

	newPassword, _ := body["new_password"].(string)

	// 更新密码
	account, err := a.svc.UpdatePassword(rctx, identity, target, newPassword)
	if err != nil {
		a.l.Error("failed to update password", zap.Error(err))
		return a.er(c, err)
	}

	return c.JSON(http.StatusOK, accountInfo(account))
}

func (a *App) UserDelete(c echo.Context) error {
	// 抓取调用者身份（认证）
	identity, err := a.identity(c)
	if err != nil {
		return a.er(c, err)
	}

	rctx := c.Request().Context()

	// 请求体可选，但给了就必须是合法 JSON
	body, err := decodeOptionalBody(c)
	if err != nil {
		a.l.Error("failed to bind request", zap.Error(err))
		return a.er(c, err)
	}

	// 解析目标账户
	target, err := a.targetID(c, body)
	if err != nil {
		return a.er(c, err)
	}

	// 删除账户
	if err := a.svc.Delete(rctx, identity, target); err != nil {
		a.l.Error("failed to delete account", zap.Error(err))
		return a.er(c, err)
	}

	return c.String(http.StatusOK, "account deleted successfully")
}
