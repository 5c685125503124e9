package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"user-directory/app/server/errs"
)

// Identity 是外部认证服务确认过的调用者身份，每个请求解析一次，不持久化
type Identity struct {
	ID      uint
	IsAdmin bool
}

// Validator 把 bearer token 转发给外部认证服务进行校验。
// 不做缓存和重试，每个请求都付出一次网络往返，需要缓存的调用方自行在外层实现
type Validator struct {
	apiURL string
	client *http.Client
}

func NewValidator(apiURL string) *Validator {
	return &Validator{
		apiURL: apiURL,
		client: http.DefaultClient,
	}
}

// 认证服务的响应，有的部署把身份包在 user 字段里
type identityPayload struct {
	ID      *uint `json:"id"`
	IsAdmin bool  `json:"isAdmin"`
	User    *struct {
		ID      *uint `json:"id"`
		IsAdmin bool  `json:"isAdmin"`
	} `json:"user"`
}

func (v *Validator) Validate(ctx context.Context, authHeader string) (*Identity, error) {
	// 地址未配置时直接拒绝，绝不静默跳过认证
	if v.apiURL == "" {
		return nil, errs.New(errs.ConfigError, "authentication api url not set")
	}

	// 提取 token
	if authHeader == "" {
		return nil, errs.New(errs.MissingCredential, "missing auth token")
	}

	splits := strings.Split(authHeader, " ")
	if len(splits) != 2 {
		return nil, errs.New(errs.MissingCredential, "invalid authorization header")
	}

	if strings.ToLower(splits[0]) != "bearer" {
		return nil, errs.New(errs.MissingCredential, fmt.Sprintf("unknown auth method: %s", splits[0]))
	}

	if splits[1] == "" {
		return nil, errs.New(errs.MissingCredential, "token not present in authorization header")
	}

	// 转发给认证服务校验
	reqBody, err := json.Marshal(map[string]string{"jwt": splits[1]})
	if err != nil {
		return nil, errs.Wrap(errs.TokenInvalid, "error encoding token", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.apiURL, bytes.NewReader(reqBody))
	if err != nil {
		return nil, errs.Wrap(errs.TokenInvalid, "error building authentication request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := v.client.Do(req)
	if err != nil {
		return nil, errs.Wrap(errs.TokenInvalid, "error authenticating", err)
	}
	defer res.Body.Close()

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		detail, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return nil, errs.New(errs.TokenInvalid,
			fmt.Sprintf("authentication service returned %d: %s", res.StatusCode, strings.TrimSpace(string(detail))))
	}

	// 解析身份
	var payload identityPayload
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, errs.Wrap(errs.TokenInvalid, "invalid identity response", err)
	}

	if payload.User != nil {
		payload.ID = payload.User.ID
		payload.IsAdmin = payload.User.IsAdmin
	}
	if payload.ID == nil {
		return nil, errs.New(errs.TokenInvalid, "identity response missing id")
	}

	return &Identity{
		ID:      *payload.ID,
		IsAdmin: payload.IsAdmin,
	}, nil
}
