package hash

import (
	"fmt"

	"github.com/alexedwards/argon2id"
)

// Hasher 封装密码哈希原语，迭代次数可配置
type Hasher struct {
	params *argon2id.Params
}

func New(timeCost uint32) *Hasher {
	params := *argon2id.DefaultParams
	if timeCost > 0 {
		params.Iterations = timeCost
	}

	return &Hasher{params: &params}
}

func (h *Hasher) Create(plain string) (string, error) {
	hashed, err := argon2id.CreateHash(plain, h.params)
	if err != nil {
		return "", fmt.Errorf("create hash: %w", err)
	}
	return hashed, nil
}

func (h *Hasher) Check(plain, hashed string) (bool, error) {
	match, _, err := argon2id.CheckHash(plain, hashed)
	if err != nil {
		return false, fmt.Errorf("check hash: %w", err)
	}
	return match, nil
}
