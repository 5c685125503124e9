package models

import "gorm.io/gorm"

type Account struct {
	gorm.Model

	// 基础信息
	Username     string `gorm:"column:username;uniqueIndex"` // 用户名，全局唯一，创建后不可修改
	DisplayName  string `gorm:"column:display_name"`         // 显示名称
	FirstName    string `gorm:"column:first_name"`
	LastName     string `gorm:"column:last_name"`
	EmailAddress string `gorm:"column:email_address"`
	AvatarSrc    string `gorm:"column:avatar_src"` // 头像地址

	// 权限与状态
	IsAdmin bool `gorm:"column:is_admin"` // 是否为管理员：管理员可以操作其他账户
	Locked  bool `gorm:"column:locked"`   // 锁定标记，由认证侧判断是否拒绝登录

	// 登录凭据
	PasswordHash string `gorm:"column:password_hash" json:"-"` // 密码，使用 argon2id 储存，不对外返回
}
