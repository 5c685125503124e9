package config

import "strings"

type Config struct {
	System struct {
		Mode               string `env:"MODE"`                      // 以 p 开头表示生产环境
		Listen             string `env:"LISTEN" envDefault:":1323"` // 监听地址
		DBConnectionString string `env:"DB_CONN,required"`          // Postgres 数据库的连接字符串
	}
	Auth struct {
		// 外部认证服务的地址。缺省时不会启动失败，而是让每个请求以配置错误被拒绝，
		// 避免静默跳过认证
		APIURL string `env:"AUTH_API_URL"`
	}
	Security struct {
		DefaultAdminPassword string `env:"DEFAULT_ADMIN_PASSWORD" envDefault:"password"` // 初始管理员密码
		HashTimeCost         uint32 `env:"HASH_TIME_COST" envDefault:"1"`                // argon2id 迭代次数
	}
	Policy struct {
		// 旧版宽松策略的开关，默认全部关闭（使用最严格的策略）
		OpenRegistration     bool `env:"POLICY_OPEN_REGISTRATION" envDefault:"false"`      // 允许任何人注册账户
		DropDisallowedFields bool `env:"POLICY_DROP_DISALLOWED_FIELDS" envDefault:"false"` // patch 时静默丢弃不允许的字段而不是整体拒绝
		DeleteAdminOnly      bool `env:"POLICY_DELETE_ADMIN_ONLY" envDefault:"false"`      // 删除操作仅限管理员且不能针对自己
	}
}

func (c *Config) IsProd() bool {
	return strings.HasPrefix(strings.ToLower(c.System.Mode), "p")
}
