package constants

const (
	// 受保护的管理员账户，任何人（包括管理员）不可删除
	ProtectedUsername = "admin"

	// 初始管理员账户的显示名称
	BootstrapDisplayName = "Administrator"

	// 账户列表单次返回的上限
	AccountListLimit = 100
)

const (
	// 存进请求 context 的身份信息键
	ContextKeyIdentity = "identity"
)
