package respond

// UserRespond 用户信息（不含密码）
type UserRespond struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}
