package request

// LoginRequest 登录表单
type LoginRequest struct {
	Username string `form:"username"`
	Password string `form:"password"`
}
