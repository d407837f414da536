package request

// SignupRequest 注册表单
// 空值和首尾空白由 Service 层处理，这里只限制长度
type SignupRequest struct {
	Username string `form:"username" binding:"max=50"`
	Password string `form:"password" binding:"max=72"` // bcrypt 只接受 72 字节以内
}
