package request

// EventURIRequest 路径参数 /event/:id、/join/:id
type EventURIRequest struct {
	ID uint `uri:"id" binding:"required"`
}
