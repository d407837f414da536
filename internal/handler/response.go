package handler

import (
	"errors"
	"net/http"

	"groupies/internal/infrastructure/middleware"
	"groupies/pkg/errorx"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Render 渲染页面，附带待展示的提示和登录状态
func Render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	_, loggedIn := middleware.CurrentIdentity(c)
	data["logged_in"] = loggedIn
	data["flashes"] = ConsumeFlashes(c)
	c.HTML(status, name, data)
}

// Redirect 302 跳转
func Redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusFound, location)
}

// NotFound 404 页面
func NotFound(c *gin.Context) {
	Render(c, http.StatusNotFound, "not_found.html", gin.H{"title": "Not found"})
}

// HandleError 通用错误处理方法
// 用户可见的业务错误写入提示并跳转到 back，不存在渲染 404，其余记录日志后渲染 500
// 使用示例：
//
//	if err := svc.DoSomething(); err != nil {
//	    HandleError(c, err, "/signup")
//	    return
//	}
func HandleError(c *gin.Context, err error, back string) {
	var codeErr *errorx.CodeError
	if errors.As(err, &codeErr) {
		switch codeErr.Code {
		case errorx.CodeInvalidParam, errorx.CodeUserExist, errorx.CodeAuthFailed, errorx.CodeEventFull:
			AddFlash(c, FlashError, codeErr.Msg)
			Redirect(c, back)
			return
		case errorx.CodeUnauthorized:
			Redirect(c, "/login")
			return
		case errorx.CodeNotFound:
			NotFound(c)
			return
		}
	}

	zap.L().Error("system error",
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.Error(err),
	)
	Render(c, http.StatusInternalServerError, "error.html", gin.H{
		"title":   "Error",
		"message": errorx.ErrServerBusy.Msg,
	})
}

// HandleParamError 处理表单绑定错误（带 validator 翻译支持）
func HandleParamError(c *gin.Context, err error, back string) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && Trans != nil {
		AddFlash(c, FlashError, joinMessages(RemoveTopStruct(validationErrs.Translate(Trans))))
		Redirect(c, back)
		return
	}

	zap.L().Warn("param bind error", zap.String("path", c.Request.URL.Path), zap.Error(err))
	AddFlash(c, FlashError, errorx.ErrInvalidParam.Msg)
	Redirect(c, back)
}
