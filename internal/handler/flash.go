package handler

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"groupies/pkg/constants"

	"github.com/gin-gonic/gin"
)

// Flash 一次性提示，下一次渲染页面时展示并清除
type Flash struct {
	Category string `json:"category"` // success / error
	Message  string `json:"message"`
}

const (
	FlashSuccess = "success"
	FlashError   = "error"

	pendingFlashKey = "pending_flash"
	flashMaxAge     = 300
)

// AddFlash 追加提示并写入 Cookie
func AddFlash(c *gin.Context, category, message string) {
	var flashes []Flash
	if v, ok := c.Get(pendingFlashKey); ok {
		flashes = v.([]Flash)
	}
	flashes = append(flashes, Flash{Category: category, Message: message})
	c.Set(pendingFlashKey, flashes)

	data, err := json.Marshal(flashes)
	if err != nil {
		return
	}
	setCookie(c, constants.FLASH_COOKIE, base64.RawURLEncoding.EncodeToString(data), flashMaxAge, c.Request.TLS != nil)
}

// ConsumeFlashes 读取并清除提示，解析失败按无提示处理
func ConsumeFlashes(c *gin.Context) []Flash {
	raw, err := c.Cookie(constants.FLASH_COOKIE)
	if err != nil || raw == "" {
		return nil
	}
	setCookie(c, constants.FLASH_COOKIE, "", -1, c.Request.TLS != nil)

	data, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return nil
	}
	var flashes []Flash
	if err := json.Unmarshal(data, &flashes); err != nil {
		return nil
	}
	return flashes
}

func setCookie(c *gin.Context, name, value string, maxAge int, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, maxAge, "/", "", secure, true)
}
