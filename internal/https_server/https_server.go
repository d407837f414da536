// Package https_server 提供 HTTP/HTTPS 服务器的初始化和配置
// 负责创建 Gin 引擎实例并配置中间件、静态资源、模板和路由
package https_server

import (
	"fmt"

	"groupies/internal/config"
	"groupies/internal/handler"
	"groupies/internal/infrastructure/logger"
	"groupies/internal/infrastructure/middleware"
	"groupies/internal/router"
	"groupies/web"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Init 创建 Gin 引擎
// 配置顺序：
//  1. 日志、恢复、安全头、指标中间件
//  2. 配置了来源时启用 CORS
//  3. 会话中间件
//  4. 静态资源和 HTML 模板
//  5. 业务路由
func Init(conf *config.Config, handlers *handler.Handlers, sessions middleware.SessionValidator) (*gin.Engine, error) {
	// 创建空白 Gin 引擎（不使用 gin.Default() 以便完全控制中间件）
	engine := gin.New()

	engine.Use(logger.GinLogger())
	engine.Use(logger.GinRecovery(true))
	engine.Use(middleware.SecureHeaders(conf.SecurityConfig, conf.MainConfig.Mode == gin.DebugMode))
	engine.Use(middleware.Metrics())

	if len(conf.SecurityConfig.AllowOrigins) > 0 {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = conf.SecurityConfig.AllowOrigins
		corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
		corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type"}
		corsConfig.AllowCredentials = true
		engine.Use(cors.New(corsConfig))
	}

	engine.Use(middleware.Session(sessions, conf.SessionConfig.CookieName))

	engine.Static("/static", conf.StaticSrcConfig.StaticPath)

	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("解析页面模板失败: %w", err)
	}
	engine.SetHTMLTemplate(tmpl)

	rt := router.NewRouter(handlers)
	rt.RegisterRoutes(engine)

	return engine, nil
}
