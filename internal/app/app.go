// Package app 按依赖顺序组装各层，供 cmd/groupies 的子命令使用
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"groupies/internal/config"
	"groupies/internal/dao/db"
	"groupies/internal/dao/db/repository"
	myredis "groupies/internal/dao/redis"
	"groupies/internal/handler"
	"groupies/internal/https_server"
	"groupies/internal/infrastructure/menu"
	"groupies/internal/infrastructure/notify"
	"groupies/internal/service"
	"groupies/pkg/constants"
	"groupies/pkg/util/jwt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App 运行中的依赖
type App struct {
	Conf     *config.Config
	DB       *gorm.DB
	Cache    myredis.AsyncCacheService
	Notifier *notify.Dispatcher
	Services *service.Services
	Engine   *gin.Engine
}

// SetGinMode dev 视为 debug，未知取值按 release
func SetGinMode(mode string) {
	switch mode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
		gin.SetMode(mode)
	case "dev":
		gin.SetMode(gin.DebugMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}
}

// New 初始化数据库、缓存、通知、Service、Handler 和 Gin 引擎
// 失败时已创建的资源会被释放
func New(conf *config.Config) (a *App, err error) {
	a = &App{Conf: conf}
	defer func() {
		if err != nil {
			a.Close()
			a = nil
		}
	}()

	// 1. 数据库
	if a.DB, err = db.Open(&conf.DatabaseConfig); err != nil {
		return a, err
	}
	if err = db.Migrate(a.DB); err != nil {
		return a, fmt.Errorf("迁移表结构失败: %w", err)
	}
	zap.L().Info("数据库初始化成功")

	// 2. 缓存
	if a.Cache, err = myredis.New(conf); err != nil {
		return a, err
	}

	// 3. 通知
	a.Notifier = notify.FromConfig(conf)

	// 4. Service 层 (依赖注入)
	signer := jwt.NewSigner(conf.SessionConfig.Secret, conf.SessionMaxAge())
	a.Services = service.NewServices(repository.NewRepositories(a.DB), a.Cache, a.Notifier, signer, conf.EventConfig)
	if _, err = a.Services.Event.SeedDefault(); err != nil {
		return a, err
	}

	// 5. Handler 和路由
	if err = handler.InitTrans("en"); err != nil {
		return a, fmt.Errorf("初始化翻译器失败: %w", err)
	}
	handlers := handler.NewHandlers(a.Services, menu.FileLoader(conf.StaticSrcConfig.MenuPath), conf.SessionConfig)
	SetGinMode(conf.MainConfig.Mode)
	if a.Engine, err = https_server.Init(conf, handlers, a.Services.Auth); err != nil {
		return a, err
	}
	return a, nil
}

// Serve 监听直到 ctx 取消，然后在限定时间内优雅关闭
func (a *App) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.Conf.Addr(),
		Handler:           a.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zap.L().Info("服务启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	zap.L().Info("关闭服务器...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.SHUTDOWN_TIMEOUT_SECONDS*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("关闭服务器超时: %w", err)
	}
	return nil
}

// Close 依次等待通知发完、关闭缓存和数据库
func (a *App) Close() {
	if a.Notifier != nil {
		a.Notifier.Close()
	}
	if a.Cache != nil {
		if err := a.Cache.Close(); err != nil {
			zap.L().Error("关闭缓存失败", zap.Error(err))
		}
	}
	if a.DB != nil {
		if err := db.Close(a.DB); err != nil {
			zap.L().Error("关闭数据库失败", zap.Error(err))
		}
	}
	zap.L().Info("服务器已关闭")
}

// Migrate 只建表和写入默认活动
func Migrate(conf *config.Config) error {
	gdb, err := db.Open(&conf.DatabaseConfig)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close(gdb) }()

	if err := db.Migrate(gdb); err != nil {
		return fmt.Errorf("迁移表结构失败: %w", err)
	}

	cache, err := myredis.New(conf)
	if err != nil {
		return err
	}
	defer func() { _ = cache.Close() }()

	svc := service.NewServices(repository.NewRepositories(gdb), cache, notify.NewDispatcher(), jwt.NewSigner(conf.SessionConfig.Secret, conf.SessionMaxAge()), conf.EventConfig)
	created, err := svc.Event.SeedDefault()
	if err != nil {
		return err
	}
	zap.L().Info("迁移完成", zap.Bool("seeded", created))
	return nil
}
