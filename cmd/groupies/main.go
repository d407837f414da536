package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"groupies/internal/app"
	"groupies/internal/config"
	"groupies/internal/infrastructure/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// version 构建时通过 -ldflags "-X main.version=..." 注入
var version = "dev"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "groupies",
		Short:         "Groupies - fill a group of 7 for the buffet",
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(configPath)
		},
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default: configs/config_local.toml, configs/config.toml)")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(configPath)
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Create tables and seed the default event, then exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := setup(configPath)
			if err != nil {
				return err
			}
			defer func() { _ = zap.L().Sync() }()
			return app.Migrate(conf)
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "groupies", version)
		},
	})
	return root
}

// setup 加载配置并初始化日志
func setup(configPath string) (*config.Config, error) {
	var paths []string
	if configPath != "" {
		paths = []string{configPath}
	}
	// 1. 加载配置
	conf, err := config.Load(paths...)
	if err != nil {
		return nil, err
	}

	// 2. 初始化日志
	if err := logger.Init(&conf.LogConfig, conf.MainConfig.Mode); err != nil {
		log.Printf("init logger failed: %v", err)
		return nil, err
	}
	zap.L().Info("日志初始化成功", zap.String("config", conf.Source))
	if conf.SessionConfig.SecretGenerated {
		zap.L().Warn("未配置 SECRET_KEY，已生成随机密钥，重启后会话失效")
	}
	return conf, nil
}

func runServe(configPath string) error {
	conf, err := setup(configPath)
	if err != nil {
		return err
	}
	defer func() { _ = zap.L().Sync() }()

	a, err := app.New(conf)
	if err != nil {
		zap.L().Error("初始化失败", zap.Error(err))
		return err
	}
	defer a.Close()

	// 设置信号监听
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := a.Serve(ctx); err != nil {
		zap.L().Error("server running fault", zap.Error(err))
		return err
	}
	return nil
}
