// Package redis 本文件负责创建缓存实例
// 使用 github.com/redis/go-redis/v9 作为底层客户端
package redis

import (
	"context"
	"fmt"
	"time"

	"groupies/internal/config"
	"groupies/pkg/constants"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewClient 根据配置创建 Redis 客户端
func NewClient(conf *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     conf.RedisAddr(),
		Password: conf.RedisConfig.Password,
		DB:       conf.RedisConfig.Db,
		// 连接池配置
		PoolSize:     20,
		MinIdleConns: constants.CACHE_WORKER_NUM, // 与 Worker 数量匹配
	})
}

// New 创建缓存服务
// 未配置 Redis 地址时返回进程内缓存；配置了但连不上直接报错
func New(conf *config.Config) (AsyncCacheService, error) {
	if conf.RedisAddr() == "" {
		zap.L().Info("Redis 未配置，使用进程内缓存")
		return NewMemoryCache(constants.CACHE_WORKER_NUM, constants.CACHE_TASK_BUFFER), nil
	}

	client := NewClient(conf)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("连接 Redis %s 失败: %w", conf.RedisAddr(), err)
	}
	zap.L().Info("Redis 连接成功", zap.String("addr", conf.RedisAddr()))
	return NewRedisCache(client, constants.CACHE_WORKER_NUM, constants.CACHE_TASK_BUFFER), nil
}
