// Package notify 负责把报名/成团消息推送到外部渠道（Telegram、Kafka）
// 推送尽力而为：失败只记日志和指标，不向调用方返回错误，不重试
package notify

import "context"

// Notifier 单个推送渠道
type Notifier interface {
	// Name 渠道名，用作指标 label
	Name() string
	// Notify 同步推送一条消息
	Notify(ctx context.Context, message string) error
}

// Sender Service 层依赖的发送接口，调用立即返回
type Sender interface {
	Send(message string)
}
