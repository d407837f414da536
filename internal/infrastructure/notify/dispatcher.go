package notify

import (
	"context"
	"io"
	"time"

	"groupies/internal/config"
	"groupies/internal/infrastructure/metrics"
	"groupies/pkg/constants"
	"groupies/pkg/util/workerpool"

	"go.uber.org/zap"
)

// Dispatcher 把消息异步扇出到所有渠道
// 没有配置任何渠道时 Send 为空操作
type Dispatcher struct {
	sinks   []Notifier
	pool    *workerpool.Pool
	timeout time.Duration
}

// NewDispatcher 创建 Dispatcher
func NewDispatcher(sinks ...Notifier) *Dispatcher {
	d := &Dispatcher{
		sinks:   sinks,
		timeout: constants.NOTIFY_TIMEOUT_SECONDS * time.Second,
	}
	if len(d.sinks) > 0 {
		d.pool = workerpool.New("notify", constants.NOTIFY_WORKER_NUM, constants.NOTIFY_CHANNEL_SIZE)
	}
	return d
}

// FromConfig 按配置组装渠道，未配置的渠道不加入
func FromConfig(conf *config.Config) *Dispatcher {
	var sinks []Notifier
	if tg := NewTelegramNotifier(&conf.TelegramConfig); tg != nil {
		sinks = append(sinks, tg)
	}
	if kn := NewKafkaNotifier(conf.KafkaBrokers(), conf.KafkaConfig.NotifyTopic, conf.KafkaConfig.Timeout); kn != nil {
		sinks = append(sinks, kn)
	}
	names := make([]string, 0, len(sinks))
	for _, s := range sinks {
		names = append(names, s.Name())
	}
	zap.L().Info("通知渠道", zap.Strings("sinks", names))
	return NewDispatcher(sinks...)
}

// Enabled 是否配置了任何渠道
func (d *Dispatcher) Enabled() bool {
	return len(d.sinks) > 0
}

// Send 立即返回，投递在 Worker 中完成
func (d *Dispatcher) Send(message string) {
	if !d.Enabled() {
		return
	}
	d.pool.Submit(func() { d.deliver(message) })
}

func (d *Dispatcher) deliver(message string) {
	for _, sink := range d.sinks {
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		err := sink.Notify(ctx, message)
		cancel()

		metrics.NotificationResult(sink.Name(), err)
		if err != nil {
			zap.L().Warn("通知发送失败", zap.String("sink", sink.Name()), zap.Error(err))
		}
	}
}

// Close 等待排队中的通知发送完毕，再关闭渠道
func (d *Dispatcher) Close() {
	if d.pool != nil {
		d.pool.Close()
	}
	for _, sink := range d.sinks {
		if c, ok := sink.(io.Closer); ok {
			if err := c.Close(); err != nil {
				zap.L().Error("关闭通知渠道失败", zap.String("sink", sink.Name()), zap.Error(err))
			}
		}
	}
}

var _ Sender = (*Dispatcher)(nil)
