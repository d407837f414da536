package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// kafkaEvent 写入 Kafka 的消息体
type kafkaEvent struct {
	Message string    `json:"message"`
	SentAt  time.Time `json:"sent_at"`
}

// KafkaNotifier 把通知写入 Kafka 主题，供下游消费
type KafkaNotifier struct {
	writer *kafka.Writer
	now    func() time.Time
}

// NewKafkaNotifier brokers 为空时返回 nil
func NewKafkaNotifier(brokers []string, topic string, timeout time.Duration) *KafkaNotifier {
	if len(brokers) == 0 {
		return nil
	}
	return &KafkaNotifier{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			WriteTimeout:           timeout * time.Second,
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
		},
		now: time.Now,
	}
}

func (k *KafkaNotifier) Name() string { return "kafka" }

func (k *KafkaNotifier) Notify(ctx context.Context, message string) error {
	value, err := json.Marshal(kafkaEvent{Message: message, SentAt: k.now().UTC()})
	if err != nil {
		return err
	}
	if err := k.writer.WriteMessages(ctx, kafka.Message{Key: []byte("groupies"), Value: value}); err != nil {
		return fmt.Errorf("写入 kafka topic %s 失败: %w", k.writer.Topic, err)
	}
	return nil
}

// Close 关闭 writer，刷出缓冲的消息
func (k *KafkaNotifier) Close() error {
	return k.writer.Close()
}
