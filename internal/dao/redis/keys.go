package redis

import "fmt"

// 缓存键
const (
	EventListKey          = "event_list"
	eventOpenCountPrefix  = "event_open_count_"
	EventOpenCountPattern = eventOpenCountPrefix + "*"
	sessionPrefix         = "session:"
)

// EventOpenCountKey 活动待成团人数
func EventOpenCountKey(eventID uint) string {
	return fmt.Sprintf("%s%d", eventOpenCountPrefix, eventID)
}

// SessionKey 会话白名单
func SessionKey(tokenID string) string {
	return sessionPrefix + tokenID
}
