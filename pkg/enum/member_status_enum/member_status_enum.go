// Package member_status_enum 定义群成员记录的状态
// open --(活动人数达标)--> closed，closed 为终态
package member_status_enum

const (
	OPEN   = "open"   // 名额仍计入待成团人数
	CLOSED = "closed" // 已成团
)
