package model

import "gorm.io/gorm"

// EventInfo 活动信息，对应 event_info 表
type EventInfo struct {
	gorm.Model
	EventName     string `gorm:"column:event_name;type:varchar(100);not null;comment:活动名称"`
	MembersNeeded int    `gorm:"column:members_needed;not null;default:7;comment:成团人数"`
}

func (EventInfo) TableName() string {
	return "event_info"
}
