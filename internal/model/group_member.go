package model

import "gorm.io/gorm"

// GroupMember 活动报名记录
// (event_id, user_id) 唯一，status 为 open 或 closed
type GroupMember struct {
	gorm.Model
	EventID uint   `gorm:"column:event_id;uniqueIndex:idx_event_user;not null;comment:活动ID"`
	UserID  uint   `gorm:"column:user_id;uniqueIndex:idx_event_user;index;not null;comment:用户ID"`
	Status  string `gorm:"column:status;type:varchar(10);index;not null;default:open;comment:open 待成团 closed 已成团"`
}

func (GroupMember) TableName() string {
	return "group_member"
}
