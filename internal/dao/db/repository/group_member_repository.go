// Package repository 提供数据访问层的具体实现
// 本文件实现 GroupMemberRepository 接口，处理活动报名的数据库操作
package repository

import (
	"groupies/internal/model"

	"gorm.io/gorm"
)

// groupMemberRepository GroupMemberRepository 接口的实现
type groupMemberRepository struct {
	db *gorm.DB
}

// NewGroupMemberRepository 创建 GroupMemberRepository 实例
func NewGroupMemberRepository(db *gorm.DB) GroupMemberRepository {
	return &groupMemberRepository{db: db}
}

// CountByStatus 统计活动下某状态的报名数
func (r *groupMemberRepository) CountByStatus(eventID uint, status string) (int64, error) {
	var n int64
	if err := r.db.Model(&model.GroupMember{}).
		Where("event_id = ? AND status = ?", eventID, status).
		Count(&n).Error; err != nil {
		return 0, wrapDBErrorf(err, "统计报名 event_id=%d status=%s", eventID, status)
	}
	return n, nil
}

// Exists 检查用户是否已报名
func (r *groupMemberRepository) Exists(eventID, userID uint) (bool, error) {
	var n int64
	if err := r.db.Model(&model.GroupMember{}).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Limit(1).Count(&n).Error; err != nil {
		return false, wrapDBErrorf(err, "查询报名 event_id=%d user_id=%d", eventID, userID)
	}
	return n > 0, nil
}

// FindMembersWithUserInfo 查询报名列表（包含用户名）
// 通过 JOIN 关联 user_info 表
func (r *groupMemberRepository) FindMembersWithUserInfo(eventID uint) ([]GroupMemberWithUserInfo, error) {
	var members []GroupMemberWithUserInfo
	if err := r.db.Table("group_member").
		Select("group_member.user_id, user_info.username, group_member.status").
		Joins("LEFT JOIN user_info ON group_member.user_id = user_info.id").
		Where("group_member.event_id = ? AND group_member.deleted_at IS NULL", eventID).
		Order("group_member.id ASC").
		Scan(&members).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询报名详情 event_id=%d", eventID)
	}
	return members, nil
}

// Create 新增报名记录
func (r *groupMemberRepository) Create(member *model.GroupMember) error {
	if err := r.db.Create(member).Error; err != nil {
		return wrapDBErrorf(err, "创建报名 event_id=%d user_id=%d", member.EventID, member.UserID)
	}
	return nil
}

// UpdateStatusByEventID 批量更新报名状态（成团时 open -> closed）
func (r *groupMemberRepository) UpdateStatusByEventID(eventID uint, from, to string) (int64, error) {
	result := r.db.Model(&model.GroupMember{}).
		Where("event_id = ? AND status = ?", eventID, from).
		Update("status", to)
	if result.Error != nil {
		return 0, wrapDBErrorf(result.Error, "更新报名状态 event_id=%d %s->%s", eventID, from, to)
	}
	return result.RowsAffected, nil
}
