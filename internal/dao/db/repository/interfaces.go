// Package repository 定义数据访问层接口和聚合结构
// 采用 Repository 模式将数据访问逻辑与业务逻辑分离
// 所有 Repository 接口在此文件定义，具体实现在各自的文件中
package repository

import (
	"groupies/internal/model"

	"gorm.io/gorm"
)

// ==================== Repository 接口定义 ====================

// UserRepository 用户数据访问接口
type UserRepository interface {
	// FindByID 根据主键查找用户
	FindByID(id uint) (*model.UserInfo, error)
	// FindByUsername 根据用户名查找用户
	FindByUsername(username string) (*model.UserInfo, error)
	// Create 创建新用户，用户名冲突返回 CodeDuplicate
	Create(user *model.UserInfo) error
}

// EventRepository 活动数据访问接口
type EventRepository interface {
	// FindAll 按 id 升序返回全部活动
	FindAll() ([]model.EventInfo, error)
	// FindByID 根据主键查找活动
	FindByID(id uint) (*model.EventInfo, error)
	// LockByID 事务内加行锁读取活动（sqlite 忽略锁子句）
	LockByID(id uint) (*model.EventInfo, error)
	// Count 活动总数
	Count() (int64, error)
	// Create 创建活动
	Create(event *model.EventInfo) error
}

// GroupMemberWithUserInfo 报名记录（含用户名）
type GroupMemberWithUserInfo struct {
	UserID   uint   `json:"userId"`
	Username string `json:"username"`
	Status   string `json:"status"`
}

// GroupMemberRepository 报名记录数据访问接口
type GroupMemberRepository interface {
	// CountByStatus 统计活动指定状态的记录数
	CountByStatus(eventID uint, status string) (int64, error)
	// Exists 用户是否报名过该活动（任意状态）
	Exists(eventID, userID uint) (bool, error)
	// FindMembersWithUserInfo 活动报名列表（含用户名），按报名顺序
	FindMembersWithUserInfo(eventID uint) ([]GroupMemberWithUserInfo, error)
	// Create 新增报名记录，重复报名返回 CodeDuplicate
	Create(member *model.GroupMember) error
	// UpdateStatusByEventID 批量修改活动下 from 状态的记录，返回影响行数
	UpdateStatusByEventID(eventID uint, from, to string) (int64, error)
}

// ==================== Repository 聚合 ====================

// Repositories 聚合所有 Repository 实例
// 作为依赖注入的入口，Service 层通过此结构访问数据层
type Repositories struct {
	db          *gorm.DB
	User        UserRepository
	Event       EventRepository
	GroupMember GroupMemberRepository
}

// NewRepositories 创建所有 Repository 实例
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		db:          db,
		User:        NewUserRepository(db),
		Event:       NewEventRepository(db),
		GroupMember: NewGroupMemberRepository(db),
	}
}

// Transaction 在数据库事务中执行函数
// fn 内只能使用 txRepos，sqlite 单连接下混用外层 Repositories 会死锁
func (r *Repositories) Transaction(fn func(txRepos *Repositories) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}
