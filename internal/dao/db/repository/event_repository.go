package repository

import (
	"groupies/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type eventRepository struct {
	db *gorm.DB
}

// NewEventRepository 创建活动 Repository
func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) FindAll() ([]model.EventInfo, error) {
	var events []model.EventInfo
	if err := r.db.Order("id ASC").Find(&events).Error; err != nil {
		return nil, wrapDBError(err, "查询活动列表")
	}
	return events, nil
}

func (r *eventRepository) FindByID(id uint) (*model.EventInfo, error) {
	var event model.EventInfo
	if err := r.db.First(&event, id).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询活动 id=%d", id)
	}
	return &event, nil
}

// LockByID SELECT ... FOR UPDATE，mysql/postgres 下跨进程串行化同一活动的报名
func (r *eventRepository) LockByID(id uint) (*model.EventInfo, error) {
	var event model.EventInfo
	if err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&event, id).Error; err != nil {
		return nil, wrapDBErrorf(err, "锁定活动 id=%d", id)
	}
	return &event, nil
}

func (r *eventRepository) Count() (int64, error) {
	var n int64
	if err := r.db.Model(&model.EventInfo{}).Count(&n).Error; err != nil {
		return 0, wrapDBError(err, "统计活动数")
	}
	return n, nil
}

func (r *eventRepository) Create(event *model.EventInfo) error {
	if err := r.db.Create(event).Error; err != nil {
		return wrapDBErrorf(err, "创建活动 name=%s", event.EventName)
	}
	return nil
}
