package event

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"groupies/internal/config"
	"groupies/internal/dao/db/repository"
	myredis "groupies/internal/dao/redis"
	"groupies/internal/dto/respond"
	"groupies/internal/model"
	"groupies/pkg/constants"
	"groupies/pkg/errorx"
)

// memberReader 详情页需要的报名统计，由 group service 提供
type memberReader interface {
	CountOpenMembers(eventID uint) (int64, error)
	HasJoined(eventID, userID uint) (bool, error)
	IsFinalized(eventID uint) (bool, error)
	Members(eventID uint) ([]respond.MemberRespond, error)
}

// eventService 活动业务逻辑实现
type eventService struct {
	repos   *repository.Repositories
	cache   myredis.AsyncCacheService
	members memberReader
	conf    config.EventConfig
}

// NewEventService 构造函数
func NewEventService(repos *repository.Repositories, cacheService myredis.AsyncCacheService, members memberReader, conf config.EventConfig) *eventService {
	return &eventService{
		repos:   repos,
		cache:   cacheService,
		members: members,
		conf:    conf,
	}
}

func toRespond(e *model.EventInfo) respond.EventRespond {
	return respond.EventRespond{ID: e.ID, EventName: e.EventName, MembersNeeded: e.MembersNeeded}
}

// ListEvents 全部活动，按创建顺序
func (s *eventService) ListEvents() ([]respond.EventRespond, error) {
	ctx, cancel := context.WithTimeout(context.Background(), constants.CACHE_TIMEOUT_SECONDS*time.Second)
	defer cancel()

	// 1. 尝试从缓存获取
	rspString, err := s.cache.Get(ctx, myredis.EventListKey)
	if err == nil && rspString != "" {
		var list []respond.EventRespond
		if err := json.Unmarshal([]byte(rspString), &list); err == nil {
			return list, nil
		}
		zap.L().Error("Unmarshal event list cache error", zap.Error(err))
	} else if err != nil {
		zap.L().Error("cache get error", zap.Error(err))
	}

	// 2. 缓存未命中 -> 查询数据库
	events, err := s.repos.Event.FindAll()
	if err != nil {
		zap.L().Error("Find events from DB error", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	list := make([]respond.EventRespond, 0, len(events))
	for i := range events {
		list = append(list, toRespond(&events[i]))
	}

	// 3. 回写缓存
	if data, err := json.Marshal(list); err == nil {
		if err := s.cache.Set(ctx, myredis.EventListKey, string(data), constants.EVENT_LIST_TTL_SECONDS*time.Second); err != nil {
			zap.L().Warn("cache set event list error", zap.Error(err))
		}
	}
	return list, nil
}

// GetEvent 不存在返回 CodeNotFound
func (s *eventService) GetEvent(id uint) (*respond.EventRespond, error) {
	event, err := s.repos.Event.FindByID(id)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, err
		}
		zap.L().Error("Find event error", zap.Uint("event_id", id), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	rsp := toRespond(event)
	return &rsp, nil
}

// EventDetail 活动详情，viewerID 为 0 表示未登录
func (s *eventService) EventDetail(id, viewerID uint) (*respond.EventDetailRespond, error) {
	event, err := s.GetEvent(id)
	if err != nil {
		return nil, err
	}

	open, err := s.members.CountOpenMembers(id)
	if err != nil {
		return nil, err
	}
	finalized, err := s.members.IsFinalized(id)
	if err != nil {
		return nil, err
	}
	members, err := s.members.Members(id)
	if err != nil {
		return nil, err
	}

	rsp := &respond.EventDetailRespond{
		EventRespond: *event,
		OpenMembers:  open,
		Finalized:    finalized,
		Members:      members,
	}
	if !finalized && int64(event.MembersNeeded) > open {
		rsp.Remaining = int64(event.MembersNeeded) - open
	}
	if viewerID != 0 {
		if rsp.Joined, err = s.members.HasJoined(id, viewerID); err != nil {
			return nil, err
		}
	}
	return rsp, nil
}

// SeedDefault 活动表为空时写入默认活动，返回是否新建
func (s *eventService) SeedDefault() (bool, error) {
	created := false
	err := s.repos.Transaction(func(txRepos *repository.Repositories) error {
		n, err := txRepos.Event.Count()
		if err != nil || n > 0 {
			return err
		}
		created = true
		return txRepos.Event.Create(&model.EventInfo{
			EventName:     s.conf.DefaultName,
			MembersNeeded: s.conf.MembersNeeded,
		})
	})
	if err != nil {
		zap.L().Error("写入默认活动失败", zap.Error(err))
		return false, errorx.ErrServerBusy
	}
	if created {
		zap.L().Info("已创建默认活动", zap.String("name", s.conf.DefaultName), zap.Int("members_needed", s.conf.MembersNeeded))
		s.resetCache()
	}
	return created, nil
}

// resetCache 活动表重建后清掉列表和所有计数缓存
// 数据库被清空而 redis 还在时，新活动会复用旧 id，残留计数不能再用
func (s *eventService) resetCache() {
	ctx, cancel := context.WithTimeout(context.Background(), constants.CACHE_TIMEOUT_SECONDS*time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx, myredis.EventListKey); err != nil {
		zap.L().Warn("删除活动列表缓存失败", zap.Error(err))
	}
	if err := s.cache.DeleteByPattern(ctx, myredis.EventOpenCountPattern); err != nil {
		zap.L().Warn("清理待成团人数缓存失败", zap.String("pattern", myredis.EventOpenCountPattern), zap.Error(err))
	}
}
