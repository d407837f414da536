package group

import (
	"context"
	"errors"
	"strconv"
	"time"

	"go.uber.org/zap"

	"groupies/internal/dao/db/repository"
	myredis "groupies/internal/dao/redis"
	"groupies/internal/dto/respond"
	"groupies/internal/infrastructure/metrics"
	"groupies/internal/infrastructure/notify"
	"groupies/internal/model"
	"groupies/pkg/constants"
	"groupies/pkg/enum/join_outcome_enum"
	"groupies/pkg/enum/member_status_enum"
	"groupies/pkg/errorx"
)

// errDuplicateJoin 事务内唯一索引冲突，回滚后按已报名处理
var errDuplicateJoin = errors.New("duplicate join")

// groupService 报名业务逻辑实现
// 通过构造函数注入 Repository、Cache 和通知依赖
type groupService struct {
	repos  *repository.Repositories
	cache  myredis.AsyncCacheService
	sender notify.Sender
	locks  *eventLocks
}

// NewGroupService 构造函数，注入所有依赖
func NewGroupService(repos *repository.Repositories, cacheService myredis.AsyncCacheService, sender notify.Sender) *groupService {
	return &groupService{
		repos:  repos,
		cache:  cacheService,
		sender: sender,
		locks:  newEventLocks(),
	}
}

func cacheCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), constants.CACHE_TIMEOUT_SECONDS*time.Second)
}

// CountOpenMembers 活动当前待成团人数，优先读缓存
func (g *groupService) CountOpenMembers(eventID uint) (int64, error) {
	key := myredis.EventOpenCountKey(eventID)
	ctx, cancel := cacheCtx()
	defer cancel()

	if v, err := g.cache.Get(ctx, key); err != nil {
		zap.L().Warn("读取待成团人数缓存失败", zap.Uint("event_id", eventID), zap.Error(err))
	} else if v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n, nil
		}
	}

	// 回源和回写与 Join 的删缓存互斥，避免旧计数在删除之后才写进缓存
	unlock := g.locks.Lock(eventID)
	defer unlock()
	n, err := g.repos.GroupMember.CountByStatus(eventID, member_status_enum.OPEN)
	if err != nil {
		zap.L().Error("统计待成团人数失败", zap.Error(err))
		return 0, errorx.ErrServerBusy
	}
	if err := g.cache.Set(ctx, key, strconv.FormatInt(n, 10), constants.OPEN_COUNT_TTL_SECONDS*time.Second); err != nil {
		zap.L().Warn("写入待成团人数缓存失败", zap.Error(err))
	}
	return n, nil
}

// HasJoined 用户是否报名过（任意状态）
func (g *groupService) HasJoined(eventID, userID uint) (bool, error) {
	ok, err := g.repos.GroupMember.Exists(eventID, userID)
	if err != nil {
		zap.L().Error("查询报名记录失败", zap.Error(err))
		return false, errorx.ErrServerBusy
	}
	return ok, nil
}

// CountClosedMembers 已成团人数
func (g *groupService) CountClosedMembers(eventID uint) (int64, error) {
	n, err := g.repos.GroupMember.CountByStatus(eventID, member_status_enum.CLOSED)
	if err != nil {
		zap.L().Error("统计已成团人数失败", zap.Error(err))
		return 0, errorx.ErrServerBusy
	}
	return n, nil
}

// IsFinalized 活动是否已成团（存在 closed 记录）
func (g *groupService) IsFinalized(eventID uint) (bool, error) {
	n, err := g.CountClosedMembers(eventID)
	return n > 0, err
}

// Members 报名列表
func (g *groupService) Members(eventID uint) ([]respond.MemberRespond, error) {
	rows, err := g.repos.GroupMember.FindMembersWithUserInfo(eventID)
	if err != nil {
		zap.L().Error("查询报名列表失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	members := make([]respond.MemberRespond, 0, len(rows))
	for _, r := range rows {
		members = append(members, respond.MemberRespond{Username: r.Username, Status: r.Status})
	}
	return members, nil
}

// Join 报名
// 同一活动的报名在进程内串行，且读计数、写入、成团在同一事务内完成
// 成团通知在解锁后异步发送
func (g *groupService) Join(eventID, userID uint) (*respond.JoinRespond, error) {
	unlock := g.locks.Lock(eventID)
	rsp, err := g.joinTx(eventID, userID)
	// 计数变了就在锁内删缓存，CountOpenMembers 回源也持同一把锁
	if err == nil && (rsp.Outcome == join_outcome_enum.JOINED || rsp.Outcome == join_outcome_enum.GROUP_COMPLETED) {
		g.invalidateOpenCount(eventID)
	}
	unlock()

	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.Wrapf(err, errorx.CodeNotFound, "event %d not found", eventID)
		}
		zap.L().Error("报名失败", zap.Uint("event_id", eventID), zap.Uint("user_id", userID), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	metrics.Joins.WithLabelValues(rsp.Outcome).Inc()
	switch rsp.Outcome {
	case join_outcome_enum.GROUP_COMPLETED:
		metrics.GroupsCompleted.Inc()
		g.sender.Send(notify.GroupFullMessage(rsp.EventName, rsp.MembersNeeded))
		zap.L().Info("活动成团", zap.Uint("event_id", eventID), zap.Int("members", rsp.MembersNeeded))
	}
	return rsp, nil
}

func (g *groupService) joinTx(eventID, userID uint) (*respond.JoinRespond, error) {
	rsp := &respond.JoinRespond{EventID: eventID}

	err := g.repos.Transaction(func(txRepos *repository.Repositories) error {
		event, err := txRepos.Event.LockByID(eventID)
		if err != nil {
			return err
		}
		rsp.EventName = event.EventName
		rsp.MembersNeeded = event.MembersNeeded

		joined, err := txRepos.GroupMember.Exists(eventID, userID)
		if err != nil {
			return err
		}
		open, err := txRepos.GroupMember.CountByStatus(eventID, member_status_enum.OPEN)
		if err != nil {
			return err
		}
		rsp.OpenMembers = open
		if joined {
			rsp.Outcome = join_outcome_enum.ALREADY_JOINED
			return nil
		}

		closed, err := txRepos.GroupMember.CountByStatus(eventID, member_status_enum.CLOSED)
		if err != nil {
			return err
		}
		if closed > 0 {
			rsp.Outcome = join_outcome_enum.EVENT_FULL
			rsp.GroupFull = true
			return nil
		}

		need := int64(event.MembersNeeded)
		if open < need {
			member := &model.GroupMember{EventID: eventID, UserID: userID, Status: member_status_enum.OPEN}
			if err := txRepos.GroupMember.Create(member); err != nil {
				if errorx.IsDuplicate(err) {
					return errDuplicateJoin
				}
				return err
			}
			open++
			rsp.OpenMembers = open
		}

		if open >= need {
			if _, err := txRepos.GroupMember.UpdateStatusByEventID(eventID, member_status_enum.OPEN, member_status_enum.CLOSED); err != nil {
				return err
			}
			rsp.Outcome = join_outcome_enum.GROUP_COMPLETED
			rsp.GroupFull = true
			return nil
		}
		rsp.Outcome = join_outcome_enum.JOINED
		return nil
	})

	if errors.Is(err, errDuplicateJoin) {
		rsp.Outcome = join_outcome_enum.ALREADY_JOINED
		return rsp, nil
	}
	if err != nil {
		return nil, err
	}
	return rsp, nil
}

// invalidateOpenCount 同步删除计数缓存，失败再交给异步任务重试一次
// 报名后马上跳转详情页，必须读到新计数
func (g *groupService) invalidateOpenCount(eventID uint) {
	key := myredis.EventOpenCountKey(eventID)
	ctx, cancel := cacheCtx()
	defer cancel()
	if err := g.cache.Delete(ctx, key); err == nil {
		return
	}
	g.cache.SubmitTask(func() {
		ctx, cancel := cacheCtx()
		defer cancel()
		if err := g.cache.Delete(ctx, key); err != nil {
			zap.L().Error("删除待成团人数缓存失败", zap.String("key", key), zap.Error(err))
		}
	})
}
