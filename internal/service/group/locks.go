package group

import "sync"

// eventLocks 按活动 ID 加锁，不同活动的报名互不阻塞
// 引用计数归零时删除条目，map 不会随活动数量增长
type eventLocks struct {
	mu    sync.Mutex
	locks map[uint]*refLock
}

type refLock struct {
	sync.Mutex
	refs int
}

func newEventLocks() *eventLocks {
	return &eventLocks{locks: make(map[uint]*refLock)}
}

// Lock 返回解锁函数
func (l *eventLocks) Lock(eventID uint) (unlock func()) {
	l.mu.Lock()
	lk, ok := l.locks[eventID]
	if !ok {
		lk = &refLock{}
		l.locks[eventID] = lk
	}
	lk.refs++
	l.mu.Unlock()

	lk.Lock()
	return func() {
		lk.Unlock()
		l.mu.Lock()
		lk.refs--
		if lk.refs == 0 {
			delete(l.locks, eventID)
		}
		l.mu.Unlock()
	}
}

func (l *eventLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
