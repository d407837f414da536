// Package testkit 测试用的内存数据库、缓存和通知桩
package testkit

import (
	"sync"
	"testing"

	"groupies/internal/config"
	"groupies/internal/dao/db"
	"groupies/internal/dao/db/repository"
	myredis "groupies/internal/dao/redis"
	"groupies/internal/model"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// NewDB 迁移好的内存 sqlite
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	model.PasswordCost = bcrypt.MinCost

	gdb, err := db.Open(&config.DatabaseConfig{URL: "sqlite:///:memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(gdb) })
	require.NoError(t, db.Migrate(gdb))
	return gdb
}

// NewRepos 基于内存 sqlite 的 Repositories
func NewRepos(t testing.TB) *repository.Repositories {
	return repository.NewRepositories(NewDB(t))
}

// NewCache 进程内缓存
func NewCache(t testing.TB) *myredis.MemoryCache {
	c := myredis.NewMemoryCache(1, 16)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

// Sender 记录发送的通知
type Sender struct {
	mu   sync.Mutex
	msgs []string
}

func (s *Sender) Send(message string) {
	s.mu.Lock()
	s.msgs = append(s.msgs, message)
	s.mu.Unlock()
}

// Messages 已发送的通知
func (s *Sender) Messages() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.msgs...)
}

// CreateUser 直接写库创建用户
func CreateUser(t testing.TB, repos *repository.Repositories, username string) *model.UserInfo {
	t.Helper()
	u := &model.UserInfo{Username: username, RawPassword: "pw-" + username}
	require.NoError(t, repos.User.Create(u))
	return u
}

// CreateEvent 直接写库创建活动
func CreateEvent(t testing.TB, repos *repository.Repositories, name string, need int) *model.EventInfo {
	t.Helper()
	e := &model.EventInfo{EventName: name, MembersNeeded: need}
	require.NoError(t, repos.Event.Create(e))
	return e
}
