package repository

import (
	"errors"
	"testing"

	"groupies/internal/model"
	"groupies/pkg/enum/member_status_enum"
	"groupies/pkg/errorx"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestRepos(t *testing.T) *Repositories {
	t.Helper()
	model.PasswordCost = bcrypt.MinCost

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, gdb.AutoMigrate(&model.UserInfo{}, &model.EventInfo{}, &model.GroupMember{}))
	return NewRepositories(gdb)
}

func TestUserRepository(t *testing.T) {
	repos := newTestRepos(t)

	u := &model.UserInfo{Username: "alice", RawPassword: "pw"}
	require.NoError(t, repos.User.Create(u))
	require.NotZero(t, u.ID)

	got, err := repos.User.FindByUsername("alice")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.True(t, got.CheckPassword("pw"))

	byID, err := repos.User.FindByID(u.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)

	_, err = repos.User.FindByUsername("nobody")
	assert.True(t, errorx.IsNotFound(err))

	err = repos.User.Create(&model.UserInfo{Username: "alice", RawPassword: "other"})
	assert.True(t, errorx.IsDuplicate(err), "用户名唯一: %v", err)
}

func TestEventRepository(t *testing.T) {
	repos := newTestRepos(t)

	n, err := repos.Event.Count()
	require.NoError(t, err)
	assert.Zero(t, n)

	first := &model.EventInfo{EventName: "A", MembersNeeded: 7}
	second := &model.EventInfo{EventName: "B", MembersNeeded: 3}
	require.NoError(t, repos.Event.Create(first))
	require.NoError(t, repos.Event.Create(second))

	events, err := repos.Event.FindAll()
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "A", events[0].EventName)
	assert.Equal(t, "B", events[1].EventName)

	locked, err := repos.Event.LockByID(second.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, locked.MembersNeeded)

	_, err = repos.Event.FindByID(999)
	assert.True(t, errorx.IsNotFound(err))
}

func TestGroupMemberRepository(t *testing.T) {
	repos := newTestRepos(t)
	event := &model.EventInfo{EventName: "A", MembersNeeded: 2}
	require.NoError(t, repos.Event.Create(event))
	alice := &model.UserInfo{Username: "alice", RawPassword: "pw"}
	bob := &model.UserInfo{Username: "bob", RawPassword: "pw"}
	require.NoError(t, repos.User.Create(alice))
	require.NoError(t, repos.User.Create(bob))

	require.NoError(t, repos.GroupMember.Create(&model.GroupMember{EventID: event.ID, UserID: alice.ID, Status: member_status_enum.OPEN}))

	ok, err := repos.GroupMember.Exists(event.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = repos.GroupMember.Exists(event.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	err = repos.GroupMember.Create(&model.GroupMember{EventID: event.ID, UserID: alice.ID, Status: member_status_enum.OPEN})
	assert.True(t, errorx.IsDuplicate(err), "同一活动只能报名一次: %v", err)

	require.NoError(t, repos.GroupMember.Create(&model.GroupMember{EventID: event.ID, UserID: bob.ID, Status: member_status_enum.OPEN}))
	open, err := repos.GroupMember.CountByStatus(event.ID, member_status_enum.OPEN)
	require.NoError(t, err)
	assert.EqualValues(t, 2, open)

	affected, err := repos.GroupMember.UpdateStatusByEventID(event.ID, member_status_enum.OPEN, member_status_enum.CLOSED)
	require.NoError(t, err)
	assert.EqualValues(t, 2, affected)

	open, err = repos.GroupMember.CountByStatus(event.ID, member_status_enum.OPEN)
	require.NoError(t, err)
	assert.Zero(t, open)

	members, err := repos.GroupMember.FindMembersWithUserInfo(event.ID)
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, "alice", members[0].Username)
	assert.Equal(t, member_status_enum.CLOSED, members[1].Status)
}

func TestTransactionRollback(t *testing.T) {
	repos := newTestRepos(t)
	boom := errors.New("boom")

	err := repos.Transaction(func(tx *Repositories) error {
		require.NoError(t, tx.Event.Create(&model.EventInfo{EventName: "tmp", MembersNeeded: 7}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	n, err := repos.Event.Count()
	require.NoError(t, err)
	assert.Zero(t, n)
}
