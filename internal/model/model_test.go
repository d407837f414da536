package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBeforeSaveHashesPassword(t *testing.T) {
	PasswordCost = bcrypt.MinCost
	u := &UserInfo{Username: "alice", RawPassword: "Secret1"}

	require.NoError(t, u.BeforeSave(nil))

	assert.Empty(t, u.RawPassword)
	assert.NotEqual(t, "Secret1", u.Password)
	assert.True(t, u.CheckPassword("Secret1"))
	assert.False(t, u.CheckPassword("secret1"), "大小写敏感")
	assert.False(t, u.CheckPassword("Secret1 "))
}

func TestBeforeSaveKeepsExistingHash(t *testing.T) {
	u := &UserInfo{Username: "bob", Password: "$2a$04$existing"}

	require.NoError(t, u.BeforeSave(nil))
	assert.Equal(t, "$2a$04$existing", u.Password)
}

func TestTableNames(t *testing.T) {
	assert.Equal(t, "user_info", UserInfo{}.TableName())
	assert.Equal(t, "event_info", EventInfo{}.TableName())
	assert.Equal(t, "group_member", GroupMember{}.TableName())
}
