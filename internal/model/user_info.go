// Package model 定义数据库实体模型
package model

import (
	"golang.org/x/crypto/bcrypt" // 密码哈希库
	"gorm.io/gorm"
)

// PasswordCost bcrypt 计算成本，测试中可调低
var PasswordCost = bcrypt.DefaultCost

// UserInfo 用户信息模型
// 对应数据库 user_info 表
type UserInfo struct {
	gorm.Model // 内嵌 GORM 模型，包含 ID、CreatedAt、UpdatedAt、DeletedAt

	// Username 登录名，唯一
	Username string `gorm:"column:username;uniqueIndex;type:varchar(50);not null;comment:用户名"`

	// Password bcrypt 哈希，不存储明文
	Password string `gorm:"column:password;type:varchar(100);not null;comment:密码"`

	// RawPassword 明文密码（不存入数据库），在 BeforeSave 中加密
	RawPassword string `gorm:"-" json:"-"`
}

// TableName 指定表名
func (UserInfo) TableName() string {
	return "user_info"
}

// BeforeSave GORM Hook：在创建和更新前把 RawPassword 加密到 Password
func (u *UserInfo) BeforeSave(tx *gorm.DB) error {
	if u.RawPassword == "" {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(u.RawPassword), PasswordCost)
	if err != nil {
		return err
	}
	u.Password = string(hash)
	u.RawPassword = "" // 清空明文，防止泄露
	return nil
}

// CheckPassword 校验密码是否正确
func (u *UserInfo) CheckPassword(plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plaintext)) == nil
}
