// Package db 负责建立数据库连接和自动迁移表结构
// 根据 DATABASE_URL 的 scheme 选择 sqlite / mysql / postgres 驱动
package db

import (
	"fmt"
	"strings"

	"groupies/internal/config"
	"groupies/internal/model"

	mysqldriver "gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// 支持的数据库方言
const (
	DialectSQLite   = "sqlite"
	DialectMySQL    = "mysql"
	DialectPostgres = "postgres"
)

// ParseURL 将连接串拆成方言和驱动可识别的 DSN
//
//	sqlite:///database.db      -> sqlite, database.db
//	sqlite:////var/data/app.db -> sqlite, /var/data/app.db
//	mysql://u:p@tcp(h:3306)/db -> mysql, u:p@tcp(h:3306)/db
//	postgres://u:p@h:5432/db   -> postgres, 原样
func ParseURL(url string) (dialect string, dsn string, err error) {
	switch {
	case strings.HasPrefix(url, "sqlite://"):
		dsn = strings.TrimPrefix(url, "sqlite://")
		dsn = strings.TrimPrefix(dsn, "/")
		if dsn == "" {
			return "", "", fmt.Errorf("sqlite 连接串缺少文件路径: %q", url)
		}
		return DialectSQLite, dsn, nil
	case strings.HasPrefix(url, "mysql://"):
		dsn = strings.TrimPrefix(url, "mysql://")
		if !strings.Contains(dsn, "parseTime") {
			dsn += joinParam(dsn, "charset=utf8mb4&parseTime=True&loc=Local")
		}
		return DialectMySQL, dsn, nil
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return DialectPostgres, url, nil
	}
	return "", "", fmt.Errorf("不支持的数据库连接串: %q", url)
}

func joinParam(dsn, param string) string {
	if strings.Contains(dsn, "?") {
		return "&" + param
	}
	return "?" + param
}

// Open 建立数据库连接
// sqlite 只允许一个连接，事务在驱动内也是串行的
func Open(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dialect, dsn, err := ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	var dialector gorm.Dialector
	switch dialect {
	case DialectSQLite:
		if !strings.Contains(dsn, "?") {
			dsn += "?_busy_timeout=5000"
		}
		dialector = sqlite.Open(dsn)
	case DialectMySQL:
		dialector = mysqldriver.Open(dsn)
	case DialectPostgres:
		dialector = postgres.Open(dsn)
	}

	logLevel := gormlogger.Silent
	if cfg.LogSQL {
		logLevel = gormlogger.Info
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true, // 唯一约束冲突统一为 gorm.ErrDuplicatedKey
		Logger:         gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败(%s): %w", dialect, err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	if dialect == DialectSQLite {
		sqlDB.SetMaxOpenConns(1)
	} else {
		if cfg.MaxOpenConns > 0 {
			sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		}
		if cfg.MaxIdleConns > 0 {
			sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
		}
	}
	return gdb, nil
}

// Migrate 自动迁移表结构，只建表/加字段，不删除数据
func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&model.UserInfo{},    // 用户表
		&model.EventInfo{},   // 活动表
		&model.GroupMember{}, // 报名表
	)
}

// Close 关闭底层连接
func Close(gdb *gorm.DB) error {
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
