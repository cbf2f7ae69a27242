package database

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Callback 打开连接后、建表前执行（如注册审计回调）
type Callback func(db *gorm.DB) error

// Options 连接配置
type Options struct {
	LogLevel  string // silent | error | warn | info
	Models    []interface{}
	Callbacks []Callback
}

// OpenPostgres 打开远端库
// models: 需要自动建表/迁移的结构体指针
func OpenPostgres(dsn string, opts Options) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(ParseLogLevel(opts.LogLevel)),
	})
	if err != nil {
		return nil, fmt.Errorf("数据库连接失败: %w", err)
	}

	// 获取底层的 sqlDB 对象，用于设置连接池参数
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取底层 SQL DB 失败: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := prepare(db, opts); err != nil {
		return nil, err
	}
	return db, nil
}

// prepare 注册回调并自动建表
func prepare(db *gorm.DB, opts Options) error {
	for _, cb := range opts.Callbacks {
		if err := cb(db); err != nil {
			return fmt.Errorf("注册回调失败: %w", err)
		}
	}
	if len(opts.Models) > 0 {
		if err := db.AutoMigrate(opts.Models...); err != nil {
			return fmt.Errorf("自动建表出错: %w", err)
		}
	}
	return nil
}

// ParseLogLevel GORM 日志级别，未知值按 warn 处理
func ParseLogLevel(s string) logger.LogLevel {
	switch strings.ToLower(s) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}
