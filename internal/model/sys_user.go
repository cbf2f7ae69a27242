package model

import "time"

// SysUser 系统用户
type SysUser struct {
	BaseModel

	Username string `gorm:"size:100;uniqueIndex;not null"`
	Password string `gorm:"size:255;not null" json:"-"` // 哈希密码
	Email    string `gorm:"size:100"`

	// 系统级角色: admin (管理员), user (普通用户)
	Role string `gorm:"size:20;default:'user'"`

	IsActive    bool `gorm:"default:true"`
	LastLoginAt *time.Time
}

func (SysUser) TableName() string {
	return "sys_users"
}

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)
