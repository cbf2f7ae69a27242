package model

import "time"

// Subscription 用户订阅（每个用户最多一条）
type Subscription struct {
	BaseModel

	UserID int64  `gorm:"uniqueIndex;not null;comment:用户ID"`
	Plan   string `gorm:"size:32;not null;default:'pro';comment:套餐"`
	Status string `gorm:"size:32;index;not null;comment:状态"`

	CurrentPeriodEnd time.Time `gorm:"index;comment:当前周期结束时间"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}

// ==================== 状态常量 ====================

const (
	SubscriptionActive   = "active"
	SubscriptionTrialing = "trialing"
	SubscriptionPastDue  = "past_due"
	SubscriptionCanceled = "canceled"
	SubscriptionExpired  = "expired"
)

// SubscriptionStatuses 全部合法状态
var SubscriptionStatuses = []string{
	SubscriptionActive,
	SubscriptionTrialing,
	SubscriptionPastDue,
	SubscriptionCanceled,
	SubscriptionExpired,
}

// IsEntitled 订阅有效：active/trialing 且未过期
func (s *Subscription) IsEntitled(now time.Time) bool {
	if s == nil {
		return false
	}
	if s.Status != SubscriptionActive && s.Status != SubscriptionTrialing {
		return false
	}
	return now.Before(s.CurrentPeriodEnd)
}
