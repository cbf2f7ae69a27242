package dto

import "time"

// SetSubscriptionRequest 设置订阅（管理员）
type SetSubscriptionRequest struct {
	Plan             string    `json:"plan" binding:"required,max=32"`
	Status           string    `json:"status" binding:"required,oneof=active trialing past_due canceled expired"`
	CurrentPeriodEnd time.Time `json:"current_period_end" binding:"required"`
}

// SubscriptionInfo 订阅与额度
type SubscriptionInfo struct {
	UserID           int64      `json:"user_id"`
	Plan             string     `json:"plan,omitempty"`
	Status           string     `json:"status,omitempty"`
	CurrentPeriodEnd *time.Time `json:"current_period_end,omitempty"`
	Entitled         bool       `json:"entitled"`
	TrialRemaining   int        `json:"trial_remaining"`
}
