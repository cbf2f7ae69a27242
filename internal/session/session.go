// Package session 单次请求的调用方身份与授权状态
package session

import (
	"fmt"
	"time"
)

// Session 每个请求构建一次，显式传入需要授权判断的服务
type Session struct {
	UserID   int64
	Username string
	Role     string
	// ClientID 匿名客户端标识（X-Client-ID），仅用于本地作品存储
	ClientID string

	Authenticated  bool
	Entitled       bool
	TrialRemaining int
}

// Anonymous 未登录会话
func Anonymous(clientID string) Session {
	return Session{ClientID: clientID}
}

// OwnerKey 作品与调用日志的归属标识
// 登录用户为 user:<id>，匿名客户端为 anon:<clientId>，两者都没有时为空
func (s Session) OwnerKey() string {
	if s.Authenticated {
		return fmt.Sprintf("user:%d", s.UserID)
	}
	if s.ClientID != "" {
		return "anon:" + s.ClientID
	}
	return ""
}

// Entitlement 用户当前的使用资格
type Entitlement struct {
	Entitled       bool       `json:"entitled"`
	TrialRemaining int        `json:"trial_remaining"`
	Plan           string     `json:"plan,omitempty"`
	Status         string     `json:"status,omitempty"`
	PeriodEnd      *time.Time `json:"current_period_end,omitempty"`
}

// Apply 把资格写入会话
func (s *Session) Apply(e Entitlement) {
	s.Entitled = e.Entitled
	s.TrialRemaining = e.TrialRemaining
}
