package service

import (
	"context"
	"time"

	"adcopy_studio_v1/internal/apperr"
	"adcopy_studio_v1/internal/contract"
	"adcopy_studio_v1/internal/repository"
	"adcopy_studio_v1/internal/session"
)

// ==================== EntitlementService ====================

// EntitlementService 使用资格判定：有效订阅，或仍有免费试用次数
type EntitlementService struct {
	subRepo         repository.SubscriptionRepository
	logRepo         repository.AICallLogRepository
	freeGenerations int
	now             func() time.Time
}

// NewEntitlementService freeGenerations 为每个用户的免费生成次数
func NewEntitlementService(subRepo repository.SubscriptionRepository, logRepo repository.AICallLogRepository, freeGenerations int) *EntitlementService {
	return &EntitlementService{
		subRepo:         subRepo,
		logRepo:         logRepo,
		freeGenerations: freeGenerations,
		now:             time.Now,
	}
}

// Resolve 计算用户当前资格
func (s *EntitlementService) Resolve(ctx context.Context, userID int64) (session.Entitlement, error) {
	var ent session.Entitlement

	sub, err := s.subRepo.GetByUserID(ctx, userID)
	if err != nil {
		return ent, apperr.Persistence("load subscription", err)
	}
	if sub != nil {
		ent.Plan = sub.Plan
		ent.Status = sub.Status
		end := sub.CurrentPeriodEnd
		ent.PeriodEnd = &end
		if sub.IsEntitled(s.now()) {
			ent.Entitled = true
		}
	}

	used, err := s.logRepo.CountSuccessByOwner(ctx, session.Session{UserID: userID, Authenticated: true}.OwnerKey())
	if err != nil {
		return ent, apperr.Persistence("count trial usage", err)
	}
	remaining := s.freeGenerations - int(used)
	if remaining < 0 {
		remaining = 0
	}
	ent.TrialRemaining = remaining
	if remaining > 0 {
		ent.Entitled = true
	}
	return ent, nil
}

// Authorize 唯一的生成准入判断
func (s *EntitlementService) Authorize(sess session.Session) error {
	if !sess.Authenticated {
		return apperr.Unauthenticated("sign in to generate content")
	}
	if !sess.Entitled {
		return apperr.NotEntitled("an active subscription or free trial is required")
	}
	return nil
}

// ==================== GatedGenerator ====================

// GatedGenerator 所有生成请求的统一入口，先授权再编排
type GatedGenerator struct {
	gate *EntitlementService
	next *GenerationService
}

func NewGatedGenerator(gate *EntitlementService, next *GenerationService) *GatedGenerator {
	return &GatedGenerator{gate: gate, next: next}
}

// Generate 未授权时不会构建指令，也不会调用模型
func (g *GatedGenerator) Generate(ctx context.Context, sess session.Session, req contract.Request) (contract.Result, error) {
	if err := g.gate.Authorize(sess); err != nil {
		return nil, err
	}
	return g.next.Generate(ctx, sess.OwnerKey(), req)
}
