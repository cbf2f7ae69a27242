package service

import (
	"context"

	"go.uber.org/zap"

	"adcopy_studio_v1/internal/api/dto"
	"adcopy_studio_v1/internal/apperr"
	"adcopy_studio_v1/internal/model"
	"adcopy_studio_v1/internal/repository"
	"adcopy_studio_v1/internal/session"
)

// SubscriptionService 订阅查询与管理
// 线上由支付回调写入，这里只提供管理员手动设置
type SubscriptionService struct {
	subRepo     repository.SubscriptionRepository
	userRepo    repository.UserRepository
	entitlement *EntitlementService
	logger      *zap.Logger
}

func NewSubscriptionService(subRepo repository.SubscriptionRepository, userRepo repository.UserRepository, entitlement *EntitlementService, logger *zap.Logger) *SubscriptionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubscriptionService{subRepo: subRepo, userRepo: userRepo, entitlement: entitlement, logger: logger}
}

// Get 当前用户订阅与剩余试用次数
func (s *SubscriptionService) Get(ctx context.Context, userID int64) (*dto.SubscriptionInfo, error) {
	ent, err := s.entitlement.Resolve(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toSubscriptionInfo(userID, ent), nil
}

// Set 管理员设置用户订阅
func (s *SubscriptionService) Set(ctx context.Context, userID int64, req *dto.SetSubscriptionRequest) (*dto.SubscriptionInfo, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, apperr.Persistence("load user", err)
	}
	if user == nil {
		return nil, apperr.NotFound("user not found")
	}

	sub := &model.Subscription{
		UserID:           userID,
		Plan:             req.Plan,
		Status:           req.Status,
		CurrentPeriodEnd: req.CurrentPeriodEnd,
	}
	if err := s.subRepo.Upsert(ctx, sub); err != nil {
		return nil, apperr.Persistence("save subscription", err)
	}

	s.logger.Info("subscription updated",
		zap.Int64("user_id", userID),
		zap.String("plan", req.Plan),
		zap.String("status", req.Status),
	)
	return s.Get(ctx, userID)
}

func toSubscriptionInfo(userID int64, ent session.Entitlement) *dto.SubscriptionInfo {
	return &dto.SubscriptionInfo{
		UserID:           userID,
		Plan:             ent.Plan,
		Status:           ent.Status,
		CurrentPeriodEnd: ent.PeriodEnd,
		Entitled:         ent.Entitled,
		TrialRemaining:   ent.TrialRemaining,
	}
}
