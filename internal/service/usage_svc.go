package service

import (
	"context"
	"time"

	"adcopy_studio_v1/internal/api/dto"
	"adcopy_studio_v1/internal/apperr"
	"adcopy_studio_v1/internal/repository"
)

// UsageService AI 调用用量统计
type UsageService struct {
	logRepo repository.AICallLogRepository
}

func NewUsageService(logRepo repository.AICallLogRepository) *UsageService {
	return &UsageService{logRepo: logRepo}
}

// GetUsage 最近 days 天的用量，days <= 0 时取 30 天
func (s *UsageService) GetUsage(ctx context.Context, ownerKey string, days int) (*dto.UsageResponse, error) {
	if days <= 0 {
		days = 30
	}
	end := time.Now()
	start := end.AddDate(0, 0, -days)

	summary, err := s.logRepo.GetUsageByOwner(ctx, ownerKey, start, end)
	if err != nil {
		return nil, apperr.Persistence("usage summary", err)
	}
	byUseCase, err := s.logRepo.GetUsageByUseCase(ctx, ownerKey)
	if err != nil {
		return nil, apperr.Persistence("usage by use case", err)
	}
	daily, err := s.logRepo.GetDailyUsage(ctx, ownerKey, start, end)
	if err != nil {
		return nil, apperr.Persistence("daily usage", err)
	}

	return &dto.UsageResponse{
		OwnerKey:  ownerKey,
		StartTime: start,
		Summary:   summary,
		ByUseCase: byUseCase,
		Daily:     daily,
	}, nil
}
