package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"adcopy_studio_v1/internal/model"
)

// ==================== 仓储接口 ====================

// AICallLogRepository AI调用日志仓储接口
type AICallLogRepository interface {
	Create(ctx context.Context, log *model.AICallLog) error
	GetByID(ctx context.Context, id int64) (*model.AICallLog, error)

	// 统计查询
	CountSuccessByOwner(ctx context.Context, ownerKey string) (int64, error)
	GetUsageByOwner(ctx context.Context, ownerKey string, startTime, endTime time.Time) (*AIUsageStats, error)
	GetUsageByUseCase(ctx context.Context, ownerKey string) ([]UseCaseUsageStats, error)
	GetDailyUsage(ctx context.Context, ownerKey string, startDate, endDate time.Time) ([]DailyUsageStats, error)
}

// ==================== 统计结构 ====================

// AIUsageStats AI用量统计
type AIUsageStats struct {
	TotalCalls            int64   `json:"total_calls"`
	SuccessCount          int64   `json:"success_count"`
	FailedCount           int64   `json:"failed_count"`
	TotalInstructionChars int64   `json:"total_instruction_chars"`
	TotalResponseChars    int64   `json:"total_response_chars"`
	AvgDurationMs         float64 `json:"avg_duration_ms"`
}

// UseCaseUsageStats 按用例统计
type UseCaseUsageStats struct {
	UseCase      string `json:"use_case"`
	TotalCalls   int64  `json:"total_calls"`
	SuccessCount int64  `json:"success_count"`
}

// DailyUsageStats 每日用量统计
type DailyUsageStats struct {
	Date         string `json:"date"`
	TotalCalls   int64  `json:"total_calls"`
	SuccessCount int64  `json:"success_count"`
}

// ==================== 仓储实现 ====================

type aiCallLogRepo struct {
	db *gorm.DB
}

// NewAICallLogRepository 创建AI调用日志仓储
func NewAICallLogRepository(db *gorm.DB) AICallLogRepository {
	return &aiCallLogRepo{db: db}
}

func (r *aiCallLogRepo) Create(ctx context.Context, log *model.AICallLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *aiCallLogRepo) GetByID(ctx context.Context, id int64) (*model.AICallLog, error) {
	var log model.AICallLog
	if err := r.db.WithContext(ctx).First(&log, id).Error; err != nil {
		return nil, err
	}
	return &log, nil
}

// CountSuccessByOwner 成功调用次数（试用额度按此扣减）
func (r *aiCallLogRepo) CountSuccessByOwner(ctx context.Context, ownerKey string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.AICallLog{}).
		Where("owner_key = ? AND status = ?", ownerKey, model.AICallStatusSuccess).
		Count(&count).Error
	return count, err
}

func (r *aiCallLogRepo) GetUsageByOwner(ctx context.Context, ownerKey string, startTime, endTime time.Time) (*AIUsageStats, error) {
	var stats AIUsageStats

	query := r.db.WithContext(ctx).Model(&model.AICallLog{}).Where("owner_key = ?", ownerKey)
	if !startTime.IsZero() {
		query = query.Where("created_at >= ?", startTime)
	}
	if !endTime.IsZero() {
		query = query.Where("created_at <= ?", endTime)
	}

	err := query.Select(`
		COUNT(*) as total_calls,
		COALESCE(SUM(CASE WHEN status = 'success' THEN 1 ELSE 0 END), 0) as success_count,
		COALESCE(SUM(CASE WHEN status = 'failed' THEN 1 ELSE 0 END), 0) as failed_count,
		COALESCE(SUM(instruction_chars), 0) as total_instruction_chars,
		COALESCE(SUM(response_chars), 0) as total_response_chars,
		COALESCE(AVG(duration_ms), 0) as avg_duration_ms
	`).Scan(&stats).Error

	return &stats, err
}

func (r *aiCallLogRepo) GetUsageByUseCase(ctx context.Context, ownerKey string) ([]UseCaseUsageStats, error) {
	var stats []UseCaseUsageStats

	err := r.db.WithContext(ctx).Model(&model.AICallLog{}).
		Where("owner_key = ?", ownerKey).
		Select(`
			use_case,
			COUNT(*) as total_calls,
			COALESCE(SUM(CASE WHEN status = 'success' THEN 1 ELSE 0 END), 0) as success_count
		`).
		Group("use_case").
		Order("use_case ASC").
		Scan(&stats).Error

	return stats, err
}

func (r *aiCallLogRepo) GetDailyUsage(ctx context.Context, ownerKey string, startDate, endDate time.Time) ([]DailyUsageStats, error) {
	var stats []DailyUsageStats

	err := r.db.WithContext(ctx).Model(&model.AICallLog{}).
		Where("owner_key = ? AND created_at >= ? AND created_at <= ?", ownerKey, startDate, endDate).
		Select(`
			DATE(created_at) as date,
			COUNT(*) as total_calls,
			COALESCE(SUM(CASE WHEN status = 'success' THEN 1 ELSE 0 END), 0) as success_count
		`).
		Group("DATE(created_at)").
		Order("date ASC").
		Scan(&stats).Error

	return stats, err
}
