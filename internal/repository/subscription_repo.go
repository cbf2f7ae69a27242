package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"adcopy_studio_v1/internal/model"
)

// SubscriptionRepository 订阅仓库
type SubscriptionRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*model.Subscription, error)
	Upsert(ctx context.Context, sub *model.Subscription) error
	// ListExpired 状态仍有效但周期已结束的订阅
	ListExpired(ctx context.Context, now time.Time, limit int) ([]model.Subscription, error)
	// MarkExpired 仅当订阅在 now 时仍满足过期条件时才更新，返回是否实际更新
	MarkExpired(ctx context.Context, id int64, now time.Time) (bool, error)
}

// expirableStatuses 可被过期任务处理的状态
var expirableStatuses = []string{model.SubscriptionActive, model.SubscriptionTrialing, model.SubscriptionPastDue}

type subscriptionRepo struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepo{db: db}
}

// GetByUserID 不存在返回 nil, nil
func (r *subscriptionRepo) GetByUserID(ctx context.Context, userID int64) (*model.Subscription, error) {
	var sub model.Subscription
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// Upsert 按 user_id 新建或覆盖
func (r *subscriptionRepo) Upsert(ctx context.Context, sub *model.Subscription) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.Subscription
		err := tx.Where("user_id = ?", sub.UserID).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(sub).Error
		}
		if err != nil {
			return err
		}

		sub.ID = existing.ID
		sub.CreatedAt = existing.CreatedAt
		return tx.Model(&existing).Updates(map[string]interface{}{
			"plan":               sub.Plan,
			"status":             sub.Status,
			"current_period_end": sub.CurrentPeriodEnd,
		}).Error
	})
}

func (r *subscriptionRepo) ListExpired(ctx context.Context, now time.Time, limit int) ([]model.Subscription, error) {
	var subs []model.Subscription
	query := r.db.WithContext(ctx).
		Where("status IN ? AND current_period_end < ?", expirableStatuses, now).
		Order("current_period_end ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&subs).Error
	return subs, err
}

func (r *subscriptionRepo) MarkExpired(ctx context.Context, id int64, now time.Time) (bool, error) {
	// 列表读取后可能已被续订，条件与 ListExpired 保持一致
	res := r.db.WithContext(ctx).
		Model(&model.Subscription{}).
		Where("id = ? AND status IN ? AND current_period_end < ?", id, expirableStatuses, now).
		Update("status", model.SubscriptionExpired)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
