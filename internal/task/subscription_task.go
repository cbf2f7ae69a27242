package task

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"adcopy_studio_v1/internal/model"
	"adcopy_studio_v1/internal/repository"
)

// SubscriptionExpiryTask 定期把周期已结束的订阅标记为 expired
type SubscriptionExpiryTask struct {
	subRepo repository.SubscriptionRepository
	cron    *cron.Cron
	logger  *zap.Logger

	spec        string
	batchSize   int
	concurrency int
	now         func() time.Time
}

func NewSubscriptionExpiryTask(subRepo repository.SubscriptionRepository, spec string, logger *zap.Logger) *SubscriptionExpiryTask {
	if spec == "" {
		spec = "0 */10 * * * *"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubscriptionExpiryTask{
		subRepo:     subRepo,
		cron:        cron.New(cron.WithSeconds()), // 支持秒级控制
		logger:      logger,
		spec:        spec,
		batchSize:   200,
		concurrency: 10,
		now:         time.Now,
	}
}

// SetConcurrency 设置批量大小与并发上限
func (t *SubscriptionExpiryTask) SetConcurrency(batchSize, concurrency int) {
	if batchSize > 0 {
		t.batchSize = batchSize
	}
	if concurrency > 0 {
		t.concurrency = concurrency
	}
}

// Start 首次立即执行，之后按 cron 表达式执行
func (t *SubscriptionExpiryTask) Start() error {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		t.RunOnce(ctx)
	}()

	_, err := t.cron.AddFunc(t.spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		t.RunOnce(ctx)
	})
	if err != nil {
		return err
	}

	t.cron.Start()
	t.logger.Info("subscription expiry task started", zap.String("spec", t.spec))
	return nil
}

// Stop 等待正在执行的任务结束
func (t *SubscriptionExpiryTask) Stop() {
	<-t.cron.Stop().Done()
}

// RunOnce 执行一轮，返回标记为过期的数量
func (t *SubscriptionExpiryTask) RunOnce(ctx context.Context) int {
	now := t.now()
	subs, err := t.subRepo.ListExpired(ctx, now, t.batchSize)
	if err != nil {
		t.logger.Error("list expired subscriptions failed", zap.Error(err))
		return 0
	}
	if len(subs) == 0 {
		return 0
	}

	// 信号量控制并发
	sem := make(chan struct{}, t.concurrency)
	var wg sync.WaitGroup
	var expired int32

	for _, sub := range subs {
		select {
		case <-ctx.Done():
			t.logger.Warn("subscription expiry task timed out")
			wg.Wait()
			return int(atomic.LoadInt32(&expired))
		default:
		}

		sem <- struct{}{}
		wg.Add(1)

		go func(s model.Subscription) {
			defer wg.Done()
			defer func() { <-sem }()

			changed, err := t.subRepo.MarkExpired(ctx, s.ID, now)
			if err != nil {
				t.logger.Warn("mark subscription expired failed", zap.Int64("user_id", s.UserID), zap.Error(err))
				return
			}
			if !changed {
				t.logger.Debug("subscription renewed before expiry", zap.Int64("user_id", s.UserID))
				return
			}
			atomic.AddInt32(&expired, 1)
		}(sub)
	}

	wg.Wait()
	n := int(atomic.LoadInt32(&expired))
	t.logger.Info("subscription expiry round finished", zap.Int("found", len(subs)), zap.Int("expired", n))
	return n
}
