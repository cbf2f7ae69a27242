package task

import (
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"adcopy_studio_v1/internal/middleware"
)

// LimiterSweepTask 定期清理生成冷却表中已过期的条目
type LimiterSweepTask struct {
	limiter  *middleware.CooldownLimiter
	interval time.Duration
	cron     *cron.Cron
	logger   *zap.Logger
}

func NewLimiterSweepTask(limiter *middleware.CooldownLimiter, interval time.Duration, logger *zap.Logger) *LimiterSweepTask {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LimiterSweepTask{
		limiter:  limiter,
		interval: interval,
		cron:     cron.New(),
		logger:   logger,
	}
}

func (t *LimiterSweepTask) Start() error {
	_, err := t.cron.AddFunc("@every 5m", func() {
		if n := t.limiter.Sweep(t.interval); n > 0 {
			t.logger.Debug("cooldown entries swept", zap.Int("removed", n))
		}
	})
	if err != nil {
		return err
	}
	t.cron.Start()
	return nil
}

func (t *LimiterSweepTask) Stop() {
	<-t.cron.Stop().Done()
}
