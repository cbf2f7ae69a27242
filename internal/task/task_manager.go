package task

import (
	"go.uber.org/zap"
)

// ==================== TaskManager 定时任务管理器 ====================

// Runner 可启停的定时任务
type Runner interface {
	Start() error
	Stop()
}

// TaskManager 统一启停定时任务
type TaskManager struct {
	runners map[string]Runner
	order   []string
	logger  *zap.Logger
}

func NewTaskManager(logger *zap.Logger) *TaskManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TaskManager{runners: make(map[string]Runner), logger: logger}
}

// Register nil 任务视为未启用
func (tm *TaskManager) Register(name string, r Runner) {
	if r == nil {
		return
	}
	if _, ok := tm.runners[name]; !ok {
		tm.order = append(tm.order, name)
	}
	tm.runners[name] = r
}

// Start 启动所有任务，遇到错误立即返回
func (tm *TaskManager) Start() error {
	for _, name := range tm.order {
		if err := tm.runners[name].Start(); err != nil {
			tm.logger.Error("task start failed", zap.String("task", name), zap.Error(err))
			return err
		}
		tm.logger.Info("task started", zap.String("task", name))
	}
	return nil
}

// Stop 按启动的逆序停止
func (tm *TaskManager) Stop() {
	for i := len(tm.order) - 1; i >= 0; i-- {
		tm.runners[tm.order[i]].Stop()
	}
	tm.logger.Info("all tasks stopped")
}

// Status 已注册的任务
func (tm *TaskManager) Status() map[string]bool {
	status := make(map[string]bool, len(tm.runners))
	for name := range tm.runners {
		status[name] = true
	}
	return status
}
