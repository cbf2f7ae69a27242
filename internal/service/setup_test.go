package service

import (
	"context"
	"sync"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"adcopy_studio_v1/internal/model"
)

// ==================== 测试辅助 ====================

func setupServiceDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("获取连接池失败: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&model.SysUser{}, &model.Subscription{}, &model.AICallLog{}, &model.SavedArtifact{}); err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}
	return db
}

// fakeProvider 按顺序返回预设输出，并记录收到的指令
type fakeProvider struct {
	mu           sync.Mutex
	responses    []string
	err          error
	instructions []string
}

func (f *fakeProvider) Name() string  { return "fake" }
func (f *fakeProvider) Model() string { return "fake-model" }

func (f *fakeProvider) Generate(ctx context.Context, instruction string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.instructions = append(f.instructions, instruction)
	if f.err != nil {
		return "", f.err
	}
	if len(f.responses) == 0 {
		return "", nil
	}
	out := f.responses[0]
	if len(f.responses) > 1 {
		f.responses = f.responses[1:]
	}
	return out, nil
}

func (f *fakeProvider) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.instructions)
}

const (
	hookJSON = `{"hook":"Stop wasting money on ads","overallScore":6.5,"scores":{"curiosity":6,"clarity":9,"emotionalPull":5,"specificity":3},"hookType":"pain_point","strengths":["direct"],"weaknesses":["generic"],"improvedVersions":["You burned $3k on ads last month."]}`

	trendJSON = `{"originalTrend":"Silent vlog","niche":"pottery","adaptedConcept":"Silent wheel sessions","contentIdeas":["glaze day"],"hashtags":["#pottery"],"viralityScore":8}`

	toneJSON = `{"original":"our product is good","variants":{"casual":"Honestly, you'll love it.","bold":"The last one you'll need."}}`
)
