package service

import (
	"context"
	"testing"
	"time"

	"adcopy_studio_v1/internal/api/dto"
	"adcopy_studio_v1/internal/apperr"
	"adcopy_studio_v1/internal/contract"
	"adcopy_studio_v1/internal/model"
	"adcopy_studio_v1/internal/repository"
)

func TestSubscriptionService_SetAndGet(t *testing.T) {
	db := setupServiceDB(t)
	userRepo := repository.NewUserRepository(db)
	subRepo := repository.NewSubscriptionRepository(db)
	ent := NewEntitlementService(subRepo, repository.NewAICallLogRepository(db), 0)
	svc := NewSubscriptionService(subRepo, userRepo, ent, nil)
	ctx := context.Background()

	user := &model.SysUser{Username: "dave", Password: "x", Role: model.RoleUser, IsActive: true}
	if err := userRepo.Create(ctx, user); err != nil {
		t.Fatalf("create user: %v", err)
	}

	info, err := svc.Get(ctx, user.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if info.Entitled || info.Status != "" {
		t.Errorf("no subscription yet: %+v", info)
	}

	end := time.Now().Add(30 * 24 * time.Hour)
	info, err = svc.Set(ctx, user.ID, &dto.SetSubscriptionRequest{Plan: "pro", Status: model.SubscriptionActive, CurrentPeriodEnd: end})
	if err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if !info.Entitled || info.Plan != "pro" || info.CurrentPeriodEnd == nil {
		t.Errorf("Set() = %+v", info)
	}

	// 再次设置覆盖原记录
	info, err = svc.Set(ctx, user.ID, &dto.SetSubscriptionRequest{Plan: "pro", Status: model.SubscriptionCanceled, CurrentPeriodEnd: end})
	if err != nil {
		t.Fatalf("second Set() error = %v", err)
	}
	if info.Entitled || info.Status != model.SubscriptionCanceled {
		t.Errorf("canceled = %+v", info)
	}

	var count int64
	db.Model(&model.Subscription{}).Count(&count)
	if count != 1 {
		t.Errorf("subscriptions = %d, want 1", count)
	}

	if _, err := svc.Set(ctx, 999, &dto.SetSubscriptionRequest{Plan: "pro", Status: model.SubscriptionActive, CurrentPeriodEnd: end}); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("unknown user Set() error = %v, want not_found", err)
	}
}

func TestUsageService_GetUsage(t *testing.T) {
	db := setupServiceDB(t)
	logRepo := repository.NewAICallLogRepository(db)
	svc := NewUsageService(logRepo)
	ctx := context.Background()

	for _, l := range []model.AICallLog{
		{OwnerKey: "user:3", UseCase: string(contract.AnalyzeHook), Status: model.AICallStatusSuccess, DurationMs: 100},
		{OwnerKey: "user:3", UseCase: string(contract.AnalyzeHook), Status: model.AICallStatusFailed, DurationMs: 300},
		{OwnerKey: "user:3", UseCase: string(contract.RewriteTrend), Status: model.AICallStatusSuccess, DurationMs: 200},
		{OwnerKey: "user:4", UseCase: string(contract.RewriteTrend), Status: model.AICallStatusSuccess, DurationMs: 50},
	} {
		l := l
		if err := logRepo.Create(ctx, &l); err != nil {
			t.Fatalf("create log: %v", err)
		}
	}

	resp, err := svc.GetUsage(ctx, "user:3", 0)
	if err != nil {
		t.Fatalf("GetUsage() error = %v", err)
	}
	if resp.OwnerKey != "user:3" {
		t.Errorf("OwnerKey = %q", resp.OwnerKey)
	}
	if resp.Summary.TotalCalls != 3 || resp.Summary.SuccessCount != 2 || resp.Summary.FailedCount != 1 {
		t.Errorf("Summary = %+v", resp.Summary)
	}
	if len(resp.ByUseCase) != 2 {
		t.Errorf("ByUseCase = %+v, want 2 entries", resp.ByUseCase)
	}
	if time.Since(resp.StartTime) < 29*24*time.Hour {
		t.Errorf("default window should be 30 days, start = %v", resp.StartTime)
	}
}
