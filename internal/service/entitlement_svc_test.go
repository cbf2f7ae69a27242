package service

import (
	"context"
	"testing"
	"time"

	"adcopy_studio_v1/internal/apperr"
	"adcopy_studio_v1/internal/contract"
	"adcopy_studio_v1/internal/model"
	"adcopy_studio_v1/internal/repository"
	"adcopy_studio_v1/internal/session"
)

type entitlementFixture struct {
	svc     *EntitlementService
	subRepo repository.SubscriptionRepository
	logRepo repository.AICallLogRepository
	now     time.Time
}

func newEntitlementFixture(t *testing.T, free int) *entitlementFixture {
	t.Helper()
	db := setupServiceDB(t)
	f := &entitlementFixture{
		subRepo: repository.NewSubscriptionRepository(db),
		logRepo: repository.NewAICallLogRepository(db),
		now:     time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	f.svc = NewEntitlementService(f.subRepo, f.logRepo, free)
	f.svc.now = func() time.Time { return f.now }
	return f
}

func (f *entitlementFixture) logCalls(t *testing.T, owner, status string, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		err := f.logRepo.Create(context.Background(), &model.AICallLog{
			OwnerKey: owner,
			UseCase:  string(contract.AnalyzeHook),
			Status:   status,
		})
		if err != nil {
			t.Fatalf("create log: %v", err)
		}
	}
}

func TestEntitlementService_TrialCounting(t *testing.T) {
	f := newEntitlementFixture(t, 3)
	ctx := context.Background()

	ent, err := f.svc.Resolve(ctx, 1)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if !ent.Entitled || ent.TrialRemaining != 3 {
		t.Errorf("fresh user = %+v, want entitled with 3 remaining", ent)
	}

	// 失败调用与其他用户的调用不消耗试用次数
	f.logCalls(t, "user:1", model.AICallStatusSuccess, 2)
	f.logCalls(t, "user:1", model.AICallStatusFailed, 5)
	f.logCalls(t, "user:2", model.AICallStatusSuccess, 4)

	ent, _ = f.svc.Resolve(ctx, 1)
	if !ent.Entitled || ent.TrialRemaining != 1 {
		t.Errorf("after 2 successes = %+v, want 1 remaining", ent)
	}

	f.logCalls(t, "user:1", model.AICallStatusSuccess, 2)
	ent, _ = f.svc.Resolve(ctx, 1)
	if ent.Entitled || ent.TrialRemaining != 0 {
		t.Errorf("trial used up = %+v, want not entitled and 0 remaining", ent)
	}
}

func TestEntitlementService_Subscription(t *testing.T) {
	tests := []struct {
		name   string
		status string
		end    time.Duration
		want   bool
	}{
		{"active in period", model.SubscriptionActive, time.Hour, true},
		{"trialing in period", model.SubscriptionTrialing, time.Hour, true},
		{"active but period ended", model.SubscriptionActive, -time.Hour, false},
		{"canceled", model.SubscriptionCanceled, time.Hour, false},
		{"past due", model.SubscriptionPastDue, time.Hour, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newEntitlementFixture(t, 0)
			err := f.subRepo.Upsert(context.Background(), &model.Subscription{
				UserID:           9,
				Plan:             "pro",
				Status:           tt.status,
				CurrentPeriodEnd: f.now.Add(tt.end),
			})
			if err != nil {
				t.Fatalf("Upsert() error = %v", err)
			}

			ent, err := f.svc.Resolve(context.Background(), 9)
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if ent.Entitled != tt.want {
				t.Errorf("Entitled = %v, want %v", ent.Entitled, tt.want)
			}
			if ent.Status != tt.status || ent.Plan != "pro" || ent.PeriodEnd == nil {
				t.Errorf("subscription details missing: %+v", ent)
			}
		})
	}
}

func TestEntitlementService_Authorize(t *testing.T) {
	svc := NewEntitlementService(nil, nil, 0)

	tests := []struct {
		name string
		sess session.Session
		want apperr.Kind
	}{
		{"anonymous", session.Anonymous("c1"), apperr.KindUnauthenticated},
		{"not entitled", session.Session{UserID: 1, Authenticated: true}, apperr.KindNotEntitled},
		{"entitled", session.Session{UserID: 1, Authenticated: true, Entitled: true}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Authorize(tt.sess)
			if tt.want == "" {
				if err != nil {
					t.Errorf("Authorize() error = %v, want nil", err)
				}
				return
			}
			if !apperr.IsKind(err, tt.want) {
				t.Errorf("Authorize() error = %v, want %s", err, tt.want)
			}
		})
	}
}

func TestGatedGenerator_BlocksBeforeProvider(t *testing.T) {
	p := &fakeProvider{responses: []string{hookJSON}}
	gen := NewGatedGenerator(NewEntitlementService(nil, nil, 0), NewGenerationService(p, nil, nil))
	req := contract.Request{UseCase: contract.AnalyzeHook, Inputs: contract.Inputs{"hook": "x"}}

	if _, err := gen.Generate(context.Background(), session.Anonymous("c1"), req); !apperr.IsKind(err, apperr.KindUnauthenticated) {
		t.Errorf("anonymous error = %v, want unauthenticated", err)
	}
	if _, err := gen.Generate(context.Background(), session.Session{UserID: 1, Authenticated: true}, req); !apperr.IsKind(err, apperr.KindNotEntitled) {
		t.Errorf("not entitled error = %v, want not_entitled", err)
	}
	if p.calls() != 0 {
		t.Fatalf("provider called %d times before authorization", p.calls())
	}

	result, err := gen.Generate(context.Background(), session.Session{UserID: 1, Authenticated: true, Entitled: true}, req)
	if err != nil {
		t.Fatalf("entitled Generate() error = %v", err)
	}
	if result.UseCase() != contract.AnalyzeHook {
		t.Errorf("UseCase() = %s", result.UseCase())
	}
}
