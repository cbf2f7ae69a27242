package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"adcopy_studio_v1/internal/apperr"
	"adcopy_studio_v1/internal/contract"
	"adcopy_studio_v1/internal/model"
	"adcopy_studio_v1/internal/repository"
	"adcopy_studio_v1/internal/session"
)

// brokenArtifactRepo 模拟远端库不可用
type brokenArtifactRepo struct{}

var errRemoteDown = errors.New("connection refused")

func (brokenArtifactRepo) Create(context.Context, *model.SavedArtifact) error { return errRemoteDown }
func (brokenArtifactRepo) GetByID(context.Context, string, string) (*model.SavedArtifact, error) {
	return nil, errRemoteDown
}
func (brokenArtifactRepo) ListByOwner(context.Context, string) ([]model.SavedArtifact, error) {
	return nil, errRemoteDown
}
func (brokenArtifactRepo) Delete(context.Context, string, string) (bool, error) {
	return false, errRemoteDown
}

var (
	userSession = session.Session{UserID: 5, Authenticated: true, Entitled: true}
	anonSession = session.Anonymous("device-1")
)

func newArtifactStores(t *testing.T) (remote, local repository.ArtifactRepository) {
	t.Helper()
	return repository.NewArtifactRepository(setupServiceDB(t)), repository.NewArtifactRepository(setupServiceDB(t))
}

func TestArtifactService_SaveRoutesByIdentity(t *testing.T) {
	remote, local := newArtifactStores(t)
	svc := NewArtifactService(remote, local, true, nil)
	ctx := context.Background()

	in := SaveArtifactInput{UseCase: contract.AnalyzeHook, Payload: json.RawMessage(hookJSON)}

	saved, err := svc.Save(ctx, userSession, in)
	if err != nil {
		t.Fatalf("Save(user) error = %v", err)
	}
	if saved.Storage != StorageRemote || saved.Kind != model.ArtifactKindSingle || saved.ID == "" {
		t.Errorf("Save(user) = %+v", saved)
	}
	if saved.DisplayName == "" {
		t.Error("display name should default")
	}

	saved, err = svc.Save(ctx, anonSession, in)
	if err != nil {
		t.Fatalf("Save(anon) error = %v", err)
	}
	if saved.Storage != StorageLocal {
		t.Errorf("anonymous save went to %s, want local", saved.Storage)
	}

	remoteList, _ := remote.ListByOwner(ctx, "user:5")
	localList, _ := local.ListByOwner(ctx, "anon:device-1")
	if len(remoteList) != 1 || len(localList) != 1 {
		t.Errorf("remote=%d local=%d, want 1/1", len(remoteList), len(localList))
	}
}

func TestArtifactService_SaveRejectsInvalidPayload(t *testing.T) {
	_, local := newArtifactStores(t)
	svc := NewArtifactService(nil, local, false, nil)
	ctx := context.Background()

	tests := []struct {
		name string
		in   SaveArtifactInput
		sess session.Session
		want apperr.Kind
	}{
		{"unknown use case", SaveArtifactInput{UseCase: "writePoem", Payload: json.RawMessage(`{}`)}, anonSession, apperr.KindValidation},
		{"empty payload", SaveArtifactInput{UseCase: contract.AnalyzeHook}, anonSession, apperr.KindValidation},
		{"wrong shape", SaveArtifactInput{UseCase: contract.AnalyzeHook, Payload: json.RawMessage(trendJSON)}, anonSession, apperr.KindSchemaViolation},
		{"no owner", SaveArtifactInput{UseCase: contract.AnalyzeHook, Payload: json.RawMessage(hookJSON)}, session.Anonymous(""), apperr.KindValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Save(ctx, tt.sess, tt.in); !apperr.IsKind(err, tt.want) {
				t.Errorf("Save() error = %v, want %s", err, tt.want)
			}
		})
	}

	list, _ := local.ListByOwner(ctx, "anon:device-1")
	if len(list) != 0 {
		t.Errorf("invalid payloads should not be stored, got %d", len(list))
	}
}

func TestArtifactService_RemoteFailure(t *testing.T) {
	_, local := newArtifactStores(t)
	ctx := context.Background()
	in := SaveArtifactInput{UseCase: contract.AnalyzeHook, Payload: json.RawMessage(hookJSON)}

	t.Run("fallback enabled", func(t *testing.T) {
		svc := NewArtifactService(brokenArtifactRepo{}, local, true, nil)
		saved, err := svc.Save(ctx, userSession, in)
		if err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		if saved.Storage != StorageLocal {
			t.Errorf("Storage = %s, want local", saved.Storage)
		}

		// 远端列表失败时仍返回本地作品
		list, err := svc.List(ctx, userSession)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(list) != 1 {
			t.Errorf("List() len = %d, want 1", len(list))
		}

		// 回退到本地的作品在远端故障期间仍可读取和删除
		got, err := svc.Get(ctx, userSession, saved.ID)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if got.Storage != StorageLocal {
			t.Errorf("Get() Storage = %s, want local", got.Storage)
		}
		if err := svc.Delete(ctx, userSession, saved.ID); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}

		// 本地已没有，远端又不可用，不能判定为 not_found
		_, err = svc.Get(ctx, userSession, saved.ID)
		if !apperr.IsKind(err, apperr.KindPersistence) {
			t.Errorf("Get() after delete error = %v, want persistence", err)
		}
		if err := svc.Delete(ctx, userSession, saved.ID); !apperr.IsKind(err, apperr.KindPersistence) {
			t.Errorf("Delete() again error = %v, want persistence", err)
		}
	})

	t.Run("fallback disabled", func(t *testing.T) {
		svc := NewArtifactService(brokenArtifactRepo{}, local, false, nil)
		_, err := svc.Save(ctx, userSession, in)
		if !apperr.IsKind(err, apperr.KindPersistence) {
			t.Fatalf("Save() error = %v, want persistence", err)
		}
		if !errors.Is(err, errRemoteDown) {
			t.Error("persistence error should wrap the store error")
		}

		if _, err := svc.Get(ctx, userSession, "missing"); !apperr.IsKind(err, apperr.KindPersistence) {
			t.Errorf("Get() error = %v, want persistence", err)
		}
		if err := svc.Delete(ctx, userSession, "missing"); !apperr.IsKind(err, apperr.KindPersistence) {
			t.Errorf("Delete() error = %v, want persistence", err)
		}
	})
}

func TestArtifactService_ListNewestFirstAndOwnerScoped(t *testing.T) {
	_, local := newArtifactStores(t)
	svc := NewArtifactService(nil, local, false, nil)
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, name := range []string{"first", "second", "third"} {
		at := base.Add(time.Duration(i) * time.Minute)
		svc.now = func() time.Time { return at }
		if _, err := svc.Save(ctx, anonSession, SaveArtifactInput{DisplayName: name, UseCase: contract.RewriteTrend, Payload: json.RawMessage(trendJSON)}); err != nil {
			t.Fatalf("Save(%s) error = %v", name, err)
		}
	}
	if _, err := svc.Save(ctx, session.Anonymous("device-2"), SaveArtifactInput{UseCase: contract.RewriteTrend, Payload: json.RawMessage(trendJSON)}); err != nil {
		t.Fatalf("Save(other) error = %v", err)
	}

	list, err := svc.List(ctx, anonSession)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("List() len = %d, want 3", len(list))
	}
	for i, want := range []string{"third", "second", "first"} {
		if list[i].DisplayName != want {
			t.Errorf("list[%d] = %s, want %s", i, list[i].DisplayName, want)
		}
	}
}

func TestArtifactService_GetAndDelete(t *testing.T) {
	_, local := newArtifactStores(t)
	svc := NewArtifactService(nil, local, false, nil)
	ctx := context.Background()

	saved, err := svc.SaveResult(ctx, anonSession, "my pack", &contract.TrendRewrite{
		OriginalTrend:  "Silent vlog",
		Niche:          "pottery",
		AdaptedConcept: "Silent wheel sessions",
		ContentIdeas:   []string{"glaze day"},
		Hashtags:       []string{"#pottery"},
		ViralityScore:  8,
	})
	if err != nil {
		t.Fatalf("SaveResult() error = %v", err)
	}

	got, err := svc.Get(ctx, anonSession, saved.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.DisplayName != "my pack" || got.UseCase != string(contract.RewriteTrend) {
		t.Errorf("Get() = %+v", got)
	}

	// 其他客户端既看不到也删不掉
	other := session.Anonymous("device-2")
	if _, err := svc.Get(ctx, other, saved.ID); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("Get(other) error = %v, want not_found", err)
	}
	if err := svc.Delete(ctx, other, saved.ID); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("Delete(other) error = %v, want not_found", err)
	}

	if err := svc.Delete(ctx, anonSession, saved.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := svc.Delete(ctx, anonSession, saved.ID); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("second Delete() error = %v, want not_found", err)
	}
}

func TestArtifactService_CampaignKind(t *testing.T) {
	_, local := newArtifactStores(t)
	svc := NewArtifactService(nil, local, false, nil)

	pack := &contract.CampaignPack{
		CampaignName: "Dinner Solved",
		BigIdea:      "Evenings back",
		Personas: []contract.Persona{{
			Name: "Busy Brenda", Age: "34", Occupation: "Nurse", Bio: "Shops on her phone.",
			PainPoints: []string{"no time"}, Goals: []string{"healthy meals"},
			Motivations: []string{"convenience"}, PreferredChannels: []string{"instagram"},
			MessagingTip: "Lead with time saved.",
		}},
		Angles: []contract.ContentAngle{{
			Title: "Before/after", Hook: "Your Sunday, reclaimed.", Description: "Split screen.",
			Format: "video", TargetEmotion: "relief",
		}},
		AdVariations: []contract.AdVariation{{
			Headline: "Dinner in 10", PrimaryText: "Start eating.", CallToAction: "Shop now",
			Angle: "time saving", PredictedScore: 7.5,
		}},
		Hooks:        []string{"What if dinner took 10 minutes?"},
		CallToAction: "Start your free week",
	}
	saved, err := svc.SaveResult(context.Background(), anonSession, "", pack)
	if err != nil {
		t.Fatalf("SaveResult() error = %v", err)
	}
	if saved.Kind != model.ArtifactKindCampaign {
		t.Errorf("Kind = %s, want %s", saved.Kind, model.ArtifactKindCampaign)
	}
}
