package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"adcopy_studio_v1/internal/api/dto"
	"adcopy_studio_v1/internal/apperr"
	"adcopy_studio_v1/internal/contract"
	"adcopy_studio_v1/internal/model"
	"adcopy_studio_v1/internal/repository"
	"adcopy_studio_v1/internal/session"
)

const (
	StorageRemote = "remote"
	StorageLocal  = "local"
)

// ArtifactService 作品保存
// 登录用户写远端库，匿名客户端写本地库；远端失败且开启回退时改写本地
type ArtifactService struct {
	remote          repository.ArtifactRepository
	local           repository.ArtifactRepository
	fallbackToLocal bool
	logger          *zap.Logger
	now             func() time.Time
}

// NewArtifactService remote 或 local 可为 nil（未配置对应存储）
func NewArtifactService(remote, local repository.ArtifactRepository, fallbackToLocal bool, logger *zap.Logger) *ArtifactService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ArtifactService{
		remote:          remote,
		local:           local,
		fallbackToLocal: fallbackToLocal,
		logger:          logger,
		now:             time.Now,
	}
}

// SaveArtifactInput 保存参数，Payload 必须符合用例结构
type SaveArtifactInput struct {
	DisplayName string
	UseCase     contract.UseCase
	Payload     json.RawMessage
}

// Save 校验并保存
func (s *ArtifactService) Save(ctx context.Context, sess session.Session, in SaveArtifactInput) (*dto.ArtifactInfo, error) {
	def, ok := contract.Lookup(in.UseCase)
	if !ok {
		return nil, apperr.Validation("use_case", fmt.Sprintf("unknown use case %q", in.UseCase))
	}
	if len(in.Payload) == 0 {
		return nil, apperr.Validation("payload", "payload is required")
	}
	if _, err := contract.Decode(in.UseCase, in.Payload); err != nil {
		return nil, err
	}

	owner := sess.OwnerKey()
	if owner == "" {
		return nil, apperr.Validation("X-Client-ID", "sign in or provide a client id to save")
	}

	artifact := &model.SavedArtifact{
		ID:          uuid.NewString(),
		OwnerID:     owner,
		DisplayName: s.displayName(in),
		Kind:        model.ArtifactKindSingle,
		UseCase:     string(in.UseCase),
		Payload:     datatypes.JSON(in.Payload),
		CreatedAt:   s.now().UTC(),
	}
	if def.Campaign {
		artifact.Kind = model.ArtifactKindCampaign
	}

	storage, err := s.create(ctx, sess, artifact)
	if err != nil {
		return nil, err
	}
	return toArtifactInfo(artifact, storage), nil
}

// SaveResult 保存一次生成结果
func (s *ArtifactService) SaveResult(ctx context.Context, sess session.Session, displayName string, result contract.Result) (*dto.ArtifactInfo, error) {
	payload, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return s.Save(ctx, sess, SaveArtifactInput{
		DisplayName: displayName,
		UseCase:     result.UseCase(),
		Payload:     payload,
	})
}

func (s *ArtifactService) create(ctx context.Context, sess session.Session, artifact *model.SavedArtifact) (string, error) {
	if !sess.Authenticated || s.remote == nil {
		if s.local == nil {
			return "", apperr.Persistence("local store is not configured", nil)
		}
		if err := s.local.Create(ctx, artifact); err != nil {
			return "", apperr.Persistence("save artifact locally", err)
		}
		return StorageLocal, nil
	}

	err := s.remote.Create(ctx, artifact)
	if err == nil {
		return StorageRemote, nil
	}
	if !s.fallbackToLocal || s.local == nil {
		return "", apperr.Persistence("save artifact", err)
	}

	s.logger.Warn("remote store failed, saving locally",
		zap.String("owner", artifact.OwnerID),
		zap.String("artifact_id", artifact.ID),
		zap.Error(err),
	)
	if err := s.local.Create(ctx, artifact); err != nil {
		return "", apperr.Persistence("save artifact locally", err)
	}
	return StorageLocal, nil
}

// List 当前调用方的作品，按创建时间倒序
func (s *ArtifactService) List(ctx context.Context, sess session.Session) ([]*dto.ArtifactInfo, error) {
	owner := sess.OwnerKey()
	if owner == "" {
		return nil, apperr.Validation("X-Client-ID", "sign in or provide a client id")
	}

	var list []*dto.ArtifactInfo
	for _, st := range s.stores(sess) {
		artifacts, err := st.repo.ListByOwner(ctx, owner)
		if err != nil {
			if s.skipRemote(st, owner, "list", err) {
				continue
			}
			return nil, apperr.Persistence("list artifacts", err)
		}
		for i := range artifacts {
			list = append(list, toArtifactInfo(&artifacts[i], st.name))
		}
	}

	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}

// Get 获取单个作品，Payload 重新按用例结构校验
func (s *ArtifactService) Get(ctx context.Context, sess session.Session, id string) (*dto.ArtifactInfo, error) {
	owner := sess.OwnerKey()
	if owner == "" {
		return nil, apperr.Validation("X-Client-ID", "sign in or provide a client id")
	}

	var skipped error
	for _, st := range s.stores(sess) {
		artifact, err := st.repo.GetByID(ctx, owner, id)
		if err != nil {
			if s.skipRemote(st, owner, "get", err) {
				skipped = err
				continue
			}
			return nil, apperr.Persistence("load artifact", err)
		}
		if artifact == nil {
			continue
		}
		if _, err := contract.Decode(contract.UseCase(artifact.UseCase), artifact.Payload); err != nil {
			return nil, err
		}
		return toArtifactInfo(artifact, st.name), nil
	}
	// 远端不可用且本地也没有时不能断定作品不存在
	if skipped != nil {
		return nil, apperr.Persistence("load artifact", skipped)
	}
	return nil, apperr.NotFound("artifact not found")
}

// Delete 删除作品；不存在或不属于调用方时返回 not_found
func (s *ArtifactService) Delete(ctx context.Context, sess session.Session, id string) error {
	owner := sess.OwnerKey()
	if owner == "" {
		return apperr.Validation("X-Client-ID", "sign in or provide a client id")
	}

	var skipped error
	for _, st := range s.stores(sess) {
		deleted, err := st.repo.Delete(ctx, owner, id)
		if err != nil {
			if s.skipRemote(st, owner, "delete", err) {
				skipped = err
				continue
			}
			return apperr.Persistence("delete artifact", err)
		}
		if deleted {
			s.logger.Info("artifact deleted", zap.String("owner", owner), zap.String("artifact_id", id))
			return nil
		}
	}
	if skipped != nil {
		return apperr.Persistence("delete artifact", skipped)
	}
	return apperr.NotFound("artifact not found")
}

// ==================== 辅助方法 ====================

// skipRemote 开启本地回退时跳过出错的远端库，继续查本地
func (s *ArtifactService) skipRemote(st namedStore, owner, op string, err error) bool {
	if st.name != StorageRemote || !s.fallbackToLocal {
		return false
	}
	s.logger.Warn("remote store "+op+" failed", zap.String("owner", owner), zap.Error(err))
	return true
}

type namedStore struct {
	name string
	repo repository.ArtifactRepository
}

// stores 调用方可能存放作品的位置，按优先级排列
func (s *ArtifactService) stores(sess session.Session) []namedStore {
	var out []namedStore
	if sess.Authenticated && s.remote != nil {
		out = append(out, namedStore{StorageRemote, s.remote})
		if s.fallbackToLocal && s.local != nil {
			out = append(out, namedStore{StorageLocal, s.local})
		}
		return out
	}
	if s.local != nil {
		out = append(out, namedStore{StorageLocal, s.local})
	}
	return out
}

func (s *ArtifactService) displayName(in SaveArtifactInput) string {
	if name := strings.TrimSpace(in.DisplayName); name != "" {
		return name
	}
	return fmt.Sprintf("%s %s", in.UseCase, s.now().UTC().Format("2006-01-02 15:04"))
}

func toArtifactInfo(a *model.SavedArtifact, storage string) *dto.ArtifactInfo {
	return &dto.ArtifactInfo{
		ID:          a.ID,
		DisplayName: a.DisplayName,
		Kind:        a.Kind,
		UseCase:     a.UseCase,
		Payload:     json.RawMessage(a.Payload),
		CreatedAt:   a.CreatedAt,
		Storage:     storage,
	}
}
