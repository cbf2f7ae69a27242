package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"adcopy_studio_v1/internal/model"
)

// ArtifactRepository 作品仓库，远端(postgres)与本地(sqlite)共用同一实现
type ArtifactRepository interface {
	Create(ctx context.Context, artifact *model.SavedArtifact) error
	GetByID(ctx context.Context, ownerID, id string) (*model.SavedArtifact, error)
	// ListByOwner 按创建时间倒序
	ListByOwner(ctx context.Context, ownerID string) ([]model.SavedArtifact, error)
	// Delete 返回是否删除了记录
	Delete(ctx context.Context, ownerID, id string) (bool, error)
}

type artifactRepo struct {
	db *gorm.DB
}

func NewArtifactRepository(db *gorm.DB) ArtifactRepository {
	return &artifactRepo{db: db}
}

func (r *artifactRepo) Create(ctx context.Context, artifact *model.SavedArtifact) error {
	return r.db.WithContext(ctx).Create(artifact).Error
}

func (r *artifactRepo) GetByID(ctx context.Context, ownerID, id string) (*model.SavedArtifact, error) {
	var artifact model.SavedArtifact
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND id = ?", ownerID, id).
		First(&artifact).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &artifact, nil
}

func (r *artifactRepo) ListByOwner(ctx context.Context, ownerID string) ([]model.SavedArtifact, error) {
	var artifacts []model.SavedArtifact
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&artifacts).Error
	return artifacts, err
}

func (r *artifactRepo) Delete(ctx context.Context, ownerID, id string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("owner_id = ? AND id = ?", ownerID, id).
		Delete(&model.SavedArtifact{})
	return result.RowsAffected > 0, result.Error
}
