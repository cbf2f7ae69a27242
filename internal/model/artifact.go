package model

import (
	"time"

	"gorm.io/datatypes"
)

// SavedArtifact 已保存的生成结果，只增删不改
type SavedArtifact struct {
	ID          string         `gorm:"primaryKey;size:36" json:"id"`
	OwnerID     string         `gorm:"size:128;index:idx_artifact_owner_created,priority:1;not null" json:"ownerId"`
	DisplayName string         `gorm:"size:255;not null" json:"displayName"`
	Kind        string         `gorm:"size:16;not null" json:"kind"`
	UseCase     string         `gorm:"size:64;not null" json:"useCase"`
	Payload     datatypes.JSON `gorm:"not null" json:"payload"`
	CreatedAt   time.Time      `gorm:"index:idx_artifact_owner_created,priority:2" json:"createdAt"`
}

func (SavedArtifact) TableName() string {
	return "saved_artifacts"
}

const (
	ArtifactKindSingle   = "single"
	ArtifactKindCampaign = "campaign"
)
