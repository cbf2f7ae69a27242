package dto

import (
	"encoding/json"
	"time"
)

// SaveArtifactRequest 保存作品请求
type SaveArtifactRequest struct {
	DisplayName string          `json:"display_name" binding:"omitempty,max=255"`
	UseCase     string          `json:"use_case" binding:"required"`
	Payload     json.RawMessage `json:"payload" binding:"required" swaggertype:"object"`
}

// ArtifactInfo 作品
type ArtifactInfo struct {
	ID          string          `json:"id"`
	DisplayName string          `json:"display_name"`
	Kind        string          `json:"kind"`
	UseCase     string          `json:"use_case"`
	Payload     json.RawMessage `json:"payload" swaggertype:"object"`
	CreatedAt   time.Time       `json:"created_at"`
	// Storage remote / local
	Storage string `json:"storage"`
}

// ArtifactListResponse 作品列表
type ArtifactListResponse struct {
	List  []*ArtifactInfo `json:"list"`
	Total int             `json:"total"`
}
