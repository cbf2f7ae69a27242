package dto

import (
	"time"

	"adcopy_studio_v1/internal/contract"
	"adcopy_studio_v1/internal/repository"
)

// ==================== 生成 ====================

// GenerateRequest 生成请求，use_case 取自路径
type GenerateRequest struct {
	Inputs map[string]string `json:"inputs"`
	// Count 生成条数，0 或不传使用默认值
	Count int `json:"count" binding:"omitempty,min=0"`
	// Save 生成成功后直接保存为作品
	Save        bool   `json:"save"`
	DisplayName string `json:"display_name" binding:"omitempty,max=255"`
}

// GenerateResponse 生成响应
type GenerateResponse struct {
	UseCase  contract.UseCase `json:"use_case"`
	Result   contract.Result  `json:"result" swaggertype:"object"`
	Artifact *ArtifactInfo    `json:"artifact,omitempty"`
	// SaveError 生成成功但保存失败时的原因
	SaveError string `json:"save_error,omitempty"`
}

// ==================== 用例目录 ====================

// UseCaseInfo 用例说明
type UseCaseInfo struct {
	UseCase      contract.UseCase    `json:"use_case"`
	Description  string              `json:"description"`
	Required     []string            `json:"required"`
	Optional     []string            `json:"optional"`
	InputEnums   map[string][]string `json:"input_enums,omitempty"`
	DefaultCount int                 `json:"default_count,omitempty"`
	MaxCount     int                 `json:"max_count,omitempty"`
	Kind         string              `json:"kind"`
	// Shape 输出 JSON 结构说明
	Shape string `json:"shape"`
}

// ==================== 用量 ====================

// UsageQuery 用量查询
type UsageQuery struct {
	Days int `form:"days" binding:"omitempty,min=1,max=90"`
}

// UsageResponse 用量统计
type UsageResponse struct {
	OwnerKey  string                         `json:"owner_key"`
	StartTime time.Time                      `json:"start_time"`
	Summary   *repository.AIUsageStats       `json:"summary"`
	ByUseCase []repository.UseCaseUsageStats `json:"by_use_case"`
	Daily     []repository.DailyUsageStats   `json:"daily"`
}
