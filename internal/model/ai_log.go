package model

// AICallLog AI调用日志（每次调用模型一条）
type AICallLog struct {
	BaseModel

	// 归属: user:<id> 或 anon:<clientId>
	OwnerKey string `gorm:"size:128;index;comment:调用方"`
	UseCase  string `gorm:"size:64;index;comment:用例"`

	// 调用信息
	Provider  string `gorm:"size:32;comment:调用方式(gemini-rest/gemini-sdk)"`
	ModelName string `gorm:"size:64;comment:模型名称"`

	// 用量统计
	InstructionChars int `gorm:"default:0;comment:指令字符数"`
	ResponseChars    int `gorm:"default:0;comment:响应字符数"`

	// 性能
	DurationMs int64 `gorm:"comment:耗时(毫秒)"`

	// 状态
	Status    string `gorm:"size:32;index;default:success;comment:状态(success/failed)"`
	ErrorKind string `gorm:"size:32;comment:错误类型"`
	ErrorMsg  string `gorm:"size:1024;comment:错误信息"`
}

func (AICallLog) TableName() string {
	return "ai_call_logs"
}

// ==================== 状态常量 ====================

const (
	AICallStatusSuccess = "success"
	AICallStatusFailed  = "failed"
)
