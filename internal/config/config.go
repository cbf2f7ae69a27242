package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix 环境变量前缀，例如 ADCOPY_AI_API_KEY 对应 ai.api_key
const EnvPrefix = "ADCOPY"

// ==================== 配置结构 ====================

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Storage  StorageConfig  `mapstructure:"storage"`
	AI       AIConfig       `mapstructure:"ai"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Trial    TrialConfig    `mapstructure:"trial"`
	Limit    LimitConfig    `mapstructure:"limit"`
	Log      LogConfig      `mapstructure:"log"`
	Task     TaskConfig     `mapstructure:"task"`
	Admin    AdminConfig    `mapstructure:"admin"`
}

type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // debug | release | test
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DatabaseConfig 远端库（postgres），DSN 为空时只使用本地库
type DatabaseConfig struct {
	DSN      string `mapstructure:"dsn"`
	LogLevel string `mapstructure:"log_level"` // silent | error | warn | info
}

// StorageConfig 本地 sqlite 存储
type StorageConfig struct {
	LocalPath       string `mapstructure:"local_path"`
	FallbackToLocal bool   `mapstructure:"fallback_to_local"`
}

type AIConfig struct {
	APIKey       string        `mapstructure:"api_key"`
	Model        string        `mapstructure:"model"`
	Transport    string        `mapstructure:"transport"` // rest | sdk
	BaseURL      string        `mapstructure:"base_url"`
	ProxyURL     string        `mapstructure:"proxy_url"`
	Timeout      time.Duration `mapstructure:"timeout"`
	MaxRetries   int           `mapstructure:"max_retries"`
	RetryWait    time.Duration `mapstructure:"retry_wait"`
	RetryMaxWait time.Duration `mapstructure:"retry_max_wait"`
	Temperature  float32       `mapstructure:"temperature"`
}

type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	AccessTTL  time.Duration `mapstructure:"access_ttl"`
	RefreshTTL time.Duration `mapstructure:"refresh_ttl"`
	Issuer     string        `mapstructure:"issuer"`
}

// TrialConfig 未订阅用户的免费生成次数
type TrialConfig struct {
	FreeGenerations int `mapstructure:"free_generations"`
}

type LimitConfig struct {
	GenerateCooldown time.Duration `mapstructure:"generate_cooldown"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json | console
}

type TaskConfig struct {
	Enabled                bool   `mapstructure:"enabled"`
	SubscriptionExpirySpec string `mapstructure:"subscription_expiry_spec"`
}

// AdminConfig 启动时自动创建的管理员，用户名或密码为空则跳过
type AdminConfig struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

const (
	TransportREST = "rest"
	TransportSDK  = "sdk"
)

// ==================== 加载 ====================

// SetDefaults 注册默认值
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.shutdown_timeout", 30*time.Second)

	v.SetDefault("database.dsn", "")
	v.SetDefault("database.log_level", "warn")

	v.SetDefault("storage.local_path", "data/adcopy_local.db")
	v.SetDefault("storage.fallback_to_local", true)

	v.SetDefault("ai.api_key", "")
	v.SetDefault("ai.model", "gemini-2.5-flash")
	v.SetDefault("ai.transport", TransportREST)
	v.SetDefault("ai.base_url", "")
	v.SetDefault("ai.proxy_url", "")
	v.SetDefault("ai.timeout", 60*time.Second)
	v.SetDefault("ai.max_retries", 2)
	v.SetDefault("ai.retry_wait", 500*time.Millisecond)
	v.SetDefault("ai.retry_max_wait", 5*time.Second)
	v.SetDefault("ai.temperature", 0.7)

	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.access_ttl", 2*time.Hour)
	v.SetDefault("jwt.refresh_ttl", 7*24*time.Hour)
	v.SetDefault("jwt.issuer", "adcopy-studio")

	v.SetDefault("trial.free_generations", 5)
	v.SetDefault("limit.generate_cooldown", 3*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("task.enabled", true)
	v.SetDefault("task.subscription_expiry_spec", "0 */10 * * * *")

	v.SetDefault("admin.username", "")
	v.SetDefault("admin.password", "")
}

// Load 读取配置：默认值 < config 文件 < 环境变量
// path 为空时在当前目录和 ./config 下查找 config.yaml，找不到不报错
func Load(path string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate 校验取值范围
func (c *Config) Validate() error {
	switch c.AI.Transport {
	case TransportREST, TransportSDK:
	default:
		return fmt.Errorf("ai.transport 仅支持 rest 或 sdk，当前为 %q", c.AI.Transport)
	}
	if c.Trial.FreeGenerations < 0 {
		return fmt.Errorf("trial.free_generations 不能为负数")
	}
	if c.AI.MaxRetries < 0 {
		return fmt.Errorf("ai.max_retries 不能为负数")
	}
	if c.Storage.LocalPath == "" && c.Database.DSN == "" {
		return fmt.Errorf("storage.local_path 与 database.dsn 至少配置一个")
	}
	return nil
}
