package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"adcopy_studio_v1/internal/apperr"
)

// ==================== 配置 ====================

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel   = "gemini-2.5-flash"
)

// Config Gemini 客户端配置
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	// ProxyURL 为空则直连
	ProxyURL string
	Timeout  time.Duration

	// 仅对传输失败、429、5xx 重试，指数退避
	MaxRetries   int
	RetryWait    time.Duration
	RetryMaxWait time.Duration

	Temperature *float32
}

func (c *Config) withDefaults() Config {
	cfg := *c
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.RetryWait == 0 {
		cfg.RetryWait = 500 * time.Millisecond
	}
	if cfg.RetryMaxWait == 0 {
		cfg.RetryMaxWait = 8 * time.Second
	}
	return cfg
}

// ==================== REST 客户端 ====================

// RESTClient 基于 resty 调用 generateContent 接口
type RESTClient struct {
	cfg  Config
	http *resty.Client
}

// NewRESTClient 创建 REST 客户端
func NewRESTClient(cfg Config) *RESTClient {
	cfg = cfg.withDefaults()

	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json").
		SetRetryCount(cfg.MaxRetries).
		SetRetryWaitTime(cfg.RetryWait).
		SetRetryMaxWaitTime(cfg.RetryMaxWait).
		AddRetryCondition(shouldRetry)

	if cfg.ProxyURL != "" {
		client.SetProxy(cfg.ProxyURL)
	}

	return &RESTClient{cfg: cfg, http: client}
}

// shouldRetry 传输失败或服务端暂时不可用时重试
func shouldRetry(resp *resty.Response, err error) bool {
	if err != nil {
		return !errors.Is(err, context.Canceled)
	}
	code := resp.StatusCode()
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func (c *RESTClient) Name() string  { return "gemini-rest" }
func (c *RESTClient) Model() string { return c.cfg.Model }

// Generate 发送一条指令，返回模型输出的原始文本
func (c *RESTClient) Generate(ctx context.Context, prompt string) (string, error) {
	if c.cfg.APIKey == "" {
		return "", apperr.ProviderUnavailable("Gemini API Key 未配置", nil)
	}

	body := GenerateContentRequest{
		Contents: []Content{{Role: "user", Parts: []Part{{Text: prompt}}}},
		GenerationConfig: &GenerationConfig{
			ResponseMimeType: "application/json",
			Temperature:      c.cfg.Temperature,
		},
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("x-goog-api-key", c.cfg.APIKey).
		SetBody(body).
		Post(fmt.Sprintf("/models/%s:generateContent", c.cfg.Model))
	if err != nil {
		return "", apperr.ProviderUnavailable("请求 Gemini 失败", err)
	}

	var out GenerateContentResponse
	if jsonErr := json.Unmarshal(resp.Body(), &out); jsonErr != nil && resp.IsSuccess() {
		return "", apperr.MalformedResponse("解析 Gemini 响应失败", jsonErr)
	}

	if resp.IsError() {
		msg := fmt.Sprintf("Gemini API 错误 [%d]", resp.StatusCode())
		if out.Error != nil && out.Error.Message != "" {
			msg += ": " + out.Error.Message
		}
		return "", apperr.ProviderUnavailable(msg, nil)
	}

	text := out.Text()
	if strings.TrimSpace(text) == "" {
		reason := ""
		if len(out.Candidates) > 0 {
			reason = out.Candidates[0].FinishReason
		}
		return "", apperr.MalformedResponse("Gemini 无生成结果 "+reason, nil)
	}
	return text, nil
}
