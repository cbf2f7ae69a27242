package gemini

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"adcopy_studio_v1/internal/apperr"
)

// SDKClient 基于官方 generative-ai-go SDK
type SDKClient struct {
	cfg    Config
	client *genai.Client
}

// NewSDKClient 创建 SDK 客户端
// 只有当 ProxyURL 不为空时才自定义 Transport，否则直连
func NewSDKClient(ctx context.Context, cfg Config) (*SDKClient, error) {
	cfg = cfg.withDefaults()
	if cfg.APIKey == "" {
		return nil, apperr.ProviderUnavailable("Gemini API Key 未配置", nil)
	}

	opts := []option.ClientOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.ProxyURL != "" {
		proxyURL, err := url.Parse(cfg.ProxyURL)
		if err != nil {
			return nil, fmt.Errorf("代理地址无效: %w", err)
		}
		// 自定义 HTTPClient 时 SDK 不再附加 Key，需要自己带上
		opts = append(opts, option.WithHTTPClient(&http.Client{
			Timeout: cfg.Timeout,
			Transport: &apiKeyTransport{
				key:  cfg.APIKey,
				base: &http.Transport{Proxy: http.ProxyURL(proxyURL)},
			},
		}))
	}

	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, apperr.ProviderUnavailable("Gemini 初始化失败", err)
	}
	return &SDKClient{cfg: cfg, client: client}, nil
}

func (c *SDKClient) Name() string  { return "gemini-sdk" }
func (c *SDKClient) Model() string { return c.cfg.Model }

// Generate 发送一条指令，返回模型输出的原始文本
func (c *SDKClient) Generate(ctx context.Context, prompt string) (string, error) {
	model := c.client.GenerativeModel(c.cfg.Model)
	model.ResponseMIMEType = "application/json"
	if c.cfg.Temperature != nil {
		model.SetTemperature(*c.cfg.Temperature)
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", apperr.ProviderUnavailable("AI 生成失败", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", apperr.MalformedResponse("AI 返回为空", nil)
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			b.WriteString(string(txt))
		}
	}
	if strings.TrimSpace(b.String()) == "" {
		return "", apperr.MalformedResponse("AI 返回为空", nil)
	}
	return b.String(), nil
}

// Close 释放底层连接
func (c *SDKClient) Close() error {
	return c.client.Close()
}

// apiKeyTransport 为每个请求附加 x-goog-api-key
type apiKeyTransport struct {
	key  string
	base http.RoundTripper
}

func (t *apiKeyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	r.Header.Set("x-goog-api-key", t.key)
	return t.base.RoundTrip(r)
}
