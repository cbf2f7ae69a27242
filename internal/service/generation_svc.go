package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"adcopy_studio_v1/internal/apperr"
	"adcopy_studio_v1/internal/contract"
	"adcopy_studio_v1/internal/model"
	"adcopy_studio_v1/internal/repository"
)

// ==================== 依赖接口 ====================

// TextProvider 生成式文本模型
type TextProvider interface {
	Name() string
	Model() string
	// Generate 发送指令，返回模型原始文本输出
	Generate(ctx context.Context, instruction string) (string, error)
}

// ==================== GenerationService ====================

// GenerationService 用例编排：构建指令 → 调用模型 → 校验结果 → 记录调用
type GenerationService struct {
	provider TextProvider
	logRepo  repository.AICallLogRepository
	logger   *zap.Logger
}

// NewGenerationService logRepo 可为 nil（不记录调用日志）
func NewGenerationService(provider TextProvider, logRepo repository.AICallLogRepository, logger *zap.Logger) *GenerationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GenerationService{provider: provider, logRepo: logRepo, logger: logger}
}

// Generate 执行任意用例；入参不合法时不会调用模型
func (s *GenerationService) Generate(ctx context.Context, owner string, req contract.Request) (contract.Result, error) {
	instruction, err := contract.BuildInstruction(req.UseCase, req.Inputs, req.Count)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	raw, err := s.provider.Generate(ctx, instruction)
	var result contract.Result
	if err == nil {
		result, err = contract.ParseResult(req.UseCase, raw)
	}
	elapsed := time.Since(start)

	s.recordCall(ctx, owner, req.UseCase, instruction, raw, elapsed, err)

	if err != nil {
		s.logger.Warn("generation failed",
			zap.String("use_case", string(req.UseCase)),
			zap.String("owner", owner),
			zap.String("kind", string(apperr.KindOf(err))),
			zap.Duration("duration", elapsed),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("generation succeeded",
		zap.String("use_case", string(req.UseCase)),
		zap.String("owner", owner),
		zap.Duration("duration", elapsed),
	)
	return result, nil
}

// recordCall 日志写入失败不影响生成结果
func (s *GenerationService) recordCall(ctx context.Context, owner string, uc contract.UseCase, instruction, raw string, elapsed time.Duration, callErr error) {
	if s.logRepo == nil {
		return
	}

	log := &model.AICallLog{
		OwnerKey:         owner,
		UseCase:          string(uc),
		Provider:         s.provider.Name(),
		ModelName:        s.provider.Model(),
		InstructionChars: utf8.RuneCountInString(instruction),
		ResponseChars:    utf8.RuneCountInString(raw),
		DurationMs:       elapsed.Milliseconds(),
		Status:           model.AICallStatusSuccess,
	}
	if callErr != nil {
		log.Status = model.AICallStatusFailed
		log.ErrorKind = string(apperr.KindOf(callErr))
		log.ErrorMsg = truncate(callErr.Error(), 1024)
	}

	// 请求已取消时仍需落库
	if err := s.logRepo.Create(context.WithoutCancel(ctx), log); err != nil {
		s.logger.Warn("record ai call failed", zap.String("use_case", string(uc)), zap.Error(err))
	}
}

// ==================== 用例入参 ====================

type CompareAdsInput struct {
	Ad1  string
	Ad2  string
	Goal string
}

type PersonasInput struct {
	ProductDescription string
	Niche              string
	Count              int
}

type ContentAnglesInput struct {
	ProductDescription string
	TargetAudience     string
	Niche              string
	Count              int
}

type TrendInput struct {
	Trend    string
	Niche    string
	Platform string
}

type AdVariationsInput struct {
	ProductDescription string
	Platform           string
	Tone               string
	TargetAudience     string
	Count              int
}

type PolishToneInput struct {
	Text string
	// Tones 为空时使用默认语气
	Tones []string
	Count int
}

type HookInput struct {
	Hook     string
	Platform string
	Niche    string
}

type CampaignInput struct {
	ProductDescription string
	TargetAudience     string
	CampaignGoal       string
	Tone               string
	Niche              string
}

// ==================== 用例操作 ====================

func (s *GenerationService) CompareAds(ctx context.Context, owner string, in CompareAdsInput) (*contract.AdComparison, error) {
	return generateAs[*contract.AdComparison](ctx, s, owner, contract.CompareAds, inputs(
		"ad1", in.Ad1,
		"ad2", in.Ad2,
		"goal", in.Goal,
	), 0)
}

func (s *GenerationService) GeneratePersonas(ctx context.Context, owner string, in PersonasInput) (*contract.PersonaSet, error) {
	return generateAs[*contract.PersonaSet](ctx, s, owner, contract.GeneratePersonas, inputs(
		"productDescription", in.ProductDescription,
		"niche", in.Niche,
	), in.Count)
}

func (s *GenerationService) GenerateContentAngles(ctx context.Context, owner string, in ContentAnglesInput) (*contract.ContentAngleList, error) {
	return generateAs[*contract.ContentAngleList](ctx, s, owner, contract.GenerateContentAngles, inputs(
		"productDescription", in.ProductDescription,
		"targetAudience", in.TargetAudience,
		"niche", in.Niche,
	), in.Count)
}

func (s *GenerationService) RewriteTrend(ctx context.Context, owner string, in TrendInput) (*contract.TrendRewrite, error) {
	return generateAs[*contract.TrendRewrite](ctx, s, owner, contract.RewriteTrend, inputs(
		"trend", in.Trend,
		"niche", in.Niche,
		"platform", in.Platform,
	), 0)
}

func (s *GenerationService) GenerateAdVariations(ctx context.Context, owner string, in AdVariationsInput) (*contract.AdVariationSet, error) {
	return generateAs[*contract.AdVariationSet](ctx, s, owner, contract.GenerateAdVariations, inputs(
		"productDescription", in.ProductDescription,
		"platform", in.Platform,
		"tone", in.Tone,
		"targetAudience", in.TargetAudience,
	), in.Count)
}

func (s *GenerationService) PolishTone(ctx context.Context, owner string, in PolishToneInput) (*contract.ToneVariants, error) {
	return generateAs[*contract.ToneVariants](ctx, s, owner, contract.PolishTone, inputs(
		"text", in.Text,
		"tones", strings.Join(in.Tones, ", "),
	), in.Count)
}

func (s *GenerationService) AnalyzeHook(ctx context.Context, owner string, in HookInput) (*contract.HookAnalysis, error) {
	return generateAs[*contract.HookAnalysis](ctx, s, owner, contract.AnalyzeHook, inputs(
		"hook", in.Hook,
		"platform", in.Platform,
		"niche", in.Niche,
	), 0)
}

func (s *GenerationService) BuildCampaignPack(ctx context.Context, owner string, in CampaignInput) (*contract.CampaignPack, error) {
	return generateAs[*contract.CampaignPack](ctx, s, owner, contract.BuildCampaignPack, inputs(
		"productDescription", in.ProductDescription,
		"targetAudience", in.TargetAudience,
		"campaignGoal", in.CampaignGoal,
		"tone", in.Tone,
		"niche", in.Niche,
	), 0)
}

// ==================== 辅助方法 ====================

func generateAs[T contract.Result](ctx context.Context, s *GenerationService, owner string, uc contract.UseCase, in contract.Inputs, count int) (T, error) {
	var zero T
	result, err := s.Generate(ctx, owner, contract.Request{UseCase: uc, Inputs: in, Count: count})
	if err != nil {
		return zero, err
	}
	typed, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("unexpected result type %T for %s", result, uc)
	}
	return typed, nil
}

// inputs 按 key/value 成对构建入参，空值视为未提供
func inputs(kv ...string) contract.Inputs {
	in := make(contract.Inputs, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		if kv[i+1] != "" {
			in[kv[i]] = kv[i+1]
		}
	}
	return in
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
