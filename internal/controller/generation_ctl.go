package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"adcopy_studio_v1/internal/api/dto"
	"adcopy_studio_v1/internal/apperr"
	"adcopy_studio_v1/internal/contract"
	"adcopy_studio_v1/internal/middleware"
	"adcopy_studio_v1/internal/service"
	"adcopy_studio_v1/pkg/schema"
)

// ==================== GenerationController 生成控制器 ====================

type GenerationController struct {
	generator *service.GatedGenerator
	artifacts *service.ArtifactService
	logger    *zap.Logger
}

func NewGenerationController(generator *service.GatedGenerator, artifacts *service.ArtifactService, logger *zap.Logger) *GenerationController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GenerationController{generator: generator, artifacts: artifacts, logger: logger}
}

// ListUseCases 用例目录
// @Summary 用例目录
// @Description 全部生成用例及其入参、数量范围与输出结构
// @Tags Generate
// @Produce json
// @Success 200 {array} dto.UseCaseInfo
// @Router /use-cases [get]
func (c *GenerationController) ListUseCases(ctx *gin.Context) {
	defs := contract.UseCases()
	list := make([]dto.UseCaseInfo, 0, len(defs))
	for _, def := range defs {
		list = append(list, toUseCaseInfo(def))
	}

	ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data":    list,
	})
}

// Generate 执行用例
// @Summary 执行生成用例
// @Description 需要登录且有有效订阅或剩余试用次数；save=true 时生成后直接保存
// @Tags Generate
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param use_case path string true "用例" Enums(compareAds, generatePersonas, generateContentAngles, rewriteTrend, generateAdVariations, polishTone, analyzeHook, buildCampaignPack)
// @Param request body dto.GenerateRequest true "入参"
// @Success 200 {object} dto.GenerateResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 402 {object} map[string]interface{}
// @Failure 429 {object} map[string]interface{}
// @Failure 502 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /generate/{use_case} [post]
func (c *GenerationController) Generate(ctx *gin.Context) {
	useCase := contract.UseCase(ctx.Param("use_case"))
	if _, ok := contract.Lookup(useCase); !ok {
		middleware.RespondError(ctx, apperr.Validation("use_case", "unknown use case "+string(useCase)))
		return
	}

	var req dto.GenerateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "参数错误: " + err.Error(),
		})
		return
	}

	sess := middleware.GetSession(ctx)
	result, err := c.generator.Generate(ctx.Request.Context(), sess, contract.Request{
		UseCase: useCase,
		Inputs:  req.Inputs,
		Count:   req.Count,
	})
	if err != nil {
		middleware.RespondError(ctx, err)
		return
	}

	resp := dto.GenerateResponse{UseCase: useCase, Result: result}
	if req.Save {
		artifact, err := c.artifacts.SaveResult(ctx.Request.Context(), sess, req.DisplayName, result)
		if err != nil {
			// 生成结果照常返回，客户端可稍后手动保存
			c.logger.Warn("save generated artifact failed",
				zap.String("use_case", string(useCase)),
				zap.String("owner", sess.OwnerKey()),
				zap.Error(err),
			)
			resp.SaveError = err.Error()
		} else {
			resp.Artifact = artifact
		}
	}

	ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "生成成功",
		"data":    resp,
	})
}

func toUseCaseInfo(def *contract.Definition) dto.UseCaseInfo {
	info := dto.UseCaseInfo{
		UseCase:      def.UseCase,
		Description:  def.Description,
		Required:     def.Required,
		Optional:     def.Optional,
		DefaultCount: def.DefaultCount,
		MaxCount:     def.MaxCount,
		Kind:         "single",
		Shape:        schema.Describe(def.Schema),
	}
	if def.Campaign {
		info.Kind = "campaign"
	}
	if len(def.InputEnums) > 0 {
		info.InputEnums = make(map[string][]string, len(def.InputEnums))
		for name, enum := range def.InputEnums {
			info.InputEnums[name] = enum.Values()
		}
	}
	if def.UseCase == contract.PolishTone {
		if info.InputEnums == nil {
			info.InputEnums = map[string][]string{}
		}
		info.InputEnums["tones"] = contract.Tones.Values()
	}
	return info
}
