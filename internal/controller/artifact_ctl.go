package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"adcopy_studio_v1/internal/api/dto"
	"adcopy_studio_v1/internal/contract"
	"adcopy_studio_v1/internal/middleware"
	"adcopy_studio_v1/internal/service"
)

// ArtifactController 作品控制器
// 登录用户按账号存取，匿名客户端通过 X-Client-ID 存取本地作品
type ArtifactController struct {
	artifacts *service.ArtifactService
}

func NewArtifactController(artifacts *service.ArtifactService) *ArtifactController {
	return &ArtifactController{artifacts: artifacts}
}

// List 作品列表
// @Summary 作品列表（新的在前）
// @Tags Artifact
// @Produce json
// @Security BearerAuth
// @Param X-Client-ID header string false "匿名客户端标识"
// @Success 200 {object} dto.ArtifactListResponse
// @Failure 400 {object} map[string]interface{}
// @Router /artifacts [get]
func (c *ArtifactController) List(ctx *gin.Context) {
	list, err := c.artifacts.List(ctx.Request.Context(), middleware.GetSession(ctx))
	if err != nil {
		middleware.RespondError(ctx, err)
		return
	}
	if list == nil {
		list = []*dto.ArtifactInfo{}
	}

	ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data": dto.ArtifactListResponse{
			List:  list,
			Total: len(list),
		},
	})
}

// Get 作品详情
// @Summary 作品详情
// @Tags Artifact
// @Produce json
// @Security BearerAuth
// @Param X-Client-ID header string false "匿名客户端标识"
// @Param id path string true "作品ID"
// @Success 200 {object} dto.ArtifactInfo
// @Failure 404 {object} map[string]interface{}
// @Router /artifacts/{id} [get]
func (c *ArtifactController) Get(ctx *gin.Context) {
	artifact, err := c.artifacts.Get(ctx.Request.Context(), middleware.GetSession(ctx), ctx.Param("id"))
	if err != nil {
		middleware.RespondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data":    artifact,
	})
}

// Save 保存作品
// @Summary 保存作品
// @Description payload 必须符合用例的输出结构
// @Tags Artifact
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param X-Client-ID header string false "匿名客户端标识"
// @Param request body dto.SaveArtifactRequest true "作品"
// @Success 200 {object} dto.ArtifactInfo
// @Failure 400 {object} map[string]interface{}
// @Failure 502 {object} map[string]interface{}
// @Router /artifacts [post]
func (c *ArtifactController) Save(ctx *gin.Context) {
	var req dto.SaveArtifactRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "参数错误: " + err.Error(),
		})
		return
	}

	artifact, err := c.artifacts.Save(ctx.Request.Context(), middleware.GetSession(ctx), service.SaveArtifactInput{
		DisplayName: req.DisplayName,
		UseCase:     contract.UseCase(req.UseCase),
		Payload:     req.Payload,
	})
	if err != nil {
		middleware.RespondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "保存成功",
		"data":    artifact,
	})
}

// Delete 删除作品
// @Summary 删除作品
// @Tags Artifact
// @Produce json
// @Security BearerAuth
// @Param X-Client-ID header string false "匿名客户端标识"
// @Param id path string true "作品ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /artifacts/{id} [delete]
func (c *ArtifactController) Delete(ctx *gin.Context) {
	if err := c.artifacts.Delete(ctx.Request.Context(), middleware.GetSession(ctx), ctx.Param("id")); err != nil {
		middleware.RespondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "删除成功",
	})
}
