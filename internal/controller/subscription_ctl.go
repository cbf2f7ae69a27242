package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"adcopy_studio_v1/internal/api/dto"
	"adcopy_studio_v1/internal/middleware"
	"adcopy_studio_v1/internal/service"
)

// SubscriptionController 订阅与用量
type SubscriptionController struct {
	subscriptions *service.SubscriptionService
	usage         *service.UsageService
}

func NewSubscriptionController(subscriptions *service.SubscriptionService, usage *service.UsageService) *SubscriptionController {
	return &SubscriptionController{subscriptions: subscriptions, usage: usage}
}

// Get 当前用户订阅
// @Summary 当前订阅与剩余试用次数
// @Tags Subscription
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.SubscriptionInfo
// @Failure 401 {object} map[string]interface{}
// @Router /subscription [get]
func (c *SubscriptionController) Get(ctx *gin.Context) {
	info, err := c.subscriptions.Get(ctx.Request.Context(), middleware.GetUserID(ctx))
	if err != nil {
		middleware.RespondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data":    info,
	})
}

// Set 设置用户订阅（管理员）
// @Summary 设置用户订阅
// @Description 支付回调的手动替代
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param user_id path int true "用户ID"
// @Param request body dto.SetSubscriptionRequest true "订阅"
// @Success 200 {object} dto.SubscriptionInfo
// @Failure 400 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /admin/subscriptions/{user_id} [put]
func (c *SubscriptionController) Set(ctx *gin.Context) {
	userID, err := strconv.ParseInt(ctx.Param("user_id"), 10, 64)
	if err != nil || userID <= 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "无效的用户 ID",
		})
		return
	}

	var req dto.SetSubscriptionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "参数错误: " + err.Error(),
		})
		return
	}

	info, err := c.subscriptions.Set(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.RespondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "更新成功",
		"data":    info,
	})
}

// Usage 当前用户 AI 用量
// @Summary AI 调用用量
// @Tags Subscription
// @Produce json
// @Security BearerAuth
// @Param days query int false "统计天数，默认 30"
// @Success 200 {object} dto.UsageResponse
// @Router /usage [get]
func (c *SubscriptionController) Usage(ctx *gin.Context) {
	var q dto.UsageQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "参数错误: " + err.Error(),
		})
		return
	}

	resp, err := c.usage.GetUsage(ctx.Request.Context(), middleware.GetSession(ctx).OwnerKey(), q.Days)
	if err != nil {
		middleware.RespondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data":    resp,
	})
}
