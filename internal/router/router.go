package router

import (
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"adcopy_studio_v1/internal/controller"
	"adcopy_studio_v1/internal/middleware"
	"adcopy_studio_v1/internal/model"

	_ "adcopy_studio_v1/docs"
)

// Controllers 路由依赖的控制器
type Controllers struct {
	User         *controller.UserController
	Generation   *controller.GenerationController
	Artifact     *controller.ArtifactController
	Subscription *controller.SubscriptionController
}

// Options 路由依赖的中间件组件
type Options struct {
	Entitlement      middleware.EntitlementResolver
	Limiter          *middleware.CooldownLimiter
	GenerateCooldown time.Duration
	Logger           *zap.Logger
}

// SetupRouter 创建 gin 引擎并注册所有路由
func SetupRouter(ctrls *Controllers, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	RegisterRoutes(r, ctrls, opts)
	return r
}

// RegisterRoutes 注册所有路由
func RegisterRoutes(r *gin.Engine, ctrls *Controllers, opts Options) {
	if opts.Limiter == nil {
		opts.Limiter = middleware.NewCooldownLimiter()
	}

	// 1. Swagger 文档路由
	// 访问 http://localhost:8080/swagger/index.html 即可查看
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 2. API 路由组
	api := r.Group("/api")
	{
		// auth 鉴权组
		auth := api.Group("/auth")
		{
			auth.POST("/register", ctrls.User.Register)
			auth.POST("/login", ctrls.User.Login)
			auth.POST("/refresh", ctrls.User.RefreshToken)
			auth.GET("/profile", middleware.JWTAuth(), ctrls.User.GetProfile)
		}

		// 用例目录
		api.GET("/use-cases", ctrls.Generation.ListUseCases)

		// 生成：可选登录，资格在服务层校验
		api.POST("/generate/:use_case",
			middleware.OptionalAuth(),
			middleware.AuditContext(),
			middleware.WithSession(opts.Entitlement, opts.Logger),
			middleware.GenerationCooldown(opts.Limiter, opts.GenerateCooldown),
			ctrls.Generation.Generate,
		)

		// 作品：登录用户或携带 X-Client-ID 的匿名客户端
		artifacts := api.Group("/artifacts", middleware.OptionalAuth(), middleware.WithSession(nil, opts.Logger))
		{
			artifacts.GET("", ctrls.Artifact.List)
			artifacts.POST("", ctrls.Artifact.Save)
			artifacts.GET("/:id", ctrls.Artifact.Get)
			artifacts.DELETE("/:id", ctrls.Artifact.Delete)
		}

		// 订阅与用量
		api.GET("/subscription", middleware.JWTAuth(), middleware.WithSession(opts.Entitlement, opts.Logger), ctrls.Subscription.Get)
		api.GET("/usage", middleware.JWTAuth(), middleware.WithSession(nil, opts.Logger), ctrls.Subscription.Usage)

		// 管理员
		admin := api.Group("/admin", middleware.JWTAuth(), middleware.RequireRole(model.RoleAdmin), middleware.AuditContext())
		{
			admin.PUT("/subscriptions/:user_id", ctrls.Subscription.Set)
		}
	}
}
