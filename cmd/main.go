package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"adcopy_studio_v1/internal/config"
	"adcopy_studio_v1/internal/controller"
	"adcopy_studio_v1/internal/middleware"
	"adcopy_studio_v1/internal/model"
	"adcopy_studio_v1/internal/repository"
	"adcopy_studio_v1/internal/router"
	"adcopy_studio_v1/internal/service"
	"adcopy_studio_v1/internal/task"
	"adcopy_studio_v1/pkg/database"
	"adcopy_studio_v1/pkg/gemini"
	"adcopy_studio_v1/pkg/logger"
)

// @title AdCopy Studio API
// @version 1.0
// @description 营销文案生成服务：用例生成、作品保存、订阅与用量
// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer {token}
func main() {
	configPath := flag.String("config", "", "配置文件路径（默认查找 ./config.yaml）")
	flag.Parse()

	// 1. 加载配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 2. 初始化日志
	zl, err := logger.New(logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	// 3. 初始化数据库与依赖
	deps, err := initDependencies(cfg, zl)
	if err != nil {
		zl.Fatal("初始化依赖失败", zap.Error(err))
	}
	defer deps.Close()

	// 4. 启动定时任务
	tasks := initTasks(cfg, deps)
	if err := tasks.Start(); err != nil {
		zl.Fatal("定时任务启动失败", zap.Error(err))
	}
	defer tasks.Stop()

	// 5. 初始化路由
	gin.SetMode(cfg.Server.Mode)
	r := router.SetupRouter(deps.Controllers, router.Options{
		Entitlement:      deps.Services.Entitlement,
		Limiter:          deps.Limiter,
		GenerateCooldown: cfg.Limit.GenerateCooldown,
		Logger:           zl,
	})

	// 6. 启动服务
	startServer(r, cfg.Server, zl)
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	// RemoteDB 未配置 DSN 时为 nil
	RemoteDB *gorm.DB
	LocalDB  *gorm.DB

	Repos       *Repositories
	Services    *Services
	Controllers *router.Controllers
	Limiter     *middleware.CooldownLimiter
	Provider    service.TextProvider
	Logger      *zap.Logger
}

// Repositories 仓库集合
type Repositories struct {
	User           repository.UserRepository
	Subscription   repository.SubscriptionRepository
	AICallLog      repository.AICallLogRepository
	RemoteArtifact repository.ArtifactRepository
	LocalArtifact  repository.ArtifactRepository
}

// Services 服务集合
type Services struct {
	User         *service.UserService
	Entitlement  *service.EntitlementService
	Generation   *service.GenerationService
	Gated        *service.GatedGenerator
	Artifact     *service.ArtifactService
	Subscription *service.SubscriptionService
	Usage        *service.UsageService
}

// Close 释放 SDK 客户端与数据库连接
func (d *Dependencies) Close() {
	if c, ok := d.Provider.(interface{ Close() error }); ok {
		_ = c.Close()
	}
	for _, db := range []*gorm.DB{d.RemoteDB, d.LocalDB} {
		if db == nil {
			continue
		}
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}

// ==================== 初始化函数 ====================

// 账户相关表（用户、订阅、调用日志）与作品表
var (
	accountModels  = []interface{}{&model.SysUser{}, &model.Subscription{}, &model.AICallLog{}}
	artifactModels = []interface{}{&model.SavedArtifact{}}
)

// initDatabase 初始化数据库
// 配置了 DSN 时账户数据与登录用户作品存远端；否则全部落在本地 sqlite
func initDatabase(cfg *config.Config, zl *zap.Logger) (remote, local *gorm.DB, err error) {
	callbacks := []database.Callback{middleware.RegisterAuditCallbacks}

	if cfg.Database.DSN != "" {
		remote, err = database.OpenPostgres(cfg.Database.DSN, database.Options{
			LogLevel:  cfg.Database.LogLevel,
			Models:    append(append([]interface{}{}, accountModels...), artifactModels...),
			Callbacks: callbacks,
		})
		if err != nil {
			return nil, nil, err
		}
		zl.Info("远端数据库连接成功")
	}

	if cfg.Storage.LocalPath != "" {
		models := artifactModels
		if remote == nil {
			models = append(append([]interface{}{}, accountModels...), artifactModels...)
		}
		local, err = database.OpenSQLite(cfg.Storage.LocalPath, database.Options{
			LogLevel:  cfg.Database.LogLevel,
			Models:    models,
			Callbacks: callbacks,
		})
		if err != nil {
			return nil, nil, err
		}
		zl.Info("本地数据库已就绪", zap.String("path", cfg.Storage.LocalPath))
	}
	return remote, local, nil
}

// initDependencies 初始化所有依赖
func initDependencies(cfg *config.Config, zl *zap.Logger) (*Dependencies, error) {
	middleware.SetJWTConfig(&middleware.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenTTL:  cfg.JWT.AccessTTL,
		RefreshTokenTTL: cfg.JWT.RefreshTTL,
		Issuer:          cfg.JWT.Issuer,
	})
	if cfg.JWT.Secret == "" {
		zl.Warn("jwt.secret 未配置，使用默认密钥")
	}

	remoteDB, localDB, err := initDatabase(cfg, zl)
	if err != nil {
		return nil, err
	}

	// -------- Repo 层 --------
	repos := initRepositories(remoteDB, localDB)

	// -------- AI Provider --------
	provider := initProvider(cfg.AI, zl)

	// -------- 业务服务 --------
	services := &Services{
		User:        service.NewUserService(repos.User),
		Entitlement: service.NewEntitlementService(repos.Subscription, repos.AICallLog, cfg.Trial.FreeGenerations),
		Generation:  service.NewGenerationService(provider, repos.AICallLog, zl.Named("generation")),
		Artifact:    service.NewArtifactService(repos.RemoteArtifact, repos.LocalArtifact, cfg.Storage.FallbackToLocal, zl.Named("artifact")),
		Usage:       service.NewUsageService(repos.AICallLog),
	}
	services.Gated = service.NewGatedGenerator(services.Entitlement, services.Generation)
	services.Subscription = service.NewSubscriptionService(repos.Subscription, repos.User, services.Entitlement, zl.Named("subscription"))

	if err := services.User.EnsureAdmin(context.Background(), cfg.Admin.Username, cfg.Admin.Password); err != nil {
		return nil, err
	}

	// -------- Controller 层 --------
	controllers := initControllers(services, zl)

	return &Dependencies{
		RemoteDB:    remoteDB,
		LocalDB:     localDB,
		Repos:       repos,
		Services:    services,
		Controllers: controllers,
		Limiter:     middleware.NewCooldownLimiter(),
		Provider:    provider,
		Logger:      zl,
	}, nil
}

// initRepositories 初始化所有仓库
func initRepositories(remoteDB, localDB *gorm.DB) *Repositories {
	accountDB := remoteDB
	if accountDB == nil {
		accountDB = localDB
	}

	repos := &Repositories{
		User:         repository.NewUserRepository(accountDB),
		Subscription: repository.NewSubscriptionRepository(accountDB),
		AICallLog:    repository.NewAICallLogRepository(accountDB),
	}
	if remoteDB != nil {
		repos.RemoteArtifact = repository.NewArtifactRepository(remoteDB)
	}
	if localDB != nil {
		repos.LocalArtifact = repository.NewArtifactRepository(localDB)
	}
	return repos
}

// initProvider 按 ai.transport 选择 REST 或 SDK 客户端
func initProvider(ai config.AIConfig, zl *zap.Logger) service.TextProvider {
	gcfg := gemini.Config{
		APIKey:       ai.APIKey,
		Model:        ai.Model,
		BaseURL:      ai.BaseURL,
		ProxyURL:     ai.ProxyURL,
		Timeout:      ai.Timeout,
		MaxRetries:   ai.MaxRetries,
		RetryWait:    ai.RetryWait,
		RetryMaxWait: ai.RetryMaxWait,
		Temperature:  &ai.Temperature,
	}
	if ai.APIKey == "" {
		zl.Warn("ai.api_key 未配置，生成请求将返回 provider_unavailable")
	}

	if ai.Transport == config.TransportSDK {
		client, err := gemini.NewSDKClient(context.Background(), gcfg)
		if err == nil {
			return client
		}
		zl.Warn("SDK 客户端初始化失败，改用 REST", zap.Error(err))
	}
	return gemini.NewRESTClient(gcfg)
}

// initControllers 初始化所有控制器
func initControllers(svc *Services, zl *zap.Logger) *router.Controllers {
	return &router.Controllers{
		User:         controller.NewUserController(svc.User),
		Generation:   controller.NewGenerationController(svc.Gated, svc.Artifact, zl.Named("controller")),
		Artifact:     controller.NewArtifactController(svc.Artifact),
		Subscription: controller.NewSubscriptionController(svc.Subscription, svc.Usage),
	}
}

// ==================== 定时任务 ====================

// initTasks 初始化定时任务
func initTasks(cfg *config.Config, deps *Dependencies) *task.TaskManager {
	tm := task.NewTaskManager(deps.Logger.Named("task"))

	// 冷却表清理
	tm.Register("limiter_sweep", task.NewLimiterSweepTask(deps.Limiter, cfg.Limit.GenerateCooldown, deps.Logger.Named("limiter")))

	// 订阅过期
	if cfg.Task.Enabled {
		tm.Register("subscription_expiry", task.NewSubscriptionExpiryTask(
			deps.Repos.Subscription,
			cfg.Task.SubscriptionExpirySpec,
			deps.Logger.Named("subscription_expiry"),
		))
	}
	return tm
}

// ==================== 服务启动 ====================

// startServer 启动服务
func startServer(r *gin.Engine, cfg config.ServerConfig, zl *zap.Logger) {
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	// 异步启动服务
	go func() {
		zl.Info("服务启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("服务启动失败", zap.Error(err))
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zl.Info("正在关闭服务...")

	timeout := cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zl.Error("服务强制关闭", zap.Error(err))
		return
	}

	zl.Info("服务已退出")
}
