package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"cosmoconnect/internal/ai"
	"cosmoconnect/internal/config"
	"cosmoconnect/internal/handler"
	"cosmoconnect/internal/pkg/cache"
	"cosmoconnect/internal/pkg/mongodb"
	"cosmoconnect/internal/pkg/nasa"
	"cosmoconnect/internal/repository"
	"cosmoconnect/internal/server/middleware"
	"cosmoconnect/internal/service"
)

// Server HTTP 服务器
type Server struct {
	cfg    *config.Config
	engine *gin.Engine
	mongo  *mongodb.Client
	redis  *cache.RedisCache
	ai     *ai.Client
}

// New 创建服务器实例
// MongoDB 和 Redis 都是可选的：连接失败时相关功能降级（成就不可用，会话记录由客户端携带）
func New(ctx context.Context, cfg *config.Config) (*Server, error) {
	// 设置 Gin 模式
	switch cfg.Server.Mode {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	aiClient, err := ai.NewClient(ctx, &cfg.AI)
	if err != nil {
		return nil, fmt.Errorf("failed to create AI client: %w", err)
	}

	srv := &Server{
		cfg:    cfg,
		engine: gin.New(),
		ai:     aiClient,
	}

	// 初始化 MongoDB (可选)
	if cfg.Mongo.URI != "" {
		client, err := mongodb.New(ctx, &cfg.Mongo)
		if err != nil {
			log.Warn().Err(err).Msg("failed to connect to MongoDB, achievements disabled")
		} else {
			srv.mongo = client
			log.Info().Str("database", cfg.Mongo.Database).Msg("connected to MongoDB")

			if err := mongodb.EnsureIndexes(ctx, client.Database()); err != nil {
				log.Warn().Err(err).Msg("failed to ensure indexes")
			}
		}
	}

	// 初始化 Redis (可选)
	if cfg.Redis.Addr != "" {
		rc, err := cache.NewRedisCache(&cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("failed to connect to Redis, server-side sessions disabled")
		} else {
			srv.redis = rc
			log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to Redis")
		}
	}

	srv.setupRoutes()
	return srv, nil
}

// setupRoutes 设置路由
func (s *Server) setupRoutes() {
	// 全局中间件
	s.engine.Use(middleware.Recovery())
	s.engine.Use(middleware.RequestID())
	s.engine.Use(middleware.Logger())
	s.engine.Use(middleware.CORS())
	s.engine.Use(middleware.Explorer())

	// 存储层；未连接时保持接口值为 nil
	var (
		transcripts  service.TranscriptStore
		explorers    service.AchievementStore
		nasaOpts     []nasa.Option
		dependencies = map[string]handler.Pinger{"mongo": nil, "redis": nil}
	)
	if s.redis != nil {
		transcripts = repository.NewTranscriptRepo(s.redis, s.cfg.Session.TTL)
		nasaOpts = append(nasaOpts, nasa.WithCache(s.redis))
		dependencies["redis"] = s.redis
	}
	if s.mongo != nil {
		explorers = repository.NewExplorerRepo(s.mongo.Database())
		dependencies["mongo"] = s.mongo
	}
	nasaClient := nasa.NewClient(&s.cfg.NASA, nasaOpts...)

	// 业务层
	companionSvc := service.NewCompanionService(s.ai, nasaClient)
	achievementSvc := service.NewAchievementService(explorers)
	chatSvc := service.NewChatService(s.ai, transcripts, achievementSvc)
	storySvc := service.NewStoryService(s.ai, transcripts, achievementSvc)
	spaceSvc := service.NewSpaceService(nasaClient, companionSvc)

	// 健康检查
	healthHandler := handler.NewHealthHandler(s.ai.Provider(), dependencies)
	s.engine.GET("/health", healthHandler.Health)
	s.engine.GET("/ready", healthHandler.Ready)

	// Swagger 文档
	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	companion := handler.NewCompanionHandler(companionSvc)
	chat := handler.NewChatHandler(chatSvc)
	story := handler.NewStoryHandler(storySvc)
	space := handler.NewSpaceHandler(spaceSvc)
	achievements := handler.NewAchievementHandler(achievementSvc)

	// API v1
	v1 := s.engine.Group("/api/v1")
	{
		v1.GET("/sunny/mood", companion.SunnyMood)
		v1.GET("/perspectives/:character", companion.Perspective)
		v1.GET("/aurora/story", companion.AuroraStory)
		v1.GET("/facts/planets/:name", companion.PlanetFact)
		v1.GET("/facts/jwst/:part", companion.JWSTFact)
		v1.GET("/facts/parker", companion.ParkerFact)

		v1.POST("/chat/:companion", chat.Chat)
		v1.DELETE("/sessions/:id", chat.ResetSession)
		v1.POST("/story/stream", story.Stream)

		v1.GET("/space/apod", space.APOD)
		v1.GET("/space/cme", space.CMEs)
		v1.GET("/space/overview", space.Overview)

		v1.GET("/explorers/:id/achievements", achievements.List)
		v1.POST("/explorers/:id/achievements", achievements.Award)
	}
}

// Run 启动服务器
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.engine,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}

	// 启动服务器
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// 等待关闭信号或错误
	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down server...")
		err := srv.Shutdown(context.Background())
		s.Close()
		return err
	case err := <-errCh:
		s.Close()
		return err
	}
}

// Close 关闭外部连接
func (s *Server) Close() {
	if s.mongo != nil {
		if err := s.mongo.Close(context.Background()); err != nil {
			log.Error().Err(err).Msg("failed to close MongoDB connection")
		}
	}
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close Redis connection")
		}
	}
	if err := s.ai.Close(); err != nil {
		log.Error().Err(err).Msg("failed to close AI client")
	}
}

// Engine 获取 Gin 引擎 (用于测试)
func (s *Server) Engine() *gin.Engine {
	return s.engine
}
