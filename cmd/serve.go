package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lshigami/testportal/config"
	"github.com/lshigami/testportal/database"
	"github.com/lshigami/testportal/internal/cache"
	adminctrl "github.com/lshigami/testportal/internal/controller/admin"
	userctrl "github.com/lshigami/testportal/internal/controller/user"
	"github.com/lshigami/testportal/internal/grading"
	"github.com/lshigami/testportal/internal/messaging"
	"github.com/lshigami/testportal/internal/repository"
	"github.com/lshigami/testportal/internal/service"
	"github.com/lshigami/testportal/internal/similarity"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
)

func runServer(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	app := fx.New(
		fx.Supply(cfg),

		// Core Application Components
		fx.Provide(
			database.NewDatabase,
			NewCacheStore,
			NewPublisher,
			messaging.NewEvents,
			NewRemoteSimilarity,
			NewAttemptScorer,
			NewGinEngine,
		),

		// Repositories Layer
		fx.Provide(
			repository.NewTestRepository,
			repository.NewTestResultRepository,
			repository.NewReviewRequestRepository,
		),

		// Services Layer
		fx.Provide(
			service.NewScoreConverterService,
			service.NewAdminTestService,
			service.NewUserTestService,
			service.NewTestSubmissionService,
			service.NewResultService,
			service.NewReviewService,
		),

		// API Controllers Layer
		fx.Provide(
			adminctrl.NewAdminTestController,
			adminctrl.NewAdminReviewController,
			userctrl.NewUserTestController,
			userctrl.NewUserResultController,
		),

		fx.Invoke(database.AutoMigrate),
		fx.Invoke(RegisterRoutesAndStartServer),
	)

	startCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		log.Error().Err(err).Msg("Failed to start application")
		return err
	}

	// Wait for a shutdown signal
	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer stopCancel()
	return app.Stop(stopCtx)
}

// NewCacheStore connects to Redis when REDIS_ADDR is set. Without it the
// similarity results are not cached.
func NewCacheStore(lc fx.Lifecycle, cfg *config.Config) cache.Store {
	if cfg.Redis.Addr == "" {
		log.Warn().Msg("REDIS_ADDR is not set. Similarity results will not be cached.")
		return nil
	}
	client, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis unavailable. Similarity results will not be cached.")
		return nil
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error { return client.Close() },
	})
	return client
}

// NewPublisher connects to RabbitMQ when RABBITMQ_URL is set and otherwise
// drops events.
func NewPublisher(lc fx.Lifecycle, cfg *config.Config) messaging.Publisher {
	if cfg.RabbitMQ.URL == "" {
		log.Warn().Msg("RABBITMQ_URL is not set. Domain events will not be published.")
		return messaging.NoopPublisher{}
	}
	client, err := messaging.NewRabbitMQClient(cfg.RabbitMQ.URL)
	if err != nil {
		log.Warn().Err(err).Msg("RabbitMQ unavailable. Domain events will not be published.")
		return messaging.NoopPublisher{}
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error { return client.Close() },
	})
	return client
}

// NewRemoteSimilarity builds the configured similarity provider. A broken
// provider configuration leaves grading on the lexical path.
func NewRemoteSimilarity(lc fx.Lifecycle, cfg *config.Config, store cache.Store) grading.RemoteSimilarity {
	remote, err := similarity.New(context.Background(), cfg.Similarity, store)
	if err != nil {
		log.Warn().Err(err).Str("provider", cfg.Similarity.Provider).Msg("Similarity provider unavailable, grading text answers lexically")
		return nil
	}
	if closer, ok := remote.(io.Closer); ok {
		lc.Append(fx.Hook{
			OnStop: func(context.Context) error { return closer.Close() },
		})
	}
	return remote
}

func NewAttemptScorer(cfg *config.Config, remote grading.RemoteSimilarity) *grading.AttemptScorer {
	scorer := grading.NewTextSimilarityScorer(remote, cfg.Similarity.Timeout)
	return grading.NewAttemptScorer(grading.NewQuestionGrader(scorer))
}

func NewGinEngine(cfg *config.Config) *gin.Engine {
	if cfg.Server.GinMode != "" {
		gin.SetMode(cfg.Server.GinMode)
	}

	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// URL: http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/healthz", func(ctx *gin.Context) { ctx.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	adminTestCtrl *adminctrl.AdminTestController,
	adminReviewCtrl *adminctrl.AdminReviewController,
	userTestCtrl *userctrl.UserTestController,
	userResultCtrl *userctrl.UserResultController,
) {
	api := router.Group("/api/v1")
	userTestCtrl.RegisterRoutes(api)
	userResultCtrl.RegisterRoutes(api)

	admin := api.Group("/admin")
	adminTestCtrl.RegisterRoutes(admin)
	adminReviewCtrl.RegisterRoutes(admin)

	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Test portal API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			return server.Shutdown(ctx)
		},
	})
}
