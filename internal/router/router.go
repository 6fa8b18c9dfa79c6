package router

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"kanban-board-api/internal/client"
	"kanban-board-api/internal/handler"
	"kanban-board-api/internal/metrics"
	"kanban-board-api/internal/middleware"
	"kanban-board-api/internal/repository"
	"kanban-board-api/internal/service"
)

// Config holds the dependencies of the HTTP surface
type Config struct {
	DB           *gorm.DB
	Logger       *zap.Logger
	Redis        *redis.Client // optional, only used by the readiness probe
	TokenService service.TokenService
	Notifier     client.NotificationClient
	BasePath     string
	CORSOrigins  string
	Metrics      *metrics.Metrics
	// Gatherer backs /metrics; defaults to the prometheus default gatherer
	Gatherer prometheus.Gatherer
}

// Setup wires repositories, services and handlers onto a gin engine
func Setup(cfg Config) *gin.Engine {
	r := gin.New()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.CORS(cfg.CORSOrigins))
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}

	repos := repository.NewRepositories(cfg.DB)
	uow := repository.NewUnitOfWork(cfg.DB)
	access := service.NewAccessService()

	userService := service.NewUserService(repos.Users, cfg.TokenService, cfg.Metrics, cfg.Logger)
	boardService := service.NewBoardService(repos, uow, access, cfg.Metrics, cfg.Logger)
	columnService := service.NewColumnService(uow, access, cfg.Logger)
	cardService := service.NewCardService(uow, access, cfg.Metrics, cfg.Logger)
	shareService := service.NewShareService(repos, uow, access, cfg.Notifier, cfg.Metrics, cfg.Logger)

	userHandler := handler.NewUserHandler(userService, cfg.Logger)
	boardHandler := handler.NewBoardHandler(boardService, cfg.Logger)
	columnHandler := handler.NewColumnHandler(columnService, cfg.Logger)
	cardHandler := handler.NewCardHandler(cardService, cfg.Logger)
	shareHandler := handler.NewShareHandler(shareService, cfg.Logger)
	healthHandler := handler.NewHealthHandler(cfg.DB, cfg.Redis, cfg.Logger)

	gatherer := cfg.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	metricsHandler := gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	// Probes and metrics answer at the root and under the base path
	r.GET("/health", healthHandler.Health)
	r.GET("/ready", healthHandler.Ready)
	r.GET("/metrics", metricsHandler)

	base := r.Group(cfg.BasePath)
	if cfg.BasePath != "" && cfg.BasePath != "/" {
		base.GET("/health", healthHandler.Health)
		base.GET("/ready", healthHandler.Ready)
		base.GET("/metrics", metricsHandler)
	}
	base.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	auth := base.Group("/auth")
	{
		auth.POST("/register", userHandler.Register)
		auth.POST("/login", userHandler.Login)
	}

	protected := base.Group("")
	protected.Use(middleware.AuthWithValidator(cfg.TokenService, cfg.Logger))
	{
		protected.POST("/auth/logout", userHandler.Logout)

		protected.GET("/me", userHandler.GetMe)
		protected.PUT("/me/settings", userHandler.UpdateSettings)

		boards := protected.Group("/boards")
		{
			boards.GET("", boardHandler.ListBoards)
			boards.POST("", boardHandler.CreateBoard)
			boards.GET("/:boardId", boardHandler.GetBoard)
			boards.DELETE("/:boardId", boardHandler.DeleteBoard)

			boards.POST("/:boardId/columns", columnHandler.CreateColumn)

			boards.GET("/:boardId/shares", shareHandler.ListShares)
			boards.POST("/:boardId/shares", shareHandler.ShareBoard)
			boards.PUT("/:boardId/shares/:userId", shareHandler.UpdateShare)
			boards.DELETE("/:boardId/shares/:userId", shareHandler.RevokeShare)
		}

		columns := protected.Group("/columns")
		{
			columns.DELETE("/:columnId", columnHandler.DeleteColumn)
			columns.POST("/:columnId/cards", cardHandler.CreateCard)
		}

		cards := protected.Group("/cards")
		{
			cards.PUT("/:cardId", cardHandler.UpdateCard)
			cards.POST("/:cardId/move", cardHandler.MoveCard)
			cards.DELETE("/:cardId", cardHandler.DeleteCard)
		}
	}

	return r
}
