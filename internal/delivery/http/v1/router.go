package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"go-jobboard-backend/config"
	"go-jobboard-backend/internal/delivery/http/middleware"
	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/redis"
)

type RouterDeps struct {
	AuthUC        domain.AuthUsecase
	JobUC         domain.JobUsecase
	InteractionUC domain.InteractionUsecase
	SavedSearchUC domain.SavedSearchUsecase
	AlertUC       domain.AlertUsecase
	AdminUC       domain.AdminUsecase
	AuditUC       domain.AuditUsecase
	Config        *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	// Context values set by middleware must be visible through
	// c.Request.Context() in the usecase layer.
	r.ContextWithFallback = true

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestTimeout(time.Duration(deps.Config.StorageTimeoutSeconds) * time.Second))
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.GlobalRateLimitMiddleware(
		deps.Config.RateLimitGlobalThreshold,
		time.Duration(deps.Config.RateLimitWindowSeconds)*time.Second))
	r.Use(middleware.ErrorHandler())

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		status := gin.H{"redis": redis.HealthCheck(c) == nil}
		response.Success(c, http.StatusOK, "System operational", status)
	})

	// Public routes
	NewJobHandler(v1, deps.JobUC)
	NewAlertHandler(v1, deps.AlertUC, deps.Config.AlertsCronSecret)

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Config.JWTSecret, deps.AuthUC))
	protected.Use(middleware.LeakGuard())
	{
		NewAuthHandler(protected, deps.AuthUC)
		NewInteractionHandler(protected, deps.InteractionUC)
		NewSavedSearchHandler(protected, deps.SavedSearchUC)
		NewAdminHandler(protected, deps.AdminUC, deps.AuditUC)
	}

	return r
}
