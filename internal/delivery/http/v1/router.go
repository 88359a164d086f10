package v1

import (
	"net/http"
	"time"

	"talent-network-backend/config"
	"talent-network-backend/internal/delivery/http/middleware"
	"talent-network-backend/internal/delivery/http/response"
	"talent-network-backend/internal/domain"
	"talent-network-backend/internal/usecase"
	"talent-network-backend/pkg/auth"
	"talent-network-backend/pkg/metrics"

	"github.com/gin-gonic/gin"
)

type RouterDeps struct {
	AuthUC       domain.AuthUsecase
	CandidateUC  domain.CandidateUsecase
	PreferenceUC domain.PreferenceUsecase
	MatchUC      domain.MatchUsecase
	FriendUC     domain.FriendUsecase
	HealthUC     usecase.HealthUsecase
	JWKSProvider *auth.Provider
	Config       *config.Config
	// Auth replaces the JWT middleware; tests use it to inject an identity.
	Auth gin.HandlerFunc
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.RateLimitMiddleware(middleware.DefaultRateLimitConfig(
		deps.Config.RateLimitGlobalThreshold,
		time.Duration(deps.Config.RateLimitWindowSeconds)*time.Second,
	)))
	r.Use(middleware.ErrorHandler())

	if deps.Config.MetricsEnabled {
		r.GET("/metrics", gin.WrapH(metrics.Handler()))
	}

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		if deps.HealthUC == nil {
			response.Success(c, http.StatusOK, "System operational", nil)
			return
		}
		status, healthy := deps.HealthUC.Check(c.Request.Context())
		if !healthy {
			response.Error(c, http.StatusServiceUnavailable, "System degraded", status)
			return
		}
		response.Success(c, http.StatusOK, "System operational", status)
	})

	authMW := deps.Auth
	if authMW == nil {
		authMW = middleware.AuthMiddleware(deps.JWKSProvider, deps.Config, deps.AuthUC)
	}

	// Protected routes
	protected := v1.Group("")
	protected.Use(authMW)
	{
		NewAuthHandler(protected, deps.AuthUC)
		NewCandidateHandler(protected, deps.CandidateUC)
		NewPreferenceHandler(protected, deps.PreferenceUC, deps.MatchUC)
		NewMatchHandler(protected, deps.MatchUC, deps.Config.DefaultMinAge)
		NewFriendHandler(protected, deps.FriendUC)
	}

	return r
}
