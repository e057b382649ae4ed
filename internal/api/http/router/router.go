package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dtroode/scorepredictor-server/internal/api/http/handler"
	"github.com/dtroode/scorepredictor-server/internal/api/http/middleware"
	"github.com/dtroode/scorepredictor-server/internal/logger"
	"github.com/dtroode/scorepredictor-server/internal/model"
	"github.com/dtroode/scorepredictor-server/internal/scoring"
)

// Dependencies are the objects the HTTP routes are built from.
type Dependencies struct {
	Logger      *logger.Logger
	Gate        handler.Gate
	Account     handler.Account
	Sessions    *middleware.Sessions
	Contexts    model.ContextManager
	Descriptor  scoring.Descriptor
	HTTPMetrics *middleware.HTTPMetrics
	Gatherer    prometheus.Gatherer
	Readiness   map[string]handler.ReadinessCheck
}

// Register builds the gin engine serving the predictor API. The gin mode
// follows GIN_MODE.
func Register(deps Dependencies) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(deps.Logger))
	r.Use(deps.HTTPMetrics.Handler())

	health := handler.NewHealthHandler(deps.Readiness)
	r.GET("/healthz", health.Live)
	r.GET("/readyz", health.Ready)

	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	modelHandler := handler.NewModel(deps.Descriptor)
	authHandler := handler.NewAuth(deps.Gate, deps.Contexts)
	predictionHandler := handler.NewPrediction(deps.Gate, deps.Account, deps.Contexts)
	profileHandler := handler.NewProfile(deps.Account, deps.Contexts)

	api := r.Group("/api/v1")
	api.GET("/model", modelHandler.Descriptor)
	api.GET("/tips", modelHandler.Tips)

	session := api.Group("/session", deps.Sessions.Handler())
	{
		session.GET("", authHandler.Session)
		session.POST("/login", authHandler.Login)
		session.POST("/signup", authHandler.Signup)
		session.POST("/mode", authHandler.SwitchMode)
		session.POST("/logout", authHandler.Logout)
	}

	protected := api.Group("", deps.Sessions.Handler(), middleware.RequireAuth(deps.Gate, deps.Contexts))
	{
		protected.POST("/session/page", authHandler.Navigate)

		protected.POST("/predictions", predictionHandler.Predict)
		protected.DELETE("/predictions/current", predictionHandler.Reset)
		protected.GET("/predictions", predictionHandler.History)
		protected.GET("/predictions/stats", predictionHandler.Stats)

		protected.GET("/profile", profileHandler.Get)
		protected.PATCH("/profile", profileHandler.Update)
		protected.POST("/profile/password", profileHandler.ChangePassword)
	}

	return r
}
