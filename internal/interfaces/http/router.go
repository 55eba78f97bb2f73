package http

import (
	"github.com/gin-gonic/gin"

	"cardly/internal/infrastructure/metrics"
	"cardly/internal/interfaces/http/middleware"
	"cardly/internal/interfaces/http/routes"
)

// Router exposes the configured gin engine.
type Router struct {
	container *Container
}

func NewRouter(container *Container) *Router {
	return &Router{container: container}
}

// SetupRoutes installs global middleware and every route group.
func (r *Router) SetupRoutes() {
	c := r.container
	engine := c.engine

	engine.Use(middleware.RequestID())
	engine.Use(middleware.Recovery(c.log))
	engine.Use(middleware.Logger(c.log))
	engine.Use(middleware.CORS(c.cfg.Server.AllowedOrigins))

	if c.cfg.Metrics.Enabled {
		metrics.MustRegister()
		engine.Use(middleware.Metrics())
		path := c.cfg.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		engine.GET(path, gin.WrapH(metrics.Handler()))
	}

	h := c.hdlrs
	routes.SetupPublicRoutes(engine, &routes.PublicRouteConfig{
		HealthHandler:     h.healthHandler,
		PublicCardHandler: h.publicCardHandler,
		ViewRateLimiter:   c.viewRateLimiter,
	})
	routes.SetupAuthRoutes(engine, &routes.AuthRouteConfig{
		AuthHandler:      h.authHandler,
		UserHandler:      h.userHandler,
		AnalyticsHandler: h.analyticsHandler,
		AuthMiddleware:   c.authMiddleware,
		LoginRateLimiter: c.loginRateLimiter,
	})
	routes.SetupCardRoutes(engine, &routes.CardRouteConfig{
		CardHandler:      h.cardHandler,
		AnalyticsHandler: h.analyticsHandler,
		AuthMiddleware:   c.authMiddleware,
	})
	routes.SetupAdminRoutes(engine, &routes.AdminRouteConfig{
		UserHandler:           h.userHandler,
		CardHandler:           h.cardHandler,
		ActivationCodeHandler: h.activationCodeHandler,
		AnalyticsHandler:      h.analyticsHandler,
		SettingHandler:        h.settingHandler,
		AuthMiddleware:        c.authMiddleware,
	})
	routes.SetupWebhookRoutes(engine, &routes.WebhookRouteConfig{
		PaymentHandler: h.paymentHandler,
		SecretCheck:    middleware.WebhookSecret(c.cfg.Payment.WebhookSecret, c.log),
	})
}

// GetEngine returns the gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.container.engine
}

// Shutdown releases router-owned resources.
func (r *Router) Shutdown() {
	r.container.Shutdown()
}
