package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"

	"shopchat/internal/middleware"
	"shopchat/internal/model"
)

func (srv *HTTPServer) mapHandlers() error {
	srv.registerMiddlewares()
	srv.registerSystemRoutes()
	srv.registerDomainRoutes()
	return nil
}

func (srv *HTTPServer) registerMiddlewares() {
	srv.gin.Use(gin.Recovery())

	ctx := context.Background()
	if srv.environment == string(model.EnvironmentProduction) && srv.rateLimitPerMin <= 0 {
		srv.l.Warn(ctx, "Rate limiting disabled in production")
	}

	mw := middleware.New(srv.l, srv.rateLimitPerMin)
	srv.gin.Use(mw.RateLimit())
}

func (srv *HTTPServer) registerSystemRoutes() {
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)
}

// registerDomainRoutes registers all domain routes.
func (srv *HTTPServer) registerDomainRoutes() {
	ctx := context.Background()

	api := srv.gin.Group("/api/v1")
	api.POST("/message", srv.chatHandler.ProcessMessage)
	api.GET("/products", srv.chatHandler.GetProducts)
	api.GET("/carts/:id", srv.chatHandler.GetCart)
	srv.l.Infof(ctx, "Chat routes registered under /api/v1")

	if srv.whatsappHandler != nil {
		srv.gin.POST("/webhook/whatsapp", srv.whatsappHandler.HandleWebhook)
		srv.l.Infof(ctx, "WhatsApp webhook route registered at POST /webhook/whatsapp")
	} else {
		srv.l.Infof(ctx, "WhatsApp handler not configured, skipping webhook route")
	}
}
