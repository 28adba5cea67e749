package router

import (
	"github.com/gin-gonic/gin"

	"chatops.app/courier/internal/health"
	"chatops.app/courier/internal/http/handler"
	"chatops.app/courier/internal/service"
	"chatops.app/courier/internal/store"
)

type Config struct {
	Directory store.DirectoryStore
	View      handler.DirectoryView
	Store     health.Pinger
	Probe     health.Config
}

func SetupRoutes(router *gin.Engine, services *service.Services, cfg Config) {
	healthHandler := handler.NewHealthHandler(cfg.Store, cfg.Probe)
	router.GET("/api/health", healthHandler.Check)

	api := router.Group("/api")
	{
		directoryHandler := handler.NewDirectoryHandler(services.Imports(), cfg.Directory, cfg.View)
		api.POST("/directory/import", directoryHandler.Import)
		api.GET("/directory", directoryHandler.List)
		api.DELETE("/directory/:id", directoryHandler.Remove)

		chatHandler := handler.NewChatHandler(services.Chat())
		api.GET("/chats/:id/messages", chatHandler.History)
		api.POST("/chats/:id/messages", chatHandler.Send)

		resolveHandler := handler.NewResolveHandler(services.Resolve())
		api.POST("/resolve", resolveHandler.Resolve)
		api.POST("/suggest", resolveHandler.Suggest)
	}
}
