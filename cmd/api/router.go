package api

import (
	"net/http"

	"github.com/tinkertanker/discord-summariser/internal/auth/delivery"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRoutes(r *gin.Engine, h *Handler) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Scheduled scan trigger, authenticated by CRON_SECRET
		api.GET("/cron", h.summaryHandler.Cron)

		// Auth routes
		auth := api.Group("/auth")
		{
			auth.GET("/discord/login", h.authHandler.DiscordLogin)
			auth.GET("/discord/callback", h.authHandler.DiscordCallback)
			auth.POST("/discord/callback", h.authHandler.DiscordCallback)
			auth.POST("/refresh", h.authHandler.RefreshToken)
			auth.GET("/me", delivery.AuthMiddleware(h.authUsecase), h.authHandler.Me)
			auth.POST("/logout", h.authHandler.Logout)
		}

		protected := api.Group("")
		protected.Use(delivery.AuthMiddleware(h.authUsecase))

		// Monitored servers
		servers := protected.Group("/servers")
		{
			servers.GET("", h.serverHandler.ListServers)
			servers.POST("", h.serverHandler.AddServer)
			servers.PATCH("/:id", h.serverHandler.UpdateServer)
			servers.DELETE("/:id", h.serverHandler.DeleteServer)
		}

		// Discord lookups
		discord := protected.Group("/discord")
		{
			discord.GET("/available-servers", h.serverHandler.AvailableServers)
			discord.GET("/server/:serverId/channels", h.serverHandler.ServerChannels)
			discord.POST("/guilds/:guildId/summary", h.limiter.Middleware(), h.summaryHandler.PreviewGuild)
		}

		// Scan and summaries
		protected.POST("/scan", h.limiter.Middleware(), h.summaryHandler.Scan)
		protected.GET("/summaries", h.summaryHandler.ListSummaries)
		protected.POST("/summaries/mark-read", h.summaryHandler.MarkRead)

		// Reply suggestions
		protected.POST("/ai/generate-responses", h.limiter.Middleware(), h.responseHandler.GenerateResponses)
		protected.PATCH("/responses/:id", h.responseHandler.UpdateResponse)
	}
}
