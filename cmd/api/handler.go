package api

import (
	"time"

	authDelivery "github.com/tinkertanker/discord-summariser/internal/auth/delivery"
	authUsecase "github.com/tinkertanker/discord-summariser/internal/auth/usecase"
	guildDelivery "github.com/tinkertanker/discord-summariser/internal/guild/delivery"
	responseDelivery "github.com/tinkertanker/discord-summariser/internal/response/delivery"
	summaryDelivery "github.com/tinkertanker/discord-summariser/internal/summary/delivery"
	"github.com/tinkertanker/discord-summariser/pkg/config"
	"github.com/tinkertanker/discord-summariser/pkg/ratelimit"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type Handler struct {
	authUsecase     authUsecase.AuthUsecase
	config          *config.Config
	authHandler     *authDelivery.AuthHandler
	serverHandler   *guildDelivery.ServerHandler
	summaryHandler  *summaryDelivery.SummaryHandler
	responseHandler *responseDelivery.ResponseHandler
	limiter         *ratelimit.Limiter
}

func NewHandler(
	authUc authUsecase.AuthUsecase,
	cfg *config.Config,
	serverHandler *guildDelivery.ServerHandler,
	summaryHandler *summaryDelivery.SummaryHandler,
	responseHandler *responseDelivery.ResponseHandler,
) *Handler {
	// scans and completions are charged per signed-in user
	limiter := ratelimit.New(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst, func(c *gin.Context) string {
		if userID := c.GetString("userID"); userID != "" {
			return userID
		}
		return c.ClientIP()
	})

	return &Handler{
		authUsecase:     authUc,
		config:          cfg,
		authHandler:     authDelivery.NewAuthHandler(authUc, cfg.FrontendURL),
		serverHandler:   serverHandler,
		summaryHandler:  summaryHandler,
		responseHandler: responseHandler,
		limiter:         limiter,
	}
}

// Engine builds the gin engine with CORS and every route mounted
func (h *Handler) Engine() *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     h.config.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Accept", "Authorization", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	SetupRoutes(r, h)
	return r
}
