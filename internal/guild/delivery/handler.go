package delivery

import (
	"errors"
	"net/http"

	authdomain "github.com/tinkertanker/discord-summariser/internal/auth/domain"
	guilddomain "github.com/tinkertanker/discord-summariser/internal/guild/domain"
	guilddto "github.com/tinkertanker/discord-summariser/internal/guild/dto"
	"github.com/tinkertanker/discord-summariser/internal/guild/usecase"

	"github.com/gin-gonic/gin"
)

type ServerHandler struct {
	serverUsecase usecase.ServerUsecase
}

func NewServerHandler(serverUsecase usecase.ServerUsecase) *ServerHandler {
	return &ServerHandler{
		serverUsecase: serverUsecase,
	}
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, guilddomain.ErrServerAlreadyAdded):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, guilddomain.ErrServerNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, authdomain.ErrNoDiscordToken), errors.Is(err, authdomain.ErrUserNotFound):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func (h *ServerHandler) ListServers(c *gin.Context) {
	userID := c.GetString("userID")

	servers, err := h.serverUsecase.ListServers(userID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, servers)
}

func (h *ServerHandler) AddServer(c *gin.Context) {
	userID := c.GetString("userID")

	var req guilddto.AddServerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "serverId and serverName are required"})
		return
	}

	server, err := h.serverUsecase.AddServer(userID, &req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, server)
}

func (h *ServerHandler) UpdateServer(c *gin.Context) {
	userID := c.GetString("userID")
	id := c.Param("id")

	var req guilddto.UpdateServerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	server, err := h.serverUsecase.UpdateServer(userID, id, &req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, server)
}

func (h *ServerHandler) DeleteServer(c *gin.Context) {
	userID := c.GetString("userID")
	id := c.Param("id")

	if err := h.serverUsecase.DeleteServer(userID, id); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *ServerHandler) AvailableServers(c *gin.Context) {
	userID := c.GetString("userID")

	servers, err := h.serverUsecase.AvailableServers(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, servers)
}

func (h *ServerHandler) ServerChannels(c *gin.Context) {
	userID := c.GetString("userID")
	serverID := c.Param("serverId")

	channels, err := h.serverUsecase.ServerChannels(c.Request.Context(), userID, serverID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, channels)
}
