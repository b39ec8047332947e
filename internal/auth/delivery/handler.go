package delivery

import (
	"errors"
	"net/http"
	"net/url"

	authdomain "github.com/tinkertanker/discord-summariser/internal/auth/domain"
	authdto "github.com/tinkertanker/discord-summariser/internal/auth/dto"
	"github.com/tinkertanker/discord-summariser/internal/auth/usecase"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUsecase usecase.AuthUsecase
	frontendURL string
}

func NewAuthHandler(authUsecase usecase.AuthUsecase, frontendURL string) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		frontendURL: frontendURL,
	}
}

// DiscordLogin redirects the browser to the Discord consent screen.
// ?format=json returns the URL instead.
func (h *AuthHandler) DiscordLogin(c *gin.Context) {
	resp, err := h.authUsecase.DiscordLoginURL(c.Request.Context())
	if err != nil {
		if errors.Is(err, authdomain.ErrOAuthNotConfigured) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if c.Query("format") == "json" {
		c.JSON(http.StatusOK, resp)
		return
	}
	c.Redirect(http.StatusFound, resp.URL)
}

// DiscordCallback accepts the code and state either as query parameters
// (browser redirect) or as a JSON body (frontend relays them).
func (h *AuthHandler) DiscordCallback(c *gin.Context) {
	var req authdto.DiscordCallbackRequest
	if c.Request.Method == http.MethodGet {
		if errMsg := c.Query("error"); errMsg != "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": errMsg})
			return
		}
		if err := c.ShouldBindQuery(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "code and state are required"})
			return
		}
	} else if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "code and state are required"})
		return
	}

	resp, err := h.authUsecase.HandleDiscordCallback(c.Request.Context(), req.Code, req.State)
	if err != nil {
		switch {
		case errors.Is(err, authdomain.ErrInvalidState):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, authdomain.ErrOAuthNotConfigured):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		}
		return
	}

	if c.Request.Method == http.MethodGet && h.frontendURL != "" {
		fragment := url.Values{}
		fragment.Set("access_token", resp.AccessToken)
		fragment.Set("refresh_token", resp.RefreshToken)
		c.Redirect(http.StatusFound, h.frontendURL+"/auth/callback#"+fragment.Encode())
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req authdto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.authUsecase.RefreshToken(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) Me(c *gin.Context) {
	user, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	var req authdto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.authUsecase.Logout(req.RefreshToken); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "logged out successfully"})
}
