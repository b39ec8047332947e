package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	authdomain "github.com/tinkertanker/discord-summariser/internal/auth/domain"
	authdto "github.com/tinkertanker/discord-summariser/internal/auth/dto"
	guildDelivery "github.com/tinkertanker/discord-summariser/internal/guild/delivery"
	responseDelivery "github.com/tinkertanker/discord-summariser/internal/response/delivery"
	summaryDelivery "github.com/tinkertanker/discord-summariser/internal/summary/delivery"
	"github.com/tinkertanker/discord-summariser/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type rejectingAuth struct{}

func (rejectingAuth) DiscordLoginURL(ctx context.Context) (*authdto.LoginURLResponse, error) {
	return nil, authdomain.ErrOAuthNotConfigured
}

func (rejectingAuth) HandleDiscordCallback(ctx context.Context, code, state string) (*authdto.TokenResponse, error) {
	return nil, authdomain.ErrInvalidState
}

func (rejectingAuth) RefreshToken(refreshToken string) (*authdto.TokenResponse, error) {
	return nil, authdomain.ErrInvalidToken
}

func (rejectingAuth) Logout(refreshToken string) error { return nil }

func (rejectingAuth) ValidateToken(tokenString string) (*authdomain.User, error) {
	return nil, authdomain.ErrInvalidToken
}

func (rejectingAuth) DiscordAccessToken(ctx context.Context, userID string) (string, error) {
	return "", authdomain.ErrNoDiscordToken
}

func newTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		AllowedOrigins: []string{"http://localhost:3000"},
		RateLimitRPS:   1,
		RateLimitBurst: 1,
	}
	h := NewHandler(
		rejectingAuth{},
		cfg,
		guildDelivery.NewServerHandler(nil),
		summaryDelivery.NewSummaryHandler(nil, nil, ""),
		responseDelivery.NewResponseHandler(nil),
	)
	return h.Engine()
}

func TestRoutes_Public(t *testing.T) {
	r := newTestEngine()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

func TestRoutes_RequireSession(t *testing.T) {
	r := newTestEngine()

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/api/servers"},
		{http.MethodPost, "/api/servers"},
		{http.MethodGet, "/api/discord/available-servers"},
		{http.MethodPost, "/api/scan"},
		{http.MethodGet, "/api/summaries"},
		{http.MethodPost, "/api/summaries/mark-read"},
		{http.MethodPost, "/api/ai/generate-responses"},
		{http.MethodPatch, "/api/responses/r1"},
		{http.MethodGet, "/api/auth/me"},
	} {
		req := httptest.NewRequest(route.method, route.path, nil)
		req.Header.Set("Authorization", "Bearer forged")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", route.method, route.path)
	}
}

func TestRoutes_CronWithoutSecret(t *testing.T) {
	r := newTestEngine()

	req := httptest.NewRequest(http.MethodGet, "/api/cron", nil)
	req.Header.Set("Authorization", "Bearer ")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRoutes_CORSPreflight(t *testing.T) {
	r := newTestEngine()

	req := httptest.NewRequest(http.MethodOptions, "/api/summaries", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}
