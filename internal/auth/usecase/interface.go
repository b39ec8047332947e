package usecase

import (
	"context"

	authdomain "github.com/tinkertanker/discord-summariser/internal/auth/domain"
	authdto "github.com/tinkertanker/discord-summariser/internal/auth/dto"
	"github.com/tinkertanker/discord-summariser/pkg/discord"
)

// AuthUsecase defines the interface for authentication business logic
type AuthUsecase interface {
	// DiscordLoginURL creates a one-time state and returns the Discord consent URL
	DiscordLoginURL(ctx context.Context) (*authdto.LoginURLResponse, error)
	// HandleDiscordCallback exchanges the code, upserts the user and issues a session
	HandleDiscordCallback(ctx context.Context, code, state string) (*authdto.TokenResponse, error)
	RefreshToken(refreshToken string) (*authdto.TokenResponse, error)
	Logout(refreshToken string) error
	ValidateToken(tokenString string) (*authdomain.User, error)
	// DiscordAccessToken returns a usable Discord token for the user,
	// refreshing and persisting it when it has expired
	DiscordAccessToken(ctx context.Context, userID string) (string, error)
}

// DiscordProfileFetcher loads the profile behind a Discord access token
type DiscordProfileFetcher interface {
	CurrentUser(ctx context.Context, token string) (*discord.User, error)
}
