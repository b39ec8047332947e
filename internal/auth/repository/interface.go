package repository

import (
	"time"

	authdomain "github.com/tinkertanker/discord-summariser/internal/auth/domain"
)

// UserRepository defines the interface for user and session persistence
type UserRepository interface {
	FindByID(id string) (*authdomain.User, error)
	FindByDiscordID(discordID string) (*authdomain.User, error)
	// UpsertDiscordUser inserts the user or refreshes profile and tokens of
	// the existing row with the same discord id. user.ID is set on return.
	UpsertDiscordUser(user *authdomain.User) error
	UpdateDiscordTokens(userID, accessToken, refreshToken string, expiresAt *time.Time) error

	SaveRefreshToken(token *authdomain.RefreshToken) error
	FindRefreshToken(token string) (*authdomain.RefreshToken, error)
	DeleteRefreshToken(token string) error
	DeleteRefreshTokensByUser(userID string) error
}
