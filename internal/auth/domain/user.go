package domain

import "time"

type User struct {
	ID        string `json:"id" gorm:"primaryKey"`
	DiscordID string `json:"discord_id" gorm:"uniqueIndex;not null"`
	Username  string `json:"username"`
	Email     string `json:"email,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
	// Discord OAuth tokens, sealed with the token cipher. Never returned in JSON.
	DiscordToken        string     `json:"-" gorm:"type:text"`
	DiscordRefreshToken string     `json:"-" gorm:"type:text"`
	TokenExpiresAt      *time.Time `json:"-"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

type RefreshToken struct {
	Token     string    `json:"token" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"index;not null"`
	ExpiresAt time.Time `json:"expires_at"`
}
