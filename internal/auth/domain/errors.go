package domain

import "errors"

var (
	ErrInvalidState       = errors.New("invalid or expired oauth state")
	ErrNoDiscordToken     = errors.New("no discord access token, please sign in again")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUserNotFound       = errors.New("user not found")
	ErrRefreshExpired     = errors.New("refresh token expired")
	ErrOAuthNotConfigured = errors.New("discord oauth is not configured")
)
