package usecase

import (
	"context"

	guilddomain "github.com/tinkertanker/discord-summariser/internal/guild/domain"
	guilddto "github.com/tinkertanker/discord-summariser/internal/guild/dto"
	"github.com/tinkertanker/discord-summariser/pkg/discord"
)

// ServerUsecase defines the interface for managing monitored servers
type ServerUsecase interface {
	ListServers(userID string) ([]*guilddomain.MonitoredServer, error)
	AddServer(userID string, req *guilddto.AddServerRequest) (*guilddomain.MonitoredServer, error)
	UpdateServer(userID, id string, req *guilddto.UpdateServerRequest) (*guilddomain.MonitoredServer, error)
	DeleteServer(userID, id string) error
	// AvailableServers lists the user's guilds that can be read and are not monitored yet
	AvailableServers(ctx context.Context, userID string) ([]guilddto.AvailableServer, error)
	// ServerChannels lists the text channels of a guild
	ServerChannels(ctx context.Context, userID, serverID string) ([]discord.Channel, error)
}

// GuildDirectory is the part of the Discord client this package needs
type GuildDirectory interface {
	UserGuilds(ctx context.Context, token string) ([]discord.Guild, error)
	GuildTextChannels(ctx context.Context, token, guildID string) ([]discord.Channel, error)
}

// TokenProvider hands out a usable Discord access token for a user
type TokenProvider interface {
	DiscordAccessToken(ctx context.Context, userID string) (string, error)
}
