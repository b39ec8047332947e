package usecase

import (
	"context"

	summarydomain "github.com/tinkertanker/discord-summariser/internal/summary/domain"
	summarydto "github.com/tinkertanker/discord-summariser/internal/summary/dto"
	"github.com/tinkertanker/discord-summariser/pkg/discord"
)

// ScanUsecase runs the channel scan pipeline
type ScanUsecase interface {
	// Scan summarizes every active server of the user
	Scan(ctx context.Context, userID string) (*summarydomain.ScanReport, error)
	// ScanStaleServers scans servers of all users that are due for a rescan
	ScanStaleServers(ctx context.Context) (*summarydomain.ScanReport, error)
	// PreviewGuild analyzes a guild's first channels without storing anything
	PreviewGuild(ctx context.Context, userID, guildID string, topics []string) ([]summarydomain.GuildPreview, error)
}

// SummaryUsecase serves the summary feed
type SummaryUsecase interface {
	ListSummaries(userID string, query *summarydto.ListSummariesQuery) ([]*summarydomain.SummaryView, error)
	MarkRead(userID string, req *summarydto.MarkReadRequest) (int64, error)
}

// ChatPlatform is the part of the Discord client the scan pipeline needs
type ChatPlatform interface {
	GuildChannels(ctx context.Context, token, guildID string) ([]discord.Channel, error)
	RecentMessages(ctx context.Context, token, channelID string, limit int) ([]discord.Message, error)
	HasArchivedThreads(ctx context.Context, token, channelID string) (bool, error)
}

// TokenProvider hands out a usable Discord access token for a user
type TokenProvider interface {
	DiscordAccessToken(ctx context.Context, userID string) (string, error)
}
