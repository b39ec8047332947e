package repository

import (
	summarydomain "github.com/tinkertanker/discord-summariser/internal/summary/domain"
)

// SummaryRepository defines the interface for channel summary persistence
type SummaryRepository interface {
	// Upsert writes the row keyed by (user, channel, created_at day). On
	// conflict the content columns are replaced and isRead is kept.
	// summary.ID holds the stored row's id on return.
	Upsert(summary *summarydomain.ChannelSummary) error
	FindByID(userID, id string) (*summarydomain.ChannelSummary, error)
	// ListByUser returns unread first, then importance and creation time descending
	ListByUser(userID string) ([]*summarydomain.ChannelSummary, error)
	MarkAllRead(userID string) (int64, error)
	MarkRead(userID string, ids []string) (int64, error)
}
