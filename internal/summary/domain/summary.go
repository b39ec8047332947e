package domain

import (
	"errors"
	"time"

	"gorm.io/datatypes"
)

var (
	ErrSummaryNotFound = errors.New("summary not found")
	ErrNothingToMark   = errors.New("either all or summaryIds is required")
	ErrUnknownFilter   = errors.New("unknown summary filter")
)

// ChannelSummary is one channel's digest for one UTC day. The row is
// unique per (user, channel, day) and is rewritten by every scan that day.
type ChannelSummary struct {
	ID             string                      `json:"id" gorm:"primaryKey"`
	UserID         string                      `json:"userId" gorm:"not null;uniqueIndex:idx_user_channel_day,priority:1;index:idx_user_feed,priority:1"`
	ServerID       string                      `json:"serverId" gorm:"not null;index"`
	ChannelID      string                      `json:"channelId" gorm:"not null;uniqueIndex:idx_user_channel_day,priority:2"`
	ChannelName    string                      `json:"channelName"`
	Summary        string                      `json:"summary" gorm:"type:text"`
	Importance     int                         `json:"importance" gorm:"not null"`
	Topics         datatypes.JSONSlice[string] `json:"topics" gorm:"type:jsonb"`
	MessageCount   int                         `json:"messageCount"`
	HasThreads     bool                        `json:"hasThreads"`
	IsRead         bool                        `json:"isRead" gorm:"not null;index:idx_user_feed,priority:2"`
	CreatedAt      time.Time                   `json:"createdAt" gorm:"not null;uniqueIndex:idx_user_channel_day,priority:3"`
	LastActivityAt *time.Time                  `json:"lastActivityAt"`
	UpdatedAt      time.Time                   `json:"updatedAt"`
}

// DayKey truncates t to midnight UTC, the calendar day a summary belongs to.
func DayKey(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SummaryView is a summary as served to the dashboard
type SummaryView struct {
	*ChannelSummary
	ServerName string   `json:"serverName"`
	ServerIcon string   `json:"serverIcon,omitempty"`
	Priority   Priority `json:"priority"`
}
