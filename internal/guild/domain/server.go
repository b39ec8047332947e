package domain

import (
	"errors"
	"time"

	"gorm.io/datatypes"
)

var (
	ErrServerNotFound     = errors.New("server not found")
	ErrServerAlreadyAdded = errors.New("server already added")
)

// MonitoredServer is a Discord guild a user asked to have scanned
type MonitoredServer struct {
	ID              string                      `json:"id" gorm:"primaryKey"`
	UserID          string                      `json:"userId" gorm:"not null;uniqueIndex:idx_user_server"`
	ServerID        string                      `json:"serverId" gorm:"not null;uniqueIndex:idx_user_server"`
	ServerName      string                      `json:"serverName" gorm:"not null"`
	ServerIcon      string                      `json:"serverIcon,omitempty"`
	ScanAllChannels bool                        `json:"scanAllChannels" gorm:"not null"`
	IgnoredChannels datatypes.JSONSlice[string] `json:"ignoredChannels" gorm:"type:jsonb"`
	IsActive        bool                        `json:"isActive" gorm:"not null;index"`
	LastScannedAt   *time.Time                  `json:"lastScannedAt"`
	CreatedAt       time.Time                   `json:"createdAt"`
	UpdatedAt       time.Time                   `json:"updatedAt"`
}

// IsIgnored reports whether the channel should be left out of a scan.
// Ignored channels only apply when ScanAllChannels is off.
func (s *MonitoredServer) IsIgnored(channelID string) bool {
	if s.ScanAllChannels {
		return false
	}
	for _, id := range s.IgnoredChannels {
		if id == channelID {
			return true
		}
	}
	return false
}
