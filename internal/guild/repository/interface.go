package repository

import (
	"time"

	guilddomain "github.com/tinkertanker/discord-summariser/internal/guild/domain"
)

// ServerRepository defines the interface for monitored server persistence.
// Every lookup by id is scoped to the owning user.
type ServerRepository interface {
	Create(server *guilddomain.MonitoredServer) error
	FindByID(userID, id string) (*guilddomain.MonitoredServer, error)
	FindByServerID(userID, serverID string) (*guilddomain.MonitoredServer, error)
	// ListByUser returns the user's servers, newest first
	ListByUser(userID string) ([]*guilddomain.MonitoredServer, error)
	ListActiveByUser(userID string) ([]*guilddomain.MonitoredServer, error)
	// ListStale returns active servers of every user that were never scanned
	// or last scanned before the given time
	ListStale(before time.Time) ([]*guilddomain.MonitoredServer, error)
	Update(server *guilddomain.MonitoredServer) error
	// Delete returns false when no row owned by the user matched
	Delete(userID, id string) (bool, error)
	MarkScanned(id string, at time.Time) error
}
