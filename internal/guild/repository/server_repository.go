package repository

import (
	"errors"
	"time"

	guilddomain "github.com/tinkertanker/discord-summariser/internal/guild/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type serverRepository struct {
	db *gorm.DB
}

func NewServerRepository(db *gorm.DB) ServerRepository {
	return &serverRepository{
		db: db,
	}
}

func (r *serverRepository) Create(server *guilddomain.MonitoredServer) error {
	server.ID = uuid.New().String()
	server.CreatedAt = time.Now()
	server.UpdatedAt = time.Now()
	err := r.db.Create(server).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return guilddomain.ErrServerAlreadyAdded
	}
	return err
}

func (r *serverRepository) FindByID(userID, id string) (*guilddomain.MonitoredServer, error) {
	var server guilddomain.MonitoredServer
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&server).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &server, nil
}

func (r *serverRepository) FindByServerID(userID, serverID string) (*guilddomain.MonitoredServer, error) {
	var server guilddomain.MonitoredServer
	err := r.db.Where("user_id = ? AND server_id = ?", userID, serverID).First(&server).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &server, nil
}

func (r *serverRepository) ListByUser(userID string) ([]*guilddomain.MonitoredServer, error) {
	var servers []*guilddomain.MonitoredServer
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&servers).Error
	return servers, err
}

func (r *serverRepository) ListActiveByUser(userID string) ([]*guilddomain.MonitoredServer, error) {
	var servers []*guilddomain.MonitoredServer
	err := r.db.Where("user_id = ? AND is_active = ?", userID, true).Order("created_at ASC").Find(&servers).Error
	return servers, err
}

func (r *serverRepository) ListStale(before time.Time) ([]*guilddomain.MonitoredServer, error) {
	var servers []*guilddomain.MonitoredServer
	err := r.db.
		Where("is_active = ?", true).
		Where("last_scanned_at IS NULL OR last_scanned_at < ?", before).
		Order("user_id ASC, created_at ASC").
		Find(&servers).Error
	return servers, err
}

func (r *serverRepository) Update(server *guilddomain.MonitoredServer) error {
	server.UpdatedAt = time.Now()
	return r.db.Save(server).Error
}

func (r *serverRepository) Delete(userID, id string) (bool, error) {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&guilddomain.MonitoredServer{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *serverRepository) MarkScanned(id string, at time.Time) error {
	return r.db.Model(&guilddomain.MonitoredServer{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"last_scanned_at": at,
			"updated_at":      time.Now(),
		}).Error
}
