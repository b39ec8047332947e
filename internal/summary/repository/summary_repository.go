package repository

import (
	"errors"
	"time"

	summarydomain "github.com/tinkertanker/discord-summariser/internal/summary/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type summaryRepository struct {
	db *gorm.DB
}

func NewSummaryRepository(db *gorm.DB) SummaryRepository {
	return &summaryRepository{
		db: db,
	}
}

func (r *summaryRepository) Upsert(summary *summarydomain.ChannelSummary) error {
	if summary.ID == "" {
		summary.ID = uuid.New().String()
	}
	summary.CreatedAt = summarydomain.DayKey(summary.CreatedAt)
	summary.UpdatedAt = time.Now()

	return r.db.Clauses(
		clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "channel_id"}, {Name: "created_at"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"channel_name", "summary", "importance", "topics",
				"message_count", "has_threads", "last_activity_at", "updated_at",
			}),
		},
		clause.Returning{},
	).Create(summary).Error
}

func (r *summaryRepository) FindByID(userID, id string) (*summarydomain.ChannelSummary, error) {
	var summary summarydomain.ChannelSummary
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&summary).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &summary, nil
}

func (r *summaryRepository) ListByUser(userID string) ([]*summarydomain.ChannelSummary, error) {
	var summaries []*summarydomain.ChannelSummary
	err := r.db.Where("user_id = ?", userID).
		Order("is_read ASC").
		Order("importance DESC").
		Order("created_at DESC").
		Find(&summaries).Error
	return summaries, err
}

func (r *summaryRepository) MarkAllRead(userID string) (int64, error) {
	result := r.db.Model(&summarydomain.ChannelSummary{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}

func (r *summaryRepository) MarkRead(userID string, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.Model(&summarydomain.ChannelSummary{}).
		Where("user_id = ? AND id IN ?", userID, ids).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}
