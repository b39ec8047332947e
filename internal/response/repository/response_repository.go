package repository

import (
	"errors"
	"sort"

	responsedomain "github.com/tinkertanker/discord-summariser/internal/response/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type responseRepository struct {
	db *gorm.DB
}

func NewResponseRepository(db *gorm.DB) ResponseRepository {
	return &responseRepository{
		db: db,
	}
}

func (r *responseRepository) Create(response *responsedomain.SuggestedResponse) error {
	if response.ID == "" {
		response.ID = uuid.New().String()
	}
	return r.db.Create(response).Error
}

func (r *responseRepository) FindByID(userID, id string) (*responsedomain.SuggestedResponse, error) {
	var response responsedomain.SuggestedResponse
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&response).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &response, nil
}

func (r *responseRepository) FindBySummary(userID, summaryID string) ([]*responsedomain.SuggestedResponse, error) {
	var responses []*responsedomain.SuggestedResponse
	err := r.db.Where("user_id = ? AND summary_id = ?", userID, summaryID).
		Order("created_at ASC").
		Find(&responses).Error
	if err != nil {
		return nil, err
	}
	sort.SliceStable(responses, func(i, j int) bool {
		return responses[i].ResponseType.Position() < responses[j].ResponseType.Position()
	})
	return responses, nil
}

func (r *responseRepository) DeleteBySummary(userID, summaryID string) error {
	return r.db.Where("user_id = ? AND summary_id = ?", userID, summaryID).
		Delete(&responsedomain.SuggestedResponse{}).Error
}

func (r *responseRepository) UpdateEditedText(userID, id string, editedText *string) error {
	return r.db.Model(&responsedomain.SuggestedResponse{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("edited_text", editedText).Error
}
