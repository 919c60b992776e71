package store

import (
	"haven/internal/db"
	"haven/internal/models"
)

type gormCommentStore struct{}

// NewCommentStore returns the gorm-backed comment store.
func NewCommentStore() CommentStore {
	return &gormCommentStore{}
}

func (s *gormCommentStore) ListByPost(postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := db.DB.Preload("User").
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

func (s *gormCommentStore) GetByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := db.DB.First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (s *gormCommentStore) Insert(comment *models.Comment) error {
	return db.DB.Create(comment).Error
}
