package store

import (
	"haven/internal/db"
	"haven/internal/models"
)

type gormPostStore struct{}

// NewPostStore returns the gorm-backed post store.
func NewPostStore() PostStore {
	return &gormPostStore{}
}

func (s *gormPostStore) List(limit, offset int) ([]models.Post, error) {
	var posts []models.Post
	err := db.DB.Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	return posts, err
}

func (s *gormPostStore) ListByUser(userID uint) ([]models.Post, error) {
	var posts []models.Post
	err := db.DB.Preload("User").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&posts).Error
	return posts, err
}

func (s *gormPostStore) Count() (int64, error) {
	var total int64
	err := db.DB.Model(&models.Post{}).Count(&total).Error
	return total, err
}

func (s *gormPostStore) GetByPid(pid string) (*models.Post, error) {
	var post models.Post
	if err := db.DB.Preload("User").Where("pid = ?", pid).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *gormPostStore) Insert(post *models.Post) error {
	return db.DB.Create(post).Error
}

func (s *gormPostStore) UpdateCommentCount(postID uint, count int) error {
	return db.DB.Model(&models.Post{}).
		Where("id = ?", postID).
		UpdateColumn("comment_count", count).Error
}
