// Package store is the thin CRUD layer over the managed database for posts
// and comments. Access control is the database collaborator's concern; no
// caching or transactions happen here. The interfaces exist so the
// submission flow can be exercised against in-memory fakes.
package store

import (
	"haven/internal/models"
)

type PostStore interface {
	// List returns posts newest first.
	List(limit, offset int) ([]models.Post, error)
	// ListByUser returns the user's own posts, newest first.
	ListByUser(userID uint) ([]models.Post, error)
	Count() (int64, error)
	GetByPid(pid string) (*models.Post, error)
	Insert(post *models.Post) error
	// UpdateCommentCount overwrites the denormalized comment count. It is a
	// best-effort follow-up write, not atomic with any comment insert.
	UpdateCommentCount(postID uint, count int) error
}

type CommentStore interface {
	// ListByPost returns all comments of a post ordered by creation time
	// ascending, the order the thread builder expects.
	ListByPost(postID uint) ([]models.Comment, error)
	GetByID(id uint) (*models.Comment, error)
	Insert(comment *models.Comment) error
}
