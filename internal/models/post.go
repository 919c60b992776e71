package models

import (
	"time"
)

type Post struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Pid    string `gorm:"uniqueIndex;size:8;not null" json:"pid"`
	UserID *uint  `gorm:"index" json:"user_id"` // Nullable: anonymous posts carry no owner
	User   *User  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"user,omitempty"`
	// DisplayName is the optional pen name shown on the post. Anonymous
	// posters may leave it empty.
	DisplayName string             `gorm:"size:50" json:"display_name"`
	Content     string             `gorm:"type:text;not null" json:"content"`
	Tags        []string           `gorm:"serializer:json" json:"tags"`
	Moderation  ModerationAnalysis `gorm:"serializer:json;type:jsonb" json:"moderation"`
	// CommentCount is a denormalized cache of the true number of comment
	// rows (nested replies included). It is recomputed and overwritten
	// after every successful comment insert, never incremented.
	CommentCount int       `gorm:"default:0" json:"comment_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
