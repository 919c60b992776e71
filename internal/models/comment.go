package models

import (
	"time"
)

type Comment struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Cid    string `gorm:"uniqueIndex;size:8;not null" json:"cid"`
	PostID uint   `gorm:"not null;index" json:"post_id"`
	Post   Post   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	UserID uint   `gorm:"not null;index" json:"user_id"` // Only signed-in users may comment
	User   User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	// ParentID is nil for top-level comments. When set it must reference a
	// comment on the same post; replies always point at an already
	// persisted comment, so cycles cannot occur.
	ParentID    *uint              `gorm:"index" json:"parent_id"`
	Parent      *Comment           `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	DisplayName string             `gorm:"size:50" json:"display_name"`
	Content     string             `gorm:"type:text;not null" json:"content"`
	Moderation  ModerationAnalysis `gorm:"serializer:json;type:jsonb" json:"moderation"`
	CreatedAt   time.Time          `json:"created_at"`
}
