package models

import (
	"time"
)

// JournalEntry is a private diary entry. Mood fields are filled by the AI
// mood scorer at write time when the call succeeds; an entry without a score
// is still a valid entry.
type JournalEntry struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Jid     string `gorm:"uniqueIndex;size:8;not null" json:"jid"`
	UserID  uint   `gorm:"not null;index" json:"user_id"`
	User    User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Title   string `gorm:"size:120" json:"title"`
	Content string `gorm:"type:text;not null" json:"content"`

	MoodScore      *int   `json:"mood_score"` // 1 (very low) .. 10 (very bright)
	MoodLabel      string `gorm:"size:30" json:"mood_label"`
	MoodReflection string `gorm:"type:text" json:"mood_reflection"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
