package models

import (
	"time"
)

const (
	ResourceKindBreathing  = "breathing"
	ResourceKindMeditation = "meditation"
	ResourceKindSoundscape = "soundscape"
)

// Resource is a relaxation tool (guided breathing pattern, meditation, or
// ambient soundscape). Media files live in external object storage; only the
// URL is kept here.
type Resource struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Kind        string    `gorm:"size:20;not null;index" json:"kind"`
	Title       string    `gorm:"size:120;not null" json:"title"`
	Description string    `gorm:"size:300" json:"description"`
	MediaURL    string    `json:"media_url"`
	DurationSec int       `gorm:"default:0" json:"duration_sec"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
