package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base is the base model for all persisted aggregates.
// ID is a UUID string so rows move between the SQL and mongo stores unchanged.
type Base struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Base) BeforeCreate(tx *gorm.DB) error {
	b.EnsureID()
	return nil
}

// EnsureID assigns a fresh UUID when the aggregate has none yet.
func (b *Base) EnsureID() {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
}

// Touch stamps timestamps for stores that do not manage them (mongo).
func (b *Base) Touch(now time.Time) {
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now
}
