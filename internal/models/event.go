package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Event struct {
	ID        uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Venue     string    `gorm:"size:255" json:"venue"`
	StartsAt  time.Time `gorm:"index;not null" json:"startsAt"`
	EndsAt    time.Time `gorm:"not null" json:"endsAt"`
	Status    string    `gorm:"size:20;index;not null;default:planned" json:"status"`
	Notes     string    `gorm:"size:1000" json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
