package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Shift struct {
	ID         uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	StaffID    uuid.UUID `gorm:"type:char(36);index;not null" json:"staffId"`
	EventID    uuid.UUID `gorm:"type:char(36);index;not null" json:"eventId"`
	PositionID uuid.UUID `gorm:"type:char(36);not null" json:"positionId"`
	StartsAt   time.Time `gorm:"index;not null" json:"startsAt"`
	EndsAt     time.Time `gorm:"not null" json:"endsAt"`
	Status     string    `gorm:"size:20;index;not null;default:scheduled" json:"status"`
	Notes      string    `gorm:"size:500" json:"notes,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (s *Shift) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
