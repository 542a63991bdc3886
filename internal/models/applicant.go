package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Applicant struct {
	ID         uuid.UUID  `gorm:"type:char(36);primaryKey" json:"id"`
	FirstName  string     `gorm:"size:120;not null" json:"firstName"`
	LastName   string     `gorm:"size:120;not null" json:"lastName"`
	Email      string     `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Phone      string     `gorm:"size:50" json:"phone"`
	PositionID *uuid.UUID `gorm:"type:char(36)" json:"positionId,omitempty"`
	Status     string     `gorm:"size:20;index;not null;default:new" json:"status"`
	Message    string     `gorm:"size:2000" json:"message,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

func (a *Applicant) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
