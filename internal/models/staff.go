package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Staff struct {
	ID        uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	FirstName string    `gorm:"size:120;not null" json:"firstName"`
	LastName  string    `gorm:"size:120;not null" json:"lastName"`
	Email     string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Role      string    `gorm:"size:50;not null;default:staff" json:"role"`
	Phone     string    `gorm:"size:50" json:"phone"`
	HiredAt   time.Time `json:"hiredAt"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (s *Staff) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
