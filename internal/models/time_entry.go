package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	EntryStatusActive = "active"
	EntryStatusClosed = "closed"
)

// TimeEntry is one clock-in/clock-out session. ActiveStaffID carries the
// staff id while the entry is open and is cleared on close; the unique index
// on it guarantees at most one open entry per staff member.
type TimeEntry struct {
	ID            uuid.UUID  `gorm:"type:char(36);primaryKey" json:"id"`
	StaffID       uuid.UUID  `gorm:"type:char(36);index;not null" json:"staffId"`
	PositionID    uuid.UUID  `gorm:"type:char(36);not null" json:"positionId"`
	PositionName  string     `gorm:"size:120;not null" json:"positionName"`
	EventID       *uuid.UUID `gorm:"type:char(36)" json:"eventId,omitempty"`
	EventName     string     `gorm:"size:255" json:"eventName,omitempty"`
	ClockIn       time.Time  `gorm:"index;not null" json:"clockIn"`
	ClockOut      *time.Time `json:"clockOut,omitempty"`
	BreakMinutes  int        `gorm:"not null;default:0" json:"breakMinutes"`
	TotalMinutes  *int       `json:"totalMinutes,omitempty"`
	Notes         string     `gorm:"size:500" json:"notes,omitempty"`
	ActiveStaffID *uuid.UUID `gorm:"type:char(36);uniqueIndex" json:"-"`
	Status        string     `gorm:"-" json:"status"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

func (e *TimeEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

func (e *TimeEntry) AfterFind(tx *gorm.DB) error {
	e.RefreshStatus()
	return nil
}

func (e *TimeEntry) RefreshStatus() {
	if e.ClockOut == nil {
		e.Status = EntryStatusActive
	} else {
		e.Status = EntryStatusClosed
	}
}
