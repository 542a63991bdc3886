package timeclock

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"staffing-backend/internal/models"
)

// EntryStore is the persistence seam for time entries. Implementations must
// make CreateEntry atomic with respect to the one-active-entry-per-staff
// invariant, and CloseEntry an atomic locate-and-close.
type EntryStore interface {
	CreateEntry(ctx context.Context, entry *models.TimeEntry) error
	FindActiveEntry(ctx context.Context, staffID uuid.UUID) (*models.TimeEntry, error)
	CloseEntry(ctx context.Context, entryID uuid.UUID, clockOut time.Time, breakMinutes, totalMinutes int) (*models.TimeEntry, error)
	QueryRange(ctx context.Context, staffID uuid.UUID, from, to time.Time, limit int) ([]models.TimeEntry, error)
}

// GormStore implements EntryStore on a gorm connection. The unique index on
// time_entries.active_staff_id makes the insert the conflict check: a second
// open entry for the same staff member fails with a duplicate key error.
// Requires gorm's TranslateError so duplicates surface as ErrDuplicatedKey
// on every driver.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) CreateEntry(ctx context.Context, entry *models.TimeEntry) error {
	staffID := entry.StaffID
	entry.ActiveStaffID = &staffID
	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadyClockedIn
		}
		return &StoreError{Op: "create entry", Err: err}
	}
	entry.RefreshStatus()
	return nil
}

func (s *GormStore) FindActiveEntry(ctx context.Context, staffID uuid.UUID) (*models.TimeEntry, error) {
	var entry models.TimeEntry
	err := s.db.WithContext(ctx).Where("active_staff_id = ?", staffID).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoActiveEntry
	}
	if err != nil {
		return nil, &StoreError{Op: "find active entry", Err: err}
	}
	return &entry, nil
}

// CloseEntry sets clock-out, break and total in a single update guarded by
// clock_out IS NULL, so a racing close loses cleanly instead of rewriting a
// frozen entry.
func (s *GormStore) CloseEntry(ctx context.Context, entryID uuid.UUID, clockOut time.Time, breakMinutes, totalMinutes int) (*models.TimeEntry, error) {
	res := s.db.WithContext(ctx).Model(&models.TimeEntry{}).
		Where("id = ? AND clock_out IS NULL", entryID).
		Updates(map[string]any{
			"clock_out":       clockOut,
			"break_minutes":   breakMinutes,
			"total_minutes":   totalMinutes,
			"active_staff_id": nil,
		})
	if res.Error != nil {
		return nil, &StoreError{Op: "close entry", Err: res.Error}
	}
	if res.RowsAffected == 0 {
		return nil, ErrNoActiveEntry
	}

	var entry models.TimeEntry
	if err := s.db.WithContext(ctx).First(&entry, "id = ?", entryID).Error; err != nil {
		return nil, &StoreError{Op: "close entry", Err: err}
	}
	return &entry, nil
}

func (s *GormStore) QueryRange(ctx context.Context, staffID uuid.UUID, from, to time.Time, limit int) ([]models.TimeEntry, error) {
	query := s.db.WithContext(ctx).
		Where("staff_id = ? AND clock_in >= ? AND clock_in <= ?", staffID, from, to).
		Order("clock_in asc")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var entries []models.TimeEntry
	if err := query.Find(&entries).Error; err != nil {
		return nil, &StoreError{Op: "query range", Err: err}
	}
	return entries, nil
}
