package timeclock

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"staffing-backend/internal/models"
)

func setupStoreTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.TimeEntry{}))
	return db
}

func newOpenEntry(staffID uuid.UUID, clockIn time.Time) *models.TimeEntry {
	return &models.TimeEntry{
		StaffID:      staffID,
		PositionID:   uuid.New(),
		PositionName: "Bartender",
		ClockIn:      clockIn,
	}
}

func TestGormStoreCreateEntry(t *testing.T) {
	store := NewGormStore(setupStoreTestDB(t))
	ctx := context.Background()
	staffID := uuid.New()

	entry := newOpenEntry(staffID, time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC))
	require.NoError(t, store.CreateEntry(ctx, entry))
	assert.NotEqual(t, uuid.Nil, entry.ID)
	assert.Equal(t, models.EntryStatusActive, entry.Status)

	t.Run("second clock-in for same staff conflicts", func(t *testing.T) {
		err := store.CreateEntry(ctx, newOpenEntry(staffID, time.Now()))
		assert.ErrorIs(t, err, ErrAlreadyClockedIn)
	})

	t.Run("other staff members are unaffected", func(t *testing.T) {
		err := store.CreateEntry(ctx, newOpenEntry(uuid.New(), time.Now()))
		assert.NoError(t, err)
	})
}

func TestGormStoreFindActiveEntry(t *testing.T) {
	store := NewGormStore(setupStoreTestDB(t))
	ctx := context.Background()
	staffID := uuid.New()

	_, err := store.FindActiveEntry(ctx, staffID)
	assert.ErrorIs(t, err, ErrNoActiveEntry)

	entry := newOpenEntry(staffID, time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC))
	require.NoError(t, store.CreateEntry(ctx, entry))

	found, err := store.FindActiveEntry(ctx, staffID)
	require.NoError(t, err)
	assert.Equal(t, entry.ID, found.ID)
	assert.Equal(t, models.EntryStatusActive, found.Status)
}

func TestGormStoreCloseEntry(t *testing.T) {
	store := NewGormStore(setupStoreTestDB(t))
	ctx := context.Background()
	staffID := uuid.New()

	clockIn := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	entry := newOpenEntry(staffID, clockIn)
	require.NoError(t, store.CreateEntry(ctx, entry))

	clockOut := clockIn.Add(510 * time.Minute)
	closed, err := store.CloseEntry(ctx, entry.ID, clockOut, 30, 480)
	require.NoError(t, err)
	require.NotNil(t, closed.ClockOut)
	require.NotNil(t, closed.TotalMinutes)
	assert.Equal(t, 480, *closed.TotalMinutes)
	assert.Equal(t, 30, closed.BreakMinutes)
	assert.Equal(t, models.EntryStatusClosed, closed.Status)
	assert.Nil(t, closed.ActiveStaffID)

	t.Run("closing twice fails", func(t *testing.T) {
		_, err := store.CloseEntry(ctx, entry.ID, clockOut.Add(time.Hour), 0, 540)
		assert.ErrorIs(t, err, ErrNoActiveEntry)
	})

	t.Run("closed entry frees the active slot", func(t *testing.T) {
		err := store.CreateEntry(ctx, newOpenEntry(staffID, clockOut.Add(time.Hour)))
		assert.NoError(t, err)
	})
}

func TestGormStoreQueryRange(t *testing.T) {
	store := NewGormStore(setupStoreTestDB(t))
	ctx := context.Background()
	staffID := uuid.New()
	otherStaff := uuid.New()

	days := []time.Time{
		time.Date(2024, 6, 3, 8, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 2, 8, 0, 0, 0, time.UTC),
		time.Date(2024, 5, 20, 8, 0, 0, 0, time.UTC), // outside range
	}
	for i, day := range days {
		entry := newOpenEntry(staffID, day)
		require.NoError(t, store.CreateEntry(ctx, entry))
		_, err := store.CloseEntry(ctx, entry.ID, day.Add(4*time.Hour), 0, 240)
		require.NoError(t, err)
		_ = i
	}
	foreign := newOpenEntry(otherStaff, days[0])
	require.NoError(t, store.CreateEntry(ctx, foreign))

	from := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 6, 30, 23, 59, 59, 0, time.UTC)

	entries, err := store.QueryRange(ctx, staffID, from, to, 0)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.True(t, entries[0].ClockIn.Before(entries[1].ClockIn))
	assert.True(t, entries[1].ClockIn.Before(entries[2].ClockIn))
	for _, entry := range entries {
		assert.Equal(t, staffID, entry.StaffID)
	}

	limited, err := store.QueryRange(ctx, staffID, from, to, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}
