package timeclock

import (
	"context"
	"time"

	"github.com/google/uuid"

	"staffing-backend/internal/models"
)

// Service drives the per-staff clock state machine against an injected store:
// CLOCKED_OUT -> ClockIn -> CLOCKED_IN -> ClockOut -> CLOCKED_OUT. There are
// no other transitions; breaks are a single deducted quantity, not a state.
type Service struct {
	store  EntryStore
	engine *Engine
	now    func() time.Time
}

func NewService(store EntryStore, engine *Engine) *Service {
	return &Service{store: store, engine: engine, now: time.Now}
}

type ClockInParams struct {
	StaffID      uuid.UUID
	PositionID   uuid.UUID
	PositionName string
	EventID      *uuid.UUID
	EventName    string
	Notes        string
}

func (s *Service) ClockIn(ctx context.Context, p ClockInParams) (*models.TimeEntry, error) {
	if p.StaffID == uuid.Nil {
		return nil, &ValidationError{Field: "staffId", Message: "required"}
	}
	if p.PositionID == uuid.Nil {
		return nil, &ValidationError{Field: "positionId", Message: "required"}
	}

	entry := &models.TimeEntry{
		StaffID:      p.StaffID,
		PositionID:   p.PositionID,
		PositionName: p.PositionName,
		EventID:      p.EventID,
		EventName:    p.EventName,
		ClockIn:      s.now().Truncate(time.Second),
		Notes:        p.Notes,
	}
	if err := s.store.CreateEntry(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *Service) ClockOut(ctx context.Context, staffID uuid.UUID, breakMinutes *int) (*models.TimeEntry, error) {
	if breakMinutes != nil && *breakMinutes < 0 {
		return nil, &ValidationError{Field: "breakMinutes", Message: "must not be negative"}
	}

	entry, err := s.store.FindActiveEntry(ctx, staffID)
	if err != nil {
		return nil, err
	}

	clockOut := s.now().Truncate(time.Second)
	if clockOut.Before(entry.ClockIn) {
		clockOut = entry.ClockIn
	}
	total, effectiveBreak := s.engine.TotalMinutes(entry.ClockIn, clockOut, breakMinutes)
	return s.store.CloseEntry(ctx, entry.ID, clockOut, effectiveBreak, total)
}

type Overview struct {
	Days    []DayGroup
	Entries []models.TimeEntry
	Month   MonthSummary
}

// Overview returns the entries of [from, to] grouped by day plus the summary
// of the calendar month containing now.
func (s *Service) Overview(ctx context.Context, staffID uuid.UUID, from, to time.Time, limit int) (*Overview, error) {
	if to.Before(from) {
		return nil, &ValidationError{Field: "to", Message: "must not be before from"}
	}

	entries, err := s.store.QueryRange(ctx, staffID, from, to, limit)
	if err != nil {
		return nil, err
	}

	now := s.now()
	monthStart, monthEnd := s.engine.MonthRange(now)
	monthEntries, err := s.store.QueryRange(ctx, staffID, monthStart, monthEnd, 0)
	if err != nil {
		return nil, err
	}

	return &Overview{
		Days:    s.engine.GroupByDay(entries),
		Entries: entries,
		Month:   s.engine.SummarizeMonth(monthEntries, now),
	}, nil
}

// Report returns the raw range slice for export, ascending by clock-in.
func (s *Service) Report(ctx context.Context, staffID uuid.UUID, from, to time.Time) ([]models.TimeEntry, error) {
	if to.Before(from) {
		return nil, &ValidationError{Field: "to", Message: "must not be before from"}
	}
	return s.store.QueryRange(ctx, staffID, from, to, 0)
}
