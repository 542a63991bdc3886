package timeclock

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"staffing-backend/internal/models"
)

const (
	autoBreakThresholdMinutes = 360
	autoBreakMinutes          = 30
)

// Engine computes durations, day groupings and month summaries over time
// entries. All calendar math uses one fixed reporting timezone, never the
// ambient system location.
type Engine struct {
	loc *time.Location
}

func NewEngine(loc *time.Location) *Engine {
	if loc == nil {
		loc = time.UTC
	}
	return &Engine{loc: loc}
}

func (e *Engine) Location() *time.Location {
	return e.loc
}

// TotalMinutes computes the worked minutes of a closed session. The raw span
// is truncated to whole minutes. An automatic 30 minute break applies only
// when the span exceeds six hours and no explicit break was supplied; an
// explicit break, including 0, always wins. The result is clamped at 0.
func (e *Engine) TotalMinutes(clockIn, clockOut time.Time, explicitBreak *int) (total int, breakMinutes int) {
	raw := int(clockOut.Sub(clockIn).Minutes())
	if raw < 0 {
		raw = 0
	}
	if explicitBreak != nil {
		breakMinutes = *explicitBreak
		if breakMinutes < 0 {
			breakMinutes = 0
		}
	} else if raw > autoBreakThresholdMinutes {
		breakMinutes = autoBreakMinutes
	}
	total = raw - breakMinutes
	if total < 0 {
		total = 0
	}
	return total, breakMinutes
}

// ElapsedMinutes reports minutes worked so far. For closed entries it is the
// frozen total; for active entries the running span against now.
func (e *Engine) ElapsedMinutes(entry models.TimeEntry, now time.Time) int {
	if entry.TotalMinutes != nil {
		return *entry.TotalMinutes
	}
	elapsed := int(now.Sub(entry.ClockIn).Minutes())
	if elapsed < 0 {
		elapsed = 0
	}
	return elapsed
}

type DayGroup struct {
	Date    string             `json:"date"`
	Entries []models.TimeEntry `json:"entries"`
}

// GroupByDay partitions entries by the calendar date of their clock-in.
// An overnight shift belongs to its start day. Days come back most recent
// first, entries within a day in clock-in order.
func (e *Engine) GroupByDay(entries []models.TimeEntry) []DayGroup {
	buckets := make(map[string][]models.TimeEntry)
	for _, entry := range entries {
		key := entry.ClockIn.In(e.loc).Format("2006-01-02")
		buckets[key] = append(buckets[key], entry)
	}

	groups := make([]DayGroup, 0, len(buckets))
	for date, dayEntries := range buckets {
		sort.Slice(dayEntries, func(i, j int) bool {
			return dayEntries[i].ClockIn.Before(dayEntries[j].ClockIn)
		})
		groups = append(groups, DayGroup{Date: date, Entries: dayEntries})
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Date > groups[j].Date
	})
	return groups
}

type MonthSummary struct {
	TotalHours   string `json:"totalHours"`
	DaysWorked   int    `json:"daysWorked"`
	EntriesCount int    `json:"entriesCount"`
	AverageHours string `json:"averageHoursPerDay"`
}

// MonthRange returns the inclusive bounds of the calendar month containing t,
// in the reporting timezone.
func (e *Engine) MonthRange(t time.Time) (time.Time, time.Time) {
	local := t.In(e.loc)
	start := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, e.loc)
	end := start.AddDate(0, 1, 0).Add(-time.Second)
	return start, end
}

// SummarizeMonth aggregates the entries whose clock-in falls within the month
// containing t. Active entries count toward daysWorked and entriesCount but
// contribute no hours until closed.
func (e *Engine) SummarizeMonth(entries []models.TimeEntry, t time.Time) MonthSummary {
	start, end := e.MonthRange(t)

	var totalMinutes int64
	days := make(map[string]struct{})
	count := 0
	for _, entry := range entries {
		clockIn := entry.ClockIn.In(e.loc)
		if clockIn.Before(start) || clockIn.After(end) {
			continue
		}
		count++
		days[clockIn.Format("2006-01-02")] = struct{}{}
		if entry.TotalMinutes != nil {
			totalMinutes += int64(*entry.TotalMinutes)
		}
	}

	totalHours := minutesToHours(totalMinutes)
	average := "0.00"
	if len(days) > 0 {
		average = decimal.NewFromInt(totalMinutes).
			Div(decimal.NewFromInt(60)).
			Div(decimal.NewFromInt(int64(len(days)))).
			StringFixed(2)
	}

	return MonthSummary{
		TotalHours:   totalHours,
		DaysWorked:   len(days),
		EntriesCount: count,
		AverageHours: average,
	}
}

// minutesToHours formats minutes as decimal hours with exactly two places,
// rounded half-up.
func minutesToHours(minutes int64) string {
	return decimal.NewFromInt(minutes).Div(decimal.NewFromInt(60)).StringFixed(2)
}

// FormatHMM renders minutes as H:MM, e.g. 480 -> "8:00".
func FormatHMM(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%d:%02d", minutes/60, minutes%60)
}
