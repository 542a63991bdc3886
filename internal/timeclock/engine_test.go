package timeclock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staffing-backend/internal/models"
)

func intPtr(v int) *int {
	return &v
}

func closedEntry(clockIn time.Time, totalMinutes int) models.TimeEntry {
	clockOut := clockIn.Add(time.Duration(totalMinutes) * time.Minute)
	return models.TimeEntry{
		ClockIn:      clockIn,
		ClockOut:     &clockOut,
		TotalMinutes: intPtr(totalMinutes),
	}
}

func TestTotalMinutes(t *testing.T) {
	engine := NewEngine(time.UTC)
	base := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		span          time.Duration
		explicitBreak *int
		wantTotal     int
		wantBreak     int
	}{
		{"long shift gets automatic break", 510 * time.Minute, nil, 480, 30},
		{"explicit zero break overrides policy", 240 * time.Minute, intPtr(0), 240, 0},
		{"explicit zero break on long shift", 510 * time.Minute, intPtr(0), 510, 0},
		{"explicit break honored as-is", 300 * time.Minute, intPtr(60), 240, 60},
		{"exactly six hours, no automatic break", 360 * time.Minute, nil, 360, 0},
		{"just over six hours", 361 * time.Minute, nil, 331, 30},
		{"short shift, no break", 90 * time.Minute, nil, 90, 0},
		{"break exceeding span clamps total at zero", 60 * time.Minute, intPtr(90), 0, 90},
		{"zero duration", 0, nil, 0, 0},
		{"partial minute truncates, not rounds", 89*time.Minute + 59*time.Second, nil, 89, 0},
		{"negative explicit break treated as zero", 120 * time.Minute, intPtr(-5), 120, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total, breakMinutes := engine.TotalMinutes(base, base.Add(tt.span), tt.explicitBreak)
			assert.Equal(t, tt.wantTotal, total)
			assert.Equal(t, tt.wantBreak, breakMinutes)
			assert.GreaterOrEqual(t, total, 0)
		})
	}
}

func TestElapsedMinutes(t *testing.T) {
	engine := NewEngine(time.UTC)
	clockIn := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

	active := models.TimeEntry{ClockIn: clockIn}
	assert.Equal(t, 95, engine.ElapsedMinutes(active, clockIn.Add(95*time.Minute)))
	assert.Equal(t, 0, engine.ElapsedMinutes(active, clockIn.Add(-time.Minute)))

	closed := closedEntry(clockIn, 480)
	assert.Equal(t, 480, engine.ElapsedMinutes(closed, clockIn.Add(24*time.Hour)))
}

func TestGroupByDay(t *testing.T) {
	engine := NewEngine(time.UTC)

	day1Morning := closedEntry(time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC), 240)
	day1Evening := closedEntry(time.Date(2024, 6, 1, 18, 0, 0, 0, time.UTC), 120)
	overnight := closedEntry(time.Date(2024, 6, 2, 23, 30, 0, 0, time.UTC), 180)
	day3 := closedEntry(time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC), 300)

	groups := engine.GroupByDay([]models.TimeEntry{day1Evening, day3, day1Morning, overnight})
	require.Len(t, groups, 3)

	// most recent day first
	assert.Equal(t, "2024-06-03", groups[0].Date)
	assert.Equal(t, "2024-06-02", groups[1].Date)
	assert.Equal(t, "2024-06-01", groups[2].Date)

	// overnight shift attributed to its start day
	require.Len(t, groups[1].Entries, 1)
	assert.Equal(t, overnight.ClockIn, groups[1].Entries[0].ClockIn)

	// entries within a day ascend by clock-in
	require.Len(t, groups[2].Entries, 2)
	assert.Equal(t, day1Morning.ClockIn, groups[2].Entries[0].ClockIn)
	assert.Equal(t, day1Evening.ClockIn, groups[2].Entries[1].ClockIn)

	// partition: every entry lands in exactly one bucket
	total := 0
	for _, g := range groups {
		total += len(g.Entries)
	}
	assert.Equal(t, 4, total)
}

func TestGroupByDayUsesReportingTimezone(t *testing.T) {
	berlin := time.FixedZone("UTC+2", 2*60*60)
	engine := NewEngine(berlin)

	// 22:30 UTC on May 31 is 00:30 June 1 in the reporting timezone.
	entry := closedEntry(time.Date(2024, 5, 31, 22, 30, 0, 0, time.UTC), 60)
	groups := engine.GroupByDay([]models.TimeEntry{entry})
	require.Len(t, groups, 1)
	assert.Equal(t, "2024-06-01", groups[0].Date)
}

func TestSummarizeMonth(t *testing.T) {
	engine := NewEngine(time.UTC)
	june := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	entries := []models.TimeEntry{
		closedEntry(time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC), 480),
		closedEntry(time.Date(2024, 6, 2, 8, 0, 0, 0, time.UTC), 240),
		closedEntry(time.Date(2024, 5, 31, 8, 0, 0, 0, time.UTC), 600), // outside month
		closedEntry(time.Date(2024, 7, 1, 8, 0, 0, 0, time.UTC), 600),  // outside month
	}

	summary := engine.SummarizeMonth(entries, june)
	assert.Equal(t, "12.00", summary.TotalHours)
	assert.Equal(t, 2, summary.DaysWorked)
	assert.Equal(t, 2, summary.EntriesCount)
	assert.Equal(t, "6.00", summary.AverageHours)
}

func TestSummarizeMonthSameDayAndActiveEntries(t *testing.T) {
	engine := NewEngine(time.UTC)
	june := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	active := models.TimeEntry{ClockIn: time.Date(2024, 6, 1, 18, 0, 0, 0, time.UTC)}
	entries := []models.TimeEntry{
		closedEntry(time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC), 480),
		closedEntry(time.Date(2024, 6, 1, 13, 0, 0, 0, time.UTC), 240),
		active,
	}

	summary := engine.SummarizeMonth(entries, june)
	assert.Equal(t, "12.00", summary.TotalHours)
	assert.Equal(t, 1, summary.DaysWorked)
	assert.Equal(t, 3, summary.EntriesCount)
	assert.Equal(t, "12.00", summary.AverageHours)
}

func TestSummarizeMonthEmpty(t *testing.T) {
	engine := NewEngine(time.UTC)
	summary := engine.SummarizeMonth(nil, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "0.00", summary.TotalHours)
	assert.Equal(t, 0, summary.DaysWorked)
	assert.Equal(t, 0, summary.EntriesCount)
	assert.Equal(t, "0.00", summary.AverageHours)
}

func TestSummarizeMonthHalfUpRounding(t *testing.T) {
	engine := NewEngine(time.UTC)
	june := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	// 100 minutes = 1.6666... hours -> 1.67
	summary := engine.SummarizeMonth([]models.TimeEntry{
		closedEntry(time.Date(2024, 6, 3, 8, 0, 0, 0, time.UTC), 100),
	}, june)
	assert.Equal(t, "1.67", summary.TotalHours)
}

func TestMonthRange(t *testing.T) {
	engine := NewEngine(time.UTC)
	start, end := engine.MonthRange(time.Date(2024, 2, 14, 10, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 2, 29, 23, 59, 59, 0, time.UTC), end)
}

func TestFormatHMM(t *testing.T) {
	assert.Equal(t, "8:00", FormatHMM(480))
	assert.Equal(t, "0:00", FormatHMM(0))
	assert.Equal(t, "1:15", FormatHMM(75))
	assert.Equal(t, "10:05", FormatHMM(605))
	assert.Equal(t, "0:00", FormatHMM(-10))
}
