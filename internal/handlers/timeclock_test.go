package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"staffing-backend/internal/middleware"
	"staffing-backend/internal/models"
	"staffing-backend/internal/timeclock"
)

type timeclockTestEnv struct {
	router   *gin.Engine
	db       *gorm.DB
	staff    models.Staff
	position models.Position
}

func setupTimeclockTest(t *testing.T) *timeclockTestEnv {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Staff{}, &models.Position{}, &models.Event{}, &models.TimeEntry{}))

	staff := models.Staff{FirstName: "Mona", LastName: "Vetter", Email: "mona@example.com", Role: "staff"}
	require.NoError(t, db.Create(&staff).Error)
	position := models.Position{Name: "Bartender", HourlyRate: 18.5, Active: true}
	require.NoError(t, db.Create(&position).Error)

	engine := timeclock.NewEngine(nil)
	service := timeclock.NewService(timeclock.NewGormStore(db), engine)
	handler := NewTimeclockHandler(db, service, engine)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(middleware.ContextUserID, "test-user")
		c.Set(middleware.ContextRole, "staff")
		c.Set(middleware.ContextStaffID, staff.ID.String())
		c.Next()
	})
	router.POST("/api/timeclock/clock-in", handler.ClockIn)
	router.POST("/api/timeclock/clock-out", handler.ClockOut)
	router.GET("/api/timeclock/my", handler.My)
	router.GET("/api/timeclock/report", handler.Report)

	return &timeclockTestEnv{router: router, db: db, staff: staff, position: position}
}

func (env *timeclockTestEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

func TestClockInClockOutFlow(t *testing.T) {
	env := setupTimeclockTest(t)

	rec := env.do(t, http.MethodPost, "/api/timeclock/clock-in", gin.H{
		"positionId": env.position.ID.String(),
		"notes":      "front bar",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created models.TimeEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, models.EntryStatusActive, created.Status)
	assert.Equal(t, "Bartender", created.PositionName)
	assert.Equal(t, env.staff.ID, created.StaffID)

	t.Run("second clock-in conflicts", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/timeclock/clock-in", gin.H{
			"positionId": env.position.ID.String(),
		})
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("clock-out closes the entry", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/timeclock/clock-out", gin.H{"breakMinutes": 0})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var closed models.TimeEntry
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &closed))
		assert.Equal(t, created.ID, closed.ID)
		assert.Equal(t, models.EntryStatusClosed, closed.Status)
		require.NotNil(t, closed.TotalMinutes)
		assert.Equal(t, 0, *closed.TotalMinutes)
		assert.Equal(t, 0, closed.BreakMinutes)
	})

	t.Run("clock-out without an active entry conflicts", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/timeclock/clock-out", nil)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestClockInValidation(t *testing.T) {
	env := setupTimeclockTest(t)

	t.Run("missing positionId", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/timeclock/clock-in", gin.H{})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown positionId", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/timeclock/clock-in", gin.H{
			"positionId": "9b2e1f3a-0000-4000-8000-000000000000",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("negative breakMinutes on clock-out", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/timeclock/clock-in", gin.H{
			"positionId": env.position.ID.String(),
		})
		require.Equal(t, http.StatusCreated, rec.Code)

		rec = env.do(t, http.MethodPost, "/api/timeclock/clock-out", gin.H{"breakMinutes": -5})
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "breakMinutes", body["field"])
	})
}

func TestMyOverview(t *testing.T) {
	env := setupTimeclockTest(t)

	rec := env.do(t, http.MethodPost, "/api/timeclock/clock-in", gin.H{
		"positionId": env.position.ID.String(),
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = env.do(t, http.MethodPost, "/api/timeclock/clock-out", gin.H{"breakMinutes": 0})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/timeclock/my", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body struct {
		Entries []models.TimeEntry `json:"entries"`
		Days    []struct {
			Date    string             `json:"date"`
			Entries []models.TimeEntry `json:"entries"`
		} `json:"days"`
		CurrentMonthStats timeclock.MonthSummary `json:"current_month_stats"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Entries, 1)
	require.Len(t, body.Days, 1)
	assert.Equal(t, 1, body.CurrentMonthStats.EntriesCount)
	assert.Equal(t, 1, body.CurrentMonthStats.DaysWorked)

	t.Run("inverted range rejected", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/timeclock/my?from=2024-06-30&to=2024-06-01", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("bad limit rejected", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/timeclock/my?limit=abc", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestReportExport(t *testing.T) {
	env := setupTimeclockTest(t)

	rec := env.do(t, http.MethodPost, "/api/timeclock/clock-in", gin.H{
		"positionId": env.position.ID.String(),
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = env.do(t, http.MethodPost, "/api/timeclock/clock-out", gin.H{"breakMinutes": 0})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/timeclock/report?format=csv", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), ".csv")

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Date,Position,Event,Clock In,Clock Out,Break Minutes,Total", strings.TrimSpace(lines[0]))
	assert.Contains(t, lines[1], "Bartender")

	t.Run("unsupported format rejected", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/timeclock/report?format=pdf", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("staff may not export another staff member", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/timeclock/report?staff_id=11111111-1111-4111-8111-111111111111", nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
