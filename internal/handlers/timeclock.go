package handlers

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"staffing-backend/internal/metrics"
	"staffing-backend/internal/middleware"
	"staffing-backend/internal/models"
	"staffing-backend/internal/timeclock"
)

type TimeclockHandler struct {
	DB      *gorm.DB
	Service *timeclock.Service
	Engine  *timeclock.Engine
}

type clockInRequest struct {
	PositionID string `json:"positionId" binding:"required"`
	EventID    string `json:"eventId"`
	Notes      string `json:"notes"`
}

type clockOutRequest struct {
	BreakMinutes *int `json:"breakMinutes"`
}

func NewTimeclockHandler(db *gorm.DB, service *timeclock.Service, engine *timeclock.Engine) *TimeclockHandler {
	return &TimeclockHandler{DB: db, Service: service, Engine: engine}
}

func staffIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	value, ok := c.Get(middleware.ContextStaffID)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(value.(string))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// respondTimeclockError maps the engine's error taxonomy onto protocol
// statuses: state conflicts are 409, bad input 400 with field detail, store
// failures 503 (retriable).
func respondTimeclockError(c *gin.Context, err error) {
	var validationErr *timeclock.ValidationError
	var storeErr *timeclock.StoreError

	switch {
	case errors.Is(err, timeclock.ErrAlreadyClockedIn):
		c.JSON(http.StatusConflict, gin.H{"error": "already clocked in"})
	case errors.Is(err, timeclock.ErrNoActiveEntry):
		c.JSON(http.StatusConflict, gin.H{"error": "no active entry"})
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Message, "field": validationErr.Field})
	case errors.As(err, &storeErr):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage unavailable, retry later"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "timeclock operation failed"})
	}
}

func (h *TimeclockHandler) ClockIn(c *gin.Context) {
	var req clockInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	staffID, ok := staffIDFromContext(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "no staff profile linked to account"})
		return
	}

	positionID, err := uuid.Parse(req.PositionID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid positionId", "field": "positionId"})
		return
	}
	var position models.Position
	if err := h.DB.First(&position, "id = ?", positionID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown position", "field": "positionId"})
		return
	}

	params := timeclock.ClockInParams{
		StaffID:      staffID,
		PositionID:   position.ID,
		PositionName: position.Name,
		Notes:        req.Notes,
	}
	if req.EventID != "" {
		eventID, err := uuid.Parse(req.EventID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid eventId", "field": "eventId"})
			return
		}
		var event models.Event
		if err := h.DB.First(&event, "id = ?", eventID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown event", "field": "eventId"})
			return
		}
		params.EventID = &event.ID
		params.EventName = event.Name
	}

	entry, err := h.Service.ClockIn(c.Request.Context(), params)
	if err != nil {
		metrics.IncClockIn("error")
		respondTimeclockError(c, err)
		return
	}

	metrics.IncClockIn("ok")
	c.JSON(http.StatusCreated, entry)
}

func (h *TimeclockHandler) ClockOut(c *gin.Context) {
	var req clockOutRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
			return
		}
	}

	staffID, ok := staffIDFromContext(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "no staff profile linked to account"})
		return
	}

	entry, err := h.Service.ClockOut(c.Request.Context(), staffID, req.BreakMinutes)
	if err != nil {
		metrics.IncClockOut("error")
		respondTimeclockError(c, err)
		return
	}

	metrics.IncClockOut("ok")
	c.JSON(http.StatusOK, entry)
}

func (h *TimeclockHandler) My(c *gin.Context) {
	staffID, ok := staffIDFromContext(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "no staff profile linked to account"})
		return
	}

	from, to, err := h.rangeFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit", "field": "limit"})
			return
		}
	}

	overview, err := h.Service.Overview(c.Request.Context(), staffID, from, to, limit)
	if err != nil {
		respondTimeclockError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entries":             overview.Entries,
		"days":                overview.Days,
		"current_month_stats": overview.Month,
	})
}

func (h *TimeclockHandler) Report(c *gin.Context) {
	staffID, err := h.resolveReportStaff(c)
	if err != nil {
		return // response already written
	}

	from, to, rangeErr := h.rangeFromQuery(c)
	if rangeErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": rangeErr.Error()})
		return
	}

	format := c.DefaultQuery("format", timeclock.FormatCSV)
	if format != timeclock.FormatCSV && format != timeclock.FormatXLSX {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported format", "field": "format"})
		return
	}

	entries, svcErr := h.Service.Report(c.Request.Context(), staffID, from, to)
	if svcErr != nil {
		respondTimeclockError(c, svcErr)
		return
	}

	var buf bytes.Buffer
	var contentType string
	if format == timeclock.FormatXLSX {
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		if err := h.Engine.WriteXLSX(&buf, entries); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "report rendering failed"})
			return
		}
	} else {
		contentType = "text/csv"
		if err := h.Engine.WriteCSV(&buf, entries); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "report rendering failed"})
			return
		}
	}

	metrics.IncReportExported(format)
	filename := timeclock.ReportFilename("timeclock", from.In(h.Engine.Location()), format)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

func (h *TimeclockHandler) List(c *gin.Context) {
	query := h.DB.Order("clock_in desc").Limit(500)
	if raw := c.Query("staff_id"); raw != "" {
		staffID, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid staff_id"})
			return
		}
		query = query.Where("staff_id = ?", staffID)
	}

	var entries []models.TimeEntry
	if err := query.Find(&entries).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load entries"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"days": h.Engine.GroupByDay(entries)})
}

// resolveReportStaff enforces that the staff role exports only its own data;
// admins and managers may name any staff member. Writes the error response
// itself on failure.
func (h *TimeclockHandler) resolveReportStaff(c *gin.Context) (uuid.UUID, error) {
	raw := c.DefaultQuery("staff_id", "self")
	role, _ := c.Get(middleware.ContextRole)

	if raw == "self" {
		staffID, ok := staffIDFromContext(c)
		if !ok {
			c.JSON(http.StatusForbidden, gin.H{"error": "no staff profile linked to account"})
			return uuid.Nil, errors.New("no staff profile")
		}
		return staffID, nil
	}

	staffID, err := uuid.Parse(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid staff_id"})
		return uuid.Nil, err
	}
	if role == "staff" {
		own, ok := staffIDFromContext(c)
		if !ok || own != staffID {
			c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return uuid.Nil, errors.New("forbidden")
		}
	}
	return staffID, nil
}

// rangeFromQuery parses from/to (RFC3339 or plain date, interpreted in the
// reporting timezone) and defaults to the current calendar month.
func (h *TimeclockHandler) rangeFromQuery(c *gin.Context) (time.Time, time.Time, error) {
	defaultFrom, defaultTo := h.Engine.MonthRange(time.Now())

	from, err := parseTimeQuery(c.Query("from"), defaultFrom, h.Engine.Location())
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("invalid from")
	}
	to, err := parseTimeQuery(c.Query("to"), defaultTo, h.Engine.Location())
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("invalid to")
	}
	// A plain date upper bound means the whole of that day.
	if len(c.Query("to")) == len("2006-01-02") {
		to = to.Add(24*time.Hour - time.Second)
	}
	return from, to, nil
}

func parseTimeQuery(value string, fallback time.Time, loc *time.Location) (time.Time, error) {
	if value == "" {
		return fallback, nil
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, nil
	}
	if parsed, err := time.ParseInLocation("2006-01-02", value, loc); err == nil {
		return parsed, nil
	}
	return time.Time{}, errors.New("invalid time")
}
