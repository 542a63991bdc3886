package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"staffing-backend/internal/models"
)

type EventHandler struct {
	DB *gorm.DB
}

type createEventRequest struct {
	Name     string `json:"name" binding:"required"`
	Venue    string `json:"venue"`
	StartsAt string `json:"startsAt" binding:"required"`
	EndsAt   string `json:"endsAt" binding:"required"`
	Status   string `json:"status"`
	Notes    string `json:"notes"`
}

func NewEventHandler(db *gorm.DB) *EventHandler {
	return &EventHandler{DB: db}
}

func parseEventTimes(req createEventRequest) (time.Time, time.Time, bool) {
	startsAt, err := time.Parse(time.RFC3339, req.StartsAt)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	endsAt, err := time.Parse(time.RFC3339, req.EndsAt)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	if !endsAt.After(startsAt) {
		return time.Time{}, time.Time{}, false
	}
	return startsAt, endsAt, true
}

func (h *EventHandler) List(c *gin.Context) {
	query := h.DB.Order("starts_at desc")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var events []models.Event
	if err := query.Find(&events).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load events"})
		return
	}
	c.JSON(http.StatusOK, events)
}

func (h *EventHandler) Create(c *gin.Context) {
	var req createEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	startsAt, endsAt, ok := parseEventTimes(req)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event times"})
		return
	}

	status := req.Status
	if status == "" {
		status = "planned"
	}

	event := models.Event{
		Name:     req.Name,
		Venue:    req.Venue,
		StartsAt: startsAt,
		EndsAt:   endsAt,
		Status:   status,
		Notes:    req.Notes,
	}

	if err := h.DB.Create(&event).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}

	c.JSON(http.StatusCreated, event)
}

func (h *EventHandler) Update(c *gin.Context) {
	var req createEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	startsAt, endsAt, ok := parseEventTimes(req)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event times"})
		return
	}

	var event models.Event
	if err := h.DB.First(&event, "id = ?", eventID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
		return
	}

	event.Name = req.Name
	event.Venue = req.Venue
	event.StartsAt = startsAt
	event.EndsAt = endsAt
	if req.Status != "" {
		event.Status = req.Status
	}
	event.Notes = req.Notes

	if err := h.DB.Save(&event).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}

	c.JSON(http.StatusOK, event)
}

func (h *EventHandler) Delete(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := h.DB.Delete(&models.Event{}, "id = ?", eventID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
