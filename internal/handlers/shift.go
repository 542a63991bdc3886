package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"staffing-backend/internal/middleware"
	"staffing-backend/internal/models"
)

type ShiftHandler struct {
	DB *gorm.DB
}

type createShiftRequest struct {
	StaffID    string `json:"staffId" binding:"required"`
	EventID    string `json:"eventId" binding:"required"`
	PositionID string `json:"positionId" binding:"required"`
	StartsAt   string `json:"startsAt" binding:"required"`
	EndsAt     string `json:"endsAt" binding:"required"`
	Notes      string `json:"notes"`
}

type updateShiftStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=scheduled confirmed cancelled"`
}

func NewShiftHandler(db *gorm.DB) *ShiftHandler {
	return &ShiftHandler{DB: db}
}

func (h *ShiftHandler) List(c *gin.Context) {
	role, _ := c.Get(middleware.ContextRole)
	query := h.DB.Order("starts_at desc")

	if role == "staff" {
		staffID, ok := staffIDFromContext(c)
		if !ok {
			c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		query = query.Where("staff_id = ?", staffID)
	} else if raw := c.Query("staff_id"); raw != "" {
		staffID, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid staff_id"})
			return
		}
		query = query.Where("staff_id = ?", staffID)
	}

	if raw := c.Query("event_id"); raw != "" {
		eventID, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event_id"})
			return
		}
		query = query.Where("event_id = ?", eventID)
	}

	var shifts []models.Shift
	if err := query.Find(&shifts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load shifts"})
		return
	}
	c.JSON(http.StatusOK, shifts)
}

func (h *ShiftHandler) Create(c *gin.Context) {
	var req createShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	staffID, err := uuid.Parse(req.StaffID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid staffId"})
		return
	}
	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid eventId"})
		return
	}
	positionID, err := uuid.Parse(req.PositionID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid positionId"})
		return
	}

	startsAt, err := time.Parse(time.RFC3339, req.StartsAt)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid startsAt"})
		return
	}
	endsAt, err := time.Parse(time.RFC3339, req.EndsAt)
	if err != nil || !endsAt.After(startsAt) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid endsAt"})
		return
	}

	var member models.Staff
	if err := h.DB.First(&member, "id = ?", staffID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "staff member not found"})
		return
	}
	var event models.Event
	if err := h.DB.First(&event, "id = ?", eventID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
		return
	}

	shift := models.Shift{
		StaffID:    staffID,
		EventID:    eventID,
		PositionID: positionID,
		StartsAt:   startsAt,
		EndsAt:     endsAt,
		Status:     "scheduled",
		Notes:      req.Notes,
	}

	if err := h.DB.Create(&shift).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}

	c.JSON(http.StatusCreated, shift)
}

func (h *ShiftHandler) UpdateStatus(c *gin.Context) {
	var req updateShiftStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	shiftID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var shift models.Shift
	if err := h.DB.First(&shift, "id = ?", shiftID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "shift not found"})
		return
	}

	shift.Status = req.Status
	if err := h.DB.Save(&shift).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}

	c.JSON(http.StatusOK, shift)
}

func (h *ShiftHandler) Delete(c *gin.Context) {
	shiftID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := h.DB.Delete(&models.Shift{}, "id = ?", shiftID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
