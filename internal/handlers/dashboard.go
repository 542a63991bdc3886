package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"staffing-backend/internal/models"
)

type DashboardHandler struct {
	DB *gorm.DB
}

func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{DB: db}
}

func (h *DashboardHandler) Get(c *gin.Context) {
	var staffCount int64
	_ = h.DB.Model(&models.Staff{}).Count(&staffCount).Error

	var upcomingEvents int64
	_ = h.DB.Model(&models.Event{}).Where("starts_at > ?", time.Now()).Count(&upcomingEvents).Error

	var newApplicants int64
	_ = h.DB.Model(&models.Applicant{}).Where("status = ?", "new").Count(&newApplicants).Error

	var clockedIn int64
	_ = h.DB.Model(&models.TimeEntry{}).Where("clock_out IS NULL").Count(&clockedIn).Error

	startOfDay := time.Now().Truncate(24 * time.Hour)
	var todayEntries int64
	_ = h.DB.Model(&models.TimeEntry{}).Where("clock_in >= ?", startOfDay).Count(&todayEntries).Error

	c.JSON(http.StatusOK, gin.H{
		"staff":          staffCount,
		"upcomingEvents": upcomingEvents,
		"newApplicants":  newApplicants,
		"clockedIn":      clockedIn,
		"todayEntries":   todayEntries,
	})
}
