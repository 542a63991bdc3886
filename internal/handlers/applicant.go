package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"staffing-backend/internal/models"
)

type ApplicantHandler struct {
	DB *gorm.DB
}

type createApplicantRequest struct {
	FirstName  string `json:"firstName" binding:"required"`
	LastName   string `json:"lastName" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Phone      string `json:"phone"`
	PositionID string `json:"positionId"`
	Message    string `json:"message"`
}

type updateApplicantStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=new reviewed accepted rejected"`
}

func NewApplicantHandler(db *gorm.DB) *ApplicantHandler {
	return &ApplicantHandler{DB: db}
}

// Create is the public intake endpoint, reachable without authentication.
func (h *ApplicantHandler) Create(c *gin.Context) {
	var req createApplicantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	applicant := models.Applicant{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:     req.Phone,
		Status:    "new",
		Message:   req.Message,
	}

	if req.PositionID != "" {
		positionID, err := uuid.Parse(req.PositionID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid positionId"})
			return
		}
		var position models.Position
		if err := h.DB.First(&position, "id = ?", positionID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown position"})
			return
		}
		applicant.PositionID = &position.ID
	}

	if err := h.DB.Create(&applicant).Error; err != nil {
		if err == gorm.ErrDuplicatedKey {
			c.JSON(http.StatusConflict, gin.H{"error": "application already submitted"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}

	c.JSON(http.StatusCreated, applicant)
}

func (h *ApplicantHandler) List(c *gin.Context) {
	query := h.DB.Order("created_at desc")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var applicants []models.Applicant
	if err := query.Find(&applicants).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load applicants"})
		return
	}
	c.JSON(http.StatusOK, applicants)
}

func (h *ApplicantHandler) UpdateStatus(c *gin.Context) {
	var req updateApplicantStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	applicantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var applicant models.Applicant
	if err := h.DB.First(&applicant, "id = ?", applicantID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "applicant not found"})
		return
	}

	applicant.Status = req.Status
	if err := h.DB.Save(&applicant).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}

	c.JSON(http.StatusOK, applicant)
}

func (h *ApplicantHandler) Delete(c *gin.Context) {
	applicantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := h.DB.Delete(&models.Applicant{}, "id = ?", applicantID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
