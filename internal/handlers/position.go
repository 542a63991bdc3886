package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"staffing-backend/internal/models"
)

type PositionHandler struct {
	DB *gorm.DB
}

type createPositionRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	HourlyRate  float64 `json:"hourlyRate"`
	Active      *bool   `json:"active"`
}

func NewPositionHandler(db *gorm.DB) *PositionHandler {
	return &PositionHandler{DB: db}
}

func (h *PositionHandler) List(c *gin.Context) {
	query := h.DB.Order("name asc")
	if c.Query("active") == "true" {
		query = query.Where("active = ?", true)
	}

	var positions []models.Position
	if err := query.Find(&positions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load positions"})
		return
	}
	c.JSON(http.StatusOK, positions)
}

func (h *PositionHandler) Create(c *gin.Context) {
	var req createPositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	position := models.Position{
		Name:        req.Name,
		Description: req.Description,
		HourlyRate:  req.HourlyRate,
		Active:      true,
	}
	if req.Active != nil {
		position.Active = *req.Active
	}

	if err := h.DB.Create(&position).Error; err != nil {
		if err == gorm.ErrDuplicatedKey {
			c.JSON(http.StatusConflict, gin.H{"error": "position name already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}

	c.JSON(http.StatusCreated, position)
}

func (h *PositionHandler) Update(c *gin.Context) {
	var req createPositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	positionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var position models.Position
	if err := h.DB.First(&position, "id = ?", positionID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "position not found"})
		return
	}

	position.Name = req.Name
	position.Description = req.Description
	position.HourlyRate = req.HourlyRate
	if req.Active != nil {
		position.Active = *req.Active
	}

	if err := h.DB.Save(&position).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}

	c.JSON(http.StatusOK, position)
}

func (h *PositionHandler) Delete(c *gin.Context) {
	positionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := h.DB.Delete(&models.Position{}, "id = ?", positionID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
