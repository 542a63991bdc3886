package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"staffing-backend/internal/middleware"
	"staffing-backend/internal/models"
	"staffing-backend/internal/utils"
)

type StaffHandler struct {
	DB *gorm.DB
}

type createStaffRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Role      string `json:"role"`
	Phone     string `json:"phone"`
	HiredAt   string `json:"hiredAt" binding:"required"`
}

type createStaffUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

func NewStaffHandler(db *gorm.DB) *StaffHandler {
	return &StaffHandler{DB: db}
}

func normalizeStaffRole(value string) (string, bool) {
	role := strings.ToLower(strings.TrimSpace(value))
	if role == "" {
		return "staff", true
	}
	if role == "staff" || role == "manager" {
		return role, true
	}
	return "", false
}

func (h *StaffHandler) List(c *gin.Context) {
	role, _ := c.Get(middleware.ContextRole)
	if role == "staff" {
		staffID, ok := staffIDFromContext(c)
		if !ok {
			c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		var member models.Staff
		if err := h.DB.First(&member, "id = ?", staffID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "staff member not found"})
			return
		}
		c.JSON(http.StatusOK, []models.Staff{member})
		return
	}

	var staff []models.Staff
	if err := h.DB.Order("created_at desc").Find(&staff).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load staff"})
		return
	}
	c.JSON(http.StatusOK, staff)
}

func (h *StaffHandler) Create(c *gin.Context) {
	var req createStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	normalizedEmail := strings.ToLower(strings.TrimSpace(req.Email))
	var existing models.Staff
	if err := h.DB.Where("email = ?", normalizedEmail).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "email already exists"})
		return
	} else if err != gorm.ErrRecordNotFound {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}

	hiredAt, err := time.Parse("2006-01-02", req.HiredAt)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid hiredAt"})
		return
	}

	role, validRole := normalizeStaffRole(req.Role)
	if !validRole {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role"})
		return
	}

	member := models.Staff{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     normalizedEmail,
		Role:      role,
		Phone:     req.Phone,
		HiredAt:   hiredAt,
	}

	if err := h.DB.Create(&member).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}

	c.JSON(http.StatusCreated, member)
}

func (h *StaffHandler) Update(c *gin.Context) {
	var req createStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	staffID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	hiredAt, err := time.Parse("2006-01-02", req.HiredAt)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid hiredAt"})
		return
	}

	role, validRole := normalizeStaffRole(req.Role)
	if !validRole {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role"})
		return
	}

	var member models.Staff
	if err := h.DB.First(&member, "id = ?", staffID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "staff member not found"})
		return
	}

	normalizedEmail := strings.ToLower(strings.TrimSpace(req.Email))
	var existing models.Staff
	if err := h.DB.Where("email = ? AND id <> ?", normalizedEmail, staffID).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "email already exists"})
		return
	} else if err != gorm.ErrRecordNotFound {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}

	member.FirstName = req.FirstName
	member.LastName = req.LastName
	member.Email = normalizedEmail
	member.Role = role
	member.Phone = req.Phone
	member.HiredAt = hiredAt

	if err := h.DB.Save(&member).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}

	_ = h.DB.Model(&models.User{}).
		Where("staff_id = ?", staffID).
		Updates(map[string]any{
			"email": normalizedEmail,
			"name":  member.FirstName + " " + member.LastName,
			"role":  member.Role,
		}).Error

	c.JSON(http.StatusOK, member)
}

func (h *StaffHandler) Delete(c *gin.Context) {
	staffID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var member models.Staff
	if err := h.DB.First(&member, "id = ?", staffID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "staff member not found"})
		return
	}

	if err := h.DB.Delete(&models.Staff{}, "id = ?", staffID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

func (h *StaffHandler) CreateUser(c *gin.Context) {
	var req createStaffUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	staffID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var member models.Staff
	if err := h.DB.First(&member, "id = ?", staffID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "staff member not found"})
		return
	}

	normalizedEmail := strings.ToLower(strings.TrimSpace(req.Email))
	var existing models.User
	if err := h.DB.Where("email = ?", normalizedEmail).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
		return
	} else if err != gorm.ErrRecordNotFound {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user creation failed"})
		return
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "password error"})
		return
	}

	user := models.User{
		Email:        normalizedEmail,
		PasswordHash: passwordHash,
		Name:         member.FirstName + " " + member.LastName,
		Role:         member.Role,
		StaffID:      &member.ID,
	}

	if err := h.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user creation failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":      user.ID,
		"email":   user.Email,
		"name":    user.Name,
		"role":    user.Role,
		"staffId": user.StaffID,
	})
}
