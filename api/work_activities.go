package api

import (
	"errors"
	"net/http"
	"time"

	"backend_timesheet/database"
	"backend_timesheet/middleware"
	"backend_timesheet/models"
	"backend_timesheet/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// WorkActivityRequest данные для создания или обновления рабочей активности
type WorkActivityRequest struct {
	Date               string  `json:"date" binding:"required"` // YYYY-MM-DD
	WorkTime           float64 `json:"workTime" binding:"min=0"`
	ActivityType       string  `json:"activityType" binding:"required,oneof=Consultation Setup"`
	Description        string  `json:"description"`
	HasSignedTimesheet bool    `json:"hasSignedTimesheet"`
	OrganizationID     *uint   `json:"organizationId"`
}

// GetWorkActivities получает рабочие активности текущего пользователя.
// Необязательные параметры month и year ограничивают выборку периодом.
func GetWorkActivities(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	query := database.DB.Preload("Organization").Where("user_id = ?", userID)

	if c.Query("month") != "" || c.Query("year") != "" {
		month, year, err := parseMonthYear(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "error": err.Error()})
			return
		}
		if month < 1 || month > 12 || year <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "error": "Некорректный период"})
			return
		}
		start, next := services.PeriodRange(month, year)
		query = query.Where("date >= ? AND date < ?", start, next)
	}

	var activities []models.WorkActivity
	if err := query.Order("date DESC, id").Find(&activities).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": "error",
			"error":  "Не удалось загрузить рабочие активности",
		})
		return
	}

	for i := range activities {
		activities[i].ResolveOrganizationName()
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   activities,
	})
}

// GetWorkActivity получает рабочую активность по ID, если она
// принадлежит текущему пользователю
func GetWorkActivity(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "error": err.Error()})
		return
	}

	var activity models.WorkActivity
	err = database.DB.Preload("Organization").
		Where("id = ? AND user_id = ?", id, userID).
		First(&activity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"status": "error",
			"error":  "Рабочая активность не найдена",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": "error",
			"error":  "Не удалось загрузить рабочую активность",
		})
		return
	}

	activity.ResolveOrganizationName()

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   activity,
	})
}

// CreateWorkActivity создает рабочую активность текущего пользователя
func CreateWorkActivity(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req WorkActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status": "error",
			"error":  "Неверный формат данных активности",
		})
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status": "error",
			"error":  "Некорректная дата, ожидается формат ГГГГ-ММ-ДД",
		})
		return
	}

	activity := models.WorkActivity{
		Date:               date,
		WorkTime:           decimal.NewFromFloat(req.WorkTime),
		ActivityType:       req.ActivityType,
		Description:        req.Description,
		HasSignedTimesheet: req.HasSignedTimesheet,
		OrganizationID:     req.OrganizationID,
		UserID:             userID,
	}
	if err := database.DB.Create(&activity).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": "error",
			"error":  "Не удалось создать рабочую активность",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"data":   activity,
	})
}

// UpdateWorkActivity обновляет рабочую активность текущего пользователя
func UpdateWorkActivity(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "error": err.Error()})
		return
	}

	var req WorkActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status": "error",
			"error":  "Неверный формат данных активности",
		})
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status": "error",
			"error":  "Некорректная дата, ожидается формат ГГГГ-ММ-ДД",
		})
		return
	}

	var activity models.WorkActivity
	err = database.DB.Where("id = ? AND user_id = ?", id, userID).First(&activity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"status": "error",
			"error":  "Рабочая активность не найдена",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": "error",
			"error":  "Не удалось загрузить рабочую активность",
		})
		return
	}

	activity.Date = date
	activity.WorkTime = decimal.NewFromFloat(req.WorkTime)
	activity.ActivityType = req.ActivityType
	activity.Description = req.Description
	activity.HasSignedTimesheet = req.HasSignedTimesheet
	activity.OrganizationID = req.OrganizationID

	if err := database.DB.Save(&activity).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": "error",
			"error":  "Не удалось обновить рабочую активность",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   activity,
	})
}

// DeleteWorkActivity удаляет рабочую активность текущего пользователя
func DeleteWorkActivity(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "error": err.Error()})
		return
	}

	result := database.DB.Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.WorkActivity{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": "error",
			"error":  "Не удалось удалить рабочую активность",
		})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"status": "error",
			"error":  "Рабочая активность не найдена",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Рабочая активность удалена",
	})
}
