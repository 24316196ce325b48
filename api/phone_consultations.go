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
	"gorm.io/gorm"
)

// PhoneConsultationRequest данные для создания или обновления
// телефонной консультации. Время задается в минутах и конвертируется
// в часы при сохранении.
type PhoneConsultationRequest struct {
	Date             string  `json:"date" binding:"required"` // YYYY-MM-DD
	SpentTimeMinutes float64 `json:"spentTimeMinutes" binding:"min=0"`
	ClientFio        string  `json:"clientFio" binding:"required,min=1,max=255"`
	Description      string  `json:"description"`
}

// GetPhoneConsultations получает телефонные консультации текущего
// пользователя с определенными по ФИО организациями. Необязательные
// параметры month и year ограничивают выборку периодом.
func GetPhoneConsultations(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	query := database.DB.Where("user_id = ?", userID)

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

	var consultations []models.PhoneConsultation
	if err := query.Order("date DESC, id").Find(&consultations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": "error",
			"error":  "Не удалось загрузить телефонные консультации",
		})
		return
	}

	if err := services.ResolveClientOrganizations(database.DB, consultations); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": "error",
			"error":  "Не удалось определить организации клиентов",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   consultations,
	})
}

// GetPhoneConsultation получает телефонную консультацию по ID, если
// она принадлежит текущему пользователю
func GetPhoneConsultation(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "error": err.Error()})
		return
	}

	var consultation models.PhoneConsultation
	err = database.DB.Where("id = ? AND user_id = ?", id, userID).
		First(&consultation).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"status": "error",
			"error":  "Телефонная консультация не найдена",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": "error",
			"error":  "Не удалось загрузить телефонную консультацию",
		})
		return
	}

	consultations := []models.PhoneConsultation{consultation}
	if err := services.ResolveClientOrganizations(database.DB, consultations); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": "error",
			"error":  "Не удалось определить организацию клиента",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   consultations[0],
	})
}

// CreatePhoneConsultation создает телефонную консультацию текущего
// пользователя. Минуты округляются вверх до кратного 0.125 часа.
func CreatePhoneConsultation(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req PhoneConsultationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status": "error",
			"error":  "Неверный формат данных консультации",
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

	consultation := models.PhoneConsultation{
		Date:        date,
		SpentTime:   models.ConvertMinutesToHours(req.SpentTimeMinutes),
		ClientFio:   req.ClientFio,
		Description: req.Description,
		UserID:      userID,
	}
	if err := database.DB.Create(&consultation).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": "error",
			"error":  "Не удалось создать телефонную консультацию",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"data":   consultation,
	})
}

// UpdatePhoneConsultation обновляет телефонную консультацию текущего
// пользователя
func UpdatePhoneConsultation(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "error": err.Error()})
		return
	}

	var req PhoneConsultationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status": "error",
			"error":  "Неверный формат данных консультации",
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

	var consultation models.PhoneConsultation
	err = database.DB.Where("id = ? AND user_id = ?", id, userID).
		First(&consultation).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"status": "error",
			"error":  "Телефонная консультация не найдена",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": "error",
			"error":  "Не удалось загрузить телефонную консультацию",
		})
		return
	}

	consultation.Date = date
	consultation.SpentTime = models.ConvertMinutesToHours(req.SpentTimeMinutes)
	consultation.ClientFio = req.ClientFio
	consultation.Description = req.Description

	if err := database.DB.Save(&consultation).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": "error",
			"error":  "Не удалось обновить телефонную консультацию",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   consultation,
	})
}

// DeletePhoneConsultation удаляет телефонную консультацию текущего
// пользователя
func DeletePhoneConsultation(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "error": err.Error()})
		return
	}

	result := database.DB.Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.PhoneConsultation{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": "error",
			"error":  "Не удалось удалить телефонную консультацию",
		})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"status": "error",
			"error":  "Телефонная консультация не найдена",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Телефонная консультация удалена",
	})
}
