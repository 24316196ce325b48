package api

import (
	"errors"
	"net/http"

	"backend_timesheet/database"
	"backend_timesheet/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// OrganizationRequest данные для создания или обновления организации
type OrganizationRequest struct {
	ShortName string `json:"shortName" binding:"required,min=1,max=255"`
	FullName  string `json:"fullName"`
}

// GetOrganizations получает список всех организаций
func GetOrganizations(c *gin.Context) {
	var organizations []models.Organization
	if err := database.DB.Order("id").Find(&organizations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": "error",
			"error":  "Не удалось загрузить организации",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   organizations,
	})
}

// GetOrganization получает организацию по ID
func GetOrganization(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "error": err.Error()})
		return
	}

	var organization models.Organization
	err = database.DB.First(&organization, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"status": "error",
			"error":  "Организация не найдена",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": "error",
			"error":  "Не удалось загрузить организацию",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   organization,
	})
}

// CreateOrganization создает новую организацию
func CreateOrganization(c *gin.Context) {
	var req OrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status": "error",
			"error":  "Неверный формат данных организации",
		})
		return
	}

	organization := models.Organization{
		ShortName: req.ShortName,
		FullName:  req.FullName,
	}
	if err := database.DB.Create(&organization).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": "error",
			"error":  "Не удалось создать организацию",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"data":   organization,
	})
}

// UpdateOrganization обновляет существующую организацию
func UpdateOrganization(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "error": err.Error()})
		return
	}

	var req OrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status": "error",
			"error":  "Неверный формат данных организации",
		})
		return
	}

	var organization models.Organization
	err = database.DB.First(&organization, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"status": "error",
			"error":  "Организация не найдена",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": "error",
			"error":  "Не удалось загрузить организацию",
		})
		return
	}

	organization.ShortName = req.ShortName
	organization.FullName = req.FullName
	if err := database.DB.Save(&organization).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": "error",
			"error":  "Не удалось обновить организацию",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   organization,
	})
}

// DeleteOrganization удаляет организацию
func DeleteOrganization(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "error": err.Error()})
		return
	}

	result := database.DB.Delete(&models.Organization{}, id)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": "error",
			"error":  "Не удалось удалить организацию",
		})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"status": "error",
			"error":  "Организация не найдена",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Организация удалена",
	})
}
