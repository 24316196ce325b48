package api

import (
	"errors"
	"net/http"

	"backend_timesheet/database"
	"backend_timesheet/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// EmployeeRequest данные для создания или обновления сотрудника
type EmployeeRequest struct {
	Fio            string `json:"fio" binding:"required,min=1,max=255"`
	PhoneNumber    string `json:"phoneNumber"`
	Position       string `json:"position"`
	Notes          string `json:"notes"`
	OrganizationID *uint  `json:"organizationId"`
}

// GetEmployees получает список всех сотрудников с названиями организаций
func GetEmployees(c *gin.Context) {
	var employees []models.Employee
	if err := database.DB.Preload("Organization").Order("id").Find(&employees).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": "error",
			"error":  "Не удалось загрузить сотрудников",
		})
		return
	}

	for i := range employees {
		if employees[i].Organization != nil {
			employees[i].OrganizationName = employees[i].Organization.ShortName
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   employees,
	})
}

// GetEmployee получает сотрудника по ID
func GetEmployee(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "error": err.Error()})
		return
	}

	var employee models.Employee
	err = database.DB.Preload("Organization").First(&employee, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"status": "error",
			"error":  "Сотрудник не найден",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": "error",
			"error":  "Не удалось загрузить сотрудника",
		})
		return
	}

	if employee.Organization != nil {
		employee.OrganizationName = employee.Organization.ShortName
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   employee,
	})
}

// CreateEmployee создает нового сотрудника
func CreateEmployee(c *gin.Context) {
	var req EmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status": "error",
			"error":  "Неверный формат данных сотрудника",
		})
		return
	}

	employee := models.Employee{
		Fio:            req.Fio,
		PhoneNumber:    req.PhoneNumber,
		Position:       req.Position,
		Notes:          req.Notes,
		OrganizationID: req.OrganizationID,
	}
	if err := database.DB.Create(&employee).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": "error",
			"error":  "Не удалось создать сотрудника",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"data":   employee,
	})
}

// UpdateEmployee обновляет существующего сотрудника
func UpdateEmployee(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "error": err.Error()})
		return
	}

	var req EmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status": "error",
			"error":  "Неверный формат данных сотрудника",
		})
		return
	}

	var employee models.Employee
	err = database.DB.First(&employee, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"status": "error",
			"error":  "Сотрудник не найден",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": "error",
			"error":  "Не удалось загрузить сотрудника",
		})
		return
	}

	employee.Fio = req.Fio
	employee.PhoneNumber = req.PhoneNumber
	employee.Position = req.Position
	employee.Notes = req.Notes
	employee.OrganizationID = req.OrganizationID

	if err := database.DB.Save(&employee).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": "error",
			"error":  "Не удалось обновить сотрудника",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   employee,
	})
}

// DeleteEmployee удаляет сотрудника
func DeleteEmployee(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "error": err.Error()})
		return
	}

	result := database.DB.Delete(&models.Employee{}, id)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": "error",
			"error":  "Не удалось удалить сотрудника",
		})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"status": "error",
			"error":  "Сотрудник не найден",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Сотрудник удален",
	})
}
