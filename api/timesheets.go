package api

import (
	"errors"
	"net/http"

	"backend_timesheet/middleware"
	"backend_timesheet/models"
	"backend_timesheet/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TimesheetAPI предоставляет API для работы с месячными табелями
type TimesheetAPI struct {
	db                  *gorm.DB
	timesheetService    *services.TimesheetService
	exportService       *services.ExportService
	notificationService *services.NotificationService
}

// NewTimesheetAPI создает новый экземпляр TimesheetAPI
func NewTimesheetAPI(db *gorm.DB, timesheetService *services.TimesheetService,
	exportService *services.ExportService, notificationService *services.NotificationService) *TimesheetAPI {
	return &TimesheetAPI{
		db:                  db,
		timesheetService:    timesheetService,
		exportService:       exportService,
		notificationService: notificationService,
	}
}

// RegisterRoutes регистрирует маршруты табельного учета
func (ta *TimesheetAPI) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/entries", ta.GetEntries)
	router.GET("/entries/export", ta.ExportEntries)
	router.POST("/generate", ta.Generate)
	router.GET("/report-data", ta.GetReportData)
}

// GenerateRequest параметры формирования табеля
type GenerateRequest struct {
	Month int `json:"month" binding:"required"`
	Year  int `json:"year" binding:"required"`
}

// GetEntries возвращает строки табеля текущего пользователя за период.
// Если табель еще не формировался, возвращается пустой список.
func (ta *TimesheetAPI) GetEntries(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	month, year, err := parseMonthYear(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "error": err.Error()})
		return
	}

	entries, err := ta.timesheetService.GetEntries(userID, month, year)
	if err != nil {
		respondServiceError(c, err, "Не удалось загрузить строки табеля")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   entries,
	})
}

// Generate формирует табель текущего пользователя за период, полностью
// заменяя ранее сформированные строки
func (ta *TimesheetAPI) Generate(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status": "error",
			"error":  "Требуются месяц и год",
		})
		return
	}

	if err := ta.timesheetService.GenerateAndSave(userID, req.Month, req.Year); err != nil {
		respondServiceError(c, err, "Не удалось сформировать табель")
		return
	}

	// Уведомление не влияет на результат операции
	if ta.notificationService != nil && ta.notificationService.Enabled() {
		entries, err := ta.timesheetService.GetEntries(userID, req.Month, req.Year)
		if err == nil {
			claims := middleware.GetCurrentClaims(c)
			login := ""
			if claims != nil {
				login = claims.Login
			}
			ta.notificationService.NotifyTimesheetGenerated(login, req.Month, req.Year, len(entries))
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Табель сформирован и сохранен",
	})
}

// GetReportData возвращает строки табеля вместе с данными пользователя
// для печатной формы отчета
func (ta *TimesheetAPI) GetReportData(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	month, year, err := parseMonthYear(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "error": err.Error()})
		return
	}

	entries, err := ta.timesheetService.GetEntries(userID, month, year)
	if err != nil {
		respondServiceError(c, err, "Не удалось загрузить данные отчета")
		return
	}

	var user models.User
	err = ta.db.First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"status": "error",
			"error":  "Пользователь не найден",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": "error",
			"error":  "Не удалось загрузить данные пользователя",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data": gin.H{
			"entries": entries,
			"userInfo": gin.H{
				"id":    user.ID,
				"login": user.Login,
				"role":  user.Role,
			},
		},
	})
}

// ExportEntries выгружает сформированный табель за период в файл.
// Поддерживаются форматы xlsx, csv и pdf (по умолчанию xlsx).
func (ta *TimesheetAPI) ExportEntries(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	month, year, err := parseMonthYear(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "error": err.Error()})
		return
	}

	format := c.DefaultQuery("format", services.ExportFormatExcel)

	entries, err := ta.timesheetService.GetEntries(userID, month, year)
	if err != nil {
		respondServiceError(c, err, "Не удалось загрузить строки табеля")
		return
	}

	claims := middleware.GetCurrentClaims(c)
	login := ""
	if claims != nil {
		login = claims.Login
	}

	file, err := ta.exportService.ExportEntries(entries, login, month, year, format)
	if err != nil {
		respondServiceError(c, err, "Не удалось выгрузить табель")
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+file.FileName)
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
