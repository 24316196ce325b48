package api

import (
	"net/http"
	"strconv"

	"backend_timesheet/services"

	"github.com/gin-gonic/gin"
)

// ClientReportAPI предоставляет API отчетов по клиентам
type ClientReportAPI struct {
	clientReportService *services.ClientReportService
}

// NewClientReportAPI создает новый экземпляр ClientReportAPI
func NewClientReportAPI(clientReportService *services.ClientReportService) *ClientReportAPI {
	return &ClientReportAPI{clientReportService: clientReportService}
}

// RegisterRoutes регистрирует маршруты отчетов по клиентам
func (ca *ClientReportAPI) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/client-report-data", ca.GetClientReportData)
}

// GetClientReportData возвращает данные отчета по организации за
// период: неподписанные активности и консультации сотрудников,
// сгруппированные по дням
func (ca *ClientReportAPI) GetClientReportData(c *gin.Context) {
	month, year, err := parseMonthYear(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "error": err.Error()})
		return
	}

	organizationIDStr := c.Query("organizationId")
	if organizationIDStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"status": "error",
			"error":  "Требуются месяц, год и ID организации",
		})
		return
	}
	organizationID, err := strconv.ParseUint(organizationIDStr, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status": "error",
			"error":  "Некорректный ID организации",
		})
		return
	}

	report, err := ca.clientReportService.GetReportData(uint(organizationID), month, year)
	if err != nil {
		respondServiceError(c, err, "Не удалось загрузить данные отчета по клиентам")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   report,
	})
}
