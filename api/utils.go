package api

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"backend_timesheet/services"

	"github.com/gin-gonic/gin"
)

// parseMonthYear извлекает обязательные параметры month и year из
// строки запроса
func parseMonthYear(c *gin.Context) (int, int, error) {
	monthStr := c.Query("month")
	yearStr := c.Query("year")
	if monthStr == "" || yearStr == "" {
		return 0, 0, fmt.Errorf("требуются месяц и год")
	}

	month, err := strconv.Atoi(monthStr)
	if err != nil {
		return 0, 0, fmt.Errorf("некорректный месяц: %s", monthStr)
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return 0, 0, fmt.Errorf("некорректный год: %s", yearStr)
	}
	return month, year, nil
}

// parseIDParam извлекает числовой идентификатор из параметра пути
func parseIDParam(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("некорректный идентификатор: %s", c.Param("id"))
	}
	return uint(id), nil
}

// respondServiceError отображает ошибку сервисного слоя в HTTP статус
func respondServiceError(c *gin.Context, err error, fallbackMessage string) {
	switch {
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "error": err.Error()})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "error": err.Error()})
	default:
		log.Printf("%s: %v", fallbackMessage, err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "error": fallbackMessage})
	}
}
