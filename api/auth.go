package api

import (
	"errors"
	"log"
	"net/http"
	"time"

	"backend_timesheet/config"
	"backend_timesheet/database"
	"backend_timesheet/middleware"
	"backend_timesheet/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// LoginRequest запрос на вход в систему
type LoginRequest struct {
	Login       string `json:"login" binding:"required,min=1,max=64"`
	Password    string `json:"password" binding:"required,min=1,max=128"`
	Application string `json:"application" binding:"required,oneof=admin timesheet"`
}

// Login аутентифицирует пользователя и выдает JWT токен на доступ
// к выбранному приложению
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status": "error",
			"error":  "Неверный формат данных для входа",
		})
		return
	}

	var user models.User
	err := database.DB.Where("login = ?", req.Login).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status": "error",
			"error":  "Неверный логин или пароль",
		})
		return
	}
	if err != nil {
		log.Printf("Ошибка при поиске пользователя '%s': %v", req.Login, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": "error",
			"error":  "Ошибка при проверке учетных данных",
		})
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status": "error",
			"error":  "Неверный логин или пароль",
		})
		return
	}

	if !user.HasApplication(req.Application) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status": "error",
			"error":  "Доступ к выбранному приложению запрещен",
		})
		return
	}

	token, err := issueToken(&user, req.Application)
	if err != nil {
		log.Printf("Ошибка выпуска токена для '%s': %v", req.Login, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": "error",
			"error":  "Не удалось выдать токен",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data": gin.H{
			"token": token,
			"user": gin.H{
				"id":    user.ID,
				"login": user.Login,
				"role":  user.Role,
			},
		},
	})
}

// Logout завершает сессию. Токены не хранятся на сервере, поэтому
// операция сводится к подтверждению для клиента.
func Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Выход выполнен",
	})
}

// issueToken подписывает JWT токен с данными пользователя и приложением
func issueToken(user *models.User, application string) (string, error) {
	cfg := config.GetConfig().JWT
	now := time.Now()

	claims := middleware.TokenClaims{
		UserID:      user.ID,
		Login:       user.Login,
		Role:        user.Role,
		Application: application,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.ExpiresIn)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.Secret))
}
