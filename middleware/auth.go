package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"backend_timesheet/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Приложения, доступ к которым выдается при входе в систему
const (
	ApplicationAdmin     = "admin"
	ApplicationTimesheet = "timesheet"
)

// TokenClaims представляет полезную нагрузку JWT токена
type TokenClaims struct {
	UserID      uint   `json:"userId"`
	Login       string `json:"login"`
	Role        string `json:"role"`
	Application string `json:"application"`
	jwt.RegisteredClaims
}

// RequireApplication проверяет JWT токен и доступ к указанному приложению
func RequireApplication(application string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := extractClaims(c)
		if err != nil {
			c.JSON(http.StatusForbidden, gin.H{
				"status": "error",
				"error":  err.Error(),
			})
			c.Abort()
			return
		}

		if claims.Application != application {
			c.JSON(http.StatusForbidden, gin.H{
				"status": "error",
				"error":  fmt.Sprintf("Требуется доступ к приложению '%s'", application),
			})
			c.Abort()
			return
		}

		// Сохраняем информацию о пользователе в контексте
		c.Set("claims", claims)
		c.Set("user_id", claims.UserID)

		c.Next()
	}
}

// RequireTimesheet проверяет доступ к приложению табельного учета
func RequireTimesheet() gin.HandlerFunc {
	return RequireApplication(ApplicationTimesheet)
}

// RequireAdmin проверяет доступ к административному приложению и роль администратора
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := extractClaims(c)
		if err != nil {
			c.JSON(http.StatusForbidden, gin.H{
				"status": "error",
				"error":  err.Error(),
			})
			c.Abort()
			return
		}

		if claims.Application != ApplicationAdmin || claims.Role != "admin" {
			c.JSON(http.StatusForbidden, gin.H{
				"status": "error",
				"error":  "Требуется доступ для администратора",
			})
			c.Abort()
			return
		}

		c.Set("claims", claims)
		c.Set("user_id", claims.UserID)

		c.Next()
	}
}

// extractClaims извлекает и проверяет JWT токен из заголовка запроса
func extractClaims(c *gin.Context) (*TokenClaims, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		authHeader = c.GetHeader("authorization")
	}

	if authHeader == "" {
		return nil, fmt.Errorf("Требуется аутентификация")
	}

	// Извлекаем токен из заголовка
	var token string
	if strings.HasPrefix(authHeader, "Bearer ") {
		token = strings.TrimPrefix(authHeader, "Bearer ")
	} else if strings.HasPrefix(authHeader, "Token ") {
		token = strings.TrimPrefix(authHeader, "Token ")
	} else {
		token = authHeader
	}

	if token == "" {
		return nil, fmt.Errorf("Неверный формат заголовка авторизации")
	}

	claims := &TokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("неожиданный метод подписи: %v", t.Header["alg"])
		}
		return []byte(config.GetConfig().JWT.Secret), nil
	})
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("Неверный или просроченный токен")
	}

	return claims, nil
}

// GetCurrentClaims возвращает данные токена текущего пользователя из контекста
func GetCurrentClaims(c *gin.Context) *TokenClaims {
	if claims, exists := c.Get("claims"); exists {
		if tokenClaims, ok := claims.(*TokenClaims); ok {
			return tokenClaims
		}
	}
	return nil
}

// GetCurrentUserID возвращает ID текущего пользователя из контекста
func GetCurrentUserID(c *gin.Context) uint {
	if userID, exists := c.Get("user_id"); exists {
		if id, ok := userID.(uint); ok {
			return id
		}
	}
	return 0
}
