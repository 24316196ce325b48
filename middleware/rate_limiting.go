package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"backend_timesheet/config"
	"backend_timesheet/database"

	"github.com/gin-gonic/gin"
	redis "github.com/go-redis/redis/v8"
)

// RateLimitConfig конфигурация rate limiting
type RateLimitConfig struct {
	Requests     int                       // Количество запросов
	Window       time.Duration             // Временное окно
	KeyGenerator func(*gin.Context) string // Генератор ключей
}

// DefaultKeyGenerator генерирует ключ на основе IP адреса
func DefaultKeyGenerator(c *gin.Context) string {
	return c.ClientIP()
}

// RateLimit создает middleware для ограничения частоты запросов
func RateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		redisClient := database.GetRedis()
		if redisClient == nil {
			// Если Redis недоступен, пропускаем rate limiting
			c.Next()
			return
		}

		key := "rate_limit:" + cfg.KeyGenerator(c)

		// Получаем текущее количество запросов
		current, err := redisClient.Get(database.Ctx, key).Int()
		if err != nil && err != redis.Nil {
			// В случае ошибки Redis пропускаем запрос
			c.Next()
			return
		}

		// Проверяем превышение лимита
		if current >= cfg.Requests {
			c.Header("X-RateLimit-Limit", strconv.Itoa(cfg.Requests))
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(cfg.Window).Unix(), 10))

			c.JSON(http.StatusTooManyRequests, gin.H{
				"status": "error",
				"error": fmt.Sprintf("Слишком много запросов. Лимит: %d запросов за %v",
					cfg.Requests, cfg.Window),
				"retry_after": cfg.Window.Seconds(),
			})
			c.Abort()
			return
		}

		// Увеличиваем счетчик
		pipe := redisClient.Pipeline()
		pipe.Incr(database.Ctx, key)
		if current == 0 {
			// Устанавливаем TTL только для первого запроса
			pipe.Expire(database.Ctx, key, cfg.Window)
		}
		if _, err := pipe.Exec(database.Ctx); err != nil {
			c.Next()
			return
		}

		// Устанавливаем заголовки rate limit
		remaining := cfg.Requests - current - 1
		if remaining < 0 {
			remaining = 0
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(cfg.Requests))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(cfg.Window).Unix(), 10))

		c.Next()
	}
}

// LoginRateLimit ограничение частоты попыток входа в систему
func LoginRateLimit() gin.HandlerFunc {
	security := config.GetConfig().Security
	return RateLimit(RateLimitConfig{
		Requests:     security.LoginRateLimitRequests,
		Window:       security.LoginRateLimitWindow,
		KeyGenerator: DefaultKeyGenerator,
	})
}
