package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"backend_timesheet/config"
	"backend_timesheet/database"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthTest(t *testing.T) {
	gin.SetMode(gin.TestMode)
	config.GlobalConfig = &config.Config{
		JWT: config.JWTConfig{
			Secret:    "test-secret-key-for-unit-tests-only",
			ExpiresIn: time.Hour,
		},
	}
}

func signTestToken(t *testing.T, claims TokenClaims, secret string) string {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func protectedRouter(handler gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.GET("/protected", handler, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": GetCurrentUserID(c),
			"login":   GetCurrentClaims(c).Login,
		})
	})
	return r
}

func requestWithAuth(router http.Handler, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func timesheetClaims(expiresIn time.Duration) TokenClaims {
	return TokenClaims{
		UserID:      42,
		Login:       "petrov",
		Role:        "user",
		Application: ApplicationTimesheet,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
		},
	}
}

func TestRequireTimesheetAcceptsValidToken(t *testing.T) {
	setupAuthTest(t)
	router := protectedRouter(RequireTimesheet())

	token := signTestToken(t, timesheetClaims(time.Hour), config.GlobalConfig.JWT.Secret)

	// Поддерживаются оба формата заголовка и "голый" токен
	for _, header := range []string{"Bearer " + token, "Token " + token, token} {
		w := requestWithAuth(router, header)
		assert.Equal(t, http.StatusOK, w.Code, "заголовок %q", header)
		assert.Contains(t, w.Body.String(), `"user_id":42`)
		assert.Contains(t, w.Body.String(), `"login":"petrov"`)
	}
}

func TestRequireTimesheetRejectsInvalidTokens(t *testing.T) {
	setupAuthTest(t)
	router := protectedRouter(RequireTimesheet())

	// Без заголовка
	assert.Equal(t, http.StatusForbidden, requestWithAuth(router, "").Code)

	// Мусор вместо токена
	assert.Equal(t, http.StatusForbidden, requestWithAuth(router, "Bearer garbage").Code)

	// Просроченный токен
	expired := signTestToken(t, timesheetClaims(-time.Hour), config.GlobalConfig.JWT.Secret)
	assert.Equal(t, http.StatusForbidden, requestWithAuth(router, "Bearer "+expired).Code)

	// Токен, подписанный другим секретом
	forged := signTestToken(t, timesheetClaims(time.Hour), "another-secret")
	assert.Equal(t, http.StatusForbidden, requestWithAuth(router, "Bearer "+forged).Code)
}

func TestRequireTimesheetRejectsOtherApplication(t *testing.T) {
	setupAuthTest(t)
	router := protectedRouter(RequireTimesheet())

	claims := timesheetClaims(time.Hour)
	claims.Application = ApplicationAdmin
	token := signTestToken(t, claims, config.GlobalConfig.JWT.Secret)

	assert.Equal(t, http.StatusForbidden, requestWithAuth(router, "Bearer "+token).Code)
}

func TestRequireAdminChecksRole(t *testing.T) {
	setupAuthTest(t)
	router := protectedRouter(RequireAdmin())

	claims := timesheetClaims(time.Hour)
	claims.Application = ApplicationAdmin
	claims.Role = "admin"
	token := signTestToken(t, claims, config.GlobalConfig.JWT.Secret)
	assert.Equal(t, http.StatusOK, requestWithAuth(router, "Bearer "+token).Code)

	claims.Role = "user"
	token = signTestToken(t, claims, config.GlobalConfig.JWT.Secret)
	assert.Equal(t, http.StatusForbidden, requestWithAuth(router, "Bearer "+token).Code)
}

// Без Redis ограничение частоты запросов отключено
func TestRateLimitWithoutRedis(t *testing.T) {
	setupAuthTest(t)
	database.Redis = nil

	r := gin.New()
	r.GET("/limited", RateLimit(RateLimitConfig{
		Requests:     1,
		Window:       time.Minute,
		KeyGenerator: DefaultKeyGenerator,
	}), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "success"})
	})

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/limited", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}
}
