package api

import (
	"testing"
	"time"

	"backend_timesheet/config"
	"backend_timesheet/database"
	"backend_timesheet/middleware"
	"backend_timesheet/models"
	"backend_timesheet/services"
	"backend_timesheet/testutils"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// setupAPITest готовит тестовую базу и конфигурацию для HTTP тестов
func setupAPITest(t *testing.T) *gorm.DB {
	gin.SetMode(gin.TestMode)

	db, err := testutils.SetupTestDB()
	require.NoError(t, err)
	database.DB = db

	config.GlobalConfig = &config.Config{
		JWT: config.JWTConfig{
			Secret:    "test-secret-key-for-unit-tests-only",
			ExpiresIn: time.Hour,
			Issuer:    "backend_timesheet",
		},
		Security: config.SecurityConfig{
			LoginRateLimitRequests: 100,
			LoginRateLimitWindow:   time.Minute,
		},
	}

	return db
}

// setupTestRouter повторяет маршрутизацию приложения
func setupTestRouter(db *gorm.DB) *gin.Engine {
	timesheetService := services.NewTimesheetService(db)
	clientReportService := services.NewClientReportService(db)
	exportService := services.NewExportService()

	timesheetAPI := NewTimesheetAPI(db, timesheetService, exportService, nil)
	clientReportAPI := NewClientReportAPI(clientReportService)

	r := gin.New()

	auth := r.Group("/api/auth")
	{
		auth.POST("/login", Login)
		auth.POST("/logout", Logout)
	}

	admin := r.Group("/api/admin")
	admin.Use(middleware.RequireAdmin())
	{
		admin.GET("/users", GetUsers)
		admin.POST("/users", CreateUser)
		admin.PUT("/users/:id", UpdateUser)
		admin.DELETE("/users/:id", DeleteUser)
	}

	timesheet := r.Group("/api/timesheet")
	timesheet.Use(middleware.RequireTimesheet())
	{
		timesheet.GET("/organizations", GetOrganizations)
		timesheet.POST("/organizations", CreateOrganization)
		timesheet.GET("/organizations/:id", GetOrganization)
		timesheet.PUT("/organizations/:id", UpdateOrganization)
		timesheet.DELETE("/organizations/:id", DeleteOrganization)

		timesheet.GET("/employees", GetEmployees)
		timesheet.POST("/employees", CreateEmployee)
		timesheet.GET("/employees/:id", GetEmployee)
		timesheet.PUT("/employees/:id", UpdateEmployee)
		timesheet.DELETE("/employees/:id", DeleteEmployee)

		timesheet.GET("/work-activities", GetWorkActivities)
		timesheet.POST("/work-activities", CreateWorkActivity)
		timesheet.GET("/work-activities/:id", GetWorkActivity)
		timesheet.PUT("/work-activities/:id", UpdateWorkActivity)
		timesheet.DELETE("/work-activities/:id", DeleteWorkActivity)

		timesheet.GET("/phone-consultations", GetPhoneConsultations)
		timesheet.POST("/phone-consultations", CreatePhoneConsultation)
		timesheet.GET("/phone-consultations/:id", GetPhoneConsultation)
		timesheet.PUT("/phone-consultations/:id", UpdatePhoneConsultation)
		timesheet.DELETE("/phone-consultations/:id", DeletePhoneConsultation)

		timesheetAPI.RegisterRoutes(timesheet)
		clientReportAPI.RegisterRoutes(timesheet)
	}

	return r
}

// createAPITestUser создает пользователя с bcrypt хешем пароля
func createAPITestUser(t *testing.T, db *gorm.DB, login, password, role string, applications []string) models.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		Login:        login,
		Password:     string(hash),
		Role:         role,
		Applications: pq.StringArray(applications),
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

// issueTestToken выдает токен без прохождения через /api/auth/login
func issueTestToken(t *testing.T, user *models.User, application string) string {
	token, err := issueToken(user, application)
	require.NoError(t, err)
	return token
}
