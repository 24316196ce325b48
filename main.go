package main

import (
	"log"
	"time"

	"backend_timesheet/api"
	"backend_timesheet/config"
	"backend_timesheet/database"
	"backend_timesheet/middleware"
	"backend_timesheet/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// initDB инициализирует подключение к базе данных
func initDB() {
	log.Println("🔧 Инициализация базы данных...")

	// Создаем базу данных, если она не существует
	if err := database.CreateDatabaseIfNotExists(); err != nil {
		log.Fatal("❌ Ошибка при создании базы данных:", err)
	}

	// Подключаемся к базе данных
	if err := database.ConnectDatabase(); err != nil {
		log.Fatal("❌ Ошибка подключения к базе данных:", err)
	}

	log.Println("✅ База данных успешно инициализирована")
}

func main() {
	// Загружаем конфигурацию (включая .env файл)
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("❌ Ошибка загрузки конфигурации:", err)
	}
	cfg.LogConfig()

	// Инициализируем базу данных
	initDB()

	// Redis нужен только для ограничения частоты входа,
	// без него приложение продолжает работать
	if err := database.InitRedis(); err != nil {
		log.Printf("⚠️  Redis недоступен, rate limiting отключен: %v", err)
	}
	defer database.CloseRedis()

	// Сервисный слой
	timesheetService := services.NewTimesheetService(database.DB)
	clientReportService := services.NewClientReportService(database.DB)
	exportService := services.NewExportService()
	notificationService := services.NewNotificationService(cfg.Notifications)

	timesheetAPI := api.NewTimesheetAPI(database.DB, timesheetService, exportService, notificationService)
	clientReportAPI := api.NewClientReportAPI(clientReportService)

	// Настраиваем Gin router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           time.Duration(cfg.CORS.MaxAge) * time.Second,
	}))

	// Базовые роуты
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":   "success",
			"message":  "pong",
			"database": "connected",
		})
	})

	// Аутентификация
	auth := r.Group("/api/auth")
	{
		auth.POST("/login", middleware.LoginRateLimit(), api.Login)
		auth.POST("/logout", api.Logout)
	}

	// Административное приложение: управление пользователями
	admin := r.Group("/api/admin")
	admin.Use(middleware.RequireAdmin())
	{
		admin.GET("/users", api.GetUsers)
		admin.POST("/users", api.CreateUser)
		admin.PUT("/users/:id", api.UpdateUser)
		admin.DELETE("/users/:id", api.DeleteUser)
	}

	// Приложение табельного учета
	timesheet := r.Group("/api/timesheet")
	timesheet.Use(middleware.RequireTimesheet())
	{
		timesheet.GET("/organizations", api.GetOrganizations)
		timesheet.POST("/organizations", api.CreateOrganization)
		timesheet.GET("/organizations/:id", api.GetOrganization)
		timesheet.PUT("/organizations/:id", api.UpdateOrganization)
		timesheet.DELETE("/organizations/:id", api.DeleteOrganization)

		timesheet.GET("/employees", api.GetEmployees)
		timesheet.POST("/employees", api.CreateEmployee)
		timesheet.GET("/employees/:id", api.GetEmployee)
		timesheet.PUT("/employees/:id", api.UpdateEmployee)
		timesheet.DELETE("/employees/:id", api.DeleteEmployee)

		timesheet.GET("/work-activities", api.GetWorkActivities)
		timesheet.POST("/work-activities", api.CreateWorkActivity)
		timesheet.GET("/work-activities/:id", api.GetWorkActivity)
		timesheet.PUT("/work-activities/:id", api.UpdateWorkActivity)
		timesheet.DELETE("/work-activities/:id", api.DeleteWorkActivity)

		timesheet.GET("/phone-consultations", api.GetPhoneConsultations)
		timesheet.POST("/phone-consultations", api.CreatePhoneConsultation)
		timesheet.GET("/phone-consultations/:id", api.GetPhoneConsultation)
		timesheet.PUT("/phone-consultations/:id", api.UpdatePhoneConsultation)
		timesheet.DELETE("/phone-consultations/:id", api.DeletePhoneConsultation)

		timesheetAPI.RegisterRoutes(timesheet)
		clientReportAPI.RegisterRoutes(timesheet)
	}

	log.Printf("🚀 Сервер запущен на порту %s", cfg.App.Port)
	if err := r.Run(cfg.App.Host + ":" + cfg.App.Port); err != nil {
		log.Fatal("❌ Ошибка запуска сервера:", err)
	}
}
