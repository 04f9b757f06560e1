package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"github.com/swaggo/files"
	"github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "github.com/matrixgesnet/proyecto-cursos/docs" // Import generated docs
	"github.com/matrixgesnet/proyecto-cursos/internal/config"
	"github.com/matrixgesnet/proyecto-cursos/internal/controllers"
	"github.com/matrixgesnet/proyecto-cursos/internal/database"
	"github.com/matrixgesnet/proyecto-cursos/internal/middleware"
	"github.com/matrixgesnet/proyecto-cursos/internal/models"
	"github.com/matrixgesnet/proyecto-cursos/internal/services"
)

var (
	db                   *gorm.DB
	userService          services.UserService
	sessionService       services.SessionService
	catalogService       services.CatalogService
	enrollmentService    services.EnrollmentService
	resetService         services.PasswordResetService
	authController       *controllers.AuthController
	catalogController    controllers.CatalogController
	enrollmentController *controllers.EnrollmentController
	configuration        *config.Config
)

// @title Proyecto Cursos API
// @version 1.0
// @description Course platform with enrollment-gated content
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.
func main() {
	// Load environment variables
	loadDotenvFile()

	// Initialize logger
	setUpLogger()

	// Load configuration
	configuration = loadConfig()

	// Initialize database connection
	setupDatabase(configuration)

	// Initialize services and controllers
	userService = services.NewUserService(db)
	sessionService = services.NewSessionService(db, configuration.JWTSecret)
	catalogService = services.NewCatalogService(db)
	enrollmentService = services.NewEnrollmentService(db)
	resetService = services.NewPasswordResetService(db, services.LogNotifier{})

	authController = controllers.NewAuthController(userService, sessionService, resetService)
	catalogController = controllers.NewCatalogController(catalogService)
	enrollmentController = controllers.NewEnrollmentController(enrollmentService, catalogService)

	// Seed initial data on an empty database, including the bootstrap admin
	seedIfEmpty()

	// Initialize Gin router
	var router *gin.Engine = setupRouter()

	// Start the server
	log.Infof("Starting server on %s:%d", configuration.Host, configuration.Port)
	router.Run(fmt.Sprintf("%v:%d", configuration.Host, configuration.Port))
}

// checkPanicErr checks if an error occurred and panics if it did
func checkPanicErr(err error) {
	if err != nil {
		panic(err)
	}
}

// loadDotenvFile loads environment variables from a .env file
// If the file is not found, it will log a warning and use system environment variables
func loadDotenvFile() {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, using system environment variables")
	}
}

// setUpLogger initializes the logger with a JSON formatter and sets the log level based on the environment
func setUpLogger() {
	log.SetFormatter(&log.JSONFormatter{})
	environment := config.GetEnvWithDefault("APP_ENV", "development")
	switch environment {
	case "development":
		log.SetLevel(log.DebugLevel)
	case "production":
		log.SetLevel(log.ErrorLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}
}

// loadConfig loads the application configuration from environment variables
// It returns a Config struct or panics if there is an error
func loadConfig() *config.Config {
	log.Info("Loading configuration from environment variables")
	conf, err := config.LoadConfig()
	checkPanicErr(err)
	return conf
}

// setupDatabase initializes the database connection and migrates the schema
func setupDatabase(conf *config.Config) *gorm.DB {
	var err error
	db, err = database.InitDatabase(database.DatabaseConfig{
		Driver:   conf.DBDriver,
		Host:     conf.DBHost,
		Port:     conf.DBPort,
		User:     conf.DBUser,
		Password: conf.DBPassword,
		Name:     conf.DBName,
		SSLMode:  conf.DBSSLMode,
		Path:     conf.DBPath,
	})
	checkPanicErr(err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Course{},
		&models.Video{},
		&models.Enrollment{},
		&models.Session{},
	)
	checkPanicErr(err)
	return db
}

// seedIfEmpty seeds the database with sample data and the bootstrap admin
// account when no users exist yet
func seedIfEmpty() {
	var count int64
	db.Model(&models.User{}).Count(&count)
	if count > 0 {
		log.Info("Database already seeded with initial data")
		return
	}

	log.Info("Database is empty, seeding initial data")

	admin, err := userService.BootstrapAdmin(configuration.AdminEmail, configuration.AdminPassword)
	checkPanicErr(err)
	log.WithField("email", admin.Email).Info("Bootstrap admin created")

	names := []string{"SQL y Bases de Datos", "Python desde Cero", "Desarrollo Web"}
	categories := make([]*models.Category, 0, len(names))
	for _, name := range names {
		category, err := catalogService.CreateCategory(name)
		checkPanicErr(err)
		categories = append(categories, category)
	}

	sqlCourse, err := catalogService.CreateCourse("SQL para Principiantes", categories[0].ID)
	checkPanicErr(err)
	_, err = catalogService.CreateCourse("Consultas Avanzadas MySQL", categories[0].ID)
	checkPanicErr(err)
	pyCourse, err := catalogService.CreateCourse("Introducción a Python", categories[1].ID)
	checkPanicErr(err)

	seedVideos := []struct {
		title    string
		url      string
		courseID uint
	}{
		{"Instalación de MySQL", "https://www.youtube.com/embed/WuBcTJnIuzo", sqlCourse.ID},
		{"Select y From", "https://www.youtube.com/embed/yPu6qV5byu4", sqlCourse.ID},
		{"Hola Mundo en Python", "https://www.youtube.com/embed/DcojabcVqTE", pyCourse.ID},
	}
	for _, v := range seedVideos {
		_, err := catalogService.CreateVideo(v.title, v.url, v.courseID)
		checkPanicErr(err)
	}

	log.Info("Database seeded successfully")
}

// setupRouter initializes the Gin router and sets up the routes
// It returns the configured router
func setupRouter() *gin.Engine {
	// Initialize Gin router
	router := gin.Default()

	// Define routes
	setupRoutes(router)

	return router
}

// setupRoutes defines the routes for the Gin router
func setupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", healthCheckHandler)

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		// Unauthenticated auth flows
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authController.Register)
			auth.POST("/login", authController.Login)
			auth.POST("/password-reset", authController.RequestPasswordReset)
			auth.POST("/password-reset/redeem", authController.RedeemPasswordReset)
		}

		// Everything below requires a live session
		authenticated := v1.Group("")
		authenticated.Use(middleware.SessionAuth(sessionService))
		{
			authenticated.POST("/auth/logout", authController.Logout)
			authenticated.GET("/auth/me", authController.Me)

			authenticated.GET("/categories", catalogController.ListCategories)
			authenticated.GET("/categories/:id/courses", catalogController.ListCategoryCourses)

			authenticated.POST("/courses/:id/enroll", enrollmentController.Enroll)
			authenticated.GET("/courses/:id", enrollmentController.ViewCourse)

			adminApi := authenticated.Group("/admin")
			adminApi.Use(middleware.RequireAdmin())
			{
				adminApi.GET("/overview", catalogController.Overview)
				adminApi.POST("/categories", catalogController.CreateCategory)
				adminApi.DELETE("/categories/:id", catalogController.DeleteCategory)
				adminApi.POST("/courses", catalogController.CreateCourse)
				adminApi.PUT("/courses/:id", catalogController.UpdateCourse)
				adminApi.DELETE("/courses/:id", catalogController.DeleteCourse)
				adminApi.POST("/videos", catalogController.CreateVideo)
				adminApi.DELETE("/videos/:id", catalogController.DeleteVideo)
			}
		}
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// healthCheckHandler handles the health check endpoint
// @Summary Health check
// @Description Check if the service is running
// @Tags health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "proyecto-cursos",
	})
}
