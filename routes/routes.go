package routes

import (
	"Pronostico/cache"
	"Pronostico/config"
	"Pronostico/controllers"
	"Pronostico/handlers"
	"Pronostico/middlewares"
	"Pronostico/repositories"
	"Pronostico/services"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes initializes the routes and middleware for the server
func SetupRoutes(cache *cache.Cache, config *config.AppConfig, db *gorm.DB) http.Handler {
	// Set Gin to release mode
	gin.SetMode(gin.ReleaseMode)

	// Create a Gin router
	router := gin.Default()

	// Apply Bearer token validation to all routes
	router.Use(middlewares.ValidateBearerToken(config.GetBearerToken()))

	// Create and apply CORS middleware configuration
	corsConfig := &middlewares.CorsConfig{
		AllowedOrigins:   config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}
	router.Use(middlewares.CorsMiddleware(corsConfig))

	// Apply rate limiter middleware
	router.Use(middlewares.NewRateLimiterMiddleware(middlewares.RateLimiterConfig{
		RequestsPerSecond: 15, // 15 requests per second
		Burst:             30, // Burst of 30
	}))

	// Apply logging middleware
	router.Use(middlewares.LoggingMiddleware())

	// Initialize repositories, services, and handlers
	epsRepo := repositories.NewEPSRepository(cache)
	yearRepo := repositories.NewYearRepository()
	populationRepo := repositories.NewPopulationRepository(cache)
	appointmentRepo := repositories.NewAppointmentRepository(cache)
	settingsRepo := repositories.NewSettingsRepository(cache)
	reportRepo := repositories.NewReportRepository(cache)
	forecastRepo := repositories.NewForecastRepository(db)

	epsHandler := handlers.NewEPSHandler(services.NewEPSService(epsRepo))
	yearHandler := handlers.NewYearHandler(services.NewYearService(yearRepo))
	populationHandler := handlers.NewPopulationHandler(services.NewPopulationService(populationRepo, yearRepo))
	appointmentHandler := handlers.NewAppointmentHandler(services.NewAppointmentService(appointmentRepo))
	projectionHandler := handlers.NewProjectionHandler(services.NewProjectionService(forecastRepo))
	reportHandler := handlers.NewReportHandler(services.NewReportService(reportRepo, settingsRepo))
	dashboardHandler := handlers.NewDashboardHandler(services.NewDashboardService(reportRepo, settingsRepo))
	settingsHandler := handlers.NewSettingsHandler(services.NewSettingsService(settingsRepo))

	// Register routes
	controllers.SetupForecastRoutes(
		router,
		epsHandler,
		yearHandler,
		populationHandler,
		appointmentHandler,
		projectionHandler,
		reportHandler,
		dashboardHandler,
		settingsHandler,
	)

	controllers.SetupRootRoute(router)

	return router
}
