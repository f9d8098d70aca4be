package controllers

import (
	"Pronostico/handlers"

	"github.com/gin-gonic/gin"
)

func SetupForecastRoutes(router *gin.Engine, epsHandler *handlers.EPSHandler, yearHandler *handlers.YearHandler, populationHandler *handlers.PopulationHandler, appointmentHandler *handlers.AppointmentHandler, projectionHandler *handlers.ProjectionHandler, reportHandler *handlers.ReportHandler, dashboardHandler *handlers.DashboardHandler, settingsHandler *handlers.SettingsHandler) {
	// Define the routes directly on the router
	router.GET("/eps", epsHandler.GetAllEPS)
	router.POST("/eps", epsHandler.CreateEPS)
	router.PUT("/eps/:eps_id", epsHandler.UpdateEPS)
	router.DELETE("/eps/:eps_id", epsHandler.DeleteEPS)
	router.GET("/eps/:eps_id/contracted_services", epsHandler.GetContractedServices)
	router.PUT("/eps/:eps_id/contracted_services", epsHandler.SaveContractedServices)

	router.GET("/years", yearHandler.GetAllYears)
	router.GET("/years/active", yearHandler.GetActiveYear)
	router.POST("/years", yearHandler.CreateYear)
	router.PUT("/years/:year_id", yearHandler.UpdateYear)
	router.DELETE("/years/:year_id", yearHandler.DeleteYear)

	router.GET("/population", populationHandler.GetPopulation)
	router.POST("/population", populationHandler.SavePopulation)

	router.GET("/appointments", appointmentHandler.GetAllAppointments)
	router.POST("/appointments", appointmentHandler.CreateAppointment)
	router.DELETE("/appointments/:appointment_id", appointmentHandler.DeleteAppointment)
	router.GET("/appointments/summaries", appointmentHandler.GetAppointmentSummaries)
	router.GET("/specialties", appointmentHandler.GetAllSpecialties)

	router.POST("/projections/recalculate", projectionHandler.Recalculate)
	router.POST("/projections/redistribute", projectionHandler.Redistribute)

	router.GET("/reports/monthly", reportHandler.GetMonthlyReport)
	router.GET("/reports/semester", reportHandler.GetSemesterReport)
	router.GET("/reports/annual", reportHandler.GetAnnualReport)
	router.GET("/reports/eps/:eps_id", reportHandler.GetEPSReport)

	router.GET("/dashboard", dashboardHandler.GetDashboard)

	router.GET("/settings", settingsHandler.GetSettings)
	router.PUT("/settings", settingsHandler.SaveSettings)
	router.GET("/settings/thresholds", settingsHandler.GetThresholds)
	router.GET("/settings/working_days", settingsHandler.GetWorkingDays)
}
