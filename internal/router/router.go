package router

import (
	"database/sql"

	"clinic_backoffice/internal/handlers"
	"clinic_backoffice/internal/middleware"
	"clinic_backoffice/internal/repositories"
	"clinic_backoffice/internal/services"

	"github.com/gin-gonic/gin"
)

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, db *sql.DB) {
	// Repositories
	authRepo := repositories.NewAuthRepository(db)
	inventoryRepo := repositories.NewInventoryRepository(db)
	consumptionRepo := repositories.NewConsumptionRepository(db)

	// Services
	authService := services.NewAuthService(authRepo, db)
	inventoryService := services.NewInventoryService(inventoryRepo, consumptionRepo, db)
	valuationService := services.NewValuationService(inventoryRepo, consumptionRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	inventoryHandler := handlers.NewInventoryHandler(inventoryService)
	reportHandler := handlers.NewReportHandler(valuationService)

	apiV1 := engine.Group("/api/v1")

	SetupPublicAuthRoutes(apiV1.Group("/auth"), authHandler)

	authenticated := apiV1.Group("")
	authenticated.Use(middleware.AuthMiddleware())
	{
		SetupAuthenticatedAuthRoutes(authenticated.Group("/auth"), authHandler)
		SetupInventoryRoutes(authenticated, inventoryHandler)
		SetupReportRoutes(authenticated, reportHandler)
	}
}

// SetupPublicAuthRoutes wires the unauthenticated auth endpoints.
func SetupPublicAuthRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	group.POST("/register", authHandler.RegisterUser)
	group.POST("/login", authHandler.LoginUser)
}

// SetupAuthenticatedAuthRoutes wires the auth endpoints that require a token.
func SetupAuthenticatedAuthRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	group.GET("/me", authHandler.GetCurrentUser)
}
