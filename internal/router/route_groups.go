package router

import (
	"clinic_backoffice/internal/handlers"
	"clinic_backoffice/internal/middleware"
	"clinic_backoffice/internal/models"

	"github.com/gin-gonic/gin"
)

// SetupInventoryRoutes sets up the inventory catalog and stock ledger routes.
func SetupInventoryRoutes(authenticatedGroup *gin.RouterGroup, inventoryHandler *handlers.InventoryHandler) {
	itemRoutes := authenticatedGroup.Group("/inventory-items")
	itemRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleClinician, models.RolePharmacist))
	{
		itemRoutes.POST("", inventoryHandler.CreateInventoryItem)
		itemRoutes.GET("", inventoryHandler.GetInventoryItems)
		itemRoutes.GET("/:id", inventoryHandler.GetInventoryItemByID)
		itemRoutes.PUT("/:id", inventoryHandler.UpdateInventoryItem)
		itemRoutes.DELETE("/:id", inventoryHandler.DeleteInventoryItem)

		itemRoutes.POST("/:id/restock", inventoryHandler.RestockInventoryItem)
		itemRoutes.POST("/:id/dispense", inventoryHandler.DispenseInventoryItem)
	}

	movementRoutes := authenticatedGroup.Group("/stock-movements")
	movementRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin, models.RolePharmacist))
	{
		movementRoutes.GET("", inventoryHandler.GetStockMovements)
	}
}

// SetupReportRoutes sets up the valuation report routes.
func SetupReportRoutes(authenticatedGroup *gin.RouterGroup, reportHandler *handlers.ReportHandler) {
	reportRoutes := authenticatedGroup.Group("/reports")
	reportRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin, models.RolePharmacist))
	{
		reportRoutes.GET("/valuation", reportHandler.GetValuationReport)
		reportRoutes.GET("/valuation/categories", reportHandler.GetCategoryBreakdown)
		reportRoutes.GET("/valuation/stock-health", reportHandler.GetStockHealthReport)
		reportRoutes.GET("/valuation/turnover", reportHandler.GetTurnoverReport)
		reportRoutes.GET("/valuation/comparison", reportHandler.GetMethodComparison)
	}
}
