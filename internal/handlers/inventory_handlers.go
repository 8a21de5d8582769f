package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"clinic_backoffice/internal/models"
	"clinic_backoffice/internal/services"
	"clinic_backoffice/pkg/utils"

	"github.com/gin-gonic/gin"
)

// InventoryHandler holds the inventory service dependency.
type InventoryHandler struct {
	inventoryService services.InventoryService
}

// NewInventoryHandler creates a new InventoryHandler.
func NewInventoryHandler(inventoryService services.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

func parseItemID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid item ID", ""))
		return 0, false
	}
	return id, true
}

func respondInventoryError(c *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, services.ErrItemNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Inventory item not found", ""))
	case errors.Is(err, services.ErrItemNameExists):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, err.Error(), ""))
	case errors.Is(err, services.ErrValidation):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), ""))
	default:
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to "+action, err.Error()))
	}
}

// CreateInventoryItem handles creation of a new catalog entry.
func (h *InventoryHandler) CreateInventoryItem(c *gin.Context) {
	var req services.CreateInventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	item, err := h.inventoryService.CreateItem(req)
	if err != nil {
		respondInventoryError(c, err, "create inventory item")
		return
	}
	c.JSON(http.StatusCreated, item)
}

// GetInventoryItems handles listing catalog entries with optional category
// filtering and pagination.
func (h *InventoryHandler) GetInventoryItems(c *gin.Context) {
	var category *models.ItemCategory
	if catStr := c.Query("category"); catStr != "" {
		cat := models.ItemCategory(catStr)
		category = &cat
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	items, totalCount, err := h.inventoryService.GetItems(category, page, pageSize)
	if err != nil {
		respondInventoryError(c, err, "fetch inventory items")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"items":       items,
		"total_count": totalCount,
		"page":        page,
		"page_size":   pageSize,
	})
}

// GetInventoryItemByID handles fetching a single catalog entry.
func (h *InventoryHandler) GetInventoryItemByID(c *gin.Context) {
	id, ok := parseItemID(c)
	if !ok {
		return
	}
	item, err := h.inventoryService.GetItemByID(id)
	if err != nil {
		respondInventoryError(c, err, "fetch inventory item")
		return
	}
	c.JSON(http.StatusOK, item)
}

// UpdateInventoryItem handles partial updates of a catalog entry.
func (h *InventoryHandler) UpdateInventoryItem(c *gin.Context) {
	id, ok := parseItemID(c)
	if !ok {
		return
	}
	var req services.UpdateInventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	item, err := h.inventoryService.UpdateItem(id, req)
	if err != nil {
		respondInventoryError(c, err, "update inventory item")
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteInventoryItem handles removal of a catalog entry.
func (h *InventoryHandler) DeleteInventoryItem(c *gin.Context) {
	id, ok := parseItemID(c)
	if !ok {
		return
	}
	if err := h.inventoryService.DeleteItem(id); err != nil {
		respondInventoryError(c, err, "delete inventory item")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Inventory item deleted"})
}

// RestockInventoryItem handles a purchase receipt against an item.
func (h *InventoryHandler) RestockInventoryItem(c *gin.Context) {
	id, ok := parseItemID(c)
	if !ok {
		return
	}
	var req services.RestockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	item, err := h.inventoryService.RestockItem(id, req)
	if err != nil {
		respondInventoryError(c, err, "restock inventory item")
		return
	}
	c.JSON(http.StatusOK, item)
}

// DispenseInventoryItem handles stock consumed by a prescription or consultation.
func (h *InventoryHandler) DispenseInventoryItem(c *gin.Context) {
	id, ok := parseItemID(c)
	if !ok {
		return
	}
	var req services.DispenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	item, err := h.inventoryService.DispenseItem(id, req)
	if err != nil {
		respondInventoryError(c, err, "dispense inventory item")
		return
	}
	c.JSON(http.StatusOK, item)
}

// GetStockMovements handles listing the stock ledger with optional filters.
func (h *InventoryHandler) GetStockMovements(c *gin.Context) {
	var itemID *int64
	if idStr := c.Query("item_id"); idStr != "" {
		if id, err := strconv.ParseInt(idStr, 10, 64); err == nil {
			itemID = &id
		}
	}
	var movementType *string
	if mt := c.Query("movement_type"); mt != "" {
		movementType = &mt
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	movements, totalCount, err := h.inventoryService.GetMovements(itemID, movementType, page, pageSize)
	if err != nil {
		respondInventoryError(c, err, "fetch stock movements")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"movements":   movements,
		"total_count": totalCount,
		"page":        page,
		"page_size":   pageSize,
	})
}
