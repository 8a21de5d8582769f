package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"clinic_backoffice/internal/models"
	"clinic_backoffice/internal/repositories"
)

// --- Custom Service Errors for Inventory ---
var (
	ErrItemNotFound   = errors.New("inventory item not found")
	ErrItemNameExists = errors.New("item name already exists")
	ErrValidation     = errors.New("validation error")
)

// --- Item DTOs ---
type CreateInventoryItemRequest struct {
	Name           string              `json:"name" binding:"required"`
	Category       models.ItemCategory `json:"category"`
	QuantityOnHand float64             `json:"quantity_on_hand"`
	Unit           string              `json:"unit"`
	UnitCost       *float64            `json:"unit_cost"`
	AvgCost        *float64            `json:"avg_cost"`
	FifoCost       *float64            `json:"fifo_cost"`
	LastCost       *float64            `json:"last_cost"`
}

type UpdateInventoryItemRequest struct {
	Name           *string              `json:"name"`
	Category       *models.ItemCategory `json:"category"`
	QuantityOnHand *float64             `json:"quantity_on_hand"`
	Unit           *string              `json:"unit"`
	UnitCost       *float64             `json:"unit_cost"`
	AvgCost        *float64             `json:"avg_cost"`
	FifoCost       *float64             `json:"fifo_cost"`
	LastCost       *float64             `json:"last_cost"`
}

// RestockRequest records a purchase receipt for an item.
type RestockRequest struct {
	Quantity float64 `json:"quantity" binding:"required,gt=0"`
	UnitCost float64 `json:"unit_cost" binding:"required,gte=0"`
	StaffID  *int64  `json:"staff_id"`
	Reason   *string `json:"reason"`
}

// DispenseRequest records stock consumed by a prescription or consultation.
type DispenseRequest struct {
	Quantity float64 `json:"quantity" binding:"required,gt=0"`
	StaffID  *int64  `json:"staff_id"`
	Reason   *string `json:"reason"`
}

// --- InventoryService Interface ---
type InventoryService interface {
	CreateItem(req CreateInventoryItemRequest) (*models.InventoryItem, error)
	GetItemByID(itemID int64) (*models.InventoryItem, error)
	GetItems(category *models.ItemCategory, page, pageSize int) ([]models.InventoryItem, int, error)
	UpdateItem(itemID int64, req UpdateInventoryItemRequest) (*models.InventoryItem, error)
	DeleteItem(itemID int64) error

	RestockItem(itemID int64, req RestockRequest) (*models.InventoryItem, error)
	DispenseItem(itemID int64, req DispenseRequest) (*models.InventoryItem, error)
	GetMovements(itemID *int64, movementType *string, page, pageSize int) ([]models.StockMovement, int, error)
}

// --- inventoryService Implementation ---
type inventoryService struct {
	inventoryRepo   repositories.InventoryRepository
	consumptionRepo repositories.ConsumptionRepository
	db              *sql.DB
}

// NewInventoryService creates a new instance of InventoryService.
func NewInventoryService(inventoryRepo repositories.InventoryRepository, consumptionRepo repositories.ConsumptionRepository, db *sql.DB) InventoryService {
	return &inventoryService{
		inventoryRepo:   inventoryRepo,
		consumptionRepo: consumptionRepo,
		db:              db,
	}
}

func (s *inventoryService) CreateItem(req CreateInventoryItemRequest) (*models.InventoryItem, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: item name cannot be empty", ErrValidation)
	}
	if req.QuantityOnHand < 0 {
		return nil, fmt.Errorf("%w: quantity on hand cannot be negative", ErrValidation)
	}

	item := &models.InventoryItem{
		Name:           req.Name,
		Category:       req.Category.Normalize(),
		QuantityOnHand: req.QuantityOnHand,
		Unit:           req.Unit,
		UnitCost:       req.UnitCost,
		AvgCost:        req.AvgCost,
		FifoCost:       req.FifoCost,
		LastCost:       req.LastCost,
	}
	if item.Unit == "" {
		item.Unit = models.DefaultUnit
	}

	id, err := s.inventoryRepo.CreateItem(s.db, item)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: %s", ErrItemNameExists, req.Name)
		}
		return nil, fmt.Errorf("failed to create inventory item: %w", err)
	}
	return s.inventoryRepo.GetItemByID(s.db, id)
}

func (s *inventoryService) GetItemByID(itemID int64) (*models.InventoryItem, error) {
	item, err := s.inventoryRepo.GetItemByID(s.db, itemID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to get inventory item: %w", err)
	}
	return item, nil
}

func (s *inventoryService) GetItems(category *models.ItemCategory, page, pageSize int) ([]models.InventoryItem, int, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	return s.inventoryRepo.GetItems(category, page, pageSize)
}

func (s *inventoryService) UpdateItem(itemID int64, req UpdateInventoryItemRequest) (*models.InventoryItem, error) {
	item, err := s.GetItemByID(itemID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, fmt.Errorf("%w: item name cannot be empty", ErrValidation)
		}
		item.Name = *req.Name
	}
	if req.Category != nil {
		item.Category = req.Category.Normalize()
	}
	if req.QuantityOnHand != nil {
		if *req.QuantityOnHand < 0 {
			return nil, fmt.Errorf("%w: quantity on hand cannot be negative", ErrValidation)
		}
		item.QuantityOnHand = *req.QuantityOnHand
	}
	if req.Unit != nil {
		item.Unit = *req.Unit
	}
	if req.UnitCost != nil {
		item.UnitCost = req.UnitCost
	}
	if req.AvgCost != nil {
		item.AvgCost = req.AvgCost
	}
	if req.FifoCost != nil {
		item.FifoCost = req.FifoCost
	}
	if req.LastCost != nil {
		item.LastCost = req.LastCost
	}

	if err := s.inventoryRepo.UpdateItem(s.db, item); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: %s", ErrItemNameExists, item.Name)
		}
		return nil, fmt.Errorf("failed to update inventory item: %w", err)
	}
	return item, nil
}

func (s *inventoryService) DeleteItem(itemID int64) error {
	err := s.inventoryRepo.DeleteItem(itemID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrItemNotFound
		}
		return fmt.Errorf("failed to delete inventory item: %w", err)
	}
	return nil
}

// RestockItem applies a purchase receipt: quantity goes up, LastCost becomes
// the purchase price, AvgCost is recomputed as a weighted average of held
// stock and the incoming lot, and FifoCost resets to the purchase price when
// the shelf was previously empty (the incoming lot is then the oldest lot).
func (s *inventoryService) RestockItem(itemID int64, req RestockRequest) (*models.InventoryItem, error) {
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("%w: restock quantity must be positive", ErrValidation)
	}
	if req.UnitCost < 0 {
		return nil, fmt.Errorf("%w: restock unit cost cannot be negative", ErrValidation)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	item, err := s.inventoryRepo.GetItemByID(tx, itemID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to get inventory item: %w", err)
	}

	heldQty := item.QuantityOnHand
	if heldQty < 0 {
		heldQty = 0
	}
	heldCost := 0.0
	if item.AvgCost != nil {
		heldCost = *item.AvgCost
	} else if item.UnitCost != nil {
		heldCost = *item.UnitCost
	}

	newAvg := weightedAverageCost(heldQty, heldCost, req.Quantity, req.UnitCost)
	cost := req.UnitCost
	now := time.Now()

	if heldQty == 0 {
		item.FifoCost = &cost
	}
	item.AvgCost = &newAvg
	item.LastCost = &cost
	if item.UnitCost == nil {
		item.UnitCost = &cost
	}
	item.QuantityOnHand = heldQty + req.Quantity
	item.LastRestockedDate = &now

	if err := s.inventoryRepo.UpdateItem(tx, item); err != nil {
		return nil, fmt.Errorf("failed to update item on restock: %w", err)
	}

	movement := &models.StockMovement{
		InventoryItemID: item.ID,
		StaffID:         req.StaffID,
		MovementType:    "restock",
		Quantity:        req.Quantity,
		UnitCost:        &cost,
		Reason:          req.Reason,
		MovementDate:    now,
	}
	if _, err := s.inventoryRepo.CreateMovement(tx, movement); err != nil {
		return nil, fmt.Errorf("failed to record restock movement: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit restock: %w", err)
	}
	return item, nil
}

// DispenseItem consumes stock against a prescription or consultation:
// quantity drops (floored at 0), usage counters advance, and a consumption
// event is appended to the feed the turnover report reads.
func (s *inventoryService) DispenseItem(itemID int64, req DispenseRequest) (*models.InventoryItem, error) {
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("%w: dispense quantity must be positive", ErrValidation)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	item, err := s.inventoryRepo.GetItemByID(tx, itemID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to get inventory item: %w", err)
	}

	now := time.Now()
	item.QuantityOnHand -= req.Quantity
	if item.QuantityOnHand < 0 {
		item.QuantityOnHand = 0
	}
	item.LastUsedDate = &now
	item.TotalUsed += req.Quantity
	item.UsageCount++

	if err := s.inventoryRepo.UpdateItem(tx, item); err != nil {
		return nil, fmt.Errorf("failed to update item on dispense: %w", err)
	}

	movement := &models.StockMovement{
		InventoryItemID: item.ID,
		StaffID:         req.StaffID,
		MovementType:    "dispense",
		Quantity:        req.Quantity,
		Reason:          req.Reason,
		MovementDate:    now,
	}
	if _, err := s.inventoryRepo.CreateMovement(tx, movement); err != nil {
		return nil, fmt.Errorf("failed to record dispense movement: %w", err)
	}

	event := &models.ConsumptionEvent{
		ItemName: item.Name,
		Quantity: req.Quantity,
		Date:     now,
	}
	if _, err := s.consumptionRepo.CreateEvent(tx, event); err != nil {
		return nil, fmt.Errorf("failed to record consumption event: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit dispense: %w", err)
	}
	return item, nil
}

func (s *inventoryService) GetMovements(itemID *int64, movementType *string, page, pageSize int) ([]models.StockMovement, int, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	return s.inventoryRepo.GetMovements(itemID, movementType, page, pageSize)
}

// weightedAverageCost blends held stock with an incoming lot:
// ((heldQty * heldCost) + (inQty * inCost)) / (heldQty + inQty).
func weightedAverageCost(heldQty, heldCost, inQty, inCost float64) float64 {
	total := heldQty + inQty
	if total <= 0 {
		return 0
	}
	return (heldQty*heldCost + inQty*inCost) / total
}
