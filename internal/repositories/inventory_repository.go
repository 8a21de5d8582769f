package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"clinic_backoffice/internal/models"

	"github.com/lib/pq"
)

// InventoryRepository defines the interface for inventory catalog and stock
// ledger database operations.
type InventoryRepository interface {
	CreateItem(executor SQLExecutor, item *models.InventoryItem) (int64, error)
	GetItemByID(executor SQLExecutor, itemID int64) (*models.InventoryItem, error)
	GetItems(category *models.ItemCategory, page, pageSize int) ([]models.InventoryItem, int, error)
	GetSnapshot() ([]models.InventoryItem, error)
	UpdateItem(executor SQLExecutor, item *models.InventoryItem) error
	DeleteItem(itemID int64) error

	CreateMovement(executor SQLExecutor, movement *models.StockMovement) (int64, error)
	GetMovements(itemID *int64, movementType *string, page, pageSize int) ([]models.StockMovement, int, error)
}

type inventoryRepository struct {
	db *sql.DB
}

// NewInventoryRepository creates a new instance of InventoryRepository.
func NewInventoryRepository(db *sql.DB) InventoryRepository {
	return &inventoryRepository{db: db}
}

const itemColumns = `id, name, category, quantity_on_hand, unit,
	unit_cost, avg_cost, fifo_cost, last_cost,
	last_restocked_date, last_used_date, total_used, usage_count,
	created_at, updated_at`

func (r *inventoryRepository) CreateItem(executor SQLExecutor, item *models.InventoryItem) (int64, error) {
	query := `INSERT INTO inventory_items
	          (name, category, quantity_on_hand, unit, unit_cost, avg_cost, fifo_cost, last_cost,
	           last_restocked_date, last_used_date, total_used, usage_count, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	          RETURNING id`
	now := time.Now()

	err := executor.QueryRow(query,
		item.Name, string(item.Category.Normalize()), item.QuantityOnHand, item.Unit,
		item.UnitCost, item.AvgCost, item.FifoCost, item.LastCost,
		item.LastRestockedDate, item.LastUsedDate, item.TotalUsed, item.UsageCount,
		now, now,
	).Scan(&item.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return 0, fmt.Errorf("%w: item name %q", ErrDuplicateKey, item.Name)
		}
		return 0, fmt.Errorf("%w: creating inventory item: %v", ErrDatabaseError, err)
	}
	item.CreatedAt = now
	item.UpdatedAt = now
	return item.ID, nil
}

func (r *inventoryRepository) GetItemByID(executor SQLExecutor, itemID int64) (*models.InventoryItem, error) {
	if executor == nil {
		executor = r.db
	}
	row := executor.QueryRow(`SELECT `+itemColumns+` FROM inventory_items WHERE id = $1`, itemID)
	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("%w: getting inventory item: %v", ErrDatabaseError, err)
	}
	return item, nil
}

func (r *inventoryRepository) GetItems(category *models.ItemCategory, page, pageSize int) ([]models.InventoryItem, int, error) {
	items := []models.InventoryItem{}
	totalCount := 0

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + itemColumns + `, COUNT(*) OVER() AS total_count FROM inventory_items`)

	var args []interface{}
	argCount := 1
	if category != nil && *category != "" {
		queryBuilder.WriteString(fmt.Sprintf(" WHERE category = $%d", argCount))
		args = append(args, string(*category))
		argCount++
	}
	queryBuilder.WriteString(" ORDER BY name")
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argCount, argCount+1))
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: getting inventory items: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		item, count, err := scanItemWithCount(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: scanning inventory item: %v", ErrDatabaseError, err)
		}
		totalCount = count
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating inventory items: %v", ErrDatabaseError, err)
	}
	return items, totalCount, nil
}

// GetSnapshot loads the entire catalog in one read. The valuation engine
// works over this immutable snapshot; it never queries the database itself.
func (r *inventoryRepository) GetSnapshot() ([]models.InventoryItem, error) {
	rows, err := r.db.Query(`SELECT ` + itemColumns + ` FROM inventory_items ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%w: loading inventory snapshot: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	items := []models.InventoryItem{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning snapshot item: %v", ErrDatabaseError, err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating snapshot: %v", ErrDatabaseError, err)
	}
	return items, nil
}

func (r *inventoryRepository) UpdateItem(executor SQLExecutor, item *models.InventoryItem) error {
	query := `UPDATE inventory_items SET
	          name = $1, category = $2, quantity_on_hand = $3, unit = $4,
	          unit_cost = $5, avg_cost = $6, fifo_cost = $7, last_cost = $8,
	          last_restocked_date = $9, last_used_date = $10, total_used = $11, usage_count = $12,
	          updated_at = $13
	          WHERE id = $14`
	item.UpdatedAt = time.Now()

	result, err := executor.Exec(query,
		item.Name, string(item.Category.Normalize()), item.QuantityOnHand, item.Unit,
		item.UnitCost, item.AvgCost, item.FifoCost, item.LastCost,
		item.LastRestockedDate, item.LastUsedDate, item.TotalUsed, item.UsageCount,
		item.UpdatedAt, item.ID,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return fmt.Errorf("%w: item name %q", ErrDuplicateKey, item.Name)
		}
		return fmt.Errorf("%w: updating inventory item: %v", ErrDatabaseError, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *inventoryRepository) DeleteItem(itemID int64) error {
	result, err := r.db.Exec(`DELETE FROM inventory_items WHERE id = $1`, itemID)
	if err != nil {
		return fmt.Errorf("%w: deleting inventory item: %v", ErrDatabaseError, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *inventoryRepository) CreateMovement(executor SQLExecutor, movement *models.StockMovement) (int64, error) {
	query := `INSERT INTO stock_movements
	          (inventory_item_id, staff_id, movement_type, quantity, unit_cost, reason, movement_date, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING id`
	now := time.Now()
	if movement.MovementDate.IsZero() {
		movement.MovementDate = now
	}

	var staffID sql.NullInt64
	if movement.StaffID != nil {
		staffID = sql.NullInt64{Int64: *movement.StaffID, Valid: true}
	}

	err := executor.QueryRow(query,
		movement.InventoryItemID, staffID, movement.MovementType, movement.Quantity,
		movement.UnitCost, movement.Reason, movement.MovementDate, now,
	).Scan(&movement.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating stock movement: %v", ErrDatabaseError, err)
	}
	return movement.ID, nil
}

func (r *inventoryRepository) GetMovements(itemID *int64, movementType *string, page, pageSize int) ([]models.StockMovement, int, error) {
	movements := []models.StockMovement{}
	totalCount := 0

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT
	    id, inventory_item_id, staff_id, movement_type, quantity, unit_cost, reason, movement_date, created_at,
	    COUNT(*) OVER() AS total_count
	  FROM stock_movements`)

	var conditions []string
	var args []interface{}
	argCount := 1

	if itemID != nil {
		conditions = append(conditions, fmt.Sprintf("inventory_item_id = $%d", argCount))
		args = append(args, *itemID)
		argCount++
	}
	if movementType != nil && *movementType != "" {
		conditions = append(conditions, fmt.Sprintf("movement_type = $%d", argCount))
		args = append(args, *movementType)
		argCount++
	}
	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE ")
		queryBuilder.WriteString(strings.Join(conditions, " AND "))
	}

	queryBuilder.WriteString(" ORDER BY movement_date DESC, created_at DESC")
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argCount, argCount+1))
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: getting stock movements: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var movement models.StockMovement
		var staffID sql.NullInt64
		var unitCost sql.NullFloat64
		var reason sql.NullString

		if err := rows.Scan(
			&movement.ID, &movement.InventoryItemID, &staffID, &movement.MovementType,
			&movement.Quantity, &unitCost, &reason, &movement.MovementDate, &movement.CreatedAt,
			&totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning stock movement: %v", ErrDatabaseError, err)
		}
		if staffID.Valid {
			movement.StaffID = &staffID.Int64
		}
		if unitCost.Valid {
			movement.UnitCost = &unitCost.Float64
		}
		if reason.Valid {
			movement.Reason = &reason.String
		}
		movements = append(movements, movement)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating stock movements: %v", ErrDatabaseError, err)
	}
	return movements, totalCount, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanItem(s scanner) (*models.InventoryItem, error) {
	var item models.InventoryItem
	var category string
	var unitCost, avgCost, fifoCost, lastCost sql.NullFloat64
	var lastRestocked, lastUsed sql.NullTime

	err := s.Scan(
		&item.ID, &item.Name, &category, &item.QuantityOnHand, &item.Unit,
		&unitCost, &avgCost, &fifoCost, &lastCost,
		&lastRestocked, &lastUsed, &item.TotalUsed, &item.UsageCount,
		&item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	applyNullables(&item, category, unitCost, avgCost, fifoCost, lastCost, lastRestocked, lastUsed)
	return &item, nil
}

func scanItemWithCount(s scanner) (*models.InventoryItem, int, error) {
	var item models.InventoryItem
	var category string
	var unitCost, avgCost, fifoCost, lastCost sql.NullFloat64
	var lastRestocked, lastUsed sql.NullTime
	var totalCount int

	err := s.Scan(
		&item.ID, &item.Name, &category, &item.QuantityOnHand, &item.Unit,
		&unitCost, &avgCost, &fifoCost, &lastCost,
		&lastRestocked, &lastUsed, &item.TotalUsed, &item.UsageCount,
		&item.CreatedAt, &item.UpdatedAt,
		&totalCount,
	)
	if err != nil {
		return nil, 0, err
	}
	applyNullables(&item, category, unitCost, avgCost, fifoCost, lastCost, lastRestocked, lastUsed)
	return &item, totalCount, nil
}

func applyNullables(item *models.InventoryItem, category string,
	unitCost, avgCost, fifoCost, lastCost sql.NullFloat64,
	lastRestocked, lastUsed sql.NullTime) {

	item.Category = models.ItemCategory(category)
	if unitCost.Valid {
		item.UnitCost = &unitCost.Float64
	}
	if avgCost.Valid {
		item.AvgCost = &avgCost.Float64
	}
	if fifoCost.Valid {
		item.FifoCost = &fifoCost.Float64
	}
	if lastCost.Valid {
		item.LastCost = &lastCost.Float64
	}
	if lastRestocked.Valid {
		t := lastRestocked.Time
		item.LastRestockedDate = &t
	}
	if lastUsed.Valid {
		t := lastUsed.Time
		item.LastUsedDate = &t
	}
}
