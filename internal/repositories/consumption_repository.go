package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"clinic_backoffice/internal/models"
)

// ConsumptionRepository defines database operations for the consumption-event
// feed derived from prescription and consultation records.
type ConsumptionRepository interface {
	CreateEvent(executor SQLExecutor, event *models.ConsumptionEvent) (int64, error)
	GetEventsSince(since time.Time) ([]models.ConsumptionEvent, error)
}

type consumptionRepository struct {
	db *sql.DB
}

// NewConsumptionRepository creates a new instance of ConsumptionRepository.
func NewConsumptionRepository(db *sql.DB) ConsumptionRepository {
	return &consumptionRepository{db: db}
}

func (r *consumptionRepository) CreateEvent(executor SQLExecutor, event *models.ConsumptionEvent) (int64, error) {
	query := `INSERT INTO consumption_events (item_name, quantity, consumed_on)
	          VALUES ($1, $2, $3)
	          RETURNING id`
	if event.Date.IsZero() {
		event.Date = time.Now()
	}

	err := executor.QueryRow(query, event.ItemName, event.Quantity, event.Date).Scan(&event.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating consumption event: %v", ErrDatabaseError, err)
	}
	return event.ID, nil
}

// GetEventsSince returns events recorded on or after the given time. The
// trailing-window filter in the turnover analyzer still applies; this just
// keeps the result set proportional to the report window.
func (r *consumptionRepository) GetEventsSince(since time.Time) ([]models.ConsumptionEvent, error) {
	rows, err := r.db.Query(
		`SELECT id, item_name, quantity, consumed_on FROM consumption_events
		 WHERE consumed_on >= $1 ORDER BY consumed_on`, since)
	if err != nil {
		return nil, fmt.Errorf("%w: getting consumption events: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	events := []models.ConsumptionEvent{}
	for rows.Next() {
		var event models.ConsumptionEvent
		if err := rows.Scan(&event.ID, &event.ItemName, &event.Quantity, &event.Date); err != nil {
			return nil, fmt.Errorf("%w: scanning consumption event: %v", ErrDatabaseError, err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating consumption events: %v", ErrDatabaseError, err)
	}
	return events, nil
}
