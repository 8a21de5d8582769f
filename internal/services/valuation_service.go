package services

import (
	"fmt"
	"time"

	"clinic_backoffice/internal/models"
	"clinic_backoffice/internal/repositories"
	"clinic_backoffice/internal/valuation"
)

// --- Report DTOs ---

// ValuationReport is a full per-item valuation plus portfolio totals under
// one method.
type ValuationReport struct {
	Method  valuation.Method        `json:"method"`
	Items   []models.ValuedItem     `json:"items"`
	Summary models.ValuationSummary `json:"summary"`
}

// CategoryReport breaks a valuation down by category.
type CategoryReport struct {
	Method  valuation.Method        `json:"method"`
	Buckets []models.CategoryBucket `json:"buckets"`
	Summary models.ValuationSummary `json:"summary"`
}

// StockHealthReportResult carries both at-risk classifications for one run.
type StockHealthReportResult struct {
	Method     valuation.Method         `json:"method"`
	WindowDays int                      `json:"window_days"`
	Report     models.StockHealthReport `json:"report"`
}

// TurnoverReport holds the annualized turnover records for one run.
type TurnoverReport struct {
	Method     valuation.Method        `json:"method"`
	WindowDays int                     `json:"window_days"`
	Records    []models.TurnoverRecord `json:"records"`
}

// ComparisonReport holds the all-methods comparison with its totals row.
type ComparisonReport struct {
	Rows   []models.ComparisonRow  `json:"rows"`
	Totals models.ComparisonTotals `json:"totals"`
}

// --- ValuationService Interface ---

// ValuationService produces the valuation engine's reports from fresh
// database snapshots. Each call loads a snapshot, hands it to the pure
// valuation package, and discards it; nothing is cached between calls.
type ValuationService interface {
	GetValuation(method valuation.Method) (*ValuationReport, error)
	GetCategoryBreakdown(method valuation.Method) (*CategoryReport, error)
	GetStockHealth(method valuation.Method, windowDays int) (*StockHealthReportResult, error)
	GetTurnover(method valuation.Method, windowDays int) (*TurnoverReport, error)
	GetMethodComparison() (*ComparisonReport, error)
}

// --- valuationService Implementation ---
type valuationService struct {
	inventoryRepo   repositories.InventoryRepository
	consumptionRepo repositories.ConsumptionRepository
	now             func() time.Time
}

// NewValuationService creates a new instance of ValuationService.
func NewValuationService(inventoryRepo repositories.InventoryRepository, consumptionRepo repositories.ConsumptionRepository) ValuationService {
	return &valuationService{
		inventoryRepo:   inventoryRepo,
		consumptionRepo: consumptionRepo,
		now:             time.Now,
	}
}

func (s *valuationService) GetValuation(method valuation.Method) (*ValuationReport, error) {
	items, err := s.inventoryRepo.GetSnapshot()
	if err != nil {
		return nil, fmt.Errorf("failed to load inventory snapshot: %w", err)
	}
	valued := valuation.Valuate(items, method)
	return &ValuationReport{
		Method:  method,
		Items:   valued,
		Summary: valuation.Summarize(valued),
	}, nil
}

func (s *valuationService) GetCategoryBreakdown(method valuation.Method) (*CategoryReport, error) {
	items, err := s.inventoryRepo.GetSnapshot()
	if err != nil {
		return nil, fmt.Errorf("failed to load inventory snapshot: %w", err)
	}
	valued := valuation.Valuate(items, method)
	return &CategoryReport{
		Method:  method,
		Buckets: valuation.AggregateByCategory(valued),
		Summary: valuation.Summarize(valued),
	}, nil
}

func (s *valuationService) GetStockHealth(method valuation.Method, windowDays int) (*StockHealthReportResult, error) {
	if windowDays <= 0 {
		windowDays = valuation.DefaultStaleWindowDays
	}
	items, err := s.inventoryRepo.GetSnapshot()
	if err != nil {
		return nil, fmt.Errorf("failed to load inventory snapshot: %w", err)
	}
	valued := valuation.Valuate(items, method)
	now := s.now()
	return &StockHealthReportResult{
		Method:     method,
		WindowDays: windowDays,
		Report: models.StockHealthReport{
			SlowMoving: valuation.SlowMoving(valued, now, windowDays),
			DeadStock:  valuation.DeadStock(valued),
		},
	}, nil
}

func (s *valuationService) GetTurnover(method valuation.Method, windowDays int) (*TurnoverReport, error) {
	if windowDays <= 0 {
		windowDays = valuation.DefaultTurnoverWindowDays
	}
	items, err := s.inventoryRepo.GetSnapshot()
	if err != nil {
		return nil, fmt.Errorf("failed to load inventory snapshot: %w", err)
	}
	now := s.now()
	events, err := s.consumptionRepo.GetEventsSince(now.AddDate(0, 0, -windowDays))
	if err != nil {
		return nil, fmt.Errorf("failed to load consumption events: %w", err)
	}
	valued := valuation.Valuate(items, method)
	return &TurnoverReport{
		Method:     method,
		WindowDays: windowDays,
		Records:    valuation.Turnover(valued, events, now, windowDays),
	}, nil
}

func (s *valuationService) GetMethodComparison() (*ComparisonReport, error) {
	items, err := s.inventoryRepo.GetSnapshot()
	if err != nil {
		return nil, fmt.Errorf("failed to load inventory snapshot: %w", err)
	}
	rows, totals := valuation.CompareAll(items)
	return &ComparisonReport{Rows: rows, Totals: totals}, nil
}
