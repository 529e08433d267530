package services

import (
	"math"
	"time"

	"botica/internal/domain"
	"botica/internal/repos"
)

type InventoryService struct {
	Inv *repos.InventoryRepo

	// Alert thresholds, from config. The original views disagreed on the
	// expiry window, so it is injected rather than hard-coded.
	ExpiryAlertDays int
	LowStockLevel   int64
}

func NewInventoryService(inv *repos.InventoryRepo, expiryDays, lowStock int) *InventoryService {
	return &InventoryService{Inv: inv, ExpiryAlertDays: expiryDays, LowStockLevel: int64(lowStock)}
}

// DaysUntilExpiry returns ceil((expiry - now) / 24h), or false when the
// date is absent or unparseable. Negative means already expired.
func DaysUntilExpiry(expiry *string, now time.Time) (int64, bool) {
	if expiry == nil || *expiry == "" {
		return 0, false
	}
	t, err := time.Parse("2006-01-02", *expiry)
	if err != nil {
		if t, err = time.Parse(time.RFC3339, *expiry); err != nil {
			return 0, false
		}
	}
	days := int64(math.Ceil(t.Sub(now).Hours() / 24))
	return days, true
}

// Classify derives the alert state of one inventory row. Expiry state
// wins the summary label; low stock is flagged independently.
func (s *InventoryService) Classify(inv domain.Inventory, now time.Time) domain.InventoryAlert {
	alert := domain.InventoryAlert{Inventory: inv, Status: domain.AlertOK}
	alert.LowStock = inv.QuantityAvailable <= s.LowStockLevel

	if days, ok := DaysUntilExpiry(inv.ExpiryDate, now); ok {
		alert.DaysUntilExpiry = &days
		switch {
		case days < 0:
			alert.Status = domain.AlertExpired
		case days <= int64(s.ExpiryAlertDays):
			alert.Status = domain.AlertExpiring
		}
	}
	if alert.Status == domain.AlertOK && alert.LowStock {
		alert.Status = domain.AlertLowStock
	}
	return alert
}

// Alerts classifies every inventory row.
func (s *InventoryService) Alerts() ([]domain.InventoryAlert, error) {
	rows, err := s.Inv.List()
	if err != nil {
		return nil, err
	}
	now := time.Now()
	out := make([]domain.InventoryAlert, 0, len(rows))
	for _, inv := range rows {
		out = append(out, s.Classify(inv, now))
	}
	return out, nil
}

// AlertSummary tallies the alert states for the dashboard.
type AlertSummary struct {
	Total    int `json:"total"`
	Expired  int `json:"expired"`
	Expiring int `json:"expiring"`
	LowStock int `json:"low_stock"`
}

func (s *InventoryService) Summary() (AlertSummary, error) {
	alerts, err := s.Alerts()
	if err != nil {
		return AlertSummary{}, err
	}
	sum := AlertSummary{Total: len(alerts)}
	for _, a := range alerts {
		switch a.Status {
		case domain.AlertExpired:
			sum.Expired++
		case domain.AlertExpiring:
			sum.Expiring++
		}
		if a.LowStock {
			sum.LowStock++
		}
	}
	return sum, nil
}
