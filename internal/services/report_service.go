package services

import (
	"botica/internal/domain"

	"github.com/jmoiron/sqlx"
)

// ReportService aggregates sells for the dashboard and reports endpoints.
// It reads directly with sqlx because every query is a cross-table
// aggregate rather than a row mapping owned by one repo.
type ReportService struct {
	DB *sqlx.DB
}

func NewReportService(db *sqlx.DB) *ReportService { return &ReportService{DB: db} }

type SalesTotals struct {
	Revenue    float64 `db:"revenue" json:"revenue"`
	SalesCount int64   `db:"count" json:"sales_count"`
}

// Daily returns revenue and sell count for the current date.
func (s *ReportService) Daily() (SalesTotals, error) {
	var t SalesTotals
	err := s.DB.Get(&t, `
	  SELECT COALESCE(SUM(total_amount),0) AS revenue, COUNT(*) AS count
	  FROM sells
	  WHERE DATE(sell_date) = DATE('now')
	`)
	return t, err
}

// Monthly returns revenue and sell count for the current month.
func (s *ReportService) Monthly() (SalesTotals, error) {
	var t SalesTotals
	err := s.DB.Get(&t, `
	  SELECT COALESCE(SUM(total_amount),0) AS revenue, COUNT(*) AS count
	  FROM sells
	  WHERE strftime('%Y-%m', sell_date) = strftime('%Y-%m', 'now')
	`)
	return t, err
}

// Range returns the sells in [start, end] (YYYY-MM-DD, either may be
// empty) with their items attached in a single IN fetch.
func (s *ReportService) Range(start, end string) ([]domain.Sell, error) {
	query := `
	  SELECT sell_id, customer_name, employee_id, sell_date, total_amount, payment_method
	  FROM sells`
	var (
		clauses []string
		args    []any
	)
	if start != "" {
		clauses = append(clauses, `DATE(sell_date) >= DATE(?)`)
		args = append(args, start)
	}
	if end != "" {
		clauses = append(clauses, `DATE(sell_date) <= DATE(?)`)
		args = append(args, end)
	}
	for i, c := range clauses {
		if i == 0 {
			query += " WHERE " + c
		} else {
			query += " AND " + c
		}
	}
	query += ` ORDER BY datetime(sell_date) DESC`

	var sells []domain.Sell
	if err := s.DB.Select(&sells, query, args...); err != nil {
		return nil, err
	}
	if len(sells) == 0 {
		return []domain.Sell{}, nil
	}

	ids := make([]int64, len(sells))
	for i, sl := range sells {
		ids[i] = sl.SellID
	}
	itemsQuery, itemsArgs, err := sqlx.In(`
	  SELECT sell_item_id, sell_id, inventory_id, quantity, unit_price, subtotal
	  FROM sell_items
	  WHERE sell_id IN (?)
	  ORDER BY sell_item_id
	`, ids)
	if err != nil {
		return nil, err
	}
	var items []domain.SellItem
	if err := s.DB.Select(&items, s.DB.Rebind(itemsQuery), itemsArgs...); err != nil {
		return nil, err
	}

	bySell := make(map[int64][]domain.SellItem)
	for _, it := range items {
		bySell[it.SellID] = append(bySell[it.SellID], it)
	}
	for i := range sells {
		if its := bySell[sells[i].SellID]; its != nil {
			sells[i].Items = its
		} else {
			sells[i].Items = []domain.SellItem{}
		}
	}
	return sells, nil
}

// Recent returns the latest n sells for the dashboard.
func (s *ReportService) Recent(n int) ([]domain.Sell, error) {
	if n <= 0 {
		n = 5
	}
	var sells []domain.Sell
	err := s.DB.Select(&sells, `
	  SELECT sell_id, customer_name, employee_id, sell_date, total_amount, payment_method
	  FROM sells
	  ORDER BY datetime(sell_date) DESC
	  LIMIT ?
	`, n)
	return sells, err
}
