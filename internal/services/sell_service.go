package services

import (
	"database/sql"
	"errors"
	"time"

	"botica/internal/domain"
	"botica/internal/repos"
	"botica/internal/validate"
)

var ErrBadPayment = errors.New("método de pago inválido")

type SellService struct {
	Sells     *repos.SellRepo
	Employees *repos.EmployeeRepo
}

func NewSellService(sells *repos.SellRepo, employees *repos.EmployeeRepo) *SellService {
	return &SellService{Sells: sells, Employees: employees}
}

type SellInput struct {
	CustomerName  string          `json:"customer_name"`
	EmployeeID    *int64          `json:"employee_id"`
	PaymentMethod string          `json:"payment_method"`
	Items         []SellItemInput `json:"items"`
}

type SellItemInput struct {
	InventoryID int64   `json:"inventory_id"`
	Quantity    int64   `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

func (in *SellInput) validate(requireItems bool) ([]domain.SellItem, float64, error) {
	pm, ok := validate.PaymentMethod(in.PaymentMethod)
	if !ok {
		return nil, 0, ErrBadPayment
	}
	in.PaymentMethod = pm
	if requireItems && len(in.Items) == 0 {
		return nil, 0, ErrNoItems
	}

	items := make([]domain.SellItem, 0, len(in.Items))
	total := 0.0
	for _, it := range in.Items {
		if it.InventoryID <= 0 || !validate.Qty(it.Quantity) || !validate.Price(it.UnitPrice) {
			return nil, 0, ErrBadItem
		}
		subtotal := float64(it.Quantity) * it.UnitPrice
		items = append(items, domain.SellItem{
			InventoryID: it.InventoryID,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    subtotal,
		})
		total += subtotal
	}
	return items, total, nil
}

// Create records a point-of-sale transaction: header, line rows and the
// guarded stock decrements all commit or roll back together. When no
// employee is supplied the first employee on file is charged with the
// sale, mirroring the counter workflow where the default cashier rings
// up walk-ins.
func (s *SellService) Create(in SellInput) (domain.Sell, error) {
	items, total, err := in.validate(true)
	if err != nil {
		return domain.Sell{}, err
	}

	employeeID := in.EmployeeID
	if employeeID == nil {
		if first, err := s.Employees.First(); err == nil {
			employeeID = &first.EmployeeID
		} else if !errors.Is(err, sql.ErrNoRows) {
			return domain.Sell{}, err
		}
	}

	var customer *string
	if in.CustomerName != "" {
		customer = &in.CustomerName
	}

	sell := domain.Sell{
		CustomerName:  customer,
		EmployeeID:    employeeID,
		SellDate:      time.Now().UTC().Format(time.RFC3339),
		TotalAmount:   total,
		PaymentMethod: in.PaymentMethod,
		Items:         items,
	}
	if err := s.Sells.Create(&sell); err != nil {
		return domain.Sell{}, err
	}
	return sell, nil
}

// Update rewrites the header and optionally replaces the item set,
// recomputing the total. Stock is not re-adjusted for replaced items;
// corrections go through inventory edits.
func (s *SellService) Update(id int64, in SellInput) (domain.Sell, bool, error) {
	replace := in.Items != nil
	items, total, err := in.validate(false)
	if err != nil {
		return domain.Sell{}, false, err
	}
	if !replace {
		current, err := s.Sells.Get(id)
		if err != nil {
			return domain.Sell{}, false, err
		}
		total = 0
		for _, it := range current.Items {
			total += it.Subtotal
		}
	}

	var customer *string
	if in.CustomerName != "" {
		customer = &in.CustomerName
	}

	sell := domain.Sell{
		SellID:        id,
		CustomerName:  customer,
		EmployeeID:    in.EmployeeID,
		TotalAmount:   total,
		PaymentMethod: in.PaymentMethod,
		Items:         items,
	}
	ok, err := s.Sells.Update(&sell, replace)
	if err != nil || !ok {
		return domain.Sell{}, ok, err
	}
	return sell, true, nil
}
