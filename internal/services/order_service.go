package services

import (
	"errors"
	"time"

	"botica/internal/domain"
	"botica/internal/repos"
	"botica/internal/validate"
)

var (
	ErrMissingSupplier = errors.New("proveedor requerido")
	ErrNoItems         = errors.New("debe incluir al menos un artículo")
	ErrBadItem         = errors.New("artículo con cantidad o precio inválido")
	ErrBadStatus       = errors.New("estado de orden inválido")
)

type OrderService struct {
	Orders *repos.OrderRepo
}

func NewOrderService(orders *repos.OrderRepo) *OrderService {
	return &OrderService{Orders: orders}
}

// OrderInput is the create/update payload: header fields plus the full
// line-item set.
type OrderInput struct {
	SupplierID int64            `json:"supplier_id"`
	OrderDate  string           `json:"order_date"`
	Status     string           `json:"status"`
	Items      []OrderItemInput `json:"items"`
}

type OrderItemInput struct {
	ProductID int64   `json:"product_id"`
	Quantity  int64   `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

func (in *OrderInput) validate(requireItems bool) ([]domain.OrderItem, float64, error) {
	if in.SupplierID <= 0 {
		return nil, 0, ErrMissingSupplier
	}
	if requireItems && len(in.Items) == 0 {
		return nil, 0, ErrNoItems
	}
	if in.Status == "" {
		in.Status = domain.OrderStatusPending
	} else {
		st, ok := validate.OrderStatus(in.Status)
		if !ok {
			return nil, 0, ErrBadStatus
		}
		in.Status = st
	}
	if in.OrderDate == "" {
		in.OrderDate = time.Now().UTC().Format(time.RFC3339)
	}

	items := make([]domain.OrderItem, 0, len(in.Items))
	total := 0.0
	for _, it := range in.Items {
		if it.ProductID <= 0 || !validate.Qty(it.Quantity) || !validate.Price(it.UnitPrice) {
			return nil, 0, ErrBadItem
		}
		items = append(items, domain.OrderItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
		total += float64(it.Quantity) * it.UnitPrice
	}
	return items, total, nil
}

// Create validates the payload and writes header plus items atomically.
// The total is always recomputed from the items; a client-sent total is
// never trusted.
func (s *OrderService) Create(in OrderInput) (domain.Order, error) {
	items, total, err := in.validate(true)
	if err != nil {
		return domain.Order{}, err
	}

	o := domain.Order{
		SupplierID:  in.SupplierID,
		OrderDate:   in.OrderDate,
		Status:      in.Status,
		TotalAmount: total,
		Items:       items,
	}
	if err := s.Orders.Create(&o); err != nil {
		return domain.Order{}, err
	}
	return o, nil
}

// Update rewrites the header; when the payload carries items the whole
// line set is replaced and the total recomputed. Without items the
// stored total is recomputed from the existing lines so a header-only
// edit cannot drift it.
func (s *OrderService) Update(id int64, in OrderInput) (domain.Order, bool, error) {
	replace := in.Items != nil
	items, total, err := in.validate(false)
	if err != nil {
		return domain.Order{}, false, err
	}
	if !replace {
		current, err := s.Orders.Get(id)
		if err != nil {
			return domain.Order{}, false, err
		}
		total = 0
		for _, it := range current.Items {
			total += float64(it.Quantity) * it.UnitPrice
		}
	}

	o := domain.Order{
		OrderID:     id,
		SupplierID:  in.SupplierID,
		OrderDate:   in.OrderDate,
		Status:      in.Status,
		TotalAmount: total,
		Items:       items,
	}
	ok, err := s.Orders.Update(&o, replace)
	if err != nil || !ok {
		return domain.Order{}, ok, err
	}
	return o, true, nil
}
