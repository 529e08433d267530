package repos

import (
	"botica/internal/domain"

	"github.com/jmoiron/sqlx"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

func (r *OrderRepo) List() ([]domain.Order, error) {
	var out []domain.Order
	err := r.db.Select(&out, `
	  SELECT o.order_id, o.supplier_id, o.order_date, o.status, o.total_amount,
	         s.name AS supplier_name
	  FROM orders o
	  LEFT JOIN suppliers s ON s.supplier_id = o.supplier_id
	  ORDER BY datetime(o.order_date) DESC
	`)
	return out, err
}

// Get returns the order header plus its line items with product names.
func (r *OrderRepo) Get(id int64) (domain.Order, error) {
	var o domain.Order
	if err := r.db.Get(&o, `
	  SELECT o.order_id, o.supplier_id, o.order_date, o.status, o.total_amount,
	         s.name AS supplier_name
	  FROM orders o
	  LEFT JOIN suppliers s ON s.supplier_id = o.supplier_id
	  WHERE o.order_id = ?
	`, id); err != nil {
		return domain.Order{}, err
	}

	if err := r.db.Select(&o.Items, `
	  SELECT oi.order_item_id, oi.order_id, oi.product_id, oi.quantity, oi.unit_price,
	         p.name AS product_name
	  FROM order_items oi
	  LEFT JOIN products p ON p.product_id = oi.product_id
	  WHERE oi.order_id = ?
	  ORDER BY oi.order_item_id
	`, id); err != nil {
		return domain.Order{}, err
	}

	return o, nil
}

// Create inserts the header and all line rows as a unit.
func (r *OrderRepo) Create(o *domain.Order) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec(`
	  INSERT INTO orders(supplier_id, order_date, status, total_amount)
	  VALUES(?, ?, ?, ?)
	`, o.SupplierID, o.OrderDate, o.Status, o.TotalAmount)
	if err != nil {
		return err
	}
	if o.OrderID, err = res.LastInsertId(); err != nil {
		return err
	}

	for i := range o.Items {
		it := &o.Items[i]
		it.OrderID = o.OrderID
		res, err := tx.Exec(`
		  INSERT INTO order_items(order_id, product_id, quantity, unit_price)
		  VALUES(?, ?, ?, ?)
		`, it.OrderID, it.ProductID, it.Quantity, it.UnitPrice)
		if err != nil {
			return err
		}
		if it.OrderItemID, err = res.LastInsertId(); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Update rewrites the header and, when replaceItems is set, swaps the
// full line-item set (delete-all + re-insert, not a diff).
func (r *OrderRepo) Update(o *domain.Order, replaceItems bool) (bool, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec(`
	  UPDATE orders
	  SET supplier_id = ?, order_date = ?, status = ?, total_amount = ?
	  WHERE order_id = ?
	`, o.SupplierID, o.OrderDate, o.Status, o.TotalAmount, o.OrderID)
	if err != nil {
		return false, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return false, nil
	}

	if replaceItems {
		if _, err := tx.Exec(`DELETE FROM order_items WHERE order_id = ?`, o.OrderID); err != nil {
			return false, err
		}
		for i := range o.Items {
			it := &o.Items[i]
			it.OrderID = o.OrderID
			res, err := tx.Exec(`
			  INSERT INTO order_items(order_id, product_id, quantity, unit_price)
			  VALUES(?, ?, ?, ?)
			`, it.OrderID, it.ProductID, it.Quantity, it.UnitPrice)
			if err != nil {
				return false, err
			}
			if it.OrderItemID, err = res.LastInsertId(); err != nil {
				return false, err
			}
		}
	}

	return true, tx.Commit()
}

// Delete removes the line items and then the header, as a unit.
func (r *OrderRepo) Delete(id int64) (bool, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM order_items WHERE order_id = ?`, id); err != nil {
		return false, err
	}
	res, err := tx.Exec(`DELETE FROM orders WHERE order_id = ?`, id)
	if err != nil {
		return false, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return false, nil
	}

	return true, tx.Commit()
}
