package repos

import (
	"botica/internal/domain"

	"github.com/jmoiron/sqlx"
)

type SellRepo struct{ db *sqlx.DB }

func NewSellRepo(db *sqlx.DB) *SellRepo { return &SellRepo{db: db} }

func (r *SellRepo) List() ([]domain.Sell, error) {
	var out []domain.Sell
	err := r.db.Select(&out, `
	  SELECT sell_id, customer_name, employee_id, sell_date, total_amount, payment_method
	  FROM sells
	  ORDER BY datetime(sell_date) DESC
	`)
	return out, err
}

func (r *SellRepo) Get(id int64) (domain.Sell, error) {
	var s domain.Sell
	if err := r.db.Get(&s, `
	  SELECT sell_id, customer_name, employee_id, sell_date, total_amount, payment_method
	  FROM sells
	  WHERE sell_id = ?
	`, id); err != nil {
		return domain.Sell{}, err
	}

	if err := r.db.Select(&s.Items, `
	  SELECT sell_item_id, sell_id, inventory_id, quantity, unit_price, subtotal
	  FROM sell_items
	  WHERE sell_id = ?
	  ORDER BY sell_item_id
	`, id); err != nil {
		return domain.Sell{}, err
	}

	return s, nil
}

// Create inserts the sell header, its line rows and the guarded stock
// decrements as one transaction. Any failing step, including an
// insufficient-stock guard, rolls the whole sell back.
func (r *SellRepo) Create(s *domain.Sell) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec(`
	  INSERT INTO sells(customer_name, employee_id, sell_date, total_amount, payment_method)
	  VALUES(?, ?, ?, ?, ?)
	`, s.CustomerName, s.EmployeeID, s.SellDate, s.TotalAmount, s.PaymentMethod)
	if err != nil {
		return err
	}
	if s.SellID, err = res.LastInsertId(); err != nil {
		return err
	}

	for i := range s.Items {
		it := &s.Items[i]
		it.SellID = s.SellID
		res, err := tx.Exec(`
		  INSERT INTO sell_items(sell_id, inventory_id, quantity, unit_price, subtotal)
		  VALUES(?, ?, ?, ?, ?)
		`, it.SellID, it.InventoryID, it.Quantity, it.UnitPrice, it.Subtotal)
		if err != nil {
			return err
		}
		if it.SellItemID, err = res.LastInsertId(); err != nil {
			return err
		}
		if err := decrementTx(tx, it.InventoryID, it.Quantity); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Update rewrites the header and, when replaceItems is set, swaps the full
// item set. Inventory is not re-adjusted for replaced items.
func (r *SellRepo) Update(s *domain.Sell, replaceItems bool) (bool, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec(`
	  UPDATE sells
	  SET customer_name = ?, employee_id = ?, payment_method = ?, total_amount = ?
	  WHERE sell_id = ?
	`, s.CustomerName, s.EmployeeID, s.PaymentMethod, s.TotalAmount, s.SellID)
	if err != nil {
		return false, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return false, nil
	}

	if replaceItems {
		if _, err := tx.Exec(`DELETE FROM sell_items WHERE sell_id = ?`, s.SellID); err != nil {
			return false, err
		}
		for i := range s.Items {
			it := &s.Items[i]
			it.SellID = s.SellID
			res, err := tx.Exec(`
			  INSERT INTO sell_items(sell_id, inventory_id, quantity, unit_price, subtotal)
			  VALUES(?, ?, ?, ?, ?)
			`, it.SellID, it.InventoryID, it.Quantity, it.UnitPrice, it.Subtotal)
			if err != nil {
				return false, err
			}
			if it.SellItemID, err = res.LastInsertId(); err != nil {
				return false, err
			}
		}
	}

	return true, tx.Commit()
}

func (r *SellRepo) Delete(id int64) (bool, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM sell_items WHERE sell_id = ?`, id); err != nil {
		return false, err
	}
	res, err := tx.Exec(`DELETE FROM sells WHERE sell_id = ?`, id)
	if err != nil {
		return false, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return false, nil
	}

	return true, tx.Commit()
}
