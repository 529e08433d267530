package repos

import (
	"botica/internal/domain"

	"github.com/jmoiron/sqlx"
)

type InventoryRepo struct{ db *sqlx.DB }

func NewInventoryRepo(db *sqlx.DB) *InventoryRepo { return &InventoryRepo{db: db} }

const inventorySelect = `
  SELECT i.inventory_id, i.product_id, i.batch_number, i.expiry_date,
         i.quantity_available, i.location, i.purchase_price, i.sale_price,
         p.name AS product_name, p.description AS product_description, p.category AS product_category
  FROM inventory i
  LEFT JOIN products p ON p.product_id = i.product_id`

// List returns all batches with product columns joined, newest first.
func (r *InventoryRepo) List() ([]domain.Inventory, error) {
	var out []domain.Inventory
	err := r.db.Select(&out, inventorySelect+` ORDER BY i.inventory_id DESC`)
	return out, err
}

func (r *InventoryRepo) Get(id int64) (domain.Inventory, error) {
	var inv domain.Inventory
	err := r.db.Get(&inv, inventorySelect+` WHERE i.inventory_id = ?`, id)
	return inv, err
}

func (r *InventoryRepo) Create(inv *domain.Inventory) error {
	res, err := r.db.Exec(`
	  INSERT INTO inventory(product_id, batch_number, expiry_date, quantity_available, location, purchase_price, sale_price)
	  VALUES(?, ?, ?, ?, ?, ?, ?)
	`, inv.ProductID, inv.BatchNumber, inv.ExpiryDate, inv.QuantityAvailable, inv.Location, inv.PurchasePrice, inv.SalePrice)
	if err != nil {
		return err
	}
	inv.InventoryID, err = res.LastInsertId()
	return err
}

func (r *InventoryRepo) Update(inv *domain.Inventory) (bool, error) {
	res, err := r.db.Exec(`
	  UPDATE inventory
	  SET product_id = ?, batch_number = ?, expiry_date = ?, quantity_available = ?,
	      location = ?, purchase_price = ?, sale_price = ?
	  WHERE inventory_id = ?
	`, inv.ProductID, inv.BatchNumber, inv.ExpiryDate, inv.QuantityAvailable,
		inv.Location, inv.PurchasePrice, inv.SalePrice, inv.InventoryID)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *InventoryRepo) Delete(id int64) (bool, error) {
	res, err := r.db.Exec(`DELETE FROM inventory WHERE inventory_id = ?`, id)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// Qty returns the current stock of one batch.
func (r *InventoryRepo) Qty(id int64) (int64, error) {
	var qty int64
	err := r.db.Get(&qty, `SELECT quantity_available FROM inventory WHERE inventory_id = ?`, id)
	return qty, err
}

// decrementTx subtracts "by" units inside an open transaction if enough
// stock exists. Zero affected rows means the row is missing or the guard
// failed; either way the caller must roll back.
func decrementTx(tx *sqlx.Tx, inventoryID, by int64) error {
	res, err := tx.Exec(`
	  UPDATE inventory
	  SET quantity_available = quantity_available - ?
	  WHERE inventory_id = ? AND quantity_available >= ?
	`, by, inventoryID, by)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrInsufficientStock
	}
	return nil
}

// Decrement is the standalone variant of the guard, for manual stock edits.
func (r *InventoryRepo) Decrement(inventoryID, by int64) error {
	res, err := r.db.Exec(`
	  UPDATE inventory
	  SET quantity_available = quantity_available - ?
	  WHERE inventory_id = ? AND quantity_available >= ?
	`, by, inventoryID, by)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrInsufficientStock
	}
	return nil
}
