package repos

import (
	"botica/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

func (r *ProductRepo) List() ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `
	  SELECT product_id, name, description, category, type, dosage_form, unit, barcode, status
	  FROM products
	  ORDER BY product_id DESC
	`)
	return out, err
}

func (r *ProductRepo) Count() (int64, error) {
	var n int64
	err := r.db.Get(&n, `SELECT COUNT(*) FROM products`)
	return n, err
}

func (r *ProductRepo) Get(id int64) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `
	  SELECT product_id, name, description, category, type, dosage_form, unit, barcode, status
	  FROM products
	  WHERE product_id = ?
	`, id)
	return p, err
}

func (r *ProductRepo) Create(p *domain.Product) error {
	res, err := r.db.Exec(`
	  INSERT INTO products(name, description, category, type, dosage_form, unit, barcode, status)
	  VALUES(?, ?, ?, ?, ?, ?, ?, ?)
	`, p.Name, p.Description, p.Category, p.Type, p.DosageForm, p.Unit, p.Barcode, p.Status)
	if err != nil {
		return err
	}
	p.ProductID, err = res.LastInsertId()
	return err
}

func (r *ProductRepo) Update(p *domain.Product) (bool, error) {
	res, err := r.db.Exec(`
	  UPDATE products
	  SET name = ?, description = ?, category = ?, type = ?, dosage_form = ?, unit = ?, barcode = ?, status = ?
	  WHERE product_id = ?
	`, p.Name, p.Description, p.Category, p.Type, p.DosageForm, p.Unit, p.Barcode, p.Status, p.ProductID)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *ProductRepo) Delete(id int64) (bool, error) {
	res, err := r.db.Exec(`DELETE FROM products WHERE product_id = ?`, id)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
