package repos

import (
	"botica/internal/domain"

	"github.com/jmoiron/sqlx"
)

type SupplierRepo struct{ db *sqlx.DB }

func NewSupplierRepo(db *sqlx.DB) *SupplierRepo { return &SupplierRepo{db: db} }

func (r *SupplierRepo) List() ([]domain.Supplier, error) {
	var out []domain.Supplier
	err := r.db.Select(&out, `
	  SELECT supplier_id, name, contact_name, phone, email, address
	  FROM suppliers
	  ORDER BY supplier_id DESC
	`)
	return out, err
}

func (r *SupplierRepo) Get(id int64) (domain.Supplier, error) {
	var s domain.Supplier
	err := r.db.Get(&s, `
	  SELECT supplier_id, name, contact_name, phone, email, address
	  FROM suppliers
	  WHERE supplier_id = ?
	`, id)
	return s, err
}

// EmailTaken reports whether another supplier already uses the email.
// excludeID skips the row being updated; pass 0 on create.
func (r *SupplierRepo) EmailTaken(email string, excludeID int64) (bool, error) {
	var n int
	err := r.db.Get(&n, `
	  SELECT COUNT(*) FROM suppliers
	  WHERE LOWER(email) = LOWER(?) AND supplier_id != ?
	`, email, excludeID)
	return n > 0, err
}

func (r *SupplierRepo) Create(s *domain.Supplier) error {
	if s.Email != nil {
		taken, err := r.EmailTaken(*s.Email, 0)
		if err != nil {
			return err
		}
		if taken {
			return ErrDuplicateEmail
		}
	}
	res, err := r.db.Exec(`
	  INSERT INTO suppliers(name, contact_name, phone, email, address)
	  VALUES(?, ?, ?, ?, ?)
	`, s.Name, s.ContactName, s.Phone, s.Email, s.Address)
	if err != nil {
		return err
	}
	s.SupplierID, err = res.LastInsertId()
	return err
}

func (r *SupplierRepo) Update(s *domain.Supplier) (bool, error) {
	if s.Email != nil {
		taken, err := r.EmailTaken(*s.Email, s.SupplierID)
		if err != nil {
			return false, err
		}
		if taken {
			return false, ErrDuplicateEmail
		}
	}
	res, err := r.db.Exec(`
	  UPDATE suppliers
	  SET name = ?, contact_name = ?, phone = ?, email = ?, address = ?
	  WHERE supplier_id = ?
	`, s.Name, s.ContactName, s.Phone, s.Email, s.Address, s.SupplierID)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *SupplierRepo) Delete(id int64) (bool, error) {
	res, err := r.db.Exec(`DELETE FROM suppliers WHERE supplier_id = ?`, id)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
