package repos

import (
	"botica/internal/domain"

	"github.com/jmoiron/sqlx"
)

type EmployeeRepo struct{ db *sqlx.DB }

func NewEmployeeRepo(db *sqlx.DB) *EmployeeRepo { return &EmployeeRepo{db: db} }

func (r *EmployeeRepo) List() ([]domain.Employee, error) {
	var out []domain.Employee
	err := r.db.Select(&out, `
	  SELECT employee_id, first_name, last_name, role, email, phone
	  FROM employees
	  ORDER BY employee_id DESC
	`)
	return out, err
}

func (r *EmployeeRepo) Get(id int64) (domain.Employee, error) {
	var e domain.Employee
	err := r.db.Get(&e, `
	  SELECT employee_id, first_name, last_name, role, email, phone
	  FROM employees
	  WHERE employee_id = ?
	`, id)
	return e, err
}

// First returns the oldest employee on file. Sell creation falls back to
// it when no employee is supplied.
func (r *EmployeeRepo) First() (domain.Employee, error) {
	var e domain.Employee
	err := r.db.Get(&e, `
	  SELECT employee_id, first_name, last_name, role, email, phone
	  FROM employees
	  ORDER BY employee_id ASC
	  LIMIT 1
	`)
	return e, err
}

func (r *EmployeeRepo) EmailTaken(email string, excludeID int64) (bool, error) {
	var n int
	err := r.db.Get(&n, `
	  SELECT COUNT(*) FROM employees
	  WHERE LOWER(email) = LOWER(?) AND employee_id != ?
	`, email, excludeID)
	return n > 0, err
}

func (r *EmployeeRepo) Create(e *domain.Employee) error {
	if e.Email != nil {
		taken, err := r.EmailTaken(*e.Email, 0)
		if err != nil {
			return err
		}
		if taken {
			return ErrDuplicateEmail
		}
	}
	res, err := r.db.Exec(`
	  INSERT INTO employees(first_name, last_name, role, email, phone)
	  VALUES(?, ?, ?, ?, ?)
	`, e.FirstName, e.LastName, e.Role, e.Email, e.Phone)
	if err != nil {
		return err
	}
	e.EmployeeID, err = res.LastInsertId()
	return err
}

func (r *EmployeeRepo) Update(e *domain.Employee) (bool, error) {
	if e.Email != nil {
		taken, err := r.EmailTaken(*e.Email, e.EmployeeID)
		if err != nil {
			return false, err
		}
		if taken {
			return false, ErrDuplicateEmail
		}
	}
	res, err := r.db.Exec(`
	  UPDATE employees
	  SET first_name = ?, last_name = ?, role = ?, email = ?, phone = ?
	  WHERE employee_id = ?
	`, e.FirstName, e.LastName, e.Role, e.Email, e.Phone, e.EmployeeID)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *EmployeeRepo) Delete(id int64) (bool, error) {
	res, err := r.db.Exec(`DELETE FROM employees WHERE employee_id = ?`, id)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
