package repos

import (
	"botica/internal/domain"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
)

type UserRepo struct{ db *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{db: db} }

func (r *UserRepo) List() ([]domain.User, error) {
	var out []domain.User
	err := r.db.Select(&out, `
	  SELECT user_id, first_name, last_name, email, password_hash
	  FROM users
	  ORDER BY user_id DESC
	`)
	return out, err
}

func (r *UserRepo) Get(id int64) (domain.User, error) {
	var u domain.User
	err := r.db.Get(&u, `
	  SELECT user_id, first_name, last_name, email, password_hash
	  FROM users
	  WHERE user_id = ?
	`, id)
	return u, err
}

func (r *UserRepo) EmailTaken(email string, excludeID int64) (bool, error) {
	var n int
	err := r.db.Get(&n, `
	  SELECT COUNT(*) FROM users
	  WHERE LOWER(email) = LOWER(?) AND user_id != ?
	`, email, excludeID)
	return n > 0, err
}

// Create inserts a user; a non-empty password is stored bcrypt-hashed.
func (r *UserRepo) Create(u *domain.User, password string) error {
	taken, err := r.EmailTaken(u.Email, 0)
	if err != nil {
		return err
	}
	if taken {
		return ErrDuplicateEmail
	}
	if password != "" {
		h, err := bcrypt.GenerateFromPassword([]byte(password), 12)
		if err != nil {
			return err
		}
		hs := string(h)
		u.Hash = &hs
	}
	res, err := r.db.Exec(`
	  INSERT INTO users(first_name, last_name, email, password_hash)
	  VALUES(?, ?, ?, ?)
	`, u.FirstName, u.LastName, u.Email, u.Hash)
	if err != nil {
		return err
	}
	u.UserID, err = res.LastInsertId()
	return err
}

func (r *UserRepo) Update(u *domain.User, password string) (bool, error) {
	taken, err := r.EmailTaken(u.Email, u.UserID)
	if err != nil {
		return false, err
	}
	if taken {
		return false, ErrDuplicateEmail
	}
	if password != "" {
		h, err := bcrypt.GenerateFromPassword([]byte(password), 12)
		if err != nil {
			return false, err
		}
		hs := string(h)
		u.Hash = &hs
	}
	res, err := r.db.Exec(`
	  UPDATE users
	  SET first_name = ?, last_name = ?, email = ?, password_hash = COALESCE(?, password_hash)
	  WHERE user_id = ?
	`, u.FirstName, u.LastName, u.Email, u.Hash, u.UserID)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *UserRepo) Delete(id int64) (bool, error) {
	res, err := r.db.Exec(`DELETE FROM users WHERE user_id = ?`, id)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
