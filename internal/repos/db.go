package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed baseline data if DB is empty (products/inventory/suppliers/employees)
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}
	// Ensure the admin user exists (idempotent; safe to run every start)
	if err := seedUsers(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Products
CREATE TABLE IF NOT EXISTS products(
  product_id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  description TEXT,
  category TEXT,
  type TEXT,
  dosage_form TEXT,
  unit TEXT,
  barcode TEXT,
  status INTEGER NOT NULL DEFAULT 1
);
CREATE INDEX IF NOT EXISTS idx_products_name     ON products(LOWER(name));
CREATE INDEX IF NOT EXISTS idx_products_category ON products(category);

-- Inventory: one row per batch
CREATE TABLE IF NOT EXISTS inventory(
  inventory_id INTEGER PRIMARY KEY AUTOINCREMENT,
  product_id INTEGER NOT NULL REFERENCES products(product_id) ON DELETE RESTRICT,
  batch_number TEXT,
  expiry_date TEXT,
  quantity_available INTEGER NOT NULL DEFAULT 0 CHECK (quantity_available >= 0),
  location TEXT,
  purchase_price NUMERIC NOT NULL DEFAULT 0,
  sale_price NUMERIC NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_inventory_product ON inventory(product_id);
CREATE INDEX IF NOT EXISTS idx_inventory_expiry  ON inventory(expiry_date);

-- Suppliers
CREATE TABLE IF NOT EXISTS suppliers(
  supplier_id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  contact_name TEXT,
  phone TEXT,
  email TEXT,
  address TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_suppliers_email ON suppliers(LOWER(email)) WHERE email IS NOT NULL;

-- Purchase orders
CREATE TABLE IF NOT EXISTS orders(
  order_id INTEGER PRIMARY KEY AUTOINCREMENT,
  supplier_id INTEGER NOT NULL REFERENCES suppliers(supplier_id) ON DELETE RESTRICT,
  order_date TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  status TEXT NOT NULL DEFAULT 'pendiente'
    CHECK (status IN ('pendiente','aprobado','recibido','cancelado')),
  total_amount NUMERIC NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_orders_date ON orders(order_date);

CREATE TABLE IF NOT EXISTS order_items(
  order_item_id INTEGER PRIMARY KEY AUTOINCREMENT,
  order_id INTEGER NOT NULL REFERENCES orders(order_id) ON DELETE CASCADE,
  product_id INTEGER NOT NULL REFERENCES products(product_id),
  quantity INTEGER NOT NULL CHECK (quantity >= 1),
  unit_price NUMERIC NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id);

-- Point-of-sale sells
CREATE TABLE IF NOT EXISTS sells(
  sell_id INTEGER PRIMARY KEY AUTOINCREMENT,
  customer_name TEXT,
  employee_id INTEGER REFERENCES employees(employee_id) ON DELETE SET NULL,
  sell_date TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  total_amount NUMERIC NOT NULL DEFAULT 0,
  payment_method TEXT NOT NULL
    CHECK (payment_method IN ('efectivo','tarjeta','seguro','transferencia'))
);
CREATE INDEX IF NOT EXISTS idx_sells_date ON sells(sell_date);

CREATE TABLE IF NOT EXISTS sell_items(
  sell_item_id INTEGER PRIMARY KEY AUTOINCREMENT,
  sell_id INTEGER NOT NULL REFERENCES sells(sell_id) ON DELETE CASCADE,
  inventory_id INTEGER NOT NULL REFERENCES inventory(inventory_id),
  quantity INTEGER NOT NULL CHECK (quantity >= 1),
  unit_price NUMERIC NOT NULL,
  subtotal NUMERIC NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_sell_items_sell ON sell_items(sell_id);

-- Employees
CREATE TABLE IF NOT EXISTS employees(
  employee_id INTEGER PRIMARY KEY AUTOINCREMENT,
  first_name TEXT NOT NULL,
  last_name TEXT NOT NULL,
  role TEXT,
  email TEXT,
  phone TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_employees_email ON employees(LOWER(email)) WHERE email IS NOT NULL;

-- App users
CREATE TABLE IF NOT EXISTS users(
  user_id INTEGER PRIMARY KEY AUTOINCREMENT,
  first_name TEXT NOT NULL,
  last_name TEXT NOT NULL,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM products`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo products/inventory/suppliers/employees")

	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO products(name,description,category,type,dosage_form,unit,barcode,status) VALUES
	  ('Paracetamol 500mg','Analgésico y antipirético','analgésicos','medicamento','tableta','caja','7501001234501',1),
	  ('Amoxicilina 500mg','Antibiótico de amplio espectro','antibióticos','medicamento','cápsula','caja','7501001234502',1),
	  ('Ibuprofeno 400mg','Antiinflamatorio no esteroideo','antiinflamatorios','medicamento','tableta','blíster',NULL,1),
	  ('Vitamina C 1g','Suplemento efervescente','vitaminas','suplemento','tableta','tubo',NULL,1)`)

	tx.MustExec(`INSERT INTO inventory(product_id,batch_number,expiry_date,quantity_available,location,purchase_price,sale_price) VALUES
	  (1,'LOT-2401',date('now','+18 months'),120,'Estante A1',0.80,1.50),
	  (2,'LOT-2387',date('now','+25 days'),40,'Estante B2',2.10,3.90),
	  (3,'LOT-2355',date('now','-10 days'),8,'Estante A3',0.95,1.80),
	  (4,NULL,NULL,200,'Bodega',1.20,2.40)`)

	tx.MustExec(`INSERT INTO suppliers(name,contact_name,phone,email,address) VALUES
	  ('Distribuidora MedSur','Laura Pineda','+56 2 2345 6789','ventas@medsur.test','Av. Central 1200'),
	  ('Laboratorios Andina','Jorge Salas','+56 9 8765 4321','contacto@andina.test','Parque Industrial 45')`)

	tx.MustExec(`INSERT INTO employees(first_name,last_name,role,email,phone) VALUES
	  ('Carmen','Rojas','farmacéutica','carmen.rojas@botica.test','+56 9 1111 2222'),
	  ('Diego','Fuentes','vendedor','diego.fuentes@botica.test',NULL)`)

	return tx.Commit()
}

// seedUsers ensures the admin account exists (idempotent).
func seedUsers(db *sqlx.DB) error {
	hash, _ := bcrypt.GenerateFromPassword([]byte("Cambiar.123"), 12)

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
		INSERT INTO users(first_name,last_name,email,password_hash)
		VALUES('Admin','Botica','admin@botica.test',?)
		ON CONFLICT(email) DO NOTHING
	`, string(hash)); err != nil {
		return err
	}

	return tx.Commit()
}
