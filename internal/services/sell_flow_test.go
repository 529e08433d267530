package services_test

import (
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"botica/internal/repos"
	"botica/internal/services"
)

func memdbAll(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	schema := `
	CREATE TABLE products(
	  product_id INTEGER PRIMARY KEY AUTOINCREMENT,
	  name TEXT NOT NULL, description TEXT, category TEXT, type TEXT,
	  dosage_form TEXT, unit TEXT, barcode TEXT, status INTEGER NOT NULL DEFAULT 1
	);
	CREATE TABLE inventory(
	  inventory_id INTEGER PRIMARY KEY AUTOINCREMENT,
	  product_id INTEGER NOT NULL,
	  batch_number TEXT, expiry_date TEXT,
	  quantity_available INTEGER NOT NULL DEFAULT 0 CHECK (quantity_available >= 0),
	  location TEXT, purchase_price NUMERIC NOT NULL DEFAULT 0, sale_price NUMERIC NOT NULL DEFAULT 0
	);
	CREATE TABLE suppliers(
	  supplier_id INTEGER PRIMARY KEY AUTOINCREMENT,
	  name TEXT NOT NULL, contact_name TEXT, phone TEXT, email TEXT, address TEXT
	);
	CREATE TABLE orders(
	  order_id INTEGER PRIMARY KEY AUTOINCREMENT,
	  supplier_id INTEGER NOT NULL,
	  order_date TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
	  status TEXT NOT NULL DEFAULT 'pendiente',
	  total_amount NUMERIC NOT NULL DEFAULT 0
	);
	CREATE TABLE order_items(
	  order_item_id INTEGER PRIMARY KEY AUTOINCREMENT,
	  order_id INTEGER NOT NULL, product_id INTEGER NOT NULL,
	  quantity INTEGER NOT NULL, unit_price NUMERIC NOT NULL
	);
	CREATE TABLE sells(
	  sell_id INTEGER PRIMARY KEY AUTOINCREMENT,
	  customer_name TEXT, employee_id INTEGER,
	  sell_date TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
	  total_amount NUMERIC NOT NULL DEFAULT 0,
	  payment_method TEXT NOT NULL
	);
	CREATE TABLE sell_items(
	  sell_item_id INTEGER PRIMARY KEY AUTOINCREMENT,
	  sell_id INTEGER NOT NULL, inventory_id INTEGER NOT NULL,
	  quantity INTEGER NOT NULL, unit_price NUMERIC NOT NULL, subtotal NUMERIC NOT NULL
	);
	CREATE TABLE employees(
	  employee_id INTEGER PRIMARY KEY AUTOINCREMENT,
	  first_name TEXT NOT NULL, last_name TEXT NOT NULL,
	  role TEXT, email TEXT, phone TEXT
	);

	INSERT INTO products(name,category) VALUES ('Paracetamol 500mg','analgésicos'),('Ibuprofeno 400mg','antiinflamatorios');
	INSERT INTO inventory(product_id,batch_number,quantity_available,sale_price) VALUES
	  (1,'LOT-1',50,1.50),
	  (2,'LOT-2',5,1.80);
	INSERT INTO suppliers(name,email) VALUES ('Distribuidora MedSur','ventas@medsur.test');
	INSERT INTO employees(first_name,last_name,role) VALUES ('Carmen','Rojas','farmacéutica'),('Diego','Fuentes','vendedor');
	`
	if _, err := db.Exec(schema); err != nil {
		t.Fatal(err)
	}
	return db
}

func TestSellFlow_CreateDecrementsStock(t *testing.T) {
	db := memdbAll(t)
	sellRepo := repos.NewSellRepo(db)
	invRepo := repos.NewInventoryRepo(db)
	empRepo := repos.NewEmployeeRepo(db)
	svc := services.NewSellService(sellRepo, empRepo)

	sell, err := svc.Create(services.SellInput{
		CustomerName:  "Ana",
		PaymentMethod: "efectivo",
		Items: []services.SellItemInput{
			{InventoryID: 1, Quantity: 3, UnitPrice: 1.50},
			{InventoryID: 2, Quantity: 2, UnitPrice: 1.80},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if sell.SellID == 0 {
		t.Fatal("no sell id")
	}
	if want := 3*1.50 + 2*1.80; sell.TotalAmount != want {
		t.Fatalf("want total %.2f, got %.2f", want, sell.TotalAmount)
	}

	qty, err := invRepo.Qty(1)
	if err != nil {
		t.Fatal(err)
	}
	if qty != 47 {
		t.Fatalf("want qty=47, got %d", qty)
	}
	qty, _ = invRepo.Qty(2)
	if qty != 3 {
		t.Fatalf("want qty=3, got %d", qty)
	}
}

func TestSellFlow_InsufficientStockRollsBack(t *testing.T) {
	db := memdbAll(t)
	sellRepo := repos.NewSellRepo(db)
	invRepo := repos.NewInventoryRepo(db)
	empRepo := repos.NewEmployeeRepo(db)
	svc := services.NewSellService(sellRepo, empRepo)

	_, err := svc.Create(services.SellInput{
		PaymentMethod: "tarjeta",
		Items: []services.SellItemInput{
			{InventoryID: 1, Quantity: 2, UnitPrice: 1.50},
			{InventoryID: 2, Quantity: 99, UnitPrice: 1.80}, // only 5 on hand
		},
	})
	if !errors.Is(err, repos.ErrInsufficientStock) {
		t.Fatalf("want ErrInsufficientStock, got %v", err)
	}

	// nothing committed: no header, no items, stock untouched
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM sells`); err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("want 0 sells, got %d", n)
	}
	if err := db.Get(&n, `SELECT COUNT(*) FROM sell_items`); err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("want 0 sell_items, got %d", n)
	}
	qty, _ := invRepo.Qty(1)
	if qty != 50 {
		t.Fatalf("first line must roll back too, want qty=50, got %d", qty)
	}
}

func TestSellFlow_DefaultEmployee(t *testing.T) {
	db := memdbAll(t)
	sellRepo := repos.NewSellRepo(db)
	empRepo := repos.NewEmployeeRepo(db)
	svc := services.NewSellService(sellRepo, empRepo)

	sell, err := svc.Create(services.SellInput{
		PaymentMethod: "efectivo",
		Items:         []services.SellItemInput{{InventoryID: 1, Quantity: 1, UnitPrice: 1.50}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if sell.EmployeeID == nil || *sell.EmployeeID != 1 {
		t.Fatalf("want default employee 1, got %v", sell.EmployeeID)
	}
}

func TestSellFlow_RejectsBadInput(t *testing.T) {
	db := memdbAll(t)
	svc := services.NewSellService(repos.NewSellRepo(db), repos.NewEmployeeRepo(db))

	if _, err := svc.Create(services.SellInput{PaymentMethod: "bitcoin",
		Items: []services.SellItemInput{{InventoryID: 1, Quantity: 1, UnitPrice: 1}}}); !errors.Is(err, services.ErrBadPayment) {
		t.Fatalf("want ErrBadPayment, got %v", err)
	}
	if _, err := svc.Create(services.SellInput{PaymentMethod: "efectivo"}); !errors.Is(err, services.ErrNoItems) {
		t.Fatalf("want ErrNoItems, got %v", err)
	}
	if _, err := svc.Create(services.SellInput{PaymentMethod: "efectivo",
		Items: []services.SellItemInput{{InventoryID: 1, Quantity: 0, UnitPrice: 1}}}); !errors.Is(err, services.ErrBadItem) {
		t.Fatalf("want ErrBadItem, got %v", err)
	}
}

func TestSellUpdate_HeaderOnlyKeepsTotal(t *testing.T) {
	db := memdbAll(t)
	sellRepo := repos.NewSellRepo(db)
	empRepo := repos.NewEmployeeRepo(db)
	svc := services.NewSellService(sellRepo, empRepo)

	created, err := svc.Create(services.SellInput{
		PaymentMethod: "efectivo",
		Items: []services.SellItemInput{
			{InventoryID: 1, Quantity: 4, UnitPrice: 1.50},
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	// change payment only; total must stay derived from the stored items
	updated, found, err := svc.Update(created.SellID, services.SellInput{
		CustomerName:  "Ana",
		PaymentMethod: "tarjeta",
	})
	if err != nil {
		t.Fatal(err)
	}
	if !found {
		t.Fatal("sell not found")
	}
	if updated.TotalAmount != 6.0 {
		t.Fatalf("want total 6.00, got %.2f", updated.TotalAmount)
	}

	got, err := sellRepo.Get(created.SellID)
	if err != nil {
		t.Fatal(err)
	}
	if got.PaymentMethod != "tarjeta" || got.TotalAmount != 6.0 {
		t.Fatalf("bad stored sell: %+v", got)
	}
	if len(got.Items) != 1 {
		t.Fatalf("items must survive a header-only update, got %d", len(got.Items))
	}
}

func TestSellDelete_RemovesItems(t *testing.T) {
	db := memdbAll(t)
	sellRepo := repos.NewSellRepo(db)
	svc := services.NewSellService(sellRepo, repos.NewEmployeeRepo(db))

	created, err := svc.Create(services.SellInput{
		PaymentMethod: "efectivo",
		Items:         []services.SellItemInput{{InventoryID: 1, Quantity: 1, UnitPrice: 1.50}},
	})
	if err != nil {
		t.Fatal(err)
	}

	found, err := sellRepo.Delete(created.SellID)
	if err != nil {
		t.Fatal(err)
	}
	if !found {
		t.Fatal("delete reported not found")
	}
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM sell_items WHERE sell_id = ?`, created.SellID); err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("want 0 orphan items, got %d", n)
	}

	found, err = sellRepo.Delete(created.SellID)
	if err != nil {
		t.Fatal(err)
	}
	if found {
		t.Fatal("second delete must report not found")
	}
}
