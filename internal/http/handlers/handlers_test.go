package handlers_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"
	"github.com/jmoiron/sqlx"

	"botica/internal/config"
	"botica/internal/http/handlers"
	"botica/internal/repos"
)

// Minimal app wired the way main does it, on a seeded in-memory DB.
func newTestApp(t *testing.T) (*fiber.App, *sqlx.DB) {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	cfg := config.Config{DBDSN: ":memory:", ExpiryAlertDays: 40, LowStockLevel: 10}

	engine := html.New("../../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine})
	app.Server().MaxRequestBodySize = 1 << 20
	app.Use(requestid.New())

	deps := handlers.NewDeps(db, cfg)
	app.Get("/", deps.DashboardHandler.Home)
	api := app.Group("/api")
	api.Get("/products", deps.ProductHandler.List)
	api.Get("/products/:id", deps.ProductHandler.Get)
	api.Post("/products", deps.ProductHandler.Create)
	api.Put("/products/:id", deps.ProductHandler.Update)
	api.Delete("/products/:id", deps.ProductHandler.Delete)
	api.Get("/inventory/alerts", deps.InventoryHandler.AlertList)
	api.Get("/inventory", deps.InventoryHandler.List)
	api.Post("/inventory", deps.InventoryHandler.Create)
	api.Get("/suppliers", deps.SupplierHandler.List)
	api.Post("/suppliers", deps.SupplierHandler.Create)
	api.Post("/orders", deps.OrderHandler.Create)
	api.Get("/orders/:id", deps.OrderHandler.Get)
	api.Post("/sells", deps.SellHandler.Create)
	api.Get("/sells/:id", deps.SellHandler.Get)
	api.Post("/employees", deps.EmployeeHandler.Create)
	api.Post("/users", deps.UserHandler.Create)
	api.Get("/users", deps.UserHandler.List)
	api.Get("/reports/sales/daily", deps.ReportHandler.DailySales)
	api.Get("/reports/sales", deps.ReportHandler.SalesReport)
	api.Post("/audit/sessions", deps.AuditHandler.Start)
	api.Get("/audit/sessions/:id", deps.AuditHandler.Progress)
	api.Post("/audit/sessions/:id/verify", deps.AuditHandler.Verify)
	api.Post("/audit/sessions/:id/finish", deps.AuditHandler.Finish)
	api.Delete("/audit/sessions/:id", deps.AuditHandler.Cancel)
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(404).JSON(fiber.Map{"error": "Recurso no encontrado"})
	})
	return app, db
}

func jsonReq(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		t.Fatalf("bad json %q: %v", raw, err)
	}
}

func TestProductCRUD(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(jsonReq("POST", "/api/products", `{"name":"Loratadina 10mg","category":"antialérgicos"}`))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 201 {
		t.Fatalf("create: want 201, got %d", resp.StatusCode)
	}
	var created struct {
		ProductID int64 `json:"product_id"`
	}
	decode(t, resp, &created)
	if created.ProductID == 0 {
		t.Fatal("no product id")
	}

	resp, _ = app.Test(jsonReq("POST", "/api/products", `{"name":""}`))
	if resp.StatusCode != 400 {
		t.Fatalf("empty name: want 400, got %d", resp.StatusCode)
	}
	resp, _ = app.Test(jsonReq("POST", "/api/products", `{not json`))
	if resp.StatusCode != 400 {
		t.Fatalf("bad json: want 400, got %d", resp.StatusCode)
	}

	resp, _ = app.Test(httptest.NewRequest("GET", "/api/products/999", nil))
	if resp.StatusCode != 404 {
		t.Fatalf("missing id: want 404, got %d", resp.StatusCode)
	}
	resp, _ = app.Test(httptest.NewRequest("GET", "/api/products/abc", nil))
	if resp.StatusCode != 400 {
		t.Fatalf("non-numeric id: want 400, got %d", resp.StatusCode)
	}

	resp, _ = app.Test(httptest.NewRequest("DELETE", "/api/products/999", nil))
	if resp.StatusCode != 404 {
		t.Fatalf("delete missing: want 404, got %d", resp.StatusCode)
	}
}

func TestSupplierDuplicateEmail(t *testing.T) {
	app, _ := newTestApp(t)

	// seed already carries ventas@medsur.test
	resp, err := app.Test(jsonReq("POST", "/api/suppliers", `{"name":"Otra Distribuidora","email":"VENTAS@medsur.test"}`))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 400 {
		t.Fatalf("want 400, got %d", resp.StatusCode)
	}
	var body struct {
		Error string `json:"error"`
	}
	decode(t, resp, &body)
	if body.Error != "El correo electrónico ya está registrado" {
		t.Fatalf("bad message: %q", body.Error)
	}

	resp, _ = app.Test(jsonReq("POST", "/api/suppliers", `{"name":"Otra","email":"no-es-correo"}`))
	if resp.StatusCode != 400 {
		t.Fatalf("bad email: want 400, got %d", resp.StatusCode)
	}
}

func TestSellEndpointInsufficientStock(t *testing.T) {
	app, db := newTestApp(t)

	// seeded batch 3 holds 8 units
	resp, err := app.Test(jsonReq("POST", "/api/sells",
		`{"payment_method":"efectivo","items":[{"inventory_id":3,"quantity":999,"unit_price":1.80}]}`))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 400 {
		t.Fatalf("want 400, got %d", resp.StatusCode)
	}
	var body struct {
		Error string `json:"error"`
	}
	decode(t, resp, &body)
	if body.Error != "Stock insuficiente para completar la venta" {
		t.Fatalf("bad message: %q", body.Error)
	}

	var qty int64
	if err := db.Get(&qty, `SELECT quantity_available FROM inventory WHERE inventory_id = 3`); err != nil {
		t.Fatal(err)
	}
	if qty != 8 {
		t.Fatalf("stock must be untouched, got %d", qty)
	}
}

func TestSellEndpointHappyPath(t *testing.T) {
	app, db := newTestApp(t)

	resp, err := app.Test(jsonReq("POST", "/api/sells",
		`{"customer_name":"Ana","payment_method":"tarjeta","items":[{"inventory_id":1,"quantity":2,"unit_price":1.50}]}`))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 201 {
		t.Fatalf("want 201, got %d", resp.StatusCode)
	}
	var sell struct {
		SellID      int64   `json:"sell_id"`
		EmployeeID  *int64  `json:"employee_id"`
		TotalAmount float64 `json:"total_amount"`
	}
	decode(t, resp, &sell)
	if sell.TotalAmount != 3.0 {
		t.Fatalf("want total 3.00, got %.2f", sell.TotalAmount)
	}
	if sell.EmployeeID == nil {
		t.Fatal("default employee must be assigned")
	}

	var qty int64
	if err := db.Get(&qty, `SELECT quantity_available FROM inventory WHERE inventory_id = 1`); err != nil {
		t.Fatal(err)
	}
	if qty != 118 {
		t.Fatalf("want 118 after decrement, got %d", qty)
	}
}

func TestOrderEndpoint(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(jsonReq("POST", "/api/orders",
		`{"supplier_id":1,"items":[{"product_id":1,"quantity":10,"unit_price":0.80}],"total_amount":1.00}`))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 201 {
		t.Fatalf("want 201, got %d", resp.StatusCode)
	}
	var order struct {
		OrderID     int64   `json:"order_id"`
		Status      string  `json:"status"`
		TotalAmount float64 `json:"total_amount"`
	}
	decode(t, resp, &order)
	if order.Status != "pendiente" {
		t.Fatalf("want pendiente, got %q", order.Status)
	}
	// client total is ignored
	if order.TotalAmount != 8.0 {
		t.Fatalf("want recomputed 8.00, got %.2f", order.TotalAmount)
	}

	resp, _ = app.Test(jsonReq("POST", "/api/orders", `{"supplier_id":1,"items":[]}`))
	if resp.StatusCode != 400 {
		t.Fatalf("no items: want 400, got %d", resp.StatusCode)
	}
}

func TestInventoryAlertsEndpoint(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/inventory/alerts", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}
	var alerts []struct {
		InventoryID int64  `json:"inventory_id"`
		Status      string `json:"status"`
		LowStock    bool   `json:"low_stock"`
	}
	decode(t, resp, &alerts)
	if len(alerts) != 4 {
		t.Fatalf("want 4 seeded batches, got %d", len(alerts))
	}
	byID := map[int64]string{}
	lowByID := map[int64]bool{}
	for _, a := range alerts {
		byID[a.InventoryID] = a.Status
		lowByID[a.InventoryID] = a.LowStock
	}
	// seed: batch 2 expires in 25 days, batch 3 expired with 8 units left
	if byID[2] != "por_vencer" {
		t.Fatalf("batch 2: want por_vencer, got %q", byID[2])
	}
	if byID[3] != "vencido" || !lowByID[3] {
		t.Fatalf("batch 3: want vencido low-stock, got %q low=%v", byID[3], lowByID[3])
	}
	if byID[1] != "ok" {
		t.Fatalf("batch 1: want ok, got %q", byID[1])
	}
}

func TestUserEndpointHidesHash(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(jsonReq("POST", "/api/users",
		`{"first_name":"Rosa","last_name":"Mena","email":"rosa@botica.test","password":"Secreta.123"}`))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 201 {
		t.Fatalf("want 201, got %d", resp.StatusCode)
	}
	raw, _ := io.ReadAll(resp.Body)
	if strings.Contains(string(raw), "password") || strings.Contains(string(raw), "$2a$") {
		t.Fatalf("hash leaked: %s", raw)
	}

	// seeded admin makes this a duplicate
	resp, _ = app.Test(jsonReq("POST", "/api/users",
		`{"first_name":"Otro","last_name":"Admin","email":"admin@botica.test","password":"Secreta.123"}`))
	if resp.StatusCode != 400 {
		t.Fatalf("duplicate email: want 400, got %d", resp.StatusCode)
	}
}

func TestReportEndpoints(t *testing.T) {
	app, _ := newTestApp(t)

	// ring up one sale today
	resp, err := app.Test(jsonReq("POST", "/api/sells",
		`{"payment_method":"efectivo","items":[{"inventory_id":1,"quantity":2,"unit_price":1.50}]}`))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 201 {
		t.Fatalf("sell: want 201, got %d", resp.StatusCode)
	}

	resp, _ = app.Test(httptest.NewRequest("GET", "/api/reports/sales/daily", nil))
	if resp.StatusCode != 200 {
		t.Fatalf("daily: want 200, got %d", resp.StatusCode)
	}
	var totals struct {
		Revenue    float64 `json:"revenue"`
		SalesCount int64   `json:"sales_count"`
	}
	decode(t, resp, &totals)
	if totals.Revenue != 3.0 || totals.SalesCount != 1 {
		t.Fatalf("bad daily totals: %+v", totals)
	}

	resp, _ = app.Test(httptest.NewRequest("GET", "/api/reports/sales?start_date=chau", nil))
	if resp.StatusCode != 400 {
		t.Fatalf("bad start_date: want 400, got %d", resp.StatusCode)
	}
}

func TestAuditSessionEndpoints(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(jsonReq("POST", "/api/audit/sessions", ""))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 201 {
		t.Fatalf("start: want 201, got %d", resp.StatusCode)
	}
	var started struct {
		SessionID string `json:"session_id"`
	}
	decode(t, resp, &started)
	if started.SessionID == "" {
		t.Fatal("no session id")
	}

	resp, _ = app.Test(jsonReq("POST", "/api/audit/sessions/"+started.SessionID+"/verify",
		`{"inventory_id":1,"actual_quantity":118,"verified_by":"Carmen"}`))
	if resp.StatusCode != 200 {
		t.Fatalf("verify: want 200, got %d", resp.StatusCode)
	}

	resp, _ = app.Test(jsonReq("POST", "/api/audit/sessions/"+started.SessionID+"/verify",
		`{"inventory_id":1,"actual_quantity":-4}`))
	if resp.StatusCode != 400 {
		t.Fatalf("negative count: want 400, got %d", resp.StatusCode)
	}

	resp, _ = app.Test(httptest.NewRequest("GET", "/api/audit/sessions/"+started.SessionID, nil))
	if resp.StatusCode != 200 {
		t.Fatalf("progress: want 200, got %d", resp.StatusCode)
	}

	resp, _ = app.Test(jsonReq("POST", "/api/audit/sessions/"+started.SessionID+"/finish", ""))
	if resp.StatusCode != 200 {
		t.Fatalf("finish: want 200, got %d", resp.StatusCode)
	}
	var report struct {
		VerifiedItems int `json:"verified_items"`
		Rows          []struct {
			InventoryID    int64 `json:"inventory_id"`
			SystemQuantity int64 `json:"system_quantity"`
			Difference     int64 `json:"difference"`
		} `json:"rows"`
	}
	decode(t, resp, &report)
	if report.VerifiedItems != 1 || len(report.Rows) != 1 {
		t.Fatalf("bad report: %+v", report)
	}
	if report.Rows[0].SystemQuantity != 120 || report.Rows[0].Difference != -2 {
		t.Fatalf("bad difference: %+v", report.Rows[0])
	}

	// finished session is gone
	resp, _ = app.Test(httptest.NewRequest("GET", "/api/audit/sessions/"+started.SessionID, nil))
	if resp.StatusCode != 404 {
		t.Fatalf("after finish: want 404, got %d", resp.StatusCode)
	}
	resp, _ = app.Test(httptest.NewRequest("DELETE", "/api/audit/sessions/no-such", nil))
	if resp.StatusCode != 404 {
		t.Fatalf("cancel unknown: want 404, got %d", resp.StatusCode)
	}
}

func TestDashboardRenders(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}
	raw, _ := io.ReadAll(resp.Body)
	body := string(raw)
	if !strings.Contains(body, "Panel de control") || !strings.Contains(body, "Vencidos") {
		t.Fatalf("unexpected dashboard body: %.200s", body)
	}
}

func TestNotFoundFallback(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/nada/por/aqui", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 404 {
		t.Fatalf("want 404, got %d", resp.StatusCode)
	}
}
