package domain

// Order lifecycle and sell payment enums, as stored.
const (
	OrderStatusPending  = "pendiente"
	OrderStatusApproved = "aprobado"
	OrderStatusReceived = "recibido"
	OrderStatusCanceled = "cancelado"
)

const (
	PaymentCash      = "efectivo"
	PaymentCard      = "tarjeta"
	PaymentInsurance = "seguro"
	PaymentTransfer  = "transferencia"
)

type Product struct {
	ProductID   int64   `db:"product_id" json:"product_id"`
	Name        string  `db:"name" json:"name"`
	Description *string `db:"description" json:"description"`
	Category    *string `db:"category" json:"category"`
	Type        *string `db:"type" json:"type"`
	DosageForm  *string `db:"dosage_form" json:"dosage_form"`
	Unit        *string `db:"unit" json:"unit"`
	Barcode     *string `db:"barcode" json:"barcode"`
	Status      bool    `db:"status" json:"status"`
}

// Inventory is one batch of a product with its own expiry and stock count.
type Inventory struct {
	InventoryID       int64   `db:"inventory_id" json:"inventory_id"`
	ProductID         int64   `db:"product_id" json:"product_id"`
	BatchNumber       *string `db:"batch_number" json:"batch_number"`
	ExpiryDate        *string `db:"expiry_date" json:"expiry_date"`
	QuantityAvailable int64   `db:"quantity_available" json:"quantity_available"`
	Location          *string `db:"location" json:"location"`
	PurchasePrice     float64 `db:"purchase_price" json:"purchase_price"`
	SalePrice         float64 `db:"sale_price" json:"sale_price"`

	// Populated by joined queries.
	ProductName        *string `db:"product_name" json:"product_name,omitempty"`
	ProductDescription *string `db:"product_description" json:"product_description,omitempty"`
	ProductCategory    *string `db:"product_category" json:"product_category,omitempty"`
}

type Supplier struct {
	SupplierID  int64   `db:"supplier_id" json:"supplier_id"`
	Name        string  `db:"name" json:"name"`
	ContactName *string `db:"contact_name" json:"contact_name"`
	Phone       *string `db:"phone" json:"phone"`
	Email       *string `db:"email" json:"email"`
	Address     *string `db:"address" json:"address"`
}

type Order struct {
	OrderID     int64   `db:"order_id" json:"order_id"`
	SupplierID  int64   `db:"supplier_id" json:"supplier_id"`
	OrderDate   string  `db:"order_date" json:"order_date"`
	Status      string  `db:"status" json:"status"`
	TotalAmount float64 `db:"total_amount" json:"total_amount"`

	SupplierName *string     `db:"supplier_name" json:"supplier_name,omitempty"`
	Items        []OrderItem `json:"items,omitempty"`
}

type OrderItem struct {
	OrderItemID int64   `db:"order_item_id" json:"order_item_id"`
	OrderID     int64   `db:"order_id" json:"order_id"`
	ProductID   int64   `db:"product_id" json:"product_id"`
	Quantity    int64   `db:"quantity" json:"quantity"`
	UnitPrice   float64 `db:"unit_price" json:"unit_price"`

	ProductName *string `db:"product_name" json:"product_name,omitempty"`
}

type Sell struct {
	SellID        int64   `db:"sell_id" json:"sell_id"`
	CustomerName  *string `db:"customer_name" json:"customer_name"`
	EmployeeID    *int64  `db:"employee_id" json:"employee_id"`
	SellDate      string  `db:"sell_date" json:"sell_date"`
	TotalAmount   float64 `db:"total_amount" json:"total_amount"`
	PaymentMethod string  `db:"payment_method" json:"payment_method"`

	Items []SellItem `json:"items,omitempty"`
}

type SellItem struct {
	SellItemID  int64   `db:"sell_item_id" json:"sell_item_id"`
	SellID      int64   `db:"sell_id" json:"sell_id"`
	InventoryID int64   `db:"inventory_id" json:"inventory_id"`
	Quantity    int64   `db:"quantity" json:"quantity"`
	UnitPrice   float64 `db:"unit_price" json:"unit_price"`
	Subtotal    float64 `db:"subtotal" json:"subtotal"`
}

type Employee struct {
	EmployeeID int64   `db:"employee_id" json:"employee_id"`
	FirstName  string  `db:"first_name" json:"first_name"`
	LastName   string  `db:"last_name" json:"last_name"`
	Role       *string `db:"role" json:"role"`
	Email      *string `db:"email" json:"email"`
	Phone      *string `db:"phone" json:"phone"`
}

type User struct {
	UserID    int64   `db:"user_id" json:"user_id"`
	FirstName string  `db:"first_name" json:"first_name"`
	LastName  string  `db:"last_name" json:"last_name"`
	Email     string  `db:"email" json:"email"`
	Hash      *string `db:"password_hash" json:"-"`
}
