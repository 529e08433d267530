package domain

// Alert labels for inventory rows, matching the stored-data language.
const (
	AlertExpired  = "vencido"
	AlertExpiring = "por_vencer"
	AlertLowStock = "bajo_stock"
	AlertOK       = "ok"
)

// InventoryAlert is the read-side classification of one inventory row.
// Expiry state wins the summary label; LowStock is reported independently
// so a batch can be both expiring and low on stock.
type InventoryAlert struct {
	Inventory
	Status          string `json:"status"`
	DaysUntilExpiry *int64 `json:"days_until_expiry"`
	LowStock        bool   `json:"low_stock"`
}
