package handlers

import (
	"botica/internal/config"
	"botica/internal/repos"
	"botica/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	ProductHandler   *ProductHandler
	InventoryHandler *InventoryHandler
	SupplierHandler  *SupplierHandler
	OrderHandler     *OrderHandler
	SellHandler      *SellHandler
	EmployeeHandler  *EmployeeHandler
	UserHandler      *UserHandler
	ReportHandler    *ReportHandler
	AuditHandler     *AuditHandler
	DashboardHandler *DashboardHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config) *Deps {
	prodRepo := repos.NewProductRepo(db)
	invRepo := repos.NewInventoryRepo(db)
	supRepo := repos.NewSupplierRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	sellRepo := repos.NewSellRepo(db)
	empRepo := repos.NewEmployeeRepo(db)
	userRepo := repos.NewUserRepo(db)

	invSvc := services.NewInventoryService(invRepo, cfg.ExpiryAlertDays, cfg.LowStockLevel)
	orderSvc := services.NewOrderService(orderRepo)
	sellSvc := services.NewSellService(sellRepo, empRepo)
	reportSvc := services.NewReportService(db)
	auditSvc := services.NewAuditService(invRepo)

	return &Deps{
		ProductHandler:   &ProductHandler{Products: prodRepo},
		InventoryHandler: &InventoryHandler{Inv: invRepo, Alerts: invSvc},
		SupplierHandler:  &SupplierHandler{Suppliers: supRepo},
		OrderHandler:     &OrderHandler{Orders: orderRepo, Svc: orderSvc},
		SellHandler:      &SellHandler{Sells: sellRepo, Svc: sellSvc},
		EmployeeHandler:  &EmployeeHandler{Employees: empRepo},
		UserHandler:      &UserHandler{Users: userRepo},
		ReportHandler:    &ReportHandler{Reports: reportSvc},
		AuditHandler:     &AuditHandler{Audit: auditSvc},
		DashboardHandler: &DashboardHandler{Products: prodRepo, Inv: invSvc, Reports: reportSvc},
	}
}
