package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/farmacia-pro/internal/application/auth"
	"github.com/tu-usuario/farmacia-pro/internal/application/inventory"
	"github.com/tu-usuario/farmacia-pro/internal/application/sales"
	"github.com/tu-usuario/farmacia-pro/internal/application/usecase"
	"github.com/tu-usuario/farmacia-pro/internal/domain/entity"
	"github.com/tu-usuario/farmacia-pro/internal/infrastructure/export"
	"github.com/tu-usuario/farmacia-pro/pkg/metrics"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	MedicineUC     *usecase.MedicineUseCase
	CustomerUC     *usecase.CustomerUseCase
	PrescriptionUC *usecase.PrescriptionUseCase
	AlertUC        *usecase.AlertUseCase
	StaffUC        *usecase.StaffUseCase
	DashboardUC    *usecase.DashboardUseCase
	SaleUC         *sales.SaleUseCase
	InventoryUC    *inventory.UseCase
	AuthUC         *auth.UseCase
	Receipt        sales.ReceiptPDFGenerator
	Exporter       *export.SalesXMLExporter
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Medicines (protegido)
	medicines := protected.Group("/medicines")
	medicineHandler := NewMedicineHandler(deps.MedicineUC)
	medicines.Post("/", medicineHandler.Create)
	medicines.Get("/", medicineHandler.List)
	medicines.Get("/low-stock", medicineHandler.LowStock)
	medicines.Get("/:id", medicineHandler.GetByID)
	medicines.Put("/:id", medicineHandler.Update)
	medicines.Delete("/:id", medicineHandler.Delete)

	// Customers (protegido)
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)

	// Prescriptions (protegido) — el despacho genera la venta
	prescriptions := protected.Group("/prescriptions")
	prescriptionHandler := NewPrescriptionHandler(deps.PrescriptionUC, deps.SaleUC)
	prescriptions.Post("/", prescriptionHandler.Create)
	prescriptions.Get("/", prescriptionHandler.List)
	prescriptions.Get("/:id", prescriptionHandler.GetByID)
	prescriptions.Post("/:id/cancel", prescriptionHandler.Cancel)
	prescriptions.Post("/:id/fill", prescriptionHandler.Fill)

	// Sales (protegido)
	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC, deps.Receipt)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Get("/:id/receipt", saleHandler.Receipt)

	// Inventory (protegido)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	invGroup.Post("/movements", inventoryHandler.RegisterMovement)
	invGroup.Get("/movements/:medicine_id", inventoryHandler.ListMovements)

	// Alerts (protegido; el barrido de vencimientos es solo admin)
	alerts := protected.Group("/alerts")
	alertHandler := NewAlertHandler(deps.AlertUC)
	alerts.Get("/", alertHandler.List)
	alerts.Get("/unread-count", alertHandler.CountUnread)
	alerts.Post("/read-all", alertHandler.MarkAllRead)
	alerts.Post("/expiry-scan", RequireRole(entity.RoleAdmin), inventoryHandler.ExpiryScan)
	alerts.Patch("/:id/read", alertHandler.MarkRead)

	// Staff (protegido; escritura solo admin)
	staff := protected.Group("/staff")
	staffHandler := NewStaffHandler(deps.StaffUC)
	staff.Get("/", staffHandler.List)
	staff.Get("/:id", staffHandler.GetByID)
	staff.Get("/:id/payroll", staffHandler.Payroll)
	staff.Put("/:id", RequireRole(entity.RoleAdmin), staffHandler.Update)

	// Dashboard y reportes (protegido)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.SaleUC, deps.Exporter)
	protected.Get("/dashboard/summary", dashboardHandler.Summary)
	reports := protected.Group("/reports")
	reports.Get("/sales", dashboardHandler.SalesReport)
	reports.Get("/sales/export", dashboardHandler.ExportSales)
}

// MetricsMiddleware cuenta requests y mide latencia por ruta y método.
func MetricsMiddleware(m *metrics.ServerMetrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		route := c.Route().Path
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}
		m.Requests.WithLabelValues(route, c.Method(), strconv.Itoa(status)).Inc()
		m.LatencyMS.WithLabelValues(route, c.Method()).
			Observe(float64(time.Since(start).Milliseconds()))
		return err
	}
}
