package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/tu-usuario/farmacia-pro/internal/application/auth"
	"github.com/tu-usuario/farmacia-pro/internal/application/inventory"
	"github.com/tu-usuario/farmacia-pro/internal/application/sales"
	"github.com/tu-usuario/farmacia-pro/internal/application/usecase"
	"github.com/tu-usuario/farmacia-pro/internal/infrastructure/export"
	infrapdf "github.com/tu-usuario/farmacia-pro/internal/infrastructure/pdf"
	"github.com/tu-usuario/farmacia-pro/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/farmacia-pro/internal/interfaces/http"
	"github.com/tu-usuario/farmacia-pro/pkg/config"
	"github.com/tu-usuario/farmacia-pro/pkg/logger"
	"github.com/tu-usuario/farmacia-pro/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	medicineRepo := postgres.NewMedicineRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	prescriptionRepo := postgres.NewPrescriptionRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	alertRepo := postgres.NewAlertRepository(pool)
	movementRepo := postgres.NewInventoryMovementRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	serverMetrics := metrics.NewServerMetrics(cfg.App.Name)

	medicineUC := usecase.NewMedicineUseCase(medicineRepo)
	customerUC := usecase.NewCustomerUseCase(customerRepo)
	prescriptionUC := usecase.NewPrescriptionUseCase(prescriptionRepo, customerRepo, medicineRepo)
	alertUC := usecase.NewAlertUseCase(alertRepo)
	staffUC := usecase.NewStaffUseCase(userRepo)
	dashboardUC := usecase.NewDashboardUseCase(analyticsRepo, cfg.Alerts.ExpiryWindowDays)
	saleUC := sales.NewSaleUseCase(txRunner, medicineRepo, customerRepo, prescriptionRepo, saleRepo, userRepo, serverMetrics)
	inventoryUC := inventory.NewUseCase(txRunner, medicineRepo, movementRepo, alertRepo, cfg.Alerts.ExpiryWindowDays)
	authUC := auth.NewUseCase(userRepo, cfg.JWT)

	receipt := infrapdf.NewReceiptGenerator(cfg.App.Name)
	exporter := export.NewSalesXMLExporter(cfg.App.Name)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.MetricsMiddleware(serverMetrics))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Farmacia Pro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(serverMetrics.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		MedicineUC:     medicineUC,
		CustomerUC:     customerUC,
		PrescriptionUC: prescriptionUC,
		AlertUC:        alertUC,
		StaffUC:        staffUC,
		DashboardUC:    dashboardUC,
		SaleUC:         saleUC,
		InventoryUC:    inventoryUC,
		AuthUC:         authUC,
		Receipt:        receipt,
		Exporter:       exporter,
		JWTSecret:      cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
