package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/erp-api/internal/application/analytics"
	"github.com/jhoicas/erp-api/internal/application/catalog"
	"github.com/jhoicas/erp-api/internal/application/costing"
	"github.com/jhoicas/erp-api/internal/application/finance"
	"github.com/jhoicas/erp-api/internal/application/inventory"
	"github.com/jhoicas/erp-api/internal/application/partners"
	"github.com/jhoicas/erp-api/internal/application/sales"
	infrafiscal "github.com/jhoicas/erp-api/internal/infrastructure/fiscal"
	infrapdf "github.com/jhoicas/erp-api/internal/infrastructure/pdf"
	"github.com/jhoicas/erp-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/erp-api/internal/interfaces/http"
	"github.com/jhoicas/erp-api/pkg/config"
	"github.com/jhoicas/erp-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.Component(logger.New(cfg.App.Env, cfg.Log.Level), "api")
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

	productRepo := postgres.NewProductRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	costRepo := postgres.NewProductionCostRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	expenseRepo := postgres.NewExpenseRepository(pool)
	companyRepo := postgres.NewCompanyRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)

	txRunner := postgres.NewTxRunner(pool)
	salesTxRunner := postgres.NewSalesTxRunner(pool)

	stockLedgerUC := inventory.NewStockLedgerUseCase(txRunner, movementRepo)
	costUC := costing.NewRegistryUseCase(costRepo, productRepo)
	saleUC := sales.NewUseCase(salesTxRunner, saleRepo, stockLedgerUC, costUC)

	// Comprobante PDF y exportación XML de la venta
	receiptGenerator := infrapdf.NewMarotoReceiptGenerator()
	xmlBuilder := infrafiscal.NewXMLBuilder()
	receiptUC := sales.NewReceiptUseCase(
		saleRepo, productRepo, customerRepo, companyRepo,
		receiptGenerator, xmlBuilder,
	)

	productUC := catalog.NewProductUseCase(productRepo)
	categoryUC := catalog.NewCategoryUseCase(categoryRepo)
	customerUC := partners.NewCustomerUseCase(customerRepo)
	supplierUC := partners.NewSupplierUseCase(supplierRepo)
	expenseUC := finance.NewExpenseUseCase(expenseRepo)
	companyUC := finance.NewCompanyUseCase(companyRepo)
	dashboardUC := analytics.NewDashboardUseCase(analyticsRepo, productRepo, movementRepo, saleRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    cfg.App.Name,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:   productUC,
		CategoryUC:  categoryUC,
		StockLedger: stockLedgerUC,
		CostUC:      costUC,
		SaleUC:      saleUC,
		ReceiptUC:   receiptUC,
		CustomerUC:  customerUC,
		SupplierUC:  supplierUC,
		ExpenseUC:   expenseUC,
		CompanyUC:   companyUC,
		DashboardUC: dashboardUC,
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
