package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/bodega-api/internal/application/auth"
	"github.com/tu-usuario/bodega-api/internal/application/inventory"
	"github.com/tu-usuario/bodega-api/internal/application/report"
	"github.com/tu-usuario/bodega-api/internal/application/usecase"
	"github.com/tu-usuario/bodega-api/internal/domain/entity"
	"github.com/tu-usuario/bodega-api/internal/infrastructure/cache"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	WarehouseUC   *usecase.WarehouseUseCase
	ProductUC     *usecase.ProductUseCase
	CustomerUC    *usecase.CustomerUseCase
	Processor     *inventory.TransactionProcessor
	StockQuery    *inventory.StockQueryUseCase
	TxQuery       *inventory.TransactionQueryUseCase
	ReportUC      *report.StockReportUseCase
	Redis         *cache.RedisClient // nil si Redis está desactivado
	JWTSecret     string
	LoginRateMax  int64
	LoginRateSpan time.Duration
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	adminOnly := RequireRole(entity.RoleAdmin)
	staffOrAdmin := RequireRole(entity.RoleAdmin, entity.RoleStaff)

	// Auth (público; login con rate limit por IP)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", RateLimit(deps.Redis, deps.LoginRateMax, deps.LoginRateSpan), authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Warehouses: lectura autenticada, mutación solo admin
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Post("/", adminOnly, warehouseHandler.Create)
	warehouses.Put("/:id", adminOnly, warehouseHandler.Update)
	warehouses.Delete("/:id", adminOnly, warehouseHandler.Delete)
	warehouses.Post("/:id/users", adminOnly, warehouseHandler.AssignUser)
	warehouses.Delete("/:id/users/:user_id", adminOnly, warehouseHandler.RemoveUser)

	// Products: lectura autenticada, mutación solo admin
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", adminOnly, productHandler.Create)
	products.Put("/:id", adminOnly, productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Delete)

	// Customers: staff o admin
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Post("/", staffOrAdmin, customerHandler.Create)
	customers.Put("/:id", staffOrAdmin, customerHandler.Update)

	// Stock (consultas de saldos)
	stock := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.StockQuery)
	stock.Get("/", stockHandler.ListBalances)
	stock.Get("/critical", stockHandler.ListCritical)
	stock.Get("/summary", stockHandler.Summary)

	// Transactions (núcleo del libro de stock)
	transactions := protected.Group("/transactions")
	transactionHandler := NewTransactionHandler(deps.Processor, deps.TxQuery)
	transactions.Get("/", transactionHandler.List)
	transactions.Get("/:id", transactionHandler.GetByID)
	transactions.Post("/", staffOrAdmin, transactionHandler.Create)

	// Reports (solo admin)
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/stock", adminOnly, reportHandler.StockReport)
}
