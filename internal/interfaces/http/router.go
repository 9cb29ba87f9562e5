package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/stokespro/cake-crm-sub002/internal/application/auth"
	"github.com/stokespro/cake-crm-sub002/internal/application/demand"
	"github.com/stokespro/cake-crm-sub002/internal/application/ledger"
	"github.com/stokespro/cake-crm-sub002/internal/application/packaging"
	"github.com/stokespro/cake-crm-sub002/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	LedgerUC   *ledger.LedgerUseCase
	PipelineUC *packaging.PipelineUseCase
	DemandUC   *demand.DemandUseCase
	SheetUC    *packaging.ProductionSheetUseCase
	AuthUC     *auth.AuthUseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Get("/auth/me", authHandler.Me)

	// Materials: el ledger de empaque (protegido)
	materials := protected.Group("/materials")
	materialHandler := NewMaterialHandler(deps.LedgerUC)
	materials.Get("/transactions", materialHandler.ListTransactions)
	materials.Post("/", materialHandler.Create)
	materials.Get("/", materialHandler.List)
	materials.Get("/:id", materialHandler.GetByID)
	materials.Put("/:id", materialHandler.Update)
	materials.Delete("/:id", RequireRole(entity.RoleAdmin), materialHandler.Delete)
	materials.Post("/:id/restock", materialHandler.Restock)
	materials.Post("/:id/use", materialHandler.Use)
	materials.Post("/:id/adjust", materialHandler.Adjust)

	// Packaging: tablero y baldes (protegido)
	pkgGroup := protected.Group("/packaging")
	packagingHandler := NewPackagingHandler(deps.PipelineUC)
	pkgGroup.Post("/tasks", packagingHandler.ScheduleTask)
	pkgGroup.Post("/tasks/:id/advance", packagingHandler.AdvanceTask)
	pkgGroup.Post("/tasks/:id/revert", packagingHandler.RevertTask)
	pkgGroup.Post("/staged", packagingHandler.AddStaged)
	pkgGroup.Get("/inventory/:skuID", packagingHandler.GetInventory)
	pkgGroup.Put("/inventory/:skuID", RequireRole(entity.RoleAdmin, entity.RoleProduction), packagingHandler.OverrideInventory)

	// Demand: proyecciones de solo lectura (protegido)
	demandGroup := protected.Group("/demand")
	demandHandler := NewDemandHandler(deps.DemandUC, deps.SheetUC)
	demandGroup.Get("/summary", demandHandler.GetDemandSummary)
	demandGroup.Get("/inventory", demandHandler.GetInventoryLevels)
	demandGroup.Get("/tasks", demandHandler.GetPackagingTasks)
	demandGroup.Get("/orders", demandHandler.GetConfirmedOrders)

	// La hoja de producción cuelga del tablero de empaque aunque el handler
	// viva con las proyecciones (lee de ellas).
	pkgGroup.Get("/production-sheet", demandHandler.DownloadProductionSheet)
}
