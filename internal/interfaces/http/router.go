package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Traslados-api/internal/application/auth"
	"github.com/jhoicas/Traslados-api/internal/application/transfer"
	"github.com/jhoicas/Traslados-api/internal/application/usecase"
	"github.com/jhoicas/Traslados-api/internal/application/waybill"
	"github.com/jhoicas/Traslados-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	BranchUC    *usecase.BranchUseCase
	WarehouseUC *usecase.WarehouseUseCase
	MaterialUC  *usecase.MaterialUseCase
	StockUC     *usecase.StockUseCase
	WorkflowUC  *transfer.WorkflowUseCase
	WaybillUC   *waybill.WaybillUseCase
	JWTSecret   string
}

// Router registra las rutas de la API con su RBAC:
//   - crear/asignar traslados: admin, operator
//   - despachar/recibir: admin, storekeeper
//   - lecturas: admin, operator, manager (existencias también storekeeper)
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	readRoles := []string{entity.RoleAdmin, entity.RoleOperator, entity.RoleManager}
	stockRoles := []string{entity.RoleAdmin, entity.RoleOperator, entity.RoleManager, entity.RoleStorekeeper}

	// Branches (protegido)
	branches := protected.Group("/branches")
	branchHandler := NewBranchHandler(deps.BranchUC)
	branches.Post("/", RequireRole(entity.RoleAdmin), branchHandler.Create)
	branches.Get("/", RequireRole(readRoles...), branchHandler.List)
	branches.Get("/:id", RequireRole(readRoles...), branchHandler.GetByID)

	// Warehouses (protegido)
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", RequireRole(entity.RoleAdmin), warehouseHandler.Create)
	warehouses.Get("/", RequireRole(readRoles...), warehouseHandler.List)
	warehouses.Get("/:id", RequireRole(readRoles...), warehouseHandler.GetByID)

	// Materials (protegido)
	materials := protected.Group("/materials")
	materialHandler := NewMaterialHandler(deps.MaterialUC)
	materials.Post("/", RequireRole(entity.RoleAdmin, entity.RoleOperator), materialHandler.Create)
	materials.Get("/", RequireRole(readRoles...), materialHandler.List)
	materials.Get("/:id", RequireRole(readRoles...), materialHandler.GetByID)

	// Stocks (protegido, solo lectura)
	stocks := protected.Group("/stocks")
	stockHandler := NewStockHandler(deps.StockUC)
	stocks.Get("/", RequireRole(stockRoles...), stockHandler.List)
	stocks.Get("/:warehouse_id/:material_id", RequireRole(stockRoles...), stockHandler.Get)

	// Transfers (protegido, workflow)
	transfers := protected.Group("/transfers")
	transferHandler := NewTransferHandler(deps.WorkflowUC, deps.WaybillUC)
	transfers.Post("/", RequireRole(entity.RoleAdmin, entity.RoleOperator), transferHandler.Create)
	transfers.Get("/", RequireRole(readRoles...), transferHandler.List)
	transfers.Get("/:id", RequireRole(readRoles...), transferHandler.GetByID)
	transfers.Post("/:id/assign", RequireRole(entity.RoleAdmin, entity.RoleOperator), transferHandler.Assign)
	transfers.Post("/:id/dispatch", RequireRole(entity.RoleAdmin, entity.RoleStorekeeper), transferHandler.Dispatch)
	transfers.Post("/:id/receive", RequireRole(entity.RoleAdmin, entity.RoleStorekeeper), transferHandler.Receive)
	transfers.Get("/:id/events", RequireRole(readRoles...), transferHandler.ListEvents)
	transfers.Get("/:id/waybill", RequireRole(stockRoles...), transferHandler.DownloadWaybill)
}
