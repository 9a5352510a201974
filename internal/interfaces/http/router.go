package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/kirana-pos/internal/application/alerts"
	"github.com/jhoicas/kirana-pos/internal/application/auth"
	"github.com/jhoicas/kirana-pos/internal/application/billing"
	"github.com/jhoicas/kirana-pos/internal/application/daily"
	"github.com/jhoicas/kirana-pos/internal/application/inventory"
	"github.com/jhoicas/kirana-pos/internal/application/ordering"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	CatalogUC *inventory.CatalogUseCase
	OrderUC   *ordering.OrderEntryUseCase
	BillQuery *billing.BillQueryUseCase
	Receipt   *billing.ReceiptUseCase
	DailyUC   *daily.DailyOpsUseCase
	AlertsUC  *alerts.AlertsUseCase
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Get("/auth/me", authHandler.Me)

	// Catálogo
	inventoryHandler := NewInventoryHandler(deps.CatalogUC)
	inv := protected.Group("/inventory")
	inv.Get("/", inventoryHandler.List)
	inv.Post("/", inventoryHandler.Create)
	inv.Get("/:id", inventoryHandler.Get)
	inv.Put("/:id", inventoryHandler.Update)
	inv.Delete("/:id", inventoryHandler.Delete)
	inv.Post("/:id/restock", inventoryHandler.Restock)

	// Toma de pedidos
	orderHandler := NewOrderHandler(deps.OrderUC)
	protected.Post("/orders/parse", orderHandler.Parse)
	carts := protected.Group("/carts")
	carts.Post("/", orderHandler.OpenCart)
	carts.Get("/:id", orderHandler.GetCart)
	carts.Post("/:id/items", orderHandler.AddItem)
	carts.Post("/:id/custom-lines", orderHandler.AddCustomLine)
	carts.Patch("/:id/items/:entryId", orderHandler.UpdateQuantity)
	carts.Delete("/:id/items/:entryId", orderHandler.RemoveItem)
	carts.Post("/:id/checkout", orderHandler.Checkout)

	// Cuentas (export antes de /:id)
	billHandler := NewBillHandler(deps.BillQuery, deps.Receipt)
	bills := protected.Group("/bills")
	bills.Get("/", billHandler.List)
	bills.Get("/export", billHandler.Export)
	bills.Get("/:id", billHandler.Get)
	bills.Get("/:id/receipt", billHandler.Receipt)

	// Jornada de caja
	dailyHandler := NewDailyHandler(deps.DailyUC)
	day := protected.Group("/daily-operations")
	day.Get("/today", dailyHandler.Today)
	day.Post("/start", dailyHandler.Start)
	day.Put("/end", dailyHandler.End)
	day.Get("/past", dailyHandler.Past)

	// Avisos
	protected.Get("/notifications", NewAlertHandler(deps.AlertsUC).List)
}
