package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-consola/internal/application/auth"
	"github.com/jhoicas/inventario-consola/internal/application/editor"
	"github.com/jhoicas/inventario-consola/internal/application/navigation"
	"github.com/jhoicas/inventario-consola/internal/domain/access"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	Navigation *navigation.Service
	Editors    *editor.Service
	Policy     *access.Policy
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	v := newRequestValidator()
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, v)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token y sesión vigente)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.AuthUC))
	protected.Post("/auth/logout", authHandler.Logout)
	protected.Get("/auth/me", authHandler.Me)

	// Navegación
	navHandler := NewNavHandler(deps.Navigation)
	protected.Get("/nav", navHandler.Menu)
	protected.Post("/nav/:page", navHandler.Navigate)

	// Editores de venta/compra: el modo concreto se verifica al abrir
	editors := protected.Group("/editors", RequirePage(deps.Policy, "sales", "purchases"))
	editorHandler := NewEditorHandler(deps.Editors, v)
	editors.Post("/", editorHandler.Open)
	editors.Get("/:id", editorHandler.Get)
	editors.Delete("/:id", editorHandler.Cancel)
	editors.Post("/:id/lines", editorHandler.AddLine)
	editors.Delete("/:id/lines/:index", editorHandler.RemoveLine)
	editors.Put("/:id/lines/:index/product", editorHandler.SetProduct)
	editors.Put("/:id/lines/:index/quantity", editorHandler.SetQuantity)
	editors.Put("/:id/lines/:index/price", editorHandler.SetPrice)
	editors.Put("/:id/counterparty", editorHandler.SetCounterparty)
	editors.Put("/:id/receipt-type", editorHandler.SetReceiptType)
	editors.Get("/:id/validation", editorHandler.Validate)
	editors.Post("/:id/submit", editorHandler.Submit)
	editors.Get("/:id/preview.pdf", editorHandler.Preview)
}
