package http

import (
	"fmt"
	"os"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
)

// Docs monta Swagger UI en /docs sobre el documento filePath.
// Devuelve error si el archivo no existe (swagger.New entraría en pánico).
func Docs(app *fiber.App, filePath, title string) error {
	if filePath == "" {
		return fmt.Errorf("swagger: ruta del documento vacía")
	}
	if _, err := os.Stat(filePath); err != nil {
		return fmt.Errorf("swagger: %w", err)
	}
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: filePath,
		Path:     "docs",
		Title:    title,
	}))
	return nil
}
