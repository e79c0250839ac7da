package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/dgii-ecf/internal/application/auth"
	"github.com/tu-usuario/dgii-ecf/internal/application/consulta"
	"github.com/tu-usuario/dgii-ecf/internal/application/recepcion"
	"github.com/tu-usuario/dgii-ecf/internal/application/secuencia"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	RecepcionUC *recepcion.UseCase
	ConsultaUC  *consulta.UseCase
	SecuenciaUC *secuencia.UseCase
	AuthUC      *auth.UseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Autenticación (público): semilla + canje por token
	authGroup := api.Group("/autenticacion")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Get("/semilla", authHandler.Semilla)
	authGroup.Post("/validarsemilla", authHandler.ValidarSemilla)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Recepción de e-CF (protegido)
	recepcionHandler := NewRecepcionHandler(deps.RecepcionUC)
	protected.Post("/facturaselectronicas", recepcionHandler.Recibir)
	protected.Post("/recepcion/ecf", recepcionHandler.Recibir)

	// Consultas (protegido)
	consultaHandler := NewConsultaHandler(deps.ConsultaUC)
	consultas := protected.Group("/consultas")
	consultas.Get("/estado", consultaHandler.Estado)
	consultas.Get("/acuse/:trackId", consultaHandler.Acuse)
	consultas.Get("/acuse/:trackId/pdf", consultaHandler.AcusePDF)
	protected.Get("/trackids/consulta", consultaHandler.TrackIDs)

	// Secuencias y operaciones administrativas (protegido)
	secuenciaHandler := NewSecuenciaHandler(deps.SecuenciaUC)
	protected.Post("/operaciones/anularrango", secuenciaHandler.AnularRango)
	secuencias := protected.Group("/secuencias")
	secuencias.Get("/", secuenciaHandler.Listar)
	secuencias.Post("/:id/reactivar", secuenciaHandler.Reactivar)
	protected.Post("/comprobantes/:trackId/procesar", secuenciaHandler.Procesar)
}
