package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/tu-usuario/dgii-ecf/internal/application/auth"
	"github.com/tu-usuario/dgii-ecf/internal/application/consulta"
	"github.com/tu-usuario/dgii-ecf/internal/application/recepcion"
	"github.com/tu-usuario/dgii-ecf/internal/application/secuencia"
	infrapdf "github.com/tu-usuario/dgii-ecf/internal/infrastructure/pdf"
	"github.com/tu-usuario/dgii-ecf/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/dgii-ecf/internal/interfaces/http"
	"github.com/tu-usuario/dgii-ecf/pkg/config"
	"github.com/tu-usuario/dgii-ecf/pkg/logger"
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
		Str("ambiente", cfg.DGII.Ambiente).
		Msg("iniciando servicio de recepción e-CF")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	comprobanteRepo := postgres.NewComprobanteRepository(pool)
	secuenciaRepo := postgres.NewSecuenciaRepository(pool)
	contribuyenteRepo := postgres.NewContribuyenteRepository(pool)
	logRepo := postgres.NewLogTransaccionRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	recepcionUC := recepcion.NewUseCase(txRunner, comprobanteRepo, contribuyenteRepo, logRepo, log)
	pdfGenerator := infrapdf.NewMarotoAcuseGenerator()
	consultaUC := consulta.NewUseCase(comprobanteRepo, pdfGenerator)
	secuenciaUC := secuencia.NewUseCase(secuenciaRepo, comprobanteRepo, logRepo, log)
	authUC := auth.NewUseCase(contribuyenteRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    11 * 1024 * 1024, // margen sobre el tamaño máximo de XML
	})
	app.Use(recover.New())
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "API Recepción e-CF",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		RecepcionUC: recepcionUC,
		ConsultaUC:  consultaUC,
		SecuenciaUC: secuenciaUC,
		AuthUC:      authUC,
		JWTSecret:   cfg.JWT.Secret,
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
