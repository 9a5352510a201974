package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	_ "github.com/jhoicas/kirana-pos/docs"
	"github.com/jhoicas/kirana-pos/internal/application/alerts"
	"github.com/jhoicas/kirana-pos/internal/application/auth"
	"github.com/jhoicas/kirana-pos/internal/application/billing"
	"github.com/jhoicas/kirana-pos/internal/application/daily"
	"github.com/jhoicas/kirana-pos/internal/application/dto"
	"github.com/jhoicas/kirana-pos/internal/application/inventory"
	"github.com/jhoicas/kirana-pos/internal/application/ordering"
	infraai "github.com/jhoicas/kirana-pos/internal/infrastructure/ai"
	infraexcel "github.com/jhoicas/kirana-pos/internal/infrastructure/excel"
	"github.com/jhoicas/kirana-pos/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/kirana-pos/internal/infrastructure/pdf"
	"github.com/jhoicas/kirana-pos/internal/infrastructure/store"
	httpRouter "github.com/jhoicas/kirana-pos/internal/interfaces/http"
	"github.com/jhoicas/kirana-pos/pkg/config"
	"github.com/jhoicas/kirana-pos/pkg/logger"
)

// @title        Kirana POS API
// @version      1.0
// @description  Toma de pedidos en texto libre, carrito con validación de stock y cuentas para tiendas de barrio.
// @BasePath     /
// @securityDefinitions.apikey Bearer
// @in           header
// @name         Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Str("ai", cfg.AI.Provider).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET requerido")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Store.Driver).Msg("abrir almacenamiento")
	}
	defer st.Close()

	m := metrics.New()

	committer := billing.NewCommitBillUseCase(st.TxRunner, m, log)
	orderUC := ordering.NewOrderEntryUseCase(
		st.Inventory, nil, committer,
		infraai.NewFromConfig(cfg.AI),
		m, log,
		ordering.Config{IdleTimeout: cfg.Cart.IdleTimeout()},
	)
	authUC := auth.NewAuthUseCase(st.Users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	catalogUC := inventory.NewCatalogUseCase(st.Inventory, st.TxRunner)
	billQueryUC := billing.NewBillQueryUseCase(st.Bills, st.Users, infraexcel.NewBillExporter())
	receiptUC := billing.NewReceiptUseCase(st.Bills, st.Users, infrapdf.NewReceiptRenderer())
	dailyUC := daily.NewDailyOpsUseCase(st.Days, st.Bills)
	alertsUC := alerts.NewAlertsUseCase(st.Inventory, st.Bills, alerts.Config{
		LowStockThreshold: decimal.NewFromInt(int64(cfg.Alerts.LowStockThreshold)),
		MarginWindow:      time.Duration(cfg.Alerts.MarginWindowDays) * 24 * time.Hour,
		MinMarginPercent:  decimal.NewFromInt(int64(cfg.Alerts.MinMarginPercent)),
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler(log),
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.AllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	if cfg.HTTP.RateLimit > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        cfg.HTTP.RateLimit,
			Expiration: time.Minute,
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{Code: "RATE_LIMITED", Message: "demasiadas peticiones"})
			},
		}))
	}

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Kirana POS API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "store": st.Driver})
	})
	app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		CatalogUC: catalogUC,
		OrderUC:   orderUC,
		BillQuery: billQueryUC,
		Receipt:   receiptUC,
		DailyUC:   dailyUC,
		AlertsUC:  alertsUC,
		JWTSecret: cfg.JWT.Secret,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return app.Listen(cfg.HTTP.Addr())
	})
	g.Go(func() error {
		// Carritos abandonados: se revisa cada minuto.
		orderUC.RunJanitor(gctx, time.Minute)
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("señal de apagado recibida, cerrando servidor...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return app.ShutdownWithContext(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("servidor HTTP finalizado")
	}
	log.Info().Msg("aplicación detenida")
}
