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
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/Ordering-api/internal/application/usecase"
	"github.com/jhoicas/Ordering-api/internal/domain/entity"
	"github.com/jhoicas/Ordering-api/internal/domain/policy"
	"github.com/jhoicas/Ordering-api/internal/domain/repository"
	"github.com/jhoicas/Ordering-api/internal/infrastructure/memory"
	"github.com/jhoicas/Ordering-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/Ordering-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Ordering-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Ordering-api/internal/interfaces/http"
	"github.com/jhoicas/Ordering-api/pkg/config"
	"github.com/jhoicas/Ordering-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

// stores agrupa los repositorios del driver elegido.
type stores struct {
	users       repository.UserRepository
	restaurants repository.RestaurantRepository
	orders      repository.OrderRepository
	ping        httpRouter.StorePinger
	close       func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Bool("enforce_create_scope", cfg.Orders.EnforceCreateScope).
		Msg("iniciando aplicación")

	ctx := context.Background()
	st, err := openStores(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer st.close()

	engine := policy.Default()
	m := metrics.New()

	userUC := usecase.NewUserUseCase(engine, st.users)
	catalogUC := usecase.NewCatalogUseCase(engine, st.restaurants)
	orderUC := usecase.NewOrderUseCase(engine, st.orders, st.restaurants, usecase.OrderOptions{
		EnforceCreateScope: cfg.Orders.EnforceCreateScope,
		OnTransition:       func(to entity.OrderStatus) { m.IncOrderTransition(string(to)) },
	})
	receiptUC := usecase.NewReceiptUseCase(orderUC, infrapdf.NewMarotoReceiptGenerator())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log))
	app.Use(httpRouter.MetricsMiddleware(m))

	// Swagger UI en local: http://localhost:<port>/docs
	if cfg.App.DocsEnabled {
		if _, err := os.Stat(swaggerFile); err == nil {
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: swaggerFile,
				Path:     "docs",
				Title:    "Ordering API",
			}))
		} else {
			log.Warn().Str("file", swaggerFile).Msg("swagger.json no encontrado, /docs deshabilitado")
		}
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		ServiceName: cfg.App.Name,
		StoreDriver: cfg.Store.Driver,
		StorePing:   st.ping,
		Policy:      engine,
		UserUC:      userUC,
		CatalogUC:   catalogUC,
		OrderUC:     orderUC,
		ReceiptUC:   receiptUC,
		Metrics:     m,
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

// openStores abre el driver configurado: memoria sembrada o PostgreSQL (con migraciones opcionales).
func openStores(ctx context.Context, cfg *config.Config, log *logger.Logger) (*stores, error) {
	if cfg.Store.Driver == config.StoreMemory {
		store := memory.NewStore(memory.SeedData())
		return &stores{
			users:       store.Users(),
			restaurants: store.Restaurants(),
			orders:      store.Orders(),
			close:       func() {},
		}, nil
	}

	connectCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(connectCtx, cfg.DB)
	if err != nil {
		return nil, err
	}
	log.Info().Str("db", postgres.Describe(cfg.DB)).Msg("conectado a PostgreSQL")

	if cfg.DB.AutoMigrate {
		applied, err := postgres.Migrate(connectCtx, pool)
		if err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Strs("applied", applied).Msg("migraciones aplicadas")
	}

	return &stores{
		users:       postgres.NewUserRepository(pool),
		restaurants: postgres.NewRestaurantRepository(pool),
		orders:      postgres.NewOrderRepository(pool),
		ping:        pool.Ping,
		close:       pool.Close,
	}, nil
}
