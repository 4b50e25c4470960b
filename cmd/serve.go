package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"library-ingest/core/database"
	"library-ingest/core/loader"
	"library-ingest/core/logger"
	"library-ingest/core/metrics"
	"library-ingest/core/middleware/auth"
	"library-ingest/core/middleware/rayid"
	"library-ingest/core/storage"
	"library-ingest/feature/library"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the ingestion HTTP server",
	Long:  `Starts the HTTP server exposing POST /library/ingest, /metrics and /healthz.`,
	RunE:  runServe,
}

func init() {
	RootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	// 1. Configuration and logger
	cfg, logg, err := bootstrap()
	if err != nil {
		return err
	}
	defer logg.Sync()
	zap.ReplaceGlobals(logg)

	// 2. Connect to Database (Optional)
	// Without a database the library feature stays disabled.
	var db *gorm.DB
	if conn, err := database.Connect(cfg.Database); err != nil {
		logg.Warn("Optional database connection failed", zap.Error(err))
	} else {
		db = conn
		defer database.Close(db)
		logg.Info("Connected to the database", zap.String("driver", cfg.Database.Driver))
		if cfg.Database.AutoMigrate {
			if err := library.Migrate(db); err != nil {
				return err
			}
		}
	}

	// 3. Object storage (Optional)
	objects, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		logg.Warn("Object storage unavailable, remote sources disabled", zap.Error(err))
	}

	// 4. Metrics on a private registry
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	// 5. Features
	mgr := loader.NewManager(logg)
	mgr.Register(library.NewFeature(library.NewService(db, objects, cfg.Source, cfg.Storage.Bucket, logg, m)))

	app := newApp(cfg.Server.ApiKey, logg, reg)
	if err := mgr.LoadAll(app); err != nil {
		return err
	}

	// 6. Start Server
	errCh := make(chan error, 1)
	go func() {
		logg.Info("Starting server", zap.String("addr", cfg.Server.Addr()))
		errCh <- app.Listen(cfg.Server.Addr())
	}()

	// 7. Graceful Shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-sig:
	}

	logg.Info("Shutting down server...")
	return app.ShutdownWithTimeout(cfg.Server.ShutdownTimeout())
}

// newApp builds the fiber app with the shared middleware chain. Feature routes
// are mounted by the caller.
func newApp(apiKey string, logg *zap.Logger, reg *prometheus.Registry) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true, // We will log our own startup message
	})

	// RayID must be first to trace everything
	app.Use(rayid.New())

	app.Use(func(c *fiber.Ctx) error {
		l := logger.WithRayID(logg, c)
		start := time.Now()
		err := c.Next()
		l.Info("Request",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("ip", c.IP()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("elapsed", time.Since(start)),
		)
		if err != nil {
			l.Error("Request error", zap.Error(err))
		}
		return err
	})

	app.Use(auth.New(auth.Config{
		ApiKey: apiKey,
		Skip: func(c *fiber.Ctx) bool {
			return c.Path() == "/healthz"
		},
	}))

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	return app
}
