package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"file-gateway/core/config"
	"file-gateway/core/database"
	"file-gateway/core/loader"
	"file-gateway/core/logger"
	"file-gateway/core/middleware/errhandler"
	"file-gateway/core/middleware/rayid"
	"file-gateway/core/storage"

	"file-gateway/feature/files"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "file-gateway/docs/swagger"
)

// @title File Gateway API
// @version 1.0
// @description List, download and upload objects stored in an S3 compatible bucket.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the file gateway server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Connect to Database (Optional, audit trail only)
		db := connectOptionalDB(cfg.Database, logg)

		serviceCode := cfg.Server.ErrorServiceCode()

		// 4. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			BodyLimit:             cfg.Server.BodyLimit(),
			UnescapePath:          true,
			ErrorHandler:          errhandler.New(serviceCode, logg),
		})

		// 5. Initialize Storage
		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			logg.Fatal("Failed to create storage client", zap.Error(err))
		}

		// 6. Initialize Feature Loader
		mgr := loader.NewManager()
		mgr.Register(files.NewFeature(store, cfg.Storage, serviceCode, logg, db))

		// RayID must be first to trace everything
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			start := time.Now()
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			l.Debug("Request finished", zap.Duration("elapsed", time.Since(start)))
			return err
		})

		app.Get("/swagger/*", swagger.HandlerDefault)

		// 7. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 8. Start Server
		go func() {
			logg.Info("Starting server",
				zap.String("port", cfg.Server.Port),
				zap.String("bucket", cfg.Storage.Bucket),
				zap.Int64("max_upload_bytes", cfg.Storage.MaxUploadBytes()))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 9. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}

// connectOptionalDB returns nil when the database is disabled or unreachable.
func connectOptionalDB(cfg database.Config, logg *zap.Logger) *gorm.DB {
	if !cfg.Enabled {
		return nil
	}
	db, err := database.Connect(cfg)
	if err != nil {
		logg.Warn("Optional database connection failed", zap.Error(err))
		return nil
	}
	logg.Info("Connected to audit database", zap.String("driver", cfg.Driver))
	return db
}
