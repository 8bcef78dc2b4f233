package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/accounts"
	"github.com/Skotchmaster/storefront/internal/app"
	"github.com/Skotchmaster/storefront/internal/catalog"
	"github.com/Skotchmaster/storefront/internal/config"
	"github.com/Skotchmaster/storefront/internal/events"
	"github.com/Skotchmaster/storefront/internal/httpserver"
	"github.com/Skotchmaster/storefront/internal/logging"
	instancemw "github.com/Skotchmaster/storefront/internal/middleware/instance"
	loggingmw "github.com/Skotchmaster/storefront/internal/middleware/logging"
	"github.com/Skotchmaster/storefront/internal/session"
)

const (
	sweepInterval  = time.Minute
	publishTimeout = 2 * time.Second
)

func main() {
	cfg := config.Load()
	config.MustNonEmptyBytes(cfg.SessionSecret, "SESSION_SECRET")

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	db, auth := openAccounts(cfg)

	var publisher events.Publisher = events.Noop{}
	if len(cfg.KafkaBrokers) > 0 {
		p, err := events.NewProducer(cfg.KafkaBrokers)
		if err != nil {
			log.Fatalf("kafka producer: %v", err)
		}
		publisher = events.NewBounded(p, publishTimeout)
	}

	gateway := catalog.NewGateway(catalog.NewClient(cfg.CatalogBaseURL, cfg.CatalogTimeout), cfg.CatalogKeywords)
	registry := app.NewRegistry(gateway, auth, cfg.SessionTTL).WithLimit(cfg.InstanceLimit)

	sweepCtx, stopSweep := context.WithCancel(context.Background())
	go registry.Run(sweepCtx, sweepInterval, func(removed int) {
		logger.Info("instances_swept", "removed", removed, "remaining", registry.Len())
	})

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(echomw.Secure())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{AllowCredentials: true}))

	httpserver.Register(e, &httpserver.Deps{
		Instances:  instancemw.New(registry, cfg.SessionSecret, cfg.SessionTTL, cfg.CookieSecure),
		Auth:       &httpserver.AuthHTTP{Events: publisher},
		Catalog:    &httpserver.CatalogHTTP{},
		Cart:       &httpserver.CartHTTP{Events: publisher},
		Navigation: &httpserver.NavigationHTTP{},
	})

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.CatalogTimeout + 5*time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		log.Printf("storefront listening on %s (catalog %s)", srv.Addr, cfg.CatalogBaseURL)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = srv.Shutdown(shutdownCtx)
	stopSweep()

	if err := publisher.Close(); err != nil {
		log.Printf("kafka close: %v", err)
	}
	if db != nil {
		_ = accounts.Close(db)
	}

	log.Println("storefront stopped")
}

// openAccounts picks the credential backend: postgres, then sqlite, then the
// simulated authenticator that accepts any non-empty pair.
func openAccounts(cfg *config.Config) (*gorm.DB, session.Authenticator) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var (
		db  *gorm.DB
		err error
	)
	switch {
	case cfg.DatabaseURL != "":
		db, err = accounts.OpenPostgres(ctx, cfg.DatabaseURL)
	case cfg.AccountsSQLitePath != "":
		db, err = accounts.OpenSQLite(ctx, cfg.AccountsSQLitePath)
	default:
		log.Printf("notice: no accounts database configured, using simulated authentication")
		return nil, session.Simulated{}
	}
	if err != nil {
		log.Fatalf("accounts db open: %v", err)
	}
	return db, &accounts.Directory{DB: db}
}
