package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cardbank/configs"
	"cardbank/internal/handlers"
	"cardbank/internal/ledger"
	"cardbank/internal/services"
	"cardbank/pkg"
	middleware "cardbank/pkg/middlewares"
)

// NewApp wires dependencies, builds the Gin engine, and returns an *http.Server and a cleanup func.
// It reads configuration from environment variables via configs.Load.
func NewApp(ctx context.Context, logger *zap.Logger) (*http.Server, func(), error) {
	// Load config
	cfg, err := configs.Load(logger)
	if err != nil {
		return nil, nil, err
	}

	// The bank's whole state is this in-memory registry; it lives for the
	// process lifetime and nothing needs tearing down beyond exit.
	registry := ledger.NewRegistry()
	engine := ledger.NewEngine(registry)

	// Setup dependencies
	baseHandler := handlers.NewBaseHandler(logger, cfg.BankName)
	accountService := services.NewAccountService(logger, registry)
	transferService := services.NewTransferService(logger, registry, engine)
	accountHandler := handlers.NewAccountHandler(logger, accountService)
	transferHandler := handlers.NewTransferHandler(logger, transferService)

	limiter := pkg.NewRequestLimiter(cfg.RateLimit, cfg.RateBurst, logger)

	// Router
	r := gin.Default()

	api := r.Group("/api/v1")
	api.Use(middleware.TraceID())
	api.Use(middleware.Metrics())
	api.Use(middleware.RateLimit(limiter))

	accountHandler.RegisterRoutes(api)
	transferHandler.RegisterRoutes(api)
	baseHandler.RegisterRoutes(r)

	addr := fmt.Sprintf(":%s", cfg.Port)
	srv := &http.Server{Addr: addr, Handler: r}

	cleanup := func() {}

	return srv, cleanup, nil
}
