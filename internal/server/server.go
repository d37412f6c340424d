package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/nsmthethwa44/Technova-API/config"
	"github.com/nsmthethwa44/Technova-API/internal/db"
	"github.com/nsmthethwa44/Technova-API/internal/handlers"
	"github.com/nsmthethwa44/Technova-API/internal/mq"
	"github.com/nsmthethwa44/Technova-API/internal/services"
	"github.com/nsmthethwa44/Technova-API/internal/storage"
	"github.com/nsmthethwa44/Technova-API/internal/store"
	"github.com/nsmthethwa44/Technova-API/pkg/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server wraps the HTTP server and router.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	db         *sql.DB
	broker     *mq.Broker
}

// New constructs a Server with basic middleware and defaults.
func New(ctx context.Context, cfg config.Config) (*Server, error) {
	log := logger.Get()

	dbConn, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	jwtSecret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if jwtSecret == "" {
		_ = dbConn.Close()
		return nil, errors.New("JWT_SECRET is required")
	}

	// Object storage and the broker are optional at startup: without
	// them uploads fail per-request and events are skipped, but the
	// shop itself stays up.
	media, err := storage.NewFromConfig(ctx, cfg.Storage)
	if err != nil {
		log.Warn().Err(err).Msg("object storage unavailable, uploads disabled")
		media = nil
	} else if err := media.EnsureBucket(ctx); err != nil {
		log.Warn().Err(err).Msg("object storage bucket check failed, uploads disabled")
		media = nil
	}

	broker, err := mq.NewFromConfig(ctx, cfg.Broker)
	if err != nil {
		log.Warn().Err(err).Msg("broker unavailable, events disabled")
		broker = nil
	}
	var publisher services.Publisher
	if broker != nil {
		publisher = broker
	}

	userService := services.NewUserService(store.NewUserRepository(dbConn))
	productService := services.NewProductService(store.NewProductRepository(dbConn))
	wishlistService := services.NewWishlistService(store.NewWishlistRepository(dbConn))
	cartService := services.NewCartService(store.NewCartRepository(dbConn))
	orderService := services.NewOrderService(store.NewOrderRepository(dbConn), store.NewPaymentRepository(dbConn), publisher)

	authMiddleware := handlers.RequireAuth(jwtSecret)

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		middleware.Timeout(60*time.Second),
	)
	router.Get("/healthz", handlers.Healthz)
	router.Handle("/metrics", promhttp.Handler())

	// Account routes live at the root, matching the storefront client.
	router.Group(func(r chi.Router) {
		handlers.AuthRouter(r, userService, media, jwtSecret)
	})
	router.Route("/products", func(r chi.Router) {
		handlers.ProductRouter(r, productService, media, authMiddleware)
	})
	router.Route("/wishlist", func(r chi.Router) {
		handlers.WishlistRouter(r, wishlistService)
	})
	router.Route("/cart", func(r chi.Router) {
		handlers.CartRouter(r, cartService)
	})
	router.Route("/orders", func(r chi.Router) {
		handlers.OrderRouter(r, orderService, authMiddleware)
	})
	router.Post("/checkout", handlers.NewOrderHandler(orderService).Checkout)

	port := cfg.ServerPort
	if port == 0 {
		port = 8081
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		router:     router,
		db:         dbConn,
		broker:     broker,
	}, nil
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown attempts a graceful shutdown.
func (s *Server) Shutdown() error {
	if s.broker != nil {
		_ = s.broker.Close()
	}
	if s.db != nil {
		_ = s.db.Close()
	}
	return s.httpServer.Close()
}
