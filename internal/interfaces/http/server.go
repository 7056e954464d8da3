// internal/interfaces/http/server.go
package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/tochayanroy/ecomapp-backend/internal/config"
	"github.com/tochayanroy/ecomapp-backend/internal/domain/banner"
	"github.com/tochayanroy/ecomapp-backend/internal/domain/cart"
	"github.com/tochayanroy/ecomapp-backend/internal/domain/order"
	"github.com/tochayanroy/ecomapp-backend/internal/domain/product"
	"github.com/tochayanroy/ecomapp-backend/internal/domain/upload"
	"github.com/tochayanroy/ecomapp-backend/internal/domain/user"
	"github.com/tochayanroy/ecomapp-backend/internal/domain/watchlist"
	"github.com/tochayanroy/ecomapp-backend/internal/infrastructure/database/postgres"
	"github.com/tochayanroy/ecomapp-backend/internal/infrastructure/database/redis"
	"github.com/tochayanroy/ecomapp-backend/internal/interfaces/http/handlers"
	"github.com/tochayanroy/ecomapp-backend/internal/interfaces/http/middleware"
	"github.com/tochayanroy/ecomapp-backend/internal/interfaces/http/routes"
	"github.com/tochayanroy/ecomapp-backend/internal/pkg/auth"
	"github.com/tochayanroy/ecomapp-backend/internal/pkg/email"
	"github.com/tochayanroy/ecomapp-backend/internal/pkg/pdf"
	"gorm.io/gorm"
)

// Server wraps the HTTP server and its dependencies
type Server struct {
	config      *config.Config
	db          *gorm.DB
	redisClient *goredis.Client
	router      *gin.Engine
	httpServer  *http.Server
}

// NewServer builds the server with all services and routes wired
func NewServer(cfg *config.Config, db *gorm.DB, redisClient *goredis.Client) (*Server, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	s := &Server{
		config:      cfg,
		db:          db,
		redisClient: redisClient,
		router:      router,
	}

	s.setupMiddleware()
	if err := s.setupRoutes(); err != nil {
		return nil, err
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return s, nil
}

func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(middleware.RequestIDMiddleware())
	s.router.Use(middleware.LoggerMiddleware())
	s.router.Use(middleware.SecurityMiddleware())
	s.router.Use(middleware.CORSMiddleware(s.config))
	s.router.Use(middleware.RateLimitMiddleware(s.redisClient, s.config))
	// uploads are the largest accepted payload, plus form overhead
	s.router.Use(middleware.BodySizeLimitMiddleware(s.config.Upload.MaxSize + 1<<20))
	s.router.Use(middleware.TimeoutMiddleware(s.config.Server.WriteTimeout))
}

func (s *Server) setupRoutes() error {
	jwtManager := auth.NewJWTManager(s.config)
	emailService := email.NewService(s.config)
	pdfService := pdf.NewService(s.config)

	userService := user.NewService(s.db, s.redisClient, s.config)
	adminUserService := user.NewAdminService(s.db, s.config)
	addressService := user.NewAddressService(s.db, s.config)
	productService := product.NewService(s.db, s.config)
	categoryService := product.NewCategoryService(s.db, s.config)
	bannerService := banner.NewService(s.db, s.config)
	cartService := cart.NewService(s.db, s.redisClient, s.config)
	orderService := order.NewService(s.db, s.config, emailService)
	watchlistService := watchlist.NewService(s.db, s.config)

	uploadService, err := upload.NewService(s.db, s.config)
	if err != nil {
		return fmt.Errorf("failed to initialize upload service: %w", err)
	}

	h := &routes.Handlers{
		Auth:      handlers.NewAuthHandler(userService, cartService),
		Profile:   handlers.NewProfileHandler(userService),
		Address:   handlers.NewAddressHandler(addressService),
		Product:   handlers.NewProductHandler(productService),
		Category:  handlers.NewCategoryHandler(categoryService),
		Banner:    handlers.NewBannerHandler(bannerService),
		Cart:      handlers.NewCartHandler(cartService),
		Order:     handlers.NewOrderHandler(orderService, pdfService),
		Watchlist: handlers.NewWatchlistHandler(watchlistService),
		Upload:    handlers.NewUploadHandler(uploadService),
		UserAdmin: handlers.NewUserAdminHandler(adminUserService),
	}

	routes.SetupRoutes(s.router, h, jwtManager)

	// Uploaded images are served directly from disk
	s.router.Static("/uploads", s.config.Upload.LocalPath)

	s.router.GET("/health", s.healthCheck)
	s.router.GET("/ready", s.readinessCheck)

	return nil
}

// healthCheck verifies the database and Redis are reachable
func (s *Server) healthCheck(c *gin.Context) {
	checks := gin.H{}
	healthy := true

	if err := postgres.Health(s.db); err != nil {
		checks["database"] = "down"
		healthy = false
	} else {
		checks["database"] = "up"
	}

	if err := redis.Health(c.Request.Context(), s.redisClient); err != nil {
		checks["redis"] = "down"
		healthy = false
	} else {
		checks["redis"] = "up"
	}

	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{
		"name":    s.config.App.Name,
		"version": s.config.App.Version,
		"checks":  checks,
	})
}

// readinessCheck reports process liveness
func (s *Server) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Start begins serving HTTP requests
func (s *Server) Start() error {
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Stop gracefully shuts down the server
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
