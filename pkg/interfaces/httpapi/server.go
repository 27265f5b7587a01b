package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vsinha/vendorsupply/pkg/application/services/session"
	"github.com/vsinha/vendorsupply/pkg/infrastructure/logging"
	"github.com/vsinha/vendorsupply/pkg/infrastructure/sessiontoken"
)

// Options configures the HTTP adapter
type Options struct {
	Registry       *session.Registry
	Tokens         *sessiontoken.Issuer
	AllowedOrigins []string
	Log            *zap.Logger
}

// Server exposes vendor and supplier sessions over HTTP
type Server struct {
	registry *session.Registry
	tokens   *sessiontoken.Issuer
	engine   *gin.Engine
	log      *zap.Logger
}

// NewServer builds the gin engine and registers every route
func NewServer(opts Options) *Server {
	opts.Log = logging.OrNop(opts.Log)

	engine := gin.New()
	engine.Use(gin.Recovery(), RequestLogger(opts.Log))
	if len(opts.AllowedOrigins) > 0 {
		engine.Use(cors.New(cors.Config{
			AllowOrigins:     opts.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	s := &Server{
		registry: opts.Registry,
		tokens:   opts.Tokens,
		engine:   engine,
		log:      opts.Log,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	s.engine.POST("/session", s.createSession)

	authed := s.engine.Group("")
	authed.Use(SessionMiddleware(s.tokens))

	authed.GET("/dishes", s.listDishes)

	vendor := authed.Group("/vendor")
	vendor.Use(RequireRole(session.RoleVendor))
	{
		vendor.POST("/ingredients", s.scaleIngredients)
		vendor.POST("/candidates", s.findCandidates)
		vendor.POST("/plan", s.planProcurement)
		vendor.GET("/cart", s.viewCart)
		vendor.POST("/cart", s.addToCart)
		vendor.DELETE("/cart", s.clearCart)
		vendor.DELETE("/cart/:index", s.removeFromCart)
		vendor.GET("/cart/reconcile", s.reconcileCart)
		vendor.POST("/orders", s.placeOrder)
		vendor.GET("/alerts", s.listAlerts)
	}

	supplier := authed.Group("/supplier")
	supplier.Use(RequireRole(session.RoleSupplier))
	{
		supplier.GET("/listings", s.listListings)
		supplier.POST("/listings", s.addListing)
		supplier.PATCH("/listings/:item/price", s.updatePrice)
		supplier.PATCH("/listings/:item/stock", s.updateStock)
		supplier.GET("/stats", s.inventoryStats)
		supplier.POST("/alerts", s.sendPriceAlert)
	}
}

// Handler returns the http.Handler serving every route
func (s *Server) Handler() http.Handler {
	return s.engine
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http server listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.log.Info("http server shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
