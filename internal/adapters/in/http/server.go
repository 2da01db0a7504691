package http

import (
	"context"
	"log/slog"
	"net/http"

	"brillante/internal/core/application/usecases/commands"
	"brillante/internal/core/application/usecases/queries"
	"brillante/internal/core/domain/model/order"
	"brillante/internal/core/domain/services"

	"github.com/labstack/echo/v4"
)

// Use case contracts the server depends on. The command and query handlers from
// internal/core/application/usecases satisfy them.
type (
	CreateOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error)
	}
	StartOrderHandler interface {
		Handle(ctx context.Context, cmd commands.StartOrderCommand) (commands.AcquireResult, error)
	}
	ReopenOrderHandler interface {
		Handle(ctx context.Context, cmd commands.ReopenOrderCommand) (commands.AcquireResult, error)
	}
	UpdateProductionHandler interface {
		Handle(ctx context.Context, cmd commands.UpdateProductionCommand) (*order.Order, error)
	}
	CompleteOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CompleteOrderCommand) (*order.Order, error)
	}
	CloseSessionHandler interface {
		Handle(ctx context.Context, cmd commands.CloseSessionCommand) error
	}
	HeartbeatSessionHandler interface {
		Handle(ctx context.Context, cmd commands.HeartbeatSessionCommand) error
	}
	CheckAvailabilityHandler interface {
		Handle(ctx context.Context, query queries.CheckAvailabilityQuery) (services.Availability, error)
	}
	GetOrderHandler interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (queries.GetOrderQueryResponse, error)
	}
	GetActiveSessionsHandler interface {
		Handle(ctx context.Context, query queries.GetActiveSessionsQuery) ([]queries.ActiveSessionResponse, error)
	}
)

// Handlers groups the use cases exposed over HTTP.
type Handlers struct {
	// Command handlers
	CreateOrder      CreateOrderHandler
	StartOrder       StartOrderHandler
	ReopenOrder      ReopenOrderHandler
	UpdateProduction UpdateProductionHandler
	CompleteOrder    CompleteOrderHandler
	CloseSession     CloseSessionHandler
	HeartbeatSession HeartbeatSessionHandler

	// Query handlers
	CheckAvailability CheckAvailabilityHandler
	GetOrder          GetOrderHandler
	GetActiveSessions GetActiveSessionsHandler
}

// Server translates HTTP requests into commands and queries.
type Server struct {
	handlers Handlers
	logger   *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(handlers Handlers, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		handlers: handlers,
		logger:   logger.With("component", "http"),
	}
}

// RegisterRoutes mounts the API under /api/v1 behind the given middlewares
// (authentication and request validation) and the public health route.
func (s *Server) RegisterRoutes(e *echo.Echo, api ...echo.MiddlewareFunc) {
	e.GET("/health", s.Health)

	v1 := e.Group("/api/v1", api...)

	v1.POST("/orders", s.CreateOrder)
	v1.GET("/orders/:orderId", s.GetOrder)
	v1.GET("/orders/:orderId/availability", s.CheckAvailability)
	v1.POST("/orders/:orderId/start", s.StartOrder)
	v1.POST("/orders/:orderId/reopen", s.ReopenOrder)
	v1.POST("/orders/:orderId/production", s.UpdateProduction)
	v1.POST("/orders/:orderId/complete", s.CompleteOrder)
	v1.POST("/orders/:orderId/release", s.ReleaseOrder)

	v1.GET("/sessions/active", s.GetActiveSessions)
	v1.POST("/sessions/:sessionId/close", s.CloseSession)
	v1.POST("/sessions/:sessionId/heartbeat", s.HeartbeatSession)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}
