package http

import (
	"net/http"
	"time"

	"brillante/internal/core/application/usecases/commands"
	"brillante/internal/core/application/usecases/queries"
	"brillante/internal/core/domain/model/kernel"
	"brillante/internal/core/domain/model/order"
	"brillante/internal/core/domain/model/session"

	"github.com/labstack/echo/v4"
)

// CreateOrder handles POST /api/v1/orders - registers a planned order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body NewOrder
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderID := kernel.NewUUID()
	if body.ID != nil {
		id, err := kernel.UUIDFromBytes(body.ID[:])
		if err != nil {
			return badRequest(ctx, "Invalid order id: "+err.Error())
		}
		orderID = id
	}

	lineID, lineErr := kernel.UUIDFromBytes(body.LineID[:])
	productID, productErr := kernel.UUIDFromBytes(body.ProductID[:])
	if lineErr != nil || productErr != nil {
		return badRequest(ctx, "Invalid order data: lineId and productId are required")
	}

	cmd, err := commands.NewCreateOrderCommand(orderID, body.Number, order.Plan{
		LineID:         lineID,
		ProductID:      productID,
		Shift:          body.Shift,
		ProductionDate: body.ProductionDate.Time,
		PlannedUnits:   body.PlannedUnits,
	})
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	created, err := s.handlers.CreateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, toOrder(created))
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	resp, err := s.handlers.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderDetails(resp))
}

// CheckAvailability handles GET /api/v1/orders/{orderId}/availability for the calling
// operator. A denial is answered with 403 and the blocking order or operator.
func (s *Server) CheckAvailability(ctx echo.Context) error {
	operator, ok := operatorFrom(ctx)
	if !ok {
		return unauthorized(ctx, "operator identity is required")
	}

	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	query, err := queries.NewCheckAvailabilityQuery(orderID, operator.ID())
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	availability, err := s.handlers.CheckAvailability.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.respondError(ctx, err)
	}

	if !availability.Available {
		return ctx.JSON(http.StatusForbidden, toAvailability(availability))
	}
	return ctx.JSON(http.StatusOK, toAvailability(availability))
}

// StartOrder handles POST /api/v1/orders/{orderId}/start.
func (s *Server) StartOrder(ctx echo.Context) error {
	operator, ok := operatorFrom(ctx)
	if !ok {
		return unauthorized(ctx, "operator identity is required")
	}

	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewStartOrderCommand(orderID, operator)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	result, err := s.handlers.StartOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toAcquired(result))
}

// ReopenOrder handles POST /api/v1/orders/{orderId}/reopen.
func (s *Server) ReopenOrder(ctx echo.Context) error {
	operator, ok := operatorFrom(ctx)
	if !ok {
		return unauthorized(ctx, "operator identity is required")
	}

	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewReopenOrderCommand(orderID, operator)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	result, err := s.handlers.ReopenOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toAcquired(result))
}

// UpdateProduction handles POST /api/v1/orders/{orderId}/production.
func (s *Server) UpdateProduction(ctx echo.Context) error {
	operator, ok := operatorFrom(ctx)
	if !ok {
		return unauthorized(ctx, "operator identity is required")
	}

	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var body ProductionUpdate
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	var reportedAt time.Time
	if body.Timestamp != nil {
		reportedAt = body.Timestamp.UTC()
	}

	cmd, err := commands.NewUpdateProductionCommand(orderID, operator.ID(), body.ProducedUnits, reportedAt)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	updated, err := s.handlers.UpdateProduction.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrder(updated))
}

// CompleteOrder handles POST /api/v1/orders/{orderId}/complete.
func (s *Server) CompleteOrder(ctx echo.Context) error {
	operator, ok := operatorFrom(ctx)
	if !ok {
		return unauthorized(ctx, "operator identity is required")
	}

	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewCompleteOrderCommand(orderID, operator.ID())
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	completed, err := s.handlers.CompleteOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrder(completed))
}

// ReleaseOrder handles POST /api/v1/orders/{orderId}/release - closes every active
// session of the order, e.g. when a supervisor frees an abandoned station. Only
// supervisor tokens may release.
func (s *Server) ReleaseOrder(ctx echo.Context) error {
	if !isSupervisor(ctx) {
		return ctx.JSON(http.StatusForbidden, Error{
			Code:    http.StatusForbidden,
			Message: "releasing an order requires the supervisor role",
		})
	}

	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewCloseOrderSessionsCommand(orderID, session.ReasonReleased)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.handlers.CloseSession.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}
