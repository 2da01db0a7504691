package http

import (
	"errors"
	"net/http"

	"brillante/internal/core/application/usecases/commands"
	"brillante/internal/core/domain/model/session"
	"brillante/internal/core/domain/services"
	"brillante/internal/core/ports"
	"brillante/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// statusFor maps use case errors onto HTTP status codes.
func statusFor(err error) int {
	var conflict *services.ConflictError
	switch {
	case errors.As(err, &conflict):
		return http.StatusConflict
	case errors.Is(err, commands.ErrSessionWriteFailure):
		return http.StatusServiceUnavailable
	case errors.Is(err, commands.ErrSessionExpired), errors.Is(err, session.ErrSessionIsClosed):
		return http.StatusGone
	case errors.Is(err, commands.ErrSessionNotOwned):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, ports.ErrOrderNumberTaken),
		errors.Is(err, errs.ErrVersionIsInvalid),
		errors.Is(err, errs.ErrValueIsInvalid):
		// Invalid transitions and stale writes conflict with the stored state.
		return http.StatusConflict
	case errors.Is(err, errs.ErrValueIsRequired), errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err with the mapped status. Conflicts use the availability body so
// that clients can name the blocking order or operator.
func (s *Server) respondError(ctx echo.Context, err error) error {
	status := statusFor(err)

	var conflict *services.ConflictError
	if errors.As(err, &conflict) {
		return ctx.JSON(status, conflictBody(conflict))
	}

	if status == http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), "Request failed",
			"method", ctx.Request().Method,
			"path", ctx.Path(),
			"error", err,
		)
		return ctx.JSON(status, Error{Code: status, Message: "Internal server error"})
	}

	return ctx.JSON(status, Error{Code: status, Message: err.Error()})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: message})
}

func conflictBody(err error) Availability {
	body := Availability{Available: false}

	var conflict *services.ConflictError
	if !errors.As(err, &conflict) {
		if err != nil {
			body.Message = err.Error()
		}
		return body
	}

	body.Message = conflict.Error()
	switch {
	case errors.Is(conflict.Kind, services.ErrOperatorHasOtherActiveOrder):
		body.Reason = string(services.ReasonOperatorHasOtherActiveOrder)
	case errors.Is(conflict.Kind, services.ErrOrderHeldByAnotherOperator):
		body.Reason = string(services.ReasonOrderHeldByAnotherOperator)
	}

	if conflict.OrderID.Validate() == nil {
		id := openapi_types.UUID(conflict.OrderID.Bytes())
		body.ActiveOrderID = &id
		body.ActiveOrderNumber = conflict.OrderNumber
	}
	if conflict.OperatorID.Validate() == nil {
		id := openapi_types.UUID(conflict.OperatorID.Bytes())
		body.ActiveOperatorID = &id
		body.ActiveOperatorName = conflict.OperatorName
	}
	return body
}
