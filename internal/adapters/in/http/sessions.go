package http

import (
	"net/http"

	"brillante/internal/core/application/usecases/commands"
	"brillante/internal/core/application/usecases/queries"
	"brillante/internal/core/domain/model/session"

	"github.com/labstack/echo/v4"
)

// GetActiveSessions handles GET /api/v1/sessions/active.
func (s *Server) GetActiveSessions(ctx echo.Context) error {
	sessions, err := s.handlers.GetActiveSessions.Handle(ctx.Request().Context(), queries.NewGetActiveSessionsQuery())
	if err != nil {
		return s.respondError(ctx, err)
	}

	response := make([]Session, len(sessions))
	for i, active := range sessions {
		response[i] = toSession(active)
	}

	return ctx.JSON(http.StatusOK, response)
}

// CloseSession handles POST /api/v1/sessions/{sessionId}/close for the session owner.
func (s *Server) CloseSession(ctx echo.Context) error {
	operator, ok := operatorFrom(ctx)
	if !ok {
		return unauthorized(ctx, "operator identity is required")
	}

	sessionID, err := pathUUID(ctx, "sessionId")
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewCloseSessionCommand(sessionID, operator.ID(), session.ReasonReleased)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.handlers.CloseSession.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// HeartbeatSession handles POST /api/v1/sessions/{sessionId}/heartbeat.
func (s *Server) HeartbeatSession(ctx echo.Context) error {
	operator, ok := operatorFrom(ctx)
	if !ok {
		return unauthorized(ctx, "operator identity is required")
	}

	sessionID, err := pathUUID(ctx, "sessionId")
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewHeartbeatSessionCommand(sessionID, operator.ID())
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.handlers.HeartbeatSession.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}
