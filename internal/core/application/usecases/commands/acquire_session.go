package commands

import (
	"context"
	"errors"
	"time"

	"brillante/internal/core/domain/model/kernel"
	"brillante/internal/core/domain/model/order"
	"brillante/internal/core/domain/model/session"
	"brillante/internal/core/domain/services"
)

// AcquireResult is returned by the commands that hand an order to an operator.
type AcquireResult struct {
	Order          *order.Order
	SessionID      kernel.UUID
	ClosedSessions []*session.Session
}

// acquireSession transitions the order and opens a session for the operator inside the
// caller's transaction. The order row is locked first so that concurrent acquirers of the
// same order are serialized; the store's unique indexes catch the remaining operator race.
//
// Steps:
//  1. lock the order and load the active sessions of the operator and of the order
//  2. run the availability checker and stop on denial
//  3. apply the status transition
//  4. close every active session of the order (superseded) and the operator's stale
//     sessions on other orders (expired)
//  5. persist the order and the new session
func acquireSession(
	ctx context.Context,
	uow UoW,
	checker services.AvailabilityChecker,
	operator kernel.Operator,
	orderID kernel.UUID,
	now time.Time,
	transition func(*order.Order, time.Time) error,
) (AcquireResult, error) {
	orderRepo := uow.OrderRepository()
	sessionRepo := uow.SessionRepository()

	o, err := orderRepo.GetForUpdate(ctx, orderID)
	if err != nil {
		return AcquireResult{}, err
	}

	operatorSessions, err := sessionRepo.GetActiveByOperator(ctx, operator.ID())
	if err != nil {
		return AcquireResult{}, err
	}

	orderSessions, err := sessionRepo.GetActiveByOrder(ctx, orderID)
	if err != nil {
		return AcquireResult{}, err
	}

	availability := checker.Check(services.AvailabilityInput{
		OperatorID:       operator.ID(),
		Order:            o,
		OperatorSessions: operatorSessions,
		OrderSessions:    orderSessions,
		Now:              now,
	})
	if err = availability.Err(); err != nil {
		return AcquireResult{}, err
	}

	if err = transition(o, now); err != nil {
		return AcquireResult{}, err
	}

	closed := make([]*session.Session, 0, len(orderSessions)+len(operatorSessions))
	for _, s := range orderSessions {
		if err = closeSession(ctx, sessionRepo.Update, s, now, session.ReasonSuperseded); err != nil {
			return AcquireResult{}, sessionWriteError(err, nil)
		}
		closed = append(closed, s)
	}

	for _, s := range operatorSessions {
		if s.IsForOrder(orderID) {
			continue
		}
		if err = closeSession(ctx, sessionRepo.Update, s, now, session.ReasonExpired); err != nil {
			return AcquireResult{}, sessionWriteError(err, nil)
		}
		closed = append(closed, s)
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return AcquireResult{}, err
	}

	opened, err := session.NewSession(kernel.NewUUID(), operator, o, now)
	if err != nil {
		return AcquireResult{}, err
	}

	if err = sessionRepo.Add(ctx, opened); err != nil {
		return AcquireResult{}, sessionWriteError(err, &services.ConflictError{
			Kind:        services.ErrOrderHeldByAnotherOperator,
			OrderID:     o.ID(),
			OrderNumber: o.Number(),
		})
	}

	return AcquireResult{
		Order:          o,
		SessionID:      opened.ID(),
		ClosedSessions: closed,
	}, nil
}

// closeSession closes and persists s. A session that is already closed is left alone.
func closeSession(
	ctx context.Context,
	update func(context.Context, *session.Session) error,
	s *session.Session,
	now time.Time,
	reason session.CloseReason,
) error {
	if err := s.Close(now, reason); err != nil {
		if errors.Is(err, session.ErrSessionIsClosed) {
			return nil
		}
		return err
	}
	return update(ctx, s)
}
