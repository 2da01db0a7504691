package http

import (
	"context"

	"brillante/internal/core/application/usecases/commands"
	"brillante/internal/core/application/usecases/queries"
	"brillante/internal/core/domain/model/order"
	"brillante/internal/core/domain/services"

	"github.com/stretchr/testify/mock"
)

type MockCreateOrderHandler struct{ mock.Mock }

func (m *MockCreateOrderHandler) Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockAcquireHandler struct{ mock.Mock }

func (m *MockAcquireHandler) Handle(ctx context.Context, cmd commands.StartOrderCommand) (commands.AcquireResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.AcquireResult), args.Error(1)
}

type MockReopenHandler struct{ mock.Mock }

func (m *MockReopenHandler) Handle(ctx context.Context, cmd commands.ReopenOrderCommand) (commands.AcquireResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.AcquireResult), args.Error(1)
}

type MockUpdateProductionHandler struct{ mock.Mock }

func (m *MockUpdateProductionHandler) Handle(ctx context.Context, cmd commands.UpdateProductionCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockCloseSessionHandler struct{ mock.Mock }

func (m *MockCloseSessionHandler) Handle(ctx context.Context, cmd commands.CloseSessionCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

type MockHeartbeatHandler struct{ mock.Mock }

func (m *MockHeartbeatHandler) Handle(ctx context.Context, cmd commands.HeartbeatSessionCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

type MockCheckAvailabilityHandler struct{ mock.Mock }

func (m *MockCheckAvailabilityHandler) Handle(
	ctx context.Context,
	query queries.CheckAvailabilityQuery,
) (services.Availability, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(services.Availability), args.Error(1)
}

type MockGetOrderHandler struct{ mock.Mock }

func (m *MockGetOrderHandler) Handle(ctx context.Context, query queries.GetOrderQuery) (queries.GetOrderQueryResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.GetOrderQueryResponse), args.Error(1)
}

type MockGetActiveSessionsHandler struct{ mock.Mock }

func (m *MockGetActiveSessionsHandler) Handle(
	ctx context.Context,
	query queries.GetActiveSessionsQuery,
) ([]queries.ActiveSessionResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]queries.ActiveSessionResponse), args.Error(1)
}
