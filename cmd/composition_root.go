package cmd

import (
	"log/slog"

	"brillante/internal/adapters/in/http"
	"brillante/internal/adapters/out/postgres"
	"brillante/internal/core/application/usecases/commands"
	"brillante/internal/core/application/usecases/queries"
	"brillante/internal/core/domain/services"
	"brillante/internal/core/ports"
	"brillante/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	checker    services.AvailabilityChecker
	clock      ports.Clock
	publisher  ports.EventPublisher
	locker     ports.Locker
	logger     *slog.Logger
}

func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	publisher ports.EventPublisher,
	locker ports.Locker,
	logger *slog.Logger,
) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		checker:    services.NewAvailabilityChecker(config.SessionTTL),
		clock:      ports.SystemClock{},
		publisher:  publisher,
		locker:     locker,
		logger:     logger,
	}
}

func (c *CompositionRoot) uow() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) sessionUoW() commands.SessionUoWFactory {
	return FuncSessionUoWFactory(func() commands.SessionUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.clock, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateStartOrderCommandHandler() commands.StartOrderCommandHandler {
	return commands.NewStartOrderCommandHandler(c.uow(), c.checker, c.clock, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateReopenOrderCommandHandler() commands.ReopenOrderCommandHandler {
	return commands.NewReopenOrderCommandHandler(c.uow(), c.checker, c.clock, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateUpdateProductionCommandHandler() commands.UpdateProductionCommandHandler {
	return commands.NewUpdateProductionCommandHandler(c.uow(), c.clock, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateCompleteOrderCommandHandler() commands.CompleteOrderCommandHandler {
	return commands.NewCompleteOrderCommandHandler(c.uow(), c.checker, c.clock, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateCloseSessionCommandHandler() commands.CloseSessionCommandHandler {
	return commands.NewCloseSessionCommandHandler(c.uow(), c.clock, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateHeartbeatSessionCommandHandler() commands.HeartbeatSessionCommandHandler {
	return commands.NewHeartbeatSessionCommandHandler(c.sessionUoW(), c.checker, c.clock, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateExpireStaleSessionsCommandHandler() commands.ExpireStaleSessionsCommandHandler {
	return commands.NewExpireStaleSessionsCommandHandler(c.sessionUoW(), c.checker, c.clock, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateCheckAvailabilityQueryHandler() queries.CheckAvailabilityQueryHandler {
	var f queries.RepositoryProviderFactory = FuncRepositoryProviderFactory(func() queries.RepositoryProvider {
		return c.uowFactory.Create()
	})
	return queries.NewCheckAvailabilityQueryHandler(f, c.checker, c.clock)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB, c.config.SessionTTL, c.clock)
}

func (c *CompositionRoot) CreateGetActiveSessionsQueryHandler() queries.GetActiveSessionsQueryHandler {
	return queries.NewGetActiveSessionsQueryHandler(c.gormDB, c.config.SessionTTL, c.clock)
}

func (c *CompositionRoot) CreateHTTPServer() *http.Server {
	return http.NewServer(http.Handlers{
		CreateOrder:       c.CreateCreateOrderCommandHandler(),
		StartOrder:        c.CreateStartOrderCommandHandler(),
		ReopenOrder:       c.CreateReopenOrderCommandHandler(),
		UpdateProduction:  c.CreateUpdateProductionCommandHandler(),
		CompleteOrder:     c.CreateCompleteOrderCommandHandler(),
		CloseSession:      c.CreateCloseSessionCommandHandler(),
		HeartbeatSession:  c.CreateHeartbeatSessionCommandHandler(),
		CheckAvailability: c.CreateCheckAvailabilityQueryHandler(),
		GetOrder:          c.CreateGetOrderQueryHandler(),
		GetActiveSessions: c.CreateGetActiveSessionsQueryHandler(),
	}, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateExpireStaleSessionsCommandHandler(),
		c.locker,
		c.config.SweepSchedule,
		c.logger,
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncSessionUoWFactory func() commands.SessionUoW

func (f FuncSessionUoWFactory) Create() commands.SessionUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncRepositoryProviderFactory func() queries.RepositoryProvider

func (f FuncRepositoryProviderFactory) Create() queries.RepositoryProvider {
	return f()
}
