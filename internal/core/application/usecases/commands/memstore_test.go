package commands_test

import (
	"context"
	"errors"
	"maps"
	"sort"
	"time"

	"brillante/internal/core/application/usecases/commands"
	"brillante/internal/core/domain/model/kernel"
	"brillante/internal/core/domain/model/order"
	"brillante/internal/core/domain/model/session"
	"brillante/internal/core/ports"
	"brillante/internal/pkg/errs"
)

// memStore is an in-memory store with the same exclusivity guarantees as the
// PostgreSQL schema. Aggregates are kept as records so uncommitted changes never leak.
type memStore struct {
	orders   map[kernel.UUID]orderRecord
	sessions map[kernel.UUID]sessionRecord

	failSessionAdd error
}

type orderRecord struct {
	id        kernel.UUID
	number    int
	plan      order.Plan
	produced  int
	status    order.Status
	updatedAt time.Time
	version   int
}

type sessionRecord struct {
	id          kernel.UUID
	operator    kernel.Operator
	orderID     kernel.UUID
	orderNumber int
	lineID      kernel.UUID
	productID   kernel.UUID
	startedAt   time.Time
	endedAt     *time.Time
	heartbeatAt time.Time
	active      bool
	reason      session.CloseReason
}

func newMemStore() *memStore {
	return &memStore{
		orders:   make(map[kernel.UUID]orderRecord),
		sessions: make(map[kernel.UUID]sessionRecord),
	}
}

func (s *memStore) Create() commands.UoW {
	return &memUoW{store: s}
}

func (s *memStore) orderFactory() commands.OrderUoWFactory {
	return memOrderUoWFactory{s}
}

func (s *memStore) sessionFactory() commands.SessionUoWFactory {
	return memSessionUoWFactory{s}
}

type memOrderUoWFactory struct{ store *memStore }

func (f memOrderUoWFactory) Create() commands.OrderUoW { return &memUoW{store: f.store} }

type memSessionUoWFactory struct{ store *memStore }

func (f memSessionUoWFactory) Create() commands.SessionUoW { return &memUoW{store: f.store} }

// activeSessions returns the committed active sessions, for assertions.
func (s *memStore) activeSessions() []sessionRecord {
	result := make([]sessionRecord, 0)
	for _, r := range s.sessions {
		if r.active {
			result = append(result, r)
		}
	}
	return result
}

func (s *memStore) orderStatus(id kernel.UUID) order.Status {
	return s.orders[id].status
}

type memUoW struct {
	store    *memStore
	orders   map[kernel.UUID]orderRecord
	sessions map[kernel.UUID]sessionRecord
	inTx     bool
}

func (u *memUoW) Begin(_ context.Context) error {
	if u.inTx {
		return nil
	}
	u.orders = maps.Clone(u.store.orders)
	u.sessions = maps.Clone(u.store.sessions)
	u.inTx = true
	return nil
}

func (u *memUoW) Commit(_ context.Context) error {
	if !u.inTx {
		return errors.New("no transaction")
	}
	u.store.orders = u.orders
	u.store.sessions = u.sessions
	u.inTx = false
	return nil
}

func (u *memUoW) Rollback(_ context.Context) error {
	if !u.inTx {
		return errors.New("no transaction")
	}
	u.inTx = false
	return nil
}

func (u *memUoW) OrderRepository() ports.OrderRepository { return memOrderRepo{u} }

func (u *memUoW) SessionRepository() ports.SessionRepository { return memSessionRepo{u} }

func (u *memUoW) orderMap() map[kernel.UUID]orderRecord {
	if u.inTx {
		return u.orders
	}
	return u.store.orders
}

func (u *memUoW) sessionMap() map[kernel.UUID]sessionRecord {
	if u.inTx {
		return u.sessions
	}
	return u.store.sessions
}

type memOrderRepo struct{ uow *memUoW }

func (r memOrderRepo) Add(_ context.Context, o *order.Order) error {
	m := r.uow.orderMap()
	for _, existing := range m {
		if existing.number == o.Number() {
			return ports.ErrOrderNumberTaken
		}
	}
	o.SyncVersion(1)
	m[o.ID()] = toOrderRecord(o)
	return nil
}

func (r memOrderRepo) Update(_ context.Context, o *order.Order) error {
	m := r.uow.orderMap()
	existing, ok := m[o.ID()]
	if !ok {
		return errs.NewObjectNotFoundError("order", o.ID())
	}
	if existing.version != o.Version() {
		return errs.NewVersionIsInvalidError("order version")
	}
	o.SyncVersion(o.Version() + 1)
	m[o.ID()] = toOrderRecord(o)
	return nil
}

func (r memOrderRepo) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	rec, ok := r.uow.orderMap()[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id)
	}
	return order.RestoreOrder(rec.id, rec.number, rec.plan, rec.produced, rec.status, rec.updatedAt, rec.version)
}

func (r memOrderRepo) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.Get(ctx, id)
}

type memSessionRepo struct{ uow *memUoW }

func (r memSessionRepo) Add(_ context.Context, s *session.Session) error {
	if r.uow.store.failSessionAdd != nil {
		return r.uow.store.failSessionAdd
	}
	m := r.uow.sessionMap()
	for _, existing := range m {
		if !existing.active {
			continue
		}
		if existing.operator.IsEqual(s.Operator()) {
			return ports.ErrActiveOperatorSessionExists
		}
		if existing.orderID.IsEqual(s.OrderID()) {
			return ports.ErrActiveOrderSessionExists
		}
	}
	m[s.ID()] = toSessionRecord(s)
	return nil
}

func (r memSessionRepo) Update(_ context.Context, s *session.Session) error {
	m := r.uow.sessionMap()
	if _, ok := m[s.ID()]; !ok {
		return errs.NewObjectNotFoundError("session", s.ID())
	}
	m[s.ID()] = toSessionRecord(s)
	return nil
}

func (r memSessionRepo) Get(_ context.Context, id kernel.UUID) (*session.Session, error) {
	rec, ok := r.uow.sessionMap()[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("session", id)
	}
	return rec.restore()
}

func (r memSessionRepo) GetActiveByOperator(_ context.Context, operatorID kernel.UUID) ([]*session.Session, error) {
	return r.find(func(rec sessionRecord) bool {
		return rec.active && rec.operator.ID().IsEqual(operatorID)
	})
}

func (r memSessionRepo) GetActiveByOrder(_ context.Context, orderID kernel.UUID) ([]*session.Session, error) {
	return r.find(func(rec sessionRecord) bool {
		return rec.active && rec.orderID.IsEqual(orderID)
	})
}

func (r memSessionRepo) GetActiveWithHeartbeatBefore(_ context.Context, cutoff time.Time) ([]*session.Session, error) {
	return r.find(func(rec sessionRecord) bool {
		return rec.active && rec.heartbeatAt.Before(cutoff)
	})
}

func (r memSessionRepo) find(match func(sessionRecord) bool) ([]*session.Session, error) {
	records := make([]sessionRecord, 0)
	for _, rec := range r.uow.sessionMap() {
		if match(rec) {
			records = append(records, rec)
		}
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].startedAt.After(records[j].startedAt)
	})

	result := make([]*session.Session, 0, len(records))
	for _, rec := range records {
		s, err := rec.restore()
		if err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, nil
}

// forceSession writes a committed session directly, bypassing exclusivity. Used to
// reproduce rows left behind by older releases.
func (s *memStore) forceSession(rec sessionRecord) {
	s.sessions[rec.id] = rec
}

func (s *memStore) putOrder(o *order.Order) {
	o.SyncVersion(1)
	s.orders[o.ID()] = toOrderRecord(o)
}

func (rec sessionRecord) restore() (*session.Session, error) {
	return session.RestoreSession(rec.id, rec.operator, rec.orderID, rec.orderNumber, rec.lineID, rec.productID,
		rec.startedAt, rec.endedAt, rec.heartbeatAt, rec.active, rec.reason)
}

func toOrderRecord(o *order.Order) orderRecord {
	return orderRecord{
		id:     o.ID(),
		number: o.Number(),
		plan: order.Plan{
			LineID:         o.LineID(),
			ProductID:      o.ProductID(),
			Shift:          o.Shift(),
			ProductionDate: o.ProductionDate(),
			PlannedUnits:   o.PlannedUnits(),
		},
		produced:  o.ProducedUnits(),
		status:    o.Status(),
		updatedAt: o.UpdatedAt(),
		version:   o.Version(),
	}
}

func toSessionRecord(s *session.Session) sessionRecord {
	return sessionRecord{
		id:          s.ID(),
		operator:    s.Operator(),
		orderID:     s.OrderID(),
		orderNumber: s.OrderNumber(),
		lineID:      s.LineID(),
		productID:   s.ProductID(),
		startedAt:   s.StartedAt(),
		endedAt:     s.EndedAt(),
		heartbeatAt: s.LastHeartbeatAt(),
		active:      s.IsActive(),
		reason:      s.CloseReason(),
	}
}
