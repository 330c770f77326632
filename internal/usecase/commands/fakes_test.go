//go:build unit

package commands_test

import (
	"context"
	"time"

	"school-reservations/internal/domain/reservation"
	"school-reservations/internal/infra"
	"school-reservations/internal/infra/pgsql"
	"school-reservations/internal/usecase/queries"
	"school-reservations/internal/usecase/shared"

	"github.com/google/uuid"
)

var errNotFound = infra.WrapRepoErr("not found", nil, infra.KindNotFound)

// memStore is an in-memory stand-in for Postgres. Writes made inside a
// transaction are only applied when the callback returns nil.
type memStore struct {
	reservations map[uuid.UUID]*reservation.Reservation
	equipment    map[uuid.UUID]*shared.EquipmentSnapshot
	teachers     map[uuid.UUID]*shared.TeacherSnapshot
	lastLogins   map[uuid.UUID]int
	createErr    error
}

func newMemStore() *memStore {
	return &memStore{
		reservations: map[uuid.UUID]*reservation.Reservation{},
		equipment:    map[uuid.UUID]*shared.EquipmentSnapshot{},
		teachers:     map[uuid.UUID]*shared.TeacherSnapshot{},
		lastLogins:   map[uuid.UUID]int{},
	}
}

func (s *memStore) add(rs ...*reservation.Reservation) {
	for _, r := range rs {
		s.reservations[r.ID()] = r
	}
}

func (s *memStore) active() int {
	n := 0
	for _, r := range s.reservations {
		if !r.IsCancelled() {
			n++
		}
	}
	return n
}

type memUoW struct {
	store *memStore
}

func (u *memUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	tx := &memTx{store: u.store}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	u.store.add(tx.pending...)
	return nil
}

func (u *memUoW) WithinSerializable(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.Within(ctx, fn)
}

func (u *memUoW) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db pgsql.DBTX) error) error {
	return fn(ctx, nil)
}

func (u *memUoW) WithDB(ctx context.Context, fn func(ctx context.Context, db pgsql.DBTX) error) error {
	return fn(ctx, nil)
}

func (u *memUoW) CommandReads() shared.CommandReads {
	return memReads{store: u.store}
}

type memTx struct {
	store   *memStore
	pending []*reservation.Reservation
}

func (t *memTx) Reservations() shared.ReservationRepository { return &memReservationRepo{tx: t} }
func (t *memTx) Equipment() shared.EquipmentRepository      { return nil }
func (t *memTx) Teachers() shared.TeacherRepository         { return nil }
func (t *memTx) Users() shared.UserRepository               { return memUserRepo{store: t.store} }
func (t *memTx) Reads() shared.CommandReads                 { return memReads{store: t.store} }
func (t *memTx) DB() pgsql.DBTX                             { return nil }

type memReads struct {
	store *memStore
}

func (r memReads) EquipmentByID(_ context.Context, id uuid.UUID) (*shared.EquipmentSnapshot, error) {
	eq, ok := r.store.equipment[id]
	if !ok {
		return nil, errNotFound
	}
	return eq, nil
}

func (r memReads) TeacherByID(_ context.Context, id uuid.UUID) (*shared.TeacherSnapshot, error) {
	t, ok := r.store.teachers[id]
	if !ok {
		return nil, errNotFound
	}
	return t, nil
}

func (r memReads) ReservationByID(_ context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	res, ok := r.store.reservations[id]
	if !ok {
		return nil, errNotFound
	}
	return res, nil
}

func (r memReads) ReservationsForEquipment(_ context.Context, equipmentID uuid.UUID, from, to reservation.Date) ([]*reservation.Reservation, error) {
	var out []*reservation.Reservation
	for _, res := range r.store.reservations {
		if res.IsCancelled() || res.EquipmentID() != equipmentID {
			continue
		}
		if !from.IsZero() && res.Date().Before(from) {
			continue
		}
		if !to.IsZero() && res.Date().After(to) {
			continue
		}
		out = append(out, res)
	}
	return out, nil
}

func (r memReads) ReservationsBySeries(_ context.Context, seriesID uuid.UUID) ([]*reservation.Reservation, error) {
	var out []*reservation.Reservation
	for _, res := range r.store.reservations {
		if id := res.SeriesID(); id != nil && *id == seriesID {
			out = append(out, res)
		}
	}
	return out, nil
}

type memReservationRepo struct {
	tx *memTx
}

func (m *memReservationRepo) Create(_ context.Context, _ pgsql.DBTX, res *reservation.Reservation) error {
	if m.tx.store.createErr != nil {
		return m.tx.store.createErr
	}
	m.tx.pending = append(m.tx.pending, res)
	return nil
}

func (m *memReservationRepo) Update(_ context.Context, _ pgsql.DBTX, res *reservation.Reservation) error {
	m.tx.pending = append(m.tx.pending, res)
	return nil
}

func (m *memReservationRepo) UpdateStatus(_ context.Context, _ pgsql.DBTX, res *reservation.Reservation) error {
	m.tx.pending = append(m.tx.pending, res)
	return nil
}

func (m *memReservationRepo) CancelSeries(_ context.Context, _ pgsql.DBTX, seriesID uuid.UUID, at time.Time) ([]shared.CancelledReservation, error) {
	var out []shared.CancelledReservation
	for _, res := range m.tx.store.reservations {
		id := res.SeriesID()
		if id == nil || *id != seriesID || res.IsCancelled() {
			continue
		}
		if err := res.Cancel(at); err != nil {
			return nil, err
		}
		out = append(out, shared.CancelledReservation{
			ID:      res.ID(),
			SlotKey: shared.SlotKey{EquipmentID: res.EquipmentID(), Date: res.Date()},
		})
	}
	return out, nil
}

func (m *memReservationRepo) Delete(_ context.Context, _ pgsql.DBTX, id uuid.UUID) error {
	if _, ok := m.tx.store.reservations[id]; !ok {
		return errNotFound
	}
	delete(m.tx.store.reservations, id)
	return nil
}

type memUserRepo struct {
	store *memStore
}

func (m memUserRepo) UpdateLastLogin(_ context.Context, _ pgsql.DBTX, userID uuid.UUID) error {
	m.store.lastLogins[userID]++
	return nil
}

// memReadStore renders views straight from the store.
type memReadStore struct {
	store *memStore
}

func toView(r *reservation.Reservation) *queries.ReservationView {
	return &queries.ReservationView{
		ID:          r.ID(),
		EquipmentID: r.EquipmentID(),
		TeacherID:   r.TeacherID(),
		Date:        r.Date(),
		Modules:     r.Modules().Ints(),
		Schedule:    reservation.ScheduleLabel(r.Modules()),
		Status:      r.Status().String(),
		IsRecurring: r.IsRecurring(),
		SeriesID:    r.SeriesID(),
	}
}

func (m memReadStore) FindByID(_ context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	r, ok := m.store.reservations[id]
	if !ok {
		return nil, errNotFound
	}
	return toView(r), nil
}

func (m memReadStore) List(_ context.Context, filter queries.ReservationFilter, _ *queries.Keyset, _ int32) ([]*queries.ReservationView, error) {
	var out []*queries.ReservationView
	for _, r := range m.store.reservations {
		if filter.SeriesID != nil && (r.SeriesID() == nil || *r.SeriesID() != *filter.SeriesID) {
			continue
		}
		out = append(out, toView(r))
	}
	return out, nil
}

func (m memReadStore) FindForEquipment(ctx context.Context, equipmentID uuid.UUID, from, to reservation.Date) ([]*reservation.Reservation, error) {
	return memReads{store: m.store}.ReservationsForEquipment(ctx, equipmentID, from, to)
}

func (m memReadStore) FindActiveByDate(_ context.Context, date reservation.Date, _ *uuid.UUID) ([]*reservation.Reservation, error) {
	var out []*reservation.Reservation
	for _, r := range m.store.reservations {
		if !r.IsCancelled() && r.Date().Equal(date) {
			out = append(out, r)
		}
	}
	return out, nil
}

type recordingCache struct {
	invalidated []shared.SlotKey
	ctxErr      error
	err         error
}

func (c *recordingCache) Get(context.Context, shared.SlotKey) (reservation.ModuleSet, bool, error) {
	return nil, false, nil
}

func (c *recordingCache) Version(context.Context, shared.SlotKey) (int64, error) {
	return 0, nil
}

func (c *recordingCache) Set(context.Context, shared.SlotKey, int64, reservation.ModuleSet) error {
	return nil
}

func (c *recordingCache) Invalidate(ctx context.Context, keys ...shared.SlotKey) error {
	c.invalidated = append(c.invalidated, keys...)
	c.ctxErr = ctx.Err()
	return c.err
}

type recordingPublisher struct {
	events []shared.ReservationEvent
	ctxErr error
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, event shared.ReservationEvent) error {
	p.events = append(p.events, event)
	p.ctxErr = ctx.Err()
	return p.err
}
