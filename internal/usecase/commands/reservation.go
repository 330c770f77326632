package commands

import (
	"context"
	"slices"
	"time"

	"school-reservations/internal/domain/reservation"
	"school-reservations/internal/infra"
	"school-reservations/internal/pkg/errs"
	"school-reservations/internal/usecase/queries"
	"school-reservations/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	EquipmentID  uuid.UUID
	TeacherID    uuid.UUID
	Date         reservation.Date
	Modules      []int
	Status       reservation.Status
	Observations string
}

type CreateSeriesRequest struct {
	CreateReservationRequest
	Frequency reservation.Frequency
	EndDate   reservation.Date
}

type UpdateReservationRequest struct {
	TeacherID    *uuid.UUID
	Date         *reservation.Date
	Modules      []int
	Observations *string
}

type CreateSeriesResult struct {
	SeriesID     uuid.UUID
	Reservations []*queries.ReservationView
}

type CancelSeriesResult struct {
	SeriesID     uuid.UUID
	UpdatedCount int
}

type ReservationCommands interface {
	CreateSingle(ctx context.Context, req CreateReservationRequest, actor shared.Actor) (*queries.ReservationView, error)
	CreateSeries(ctx context.Context, req CreateSeriesRequest, actor shared.Actor) (*CreateSeriesResult, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateReservationRequest, actor shared.Actor) (*queries.ReservationView, error)
	ChangeStatus(ctx context.Context, id uuid.UUID, status reservation.Status, actor shared.Actor) (*queries.ReservationView, error)
	Cancel(ctx context.Context, id uuid.UUID, actor shared.Actor) error
	Delete(ctx context.Context, id uuid.UUID, actor shared.Actor) error
	CancelSeries(ctx context.Context, seriesID uuid.UUID, actor shared.Actor) (*CancelSeriesResult, error)
}

type reservationCommandsImpl struct {
	uow       shared.UnitOfWork
	readStore queries.ReservationReadStore
	assembler *reservation.Assembler
	effects   sideEffects
}

func NewReservationCommands(
	uow shared.UnitOfWork,
	readStore queries.ReservationReadStore,
	assembler *reservation.Assembler,
	cache shared.OccupancyCache,
	events shared.EventPublisher,
) ReservationCommands {
	return &reservationCommandsImpl{
		uow:       uow,
		readStore: readStore,
		assembler: assembler,
		effects:   sideEffects{cache: cache, events: events},
	}
}

func (uc *reservationCommandsImpl) CreateSingle(ctx context.Context, req CreateReservationRequest, actor shared.Actor) (*queries.ReservationView, error) {
	teacherID, err := resolveTeacher(req.TeacherID, actor)
	if err != nil {
		return nil, err
	}

	var created *reservation.Reservation
	err = uc.uow.WithinSerializable(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := checkReferences(ctx, tx.Reads(), req.EquipmentID, teacherID); err != nil {
			return err
		}

		snapshot, err := tx.Reads().ReservationsForEquipment(ctx, req.EquipmentID, req.Date, req.Date)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		res, err := uc.assembler.BuildSingle(reservation.SingleRequest{
			EquipmentID:  req.EquipmentID,
			TeacherID:    teacherID,
			Date:         req.Date,
			Modules:      req.Modules,
			Status:       req.Status,
			Observations: req.Observations,
		}, snapshot)
		if err != nil {
			return err
		}

		if err := tx.Reservations().Create(ctx, tx.DB(), res); err != nil {
			return storageErr(err, res.Modules())
		}
		created = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.effects.afterCommit(ctx, shared.SlotKeysOf(created), newEvent(shared.EventReservationCreated, uc.assembler.Now(), created))

	// Read-after-write for the joined names
	view, err := uc.readStore.FindByID(ctx, created.ID())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (uc *reservationCommandsImpl) CreateSeries(ctx context.Context, req CreateSeriesRequest, actor shared.Actor) (*CreateSeriesResult, error) {
	teacherID, err := resolveTeacher(req.TeacherID, actor)
	if err != nil {
		return nil, err
	}

	var created []*reservation.Reservation
	err = uc.uow.WithinSerializable(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := checkReferences(ctx, tx.Reads(), req.EquipmentID, teacherID); err != nil {
			return err
		}

		snapshot, err := tx.Reads().ReservationsForEquipment(ctx, req.EquipmentID, req.Date, req.EndDate)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		occurrences, err := uc.assembler.BuildSeries(reservation.SeriesRequest{
			SingleRequest: reservation.SingleRequest{
				EquipmentID:  req.EquipmentID,
				TeacherID:    teacherID,
				Date:         req.Date,
				Modules:      req.Modules,
				Status:       req.Status,
				Observations: req.Observations,
			},
			Frequency: req.Frequency,
			EndDate:   req.EndDate,
		}, snapshot)
		if err != nil {
			return err
		}

		for _, res := range occurrences {
			if err := tx.Reservations().Create(ctx, tx.DB(), res); err != nil {
				return storageErr(err, res.Modules())
			}
		}
		created = occurrences
		return nil
	})
	if err != nil {
		return nil, err
	}

	seriesID := *created[0].SeriesID()
	uc.effects.afterCommit(ctx, shared.SlotKeysOf(created...), newEvent(shared.EventReservationSeriesCreated, uc.assembler.Now(), created...))

	views, err := uc.readStore.List(ctx, queries.ReservationFilter{SeriesID: &seriesID}, nil, int32(len(created)))
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	slices.SortFunc(views, func(a, b *queries.ReservationView) int {
		return a.Date.Compare(b.Date)
	})
	return &CreateSeriesResult{SeriesID: seriesID, Reservations: views}, nil
}

func (uc *reservationCommandsImpl) Update(ctx context.Context, id uuid.UUID, req UpdateReservationRequest, actor shared.Actor) (*queries.ReservationView, error) {
	var (
		updated *reservation.Reservation
		keys    []shared.SlotKey
	)
	err := uc.uow.WithinSerializable(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := tx.Reads().ReservationByID(ctx, id)
		if err != nil {
			return notFoundAs(err, errs.ErrReservationNotFound)
		}
		if !actor.CanActFor(res.TeacherID()) {
			return errs.ErrForbidden
		}
		if req.TeacherID != nil {
			if !actor.CanActFor(*req.TeacherID) {
				return errs.ErrForbidden
			}
			if err := checkReferences(ctx, tx.Reads(), uuid.Nil, *req.TeacherID); err != nil {
				return err
			}
		}

		before := shared.SlotKeysOf(res)
		date := res.Date()
		if req.Date != nil {
			date = *req.Date
		}
		snapshot, err := tx.Reads().ReservationsForEquipment(ctx, res.EquipmentID(), date, date)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		err = uc.assembler.Reschedule(res, reservation.Edit{
			TeacherID:    req.TeacherID,
			Date:         req.Date,
			Modules:      req.Modules,
			Observations: req.Observations,
		}, snapshot)
		if err != nil {
			return err
		}

		if err := tx.Reservations().Update(ctx, tx.DB(), res); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.ErrReservationNotFound
			}
			return storageErr(err, res.Modules())
		}
		updated = res
		keys = append(before, shared.SlotKeysOf(res)...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.effects.afterCommit(ctx, keys, newEvent(shared.EventReservationUpdated, uc.assembler.Now(), updated))

	view, err := uc.readStore.FindByID(ctx, id)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (uc *reservationCommandsImpl) ChangeStatus(ctx context.Context, id uuid.UUID, status reservation.Status, actor shared.Actor) (*queries.ReservationView, error) {
	var changed *reservation.Reservation
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := tx.Reads().ReservationByID(ctx, id)
		if err != nil {
			return notFoundAs(err, errs.ErrReservationNotFound)
		}
		if !actor.CanActFor(res.TeacherID()) {
			return errs.ErrForbidden
		}
		if err := res.ChangeStatus(status, uc.assembler.Clock.Now()); err != nil {
			return err
		}
		if err := tx.Reservations().UpdateStatus(ctx, tx.DB(), res); err != nil {
			return notFoundAs(err, errs.ErrReservationNotFound)
		}
		changed = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	eventType := shared.EventReservationStatusChanged
	if changed.IsCancelled() {
		eventType = shared.EventReservationCancelled
	}
	uc.effects.afterCommit(ctx, shared.SlotKeysOf(changed), newEvent(eventType, uc.assembler.Now(), changed))

	view, err := uc.readStore.FindByID(ctx, id)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (uc *reservationCommandsImpl) Cancel(ctx context.Context, id uuid.UUID, actor shared.Actor) error {
	_, err := uc.ChangeStatus(ctx, id, reservation.StatusCancelled, actor)
	return err
}

// Delete removes the row for good. Only administrators may do it; everyone
// else cancels.
func (uc *reservationCommandsImpl) Delete(ctx context.Context, id uuid.UUID, actor shared.Actor) error {
	if !actor.IsAdmin() {
		return errs.ErrForbidden
	}

	var deleted *reservation.Reservation
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := tx.Reads().ReservationByID(ctx, id)
		if err != nil {
			return notFoundAs(err, errs.ErrReservationNotFound)
		}
		if err := tx.Reservations().Delete(ctx, tx.DB(), id); err != nil {
			return notFoundAs(err, errs.ErrReservationNotFound)
		}
		deleted = res
		return nil
	})
	if err != nil {
		return err
	}

	uc.effects.afterCommit(ctx, shared.SlotKeysOf(deleted), newEvent(shared.EventReservationDeleted, uc.assembler.Now(), deleted))
	return nil
}

// CancelSeries cancels every still-active occurrence of the series in one
// transaction and reports how many rows changed.
func (uc *reservationCommandsImpl) CancelSeries(ctx context.Context, seriesID uuid.UUID, actor shared.Actor) (*CancelSeriesResult, error) {
	var cancelled []shared.CancelledReservation
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		occurrences, err := tx.Reads().ReservationsBySeries(ctx, seriesID)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if len(occurrences) == 0 {
			return errs.ErrSeriesNotFound
		}
		// occurrences can be reassigned one by one, so every active one is checked
		for _, r := range occurrences {
			if !r.IsCancelled() && !actor.CanActFor(r.TeacherID()) {
				return errs.ErrForbidden
			}
		}

		cancelled, err = tx.Reservations().CancelSeries(ctx, tx.DB(), seriesID, uc.assembler.Clock.Now())
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(cancelled) > 0 {
		keys := make([]shared.SlotKey, len(cancelled))
		event := shared.ReservationEvent{
			Type:        shared.EventReservationSeriesCancel,
			SeriesID:    &seriesID,
			EquipmentID: cancelled[0].EquipmentID,
			Status:      reservation.StatusCancelled.String(),
			OccurredAt:  uc.assembler.Now(),
		}
		for i, c := range cancelled {
			keys[i] = c.SlotKey
			event.ReservationIDs = append(event.ReservationIDs, c.ID)
			event.Dates = append(event.Dates, c.Date)
		}
		uc.effects.afterCommit(ctx, keys, event)
	}

	return &CancelSeriesResult{SeriesID: seriesID, UpdatedCount: len(cancelled)}, nil
}

// resolveTeacher defaults the teacher to the actor's own record and refuses
// booking on behalf of someone else unless the actor is an administrator.
func resolveTeacher(requested uuid.UUID, actor shared.Actor) (uuid.UUID, error) {
	if requested == uuid.Nil {
		if actor.TeacherID != nil {
			return *actor.TeacherID, nil
		}
		return uuid.Nil, nil
	}
	if !actor.CanActFor(requested) {
		return uuid.Nil, errs.ErrForbidden
	}
	return requested, nil
}

// checkReferences skips nil ids; the assembler reports those as missing.
func checkReferences(ctx context.Context, reads shared.CommandReads, equipmentID, teacherID uuid.UUID) error {
	if equipmentID != uuid.Nil {
		eq, err := reads.EquipmentByID(ctx, equipmentID)
		if err != nil {
			return notFoundAs(err, errs.ErrEquipmentNotFound)
		}
		if !eq.Available {
			return errs.ErrEquipmentUnavailable
		}
	}
	if teacherID != uuid.Nil {
		if _, err := reads.TeacherByID(ctx, teacherID); err != nil {
			return notFoundAs(err, errs.ErrTeacherNotFound)
		}
	}
	return nil
}

// storageErr maps a slot unique violation, a race the in-transaction check
// could not see, to the same rejection the checker produces.
func storageErr(err error, modules reservation.ModuleSet) error {
	if infra.IsKind(err, infra.KindConflict) {
		return reservation.ModulesUnavailable(modules)
	}
	return errs.Mark(err, errs.ErrDatabaseOperationFailed)
}

func notFoundAs(err, sentinel error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return sentinel
	}
	return errs.Mark(err, errs.ErrDatabaseOperationFailed)
}

func newEvent(t shared.EventType, at time.Time, rs ...*reservation.Reservation) shared.ReservationEvent {
	event := shared.ReservationEvent{
		Type:        t,
		SeriesID:    rs[0].SeriesID(),
		EquipmentID: rs[0].EquipmentID(),
		Status:      rs[0].Status().String(),
		OccurredAt:  at,
	}
	for _, r := range rs {
		event.ReservationIDs = append(event.ReservationIDs, r.ID())
		event.Dates = append(event.Dates, r.Date())
	}
	return event
}
