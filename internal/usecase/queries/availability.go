package queries

import (
	"context"
	"log/slog"

	"school-reservations/internal/domain/reservation"
	"school-reservations/internal/usecase/shared"

	"github.com/google/uuid"
)

type CheckAvailabilityRequest struct {
	EquipmentID uuid.UUID
	Date        reservation.Date
	Modules     []int
	// ExcludeID leaves one reservation out, for checking an edit.
	ExcludeID *uuid.UUID
}

type SeriesPreviewRequest struct {
	EquipmentID uuid.UUID
	TeacherID   uuid.UUID
	Date        reservation.Date
	Modules     []int
	Frequency   reservation.Frequency
	EndDate     reservation.Date
}

type AvailabilityQueries interface {
	Occupied(ctx context.Context, date reservation.Date, equipmentID *uuid.UUID) ([]*OccupancyView, error)
	Free(ctx context.Context, date reservation.Date, equipmentID uuid.UUID) (*FreeModulesView, error)
	Check(ctx context.Context, req CheckAvailabilityRequest) (*AvailabilityView, error)
	PreviewSeries(ctx context.Context, req SeriesPreviewRequest) (*SeriesPreviewView, error)
	Schedule(ctx context.Context, date reservation.Date) *ScheduleView
}

type availabilityQueriesImpl struct {
	readStore ReservationReadStore
	cache     shared.OccupancyCache
	assembler *reservation.Assembler
}

func NewAvailabilityQueries(readStore ReservationReadStore, cache shared.OccupancyCache, assembler *reservation.Assembler) AvailabilityQueries {
	return &availabilityQueriesImpl{
		readStore: readStore,
		cache:     cache,
		assembler: assembler,
	}
}

// Occupied lists the occupied modules of date, for one equipment or for every
// equipment that has at least one active reservation that day.
func (q *availabilityQueriesImpl) Occupied(ctx context.Context, date reservation.Date, equipmentID *uuid.UUID) ([]*OccupancyView, error) {
	if date.IsZero() {
		return nil, reservation.MissingField("date")
	}

	if equipmentID != nil {
		modules, err := q.occupiedFor(ctx, *equipmentID, date)
		if err != nil {
			return nil, err
		}
		return []*OccupancyView{{EquipmentID: *equipmentID, Date: date, OccupiedModules: modules.Ints()}}, nil
	}

	snapshot, err := q.readStore.FindActiveByDate(ctx, date, nil)
	if err != nil {
		return nil, err
	}

	var order []uuid.UUID
	seen := map[uuid.UUID]struct{}{}
	for _, r := range snapshot {
		if _, ok := seen[r.EquipmentID()]; ok {
			continue
		}
		seen[r.EquipmentID()] = struct{}{}
		order = append(order, r.EquipmentID())
	}

	// Not cached: the equipment set is only known after the read, so there is
	// no version to compare against.
	out := make([]*OccupancyView, 0, len(order))
	for _, id := range order {
		modules := reservation.OccupiedModules(id, date, snapshot)
		out = append(out, &OccupancyView{EquipmentID: id, Date: date, OccupiedModules: modules.Ints()})
	}
	return out, nil
}

// Free lists the modules of date still open for booking: neither occupied nor,
// when date is today, already over.
func (q *availabilityQueriesImpl) Free(ctx context.Context, date reservation.Date, equipmentID uuid.UUID) (*FreeModulesView, error) {
	if date.IsZero() {
		return nil, reservation.MissingField("date")
	}
	if equipmentID == uuid.Nil {
		return nil, reservation.MissingField("equipment_id")
	}

	occupied, err := q.occupiedFor(ctx, equipmentID, date)
	if err != nil {
		return nil, err
	}
	free := reservation.AllModules().Difference(occupied)
	free = free.Difference(reservation.ElapsedModules(date, free, q.assembler.Now()))
	return &FreeModulesView{
		EquipmentID: equipmentID,
		Date:        date,
		FreeModules: free.Ints(),
	}, nil
}

// Check reads the database directly; a stale cache entry must not approve a
// booking.
func (q *availabilityQueriesImpl) Check(ctx context.Context, req CheckAvailabilityRequest) (*AvailabilityView, error) {
	switch {
	case req.EquipmentID == uuid.Nil:
		return nil, reservation.MissingField("equipment_id")
	case req.Date.IsZero():
		return nil, reservation.MissingField("date")
	}
	candidates, err := reservation.ValidateModules(req.Modules)
	if err != nil {
		return nil, err
	}

	snapshot, err := q.readStore.FindForEquipment(ctx, req.EquipmentID, req.Date, req.Date)
	if err != nil {
		return nil, err
	}
	if req.ExcludeID != nil {
		snapshot = reservation.Excluding(snapshot, *req.ExcludeID)
	}

	result := reservation.CheckAvailability(req.EquipmentID, req.Date, candidates, snapshot)
	return &AvailabilityView{
		Available:          result.Available,
		OccupiedModules:    result.Occupied.Ints(),
		ConflictingModules: result.Conflicts().Ints(),
	}, nil
}

func (q *availabilityQueriesImpl) PreviewSeries(ctx context.Context, req SeriesPreviewRequest) (*SeriesPreviewView, error) {
	seriesReq := reservation.SeriesRequest{
		SingleRequest: reservation.SingleRequest{
			EquipmentID: req.EquipmentID,
			TeacherID:   req.TeacherID,
			Date:        req.Date,
			Modules:     req.Modules,
		},
		Frequency: req.Frequency,
		EndDate:   req.EndDate,
	}
	// Validation bounds the series span, so it runs before the window is read.
	if _, _, err := q.assembler.PreviewSeries(seriesReq, nil); err != nil {
		return nil, err
	}

	snapshot, err := q.readStore.FindForEquipment(ctx, req.EquipmentID, req.Date, req.EndDate)
	if err != nil {
		return nil, err
	}
	dates, result, err := q.assembler.PreviewSeries(seriesReq, snapshot)
	if err != nil {
		return nil, err
	}

	view := &SeriesPreviewView{
		Dates:            dates,
		Valid:            result.Valid,
		ConflictingDates: result.ConflictingDates,
	}
	if !result.Valid {
		view.Message = reservation.SeriesConflicts(result.ConflictingDates).Message()
	}
	return view, nil
}

// Schedule lists the modules of date with their state now. A zero date means
// today in the school's zone.
func (q *availabilityQueriesImpl) Schedule(_ context.Context, date reservation.Date) *ScheduleView {
	now := q.assembler.Now()
	if date.IsZero() {
		date = reservation.DateOf(now)
	}

	slots := reservation.DaySchedule(date, now)
	modules := make([]ModuleSlotView, len(slots))
	for i, s := range slots {
		modules[i] = ModuleSlotView{
			Module:  s.Module.Int(),
			Start:   s.Start,
			End:     s.End,
			Elapsed: s.Elapsed,
			Current: s.Current,
		}
	}
	return &ScheduleView{
		Date:          date,
		CurrentModule: reservation.CurrentModule(now).Int(),
		Modules:       modules,
	}
}

func (q *availabilityQueriesImpl) occupiedFor(ctx context.Context, equipmentID uuid.UUID, date reservation.Date) (reservation.ModuleSet, error) {
	key := shared.SlotKey{EquipmentID: equipmentID, Date: date}

	modules, hit, err := q.cache.Get(ctx, key)
	if err != nil {
		slog.Warn("occupancy cache read failed", "equipment_id", equipmentID, "date", date.String(), "error", err.Error())
	}
	if hit {
		return modules, nil
	}

	// The version is taken before the database read so that an invalidation
	// landing in between makes the write below a no-op.
	version, verr := q.cache.Version(ctx, key)
	if verr != nil {
		slog.Warn("occupancy cache version read failed", "equipment_id", equipmentID, "date", date.String(), "error", verr.Error())
	}

	snapshot, err := q.readStore.FindActiveByDate(ctx, date, &equipmentID)
	if err != nil {
		return nil, err
	}
	modules = reservation.OccupiedModules(equipmentID, date, snapshot)
	if verr == nil {
		q.remember(ctx, key, version, modules)
	}
	return modules, nil
}

func (q *availabilityQueriesImpl) remember(ctx context.Context, key shared.SlotKey, version int64, modules reservation.ModuleSet) {
	if err := q.cache.Set(ctx, key, version, modules); err != nil {
		slog.Warn("occupancy cache write failed", "equipment_id", key.EquipmentID, "date", key.Date.String(), "error", err.Error())
	}
}
