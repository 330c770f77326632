package reservation

import (
	"strconv"
	"time"

	"school-reservations/internal/pkg/clock"

	"github.com/google/uuid"
)

// DefaultMaxSeriesDays bounds a series to roughly one school year.
const DefaultMaxSeriesDays = 366

// BookingPolicy holds the school-wide limits applied to new bookings.
type BookingPolicy struct {
	// HorizonDays caps how far ahead a date may be booked. Zero disables it.
	HorizonDays int
	// MaxSeriesDays caps the days between the first date of a series and its
	// end date. Zero means DefaultMaxSeriesDays.
	MaxSeriesDays int
}

// Assembler turns requests into reservations ready to persist, validating
// them against a snapshot of existing reservations.
type Assembler struct {
	Clock    clock.Clock
	Location *time.Location
	Policy   BookingPolicy
}

func NewAssembler(clk clock.Clock, loc *time.Location, policy BookingPolicy) *Assembler {
	if loc == nil {
		loc = time.Local
	}
	if policy.MaxSeriesDays <= 0 {
		policy.MaxSeriesDays = DefaultMaxSeriesDays
	}
	return &Assembler{Clock: clk, Location: loc, Policy: policy}
}

// Now is the current instant in the school's zone.
func (a *Assembler) Now() time.Time {
	return a.Clock.Now().In(a.Location)
}

func (a *Assembler) Today() Date {
	return DateOf(a.Now())
}

type SingleRequest struct {
	EquipmentID  uuid.UUID
	TeacherID    uuid.UUID
	Date         Date
	Modules      []int
	Status       Status
	Observations string
}

type SeriesRequest struct {
	SingleRequest
	Frequency Frequency
	EndDate   Date
}

type Edit struct {
	TeacherID    *uuid.UUID
	Date         *Date
	Modules      []int
	Observations *string
}

type validated struct {
	modules      ModuleSet
	status       Status
	observations Observations
}

func (a *Assembler) BuildSingle(req SingleRequest, snapshot []*Reservation) (*Reservation, error) {
	v, err := a.validateSingle(req)
	if err != nil {
		return nil, err
	}
	availability := CheckAvailability(req.EquipmentID, req.Date, v.modules, snapshot)
	if !availability.Available {
		return nil, ModulesUnavailable(availability.Conflicts())
	}
	return newReservation(req.EquipmentID, req.TeacherID, req.Date, v.modules, v.status, nil, v.observations, a.Clock.Now()), nil
}

// BuildSeries returns every occurrence of the series or none of them.
func (a *Assembler) BuildSeries(req SeriesRequest, snapshot []*Reservation) ([]*Reservation, error) {
	v, dates, err := a.validateSeries(req)
	if err != nil {
		return nil, err
	}
	result := ValidateSeries(req.EquipmentID, dates, v.modules, snapshot)
	if !result.Valid {
		return nil, SeriesConflicts(result.ConflictingDates)
	}

	series := &Series{ID: uuid.New(), Frequency: req.Frequency, EndDate: req.EndDate}
	observations := v.observations.withSeriesSuffix(req.Frequency)
	now := a.Clock.Now()
	out := make([]*Reservation, 0, len(dates))
	for _, d := range dates {
		out = append(out, newReservation(req.EquipmentID, req.TeacherID, d, v.modules, v.status, series, observations, now))
	}
	return out, nil
}

// PreviewSeries validates the request and reports the dates it would occupy
// and which of them conflict, without building anything.
func (a *Assembler) PreviewSeries(req SeriesRequest, snapshot []*Reservation) ([]Date, SeriesValidation, error) {
	v, dates, err := a.validateSeries(req)
	if err != nil {
		return nil, SeriesValidation{}, err
	}
	return dates, ValidateSeries(req.EquipmentID, dates, v.modules, snapshot), nil
}

// Reschedule applies edit to r after validating it against snapshot minus r.
func (a *Assembler) Reschedule(r *Reservation, edit Edit, snapshot []*Reservation) error {
	if r.IsCancelled() {
		return ErrReservationCanceled
	}

	teacherID := r.teacherID
	if edit.TeacherID != nil {
		teacherID = *edit.TeacherID
	}
	date := r.date
	if edit.Date != nil {
		date = *edit.Date
	}
	modules := r.modules
	if edit.Modules != nil {
		parsed, err := ValidateModules(edit.Modules)
		if err != nil {
			return err
		}
		modules = parsed
	}
	observations := r.observations
	if edit.Observations != nil {
		o, err := NewObservations(*edit.Observations)
		if err != nil {
			return &Rejection{Kind: KindInvalidField, Field: "observations", Reason: err.Error()}
		}
		observations = o
	}

	if teacherID == uuid.Nil {
		return MissingField("teacher_id")
	}
	if date.IsZero() {
		return MissingField("date")
	}
	if edit.Date != nil {
		if err := a.checkDate(date); err != nil {
			return err
		}
	}
	if edit.Date != nil || edit.Modules != nil {
		if err := a.checkElapsed(date, modules); err != nil {
			return err
		}
	}

	availability := CheckAvailability(r.equipmentID, date, modules, Excluding(snapshot, r.id))
	if !availability.Available {
		return ModulesUnavailable(availability.Conflicts())
	}
	r.reschedule(teacherID, date, modules, observations, a.Clock.Now())
	return nil
}

func (a *Assembler) validateSingle(req SingleRequest) (validated, error) {
	switch {
	case req.EquipmentID == uuid.Nil:
		return validated{}, MissingField("equipment_id")
	case req.TeacherID == uuid.Nil:
		return validated{}, MissingField("teacher_id")
	case req.Date.IsZero():
		return validated{}, MissingField("date")
	}

	modules, err := ValidateModules(req.Modules)
	if err != nil {
		return validated{}, err
	}

	status := req.Status
	if status == "" {
		status = StatusPending
	}
	if status != StatusPending && status != StatusConfirmed {
		return validated{}, &Rejection{Kind: KindInvalidStatus, Field: "status", Reason: "initial status must be pending or confirmed"}
	}

	observations, err := NewObservations(req.Observations)
	if err != nil {
		return validated{}, &Rejection{Kind: KindInvalidField, Field: "observations", Reason: err.Error()}
	}

	if err := a.checkDate(req.Date); err != nil {
		return validated{}, err
	}
	if err := a.checkElapsed(req.Date, modules); err != nil {
		return validated{}, err
	}
	return validated{modules: modules, status: status, observations: observations}, nil
}

func (a *Assembler) validateSeries(req SeriesRequest) (validated, []Date, error) {
	v, err := a.validateSingle(req.SingleRequest)
	if err != nil {
		return validated{}, nil, err
	}
	switch {
	case req.Frequency == "":
		return validated{}, nil, invalidSeries("frequency", "frequency is required")
	case !req.Frequency.IsValid():
		return validated{}, nil, invalidSeries("frequency", "unknown frequency "+req.Frequency.String())
	case req.EndDate.IsZero():
		return validated{}, nil, invalidSeries("series_end_date", "series end date is required")
	case !req.EndDate.After(req.Date):
		return validated{}, nil, invalidSeries("series_end_date", "series end date must be after the start date")
	}
	if limit := a.Policy.MaxSeriesDays; limit > 0 && req.EndDate.After(req.Date.AddDays(limit)) {
		return validated{}, nil, invalidSeries("series_end_date", "a series may span at most "+strconv.Itoa(limit)+" days")
	}
	if err := a.checkHorizon("series_end_date", req.EndDate); err != nil {
		return validated{}, nil, err
	}
	return v, GenerateDates(req.Date, req.Frequency, req.EndDate), nil
}

func (a *Assembler) checkDate(d Date) error {
	if d.Before(a.Today()) {
		return invalidDate("date", "date is in the past")
	}
	return a.checkHorizon("date", d)
}

// checkElapsed refuses modules of today that are already over.
func (a *Assembler) checkElapsed(d Date, modules ModuleSet) error {
	elapsed := ElapsedModules(d, modules, a.Now())
	if elapsed.IsEmpty() {
		return nil
	}
	return &Rejection{
		Kind:    KindInvalidModule,
		Field:   "modules",
		Reason:  "modules already over today: " + joinInts(elapsed.Ints()),
		Modules: elapsed.Ints(),
	}
}

func (a *Assembler) checkHorizon(field string, d Date) error {
	if a.Policy.HorizonDays <= 0 {
		return nil
	}
	if d.After(a.Today().AddDays(a.Policy.HorizonDays)) {
		return invalidDate(field, "date is beyond the booking horizon")
	}
	return nil
}

// ValidateModules parses requested module numbers, rejecting an empty list
// and numbers outside the school day.
func ValidateModules(numbers []int) (ModuleSet, error) {
	if len(numbers) == 0 {
		return nil, &Rejection{Kind: KindEmptyModules, Field: "modules", Reason: "select at least one module"}
	}
	modules, invalid := ParseModules(numbers)
	if len(invalid) > 0 {
		return nil, &Rejection{Kind: KindInvalidModule, Field: "modules", Modules: invalid}
	}
	return modules, nil
}
