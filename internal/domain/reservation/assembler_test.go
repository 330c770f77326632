//go:build unit

package reservation_test

import (
	"strings"
	"testing"
	"time"

	"school-reservations/internal/domain/reservation"
	"school-reservations/internal/pkg/clock"
	"school-reservations/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var santiago = time.FixedZone("CLT", -3*60*60)

func newAssembler(horizon int) *reservation.Assembler {
	now := time.Date(2025, time.October, 6, 9, 0, 0, 0, santiago)
	return reservation.NewAssembler(clock.NewFixedClock(now), santiago, reservation.BookingPolicy{HorizonDays: horizon})
}

type singleCase struct {
	name   string
	mutate func(*builder.ReservationBuilder)
	kind   reservation.RejectionKind
}

func TestAssembler_BuildSingle(t *testing.T) {
	t.Run("基本成功ケース", func(t *testing.T) {
		b := builder.NewReservationBuilder().WithModules(5, 4).WithObservations("  clase de física ").AsPending()

		actual, err := newAssembler(0).BuildSingle(b.BuildSingleRequest(), nil)
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, b.EquipmentID, actual.EquipmentID())
		assert.Equal(t, b.TeacherID, actual.TeacherID())
		assert.Equal(t, b.Date, actual.Date())
		assert.Equal(t, reservation.ModuleSet{4, 5}, actual.Modules())
		assert.Equal(t, reservation.StatusPending, actual.Status())
		assert.Equal(t, "clase de física", actual.Observations().String())
		assert.False(t, actual.IsRecurring())
		assert.Nil(t, actual.SeriesID())
	})

	t.Run("ステータス未指定は保留", func(t *testing.T) {
		req := builder.NewReservationBuilder().BuildSingleRequest()
		req.Status = ""

		actual, err := newAssembler(0).BuildSingle(req, nil)
		require.NoError(t, err)
		assert.Equal(t, reservation.StatusPending, actual.Status())
	})

	t.Run("入力検証", func(t *testing.T) {
		runSingleCases(t, []singleCase{
			{
				name:   "機材未指定NG",
				mutate: func(b *builder.ReservationBuilder) { b.WithEquipmentID(uuid.Nil) },
				kind:   reservation.KindMissingField,
			},
			{
				name:   "教員未指定NG",
				mutate: func(b *builder.ReservationBuilder) { b.WithTeacherID(uuid.Nil) },
				kind:   reservation.KindMissingField,
			},
			{
				name:   "日付未指定NG",
				mutate: func(b *builder.ReservationBuilder) { b.WithDate(reservation.Date{}) },
				kind:   reservation.KindMissingField,
			},
			{
				name:   "限が空NG",
				mutate: func(b *builder.ReservationBuilder) { b.WithModules() },
				kind:   reservation.KindEmptyModules,
			},
			{
				name:   "範囲外の限NG",
				mutate: func(b *builder.ReservationBuilder) { b.WithModules(3, 16) },
				kind:   reservation.KindInvalidModule,
			},
			{
				name:   "0限NG",
				mutate: func(b *builder.ReservationBuilder) { b.WithModules(0) },
				kind:   reservation.KindInvalidModule,
			},
			{
				name:   "過去日NG",
				mutate: func(b *builder.ReservationBuilder) { b.WithDate(d(2025, time.October, 5)) },
				kind:   reservation.KindInvalidDate,
			},
			{
				name:   "当日OK",
				mutate: func(b *builder.ReservationBuilder) { b.WithDate(d(2025, time.October, 6)) },
			},
			{
				name:   "初期ステータスがキャンセルNG",
				mutate: func(b *builder.ReservationBuilder) { b.AsCancelled() },
				kind:   reservation.KindInvalidStatus,
			},
			{
				name:   "備考が長すぎるNG",
				mutate: func(b *builder.ReservationBuilder) { b.WithObservations(strings.Repeat("a", 501)) },
				kind:   reservation.KindInvalidField,
			},
		})
	})

	t.Run("予約期限", func(t *testing.T) {
		a := newAssembler(14)

		req := builder.NewReservationBuilder().WithDate(d(2025, time.October, 20)).BuildSingleRequest()
		_, err := a.BuildSingle(req, nil)
		require.NoError(t, err)

		req = builder.NewReservationBuilder().WithDate(d(2025, time.October, 21)).BuildSingleRequest()
		_, err = a.BuildSingle(req, nil)
		rejection, ok := reservation.AsRejection(err)
		require.True(t, ok)
		assert.Equal(t, reservation.KindInvalidDate, rejection.Kind)
	})

	t.Run("当日の終了済みモジュール", func(t *testing.T) {
		// newAssembler runs at 09:00, inside module 2
		today := d(2025, time.October, 6)

		req := builder.NewReservationBuilder().WithDate(today).WithModules(1, 2).BuildSingleRequest()
		actual, err := newAssembler(0).BuildSingle(req, nil)
		require.Nil(t, actual)
		rejection, ok := reservation.AsRejection(err)
		require.True(t, ok)
		assert.Equal(t, reservation.KindInvalidModule, rejection.Kind)
		assert.Equal(t, []int{1}, rejection.Detail())
		assert.Equal(t, "modules already over today: 1", rejection.Message())

		req = builder.NewReservationBuilder().WithDate(today).WithModules(2, 3).BuildSingleRequest()
		_, err = newAssembler(0).BuildSingle(req, nil)
		require.NoError(t, err, "現在のモジュールはまだ予約できる")

		req = builder.NewReservationBuilder().WithDate(today.AddDays(1)).WithModules(1).BuildSingleRequest()
		_, err = newAssembler(0).BuildSingle(req, nil)
		require.NoError(t, err, "翌日の1限は予約できる")
	})

	t.Run("衝突した限を返す", func(t *testing.T) {
		b := builder.NewReservationBuilder().WithDate(d(2025, time.October, 7)).WithModules(4, 5)
		existing := builder.NewReservationBuilder().
			WithEquipmentID(b.EquipmentID).
			WithDate(d(2025, time.October, 7)).
			WithModules(3, 4).
			BuildDomain()

		actual, err := newAssembler(0).BuildSingle(b.BuildSingleRequest(), []*reservation.Reservation{existing})

		require.Nil(t, actual)
		rejection, ok := reservation.AsRejection(err)
		require.True(t, ok)
		assert.Equal(t, reservation.KindModulesUnavailable, rejection.Kind)
		assert.Equal(t, []int{4}, rejection.Detail())
		assert.Equal(t, "modules already reserved: 4", rejection.Message())
	})
}

func runSingleCases(t *testing.T, cases []singleCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := builder.NewReservationBuilder().WithDate(d(2025, time.October, 8)).With(c.mutate).BuildSingleRequest()

			actual, err := newAssembler(0).BuildSingle(req, nil)

			if c.kind == "" {
				require.NoError(t, err)
				require.NotNil(t, actual)
				return
			}
			require.Nil(t, actual)
			rejection, ok := reservation.AsRejection(err)
			require.True(t, ok, "expected rejection, got %v", err)
			assert.Equal(t, c.kind, rejection.Kind)
		})
	}
}

func seriesRequest(equipmentID uuid.UUID) reservation.SeriesRequest {
	b := builder.NewReservationBuilder().WithEquipmentID(equipmentID).WithDate(d(2025, time.October, 6)).WithModules(2, 3)
	return reservation.SeriesRequest{
		SingleRequest: b.BuildSingleRequest(),
		Frequency:     reservation.FrequencyWeekly,
		EndDate:       d(2025, time.October, 27),
	}
}

func TestAssembler_BuildSeries(t *testing.T) {
	equipmentID := uuid.New()

	t.Run("全回が同じシリーズIDを共有する", func(t *testing.T) {
		req := seriesRequest(equipmentID)
		req.Observations = "taller"

		actual, err := newAssembler(0).BuildSeries(req, nil)
		require.NoError(t, err)
		require.Len(t, actual, 4)

		seriesID := actual[0].SeriesID()
		require.NotNil(t, seriesID)
		gotDates := make([]reservation.Date, len(actual))
		ids := map[uuid.UUID]struct{}{}
		for i, r := range actual {
			gotDates[i] = r.Date()
			ids[r.ID()] = struct{}{}
			assert.True(t, r.IsRecurring())
			assert.Equal(t, *seriesID, *r.SeriesID())
			assert.Equal(t, reservation.FrequencyWeekly, r.Series().Frequency)
			assert.Equal(t, d(2025, time.October, 27), r.Series().EndDate)
			assert.Equal(t, "taller • Recurring reservation (weekly)", r.Observations().String())
		}
		assert.Len(t, ids, 4)
		want := []reservation.Date{d(2025, time.October, 6), d(2025, time.October, 13), d(2025, time.October, 20), d(2025, time.October, 27)}
		if diff := cmp.Diff(want, gotDates, cmp.AllowUnexported(reservation.Date{})); diff != "" {
			t.Errorf("dates mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("衝突があれば1件も作らない", func(t *testing.T) {
		existing := builder.NewReservationBuilder().
			WithEquipmentID(equipmentID).
			WithDate(d(2025, time.October, 13)).
			WithModules(2).
			BuildDomain()

		actual, err := newAssembler(0).BuildSeries(seriesRequest(equipmentID), []*reservation.Reservation{existing})

		assert.Empty(t, actual)
		rejection, ok := reservation.AsRejection(err)
		require.True(t, ok)
		assert.Equal(t, reservation.KindSeriesConflicts, rejection.Kind)
		if diff := cmp.Diff([]reservation.Date{d(2025, time.October, 13)}, rejection.Detail(), cmp.AllowUnexported(reservation.Date{})); diff != "" {
			t.Errorf("detail mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("シリーズ入力検証", func(t *testing.T) {
		cases := []struct {
			name   string
			mutate func(*reservation.SeriesRequest)
			kind   reservation.RejectionKind
		}{
			{name: "頻度未指定NG", mutate: func(r *reservation.SeriesRequest) { r.Frequency = "" }, kind: reservation.KindInvalidSeries},
			{name: "不明な頻度NG", mutate: func(r *reservation.SeriesRequest) { r.Frequency = "yearly" }, kind: reservation.KindInvalidSeries},
			{name: "終了日未指定NG", mutate: func(r *reservation.SeriesRequest) { r.EndDate = reservation.Date{} }, kind: reservation.KindInvalidSeries},
			{name: "終了日が開始日と同じNG", mutate: func(r *reservation.SeriesRequest) { r.EndDate = r.Date }, kind: reservation.KindInvalidSeries},
			{name: "終了日が開始日より前NG", mutate: func(r *reservation.SeriesRequest) { r.EndDate = r.Date.AddDays(-7) }, kind: reservation.KindInvalidSeries},
			{name: "限が空NG", mutate: func(r *reservation.SeriesRequest) { r.Modules = nil }, kind: reservation.KindEmptyModules},
			{name: "開始日が過去NG", mutate: func(r *reservation.SeriesRequest) { r.Date = d(2025, time.October, 1) }, kind: reservation.KindInvalidDate},
		}
		for _, c := range cases {
			t.Run(c.name, func(t *testing.T) {
				req := seriesRequest(equipmentID)
				c.mutate(&req)

				actual, err := newAssembler(0).BuildSeries(req, nil)

				assert.Empty(t, actual)
				rejection, ok := reservation.AsRejection(err)
				require.True(t, ok, "expected rejection, got %v", err)
				assert.Equal(t, c.kind, rejection.Kind)
			})
		}
	})

	t.Run("初回が当日で終了済みモジュールを含むNG", func(t *testing.T) {
		req := seriesRequest(equipmentID)
		req.Modules = []int{1, 2}

		actual, err := newAssembler(0).BuildSeries(req, nil)

		assert.Empty(t, actual)
		rejection, ok := reservation.AsRejection(err)
		require.True(t, ok)
		assert.Equal(t, reservation.KindInvalidModule, rejection.Kind)
		assert.Equal(t, []int{1}, rejection.Modules)
	})

	t.Run("シリーズ期間の上限", func(t *testing.T) {
		req := seriesRequest(equipmentID)
		req.Frequency = reservation.FrequencyDaily
		req.EndDate = d(9999, time.December, 31)

		actual, err := newAssembler(0).BuildSeries(req, nil)
		assert.Empty(t, actual)
		rejection, ok := reservation.AsRejection(err)
		require.True(t, ok)
		assert.Equal(t, reservation.KindInvalidSeries, rejection.Kind)
		assert.Equal(t, "series_end_date", rejection.Field)
		assert.Equal(t, "a series may span at most 366 days", rejection.Message())

		req.EndDate = req.Date.AddDays(reservation.DefaultMaxSeriesDays)
		actual, err = newAssembler(0).BuildSeries(req, nil)
		require.NoError(t, err)
		assert.Len(t, actual, reservation.DefaultMaxSeriesDays+1)

		now := time.Date(2025, time.October, 6, 9, 0, 0, 0, santiago)
		short := reservation.NewAssembler(clock.NewFixedClock(now), santiago, reservation.BookingPolicy{MaxSeriesDays: 28})
		req = seriesRequest(equipmentID)
		_, err = short.BuildSeries(req, nil)
		require.NoError(t, err)
		req.EndDate = req.Date.AddDays(29)
		_, err = short.BuildSeries(req, nil)
		rejection, ok = reservation.AsRejection(err)
		require.True(t, ok)
		assert.Equal(t, reservation.KindInvalidSeries, rejection.Kind)
	})

	t.Run("終了日が予約期限を超えるNG", func(t *testing.T) {
		_, err := newAssembler(14).BuildSeries(seriesRequest(equipmentID), nil)

		rejection, ok := reservation.AsRejection(err)
		require.True(t, ok)
		assert.Equal(t, reservation.KindInvalidDate, rejection.Kind)
		assert.Equal(t, "series_end_date", rejection.Field)
	})

	t.Run("プレビューは衝突日と全日程を返す", func(t *testing.T) {
		existing := builder.NewReservationBuilder().
			WithEquipmentID(equipmentID).
			WithDate(d(2025, time.October, 20)).
			WithModules(2).
			BuildDomain()

		dates, result, err := newAssembler(0).PreviewSeries(seriesRequest(equipmentID), []*reservation.Reservation{existing})

		require.NoError(t, err)
		assert.Len(t, dates, 4)
		assert.False(t, result.Valid)
		assert.Equal(t, []reservation.Date{d(2025, time.October, 20)}, result.ConflictingDates)
	})
}

func TestAssembler_Reschedule(t *testing.T) {
	a := newAssembler(0)
	equipmentID := uuid.New()

	t.Run("自分自身とは衝突しない", func(t *testing.T) {
		self := builder.NewReservationBuilder().WithEquipmentID(equipmentID).WithDate(d(2025, time.October, 7)).WithModules(3, 4).BuildDomain()

		err := a.Reschedule(self, reservation.Edit{Modules: []int{4, 5}}, []*reservation.Reservation{self})

		require.NoError(t, err)
		assert.Equal(t, reservation.ModuleSet{4, 5}, self.Modules())
	})

	t.Run("他の予約と衝突すればNG", func(t *testing.T) {
		self := builder.NewReservationBuilder().WithEquipmentID(equipmentID).WithDate(d(2025, time.October, 7)).WithModules(3).BuildDomain()
		other := builder.NewReservationBuilder().WithEquipmentID(equipmentID).WithDate(d(2025, time.October, 8)).WithModules(3).BuildDomain()
		moved := d(2025, time.October, 8)

		err := a.Reschedule(self, reservation.Edit{Date: &moved}, []*reservation.Reservation{self, other})

		rejection, ok := reservation.AsRejection(err)
		require.True(t, ok)
		assert.Equal(t, reservation.KindModulesUnavailable, rejection.Kind)
		assert.Equal(t, d(2025, time.October, 7), self.Date())
	})

	t.Run("過去日への変更NG", func(t *testing.T) {
		self := builder.NewReservationBuilder().WithEquipmentID(equipmentID).WithDate(d(2025, time.October, 7)).BuildDomain()
		past := d(2025, time.October, 1)

		err := a.Reschedule(self, reservation.Edit{Date: &past}, nil)

		rejection, ok := reservation.AsRejection(err)
		require.True(t, ok)
		assert.Equal(t, reservation.KindInvalidDate, rejection.Kind)
	})

	t.Run("当日の終了済みモジュールへの変更NG", func(t *testing.T) {
		self := builder.NewReservationBuilder().WithEquipmentID(equipmentID).WithDate(d(2025, time.October, 7)).WithModules(3).BuildDomain()
		today := d(2025, time.October, 6)

		err := a.Reschedule(self, reservation.Edit{Date: &today, Modules: []int{1, 3}}, nil)

		rejection, ok := reservation.AsRejection(err)
		require.True(t, ok)
		assert.Equal(t, reservation.KindInvalidModule, rejection.Kind)
		assert.Equal(t, []int{1}, rejection.Modules)
		assert.Equal(t, d(2025, time.October, 7), self.Date())
	})

	t.Run("進行中の予約も備考だけなら変更できる", func(t *testing.T) {
		self := builder.NewReservationBuilder().WithEquipmentID(equipmentID).WithDate(d(2025, time.October, 6)).WithModules(1, 2).BuildDomain()
		note := "traer adaptador"

		err := a.Reschedule(self, reservation.Edit{Observations: &note}, []*reservation.Reservation{self})

		require.NoError(t, err)
		assert.Equal(t, note, self.Observations().String())
	})

	t.Run("キャンセル済みは変更不可", func(t *testing.T) {
		self := builder.NewReservationBuilder().AsCancelled().BuildDomain()

		err := a.Reschedule(self, reservation.Edit{Modules: []int{1}}, nil)

		require.ErrorIs(t, err, reservation.ErrReservationCanceled)
	})
}
