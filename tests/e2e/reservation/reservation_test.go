//go:build e2e

package reservation_test

import (
	"fmt"
	"net/http"
	nethttptest "net/http/httptest"
	"sync"
	"testing"
	"time"

	"school-reservations/internal/domain/reservation"
	"school-reservations/internal/domain/user"
	"school-reservations/internal/handler/dto/request"
	resdto "school-reservations/internal/handler/dto/response"
	"school-reservations/internal/infra/cache"
	"school-reservations/internal/usecase/queries"
	"school-reservations/internal/usecase/shared"
	"school-reservations/tests/common/authtest"
	"school-reservations/tests/common/dbtest"
	"school-reservations/tests/common/httptest"
	"school-reservations/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	reservationsURL = "/api/reservations"
	seriesURL       = "/api/reservations/series"
	occupiedURL     = "/api/availability/occupied"
	equipmentURL    = "/api/equipment"
)

type reservationSuite struct {
	e2e.SharedSuite
	equipmentID uuid.UUID
	teacherID   uuid.UUID
	adminToken  string
	teacherTok  string
	base        reservation.Date
}

func TestReservationSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(reservationSuite))
}

func (s *reservationSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
	t := s.T()

	s.equipmentID = dbtest.LookupEquipment(t, s.DB, dbtest.DefaultEquipmentName)
	s.teacherID = dbtest.LookupTeacher(t, s.DB, dbtest.DefaultTeacherEmail)
	s.adminToken = authtest.CreateAndLogin(t, s.DB, s.Router, "admin@school.cl", string(user.RoleAdmin), nil)
	s.teacherTok = authtest.CreateAndLogin(t, s.DB, s.Router, "teacher@school.cl", string(user.RoleTeacher), &s.teacherID)

	today := reservation.DateOf(time.Now().In(s.Config.School.Location()))
	s.base = today.AddDays(30)
}

func (s *reservationSuite) singleRequest(date reservation.Date, modules ...int) request.CreateReservationRequest {
	return request.CreateReservationRequest{
		EquipmentID: s.equipmentID,
		TeacherID:   s.teacherID,
		Date:        date.String(),
		Modules:     modules,
	}
}

func (s *reservationSuite) countReservations() int {
	return dbtest.CountRows(s.T(), s.DB, "SELECT count(*) FROM reservations WHERE status <> 'cancelled'")
}

func (s *reservationSuite) TestCreateSingle() {
	s.Run("予約が作成される", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, s.singleRequest(s.base, 1, 2), s.teacherTok)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var view queries.ReservationView
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &view))
		require.Equal(t, []int{1, 2}, view.Modules)
		require.Equal(t, "pending", view.Status)
		require.Equal(t, dbtest.DefaultEquipmentName, view.EquipmentName)
		require.Equal(t, "08:00 - 09:20", view.Schedule)
		require.Equal(t, view.ID.String(), httptest.AssertLocation(t, w, reservationsURL+"/"))
	})

	s.Run("重複するモジュールは409", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, s.singleRequest(s.base, 1, 2), s.teacherTok)
		require.Equal(t, http.StatusCreated, w.Code)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, s.singleRequest(s.base, 2, 3), s.adminToken)
		httptest.AssertRejection(t, w, http.StatusConflict, string(reservation.KindModulesUnavailable))
		require.Equal(t, 1, s.countReservations())
	})

	s.Run("キャンセル済みの予約はモジュールを占有しない", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, s.singleRequest(s.base, 5), s.teacherTok)
		require.Equal(t, http.StatusCreated, w.Code)
		var view queries.ReservationView
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &view))

		w = httptest.PerformRequest(t, s.Router, http.MethodDelete, reservationsURL+"/"+view.ID.String(), nil, s.teacherTok)
		require.Equal(t, http.StatusNoContent, w.Code)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, s.singleRequest(s.base, 5), s.adminToken)
		require.Equal(t, http.StatusCreated, w.Code, "キャンセル後のモジュールは再予約できるべき")
	})

	s.Run("過去の日付は422", func() {
		t := s.T()

		past := reservation.DateOf(time.Now().In(s.Config.School.Location())).AddDays(-1)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, s.singleRequest(past, 1), s.teacherTok)
		httptest.AssertRejection(t, w, http.StatusUnprocessableEntity, string(reservation.KindInvalidDate))
	})

	s.Run("他の教員の予約は作成できない", func() {
		t := s.T()

		other := dbtest.CreateTestTeacher(t, s.DB, "Ana", "Rojas")
		req := s.singleRequest(s.base, 1)
		req.TeacherID = other

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, req, s.teacherTok)
		require.Equal(t, http.StatusForbidden, w.Code)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, req, s.adminToken)
		require.Equal(t, http.StatusCreated, w.Code, "管理者は他の教員の予約を作成できるべき")
	})
}

func (s *reservationSuite) TestConcurrentCreate() {
	s.Run("同じモジュールへの同時予約は1件だけ成功する", func() {
		t := s.T()

		const workers = 5
		var wg sync.WaitGroup
		responses := make([]*nethttptest.ResponseRecorder, workers)
		for i := range workers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				responses[i] = httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, s.singleRequest(s.base, 7, 8), s.adminToken)
			}()
		}
		wg.Wait()

		created := 0
		for _, w := range responses {
			if w.Code == http.StatusCreated {
				created++
				continue
			}
			httptest.AssertRejection(t, w, http.StatusConflict, string(reservation.KindModulesUnavailable))
		}
		require.Equal(t, 1, created, "成功した予約は1件であるべき")

		slots := dbtest.CountRows(t, s.DB, "SELECT count(*) FROM reservation_slots WHERE equipment_id = $1", s.equipmentID)
		require.Equal(t, 2, slots)
	})
}

func (s *reservationSuite) TestCreateSeries() {
	seriesRequest := func(modules ...int) request.CreateSeriesRequest {
		return request.CreateSeriesRequest{
			CreateReservationRequest: s.singleRequest(s.base, modules...),
			Frequency:                string(reservation.FrequencyWeekly),
			SeriesEndDate:            s.base.AddDays(28).String(),
		}
	}

	s.Run("週次シリーズが作成される", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, seriesURL, seriesRequest(3, 4), s.teacherTok)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var res resdto.SeriesResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &res))
		require.Equal(t, 5, res.Count)
		for i, r := range res.Reservations {
			require.Equal(t, s.base.AddDays(7*i), r.Date)
			require.True(t, r.IsRecurring)
			require.Equal(t, res.SeriesID, r.SeriesID.String())
		}
		require.Equal(t, 5, s.countReservations())
	})

	s.Run("1日でも競合すればシリーズ全体が拒否される", func() {
		t := s.T()

		blocked := s.base.AddDays(14)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, s.singleRequest(blocked, 4), s.adminToken)
		require.Equal(t, http.StatusCreated, w.Code)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, seriesURL, seriesRequest(3, 4), s.teacherTok)
		result := httptest.AssertRejection(t, w, http.StatusConflict, string(reservation.KindSeriesConflicts))
		require.Contains(t, result.Message, blocked.Format("02/01/2006"))
		require.Equal(t, 1, s.countReservations(), "シリーズの一部だけが作成されている")
	})

	s.Run("シリーズのキャンセル件数が返される", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, seriesURL, seriesRequest(9), s.teacherTok)
		require.Equal(t, http.StatusCreated, w.Code)
		var res resdto.SeriesResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &res))

		first := res.Reservations[0].ID.String()
		w = httptest.PerformRequest(t, s.Router, http.MethodDelete, reservationsURL+"/"+first, nil, s.teacherTok)
		require.Equal(t, http.StatusNoContent, w.Code)

		w = httptest.PerformRequest(t, s.Router, http.MethodDelete, seriesURL+"/"+res.SeriesID, nil, s.teacherTok)
		require.Equal(t, http.StatusOK, w.Code)

		var cancelled resdto.CancelSeriesResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &cancelled))
		require.Equal(t, 4, cancelled.UpdatedCount, "キャンセル済みの1件は数えない")
		require.Equal(t, 0, s.countReservations())

		w = httptest.PerformRequest(t, s.Router, http.MethodDelete, seriesURL+"/"+res.SeriesID, nil, s.teacherTok)
		require.Equal(t, http.StatusOK, w.Code)
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &cancelled))
		require.Equal(t, 0, cancelled.UpdatedCount)
	})
}

func (s *reservationSuite) TestStatusTransitions() {
	s.Run("pendingからconfirmed、そしてcancelled", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, s.singleRequest(s.base, 10), s.teacherTok)
		require.Equal(t, http.StatusCreated, w.Code)
		var view queries.ReservationView
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &view))
		statusURL := reservationsURL + "/" + view.ID.String() + "/status"

		for _, step := range []struct {
			status string
			code   int
		}{
			{"confirmed", http.StatusOK},
			{"pending", http.StatusConflict},
			{"cancelled", http.StatusOK},
			{"confirmed", http.StatusConflict},
		} {
			w = httptest.PerformRequest(t, s.Router, http.MethodPatch, statusURL, request.ChangeStatusRequest{Status: step.status}, s.teacherTok)
			require.Equal(t, step.code, w.Code, fmt.Sprintf("status=%s", step.status))
		}
	})
}

func (s *reservationSuite) TestOccupancyCache() {
	s.Run("占有状況がキャッシュされ、予約で無効化される", func() {
		t := s.T()

		key := cache.OccupancyKey(shared.SlotKey{EquipmentID: s.equipmentID, Date: s.base})
		occupied := fmt.Sprintf("%s?date=%s&equipment_id=%s", occupiedURL, s.base.String(), s.equipmentID)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, occupied, nil, s.teacherTok)
		require.Equal(t, http.StatusOK, w.Code)
		require.True(t, s.OccupancyCached(key), "読み取り後にキャッシュされていない")

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, s.singleRequest(s.base, 11, 12), s.teacherTok)
		require.Equal(t, http.StatusCreated, w.Code)
		require.False(t, s.OccupancyCached(key), "予約後にキャッシュが無効化されていない")

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, occupied, nil, s.teacherTok)
		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Occupancy []queries.OccupancyView `json:"occupancy"`
		}
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &body))
		require.Len(t, body.Occupancy, 1)
		require.Equal(t, []int{11, 12}, body.Occupancy[0].OccupiedModules)
	})
}

func (s *reservationSuite) TestEquipmentAdminOnly() {
	s.Run("教員は機材を登録できない", func() {
		t := s.T()

		body := request.CreateEquipmentRequest{Name: "Notebook cart"}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, equipmentURL, body, s.teacherTok)
		require.Equal(t, http.StatusForbidden, w.Code)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, equipmentURL, body, s.adminToken)
		require.Equal(t, http.StatusCreated, w.Code)
	})

	s.Run("利用不可の機材は予約できない", func() {
		t := s.T()

		_, err := s.DB.Exec(t.Context(), "UPDATE equipment SET available = false WHERE id = $1", s.equipmentID)
		require.NoError(t, err)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, s.singleRequest(s.base, 1), s.teacherTok)
		require.Equal(t, http.StatusConflict, w.Code)
	})
}
