//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"school-reservations/internal/domain/reservation"
	"school-reservations/internal/domain/user"
	"school-reservations/internal/handler/api"
	"school-reservations/internal/handler/middleware"
	"school-reservations/internal/usecase/queries"
	"school-reservations/internal/usecase/shared"
	"school-reservations/tests/common/httptest"
	queriesmock "school-reservations/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AvailabilityHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockQueries *queriesmock.MockAvailabilityQueries
	actor       shared.Actor
}

func (s *AvailabilityHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockQueries = queriesmock.NewMockAvailabilityQueries(s.mockCtrl)
	h := api.NewAvailabilityHandler(s.mockQueries)

	teacherID := uuid.New()
	s.actor = shared.Actor{UserID: uuid.New(), Role: user.RoleTeacher, TeacherID: &teacherID}

	s.router.Use(func(c *gin.Context) {
		if c.GetHeader("Authorization") != "" {
			middleware.SetActor(c, s.actor)
		}
		c.Next()
	})
	s.router.GET("/availability/occupied", h.Occupied)
	s.router.GET("/availability/free", h.Free)
	s.router.POST("/availability/check", h.Check)
	s.router.POST("/availability/series-preview", h.PreviewSeries)
	s.router.GET("/schedule/modules", h.Schedule)
}

func (s *AvailabilityHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAvailabilityHandlerSuite(t *testing.T) {
	suite.Run(t, new(AvailabilityHandlerTestSuite))
}

func (s *AvailabilityHandlerTestSuite) TestOccupied() {
	date := reservation.MustDate(2025, time.October, 6)

	s.Run("success: returns occupancy for one equipment", func() {
		equipmentID := uuid.New()
		s.mockQueries.EXPECT().Occupied(gomock.Any(), date, &equipmentID).
			Return([]*queries.OccupancyView{{EquipmentID: equipmentID, Date: date, OccupiedModules: []int{1, 2}}}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/availability/occupied?date=2025-10-06&equipment_id="+equipmentID.String(), nil, "token")

		var response struct {
			Occupancy []*queries.OccupancyView `json:"occupancy"`
		}
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Require().Len(response.Occupancy, 1)
		s.Equal([]int{1, 2}, response.Occupancy[0].OccupiedModules)
	})

	s.Run("success: empty list instead of null", func() {
		s.mockQueries.EXPECT().Occupied(gomock.Any(), date, gomock.Nil()).Return(nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/availability/occupied?date=2025-10-06", nil, "token")

		var response struct {
			Occupancy []*queries.OccupancyView `json:"occupancy"`
		}
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.NotNil(response.Occupancy)
	})

	s.Run("error: 422 for a malformed date", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/availability/occupied?date=tomorrow", nil, "token")
		s.Equal(http.StatusUnprocessableEntity, rec.Code)
	})
}

func (s *AvailabilityHandlerTestSuite) TestFree() {
	s.Run("success: returns free modules", func() {
		equipmentID := uuid.New()
		date := reservation.MustDate(2025, time.October, 6)
		s.mockQueries.EXPECT().Free(gomock.Any(), date, equipmentID).
			Return(&queries.FreeModulesView{EquipmentID: equipmentID, Date: date, FreeModules: []int{4, 5}}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/availability/free?date=2025-10-06&equipment_id="+equipmentID.String(), nil, "token")

		var response queries.FreeModulesView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal([]int{4, 5}, response.FreeModules)
	})

	s.Run("error: 400 when equipment_id is missing", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/availability/free?date=2025-10-06", nil, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid query")
	})
}

func (s *AvailabilityHandlerTestSuite) TestCheck() {
	s.Run("success: reports the conflicting modules", func() {
		equipmentID := uuid.New()
		s.mockQueries.EXPECT().Check(gomock.Any(), queries.CheckAvailabilityRequest{
			EquipmentID: equipmentID,
			Date:        reservation.MustDate(2025, time.October, 6),
			Modules:     []int{2, 3},
		}).Return(&queries.AvailabilityView{Available: false, OccupiedModules: []int{3, 4}, ConflictingModules: []int{3}}, nil).Times(1)

		body := map[string]any{"equipment_id": equipmentID.String(), "date": "2025-10-06", "modules": []int{2, 3}}
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/availability/check", body, "token")

		var response queries.AvailabilityView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.False(response.Available)
		s.Equal([]int{3}, response.ConflictingModules)
	})

	s.Run("error: 422 when the usecase rejects the modules", func() {
		s.mockQueries.EXPECT().Check(gomock.Any(), gomock.Any()).
			Return(nil, &reservation.Rejection{Kind: reservation.KindInvalidModule, Modules: []int{16}}).Times(1)

		body := map[string]any{"equipment_id": uuid.NewString(), "date": "2025-10-06", "modules": []int{16}}
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/availability/check", body, "token")
		s.Equal(http.StatusUnprocessableEntity, rec.Code)
	})
}

func (s *AvailabilityHandlerTestSuite) TestPreviewSeries() {
	s.Run("success: defaults the teacher to the caller", func() {
		s.mockQueries.EXPECT().PreviewSeries(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, req queries.SeriesPreviewRequest) (*queries.SeriesPreviewView, error) {
				s.Equal(*s.actor.TeacherID, req.TeacherID)
				s.Equal(reservation.FrequencyBiweekly, req.Frequency)
				return &queries.SeriesPreviewView{
					Dates: []reservation.Date{reservation.MustDate(2025, time.October, 6), reservation.MustDate(2025, time.October, 20)},
					Valid: true,
				}, nil
			}).Times(1)

		body := map[string]any{
			"equipment_id":    uuid.NewString(),
			"date":            "2025-10-06",
			"modules":         []int{1},
			"frequency":       "biweekly",
			"series_end_date": "2025-10-31",
		}
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/availability/series-preview", body, "token")

		var response queries.SeriesPreviewView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.True(response.Valid)
		s.Len(response.Dates, 2)
	})

	s.Run("error: 401 without an actor", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/availability/series-preview", map[string]any{}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})
}

func (s *AvailabilityHandlerTestSuite) TestSchedule() {
	s.Run("success: uses today when no date is given", func() {
		s.mockQueries.EXPECT().Schedule(gomock.Any(), reservation.Date{}).
			Return(&queries.ScheduleView{CurrentModule: 1, Modules: []queries.ModuleSlotView{{Module: 1, Start: "08:00", End: "08:40"}}}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/schedule/modules", nil, "")

		var response queries.ScheduleView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("08:00", response.Modules[0].Start)
	})
}
