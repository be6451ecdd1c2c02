//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"space-booking/internal/handler/api"
	"space-booking/internal/pkg/errs"
	"space-booking/internal/usecase/queries"
	"space-booking/internal/usecase/shared"
	"space-booking/tests/common/builder"
	"space-booking/tests/common/httptest"
	queriesmock "space-booking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type SpaceHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockQueries *queriesmock.MockSpaceQueries
	handler     *api.SpaceHandler
	actor       shared.Actor
}

func (s *SpaceHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockQueries = queriesmock.NewMockSpaceQueries(s.mockCtrl)
	s.handler = api.NewSpaceHandler(s.mockQueries)

	s.actor = shared.Actor{
		UserID: uuid.New(),
		UnitID: uuid.New(),
		Name:   "Bob Owner",
		Role:   shared.RoleOwner,
	}

	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		c.Set("actor", s.actor)
		c.Next()
	}

	s.router.GET("/spaces", authMiddleware, s.handler.List)
	s.router.GET("/spaces/:id", authMiddleware, s.handler.GetByID)
	s.router.GET("/spaces/:id/availability", authMiddleware, s.handler.Availability)
	s.router.GET("/spaces/:id/quote", authMiddleware, s.handler.Quote)
}

func (s *SpaceHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestSpaceHandlerSuite(t *testing.T) {
	suite.Run(t, new(SpaceHandlerTestSuite))
}

func spaceView(b *builder.SpaceBuilder) *queries.SpaceView {
	return &queries.SpaceView{
		ID:                    b.ID,
		Name:                  b.Name,
		SpaceType:             string(b.SpaceType),
		Status:                string(b.Status),
		OwnerRateCents:        b.OwnerRateCents,
		TenantRateCents:       b.TenantRateCents,
		CleaningFeeCents:      b.CleaningFeeCents,
		DepositCents:          b.DepositCents,
		Currency:              b.Currency,
		MinDurationDays:       b.MinDurationDays,
		MaxDurationDays:       b.MaxDurationDays,
		MaxAnnualReservations: b.MaxAnnualReservations,
	}
}

// ================================================================================
// TestList
// ================================================================================

func (s *SpaceHandlerTestSuite) TestList() {
	s.Run("success: lists all spaces", func() {
		views := []*queries.SpaceView{
			spaceView(builder.NewSpaceBuilder()),
			spaceView(builder.NewSpaceBuilder().With(func(b *builder.SpaceBuilder) {
				b.Name = "Parking Spot 3"
			})),
		}
		s.mockQueries.EXPECT().List(gomock.Any()).Return(views, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/spaces", nil, "bearer-token")

		var body []map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body, 2)
		s.Equal("Guest Room A", body[0]["name"])
		s.Equal("Parking Spot 3", body[1]["name"])
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/spaces", nil, "")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})
}

// ================================================================================
// TestGetByID
// ================================================================================

func (s *SpaceHandlerTestSuite) TestGetByID() {
	view := spaceView(builder.NewSpaceBuilder())

	s.Run("success: returns the space", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/spaces/"+view.ID.String(), nil, "bearer-token")

		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(view.ID.String(), body["id"])
		s.Equal(view.Name, body["name"])
	})

	s.Run("error: 404 for unknown space", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID).
			Return(nil, errs.NewCoded(errs.CodeSpaceNotFound, "Space not found", errs.ErrSpaceNotFound, nil)).
			Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/spaces/"+view.ID.String(), nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, errs.CodeSpaceNotFound)
	})

	s.Run("error: 400 on malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/spaces/not-a-uuid", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "INVALID_REQUEST")
	})
}

// ================================================================================
// TestAvailability
// ================================================================================

func (s *SpaceHandlerTestSuite) TestAvailability() {
	id := uuid.New()
	start := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 17, 0, 0, 0, 0, time.UTC)

	s.Run("success: reports availability", func() {
		for _, available := range []bool{true, false} {
			s.mockQueries.EXPECT().IsAvailable(gomock.Any(), id, start, end).
				Return(available, nil).Times(1)

			rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
				"/spaces/"+id.String()+"/availability?start=2026-03-15&end=2026-03-17", nil, "bearer-token")

			var body map[string]bool
			httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
			s.Equal(available, body["available"])
		}
	})

	s.Run("error: 400 when query parameters are missing", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/spaces/"+id.String()+"/availability?start=2026-03-15", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "INVALID_REQUEST")
	})

	s.Run("error: 400 on unparseable dates", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/spaces/"+id.String()+"/availability?start=15.03.2026&end=17.03.2026", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, errs.CodeInvalidDateRange)
	})
}

// ================================================================================
// TestQuote
// ================================================================================

func (s *SpaceHandlerTestSuite) TestQuote() {
	id := uuid.New()
	start := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 17, 0, 0, 0, 0, time.UTC)

	s.Run("success: privileged caller is quoted the owner rate", func() {
		quote := &queries.PriceQuote{
			NightlyRateCents: 2500,
			Days:             3,
			DaysTotalCents:   7500,
			CleaningFeeCents: 3000,
			DepositCents:     10000,
			PlatformFeeCents: 525,
			FixedFeeCents:    150,
			TotalCents:       21175,
			Currency:         "EUR",
		}
		s.mockQueries.EXPECT().PreviewPrice(gomock.Any(), id, start, end, true).
			Return(quote, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/spaces/"+id.String()+"/quote?start=2026-03-15&end=2026-03-17", nil, "bearer-token")

		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(float64(2500), body["nightlyRateCents"])
		s.Equal(float64(21175), body["totalCents"])
	})

	s.Run("error: quoting an unknown space is 404", func() {
		s.mockQueries.EXPECT().PreviewPrice(gomock.Any(), id, start, end, true).
			Return(nil, errs.NewCoded(errs.CodeSpaceNotFound, "Space not found", errs.ErrSpaceNotFound, nil)).
			Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/spaces/"+id.String()+"/quote?start=2026-03-15&end=2026-03-17", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, errs.CodeSpaceNotFound)
	})
}
