package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"fraisreels/internal/deduction"
	"fraisreels/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubSummaryService struct {
	summary service.PersonYearSummaryResponse
	err     error
}

func (s *stubSummaryService) GetPersonSummary(ctx context.Context, personID string, year int) (service.PersonYearSummaryResponse, error) {
	return s.summary, s.err
}

func (s *stubSummaryService) GetPersonDetail(ctx context.Context, personID string, year int) (service.PersonYearDetailResponse, error) {
	return service.PersonYearDetailResponse{}, s.err
}

func (s *stubSummaryService) GetDashboard(ctx context.Context, year int) (service.DashboardResponse, error) {
	return service.DashboardResponse{Year: year}, s.err
}

func newSummaryRouter(svc service.SummaryService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewSummaryHandler(svc).RegisterRoutes(router.Group(""))
	return router
}

func TestSummaryHandler_GetPersonSummary(t *testing.T) {
	stub := &stubSummaryService{summary: service.PersonYearSummaryResponse{
		PersonID:       "p1",
		Year:           2024,
		TotalDeduction: "1139.27",
	}}
	router := newSummaryRouter(stub)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/persons/p1/summary/2024", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data service.PersonYearSummaryResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "1139.27", body.Data.TotalDeduction)
}

func TestSummaryHandler_InvalidYearParam(t *testing.T) {
	router := newSummaryRouter(&stubSummaryService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/persons/p1/summary/not-a-year", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSummaryHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"person not found", fmt.Errorf("person not found: %w", gorm.ErrRecordNotFound), http.StatusNotFound},
		{"period out of range", deduction.ErrInvalidPeriod, http.StatusUnprocessableEntity},
		{"unknown fiscal power", deduction.ErrUnknownFiscalPower, http.StatusUnprocessableEntity},
		{"anything else", fmt.Errorf("connection refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newSummaryRouter(&stubSummaryService{err: tt.err})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/dashboard/2024", nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code)
		})
	}
}
