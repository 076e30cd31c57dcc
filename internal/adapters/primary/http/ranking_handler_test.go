package http

import (
	"encoding/json"
	"io"
	"log/slog"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/qualitec/erp-backend/internal/core/domain"
	apperrors "github.com/qualitec/erp-backend/internal/core/errors"
	"github.com/qualitec/erp-backend/internal/core/mocks"
)

func newRankingTestServer(svc *mocks.MockRankingService) *httptest.Server {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewRankingHandler(svc, NewErrorHandler(logger), logger)

	r := chi.NewRouter()
	r.Route("/ranking", handler.RegisterRoutes)
	return httptest.NewServer(r)
}

func TestRankingHandler_HandleGetRanking(t *testing.T) {
	t.Run("explicit period", func(t *testing.T) {
		svc := mocks.NewMockRankingService()
		server := newRankingTestServer(svc)
		defer server.Close()

		employeeID := uuid.New()
		period := domain.Period{Year: 2025, Month: time.March}
		svc.On("GetRanking", mock.Anything, period, (*uuid.UUID)(nil)).
			Return(&domain.Ranking{
				Entries: []domain.RankingEntry{
					{
						EmployeeID:   employeeID,
						EmployeeName: "Maria Silva",
						GraveCount:   1,
						TotalCount:   1,
						Score:        80,
						Position:     1,
					},
				},
				TotalEmployees: 1,
			}, nil)

		resp, err := stdhttp.Get(server.URL + "/ranking?year=2025&month=3")
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, stdhttp.StatusOK, resp.StatusCode)

		var dto RankingDTO
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&dto))
		assert.Equal(t, "2025-03", dto.Period)
		require.Len(t, dto.Entries, 1)
		assert.Equal(t, 80, dto.Entries[0].Score)
		assert.Equal(t, 1, dto.Entries[0].Position)
		assert.False(t, dto.Entries[0].Perfect)

		svc.AssertExpectations(t)
	})

	t.Run("invalid month is a validation error", func(t *testing.T) {
		svc := mocks.NewMockRankingService()
		server := newRankingTestServer(svc)
		defer server.Close()

		resp, err := stdhttp.Get(server.URL + "/ranking?year=2025&month=14")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, stdhttp.StatusBadRequest, resp.StatusCode)
		svc.AssertNotCalled(t, "GetRanking")
	})

	t.Run("malformed branch filter", func(t *testing.T) {
		svc := mocks.NewMockRankingService()
		server := newRankingTestServer(svc)
		defer server.Close()

		resp, err := stdhttp.Get(server.URL + "/ranking?branchId=not-a-uuid")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, stdhttp.StatusBadRequest, resp.StatusCode)
		svc.AssertNotCalled(t, "GetRanking")
	})

	t.Run("corrupt stored severity maps to 422", func(t *testing.T) {
		svc := mocks.NewMockRankingService()
		server := newRankingTestServer(svc)
		defer server.Close()

		svc.On("GetRanking", mock.Anything, mock.Anything, (*uuid.UUID)(nil)).
			Return(nil, apperrors.ErrUnknownSeverity)

		resp, err := stdhttp.Get(server.URL + "/ranking?year=2025&month=3")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, stdhttp.StatusUnprocessableEntity, resp.StatusCode)
	})
}

func TestRankingHandler_HandleListPeriods(t *testing.T) {
	svc := mocks.NewMockRankingService()
	server := newRankingTestServer(svc)
	defer server.Close()

	resp, err := stdhttp.Get(server.URL + "/ranking/periods")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, stdhttp.StatusOK, resp.StatusCode)

	var body ListResponse[PeriodDTO]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Data, 12)

	now := time.Now().UTC()
	assert.Equal(t, now.Year(), body.Data[0].Year)
	assert.Equal(t, int(now.Month()), body.Data[0].Month)
}
