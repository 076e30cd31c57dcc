package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/qualitec/erp-backend/internal/core/domain"
	"github.com/qualitec/erp-backend/internal/core/ports"
	"github.com/qualitec/erp-backend/internal/infrastructure/metrics"
)

// RankingService loads the scoring inputs and runs the leaderboard
// computation. It is stateless; every call recomputes from scratch.
type RankingService struct {
	employeeRepo ports.EmployeeRepository
	ncRepo       ports.NonConformanceRepository
	metrics      *metrics.Metrics
	logger       *slog.Logger
}

var _ ports.RankingService = (*RankingService)(nil)

// NewRankingService creates a new ranking service.
func NewRankingService(
	employeeRepo ports.EmployeeRepository,
	ncRepo ports.NonConformanceRepository,
	m *metrics.Metrics,
	logger *slog.Logger,
) ports.RankingService {
	return &RankingService{
		employeeRepo: employeeRepo,
		ncRepo:       ncRepo,
		metrics:      m,
		logger:       logger.With("service", "ranking"),
	}
}

// GetRanking produces the leaderboard for one period and branch scope.
// The roster and the incidents are snapshotted reads; if either fetch fails
// the computation is never attempted.
func (s *RankingService) GetRanking(ctx context.Context, period domain.Period, branchID *uuid.UUID) (*domain.Ranking, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}

	employees, err := s.employeeRepo.ListActive(ctx, branchID)
	if err != nil {
		return nil, err
	}

	from, to := period.Range()
	incidents, err := s.ncRepo.ListForRanking(ctx, branchID, from, to)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	ranking, err := domain.ComputeRanking(employees, incidents)
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordRankingComputation(float64(time.Since(start).Milliseconds()))
		s.metrics.RecordOrphanIncidents(ranking.OrphanCount)
	}

	if ranking.OrphanCount > 0 {
		// Incidents pointing at employees outside the active roster are
		// excluded from scoring but must not pass silently.
		s.logger.Warn("ranking computed with orphan incidents",
			"period", period.String(),
			"orphan_count", ranking.OrphanCount,
		)
	}

	return ranking, nil
}
