package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/qualitec/erp-backend/internal/adapters/primary/validation"
	"github.com/qualitec/erp-backend/internal/core/domain"
	"github.com/qualitec/erp-backend/internal/core/ports"
)

const rankingPeriodWindow = 12

// RankingHandler handles HTTP requests for the employee quality ranking
type RankingHandler struct {
	rankingService ports.RankingService
	errorHandler   *ErrorHandler
	logger         *slog.Logger
}

// NewRankingHandler creates a new ranking handler
func NewRankingHandler(
	rankingService ports.RankingService,
	errorHandler *ErrorHandler,
	logger *slog.Logger,
) *RankingHandler {
	return &RankingHandler{
		rankingService: rankingService,
		errorHandler:   errorHandler,
		logger:         logger.With("handler", "ranking"),
	}
}

// Router sets up a new chi Router for all ranking routes.
func (h *RankingHandler) Router() http.Handler {
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r
}

// RegisterRoutes sets up the routing for all ranking endpoints.
func (h *RankingHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.HandleGetRanking)
	r.Get("/periods", h.HandleListPeriods)
}

// --- Response DTOs ---

// RankingEntryDTO is one employee's line in the leaderboard.
type RankingEntryDTO struct {
	Position     int    `json:"position"`
	EmployeeID   string `json:"employeeId"`
	EmployeeName string `json:"employeeName"`
	BranchID     string `json:"branchId"`
	BranchName   string `json:"branchName"`
	Leve         int    `json:"leve"`
	Media        int    `json:"media"`
	Grave        int    `json:"grave"`
	Gravissima   int    `json:"gravissima"`
	TotalCount   int    `json:"totalCount"`
	Score        int    `json:"score"`
	Perfect      bool   `json:"perfect"`
}

// RankingDTO is the full leaderboard response.
type RankingDTO struct {
	Period         string            `json:"period"`
	Entries        []RankingEntryDTO `json:"entries"`
	Podium         []RankingEntryDTO `json:"podium"`
	TotalEmployees int               `json:"totalEmployees"`
	PerfectCount   int               `json:"perfectCount"`
	PerfectPercent float64           `json:"perfectPercent"`
	AverageScore   float64           `json:"averageScore"`
}

// PeriodDTO is one selectable reporting period.
type PeriodDTO struct {
	Year  int    `json:"year"`
	Month int    `json:"month"`
	Label string `json:"label"`
}

func toRankingEntryDTO(entry domain.RankingEntry) RankingEntryDTO {
	return RankingEntryDTO{
		Position:     entry.Position,
		EmployeeID:   entry.EmployeeID.String(),
		EmployeeName: entry.EmployeeName,
		BranchID:     entry.BranchID.String(),
		BranchName:   entry.BranchName,
		Leve:         entry.LeveCount,
		Media:        entry.MediaCount,
		Grave:        entry.GraveCount,
		Gravissima:   entry.GravissimaCount,
		TotalCount:   entry.TotalCount,
		Score:        entry.Score,
		Perfect:      entry.Perfect(),
	}
}

func toRankingDTO(period domain.Period, ranking *domain.Ranking) RankingDTO {
	entries := make([]RankingEntryDTO, 0, len(ranking.Entries))
	for _, entry := range ranking.Entries {
		entries = append(entries, toRankingEntryDTO(entry))
	}

	podium := make([]RankingEntryDTO, 0, domain.PodiumSize)
	for _, entry := range ranking.Podium() {
		podium = append(podium, toRankingEntryDTO(entry))
	}

	return RankingDTO{
		Period:         period.String(),
		Entries:        entries,
		Podium:         podium,
		TotalEmployees: ranking.TotalEmployees,
		PerfectCount:   ranking.PerfectCount,
		PerfectPercent: ranking.PerfectPercent,
		AverageScore:   ranking.AverageScore,
	}
}

// --- Handlers ---

// HandleGetRanking handles GET /ranking?year=&month=&branchId=
// Without year and month it defaults to the current calendar month.
func (h *RankingHandler) HandleGetRanking(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()
	year := validation.ParseIntQueryParam(r, "year", now.Year())
	month := validation.ParseIntQueryParam(r, "month", int(now.Month()))

	period := domain.Period{Year: year, Month: time.Month(month)}
	if err := period.Validate(); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	branchID, err := validation.ParseUUIDQueryParam(r, "branchId")
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	ranking, err := h.rankingService.GetRanking(r.Context(), period, branchID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, toRankingDTO(period, ranking))
}

// HandleListPeriods handles GET /ranking/periods
// Returns the selectable reporting months, newest first.
func (h *RankingHandler) HandleListPeriods(w http.ResponseWriter, r *http.Request) {
	periods := domain.RecentPeriods(time.Now().UTC(), rankingPeriodWindow)

	response := make([]PeriodDTO, 0, len(periods))
	for _, p := range periods {
		response = append(response, PeriodDTO{
			Year:  p.Year,
			Month: int(p.Month),
			Label: p.String(),
		})
	}

	WriteList(w, response)
}
