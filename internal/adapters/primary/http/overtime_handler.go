package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/qualitec/erp-backend/internal/adapters/primary/validation"
	"github.com/qualitec/erp-backend/internal/core/domain"
	"github.com/qualitec/erp-backend/internal/core/ports"
)

const maxOvertimePerPage = 100

// OvertimeHandler handles HTTP requests for overtime records
type OvertimeHandler struct {
	overtimeService ports.OvertimeService
	errorHandler    *ErrorHandler
	logger          *slog.Logger
}

// NewOvertimeHandler creates a new overtime handler
func NewOvertimeHandler(
	overtimeService ports.OvertimeService,
	errorHandler *ErrorHandler,
	logger *slog.Logger,
) *OvertimeHandler {
	return &OvertimeHandler{
		overtimeService: overtimeService,
		errorHandler:    errorHandler,
		logger:          logger.With("handler", "overtime"),
	}
}

// Router sets up a new chi Router for all overtime routes.
func (h *OvertimeHandler) Router() http.Handler {
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r
}

// RegisterRoutes sets up the routing for all overtime endpoints.
func (h *OvertimeHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.HandleList)
	r.Post("/", h.HandleCreate)
}

// CreateOvertimeRequest defines the expected JSON body for recording overtime
type CreateOvertimeRequest struct {
	EmployeeID  string  `json:"employeeId"`
	BranchID    string  `json:"branchId"`
	ContractID  string  `json:"contractId"`
	WorkedOn    string  `json:"workedOn"`
	Hours       float64 `json:"hours"`
	Multiplier  int     `json:"multiplier"`
	HourlyRate  float64 `json:"hourlyRate"`
	Description string  `json:"description"`
}

// Validate validates the create overtime request
func (r *CreateOvertimeRequest) Validate() error {
	v := validation.NewValidator()

	v.Required("employeeId", r.EmployeeID).
		UUID("employeeId", r.EmployeeID)

	v.Required("branchId", r.BranchID).
		UUID("branchId", r.BranchID)

	v.Required("contractId", r.ContractID).
		UUID("contractId", r.ContractID)

	v.Required("workedOn", r.WorkedOn).
		Date("workedOn", r.WorkedOn)

	v.Positive("hours", r.Hours)
	v.Custom("multiplier", r.Multiplier == 50 || r.Multiplier == 100, "Must be 50 or 100")
	v.Positive("hourlyRate", r.HourlyRate)

	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// OvertimeDTO defines the JSON response for overtime records.
type OvertimeDTO struct {
	ID          int64   `json:"id"`
	EmployeeID  string  `json:"employeeId"`
	BranchID    string  `json:"branchId"`
	ContractID  string  `json:"contractId"`
	WorkedOn    string  `json:"workedOn"`
	Hours       float64 `json:"hours"`
	Multiplier  int     `json:"multiplier"`
	HourlyRate  float64 `json:"hourlyRate"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description,omitempty"`
	Billed      bool    `json:"billed"`
	CreatedAt   string  `json:"createdAt"`
}

func toOvertimeDTO(record *domain.OvertimeRecord) OvertimeDTO {
	return OvertimeDTO{
		ID:          record.ID,
		EmployeeID:  record.EmployeeID.String(),
		BranchID:    record.BranchID.String(),
		ContractID:  record.ContractID.String(),
		WorkedOn:    record.WorkedOn.Format("2006-01-02"),
		Hours:       record.Hours,
		Multiplier:  int(record.Multiplier),
		HourlyRate:  record.HourlyRate,
		Amount:      record.Amount(),
		Description: record.Description,
		Billed:      record.Billed,
		CreatedAt:   record.CreatedAt.Format(time.RFC3339),
	}
}

// HandleList handles GET /overtime
func (h *OvertimeHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	pagination := validation.ParsePagination(r, maxOvertimePerPage)

	v := validation.NewValidator()

	branchID, err := validation.ParseUUIDQueryParam(r, "branchId")
	if err != nil {
		v.Custom("branchId", false, "Must be a valid UUID")
	}

	employeeID, err := validation.ParseUUIDQueryParam(r, "employeeId")
	if err != nil {
		v.Custom("employeeId", false, "Must be a valid UUID")
	}

	contractID, err := validation.ParseUUIDQueryParam(r, "contractId")
	if err != nil {
		v.Custom("contractId", false, "Must be a valid UUID")
	}

	from, err := validation.ParseDateQueryParam(r, "from")
	if err != nil {
		v.Custom("from", false, "Must be a valid date in YYYY-MM-DD format")
	}

	to, err := validation.ParseDateQueryParam(r, "to")
	if err != nil {
		v.Custom("to", false, "Must be a valid date in YYYY-MM-DD format")
	}

	if v.HasErrors() {
		h.errorHandler.Handle(w, r, v.Errors())
		return
	}

	params := ports.ListOvertimeParams{
		BranchID:     branchID,
		EmployeeID:   employeeID,
		ContractID:   contractID,
		From:         from,
		To:           to,
		OnlyUnbilled: validation.ParseBoolQueryParam(r, "onlyUnbilled", false),
		Limit:        pagination.Limit + 1,
		Offset:       pagination.Offset,
	}

	records, err := h.overtimeService.List(r.Context(), params)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	response := make([]OvertimeDTO, 0, len(records))
	for _, record := range records {
		response = append(response, toOvertimeDTO(record))
	}

	WritePaginatedSimple(w, response, pagination.Limit, pagination.Offset)
}

// HandleCreate handles POST /overtime
func (h *OvertimeHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	req, err := validation.DecodeAndValidate[CreateOvertimeRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := req.Validate(); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	branchID, err := uuid.Parse(req.BranchID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	contractID, err := uuid.Parse(req.ContractID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	workedOn, err := time.Parse("2006-01-02", req.WorkedOn)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	record, err := h.overtimeService.Create(r.Context(), domain.OvertimeParams{
		EmployeeID:  employeeID,
		BranchID:    branchID,
		ContractID:  contractID,
		WorkedOn:    workedOn,
		Hours:       req.Hours,
		Multiplier:  domain.OvertimeMultiplier(req.Multiplier),
		HourlyRate:  req.HourlyRate,
		Description: req.Description,
	})
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("overtime recorded",
		"overtime_id", record.ID,
		"employee_id", record.EmployeeID,
		"contract_id", record.ContractID,
		"amount", record.Amount(),
	)

	WriteCreated(w, toOvertimeDTO(record))
}
