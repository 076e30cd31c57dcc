package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/qualitec/erp-backend/internal/adapters/primary/validation"
	"github.com/qualitec/erp-backend/internal/core/domain"
	apperrors "github.com/qualitec/erp-backend/internal/core/errors"
	"github.com/qualitec/erp-backend/internal/core/ports"
)

const maxNonConformancesPerPage = 100

// NonConformanceHandler handles HTTP requests for quality incidents
type NonConformanceHandler struct {
	ncService    ports.NonConformanceService
	errorHandler *ErrorHandler
	logger       *slog.Logger
}

// NewNonConformanceHandler creates a new non-conformance handler
func NewNonConformanceHandler(
	ncService ports.NonConformanceService,
	errorHandler *ErrorHandler,
	logger *slog.Logger,
) *NonConformanceHandler {
	return &NonConformanceHandler{
		ncService:    ncService,
		errorHandler: errorHandler,
		logger:       logger.With("handler", "nonconformance"),
	}
}

// Router sets up a new chi Router for all non-conformance routes.
func (h *NonConformanceHandler) Router() http.Handler {
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r
}

// RegisterRoutes sets up the routing for all non-conformance endpoints.
func (h *NonConformanceHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.HandleList)
	r.Post("/", h.HandleCreate)

	r.Route("/{ncID}", func(r chi.Router) {
		r.Get("/", h.HandleGet)
		r.Patch("/status", h.HandleUpdateStatus)
	})
}

// --- Request/Response DTOs ---

// CreateNonConformanceRequest defines the expected JSON body for registering an incident
type CreateNonConformanceRequest struct {
	BranchID    string `json:"branchId"`
	EmployeeID  string `json:"employeeId,omitempty"`
	ClientID    string `json:"clientId,omitempty"`
	Severity    string `json:"severity"`
	OccurredOn  string `json:"occurredOn"`
	Description string `json:"description"`
}

// Validate validates the create request. The severity value itself is parsed
// by the service so the legacy alias stays in one place.
func (r *CreateNonConformanceRequest) Validate() error {
	v := validation.NewValidator()

	v.Required("branchId", r.BranchID).
		UUID("branchId", r.BranchID)

	v.UUID("employeeId", r.EmployeeID)
	v.UUID("clientId", r.ClientID)

	v.Required("severity", r.Severity)

	v.Required("occurredOn", r.OccurredOn).
		Date("occurredOn", r.OccurredOn)

	v.Required("description", r.Description)

	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// UpdateNCStatusRequest defines the expected JSON body for status updates
type UpdateNCStatusRequest struct {
	Status           string `json:"status"`
	CorrectiveAction string `json:"correctiveAction,omitempty"`
}

// Validate validates the status update request
func (r *UpdateNCStatusRequest) Validate() error {
	v := validation.NewValidator()

	v.Required("status", r.Status).
		OneOf("status", r.Status, []string{"em_tratativa", "resolvida"})

	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// NonConformanceDTO defines the JSON response for incidents.
type NonConformanceDTO struct {
	ID               int64   `json:"id"`
	BranchID         string  `json:"branchId"`
	EmployeeID       *string `json:"employeeId"`
	ClientID         *string `json:"clientId"`
	Severity         string  `json:"severity"`
	OccurredOn       string  `json:"occurredOn"`
	Description      string  `json:"description"`
	Status           string  `json:"status"`
	CorrectiveAction string  `json:"correctiveAction,omitempty"`
	CreatedAt        string  `json:"createdAt"`
	ResolvedAt       *string `json:"resolvedAt"`
}

func toNonConformanceDTO(nc *domain.NonConformance) NonConformanceDTO {
	var employeeID *string
	if nc.EmployeeID != nil {
		value := nc.EmployeeID.String()
		employeeID = &value
	}

	var clientID *string
	if nc.ClientID != nil {
		value := nc.ClientID.String()
		clientID = &value
	}

	var resolvedAt *string
	if nc.ResolvedAt != nil {
		value := nc.ResolvedAt.Format(time.RFC3339)
		resolvedAt = &value
	}

	return NonConformanceDTO{
		ID:               nc.ID,
		BranchID:         nc.BranchID.String(),
		EmployeeID:       employeeID,
		ClientID:         clientID,
		Severity:         string(nc.Severity),
		OccurredOn:       nc.OccurredOn.Format("2006-01-02"),
		Description:      nc.Description,
		Status:           string(nc.Status),
		CorrectiveAction: nc.CorrectiveAction,
		CreatedAt:        nc.CreatedAt.Format(time.RFC3339),
		ResolvedAt:       resolvedAt,
	}
}

func toNonConformanceDTOs(records []*domain.NonConformance) []NonConformanceDTO {
	response := make([]NonConformanceDTO, 0, len(records))
	for _, nc := range records {
		response = append(response, toNonConformanceDTO(nc))
	}
	return response
}

// --- Handlers ---

// HandleList handles GET /non-conformances
func (h *NonConformanceHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	pagination := validation.ParsePagination(r, maxNonConformancesPerPage)

	v := validation.NewValidator()

	branchID, err := validation.ParseUUIDQueryParam(r, "branchId")
	if err != nil {
		v.Custom("branchId", false, "Must be a valid UUID")
	}

	employeeID, err := validation.ParseUUIDQueryParam(r, "employeeId")
	if err != nil {
		v.Custom("employeeId", false, "Must be a valid UUID")
	}

	clientID, err := validation.ParseUUIDQueryParam(r, "clientId")
	if err != nil {
		v.Custom("clientId", false, "Must be a valid UUID")
	}

	var severity *domain.Severity
	if raw := r.URL.Query().Get("severity"); raw != "" {
		parsed, err := domain.ParseSeverity(raw)
		if err != nil {
			v.Custom("severity", false, "Unknown severity value")
		} else {
			severity = &parsed
		}
	}

	var status *domain.NonConformanceStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := domain.NonConformanceStatus(raw)
		if !s.Valid() {
			v.Custom("status", false, "Unknown status value")
		} else {
			status = &s
		}
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

	params := ports.ListNonConformancesParams{
		BranchID:   branchID,
		EmployeeID: employeeID,
		ClientID:   clientID,
		Severity:   severity,
		Status:     status,
		From:       from,
		To:         to,
		Limit:      pagination.Limit + 1,
		Offset:     pagination.Offset,
	}

	records, err := h.ncService.List(r.Context(), params)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WritePaginatedSimple(w, toNonConformanceDTOs(records), pagination.Limit, pagination.Offset)
}

// HandleCreate handles POST /non-conformances
func (h *NonConformanceHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	req, err := validation.DecodeAndValidate[CreateNonConformanceRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := req.Validate(); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	branchID, err := uuid.Parse(req.BranchID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	var employeeID *uuid.UUID
	if req.EmployeeID != "" {
		parsed, err := uuid.Parse(req.EmployeeID)
		if err != nil {
			h.errorHandler.Handle(w, r, err)
			return
		}
		employeeID = &parsed
	}

	var clientID *uuid.UUID
	if req.ClientID != "" {
		parsed, err := uuid.Parse(req.ClientID)
		if err != nil {
			h.errorHandler.Handle(w, r, err)
			return
		}
		clientID = &parsed
	}

	occurredOn, err := time.Parse("2006-01-02", req.OccurredOn)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	params := ports.CreateNonConformanceParams{
		BranchID:    branchID,
		EmployeeID:  employeeID,
		ClientID:    clientID,
		RawSeverity: req.Severity,
		OccurredOn:  occurredOn,
		Description: req.Description,
	}

	nc, err := h.ncService.Create(r.Context(), params)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("non-conformance registered",
		"nc_id", nc.ID,
		"branch_id", nc.BranchID,
		"severity", nc.Severity,
	)

	WriteCreated(w, toNonConformanceDTO(nc))
}

// HandleGet handles GET /non-conformances/{ncID}
func (h *NonConformanceHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ncID, err := h.parseNCID(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	nc, err := h.ncService.Get(r.Context(), ncID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, toNonConformanceDTO(nc))
}

// HandleUpdateStatus handles PATCH /non-conformances/{ncID}/status
func (h *NonConformanceHandler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	ncID, err := h.parseNCID(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	req, err := validation.DecodeAndValidate[UpdateNCStatusRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := req.Validate(); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	params := ports.UpdateNCStatusParams{
		ID:               ncID,
		Status:           domain.NonConformanceStatus(req.Status),
		CorrectiveAction: req.CorrectiveAction,
	}

	nc, err := h.ncService.UpdateStatus(r.Context(), params)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("non-conformance status updated",
		"nc_id", ncID,
		"new_status", req.Status,
	)

	WriteJSON(w, http.StatusOK, toNonConformanceDTO(nc))
}

func (h *NonConformanceHandler) parseNCID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "ncID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewBadRequestError(err, "Invalid non-conformance ID")
	}
	return id, nil
}
