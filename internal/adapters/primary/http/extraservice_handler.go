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

const maxExtraServicesPerPage = 100

// ExtraServiceHandler handles HTTP requests for out-of-contract services
type ExtraServiceHandler struct {
	extraService ports.ExtraServiceService
	errorHandler *ErrorHandler
	logger       *slog.Logger
}

// NewExtraServiceHandler creates a new extra-service handler
func NewExtraServiceHandler(
	extraService ports.ExtraServiceService,
	errorHandler *ErrorHandler,
	logger *slog.Logger,
) *ExtraServiceHandler {
	return &ExtraServiceHandler{
		extraService: extraService,
		errorHandler: errorHandler,
		logger:       logger.With("handler", "extraservice"),
	}
}

// Router sets up a new chi Router for all extra-service routes.
func (h *ExtraServiceHandler) Router() http.Handler {
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r
}

// RegisterRoutes sets up the routing for all extra-service endpoints.
func (h *ExtraServiceHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.HandleList)
	r.Post("/", h.HandleCreate)
}

// CreateExtraServiceRequest defines the expected JSON body for recording an extra service
type CreateExtraServiceRequest struct {
	ContractID  string  `json:"contractId"`
	BranchID    string  `json:"branchId"`
	ServiceDate string  `json:"serviceDate"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit"`
	UnitPrice   float64 `json:"unitPrice"`
}

// Validate validates the create extra-service request
func (r *CreateExtraServiceRequest) Validate() error {
	v := validation.NewValidator()

	v.Required("contractId", r.ContractID).
		UUID("contractId", r.ContractID)

	v.Required("branchId", r.BranchID).
		UUID("branchId", r.BranchID)

	v.Required("serviceDate", r.ServiceDate).
		Date("serviceDate", r.ServiceDate)

	v.Required("description", r.Description)

	v.Positive("quantity", r.Quantity)
	v.Positive("unitPrice", r.UnitPrice)

	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// ExtraServiceDTO defines the JSON response for extra services.
type ExtraServiceDTO struct {
	ID          int64   `json:"id"`
	ContractID  string  `json:"contractId"`
	BranchID    string  `json:"branchId"`
	ServiceDate string  `json:"serviceDate"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit,omitempty"`
	UnitPrice   float64 `json:"unitPrice"`
	Amount      float64 `json:"amount"`
	Billed      bool    `json:"billed"`
	CreatedAt   string  `json:"createdAt"`
}

func toExtraServiceDTO(extra *domain.ExtraService) ExtraServiceDTO {
	return ExtraServiceDTO{
		ID:          extra.ID,
		ContractID:  extra.ContractID.String(),
		BranchID:    extra.BranchID.String(),
		ServiceDate: extra.ServiceDate.Format("2006-01-02"),
		Description: extra.Description,
		Quantity:    extra.Quantity,
		Unit:        extra.Unit,
		UnitPrice:   extra.UnitPrice,
		Amount:      extra.Amount(),
		Billed:      extra.Billed,
		CreatedAt:   extra.CreatedAt.Format(time.RFC3339),
	}
}

// HandleList handles GET /extra-services
func (h *ExtraServiceHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	pagination := validation.ParsePagination(r, maxExtraServicesPerPage)

	v := validation.NewValidator()

	contractID, err := validation.ParseUUIDQueryParam(r, "contractId")
	if err != nil {
		v.Custom("contractId", false, "Must be a valid UUID")
	}

	branchID, err := validation.ParseUUIDQueryParam(r, "branchId")
	if err != nil {
		v.Custom("branchId", false, "Must be a valid UUID")
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

	params := ports.ListExtraServicesParams{
		ContractID:   contractID,
		BranchID:     branchID,
		From:         from,
		To:           to,
		OnlyUnbilled: validation.ParseBoolQueryParam(r, "onlyUnbilled", false),
		Limit:        pagination.Limit + 1,
		Offset:       pagination.Offset,
	}

	records, err := h.extraService.List(r.Context(), params)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	response := make([]ExtraServiceDTO, 0, len(records))
	for _, extra := range records {
		response = append(response, toExtraServiceDTO(extra))
	}

	WritePaginatedSimple(w, response, pagination.Limit, pagination.Offset)
}

// HandleCreate handles POST /extra-services
func (h *ExtraServiceHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	req, err := validation.DecodeAndValidate[CreateExtraServiceRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := req.Validate(); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	contractID, err := uuid.Parse(req.ContractID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	branchID, err := uuid.Parse(req.BranchID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	serviceDate, err := time.Parse("2006-01-02", req.ServiceDate)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	extra, err := h.extraService.Create(r.Context(), domain.ExtraServiceParams{
		ContractID:  contractID,
		BranchID:    branchID,
		ServiceDate: serviceDate,
		Description: req.Description,
		Quantity:    req.Quantity,
		Unit:        req.Unit,
		UnitPrice:   req.UnitPrice,
	})
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("extra service recorded",
		"extra_service_id", extra.ID,
		"contract_id", extra.ContractID,
		"amount", extra.Amount(),
	)

	WriteCreated(w, toExtraServiceDTO(extra))
}
