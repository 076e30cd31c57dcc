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

// ContractHandler handles HTTP requests for contracts and their measurements
type ContractHandler struct {
	contractService    ports.ContractService
	measurementService ports.MeasurementService
	errorHandler       *ErrorHandler
	logger             *slog.Logger
}

// NewContractHandler creates a new contract handler
func NewContractHandler(
	contractService ports.ContractService,
	measurementService ports.MeasurementService,
	errorHandler *ErrorHandler,
	logger *slog.Logger,
) *ContractHandler {
	return &ContractHandler{
		contractService:    contractService,
		measurementService: measurementService,
		errorHandler:       errorHandler,
		logger:             logger.With("handler", "contract"),
	}
}

// Router sets up a new chi Router for all contract routes.
func (h *ContractHandler) Router() http.Handler {
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r
}

// RegisterRoutes sets up the routing for all contract endpoints.
func (h *ContractHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.HandleList)

	r.Route("/{contractID}", func(r chi.Router) {
		r.Get("/", h.HandleGet)
		r.Get("/measurement", h.HandleGetMeasurement)
		r.Post("/measurement/close", h.HandleCloseMeasurement)
	})
}

// ContractDTO defines the JSON response for contracts.
type ContractDTO struct {
	ID        string `json:"id"`
	ClientID  string `json:"clientId"`
	BranchID  string `json:"branchId"`
	Name      string `json:"name"`
	Code      string `json:"code"`
	Active    bool   `json:"active"`
	CreatedAt string `json:"createdAt"`
}

// MeasurementItemDTO is one billed line of a measurement.
type MeasurementItemDTO struct {
	Source      string  `json:"source"`
	SourceID    int64   `json:"sourceId,omitempty"`
	Description string  `json:"description"`
	Unit        string  `json:"unit,omitempty"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	Total       float64 `json:"total"`
}

// MeasurementDTO defines the JSON response for a monthly measurement.
type MeasurementDTO struct {
	ContractID   string               `json:"contractId"`
	ContractName string               `json:"contractName"`
	Period       string               `json:"period"`
	Items        []MeasurementItemDTO `json:"items"`
	Total        float64              `json:"total"`
}

func toContractDTO(contract *domain.Contract) ContractDTO {
	return ContractDTO{
		ID:        contract.ID.String(),
		ClientID:  contract.ClientID.String(),
		BranchID:  contract.BranchID.String(),
		Name:      contract.Name,
		Code:      contract.Code,
		Active:    contract.Active,
		CreatedAt: contract.CreatedAt.Format(time.RFC3339),
	}
}

func toMeasurementDTO(m *domain.Measurement) MeasurementDTO {
	items := make([]MeasurementItemDTO, 0, len(m.Items))
	for _, item := range m.Items {
		items = append(items, MeasurementItemDTO{
			Source:      string(item.Source),
			SourceID:    item.SourceID,
			Description: item.Description,
			Unit:        item.Unit,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Total:       item.Total,
		})
	}

	return MeasurementDTO{
		ContractID:   m.ContractID.String(),
		ContractName: m.ContractName,
		Period:       m.Period.String(),
		Items:        items,
		Total:        m.Total,
	}
}

// HandleList handles GET /contracts
func (h *ContractHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	branchID, err := validation.ParseUUIDQueryParam(r, "branchId")
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	onlyActive := validation.ParseBoolQueryParam(r, "onlyActive", false)

	contracts, err := h.contractService.List(r.Context(), branchID, onlyActive)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	response := make([]ContractDTO, 0, len(contracts))
	for _, contract := range contracts {
		response = append(response, toContractDTO(contract))
	}

	WriteList(w, response)
}

// HandleGet handles GET /contracts/{contractID}
func (h *ContractHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	contractID, err := parseUUIDParam(r, "contractID")
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	contract, err := h.contractService.Get(r.Context(), contractID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, toContractDTO(contract))
}

// HandleGetMeasurement handles GET /contracts/{contractID}/measurement?year=&month=
// The statement is derived on the fly; nothing is persisted.
func (h *ContractHandler) HandleGetMeasurement(w http.ResponseWriter, r *http.Request) {
	contractID, err := parseUUIDParam(r, "contractID")
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	period, err := h.parsePeriod(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	measurement, err := h.measurementService.GetMeasurement(r.Context(), contractID, period)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, toMeasurementDTO(measurement))
}

// HandleCloseMeasurement handles POST /contracts/{contractID}/measurement/close
func (h *ContractHandler) HandleCloseMeasurement(w http.ResponseWriter, r *http.Request) {
	contractID, err := parseUUIDParam(r, "contractID")
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	period, err := h.parsePeriod(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	measurement, err := h.measurementService.CloseMeasurement(r.Context(), contractID, period)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("measurement closed",
		"contract_id", contractID,
		"period", period.String(),
		"total", measurement.Total,
	)

	WriteJSON(w, http.StatusOK, toMeasurementDTO(measurement))
}

func (h *ContractHandler) parsePeriod(r *http.Request) (domain.Period, error) {
	now := time.Now().UTC()
	year := validation.ParseIntQueryParam(r, "year", now.Year())
	month := validation.ParseIntQueryParam(r, "month", int(now.Month()))

	period := domain.Period{Year: year, Month: time.Month(month)}
	if err := period.Validate(); err != nil {
		return domain.Period{}, err
	}
	return period, nil
}
