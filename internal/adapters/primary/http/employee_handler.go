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

const maxEmployeesPerPage = 100

// EmployeeHandler handles HTTP requests for employees
type EmployeeHandler struct {
	employeeService ports.EmployeeService
	errorHandler    *ErrorHandler
	logger          *slog.Logger
}

// NewEmployeeHandler creates a new employee handler
func NewEmployeeHandler(
	employeeService ports.EmployeeService,
	errorHandler *ErrorHandler,
	logger *slog.Logger,
) *EmployeeHandler {
	return &EmployeeHandler{
		employeeService: employeeService,
		errorHandler:    errorHandler,
		logger:          logger.With("handler", "employee"),
	}
}

// Router sets up a new chi Router for all employee routes.
func (h *EmployeeHandler) Router() http.Handler {
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r
}

// RegisterRoutes sets up the routing for all employee endpoints.
func (h *EmployeeHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.HandleList)
	r.Post("/", h.HandleCreate)

	r.Route("/{employeeID}", func(r chi.Router) {
		r.Get("/", h.HandleGet)
		r.Patch("/active", h.HandleSetActive)
	})
}

// CreateEmployeeRequest defines the expected JSON body for creating an employee
type CreateEmployeeRequest struct {
	BranchID     string `json:"branchId"`
	FullName     string `json:"fullName"`
	Registration string `json:"registration"`
	RoleTitle    string `json:"roleTitle"`
	AdmittedOn   string `json:"admittedOn"`
}

// Validate validates the create employee request
func (r *CreateEmployeeRequest) Validate() error {
	v := validation.NewValidator()

	v.Required("branchId", r.BranchID).
		UUID("branchId", r.BranchID)

	v.Required("fullName", r.FullName).
		MaxLength("fullName", r.FullName, domain.MaxNameLength)

	v.Required("registration", r.Registration)

	v.Date("admittedOn", r.AdmittedOn)

	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// EmployeeDTO defines the JSON response for employees.
type EmployeeDTO struct {
	ID           string `json:"id"`
	BranchID     string `json:"branchId"`
	BranchName   string `json:"branchName,omitempty"`
	FullName     string `json:"fullName"`
	Registration string `json:"registration"`
	RoleTitle    string `json:"roleTitle,omitempty"`
	Active       bool   `json:"active"`
	AdmittedOn   string `json:"admittedOn,omitempty"`
	CreatedAt    string `json:"createdAt"`
}

func toEmployeeDTO(employee *domain.Employee) EmployeeDTO {
	admittedOn := ""
	if !employee.AdmittedOn.IsZero() {
		admittedOn = employee.AdmittedOn.Format("2006-01-02")
	}

	return EmployeeDTO{
		ID:           employee.ID.String(),
		BranchID:     employee.BranchID.String(),
		BranchName:   employee.BranchName,
		FullName:     employee.FullName,
		Registration: employee.Registration,
		RoleTitle:    employee.RoleTitle,
		Active:       employee.Active,
		AdmittedOn:   admittedOn,
		CreatedAt:    employee.CreatedAt.Format(time.RFC3339),
	}
}

// HandleList handles GET /employees
func (h *EmployeeHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	pagination := validation.ParsePagination(r, maxEmployeesPerPage)

	branchID, err := validation.ParseUUIDQueryParam(r, "branchId")
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	params := ports.ListEmployeesParams{
		BranchID:   branchID,
		OnlyActive: validation.ParseBoolQueryParam(r, "onlyActive", false),
		Limit:      pagination.Limit + 1,
		Offset:     pagination.Offset,
	}

	employees, err := h.employeeService.List(r.Context(), params)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	response := make([]EmployeeDTO, 0, len(employees))
	for _, employee := range employees {
		response = append(response, toEmployeeDTO(employee))
	}

	WritePaginatedSimple(w, response, pagination.Limit, pagination.Offset)
}

// HandleCreate handles POST /employees
func (h *EmployeeHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	req, err := validation.DecodeAndValidate[CreateEmployeeRequest](r)
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

	var admittedOn time.Time
	if req.AdmittedOn != "" {
		admittedOn, err = time.Parse("2006-01-02", req.AdmittedOn)
		if err != nil {
			h.errorHandler.Handle(w, r, err)
			return
		}
	}

	employee, err := h.employeeService.Create(r.Context(), domain.EmployeeParams{
		BranchID:     branchID,
		FullName:     req.FullName,
		Registration: req.Registration,
		RoleTitle:    req.RoleTitle,
		AdmittedOn:   admittedOn,
	})
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("employee created",
		"employee_id", employee.ID,
		"branch_id", employee.BranchID,
	)

	WriteCreated(w, toEmployeeDTO(employee))
}

// HandleGet handles GET /employees/{employeeID}
func (h *EmployeeHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	employeeID, err := parseUUIDParam(r, "employeeID")
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	employee, err := h.employeeService.Get(r.Context(), employeeID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, toEmployeeDTO(employee))
}

// HandleSetActive handles PATCH /employees/{employeeID}/active
// Deactivated employees drop out of the ranking roster on the next query.
func (h *EmployeeHandler) HandleSetActive(w http.ResponseWriter, r *http.Request) {
	employeeID, err := parseUUIDParam(r, "employeeID")
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	req, err := validation.DecodeAndValidate[SetActiveRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := req.Validate(); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := h.employeeService.SetActive(r.Context(), employeeID, *req.Active); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("employee active flag updated", "employee_id", employeeID, "active", *req.Active)

	WriteNoContent(w)
}
