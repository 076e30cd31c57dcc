package http

import (
	"encoding/json"
	"errors"
	"io"
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

const maxLoansPerPage = 100

// LoanHandler handles HTTP requests for equipment loans
type LoanHandler struct {
	loanService  ports.LoanService
	errorHandler *ErrorHandler
	logger       *slog.Logger
}

// NewLoanHandler creates a new loan handler
func NewLoanHandler(
	loanService ports.LoanService,
	errorHandler *ErrorHandler,
	logger *slog.Logger,
) *LoanHandler {
	return &LoanHandler{
		loanService:  loanService,
		errorHandler: errorHandler,
		logger:       logger.With("handler", "loan"),
	}
}

// Router sets up a new chi Router for all loan routes.
func (h *LoanHandler) Router() http.Handler {
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r
}

// RegisterRoutes sets up the routing for all loan endpoints.
func (h *LoanHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.HandleList)
	r.Post("/", h.HandleCreate)
	r.Post("/{loanID}/return", h.HandleReturn)
}

// CreateLoanRequest defines the expected JSON body for registering a loan
type CreateLoanRequest struct {
	BranchID   string `json:"branchId"`
	EmployeeID string `json:"employeeId"`
	Equipment  string `json:"equipment"`
	LoanedAt   string `json:"loanedAt"`
	DueOn      string `json:"dueOn"`
}

// Validate validates the create loan request
func (r *CreateLoanRequest) Validate() error {
	v := validation.NewValidator()

	v.Required("branchId", r.BranchID).
		UUID("branchId", r.BranchID)

	v.Required("employeeId", r.EmployeeID).
		UUID("employeeId", r.EmployeeID)

	v.Required("equipment", r.Equipment)

	v.Required("loanedAt", r.LoanedAt).
		Date("loanedAt", r.LoanedAt)

	v.Required("dueOn", r.DueOn).
		Date("dueOn", r.DueOn)

	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// ReturnLoanRequest defines the expected JSON body for returning equipment.
// ReturnedAt is optional and defaults to now.
type ReturnLoanRequest struct {
	ReturnedAt string `json:"returnedAt,omitempty"`
}

// Validate validates the return loan request
func (r *ReturnLoanRequest) Validate() error {
	v := validation.NewValidator()
	v.Date("returnedAt", r.ReturnedAt)
	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// LoanDTO defines the JSON response for equipment loans.
type LoanDTO struct {
	ID         int64   `json:"id"`
	BranchID   string  `json:"branchId"`
	EmployeeID string  `json:"employeeId"`
	Equipment  string  `json:"equipment"`
	LoanedAt   string  `json:"loanedAt"`
	DueOn      string  `json:"dueOn"`
	ReturnedAt *string `json:"returnedAt"`
	Status     string  `json:"status"`
	CreatedAt  string  `json:"createdAt"`
}

func toLoanDTO(loan *domain.EquipmentLoan, now time.Time) LoanDTO {
	var returnedAt *string
	if loan.ReturnedAt != nil {
		value := loan.ReturnedAt.Format("2006-01-02")
		returnedAt = &value
	}

	return LoanDTO{
		ID:         loan.ID,
		BranchID:   loan.BranchID.String(),
		EmployeeID: loan.EmployeeID.String(),
		Equipment:  loan.Equipment,
		LoanedAt:   loan.LoanedAt.Format("2006-01-02"),
		DueOn:      loan.DueOn.Format("2006-01-02"),
		ReturnedAt: returnedAt,
		Status:     string(loan.Status(now)),
		CreatedAt:  loan.CreatedAt.Format(time.RFC3339),
	}
}

// HandleList handles GET /loans
func (h *LoanHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	pagination := validation.ParsePagination(r, maxLoansPerPage)

	v := validation.NewValidator()

	branchID, err := validation.ParseUUIDQueryParam(r, "branchId")
	if err != nil {
		v.Custom("branchId", false, "Must be a valid UUID")
	}

	employeeID, err := validation.ParseUUIDQueryParam(r, "employeeId")
	if err != nil {
		v.Custom("employeeId", false, "Must be a valid UUID")
	}

	if v.HasErrors() {
		h.errorHandler.Handle(w, r, v.Errors())
		return
	}

	params := ports.ListLoansParams{
		BranchID:   branchID,
		EmployeeID: employeeID,
		OnlyOpen:   validation.ParseBoolQueryParam(r, "onlyOpen", false),
		Limit:      pagination.Limit + 1,
		Offset:     pagination.Offset,
	}

	loans, err := h.loanService.List(r.Context(), params)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	now := time.Now().UTC()
	response := make([]LoanDTO, 0, len(loans))
	for _, loan := range loans {
		response = append(response, toLoanDTO(loan, now))
	}

	WritePaginatedSimple(w, response, pagination.Limit, pagination.Offset)
}

// HandleCreate handles POST /loans
func (h *LoanHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	req, err := validation.DecodeAndValidate[CreateLoanRequest](r)
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
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	loanedAt, err := time.Parse("2006-01-02", req.LoanedAt)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	dueOn, err := time.Parse("2006-01-02", req.DueOn)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	loan, err := h.loanService.Create(r.Context(), domain.LoanParams{
		BranchID:   branchID,
		EmployeeID: employeeID,
		Equipment:  req.Equipment,
		LoanedAt:   loanedAt,
		DueOn:      dueOn,
	})
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("equipment loan registered",
		"loan_id", loan.ID,
		"employee_id", loan.EmployeeID,
	)

	WriteCreated(w, toLoanDTO(loan, time.Now().UTC()))
}

// HandleReturn handles POST /loans/{loanID}/return
func (h *LoanHandler) HandleReturn(w http.ResponseWriter, r *http.Request) {
	loanID, err := h.parseLoanID(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	// An empty body means "returned now".
	var req ReturnLoanRequest
	if decodeErr := json.NewDecoder(r.Body).Decode(&req); decodeErr != nil && !errors.Is(decodeErr, io.EOF) {
		h.errorHandler.Handle(w, r, apperrors.NewBadRequestError(decodeErr, "Invalid request body"))
		return
	}

	if err := req.Validate(); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	returnedAt := time.Now().UTC()
	if req.ReturnedAt != "" {
		returnedAt, err = time.Parse("2006-01-02", req.ReturnedAt)
		if err != nil {
			h.errorHandler.Handle(w, r, err)
			return
		}
	}

	loan, err := h.loanService.Return(r.Context(), ports.ReturnLoanParams{
		ID:         loanID,
		ReturnedAt: returnedAt,
	})
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("equipment returned", "loan_id", loanID)

	WriteJSON(w, http.StatusOK, toLoanDTO(loan, time.Now().UTC()))
}

func (h *LoanHandler) parseLoanID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "loanID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewBadRequestError(err, "Invalid loan ID")
	}
	return id, nil
}
