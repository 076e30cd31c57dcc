package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/qualitec/erp-backend/internal/adapters/primary/validation"
	"github.com/qualitec/erp-backend/internal/core/domain"
	apperrors "github.com/qualitec/erp-backend/internal/core/errors"
	"github.com/qualitec/erp-backend/internal/core/ports"
)

// BranchHandler handles HTTP requests for branches
type BranchHandler struct {
	branchService ports.BranchService
	errorHandler  *ErrorHandler
	logger        *slog.Logger
}

// NewBranchHandler creates a new branch handler
func NewBranchHandler(
	branchService ports.BranchService,
	errorHandler *ErrorHandler,
	logger *slog.Logger,
) *BranchHandler {
	return &BranchHandler{
		branchService: branchService,
		errorHandler:  errorHandler,
		logger:        logger.With("handler", "branch"),
	}
}

// Router sets up a new chi Router for all branch routes.
func (h *BranchHandler) Router() http.Handler {
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r
}

// RegisterRoutes sets up the routing for all branch endpoints.
func (h *BranchHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.HandleList)
	r.Post("/", h.HandleCreate)

	r.Route("/{branchID}", func(r chi.Router) {
		r.Get("/", h.HandleGet)
		r.Patch("/active", h.HandleSetActive)
	})
}

// CreateBranchRequest defines the expected JSON body for creating a branch
type CreateBranchRequest struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// Validate validates the create branch request
func (r *CreateBranchRequest) Validate() error {
	v := validation.NewValidator()

	v.Required("name", r.Name).
		MaxLength("name", r.Name, domain.MaxNameLength)

	v.Required("code", r.Code).
		MaxLength("code", r.Code, 10)

	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// SetActiveRequest defines the expected JSON body for activation toggles
type SetActiveRequest struct {
	Active *bool `json:"active"`
}

// Validate validates the set active request
func (r *SetActiveRequest) Validate() error {
	v := validation.NewValidator()
	v.NotNil("active", r.Active)
	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// BranchDTO defines the JSON response for branches.
type BranchDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Code      string `json:"code"`
	Active    bool   `json:"active"`
	CreatedAt string `json:"createdAt"`
}

func toBranchDTO(branch *domain.Branch) BranchDTO {
	return BranchDTO{
		ID:        branch.ID.String(),
		Name:      branch.Name,
		Code:      branch.Code,
		Active:    branch.Active,
		CreatedAt: branch.CreatedAt.Format(time.RFC3339),
	}
}

// HandleList handles GET /branches
func (h *BranchHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	onlyActive := validation.ParseBoolQueryParam(r, "onlyActive", false)

	branches, err := h.branchService.List(r.Context(), onlyActive)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	response := make([]BranchDTO, 0, len(branches))
	for _, branch := range branches {
		response = append(response, toBranchDTO(branch))
	}

	WriteList(w, response)
}

// HandleCreate handles POST /branches
func (h *BranchHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	req, err := validation.DecodeAndValidate[CreateBranchRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := req.Validate(); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	branch, err := h.branchService.Create(r.Context(), req.Name, req.Code)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("branch created", "branch_id", branch.ID, "code", branch.Code)

	WriteCreated(w, toBranchDTO(branch))
}

// HandleGet handles GET /branches/{branchID}
func (h *BranchHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	branchID, err := parseUUIDParam(r, "branchID")
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	branch, err := h.branchService.Get(r.Context(), branchID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, toBranchDTO(branch))
}

// HandleSetActive handles PATCH /branches/{branchID}/active
func (h *BranchHandler) HandleSetActive(w http.ResponseWriter, r *http.Request) {
	branchID, err := parseUUIDParam(r, "branchID")
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

	if err := h.branchService.SetActive(r.Context(), branchID, *req.Active); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("branch active flag updated", "branch_id", branchID, "active", *req.Active)

	WriteNoContent(w)
}

// parseUUIDParam parses a UUID path parameter.
func parseUUIDParam(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperrors.NewBadRequestError(err, "Invalid "+name)
	}
	return id, nil
}
