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

const maxClientsPerPage = 100

// ClientHandler handles HTTP requests for clients
type ClientHandler struct {
	clientService ports.ClientService
	errorHandler  *ErrorHandler
	logger        *slog.Logger
}

// NewClientHandler creates a new client handler
func NewClientHandler(
	clientService ports.ClientService,
	errorHandler *ErrorHandler,
	logger *slog.Logger,
) *ClientHandler {
	return &ClientHandler{
		clientService: clientService,
		errorHandler:  errorHandler,
		logger:        logger.With("handler", "client"),
	}
}

// Router sets up a new chi Router for all client routes.
func (h *ClientHandler) Router() http.Handler {
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r
}

// RegisterRoutes sets up the routing for all client endpoints.
func (h *ClientHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.HandleList)
	r.Post("/", h.HandleCreate)

	r.Route("/{clientID}", func(r chi.Router) {
		r.Get("/", h.HandleGet)
		r.Patch("/active", h.HandleSetActive)
	})
}

// CreateClientRequest defines the expected JSON body for creating a client
type CreateClientRequest struct {
	BranchID string `json:"branchId"`
	Name     string `json:"name"`
	Document string `json:"document"`
}

// Validate validates the create client request. CNPJ digits are checked by
// the domain; here only presence and shape.
func (r *CreateClientRequest) Validate() error {
	v := validation.NewValidator()

	v.Required("branchId", r.BranchID).
		UUID("branchId", r.BranchID)

	v.Required("name", r.Name).
		MaxLength("name", r.Name, domain.MaxNameLength)

	v.Required("document", r.Document)

	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// ClientDTO defines the JSON response for clients.
type ClientDTO struct {
	ID        string `json:"id"`
	BranchID  string `json:"branchId"`
	Name      string `json:"name"`
	Document  string `json:"document"`
	Active    bool   `json:"active"`
	CreatedAt string `json:"createdAt"`
}

func toClientDTO(client *domain.Client) ClientDTO {
	return ClientDTO{
		ID:        client.ID.String(),
		BranchID:  client.BranchID.String(),
		Name:      client.Name,
		Document:  client.Document,
		Active:    client.Active,
		CreatedAt: client.CreatedAt.Format(time.RFC3339),
	}
}

// HandleList handles GET /clients
func (h *ClientHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	pagination := validation.ParsePagination(r, maxClientsPerPage)

	branchID, err := validation.ParseUUIDQueryParam(r, "branchId")
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	params := ports.ListClientsParams{
		BranchID:   branchID,
		OnlyActive: validation.ParseBoolQueryParam(r, "onlyActive", false),
		Limit:      pagination.Limit + 1,
		Offset:     pagination.Offset,
	}

	clients, err := h.clientService.List(r.Context(), params)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	response := make([]ClientDTO, 0, len(clients))
	for _, client := range clients {
		response = append(response, toClientDTO(client))
	}

	WritePaginatedSimple(w, response, pagination.Limit, pagination.Offset)
}

// HandleCreate handles POST /clients
func (h *ClientHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	req, err := validation.DecodeAndValidate[CreateClientRequest](r)
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

	client, err := h.clientService.Create(r.Context(), domain.ClientParams{
		BranchID: branchID,
		Name:     req.Name,
		Document: req.Document,
	})
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("client created", "client_id", client.ID, "branch_id", client.BranchID)

	WriteCreated(w, toClientDTO(client))
}

// HandleGet handles GET /clients/{clientID}
func (h *ClientHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	clientID, err := parseUUIDParam(r, "clientID")
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	client, err := h.clientService.Get(r.Context(), clientID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, toClientDTO(client))
}

// HandleSetActive handles PATCH /clients/{clientID}/active
func (h *ClientHandler) HandleSetActive(w http.ResponseWriter, r *http.Request) {
	clientID, err := parseUUIDParam(r, "clientID")
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

	if err := h.clientService.SetActive(r.Context(), clientID, *req.Active); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteNoContent(w)
}
