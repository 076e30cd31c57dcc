package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	mw "github.com/qualitec/erp-backend/internal/adapters/primary/http/middleware"
	apperrors "github.com/qualitec/erp-backend/internal/core/errors"
)

// GetRequestID retrieves the request ID from context
func GetRequestID(ctx context.Context) string {
	return mw.GetRequestID(ctx)
}

// ErrorResponse is the standard JSON error response format
type ErrorResponse struct {
	Error   string                 `json:"error"`
	Code    string                 `json:"code,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// ValidationErrorResponse includes field-level validation errors
type ValidationErrorResponse struct {
	Error  string              `json:"error"`
	Code   string              `json:"code"`
	Fields map[string][]string `json:"fields,omitempty"`
}

// ErrorHandler provides centralized error handling with logging
type ErrorHandler struct {
	logger *slog.Logger
}

// NewErrorHandler creates a new error handler with the given logger
func NewErrorHandler(logger *slog.Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// Handle processes an error and writes the appropriate HTTP response
func (h *ErrorHandler) Handle(w http.ResponseWriter, r *http.Request, err error) {
	requestID := GetRequestID(r.Context())

	// Check for AppError first (our custom error type)
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		h.logError(r, appErr.StatusCode, appErr.Err, requestID)
		h.writeErrorResponse(w, appErr.StatusCode, ErrorResponse{
			Error:   appErr.Message,
			Code:    appErr.Code,
			Details: appErr.Details,
		})
		return
	}

	// Check for ValidationErrors
	var validationErrs *apperrors.ValidationErrors
	if errors.As(err, &validationErrs) {
		h.logError(r, http.StatusUnprocessableEntity, err, requestID)
		h.writeValidationErrorResponse(w, validationErrs)
		return
	}

	// Map known domain errors to HTTP responses
	statusCode, response := h.mapDomainError(err)
	h.logError(r, statusCode, err, requestID)
	h.writeErrorResponse(w, statusCode, response)
}

// mapDomainError converts domain errors to HTTP status codes and responses
func (h *ErrorHandler) mapDomainError(err error) (int, ErrorResponse) {
	switch {
	// Authentication & Authorization
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized, ErrorResponse{
			Error: "Authentication required",
			Code:  "UNAUTHORIZED",
		}
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden, ErrorResponse{
			Error: "You do not have permission to perform this action",
			Code:  "FORBIDDEN",
		}

	// Not Found errors
	case errors.Is(err, apperrors.ErrBranchNotFound):
		return http.StatusNotFound, ErrorResponse{
			Error: "Branch not found",
			Code:  "BRANCH_NOT_FOUND",
		}
	case errors.Is(err, apperrors.ErrClientNotFound):
		return http.StatusNotFound, ErrorResponse{
			Error: "Client not found",
			Code:  "CLIENT_NOT_FOUND",
		}
	case errors.Is(err, apperrors.ErrEmployeeNotFound):
		return http.StatusNotFound, ErrorResponse{
			Error: "Employee not found",
			Code:  "EMPLOYEE_NOT_FOUND",
		}
	case errors.Is(err, apperrors.ErrContractNotFound):
		return http.StatusNotFound, ErrorResponse{
			Error: "Contract not found",
			Code:  "CONTRACT_NOT_FOUND",
		}
	case errors.Is(err, apperrors.ErrNonConformanceNotFound):
		return http.StatusNotFound, ErrorResponse{
			Error: "Non-conformance not found",
			Code:  "NON_CONFORMANCE_NOT_FOUND",
		}
	case errors.Is(err, apperrors.ErrLoanNotFound):
		return http.StatusNotFound, ErrorResponse{
			Error: "Equipment loan not found",
			Code:  "LOAN_NOT_FOUND",
		}
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound, ErrorResponse{
			Error: "Resource not found",
			Code:  "NOT_FOUND",
		}

	// Data integrity: a stored severity outside the known set is 422, not 500
	case errors.Is(err, apperrors.ErrUnknownSeverity):
		return http.StatusUnprocessableEntity, ErrorResponse{
			Error: "Unknown severity value",
			Code:  "UNKNOWN_SEVERITY",
		}

	// Validation errors
	case errors.Is(err, apperrors.ErrNameRequired),
		errors.Is(err, apperrors.ErrNameTooLong),
		errors.Is(err, apperrors.ErrBranchRequired),
		errors.Is(err, apperrors.ErrEmployeeRequired),
		errors.Is(err, apperrors.ErrContractRequired),
		errors.Is(err, apperrors.ErrRegistrationRequired),
		errors.Is(err, apperrors.ErrInvalidDocument),
		errors.Is(err, apperrors.ErrInvalidStatus),
		errors.Is(err, apperrors.ErrAttributionRequired),
		errors.Is(err, apperrors.ErrAttributionConflict),
		errors.Is(err, apperrors.ErrOccurrenceDateRequired),
		errors.Is(err, apperrors.ErrDescriptionRequired),
		errors.Is(err, apperrors.ErrCorrectiveActionRequired),
		errors.Is(err, apperrors.ErrInvalidPeriod),
		errors.Is(err, apperrors.ErrInvalidHours),
		errors.Is(err, apperrors.ErrInvalidMultiplier),
		errors.Is(err, apperrors.ErrInvalidRate),
		errors.Is(err, apperrors.ErrInvalidQuantity),
		errors.Is(err, apperrors.ErrEquipmentRequired),
		errors.Is(err, apperrors.ErrDueBeforeLoan),
		errors.Is(err, apperrors.ErrReturnBeforeLoan):
		return http.StatusBadRequest, ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		}

	// Business rule violations
	case errors.Is(err, apperrors.ErrInvalidStatusTransition):
		return http.StatusBadRequest, ErrorResponse{
			Error: "Invalid status transition",
			Code:  "INVALID_STATUS_TRANSITION",
		}
	case errors.Is(err, apperrors.ErrNothingToBill):
		return http.StatusConflict, ErrorResponse{
			Error: "Measurement has no unbilled records to close",
			Code:  "NOTHING_TO_BILL",
		}
	case errors.Is(err, apperrors.ErrAlreadyReturned):
		return http.StatusConflict, ErrorResponse{
			Error: "Equipment was already returned",
			Code:  "ALREADY_RETURNED",
		}

	// Rate limiting
	case errors.Is(err, apperrors.ErrRateLimited):
		return http.StatusTooManyRequests, ErrorResponse{
			Error: "Too many requests. Please try again later.",
			Code:  "RATE_LIMITED",
		}

	// Default to internal server error
	default:
		return http.StatusInternalServerError, ErrorResponse{
			Error: "An unexpected error occurred",
			Code:  "INTERNAL_ERROR",
		}
	}
}

// logError logs the error with appropriate context
func (h *ErrorHandler) logError(r *http.Request, statusCode int, err error, requestID string) {
	logAttrs := []any{
		"request_id", requestID,
		"method", r.Method,
		"path", r.URL.Path,
		"status_code", statusCode,
		"error", err.Error(),
	}

	// Log at different levels based on status code
	switch {
	case statusCode >= 500:
		h.logger.Error("server error", logAttrs...)
	case statusCode >= 400:
		h.logger.Warn("client error", logAttrs...)
	default:
		h.logger.Info("request error", logAttrs...)
	}
}

// writeErrorResponse writes a JSON error response
func (h *ErrorHandler) writeErrorResponse(w http.ResponseWriter, statusCode int, response ErrorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(response)
}

// writeValidationErrorResponse writes a validation error response
func (h *ErrorHandler) writeValidationErrorResponse(w http.ResponseWriter, errs *apperrors.ValidationErrors) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnprocessableEntity)
	_ = json.NewEncoder(w).Encode(ValidationErrorResponse{
		Error:  "Validation failed",
		Code:   "VALIDATION_ERROR",
		Fields: errs.Errors,
	})
}

// HandleError Helper function to handle errors inline in handlers
// Usage: if HandleError(w, r, err, h.errorHandler) { return }
func HandleError(w http.ResponseWriter, r *http.Request, err error, handler *ErrorHandler) bool {
	if err != nil {
		handler.Handle(w, r, err)
		return true
	}
	return false
}
