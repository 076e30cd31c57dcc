package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/qualitec/erp-backend/internal/core/errors"
)

// Client is a contracting company served by a branch.
type Client struct {
	ID        uuid.UUID
	BranchID  uuid.UUID
	Name      string
	Document  string // CNPJ, stored as digits only
	Active    bool
	CreatedAt time.Time
}

// ClientParams holds the input for registering a client.
type ClientParams struct {
	BranchID uuid.UUID
	Name     string
	Document string
}

// NewClient creates a valid active client.
func NewClient(params ClientParams) (*Client, error) {
	if params.BranchID == uuid.Nil {
		return nil, apperrors.ErrBranchRequired
	}
	if strings.TrimSpace(params.Name) == "" {
		return nil, apperrors.ErrNameRequired
	}
	if len(params.Name) > MaxNameLength {
		return nil, apperrors.ErrNameTooLong
	}

	document := normalizeDocument(params.Document)
	if document != "" && len(document) != 14 {
		return nil, apperrors.ErrInvalidDocument
	}

	return &Client{
		ID:        uuid.New(),
		BranchID:  params.BranchID,
		Name:      params.Name,
		Document:  document,
		Active:    true,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// normalizeDocument strips CNPJ punctuation, keeping digits only.
func normalizeDocument(document string) string {
	var b strings.Builder
	for _, r := range document {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
