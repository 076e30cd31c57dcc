package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/qualitec/erp-backend/internal/core/errors"
)

// Branch (filial) is an organizational unit used to scope employees,
// clients, contracts and incidents.
type Branch struct {
	ID        uuid.UUID
	Name      string
	Code      string
	Active    bool
	CreatedAt time.Time
}

// NewBranch creates a valid active branch.
func NewBranch(name, code string) (*Branch, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.ErrNameRequired
	}
	if len(name) > MaxNameLength {
		return nil, apperrors.ErrNameTooLong
	}

	return &Branch{
		ID:        uuid.New(),
		Name:      name,
		Code:      strings.ToUpper(strings.TrimSpace(code)),
		Active:    true,
		CreatedAt: time.Now().UTC(),
	}, nil
}
