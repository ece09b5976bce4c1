// Package identity verifies callers against the tax records store.
package identity

import (
	"context"
	"errors"
	"strings"

	taxrecordRepo "taxline/database/repository/taxrecord"
	"taxline/models"
)

// ErrNotRecognized means the name/customer-id pair matched no record.
// The message is user-facing.
var ErrNotRecognized = errors.New("we could not verify your credentials")

// IdentityService establishes a VerifiedIdentity for a session.
type IdentityService interface {
	Verify(ctx context.Context, name, customerID string) (*models.VerifiedIdentity, error)
}

// DefaultIdentityService implements IdentityService.
type DefaultIdentityService struct {
	Records taxrecordRepo.TaxRecordRepository
}

// Verify matches the full name (case-insensitive, trimmed) and
// customer id (trimmed, exact) against the records store.
func (s *DefaultIdentityService) Verify(ctx context.Context, name, customerID string) (*models.VerifiedIdentity, error) {
	record, err := s.Records.GetByCustomerID(ctx, strings.TrimSpace(customerID))
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrNotRecognized
	}
	if !strings.EqualFold(strings.TrimSpace(name), record.FullName) {
		return nil, ErrNotRecognized
	}
	return &models.VerifiedIdentity{
		CustomerID: record.CustomerID,
		Name:       record.FullName,
	}, nil
}
