package domain

import (
	"context"
	"errors"

	"github.com/passgate/passgate/pkg/db/pagination"
)

type ListPaymentsRequest struct {
	pagination.Page
	Search string `form:"search"`
}

type ListPaymentsResponse struct {
	Payments []Payment           `json:"payments"`
	PageInfo pagination.PageInfo `json:"pageInfo"`
}

type Service interface {
	// List returns payments newest first, optionally filtered by a search
	// term matched against email, reference, and event name.
	List(ctx context.Context, req ListPaymentsRequest) (ListPaymentsResponse, error)

	// GetByReference resolves a payment by its provider reference.
	// ErrNotFound means the webhook has not recorded it yet.
	GetByReference(ctx context.Context, reference string) (Payment, error)

	Count(ctx context.Context) (int64, error)
	TotalRevenue(ctx context.Context) (string, error)
}

var (
	ErrNotFound           = errors.New("payment_not_found")
	ErrDuplicateReference = errors.New("duplicate_payment_reference")
)
