package domain

import (
	"context"
	"errors"
)

type CreateAdminRequest struct {
	FullName    string   `json:"fullName"`
	Email       string   `json:"email"`
	Password    string   `json:"password"`
	Permissions []string `json:"permissions"`
}

type UpdateAdminRequest struct {
	FullName    *string   `json:"fullName"`
	Email       *string   `json:"email"`
	Password    *string   `json:"password"`
	Permissions *[]string `json:"permissions"`
}

type Service interface {
	Create(ctx context.Context, req CreateAdminRequest) (Admin, error)
	Update(ctx context.Context, id string, req UpdateAdminRequest) (Admin, error)

	// Delete refuses to remove the acting admin's own account.
	Delete(ctx context.Context, id string, actorID string) error

	GetByID(ctx context.Context, id string) (Admin, error)
	GetByEmail(ctx context.Context, email string) (Admin, error)
	List(ctx context.Context) ([]Admin, error)
	ListPermissions(ctx context.Context) ([]Permission, error)
	Count(ctx context.Context) (int64, error)
}

var (
	ErrNotFound          = errors.New("admin_not_found")
	ErrInvalidID         = errors.New("invalid_admin_id")
	ErrInvalidName       = errors.New("invalid_admin_name")
	ErrInvalidEmail      = errors.New("invalid_admin_email")
	ErrEmailTaken        = errors.New("admin_email_taken")
	ErrWeakPassword      = errors.New("weak_admin_password")
	ErrUnknownPermission = errors.New("unknown_permission")
	ErrSelfDelete        = errors.New("admin_self_delete")
)
