package service

import (
	"context"

	"github.com/ticketflow/tracker/internal/auth"
	"github.com/ticketflow/tracker/internal/domain"
	"github.com/ticketflow/tracker/internal/repository"
	apperrors "github.com/ticketflow/tracker/pkg/util"
)

// UserService exposes account queries beyond the auth flows.
type UserService struct {
	users repository.UserRepository
}

// UserListInput describes admin listing parameters.
type UserListInput struct {
	Search   *string
	Page     int
	PageSize int
}

// NewUserService constructs the service.
func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// List returns all accounts. Restricted to admins.
func (s *UserService) List(ctx context.Context, actor *domain.User, input UserListInput) ([]domain.User, error) {
	if !auth.IsAdmin(actor) {
		return nil, apperrors.NewForbidden("admin role required")
	}

	page := input.Page
	if page <= 0 {
		page = 1
	}
	pageSize := input.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}

	return s.users.List(ctx, repository.UserFilter{
		SearchTerm: input.Search,
		Limit:      pageSize,
		Offset:     (page - 1) * pageSize,
	})
}
