package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/classifieds/ads-api/internal/core/domain"
)

// UserView is the public representation of a user.
type UserView struct {
	ID   int64
	Name string
	Role domain.Role
}

// UserService defines use-case operations for accounts and login.
type UserService interface {
	Register(ctx context.Context, name, password string) (int64, error)
	Login(ctx context.Context, name, password string) (uuid.UUID, error)
	Get(ctx context.Context, id int64) (*UserView, error)
	List(ctx context.Context) ([]UserView, error)
	Update(ctx context.Context, id int64, patch domain.UserPatch, p *domain.Principal) (int64, error)
	Delete(ctx context.Context, id int64, p *domain.Principal) error
}
