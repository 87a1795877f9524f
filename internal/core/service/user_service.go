package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/classifieds/ads-api/internal/core/domain"
	"github.com/classifieds/ads-api/internal/core/ports"
)

// UserService implements registration, login and account management.
type UserService struct {
	users  ports.UserRepository
	creds  *Credentials
	auth   ports.AuthService
	audit  ports.AuditSink
	logger zerolog.Logger
}

func NewUserService(users ports.UserRepository, creds *Credentials, auth ports.AuthService, audit ports.AuditSink, logger zerolog.Logger) *UserService {
	if audit == nil {
		audit = discardAudit{}
	}
	return &UserService{users: users, creds: creds, auth: auth, audit: audit, logger: logger}
}

// Register creates an account with the user role.
func (s *UserService) Register(ctx context.Context, name, password string) (int64, error) {
	if name == "" || password == "" {
		return 0, domain.ErrInvalidCredentials
	}

	hash, err := s.creds.Hash(password)
	if err != nil {
		return 0, err
	}

	user := &domain.User{
		Name:         name,
		PasswordHash: hash,
		Role:         domain.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return 0, domain.ErrUserExists
		}
		return 0, err
	}

	s.logger.Info().Int64("user_id", user.ID).Msg("user registered")
	s.record(user.ID, domain.AuditCreated, user.ID)
	return user.ID, nil
}

// Login checks the credentials and issues a fresh token. Unknown names and
// wrong passwords both fail with domain.ErrUnauthorized.
func (s *UserService) Login(ctx context.Context, name, password string) (uuid.UUID, error) {
	if name == "" || password == "" {
		return uuid.Nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return uuid.Nil, domain.ErrUserNotRegistered
		}
		return uuid.Nil, err
	}

	if !s.creds.Verify(password, user.PasswordHash) {
		return uuid.Nil, domain.ErrInvalidPassword
	}

	token, err := s.auth.Issue(ctx, user.ID)
	if err != nil {
		return uuid.Nil, err
	}

	s.logger.Info().Int64("user_id", user.ID).Msg("user logged in")
	return token.Value, nil
}

func (s *UserService) Get(ctx context.Context, id int64) (*ports.UserView, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	view := toUserView(user)
	return &view, nil
}

func (s *UserService) List(ctx context.Context) ([]ports.UserView, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	views := make([]ports.UserView, len(users))
	for i, u := range users {
		views[i] = toUserView(u)
	}
	return views, nil
}

// Update applies the set fields of patch to the account. A new password is
// hashed before it is stored. Set fields must not be empty, as in Register.
func (s *UserService) Update(ctx context.Context, id int64, patch domain.UserPatch, p *domain.Principal) (int64, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return 0, err
	}
	if err := s.auth.Authorize(p, &user.ID); err != nil {
		return 0, err
	}
	if (patch.Name != nil && *patch.Name == "") || (patch.Password != nil && *patch.Password == "") {
		return 0, domain.ErrInvalidCredentials
	}

	var hash string
	if patch.Password != nil {
		if hash, err = s.creds.Hash(*patch.Password); err != nil {
			return 0, err
		}
	}
	patch.Apply(user, hash)

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return 0, domain.ErrUserExists
		}
		return 0, err
	}

	s.logger.Info().Int64("user_id", user.ID).Int64("actor_id", p.UserID).Msg("user updated")
	s.record(user.ID, domain.AuditUpdated, p.UserID)
	return user.ID, nil
}

// Delete removes the account. Its tokens go with it; its advertisements stay
// without an owner.
func (s *UserService) Delete(ctx context.Context, id int64, p *domain.Principal) error {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.auth.Authorize(p, &user.ID); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, user.ID); err != nil {
		return err
	}
	if err := s.auth.ForgetUser(ctx, user.ID); err != nil {
		s.logger.Warn().Err(err).Int64("user_id", user.ID).Msg("failed to drop cached tokens")
	}

	s.logger.Info().Int64("user_id", user.ID).Int64("actor_id", p.UserID).Msg("user deleted")
	s.record(user.ID, domain.AuditDeleted, p.UserID)
	return nil
}

// EnsureAdmin makes sure an admin account called name exists. An existing
// account keeps its password and is promoted if needed.
func (s *UserService) EnsureAdmin(ctx context.Context, name, password string) error {
	if name == "" || password == "" {
		return domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByName(ctx, name)
	switch {
	case err == nil:
		if user.Role == domain.RoleAdmin {
			return nil
		}
		user.Role = domain.RoleAdmin
		if err := s.users.Update(ctx, user); err != nil {
			return fmt.Errorf("promote admin: %w", err)
		}
		s.logger.Info().Int64("user_id", user.ID).Msg("user promoted to admin")
		return nil
	case !errors.Is(err, domain.ErrNotFound):
		return fmt.Errorf("find admin: %w", err)
	}

	hash, err := s.creds.Hash(password)
	if err != nil {
		return err
	}
	admin := &domain.User{Name: name, PasswordHash: hash, Role: domain.RoleAdmin}
	if err := s.users.Create(ctx, admin); err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	s.logger.Info().Int64("user_id", admin.ID).Msg("admin account created")
	return nil
}

func (s *UserService) record(id int64, action domain.AuditAction, actorID int64) {
	s.audit.Enqueue(domain.AuditEvent{
		Entity:     domain.EntityUser,
		EntityID:   id,
		Action:     action,
		ActorID:    actorID,
		OccurredAt: time.Now().UTC(),
	})
}

func toUserView(u *domain.User) ports.UserView {
	return ports.UserView{ID: u.ID, Name: u.Name, Role: u.Role}
}
