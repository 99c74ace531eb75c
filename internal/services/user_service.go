package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yunanyuansyah/listPembelian/domain"
)

// UserServiceImpl implements domain.UserService, the admin-facing account
// management operations.
type UserServiceImpl struct {
	userRepo    domain.UserRepository
	passwordSvc domain.PasswordService
	audit       domain.AuditLogger
}

// NewUserService creates a new user service
func NewUserService(userRepo domain.UserRepository, passwordSvc domain.PasswordService, audit domain.AuditLogger) domain.UserService {
	return &UserServiceImpl{userRepo: userRepo, passwordSvc: passwordSvc, audit: audit}
}

// List implements domain.UserService
func (s *UserServiceImpl) List(ctx context.Context) ([]domain.User, error) {
	return s.userRepo.FindAll(ctx)
}

// Get implements domain.UserService
func (s *UserServiceImpl) Get(ctx context.Context, id uint) (*domain.User, error) {
	return s.userRepo.FindByID(ctx, id)
}

// Create implements domain.UserService. Unlike registration, an explicit
// role is accepted here.
func (s *UserServiceImpl) Create(ctx context.Context, nama, email, password, nomor, role string) (*domain.User, error) {
	if role == "" {
		role = domain.RoleUser
	}
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidRole
	}
	if err := s.passwordSvc.CheckStrength(password); err != nil {
		return nil, err
	}

	_, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil {
		return nil, domain.ErrEmailTaken
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	hashed, err := s.passwordSvc.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Nama:     nama,
		Email:    email,
		Password: hashed,
		Nomor:    nomor,
		Role:     role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Update implements domain.UserService. Absent fields are left untouched; a
// new password is strength-checked and re-hashed before it is stored.
func (s *UserServiceImpl) Update(ctx context.Context, id uint, fields domain.UserUpdate) (*domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if fields.Nama != nil {
		user.Nama = *fields.Nama
	}
	if fields.Email != nil {
		user.Email = *fields.Email
	}
	if fields.Nomor != nil {
		user.Nomor = *fields.Nomor
	}
	if fields.Role != nil {
		if !domain.ValidRole(*fields.Role) {
			return nil, domain.ErrInvalidRole
		}
		user.Role = *fields.Role
	}
	if fields.Password != nil {
		if err := s.passwordSvc.CheckStrength(*fields.Password); err != nil {
			return nil, err
		}
		hashed, err := s.passwordSvc.Hash(*fields.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.Password = hashed
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// ChangeRole implements domain.UserService. An admin may not change their
// own role.
func (s *UserServiceImpl) ChangeRole(ctx context.Context, actorID, id uint, role string) (*domain.User, error) {
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidRole
	}
	if actorID == id {
		return nil, domain.ErrSelfRoleChange
	}

	if _, err := s.userRepo.FindByID(ctx, id); err != nil {
		return nil, err
	}

	user, err := s.userRepo.UpdateRole(ctx, id, role)
	if err != nil {
		return nil, err
	}

	s.logEvent(ctx, domain.NewAuditEvent(domain.UserRoleChangeEvent, id).
		WithEmail(user.Email).
		WithMetadata("actor_id", actorID).
		WithMetadata("new_role", role))
	return user, nil
}

// Delete implements domain.UserService. An admin may not delete their own
// account.
func (s *UserServiceImpl) Delete(ctx context.Context, actorID, id uint) error {
	if actorID == id {
		return domain.ErrSelfDelete
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logEvent(ctx, domain.NewAuditEvent(domain.UserDeleteEvent, id).
		WithEmail(user.Email).
		WithMetadata("actor_id", actorID))
	return nil
}

func (s *UserServiceImpl) logEvent(ctx context.Context, event *domain.AuditEvent) {
	if s.audit != nil {
		s.audit.LogEvent(ctx, event)
	}
}
