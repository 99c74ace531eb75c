package services

import (
	"context"
	"errors"
	"testing"

	"github.com/yunanyuansyah/listPembelian/domain"
	"github.com/yunanyuansyah/listPembelian/internal/mocks"
)

func strPtr(s string) *string { return &s }

func TestUserServiceImpl_Create(t *testing.T) {
	tests := []struct {
		name          string
		role          string
		setupMocks    func(*mocks.MockUserRepository, *mocks.MockPasswordService)
		expectedError error
		expectedRole  string
	}{
		{
			name:         "explicit moderator role",
			role:         domain.RoleModerator,
			setupMocks:   func(*mocks.MockUserRepository, *mocks.MockPasswordService) {},
			expectedRole: domain.RoleModerator,
		},
		{
			name:         "empty role defaults to user",
			role:         "",
			setupMocks:   func(*mocks.MockUserRepository, *mocks.MockPasswordService) {},
			expectedRole: domain.RoleUser,
		},
		{
			name:          "unknown role rejected",
			role:          "superadmin",
			setupMocks:    func(*mocks.MockUserRepository, *mocks.MockPasswordService) {},
			expectedError: domain.ErrInvalidRole,
		},
		{
			name: "weak password rejected",
			role: domain.RoleUser,
			setupMocks: func(userRepo *mocks.MockUserRepository, passwordSvc *mocks.MockPasswordService) {
				passwordSvc.CheckStrengthFunc = func(password string) error {
					return domain.ErrWeakPassword
				}
			},
			expectedError: domain.ErrWeakPassword,
		},
		{
			name: "duplicate email rejected",
			role: domain.RoleUser,
			setupMocks: func(userRepo *mocks.MockUserRepository, passwordSvc *mocks.MockPasswordService) {
				userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
					return createValidUser(), nil
				}
			},
			expectedError: domain.ErrEmailTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := mocks.NewMockUserRepository()
			passwordSvc := mocks.NewMockPasswordService()
			tt.setupMocks(userRepo, passwordSvc)

			svc := NewUserService(userRepo, passwordSvc, mocks.NewMockAuditLogger())
			user, err := svc.Create(context.Background(), "Siti", "siti@example.com", "Abcdef1!", "0856", tt.role)

			if tt.expectedError != nil {
				if !errors.Is(err, tt.expectedError) {
					t.Errorf("expected error %v, got %v", tt.expectedError, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if user.Role != tt.expectedRole {
				t.Errorf("expected role %q, got %q", tt.expectedRole, user.Role)
			}
			if user.Password != "hashed_Abcdef1!" {
				t.Errorf("expected stored password to be hashed, got %q", user.Password)
			}
		})
	}
}

func TestUserServiceImpl_Update(t *testing.T) {
	tests := []struct {
		name          string
		fields        domain.UserUpdate
		setupMocks    func(*mocks.MockUserRepository, *mocks.MockPasswordService)
		expectedError error
		validate      func(t *testing.T, user *domain.User)
	}{
		{
			name:   "partial update leaves other fields alone",
			fields: domain.UserUpdate{Nama: strPtr("Budi Santoso")},
			setupMocks: func(userRepo *mocks.MockUserRepository, passwordSvc *mocks.MockPasswordService) {
				userRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.User, error) {
					return createValidUser(), nil
				}
			},
			validate: func(t *testing.T, user *domain.User) {
				if user.Nama != "Budi Santoso" {
					t.Errorf("expected updated name, got %q", user.Nama)
				}
				if user.Email != "budi@example.com" {
					t.Errorf("email must be untouched, got %q", user.Email)
				}
			},
		},
		{
			name:   "new password is strength checked and rehashed",
			fields: domain.UserUpdate{Password: strPtr("Newpass1!")},
			setupMocks: func(userRepo *mocks.MockUserRepository, passwordSvc *mocks.MockPasswordService) {
				userRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.User, error) {
					return createValidUser(), nil
				}
			},
			validate: func(t *testing.T, user *domain.User) {
				if user.Password != "hashed_Newpass1!" {
					t.Errorf("expected rehashed password, got %q", user.Password)
				}
			},
		},
		{
			name:   "weak new password rejected",
			fields: domain.UserUpdate{Password: strPtr("weak")},
			setupMocks: func(userRepo *mocks.MockUserRepository, passwordSvc *mocks.MockPasswordService) {
				userRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.User, error) {
					return createValidUser(), nil
				}
				passwordSvc.CheckStrengthFunc = func(password string) error {
					return domain.ErrWeakPassword
				}
			},
			expectedError: domain.ErrWeakPassword,
		},
		{
			name:   "invalid role rejected",
			fields: domain.UserUpdate{Role: strPtr("root")},
			setupMocks: func(userRepo *mocks.MockUserRepository, passwordSvc *mocks.MockPasswordService) {
				userRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.User, error) {
					return createValidUser(), nil
				}
			},
			expectedError: domain.ErrInvalidRole,
		},
		{
			name:          "missing user",
			fields:        domain.UserUpdate{Nama: strPtr("Nobody")},
			setupMocks:    func(*mocks.MockUserRepository, *mocks.MockPasswordService) {},
			expectedError: domain.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := mocks.NewMockUserRepository()
			passwordSvc := mocks.NewMockPasswordService()
			tt.setupMocks(userRepo, passwordSvc)

			svc := NewUserService(userRepo, passwordSvc, mocks.NewMockAuditLogger())
			user, err := svc.Update(context.Background(), 1, tt.fields)

			if tt.expectedError != nil {
				if !errors.Is(err, tt.expectedError) {
					t.Errorf("expected error %v, got %v", tt.expectedError, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tt.validate(t, user)
		})
	}
}

func TestUserServiceImpl_ChangeRole(t *testing.T) {
	tests := []struct {
		name          string
		actorID       uint
		targetID      uint
		role          string
		setupMocks    func(*mocks.MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful role change",
			actorID:  1,
			targetID: 2,
			role:     domain.RoleModerator,
			setupMocks: func(userRepo *mocks.MockUserRepository) {
				userRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.User, error) {
					user := createValidUser()
					user.ID = id
					return user, nil
				}
				userRepo.UpdateRoleFunc = func(ctx context.Context, id uint, role string) (*domain.User, error) {
					user := createValidUser()
					user.ID = id
					user.Role = role
					return user, nil
				}
			},
		},
		{
			name:          "invalid role",
			actorID:       1,
			targetID:      2,
			role:          "owner",
			setupMocks:    func(*mocks.MockUserRepository) {},
			expectedError: domain.ErrInvalidRole,
		},
		{
			name:          "actor cannot change own role",
			actorID:       5,
			targetID:      5,
			role:          domain.RoleAdmin,
			setupMocks:    func(*mocks.MockUserRepository) {},
			expectedError: domain.ErrSelfRoleChange,
		},
		{
			name:          "target missing",
			actorID:       1,
			targetID:      404,
			role:          domain.RoleUser,
			setupMocks:    func(*mocks.MockUserRepository) {},
			expectedError: domain.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := mocks.NewMockUserRepository()
			tt.setupMocks(userRepo)
			audit := mocks.NewMockAuditLogger()

			svc := NewUserService(userRepo, mocks.NewMockPasswordService(), audit)
			user, err := svc.ChangeRole(context.Background(), tt.actorID, tt.targetID, tt.role)

			if tt.expectedError != nil {
				if !errors.Is(err, tt.expectedError) {
					t.Errorf("expected error %v, got %v", tt.expectedError, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if user.Role != tt.role {
				t.Errorf("expected role %q, got %q", tt.role, user.Role)
			}
			if len(audit.EventsOfType(domain.UserRoleChangeEvent)) != 1 {
				t.Error("expected a role change audit event")
			}
		})
	}
}

func TestUserServiceImpl_Delete(t *testing.T) {
	tests := []struct {
		name          string
		actorID       uint
		targetID      uint
		setupMocks    func(*mocks.MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful delete",
			actorID:  1,
			targetID: 2,
			setupMocks: func(userRepo *mocks.MockUserRepository) {
				userRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.User, error) {
					user := createValidUser()
					user.ID = id
					return user, nil
				}
			},
		},
		{
			name:          "actor cannot delete own account",
			actorID:       3,
			targetID:      3,
			setupMocks:    func(*mocks.MockUserRepository) {},
			expectedError: domain.ErrSelfDelete,
		},
		{
			name:          "target missing",
			actorID:       1,
			targetID:      404,
			setupMocks:    func(*mocks.MockUserRepository) {},
			expectedError: domain.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := mocks.NewMockUserRepository()
			tt.setupMocks(userRepo)
			audit := mocks.NewMockAuditLogger()

			svc := NewUserService(userRepo, mocks.NewMockPasswordService(), audit)
			err := svc.Delete(context.Background(), tt.actorID, tt.targetID)

			if tt.expectedError != nil {
				if !errors.Is(err, tt.expectedError) {
					t.Errorf("expected error %v, got %v", tt.expectedError, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(audit.EventsOfType(domain.UserDeleteEvent)) != 1 {
				t.Error("expected a delete audit event")
			}
		})
	}
}
