package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yunanyuansyah/listPembelian/domain"
)

// AuthServiceImpl implements domain.AuthService
type AuthServiceImpl struct {
	userRepo    domain.UserRepository
	passwordSvc domain.PasswordService
	tokenSvc    domain.TokenService
	throttle    domain.LoginThrottle // nil disables throttling
	audit       domain.AuditLogger

	// dummyHash keeps the unknown-email path from skipping the bcrypt
	// comparison, so lookups and mismatches take comparable time.
	dummyHash string
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo domain.UserRepository,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	throttle domain.LoginThrottle,
	audit domain.AuditLogger,
) (domain.AuthService, error) {
	dummyHash, err := passwordSvc.Hash("placeholder-for-constant-time-compare")
	if err != nil {
		return nil, fmt.Errorf("failed to prepare dummy hash: %w", err)
	}
	return &AuthServiceImpl{
		userRepo:    userRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
		throttle:    throttle,
		audit:       audit,
		dummyHash:   dummyHash,
	}, nil
}

// Register implements domain.AuthService. The role is always "user";
// privileged accounts are created through the admin user service.
func (s *AuthServiceImpl) Register(ctx context.Context, nama, email, password, nomor string) (*domain.AuthResult, error) {
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
		Role:     domain.RoleUser,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	tokens, err := s.tokenSvc.IssuePair(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}

	s.logEvent(ctx, domain.NewAuditEvent(domain.UserRegistrationEvent, user.ID).WithEmail(email))
	return &domain.AuthResult{User: user, Tokens: tokens}, nil
}

// Login implements domain.AuthService
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	if s.throttle != nil {
		ok, err := s.throttle.Allow(ctx, email)
		if err != nil {
			return nil, fmt.Errorf("failed to check login throttle: %w", err)
		}
		if !ok {
			return nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.VerifyCredentials(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if user == nil {
		if s.throttle != nil {
			if err := s.throttle.RecordFailure(ctx, email); err != nil {
				return nil, fmt.Errorf("failed to record login failure: %w", err)
			}
		}
		s.logEvent(ctx, domain.NewAuditEvent(domain.UserLoginFailureEvent, 0).
			WithEmail(email).WithError(domain.ErrInvalidCredentials))
		return nil, domain.ErrInvalidCredentials
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, email); err != nil {
			return nil, fmt.Errorf("failed to reset login throttle: %w", err)
		}
	}

	tokens, err := s.tokenSvc.IssuePair(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}

	s.logEvent(ctx, domain.NewAuditEvent(domain.UserLoginEvent, user.ID).WithEmail(email))
	return &domain.AuthResult{User: user, Tokens: tokens}, nil
}

// VerifyCredentials implements domain.AuthService. Unknown email and wrong
// password both come back as (nil, nil); only infrastructure failures are
// errors. A hash comparison runs even when the email is unknown.
func (s *AuthServiceImpl) VerifyCredentials(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			if _, verr := s.passwordSvc.Verify(password, s.dummyHash); verr != nil {
				return nil, verr
			}
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	ok, err := s.passwordSvc.Verify(password, user.Password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return user, nil
}

// Refresh implements domain.AuthService. Only the access token is replaced;
// the refresh token rides until its own expiry.
func (s *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (*domain.AuthResult, error) {
	claims, err := s.tokenSvc.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	access, err := s.tokenSvc.RefreshAccess(refreshToken, user)
	if err != nil {
		return nil, err
	}

	s.logEvent(ctx, domain.NewAuditEvent(domain.TokenRefreshEvent, user.ID).WithEmail(user.Email))
	return &domain.AuthResult{
		User:   user,
		Tokens: &domain.TokenPair{AccessToken: access, RefreshToken: refreshToken},
	}, nil
}

func (s *AuthServiceImpl) logEvent(ctx context.Context, event *domain.AuditEvent) {
	if s.audit != nil {
		s.audit.LogEvent(ctx, event)
	}
}
