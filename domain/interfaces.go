package domain

import "context"

// UserRepository defines user data access operations.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
	FindAll(ctx context.Context) ([]User, error)
	Update(ctx context.Context, user *User) error
	UpdateRole(ctx context.Context, id uint, role string) (*User, error)
	Delete(ctx context.Context, id uint) error
}

// ProductRepository defines product data access operations.
type ProductRepository interface {
	Create(ctx context.Context, product *Product) error
	FindByID(ctx context.Context, id uint) (*Product, error)
	FindAll(ctx context.Context) ([]Product, error)
	Search(ctx context.Context, query string) ([]Product, error)
	Update(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id uint) error
}

// PasswordService defines password hashing and policy operations.
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(password, hash string) (bool, error)
	CheckStrength(password string) error
}

// TokenService defines token issuing and verification.
type TokenService interface {
	IssuePair(user *User) (*TokenPair, error)
	VerifyAccessToken(token string) (*TokenClaims, error)
	VerifyRefreshToken(token string) (*TokenClaims, error)
	RefreshAccess(refreshToken string, user *User) (string, error)
}

// AuthService defines authentication business logic.
type AuthService interface {
	Register(ctx context.Context, nama, email, password, nomor string) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	VerifyCredentials(ctx context.Context, email, password string) (*User, error)
	Refresh(ctx context.Context, refreshToken string) (*AuthResult, error)
}

// UserService defines administrative account management.
type UserService interface {
	List(ctx context.Context) ([]User, error)
	Get(ctx context.Context, id uint) (*User, error)
	Create(ctx context.Context, nama, email, password, nomor, role string) (*User, error)
	Update(ctx context.Context, id uint, fields UserUpdate) (*User, error)
	ChangeRole(ctx context.Context, actorID, id uint, role string) (*User, error)
	Delete(ctx context.Context, actorID, id uint) error
}

// UserUpdate carries optional fields for a profile update. Nil pointers are
// left untouched; a non-nil Password is strength-checked and re-hashed.
type UserUpdate struct {
	Nama     *string
	Email    *string
	Password *string
	Nomor    *string
	Role     *string
}

// CapabilityService answers "may this role perform X". The role to
// capability mapping lives in exactly one place behind this interface.
type CapabilityService interface {
	HasCapability(role, capability string) bool
}

// LoginThrottle bounds repeated credential failures per account.
type LoginThrottle interface {
	// Allow reports whether another attempt for the key may proceed.
	Allow(ctx context.Context, key string) (bool, error)
	// RecordFailure counts a failed attempt against the key.
	RecordFailure(ctx context.Context, key string) error
	// Reset clears the counter after a successful login.
	Reset(ctx context.Context, key string) error
}
