package domain

import "time"

// Role values stored in the users.status column.
const (
	RoleAdmin     = "admin"
	RoleModerator = "moderator"
	RoleUser      = "user"
)

// ValidRole reports whether s is one of the three known roles.
func ValidRole(s string) bool {
	return s == RoleAdmin || s == RoleModerator || s == RoleUser
}

// User represents an account in the system. Password holds the bcrypt hash
// and is never serialized into API responses.
type User struct {
	ID        uint      `json:"id"`
	Nama      string    `json:"nama"`
	Email     string    `json:"email"`
	Password  string    `json:"-" gorm:"column:password"`
	Nomor     string    `json:"nomor"`
	Role      string    `json:"status" gorm:"column:status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// IsModerator reports whether the user holds the moderator role.
func (u *User) IsModerator() bool {
	return u != nil && u.Role == RoleModerator
}

// IsAdminOrModerator reports whether the user may manage shared resources.
func (u *User) IsAdminOrModerator() bool {
	return u.IsAdmin() || u.IsModerator()
}

// Product represents a row of the listPembelian table.
type Product struct {
	ID         uint      `json:"id"`
	Nama       string    `json:"nama"`
	Deskripsi  string    `json:"deskripsi"`
	Harga      float64   `json:"harga"`
	Stok       int       `json:"stok"`
	TotalHarga float64   `json:"total_harga"`
	ImagePath  string    `json:"image_path"`
	CreatedAt  time.Time `json:"created_at"`
}

// Token kinds carried in the "kind" claim.
const (
	TokenKindAccess  = "access"
	TokenKindRefresh = "refresh"
)

// TokenPair is the access/refresh token pair issued at login and
// registration.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// TokenClaims is the decoded payload of a verified token.
type TokenClaims struct {
	UserID    uint
	Email     string
	Role      string
	Kind      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// AuthResult bundles the outcome of a successful login or registration.
type AuthResult struct {
	User   *User
	Tokens *TokenPair
}
