package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/yunanyuansyah/listPembelian/domain"
)

// Issuer and audience strings bind every token to this application.
const (
	TokenIssuer   = "listbarang-app"
	TokenAudience = "listbarang-users"
)

// appClaims is the wire shape of both token kinds. Access and refresh tokens
// share the claim set and signing key; the "kind" claim is what keeps a
// refresh token from being accepted where an access token is expected.
type appClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"status"`
	Kind   string `json:"kind"`
	jwt.RegisteredClaims
}

// JWTServiceImpl implements domain.TokenService
type JWTServiceImpl struct {
	secretKey       []byte
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
}

// NewJWTService creates a new JWT service
func NewJWTService(secretKey string, accessTTL, refreshTTL time.Duration) domain.TokenService {
	return &JWTServiceImpl{
		secretKey:       []byte(secretKey),
		accessTokenTTL:  accessTTL,
		refreshTokenTTL: refreshTTL,
	}
}

func (j *JWTServiceImpl) mint(user *domain.User, kind string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := appClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		Kind:   kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    TokenIssuer,
			Audience:  jwt.ClaimStrings{TokenAudience},
			Subject:   fmt.Sprintf("%d", user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(j.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", kind, err)
	}
	return signed, nil
}

// IssuePair implements domain.TokenService. The caller is expected to have
// stripped the password field from user before handing it over.
func (j *JWTServiceImpl) IssuePair(user *domain.User) (*domain.TokenPair, error) {
	access, err := j.mint(user, domain.TokenKindAccess, j.accessTokenTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := j.mint(user, domain.TokenKindRefresh, j.refreshTokenTTL)
	if err != nil {
		return nil, err
	}
	return &domain.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// VerifyAccessToken implements domain.TokenService
func (j *JWTServiceImpl) VerifyAccessToken(tokenString string) (*domain.TokenClaims, error) {
	return j.verify(tokenString, domain.TokenKindAccess)
}

// VerifyRefreshToken implements domain.TokenService
func (j *JWTServiceImpl) VerifyRefreshToken(tokenString string) (*domain.TokenClaims, error) {
	return j.verify(tokenString, domain.TokenKindRefresh)
}

// verify validates signature, issuer, audience, expiry, and token kind.
// Expiry maps to domain.ErrTokenExpired; every other failure collapses to
// domain.ErrTokenInvalid so callers can decide refresh-vs-reject.
func (j *JWTServiceImpl) verify(tokenString, wantKind string) (*domain.TokenClaims, error) {
	var claims appClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims,
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, domain.ErrTokenInvalid
			}
			return j.secretKey, nil
		},
		jwt.WithIssuer(TokenIssuer),
		jwt.WithAudience(TokenAudience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}
	if !token.Valid {
		return nil, domain.ErrTokenInvalid
	}
	if claims.Kind != wantKind {
		return nil, domain.ErrTokenInvalid
	}

	out := &domain.TokenClaims{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   claims.Role,
		Kind:   claims.Kind,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}

// RefreshAccess implements domain.TokenService. The refresh token's subject
// must reference the supplied user; a mismatch is treated as an invalid
// token, not a lookup problem.
func (j *JWTServiceImpl) RefreshAccess(refreshToken string, user *domain.User) (string, error) {
	claims, err := j.VerifyRefreshToken(refreshToken)
	if err != nil {
		return "", err
	}
	if claims.UserID != user.ID {
		return "", domain.ErrTokenInvalid
	}
	return j.mint(user, domain.TokenKindAccess, j.accessTokenTTL)
}
