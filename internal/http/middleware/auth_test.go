package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yunanyuansyah/listPembelian/domain"
	"github.com/yunanyuansyah/listPembelian/internal/infrastructure/authz"
	"github.com/yunanyuansyah/listPembelian/internal/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestAuthMW(t *testing.T, tokenSvc domain.TokenService, userRepo domain.UserRepository) *AuthMW {
	t.Helper()
	caps, err := authz.NewCapabilityService()
	if err != nil {
		t.Fatalf("capability service: %v", err)
	}
	return NewAuthMW(tokenSvc, userRepo, caps, nil)
}

func acceptToken(role string) *mocks.MockTokenService {
	tokenSvc := mocks.NewMockTokenService()
	tokenSvc.VerifyAccessTokenFunc = func(token string) (*domain.TokenClaims, error) {
		if token == "good_token" {
			return &domain.TokenClaims{UserID: 1, Email: "budi@example.com", Role: role, Kind: domain.TokenKindAccess}, nil
		}
		return nil, domain.ErrTokenInvalid
	}
	return tokenSvc
}

func TestAuthMW_Authenticate(t *testing.T) {
	tests := []struct {
		name       string
		authHeader string
		wantClaims bool
	}{
		{name: "valid bearer token", authHeader: "Bearer good_token", wantClaims: true},
		{name: "missing header", authHeader: ""},
		{name: "wrong scheme", authHeader: "Basic good_token"},
		{name: "bearer with empty token", authHeader: "Bearer "},
		{name: "bare token without scheme", authHeader: "good_token"},
		{name: "rejected token", authHeader: "Bearer bad_token"},
	}

	mw := newTestAuthMW(t, acceptToken(domain.RoleUser), mocks.NewMockUserRepository())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/auth/me", nil)
			if tt.authHeader != "" {
				c.Request.Header.Set("Authorization", tt.authHeader)
			}

			claims := mw.Authenticate(c)
			if tt.wantClaims && claims == nil {
				t.Fatal("expected claims, got nil")
			}
			if !tt.wantClaims && claims != nil {
				t.Fatalf("expected nil, got %+v", claims)
			}
			if tt.wantClaims && claims.UserID != 1 {
				t.Errorf("unexpected claims: %+v", claims)
			}
		})
	}
}

func TestAuthMW_RequireAuthenticated(t *testing.T) {
	mw := newTestAuthMW(t, acceptToken(domain.RoleUser), mocks.NewMockUserRepository())

	r := gin.New()
	r.GET("/protected", mw.RequireAuthenticated(), func(c *gin.Context) {
		id, ok := RequestingUserID(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no user id in context"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": id})
	})

	t.Run("valid token passes and sets context", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer good_token")
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("missing token gets 401", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})
}

func TestAuthMW_RequireCapability(t *testing.T) {
	tests := []struct {
		name       string
		role       string
		capability string
		authHeader string
		wantStatus int
	}{
		{
			name:       "admin may manage users",
			role:       domain.RoleAdmin,
			capability: authz.CapManageUsers,
			authHeader: "Bearer good_token",
			wantStatus: http.StatusOK,
		},
		{
			name:       "moderator may view users",
			role:       domain.RoleModerator,
			capability: authz.CapViewUsers,
			authHeader: "Bearer good_token",
			wantStatus: http.StatusOK,
		},
		{
			name:       "moderator may not manage users",
			role:       domain.RoleModerator,
			capability: authz.CapManageUsers,
			authHeader: "Bearer good_token",
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "plain user may not manage products",
			role:       domain.RoleUser,
			capability: authz.CapManageProducts,
			authHeader: "Bearer good_token",
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "no token gets 401, not 403",
			role:       domain.RoleAdmin,
			capability: authz.CapManageUsers,
			authHeader: "",
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mw := newTestAuthMW(t, acceptToken(tt.role), mocks.NewMockUserRepository())

			r := gin.New()
			r.GET("/guarded", mw.RequireCapability(tt.capability), func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"ok": true})
			})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("expected %d, got %d: %s", tt.wantStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestAuthMW_RequireCapability_AuditsDenials(t *testing.T) {
	newGuarded := func(role string, auditLog *mocks.MockAuditLogger) *gin.Engine {
		caps, err := authz.NewCapabilityService()
		if err != nil {
			t.Fatalf("capability service: %v", err)
		}
		mw := NewAuthMW(acceptToken(role), mocks.NewMockUserRepository(), caps, auditLog)

		r := gin.New()
		r.GET("/guarded", mw.RequireCapability(authz.CapManageUsers), func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"ok": true})
		})
		return r
	}

	t.Run("denied request is recorded", func(t *testing.T) {
		auditLog := mocks.NewMockAuditLogger()
		r := newGuarded(domain.RoleModerator, auditLog)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
		req.Header.Set("Authorization", "Bearer good_token")
		r.ServeHTTP(w, req)

		if w.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d: %s", w.Code, w.Body.String())
		}
		events := auditLog.EventsOfType(domain.AccessDeniedEvent)
		if len(events) != 1 {
			t.Fatalf("expected one access denied event, got %d", len(events))
		}
		e := events[0]
		if e.UserID != 1 || e.Success {
			t.Errorf("unexpected event: %+v", e)
		}
		if e.Metadata["capability"] != authz.CapManageUsers || e.Metadata["role"] != domain.RoleModerator {
			t.Errorf("unexpected metadata: %+v", e.Metadata)
		}
	})

	t.Run("allowed request is not recorded", func(t *testing.T) {
		auditLog := mocks.NewMockAuditLogger()
		r := newGuarded(domain.RoleAdmin, auditLog)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
		req.Header.Set("Authorization", "Bearer good_token")
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		if len(auditLog.Events) != 0 {
			t.Errorf("expected no events, got %d", len(auditLog.Events))
		}
	})
}

func TestAuthMW_LoadRequestingUser(t *testing.T) {
	t.Run("returns the token's user", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository()
		userRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.User, error) {
			return &domain.User{ID: id, Email: "budi@example.com", Role: domain.RoleUser}, nil
		}
		mw := newTestAuthMW(t, acceptToken(domain.RoleUser), userRepo)

		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		c.Request.Header.Set("Authorization", "Bearer good_token")

		user := mw.LoadRequestingUser(c)
		if user == nil || user.ID != 1 {
			t.Fatalf("expected user 1, got %+v", user)
		}
	})

	t.Run("nil when the account is gone", func(t *testing.T) {
		mw := newTestAuthMW(t, acceptToken(domain.RoleUser), mocks.NewMockUserRepository())

		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		c.Request.Header.Set("Authorization", "Bearer good_token")

		if user := mw.LoadRequestingUser(c); user != nil {
			t.Fatalf("expected nil, got %+v", user)
		}
	})

	t.Run("nil on bad token", func(t *testing.T) {
		mw := newTestAuthMW(t, acceptToken(domain.RoleUser), mocks.NewMockUserRepository())

		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		c.Request.Header.Set("Authorization", "Bearer bad_token")

		if user := mw.LoadRequestingUser(c); user != nil {
			t.Fatalf("expected nil, got %+v", user)
		}
	})
}
