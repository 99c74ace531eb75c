// Package e2e runs the whole stack in process: real bcrypt, real JWTs, the
// real router and middleware, gorm over in-memory SQLite, and miniredis
// behind the login throttle. Only the listener is missing.
package e2e

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yunanyuansyah/listPembelian/domain"
	httpx "github.com/yunanyuansyah/listPembelian/internal/http"
	"github.com/yunanyuansyah/listPembelian/internal/http/handlers"
	"github.com/yunanyuansyah/listPembelian/internal/http/middleware"
	"github.com/yunanyuansyah/listPembelian/internal/infrastructure/auth"
	"github.com/yunanyuansyah/listPembelian/internal/infrastructure/authz"
	"github.com/yunanyuansyah/listPembelian/internal/infrastructure/repositories"
	"github.com/yunanyuansyah/listPembelian/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const (
	testSecret      = "e2e-test-secret"
	testMaxAttempts = 3
	validPassword   = "Abcdef1!"
)

type suite struct {
	t      *testing.T
	router *gin.Engine
	db     *gorm.DB
}

func newSuite(t *testing.T) *suite {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&repositories.DBUser{}, &repositories.DBProduct{}))

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	userRepo := repositories.NewUserRepository(db)
	productRepo := repositories.NewProductRepository(db)
	passwordSvc := auth.NewPasswordService()
	tokenSvc := auth.NewJWTService(testSecret, time.Hour, 24*time.Hour)
	throttle := repositories.NewLoginThrottle(rdb, testMaxAttempts, time.Minute)

	capSvc, err := authz.NewCapabilityService()
	require.NoError(t, err)

	authSvc, err := services.NewAuthService(userRepo, passwordSvc, tokenSvc, throttle, nil)
	require.NoError(t, err)
	userSvc := services.NewUserService(userRepo, passwordSvc, nil)

	authMW := middleware.NewAuthMW(tokenSvc, userRepo, capSvc, nil)
	logger := zap.NewNop()

	router := httpx.BuildRouter(
		handlers.NewAuthHandlers(authSvc, authMW, logger),
		handlers.NewUserHandlers(userSvc, logger),
		handlers.NewProductHandlers(productRepo, logger),
		authMW,
	)

	return &suite{t: t, router: router, db: db}
}

func (s *suite) request(method, path string, body any, token string) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *suite) decode(w *httptest.ResponseRecorder) map[string]json.RawMessage {
	s.t.Helper()
	var resp map[string]json.RawMessage
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

// register creates an account through the API and returns its token pair.
func (s *suite) register(email string) (accessToken, refreshToken string) {
	s.t.Helper()
	w := s.request(http.MethodPost, "/auth/register", map[string]string{
		"nama":            "Test User",
		"email":           email,
		"password":        validPassword,
		"confirmPassword": validPassword,
		"nomor":           "081234567890",
	}, "")
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())

	resp := s.decode(w)
	require.NoError(s.t, json.Unmarshal(resp["accessToken"], &accessToken))
	require.NoError(s.t, json.Unmarshal(resp["refreshToken"], &refreshToken))
	return accessToken, refreshToken
}

// promote flips a user's role directly in the database, the way an operator
// would seed the first admin.
func (s *suite) promote(email, role string) {
	s.t.Helper()
	require.NoError(s.t, s.db.Model(&repositories.DBUser{}).
		Where("email = ?", email).Update("status", role).Error)
}

// loginAs registers and, when the role is elevated, promotes and logs in
// again so the token carries the right role claim.
func (s *suite) loginAs(email, role string) string {
	s.t.Helper()
	token, _ := s.register(email)
	if role == domain.RoleUser {
		return token
	}

	s.promote(email, role)
	w := s.request(http.MethodPost, "/auth/login", map[string]string{
		"email":    email,
		"password": validPassword,
	}, "")
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())

	resp := s.decode(w)
	require.NoError(s.t, json.Unmarshal(resp["accessToken"], &token))
	return token
}
