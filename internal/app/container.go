package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/yunanyuansyah/listPembelian/domain"
	"github.com/yunanyuansyah/listPembelian/internal/config"
	"github.com/yunanyuansyah/listPembelian/internal/infrastructure/audit"
	"github.com/yunanyuansyah/listPembelian/internal/infrastructure/auth"
	"github.com/yunanyuansyah/listPembelian/internal/infrastructure/authz"
	"github.com/yunanyuansyah/listPembelian/internal/infrastructure/database"
	"github.com/yunanyuansyah/listPembelian/internal/infrastructure/repositories"
	"github.com/yunanyuansyah/listPembelian/internal/services"
)

// Container holds all dependencies
type Container struct {
	Config *config.Config
	Logger *zap.Logger

	DB          *gorm.DB
	RedisClient *database.RedisClient

	UserRepo    domain.UserRepository
	ProductRepo domain.ProductRepository

	PasswordSvc domain.PasswordService
	TokenSvc    domain.TokenService
	CapSvc      domain.CapabilityService
	AuditLog    domain.AuditLogger
	AuthSvc     domain.AuthService
	UserSvc     domain.UserService
}

// NewContainer creates and initializes all dependencies
func NewContainer(cfg *config.Config) (*Container, error) {
	logger, err := newLogger(cfg.GinMode)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	c := &Container{Config: cfg, Logger: logger}

	if err := c.initDatabase(); err != nil {
		return nil, err
	}
	if err := c.initRedis(); err != nil {
		return nil, err
	}
	c.initRepositories()
	if err := c.initServices(); err != nil {
		return nil, err
	}
	return c, nil
}

func newLogger(mode string) (*zap.Logger, error) {
	if mode == "debug" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func (c *Container) initDatabase() error {
	db, err := database.Open(c.Config.DSN)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		return err
	}
	c.DB = db
	return nil
}

// initRedis is optional; without a redis address the login throttle is
// simply disabled.
func (c *Container) initRedis() error {
	if c.Config.RedisAddr == "" {
		return nil
	}

	rdb := database.NewRedis(c.Config.RedisAddr, c.Config.RedisPassword, c.Config.RedisDB)
	if err := rdb.Ping(context.Background()); err != nil {
		return fmt.Errorf("failed to reach redis: %w", err)
	}
	c.RedisClient = rdb
	return nil
}

func (c *Container) initRepositories() {
	c.UserRepo = repositories.NewUserRepository(c.DB)
	c.ProductRepo = repositories.NewProductRepository(c.DB)
}

func (c *Container) initServices() error {
	c.PasswordSvc = auth.NewPasswordService()
	c.TokenSvc = auth.NewJWTService(c.Config.JWTSecret, c.Config.AccessTTL, c.Config.RefreshTTL)

	capSvc, err := authz.NewCapabilityService()
	if err != nil {
		return err
	}
	c.CapSvc = capSvc

	auditLogger := audit.NewZapAuditLogger(c.Logger)
	c.AuditLog = auditLogger

	var throttle domain.LoginThrottle
	if c.RedisClient != nil {
		throttle = repositories.NewLoginThrottle(c.RedisClient.Client, c.Config.LoginMaxAttempts, c.Config.LoginWindow)
	}

	authSvc, err := services.NewAuthService(c.UserRepo, c.PasswordSvc, c.TokenSvc, throttle, auditLogger)
	if err != nil {
		return err
	}
	c.AuthSvc = authSvc
	c.UserSvc = services.NewUserService(c.UserRepo, c.PasswordSvc, auditLogger)
	return nil
}

// Close closes all connections
func (c *Container) Close() error {
	if c.RedisClient != nil {
		c.RedisClient.Close()
	}
	if c.Logger != nil {
		_ = c.Logger.Sync()
	}

	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}
