package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/yunanyuansyah/listPembelian/domain"
)

// UserRepositoryImpl implements domain.UserRepository using GORM
type UserRepositoryImpl struct {
	db *gorm.DB
}

// DBUser represents the database model for User (with GORM tags)
type DBUser struct {
	ID        uint      `gorm:"primaryKey"`
	Nama      string    `gorm:"size:255"`
	Email     string    `gorm:"uniqueIndex;size:255"`
	Password  string    `gorm:"column:password"`
	Nomor     string    `gorm:"size:32"`
	Role      string    `gorm:"column:status;index;size:32"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (DBUser) TableName() string {
	return "users"
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &UserRepositoryImpl{db: db}
}

// Create implements domain.UserRepository
func (r *UserRepositoryImpl) Create(ctx context.Context, user *domain.User) error {
	dbUser := domainToDB(user)
	if err := r.db.WithContext(ctx).Create(dbUser).Error; err != nil {
		return err
	}
	user.ID = dbUser.ID
	user.CreatedAt = dbUser.CreatedAt
	user.UpdatedAt = dbUser.UpdatedAt
	return nil
}

// FindByEmail implements domain.UserRepository
func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return dbToDomain(&dbUser), nil
}

// FindByID implements domain.UserRepository
func (r *UserRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return dbToDomain(&dbUser), nil
}

// FindAll implements domain.UserRepository, newest first.
func (r *UserRepositoryImpl) FindAll(ctx context.Context) ([]domain.User, error) {
	var dbUsers []DBUser
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&dbUsers).Error; err != nil {
		return nil, err
	}
	users := make([]domain.User, 0, len(dbUsers))
	for i := range dbUsers {
		users = append(users, *dbToDomain(&dbUsers[i]))
	}
	return users, nil
}

// Update implements domain.UserRepository
func (r *UserRepositoryImpl) Update(ctx context.Context, user *domain.User) error {
	dbUser := domainToDB(user)
	err := r.db.WithContext(ctx).Model(&DBUser{}).Where("id = ?", user.ID).
		Updates(map[string]interface{}{
			"nama":     dbUser.Nama,
			"email":    dbUser.Email,
			"password": dbUser.Password,
			"nomor":    dbUser.Nomor,
			"status":   dbUser.Role,
		}).Error
	if err != nil {
		return err
	}
	refreshed, err := r.FindByID(ctx, user.ID)
	if err != nil {
		return err
	}
	*user = *refreshed
	return nil
}

// UpdateRole implements domain.UserRepository
func (r *UserRepositoryImpl) UpdateRole(ctx context.Context, id uint, role string) (*domain.User, error) {
	res := r.db.WithContext(ctx).Model(&DBUser{}).Where("id = ?", id).Update("status", role)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrUserNotFound
	}
	return r.FindByID(ctx, id)
}

// Delete implements domain.UserRepository
func (r *UserRepositoryImpl) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&DBUser{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func domainToDB(user *domain.User) *DBUser {
	return &DBUser{
		ID:       user.ID,
		Nama:     user.Nama,
		Email:    user.Email,
		Password: user.Password,
		Nomor:    user.Nomor,
		Role:     user.Role,
	}
}

func dbToDomain(dbUser *DBUser) *domain.User {
	return &domain.User{
		ID:        dbUser.ID,
		Nama:      dbUser.Nama,
		Email:     dbUser.Email,
		Password:  dbUser.Password,
		Nomor:     dbUser.Nomor,
		Role:      dbUser.Role,
		CreatedAt: dbUser.CreatedAt,
		UpdatedAt: dbUser.UpdatedAt,
	}
}
