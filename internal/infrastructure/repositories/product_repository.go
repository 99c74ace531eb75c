package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/yunanyuansyah/listPembelian/domain"
)

// ProductRepositoryImpl implements domain.ProductRepository using GORM
type ProductRepositoryImpl struct {
	db *gorm.DB
}

// DBProduct represents the database model for Product
type DBProduct struct {
	ID         uint    `gorm:"primaryKey"`
	Nama       string  `gorm:"size:255"`
	Deskripsi  string
	Harga      float64
	Stok       int
	TotalHarga float64
	ImagePath  string
	CreatedAt  time.Time
}

// TableName returns the table name for GORM
func (DBProduct) TableName() string {
	return "listpembelian"
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) domain.ProductRepository {
	return &ProductRepositoryImpl{db: db}
}

// Create implements domain.ProductRepository
func (r *ProductRepositoryImpl) Create(ctx context.Context, product *domain.Product) error {
	dbProduct := productToDB(product)
	if err := r.db.WithContext(ctx).Create(dbProduct).Error; err != nil {
		return err
	}
	product.ID = dbProduct.ID
	product.CreatedAt = dbProduct.CreatedAt
	return nil
}

// FindByID implements domain.ProductRepository
func (r *ProductRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.Product, error) {
	var dbProduct DBProduct
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbProduct).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}
	return dbToProduct(&dbProduct), nil
}

// FindAll implements domain.ProductRepository, newest first.
func (r *ProductRepositoryImpl) FindAll(ctx context.Context) ([]domain.Product, error) {
	var dbProducts []DBProduct
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&dbProducts).Error; err != nil {
		return nil, err
	}
	return dbProductsToDomain(dbProducts), nil
}

// Search implements domain.ProductRepository, matching name or description.
func (r *ProductRepositoryImpl) Search(ctx context.Context, query string) ([]domain.Product, error) {
	var dbProducts []DBProduct
	pattern := "%" + query + "%"
	err := r.db.WithContext(ctx).
		Where("nama LIKE ? OR deskripsi LIKE ?", pattern, pattern).
		Order("created_at DESC").
		Find(&dbProducts).Error
	if err != nil {
		return nil, err
	}
	return dbProductsToDomain(dbProducts), nil
}

// Update implements domain.ProductRepository
func (r *ProductRepositoryImpl) Update(ctx context.Context, product *domain.Product) error {
	res := r.db.WithContext(ctx).Model(&DBProduct{}).Where("id = ?", product.ID).
		Updates(map[string]interface{}{
			"nama":        product.Nama,
			"deskripsi":   product.Deskripsi,
			"harga":       product.Harga,
			"stok":        product.Stok,
			"total_harga": product.TotalHarga,
			"image_path":  product.ImagePath,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrProductNotFound
	}
	refreshed, err := r.FindByID(ctx, product.ID)
	if err != nil {
		return err
	}
	*product = *refreshed
	return nil
}

// Delete implements domain.ProductRepository
func (r *ProductRepositoryImpl) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&DBProduct{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func productToDB(product *domain.Product) *DBProduct {
	return &DBProduct{
		ID:         product.ID,
		Nama:       product.Nama,
		Deskripsi:  product.Deskripsi,
		Harga:      product.Harga,
		Stok:       product.Stok,
		TotalHarga: product.TotalHarga,
		ImagePath:  product.ImagePath,
	}
}

func dbToProduct(dbProduct *DBProduct) *domain.Product {
	return &domain.Product{
		ID:         dbProduct.ID,
		Nama:       dbProduct.Nama,
		Deskripsi:  dbProduct.Deskripsi,
		Harga:      dbProduct.Harga,
		Stok:       dbProduct.Stok,
		TotalHarga: dbProduct.TotalHarga,
		ImagePath:  dbProduct.ImagePath,
		CreatedAt:  dbProduct.CreatedAt,
	}
}

func dbProductsToDomain(dbProducts []DBProduct) []domain.Product {
	products := make([]domain.Product, 0, len(dbProducts))
	for i := range dbProducts {
		products = append(products, *dbToProduct(&dbProducts[i]))
	}
	return products
}
