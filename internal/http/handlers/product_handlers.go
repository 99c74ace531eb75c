package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yunanyuansyah/listPembelian/domain"
)

// ProductHandlers handles the purchase list HTTP requests
type ProductHandlers struct {
	productRepo domain.ProductRepository
	logger      *zap.Logger
}

// NewProductHandlers creates new product handlers
func NewProductHandlers(productRepo domain.ProductRepository, logger *zap.Logger) *ProductHandlers {
	return &ProductHandlers{productRepo: productRepo, logger: logger}
}

// ProductRequest represents a product create or update request
type ProductRequest struct {
	Nama      string  `json:"nama" binding:"required"`
	Deskripsi string  `json:"deskripsi"`
	Harga     float64 `json:"harga" binding:"required,gte=0"`
	Stok      int     `json:"stok" binding:"gte=0"`
	ImagePath string  `json:"image_path"`
}

// List returns all products, newest first
func (h *ProductHandlers) List(c *gin.Context) {
	products, err := h.productRepo.FindAll(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list products", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}

// Get returns a single product
func (h *ProductHandlers) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	product, err := h.productRepo.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		h.logger.Error("failed to fetch product", zap.Uint("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}

// Search returns products whose name or description matches the query
func (h *ProductHandlers) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Search query is required"})
		return
	}

	products, err := h.productRepo.Search(c.Request.Context(), query)
	if err != nil {
		h.logger.Error("product search failed", zap.String("query", query), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}

// Create adds a product to the purchase list
func (h *ProductHandlers) Create(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nama and harga are required"})
		return
	}

	product := &domain.Product{
		Nama:       req.Nama,
		Deskripsi:  req.Deskripsi,
		Harga:      req.Harga,
		Stok:       req.Stok,
		TotalHarga: req.Harga * float64(req.Stok),
		ImagePath:  req.ImagePath,
	}
	if err := h.productRepo.Create(c.Request.Context(), product); err != nil {
		h.logger.Error("failed to create product", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Product created successfully", "product": product})
}

// Update replaces a product's fields
func (h *ProductHandlers) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nama and harga are required"})
		return
	}

	product, err := h.productRepo.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		h.logger.Error("failed to fetch product", zap.Uint("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}

	product.Nama = req.Nama
	product.Deskripsi = req.Deskripsi
	product.Harga = req.Harga
	product.Stok = req.Stok
	product.TotalHarga = req.Harga * float64(req.Stok)
	if req.ImagePath != "" {
		product.ImagePath = req.ImagePath
	}

	if err := h.productRepo.Update(c.Request.Context(), product); err != nil {
		h.logger.Error("failed to update product", zap.Uint("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product updated successfully", "product": product})
}

// Delete removes a product from the purchase list
func (h *ProductHandlers) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.productRepo.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		h.logger.Error("failed to delete product", zap.Uint("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}
