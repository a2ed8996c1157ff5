package service

import (
	"context"
	"strings"

	"github.com/maisdocacau/storefront/internal/constants"
	"github.com/maisdocacau/storefront/internal/logger"
	"github.com/maisdocacau/storefront/internal/models"
	"github.com/maisdocacau/storefront/internal/repository"
)

// UpsertProductInput 后台商品创建/更新输入
type UpsertProductInput struct {
	ID              string
	Name            string
	Description     string
	Price           string
	Image           string
	Category        string
	Weight          string
	ContainsAlcohol bool
	Featured        bool
	IsNew           bool
	Stock           *int
	Ingredients     []string
	HealthBenefits  []string
	Origin          string
	IsActive        *bool
	SortOrder       int
}

// ProductAdminService 后台商品维护
type ProductAdminService struct {
	productRepo repository.ProductRepository
	catalog     *CatalogService
}

// NewProductAdminService 创建后台商品服务
func NewProductAdminService(productRepo repository.ProductRepository, catalog *CatalogService) *ProductAdminService {
	return &ProductAdminService{
		productRepo: productRepo,
		catalog:     catalog,
	}
}

// List 后台商品列表（含下架）
func (s *ProductAdminService) List(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	filter.OnlyActive = false
	return s.productRepo.List(filter)
}

// Upsert 创建或整体更新商品
func (s *ProductAdminService) Upsert(ctx context.Context, input UpsertProductInput) (*models.Product, bool, error) {
	id := strings.ToLower(strings.TrimSpace(input.ID))
	if !isProductSlug(id) {
		return nil, false, ErrProductInvalid
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, false, ErrProductInvalid
	}
	category := strings.ToLower(strings.TrimSpace(input.Category))
	if !constants.IsProductCategory(category) {
		return nil, false, ErrInvalidCategory
	}
	price, err := models.ParseMoney(strings.TrimSpace(input.Price))
	if err != nil || price.IsNegative() {
		return nil, false, ErrProductInvalid
	}

	existing, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, false, err
	}
	product := existing
	created := product == nil
	if created {
		product = &models.Product{ID: id, Stock: models.StockUnlimited, IsActive: true}
	}
	if input.Stock != nil {
		if *input.Stock < models.StockUnlimited {
			return nil, false, ErrProductInvalid
		}
		product.Stock = *input.Stock
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	product.Name = name
	product.Description = strings.TrimSpace(input.Description)
	product.Price = price
	product.Image = strings.TrimSpace(input.Image)
	product.Category = category
	product.Weight = strings.TrimSpace(input.Weight)
	product.ContainsAlcohol = input.ContainsAlcohol || category == constants.CategoryAlcohol
	product.Featured = input.Featured
	product.IsNew = input.IsNew
	product.Ingredients = models.StringArray(input.Ingredients)
	product.HealthBenefits = models.StringArray(input.HealthBenefits)
	product.Origin = strings.TrimSpace(input.Origin)
	product.SortOrder = input.SortOrder

	if created {
		err = s.productRepo.Create(product)
	} else {
		err = s.productRepo.Update(product)
	}
	if err != nil {
		return nil, false, err
	}
	s.catalog.InvalidateCache(ctx)
	logger.Infow("product_upserted", "product_id", product.ID, "created", created)
	return product, created, nil
}

// UpdateStock 设置库存，-1 表示不限
func (s *ProductAdminService) UpdateStock(ctx context.Context, id string, stock int) (*models.Product, error) {
	if stock < models.StockUnlimited {
		return nil, ErrProductInvalid
	}
	product, err := s.mustGet(id)
	if err != nil {
		return nil, err
	}
	if _, err := s.productRepo.UpdateStock(product.ID, stock); err != nil {
		return nil, err
	}
	product.Stock = stock
	s.catalog.InvalidateCache(ctx)
	logger.Infow("product_stock_updated", "product_id", product.ID, "stock", stock)
	return product, nil
}

// SetActive 上下架
func (s *ProductAdminService) SetActive(ctx context.Context, id string, active bool) (*models.Product, error) {
	product, err := s.mustGet(id)
	if err != nil {
		return nil, err
	}
	if _, err := s.productRepo.SetActive(product.ID, active); err != nil {
		return nil, err
	}
	product.IsActive = active
	s.catalog.InvalidateCache(ctx)
	logger.Infow("product_active_updated", "product_id", product.ID, "is_active", active)
	return product, nil
}

func (s *ProductAdminService) mustGet(id string) (*models.Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrProductNotFound
	}
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

func isProductSlug(id string) bool {
	if id == "" || len(id) > 100 {
		return false
	}
	for _, ch := range id {
		if (ch >= 'a' && ch <= 'z') || (ch >= '0' && ch <= '9') || ch == '-' {
			continue
		}
		return false
	}
	return true
}
