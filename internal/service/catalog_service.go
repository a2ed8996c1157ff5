package service

import (
	"context"
	"strings"
	"time"

	"github.com/maisdocacau/storefront/internal/cache"
	"github.com/maisdocacau/storefront/internal/constants"
	"github.com/maisdocacau/storefront/internal/logger"
	"github.com/maisdocacau/storefront/internal/models"
	"github.com/maisdocacau/storefront/internal/repository"
)

const catalogCacheKey = "catalog:all"

// CatalogService 商品目录服务（只读）
type CatalogService struct {
	productRepo repository.ProductRepository
	cacheTTL    time.Duration
}

// NewCatalogService 创建商品目录服务
func NewCatalogService(productRepo repository.ProductRepository, cacheTTL time.Duration) *CatalogService {
	return &CatalogService{
		productRepo: productRepo,
		cacheTTL:    cacheTTL,
	}
}

// ListAll 返回全部上架商品
func (s *CatalogService) ListAll(ctx context.Context) ([]models.Product, error) {
	if s.cacheTTL > 0 {
		var cached []models.Product
		hit, err := cache.GetJSON(ctx, catalogCacheKey, &cached)
		if err != nil {
			logger.Warnw("catalog_cache_read_failed", "error", err)
		}
		if err == nil && hit {
			return cached, nil
		}
	}

	products, _, err := s.productRepo.List(repository.ProductListFilter{OnlyActive: true})
	if err != nil {
		return nil, err
	}
	if s.cacheTTL > 0 {
		if err := cache.SetJSON(ctx, catalogCacheKey, products, s.cacheTTL); err != nil {
			logger.Warnw("catalog_cache_write_failed", "error", err)
		}
	}
	return products, nil
}

// GetByID 根据 ID 获取商品，未知或已下架返回 ErrProductNotFound
func (s *CatalogService) GetByID(ctx context.Context, id string) (*models.Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrProductNotFound
	}
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// FilterByCategory 按分类筛选
func (s *CatalogService) FilterByCategory(ctx context.Context, tag string) ([]models.Product, error) {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if !constants.IsProductCategory(tag) {
		return nil, ErrInvalidCategory
	}
	return s.filter(ctx, func(p models.Product) bool { return p.Category == tag })
}

// ListFeatured 推荐商品
func (s *CatalogService) ListFeatured(ctx context.Context) ([]models.Product, error) {
	return s.filter(ctx, func(p models.Product) bool { return p.Featured })
}

// ListNew 新品
func (s *CatalogService) ListNew(ctx context.Context) ([]models.Product, error) {
	return s.filter(ctx, func(p models.Product) bool { return p.IsNew })
}

// Categories 全部分类
func (s *CatalogService) Categories() []string {
	return constants.ProductCategories()
}

// InvalidateCache 商品变更后清理目录缓存
func (s *CatalogService) InvalidateCache(ctx context.Context) {
	if err := cache.Del(ctx, catalogCacheKey); err != nil {
		logger.Warnw("catalog_cache_invalidate_failed", "error", err)
	}
}

func (s *CatalogService) filter(ctx context.Context, keep func(models.Product) bool) ([]models.Product, error) {
	products, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Product, 0, len(products))
	for _, product := range products {
		if keep(product) {
			out = append(out, product)
		}
	}
	return out, nil
}
