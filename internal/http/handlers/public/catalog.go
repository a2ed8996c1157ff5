package public

import (
	"strings"

	"github.com/maisdocacau/storefront/internal/http/response"
	"github.com/maisdocacau/storefront/internal/models"

	"github.com/gin-gonic/gin"
)

// ProductView 前台商品视图
type ProductView struct {
	models.Product
	PriceFormatted string `json:"price_formatted"`
	InStock        bool   `json:"in_stock"`
}

func toProductView(p models.Product) ProductView {
	return ProductView{
		Product:        p,
		PriceFormatted: p.Price.Format(),
		InStock:        p.HasStockFor(1),
	}
}

func toProductViews(products []models.Product) []ProductView {
	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, toProductView(p))
	}
	return views
}

// ListProducts 商品列表，支持 category / featured / new 过滤
func (h *Handler) ListProducts(c *gin.Context) {
	ctx := c.Request.Context()
	var (
		products []models.Product
		err      error
	)
	switch {
	case strings.TrimSpace(c.Query("category")) != "":
		products, err = h.CatalogService.FilterByCategory(ctx, c.Query("category"))
	case queryFlag(c, "featured"):
		products, err = h.CatalogService.ListFeatured(ctx)
	case queryFlag(c, "new"):
		products, err = h.CatalogService.ListNew(ctx)
	default:
		products, err = h.CatalogService.ListAll(ctx)
	}
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	response.Success(c, toProductViews(products))
}

// GetProduct 商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	product, err := h.CatalogService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	response.Success(c, toProductView(*product))
}

// ListCategories 商品分类
func (h *Handler) ListCategories(c *gin.Context) {
	response.Success(c, h.CatalogService.Categories())
}

func queryFlag(c *gin.Context, key string) bool {
	switch strings.ToLower(strings.TrimSpace(c.Query(key))) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}
