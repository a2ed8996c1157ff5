package admin

import (
	"strings"

	handlershared "github.com/maisdocacau/storefront/internal/http/handlers/shared"
	"github.com/maisdocacau/storefront/internal/http/response"
	"github.com/maisdocacau/storefront/internal/repository"
	"github.com/maisdocacau/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// UpsertProductRequest 商品创建/更新请求
type UpsertProductRequest struct {
	ID              string   `json:"id"`
	Name            string   `json:"name" binding:"required"`
	Description     string   `json:"description"`
	Price           string   `json:"price" binding:"required"`
	Image           string   `json:"image"`
	Category        string   `json:"category" binding:"required"`
	Weight          string   `json:"weight"`
	ContainsAlcohol bool     `json:"contains_alcohol"`
	Featured        bool     `json:"featured"`
	IsNew           bool     `json:"is_new"`
	Stock           *int     `json:"stock"`
	Ingredients     []string `json:"ingredients"`
	HealthBenefits  []string `json:"health_benefits"`
	Origin          string   `json:"origin"`
	IsActive        *bool    `json:"is_active"`
	SortOrder       int      `json:"sort_order"`
}

func (r UpsertProductRequest) toServiceInput(id string) service.UpsertProductInput {
	return service.UpsertProductInput{
		ID:              id,
		Name:            r.Name,
		Description:     r.Description,
		Price:           r.Price,
		Image:           r.Image,
		Category:        r.Category,
		Weight:          r.Weight,
		ContainsAlcohol: r.ContainsAlcohol,
		Featured:        r.Featured,
		IsNew:           r.IsNew,
		Stock:           r.Stock,
		Ingredients:     r.Ingredients,
		HealthBenefits:  r.HealthBenefits,
		Origin:          r.Origin,
		IsActive:        r.IsActive,
		SortOrder:       r.SortOrder,
	}
}

// UpdateStockRequest 库存更新请求，-1 表示不限
type UpdateStockRequest struct {
	Stock *int `json:"stock" binding:"required"`
}

// SetActiveRequest 上下架请求
type SetActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// ListProducts 获取商品列表 (Admin)
func (h *Handler) ListProducts(c *gin.Context) {
	page, pageSize := handlershared.ParsePagination(c)
	filter := repository.ProductListFilter{
		Page:     page,
		PageSize: pageSize,
		Category: strings.ToLower(strings.TrimSpace(c.Query("category"))),
		Search:   strings.TrimSpace(c.Query("search")),
		Featured: parseBoolQuery(c, "featured"),
		IsNew:    parseBoolQuery(c, "is_new"),
	}

	products, total, err := h.ProductAdminService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.product_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, products, handlershared.BuildPagination(page, pageSize, total))
}

// GetProduct 获取商品详情 (Admin)，含已下架商品
func (h *Handler) GetProduct(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	product, err := h.ProductRepo.GetByID(id)
	if err != nil {
		respondError(c, response.CodeInternal, "error.product_fetch_failed", err)
		return
	}
	if product == nil {
		respondError(c, response.CodeNotFound, "error.product_not_found", nil)
		return
	}
	response.Success(c, product)
}

// CreateProduct POST 创建或覆盖商品，ID 取自请求体
func (h *Handler) CreateProduct(c *gin.Context) {
	var req UpsertProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	h.upsertProduct(c, req, req.ID)
}

// UpdateProduct PUT 按路径 ID 创建或覆盖商品
func (h *Handler) UpdateProduct(c *gin.Context) {
	var req UpsertProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	h.upsertProduct(c, req, c.Param("id"))
}

func (h *Handler) upsertProduct(c *gin.Context, req UpsertProductRequest, id string) {
	product, created, err := h.ProductAdminService.Upsert(c.Request.Context(), req.toServiceInput(id))
	if err != nil {
		respondProductError(c, err, "error.product_update_failed")
		return
	}
	requestLog(c).Infow("admin_product_upserted", "product_id", product.ID, "created", created)
	response.Success(c, gin.H{
		"product": product,
		"created": created,
	})
}

// UpdateProductStock 更新库存
func (h *Handler) UpdateProductStock(c *gin.Context) {
	var req UpdateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Stock == nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	product, err := h.ProductAdminService.UpdateStock(c.Request.Context(), c.Param("id"), *req.Stock)
	if err != nil {
		respondProductError(c, err, "error.product_update_failed")
		return
	}
	response.Success(c, product)
}

// SetProductActive 上下架
func (h *Handler) SetProductActive(c *gin.Context) {
	var req SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.IsActive == nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	product, err := h.ProductAdminService.SetActive(c.Request.Context(), c.Param("id"), *req.IsActive)
	if err != nil {
		respondProductError(c, err, "error.product_update_failed")
		return
	}
	response.Success(c, product)
}
