package public

import (
	"github.com/maisdocacau/storefront/internal/http/response"
	"github.com/maisdocacau/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// AddCartItemRequest 加入购物车请求
type AddCartItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity"`
}

// UpdateCartItemRequest 修改数量请求，数量小于 1 视为移除
type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity"`
}

// GetCart 获取购物车
func (h *Handler) GetCart(c *gin.Context) {
	view, err := h.CartService.Get(c.Request.Context(), sessionID(c))
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, view)
}

// AddCartItem 加入购物车，未传数量时默认 1
func (h *Handler) AddCartItem(c *gin.Context) {
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	view, err := h.CartService.AddItem(c.Request.Context(), service.AddCartItemInput{
		SessionID: sessionID(c),
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, view)
}

// UpdateCartItem 修改数量
func (h *Handler) UpdateCartItem(c *gin.Context) {
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Quantity == nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	view, err := h.CartService.UpdateItem(c.Request.Context(), service.UpdateCartItemInput{
		SessionID: sessionID(c),
		ProductID: c.Param("product_id"),
		Quantity:  *req.Quantity,
	})
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, view)
}

// RemoveCartItem 移除商品，不存在时同样成功
func (h *Handler) RemoveCartItem(c *gin.Context) {
	view, err := h.CartService.RemoveItem(c.Request.Context(), sessionID(c), c.Param("product_id"))
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, view)
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	if err := h.CartService.Clear(c.Request.Context(), sessionID(c)); err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, nil)
}
