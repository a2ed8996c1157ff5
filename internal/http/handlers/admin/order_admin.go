package admin

import (
	"strings"

	handlershared "github.com/maisdocacau/storefront/internal/http/handlers/shared"
	"github.com/maisdocacau/storefront/internal/http/response"
	"github.com/maisdocacau/storefront/internal/repository"

	"github.com/gin-gonic/gin"
)

// UpdateOrderStatusRequest 订单状态更新请求
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ListOrders 获取订单列表 (Admin)
func (h *Handler) ListOrders(c *gin.Context) {
	page, pageSize := handlershared.ParsePagination(c)
	userID, ok := parseUintQuery(c, "user_id")
	if !ok {
		return
	}
	createdFrom, createdTo, ok := parseCreatedRange(c)
	if !ok {
		return
	}

	orders, total, err := h.OrderService.List(repository.OrderListFilter{
		Page:        page,
		PageSize:    pageSize,
		UserID:      userID,
		Status:      strings.TrimSpace(c.Query("status")),
		OrderNo:     strings.TrimSpace(c.Query("order_no")),
		CreatedFrom: createdFrom,
		CreatedTo:   createdTo,
	})
	if err != nil {
		respondOrderError(c, err, "error.order_fetch_failed")
		return
	}
	response.SuccessWithPage(c, orders, handlershared.BuildPagination(page, pageSize, total))
}

// UpdateOrderStatus 更新订单状态
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	order, err := h.OrderService.UpdateStatus(c.Param("order_no"), req.Status)
	if err != nil {
		respondOrderError(c, err, "error.order_update_failed")
		return
	}
	requestLog(c).Infow("admin_order_status_updated", "order_no", order.OrderNo, "status", order.Status)
	response.Success(c, order)
}
