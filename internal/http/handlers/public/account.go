package public

import (
	"strings"

	handlershared "github.com/maisdocacau/storefront/internal/http/handlers/shared"
	"github.com/maisdocacau/storefront/internal/http/response"
	"github.com/maisdocacau/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// UpdateProfileRequest 资料修改请求，未传字段保持不变
type UpdateProfileRequest struct {
	Username     *string `json:"username"`
	Email        *string `json:"email"`
	ProfileImage *string `json:"profile_image"`
}

// GetProfile 当前用户资料
func (h *Handler) GetProfile(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	profile, err := h.UserProfileService.GetByID(uid)
	if err != nil {
		respondAccountError(c, err, "error.profile_not_found")
		return
	}
	response.Success(c, profile)
}

// UpdateProfile 修改用户资料
func (h *Handler) UpdateProfile(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	profile, err := h.UserProfileService.UpdateProfile(uid, service.UpdateProfileInput{
		Username:     req.Username,
		Email:        req.Email,
		ProfileImage: req.ProfileImage,
	})
	if err != nil {
		respondAccountError(c, err, "error.profile_update_failed")
		return
	}
	response.Success(c, profile)
}

// ListMyOrders 当前用户订单列表
func (h *Handler) ListMyOrders(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	page, pageSize := handlershared.ParsePagination(c)
	orders, total, err := h.OrderService.ListByUser(uid, page, pageSize)
	if err != nil {
		respondAccountError(c, err, "error.order_fetch_failed")
		return
	}
	response.SuccessWithPage(c, orders, handlershared.BuildPagination(page, pageSize, total))
}

// GetMyOrder 当前用户订单详情
func (h *Handler) GetMyOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orderNo := strings.TrimSpace(c.Param("order_no"))
	if orderNo == "" {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	order, err := h.OrderService.GetByOrderNo(uid, orderNo)
	if err != nil {
		respondAccountError(c, err, "error.order_fetch_failed")
		return
	}
	response.Success(c, order)
}
