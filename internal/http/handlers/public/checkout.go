package public

import (
	"github.com/maisdocacau/storefront/internal/http/response"
	"github.com/maisdocacau/storefront/internal/models"
	"github.com/maisdocacau/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// SubmitAddressRequest 收货地址
type SubmitAddressRequest struct {
	FullName     string `json:"full_name"`
	Street       string `json:"street"`
	Number       string `json:"number"`
	Complement   string `json:"complement"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zip_code"`
	Phone        string `json:"phone"`
}

func (r SubmitAddressRequest) toModel() models.DeliveryAddress {
	return models.DeliveryAddress{
		FullName:     r.FullName,
		Street:       r.Street,
		Number:       r.Number,
		Complement:   r.Complement,
		Neighborhood: r.Neighborhood,
		City:         r.City,
		State:        r.State,
		ZipCode:      r.ZipCode,
		Phone:        r.Phone,
	}
}

// SubmitPaymentRequest 支付请求
type SubmitPaymentRequest struct {
	Method          string `json:"method" binding:"required"`
	WalletInstalled bool   `json:"wallet_installed"`
}

// BeginCheckout 开始结算
func (h *Handler) BeginCheckout(c *gin.Context) {
	view, err := h.CheckoutService.Begin(c.Request.Context(), service.BeginCheckoutInput{
		SessionID: sessionID(c),
		UserID:    optionalUserID(c),
	})
	if err != nil {
		respondCheckoutError(c, err)
		return
	}
	response.Success(c, view)
}

// GetCheckout 当前结算状态
func (h *Handler) GetCheckout(c *gin.Context) {
	view, err := h.CheckoutService.Current(c.Request.Context(), sessionID(c))
	if err != nil {
		respondCheckoutError(c, err)
		return
	}
	response.Success(c, view)
}

// SubmitCheckoutAddress 提交收货地址
func (h *Handler) SubmitCheckoutAddress(c *gin.Context) {
	var req SubmitAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	view, err := h.CheckoutService.SubmitAddress(c.Request.Context(), service.SubmitAddressInput{
		SessionID: sessionID(c),
		Address:   req.toModel(),
	})
	if err != nil {
		respondCheckoutError(c, err)
		return
	}
	response.Success(c, view)
}

// CheckoutBack 返回地址步骤
func (h *Handler) CheckoutBack(c *gin.Context) {
	view, err := h.CheckoutService.Back(c.Request.Context(), sessionID(c))
	if err != nil {
		respondCheckoutError(c, err)
		return
	}
	response.Success(c, view)
}

// GetPaymentMethods 可用支付方式，安装钱包时包含 crypto
func (h *Handler) GetPaymentMethods(c *gin.Context) {
	response.Success(c, h.CheckoutService.PaymentMethods(queryFlag(c, "wallet_installed")))
}

// SubmitCheckoutPayment 提交支付
func (h *Handler) SubmitCheckoutPayment(c *gin.Context) {
	var req SubmitPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	view, err := h.CheckoutService.SubmitPayment(c.Request.Context(), service.SubmitPaymentInput{
		SessionID:       sessionID(c),
		Method:          req.Method,
		WalletInstalled: req.WalletInstalled,
		UserID:          optionalUserID(c),
	})
	if err != nil {
		respondCheckoutError(c, err)
		return
	}
	response.Success(c, view)
}

// AbandonCheckout 放弃结算
func (h *Handler) AbandonCheckout(c *gin.Context) {
	if err := h.CheckoutService.Abandon(c.Request.Context(), sessionID(c)); err != nil {
		respondCheckoutError(c, err)
		return
	}
	response.Success(c, nil)
}
