package public

import (
	"errors"
	"strings"

	handlershared "github.com/maisdocacau/storefront/internal/http/handlers/shared"
	"github.com/maisdocacau/storefront/internal/http/response"
	"github.com/maisdocacau/storefront/internal/i18n"
	"github.com/maisdocacau/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

type mappedHandlerError = handlershared.MappedHandlerError

// cartRedirectPath 购物车为空时前端应跳转的页面
const cartRedirectPath = "/cart"

var sessionErrorRules = []mappedHandlerError{
	{Target: service.ErrInvalidSession, Code: response.CodeBadRequest, Key: "error.session_invalid"},
}

var catalogErrorRules = []mappedHandlerError{
	{Target: service.ErrProductNotFound, Code: response.CodeNotFound, Key: "error.product_not_found"},
	{Target: service.ErrInvalidCategory, Code: response.CodeBadRequest, Key: "error.category_invalid"},
}

var cartErrorRules = []mappedHandlerError{
	{Target: service.ErrInvalidQuantity, Code: response.CodeBadRequest, Key: "error.quantity_invalid"},
	{Target: service.ErrProductNotFound, Code: response.CodeNotFound, Key: "error.product_not_found"},
	{Target: service.ErrProductInvalid, Code: response.CodeBadRequest, Key: "error.product_invalid"},
	{Target: service.ErrProductOutOfStock, Code: response.CodeBadRequest, Key: "error.product_out_of_stock"},
	{Target: service.ErrCartItemNotFound, Code: response.CodeNotFound, Key: "error.cart_item_not_found"},
	{Target: service.ErrAgeVerificationRequired, Code: response.CodeBadRequest, Key: "error.age_verification_required"},
}

var ageVerificationErrorRules = []mappedHandlerError{
	{Target: service.ErrAgeVerificationFailed, Code: response.CodeBadRequest, Key: "error.age_verification_failed"},
	{Target: service.ErrWalletPayloadInvalid, Code: response.CodeBadRequest, Key: "error.wallet_payload_invalid"},
}

var checkoutErrorRules = []mappedHandlerError{
	{Target: service.ErrCheckoutNotStarted, Code: response.CodeNotFound, Key: "error.checkout_not_started"},
	{Target: service.ErrInvalidCheckoutStep, Code: response.CodeBadRequest, Key: "error.checkout_step_invalid"},
	{Target: service.ErrPaymentMethodInvalid, Code: response.CodeBadRequest, Key: "error.payment_method_invalid"},
	{Target: service.ErrPaymentFailed, Code: response.CodeBadGateway, Key: "error.payment_failed"},
	{Target: service.ErrCheckoutInProgress, Code: response.CodeConflict, Key: "error.checkout_in_progress"},
	{Target: service.ErrProductOutOfStock, Code: response.CodeBadRequest, Key: "error.product_out_of_stock"},
	{Target: service.ErrAgeVerificationRequired, Code: response.CodeBadRequest, Key: "error.age_verification_required"},
	{Target: service.ErrOrderCreateFailed, Code: response.CodeInternal, Key: "error.order_create_failed"},
}

var walletAuthErrorRules = []mappedHandlerError{
	{Target: service.ErrWalletPayloadInvalid, Code: response.CodeBadRequest, Key: "error.wallet_payload_invalid"},
	{Target: service.ErrWalletAuthRejected, Code: response.CodeUnauthorized, Key: "error.wallet_auth_rejected"},
	{Target: service.ErrWalletNonceInvalid, Code: response.CodeUnauthorized, Key: "error.wallet_nonce_invalid"},
	{Target: service.ErrWalletNonceMismatch, Code: response.CodeUnauthorized, Key: "error.wallet_nonce_mismatch"},
	{Target: service.ErrWalletAddressInvalid, Code: response.CodeBadRequest, Key: "error.wallet_address_invalid"},
}

var accountErrorRules = []mappedHandlerError{
	{Target: service.ErrProfileNotFound, Code: response.CodeNotFound, Key: "error.profile_not_found"},
	{Target: service.ErrProfileUpdateInvalid, Code: response.CodeBadRequest, Key: "error.profile_invalid"},
	{Target: service.ErrOrderNotFound, Code: response.CodeNotFound, Key: "error.order_not_found"},
}

func respondCatalogError(c *gin.Context, err error) {
	handlershared.RespondWithMappedError(c, err, catalogErrorRules, response.CodeInternal, "error.product_fetch_failed")
}

func respondCartError(c *gin.Context, err error) {
	handlershared.RespondWithMappedError(c, err, handlershared.ConcatMappedHandlerErrors(sessionErrorRules, cartErrorRules), response.CodeInternal, "error.cart_update_failed")
}

func respondAgeVerificationError(c *gin.Context, err error) {
	handlershared.RespondWithMappedError(c, err, handlershared.ConcatMappedHandlerErrors(sessionErrorRules, ageVerificationErrorRules), response.CodeInternal, "error.age_verification_failed")
}

// respondCheckoutError 地址错误携带缺失字段，空购物车携带跳转地址
func respondCheckoutError(c *gin.Context, err error) {
	locale := i18n.ResolveLocale(c)
	var addrErr *service.AddressValidationError
	if errors.As(err, &addrErr) {
		if addrErr.Unserviceable() {
			response.ErrorWithData(c, response.CodeBadRequest,
				i18n.Sprintf(locale, "error.neighborhood_not_served", addrErr.Neighborhood),
				gin.H{"neighborhood": addrErr.Neighborhood, "unserviceable": true})
			return
		}
		response.ErrorWithData(c, response.CodeBadRequest,
			i18n.Sprintf(locale, "error.address_field_required", strings.Join(addrErr.MissingFields, ", ")),
			gin.H{"missing_fields": addrErr.MissingFields})
		return
	}
	if errors.Is(err, service.ErrCartEmpty) {
		response.ErrorWithRedirect(c, response.CodeBadRequest, i18n.T(locale, "error.cart_empty"), cartRedirectPath)
		return
	}
	handlershared.RespondWithMappedError(c, err, handlershared.ConcatMappedHandlerErrors(sessionErrorRules, checkoutErrorRules), response.CodeInternal, "error.checkout_failed")
}

func respondWalletAuthError(c *gin.Context, err error) {
	handlershared.RespondWithMappedError(c, err, walletAuthErrorRules, response.CodeInternal, "error.wallet_auth_failed")
}

func respondAccountError(c *gin.Context, err error, fallbackKey string) {
	handlershared.RespondWithMappedError(c, err, accountErrorRules, response.CodeInternal, fallbackKey)
}
