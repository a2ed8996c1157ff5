package admin

import (
	handlershared "github.com/maisdocacau/storefront/internal/http/handlers/shared"
	"github.com/maisdocacau/storefront/internal/http/response"
	"github.com/maisdocacau/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

type mappedHandlerError = handlershared.MappedHandlerError

var loginErrorRules = []mappedHandlerError{
	{Target: service.ErrCaptchaRequired, Code: response.CodeBadRequest, Key: "error.captcha_required"},
	{Target: service.ErrCaptchaInvalid, Code: response.CodeBadRequest, Key: "error.captcha_invalid"},
	{Target: service.ErrCaptchaConfigInvalid, Code: response.CodeBadRequest, Key: "error.captcha_disabled"},
	{Target: service.ErrInvalidCredentials, Code: response.CodeUnauthorized, Key: "error.login_invalid"},
}

var productErrorRules = []mappedHandlerError{
	{Target: service.ErrProductNotFound, Code: response.CodeNotFound, Key: "error.product_not_found"},
	{Target: service.ErrProductInvalid, Code: response.CodeBadRequest, Key: "error.product_invalid"},
	{Target: service.ErrInvalidCategory, Code: response.CodeBadRequest, Key: "error.category_invalid"},
}

var orderErrorRules = []mappedHandlerError{
	{Target: service.ErrOrderNotFound, Code: response.CodeNotFound, Key: "error.order_not_found"},
	{Target: service.ErrOrderStatusInvalid, Code: response.CodeBadRequest, Key: "error.order_status_invalid"},
	{Target: service.ErrOrderStatusNotAllowed, Code: response.CodeBadRequest, Key: "error.order_status_not_allowed"},
}

var authzErrorRules = []mappedHandlerError{
	{Target: service.ErrAuthzRoleInvalid, Code: response.CodeBadRequest, Key: "error.authz_role_invalid"},
	{Target: service.ErrAuthzSelfDemotion, Code: response.CodeBadRequest, Key: "error.authz_self_update"},
	{Target: service.ErrAuthzUnavailable, Code: response.CodeInternal, Key: "error.authz_unavailable"},
	{Target: service.ErrNotFound, Code: response.CodeNotFound, Key: "error.admin_not_found"},
}

func respondLoginError(c *gin.Context, err error) {
	handlershared.RespondWithMappedError(c, err, loginErrorRules, response.CodeInternal, "error.login_failed")
}

func respondProductError(c *gin.Context, err error, fallbackKey string) {
	handlershared.RespondWithMappedError(c, err, productErrorRules, response.CodeInternal, fallbackKey)
}

func respondOrderError(c *gin.Context, err error, fallbackKey string) {
	handlershared.RespondWithMappedError(c, err, orderErrorRules, response.CodeInternal, fallbackKey)
}

func respondAuthzError(c *gin.Context, err error) {
	handlershared.RespondWithMappedError(c, err, authzErrorRules, response.CodeInternal, "error.authz_failed")
}
