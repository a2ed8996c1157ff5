package admin

import (
	handlershared "github.com/maisdocacau/storefront/internal/http/handlers/shared"
	"github.com/maisdocacau/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

func getAdminID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUintWithKeys(c, handlershared.ContextKeyAdminID, "error.admin_id_invalid", "error.admin_id_type_invalid")
}

func currentUsername(c *gin.Context) string {
	return c.GetString(handlershared.ContextKeyAdminUsername)
}

// currentOperator 当前请求的操作人，用于审计
func currentOperator(c *gin.Context, adminID uint) service.AuthzOperator {
	return service.AuthzOperator{
		AdminID:   adminID,
		Username:  currentUsername(c),
		RequestID: handlershared.RequestID(c),
	}
}
