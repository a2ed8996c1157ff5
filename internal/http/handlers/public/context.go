package public

import (
	handlershared "github.com/maisdocacau/storefront/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

func getUserID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUintWithKeys(c, handlershared.ContextKeyUserID, "error.user_id_invalid", "error.user_id_type_invalid")
}

func sessionID(c *gin.Context) string {
	return handlershared.SessionID(c)
}

func optionalUserID(c *gin.Context) *uint {
	return handlershared.OptionalUserID(c)
}
