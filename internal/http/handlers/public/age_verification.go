package public

import (
	"encoding/json"

	"github.com/maisdocacau/storefront/internal/http/response"
	"github.com/maisdocacau/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// AgeVerificationRequest 身份插件返回的年龄验证结果
type AgeVerificationRequest struct {
	Action  string          `json:"action" binding:"required"`
	Payload json.RawMessage `json:"payload" binding:"required"`
}

// VerifyAge 记录会话年龄验证
func (h *Handler) VerifyAge(c *gin.Context) {
	var req AgeVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	if err := h.AgeService.Verify(c.Request.Context(), service.AgeVerificationInput{
		SessionID: sessionID(c),
		Action:    req.Action,
		Payload:   req.Payload,
	}); err != nil {
		respondAgeVerificationError(c, err)
		return
	}
	response.Success(c, gin.H{"verified": true})
}

// GetAgeVerification 查询会话是否已通过年龄验证
func (h *Handler) GetAgeVerification(c *gin.Context) {
	verified, err := h.AgeService.IsVerified(c.Request.Context(), sessionID(c))
	if err != nil {
		respondAgeVerificationError(c, err)
		return
	}
	response.Success(c, gin.H{"verified": verified})
}
