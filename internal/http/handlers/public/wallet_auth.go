package public

import (
	"encoding/json"

	"github.com/maisdocacau/storefront/internal/http/response"
	"github.com/maisdocacau/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// CompleteWalletAuthRequest 钱包插件签名结果
type CompleteWalletAuthRequest struct {
	Nonce       string          `json:"nonce" binding:"required"`
	SignedNonce string          `json:"signed_nonce" binding:"required"`
	Payload     json.RawMessage `json:"payload" binding:"required"`
	Username    string          `json:"username"`
}

// IssueWalletNonce 签发钱包登录挑战
func (h *Handler) IssueWalletNonce(c *gin.Context) {
	challenge, err := h.WalletAuthService.IssueNonce(c.Request.Context())
	if err != nil {
		respondWalletAuthError(c, err)
		return
	}
	response.Success(c, challenge)
}

// CompleteWalletAuth 完成钱包登录并签发用户 Token
func (h *Handler) CompleteWalletAuth(c *gin.Context) {
	var req CompleteWalletAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	result, err := h.WalletAuthService.Complete(c.Request.Context(), service.CompleteWalletAuthInput{
		Nonce:       req.Nonce,
		SignedNonce: req.SignedNonce,
		Payload:     req.Payload,
		Username:    req.Username,
	})
	if err != nil {
		respondWalletAuthError(c, err)
		return
	}
	response.Success(c, gin.H{
		"token":      result.Token,
		"expires_at": result.ExpiresAt,
		"user":       result.Profile,
		"created":    result.Created,
	})
}
