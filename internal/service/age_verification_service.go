package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/maisdocacau/storefront/internal/cache"
	"github.com/maisdocacau/storefront/internal/constants"
	"github.com/maisdocacau/storefront/internal/logger"
)

// AgeVerificationInput 年龄验证提交
type AgeVerificationInput struct {
	SessionID string
	Action    string
	Payload   json.RawMessage
}

type ageVerificationRecord struct {
	NullifierHash     string    `json:"nullifier_hash"`
	VerificationLevel string    `json:"verification_level"`
	VerifiedAt        time.Time `json:"verified_at"`
}

// AgeVerificationService 含酒精商品的年龄验证状态（按会话）
type AgeVerificationService struct {
	store  cache.Store
	action string
	ttl    time.Duration
}

// NewAgeVerificationService 创建年龄验证服务
func NewAgeVerificationService(store cache.Store, action string, ttl time.Duration) *AgeVerificationService {
	action = strings.TrimSpace(action)
	if action == "" {
		action = "age_check"
	}
	return &AgeVerificationService{store: store, action: action, ttl: ttl}
}

// Verify 校验插件返回的验证结果并记录到会话
func (s *AgeVerificationService) Verify(ctx context.Context, input AgeVerificationInput) error {
	sessionID, err := normalizeSessionID(input.SessionID)
	if err != nil {
		return err
	}
	if strings.TrimSpace(input.Action) != s.action {
		return ErrAgeVerificationFailed
	}
	result, err := ParseVerifyResult(input.Payload)
	if err != nil {
		return err
	}

	switch r := result.(type) {
	case VerifySuccess:
		record := ageVerificationRecord{
			NullifierHash:     r.NullifierHash,
			VerificationLevel: r.VerificationLevel,
			VerifiedAt:        time.Now(),
		}
		payload, err := json.Marshal(record)
		if err != nil {
			return err
		}
		if err := s.store.Set(ctx, sessionKey(sessionID, constants.SessionKeyAgeVerified), payload, s.ttl); err != nil {
			return err
		}
		logger.Infow("age_verification_passed", "session_id", sessionID, "verification_level", r.VerificationLevel)
		return nil
	case IdentityFailure:
		logger.Warnw("age_verification_rejected", "session_id", sessionID, "status", r.Status, "error_code", r.ErrorCode)
		return ErrAgeVerificationFailed
	default:
		return ErrWalletPayloadInvalid
	}
}

// IsVerified 会话是否已通过年龄验证
func (s *AgeVerificationService) IsVerified(ctx context.Context, sessionID string) (bool, error) {
	sessionID, err := normalizeSessionID(sessionID)
	if err != nil {
		return false, err
	}
	_, ok, err := s.store.Get(ctx, sessionKey(sessionID, constants.SessionKeyAgeVerified))
	if err != nil {
		return false, err
	}
	return ok, nil
}
