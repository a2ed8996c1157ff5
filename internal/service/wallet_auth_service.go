package service

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/maisdocacau/storefront/internal/cache"
	"github.com/maisdocacau/storefront/internal/config"
	"github.com/maisdocacau/storefront/internal/logger"
	"github.com/maisdocacau/storefront/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const walletNonceBytes = 16

// WalletAuthChallenge 钱包签名挑战，原样交给身份插件
type WalletAuthChallenge struct {
	Nonce          string    `json:"nonce"`
	SignedNonce    string    `json:"signed_nonce"`
	RequestID      string    `json:"request_id"`
	ExpirationTime time.Time `json:"expiration_time"`
	NotBefore      time.Time `json:"not_before"`
	Statement      string    `json:"statement"`
}

// CompleteWalletAuthInput 完成钱包登录
type CompleteWalletAuthInput struct {
	Nonce       string
	SignedNonce string
	Payload     json.RawMessage
	Username    string
}

// WalletAuthResult 登录结果
type WalletAuthResult struct {
	Profile   *models.UserProfile
	Token     string
	ExpiresAt time.Time
	Created   bool
}

// UserClaims 用户 JWT 声明
type UserClaims struct {
	UserID        uint   `json:"user_id"`
	WalletAddress string `json:"wallet_address"`
	jwt.RegisteredClaims
}

// WalletAuthService 钱包登录：随机数签发、一次性消费、用户建档与令牌签发
type WalletAuthService struct {
	store    cache.Store
	profiles *UserProfileService
	cfg      config.WalletAuthConfig
	jwtCfg   config.JWTConfig
	now      func() time.Time
}

// NewWalletAuthService 创建钱包登录服务
func NewWalletAuthService(store cache.Store, profiles *UserProfileService, cfg config.WalletAuthConfig, jwtCfg config.JWTConfig) *WalletAuthService {
	if cfg.NonceTTLSeconds <= 0 {
		cfg.NonceTTLSeconds = 300
	}
	if cfg.ExpirationDays <= 0 {
		cfg.ExpirationDays = 7
	}
	if cfg.NotBeforeHours <= 0 {
		cfg.NotBeforeHours = 24
	}
	if strings.TrimSpace(cfg.StatementTemplate) == "" {
		cfg.StatementTemplate = "Authenticate with Mais do Cacau (%s)."
	}
	return &WalletAuthService{
		store:    store,
		profiles: profiles,
		cfg:      cfg,
		jwtCfg:   jwtCfg,
		now:      time.Now,
	}
}

// IssueNonce 签发一次性随机数
func (s *WalletAuthService) IssueNonce(ctx context.Context) (*WalletAuthChallenge, error) {
	if strings.TrimSpace(s.jwtCfg.SecretKey) == "" {
		return nil, ErrJWTSecretMissing
	}
	buf := make([]byte, walletNonceBytes)
	if _, err := rand.Read(buf); err != nil {
		return nil, err
	}
	nonce := hex.EncodeToString(buf)
	now := s.now()
	challenge := &WalletAuthChallenge{
		Nonce:          nonce,
		SignedNonce:    s.signNonce(nonce),
		RequestID:      uuid.NewString()[:8],
		ExpirationTime: now.Add(time.Duration(s.cfg.ExpirationDays) * 24 * time.Hour),
		NotBefore:      now.Add(-time.Duration(s.cfg.NotBeforeHours) * time.Hour),
		Statement:      fmt.Sprintf(s.cfg.StatementTemplate, now.UTC().Format(time.RFC3339)),
	}
	ttl := time.Duration(s.cfg.NonceTTLSeconds) * time.Second
	if err := s.store.Set(ctx, walletNonceKey(nonce), []byte(challenge.RequestID), ttl); err != nil {
		return nil, err
	}
	return challenge, nil
}

// Complete 校验插件结果并登录；随机数无论成败都会被消费
func (s *WalletAuthService) Complete(ctx context.Context, input CompleteWalletAuthInput) (*WalletAuthResult, error) {
	nonce := strings.TrimSpace(input.Nonce)
	if nonce == "" {
		return nil, ErrWalletNonceInvalid
	}
	result, parseErr := ParseWalletAuthResult(input.Payload)

	_, ok, err := s.store.Take(ctx, walletNonceKey(nonce))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrWalletNonceInvalid
	}
	if !hmac.Equal([]byte(s.signNonce(nonce)), []byte(strings.TrimSpace(input.SignedNonce))) {
		return nil, ErrWalletNonceInvalid
	}
	if parseErr != nil {
		return nil, parseErr
	}

	var success WalletAuthSuccess
	switch r := result.(type) {
	case WalletAuthSuccess:
		success = r
	case IdentityFailure:
		logger.Warnw("wallet_auth_rejected", "status", r.Status, "error_code", r.ErrorCode)
		return nil, ErrWalletAuthRejected
	default:
		return nil, ErrWalletPayloadInvalid
	}
	if !strings.Contains(success.Message, "Nonce: "+nonce) {
		return nil, ErrWalletNonceMismatch
	}

	profile, created, err := s.profiles.GetOrCreate(success.Address, input.Username)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if err := s.profiles.TouchLogin(profile, now); err != nil {
		logger.Warnw("wallet_auth_touch_login_failed", "user_id", profile.ID, "error", err)
	}
	token, expiresAt, err := s.GenerateUserJWT(profile)
	if err != nil {
		return nil, err
	}
	logger.Infow("wallet_auth_completed", "user_id", profile.ID, "created", created)
	return &WalletAuthResult{
		Profile:   profile,
		Token:     token,
		ExpiresAt: expiresAt,
		Created:   created,
	}, nil
}

// GenerateUserJWT 生成用户 Token
func (s *WalletAuthService) GenerateUserJWT(profile *models.UserProfile) (string, time.Time, error) {
	if strings.TrimSpace(s.jwtCfg.SecretKey) == "" {
		return "", time.Time{}, ErrJWTSecretMissing
	}
	now := s.now()
	expiresAt := now.Add(time.Duration(positiveHours(s.jwtCfg.ExpireHours, 24*7)) * time.Hour)
	claims := UserClaims{
		UserID:        profile.ID,
		WalletAddress: profile.WalletAddress,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtCfg.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ParseUserJWT 解析用户 Token
func (s *WalletAuthService) ParseUserJWT(tokenString string) (*UserClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(tokenString, &UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.jwtCfg.SecretKey), nil
	})
	if err != nil {
		return nil, ErrTokenInvalid
	}
	if claims, ok := token.Claims.(*UserClaims); ok && token.Valid && claims.UserID != 0 {
		return claims, nil
	}
	return nil, ErrTokenInvalid
}

func (s *WalletAuthService) signNonce(nonce string) string {
	mac := hmac.New(sha256.New, []byte(s.jwtCfg.SecretKey))
	mac.Write([]byte(nonce))
	return hex.EncodeToString(mac.Sum(nil))
}

func walletNonceKey(nonce string) string {
	return "wallet_nonce:" + nonce
}
