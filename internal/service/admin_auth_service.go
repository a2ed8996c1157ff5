package service

import (
	"context"
	"strings"
	"time"

	"github.com/maisdocacau/storefront/internal/cache"
	"github.com/maisdocacau/storefront/internal/config"
	"github.com/maisdocacau/storefront/internal/logger"
	"github.com/maisdocacau/storefront/internal/models"
	"github.com/maisdocacau/storefront/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AdminLoginInput 后台登录输入
type AdminLoginInput struct {
	Username string
	Password string
	Captcha  CaptchaVerifyPayload
}

// AdminClaims 后台 JWT 声明
type AdminClaims struct {
	AdminID      uint   `json:"admin_id"`
	Username     string `json:"username"`
	TokenVersion uint64 `json:"token_version"`
	jwt.RegisteredClaims
}

// AdminAuthService 后台认证服务
type AdminAuthService struct {
	cfg       config.JWTConfig
	adminRepo repository.AdminRepository
	captcha   *CaptchaService
}

// NewAdminAuthService 创建后台认证服务
func NewAdminAuthService(cfg config.JWTConfig, adminRepo repository.AdminRepository, captcha *CaptchaService) *AdminAuthService {
	return &AdminAuthService{
		cfg:       cfg,
		adminRepo: adminRepo,
		captcha:   captcha,
	}
}

// HashPassword 使用 bcrypt 加密密码
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Login 管理员登录
func (s *AdminAuthService) Login(input AdminLoginInput) (*models.Admin, string, time.Time, error) {
	if err := s.captcha.Verify(input.Captcha); err != nil {
		return nil, "", time.Time{}, err
	}
	username := strings.TrimSpace(input.Username)
	if username == "" || input.Password == "" {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	admin, err := s.adminRepo.GetByUsername(username)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if admin == nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(input.Password)); err != nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	token, expiresAt, err := s.GenerateJWT(admin)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	now := time.Now()
	admin.LastLoginAt = &now
	if err := s.adminRepo.Update(admin); err != nil {
		return nil, "", time.Time{}, err
	}
	if err := cache.SetAdminAuthState(context.Background(), cache.BuildAdminAuthState(admin)); err != nil {
		logger.Warnw("admin_auth_state_cache_failed", "admin_id", admin.ID, "error", err)
	}
	return admin, token, expiresAt, nil
}

// GenerateJWT 生成后台 Token
func (s *AdminAuthService) GenerateJWT(admin *models.Admin) (string, time.Time, error) {
	if strings.TrimSpace(s.cfg.SecretKey) == "" {
		return "", time.Time{}, ErrJWTSecretMissing
	}
	now := time.Now()
	expiresAt := now.Add(time.Duration(positiveHours(s.cfg.ExpireHours, 24)) * time.Hour)
	claims := AdminClaims{
		AdminID:      admin.ID,
		Username:     admin.Username,
		TokenVersion: admin.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ParseJWT 解析后台 Token
func (s *AdminAuthService) ParseJWT(tokenString string) (*AdminClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(tokenString, &AdminClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.SecretKey), nil
	})
	if err != nil {
		return nil, ErrTokenInvalid
	}
	if claims, ok := token.Claims.(*AdminClaims); ok && token.Valid && claims.AdminID != 0 {
		return claims, nil
	}
	return nil, ErrTokenInvalid
}

// ResolveAuthState 读取管理员鉴权快照，缓存未命中时回源数据库
func (s *AdminAuthService) ResolveAuthState(ctx context.Context, adminID uint) (*cache.AdminAuthState, error) {
	state, ok, err := cache.GetAdminAuthState(ctx, adminID)
	if err != nil {
		logger.Warnw("admin_auth_state_cache_read_failed", "admin_id", adminID, "error", err)
	}
	if err == nil && ok && state != nil {
		return state, nil
	}
	admin, err := s.adminRepo.GetByID(adminID)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, ErrNotFound
	}
	state = cache.BuildAdminAuthState(admin)
	if err := cache.SetAdminAuthState(ctx, state); err != nil {
		logger.Warnw("admin_auth_state_cache_failed", "admin_id", adminID, "error", err)
	}
	return state, nil
}

func positiveHours(value, fallback int) int {
	if value > 0 {
		return value
	}
	return fallback
}
