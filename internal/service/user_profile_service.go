package service

import (
	"net/mail"
	"strings"
	"time"

	"github.com/maisdocacau/storefront/internal/constants"
	"github.com/maisdocacau/storefront/internal/logger"
	"github.com/maisdocacau/storefront/internal/models"
	"github.com/maisdocacau/storefront/internal/repository"
)

const (
	maxUsernameLength     = 100
	maxProfileImageLength = 500
)

// UpdateProfileInput 用户资料更新，nil 表示不修改
type UpdateProfileInput struct {
	Username     *string
	Email        *string
	ProfileImage *string
}

// UserProfileService 钱包用户资料服务
type UserProfileService struct {
	repo          repository.UserProfileRepository
	namePrefix    string
	nameAddrChars int
}

// NewUserProfileService 创建用户资料服务
func NewUserProfileService(repo repository.UserProfileRepository, namePrefix string, nameAddrChars int) *UserProfileService {
	if namePrefix == "" {
		namePrefix = "User_"
	}
	if nameAddrChars <= 0 {
		nameAddrChars = 6
	}
	return &UserProfileService{
		repo:          repo,
		namePrefix:    namePrefix,
		nameAddrChars: nameAddrChars,
	}
}

// GetOrCreate 按钱包地址获取用户，不存在时创建
func (s *UserProfileService) GetOrCreate(walletAddress, username string) (*models.UserProfile, bool, error) {
	address, err := NormalizeWalletAddress(walletAddress)
	if err != nil {
		return nil, false, err
	}
	existing, err := s.repo.GetByWalletAddress(address)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	username = strings.TrimSpace(username)
	if username == "" {
		username = s.DefaultUsername(address)
	}
	if len(username) > maxUsernameLength {
		username = username[:maxUsernameLength]
	}
	profile := &models.UserProfile{
		WalletAddress: address,
		Username:      username,
	}
	if err := s.repo.Create(profile); err != nil {
		// 并发首次登录时可能已被创建
		if again, getErr := s.repo.GetByWalletAddress(address); getErr == nil && again != nil {
			return again, false, nil
		}
		return nil, false, err
	}
	logger.Infow("user_profile_created", "user_id", profile.ID, "wallet_address", address)
	return profile, true, nil
}

// DefaultUsername 默认用户名：前缀 + 地址前若干位
func (s *UserProfileService) DefaultUsername(address string) string {
	if len(address) > s.nameAddrChars {
		address = address[:s.nameAddrChars]
	}
	return s.namePrefix + address
}

// GetByID 获取用户
func (s *UserProfileService) GetByID(userID uint) (*models.UserProfile, error) {
	if userID == 0 {
		return nil, ErrProfileNotFound
	}
	profile, err := s.repo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}
	return profile, nil
}

// TouchLogin 记录登录时间
func (s *UserProfileService) TouchLogin(profile *models.UserProfile, at time.Time) error {
	if err := s.repo.TouchLogin(profile.ID, at); err != nil {
		return err
	}
	profile.LastLoginAt = &at
	return nil
}

// UpdateProfile 更新用户资料
func (s *UserProfileService) UpdateProfile(userID uint, input UpdateProfileInput) (*models.UserProfile, error) {
	profile, err := s.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if input.Username != nil {
		username := strings.TrimSpace(*input.Username)
		if username == "" || len(username) > maxUsernameLength {
			return nil, ErrProfileUpdateInvalid
		}
		profile.Username = username
	}
	if input.Email != nil {
		email := strings.TrimSpace(*input.Email)
		if email != "" {
			if _, err := mail.ParseAddress(email); err != nil {
				return nil, ErrProfileUpdateInvalid
			}
		}
		profile.Email = strings.ToLower(email)
	}
	if input.ProfileImage != nil {
		image := strings.TrimSpace(*input.ProfileImage)
		if len(image) > maxProfileImageLength {
			return nil, ErrProfileUpdateInvalid
		}
		profile.ProfileImage = image
	}
	if err := s.repo.Update(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// NormalizeWalletAddress 校验并小写化钱包地址，拒绝零地址占位
func NormalizeWalletAddress(raw string) (string, error) {
	address := strings.ToLower(strings.TrimSpace(raw))
	if len(address) != 42 || !strings.HasPrefix(address, "0x") {
		return "", ErrWalletAddressInvalid
	}
	for _, ch := range address[2:] {
		if !(ch >= '0' && ch <= '9') && !(ch >= 'a' && ch <= 'f') {
			return "", ErrWalletAddressInvalid
		}
	}
	if strings.HasPrefix(address, constants.ZeroWalletAddressPrefix) {
		return "", ErrWalletAddressInvalid
	}
	return address, nil
}
