package repository

import (
	"errors"
	"time"

	"github.com/maisdocacau/storefront/internal/models"

	"gorm.io/gorm"
)

// UserProfileRepository 钱包用户资料访问接口
type UserProfileRepository interface {
	GetByID(id uint) (*models.UserProfile, error)
	GetByWalletAddress(address string) (*models.UserProfile, error)
	Create(profile *models.UserProfile) error
	Update(profile *models.UserProfile) error
	TouchLogin(id uint, at time.Time) error
}

// GormUserProfileRepository GORM 实现
type GormUserProfileRepository struct {
	db *gorm.DB
}

// NewUserProfileRepository 创建用户资料仓库
func NewUserProfileRepository(db *gorm.DB) *GormUserProfileRepository {
	return &GormUserProfileRepository{db: db}
}

// GetByID 根据 ID 获取
func (r *GormUserProfileRepository) GetByID(id uint) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := r.db.First(&profile, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

// GetByWalletAddress 根据钱包地址获取
func (r *GormUserProfileRepository) GetByWalletAddress(address string) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := r.db.Where("wallet_address = ?", address).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

// Create 创建
func (r *GormUserProfileRepository) Create(profile *models.UserProfile) error {
	return r.db.Create(profile).Error
}

// Update 更新
func (r *GormUserProfileRepository) Update(profile *models.UserProfile) error {
	return r.db.Save(profile).Error
}

// TouchLogin 记录最后登录时间
func (r *GormUserProfileRepository) TouchLogin(id uint, at time.Time) error {
	return r.db.Model(&models.UserProfile{}).Where("id = ?", id).Update("last_login_at", at).Error
}
