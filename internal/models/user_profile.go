package models

import (
	"time"

	"gorm.io/gorm"
)

// UserProfile 钱包用户资料表
type UserProfile struct {
	ID            uint           `gorm:"primarykey" json:"id"`                                         // 主键
	WalletAddress string         `gorm:"type:varchar(100);uniqueIndex;not null" json:"wallet_address"` // 钱包地址（小写）
	Username      string         `gorm:"type:varchar(100);not null" json:"username"`                   // 用户名
	Email         string         `gorm:"type:varchar(255)" json:"email,omitempty"`                     // 邮箱
	ProfileImage  string         `gorm:"type:varchar(500)" json:"profile_image,omitempty"`             // 头像
	WorldID       string         `gorm:"type:varchar(200)" json:"world_id,omitempty"`                  // World ID
	Verified      bool           `gorm:"not null;default:false" json:"verified"`                       // 是否已通过身份验证
	LastLoginAt   *time.Time     `json:"last_login_at"`                                                // 最后登录时间
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`                                      // 创建时间
	UpdatedAt     time.Time      `json:"updated_at"`                                                   // 更新时间
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                                               // 软删除时间
}

// TableName 指定表名
func (UserProfile) TableName() string {
	return "user_profiles"
}
