package models

import (
	"time"

	"gorm.io/gorm"
)

// StockUnlimited 库存不限
const StockUnlimited = -1

// Product 商品表
type Product struct {
	ID              string         `gorm:"primarykey;type:varchar(100)" json:"id"`             // 商品标识（slug）
	Name            string         `gorm:"type:varchar(200);not null" json:"name"`             // 名称
	Description     string         `gorm:"type:text" json:"description"`                       // 描述
	Price           Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"` // 价格
	Image           string         `gorm:"type:varchar(500)" json:"image"`                     // 图片路径
	Category        string         `gorm:"type:varchar(40);not null;index" json:"category"`    // 分类
	Weight          string         `gorm:"type:varchar(40)" json:"weight,omitempty"`           // 规格（展示用）
	ContainsAlcohol bool           `gorm:"not null;default:false" json:"contains_alcohol"`     // 含酒精（需年龄验证）
	Featured        bool           `gorm:"not null;default:false;index" json:"featured"`       // 推荐
	IsNew           bool           `gorm:"not null;default:false;index" json:"is_new"`         // 新品
	Stock           int            `gorm:"not null" json:"stock"`                              // 库存（-1 不限）
	Ingredients     StringArray    `gorm:"type:json" json:"ingredients,omitempty"`             // 成分
	HealthBenefits  StringArray    `gorm:"type:json" json:"health_benefits,omitempty"`         // 功效
	Origin          string         `gorm:"type:varchar(200)" json:"origin,omitempty"`          // 产地
	IsActive        bool           `gorm:"not null;index" json:"is_active"`                    // 是否上架
	SortOrder       int            `gorm:"not null;default:0;index" json:"sort_order"`         // 排序权重
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`                            // 创建时间
	UpdatedAt       time.Time      `json:"updated_at"`                                         // 更新时间
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`                                     // 软删除时间
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}

// HasStockFor 判断库存是否足够
func (p *Product) HasStockFor(quantity int) bool {
	if p == nil {
		return false
	}
	if p.Stock < 0 {
		return true
	}
	return p.Stock >= quantity
}
