package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单表
type Order struct {
	ID                uint            `gorm:"primarykey" json:"id"`                                      // 主键
	OrderNo           string          `gorm:"type:varchar(32);uniqueIndex;not null" json:"order_no"`     // 订单编号（MDC 前缀）
	SessionID         string          `gorm:"type:varchar(64);index" json:"-"`                           // 下单会话
	UserID            *uint           `gorm:"index" json:"user_id,omitempty"`                            // 用户ID（未登录为空）
	Status            string          `gorm:"type:varchar(32);index;not null" json:"status"`             // 订单状态
	PaymentMethod     string          `gorm:"type:varchar(20);not null" json:"payment_method"`           // 支付方式
	Subtotal          Money           `gorm:"type:decimal(20,2);not null;default:0" json:"subtotal"`     // 商品小计
	DeliveryFee       Money           `gorm:"type:decimal(20,2);not null;default:0" json:"delivery_fee"` // 配送费
	Total             Money           `gorm:"type:decimal(20,2);not null;default:0" json:"total"`        // 实付金额
	Address           DeliveryAddress `gorm:"type:json" json:"address"`                                  // 收货地址快照
	Zone              string          `gorm:"type:varchar(100)" json:"zone"`                             // 配送区域
	EstimatedDelivery string          `gorm:"type:varchar(40)" json:"estimated_delivery"`                // 预计送达
	PaymentRef        string          `gorm:"type:varchar(100)" json:"payment_ref,omitempty"`            // 支付流水
	FailureReason     string          `gorm:"type:varchar(255)" json:"failure_reason,omitempty"`         // 支付失败原因
	PaidAt            *time.Time      `gorm:"index" json:"paid_at"`                                      // 支付时间
	ConfirmedAt       *time.Time      `json:"confirmed_at"`                                              // 确认时间
	CreatedAt         time.Time       `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt         time.Time       `gorm:"index" json:"updated_at"`                                   // 更新时间
	DeletedAt         gorm.DeletedAt  `gorm:"index" json:"-"`                                            // 软删除时间

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"` // 订单项
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
