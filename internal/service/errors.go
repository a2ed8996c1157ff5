package service

import (
	"errors"
	"strings"
)

// 通用
var (
	ErrNotFound       = errors.New("记录不存在")
	ErrInvalidSession = errors.New("会话标识无效")
	// ErrSessionDataCorrupt 会话态数据无法解析，调用方应丢弃该键
	ErrSessionDataCorrupt = errors.New("会话数据损坏")
)

// 商品目录
var (
	ErrProductNotFound   = errors.New("商品不存在")
	ErrInvalidCategory   = errors.New("商品分类无效")
	ErrProductOutOfStock = errors.New("商品库存不足")
	ErrProductInvalid    = errors.New("商品信息无效")
)

// 购物车
var (
	ErrInvalidQuantity         = errors.New("商品数量无效")
	ErrCartItemNotFound        = errors.New("购物车中没有该商品")
	ErrAgeVerificationRequired = errors.New("含酒精商品需要先完成年龄验证")
	ErrAgeVerificationFailed   = errors.New("年龄验证未通过")
)

// 结算
var (
	ErrCartEmpty             = errors.New("购物车为空")
	ErrCheckoutNotStarted    = errors.New("结算尚未开始")
	ErrInvalidCheckoutStep   = errors.New("当前结算步骤不允许该操作")
	ErrAddressFieldRequired  = errors.New("收货地址必填项缺失")
	ErrNeighborhoodNotServed = errors.New("该街区不在配送范围内")
	ErrPaymentMethodInvalid  = errors.New("支付方式无效")
	ErrPaymentFailed         = errors.New("支付失败，请重试")
	ErrCheckoutInProgress    = errors.New("支付处理中，请勿重复提交")
	ErrOrderCreateFailed     = errors.New("订单创建失败")
)

// 订单
var (
	ErrOrderNotFound         = errors.New("订单不存在")
	ErrOrderStatusInvalid    = errors.New("订单状态无效")
	ErrOrderStatusNotAllowed = errors.New("订单状态不允许该变更")
	ErrOrderFetchFailed      = errors.New("订单查询失败")
	ErrOrderUpdateFailed     = errors.New("订单更新失败")
)

// 用户与后台
var (
	ErrProfileNotFound      = errors.New("用户不存在")
	ErrProfileUpdateInvalid = errors.New("用户资料无效")
	ErrInvalidCredentials   = errors.New("用户名或密码错误")
	ErrCaptchaRequired      = errors.New("请输入验证码")
	ErrCaptchaInvalid       = errors.New("验证码错误")
	ErrCaptchaConfigInvalid = errors.New("验证码未启用")
	ErrTokenInvalid         = errors.New("令牌无效")
	ErrJWTSecretMissing     = errors.New("JWT 密钥未配置")
	ErrAuthzRoleInvalid     = errors.New("角色不存在")
	ErrAuthzSelfDemotion    = errors.New("不能修改自己的角色")
	ErrAuthzUnavailable     = errors.New("权限服务不可用")
)

// 钱包登录
var (
	ErrWalletPayloadInvalid = errors.New("钱包返回数据无效")
	ErrWalletAuthRejected   = errors.New("钱包授权被拒绝")
	ErrWalletNonceInvalid   = errors.New("登录随机数无效或已使用")
	ErrWalletNonceMismatch  = errors.New("签名消息与随机数不匹配")
	ErrWalletAddressInvalid = errors.New("钱包地址无效")
)

// AddressValidationError 地址校验错误，区分必填缺失与不在配送范围两类
type AddressValidationError struct {
	MissingFields []string
	Neighborhood  string
}

func (e *AddressValidationError) Error() string {
	if e == nil {
		return ""
	}
	if len(e.MissingFields) > 0 {
		return ErrAddressFieldRequired.Error() + ": " + strings.Join(e.MissingFields, ", ")
	}
	return ErrNeighborhoodNotServed.Error() + ": " + e.Neighborhood
}

// Is 支持 errors.Is 匹配对应的哨兵错误
func (e *AddressValidationError) Is(target error) bool {
	if e == nil {
		return false
	}
	if len(e.MissingFields) > 0 {
		return target == ErrAddressFieldRequired
	}
	return target == ErrNeighborhoodNotServed
}

// Unserviceable 是否为配送范围错误
func (e *AddressValidationError) Unserviceable() bool {
	return e != nil && len(e.MissingFields) == 0
}
