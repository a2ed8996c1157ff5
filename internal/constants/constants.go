package constants

// 商品分类（封闭集合）
const (
	CategoryChocolate     = "chocolate"
	CategoryBeverage      = "beverage"
	CategorySnack         = "snack"
	CategoryConfectionery = "confectionery"
	CategoryAlcohol       = "alcohol"
	CategoryCondiment     = "condiment"
	CategoryTea           = "tea"
)

// ProductCategories 返回全部商品分类，按展示顺序
func ProductCategories() []string {
	return []string{
		CategoryChocolate,
		CategoryBeverage,
		CategorySnack,
		CategoryConfectionery,
		CategoryAlcohol,
		CategoryCondiment,
		CategoryTea,
	}
}

// IsProductCategory 判断分类是否合法
func IsProductCategory(tag string) bool {
	for _, item := range ProductCategories() {
		if item == tag {
			return true
		}
	}
	return false
}

// 订单状态常量
const (
	OrderStatusPendingPayment = "pending_payment"
	OrderStatusPaid           = "paid"
	OrderStatusFailed         = "failed"
	OrderStatusConfirmed      = "confirmed"
	OrderStatusShipped        = "shipped"
	OrderStatusDelivered      = "delivered"
	OrderStatusCanceled       = "canceled"
)

// 支付方式常量
const (
	PaymentMethodPix    = "pix"
	PaymentMethodCredit = "credit"
	PaymentMethodCrypto = "crypto"
)

// 结算步骤常量
const (
	CheckoutStepAddress      = "address"
	CheckoutStepPayment      = "payment"
	CheckoutStepConfirmation = "confirmation"
)

// 身份插件返回状态
const (
	IdentityStatusSuccess = "success"
	IdentityStatusError   = "error"
)

// 会话态存储键
const (
	SessionKeyCart         = "cart"
	SessionKeyDeliveryInfo = "delivery_info"
	SessionKeyCheckout     = "checkout"
	SessionKeyAgeVerified  = "age_verified"
)

// 订单事件类型
const (
	OrderEventConfirmed = "order.confirmed"
)

// CurrencyPrefix 金额展示前缀
const CurrencyPrefix = "R$ "

// ZeroWalletAddressPrefix 占位钱包地址前缀，不允许登录
const ZeroWalletAddressPrefix = "0x0000"

// 异步任务
const (
	QueueDefault           = "default"
	TaskOrderConfirmed     = "order:confirmed"
	TaskOrderPaymentExpire = "order:payment_expire"
)
