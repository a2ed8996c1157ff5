package payment

import (
	"context"
	"errors"

	"github.com/maisdocacau/storefront/internal/models"
)

var (
	ErrChargeDeclined = errors.New("payment declined")
	ErrChargeTimeout  = errors.New("payment timeout")
	ErrInputInvalid   = errors.New("payment input invalid")
)

// ChargeInput 扣款输入
type ChargeInput struct {
	OrderNo string
	Method  string
	Amount  models.Money
}

// ChargeResult 扣款结果
type ChargeResult struct {
	Reference string
	Method    string
	Amount    models.Money
}

// Gateway 支付执行器
type Gateway interface {
	Charge(ctx context.Context, input ChargeInput) (*ChargeResult, error)
}
