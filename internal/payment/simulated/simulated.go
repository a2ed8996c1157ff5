package simulated

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/maisdocacau/storefront/internal/payment"

	"github.com/google/uuid"
)

// Config 模拟网关配置
type Config struct {
	Delay       time.Duration
	FailureRate float64 // 0 ~ 1
}

// Gateway 模拟支付网关：等待固定延迟后按失败率返回结果
type Gateway struct {
	cfg  Config
	roll func() float64
}

// New 创建模拟网关
func New(cfg Config) *Gateway {
	if cfg.Delay < 0 {
		cfg.Delay = 0
	}
	if cfg.FailureRate < 0 {
		cfg.FailureRate = 0
	}
	if cfg.FailureRate > 1 {
		cfg.FailureRate = 1
	}
	return &Gateway{cfg: cfg, roll: rand.Float64}
}

// WithRoll 替换随机源
func (g *Gateway) WithRoll(roll func() float64) *Gateway {
	if roll != nil {
		g.roll = roll
	}
	return g
}

// Charge 执行扣款
func (g *Gateway) Charge(ctx context.Context, input payment.ChargeInput) (*payment.ChargeResult, error) {
	if strings.TrimSpace(input.OrderNo) == "" || strings.TrimSpace(input.Method) == "" {
		return nil, payment.ErrInputInvalid
	}
	if input.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: negative amount", payment.ErrInputInvalid)
	}

	if g.cfg.Delay > 0 {
		timer := time.NewTimer(g.cfg.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", payment.ErrChargeTimeout, ctx.Err())
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", payment.ErrChargeTimeout, err)
	}

	if g.cfg.FailureRate > 0 && g.roll() < g.cfg.FailureRate {
		return nil, payment.ErrChargeDeclined
	}
	return &payment.ChargeResult{
		Reference: "sim_" + strings.ReplaceAll(uuid.NewString(), "-", ""),
		Method:    input.Method,
		Amount:    input.Amount,
	}, nil
}
