package queue

import (
	"encoding/json"
	"strings"

	"github.com/maisdocacau/storefront/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderConfirmed 支付成功后的订单确认任务
	TaskOrderConfirmed = constants.TaskOrderConfirmed
	// TaskOrderPaymentExpire 待支付订单过期任务
	TaskOrderPaymentExpire = constants.TaskOrderPaymentExpire
)

// OrderConfirmedPayload 订单确认任务载荷
type OrderConfirmedPayload struct {
	OrderNo string `json:"order_no"`
}

// OrderPaymentExpirePayload 待支付过期任务载荷
type OrderPaymentExpirePayload struct {
	OrderNo string `json:"order_no"`
}

// NewOrderConfirmedTask 创建订单确认任务
func NewOrderConfirmedTask(payload OrderConfirmedPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderConfirmed, body), nil
}

// NewOrderPaymentExpireTask 创建待支付过期任务
func NewOrderPaymentExpireTask(payload OrderPaymentExpirePayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderPaymentExpire, body), nil
}

// ParseOrderNoPayload 解析只携带订单号的任务载荷
func ParseOrderNoPayload(raw []byte) (string, error) {
	var payload OrderConfirmedPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return "", err
	}
	return strings.TrimSpace(payload.OrderNo), nil
}
