package service

import (
	"strings"

	"github.com/maisdocacau/storefront/internal/constants"
)

// allowedTransitions 订单状态流转表
var allowedTransitions = map[string]map[string]bool{
	constants.OrderStatusPendingPayment: {
		constants.OrderStatusPaid:     true,
		constants.OrderStatusFailed:   true,
		constants.OrderStatusCanceled: true,
	},
	constants.OrderStatusFailed: {
		constants.OrderStatusCanceled: true,
	},
	constants.OrderStatusPaid: {
		constants.OrderStatusConfirmed: true,
		constants.OrderStatusCanceled:  true,
	},
	constants.OrderStatusConfirmed: {
		constants.OrderStatusShipped:  true,
		constants.OrderStatusCanceled: true,
	},
	constants.OrderStatusShipped: {
		constants.OrderStatusDelivered: true,
	},
}

func isKnownOrderStatus(status string) bool {
	switch status {
	case constants.OrderStatusPendingPayment,
		constants.OrderStatusPaid,
		constants.OrderStatusFailed,
		constants.OrderStatusConfirmed,
		constants.OrderStatusShipped,
		constants.OrderStatusDelivered,
		constants.OrderStatusCanceled:
		return true
	}
	return false
}

func isTransitionAllowed(current, target string) bool {
	if current == target {
		return true
	}
	nexts, ok := allowedTransitions[current]
	if !ok {
		return false
	}
	return nexts[target]
}

func normalizeOrderStatus(status string) string {
	return strings.ToLower(strings.TrimSpace(status))
}
