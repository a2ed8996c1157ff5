package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/maisdocacau/storefront/internal/constants"
	"github.com/maisdocacau/storefront/internal/logger"
	"github.com/maisdocacau/storefront/internal/models"
	"github.com/maisdocacau/storefront/internal/repository"

	"gorm.io/gorm"
)

const (
	orderNoPrefix     = "MDC"
	orderNoDigits     = 8
	orderNoMaxAttempt = 5

	paymentExpiredReason = "payment expired"
)

// CreatePendingOrderInput 创建待支付订单输入
type CreatePendingOrderInput struct {
	SessionID     string
	UserID        *uint
	PaymentMethod string
	Address       models.DeliveryAddress
	Zone          string
	EstimatedTime string
	DeliveryFee   models.Money
	Lines         []CartLine
}

// OrderService 订单服务
type OrderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
}

// NewOrderService 创建订单服务
func NewOrderService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
	}
}

// CreatePending 由购物车快照创建待支付订单
func (s *OrderService) CreatePending(input CreatePendingOrderInput) (*models.Order, error) {
	if len(input.Lines) == 0 {
		return nil, ErrCartEmpty
	}
	if err := s.checkStock(input.Lines); err != nil {
		return nil, err
	}
	items := make([]models.OrderItem, 0, len(input.Lines))
	subtotal := models.Money{}
	for _, line := range input.Lines {
		lineTotal := line.LineTotal()
		subtotal = subtotal.Add(lineTotal)
		items = append(items, models.OrderItem{
			ProductID:   line.Product.ID,
			ProductName: line.Product.Name,
			UnitPrice:   line.Product.Price,
			Quantity:    line.Quantity,
			TotalPrice:  lineTotal,
		})
	}

	orderNo, err := s.nextOrderNo()
	if err != nil {
		return nil, err
	}
	order := &models.Order{
		OrderNo:           orderNo,
		SessionID:         input.SessionID,
		UserID:            input.UserID,
		Status:            constants.OrderStatusPendingPayment,
		PaymentMethod:     input.PaymentMethod,
		Subtotal:          subtotal,
		DeliveryFee:       input.DeliveryFee,
		Total:             subtotal.Add(input.DeliveryFee),
		Address:           input.Address,
		Zone:              input.Zone,
		EstimatedDelivery: input.EstimatedTime,
	}
	if err := s.orderRepo.Create(order, items); err != nil {
		logger.Errorw("order_create_failed", "order_no", orderNo, "session_id", input.SessionID, "error", err)
		return nil, ErrOrderCreateFailed
	}
	logger.Infow("order_created",
		"order_no", order.OrderNo,
		"session_id", input.SessionID,
		"payment_method", input.PaymentMethod,
		"total", order.Total.String(),
	)
	return order, nil
}

// checkStock 扣款前复核有限库存，加购后库存被买空时拒绝下单
func (s *OrderService) checkStock(lines []CartLine) error {
	if s.productRepo == nil {
		return nil
	}
	wanted := make(map[string]int, len(lines))
	order := make([]string, 0, len(lines))
	for _, line := range lines {
		if _, ok := wanted[line.Product.ID]; !ok {
			order = append(order, line.Product.ID)
		}
		wanted[line.Product.ID] += line.Quantity
	}
	for _, id := range order {
		product, err := s.productRepo.GetByID(id)
		if err != nil {
			logger.Errorw("order_stock_check_failed", "product_id", id, "error", err)
			return ErrOrderCreateFailed
		}
		if product == nil {
			continue
		}
		if !product.HasStockFor(wanted[id]) {
			return ErrProductOutOfStock
		}
	}
	return nil
}

// MarkPaid 标记已支付并扣减有限库存，并发下单导致扣减落空时记录告警
func (s *OrderService) MarkPaid(order *models.Order, paymentRef string, now time.Time) error {
	if order == nil {
		return ErrOrderNotFound
	}
	if !isTransitionAllowed(order.Status, constants.OrderStatusPaid) {
		return ErrOrderStatusNotAllowed
	}
	err := s.orderRepo.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		updates := map[string]interface{}{
			"payment_ref": paymentRef,
			"paid_at":     now,
			"updated_at":  now,
		}
		if err := orderRepo.UpdateStatus(order.ID, constants.OrderStatusPaid, updates); err != nil {
			return err
		}
		if s.productRepo == nil {
			return nil
		}
		productRepo := s.productRepo.WithTx(tx)
		for _, item := range order.Items {
			affected, err := productRepo.DecrementStock(item.ProductID, item.Quantity)
			if err != nil {
				return err
			}
			if affected == 0 {
				logger.Warnw("order_stock_not_decremented",
					"order_no", order.OrderNo,
					"product_id", item.ProductID,
					"quantity", item.Quantity,
				)
			}
		}
		return nil
	})
	if err != nil {
		logger.Errorw("order_mark_paid_failed", "order_no", order.OrderNo, "error", err)
		return ErrOrderUpdateFailed
	}
	order.Status = constants.OrderStatusPaid
	order.PaymentRef = paymentRef
	order.PaidAt = &now
	return nil
}

// MarkFailed 标记支付失败
func (s *OrderService) MarkFailed(order *models.Order, reason string, now time.Time) error {
	if order == nil {
		return ErrOrderNotFound
	}
	if !isTransitionAllowed(order.Status, constants.OrderStatusFailed) {
		return ErrOrderStatusNotAllowed
	}
	reason = truncateReason(reason)
	updates := map[string]interface{}{
		"failure_reason": reason,
		"updated_at":     now,
	}
	if err := s.orderRepo.UpdateStatus(order.ID, constants.OrderStatusFailed, updates); err != nil {
		logger.Errorw("order_mark_failed_failed", "order_no", order.OrderNo, "error", err)
		return ErrOrderUpdateFailed
	}
	order.Status = constants.OrderStatusFailed
	order.FailureReason = reason
	return nil
}

// MarkConfirmed 已支付订单确认，重复调用无副作用
func (s *OrderService) MarkConfirmed(orderNo string) (*models.Order, bool, error) {
	order, err := s.getByOrderNo(orderNo)
	if err != nil {
		return nil, false, err
	}
	switch order.Status {
	case constants.OrderStatusConfirmed, constants.OrderStatusShipped, constants.OrderStatusDelivered:
		return order, false, nil
	case constants.OrderStatusPaid:
	default:
		return nil, false, ErrOrderStatusNotAllowed
	}
	now := time.Now()
	updates := map[string]interface{}{
		"confirmed_at": now,
		"updated_at":   now,
	}
	if err := s.orderRepo.UpdateStatus(order.ID, constants.OrderStatusConfirmed, updates); err != nil {
		return nil, false, ErrOrderUpdateFailed
	}
	order.Status = constants.OrderStatusConfirmed
	order.ConfirmedAt = &now
	return order, true, nil
}

// ExpirePending 待支付订单超时标记为支付失败，其他状态不处理
func (s *OrderService) ExpirePending(orderNo string) (*models.Order, error) {
	order, err := s.getByOrderNo(orderNo)
	if err != nil {
		return nil, err
	}
	if order.Status != constants.OrderStatusPendingPayment {
		return order, nil
	}
	now := time.Now()
	updates := map[string]interface{}{
		"failure_reason": paymentExpiredReason,
		"updated_at":     now,
	}
	if err := s.orderRepo.UpdateStatus(order.ID, constants.OrderStatusFailed, updates); err != nil {
		return nil, ErrOrderUpdateFailed
	}
	order.Status = constants.OrderStatusFailed
	order.FailureReason = paymentExpiredReason
	logger.Infow("order_payment_expired", "order_no", order.OrderNo)
	return order, nil
}

// ListByUser 用户订单列表
func (s *OrderService) ListByUser(userID uint, page, pageSize int) ([]models.Order, int64, error) {
	if userID == 0 {
		return []models.Order{}, 0, nil
	}
	orders, total, err := s.orderRepo.ListByUser(repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   userID,
	})
	if err != nil {
		return nil, 0, ErrOrderFetchFailed
	}
	return orders, total, nil
}

// GetByOrderNo 用户订单详情，其他用户的订单视为不存在
func (s *OrderService) GetByOrderNo(userID uint, orderNo string) (*models.Order, error) {
	orderNo = strings.TrimSpace(orderNo)
	if userID == 0 || orderNo == "" {
		return nil, ErrOrderNotFound
	}
	order, err := s.orderRepo.GetByOrderNoAndUser(orderNo, userID)
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// List 后台订单列表
func (s *OrderService) List(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	filter.Status = normalizeOrderStatus(filter.Status)
	if filter.Status != "" && !isKnownOrderStatus(filter.Status) {
		return nil, 0, ErrOrderStatusInvalid
	}
	orders, total, err := s.orderRepo.ListAdmin(filter)
	if err != nil {
		return nil, 0, ErrOrderFetchFailed
	}
	return orders, total, nil
}

// UpdateStatus 后台更新订单状态
func (s *OrderService) UpdateStatus(orderNo, targetStatus string) (*models.Order, error) {
	target := normalizeOrderStatus(targetStatus)
	if !isKnownOrderStatus(target) {
		return nil, ErrOrderStatusInvalid
	}
	order, err := s.getByOrderNo(orderNo)
	if err != nil {
		return nil, err
	}
	if order.Status == target {
		return order, nil
	}
	if !isTransitionAllowed(order.Status, target) {
		return nil, ErrOrderStatusNotAllowed
	}

	now := time.Now()
	updates := map[string]interface{}{"updated_at": now}
	switch target {
	case constants.OrderStatusPaid:
		updates["paid_at"] = now
	case constants.OrderStatusConfirmed:
		updates["confirmed_at"] = now
	}
	if err := s.orderRepo.UpdateStatus(order.ID, target, updates); err != nil {
		return nil, ErrOrderUpdateFailed
	}
	logger.Infow("order_status_updated", "order_no", order.OrderNo, "from", order.Status, "to", target)
	order.Status = target
	return order, nil
}

func (s *OrderService) getByOrderNo(orderNo string) (*models.Order, error) {
	orderNo = strings.TrimSpace(orderNo)
	if orderNo == "" {
		return nil, ErrOrderNotFound
	}
	order, err := s.orderRepo.GetByOrderNo(orderNo)
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// nextOrderNo 生成未被占用的订单号
func (s *OrderService) nextOrderNo() (string, error) {
	for i := 0; i < orderNoMaxAttempt; i++ {
		orderNo := generateOrderNo()
		existing, err := s.orderRepo.GetByOrderNo(orderNo)
		if err != nil {
			return "", ErrOrderCreateFailed
		}
		if existing == nil {
			return orderNo, nil
		}
	}
	return "", ErrOrderCreateFailed
}

func generateOrderNo() string {
	return orderNoPrefix + randNumeric(orderNoDigits)
}

func randNumeric(length int) string {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			b.WriteString("0")
			continue
		}
		b.WriteString(fmt.Sprintf("%d", n.Int64()))
	}
	return b.String()
}

func truncateReason(reason string) string {
	reason = strings.TrimSpace(reason)
	if len(reason) > 255 {
		return reason[:255]
	}
	return reason
}
