package worker

import (
	"context"
	"errors"
	"time"

	"github.com/maisdocacau/storefront/internal/constants"
	"github.com/maisdocacau/storefront/internal/events"
	"github.com/maisdocacau/storefront/internal/logger"
	"github.com/maisdocacau/storefront/internal/models"
	"github.com/maisdocacau/storefront/internal/provider"
	"github.com/maisdocacau/storefront/internal/queue"
	"github.com/maisdocacau/storefront/internal/repository"
	"github.com/maisdocacau/storefront/internal/service"

	"github.com/hibiken/asynq"
)

// OrderLifecycle 消费者依赖的订单操作
type OrderLifecycle interface {
	MarkConfirmed(orderNo string) (*models.Order, bool, error)
	ExpirePending(orderNo string) (*models.Order, error)
	List(filter repository.OrderListFilter) ([]models.Order, int64, error)
}

// Consumer 异步任务消费者
type Consumer struct {
	Orders OrderLifecycle
	Events events.Publisher
	now    func() time.Time
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Orders: c.OrderService,
		Events: c.EventPublisher,
		now:    time.Now,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderConfirmed, c.handleOrderConfirmed)
	mux.HandleFunc(queue.TaskOrderPaymentExpire, c.handleOrderPaymentExpire)
}

func (c *Consumer) handleOrderConfirmed(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_confirmed_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	orderNo, err := queue.ParseOrderNoPayload(task.Payload())
	if err != nil {
		logger.Warnw("worker_order_confirmed_unmarshal_failed", "error", err)
		return err
	}
	if orderNo == "" {
		logger.Debugw("worker_order_confirmed_skip_invalid_payload")
		return nil
	}
	return c.confirmOrder(ctx, orderNo)
}

// confirmOrder 确认订单并发布事件；事件至少投递一次，下游按订单号去重
func (c *Consumer) confirmOrder(ctx context.Context, orderNo string) error {
	order, changed, err := c.Orders.MarkConfirmed(orderNo)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			logger.Debugw("worker_order_confirmed_skip_order_not_found", "order_no", orderNo)
			return nil
		case errors.Is(err, service.ErrOrderStatusNotAllowed):
			logger.Debugw("worker_order_confirmed_skip_status", "order_no", orderNo)
			return nil
		default:
			logger.Warnw("worker_order_confirmed_failed", "order_no", orderNo, "error", err)
			return err
		}
	}
	if order.Status != constants.OrderStatusConfirmed {
		logger.Debugw("worker_order_confirmed_skip_already_progressed", "order_no", orderNo, "status", order.Status)
		return nil
	}
	if c.Events == nil {
		return nil
	}
	event := events.NewOrderEvent(constants.OrderEventConfirmed, order, c.clock())
	if err := c.Events.Publish(ctx, event); err != nil {
		logger.Warnw("worker_order_event_publish_failed", "order_no", orderNo, "error", err)
		return err
	}
	logger.Infow("worker_order_confirmed", "order_no", orderNo, "changed", changed)
	return nil
}

func (c *Consumer) handleOrderPaymentExpire(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_payment_expire_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	orderNo, err := queue.ParseOrderNoPayload(task.Payload())
	if err != nil {
		logger.Warnw("worker_order_payment_expire_unmarshal_failed", "error", err)
		return err
	}
	if orderNo == "" {
		logger.Debugw("worker_order_payment_expire_skip_invalid_payload")
		return nil
	}
	if _, err := c.Orders.ExpirePending(orderNo); err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			logger.Debugw("worker_order_payment_expire_skip_order_not_found", "order_no", orderNo)
			return nil
		case errors.Is(err, service.ErrOrderFetchFailed):
			logger.Warnw("worker_order_payment_expire_fetch_failed", "order_no", orderNo, "error", err)
			return nil
		default:
			logger.Warnw("worker_order_payment_expire_failed", "order_no", orderNo, "error", err)
			return err
		}
	}
	return nil
}

// sweepPaidOrders 补偿入队失败的订单：确认所有超过宽限期仍为已支付的订单
func (c *Consumer) sweepPaidOrders(ctx context.Context, grace time.Duration) int {
	before := c.clock().Add(-grace)
	orders, _, err := c.Orders.List(repository.OrderListFilter{
		Status:    constants.OrderStatusPaid,
		CreatedTo: &before,
		Page:      1,
		PageSize:  100,
	})
	if err != nil {
		logger.Warnw("worker_paid_sweep_list_failed", "error", err)
		return 0
	}
	confirmed := 0
	for _, order := range orders {
		if ctx.Err() != nil {
			break
		}
		if err := c.confirmOrder(ctx, order.OrderNo); err == nil {
			confirmed++
		}
	}
	if confirmed > 0 {
		logger.Infow("worker_paid_sweep_confirmed", "count", confirmed)
	}
	return confirmed
}

func (c *Consumer) clock() time.Time {
	if c.now != nil {
		return c.now()
	}
	return time.Now()
}
