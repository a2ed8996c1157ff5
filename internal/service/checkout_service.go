package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/maisdocacau/storefront/internal/cache"
	"github.com/maisdocacau/storefront/internal/constants"
	"github.com/maisdocacau/storefront/internal/logger"
	"github.com/maisdocacau/storefront/internal/models"
	"github.com/maisdocacau/storefront/internal/payment"
)

// OrderTaskEnqueuer 订单异步任务投递
type OrderTaskEnqueuer interface {
	EnqueueOrderConfirmed(orderNo string) error
	EnqueueOrderPaymentExpire(orderNo string, delay time.Duration) error
}

// ProfileLookup 结算预填收件人需要的用户查询
type ProfileLookup interface {
	GetByID(userID uint) (*models.UserProfile, error)
}

// CheckoutOptions 结算配置
type CheckoutOptions struct {
	SessionTTL     time.Duration
	StateTTL       time.Duration
	PaymentTimeout time.Duration
	PaymentGrace   time.Duration
	DefaultCity    string
	DefaultState   string
}

// CheckoutView 结算视图
type CheckoutView struct {
	Step              string                 `json:"step"`
	Address           models.DeliveryAddress `json:"address"`
	PaymentMethod     string                 `json:"payment_method,omitempty"`
	Zone              string                 `json:"zone,omitempty"`
	EstimatedTime     string                 `json:"estimated_time,omitempty"`
	Items             []CartItemView         `json:"items"`
	TotalItemCount    int                    `json:"total_item_count"`
	Subtotal          models.Money           `json:"subtotal"`
	Fee               models.Money           `json:"fee"`
	Total             models.Money           `json:"total"`
	SubtotalFormatted string                 `json:"subtotal_formatted"`
	FeeFormatted      string                 `json:"fee_formatted"`
	TotalFormatted    string                 `json:"total_formatted"`
	OrderNo           string                 `json:"order_no,omitempty"`
}

// BeginCheckoutInput 开始结算
type BeginCheckoutInput struct {
	SessionID string
	UserID    *uint
}

// SubmitAddressInput 提交地址
type SubmitAddressInput struct {
	SessionID string
	Address   models.DeliveryAddress
}

// SubmitPaymentInput 提交支付
type SubmitPaymentInput struct {
	SessionID       string
	Method          string
	WalletInstalled bool
	UserID          *uint
}

// CheckoutService 结算流程编排
type CheckoutService struct {
	store    cache.Store
	carts    *CartService
	zones    ZoneLookup
	orders   *OrderService
	gateway  payment.Gateway
	tasks    OrderTaskEnqueuer
	profiles ProfileLookup
	locks    *SessionLocks
	paying   *SessionLocks
	opts     CheckoutOptions
	now      func() time.Time
}

// NewCheckoutService 创建结算服务
func NewCheckoutService(store cache.Store, carts *CartService, zones ZoneLookup, orders *OrderService, gateway payment.Gateway, tasks OrderTaskEnqueuer, profiles ProfileLookup, locks *SessionLocks, opts CheckoutOptions) *CheckoutService {
	if locks == nil {
		locks = NewSessionLocks()
	}
	if opts.PaymentTimeout <= 0 {
		opts.PaymentTimeout = 30 * time.Second
	}
	if strings.TrimSpace(opts.DefaultCity) == "" {
		opts.DefaultCity = "São Paulo"
	}
	if strings.TrimSpace(opts.DefaultState) == "" {
		opts.DefaultState = "SP"
	}
	return &CheckoutService{
		store:    store,
		carts:    carts,
		zones:    zones,
		orders:   orders,
		gateway:  gateway,
		tasks:    tasks,
		profiles: profiles,
		locks:    locks,
		paying:   NewSessionLocks(),
		opts:     opts,
		now:      time.Now,
	}
}

// Begin 开始或恢复结算，购物车为空时返回 ErrCartEmpty
func (s *CheckoutService) Begin(ctx context.Context, input BeginCheckoutInput) (*CheckoutView, error) {
	sessionID, err := normalizeSessionID(input.SessionID)
	if err != nil {
		return nil, err
	}
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	cart, err := s.requireCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session != nil && !session.Completed() {
		session.Quote(cart.Subtotal())
		return buildCheckoutView(session, cart.Lines()), nil
	}

	session = NewCheckoutSession(s.prefillAddress(ctx, sessionID, input.UserID), s.now())
	session.Quote(cart.Subtotal())
	if err := s.saveSession(ctx, sessionID, session); err != nil {
		return nil, err
	}
	logger.Infow("checkout_started", "session_id", sessionID, "total_item_count", cart.TotalItemCount())
	return buildCheckoutView(session, cart.Lines()), nil
}

// Current 当前结算状态
func (s *CheckoutService) Current(ctx context.Context, sessionID string) (*CheckoutView, error) {
	sessionID, err := normalizeSessionID(sessionID)
	if err != nil {
		return nil, err
	}
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrCheckoutNotStarted
	}
	if session.Completed() {
		if !session.CartCleared {
			s.clearCartOnce(ctx, sessionID, session)
		}
		return buildCheckoutView(session, session.Items), nil
	}
	cart, err := s.requireCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	session.Quote(cart.Subtotal())
	return buildCheckoutView(session, cart.Lines()), nil
}

// SubmitAddress 校验并保存地址，进入支付步骤
func (s *CheckoutService) SubmitAddress(ctx context.Context, input SubmitAddressInput) (*CheckoutView, error) {
	sessionID, err := normalizeSessionID(input.SessionID)
	if err != nil {
		return nil, err
	}
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	cart, err := s.requireCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	session, err := s.requireSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.SubmitAddress(input.Address, s.zones); err != nil {
		return nil, err
	}
	if err := s.saveDeliveryInfo(ctx, sessionID, session.DeliveryInfo()); err != nil {
		return nil, err
	}
	session.Quote(cart.Subtotal())
	if err := s.saveSession(ctx, sessionID, session); err != nil {
		return nil, err
	}
	logger.Infow("checkout_address_accepted",
		"session_id", sessionID,
		"zone", session.Zone,
		"fee", session.Fee.String(),
	)
	return buildCheckoutView(session, cart.Lines()), nil
}

// Back 从支付返回地址步骤
func (s *CheckoutService) Back(ctx context.Context, sessionID string) (*CheckoutView, error) {
	sessionID, err := normalizeSessionID(sessionID)
	if err != nil {
		return nil, err
	}
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	cart, err := s.requireCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	session, err := s.requireSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.Back(); err != nil {
		return nil, err
	}
	session.Quote(cart.Subtotal())
	if err := s.saveSession(ctx, sessionID, session); err != nil {
		return nil, err
	}
	return buildCheckoutView(session, cart.Lines()), nil
}

// PaymentMethods 可用支付方式，加密货币仅在钱包插件可用时提供
func (s *CheckoutService) PaymentMethods(walletInstalled bool) []string {
	methods := []string{constants.PaymentMethodPix, constants.PaymentMethodCredit}
	if walletInstalled {
		methods = append(methods, constants.PaymentMethodCrypto)
	}
	return methods
}

// SubmitPayment 提交支付；同一会话已有支付在处理时返回 ErrCheckoutInProgress
func (s *CheckoutService) SubmitPayment(ctx context.Context, input SubmitPaymentInput) (*CheckoutView, error) {
	sessionID, err := normalizeSessionID(input.SessionID)
	if err != nil {
		return nil, err
	}
	// paying 只标记支付进行中，与购物车读写共用的会话锁分开
	release, ok := s.paying.TryLock(sessionID)
	if !ok {
		return nil, ErrCheckoutInProgress
	}
	defer release()
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	cart, err := s.requireCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	session, err := s.requireSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Step != constants.CheckoutStepPayment {
		return nil, ErrInvalidCheckoutStep
	}
	method := strings.ToLower(strings.TrimSpace(input.Method))
	if !s.methodAllowed(method, input.WalletInstalled) {
		return nil, ErrPaymentMethodInvalid
	}

	lines := cart.Lines()
	session.Quote(cart.Subtotal())
	order, err := s.orders.CreatePending(CreatePendingOrderInput{
		SessionID:     sessionID,
		UserID:        input.UserID,
		PaymentMethod: method,
		Address:       session.Address,
		Zone:          session.Zone,
		EstimatedTime: session.EstimatedTime,
		DeliveryFee:   session.Fee,
		Lines:         lines,
	})
	if err != nil {
		return nil, err
	}
	s.enqueuePaymentExpire(order.OrderNo)

	chargeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.opts.PaymentTimeout)
	result, chargeErr := s.gateway.Charge(chargeCtx, payment.ChargeInput{
		OrderNo: order.OrderNo,
		Method:  method,
		Amount:  order.Total,
	})
	cancel()
	if chargeErr != nil {
		logger.Warnw("checkout_payment_failed",
			"session_id", sessionID,
			"order_no", order.OrderNo,
			"payment_method", method,
			"error", chargeErr,
		)
		if err := s.orders.MarkFailed(order, chargeErr.Error(), s.now()); err != nil {
			logger.Errorw("checkout_mark_failed_error", "order_no", order.OrderNo, "error", err)
		}
		return nil, ErrPaymentFailed
	}

	if err := s.orders.MarkPaid(order, result.Reference, s.now()); err != nil {
		return nil, err
	}
	if err := session.Confirm(order.OrderNo, method, lines); err != nil {
		return nil, err
	}
	s.clearCartOnce(ctx, sessionID, session)
	if err := s.saveSession(ctx, sessionID, session); err != nil {
		logger.Errorw("checkout_confirmation_save_failed", "session_id", sessionID, "order_no", order.OrderNo, "error", err)
	}
	if s.tasks != nil {
		if err := s.tasks.EnqueueOrderConfirmed(order.OrderNo); err != nil {
			logger.Warnw("checkout_enqueue_confirmed_failed", "order_no", order.OrderNo, "error", err)
		}
	}
	logger.Infow("checkout_confirmed",
		"session_id", sessionID,
		"order_no", order.OrderNo,
		"payment_method", method,
		"total", session.Total.String(),
	)
	return buildCheckoutView(session, session.Items), nil
}

// Abandon 放弃结算
func (s *CheckoutService) Abandon(ctx context.Context, sessionID string) error {
	sessionID, err := normalizeSessionID(sessionID)
	if err != nil {
		return err
	}
	unlock := s.locks.Lock(sessionID)
	defer unlock()
	return s.store.Del(ctx, sessionKey(sessionID, constants.SessionKeyCheckout))
}

func (s *CheckoutService) methodAllowed(method string, walletInstalled bool) bool {
	for _, allowed := range s.PaymentMethods(walletInstalled) {
		if allowed == method {
			return true
		}
	}
	return false
}

// requireCart 购物车为空时丢弃未完成的结算会话
func (s *CheckoutService) requireCart(ctx context.Context, sessionID string) (*CartStore, error) {
	cart, err := s.carts.openStore(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if cart.IsEmpty() {
		if err := s.store.Del(ctx, sessionKey(sessionID, constants.SessionKeyCheckout)); err != nil {
			logger.Warnw("checkout_session_reset_failed", "session_id", sessionID, "error", err)
		}
		return nil, ErrCartEmpty
	}
	return cart, nil
}

func (s *CheckoutService) requireSession(ctx context.Context, sessionID string) (*CheckoutSession, error) {
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrCheckoutNotStarted
	}
	return session, nil
}

func (s *CheckoutService) clearCartOnce(ctx context.Context, sessionID string, session *CheckoutSession) {
	if session.CartCleared {
		return
	}
	cart, err := s.carts.openStore(ctx, sessionID)
	if err == nil {
		err = cart.ClearCart(ctx)
	}
	if err != nil {
		logger.Errorw("checkout_cart_clear_failed", "session_id", sessionID, "order_no", session.OrderNo, "error", err)
		return
	}
	session.CartCleared = true
	if err := s.saveSession(ctx, sessionID, session); err != nil {
		logger.Warnw("checkout_session_save_failed", "session_id", sessionID, "error", err)
	}
}

func (s *CheckoutService) enqueuePaymentExpire(orderNo string) {
	if s.tasks == nil {
		return
	}
	delay := s.opts.PaymentTimeout + s.opts.PaymentGrace
	if err := s.tasks.EnqueueOrderPaymentExpire(orderNo, delay); err != nil {
		logger.Warnw("checkout_enqueue_payment_expire_failed", "order_no", orderNo, "error", err)
	}
}

// prefillAddress 优先使用上次通过校验的地址，否则使用默认城市
func (s *CheckoutService) prefillAddress(ctx context.Context, sessionID string, userID *uint) models.DeliveryAddress {
	info, err := s.loadDeliveryInfo(ctx, sessionID)
	if err != nil {
		logger.Warnw("delivery_info_read_failed", "session_id", sessionID, "error", err)
	}
	if info != nil {
		return info.Address
	}
	address := models.DeliveryAddress{
		City:  s.opts.DefaultCity,
		State: s.opts.DefaultState,
	}
	if userID != nil && *userID != 0 && s.profiles != nil {
		profile, err := s.profiles.GetByID(*userID)
		if err == nil && profile != nil {
			address.FullName = profile.Username
		}
	}
	return address
}

func (s *CheckoutService) loadSession(ctx context.Context, sessionID string) (*CheckoutSession, error) {
	key := sessionKey(sessionID, constants.SessionKeyCheckout)
	raw, ok, err := s.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	var session CheckoutSession
	if err := json.Unmarshal(raw, &session); err != nil || !session.validStep() {
		logger.Warnw("checkout_session_corrupt", "session_id", sessionID, "error", err)
		if delErr := s.store.Del(ctx, key); delErr != nil {
			logger.Warnw("checkout_session_discard_failed", "session_id", sessionID, "error", delErr)
		}
		return nil, nil
	}
	return &session, nil
}

func (s *CheckoutService) saveSession(ctx context.Context, sessionID string, session *CheckoutSession) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, sessionKey(sessionID, constants.SessionKeyCheckout), payload, s.opts.SessionTTL)
}

func (s *CheckoutService) loadDeliveryInfo(ctx context.Context, sessionID string) (*models.DeliveryInfo, error) {
	key := sessionKey(sessionID, constants.SessionKeyDeliveryInfo)
	raw, ok, err := s.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	var info models.DeliveryInfo
	if err := json.Unmarshal(raw, &info); err != nil {
		logger.Warnw("delivery_info_corrupt", "session_id", sessionID, "error", err)
		if delErr := s.store.Del(ctx, key); delErr != nil {
			return nil, errors.Join(err, delErr)
		}
		return nil, nil
	}
	return &info, nil
}

func (s *CheckoutService) saveDeliveryInfo(ctx context.Context, sessionID string, info models.DeliveryInfo) error {
	payload, err := json.Marshal(info)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, sessionKey(sessionID, constants.SessionKeyDeliveryInfo), payload, s.opts.StateTTL)
}

func buildCheckoutView(session *CheckoutSession, lines []CartLine) *CheckoutView {
	items, count := cartItemViews(lines)
	return &CheckoutView{
		Step:              session.Step,
		Address:           session.Address,
		PaymentMethod:     session.PaymentMethod,
		Zone:              session.Zone,
		EstimatedTime:     session.EstimatedTime,
		Items:             items,
		TotalItemCount:    count,
		Subtotal:          session.Subtotal,
		Fee:               session.Fee,
		Total:             session.Total,
		SubtotalFormatted: session.Subtotal.Format(),
		FeeFormatted:      session.Fee.Format(),
		TotalFormatted:    session.Total.Format(),
		OrderNo:           session.OrderNo,
	}
}
