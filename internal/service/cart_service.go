package service

import (
	"context"
	"strings"
	"time"

	"github.com/maisdocacau/storefront/internal/cache"
	"github.com/maisdocacau/storefront/internal/logger"
	"github.com/maisdocacau/storefront/internal/models"
)

// ProductCatalog 购物车需要的商品查询能力
type ProductCatalog interface {
	GetByID(ctx context.Context, id string) (*models.Product, error)
}

// AgeVerifier 会话年龄验证状态查询
type AgeVerifier interface {
	IsVerified(ctx context.Context, sessionID string) (bool, error)
}

// CartItemView 购物车行（用于响应）
type CartItemView struct {
	ProductID       string       `json:"product_id"`
	Name            string       `json:"name"`
	Image           string       `json:"image"`
	Category        string       `json:"category"`
	ContainsAlcohol bool         `json:"contains_alcohol"`
	UnitPrice       models.Money `json:"unit_price"`
	Quantity        int          `json:"quantity"`
	LineTotal       models.Money `json:"line_total"`
}

// CartView 购物车视图
type CartView struct {
	Items             []CartItemView `json:"items"`
	TotalItemCount    int            `json:"total_item_count"`
	Subtotal          models.Money   `json:"subtotal"`
	SubtotalFormatted string         `json:"subtotal_formatted"`
}

// AddCartItemInput 加入购物车输入
type AddCartItemInput struct {
	SessionID string
	ProductID string
	Quantity  int
}

// UpdateCartItemInput 修改数量输入
type UpdateCartItemInput struct {
	SessionID string
	ProductID string
	Quantity  int
}

// CartService 会话购物车服务
type CartService struct {
	store   cache.Store
	catalog ProductCatalog
	age     AgeVerifier
	locks   *SessionLocks
	ttl     time.Duration
}

// NewCartService 创建购物车服务
func NewCartService(store cache.Store, catalog ProductCatalog, age AgeVerifier, locks *SessionLocks, ttl time.Duration) *CartService {
	if locks == nil {
		locks = NewSessionLocks()
	}
	return &CartService{
		store:   store,
		catalog: catalog,
		age:     age,
		locks:   locks,
		ttl:     ttl,
	}
}

// Get 获取购物车
func (s *CartService) Get(ctx context.Context, sessionID string) (*CartView, error) {
	sessionID, err := normalizeSessionID(sessionID)
	if err != nil {
		return nil, err
	}
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	cart, err := s.openStore(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return buildCartView(cart), nil
}

// AddItem 加入商品
func (s *CartService) AddItem(ctx context.Context, input AddCartItemInput) (*CartView, error) {
	sessionID, err := normalizeSessionID(input.SessionID)
	if err != nil {
		return nil, err
	}
	if input.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	product, err := s.catalog.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if product.ContainsAlcohol {
		if err := s.requireAgeVerified(ctx, sessionID); err != nil {
			return nil, err
		}
	}

	unlock := s.locks.Lock(sessionID)
	defer unlock()

	cart, err := s.openStore(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !product.HasStockFor(cart.Quantity(product.ID) + input.Quantity) {
		return nil, ErrProductOutOfStock
	}
	if err := cart.AddToCart(ctx, *product, input.Quantity); err != nil {
		return nil, err
	}
	logger.Infow("cart_item_added",
		"session_id", sessionID,
		"product_id", product.ID,
		"quantity", input.Quantity,
		"total_item_count", cart.TotalItemCount(),
	)
	return buildCartView(cart), nil
}

// UpdateItem 修改数量，数量小于 1 时移除该行
func (s *CartService) UpdateItem(ctx context.Context, input UpdateCartItemInput) (*CartView, error) {
	sessionID, err := normalizeSessionID(input.SessionID)
	if err != nil {
		return nil, err
	}
	productID := strings.TrimSpace(input.ProductID)

	unlock := s.locks.Lock(sessionID)
	defer unlock()

	cart, err := s.openStore(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if input.Quantity >= 1 && cart.Quantity(productID) > 0 {
		product, err := s.catalog.GetByID(ctx, productID)
		if err != nil {
			return nil, err
		}
		if !product.HasStockFor(input.Quantity) {
			return nil, ErrProductOutOfStock
		}
	}
	if err := cart.UpdateQuantity(ctx, productID, input.Quantity); err != nil {
		return nil, err
	}
	return buildCartView(cart), nil
}

// RemoveItem 移除商品
func (s *CartService) RemoveItem(ctx context.Context, sessionID, productID string) (*CartView, error) {
	sessionID, err := normalizeSessionID(sessionID)
	if err != nil {
		return nil, err
	}
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	cart, err := s.openStore(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := cart.RemoveFromCart(ctx, productID); err != nil {
		return nil, err
	}
	return buildCartView(cart), nil
}

// Clear 清空购物车
func (s *CartService) Clear(ctx context.Context, sessionID string) error {
	sessionID, err := normalizeSessionID(sessionID)
	if err != nil {
		return err
	}
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	cart, err := s.openStore(ctx, sessionID)
	if err != nil {
		return err
	}
	return cart.ClearCart(ctx)
}

// openStore 调用方需持有会话锁
func (s *CartService) openStore(ctx context.Context, sessionID string) (*CartStore, error) {
	return NewCartStore(ctx, NewKVCartRepository(s.store, sessionID, s.ttl))
}

func (s *CartService) requireAgeVerified(ctx context.Context, sessionID string) error {
	if s.age == nil {
		return ErrAgeVerificationRequired
	}
	ok, err := s.age.IsVerified(ctx, sessionID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrAgeVerificationRequired
	}
	return nil
}

func buildCartView(cart *CartStore) *CartView {
	items, count := cartItemViews(cart.Lines())
	subtotal := cart.Subtotal()
	return &CartView{
		Items:             items,
		TotalItemCount:    count,
		Subtotal:          subtotal,
		SubtotalFormatted: subtotal.Format(),
	}
}

func cartItemViews(lines []CartLine) ([]CartItemView, int) {
	items := make([]CartItemView, 0, len(lines))
	count := 0
	for _, line := range lines {
		count += line.Quantity
		items = append(items, CartItemView{
			ProductID:       line.Product.ID,
			Name:            line.Product.Name,
			Image:           line.Product.Image,
			Category:        line.Product.Category,
			ContainsAlcohol: line.Product.ContainsAlcohol,
			UnitPrice:       line.Product.Price,
			Quantity:        line.Quantity,
			LineTotal:       line.LineTotal(),
		})
	}
	return items, count
}
