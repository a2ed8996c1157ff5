package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/maisdocacau/storefront/internal/cache"
	"github.com/maisdocacau/storefront/internal/constants"
	"github.com/maisdocacau/storefront/internal/logger"
	"github.com/maisdocacau/storefront/internal/models"
)

// CartLine 购物车行：商品快照 + 数量（>=1）
type CartLine struct {
	Product  models.Product `json:"product"`
	Quantity int            `json:"quantity"`
}

// LineTotal 行小计
func (l CartLine) LineTotal() models.Money {
	return l.Product.Price.Times(l.Quantity)
}

// CartRepository 购物车持久化接口
type CartRepository interface {
	// Load 读取已保存的购物车，数据损坏时返回 ErrSessionDataCorrupt
	Load(ctx context.Context) ([]CartLine, error)
	Save(ctx context.Context, lines []CartLine) error
	// Clear 删除持久化副本
	Clear(ctx context.Context) error
}

// KVCartRepository 基于会话键值存储的购物车持久化
type KVCartRepository struct {
	store cache.Store
	key   string
	ttl   time.Duration
}

// NewKVCartRepository 创建会话购物车仓库
func NewKVCartRepository(store cache.Store, sessionID string, ttl time.Duration) *KVCartRepository {
	return &KVCartRepository{
		store: store,
		key:   sessionKey(sessionID, constants.SessionKeyCart),
		ttl:   ttl,
	}
}

// Load 读取购物车
func (r *KVCartRepository) Load(ctx context.Context) ([]CartLine, error) {
	raw, ok, err := r.store.Get(ctx, r.key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return decodeCartLines(raw)
}

// Save 保存购物车，空购物车等同于删除
func (r *KVCartRepository) Save(ctx context.Context, lines []CartLine) error {
	if len(lines) == 0 {
		return r.Clear(ctx)
	}
	payload, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, r.key, payload, r.ttl)
}

// Clear 删除购物车
func (r *KVCartRepository) Clear(ctx context.Context) error {
	return r.store.Del(ctx, r.key)
}

func decodeCartLines(raw []byte) ([]CartLine, error) {
	var lines []CartLine
	if err := json.Unmarshal(raw, &lines); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSessionDataCorrupt, err)
	}
	seen := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		id := strings.TrimSpace(line.Product.ID)
		if id == "" || line.Quantity < 1 {
			return nil, fmt.Errorf("%w: invalid cart line", ErrSessionDataCorrupt)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: duplicate cart line %s", ErrSessionDataCorrupt, id)
		}
		seen[id] = struct{}{}
	}
	return lines, nil
}

// MemoryCartRepository 内存实现，用于测试
type MemoryCartRepository struct {
	mu      sync.Mutex
	lines   []CartLine
	stored  bool
	LoadErr error
	SaveErr error
	Saves   int
	Clears  int
}

// NewMemoryCartRepository 创建内存购物车仓库
func NewMemoryCartRepository(lines ...CartLine) *MemoryCartRepository {
	repo := &MemoryCartRepository{}
	if len(lines) > 0 {
		repo.lines = cloneCartLines(lines)
		repo.stored = true
	}
	return repo
}

// Load 读取
func (r *MemoryCartRepository) Load(_ context.Context) ([]CartLine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.LoadErr != nil {
		return nil, r.LoadErr
	}
	return cloneCartLines(r.lines), nil
}

// Save 保存
func (r *MemoryCartRepository) Save(_ context.Context, lines []CartLine) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.SaveErr != nil {
		return r.SaveErr
	}
	r.Saves++
	r.lines = cloneCartLines(lines)
	r.stored = len(lines) > 0
	return nil
}

// Clear 清除
func (r *MemoryCartRepository) Clear(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Clears++
	r.LoadErr = nil
	r.lines = nil
	r.stored = false
	return nil
}

// Stored 是否存在持久化副本
func (r *MemoryCartRepository) Stored() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stored
}

// CartStore 单个会话的购物车状态容器
type CartStore struct {
	repo  CartRepository
	lines []CartLine
}

// NewCartStore 创建购物车并从仓库恢复一次，损坏数据被丢弃
func NewCartStore(ctx context.Context, repo CartRepository) (*CartStore, error) {
	lines, err := repo.Load(ctx)
	if err != nil {
		if !errors.Is(err, ErrSessionDataCorrupt) {
			return nil, err
		}
		logger.Warnw("cart_rehydrate_corrupt", "error", err)
		if clearErr := repo.Clear(ctx); clearErr != nil {
			logger.Warnw("cart_corrupt_clear_failed", "error", clearErr)
		}
		lines = nil
	}
	return &CartStore{repo: repo, lines: lines}, nil
}

// AddToCart 加入购物车：已有行累加数量，否则追加新行
func (c *CartStore) AddToCart(ctx context.Context, product models.Product, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	if strings.TrimSpace(product.ID) == "" {
		return ErrProductInvalid
	}
	next := cloneCartLines(c.lines)
	if idx := indexOfLine(next, product.ID); idx >= 0 {
		next[idx].Quantity += quantity
	} else {
		next = append(next, CartLine{Product: product, Quantity: quantity})
	}
	return c.commit(ctx, next)
}

// RemoveFromCart 移除商品行，不存在时为空操作
func (c *CartStore) RemoveFromCart(ctx context.Context, productID string) error {
	idx := indexOfLine(c.lines, productID)
	if idx < 0 {
		return nil
	}
	next := cloneCartLines(c.lines)
	next = append(next[:idx], next[idx+1:]...)
	return c.commit(ctx, next)
}

// UpdateQuantity 设置数量，数量小于 1 视为移除
func (c *CartStore) UpdateQuantity(ctx context.Context, productID string, quantity int) error {
	idx := indexOfLine(c.lines, productID)
	if idx < 0 {
		return ErrCartItemNotFound
	}
	if quantity < 1 {
		return c.RemoveFromCart(ctx, productID)
	}
	next := cloneCartLines(c.lines)
	next[idx].Quantity = quantity
	return c.commit(ctx, next)
}

// ClearCart 清空购物车并删除持久化副本，可重复调用
func (c *CartStore) ClearCart(ctx context.Context) error {
	if err := c.repo.Clear(ctx); err != nil {
		return err
	}
	c.lines = nil
	return nil
}

// Lines 当前购物车行副本
func (c *CartStore) Lines() []CartLine {
	return cloneCartLines(c.lines)
}

// Quantity 指定商品当前数量
func (c *CartStore) Quantity(productID string) int {
	if idx := indexOfLine(c.lines, productID); idx >= 0 {
		return c.lines[idx].Quantity
	}
	return 0
}

// IsEmpty 是否为空
func (c *CartStore) IsEmpty() bool {
	return len(c.lines) == 0
}

// TotalItemCount 商品总件数
func (c *CartStore) TotalItemCount() int {
	total := 0
	for _, line := range c.lines {
		total += line.Quantity
	}
	return total
}

// Subtotal 商品小计
func (c *CartStore) Subtotal() models.Money {
	total := models.Money{}
	for _, line := range c.lines {
		total = total.Add(line.LineTotal())
	}
	return total
}

// commit 先持久化再替换内存状态，写入失败时状态不变
func (c *CartStore) commit(ctx context.Context, next []CartLine) error {
	if err := c.repo.Save(ctx, next); err != nil {
		return err
	}
	c.lines = next
	return nil
}

func indexOfLine(lines []CartLine, productID string) int {
	productID = strings.TrimSpace(productID)
	for i := range lines {
		if lines[i].Product.ID == productID {
			return i
		}
	}
	return -1
}

func cloneCartLines(lines []CartLine) []CartLine {
	if len(lines) == 0 {
		return nil
	}
	out := make([]CartLine, len(lines))
	copy(out, lines)
	return out
}
