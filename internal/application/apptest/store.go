// Package apptest 用例测试使用的内存仓储
//
// Store保存所有聚合的数据，Transactor在事务失败时恢复快照，
// 行为与mysql包中的条件UPDATE保持一致（库存、状态、优惠券使用）。
package apptest

import (
	"context"
	"sync"
	"time"

	"github.com/xiebiao/mall/internal/domain/banner"
	"github.com/xiebiao/mall/internal/domain/cart"
	"github.com/xiebiao/mall/internal/domain/coupon"
	"github.com/xiebiao/mall/internal/domain/favorite"
	"github.com/xiebiao/mall/internal/domain/inquiry"
	"github.com/xiebiao/mall/internal/domain/notification"
	"github.com/xiebiao/mall/internal/domain/order"
	"github.com/xiebiao/mall/internal/domain/product"
	"github.com/xiebiao/mall/internal/domain/review"
	"github.com/xiebiao/mall/internal/domain/user"
)

// Store 内存数据
type Store struct {
	mu   sync.Mutex
	txMu sync.Mutex

	nextID uint
	now    func() time.Time

	users         map[uint]user.User
	products      map[uint]product.Product
	orders        map[uint]order.Order
	cartItems     map[uint]cart.Item
	coupons       map[uint]coupon.Coupon
	userCoupons   map[uint]coupon.UserCoupon
	favorites     map[uint]favorite.Favorite
	reviews       map[uint]review.Review
	notifications map[uint]notification.Notification
	banners       map[uint]banner.Banner
	inquiries     map[uint]inquiry.Inquiry

	// FailOn 让指定操作返回错误，用于测试事务回滚
	FailOn map[string]error
}

// NewStore 创建空的内存数据
func NewStore() *Store {
	return &Store{
		now:           time.Now,
		users:         make(map[uint]user.User),
		products:      make(map[uint]product.Product),
		orders:        make(map[uint]order.Order),
		cartItems:     make(map[uint]cart.Item),
		coupons:       make(map[uint]coupon.Coupon),
		userCoupons:   make(map[uint]coupon.UserCoupon),
		favorites:     make(map[uint]favorite.Favorite),
		reviews:       make(map[uint]review.Review),
		notifications: make(map[uint]notification.Notification),
		banners:       make(map[uint]banner.Banner),
		inquiries:     make(map[uint]inquiry.Inquiry),
		FailOn:        make(map[string]error),
	}
}

func (s *Store) id() uint {
	s.nextID++
	return s.nextID
}

func (s *Store) fail(op string) error {
	return s.FailOn[op]
}

type snapshot struct {
	nextID        uint
	users         map[uint]user.User
	products      map[uint]product.Product
	orders        map[uint]order.Order
	cartItems     map[uint]cart.Item
	coupons       map[uint]coupon.Coupon
	userCoupons   map[uint]coupon.UserCoupon
	favorites     map[uint]favorite.Favorite
	reviews       map[uint]review.Review
	notifications map[uint]notification.Notification
	banners       map[uint]banner.Banner
	inquiries     map[uint]inquiry.Inquiry
}

func (s *Store) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot{
		nextID:        s.nextID,
		users:         cloneMap(s.users),
		products:      cloneMap(s.products),
		orders:        cloneOrders(s.orders),
		cartItems:     cloneMap(s.cartItems),
		coupons:       cloneMap(s.coupons),
		userCoupons:   cloneMap(s.userCoupons),
		favorites:     cloneMap(s.favorites),
		reviews:       cloneMap(s.reviews),
		notifications: cloneMap(s.notifications),
		banners:       cloneMap(s.banners),
		inquiries:     cloneMap(s.inquiries),
	}
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID = snap.nextID
	s.users = snap.users
	s.products = snap.products
	s.orders = snap.orders
	s.cartItems = snap.cartItems
	s.coupons = snap.coupons
	s.userCoupons = snap.userCoupons
	s.favorites = snap.favorites
	s.reviews = snap.reviews
	s.notifications = snap.notifications
	s.banners = snap.banners
	s.inquiries = snap.inquiries
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneOrders(m map[uint]order.Order) map[uint]order.Order {
	out := make(map[uint]order.Order, len(m))
	for k, v := range m {
		v.Items = append([]order.Item(nil), v.Items...)
		out[k] = v
	}
	return out
}

// Transactor 串行执行事务，fn返回错误时恢复到事务开始前的数据
type Transactor struct {
	s *Store
}

// Transactor 返回事务管理器
func (s *Store) Transactor() *Transactor {
	return &Transactor{s: s}
}

type txKey struct{}

// Transaction 嵌套调用直接复用外层事务
func (t *Transactor) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	t.s.txMu.Lock()
	defer t.s.txMu.Unlock()

	snap := t.s.snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		t.s.restore(snap)
		return err
	}
	return nil
}

// =========================================
// 测试数据构造
// =========================================

// AddUser 直接写入用户
func (s *Store) AddUser(u user.User) *user.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == 0 {
		u.ID = s.id()
	}
	s.users[u.ID] = u
	return &u
}

// AddProduct 直接写入商品
func (s *Store) AddProduct(p product.Product) *product.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == 0 {
		p.ID = s.id()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = s.now()
	}
	s.products[p.ID] = p
	return &p
}

// AddCoupon 直接写入优惠券
func (s *Store) AddCoupon(c coupon.Coupon) *coupon.Coupon {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == 0 {
		c.ID = s.id()
	}
	s.coupons[c.ID] = c
	return &c
}

// AddUserCoupon 直接发放优惠券
func (s *Store) AddUserCoupon(uc coupon.UserCoupon) *coupon.UserCoupon {
	s.mu.Lock()
	defer s.mu.Unlock()
	if uc.ID == 0 {
		uc.ID = s.id()
	}
	uc.Coupon = nil
	s.userCoupons[uc.ID] = uc
	return &uc
}

// AddInquiry 直接写入咨询
func (s *Store) AddInquiry(i inquiry.Inquiry) *inquiry.Inquiry {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i.ID == 0 {
		i.ID = s.id()
	}
	if i.CreatedAt.IsZero() {
		i.CreatedAt = s.now()
	}
	s.inquiries[i.ID] = i
	return &i
}

// Stock 当前库存
func (s *Store) Stock(productID uint) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.products[productID].StockQuantity
}

// OrderCount 订单数量
func (s *Store) OrderCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders)
}

// Order 按ID读取订单
func (s *Store) Order(id uint) (order.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	return o, ok
}

// SetOrderStatus 直接修改订单状态（构造已发货、已送达等场景）
func (s *Store) SetOrderStatus(id uint, status order.Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o := s.orders[id]
	o.Status = status
	s.orders[id] = o
}

// UserCoupon 按ID读取用户优惠券
func (s *Store) UserCoupon(id uint) coupon.UserCoupon {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userCoupons[id]
}

// CartCount 用户购物车条目数
func (s *Store) CartCount(userID uint) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, it := range s.cartItems {
		if it.UserID == userID {
			n++
		}
	}
	return n
}

// Notifications 用户的所有通知
func (s *Store) Notifications(userID uint) []notification.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []notification.Notification
	for _, n := range s.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out
}
