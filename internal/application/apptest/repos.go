package apptest

import (
	"context"
	"sort"
	"strings"
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

// 列表按ID倒序（ID单调递增，等价于创建时间倒序）
func sortedIDs[V any](m map[uint]V, keep func(V) bool) []uint {
	ids := make([]uint, 0, len(m))
	for id, v := range m {
		if keep(v) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] > ids[j] })
	return ids
}

func page(ids []uint, offset, limit int) []uint {
	if offset >= len(ids) {
		return nil
	}
	ids = ids[offset:]
	if limit > 0 && limit < len(ids) {
		ids = ids[:limit]
	}
	return ids
}

// =========================================
// 用户
// =========================================

type userRepo struct{ s *Store }

// Users 用户仓储
func (s *Store) Users() user.Repository { return &userRepo{s: s} }

func (r *userRepo) Create(_ context.Context, u *user.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if u.Email != "" && existing.Email == u.Email {
			return user.ErrEmailDuplicate
		}
	}
	u.ID = r.s.id()
	r.s.users[u.ID] = *u
	return nil
}

func (r *userRepo) FindByID(_ context.Context, id uint) (*user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return &u, nil
}

func (r *userRepo) FindByEmail(_ context.Context, email string) (*user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if email != "" && u.Email == email {
			return &u, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (r *userRepo) FindByProvider(_ context.Context, provider, providerID string) (*user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Provider == provider && u.ProviderID == providerID {
			return &u, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (r *userRepo) Update(_ context.Context, u *user.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[u.ID]; !ok {
		return user.ErrUserNotFound
	}
	r.s.users[u.ID] = *u
	return nil
}

func (r *userRepo) Search(_ context.Context, query string, offset, limit int) ([]*user.User, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ids := sortedIDs(r.s.users, func(u user.User) bool {
		return query == "" || strings.Contains(u.Name, query) ||
			strings.Contains(u.Email, query) || strings.Contains(u.Phone, query)
	})
	var out []*user.User
	for _, id := range page(ids, offset, limit) {
		u := r.s.users[id]
		out = append(out, &u)
	}
	return out, int64(len(ids)), nil
}

// =========================================
// 商品
// =========================================

type productRepo struct{ s *Store }

// Products 商品仓储
func (s *Store) Products() product.Repository { return &productRepo{s: s} }

func (r *productRepo) Create(_ context.Context, p *product.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p.ID = r.s.id()
	p.CreatedAt = r.s.now()
	p.UpdatedAt = p.CreatedAt
	r.s.products[p.ID] = *p
	return nil
}

func (r *productRepo) FindByID(_ context.Context, id uint) (*product.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, product.ErrProductNotFound
	}
	return &p, nil
}

func (r *productRepo) FindByIDs(_ context.Context, ids []uint) (map[uint]*product.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make(map[uint]*product.Product, len(ids))
	for _, id := range ids {
		if p, ok := r.s.products[id]; ok {
			out[id] = &p
		}
	}
	return out, nil
}

func (r *productRepo) Update(_ context.Context, p *product.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	old, ok := r.s.products[p.ID]
	if !ok {
		return product.ErrProductNotFound
	}
	p.ViewCount = old.ViewCount
	p.CreatedAt = old.CreatedAt
	p.UpdatedAt = r.s.now()
	r.s.products[p.ID] = *p
	return nil
}

func (r *productRepo) Delete(_ context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[id]; !ok {
		return product.ErrProductNotFound
	}
	delete(r.s.products, id)
	return nil
}

func (r *productRepo) List(_ context.Context, f product.ListFilter) ([]*product.Product, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ids := sortedIDs(r.s.products, func(p product.Product) bool {
		if f.ActiveOnly && !p.IsActive {
			return false
		}
		if f.Search != "" && !strings.Contains(p.Name, f.Search) {
			return false
		}
		if f.Category != "" && !p.HasCategory(f.Category) {
			return false
		}
		return true
	})
	var out []*product.Product
	for _, id := range page(ids, f.Offset, f.Limit) {
		p := r.s.products[id]
		out = append(out, &p)
	}
	return out, int64(len(ids)), nil
}

func (r *productRepo) DecreaseStock(_ context.Context, id uint, quantity int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("DecreaseStock"); err != nil {
		return err
	}
	p, ok := r.s.products[id]
	if !ok {
		return product.ErrProductNotFound
	}
	if p.StockQuantity < quantity {
		return product.ErrInsufficientStock.WithMessagef("商品「%s」库存不足，购买数量:%d，当前库存:%d",
			p.Name, quantity, p.StockQuantity)
	}
	p.StockQuantity -= quantity
	r.s.products[id] = p
	return nil
}

func (r *productRepo) IncreaseStock(_ context.Context, id uint, quantity int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return product.ErrProductNotFound
	}
	p.StockQuantity += quantity
	r.s.products[id] = p
	return nil
}

func (r *productRepo) IncrementViewCount(_ context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p, ok := r.s.products[id]; ok {
		p.ViewCount++
		r.s.products[id] = p
	}
	return nil
}

// =========================================
// 订单
// =========================================

type orderRepo struct{ s *Store }

// Orders 订单仓储
func (s *Store) Orders() order.Repository { return &orderRepo{s: s} }

func (r *orderRepo) Create(_ context.Context, o *order.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("CreateOrder"); err != nil {
		return err
	}
	for _, existing := range r.s.orders {
		if existing.OrderNumber == o.OrderNumber {
			return order.ErrStatusConflict.WithMessage("订单号冲突，请重试")
		}
	}
	o.ID = r.s.id()
	for i := range o.Items {
		o.Items[i].ID = r.s.id()
		o.Items[i].OrderID = o.ID
	}
	stored := *o
	stored.Items = append([]order.Item(nil), o.Items...)
	r.s.orders[o.ID] = stored
	return nil
}

func (r *orderRepo) get(id uint) (*order.Order, error) {
	o, ok := r.s.orders[id]
	if !ok {
		return nil, order.ErrOrderNotFound
	}
	o.Items = append([]order.Item(nil), o.Items...)
	return &o, nil
}

func (r *orderRepo) FindByID(_ context.Context, id uint) (*order.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.get(id)
}

func (r *orderRepo) FindByIDForUser(_ context.Context, id, userID uint) (*order.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, err := r.get(id)
	if err != nil {
		return nil, err
	}
	if o.UserID != userID {
		return nil, order.ErrOrderNotFound
	}
	return o, nil
}

func (r *orderRepo) UpdateStatus(_ context.Context, o *order.Order, from order.Status) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.orders[o.ID]
	if !ok {
		return order.ErrOrderNotFound
	}
	if stored.Status != from {
		return order.ErrStatusConflict
	}
	items := stored.Items
	stored = *o
	stored.Items = items
	r.s.orders[o.ID] = stored
	return nil
}

func (r *orderRepo) List(_ context.Context, f order.ListFilter) ([]*order.Order, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ids := sortedIDs(r.s.orders, func(o order.Order) bool {
		if f.UserID != 0 && o.UserID != f.UserID {
			return false
		}
		return f.Status == "" || o.Status == f.Status
	})
	var out []*order.Order
	for _, id := range page(ids, f.Offset, f.Limit) {
		o, _ := r.get(id)
		out = append(out, o)
	}
	return out, int64(len(ids)), nil
}

func (r *orderRepo) FindDeliveredItems(_ context.Context, userID, productID uint) ([]order.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []order.Item
	for _, id := range sortedIDs(r.s.orders, func(o order.Order) bool {
		return o.UserID == userID && o.Status == order.StatusDelivered
	}) {
		for _, it := range r.s.orders[id].Items {
			if it.ProductID == productID {
				out = append(out, it)
			}
		}
	}
	return out, nil
}

func (r *orderRepo) FindItem(_ context.Context, itemID uint) (*order.Item, *order.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, o := range r.s.orders {
		for _, it := range o.Items {
			if it.ID == itemID {
				item := it
				owner := o
				owner.Items = nil
				return &item, &owner, nil
			}
		}
	}
	return nil, nil, order.ErrOrderNotFound
}

// =========================================
// 购物车
// =========================================

type cartRepo struct{ s *Store }

// Cart 购物车仓储
func (s *Store) Cart() cart.Repository { return &cartRepo{s: s} }

func (r *cartRepo) ListByUser(_ context.Context, userID uint) ([]*cart.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*cart.Item
	for _, id := range sortedIDs(r.s.cartItems, func(it cart.Item) bool { return it.UserID == userID }) {
		it := r.s.cartItems[id]
		out = append(out, &it)
	}
	return out, nil
}

func (r *cartRepo) FindByKey(_ context.Context, userID uint, key cart.LineKey) (*cart.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, it := range r.s.cartItems {
		if it.UserID == userID && it.Key() == key {
			return &it, nil
		}
	}
	return nil, cart.ErrItemNotFound
}

func (r *cartRepo) Create(_ context.Context, item *cart.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	item.ID = r.s.id()
	item.CreatedAt = r.s.now()
	item.UpdatedAt = item.CreatedAt
	r.s.cartItems[item.ID] = *item
	return nil
}

func (r *cartRepo) UpdateQuantity(_ context.Context, id, userID uint, quantity int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	it, ok := r.s.cartItems[id]
	if !ok || it.UserID != userID {
		return cart.ErrItemNotFound
	}
	it.Quantity = quantity
	r.s.cartItems[id] = it
	return nil
}

func (r *cartRepo) Delete(_ context.Context, id, userID uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	it, ok := r.s.cartItems[id]
	if !ok || it.UserID != userID {
		return cart.ErrItemNotFound
	}
	delete(r.s.cartItems, id)
	return nil
}

func (r *cartRepo) Clear(_ context.Context, userID uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, it := range r.s.cartItems {
		if it.UserID == userID {
			delete(r.s.cartItems, id)
		}
	}
	return nil
}

func (r *cartRepo) DeleteLines(_ context.Context, userID uint, keys []cart.LineKey) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, it := range r.s.cartItems {
		if it.UserID != userID {
			continue
		}
		for _, k := range keys {
			if it.Key() == k {
				delete(r.s.cartItems, id)
				break
			}
		}
	}
	return nil
}

// =========================================
// 优惠券
// =========================================

type couponRepo struct{ s *Store }

// Coupons 优惠券仓储
func (s *Store) Coupons() coupon.Repository { return &couponRepo{s: s} }

func (r *couponRepo) Create(_ context.Context, c *coupon.Coupon) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.coupons {
		if existing.Code == c.Code {
			return coupon.ErrCodeDuplicate
		}
	}
	c.ID = r.s.id()
	r.s.coupons[c.ID] = *c
	return nil
}

func (r *couponRepo) FindByID(_ context.Context, id uint) (*coupon.Coupon, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.coupons[id]
	if !ok {
		return nil, coupon.ErrCouponNotFound
	}
	return &c, nil
}

func (r *couponRepo) FindByCode(_ context.Context, code string) (*coupon.Coupon, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.coupons {
		if c.Code == code {
			return &c, nil
		}
	}
	return nil, coupon.ErrCouponNotFound
}

func (r *couponRepo) Update(_ context.Context, c *coupon.Coupon) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	old, ok := r.s.coupons[c.ID]
	if !ok {
		return coupon.ErrCouponNotFound
	}
	for id, existing := range r.s.coupons {
		if id != c.ID && existing.Code == c.Code {
			return coupon.ErrCodeDuplicate
		}
	}
	c.UsageCount = old.UsageCount
	r.s.coupons[c.ID] = *c
	return nil
}

func (r *couponRepo) Delete(_ context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.coupons[id]; !ok {
		return coupon.ErrCouponNotFound
	}
	delete(r.s.coupons, id)
	return nil
}

func (r *couponRepo) List(_ context.Context, offset, limit int) ([]*coupon.Coupon, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ids := sortedIDs(r.s.coupons, func(coupon.Coupon) bool { return true })
	var out []*coupon.Coupon
	for _, id := range page(ids, offset, limit) {
		c := r.s.coupons[id]
		out = append(out, &c)
	}
	return out, int64(len(ids)), nil
}

func (r *couponRepo) IncrementUsage(_ context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.coupons[id]
	if !ok || c.IsExhausted() {
		return coupon.ErrCouponExhausted
	}
	c.UsageCount++
	r.s.coupons[id] = c
	return nil
}

func (r *couponRepo) Issue(_ context.Context, uc *coupon.UserCoupon) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.userCoupons {
		if existing.UserID == uc.UserID && existing.CouponID == uc.CouponID {
			return coupon.ErrAlreadyIssued
		}
	}
	uc.ID = r.s.id()
	uc.CreatedAt = r.s.now()
	stored := *uc
	stored.Coupon = nil
	r.s.userCoupons[uc.ID] = stored
	return nil
}

func (r *couponRepo) withCoupon(uc coupon.UserCoupon) *coupon.UserCoupon {
	if c, ok := r.s.coupons[uc.CouponID]; ok {
		uc.Coupon = &c
	}
	return &uc
}

func (r *couponRepo) FindUserCoupon(_ context.Context, id, userID uint) (*coupon.UserCoupon, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	uc, ok := r.s.userCoupons[id]
	if !ok || uc.UserID != userID {
		return nil, coupon.ErrUserCouponNotFound
	}
	return r.withCoupon(uc), nil
}

func (r *couponRepo) ListUserCoupons(_ context.Context, userID uint) ([]*coupon.UserCoupon, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*coupon.UserCoupon
	for _, id := range sortedIDs(r.s.userCoupons, func(uc coupon.UserCoupon) bool { return uc.UserID == userID }) {
		out = append(out, r.withCoupon(r.s.userCoupons[id]))
	}
	return out, nil
}

func (r *couponRepo) MarkUsed(_ context.Context, id, orderID uint, now time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	uc, ok := r.s.userCoupons[id]
	if !ok {
		return coupon.ErrUserCouponNotFound
	}
	if uc.IsUsed {
		return coupon.ErrCouponUsed
	}
	uc.IsUsed = true
	uc.UsedAt = &now
	uc.OrderID = &orderID
	r.s.userCoupons[id] = uc
	return nil
}

func (r *couponRepo) Release(_ context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	uc, ok := r.s.userCoupons[id]
	if !ok {
		return nil
	}
	uc.IsUsed = false
	uc.UsedAt = nil
	uc.OrderID = nil
	r.s.userCoupons[id] = uc
	return nil
}

// =========================================
// 收藏
// =========================================

type favoriteRepo struct{ s *Store }

// Favorites 收藏仓储
func (s *Store) Favorites() favorite.Repository { return &favoriteRepo{s: s} }

func (r *favoriteRepo) Add(_ context.Context, f *favorite.Favorite) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.favorites {
		if existing.UserID == f.UserID && existing.ProductID == f.ProductID {
			return favorite.ErrAlreadyFavorited
		}
	}
	f.ID = r.s.id()
	f.CreatedAt = r.s.now()
	r.s.favorites[f.ID] = *f
	return nil
}

func (r *favoriteRepo) Remove(_ context.Context, userID, productID uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, f := range r.s.favorites {
		if f.UserID == userID && f.ProductID == productID {
			delete(r.s.favorites, id)
			return nil
		}
	}
	return favorite.ErrFavoriteNotFound
}

func (r *favoriteRepo) Exists(_ context.Context, userID, productID uint) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, f := range r.s.favorites {
		if f.UserID == userID && f.ProductID == productID {
			return true, nil
		}
	}
	return false, nil
}

func (r *favoriteRepo) CountByProduct(_ context.Context, productID uint) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, f := range r.s.favorites {
		if f.ProductID == productID {
			n++
		}
	}
	return n, nil
}

func (r *favoriteRepo) ListByUser(_ context.Context, userID uint, offset, limit int) ([]*favorite.Favorite, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ids := sortedIDs(r.s.favorites, func(f favorite.Favorite) bool { return f.UserID == userID })
	var out []*favorite.Favorite
	for _, id := range page(ids, offset, limit) {
		f := r.s.favorites[id]
		out = append(out, &f)
	}
	return out, int64(len(ids)), nil
}

// =========================================
// 评价
// =========================================

type reviewRepo struct{ s *Store }

// Reviews 评价仓储
func (s *Store) Reviews() review.Repository { return &reviewRepo{s: s} }

func (r *reviewRepo) Create(_ context.Context, rv *review.Review) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if rv.OrderItemID != nil {
		for _, existing := range r.s.reviews {
			if existing.OrderItemID != nil && *existing.OrderItemID == *rv.OrderItemID {
				return review.ErrAlreadyReviewed
			}
		}
	}
	rv.ID = r.s.id()
	rv.CreatedAt = r.s.now()
	rv.UpdatedAt = rv.CreatedAt
	r.s.reviews[rv.ID] = *rv
	return nil
}

func (r *reviewRepo) withUser(rv review.Review) *review.Review {
	rv.UserName = r.s.users[rv.UserID].Name
	return &rv
}

func (r *reviewRepo) FindByID(_ context.Context, id uint) (*review.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rv, ok := r.s.reviews[id]
	if !ok {
		return nil, review.ErrReviewNotFound
	}
	return r.withUser(rv), nil
}

func (r *reviewRepo) Update(_ context.Context, rv *review.Review) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	old, ok := r.s.reviews[rv.ID]
	if !ok {
		return review.ErrReviewNotFound
	}
	old.Rating = rv.Rating
	old.Content = rv.Content
	old.Images = rv.Images
	old.UpdatedAt = r.s.now()
	r.s.reviews[rv.ID] = old
	return nil
}

func (r *reviewRepo) Delete(_ context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.reviews[id]; !ok {
		return review.ErrReviewNotFound
	}
	delete(r.s.reviews, id)
	return nil
}

func (r *reviewRepo) ListByProduct(_ context.Context, productID uint, limit int) ([]*review.Review, review.Summary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ids := sortedIDs(r.s.reviews, func(rv review.Review) bool { return rv.ProductID == productID })
	var sum int
	for _, id := range ids {
		sum += r.s.reviews[id].Rating
	}
	summary := review.Summary{Total: int64(len(ids))}
	if len(ids) > 0 {
		summary.AverageRating = float64(sum) / float64(len(ids))
	}
	var out []*review.Review
	for _, id := range page(ids, 0, limit) {
		out = append(out, r.withUser(r.s.reviews[id]))
	}
	return out, summary, nil
}

func (r *reviewRepo) ReviewedOrderItems(_ context.Context, orderItemIDs []uint) (map[uint]bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make(map[uint]bool)
	for _, rv := range r.s.reviews {
		if rv.OrderItemID == nil {
			continue
		}
		for _, id := range orderItemIDs {
			if *rv.OrderItemID == id {
				out[id] = true
			}
		}
	}
	return out, nil
}

// =========================================
// 通知
// =========================================

type notificationRepo struct{ s *Store }

// NotificationRepo 通知仓储
func (s *Store) NotificationRepo() notification.Repository { return &notificationRepo{s: s} }

func (r *notificationRepo) Create(_ context.Context, n *notification.Notification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n.ID = r.s.id()
	n.CreatedAt = r.s.now()
	r.s.notifications[n.ID] = *n
	return nil
}

func (r *notificationRepo) List(_ context.Context, f notification.ListFilter) ([]*notification.Notification, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ids := sortedIDs(r.s.notifications, func(n notification.Notification) bool {
		return n.UserID == f.UserID && (!f.UnreadOnly || !n.IsRead)
	})
	var out []*notification.Notification
	for _, id := range page(ids, f.Offset, f.Limit) {
		n := r.s.notifications[id]
		out = append(out, &n)
	}
	return out, int64(len(ids)), nil
}

func (r *notificationRepo) CountUnread(_ context.Context, userID uint) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var c int64
	for _, n := range r.s.notifications {
		if n.UserID == userID && !n.IsRead {
			c++
		}
	}
	return c, nil
}

func (r *notificationRepo) MarkRead(_ context.Context, id, userID uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n, ok := r.s.notifications[id]
	if !ok || n.UserID != userID {
		return notification.ErrNotificationNotFound
	}
	n.IsRead = true
	r.s.notifications[id] = n
	return nil
}

func (r *notificationRepo) MarkAllRead(_ context.Context, userID uint) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var c int64
	for id, n := range r.s.notifications {
		if n.UserID == userID && !n.IsRead {
			n.IsRead = true
			r.s.notifications[id] = n
			c++
		}
	}
	return c, nil
}

func (r *notificationRepo) Delete(_ context.Context, id, userID uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n, ok := r.s.notifications[id]
	if !ok || n.UserID != userID {
		return notification.ErrNotificationNotFound
	}
	delete(r.s.notifications, id)
	return nil
}

// =========================================
// 横幅
// =========================================

type bannerRepo struct{ s *Store }

// Banners 横幅仓储
func (s *Store) Banners() banner.Repository { return &bannerRepo{s: s} }

func (r *bannerRepo) Create(_ context.Context, b *banner.Banner) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b.ID = r.s.id()
	b.CreatedAt = r.s.now()
	b.UpdatedAt = b.CreatedAt
	r.s.banners[b.ID] = *b
	return nil
}

func (r *bannerRepo) FindByID(_ context.Context, id uint) (*banner.Banner, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.banners[id]
	if !ok {
		return nil, banner.ErrBannerNotFound
	}
	return &b, nil
}

func (r *bannerRepo) Update(_ context.Context, b *banner.Banner) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.banners[b.ID]; !ok {
		return banner.ErrBannerNotFound
	}
	b.UpdatedAt = r.s.now()
	r.s.banners[b.ID] = *b
	return nil
}

func (r *bannerRepo) Delete(_ context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.banners[id]; !ok {
		return banner.ErrBannerNotFound
	}
	delete(r.s.banners, id)
	return nil
}

// List display_order升序，同序号按ID倒序
func (r *bannerRepo) List(_ context.Context, activeOnly bool) ([]*banner.Banner, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ids := sortedIDs(r.s.banners, func(b banner.Banner) bool { return !activeOnly || b.IsActive })
	sort.SliceStable(ids, func(i, j int) bool {
		return r.s.banners[ids[i]].DisplayOrder < r.s.banners[ids[j]].DisplayOrder
	})
	out := make([]*banner.Banner, 0, len(ids))
	for _, id := range ids {
		b := r.s.banners[id]
		out = append(out, &b)
	}
	return out, nil
}

// =========================================
// 咨询
// =========================================

type inquiryRepo struct{ s *Store }

// Inquiries 咨询仓储
func (s *Store) Inquiries() inquiry.Repository { return &inquiryRepo{s: s} }

func (r *inquiryRepo) Create(_ context.Context, i *inquiry.Inquiry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i.ID = r.s.id()
	if i.CreatedAt.IsZero() {
		i.CreatedAt = r.s.now()
		i.UpdatedAt = i.CreatedAt
	}
	r.s.inquiries[i.ID] = *i
	return nil
}

func (r *inquiryRepo) FindByID(_ context.Context, id uint) (*inquiry.Inquiry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i, ok := r.s.inquiries[id]
	if !ok {
		return nil, inquiry.ErrInquiryNotFound
	}
	return &i, nil
}

func (r *inquiryRepo) List(_ context.Context, f inquiry.ListFilter) ([]*inquiry.Inquiry, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ids := sortedIDs(r.s.inquiries, func(i inquiry.Inquiry) bool {
		return (f.UserID == 0 || i.UserID == f.UserID) &&
			(f.IsAnswered == nil || i.IsAnswered == *f.IsAnswered) &&
			(f.Type == "" || i.Type == f.Type)
	})
	var out []*inquiry.Inquiry
	for _, id := range page(ids, f.Offset, f.Limit) {
		i := r.s.inquiries[id]
		out = append(out, &i)
	}
	return out, int64(len(ids)), nil
}

func (r *inquiryRepo) Answer(_ context.Context, i *inquiry.Inquiry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.inquiries[i.ID]
	if !ok {
		return inquiry.ErrInquiryNotFound
	}
	stored.IsAnswered = true
	stored.Answer = i.Answer
	stored.AnsweredAt = i.AnsweredAt
	stored.AnsweredBy = i.AnsweredBy
	stored.UpdatedAt = i.UpdatedAt
	r.s.inquiries[i.ID] = stored
	return nil
}

func (r *inquiryRepo) DeleteUnanswered(_ context.Context, id, userID uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i, ok := r.s.inquiries[id]
	if !ok || i.UserID != userID {
		return inquiry.ErrInquiryNotFound
	}
	if i.IsAnswered {
		return inquiry.ErrAlreadyAnswered
	}
	delete(r.s.inquiries, id)
	return nil
}
