package coupon

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/mall/internal/application"
	"github.com/xiebiao/mall/internal/domain/coupon"
	"github.com/xiebiao/mall/internal/domain/user"
	"github.com/xiebiao/mall/pkg/response"
)

// issuer 发放逻辑：校验券状态后条件递增发放计数，再写入用户券
// 两步在同一事务中，重复领取时计数一并回滚
type issuer struct {
	couponRepo coupon.Repository
	tx         application.Transactor
}

func (is *issuer) issue(ctx context.Context, c *coupon.Coupon, userID uint, now time.Time) (*coupon.UserCoupon, error) {
	if !c.IsValidAt(now) {
		return nil, coupon.ErrCouponUnavailable.WithMessagef("优惠券「%s」不在有效期内或已停用", c.Name)
	}
	if c.IsExhausted() {
		return nil, coupon.ErrCouponExhausted
	}

	held := &coupon.UserCoupon{UserID: userID, CouponID: c.ID, CreatedAt: now}
	err := is.tx.Transaction(ctx, func(txCtx context.Context) error {
		if err := is.couponRepo.IncrementUsage(txCtx, c.ID); err != nil {
			return err
		}
		return is.couponRepo.Issue(txCtx, held)
	})
	if err != nil {
		return nil, err
	}
	c.UsageCount++
	held.Coupon = c
	return held, nil
}

// AdminCouponUseCase 管理员优惠券维护
type AdminCouponUseCase struct {
	couponRepo coupon.Repository
	userRepo   user.Repository
	issuer     *issuer
	log        *zap.Logger
	now        func() time.Time
}

// NewAdminCouponUseCase 创建用例
func NewAdminCouponUseCase(couponRepo coupon.Repository, userRepo user.Repository, tx application.Transactor, log *zap.Logger) *AdminCouponUseCase {
	return &AdminCouponUseCase{
		couponRepo: couponRepo,
		userRepo:   userRepo,
		issuer:     &issuer{couponRepo: couponRepo, tx: tx},
		log:        log,
		now:        time.Now,
	}
}

// Create 创建优惠券，代码重复返回409
func (uc *AdminCouponUseCase) Create(ctx context.Context, in CouponInput) (*CouponDTO, error) {
	c := &coupon.Coupon{}
	apply(c, in)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	now := uc.now()
	c.CreatedAt, c.UpdatedAt = now, now
	if err := uc.couponRepo.Create(ctx, c); err != nil {
		return nil, err
	}

	uc.log.Info("优惠券已创建", zap.Uint("coupon_id", c.ID), zap.String("code", c.Code))
	dto := toCouponDTO(c)
	return &dto, nil
}

// Update 覆盖更新优惠券配置，已发放数量保持不变
func (uc *AdminCouponUseCase) Update(ctx context.Context, id uint, in CouponInput) (*CouponDTO, error) {
	c, err := uc.couponRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	apply(c, in)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	c.UpdatedAt = uc.now()
	if err := uc.couponRepo.Update(ctx, c); err != nil {
		return nil, err
	}
	dto := toCouponDTO(c)
	return &dto, nil
}

// Delete 删除优惠券
func (uc *AdminCouponUseCase) Delete(ctx context.Context, id uint) error {
	return uc.couponRepo.Delete(ctx, id)
}

// List 分页列表
func (uc *AdminCouponUseCase) List(ctx context.Context, page, limit int) (*ListCouponsResponse, error) {
	page, limit = response.NormalizePage(page, limit, 20, 100)
	coupons, total, err := uc.couponRepo.List(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}
	items := make([]CouponDTO, len(coupons))
	for i, c := range coupons {
		items[i] = toCouponDTO(c)
	}
	return &ListCouponsResponse{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: response.TotalPages(total, limit),
	}, nil
}

// Issue 发放给指定用户
func (uc *AdminCouponUseCase) Issue(ctx context.Context, couponID, userID uint) (*UserCouponDTO, error) {
	c, err := uc.couponRepo.FindByID(ctx, couponID)
	if err != nil {
		return nil, err
	}
	if _, err := uc.userRepo.FindByID(ctx, userID); err != nil {
		return nil, err
	}

	now := uc.now()
	held, err := uc.issuer.issue(ctx, c, userID, now)
	if err != nil {
		return nil, err
	}
	uc.log.Info("优惠券已发放", zap.Uint("coupon_id", couponID), zap.Uint("user_id", userID))
	dto := toUserCouponDTO(held, now)
	return &dto, nil
}

// UserCouponUseCase 用户优惠券
type UserCouponUseCase struct {
	couponRepo coupon.Repository
	issuer     *issuer
	now        func() time.Time
}

// NewUserCouponUseCase 创建用例
func NewUserCouponUseCase(couponRepo coupon.Repository, tx application.Transactor) *UserCouponUseCase {
	return &UserCouponUseCase{
		couponRepo: couponRepo,
		issuer:     &issuer{couponRepo: couponRepo, tx: tx},
		now:        time.Now,
	}
}

// List 我的优惠券
func (uc *UserCouponUseCase) List(ctx context.Context, userID uint) ([]UserCouponDTO, error) {
	held, err := uc.couponRepo.ListUserCoupons(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	out := make([]UserCouponDTO, len(held))
	for i, h := range held {
		out[i] = toUserCouponDTO(h, now)
	}
	return out, nil
}

// Claim 输入优惠券代码领取
func (uc *UserCouponUseCase) Claim(ctx context.Context, userID uint, code string) (*UserCouponDTO, error) {
	c, err := uc.couponRepo.FindByCode(ctx, normalizeCode(code))
	if err != nil {
		return nil, err
	}
	now := uc.now()
	held, err := uc.issuer.issue(ctx, c, userID, now)
	if err != nil {
		return nil, err
	}
	dto := toUserCouponDTO(held, now)
	return &dto, nil
}

func apply(c *coupon.Coupon, in CouponInput) {
	c.Code = normalizeCode(in.Code)
	c.Name = strings.TrimSpace(in.Name)
	c.Description = in.Description
	c.DiscountType = coupon.DiscountType(in.DiscountType)
	c.DiscountValue = in.DiscountValue
	c.MinPurchaseAmount = in.MinPurchaseAmount
	c.MaxDiscountAmount = in.MaxDiscountAmount
	c.ValidFrom = in.ValidFrom
	c.ValidUntil = in.ValidUntil
	c.UsageLimit = in.UsageLimit
	c.IsActive = in.IsActive
}

// 优惠券代码不区分大小写
func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
