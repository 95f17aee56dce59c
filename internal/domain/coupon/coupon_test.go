package coupon

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCoupon_Discount(t *testing.T) {
	tests := []struct {
		name   string
		coupon Coupon
		total  int64
		want   int64
	}{
		{"百分比", Coupon{DiscountType: DiscountPercentage, DiscountValue: 10}, 30000, 3000},
		{"百分比封顶", Coupon{DiscountType: DiscountPercentage, DiscountValue: 50, MaxDiscountAmount: 5000}, 30000, 5000},
		{"固定金额", Coupon{DiscountType: DiscountFixedAmount, DiscountValue: 5000}, 30000, 5000},
		{"固定金额不超过总额", Coupon{DiscountType: DiscountFixedAmount, DiscountValue: 5000}, 3000, 3000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.coupon.Discount(tt.total))
		})
	}
}

func TestCoupon_IsValidAt(t *testing.T) {
	now := time.Now()
	c := Coupon{IsActive: true, ValidFrom: now.Add(-time.Hour), ValidUntil: now.Add(time.Hour)}

	assert.True(t, c.IsValidAt(now))
	assert.False(t, c.IsValidAt(now.Add(2*time.Hour)))
	assert.False(t, c.IsValidAt(now.Add(-2*time.Hour)))

	c.IsActive = false
	assert.False(t, c.IsValidAt(now))
}

func TestCoupon_Validate(t *testing.T) {
	now := time.Now()
	valid := Coupon{
		Code: "WELCOME10", Name: "新人券", DiscountType: DiscountPercentage, DiscountValue: 10,
		ValidFrom: now, ValidUntil: now.Add(24 * time.Hour),
	}
	assert.NoError(t, valid.Validate())

	bad := valid
	bad.DiscountValue = 120
	assert.ErrorIs(t, bad.Validate(), ErrInvalidCoupon)

	bad = valid
	bad.DiscountType = "bogus"
	assert.ErrorIs(t, bad.Validate(), ErrInvalidCoupon)

	bad = valid
	bad.ValidUntil = bad.ValidFrom
	assert.ErrorIs(t, bad.Validate(), ErrInvalidCoupon)
}

func TestCoupon_IsExhausted(t *testing.T) {
	assert.False(t, (&Coupon{UsageLimit: 0, UsageCount: 100}).IsExhausted())
	assert.False(t, (&Coupon{UsageLimit: 10, UsageCount: 9}).IsExhausted())
	assert.True(t, (&Coupon{UsageLimit: 10, UsageCount: 10}).IsExhausted())
}
