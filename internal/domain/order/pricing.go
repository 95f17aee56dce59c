package order

// 运费规则：订单金额满FreeShippingThreshold免运费
const (
	FreeShippingThreshold int64 = 50000
	DefaultShippingFee    int64 = 3000
)

// Amounts 订单金额明细
type Amounts struct {
	Total       int64
	Discount    int64
	ShippingFee int64
	Final       int64
}

// ShippingFeeFor 根据商品总额计算运费
func ShippingFeeFor(total int64) int64 {
	if total >= FreeShippingThreshold {
		return 0
	}
	return DefaultShippingFee
}

// CalculateAmounts 计算订单金额
// 负数折扣按0处理；折扣不能超过商品总额，因此实付金额不小于运费
func CalculateAmounts(total, discount int64) (Amounts, error) {
	if discount < 0 {
		discount = 0
	}
	if discount > total {
		return Amounts{}, ErrDiscountExceedsTotal.WithMessagef("折扣金额%d超过商品总额%d", discount, total)
	}

	fee := ShippingFeeFor(total)
	return Amounts{
		Total:       total,
		Discount:    discount,
		ShippingFee: fee,
		Final:       total + fee - discount,
	}, nil
}
