package order

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder(status Status) *Order {
	amounts, _ := CalculateAmounts(20000, 0)
	o := NewOrder("20261017-ABCDEF12", 7, []Item{{ProductID: 1, Price: 10000, Quantity: 2, Subtotal: 20000}},
		amounts, ShippingAddress{RecipientName: "张三"}, "card", time.Now())
	o.Status = status
	return o
}

func TestOrder_StatusLifecycle(t *testing.T) {
	o := newTestOrder(StatusPending)
	now := time.Now()

	require.NoError(t, o.TransitionTo(StatusPaid, now))
	assert.Equal(t, PaymentPaid, o.PaymentStatus)
	assert.NotNil(t, o.PaidAt)

	require.NoError(t, o.TransitionTo(StatusPreparing, now))
	require.NoError(t, o.Ship("1234567890", "CJ大韩通运", now))
	assert.Equal(t, "1234567890", o.TrackingNumber)
	assert.NotNil(t, o.ShippedAt)

	require.NoError(t, o.TransitionTo(StatusDelivered, now))
	assert.NotNil(t, o.DeliveredAt)

	// 终态不能再变更
	assert.ErrorIs(t, o.TransitionTo(StatusPending, now), ErrInvalidStatusTransition)
}

func TestOrder_CannotSkipStates(t *testing.T) {
	o := newTestOrder(StatusPending)
	assert.ErrorIs(t, o.TransitionTo(StatusShipped, time.Now()), ErrInvalidStatusTransition)
	assert.Equal(t, StatusPending, o.Status)
}

func TestOrder_Cancel(t *testing.T) {
	for _, status := range []Status{StatusPending, StatusPaid, StatusPreparing} {
		t.Run(string(status), func(t *testing.T) {
			o := newTestOrder(status)
			require.NoError(t, o.Cancel("不想要了", time.Now()))
			assert.Equal(t, StatusCancelled, o.Status)
			assert.Equal(t, "不想要了", o.CancelReason)
			assert.NotNil(t, o.CancelledAt)
		})
	}

	for _, status := range []Status{StatusShipped, StatusDelivered, StatusCancelled, StatusRefunded} {
		t.Run(string(status), func(t *testing.T) {
			o := newTestOrder(status)
			assert.ErrorIs(t, o.Cancel("", time.Now()), ErrNotCancellable)
			assert.Equal(t, status, o.Status)
		})
	}
}

func TestOrder_CancelPaymentStatus(t *testing.T) {
	paid := newTestOrder(StatusPending)
	require.NoError(t, paid.TransitionTo(StatusPaid, time.Now()))
	require.NoError(t, paid.Cancel("", time.Now()))
	assert.Equal(t, PaymentRefunded, paid.PaymentStatus)

	unpaid := newTestOrder(StatusPending)
	require.NoError(t, unpaid.Cancel("", time.Now()))
	assert.Equal(t, PaymentCancelled, unpaid.PaymentStatus)
}

func TestGenerateOrderNo(t *testing.T) {
	now := time.Date(2026, 10, 17, 9, 0, 0, 0, time.Local)
	pattern := regexp.MustCompile(`^20261017-[0-9A-F]{8}$`)

	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		no := GenerateOrderNo(now)
		assert.Regexp(t, pattern, no)
		seen[no] = struct{}{}
	}
	assert.Len(t, seen, 1000)
}

func TestStatus_IsValid(t *testing.T) {
	assert.True(t, StatusPreparing.IsValid())
	assert.True(t, StatusRefunded.IsValid())
	assert.False(t, Status("unknown").IsValid())
}
