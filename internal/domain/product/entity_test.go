package product

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/xiebiao/mall/pkg/errors"
)

func TestProduct_CheckPurchasable(t *testing.T) {
	p := &Product{ID: 1, Name: "羊毛大衣", Price: 30000, StockQuantity: 10, IsActive: true}

	assert.NoError(t, p.CheckPurchasable(10))
	assert.ErrorIs(t, p.CheckPurchasable(0), ErrInvalidQuantity)

	err := p.CheckPurchasable(11)
	assert.True(t, errors.Is(err, ErrInsufficientStock))
	assert.Contains(t, err.Error(), "羊毛大衣")
	assert.Contains(t, err.Error(), "11")
	assert.Contains(t, err.Error(), "10")
	assert.Equal(t, apperrors.CodeBadRequest, apperrors.CodeOf(err))

	p.IsActive = false
	assert.ErrorIs(t, p.CheckPurchasable(1), ErrProductInactive)
}

func TestProduct_Validate(t *testing.T) {
	valid := Product{Name: "T恤", Price: 19000, StockQuantity: 3}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		modify func(p *Product)
		want   error
	}{
		{"名称为空", func(p *Product) { p.Name = "" }, ErrInvalidName},
		{"价格为0", func(p *Product) { p.Price = 0 }, ErrInvalidPrice},
		{"库存为负", func(p *Product) { p.StockQuantity = -1 }, ErrInvalidStock},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.modify(&p)
			assert.ErrorIs(t, p.Validate(), tt.want)
		})
	}
}
