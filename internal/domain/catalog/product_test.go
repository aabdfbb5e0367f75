package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	t.Run("creates active product with valid inputs", func(t *testing.T) {
		p, err := NewProduct(1, "Switch 24p", "Managed L2 switch", decimal.NewFromFloat(450.50), 19, 12)
		require.NoError(t, err)
		require.NotNil(t, p)

		assert.Equal(t, "Switch 24p", p.Name)
		assert.Equal(t, 19, p.Tax)
		assert.Equal(t, 12, p.Stock)
		assert.True(t, p.IsActive)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewProduct(1, "", "", decimal.NewFromInt(10), 0, 0)
		assert.Error(t, err)
	})

	t.Run("rejects negative price", func(t *testing.T) {
		_, err := NewProduct(1, "Switch", "", decimal.NewFromInt(-10), 0, 0)
		assert.Error(t, err)
	})

	t.Run("rejects tax outside 0..100", func(t *testing.T) {
		_, err := NewProduct(1, "Switch", "", decimal.NewFromInt(10), 101, 0)
		assert.Error(t, err)
	})

	t.Run("rejects negative stock", func(t *testing.T) {
		_, err := NewProduct(1, "Switch", "", decimal.NewFromInt(10), 19, -1)
		assert.Error(t, err)
	})
}

func TestProductUpdate(t *testing.T) {
	p, err := NewProduct(1, "Switch 24p", "", decimal.NewFromInt(450), 19, 12)
	require.NoError(t, err)

	t.Run("replaces editable fields", func(t *testing.T) {
		err := p.Update(2, "Soporte mensual", "Soporte remoto", decimal.NewFromInt(120), 19, 0)
		require.NoError(t, err)

		assert.Equal(t, 2, p.ProductType)
		assert.Equal(t, "Soporte mensual", p.Name)
		assert.True(t, p.Price.Equal(decimal.NewFromInt(120)))
	})

	t.Run("rejects invalid fields without mutating", func(t *testing.T) {
		err := p.Update(2, "", "", decimal.NewFromInt(120), 19, 0)
		assert.Error(t, err)
		assert.Equal(t, "Soporte mensual", p.Name)
	})
}

func TestProductToggleActive(t *testing.T) {
	p, err := NewProduct(1, "Switch 24p", "", decimal.NewFromInt(450), 19, 12)
	require.NoError(t, err)

	assert.False(t, p.ToggleActive())
	assert.True(t, p.ToggleActive())
}
