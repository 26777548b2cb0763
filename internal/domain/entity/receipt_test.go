package entity_test

import (
	"testing"
	"time"

	"github.com/sangkips/mi-inventory-api/internal/domain/entity"
	"github.com/sangkips/mi-inventory-api/internal/domain/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_NewSaleReceipt(t *testing.T) {
	s := newSale()
	s.Cashier = "Jane"
	require.NoError(t, s.AddItem(burger))
	require.NoError(t, s.AddItem(burger))
	require.NoError(t, s.AddItem(soda))
	require.NoError(t, s.AddItem(entity.CatalogItem{ID: "cake", Name: "Cake", Price: dec("300")}))
	require.NoError(t, s.AddItem(entity.CatalogItem{ID: "tea", Name: "Tea", Price: dec("80")}))
	require.NoError(t, s.SetLineStatus("cake", enum.LineStatusComplimentary, "birthday"))
	require.NoError(t, s.SetLineStatus("tea", enum.LineStatusVoided, "spilled"))
	require.NoError(t, s.SetServiceDetails("7", "Amina", ""))
	require.NoError(t, s.ApplyDiscount(dec("50")))
	require.NoError(t, s.Finalize("Cash", time.Date(2024, 3, 1, 14, 5, 0, 0, time.UTC)))

	r := entity.NewSaleReceipt(entity.ReceiptHeader{StoreName: "Hotel Moja"}, s)

	assert.Equal(t, "SALE-TEST0001", r.InvoiceNo)
	assert.Equal(t, "2024-03-01 14:05", r.Date)
	assert.Equal(t, "Jane", r.Cashier)
	assert.Equal(t, "7", r.Table)
	assert.Equal(t, "Amina", r.Waiter)
	assert.Equal(t, "Cash", r.PaymentType)
	assert.True(t, dec("1150").Equal(r.SubTotal))
	assert.True(t, dec("50").Equal(r.Discount))
	assert.True(t, dec("1100").Equal(r.Total))

	require.Len(t, r.Items, 3)
	assert.Equal(t, "Burger", r.Items[0].Name)
	assert.Equal(t, 2, r.Items[0].Quantity)
	assert.Equal(t, "Cake", r.Items[2].Name)
	assert.Equal(t, "COMP", r.Items[2].Note)
	assert.True(t, r.Items[2].Total.IsZero())
}

func Test_NewSaleReceipt_PendingSaleUsesCreatedAt(t *testing.T) {
	s := newSale()
	r := entity.NewSaleReceipt(entity.ReceiptHeader{}, s)
	assert.Equal(t, "2024-03-01 12:00", r.Date)
	assert.Empty(t, r.Items)
}
