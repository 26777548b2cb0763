package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/sangkips/mi-inventory-api/internal/domain/entity"
	"github.com/sangkips/mi-inventory-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_CreditorStatement(t *testing.T) {
	opened := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	c, err := entity.NewCreditor("ABC Food Supplies", decimal.NewFromInt(50000), opened)
	require.NoError(t, err)

	empty, err := CreditorStatement("Hotel Moja", c, opened)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(empty, []byte("%PDF-")))

	require.NoError(t, c.RecordSettlement(entity.SettlementRecord{
		Amount:     decimal.NewFromInt(20000),
		Date:       time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Method:     enum.SettlementMethodTransfer,
		Reference:  "TXN123456",
		RecordedBy: "Procurement Officer",
	}, enum.OverpaymentReject))

	withRows, err := CreditorStatement("Hotel Moja", c, opened)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(withRows, []byte("%PDF-")))
	assert.NotEqual(t, empty, withRows)
}

func Test_Money(t *testing.T) {
	assert.Equal(t, "ksh 1500.00", money("1500.00"))
}
