package receipt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pos-terminal/internal/models"
)

func TestRenderProducesPDF(t *testing.T) {
	tx := &models.Transaction{
		TransactionID: "srv-t1",
		CardID:        "04A1B2C3",
		Type:          models.TxTypePayment,
		Amount:        1234,
		Status:        models.TxStatusCompleted,
		CreatedAt:     time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
		Items: []models.LineItem{
			{Name: "Coffee", Quantity: 2, UnitPrice: 350, Amount: 700},
			{Name: "Sandwich", Quantity: 1, UnitPrice: 534, Amount: 534},
		},
	}
	customer := &models.Customer{ID: "c1", CardID: "04A1B2C3", Name: "Ada", Balance: 5000}

	data, err := Render(tx, customer)
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestRenderWithoutCustomer(t *testing.T) {
	tx := &models.Transaction{
		TransactionID: "offline-1756500000000-42",
		CardID:        "04A1B2C3",
		Type:          models.TxTypeReload,
		Amount:        500,
		Status:        models.TxStatusPending,
		CreatedAt:     time.Now(),
	}

	data, err := Render(tx, nil)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data[:4]))
}
