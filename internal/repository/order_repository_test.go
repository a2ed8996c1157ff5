package repository

import (
	"testing"

	"github.com/maisdocacau/storefront/internal/constants"
	"github.com/maisdocacau/storefront/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderRepositoryCreateAndQuery(t *testing.T) {
	repo := NewOrderRepository(openTestDB(t))
	userID := uint(7)

	order := &models.Order{
		OrderNo:       "MDC00001234",
		SessionID:     "session-1",
		UserID:        &userID,
		Status:        constants.OrderStatusPendingPayment,
		PaymentMethod: constants.PaymentMethodPix,
		Subtotal:      models.MustMoney("119.80"),
		DeliveryFee:   models.MustMoney("16.90"),
		Total:         models.MustMoney("136.70"),
		Address: models.DeliveryAddress{
			FullName:     "Maria Silva",
			Street:       "Av. Ibirapuera",
			Number:       "100",
			Neighborhood: "Moema",
			City:         "São Paulo",
			State:        "SP",
			ZipCode:      "04029-000",
			Phone:        "11999990000",
		},
		Zone:              "Zona Sul",
		EstimatedDelivery: "45-60 min",
	}
	items := []models.OrderItem{{
		ProductID:   "cauchaca-original",
		ProductName: "Cauchaça Original",
		UnitPrice:   models.MustMoney("59.90"),
		Quantity:    2,
		TotalPrice:  models.MustMoney("119.80"),
	}}
	require.NoError(t, repo.Create(order, items))
	require.NotZero(t, order.ID)

	got, err := repo.GetByOrderNo("MDC00001234")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Moema", got.Address.Neighborhood)
	assert.Equal(t, "136.70", got.Total.String())
	require.Len(t, got.Items, 1)
	assert.Equal(t, 2, got.Items[0].Quantity)

	mine, err := repo.GetByOrderNoAndUser("MDC00001234", userID)
	require.NoError(t, err)
	require.NotNil(t, mine)

	other, err := repo.GetByOrderNoAndUser("MDC00001234", 99)
	require.NoError(t, err)
	assert.Nil(t, other)

	require.NoError(t, repo.UpdateStatus(order.ID, constants.OrderStatusPaid, map[string]interface{}{"payment_ref": "SIM-1"}))
	list, total, err := repo.ListByUser(OrderListFilter{UserID: userID, Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, list, 1)
	assert.Equal(t, constants.OrderStatusPaid, list[0].Status)
	assert.Equal(t, "SIM-1", list[0].PaymentRef)

	adminList, _, err := repo.ListAdmin(OrderListFilter{Status: constants.OrderStatusPendingPayment})
	require.NoError(t, err)
	assert.Empty(t, adminList)
}

func TestOrderRepositoryListByUserWithoutUser(t *testing.T) {
	repo := NewOrderRepository(openTestDB(t))
	list, total, err := repo.ListByUser(OrderListFilter{})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, list)
}
