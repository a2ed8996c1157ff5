package simulated

import (
	"context"
	"testing"
	"time"

	"github.com/maisdocacau/storefront/internal/models"
	"github.com/maisdocacau/storefront/internal/payment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChargeSuccess(t *testing.T) {
	gw := New(Config{})
	result, err := gw.Charge(context.Background(), payment.ChargeInput{
		OrderNo: "MDC12345678",
		Method:  "pix",
		Amount:  models.MustMoney("136.70"),
	})
	require.NoError(t, err)
	assert.Equal(t, "pix", result.Method)
	assert.Equal(t, "136.70", result.Amount.String())
	assert.NotEmpty(t, result.Reference)
}

func TestChargeDeclinedByFailureRate(t *testing.T) {
	gw := New(Config{FailureRate: 0.5}).WithRoll(func() float64 { return 0.1 })
	_, err := gw.Charge(context.Background(), payment.ChargeInput{OrderNo: "MDC1", Method: "credit", Amount: models.MustMoney("1")})
	assert.ErrorIs(t, err, payment.ErrChargeDeclined)

	gw = New(Config{FailureRate: 0.5}).WithRoll(func() float64 { return 0.9 })
	_, err = gw.Charge(context.Background(), payment.ChargeInput{OrderNo: "MDC1", Method: "credit", Amount: models.MustMoney("1")})
	assert.NoError(t, err)
}

func TestChargeHonorsContextDeadline(t *testing.T) {
	gw := New(Config{Delay: time.Second})
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := gw.Charge(ctx, payment.ChargeInput{OrderNo: "MDC1", Method: "pix", Amount: models.MustMoney("1")})
	assert.ErrorIs(t, err, payment.ErrChargeTimeout)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestChargeRejectsInvalidInput(t *testing.T) {
	gw := New(Config{})
	_, err := gw.Charge(context.Background(), payment.ChargeInput{Method: "pix"})
	assert.ErrorIs(t, err, payment.ErrInputInvalid)

	_, err = gw.Charge(context.Background(), payment.ChargeInput{OrderNo: "MDC1", Method: "pix", Amount: models.MustMoney("-1")})
	assert.ErrorIs(t, err, payment.ErrInputInvalid)
}
