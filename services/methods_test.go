package services

import (
	"context"
	"testing"

	"hostelhub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertPaymentMethod(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	m, created, err := f.svc.UpsertPaymentMethod(ctx, f.admin, models.PaymentMethodRequest{
		Type:            models.MethodNetBanking,
		AccountNumber:   "001234567890",
		IFSC:            "sbin0001234",
		BankName:        "State Bank",
		BeneficiaryName: "Hostel Trust",
	})
	require.NoError(t, err)
	assert.True(t, created)
	assert.True(t, m.IsActive)
	assert.Equal(t, "001234567890", m.AccountNumber)
	assert.Equal(t, "SBIN0001234", m.IFSC)

	var stored models.PaymentMethod
	require.NoError(t, f.db.First(&stored, "id = ?", m.ID).Error)
	assert.NotEqual(t, "001234567890", stored.AccountNumber)
	assert.NotEmpty(t, stored.AccountNumber)

	updated, created, err := f.svc.UpsertPaymentMethod(ctx, f.admin, models.PaymentMethodRequest{
		Type:            models.MethodNetBanking,
		AccountNumber:   "999999999999",
		IFSC:            "HDFC0000001",
		BankName:        "HDFC",
		BeneficiaryName: "Hostel Trust",
	})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, m.ID, updated.ID)
	assert.Equal(t, "999999999999", updated.AccountNumber)

	var count int64
	require.NoError(t, f.db.Model(&models.PaymentMethod{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUpsertPaymentMethodValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := []struct {
		name string
		req  models.PaymentMethodRequest
		msg  string
	}{
		{"upi missing beneficiary", models.PaymentMethodRequest{Type: models.MethodUPI, UPIID: "hostel@okaxis"}, "Invalid data"},
		{"upi malformed", models.PaymentMethodRequest{Type: models.MethodUPI, UPIID: "hostel", BeneficiaryName: "Trust"}, "Invalid UPI id"},
		{"netbanking bad ifsc", models.PaymentMethodRequest{Type: models.MethodNetBanking, AccountNumber: "1", IFSC: "BAD", BankName: "X", BeneficiaryName: "Y"}, "Invalid IFSC code"},
		{"qr without image", models.PaymentMethodRequest{Type: models.MethodQR}, "Invalid data"},
		{"missing type", models.PaymentMethodRequest{}, "Invalid data"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := f.svc.UpsertPaymentMethod(ctx, f.admin, tc.req)
			assert.True(t, IsKind(err, KindValidation))
			assert.Equal(t, tc.msg, Message(err))
		})
	}

	_, _, err := f.svc.UpsertPaymentMethod(ctx, f.admin, models.PaymentMethodRequest{Type: models.MethodCash})
	require.NoError(t, err)
}

func TestTogglePaymentMethodHidesFromStudents(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sess := f.signUp(t, "Asha")

	upi, _, err := f.svc.UpsertPaymentMethod(ctx, f.admin, models.PaymentMethodRequest{
		Type: models.MethodUPI, UPIID: "hostel@okaxis", BeneficiaryName: "Hostel Trust",
	})
	require.NoError(t, err)
	_, _, err = f.svc.UpsertPaymentMethod(ctx, f.admin, models.PaymentMethodRequest{
		Type: models.MethodQR, QRCode: "https://cdn.example.com/qr.png",
	})
	require.NoError(t, err)

	active, err := f.svc.ActivePaymentMethods(ctx, sess)
	require.NoError(t, err)
	assert.Len(t, active, 2)

	toggled, err := f.svc.TogglePaymentMethod(ctx, f.admin, upi.ID)
	require.NoError(t, err)
	assert.False(t, toggled.IsActive)

	active, err = f.svc.ActivePaymentMethods(ctx, sess)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, models.MethodQR, active[0].Type)

	all, err := f.svc.ListPaymentMethods(ctx, f.admin)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = f.svc.TogglePaymentMethod(ctx, f.admin, "missing")
	assert.True(t, IsKind(err, KindNotFound))
	assert.Equal(t, "Method not found", Message(err))

	_, err = f.svc.ActivePaymentMethods(ctx, nil)
	assert.True(t, IsKind(err, KindUnauthorized))
	_, err = f.svc.ListPaymentMethods(ctx, sess)
	assert.True(t, IsKind(err, KindUnauthorized))
}
