package checkout

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ashishpimple94/boultindia-api/cart"
	"github.com/ashishpimple94/boultindia-api/models"
)

func newTestService(t *testing.T) (*Service, *MockOrders, *MockReceipts, *MockGateway, *MockPublisher) {
	t.Helper()
	orders := new(MockOrders)
	receipts := new(MockReceipts)
	gateway := new(MockGateway)
	pub := new(MockPublisher)
	svc := NewService(orders, receipts, gateway, pub)
	svc.now = func() time.Time { return time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC) }
	return svc, orders, receipts, gateway, pub
}

func sampleItems() []models.OrderItem {
	return BuildItems([]cart.LineItem{
		{Product: cart.LineProduct{ID: "anti-rust-spray", Name: "Anti Rust Spray", Price: 90, Image: "/spray.png"}, Quantity: 2, Variant: "60ml"},
		{Product: cart.LineProduct{ID: "car-wax", Name: "Car Wax", Price: 250, Image: "/wax.png"}, Quantity: 1},
	})
}

func TestSubmit_CODSavesPendingOrder(t *testing.T) {
	svc, orders, _, _, pub := newTestService(t)

	orders.On("Exists", mock.Anything, "ORDER_1").Return(false, nil)
	orders.On("Save", mock.Anything, mock.AnythingOfType("*models.Order")).Return(nil)
	pub.On("Publish", mock.Anything, "order.created", mock.Anything).Return(nil)

	order, err := svc.Submit(context.Background(), SubmitRequest{
		OrderID:       "ORDER_1",
		Customer:      "Asha Pimple",
		Email:         "asha@example.com",
		Items:         sampleItems(),
		Amount:        430,
		PaymentMethod: models.PaymentMethodCOD,
		Status:        "pending",
	})

	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, models.PaymentStatusPending, order.PaymentStatus)
	assert.Empty(t, order.PaymentID)
	orders.AssertExpectations(t)
	pub.AssertExpectations(t)
}

func TestSubmit_PaidWithoutReceiptNeverSaves(t *testing.T) {
	svc, orders, receipts, _, _ := newTestService(t)

	orders.On("Exists", mock.Anything, "ORDER_2").Return(false, nil)
	receipts.On("FindByPaymentID", mock.Anything, "pay_missing").Return(nil, nil)

	_, err := svc.Submit(context.Background(), SubmitRequest{
		OrderID:       "ORDER_2",
		Customer:      "Asha Pimple",
		Email:         "asha@example.com",
		Items:         sampleItems(),
		Amount:        430,
		PaymentMethod: models.PaymentMethodUPI,
		Status:        "paid",
		PaymentID:     "pay_missing",
	})

	assert.ErrorIs(t, err, ErrUnverifiedPayment)
	orders.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestSubmit_PaidWithoutPaymentIDNeverSaves(t *testing.T) {
	svc, orders, _, _, _ := newTestService(t)

	orders.On("Exists", mock.Anything, "ORDER_3").Return(false, nil)

	_, err := svc.Submit(context.Background(), SubmitRequest{
		OrderID:       "ORDER_3",
		Customer:      "Asha Pimple",
		Email:         "asha@example.com",
		Items:         sampleItems(),
		Amount:        430,
		PaymentMethod: models.PaymentMethodCard,
		Status:        "paid",
	})

	assert.ErrorIs(t, err, ErrUnverifiedPayment)
	orders.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestSubmit_PaidWithVerifiedReceipt(t *testing.T) {
	svc, orders, receipts, _, pub := newTestService(t)

	receipt := &models.PaymentReceipt{
		ID:             "rcpt-1",
		GatewayOrderID: "order_rzp1",
		PaymentID:      "pay_abc",
	}
	orders.On("Exists", mock.Anything, "ORDER_4").Return(false, nil)
	receipts.On("FindByPaymentID", mock.Anything, "pay_abc").Return(receipt, nil)
	orders.On("Save", mock.Anything, mock.AnythingOfType("*models.Order")).Return(nil)
	receipts.On("AttachOrder", mock.Anything, "pay_abc", "ORDER_4").Return(nil)
	pub.On("Publish", mock.Anything, "order.created", mock.Anything).Return(nil)

	order, err := svc.Submit(context.Background(), SubmitRequest{
		OrderID:       "ORDER_4",
		Customer:      "Asha Pimple",
		Email:         "asha@example.com",
		Items:         sampleItems(),
		Amount:        430,
		PaymentMethod: models.PaymentMethodUPI,
		Status:        "paid",
		PaymentID:     "pay_abc",
	})

	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, models.PaymentStatusPaid, order.PaymentStatus)
	assert.Equal(t, "pay_abc", order.PaymentID)
	receipts.AssertExpectations(t)
}

func TestSubmit_PaidSaveFailureSurfacesSupportError(t *testing.T) {
	svc, orders, receipts, _, _ := newTestService(t)

	receipt := &models.PaymentReceipt{GatewayOrderID: "order_rzp1", PaymentID: "pay_abc"}
	orders.On("Exists", mock.Anything, "ORDER_5").Return(false, nil)
	receipts.On("FindByPaymentID", mock.Anything, "pay_abc").Return(receipt, nil)
	orders.On("Save", mock.Anything, mock.Anything).Return(errors.New("db down"))

	_, err := svc.Submit(context.Background(), SubmitRequest{
		OrderID:       "ORDER_5",
		Customer:      "Asha Pimple",
		Email:         "asha@example.com",
		Items:         sampleItems(),
		Amount:        430,
		PaymentMethod: models.PaymentMethodCard,
		Status:        "paid",
		PaymentID:     "pay_abc",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "contact support")
	receipts.AssertNotCalled(t, "AttachOrder", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmit_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*SubmitRequest)
		setup   func(orders *MockOrders)
		wantErr string
	}{
		{
			name:    "empty items",
			mutate:  func(r *SubmitRequest) { r.Items = nil },
			wantErr: ErrEmptyOrder.Error(),
		},
		{
			name:    "unknown payment method",
			mutate:  func(r *SubmitRequest) { r.PaymentMethod = "cheque" },
			wantErr: "unknown payment method",
		},
		{
			name:    "non-positive amount",
			mutate:  func(r *SubmitRequest) { r.Amount = 0 },
			wantErr: "amount must be positive",
		},
		{
			name:   "duplicate id",
			mutate: func(r *SubmitRequest) {},
			setup: func(orders *MockOrders) {
				orders.On("Exists", mock.Anything, "ORDER_9").Return(true, nil)
			},
			wantErr: ErrDuplicateOrder.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, orders, _, _, _ := newTestService(t)
			if tt.setup != nil {
				tt.setup(orders)
			}
			req := SubmitRequest{
				OrderID:       "ORDER_9",
				Customer:      "Asha Pimple",
				Email:         "asha@example.com",
				Items:         sampleItems(),
				Amount:        430,
				PaymentMethod: models.PaymentMethodCOD,
			}
			tt.mutate(&req)

			_, err := svc.Submit(context.Background(), req)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			orders.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		})
	}
}

func TestVerifyPayment_MismatchRecordsNothing(t *testing.T) {
	svc, _, receipts, gateway, _ := newTestService(t)

	gateway.On("VerifySignature", "order_rzp1", "pay_abc", "bad-sig").Return(false)

	err := svc.VerifyPayment(context.Background(), "order_rzp1", "pay_abc", "bad-sig")
	assert.ErrorIs(t, err, ErrSignatureMismatch)
	receipts.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
}

func TestVerifyPayment_RecordsReceipt(t *testing.T) {
	svc, _, receipts, gateway, _ := newTestService(t)

	gateway.On("VerifySignature", "order_rzp1", "pay_abc", "good-sig").Return(true)
	receipts.On("Record", mock.Anything, mock.MatchedBy(func(r models.PaymentReceipt) bool {
		return r.GatewayOrderID == "order_rzp1" && r.PaymentID == "pay_abc"
	})).Return(nil)

	require.NoError(t, svc.VerifyPayment(context.Background(), "order_rzp1", "pay_abc", "good-sig"))
	receipts.AssertExpectations(t)
}

func TestCreateGatewayOrder(t *testing.T) {
	svc, _, _, gateway, _ := newTestService(t)

	gateway.On("CreateOrder", mock.Anything, int64(43000), "ORDER_7", mock.Anything).
		Return(GatewayOrder{ID: "order_rzp7", Amount: 43000, Currency: "INR"}, nil)

	got, err := svc.CreateGatewayOrder(context.Background(), 430, "ORDER_7", "Asha Pimple")
	require.NoError(t, err)
	assert.Equal(t, "order_rzp7", got.ID)
	assert.Equal(t, int64(43000), got.Amount)
}

func TestGatewayIntent_TransitionsAreOrdered(t *testing.T) {
	intent := NewGatewayIntent("ORDER_8")

	// save is unreachable before verification completes
	assert.Error(t, intent.MarkSaved())
	assert.Error(t, intent.BeginVerify("pay_x"))

	require.NoError(t, intent.AwaitUser("order_rzp8"))
	assert.Error(t, intent.MarkSaved())

	require.NoError(t, intent.BeginVerify("pay_x"))
	assert.Error(t, intent.MarkSaved())

	require.NoError(t, intent.MarkVerified())
	require.NoError(t, intent.MarkSaved())
	assert.Equal(t, IntentSaved, intent.State())
}

func TestGatewayIntent_DismissAborts(t *testing.T) {
	intent := NewGatewayIntent("ORDER_10")
	require.NoError(t, intent.AwaitUser("order_rzp10"))
	require.NoError(t, intent.Abort())
	assert.Equal(t, IntentAborted, intent.State())
	assert.Error(t, intent.BeginVerify("pay_x"))
}

func TestBuildItems_DefaultsVariant(t *testing.T) {
	items := sampleItems()
	require.Len(t, items, 2)
	assert.Equal(t, "60ml", items[0].Variant)
	assert.Equal(t, "Default", items[1].Variant)
	assert.Equal(t, 250.0, items[1].Price)
}

func TestNewOrderID_IsTimeBased(t *testing.T) {
	at := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "ORDER_1773489600000", NewOrderID(at))
}

func TestTax_InclusiveBreakdown(t *testing.T) {
	b := Tax(1180)
	assert.Equal(t, 1000.0, b.Subtotal)
	assert.Equal(t, 180.0, b.GST)
	assert.Equal(t, 1180.0, b.Total)
}

func TestPaise(t *testing.T) {
	assert.Equal(t, int64(43000), Paise(430))
	assert.Equal(t, int64(9999), Paise(99.99))
}

func TestRazorpayGateway_VerifySignature(t *testing.T) {
	gw := NewRazorpayGateway("rzp_test_key", "secret123")

	mac := hmac.New(sha256.New, []byte("secret123"))
	mac.Write([]byte("order_rzp1|pay_abc"))
	good := hex.EncodeToString(mac.Sum(nil))

	assert.True(t, gw.VerifySignature("order_rzp1", "pay_abc", good))
	assert.False(t, gw.VerifySignature("order_rzp1", "pay_abc", "deadbeef"))
	assert.False(t, gw.VerifySignature("order_rzp2", "pay_abc", good))
}
