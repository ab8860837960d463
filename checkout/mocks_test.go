package checkout

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ashishpimple94/boultindia-api/models"
)

type MockOrders struct {
	mock.Mock
}

func (m *MockOrders) Save(ctx context.Context, order *models.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrders) Exists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockReceipts struct {
	mock.Mock
}

func (m *MockReceipts) Record(ctx context.Context, receipt models.PaymentReceipt) error {
	args := m.Called(ctx, receipt)
	return args.Error(0)
}

func (m *MockReceipts) FindByPaymentID(ctx context.Context, paymentID string) (*models.PaymentReceipt, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PaymentReceipt), args.Error(1)
}

func (m *MockReceipts) AttachOrder(ctx context.Context, paymentID, orderID string) error {
	args := m.Called(ctx, paymentID, orderID)
	return args.Error(0)
}

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) CreateOrder(ctx context.Context, amountPaise int64, receipt string, notes map[string]interface{}) (GatewayOrder, error) {
	args := m.Called(ctx, amountPaise, receipt, notes)
	return args.Get(0).(GatewayOrder), args.Error(1)
}

func (m *MockGateway) VerifySignature(gatewayOrderID, paymentID, signature string) bool {
	args := m.Called(gatewayOrderID, paymentID, signature)
	return args.Bool(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, pattern string, data interface{}) error {
	args := m.Called(ctx, pattern, data)
	return args.Error(0)
}
