package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ashishpimple94/boultindia-api/events"
	"github.com/ashishpimple94/boultindia-api/models"
)

var (
	ErrEmptyOrder        = errors.New("order has no items")
	ErrDuplicateOrder    = errors.New("order id already exists")
	ErrUnverifiedPayment = errors.New("payment has not been verified")
	ErrSignatureMismatch = errors.New("invalid payment signature")
)

// Gateway is the payment provider the storefront delegates hosted
// checkout to.
type Gateway interface {
	CreateOrder(ctx context.Context, amountPaise int64, receipt string, notes map[string]interface{}) (GatewayOrder, error)
	VerifySignature(gatewayOrderID, paymentID, signature string) bool
}

// GatewayOrder is the payment-session object the gateway returns,
// distinct from the storefront's own order.
type GatewayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// Orders persists storefront orders.
type Orders interface {
	Save(ctx context.Context, order *models.Order) error
	Exists(ctx context.Context, id string) (bool, error)
}

// Receipts is the durable record of verified gateway payments. A receipt
// without a matching order marks a charged-but-unsaved payment for manual
// reconciliation.
type Receipts interface {
	Record(ctx context.Context, receipt models.PaymentReceipt) error
	FindByPaymentID(ctx context.Context, paymentID string) (*models.PaymentReceipt, error)
	AttachOrder(ctx context.Context, paymentID, orderID string) error
}

// Publisher broadcasts order events. A nil publisher disables eventing.
type Publisher interface {
	Publish(ctx context.Context, pattern string, data interface{}) error
}

// Service owns order submission: the COD path saves directly, the gateway
// path refuses to save until a verified receipt exists for the payment.
type Service struct {
	orders   Orders
	receipts Receipts
	gateway  Gateway
	pub      Publisher
	now      func() time.Time
}

func NewService(orders Orders, receipts Receipts, gateway Gateway, pub Publisher) *Service {
	return &Service{orders: orders, receipts: receipts, gateway: gateway, pub: pub, now: time.Now}
}

// SubmitRequest is a composed order payload from the checkout form plus
// the frozen cart items.
type SubmitRequest struct {
	OrderID       string
	Customer      string
	Email         string
	Phone         string
	Address       string
	City          string
	State         string
	Pincode       string
	Items         []models.OrderItem
	Amount        float64
	PaymentMethod string
	Status        string // "pending" (COD) or "paid" (post-verification)
	PaymentID     string
	OrderDate     time.Time
}

// Submit persists an order. COD orders go straight to pending. A request
// claiming "paid" must carry a payment id with a verified receipt; the
// save is unreachable otherwise.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyOrder
	}
	if !ValidPaymentMethod(req.PaymentMethod) {
		return nil, fmt.Errorf("unknown payment method %q", req.PaymentMethod)
	}
	if err := validateAmount(req.Amount); err != nil {
		return nil, err
	}

	if req.OrderID == "" {
		req.OrderID = NewOrderID(s.now())
	}
	if exists, err := s.orders.Exists(ctx, req.OrderID); err != nil {
		return nil, err
	} else if exists {
		return nil, ErrDuplicateOrder
	}

	placedAt := req.OrderDate
	if placedAt.IsZero() {
		placedAt = s.now()
	}

	order := &models.Order{
		ID:            req.OrderID,
		Customer:      req.Customer,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		City:          req.City,
		State:         req.State,
		Pincode:       req.Pincode,
		Items:         req.Items,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		Status:        models.OrderStatusPending,
		PaymentStatus: models.PaymentStatusPending,
		CreatedAt:     placedAt,
	}

	switch req.Status {
	case "paid":
		if err := s.submitPaid(ctx, order, req.PaymentID); err != nil {
			return nil, err
		}
	default:
		intent := NewCODIntent(order.ID)
		if err := s.orders.Save(ctx, order); err != nil {
			return nil, err
		}
		if err := intent.MarkSaved(); err != nil {
			return nil, err
		}
	}

	s.publish(ctx, events.OrderCreated, order)
	return order, nil
}

func (s *Service) submitPaid(ctx context.Context, order *models.Order, paymentID string) error {
	if paymentID == "" {
		return ErrUnverifiedPayment
	}
	receipt, err := s.receipts.FindByPaymentID(ctx, paymentID)
	if err != nil {
		return err
	}
	if receipt == nil {
		return ErrUnverifiedPayment
	}

	intent := NewGatewayIntent(order.ID)
	if err := intent.AwaitUser(receipt.GatewayOrderID); err != nil {
		return err
	}
	if err := intent.BeginVerify(paymentID); err != nil {
		return err
	}
	if err := intent.MarkVerified(); err != nil {
		return err
	}

	order.PaymentStatus = models.PaymentStatusPaid
	order.PaymentID = paymentID
	if err := s.orders.Save(ctx, order); err != nil {
		// Payment is taken but no order exists: the receipt row is the
		// reconciliation trail. Surface this distinctly.
		return fmt.Errorf("order save failed after verified payment %s, contact support: %w", paymentID, err)
	}
	if err := intent.MarkSaved(); err != nil {
		return err
	}
	if err := s.receipts.AttachOrder(ctx, paymentID, order.ID); err != nil {
		return err
	}
	return nil
}

// CreateGatewayOrder opens a payment session with the gateway for the
// given storefront order id.
func (s *Service) CreateGatewayOrder(ctx context.Context, amount float64, orderID, customer string) (GatewayOrder, error) {
	if err := validateAmount(amount); err != nil {
		return GatewayOrder{}, err
	}
	if orderID == "" {
		orderID = NewOrderID(s.now())
	}
	notes := map[string]interface{}{"orderId": orderID, "customer": customer}
	return s.gateway.CreateOrder(ctx, Paise(amount), orderID, notes)
}

// VerifyPayment checks the gateway signature and records a durable
// receipt on success. A mismatch records nothing.
func (s *Service) VerifyPayment(ctx context.Context, gatewayOrderID, paymentID, signature string) error {
	if !s.gateway.VerifySignature(gatewayOrderID, paymentID, signature) {
		return ErrSignatureMismatch
	}
	return s.receipts.Record(ctx, models.PaymentReceipt{
		ID:             uuid.NewString(),
		GatewayOrderID: gatewayOrderID,
		PaymentID:      paymentID,
		Signature:      signature,
		VerifiedAt:     s.now(),
	})
}

func (s *Service) publish(ctx context.Context, pattern string, data interface{}) {
	if s.pub == nil {
		return
	}
	// Eventing is best-effort; a broker outage never fails a checkout.
	_ = s.pub.Publish(ctx, pattern, data)
}
