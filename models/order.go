package models

import "time"

type OrderStatus string
type PaymentStatus string

const (
	// Order statuses (customer-visible flow)
	OrderStatusPending    OrderStatus = "pending"    // Order placed, awaiting processing
	OrderStatusProcessing OrderStatus = "processing" // Accepted, being prepared
	OrderStatusShipped    OrderStatus = "shipped"    // Handed to carrier
	OrderStatusDelivered  OrderStatus = "delivered"  // Customer received the item
	OrderStatusCancelled  OrderStatus = "cancelled"  // Cancelled by customer or admin

	// Payment statuses
	PaymentStatusPending PaymentStatus = "pending" // COD, collected on delivery
	PaymentStatusPaid    PaymentStatus = "paid"    // Gateway payment verified
)

// Payment methods accepted at checkout.
const (
	PaymentMethodCOD        = "cod"
	PaymentMethodCard       = "card"
	PaymentMethodUPI        = "upi"
	PaymentMethodNetBanking = "netbanking"
)

type Order struct {
	ID             string        `gorm:"primaryKey" json:"id"`
	Customer       string        `gorm:"not null" json:"customer"`
	Email          string        `gorm:"index;not null" json:"email"`
	Phone          string        `json:"phone"`
	Address        string        `json:"address"`
	City           string        `json:"city"`
	State          string        `json:"state"`
	Pincode        string        `json:"pincode"`
	Items          []OrderItem   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Amount         float64       `json:"amount"`
	ShippingCharge float64       `json:"shippingCharge"`
	PaymentMethod  string        `json:"paymentMethod"`
	PaymentID      string        `json:"paymentId,omitempty"`
	Status         OrderStatus   `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	PaymentStatus  PaymentStatus `gorm:"type:VARCHAR(20);default:'pending'" json:"paymentStatus"`
	CancelReason   string        `json:"cancelReason,omitempty"`
	CancelledAt    *time.Time    `json:"cancelledAt,omitempty"`
	ProcessingAt   *time.Time    `json:"processingAt,omitempty"`
	ShippedAt      *time.Time    `json:"shippedAt,omitempty"`
	DeliveredAt    *time.Time    `json:"deliveredAt,omitempty"`
	CourierName    string        `json:"courierName,omitempty"`
	TrackingNumber string        `json:"trackingNumber,omitempty"`
	CreatedAt      time.Time     `json:"orderDate"`
	UpdatedAt      time.Time     `json:"-"`
}

// OrderItem is a frozen copy of a cart line at checkout time, decoupled
// from the live Product so catalog edits never alter historical orders.
type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"-"`
	OrderID   string  `gorm:"index" json:"-"`
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Variant   string  `json:"variant"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
}

// PaymentReceipt records a gateway payment whose signature passed
// verification. An order with payment status "paid" must reference one of
// these rows; a receipt with no matching order marks a payment that needs
// manual reconciliation.
type PaymentReceipt struct {
	ID              string    `gorm:"primaryKey" json:"id"`
	GatewayOrderID  string    `gorm:"index;not null" json:"gatewayOrderId"`
	PaymentID       string    `gorm:"uniqueIndex;not null" json:"paymentId"`
	Signature       string    `json:"-"`
	VerifiedAt      time.Time `json:"verifiedAt"`
	StorefrontOrder string    `gorm:"index" json:"orderId,omitempty"`
}
