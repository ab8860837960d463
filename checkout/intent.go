package checkout

import "fmt"

// IntentState tracks how far a payment intent has advanced. The two
// intent variants expose only their legal transitions, so an order save
// cannot be reached ahead of verification by construction.
type IntentState string

const (
	IntentCreated      IntentState = "created"
	IntentAwaitingUser IntentState = "awaiting_user" // hosted widget open, flow suspended
	IntentVerifying    IntentState = "verifying"
	IntentVerified     IntentState = "verified"
	IntentSaved        IntentState = "saved"
	IntentAborted      IntentState = "aborted" // user dismissed the widget; not an error
)

// CODIntent is the cash-on-delivery path: Created -> Saved.
type CODIntent struct {
	OrderID string
	state   IntentState
}

func NewCODIntent(orderID string) *CODIntent {
	return &CODIntent{OrderID: orderID, state: IntentCreated}
}

func (i *CODIntent) State() IntentState { return i.state }

func (i *CODIntent) MarkSaved() error {
	if i.state != IntentCreated {
		return fmt.Errorf("cod intent %s: cannot save from state %s", i.OrderID, i.state)
	}
	i.state = IntentSaved
	return nil
}

// GatewayIntent is the hosted-checkout path:
// Created -> AwaitingUser -> Verifying -> Verified -> Saved,
// with AwaitingUser -> Aborted when the user dismisses the widget.
type GatewayIntent struct {
	OrderID        string
	GatewayOrderID string
	PaymentID      string
	state          IntentState
}

func NewGatewayIntent(orderID string) *GatewayIntent {
	return &GatewayIntent{OrderID: orderID, state: IntentCreated}
}

func (i *GatewayIntent) State() IntentState { return i.state }

// AwaitUser records the gateway order and suspends the flow on the user.
func (i *GatewayIntent) AwaitUser(gatewayOrderID string) error {
	if i.state != IntentCreated {
		return fmt.Errorf("gateway intent %s: cannot await user from state %s", i.OrderID, i.state)
	}
	i.GatewayOrderID = gatewayOrderID
	i.state = IntentAwaitingUser
	return nil
}

// Abort is the user dismissing the widget: a silent end, no order exists.
func (i *GatewayIntent) Abort() error {
	if i.state != IntentAwaitingUser {
		return fmt.Errorf("gateway intent %s: cannot abort from state %s", i.OrderID, i.state)
	}
	i.state = IntentAborted
	return nil
}

func (i *GatewayIntent) BeginVerify(paymentID string) error {
	if i.state != IntentAwaitingUser {
		return fmt.Errorf("gateway intent %s: cannot verify from state %s", i.OrderID, i.state)
	}
	i.PaymentID = paymentID
	i.state = IntentVerifying
	return nil
}

func (i *GatewayIntent) MarkVerified() error {
	if i.state != IntentVerifying {
		return fmt.Errorf("gateway intent %s: cannot mark verified from state %s", i.OrderID, i.state)
	}
	i.state = IntentVerified
	return nil
}

// MarkSaved is only reachable after MarkVerified.
func (i *GatewayIntent) MarkSaved() error {
	if i.state != IntentVerified {
		return fmt.Errorf("gateway intent %s: cannot save from state %s", i.OrderID, i.state)
	}
	i.state = IntentSaved
	return nil
}
