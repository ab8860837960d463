package paymentControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ashishpimple94/boultindia-api/checkout"
)

type CreateOrderRequest struct {
	Amount   float64 `json:"amount" binding:"required"`
	OrderID  string  `json:"orderId"`
	Customer string  `json:"customer"`
}

type VerifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
	RazorpaySignature string `json:"razorpay_signature" binding:"required"`
}

// POST /api/razorpay/create-order
func CreateOrderHandler(svc *checkout.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		order, err := svc.CreateGatewayOrder(c.Request.Context(), req.Amount, req.OrderID, req.Customer)
		if err != nil {
			// gateway unreachable or rejected the session: fatal for this attempt
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
	}
}

// POST /api/razorpay/verify-payment
func VerifyPaymentHandler(svc *checkout.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req VerifyPaymentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		err := svc.VerifyPayment(c.Request.Context(), req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature)
		if errors.Is(err, checkout.ErrSignatureMismatch) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payment signature"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record payment verification"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Payment verified"})
	}
}
