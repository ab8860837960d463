package orderControllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ashishpimple94/boultindia-api/cart"
	"github.com/ashishpimple94/boultindia-api/checkout"
	"github.com/ashishpimple94/boultindia-api/events"
	"github.com/ashishpimple94/boultindia-api/lifecycle"
	"github.com/ashishpimple94/boultindia-api/models"
)

// -------- Request Structs --------

type OrderItemInput struct {
	ProductID string  `json:"productId" binding:"required"`
	Name      string  `json:"name" binding:"required"`
	Variant   string  `json:"variant"`
	Quantity  int     `json:"quantity" binding:"required"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
}

type SaveOrderRequest struct {
	ID            string           `json:"id"`
	Customer      string           `json:"customer" binding:"required"`
	Email         string           `json:"email" binding:"required,email"`
	Phone         string           `json:"phone" binding:"required"`
	Address       string           `json:"address" binding:"required"`
	City          string           `json:"city" binding:"required"`
	State         string           `json:"state" binding:"required"`
	Pincode       string           `json:"pincode" binding:"required"`
	Amount        float64          `json:"amount" binding:"required"`
	PaymentMethod string           `json:"paymentMethod" binding:"required"`
	Items         []OrderItemInput `json:"items" binding:"required"`
	Status        string           `json:"status"`
	PaymentID     string           `json:"paymentId"`
	OrderDate     time.Time        `json:"orderDate"`
}

type UpdateOrderRequest struct {
	OrderID      string     `json:"orderId" binding:"required"`
	Status       string     `json:"status" binding:"required"`
	CancelReason string     `json:"cancelReason"`
	CancelledAt  *time.Time `json:"cancelledAt"`
}

type AdminUpdateOrderRequest struct {
	Status         string   `json:"status" binding:"required"`
	CourierName    string   `json:"courierName"`
	TrackingNumber string   `json:"trackingNumber"`
	ShippingCharge *float64 `json:"shippingCharge"`
}

// -------- Handlers --------

// POST /api/save-order
func SaveOrderHandler(svc *checkout.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SaveOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		lines := make([]cart.LineItem, 0, len(req.Items))
		for _, item := range req.Items {
			lines = append(lines, cart.LineItem{
				Product: cart.LineProduct{
					ID:    item.ProductID,
					Name:  item.Name,
					Price: item.Price,
					Image: item.Image,
				},
				Quantity: item.Quantity,
				Variant:  item.Variant,
			})
		}
		items := checkout.BuildItems(lines)

		order, err := svc.Submit(c.Request.Context(), checkout.SubmitRequest{
			OrderID:       req.ID,
			Customer:      req.Customer,
			Email:         strings.ToLower(strings.TrimSpace(req.Email)),
			Phone:         req.Phone,
			Address:       req.Address,
			City:          req.City,
			State:         req.State,
			Pincode:       req.Pincode,
			Items:         items,
			Amount:        req.Amount,
			PaymentMethod: req.PaymentMethod,
			Status:        req.Status,
			PaymentID:     req.PaymentID,
			OrderDate:     req.OrderDate,
		})
		if err != nil {
			switch {
			case errors.Is(err, checkout.ErrUnverifiedPayment):
				c.JSON(http.StatusBadRequest, gin.H{"error": "Payment has not been verified; order was not created"})
			case errors.Is(err, checkout.ErrDuplicateOrder):
				c.JSON(http.StatusConflict, gin.H{"error": "Order already exists"})
			case errors.Is(err, checkout.ErrEmptyOrder):
				c.JSON(http.StatusBadRequest, gin.H{"error": "Order has no items"})
			case strings.Contains(err.Error(), "contact support"):
				// payment captured, save failed: the customer must not retry blindly
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			default:
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			}
			return
		}

		BroadcastOrder(order)
		c.JSON(http.StatusCreated, gin.H{"success": true, "order": order, "timestamp": time.Now().UTC()})
	}
}

// GET /api/orders
func GetAllOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.
			Preload("Items").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "orders": orders})
	}
}

// GET /api/orders/:orderID
func GetOrderByIDHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("orderID")
		if id == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "orderID is required"})
			return
		}

		var order models.Order
		if err := db.Preload("Items").First(&order, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		now := time.Now()
		c.JSON(http.StatusOK, gin.H{
			"order":         order,
			"progress":      lifecycle.Progress(order.Status),
			"canCancel":     lifecycle.CanCancel(order.Status, order.CreatedAt, now),
			"timeRemaining": lifecycle.TimeRemaining(order.CreatedAt, now),
			"tax":           checkout.Tax(order.Amount),
		})
	}
}

// PUT /api/update-order — the customer-facing cancellation path. Only a
// transition to cancelled is accepted here; everything else is the
// back-office's job.
func UpdateOrderHandler(db *gorm.DB, pub checkout.Publisher) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		status, err := lifecycle.ParseStatus(req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if status != models.OrderStatusCancelled {
			c.JSON(http.StatusForbidden, gin.H{"error": "only cancellation may be requested here"})
			return
		}
		if strings.TrimSpace(req.CancelReason) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "cancellation reason is required"})
			return
		}

		var order models.Order
		if err := db.First(&order, "id = ?", req.OrderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		if !lifecycle.CanCancel(order.Status, order.CreatedAt, time.Now()) {
			c.JSON(http.StatusConflict, gin.H{"error": "order can no longer be cancelled"})
			return
		}

		cancelledAt := time.Now()
		if req.CancelledAt != nil {
			cancelledAt = *req.CancelledAt
		}
		updates := map[string]interface{}{
			"status":        models.OrderStatusCancelled,
			"cancel_reason": req.CancelReason,
			"cancelled_at":  cancelledAt,
		}
		if err := db.Model(&order).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to cancel order"})
			return
		}

		order.Status = models.OrderStatusCancelled
		order.CancelReason = req.CancelReason
		order.CancelledAt = &cancelledAt

		if pub != nil {
			_ = pub.Publish(c.Request.Context(), events.OrderCancelled, order)
		}
		BroadcastOrder(&order)

		c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
	}
}

// PUT /admin/orders/:orderID/status — back-office status advancement.
func AdminUpdateOrderHandler(db *gorm.DB, pub checkout.Publisher) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")
		if orderID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "orderID is required"})
			return
		}

		var req AdminUpdateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		newStatus, err := lifecycle.ParseStatus(req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var order models.Order
		if err := db.First(&order, "id = ?", orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		if !lifecycle.CanTransition(order.Status, newStatus) {
			c.JSON(http.StatusConflict, gin.H{
				"error": "invalid transition from " + string(order.Status) + " to " + string(newStatus),
			})
			return
		}

		now := time.Now()
		updates := map[string]interface{}{"status": newStatus}
		switch newStatus {
		case models.OrderStatusProcessing:
			updates["processing_at"] = now
		case models.OrderStatusShipped:
			updates["shipped_at"] = now
			if req.CourierName != "" {
				updates["courier_name"] = req.CourierName
			}
			if req.TrackingNumber != "" {
				updates["tracking_number"] = req.TrackingNumber
			}
		case models.OrderStatusDelivered:
			updates["delivered_at"] = now
		case models.OrderStatusCancelled:
			updates["cancelled_at"] = now
			updates["cancel_reason"] = "Cancelled by store"
		}
		if req.ShippingCharge != nil {
			updates["shipping_charge"] = *req.ShippingCharge
		}

		if err := db.Model(&order).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order status"})
			return
		}

		order.Status = newStatus
		if pub != nil {
			_ = pub.Publish(c.Request.Context(), events.OrderStatusChanged, order)
		}
		BroadcastOrder(&order)

		c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
	}
}
