package cartControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ashishpimple94/boultindia-api/cart"
	"github.com/ashishpimple94/boultindia-api/models"
)

type AddItemInput struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
	Variant   string `json:"variant"`
}

type SetQuantityInput struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity"`
}

func sessionKey(c *gin.Context) string {
	key, _ := c.Get("session_key")
	s, _ := key.(string)
	return s
}

func cartResponse(c cart.Cart) gin.H {
	return gin.H{"items": c.Items, "total": c.Total()}
}

// GET /api/cart
func GetCart(store *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		snapshot := store.Get(c.Request.Context(), sessionKey(c))
		c.JSON(http.StatusOK, cartResponse(snapshot))
	}
}

// POST /api/cart
func AddItem(db *gorm.DB, store *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input AddItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var product models.Product
		if err := db.Preload("Variants").First(&product, "id = ?", input.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Product does not exist"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate product"})
			}
			return
		}

		// Price is captured into the line at add time; a matching variant
		// overrides the base price.
		price := product.Price
		for _, v := range product.Variants {
			if v.Name == input.Variant {
				price = v.Price
			}
		}

		snapshot, err := store.Dispatch(c.Request.Context(), sessionKey(c), cart.AddItem{
			Product: cart.LineProduct{
				ID:          product.ID,
				Name:        product.Name,
				Price:       price,
				Image:       product.Image,
				Description: product.Description,
			},
			Quantity: input.Quantity,
			Variant:  input.Variant,
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
			return
		}

		c.JSON(http.StatusOK, cartResponse(snapshot))
	}
}

// PUT /api/cart
func SetQuantity(store *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input SetQuantityInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		snapshot, err := store.Dispatch(c.Request.Context(), sessionKey(c), cart.SetQuantity{
			ProductID: input.ProductID,
			Quantity:  input.Quantity,
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
			return
		}

		c.JSON(http.StatusOK, cartResponse(snapshot))
	}
}

// DELETE /api/cart/:product_id
func RemoveItem(store *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		snapshot, err := store.Dispatch(c.Request.Context(), sessionKey(c), cart.RemoveItem{
			ProductID: c.Param("product_id"),
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
			return
		}

		c.JSON(http.StatusOK, cartResponse(snapshot))
	}
}

// DELETE /api/cart
func ClearCart(store *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := store.Clear(c.Request.Context(), sessionKey(c)); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}
