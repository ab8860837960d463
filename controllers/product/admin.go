package productControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ashishpimple94/boultindia-api/models"
)

type ProductInput struct {
	ID            string                `json:"id" binding:"required"`
	Name          string                `json:"name" binding:"required"`
	Description   string                `json:"description"`
	Price         float64               `json:"price" binding:"required"`
	OriginalPrice float64               `json:"originalPrice"`
	Category      string                `json:"category"`
	Image         string                `json:"image"`
	Variants      []ProductVariantInput `json:"variants"`
	Featured      bool                  `json:"featured"`
	OnSale        bool                  `json:"onSale"`
	Discount      int                   `json:"discount"`
}

type ProductVariantInput struct {
	Name  string  `json:"name" binding:"required"`
	Price float64 `json:"price" binding:"required"`
}

// POST /admin/products
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		product := models.Product{
			ID:            input.ID,
			Name:          input.Name,
			Description:   input.Description,
			Price:         input.Price,
			OriginalPrice: input.OriginalPrice,
			Category:      input.Category,
			Image:         input.Image,
			Featured:      input.Featured,
			OnSale:        input.OnSale,
			Discount:      input.Discount,
		}
		for _, v := range input.Variants {
			product.Variants = append(product.Variants, models.Variant{Name: v.Name, Price: v.Price})
		}

		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}
		c.JSON(http.StatusCreated, product)
	}
}

// PUT /admin/products/:id
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var product models.Product
		if err := db.First(&product, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
			}
			return
		}

		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			updates := map[string]interface{}{
				"name":           input.Name,
				"description":    input.Description,
				"price":          input.Price,
				"original_price": input.OriginalPrice,
				"category":       input.Category,
				"image":          input.Image,
				"featured":       input.Featured,
				"on_sale":        input.OnSale,
				"discount":       input.Discount,
			}
			if err := tx.Model(&product).Updates(updates).Error; err != nil {
				return err
			}

			// Variants are replaced wholesale.
			if err := tx.Where("product_id = ?", id).Delete(&models.Variant{}).Error; err != nil {
				return err
			}
			for _, v := range input.Variants {
				if err := tx.Create(&models.Variant{ProductID: id, Name: v.Name, Price: v.Price}).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Product updated"})
	}
}

// DELETE /admin/products/:id
func DeleteProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		result := db.Delete(&models.Product{}, "id = ?", id)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
	}
}
