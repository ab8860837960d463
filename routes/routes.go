package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ashishpimple94/boultindia-api/cart"
	"github.com/ashishpimple94/boultindia-api/checkout"
)

// Deps carries everything the route groups need.
type Deps struct {
	DB        *gorm.DB
	CartStore *cart.Store
	Checkout  *checkout.Service
	Publisher checkout.Publisher
}

// SetupRoutes is the single entry-point that wires up the public API,
// auth, and admin route groups.
func SetupRoutes(r *gin.Engine, deps Deps) {
	SetupAuthRoutes(r, deps)
	SetupCartRoutes(r, deps)
	SetupCatalogRoutes(r, deps)
	SetupOrderRoutes(r, deps)
	SetupPaymentRoutes(r, deps)
	SetupAdminRoutes(r, deps)
}
