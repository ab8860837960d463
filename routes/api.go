package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/ashishpimple94/boultindia-api/auth"
	bannerControllers "github.com/ashishpimple94/boultindia-api/controllers/banner"
	cartControllers "github.com/ashishpimple94/boultindia-api/controllers/cart"
	enquiryControllers "github.com/ashishpimple94/boultindia-api/controllers/enquiry"
	orderControllers "github.com/ashishpimple94/boultindia-api/controllers/order"
	paymentControllers "github.com/ashishpimple94/boultindia-api/controllers/payment"
	productControllers "github.com/ashishpimple94/boultindia-api/controllers/product"
	reviewControllers "github.com/ashishpimple94/boultindia-api/controllers/review"
	"github.com/ashishpimple94/boultindia-api/middleware"
)

func SetupAuthRoutes(r *gin.Engine, deps Deps) {
	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/register", auth.Register(deps.DB))
		authGroup.POST("/login", auth.Login(deps.DB))
		authGroup.GET("/me", middleware.ValidateToken, auth.Me(deps.DB))
	}
}

// SetupCartRoutes registers the session cart. The slot key comes from the
// JWT when signed in, the X-Session-ID header otherwise.
func SetupCartRoutes(r *gin.Engine, deps Deps) {
	cartGroup := r.Group("/api/cart")
	cartGroup.Use(middleware.SessionKey)
	{
		cartGroup.GET("/", cartControllers.GetCart(deps.CartStore))
		cartGroup.POST("/", cartControllers.AddItem(deps.DB, deps.CartStore))
		cartGroup.PUT("/", cartControllers.SetQuantity(deps.CartStore))
		cartGroup.DELETE("/:product_id", cartControllers.RemoveItem(deps.CartStore))
		cartGroup.DELETE("/", cartControllers.ClearCart(deps.CartStore))
	}
}

func SetupCatalogRoutes(r *gin.Engine, deps Deps) {
	r.GET("/api/products", productControllers.GetProducts(deps.DB))
	r.GET("/api/products/:id", productControllers.GetProductByID(deps.DB))

	r.GET("/api/reviews/:productID", reviewControllers.GetReviews(deps.DB))
	r.POST("/api/reviews", reviewControllers.SubmitReview(deps.DB))

	r.GET("/api/banners/active", bannerControllers.GetActiveBanners(deps.DB))

	r.POST("/api/enquiries", enquiryControllers.SubmitEnquiry(deps.DB))
	r.POST("/api/contact", enquiryControllers.SubmitContact(deps.DB))
}

func SetupOrderRoutes(r *gin.Engine, deps Deps) {
	r.POST("/api/save-order", orderControllers.SaveOrderHandler(deps.Checkout))
	r.GET("/api/orders", orderControllers.GetAllOrdersHandler(deps.DB))
	r.GET("/api/orders/ws", orderControllers.OrderWebSocketHandler)
	r.GET("/api/orders/:orderID", orderControllers.GetOrderByIDHandler(deps.DB))
	r.PUT("/api/update-order", orderControllers.UpdateOrderHandler(deps.DB, deps.Publisher))
}

func SetupPaymentRoutes(r *gin.Engine, deps Deps) {
	r.POST("/api/razorpay/create-order", paymentControllers.CreateOrderHandler(deps.Checkout))
	r.POST("/api/razorpay/verify-payment", paymentControllers.VerifyPaymentHandler(deps.Checkout))
}

// SetupAdminRoutes registers the back-office endpoints, API-key gated.
func SetupAdminRoutes(r *gin.Engine, deps Deps) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateAPIKey)
	{
		adminGroup.PUT("/orders/:orderID/status", orderControllers.AdminUpdateOrderHandler(deps.DB, deps.Publisher))
		adminGroup.GET("/orders/export", orderControllers.ExportOrdersToExcel(deps.DB))

		adminGroup.POST("/products", productControllers.CreateProduct(deps.DB))
		adminGroup.PUT("/products/:id", productControllers.UpdateProduct(deps.DB))
		adminGroup.DELETE("/products/:id", productControllers.DeleteProduct(deps.DB))

		adminGroup.POST("/banners", bannerControllers.UploadBanner(deps.DB))
		adminGroup.DELETE("/banners/:id", bannerControllers.DeleteBanner(deps.DB))

		adminGroup.GET("/enquiries", enquiryControllers.GetEnquiries(deps.DB))
		adminGroup.GET("/contact-messages", enquiryControllers.GetContactMessages(deps.DB))
	}
}
