package routes

import (
	"github.com/gin-gonic/gin"
	cartControllers "github.com/mohamedkhalil99/ecommerce-api/controllers/cart"
	couponControllers "github.com/mohamedkhalil99/ecommerce-api/controllers/coupon"
	productcontroller "github.com/mohamedkhalil99/ecommerce-api/controllers/product"
	taxControllers "github.com/mohamedkhalil99/ecommerce-api/controllers/tax"
	userControllers "github.com/mohamedkhalil99/ecommerce-api/controllers/user"
	"github.com/mohamedkhalil99/ecommerce-api/middleware"
	"gorm.io/gorm"
)

// SetupAdminRoutes registers all API-key-protected admin endpoints.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB) {
	admin := r.Group("/")
	admin.Use(middleware.ValidateAPIKey)
	{
		// Catalog management
		admin.POST("/products", productcontroller.CreateProduct(db))
		admin.PUT("/products/:id", productcontroller.UpdateProduct(db))
		admin.DELETE("/products/:id", productcontroller.DeleteProduct(db))

		// Coupons
		admin.POST("/coupon", couponControllers.CreateCoupon(db))
		admin.GET("/coupon", couponControllers.GetAllCoupons(db))
		admin.GET("/coupon/:id", couponControllers.GetCouponByID(db))
		admin.PATCH("/coupon/:id", couponControllers.UpdateCoupon(db))
		admin.DELETE("/coupon/:id", couponControllers.DeleteCoupon(db))

		// Tax/fee singleton
		admin.PUT("/tax", taxControllers.UpsertTax(db))
		admin.GET("/tax", taxControllers.GetTax(db))

		// Users and carts
		admin.POST("/users", userControllers.CreateUser(db))
		admin.GET("/users", userControllers.GetAllUsers(db))
		admin.GET("/cart/admin", cartControllers.GetAllCartsByAdmin(db))
		admin.GET("/cart/admin/:userId", cartControllers.GetUserCartByAdmin(db))
	}
}
