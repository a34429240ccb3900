package routes

import (
	"github.com/gin-gonic/gin"
	cartControllers "github.com/mohamedkhalil99/ecommerce-api/controllers/cart"
	productcontroller "github.com/mohamedkhalil99/ecommerce-api/controllers/product"
	userControllers "github.com/mohamedkhalil99/ecommerce-api/controllers/user"
	"github.com/mohamedkhalil99/ecommerce-api/middleware"
	"gorm.io/gorm"
)

// SetupUserRoutes registers the JWT-protected user endpoints plus the public
// catalog reads.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB) {
	// Public catalog
	r.GET("/products", productcontroller.GetProducts(db))
	r.GET("/products/:id", productcontroller.GetProductByID(db))

	userGroup := r.Group("/user")
	userGroup.Use(middleware.ValidateToken)
	{
		userGroup.GET("/", userControllers.GetUser(db))
		userGroup.PUT("/", userControllers.UpdateUser(db))
		userGroup.POST("/address", userControllers.AddAddress(db))
		userGroup.DELETE("/address/:id", userControllers.RemoveAddress(db))
	}

	cartGroup := r.Group("/cart")
	cartGroup.Use(middleware.ValidateToken)
	{
		cartGroup.GET("/", cartControllers.GetUserCart(db))
		cartGroup.POST("/coupon/:name", cartControllers.ApplyCoupon(db))
		cartGroup.POST("/:productId", cartControllers.AddToCart(db))
		cartGroup.PATCH("/:productId", cartControllers.UpdateCartItem(db))
		cartGroup.DELETE("/:productId", cartControllers.RemoveCartItem(db))
	}
}
