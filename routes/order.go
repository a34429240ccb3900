package routes

import (
	"github.com/gin-gonic/gin"
	orderControllers "github.com/mohamedkhalil99/ecommerce-api/controllers/order"
	"github.com/mohamedkhalil99/ecommerce-api/mail"
	"github.com/mohamedkhalil99/ecommerce-api/middleware"
	"gorm.io/gorm"
)

func SetupOrderRoutes(r *gin.Engine, db *gorm.DB, gateway orderControllers.Gateway, mailer mail.Mailer) {
	// Checkout: cash finalizes immediately, card opens a payment session
	r.POST("/checkout/:paymentMethod", middleware.ValidateToken, orderControllers.CheckoutHandler(db, gateway, mailer))

	orders := r.Group("/order")
	{
		// User's own orders
		orders.GET("/user", middleware.ValidateToken, orderControllers.GetUserOrders(db))

		admin := orders.Group("/admin")
		admin.Use(middleware.ValidateAPIKey)
		{
			admin.GET("", orderControllers.GetAllOrdersByAdmin(db))
			admin.GET("/export", orderControllers.ExportOrdersToExcel(db))
			admin.GET("/ws", orderControllers.OrderWebSocketHandler)
			admin.GET("/:userId", orderControllers.GetUserOrdersByAdmin(db))

			// One-way delivery transition
			admin.PATCH("/deliveryConfirmation/:orderId", orderControllers.UpdateDeliveryHandler(db))
		}
	}
}
