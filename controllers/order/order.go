package orderControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mohamedkhalil99/ecommerce-api/models"
	"gorm.io/gorm"
)

type DeliveryConfirmationRequest struct {
	IsDeliverd *bool `json:"isDeliverd"`
}

// PATCH /order/admin/deliveryConfirmation/:orderId (admin)
//
// Delivery is a one-way transition. Cash orders are only paid at the moment
// of physical delivery, so they get paid and delivered together with the same
// timestamp; card orders were already paid by the webhook.
func UpdateDeliveryHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var order models.Order
		if err := db.Preload("Items").First(&order, "id = ?", c.Param("orderId")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"status": 404, "error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"status": 500, "error": "Failed to fetch order"})
			return
		}

		if order.IsDeliverd {
			c.JSON(http.StatusConflict, gin.H{"status": 409, "error": "Order already Delivered"})
			return
		}

		var req DeliveryConfirmationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": 400, "error": err.Error()})
			return
		}
		if req.IsDeliverd == nil || !*req.IsDeliverd {
			c.JSON(http.StatusConflict, gin.H{"status": 409, "error": "You must confirm delivery"})
			return
		}

		now := time.Now()
		order.IsDeliverd = true
		order.DeliverdAt = &now
		if order.PaymentMethod == models.PaymentMethodCash {
			order.IsPaid = true
			order.PaidAt = &now
		}
		if err := db.Save(&order).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": 500, "error": "Failed to update order"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": 200, "message": "Order Delivered successfully", "data": order})
	}
}

// GET /order/admin (admin)
func GetAllOrdersByAdmin(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.Preload("Items").Order("created_at DESC").Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": 500, "error": "Failed to fetch orders"})
			return
		}
		if len(orders) == 0 {
			c.JSON(http.StatusNotFound, gin.H{"status": 404, "error": "No Orders found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": 200, "length": len(orders), "data": orders})
	}
}

// GET /order/admin/:userId (admin)
func GetUserOrdersByAdmin(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("userId")

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"status": 404, "error": "User not found"})
			return
		}

		var orders []models.Order
		if err := db.Preload("Items").Where("user_id = ?", userID).Order("created_at DESC").Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": 500, "error": "Failed to fetch orders"})
			return
		}
		if len(orders) == 0 {
			c.JSON(http.StatusNotFound, gin.H{"status": 404, "error": "No Orders found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": 200, "length": len(orders), "data": orders})
	}
}

// GET /order/user
func GetUserOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var orders []models.Order
		if err := db.Preload("Items").Where("user_id = ?", userID).Order("created_at DESC").Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": 500, "error": "Failed to fetch orders"})
			return
		}
		if len(orders) == 0 {
			c.JSON(http.StatusNotFound, gin.H{"status": 404, "error": "No Orders found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": 200, "length": len(orders), "data": orders})
	}
}
