package routes

import (
	"github.com/gin-gonic/gin"
	orderControllers "github.com/mohamedkhalil99/ecommerce-api/controllers/order"
	"github.com/mohamedkhalil99/ecommerce-api/mail"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry-point that wires up all route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, gateway orderControllers.Gateway, mailer mail.Mailer) {
	// User routes (JWT-protected) + public catalog reads
	SetupUserRoutes(r, db)

	// Checkout and order routes
	SetupOrderRoutes(r, db, gateway, mailer)

	// Payment provider webhook
	SetupPaymentRoutes(r, db, mailer)

	// Admin routes (API-key-protected)
	SetupAdminRoutes(r, db)
}
