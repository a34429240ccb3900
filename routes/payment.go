package routes

import (
	"github.com/gin-gonic/gin"
	paymentControllers "github.com/mohamedkhalil99/ecommerce-api/controllers/payment"
	"github.com/mohamedkhalil99/ecommerce-api/mail"
	"gorm.io/gorm"
)

func SetupPaymentRoutes(r *gin.Engine, db *gorm.DB, mailer mail.Mailer) {
	// Unauthenticated except for the provider signature checked inside the
	// handler against the webhook secret.
	r.POST("/webhook", paymentControllers.WebhookHandler(db, mailer))
}
