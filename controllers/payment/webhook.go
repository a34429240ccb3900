package paymentControllers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	orderControllers "github.com/mohamedkhalil99/ecommerce-api/controllers/order"
	"github.com/mohamedkhalil99/ecommerce-api/mail"
	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
	"gorm.io/gorm"
)

const maxWebhookBody = 65536

// WebhookHandler receives Stripe events. The provider can only react to an
// error by retrying blindly, so after signature verification every outcome is
// answered with HTTP 200; processing failures are logged and reported in the
// body as a structured {status:400} value.
func WebhookHandler(db *gorm.DB, mailer mail.Mailer) gin.HandlerFunc {
	endpointSecret := os.Getenv("STRIPE_WEBHOOK_SECRET")
	return func(c *gin.Context) {
		payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
		if err != nil {
			c.JSON(http.StatusOK, gin.H{"status": 400, "error": "failed to read payload"})
			return
		}

		event, err := webhook.ConstructEvent(payload, c.GetHeader("Stripe-Signature"), endpointSecret)
		if err != nil {
			logrus.WithError(err).Warn("webhook signature verification failed")
			c.JSON(http.StatusOK, gin.H{"status": 400, "error": "Webhook signature verification failed"})
			return
		}

		if event.Type != "checkout.session.completed" {
			c.JSON(http.StatusOK, gin.H{"status": 200, "message": "event ignored"})
			return
		}

		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			logrus.WithError(err).Error("webhook: malformed session object")
			c.JSON(http.StatusOK, gin.H{"status": 400, "message": "Failed to create order", "error": "malformed session object"})
			return
		}

		order, err := orderControllers.ReconcilePayment(db, session.ClientReferenceID, session.ID, time.Unix(session.Created, 0))
		if err != nil {
			if errors.Is(err, orderControllers.ErrSessionAlreadyProcessed) {
				logrus.WithFields(logrus.Fields{
					"session_id": session.ID,
					"order_id":   order.ID,
				}).Info("webhook: session already processed, skipping")
				c.JSON(http.StatusOK, gin.H{"status": 200, "message": "session already processed"})
				return
			}
			logrus.WithFields(logrus.Fields{
				"session_id": session.ID,
				"user_id":    session.ClientReferenceID,
			}).WithError(err).Error("webhook: failed to create order")
			c.JSON(http.StatusOK, gin.H{"status": 400, "message": "Failed to create order", "error": err.Error()})
			return
		}

		orderControllers.SendOrderConfirmation(db, mailer, order)

		logrus.WithFields(logrus.Fields{
			"session_id": session.ID,
			"order_id":   order.ID,
			"user_id":    order.UserID,
		}).Info("webhook: order created")
		c.JSON(http.StatusOK, gin.H{"status": 201, "message": "Order Created successfully", "data": order})
	}
}
