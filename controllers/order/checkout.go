package orderControllers

import (
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	taxControllers "github.com/mohamedkhalil99/ecommerce-api/controllers/tax"
	"github.com/mohamedkhalil99/ecommerce-api/mail"
	"github.com/mohamedkhalil99/ecommerce-api/models"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Error messages double as the API responses, matching the original service.
var (
	ErrInvalidPaymentMethod    = errors.New("You must choose whether to pay by cash or card")
	ErrCartEmpty               = errors.New("Your shopping Cart looks empty")
	ErrNoShippingAddress       = errors.New("You must add a shipping address")
	ErrInsufficientStock       = errors.New("insufficient stock for product")
	ErrSessionAlreadyProcessed = errors.New("payment session already processed")
)

type ShippingAddressInput struct {
	Name           string `json:"name" binding:"required"`
	AddressDetails string `json:"addressDetails" binding:"required"`
	District       string `json:"district" binding:"required"`
	City           string `json:"city" binding:"required"`
	Phone          string `json:"phone" binding:"required"`
}

type CheckoutRequest struct {
	ShippingAddress *ShippingAddressInput `json:"shippingAddress"`
}

// Draft is the computed but not yet persisted order.
type Draft struct {
	User            models.User
	CartID          uint
	CartItems       []models.CartItem
	Items           []models.OrderItem
	Tax             float64
	ShippingFees    float64
	CashOnDelivery  float64
	OrderTotalPrice float64
	PaymentMethod   models.PaymentMethod
	Address         models.OrderAddress
}

// SessionRequest is what the order core hands a payment gateway to open a
// hosted checkout session.
type SessionRequest struct {
	UserID          string
	CustomerEmail   string
	OrderTotalPrice float64
	ShippingFees    float64
	Tax             float64
	ShippingAddress models.OrderAddress
}

type Session struct {
	ID              string
	URL             string
	OrderTotalPrice float64
	SuccessURL      string
	CancelURL       string
	CreatedAt       time.Time
	ExpiresAt       time.Time
}

// Gateway opens hosted payment sessions for card checkouts.
type Gateway interface {
	CreateCheckoutSession(req SessionRequest) (*Session, error)
}

// ResolveShippingAddress picks the address a checkout ships to. The first
// saved address always wins; a request-supplied address is only used (and
// saved onto the profile) when the user has none on file.
func ResolveShippingAddress(db *gorm.DB, user *models.User, reqAddr *ShippingAddressInput) (models.OrderAddress, error) {
	if len(user.Addresses) > 0 {
		first := user.Addresses[0]
		return models.OrderAddress{
			Name:           first.Name,
			AddressDetails: first.AddressDetails,
			District:       first.District,
			City:           first.City,
			Phone:          first.Phone,
		}, nil
	}
	if reqAddr == nil {
		return models.OrderAddress{}, ErrNoShippingAddress
	}

	saved := models.Address{
		UserID:         user.ID,
		Name:           reqAddr.Name,
		AddressDetails: reqAddr.AddressDetails,
		District:       reqAddr.District,
		City:           reqAddr.City,
		Phone:          reqAddr.Phone,
	}
	if err := db.Create(&saved).Error; err != nil {
		return models.OrderAddress{}, err
	}
	user.Addresses = append(user.Addresses, saved)

	return models.OrderAddress{
		Name:           saved.Name,
		AddressDetails: saved.AddressDetails,
		District:       saved.District,
		City:           saved.City,
		Phone:          saved.Phone,
	}, nil
}

// round1 rounds to one decimal place, the precision taxes are reported in.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// BuildDraft assembles the order fields from the user's current cart, the
// tax/fee record and the resolved shipping address. Tax is back-calculated
// out of the displayed total, not added on top.
func BuildDraft(db *gorm.DB, userID string, method models.PaymentMethod, reqAddr *ShippingAddressInput) (*Draft, error) {
	if !method.Valid() {
		return nil, ErrInvalidPaymentMethod
	}

	var cart models.Cart
	if err := db.Preload("Items").Where("user_id = ?", userID).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartEmpty
		}
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, ErrCartEmpty
	}

	taxes, err := taxControllers.Current(db)
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := db.Preload("Addresses").First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}

	address, err := ResolveShippingAddress(db, &user, reqAddr)
	if err != nil {
		return nil, err
	}

	items := make([]models.OrderItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		var product models.Product
		if err := db.First(&product, "id = ?", item.ProductID).Error; err != nil {
			return nil, err
		}
		items = append(items, models.OrderItem{
			ProductID: item.ProductID,
			Title:     product.Title,
			UnitPrice: product.UnitPrice(),
			Quantity:  item.Quantity,
			Color:     item.Color,
		})
	}

	return &Draft{
		User:            user,
		CartID:          cart.CartID,
		CartItems:       cart.Items,
		Items:           items,
		Tax:             round1(cart.TotalPrice * taxes.Tax / (100 + taxes.Tax)),
		ShippingFees:    taxes.ShippingFees,
		CashOnDelivery:  taxes.CashOnDelivery,
		OrderTotalPrice: cart.TotalPriceAfterDiscount,
		PaymentMethod:   method,
		Address:         address,
	}, nil
}

type FinalizeOptions struct {
	IsPaid    bool
	PaidAt    *time.Time
	SessionID *string
}

// Finalize persists the order, moves stock to sold and deletes the cart, all
// in one transaction. Stock is decremented with a conditional update
// (stock >= qty) so concurrent checkouts cannot oversell a product.
func Finalize(db *gorm.DB, draft *Draft, opts FinalizeOptions) (*models.Order, error) {
	order := &models.Order{
		UserID:           draft.User.ID,
		Items:            draft.Items,
		Tax:              draft.Tax,
		ShippingFees:     draft.ShippingFees,
		CashOnDelivery:   draft.CashOnDelivery,
		OrderTotalPrice:  draft.OrderTotalPrice,
		PaymentMethod:    draft.PaymentMethod,
		IsPaid:           opts.IsPaid,
		PaidAt:           opts.PaidAt,
		PaymentSessionID: opts.SessionID,
		ShippingAddress:  draft.Address,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		for _, item := range draft.CartItems {
			result := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", item.ProductID, item.Quantity).
				UpdateColumns(map[string]interface{}{
					"stock": gorm.Expr("stock - ?", item.Quantity),
					"sold":  gorm.Expr("sold + ?", item.Quantity),
				})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return fmt.Errorf("%w %d", ErrInsufficientStock, item.ProductID)
			}
		}

		if err := tx.Create(order).Error; err != nil {
			return err
		}

		// Reset cart
		if err := tx.Where("cart_id = ?", draft.CartID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("cart_id = ?", draft.CartID).Delete(&models.CartCoupon{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Cart{}, "cart_id = ?", draft.CartID).Error
	})
	if err != nil {
		return nil, err
	}

	broadcastNewOrder(*order)
	return order, nil
}

// ReconcilePayment turns a verified payment-completion event into an order.
// The session id is checked first so a redelivered event cannot materialize a
// second order; the unique index on the column backs that check under races.
func ReconcilePayment(db *gorm.DB, userID, sessionID string, paidAt time.Time) (*models.Order, error) {
	var existing models.Order
	err := db.Where("payment_session_id = ?", sessionID).First(&existing).Error
	if err == nil {
		return &existing, ErrSessionAlreadyProcessed
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	draft, err := BuildDraft(db, userID, models.PaymentMethodCard, nil)
	if err != nil {
		return nil, err
	}
	draft.CashOnDelivery = 0
	draft.OrderTotalPrice += draft.ShippingFees

	return Finalize(db, draft, FinalizeOptions{
		IsPaid:    true,
		PaidAt:    &paidAt,
		SessionID: &sessionID,
	})
}

// SendOrderConfirmation emails the order summary to its owner. Mail failures
// are logged, never surfaced: the order is already placed.
func SendOrderConfirmation(db *gorm.DB, mailer mail.Mailer, order *models.Order) {
	if mailer == nil {
		return
	}
	var user models.User
	if err := db.First(&user, "id = ?", order.UserID).Error; err != nil {
		logrus.WithField("order_id", order.ID).WithError(err).Error("confirmation mail: user lookup failed")
		return
	}
	err := mailer.SendOrderConfirmation(mail.OrderConfirmation{
		OrderID:        order.ID,
		CustomerName:   user.Name,
		CustomerEmail:  user.Email,
		Address:        order.ShippingAddress,
		Tax:            order.Tax,
		ShippingFees:   order.ShippingFees,
		CashOnDelivery: order.CashOnDelivery,
		TotalPrice:     order.OrderTotalPrice,
	})
	if err != nil {
		logrus.WithField("order_id", order.ID).WithError(err).Error("failed to send confirmation mail")
	}
}

// POST /checkout/:paymentMethod
func CheckoutHandler(db *gorm.DB, gateway Gateway, mailer mail.Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		method := models.PaymentMethod(c.Param("paymentMethod"))

		// Body is optional: it only carries a first-checkout address.
		var req CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			c.JSON(http.StatusBadRequest, gin.H{"status": 400, "error": err.Error()})
			return
		}

		draft, err := BuildDraft(db, userID, method, req.ShippingAddress)
		if err != nil {
			respondCheckoutError(c, err)
			return
		}

		if method == models.PaymentMethodCash {
			draft.OrderTotalPrice += draft.ShippingFees + draft.CashOnDelivery
			order, err := Finalize(db, draft, FinalizeOptions{})
			if err != nil {
				respondCheckoutError(c, err)
				return
			}
			SendOrderConfirmation(db, mailer, order)
			c.JSON(http.StatusCreated, gin.H{"status": 201, "message": "Order Created successfully", "data": order})
			return
		}

		// Card: money is requested before the order exists. The order is only
		// materialized by the webhook once the provider confirms payment. The
		// session carries two line items (base total, shipping fee), so the
		// base total goes over as-is and the provider sums them.
		session, err := gateway.CreateCheckoutSession(SessionRequest{
			UserID:          userID,
			CustomerEmail:   draft.User.Email,
			OrderTotalPrice: draft.OrderTotalPrice,
			ShippingFees:    draft.ShippingFees,
			Tax:             draft.Tax,
			ShippingAddress: draft.Address,
		})
		if err != nil {
			logrus.WithField("user_id", userID).WithError(err).Error("failed to create payment session")
			c.JSON(http.StatusBadGateway, gin.H{"status": 502, "error": "Failed to create payment session"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"status": 201, "data": gin.H{
			"url":             session.URL,
			"sessionId":       session.ID,
			"orderTotalPrice": session.OrderTotalPrice,
			"success_url":     fmt.Sprintf("%s?session_id=%s", session.SuccessURL, session.ID),
			"cancel_url":      session.CancelURL,
			"createdAt":       session.CreatedAt,
			"expires_at":      session.ExpiresAt,
		}})
	}
}

func respondCheckoutError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidPaymentMethod),
		errors.Is(err, ErrCartEmpty),
		errors.Is(err, ErrNoShippingAddress):
		c.JSON(http.StatusNotFound, gin.H{"status": 404, "error": err.Error()})
	case errors.Is(err, ErrInsufficientStock):
		c.JSON(http.StatusConflict, gin.H{"status": 409, "error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"status": 500, "error": "Failed to create order"})
	}
}
