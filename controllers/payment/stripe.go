package paymentControllers

import (
	"encoding/json"
	"math"
	"os"
	"strconv"
	"time"

	orderControllers "github.com/mohamedkhalil99/ecommerce-api/controllers/order"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
)

// StripeGateway opens Stripe hosted checkout sessions. It satisfies the
// order package's Gateway interface.
type StripeGateway struct {
	SuccessURL string
	CancelURL  string
	LogoURL    string
}

func NewStripeGatewayFromEnv() *StripeGateway {
	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")
	return &StripeGateway{
		SuccessURL: os.Getenv("STRIPE_SUCCESS_URL"),
		CancelURL:  os.Getenv("STRIPE_CANCEL_URL"),
		LogoURL:    os.Getenv("LOGO_URL"),
	}
}

// CreateCheckoutSession opens a session with two line items, the
// discount-adjusted order total and the shipping fee, both in the smallest
// currency unit. The user id and an address/tax snapshot ride along so the
// webhook can rebuild the order later.
func (g *StripeGateway) CreateCheckoutSession(req orderControllers.SessionRequest) (*orderControllers.Session, error) {
	addrJSON, err := json.Marshal(req.ShippingAddress)
	if err != nil {
		return nil, err
	}

	productData := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
		Name: stripe.String("E-Commerce"),
	}
	if g.LogoURL != "" {
		productData.Images = stripe.StringSlice([]string{g.LogoURL})
	}

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:         stripe.String(g.SuccessURL),
		CancelURL:          stripe.String(g.CancelURL),
		ClientReferenceID:  stripe.String(req.UserID),
		CustomerEmail:      stripe.String(req.CustomerEmail),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:    stripe.String("egp"),
					UnitAmount:  stripe.Int64(int64(math.Round(req.OrderTotalPrice * 100))),
					ProductData: productData,
				},
				Quantity: stripe.Int64(1),
			},
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String("egp"),
					UnitAmount: stripe.Int64(int64(math.Round(req.ShippingFees * 100))),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String("Shipping Fees"),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	params.AddMetadata("shippingAddress", string(addrJSON))
	params.AddMetadata("tax", strconv.FormatFloat(req.Tax, 'f', -1, 64))

	s, err := session.New(params)
	if err != nil {
		return nil, err
	}

	return &orderControllers.Session{
		ID:              s.ID,
		URL:             s.URL,
		OrderTotalPrice: float64(s.AmountTotal) / 100,
		SuccessURL:      s.SuccessURL,
		CancelURL:       s.CancelURL,
		CreatedAt:       time.Unix(s.Created, 0),
		ExpiresAt:       time.Unix(s.ExpiresAt, 0),
	}, nil
}
