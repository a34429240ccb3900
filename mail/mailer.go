package mail

import (
	"fmt"
	"os"
	"strconv"

	"github.com/mohamedkhalil99/ecommerce-api/models"
	"gopkg.in/gomail.v2"
)

// OrderConfirmation carries everything the confirmation email shows.
type OrderConfirmation struct {
	OrderID        uint
	CustomerName   string
	CustomerEmail  string
	Address        models.OrderAddress
	Tax            float64
	ShippingFees   float64
	CashOnDelivery float64
	TotalPrice     float64
}

type Mailer interface {
	SendOrderConfirmation(oc OrderConfirmation) error
}

// SMTPMailer delivers order confirmations over SMTP.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailerFromEnv builds a mailer from SMTP_HOST, SMTP_PORT,
// EMAIL_USERNAME and EMAIL_PASSWORD. Returns nil when SMTP is not configured;
// callers treat a nil mailer as "skip email".
func NewSMTPMailerFromEnv() *SMTPMailer {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		return nil
	}
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		port = 587
	}
	username := os.Getenv("EMAIL_USERNAME")
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, username, os.Getenv("EMAIL_PASSWORD")),
		from:   fmt.Sprintf("E-Commerce <%s>", username),
	}
}

func (m *SMTPMailer) SendOrderConfirmation(oc OrderConfirmation) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", oc.CustomerEmail)
	msg.SetHeader("Subject", "E-Commerce | Order Confirmation")
	msg.SetBody("text/html", confirmationHTML(oc))
	return m.dialer.DialAndSend(msg)
}

func confirmationHTML(oc OrderConfirmation) string {
	return fmt.Sprintf(`
	<div style="font-family: Arial, sans-serif; color: #333; max-width: 600px; margin: auto; padding: 20px; border: 1px solid #ddd; border-radius: 8px;">
	  <h1 style="color: #007bff; text-align: center;">Order Confirmation</h1>
	  <p>Dear <strong>%s</strong>,</p>
	  <p>Thank you for your order! We have received your order and are currently processing it.</p>

	  <div style="background: #f9f9f9; padding: 15px; border-radius: 5px;">
	    <p><strong>Order Number:</strong> %d</p>
	    <p><strong>Shipping Address:</strong> %s, %s, %s</p>
	    <p><strong>Tax:</strong> EGP %g</p>
	    <p><strong>Shipping Fees:</strong> EGP %g</p>
	    <p><strong>Cash On Delivery Fees:</strong> EGP %g</p>
	    <p><strong>Total Price:</strong> EGP %g</p>
	  </div>

	  <p style="text-align: center; margin-top: 20px;">We appreciate your trust in us and look forward to serving you again.</p>
	  <p style="text-align: center; font-size: 14px; color: #666;">If you have any questions, please contact our support team.</p>
	</div>`,
		oc.CustomerName, oc.OrderID,
		oc.Address.AddressDetails, oc.Address.District, oc.Address.City,
		oc.Tax, oc.ShippingFees, oc.CashOnDelivery, oc.TotalPrice)
}
