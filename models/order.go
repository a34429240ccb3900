package models

import "time"

type PaymentMethod string

const (
	PaymentMethodCash PaymentMethod = "cash"
	PaymentMethodCard PaymentMethod = "card"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentMethodCash || m == PaymentMethodCard
}

type Order struct {
	ID              uint          `gorm:"primaryKey" json:"id"`
	UserID          string        `gorm:"index;not null" json:"user"`
	Items           []OrderItem   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"cartItems"`
	Tax             float64       `json:"tax"`
	ShippingFees    float64       `json:"shippingFees"`
	CashOnDelivery  float64       `json:"cashOnDelivery"`
	OrderTotalPrice float64       `json:"orderTotalPrice"`
	PaymentMethod   PaymentMethod `gorm:"type:varchar(10);not null" json:"paymentMethod"`
	IsPaid          bool          `json:"isPaid"`
	PaidAt          *time.Time    `json:"paidAt,omitempty"`
	IsDeliverd      bool          `json:"isDeliverd"` // spelling matches the public API
	DeliverdAt      *time.Time    `json:"deliverdAt,omitempty"`
	// PaymentSessionID carries the provider checkout-session id for card
	// orders. The unique index stops a redelivered webhook event from
	// materializing a second order for the same session. NULL for cash.
	PaymentSessionID *string      `gorm:"uniqueIndex" json:"-"`
	ShippingAddress  OrderAddress `gorm:"embedded;embeddedPrefix:ship_" json:"shippingAddress"`
	CreatedAt        time.Time    `json:"createdAt"`
}

// OrderItem is a checkout-time copy of a cart line. Later product or cart
// edits never reach a placed order.
type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"-"`
	OrderID   uint    `gorm:"index" json:"-"`
	ProductID uint    `json:"productId"`
	Title     string  `json:"title"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"quantity"`
	Color     string  `json:"color"`
}

// OrderAddress is the snapshot of the shipping address taken at checkout.
type OrderAddress struct {
	Name           string `json:"name"`
	AddressDetails string `json:"addressDetails"`
	District       string `json:"district"`
	City           string `json:"city"`
	Phone          string `json:"phone"`
}
