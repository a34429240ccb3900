package models

import "time"

type Cart struct {
	CartID                  uint         `gorm:"primaryKey" json:"id"`
	UserID                  string       `gorm:"uniqueIndex" json:"user"` // Enforces ONE cart per user
	Items                   []CartItem   `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"cartItems"`
	Coupons                 []CartCoupon `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"coupon"`
	TotalPrice              float64      `json:"totalPrice"`
	TotalPriceAfterDiscount float64      `json:"totalPriceAfterDiscount"`
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

type CartItem struct {
	ID        uint   `gorm:"primaryKey" json:"-"`
	CartID    uint   `gorm:"index" json:"-"`
	ProductID uint   `json:"productId"`
	Quantity  int    `json:"quantity"`
	Color     string `json:"color"`
	AddedAt   time.Time
}

// CartCoupon records a coupon applied to a cart. Business rule keeps this to
// at most one row per cart.
type CartCoupon struct {
	ID       uint   `gorm:"primaryKey" json:"-"`
	CartID   uint   `gorm:"index" json:"-"`
	CouponID uint   `json:"couponId"`
	Name     string `json:"name"`
}
