package models

import "time"

type Coupon struct {
	ID         uint               `gorm:"primaryKey" json:"id"`
	Name       string             `gorm:"uniqueIndex;not null" json:"name"`
	ExpireDate time.Time          `json:"expireDate"`
	Discount   float64            `gorm:"not null" json:"discount"`
	UsedBy     []CouponRedemption `gorm:"foreignKey:CouponID;constraint:OnDelete:CASCADE" json:"usedBy"`
	CreatedAt  time.Time          `json:"created_at"`
}

// CouponRedemption marks a coupon as used by a user; the unique index keeps
// redemption to once per user per coupon.
type CouponRedemption struct {
	ID         uint   `gorm:"primaryKey" json:"-"`
	CouponID   uint   `gorm:"index:idx_coupon_user,unique" json:"-"`
	UserID     string `gorm:"index:idx_coupon_user,unique" json:"user"`
	RedeemedAt time.Time
}
