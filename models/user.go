package models

import "time"

type User struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"unique;not null" json:"email"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Role      string    `gorm:"default:user" json:"role"`
	Addresses []Address `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"address"`
	Orders    []Order   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"orders,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Address rows form the user's saved address book. Checkout uses the first
// saved address and copies it onto the order.
type Address struct {
	ID             uint   `gorm:"primaryKey" json:"-"`
	UserID         string `gorm:"index" json:"-"`
	Name           string `json:"name"`
	AddressDetails string `json:"addressDetails"`
	District       string `json:"district"`
	City           string `json:"city"`
	Phone          string `json:"phone"`
}
