package models

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID                 uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Title              string  `gorm:"not null" json:"title"`
	Description        string  `json:"description"`
	CoverImage         string  `json:"coverImage"`
	Price              float64 `gorm:"not null" json:"price"`
	PriceAfterDiscount float64 `json:"priceAfterDiscount"` // 0 means no discount
	Stock              int     `json:"stock"`
	Sold               int     `json:"sold"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

// UnitPrice is the price a cart line pays per unit.
func (p *Product) UnitPrice() float64 {
	if p.PriceAfterDiscount > 0 {
		return p.PriceAfterDiscount
	}
	return p.Price
}
