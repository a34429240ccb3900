package models

import "time"

// TaxSingletonID pins the tax/fee record to a single row; upserts target this
// primary key so a second row can never appear.
const TaxSingletonID uint = 1

type Tax struct {
	ID             uint    `gorm:"primaryKey" json:"-"`
	Tax            float64 `json:"tax"` // percentage, already included in displayed prices
	ShippingFees   float64 `json:"shippingFees"`
	CashOnDelivery float64 `json:"cashOnDelivery"`
	UpdatedAt      time.Time
}
