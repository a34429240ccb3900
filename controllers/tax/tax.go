package taxControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mohamedkhalil99/ecommerce-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UpsertTaxRequest struct {
	Tax            float64 `json:"tax" binding:"min=0"`
	ShippingFees   float64 `json:"shippingFees" binding:"min=0"`
	CashOnDelivery float64 `json:"cashOnDelivery" binding:"min=0"`
}

// Current returns the global tax/fee record. A missing row means fees were
// never configured; callers get zero-valued defaults, not an error.
func Current(db *gorm.DB) (models.Tax, error) {
	var tax models.Tax
	if err := db.First(&tax, "id = ?", models.TaxSingletonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Tax{ID: models.TaxSingletonID}, nil
		}
		return models.Tax{}, err
	}
	return tax, nil
}

// PUT /tax (admin). Create-or-update against the fixed singleton row.
func UpsertTax(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpsertTaxRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": 400, "error": err.Error()})
			return
		}

		tax := models.Tax{
			ID:             models.TaxSingletonID,
			Tax:            req.Tax,
			ShippingFees:   req.ShippingFees,
			CashOnDelivery: req.CashOnDelivery,
		}
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).Create(&tax).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": 500, "error": "Failed to save tax record"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"status": 201, "message": "Tax Updated successfully", "data": tax})
	}
}

// GET /tax (admin)
func GetTax(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		tax, err := Current(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": 500, "error": "Failed to fetch tax record"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": 200, "data": tax})
	}
}
