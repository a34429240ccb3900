package cartControllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mohamedkhalil99/ecommerce-api/models"
	"gorm.io/gorm"
)

// POST /cart/coupon/:name
//
// A cart holds at most one coupon, a coupon is single-use per user, and an
// expired coupon can never be applied.
func ApplyCoupon(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		couponName := c.Param("name")

		var coupon models.Coupon
		if err := db.Where("name = ?", couponName).First(&coupon).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"status": 404, "error": "Invalid Coupon"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"status": 500, "error": "Failed to fetch coupon"})
			return
		}

		cart, err := loadCart(db, userID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"status": 404, "error": "Your shopping Cart looks empty"})
			return
		}

		if coupon.ExpireDate.Before(time.Now()) {
			c.JSON(http.StatusConflict, gin.H{"status": 409, "error": "Coupon expired"})
			return
		}
		for _, applied := range cart.Coupons {
			if applied.Name == couponName {
				c.JSON(http.StatusConflict, gin.H{"status": 409, "error": "Coupon already exists in cart"})
				return
			}
		}
		if len(cart.Coupons) > 0 {
			c.JSON(http.StatusConflict, gin.H{"status": 409, "error": "You have a coupon already applied, you cannot apply another coupon"})
			return
		}

		var redemption models.CouponRedemption
		err = db.Where("coupon_id = ? AND user_id = ?", coupon.ID, userID).First(&redemption).Error
		if err == nil {
			c.JSON(http.StatusConflict, gin.H{"status": 409, "error": "You have already used this coupon"})
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"status": 500, "error": "Failed to check coupon usage"})
			return
		}

		applied := models.CartCoupon{CartID: cart.CartID, CouponID: coupon.ID, Name: coupon.Name}
		if err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&models.CouponRedemption{
				CouponID:   coupon.ID,
				UserID:     userID,
				RedeemedAt: time.Now(),
			}).Error; err != nil {
				return err
			}
			return tx.Create(&applied).Error
		}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": 500, "error": "Failed to apply coupon"})
			return
		}
		cart.Coupons = append(cart.Coupons, applied)

		if err := recalcTotals(db, cart); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": 500, "error": "Failed to compute cart totals"})
			return
		}
		if err := db.Save(cart).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": 500, "error": "Failed to save cart"})
			return
		}

		msg := fmt.Sprintf("coupon applied successfully, you have discount of %gLE", coupon.Discount)
		c.JSON(http.StatusOK, gin.H{"status": 200, "message": msg, "data": cart})
	}
}
