package couponControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mohamedkhalil99/ecommerce-api/models"
	"gorm.io/gorm"
)

type CreateCouponRequest struct {
	Name       string    `json:"name" binding:"required,min=3,max=20"`
	ExpireDate time.Time `json:"expireDate" binding:"required"`
	Discount   float64   `json:"discount" binding:"required,gt=0"`
}

type UpdateCouponRequest struct {
	Name       *string    `json:"name" binding:"omitempty,min=3,max=20"`
	ExpireDate *time.Time `json:"expireDate"`
	Discount   *float64   `json:"discount" binding:"omitempty,gt=0"`
}

// POST /coupon (admin)
func CreateCoupon(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateCouponRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": 400, "error": err.Error()})
			return
		}

		var existing models.Coupon
		if err := db.Where("name = ?", req.Name).First(&existing).Error; err == nil {
			c.JSON(http.StatusConflict, gin.H{"status": 409, "error": "Coupon already exists"})
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"status": 500, "error": "Failed to check coupon"})
			return
		}

		if !req.ExpireDate.After(time.Now()) {
			c.JSON(http.StatusConflict, gin.H{"status": 409, "error": "Coupon expire date must be a future date"})
			return
		}

		coupon := models.Coupon{
			Name:       req.Name,
			ExpireDate: req.ExpireDate,
			Discount:   req.Discount,
		}
		if err := db.Create(&coupon).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": 500, "error": "Failed to create coupon"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"status": 201, "message": "Coupon created successfully", "data": coupon})
	}
}

// GET /coupon (admin)
func GetAllCoupons(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var coupons []models.Coupon
		if err := db.Preload("UsedBy").Find(&coupons).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": 500, "error": "Failed to fetch coupons"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": 200, "length": len(coupons), "data": coupons})
	}
}

// GET /coupon/:id (admin)
func GetCouponByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var coupon models.Coupon
		if err := db.Preload("UsedBy").First(&coupon, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"status": 404, "error": "Coupon not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"status": 500, "error": "Failed to fetch coupon"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": 200, "data": coupon})
	}
}

// PATCH /coupon/:id (admin)
func UpdateCoupon(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var coupon models.Coupon
		if err := db.First(&coupon, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"status": 404, "error": "Coupon not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"status": 500, "error": "Failed to fetch coupon"})
			return
		}

		var req UpdateCouponRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": 400, "error": err.Error()})
			return
		}

		if req.Name != nil {
			coupon.Name = *req.Name
		}
		if req.ExpireDate != nil {
			coupon.ExpireDate = *req.ExpireDate
		}
		if req.Discount != nil {
			coupon.Discount = *req.Discount
		}
		if err := db.Save(&coupon).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": 500, "error": "Failed to update coupon"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": 200, "message": "Coupon updated successfully", "data": coupon})
	}
}

// DELETE /coupon/:id (admin)
func DeleteCoupon(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := db.Delete(&models.Coupon{}, "id = ?", c.Param("id"))
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": 500, "error": "Failed to delete coupon"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"status": 404, "error": "Coupon not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": 200, "message": "Coupon deleted successfully"})
	}
}
