package userControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mohamedkhalil99/ecommerce-api/models"
	"gorm.io/gorm"
)

type AddressInput struct {
	Name           string `json:"name" binding:"required"`
	AddressDetails string `json:"addressDetails" binding:"required"`
	District       string `json:"district" binding:"required"`
	City           string `json:"city" binding:"required"`
	Phone          string `json:"phone" binding:"required"`
}

// POST /user/address
func AddAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var input AddressInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": 400, "error": err.Error()})
			return
		}

		address := models.Address{
			UserID:         userID,
			Name:           input.Name,
			AddressDetails: input.AddressDetails,
			District:       input.District,
			City:           input.City,
			Phone:          input.Phone,
		}
		if err := db.Create(&address).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": 500, "error": "Failed to add address"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"status": 201, "message": "Address added successfully", "data": address})
	}
}

// DELETE /user/address/:id
func RemoveAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		result := db.Where("user_id = ? AND id = ?", userID, c.Param("id")).Delete(&models.Address{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": 500, "error": "Failed to delete address"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"status": 404, "error": "Address not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": 200, "message": "Address deleted successfully"})
	}
}
