package productcontroller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mohamedkhalil99/ecommerce-api/models"
	"gorm.io/gorm"
)

type UpdateProductRequest struct {
	Title              *string  `json:"title"`
	Description        *string  `json:"description"`
	CoverImage         *string  `json:"coverImage"`
	Price              *float64 `json:"price" binding:"omitempty,gt=0"`
	PriceAfterDiscount *float64 `json:"priceAfterDiscount" binding:"omitempty,min=0"`
	Stock              *int     `json:"stock" binding:"omitempty,min=0"`
}

// UpdateProduct updates product fields (admin). Only fields present in the
// body are touched.
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if err := db.First(&product, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"status": 404, "error": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"status": 500, "error": "Failed to fetch product"})
			return
		}

		var req UpdateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": 400, "error": err.Error()})
			return
		}

		if req.Title != nil {
			product.Title = *req.Title
		}
		if req.Description != nil {
			product.Description = *req.Description
		}
		if req.CoverImage != nil {
			product.CoverImage = *req.CoverImage
		}
		if req.Price != nil {
			product.Price = *req.Price
		}
		if req.PriceAfterDiscount != nil {
			product.PriceAfterDiscount = *req.PriceAfterDiscount
		}
		if req.Stock != nil {
			product.Stock = *req.Stock
		}

		if err := db.Save(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": 500, "error": "Failed to update product"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": 200, "message": "Product updated successfully", "data": product})
	}
}
