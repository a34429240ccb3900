package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mohamedkhalil99/ecommerce-api/models"
	"gorm.io/gorm"
)

type CreateProductRequest struct {
	Title              string  `json:"title" binding:"required"`
	Description        string  `json:"description"`
	CoverImage         string  `json:"coverImage"`
	Price              float64 `json:"price" binding:"required,gt=0"`
	PriceAfterDiscount float64 `json:"priceAfterDiscount" binding:"omitempty,gt=0"`
	Stock              int     `json:"stock" binding:"min=0"`
}

// CreateProduct creates a new product (admin).
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": 400, "error": err.Error()})
			return
		}
		if req.PriceAfterDiscount > req.Price {
			c.JSON(http.StatusBadRequest, gin.H{"status": 400, "error": "priceAfterDiscount cannot exceed price"})
			return
		}

		product := models.Product{
			Title:              req.Title,
			Description:        req.Description,
			CoverImage:         req.CoverImage,
			Price:              req.Price,
			PriceAfterDiscount: req.PriceAfterDiscount,
			Stock:              req.Stock,
		}
		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": 500, "error": "Failed to create product"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"status": 201, "message": "Product created successfully", "data": product})
	}
}
