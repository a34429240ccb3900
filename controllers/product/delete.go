package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mohamedkhalil99/ecommerce-api/models"
	"gorm.io/gorm"
)

// DeleteProduct soft-deletes a product (admin).
func DeleteProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := db.Delete(&models.Product{}, "id = ?", c.Param("id"))
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": 500, "error": "Failed to delete product"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"status": 404, "error": "Product not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": 200, "message": "Product deleted successfully"})
	}
}
