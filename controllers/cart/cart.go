package cartControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mohamedkhalil99/ecommerce-api/models"
	"gorm.io/gorm"
)

type CartItemInput struct {
	Quantity int    `json:"quantity" binding:"required,min=1"`
	Color    string `json:"color"`
}

type UpdateCartItemInput struct {
	Quantity *int    `json:"quantity" binding:"omitempty,min=1"`
	Color    *string `json:"color"`
}

// recalcTotals recomputes both denormalized cart totals from the live product
// prices and the applied coupon. TotalPriceAfterDiscount never goes negative.
func recalcTotals(db *gorm.DB, cart *models.Cart) error {
	var total float64
	for _, item := range cart.Items {
		var product models.Product
		if err := db.First(&product, "id = ?", item.ProductID).Error; err != nil {
			return err
		}
		total += product.UnitPrice() * float64(item.Quantity)
	}
	cart.TotalPrice = total

	var discount float64
	for _, applied := range cart.Coupons {
		var coupon models.Coupon
		if err := db.Where("name = ?", applied.Name).First(&coupon).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return err
		}
		discount += coupon.Discount
	}
	cart.TotalPriceAfterDiscount = cart.TotalPrice - discount
	if cart.TotalPriceAfterDiscount < 0 {
		cart.TotalPriceAfterDiscount = 0
	}
	return nil
}

func loadCart(db *gorm.DB, userID string) (*models.Cart, error) {
	var cart models.Cart
	err := db.Preload("Items").Preload("Coupons").Where("user_id = ?", userID).First(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func checkStock(product *models.Product, quantity int) (int, string) {
	if product.Stock <= 0 {
		return http.StatusNotFound, "Product out of stock"
	}
	if product.Stock < quantity {
		return http.StatusNotFound, "The stock of the Product is lower than your quantity"
	}
	return 0, ""
}

// POST /cart/:productId
func AddToCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var input CartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": 400, "error": err.Error()})
			return
		}

		var product models.Product
		if err := db.First(&product, "id = ?", c.Param("productId")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"status": 404, "error": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"status": 500, "error": "Failed to validate product"})
			return
		}
		if status, msg := checkStock(&product, input.Quantity); status != 0 {
			c.JSON(status, gin.H{"status": status, "error": msg})
			return
		}

		cart, err := loadCart(db, userID)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusInternalServerError, gin.H{"status": 500, "error": "Failed to fetch cart"})
				return
			}
			// First item creates the cart
			cart = &models.Cart{UserID: userID}
			if err := db.Create(cart).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"status": 500, "error": "Failed to create cart"})
				return
			}
		}

		// Same product again accumulates quantity
		var found bool
		for i := range cart.Items {
			if cart.Items[i].ProductID == product.ID {
				cart.Items[i].Quantity += input.Quantity
				cart.Items[i].AddedAt = time.Now()
				if err := db.Save(&cart.Items[i]).Error; err != nil {
					c.JSON(http.StatusInternalServerError, gin.H{"status": 500, "error": "Failed to update cart item"})
					return
				}
				found = true
				break
			}
		}
		if !found {
			item := models.CartItem{
				CartID:    cart.CartID,
				ProductID: product.ID,
				Quantity:  input.Quantity,
				Color:     input.Color,
				AddedAt:   time.Now(),
			}
			if err := db.Create(&item).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"status": 500, "error": "Failed to add item to cart"})
				return
			}
			cart.Items = append(cart.Items, item)
		}

		if err := recalcTotals(db, cart); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": 500, "error": "Failed to compute cart totals"})
			return
		}
		if err := db.Save(cart).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": 500, "error": "Failed to save cart"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"status": 201, "length": len(cart.Items), "message": "product added to cart successfully", "data": cart})
	}
}

// PATCH /cart/:productId
func UpdateCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var input UpdateCartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": 400, "error": err.Error()})
			return
		}

		var product models.Product
		if err := db.First(&product, "id = ?", c.Param("productId")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"status": 404, "error": "Product not found"})
			return
		}
		if input.Quantity != nil {
			if status, msg := checkStock(&product, *input.Quantity); status != 0 {
				c.JSON(status, gin.H{"status": status, "error": msg})
				return
			}
		}

		cart, err := loadCart(db, userID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"status": 404, "error": "Your shopping Cart looks empty"})
			return
		}

		var item *models.CartItem
		for i := range cart.Items {
			if cart.Items[i].ProductID == product.ID {
				item = &cart.Items[i]
				break
			}
		}
		if item == nil {
			c.JSON(http.StatusNotFound, gin.H{"status": 404, "error": "Product not found in cart"})
			return
		}

		if input.Color != nil {
			item.Color = *input.Color
		}
		if input.Quantity != nil {
			item.Quantity = *input.Quantity
		}
		item.AddedAt = time.Now()
		if err := db.Save(item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": 500, "error": "Failed to update cart item"})
			return
		}

		if err := recalcTotals(db, cart); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": 500, "error": "Failed to compute cart totals"})
			return
		}
		if err := db.Save(cart).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": 500, "error": "Failed to save cart"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": 200, "length": len(cart.Items), "message": "cart updated successfully", "data": cart})
	}
}

// DELETE /cart/:productId
func RemoveCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		cart, err := loadCart(db, userID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"status": 404, "error": "Your shopping Cart looks empty"})
			return
		}

		result := db.Where("cart_id = ? AND product_id = ?", cart.CartID, c.Param("productId")).Delete(&models.CartItem{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": 500, "error": "Failed to delete item"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"status": 404, "error": "Product not found in cart"})
			return
		}

		cart, err = loadCart(db, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": 500, "error": "Failed to fetch cart"})
			return
		}
		if err := recalcTotals(db, cart); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": 500, "error": "Failed to compute cart totals"})
			return
		}
		if err := db.Save(cart).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": 500, "error": "Failed to save cart"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": 200, "length": len(cart.Items), "message": "product removed from cart successfully", "data": cart})
	}
}

// GET /cart
func GetUserCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		cart, err := loadCart(db, userID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"status": 404, "error": "Your shopping Cart looks empty"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": 200, "length": len(cart.Items), "data": cart})
	}
}

// GET /cart/admin/:userId
func GetUserCartByAdmin(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, err := loadCart(db, c.Param("userId"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"status": 404, "error": "User has no cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": 200, "length": len(cart.Items), "data": cart})
	}
}

// GET /cart/admin
func GetAllCartsByAdmin(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var carts []models.Cart
		if err := db.Preload("Items").Preload("Coupons").Find(&carts).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": 500, "error": "Failed to fetch carts"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": 200, "length": len(carts), "data": carts})
	}
}
