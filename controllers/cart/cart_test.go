package cartControllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/mohamedkhalil99/ecommerce-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Product{},
		&models.Cart{}, &models.CartItem{}, &models.CartCoupon{},
		&models.Coupon{}, &models.CouponRedemption{},
	))
	return db
}

func authAs(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
	}
}

func newCartRouter(db *gorm.DB, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	cart := r.Group("/cart", authAs(userID))
	{
		cart.GET("", GetUserCart(db))
		cart.POST("/coupon/:name", ApplyCoupon(db))
		cart.POST("/:productId", AddToCart(db))
		cart.PATCH("/:productId", UpdateCartItem(db))
		cart.DELETE("/:productId", RemoveCartItem(db))
	}
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func seedProduct(t *testing.T, db *gorm.DB, title string, price, discounted float64, stock int) models.Product {
	t.Helper()
	product := models.Product{Title: title, Price: price, PriceAfterDiscount: discounted, Stock: stock}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func seedCoupon(t *testing.T, db *gorm.DB, name string, discount float64, expire time.Time) models.Coupon {
	t.Helper()
	coupon := models.Coupon{Name: name, Discount: discount, ExpireDate: expire}
	require.NoError(t, db.Create(&coupon).Error)
	return coupon
}

func getCart(t *testing.T, db *gorm.DB, userID string) models.Cart {
	t.Helper()
	var cart models.Cart
	require.NoError(t, db.Preload("Items").Preload("Coupons").Where("user_id = ?", userID).First(&cart).Error)
	return cart
}

func TestAddToCartCreatesCartAndComputesTotals(t *testing.T) {
	db := testDB(t)
	product := seedProduct(t, db, "Phone", 100, 80, 10)

	r := newCartRouter(db, "u1")
	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/cart/%d", product.ID), gin.H{"quantity": 2})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	cart := getCart(t, db, "u1")
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	// Discounted unit price wins over the list price
	assert.InDelta(t, 160, cart.TotalPrice, 0.001)
	assert.InDelta(t, 160, cart.TotalPriceAfterDiscount, 0.001)
}

func TestAddToCartAccumulatesSameProduct(t *testing.T) {
	db := testDB(t)
	product := seedProduct(t, db, "Phone", 100, 0, 10)

	r := newCartRouter(db, "u1")
	path := fmt.Sprintf("/cart/%d", product.ID)
	require.Equal(t, http.StatusCreated, doJSON(t, r, http.MethodPost, path, gin.H{"quantity": 2}).Code)
	require.Equal(t, http.StatusCreated, doJSON(t, r, http.MethodPost, path, gin.H{"quantity": 3}).Code)

	cart := getCart(t, db, "u1")
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
	assert.InDelta(t, 500, cart.TotalPrice, 0.001)
}

func TestAddToCartRejectsQuantityOverStock(t *testing.T) {
	db := testDB(t)
	product := seedProduct(t, db, "Phone", 100, 0, 2)

	r := newCartRouter(db, "u1")
	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/cart/%d", product.ID), gin.H{"quantity": 5})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "lower than your quantity")
}

func TestRemoveCartItemRecalculates(t *testing.T) {
	db := testDB(t)
	phone := seedProduct(t, db, "Phone", 100, 0, 10)
	charger := seedProduct(t, db, "Charger", 20, 0, 10)

	r := newCartRouter(db, "u1")
	require.Equal(t, http.StatusCreated, doJSON(t, r, http.MethodPost, fmt.Sprintf("/cart/%d", phone.ID), gin.H{"quantity": 1}).Code)
	require.Equal(t, http.StatusCreated, doJSON(t, r, http.MethodPost, fmt.Sprintf("/cart/%d", charger.ID), gin.H{"quantity": 2}).Code)

	w := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/cart/%d", charger.ID), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	cart := getCart(t, db, "u1")
	require.Len(t, cart.Items, 1)
	assert.InDelta(t, 100, cart.TotalPrice, 0.001)
}

func TestApplyCouponDiscountsCart(t *testing.T) {
	db := testDB(t)
	product := seedProduct(t, db, "Phone", 100, 0, 10)
	seedCoupon(t, db, "SAVE50", 50, time.Now().Add(24*time.Hour))

	r := newCartRouter(db, "u1")
	require.Equal(t, http.StatusCreated, doJSON(t, r, http.MethodPost, fmt.Sprintf("/cart/%d", product.ID), gin.H{"quantity": 2}).Code)

	w := doJSON(t, r, http.MethodPost, "/cart/coupon/SAVE50", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	cart := getCart(t, db, "u1")
	require.Len(t, cart.Coupons, 1)
	assert.InDelta(t, 200, cart.TotalPrice, 0.001)
	assert.InDelta(t, 150, cart.TotalPriceAfterDiscount, 0.001)
}

func TestApplyCouponDiscountClampsAtZero(t *testing.T) {
	db := testDB(t)
	product := seedProduct(t, db, "Sticker", 5, 0, 10)
	seedCoupon(t, db, "SAVE50", 50, time.Now().Add(24*time.Hour))

	r := newCartRouter(db, "u1")
	require.Equal(t, http.StatusCreated, doJSON(t, r, http.MethodPost, fmt.Sprintf("/cart/%d", product.ID), gin.H{"quantity": 1}).Code)
	require.Equal(t, http.StatusOK, doJSON(t, r, http.MethodPost, "/cart/coupon/SAVE50", nil).Code)

	cart := getCart(t, db, "u1")
	assert.InDelta(t, 5, cart.TotalPrice, 0.001)
	assert.Zero(t, cart.TotalPriceAfterDiscount)
}

func TestApplyCouponInvalidName(t *testing.T) {
	db := testDB(t)
	product := seedProduct(t, db, "Phone", 100, 0, 10)

	r := newCartRouter(db, "u1")
	require.Equal(t, http.StatusCreated, doJSON(t, r, http.MethodPost, fmt.Sprintf("/cart/%d", product.ID), gin.H{"quantity": 1}).Code)

	w := doJSON(t, r, http.MethodPost, "/cart/coupon/NOPE", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid Coupon")
}

func TestApplyCouponExpired(t *testing.T) {
	db := testDB(t)
	product := seedProduct(t, db, "Phone", 100, 0, 10)
	seedCoupon(t, db, "OLD", 10, time.Now().Add(-time.Hour))

	r := newCartRouter(db, "u1")
	require.Equal(t, http.StatusCreated, doJSON(t, r, http.MethodPost, fmt.Sprintf("/cart/%d", product.ID), gin.H{"quantity": 1}).Code)

	w := doJSON(t, r, http.MethodPost, "/cart/coupon/OLD", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "Coupon expired")

	cart := getCart(t, db, "u1")
	assert.Empty(t, cart.Coupons)
	assert.InDelta(t, 100, cart.TotalPriceAfterDiscount, 0.001)
}

func TestApplyCouponOnlyOnePerCart(t *testing.T) {
	db := testDB(t)
	product := seedProduct(t, db, "Phone", 100, 0, 10)
	seedCoupon(t, db, "FIRST", 10, time.Now().Add(24*time.Hour))
	seedCoupon(t, db, "SECOND", 20, time.Now().Add(24*time.Hour))

	r := newCartRouter(db, "u1")
	require.Equal(t, http.StatusCreated, doJSON(t, r, http.MethodPost, fmt.Sprintf("/cart/%d", product.ID), gin.H{"quantity": 1}).Code)
	require.Equal(t, http.StatusOK, doJSON(t, r, http.MethodPost, "/cart/coupon/FIRST", nil).Code)

	w := doJSON(t, r, http.MethodPost, "/cart/coupon/SECOND", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "cannot apply another coupon")

	// The first coupon and its discount are untouched
	cart := getCart(t, db, "u1")
	require.Len(t, cart.Coupons, 1)
	assert.Equal(t, "FIRST", cart.Coupons[0].Name)
	assert.InDelta(t, 90, cart.TotalPriceAfterDiscount, 0.001)
}

func TestApplyCouponSingleUsePerUser(t *testing.T) {
	db := testDB(t)
	product := seedProduct(t, db, "Phone", 100, 0, 10)
	coupon := seedCoupon(t, db, "ONCE", 10, time.Now().Add(24*time.Hour))

	// The user redeemed this coupon on an earlier order
	require.NoError(t, db.Create(&models.CouponRedemption{
		CouponID: coupon.ID, UserID: "u1", RedeemedAt: time.Now().Add(-time.Hour),
	}).Error)

	r := newCartRouter(db, "u1")
	require.Equal(t, http.StatusCreated, doJSON(t, r, http.MethodPost, fmt.Sprintf("/cart/%d", product.ID), gin.H{"quantity": 1}).Code)

	w := doJSON(t, r, http.MethodPost, "/cart/coupon/ONCE", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "already used this coupon")
}

func TestGetUserCartEmpty(t *testing.T) {
	db := testDB(t)
	r := newCartRouter(db, "u1")
	w := doJSON(t, r, http.MethodGet, "/cart", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Cart looks empty")
}
