package taxControllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

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
	require.NoError(t, db.AutoMigrate(&models.Tax{}))
	return db
}

func newTaxRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.PUT("/tax", UpsertTax(db))
	r.GET("/tax", GetTax(db))
	return r
}

func putTax(t *testing.T, r *gin.Engine, body gin.H) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))
	req := httptest.NewRequest(http.MethodPut, "/tax", &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUpsertTaxKeepsSingleRow(t *testing.T) {
	db := testDB(t)
	r := newTaxRouter(db)

	w := putTax(t, r, gin.H{"tax": 14, "shippingFees": 30, "cashOnDelivery": 15})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// A second update overwrites in place instead of inserting
	w = putTax(t, r, gin.H{"tax": 10, "shippingFees": 25, "cashOnDelivery": 0})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var count int64
	db.Model(&models.Tax{}).Count(&count)
	assert.Equal(t, int64(1), count)

	tax, err := Current(db)
	require.NoError(t, err)
	assert.Equal(t, models.TaxSingletonID, tax.ID)
	assert.InDelta(t, 10, tax.Tax, 0.001)
	assert.InDelta(t, 25, tax.ShippingFees, 0.001)
	assert.Zero(t, tax.CashOnDelivery)
}

func TestCurrentDefaultsWhenUnconfigured(t *testing.T) {
	db := testDB(t)

	tax, err := Current(db)
	require.NoError(t, err)
	assert.Zero(t, tax.Tax)
	assert.Zero(t, tax.ShippingFees)
	assert.Zero(t, tax.CashOnDelivery)
}

func TestUpsertTaxRejectsNegativeValues(t *testing.T) {
	db := testDB(t)
	r := newTaxRouter(db)

	w := putTax(t, r, gin.H{"tax": -1, "shippingFees": 30, "cashOnDelivery": 15})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	db.Model(&models.Tax{}).Count(&count)
	assert.Zero(t, count)
}
