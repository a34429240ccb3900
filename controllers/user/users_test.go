package userControllers

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
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Address{}))
	return db
}

func authAs(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
	}
}

func newUserRouter(db *gorm.DB, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/users", CreateUser(db))
	r.GET("/user", authAs(userID), GetUser(db))
	r.PUT("/user", authAs(userID), UpdateUser(db))
	r.POST("/user/address", authAs(userID), AddAddress(db))
	r.DELETE("/user/address/:id", authAs(userID), RemoveAddress(db))
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

func TestCreateUserIssuesID(t *testing.T) {
	db := testDB(t)
	r := newUserRouter(db, "")

	w := doJSON(t, r, http.MethodPost, "/users", gin.H{"email": "a@example.com", "name": "Alice"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var user models.User
	require.NoError(t, db.Where("email = ?", "a@example.com").First(&user).Error)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "user", user.Role)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	db := testDB(t)
	r := newUserRouter(db, "")

	require.Equal(t, http.StatusCreated,
		doJSON(t, r, http.MethodPost, "/users", gin.H{"email": "a@example.com", "name": "Alice"}).Code)
	w := doJSON(t, r, http.MethodPost, "/users", gin.H{"email": "a@example.com", "name": "Clone"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "already registered")
}

func TestUpdateUserPartialFields(t *testing.T) {
	db := testDB(t)
	require.NoError(t, db.Create(&models.User{ID: "u1", Email: "u1@example.com", Name: "Old", Phone: "0100"}).Error)

	r := newUserRouter(db, "u1")
	w := doJSON(t, r, http.MethodPut, "/user", gin.H{"name": "New"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var user models.User
	require.NoError(t, db.First(&user, "id = ?", "u1").Error)
	assert.Equal(t, "New", user.Name)
	assert.Equal(t, "0100", user.Phone)
}

func TestAddressBook(t *testing.T) {
	db := testDB(t)
	require.NoError(t, db.Create(&models.User{ID: "u1", Email: "u1@example.com"}).Error)

	r := newUserRouter(db, "u1")
	w := doJSON(t, r, http.MethodPost, "/user/address", gin.H{
		"name": "Home", "addressDetails": "12 Nile St", "district": "Dokki", "city": "Giza", "phone": "0100",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var address models.Address
	require.NoError(t, db.Where("user_id = ?", "u1").First(&address).Error)

	// Another user cannot delete it
	other := newUserRouter(db, "u2")
	w = doJSON(t, other, http.MethodDelete, "/user/address/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/user/address/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var count int64
	db.Model(&models.Address{}).Count(&count)
	assert.Zero(t, count)
}
