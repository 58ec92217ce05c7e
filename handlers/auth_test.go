package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tskauto/dealership-api/config"
	"github.com/tskauto/dealership-api/models"
)

func setupAuthTest() (*gin.Engine, *gorm.DB) {
	gin.SetMode(gin.TestMode)
	db, _ := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	db.AutoMigrate(&models.User{})

	cfg := &config.Config{
		JWTSecret:        "test-secret",
		JWTRefreshSecret: "test-refresh-secret",
	}
	handler := NewAuthHandler(db, cfg)

	router := gin.New()
	router.POST("/auth/signup", handler.Signup)
	router.POST("/auth/login", handler.Login)
	router.POST("/auth/refresh", handler.Refresh)
	return router, db
}

func postJSON(router *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, path, bytes.NewBuffer(body))
	router.ServeHTTP(w, req)
	return w
}

func TestSignup(t *testing.T) {
	router, db := setupAuthTest()

	t.Run("Valid Request", func(t *testing.T) {
		w := postJSON(router, "/auth/signup", SignupRequest{
			Name:     "John Smith",
			Email:    "John@Example.com",
			Password: "secret123",
		})

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "access_token")
		assert.Contains(t, w.Body.String(), "refresh_token")

		var user models.User
		db.First(&user)
		assert.Equal(t, "john@example.com", user.Email, "email normalized to lower case")
		assert.NotEqual(t, "secret123", user.PasswordHash)
	})

	t.Run("Duplicate Email", func(t *testing.T) {
		w := postJSON(router, "/auth/signup", SignupRequest{
			Name:     "John Again",
			Email:    "john@example.com",
			Password: "secret123",
		})

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "An account with this email already exists.")
	})

	t.Run("Weak Password", func(t *testing.T) {
		w := postJSON(router, "/auth/signup", SignupRequest{
			Name:     "Jane",
			Email:    "jane@example.com",
			Password: "short",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Password must be at least 6 characters.")
	})

	t.Run("Password Mismatch", func(t *testing.T) {
		w := postJSON(router, "/auth/signup", SignupRequest{
			Name:            "Jane",
			Email:           "jane@example.com",
			Password:        "secret123",
			ConfirmPassword: "secret124",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Invalid Email", func(t *testing.T) {
		w := postJSON(router, "/auth/signup", SignupRequest{
			Name:     "Jane",
			Email:    "not-an-email",
			Password: "secret123",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLogin(t *testing.T) {
	router, _ := setupAuthTest()
	postJSON(router, "/auth/signup", SignupRequest{
		Name:     "John Smith",
		Email:    "john@example.com",
		Password: "secret123",
	})

	t.Run("Valid Credentials", func(t *testing.T) {
		w := postJSON(router, "/auth/login", LoginRequest{
			Email:    "john@example.com",
			Password: "secret123",
		})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "access_token")
	})

	t.Run("Wrong Password", func(t *testing.T) {
		w := postJSON(router, "/auth/login", LoginRequest{
			Email:    "john@example.com",
			Password: "wrong-password",
		})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid email or password.")
	})

	t.Run("Unknown Email Gets Same Message", func(t *testing.T) {
		w := postJSON(router, "/auth/login", LoginRequest{
			Email:    "nobody@example.com",
			Password: "secret123",
		})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid email or password.")
	})
}

func TestRefresh(t *testing.T) {
	router, db := setupAuthTest()

	w := postJSON(router, "/auth/signup", SignupRequest{
		Name:     "John Smith",
		Email:    "john@example.com",
		Password: "secret123",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var signupResp struct {
		RefreshToken string `json:"refresh_token"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &signupResp))

	t.Run("Valid Refresh Token", func(t *testing.T) {
		w := postJSON(router, "/auth/refresh", RefreshTokenRequest{
			RefreshToken: signupResp.RefreshToken,
		})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "access_token")
	})

	t.Run("Garbage Token", func(t *testing.T) {
		w := postJSON(router, "/auth/refresh", RefreshTokenRequest{
			RefreshToken: "not.a.token",
		})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Inactive User", func(t *testing.T) {
		db.Model(&models.User{}).Where("email = ?", "john@example.com").Update("is_active", false)

		w := postJSON(router, "/auth/refresh", RefreshTokenRequest{
			RefreshToken: signupResp.RefreshToken,
		})

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestMapAuthMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "Invalid Credentials", err: errInvalidCredentials, expected: "Invalid email or password."},
		{name: "Already Registered", err: errAlreadyRegistered, expected: "An account with this email already exists."},
		{name: "Weak Password", err: errWeakPassword, expected: "Password must be at least 6 characters."},
		{name: "Unrecognized Wording Falls Through", err: assert.AnError, expected: "Something went wrong. Please try again."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, mapAuthMessage(tt.err))
		})
	}
}
