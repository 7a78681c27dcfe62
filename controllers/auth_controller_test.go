package controllers

import (
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vedantlonkar23/loopspacenew/models"
)

func TestSignupCreatesAccountWithRole(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(t, db)

	w := doJSON(r, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"name":     "Dana",
		"email":    "dana@example.com",
		"password": "secret123",
		"role":     "organizer",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Message string `json:"message"`
		Token   string `json:"token"`
		User    struct {
			ID    string `json:"id"`
			Name  string `json:"name"`
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"user"`
	}
	decodeBody(t, w, &resp)

	assert.Equal(t, "User registered successfully", resp.Message)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "organizer", resp.User.Role)

	var stored models.User
	require.NoError(t, db.First(&stored, "email = ?", "dana@example.com").Error)
	assert.Equal(t, models.RoleOrganizer, stored.Role)
	require.NotNil(t, stored.Password)
	assert.NotEqual(t, "secret123", *stored.Password)
}

func TestSignupRejectsDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(t, db)
	createTestUser(t, db, "Dana", "dana@example.com", models.RoleIndividual)

	w := doJSON(r, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"name":     "Dana Again",
		"email":    "dana@example.com",
		"password": "secret123",
		"role":     "individual",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "User already exists")
}

func TestSignupRejectsUnknownRole(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(t, db)

	w := doJSON(r, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"name":     "Dana",
		"email":    "dana@example.com",
		"password": "secret123",
		"role":     "admin",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginReturnsTokenAndProfileFlags(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(t, db)
	user := createTestUser(t, db, "Dana", "dana@example.com", models.RoleIndividual)

	w := doJSON(r, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    user.Email,
		"password": testPassword,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token             string `json:"token"`
		Role              string `json:"role"`
		IsProfileComplete bool   `json:"is_profile_complete"`
	}
	decodeBody(t, w, &resp)

	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "individual", resp.Role)
	assert.False(t, resp.IsProfileComplete)
}

func TestLoginFailsWithOneGenericMessage(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(t, db)
	user := createTestUser(t, db, "Dana", "dana@example.com", models.RoleIndividual)

	// OAuth-only account: no local password at all.
	oauthOnly := models.User{
		ID:    "oauth-only-id",
		Role:  models.RoleIndividual,
		Name:  "Sam",
		Email: "sam@example.com",
	}
	require.NoError(t, db.Create(&oauthOnly).Error)

	cases := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", user.Email, "wrongpass"},
		{"unknown email", "nobody@example.com", testPassword},
		{"oauth-only account", oauthOnly.Email, testPassword},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(r, http.MethodPost, "/api/auth/login", "", map[string]string{
				"email":    tc.email,
				"password": tc.password,
			})
			assert.Equal(t, http.StatusNotFound, w.Code)
			assert.Contains(t, w.Body.String(), "Invalid email or password")
		})
	}
}

func TestProtectedRoutesRejectMissingToken(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(t, db)

	w := doJSON(r, http.MethodGet, "/api/auth/user-profile", "", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Access denied. No token provided.")
}

func TestProtectedRoutesRejectExpiredToken(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(t, db)
	user := createTestUser(t, db, "Dana", "dana@example.com", models.RoleIndividual)

	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"exp":     time.Now().Add(-time.Hour).Unix(),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)

	w := doJSON(r, http.MethodGet, "/api/auth/user-profile", expired, nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Token expired.")
}

func TestProtectedRoutesRejectForgedToken(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(t, db)
	user := createTestUser(t, db, "Dana", "dana@example.com", models.RoleIndividual)

	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("wrong-secret"))
	require.NoError(t, err)

	w := doJSON(r, http.MethodGet, "/api/auth/user-profile", forged, nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid token.")
}
