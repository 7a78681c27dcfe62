package controllers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/vedantlonkar23/loopspacenew/models"
	"github.com/vedantlonkar23/loopspacenew/services"
	"github.com/vedantlonkar23/loopspacenew/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const tokenLifetime = time.Hour

type AuthController struct {
	db           *gorm.DB
	jwtSecret    string
	emailService *services.EmailService
}

func NewAuthController(db *gorm.DB, jwtSecret string, emailService *services.EmailService) *AuthController {
	return &AuthController{
		db:           db,
		jwtSecret:    jwtSecret,
		emailService: emailService,
	}
}

type SignupRequest struct {
	Name     string `json:"name" binding:"required,min=3"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"required,oneof=individual organizer"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// generateToken issues the bearer credential shared by local and Google
// login: a signed one hour token carrying the subject id and email.
func generateToken(jwtSecret, userID, email string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"exp":     time.Now().Add(tokenLifetime).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecret))
}

func (ac *AuthController) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendError(c, http.StatusBadRequest, err.Error())
		return
	}

	var existing models.User
	if err := ac.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		utils.SendError(c, http.StatusBadRequest, "User already exists")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	password := string(hashed)
	user := models.User{
		ID:       uuid.New().String(),
		Role:     models.UserRole(req.Role),
		Name:     req.Name,
		Email:    req.Email,
		Password: &password,
	}

	if err := ac.db.Create(&user).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to create user")
		return
	}

	token, err := generateToken(ac.jwtSecret, user.ID, user.Email)
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	if ac.emailService != nil && ac.emailService.Enabled() {
		go func(email, name string) {
			if err := ac.emailService.SendWelcomeEmail(email, name); err != nil {
				log.Printf("Failed to send welcome email to %s: %v", email, err)
			}
		}(user.Email, user.Name)
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"token":   token,
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendError(c, http.StatusBadRequest, err.Error())
		return
	}

	// One generic message for every failure path so the response never leaks
	// which field was wrong, or that the account is OAuth-only.
	var user models.User
	if err := ac.db.Where("email = ?", req.Email).First(&user).Error; err != nil || user.Password == nil {
		utils.SendError(c, http.StatusNotFound, "Invalid email or password")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.Password), []byte(req.Password)); err != nil {
		utils.SendError(c, http.StatusNotFound, "Invalid email or password")
		return
	}

	token, err := generateToken(ac.jwtSecret, user.ID, user.Email)
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"user": gin.H{
			"id":          user.ID,
			"name":        user.Name,
			"email":       user.Email,
			"profile_pic": user.ProfilePic,
		},
		"role":                user.Role,
		"is_profile_complete": user.IsProfileComplete,
	})
}
