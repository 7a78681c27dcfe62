package controllers

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/vedantlonkar23/loopspacenew/config"
	"github.com/vedantlonkar23/loopspacenew/models"
	"github.com/vedantlonkar23/loopspacenew/utils"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"
)

const googleUserInfoURL = "https://openidconnect.googleapis.com/v1/userinfo"

// SocialAuthController runs the Google OAuth code flow. The oauth2.Config is
// built once at construction and passed in as a dependency; nothing is
// registered process-wide.
type SocialAuthController struct {
	db          *gorm.DB
	jwtSecret   string
	frontendURL string
	oauth       *oauth2.Config
}

func NewSocialAuthController(db *gorm.DB, cfg *config.Config) *SocialAuthController {
	return &SocialAuthController{
		db:          db,
		jwtSecret:   cfg.JWTSecret,
		frontendURL: cfg.FrontendURL,
		oauth: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.ServerURL + "/api/auth/google/callback",
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

// loginState is the opaque state parameter round-tripped through Google. It
// carries the caller's role hint for account creation.
type loginState struct {
	Role  string `json:"role"`
	Nonce string `json:"nonce"`
}

type googleUserInfo struct {
	Sub     string `json:"sub"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// GoogleLogin redirects the caller to the Google consent screen.
func (sac *SocialAuthController) GoogleLogin(c *gin.Context) {
	role := c.DefaultQuery("role", string(models.RoleIndividual))
	if !models.IsValidRole(role) {
		utils.SendError(c, http.StatusBadRequest, "Invalid role")
		return
	}

	raw, err := json.Marshal(loginState{Role: role, Nonce: uuid.New().String()})
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to start login")
		return
	}
	state := base64.RawURLEncoding.EncodeToString(raw)

	c.Redirect(http.StatusTemporaryRedirect, sac.oauth.AuthCodeURL(state))
}

// GoogleCallback exchanges the authorization code, resolves the account and
// redirects back to the client with the bearer token and onboarding flags.
func (sac *SocialAuthController) GoogleCallback(c *gin.Context) {
	if errParam := c.Query("error"); errParam != "" {
		utils.SendError(c, http.StatusUnauthorized, "Google authentication was cancelled")
		return
	}

	code := c.Query("code")
	if code == "" {
		utils.SendError(c, http.StatusBadRequest, "Missing authorization code")
		return
	}

	role := string(models.RoleIndividual)
	if raw, err := base64.RawURLEncoding.DecodeString(c.Query("state")); err == nil {
		var state loginState
		if json.Unmarshal(raw, &state) == nil && models.IsValidRole(state.Role) {
			role = state.Role
		}
	}

	ctx := c.Request.Context()
	token, err := sac.oauth.Exchange(ctx, code)
	if err != nil {
		utils.SendError(c, http.StatusUnauthorized, "Google authentication failed")
		return
	}

	resp, err := sac.oauth.Client(ctx, token).Get(googleUserInfoURL)
	if err != nil {
		utils.SendError(c, http.StatusUnauthorized, "Failed to fetch Google profile")
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		utils.SendError(c, http.StatusUnauthorized, "Failed to fetch Google profile")
		return
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil || info.Sub == "" || info.Email == "" {
		utils.SendError(c, http.StatusUnauthorized, "Failed to fetch Google profile")
		return
	}

	user, err := sac.findOrCreateGoogleUser(info, role)
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to process user")
		return
	}

	bearer, err := generateToken(sac.jwtSecret, user.ID, user.Email)
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	c.Redirect(http.StatusTemporaryRedirect, fmt.Sprintf(
		"%s/auth/google?token=%s&isProfileComplete=%t&role=%s",
		sac.frontendURL, bearer, user.IsProfileComplete, user.Role,
	))
}

// findOrCreateGoogleUser resolves the federated identity: by subject id
// first, then by email (linking the Google id onto an existing local
// account), and finally by creating a fresh account with the requested role.
// The email-match linkage silently merges a local account with the Google
// identity; Google verifies addresses, which is what makes this acceptable.
func (sac *SocialAuthController) findOrCreateGoogleUser(info googleUserInfo, role string) (*models.User, error) {
	var user models.User

	err := sac.db.Where("google_id = ?", info.Sub).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	err = sac.db.Where("email = ?", info.Email).First(&user).Error
	if err == nil {
		user.GoogleID = &info.Sub
		if user.ProfilePic == nil && info.Picture != "" {
			user.ProfilePic = &info.Picture
		}
		if err := sac.db.Save(&user).Error; err != nil {
			return nil, err
		}
		return &user, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	user = models.User{
		ID:       uuid.New().String(),
		Role:     models.UserRole(role),
		Name:     info.Name,
		Email:    info.Email,
		GoogleID: &info.Sub,
	}
	if info.Picture != "" {
		user.ProfilePic = &info.Picture
	}

	if err := sac.db.Create(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}
