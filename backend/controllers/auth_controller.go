package controllers

import (
	"errors"
	"log"
	"time"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"thinkhabit/backend/config"
	"thinkhabit/backend/models"
	"thinkhabit/backend/utils"
)

type AuthController struct {
	DB     *gorm.DB
	Cfg    *config.Config
	Logger *log.Logger
}

func NewAuthController(db *gorm.DB, cfg *config.Config, logger *log.Logger) *AuthController {
	return &AuthController{DB: db, Cfg: cfg, Logger: logger}
}

type RegisterInput struct {
	Username    string `json:"username" validate:"required,min=3,max=32"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	DisplayName string `json:"display_name"`
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Success 201 {object} utils.SuccessResponse
// @Failure 422 {object} utils.ErrorResponse
// @Router /auth/register [post]
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var input RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationError(c, errs)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return utils.InternalServerError(c, "Could not hash password")
	}

	user := models.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		DisplayName:  input.DisplayName,
		Role:         models.RoleUser,
	}
	if err := ac.DB.Create(&user).Error; err != nil {
		return utils.BadRequest(c, "Username or email already taken")
	}

	token, err := utils.GenerateJWTToken(user.ID, user.Role, ac.Cfg)
	if err != nil {
		return utils.InternalServerError(c, "Could not generate token")
	}

	return utils.Created(c, fiber.Map{
		"token": token,
		"user":  publicUser(user),
	})
}

type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login godoc
// @Summary User login
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /auth/login [post]
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var input LoginInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationError(c, errs)
	}

	var user models.User
	if err := ac.DB.Where("username = ?", input.Username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.Unauthorized(c, "Invalid credentials")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if user.PasswordHash == "" {
		return utils.Unauthorized(c, "Account uses Google sign-in")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return utils.Unauthorized(c, "Invalid credentials")
	}

	return ac.finishLogin(c, user, "password")
}

type GoogleLoginInput struct {
	IDToken string `json:"id_token" validate:"required"`
}

// GoogleLogin verifies a Google ID token and signs the user in, creating the
// account on first login.
func (ac *AuthController) GoogleLogin(c *fiber.Ctx) error {
	var input GoogleLoginInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationError(c, errs)
	}

	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(input.IDToken, []string{ac.Cfg.GoogleClientID}); err != nil {
		return utils.Unauthorized(c, "Invalid Google ID token")
	}
	claimSet, err := googleAuthIDTokenVerifier.Decode(input.IDToken)
	if err != nil {
		return utils.InternalServerError(c, "Failed to decode ID token")
	}

	var user models.User
	err = ac.DB.Where("google_sub = ?", claimSet.Sub).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = models.User{
			Username:    "g-" + uuid.New().String()[:8],
			Email:       claimSet.Email,
			DisplayName: claimSet.Name,
			AvatarURL:   claimSet.Picture,
			GoogleSub:   claimSet.Sub,
			Role:        models.RoleUser,
		}
		if err := ac.DB.Create(&user).Error; err != nil {
			return utils.BadRequest(c, "Email already registered")
		}
	} else if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	return ac.finishLogin(c, user, "google")
}

func (ac *AuthController) finishLogin(c *fiber.Ctx, user models.User, provider string) error {
	token, err := utils.GenerateJWTToken(user.ID, user.Role, ac.Cfg)
	if err != nil {
		return utils.InternalServerError(c, "Could not generate token")
	}

	ac.recordLogin(user.ID, provider)

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"token": token,
		"user":  publicUser(user),
	})
}

// recordLogin appends to the login audit trail. A failed write must not fail
// the login itself, but it has to be visible in the logs.
func (ac *AuthController) recordLogin(userID uint, provider string) {
	history := models.LoginHistory{
		UserID:    userID,
		LoginTime: time.Now(),
		Provider:  provider,
	}
	if err := ac.DB.Create(&history).Error; err != nil {
		ac.Logger.Printf("auth: record login for user %d: %v", userID, err)
	}
}

func publicUser(user models.User) fiber.Map {
	return fiber.Map{
		"id":           user.ID,
		"username":     user.Username,
		"email":        user.Email,
		"display_name": user.DisplayName,
		"avatar_url":   user.AvatarURL,
		"role":         user.Role,
	}
}
