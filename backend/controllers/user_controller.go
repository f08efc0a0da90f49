package controllers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"thinkhabit/backend/config"
	"thinkhabit/backend/middleware"
	"thinkhabit/backend/models"
	"thinkhabit/backend/utils"
)

type UserController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewUserController(db *gorm.DB, cfg *config.Config) *UserController {
	return &UserController{DB: db, Cfg: cfg}
}

func (uc *UserController) GetProfile(c *fiber.Ctx) error {
	tc := middleware.TokenClaims(c)

	var user models.User
	if err := uc.DB.First(&user, tc.UserID).Error; err != nil {
		return utils.NotFound(c, "User not found")
	}
	return utils.Success(c, fiber.StatusOK, publicUser(user))
}

type UpdateProfileInput struct {
	DisplayName string `json:"display_name" validate:"max=64"`
	AvatarURL   string `json:"avatar_url" validate:"omitempty,url"`
}

func (uc *UserController) UpdateProfile(c *fiber.Ctx) error {
	tc := middleware.TokenClaims(c)

	var input UpdateProfileInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationError(c, errs)
	}

	var user models.User
	if err := uc.DB.First(&user, tc.UserID).Error; err != nil {
		return utils.NotFound(c, "User not found")
	}

	if input.DisplayName != "" {
		user.DisplayName = input.DisplayName
	}
	if input.AvatarURL != "" {
		user.AvatarURL = input.AvatarURL
	}
	if err := uc.DB.Save(&user).Error; err != nil {
		return utils.InternalServerError(c, "Could not update profile")
	}
	return utils.Success(c, fiber.StatusOK, publicUser(user))
}

// IssueWidgetToken hands the desktop wrapper / embeddable widget a scoped
// read-only token for the dashboard.
func (uc *UserController) IssueWidgetToken(c *fiber.Ctx) error {
	tc := middleware.TokenClaims(c)

	token, err := utils.GenerateWidgetToken(tc.UserID, uc.Cfg)
	if err != nil {
		return utils.InternalServerError(c, "Could not generate token")
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"token": token, "scope": "widget:read"})
}
