package controllers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"thinkhabit/backend/config"
	"thinkhabit/backend/models"
	"thinkhabit/backend/utils"
)

type CategoryController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewCategoryController(db *gorm.DB, cfg *config.Config) *CategoryController {
	return &CategoryController{DB: db, Cfg: cfg}
}

func (cc *CategoryController) ListCategories(c *fiber.Ctx) error {
	var categories []models.Category
	query := cc.DB.Order("name ASC")
	if c.Query("all") != "true" {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Find(&categories).Error; err != nil {
		return utils.InternalServerError(c, "Failed to fetch categories")
	}
	return utils.Success(c, fiber.StatusOK, categories)
}

func (cc *CategoryController) GetCategory(c *fiber.Ctx) error {
	var category models.Category
	if err := cc.DB.First(&category, c.Params("id")).Error; err != nil {
		return utils.NotFound(c, "Category not found")
	}
	return utils.Success(c, fiber.StatusOK, category)
}

type CategoryInput struct {
	Name        string `json:"name" validate:"required,max=64"`
	Description string `json:"description"`
	Color       string `json:"color" validate:"omitempty,hexcolor"`
	IconURL     string `json:"icon_url" validate:"omitempty,url"`
}

func (cc *CategoryController) CreateCategory(c *fiber.Ctx) error {
	var input CategoryInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationError(c, errs)
	}

	category := models.Category{
		Name:        input.Name,
		Description: input.Description,
		Color:       input.Color,
		IconURL:     input.IconURL,
		IsActive:    true,
	}
	if err := cc.DB.Create(&category).Error; err != nil {
		return utils.BadRequest(c, "Category name already exists")
	}
	return utils.Created(c, category)
}

func (cc *CategoryController) UpdateCategory(c *fiber.Ctx) error {
	var category models.Category
	if err := cc.DB.First(&category, c.Params("id")).Error; err != nil {
		return utils.NotFound(c, "Category not found")
	}

	var input CategoryInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationError(c, errs)
	}

	category.Name = input.Name
	category.Description = input.Description
	category.Color = input.Color
	category.IconURL = input.IconURL
	if err := cc.DB.Save(&category).Error; err != nil {
		return utils.InternalServerError(c, "Could not update category")
	}
	return utils.Success(c, fiber.StatusOK, category)
}

// DeactivateCategory retires a category without touching existing journals.
func (cc *CategoryController) DeactivateCategory(c *fiber.Ctx) error {
	var category models.Category
	if err := cc.DB.First(&category, c.Params("id")).Error; err != nil {
		return utils.NotFound(c, "Category not found")
	}
	category.IsActive = false
	if err := cc.DB.Save(&category).Error; err != nil {
		return utils.InternalServerError(c, "Could not deactivate category")
	}
	return utils.NoContent(c)
}
