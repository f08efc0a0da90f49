package controllers

import (
	"encoding/json"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"thinkhabit/backend/config"
	"thinkhabit/backend/middleware"
	"thinkhabit/backend/models"
	"thinkhabit/backend/utils"
)

type JournalController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewJournalController(db *gorm.DB, cfg *config.Config) *JournalController {
	return &JournalController{DB: db, Cfg: cfg}
}

type JournalInput struct {
	CategoryID uint     `json:"category_id" validate:"required"`
	Title      string   `json:"title" validate:"required,max=128"`
	Content    string   `json:"content" validate:"required"`
	Mood       string   `json:"mood" validate:"max=32"`
	ImageURLs  []string `json:"image_urls" validate:"max=5,dive,url"`
	IsPublic   bool     `json:"is_public"`
}

// CreateJournal godoc
// @Summary Create a journal entry
// @Tags journals
// @Accept json
// @Produce json
// @Success 201 {object} utils.SuccessResponse
// @Failure 422 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /journals [post]
func (jc *JournalController) CreateJournal(c *fiber.Ctx) error {
	tc := middleware.TokenClaims(c)

	var input JournalInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationError(c, errs)
	}

	var category models.Category
	if err := jc.DB.Where("id = ? AND is_active = ?", input.CategoryID, true).First(&category).Error; err != nil {
		return utils.BadRequest(c, "Unknown or inactive category")
	}

	images, _ := json.Marshal(input.ImageURLs)
	entry := models.JournalEntry{
		UserID:     tc.UserID,
		CategoryID: input.CategoryID,
		Title:      input.Title,
		Content:    input.Content,
		Mood:       input.Mood,
		ImageURLs:  datatypes.JSON(images),
		IsPublic:   input.IsPublic,
	}
	if err := jc.DB.Create(&entry).Error; err != nil {
		return utils.InternalServerError(c, "Could not create journal")
	}
	return utils.Created(c, entry)
}

func (jc *JournalController) ListJournals(c *fiber.Ctx) error {
	tc := middleware.TokenClaims(c)

	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.Query("pageSize", "20"))
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	query := jc.DB.Model(&models.JournalEntry{}).Where("user_id = ?", tc.UserID)
	if raw := c.Query("categoryId"); raw != "" {
		query = query.Where("category_id = ?", raw)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return utils.InternalServerError(c, "Failed to fetch journals")
	}

	var entries []models.JournalEntry
	if err := query.Preload("Category").
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&entries).Error; err != nil {
		return utils.InternalServerError(c, "Failed to fetch journals")
	}

	return utils.Paginate(c, entries, total, page, pageSize)
}

func (jc *JournalController) GetJournal(c *fiber.Ctx) error {
	tc := middleware.TokenClaims(c)

	var entry models.JournalEntry
	if err := jc.DB.Preload("Category").First(&entry, c.Params("id")).Error; err != nil {
		return utils.NotFound(c, "Journal not found")
	}
	if entry.UserID != tc.UserID && !entry.IsPublic && tc.Role != models.RoleAdmin {
		return utils.Forbidden(c, "Cannot view this journal")
	}
	return utils.Success(c, fiber.StatusOK, entry)
}

func (jc *JournalController) UpdateJournal(c *fiber.Ctx) error {
	tc := middleware.TokenClaims(c)

	var entry models.JournalEntry
	if err := jc.DB.First(&entry, c.Params("id")).Error; err != nil {
		return utils.NotFound(c, "Journal not found")
	}
	if entry.UserID != tc.UserID {
		return utils.Forbidden(c, "Cannot edit another user's journal")
	}

	var input JournalInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationError(c, errs)
	}

	images, _ := json.Marshal(input.ImageURLs)
	entry.CategoryID = input.CategoryID
	entry.Title = input.Title
	entry.Content = input.Content
	entry.Mood = input.Mood
	entry.ImageURLs = datatypes.JSON(images)
	entry.IsPublic = input.IsPublic
	if err := jc.DB.Save(&entry).Error; err != nil {
		return utils.InternalServerError(c, "Could not update journal")
	}
	return utils.Success(c, fiber.StatusOK, entry)
}

// DeleteJournal soft-deletes, so the entry drops out of progress and streak
// queries without losing the row.
func (jc *JournalController) DeleteJournal(c *fiber.Ctx) error {
	tc := middleware.TokenClaims(c)

	var entry models.JournalEntry
	if err := jc.DB.First(&entry, c.Params("id")).Error; err != nil {
		return utils.NotFound(c, "Journal not found")
	}
	if entry.UserID != tc.UserID && tc.Role != models.RoleAdmin {
		return utils.Forbidden(c, "Cannot delete another user's journal")
	}
	if err := jc.DB.Delete(&entry).Error; err != nil {
		return utils.InternalServerError(c, "Could not delete journal")
	}
	return utils.NoContent(c)
}
