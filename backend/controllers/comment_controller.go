package controllers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"thinkhabit/backend/config"
	"thinkhabit/backend/middleware"
	"thinkhabit/backend/models"
	"thinkhabit/backend/utils"
)

type CommentController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewCommentController(db *gorm.DB, cfg *config.Config) *CommentController {
	return &CommentController{DB: db, Cfg: cfg}
}

type CommentInput struct {
	Text string `json:"text" validate:"required,max=1000"`
}

func (cmc *CommentController) CreateComment(c *fiber.Ctx) error {
	tc := middleware.TokenClaims(c)

	var entry models.JournalEntry
	if err := cmc.DB.First(&entry, c.Params("journalId")).Error; err != nil {
		return utils.NotFound(c, "Journal not found")
	}
	if entry.UserID != tc.UserID && !entry.IsPublic && tc.Role != models.RoleAdmin {
		return utils.Forbidden(c, "Cannot comment on this journal")
	}

	var input CommentInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationError(c, errs)
	}

	var author models.User
	if err := cmc.DB.First(&author, tc.UserID).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	comment := models.Comment{
		JournalID: entry.ID,
		UserID:    author.ID,
		UserName:  author.Username,
		UserImage: author.AvatarURL,
		Text:      input.Text,
	}
	if err := cmc.DB.Create(&comment).Error; err != nil {
		return utils.InternalServerError(c, "Could not create comment")
	}

	// Notify the journal owner, unless they commented on their own entry.
	if entry.UserID != author.ID {
		payload, _ := json.Marshal(fiber.Map{"journal_id": entry.ID, "comment_id": comment.ID})
		cmc.DB.Create(&models.Notification{
			UserID:  entry.UserID,
			Type:    models.NotificationComment,
			Title:   "New comment on your journal",
			Message: author.Username + " commented on \"" + entry.Title + "\"",
			Payload: datatypes.JSON(payload),
		})
	}

	return utils.Created(c, comment)
}

func (cmc *CommentController) ListComments(c *fiber.Ctx) error {
	tc := middleware.TokenClaims(c)

	var entry models.JournalEntry
	if err := cmc.DB.First(&entry, c.Params("journalId")).Error; err != nil {
		return utils.NotFound(c, "Journal not found")
	}
	if entry.UserID != tc.UserID && !entry.IsPublic && tc.Role != models.RoleAdmin {
		return utils.Forbidden(c, "Cannot view comments on this journal")
	}

	var comments []models.Comment
	if err := cmc.DB.Where("journal_id = ?", entry.ID).Order("created_at ASC").Find(&comments).Error; err != nil {
		return utils.InternalServerError(c, "Failed to fetch comments")
	}
	return utils.Success(c, fiber.StatusOK, comments)
}

func (cmc *CommentController) DeleteComment(c *fiber.Ctx) error {
	tc := middleware.TokenClaims(c)

	var comment models.Comment
	if err := cmc.DB.First(&comment, c.Params("id")).Error; err != nil {
		return utils.NotFound(c, "Comment not found")
	}
	if comment.UserID != tc.UserID && tc.Role != models.RoleAdmin {
		return utils.Forbidden(c, "Cannot delete another user's comment")
	}
	if err := cmc.DB.Delete(&comment).Error; err != nil {
		return utils.InternalServerError(c, "Could not delete comment")
	}
	return utils.NoContent(c)
}
