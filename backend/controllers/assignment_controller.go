package controllers

import (
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"thinkhabit/backend/config"
	"thinkhabit/backend/middleware"
	"thinkhabit/backend/models"
	"thinkhabit/backend/utils"
)

// AssignmentController is the admin-facing CRUD for weekly assignments. The
// student-facing progress view lives in DashboardController.
type AssignmentController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewAssignmentController(db *gorm.DB, cfg *config.Config) *AssignmentController {
	return &AssignmentController{DB: db, Cfg: cfg}
}

type AssignmentInput struct {
	UserID     uint   `json:"user_id" validate:"required"`
	CategoryID uint   `json:"category_id" validate:"required"`
	WeeklyGoal int    `json:"weekly_goal" validate:"omitempty,gt=0,max=21"`
	Note       string `json:"note" validate:"max=256"`
}

func (asc *AssignmentController) CreateAssignment(c *fiber.Ctx) error {
	tc := middleware.TokenClaims(c)

	var input AssignmentInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationError(c, errs)
	}
	if input.WeeklyGoal <= 0 {
		input.WeeklyGoal = models.DefaultWeeklyGoal
	}

	var user models.User
	if err := asc.DB.First(&user, input.UserID).Error; err != nil {
		return utils.BadRequest(c, "Unknown user")
	}
	var category models.Category
	if err := asc.DB.Where("id = ? AND is_active = ?", input.CategoryID, true).First(&category).Error; err != nil {
		return utils.BadRequest(c, "Unknown or inactive category")
	}

	assignment := models.Assignment{
		UserID:     input.UserID,
		CategoryID: input.CategoryID,
		AssignedBy: tc.UserID,
		WeeklyGoal: input.WeeklyGoal,
		Note:       input.Note,
		IsActive:   true,
	}
	if err := asc.DB.Create(&assignment).Error; err != nil {
		return utils.InternalServerError(c, "Could not create assignment")
	}

	asc.notifyAssignment(user.ID, category.Name, assignment)

	return utils.Created(c, assignment)
}

func (asc *AssignmentController) ListAssignments(c *fiber.Ctx) error {
	query := asc.DB.Preload("Category").Order("created_at DESC")
	if raw := c.Query("userId"); raw != "" {
		query = query.Where("user_id = ?", raw)
	}
	if c.Query("all") != "true" {
		query = query.Where("is_active = ?", true)
	}

	var assignments []models.Assignment
	if err := query.Find(&assignments).Error; err != nil {
		return utils.InternalServerError(c, "Failed to fetch assignments")
	}
	return utils.Success(c, fiber.StatusOK, assignments)
}

type AssignmentUpdateInput struct {
	WeeklyGoal int    `json:"weekly_goal" validate:"omitempty,gt=0,max=21"`
	Note       string `json:"note" validate:"max=256"`
}

func (asc *AssignmentController) UpdateAssignment(c *fiber.Ctx) error {
	var assignment models.Assignment
	if err := asc.DB.First(&assignment, c.Params("id")).Error; err != nil {
		return utils.NotFound(c, "Assignment not found")
	}

	var input AssignmentUpdateInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationError(c, errs)
	}

	if input.WeeklyGoal > 0 {
		assignment.WeeklyGoal = input.WeeklyGoal
	}
	assignment.Note = input.Note
	if err := asc.DB.Save(&assignment).Error; err != nil {
		return utils.InternalServerError(c, "Could not update assignment")
	}
	return utils.Success(c, fiber.StatusOK, assignment)
}

// RevokeAssignment deactivates; assignment history is never deleted.
func (asc *AssignmentController) RevokeAssignment(c *fiber.Ctx) error {
	var assignment models.Assignment
	if err := asc.DB.First(&assignment, c.Params("id")).Error; err != nil {
		return utils.NotFound(c, "Assignment not found")
	}
	assignment.IsActive = false
	if err := asc.DB.Save(&assignment).Error; err != nil {
		return utils.InternalServerError(c, "Could not revoke assignment")
	}
	return utils.NoContent(c)
}

func (asc *AssignmentController) notifyAssignment(userID uint, categoryName string, assignment models.Assignment) {
	payload, _ := json.Marshal(fiber.Map{"assignment_id": assignment.ID, "category_id": assignment.CategoryID})
	asc.DB.Create(&models.Notification{
		UserID:  userID,
		Type:    models.NotificationAssignment,
		Title:   "New weekly assignment",
		Message: fmt.Sprintf("You were assigned %q with a goal of %d entries per week", categoryName, assignment.WeeklyGoal),
		Payload: datatypes.JSON(payload),
	})
}
