package controllers

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"thinkhabit/backend/config"
	"thinkhabit/backend/middleware"
	"thinkhabit/backend/models"
	"thinkhabit/backend/survey"
	"thinkhabit/backend/utils"
)

type SurveyController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewSurveyController(db *gorm.DB, cfg *config.Config) *SurveyController {
	return &SurveyController{DB: db, Cfg: cfg}
}

func (sc *SurveyController) GetQuestions(c *fiber.Ctx) error {
	return utils.Success(c, fiber.StatusOK, survey.Questions)
}

type SurveySubmitInput struct {
	Answers []int `json:"answers" validate:"required"`
}

// SubmitSurvey scores the diagnosis answers and stores the result.
func (sc *SurveyController) SubmitSurvey(c *fiber.Ctx) error {
	tc := middleware.TokenClaims(c)

	var input SurveySubmitInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationError(c, errs)
	}

	result, err := survey.Score(input.Answers)
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}

	answers, _ := json.Marshal(input.Answers)
	areaScores, _ := json.Marshal(result.AreaScores)
	row := models.SurveyResult{
		UserID:     tc.UserID,
		Answers:    datatypes.JSON(answers),
		AreaScores: datatypes.JSON(areaScores),
		Overall:    result.Overall,
		Level:      result.Level,
	}
	if err := sc.DB.Create(&row).Error; err != nil {
		return utils.InternalServerError(c, "Could not store survey result")
	}

	return utils.Created(c, fiber.Map{
		"id":          row.ID,
		"area_scores": result.AreaScores,
		"overall":     result.Overall,
		"level":       result.Level,
	})
}

func (sc *SurveyController) GetLatestResult(c *fiber.Ctx) error {
	tc := middleware.TokenClaims(c)

	var row models.SurveyResult
	err := sc.DB.Where("user_id = ?", tc.UserID).Order("created_at DESC").First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.NotFound(c, "No survey results yet")
	}
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	return utils.Success(c, fiber.StatusOK, row)
}
