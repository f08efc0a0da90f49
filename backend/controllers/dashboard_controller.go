package controllers

import (
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"thinkhabit/backend/config"
	"thinkhabit/backend/middleware"
	"thinkhabit/backend/models"
	"thinkhabit/backend/progress"
	"thinkhabit/backend/store"
	"thinkhabit/backend/utils"
)

// DashboardController serves the dashboard and the per-assignment progress
// list. It reads through the store interfaces so the aggregation logic can be
// tested with fakes.
type DashboardController struct {
	Journals    store.JournalSource
	Assignments store.AssignmentSource
	Cfg         *config.Config
	Logger      *log.Logger

	// Now is swappable in tests; defaults to time.Now.
	Now func() time.Time
}

func NewDashboardController(db *gorm.DB, cfg *config.Config, logger *log.Logger) *DashboardController {
	return &DashboardController{
		Journals:    store.NewGormJournalSource(db),
		Assignments: store.NewGormAssignmentSource(db),
		Cfg:         cfg,
		Logger:      logger,
		Now:         time.Now,
	}
}

// subjectUserID validates the userId query parameter and checks that the
// caller is either the subject or an admin. When ok is false the rejection
// has already been written and the handler must return err without rendering.
func (dc *DashboardController) subjectUserID(c *fiber.Ctx) (userID uint, ok bool, err error) {
	raw := c.Query("userId")
	if raw == "" {
		return 0, false, utils.BadRequest(c, "userId query parameter is required")
	}
	id, parseErr := strconv.ParseUint(raw, 10, 32)
	if parseErr != nil {
		return 0, false, utils.BadRequest(c, "userId must be a valid ID")
	}

	tc := middleware.TokenClaims(c)
	if tc == nil {
		return 0, false, utils.Unauthorized(c, "Unauthorized")
	}
	if tc.UserID != uint(id) && tc.Role != models.RoleAdmin {
		return 0, false, utils.Forbidden(c, "Cannot view another user's data")
	}
	return uint(id), true, nil
}

// GetDashboard godoc
// @Summary Get dashboard stats
// @Description Returns weekly progress stats, day streak and recent journals
// @Tags dashboard
// @Produce json
// @Param userId query int true "Subject user ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /dashboard [get]
func (dc *DashboardController) GetDashboard(c *fiber.Ctx) error {
	userID, ok, err := dc.subjectUserID(c)
	if !ok {
		return err
	}
	return dc.renderDashboard(c, userID)
}

// GetWidgetDashboard serves the same payload to the embeddable widget and the
// desktop wrapper; the subject comes from the widget token, not a parameter.
func (dc *DashboardController) GetWidgetDashboard(c *fiber.Ctx) error {
	tc := middleware.TokenClaims(c)
	if tc == nil {
		return utils.Unauthorized(c, "Unauthorized")
	}
	return dc.renderDashboard(c, tc.UserID)
}

func (dc *DashboardController) renderDashboard(c *fiber.Ctx, userID uint) error {
	now := dc.Now()

	assignments, err := dc.Assignments.ActiveAssignments(userID)
	if err != nil {
		dc.Logger.Printf("dashboard: assignments for user %d: %v", userID, err)
		return utils.InternalServerError(c, "Failed to load dashboard")
	}

	weekly := dc.weeklyForAssignments(userID, assignments, now)

	// A failure on any secondary read degrades that number instead of failing
	// the whole response; the client can always refetch.
	streak := 0
	if times, err := dc.Journals.AllEntryTimes(userID); err != nil {
		dc.Logger.Printf("dashboard: entry times for user %d: %v", userID, err)
	} else {
		streak = progress.ComputeStreak(times, now)
	}

	var completedJournals int64
	if n, err := dc.Journals.CountEntries(userID); err != nil {
		dc.Logger.Printf("dashboard: entry count for user %d: %v", userID, err)
	} else {
		completedJournals = n
	}

	recent, err := dc.Journals.RecentEntries(userID, 5)
	if err != nil {
		dc.Logger.Printf("dashboard: recent entries for user %d: %v", userID, err)
		recent = nil
	}

	weekProgress, completionRate := summarize(weekly)

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"stats": fiber.Map{
			"assignedCategories":    len(assignments),
			"completedJournals":     completedJournals,
			"currentWeekProgress":   weekProgress,
			"overallCompletionRate": completionRate,
			"streakDays":            streak,
		},
		"recentJournals": assembleRecent(recent),
	})
}

// GetTrainingAssignments godoc
// @Summary List active assignments with weekly progress
// @Tags training
// @Produce json
// @Param userId query int true "Subject user ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /training/assignments [get]
func (dc *DashboardController) GetTrainingAssignments(c *fiber.Ctx) error {
	userID, ok, err := dc.subjectUserID(c)
	if !ok {
		return err
	}
	now := dc.Now()

	assignments, err := dc.Assignments.ActiveAssignments(userID)
	if err != nil {
		dc.Logger.Printf("assignments: list for user %d: %v", userID, err)
		return utils.InternalServerError(c, "Failed to load assignments")
	}
	if len(assignments) == 0 {
		return utils.SuccessWithMessage(c, fiber.StatusOK, []fiber.Map{}, "No active assignments")
	}

	weekly := dc.weeklyForAssignments(userID, assignments, now)

	result := make([]fiber.Map, len(assignments))
	for i, a := range assignments {
		result[i] = fiber.Map{
			"id":             a.ID,
			"categoryId":     a.CategoryID,
			"categoryName":   a.Category.Name,
			"categoryColor":  a.Category.Color,
			"weeklyGoal":     a.EffectiveGoal(),
			"note":           a.Note,
			"assignedAt":     a.CreatedAt,
			"weeklyProgress": weekly[i],
		}
	}
	return utils.Success(c, fiber.StatusOK, result)
}

// weeklyForAssignments fans out one journal fetch per assignment and waits for
// all of them. Branches write disjoint slice slots, so there is no shared
// state; a failing branch degrades to a zero-value result and never cancels
// its siblings.
func (dc *DashboardController) weeklyForAssignments(userID uint, assignments []models.Assignment, now time.Time) []progress.Weekly {
	start := progress.WeekStart(now)
	end := start.AddDate(0, 0, 7)

	results := make([]progress.Weekly, len(assignments))
	var wg sync.WaitGroup
	for i, a := range assignments {
		wg.Add(1)
		go func(i int, a models.Assignment) {
			defer wg.Done()
			entries, err := dc.Journals.EntryTimesForCategory(userID, a.CategoryID, start, end)
			if err != nil {
				dc.Logger.Printf("dashboard: entries for assignment %d: %v", a.ID, err)
				results[i] = progress.Weekly{Completed: 0, Target: a.EffectiveGoal(), Percentage: 0}
				return
			}
			results[i] = progress.ComputeWeeklyProgress(a.WeeklyGoal, entries, now)
		}(i, a)
	}
	wg.Wait()
	return results
}

// summarize reduces per-assignment progress to the two dashboard ratios,
// both in [0, 1].
func summarize(weekly []progress.Weekly) (weekProgress, completionRate float64) {
	if len(weekly) == 0 {
		return 0, 0
	}
	for _, w := range weekly {
		ratio := float64(w.Completed) / float64(w.Target)
		if ratio > 1 {
			ratio = 1
		}
		weekProgress += ratio
		completionRate += float64(w.Percentage) / 100
	}
	n := float64(len(weekly))
	return weekProgress / n, completionRate / n
}

func assembleRecent(entries []models.JournalEntry) []fiber.Map {
	out := make([]fiber.Map, len(entries))
	for i, e := range entries {
		out[i] = fiber.Map{
			"id":           e.ID,
			"title":        e.Title,
			"categoryId":   e.CategoryID,
			"categoryName": e.Category.Name,
			"createdAt":    e.CreatedAt,
		}
	}
	return out
}
