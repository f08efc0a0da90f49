package controllers_test

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thinkhabit/backend/config"
	"thinkhabit/backend/controllers"
	"thinkhabit/backend/middleware"
	"thinkhabit/backend/models"
	"thinkhabit/backend/utils"
)

// Wednesday 2024-06-12 15:00 local; the week runs Mon 06-10 .. Sun 06-16.
var testNow = time.Date(2024, 6, 12, 15, 0, 0, 0, time.Local)

func entry(d, hour int) time.Time {
	return time.Date(2024, 6, d, hour, 0, 0, 0, time.Local)
}

type fakeAssignments struct {
	assignments []models.Assignment
	err         error
}

func (f *fakeAssignments) ActiveAssignments(userID uint) ([]models.Assignment, error) {
	return f.assignments, f.err
}

type fakeJournals struct {
	byCategory   map[uint][]time.Time
	failCategory uint
	all          []time.Time
	recent       []models.JournalEntry
	count        int64
}

func (f *fakeJournals) EntryTimesForCategory(userID, categoryID uint, from, to time.Time) ([]time.Time, error) {
	if categoryID == f.failCategory {
		return nil, errors.New("connection reset")
	}
	var out []time.Time
	for _, t := range f.byCategory[categoryID] {
		if !t.Before(from) && t.Before(to) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeJournals) AllEntryTimes(userID uint) ([]time.Time, error) {
	return f.all, nil
}

func (f *fakeJournals) RecentEntries(userID uint, limit int) ([]models.JournalEntry, error) {
	return f.recent, nil
}

func (f *fakeJournals) CountEntries(userID uint) (int64, error) {
	return f.count, nil
}

func assignmentFor(id, categoryID uint, goal int) models.Assignment {
	a := models.Assignment{
		UserID:     1,
		CategoryID: categoryID,
		WeeklyGoal: goal,
		IsActive:   true,
	}
	a.ID = id
	return a
}

func newDashboardApp(t *testing.T, journals *fakeJournals, assignments *fakeAssignments) (*fiber.App, *config.Config) {
	t.Helper()
	cfg := &config.Config{JWTSecret: "testsecret"}
	dc := &controllers.DashboardController{
		Journals:    journals,
		Assignments: assignments,
		Cfg:         cfg,
		Logger:      log.New(io.Discard, "", 0),
		Now:         func() time.Time { return testNow },
	}

	app := fiber.New()
	auth := middleware.AuthMiddleware(cfg)
	app.Get("/api/dashboard", auth, dc.GetDashboard)
	app.Get("/api/training/assignments", auth, dc.GetTrainingAssignments)
	return app, cfg
}

func authToken(t *testing.T, cfg *config.Config, userID uint, role string) string {
	t.Helper()
	token, err := utils.GenerateJWTToken(userID, role, cfg)
	require.NoError(t, err)
	return token
}

func decodeBody(t *testing.T, resp io.Reader) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp).Decode(&body))
	return body
}

func TestDashboardMissingUserID(t *testing.T) {
	app, cfg := newDashboardApp(t, &fakeJournals{}, &fakeAssignments{})

	req := httptest.NewRequest("GET", "/api/dashboard", nil)
	req.Header.Set("Authorization", authToken(t, cfg, 1, models.RoleUser))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp.Body)
	assert.Equal(t, false, body["success"])
	assert.NotEmpty(t, body["error"])
}

func TestDashboardRejectsNonNumericUserID(t *testing.T) {
	app, cfg := newDashboardApp(t, &fakeJournals{}, &fakeAssignments{})

	req := httptest.NewRequest("GET", "/api/dashboard?userId=abc", nil)
	req.Header.Set("Authorization", authToken(t, cfg, 1, models.RoleUser))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp.Body)
	assert.Equal(t, false, body["success"])
}

func TestDashboardForbiddenForOtherUser(t *testing.T) {
	app, cfg := newDashboardApp(t, &fakeJournals{}, &fakeAssignments{})

	req := httptest.NewRequest("GET", "/api/dashboard?userId=1", nil)
	req.Header.Set("Authorization", authToken(t, cfg, 2, models.RoleUser))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestDashboardAdminCanViewAnyUser(t *testing.T) {
	app, cfg := newDashboardApp(t, &fakeJournals{}, &fakeAssignments{})

	req := httptest.NewRequest("GET", "/api/dashboard?userId=1", nil)
	req.Header.Set("Authorization", authToken(t, cfg, 99, models.RoleAdmin))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestDashboardStats(t *testing.T) {
	journals := &fakeJournals{
		byCategory: map[uint][]time.Time{
			10: {entry(10, 9), entry(11, 20)}, // 2 of 3 this week
		},
		all:   []time.Time{entry(12, 9), entry(11, 20), entry(10, 9)},
		count: 17,
	}
	assignments := &fakeAssignments{assignments: []models.Assignment{
		assignmentFor(1, 10, 3),
	}}
	app, cfg := newDashboardApp(t, journals, assignments)

	req := httptest.NewRequest("GET", "/api/dashboard?userId=1", nil)
	req.Header.Set("Authorization", authToken(t, cfg, 1, models.RoleUser))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp.Body)
	stats := body["data"].(map[string]interface{})["stats"].(map[string]interface{})
	assert.Equal(t, float64(1), stats["assignedCategories"])
	assert.Equal(t, float64(17), stats["completedJournals"])
	assert.Equal(t, float64(3), stats["streakDays"])
	assert.InDelta(t, 2.0/3.0, stats["currentWeekProgress"], 0.01)
	assert.InDelta(t, 0.67, stats["overallCompletionRate"], 0.01)
}

func TestDashboardStreakRequiresTodayEntry(t *testing.T) {
	journals := &fakeJournals{
		all: []time.Time{entry(11, 20), entry(10, 9)}, // nothing today
	}
	app, cfg := newDashboardApp(t, journals, &fakeAssignments{})

	req := httptest.NewRequest("GET", "/api/dashboard?userId=1", nil)
	req.Header.Set("Authorization", authToken(t, cfg, 1, models.RoleUser))

	resp, err := app.Test(req)
	require.NoError(t, err)

	body := decodeBody(t, resp.Body)
	stats := body["data"].(map[string]interface{})["stats"].(map[string]interface{})
	assert.Equal(t, float64(0), stats["streakDays"])
}

func TestDashboardTotalFailureIs500(t *testing.T) {
	app, cfg := newDashboardApp(t, &fakeJournals{}, &fakeAssignments{err: errors.New("db down")})

	req := httptest.NewRequest("GET", "/api/dashboard?userId=1", nil)
	req.Header.Set("Authorization", authToken(t, cfg, 1, models.RoleUser))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	body := decodeBody(t, resp.Body)
	assert.Equal(t, false, body["success"])
	// No internals leaked.
	assert.NotContains(t, body["message"], "db down")
}

func TestTrainingAssignmentsPartialFailureDegrades(t *testing.T) {
	journals := &fakeJournals{
		byCategory: map[uint][]time.Time{
			10: {entry(10, 9), entry(11, 20)},
			30: {entry(10, 8), entry(10, 9), entry(11, 7)},
		},
		failCategory: 20,
	}
	assignments := &fakeAssignments{assignments: []models.Assignment{
		assignmentFor(1, 10, 3),
		assignmentFor(2, 20, 5),
		assignmentFor(3, 30, 2),
	}}
	app, cfg := newDashboardApp(t, journals, assignments)

	req := httptest.NewRequest("GET", "/api/training/assignments?userId=1", nil)
	req.Header.Set("Authorization", authToken(t, cfg, 1, models.RoleUser))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp.Body)
	data := body["data"].([]interface{})
	require.Len(t, data, 3)

	first := data[0].(map[string]interface{})["weeklyProgress"].(map[string]interface{})
	assert.Equal(t, float64(2), first["completed"])
	assert.Equal(t, float64(3), first["target"])
	assert.Equal(t, float64(67), first["percentage"])

	// The failing branch degrades to zero values with its own goal kept.
	second := data[1].(map[string]interface{})["weeklyProgress"].(map[string]interface{})
	assert.Equal(t, float64(0), second["completed"])
	assert.Equal(t, float64(5), second["target"])
	assert.Equal(t, float64(0), second["percentage"])

	third := data[2].(map[string]interface{})["weeklyProgress"].(map[string]interface{})
	assert.Equal(t, float64(3), third["completed"])
	assert.Equal(t, float64(2), third["target"])
	assert.Equal(t, float64(100), third["percentage"])
}

func TestTrainingAssignmentsEmpty(t *testing.T) {
	app, cfg := newDashboardApp(t, &fakeJournals{}, &fakeAssignments{})

	req := httptest.NewRequest("GET", "/api/training/assignments?userId=1", nil)
	req.Header.Set("Authorization", authToken(t, cfg, 1, models.RoleUser))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp.Body)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "No active assignments", body["message"])
	assert.Empty(t, body["data"])
}

func TestTrainingAssignmentsMissingUserID(t *testing.T) {
	app, cfg := newDashboardApp(t, &fakeJournals{}, &fakeAssignments{})

	req := httptest.NewRequest("GET", "/api/training/assignments", nil)
	req.Header.Set("Authorization", authToken(t, cfg, 1, models.RoleUser))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestDashboardRejectsMissingToken(t *testing.T) {
	app, _ := newDashboardApp(t, &fakeJournals{}, &fakeAssignments{})

	req := httptest.NewRequest("GET", "/api/dashboard?userId=1", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
