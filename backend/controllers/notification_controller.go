package controllers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"thinkhabit/backend/config"
	"thinkhabit/backend/middleware"
	"thinkhabit/backend/models"
	"thinkhabit/backend/utils"
)

type NotificationController struct {
	DB     *gorm.DB
	Cfg    *config.Config
	Logger *log.Logger
}

func NewNotificationController(db *gorm.DB, cfg *config.Config, logger *log.Logger) *NotificationController {
	return &NotificationController{DB: db, Cfg: cfg, Logger: logger}
}

func (nc *NotificationController) ListNotifications(c *fiber.Ctx) error {
	tc := middleware.TokenClaims(c)

	query := nc.DB.Where("user_id = ?", tc.UserID).Order("created_at DESC").Limit(50)
	if c.Query("unread") == "true" {
		query = query.Where("is_read = ?", false)
	}

	var notifications []models.Notification
	if err := query.Find(&notifications).Error; err != nil {
		return utils.InternalServerError(c, "Failed to fetch notifications")
	}

	return utils.Success(c, fiber.StatusOK, notifications, fiber.Map{"unread": nc.unreadCount(tc.UserID)})
}

// unreadCount degrades to zero on a query failure; the badge is cosmetic and
// must not take the whole listing down, but the failure has to be logged.
func (nc *NotificationController) unreadCount(userID uint) int64 {
	var unread int64
	if err := nc.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&unread).Error; err != nil {
		nc.Logger.Printf("notifications: unread count for user %d: %v", userID, err)
		return 0
	}
	return unread
}

func (nc *NotificationController) MarkRead(c *fiber.Ctx) error {
	tc := middleware.TokenClaims(c)

	var notification models.Notification
	if err := nc.DB.First(&notification, c.Params("id")).Error; err != nil {
		return utils.NotFound(c, "Notification not found")
	}
	if notification.UserID != tc.UserID {
		return utils.Forbidden(c, "Cannot modify another user's notification")
	}

	notification.IsRead = true
	if err := nc.DB.Save(&notification).Error; err != nil {
		return utils.InternalServerError(c, "Could not update notification")
	}
	return utils.Success(c, fiber.StatusOK, notification)
}

func (nc *NotificationController) MarkAllRead(c *fiber.Ctx) error {
	tc := middleware.TokenClaims(c)

	if err := nc.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", tc.UserID, false).
		Update("is_read", true).Error; err != nil {
		return utils.InternalServerError(c, "Could not update notifications")
	}
	return utils.NoContent(c)
}
