package services

import (
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/TMDT-Web/TMDT-Web-Project-sub000/models"
)

// notify records a notification row. Actual delivery channels (email, SMS,
// push) hang off this table and are handled by a separate worker.
func notify(db *gorm.DB, userID, title, message, kind, refID string) {
	n := models.Notification{
		UserID:      userID,
		Title:       title,
		Message:     message,
		Type:        kind,
		ReferenceID: refID,
	}
	if err := db.Create(&n).Error; err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to record notification")
	}
}

func ListNotifications(db *gorm.DB, userID string) ([]models.Notification, error) {
	var items []models.Notification
	err := db.Where("user_id = ?", userID).Order("created_at DESC").Limit(50).Find(&items).Error
	return items, err
}

func MarkNotificationRead(db *gorm.DB, userID string, id uint) error {
	res := db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return NotFound("notification not found")
	}
	return nil
}
