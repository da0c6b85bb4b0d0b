package repository

import (
	"rizhub_backend/internal/model"

	"gorm.io/gorm"
)

type NotificationRepository struct {
	DB *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{DB: db}
}

func (r *NotificationRepository) Create(n *model.Notification) error {
	return r.DB.Create(n).Error
}

func (r *NotificationRepository) FindByUser(userID uint) ([]model.Notification, error) {
	var notifications []model.Notification
	err := r.DB.Where("user_id = ?", userID).
		Order("created_at DESC").Find(&notifications).Error
	return notifications, err
}

// UnlockExists is the content-based idempotency guard: has this user already
// been told about this image?
func (r *NotificationRepository) UnlockExists(userID, imageID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Notification{}).
		Where("user_id = ? AND type = ? AND gallery_image_id = ?",
			userID, model.NotificationImageUnlock, imageID).
		Count(&count).Error
	return count > 0, err
}

// SetRead flips the read flag on a single notification, scoped to its owner.
// Returns the number of rows touched so callers can 404 on foreign ids.
func (r *NotificationRepository) SetRead(userID, notificationID uint, read bool) (int64, error) {
	res := r.DB.Model(&model.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("is_read", read)
	return res.RowsAffected, res.Error
}

func (r *NotificationRepository) MarkAllRead(userID uint) error {
	return r.DB.Model(&model.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
}

func (r *NotificationRepository) Delete(userID, notificationID uint) (int64, error) {
	res := r.DB.Where("id = ? AND user_id = ?", notificationID, userID).
		Delete(&model.Notification{})
	return res.RowsAffected, res.Error
}

func (r *NotificationRepository) DeleteAll(userID uint) error {
	return r.DB.Where("user_id = ?", userID).Delete(&model.Notification{}).Error
}
