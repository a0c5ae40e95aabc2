package repository

import (
	"time"

	"github.com/artisanhub/internal/models"

	"gorm.io/gorm"
)

// NotificationRepository notification persistence
type NotificationRepository interface {
	Create(notification *models.Notification) error
	CreateBatch(notifications []models.Notification) error
	List(filter NotificationListFilter) ([]models.Notification, int64, error)
	GetByID(id uint) (*models.Notification, error)
	CountUnread(userID uint) (int64, error)
	MarkRead(id, userID uint, at time.Time) (int64, error)
}

// GormNotificationRepository gorm implementation
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository builds the notification repository
func NewNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

func (r *GormNotificationRepository) Create(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

func (r *GormNotificationRepository) CreateBatch(notifications []models.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	return r.db.Create(&notifications).Error
}

// List newest first
func (r *GormNotificationRepository) List(filter NotificationListFilter) ([]models.Notification, int64, error) {
	query := r.db.Model(&models.Notification{}).Where("user_id = ?", filter.UserID)
	if filter.UnreadOnly {
		query = query.Where("read_at IS NULL")
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = query.Scopes(pageScope(filter.Page, filter.PageSize))

	var notifications []models.Notification
	if err := query.Order("created_at DESC, id DESC").Find(&notifications).Error; err != nil {
		return nil, 0, err
	}
	return notifications, total, nil
}

func (r *GormNotificationRepository) GetByID(id uint) (*models.Notification, error) {
	return firstOrNil[models.Notification](r.db, id)
}

func (r *GormNotificationRepository) CountUnread(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).Where("user_id = ? AND read_at IS NULL", userID).Count(&count).Error
	return count, err
}

// MarkRead stamps read_at on the user's own notification; already-read rows are left alone
func (r *GormNotificationRepository) MarkRead(id, userID uint, at time.Time) (int64, error) {
	result := r.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ? AND read_at IS NULL", id, userID).
		Update("read_at", at)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
