package model

type NotificationType string

const (
	NotificationGeneric     NotificationType = "generic"
	NotificationImageUnlock NotificationType = "image_unlock"
)

// Notification is owned by a user. KabanataID/GalleryImageID back the
// content-based idempotency check for unlock notices; there is no unique
// constraint on purpose.
type Notification struct {
	BaseModel
	UserID         uint             `gorm:"index;not null" json:"userId"`
	Type           NotificationType `gorm:"size:30;default:'generic'" json:"type"`
	Title          string           `gorm:"size:200;not null" json:"title"`
	Message        string           `gorm:"type:text" json:"message"`
	IsRead         bool             `gorm:"default:false" json:"isRead"`
	KabanataID     *uint            `gorm:"index" json:"kabanataId,omitempty"`
	GalleryImageID *uint            `gorm:"index" json:"galleryImageId,omitempty"`

	User *User `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (Notification) TableName() string {
	return "notifications"
}
