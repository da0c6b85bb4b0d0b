package model

// GalleryImage is artwork tied to a kabanata. Whether a user has unlocked it is
// derived at read time from their word-guess attempt, never stored here.
type GalleryImage struct {
	BaseModel
	KabanataID  uint   `gorm:"index;not null" json:"kabanataId"`
	Title       string `gorm:"size:200;not null" json:"title"`
	URL         string `gorm:"size:255;not null" json:"url"`
	Description string `gorm:"type:text" json:"description"`
}

func (GalleryImage) TableName() string {
	return "image_galleries"
}
