package model

// Video is a lesson video attached to a kabanata.
type Video struct {
	BaseModel
	KabanataID uint    `gorm:"index;not null" json:"kabanataId"`
	Title      string  `gorm:"size:200;not null" json:"title"`
	URL        string  `gorm:"size:255;not null" json:"url"`
	Thumbnail  string  `gorm:"size:255" json:"thumbnail"`
	Duration   float64 `gorm:"default:0" json:"duration"`
}

func (Video) TableName() string {
	return "videos"
}
