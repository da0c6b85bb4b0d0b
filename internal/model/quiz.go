package model

// Quiz is a single multiple-choice question for a kabanata.
// The correct answer letter never leaves the server.
type Quiz struct {
	BaseModel
	KabanataID uint   `gorm:"index;not null" json:"kabanataId"`
	Question   string `gorm:"type:text;not null" json:"question"`
	ChoiceA    string `gorm:"size:255;not null" json:"choiceA"`
	ChoiceB    string `gorm:"size:255;not null" json:"choiceB"`
	ChoiceC    string `gorm:"size:255;not null" json:"choiceC"`
	Answer     string `gorm:"size:1;not null" json:"-"`
	Position   int    `gorm:"default:0" json:"position"`

	Kabanata *Kabanata `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (Quiz) TableName() string {
	return "quizzes"
}
