package model

// GuessCharacter is a Noli character the word-guessing game asks about.
type GuessCharacter struct {
	BaseModel
	Name   string `gorm:"size:100;not null" json:"name"`
	Avatar string `gorm:"size:255" json:"avatar"`
}

func (GuessCharacter) TableName() string {
	return "guesscharacters"
}

// GuessWord is one puzzle round: a clue whose answer is a character or term
// from the chapter. Answers are matched exactly, case sensitive.
type GuessWord struct {
	BaseModel
	KabanataID  uint   `gorm:"index;not null" json:"kabanataId"`
	CharacterID uint   `gorm:"index;not null" json:"characterId"`
	Clue        string `gorm:"type:text;not null" json:"clue"`
	Answer      string `gorm:"size:100;not null" json:"-"`
	Position    int    `gorm:"default:0" json:"position"`

	Character *GuessCharacter `gorm:"foreignKey:CharacterID" json:"character,omitempty"`
}

func (GuessWord) TableName() string {
	return "guess_words"
}
