package model

// KabanataProgress is the per-(user, kabanata) aggregate. Progress and stars
// are written only by the reconciliation flow; the stored Progress value is a
// snapshot of the last reconciliation, read paths re-derive from the attempt
// rows below. Stars and Unlocked only ever move up.
type KabanataProgress struct {
	BaseModel
	UserID     uint `gorm:"not null;uniqueIndex:idx_user_kabanata" json:"userId"`
	KabanataID uint `gorm:"not null;uniqueIndex:idx_user_kabanata" json:"kabanataId"`
	Progress   int  `gorm:"default:0" json:"progress"` // 0-10
	Stars      int  `gorm:"default:0" json:"stars"`    // 0-3
	Unlocked   bool `gorm:"default:false" json:"unlocked"`

	User     *User     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Kabanata *Kabanata `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (KabanataProgress) TableName() string {
	return "user_kabanata_progress"
}

// QuizAttempt keeps the single best quiz run for a progress row. The unique
// index on KabanataProgressID enforces at-most-one; a new run replaces it only
// when its score is strictly higher.
type QuizAttempt struct {
	BaseModel
	KabanataProgressID uint   `gorm:"not null;uniqueIndex" json:"kabanataProgressId"`
	QuizID             uint   `gorm:"not null" json:"quizId"`
	SelectedAnswer     string `gorm:"size:1" json:"selectedAnswer"`
	IsCorrect          bool   `gorm:"default:false" json:"isCorrect"`
	Score              int    `gorm:"default:0" json:"score"`
	QuestionNumber     int    `gorm:"default:0" json:"questionNumber"`
	TotalQuestions     int    `gorm:"default:0" json:"totalQuestions"`
	Completed          bool   `gorm:"default:false" json:"completed"`

	KabanataProgress *KabanataProgress `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (QuizAttempt) TableName() string {
	return "quiz_progress"
}

// WordGuessAttempt keeps the single best word-guess run, compared by
// TotalScore (0-5). CurrentIndex is the resumability cursor.
type WordGuessAttempt struct {
	BaseModel
	KabanataProgressID uint `gorm:"not null;uniqueIndex" json:"kabanataProgressId"`
	CharacterID        uint `gorm:"not null" json:"characterId"`
	GuessWordID        uint `gorm:"not null" json:"guessWordId"`
	CurrentIndex       int  `gorm:"default:0" json:"currentIndex"`
	Completed          bool `gorm:"default:false" json:"completed"`
	TotalScore         int  `gorm:"default:0" json:"totalScore"`

	KabanataProgress *KabanataProgress `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (WordGuessAttempt) TableName() string {
	return "guessword_progress"
}

// VideoProgress is upserted per (video, progress); last write wins, no
// keep-best rule.
type VideoProgress struct {
	BaseModel
	KabanataProgressID uint `gorm:"not null;uniqueIndex:idx_video_progress" json:"kabanataProgressId"`
	VideoID            uint `gorm:"not null;uniqueIndex:idx_video_progress" json:"videoId"`
	Completed          bool `gorm:"default:false" json:"completed"`
	SecondsWatched     int  `gorm:"default:0" json:"secondsWatched"`
	PerfectScore       bool `gorm:"default:false" json:"perfectScore"`

	KabanataProgress *KabanataProgress `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (VideoProgress) TableName() string {
	return "video_progress"
}
