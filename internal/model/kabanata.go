package model

// Kabanata is a chapter of Noli Me Tangere. Reference content, immutable after
// seeding; the unlock chain follows Number adjacency.
type Kabanata struct {
	BaseModel
	Number  int    `gorm:"uniqueIndex;not null" json:"number"`
	Title   string `gorm:"size:200;not null" json:"title"`
	Summary string `gorm:"type:text" json:"summary"`
}

func (Kabanata) TableName() string {
	return "kabanatas"
}
