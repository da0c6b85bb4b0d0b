package repository

import (
	"rizhub_backend/internal/model"

	"gorm.io/gorm"
)

type GuessWordRepository struct {
	DB *gorm.DB
}

func NewGuessWordRepository(db *gorm.DB) *GuessWordRepository {
	return &GuessWordRepository{DB: db}
}

func (r *GuessWordRepository) FindByID(id uint) (*model.GuessWord, error) {
	var word model.GuessWord
	err := r.DB.First(&word, id).Error
	if err != nil {
		return nil, err
	}
	return &word, nil
}

func (r *GuessWordRepository) FindByKabanata(kabanataID uint) ([]model.GuessWord, error) {
	var words []model.GuessWord
	err := r.DB.Preload("Character").
		Where("kabanata_id = ?", kabanataID).
		Order("position ASC").Find(&words).Error
	return words, err
}

func (r *GuessWordRepository) FindCharacter(id uint) (*model.GuessCharacter, error) {
	var character model.GuessCharacter
	err := r.DB.First(&character, id).Error
	if err != nil {
		return nil, err
	}
	return &character, nil
}

func (r *GuessWordRepository) Create(word *model.GuessWord) error {
	return r.DB.Create(word).Error
}

func (r *GuessWordRepository) CreateCharacter(character *model.GuessCharacter) error {
	return r.DB.Create(character).Error
}

// FindBestAttempt returns the highest-scoring attempt for a progress row, or
// gorm.ErrRecordNotFound. Ordered defensively even though the single-row
// invariant should hold.
func (r *GuessWordRepository) FindBestAttempt(tx *gorm.DB, progressID uint) (*model.WordGuessAttempt, error) {
	var attempt model.WordGuessAttempt
	err := tx.Where("kabanata_progress_id = ?", progressID).
		Order("total_score DESC").First(&attempt).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *GuessWordRepository) DeleteAttempts(tx *gorm.DB, progressID uint) error {
	return tx.Unscoped().Where("kabanata_progress_id = ?", progressID).
		Delete(&model.WordGuessAttempt{}).Error
}
