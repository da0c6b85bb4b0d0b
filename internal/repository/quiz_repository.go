package repository

import (
	"rizhub_backend/internal/model"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

func (r *QuizRepository) FindByID(id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.First(&quiz, id).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *QuizRepository) FindByKabanata(kabanataID uint) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	err := r.DB.Where("kabanata_id = ?", kabanataID).
		Order("position ASC").Find(&quizzes).Error
	return quizzes, err
}

func (r *QuizRepository) Create(quiz *model.Quiz) error {
	return r.DB.Create(quiz).Error
}

// FindAttempt returns the single attempt row for a progress, or
// gorm.ErrRecordNotFound.
func (r *QuizRepository) FindAttempt(tx *gorm.DB, progressID uint) (*model.QuizAttempt, error) {
	var attempt model.QuizAttempt
	err := tx.Where("kabanata_progress_id = ?", progressID).First(&attempt).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

// SumScores totals the attempt scores for a progress row. There is at most one
// row, but summing keeps the aggregate honest if that ever changes.
func (r *QuizRepository) SumScores(tx *gorm.DB, progressID uint) (int, error) {
	var total int64
	err := tx.Model(&model.QuizAttempt{}).
		Where("kabanata_progress_id = ?", progressID).
		Select("COALESCE(SUM(score), 0)").Scan(&total).Error
	return int(total), err
}

func (r *QuizRepository) DeleteAttempts(tx *gorm.DB, progressID uint) error {
	return tx.Unscoped().Where("kabanata_progress_id = ?", progressID).
		Delete(&model.QuizAttempt{}).Error
}
