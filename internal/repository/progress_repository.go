package repository

import (
	"errors"
	"rizhub_backend/internal/model"

	"gorm.io/gorm"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

// GetOrCreate returns the progress row for (user, kabanata), creating a locked
// zero row on first touch.
func (r *ProgressRepository) GetOrCreate(tx *gorm.DB, userID, kabanataID uint) (*model.KabanataProgress, error) {
	var progress model.KabanataProgress
	err := tx.Where("user_id = ? AND kabanata_id = ?", userID, kabanataID).
		First(&progress).Error
	if err == nil {
		return &progress, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	progress = model.KabanataProgress{
		UserID:     userID,
		KabanataID: kabanataID,
	}
	if err := tx.Create(&progress).Error; err != nil {
		return nil, err
	}
	return &progress, nil
}

func (r *ProgressRepository) Find(userID, kabanataID uint) (*model.KabanataProgress, error) {
	var progress model.KabanataProgress
	err := r.DB.Where("user_id = ? AND kabanata_id = ?", userID, kabanataID).
		First(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

// FindAllForUser returns the user's progress rows keyed by kabanata id.
func (r *ProgressRepository) FindAllForUser(userID uint) (map[uint]model.KabanataProgress, error) {
	var rows []model.KabanataProgress
	if err := r.DB.Where("user_id = ?", userID).Find(&rows).Error; err != nil {
		return nil, err
	}

	byKabanata := make(map[uint]model.KabanataProgress, len(rows))
	for _, row := range rows {
		byKabanata[row.KabanataID] = row
	}
	return byKabanata, nil
}

// AttemptScores carries the child-row totals a display path derives progress from.
type AttemptScores struct {
	QuizScore      int
	WordGuessScore int
}

// ChildScores loads per-progress attempt totals for a set of progress rows in
// two queries, for the challenge-list view.
func (r *ProgressRepository) ChildScores(progressIDs []uint) (map[uint]AttemptScores, error) {
	scores := make(map[uint]AttemptScores, len(progressIDs))
	if len(progressIDs) == 0 {
		return scores, nil
	}

	var quizRows []model.QuizAttempt
	if err := r.DB.Where("kabanata_progress_id IN ?", progressIDs).Find(&quizRows).Error; err != nil {
		return nil, err
	}
	for _, row := range quizRows {
		s := scores[row.KabanataProgressID]
		s.QuizScore += row.Score
		scores[row.KabanataProgressID] = s
	}

	var wordRows []model.WordGuessAttempt
	if err := r.DB.Where("kabanata_progress_id IN ?", progressIDs).Find(&wordRows).Error; err != nil {
		return nil, err
	}
	for _, row := range wordRows {
		s := scores[row.KabanataProgressID]
		s.WordGuessScore += row.TotalScore
		scores[row.KabanataProgressID] = s
	}

	return scores, nil
}
