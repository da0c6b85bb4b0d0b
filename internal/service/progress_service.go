package service

import (
	"context"
	"errors"
	"rizhub_backend/internal/model"
	"rizhub_backend/internal/repository"
	"rizhub_backend/internal/util"
	"rizhub_backend/pkg/logger"
	"rizhub_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ProgressService owns the progress-reconciliation workflow: staging in-flight
// attempts, committing them into the progress tables on chapter completion,
// and resetting a chapter. All completion writes happen inside one
// transaction; every merge rule is "strictly better or leave alone", so
// replays and double submits converge instead of corrupting state.
type ProgressService struct {
	ProgressRepo  *repository.ProgressRepository
	QuizRepo      *repository.QuizRepository
	GuessWordRepo *repository.GuessWordRepository
	VideoRepo     *repository.VideoRepository
	KabanataRepo  *repository.KabanataRepository
	Stager        ActivityStager
	Notifications *NotificationService
	DB            *gorm.DB
}

func NewProgressService(
	progressRepo *repository.ProgressRepository,
	quizRepo *repository.QuizRepository,
	guessWordRepo *repository.GuessWordRepository,
	videoRepo *repository.VideoRepository,
	kabanataRepo *repository.KabanataRepository,
	stager ActivityStager,
	notifications *NotificationService,
	db *gorm.DB,
) *ProgressService {
	return &ProgressService{
		ProgressRepo:  progressRepo,
		QuizRepo:      quizRepo,
		GuessWordRepo: guessWordRepo,
		VideoRepo:     videoRepo,
		KabanataRepo:  kabanataRepo,
		Stager:        stager,
		Notifications: notifications,
		DB:            db,
	}
}

type QuizProgressRequest struct {
	KabanataID     uint   `json:"kabanata_id" binding:"required"`
	QuizID         uint   `json:"quiz_id" binding:"required"`
	SelectedAnswer string `json:"selected_answer" binding:"required,oneof=A B C a b c"`
	Score          int    `json:"score" binding:"min=0"`
	QuestionNumber int    `json:"question_number"`
	TotalQuestions int    `json:"total_questions"`
	Completed      bool   `json:"completed"`
}

type WordGuessProgressRequest struct {
	KabanataID   uint   `json:"kabanata_id" binding:"required"`
	CharacterID  uint   `json:"character_id" binding:"required"`
	QuestionID   uint   `json:"question_id" binding:"required"`
	Guess        string `json:"guess"`
	CurrentIndex int    `json:"current_index"`
	Completed    bool   `json:"completed"`
	TotalScore   int    `json:"total_score" binding:"min=0,max=5"`
}

type VideoProgressRequest struct {
	KabanataID     uint `json:"kabanata_id" binding:"required"`
	VideoID        uint `json:"video_id" binding:"required"`
	Completed      bool `json:"completed"`
	SecondsWatched int  `json:"seconds_watched"`
	PerfectScore   bool `json:"perfect_score"`
}

// CompletionResult is what a complete-chapter call reports back.
type CompletionResult struct {
	KabanataID     uint  `json:"kabanataId"`
	Progress       int   `json:"progress"`
	Stars          int   `json:"stars"`
	QuizScore      int   `json:"quizScore"`
	WordGuessScore int   `json:"wordGuessScore"`
	Perfect        bool  `json:"perfect"`
	NextKabanataID *uint `json:"nextKabanataId,omitempty"`
}

// StageQuizAnswer evaluates one quiz answer and stages it. ShouldSave is
// decided here against the persisted best so the commit path knows whether
// this run is worth writing; a first-ever attempt always saves.
func (s *ProgressService) StageQuizAnswer(ctx context.Context, userID uint, req QuizProgressRequest) (bool, error) {
	if _, err := s.KabanataRepo.FindByID(req.KabanataID); err != nil {
		return false, util.ErrKabanataNotFound
	}
	quiz, err := s.QuizRepo.FindByID(req.QuizID)
	if err != nil {
		return false, util.ErrQuizNotFound
	}

	isCorrect := EvaluateQuizAnswer(req.SelectedAnswer, quiz.Answer)

	shouldSave := true
	if progress, err := s.ProgressRepo.Find(userID, req.KabanataID); err == nil {
		if existing, err := s.QuizRepo.FindAttempt(s.DB, progress.ID); err == nil {
			shouldSave = req.Score > existing.Score
		}
	}

	entry := QuizStage{
		QuizID:         req.QuizID,
		SelectedAnswer: req.SelectedAnswer,
		IsCorrect:      isCorrect,
		Score:          req.Score,
		QuestionNumber: req.QuestionNumber,
		TotalQuestions: req.TotalQuestions,
		Completed:      req.Completed,
		ShouldSave:     shouldSave,
	}
	if err := s.Stager.StageQuiz(ctx, userID, req.KabanataID, entry); err != nil {
		return false, err
	}
	return isCorrect, nil
}

// StageWordGuess evaluates one word-guess answer and stages the run state.
func (s *ProgressService) StageWordGuess(ctx context.Context, userID uint, req WordGuessProgressRequest) (bool, error) {
	if _, err := s.KabanataRepo.FindByID(req.KabanataID); err != nil {
		return false, util.ErrKabanataNotFound
	}
	word, err := s.GuessWordRepo.FindByID(req.QuestionID)
	if err != nil {
		return false, util.ErrGuessWordNotFound
	}

	isCorrect := EvaluateWordGuess(req.Guess, word.Answer)

	stage := WordGuessStage{
		CharacterID:  req.CharacterID,
		GuessWordID:  req.QuestionID,
		CurrentIndex: req.CurrentIndex,
		Completed:    req.Completed,
		TotalScore:   req.TotalScore,
		IsCorrect:    isCorrect,
	}
	if err := s.Stager.StageWordGuess(ctx, userID, req.KabanataID, stage); err != nil {
		return false, err
	}
	return isCorrect, nil
}

// StageVideo stages watch state; last write wins at commit, no keep-best rule.
func (s *ProgressService) StageVideo(ctx context.Context, userID uint, req VideoProgressRequest) error {
	if _, err := s.KabanataRepo.FindByID(req.KabanataID); err != nil {
		return util.ErrKabanataNotFound
	}
	video, err := s.VideoRepo.FindByID(req.VideoID)
	if err != nil || video.KabanataID != req.KabanataID {
		return util.ErrVideoNotFound
	}

	return s.Stager.StageVideo(ctx, userID, req.KabanataID, VideoStage{
		VideoID:        req.VideoID,
		Completed:      req.Completed,
		SecondsWatched: req.SecondsWatched,
		PerfectScore:   req.PerfectScore,
	})
}

// CompleteKabanata reconciles everything staged for (user, kabanata) into the
// progress tables, recomputes the aggregate, unlocks the next chapter, and
// fires gallery-unlock notices on a perfect word-guess score.
func (s *ProgressService) CompleteKabanata(ctx context.Context, userID, kabanataID uint) (*CompletionResult, error) {
	kabanata, err := s.KabanataRepo.FindByID(kabanataID)
	if err != nil {
		return nil, util.ErrKabanataNotFound
	}

	staged, err := s.Stager.ReadAll(ctx, userID, kabanataID)
	if err != nil {
		return nil, err
	}

	result := &CompletionResult{KabanataID: kabanataID}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		progress, err := s.ProgressRepo.GetOrCreate(tx, userID, kabanataID)
		if err != nil {
			return err
		}

		for _, entry := range staged.Quiz {
			if !entry.ShouldSave {
				continue
			}
			if err := s.upsertQuizAttempt(tx, progress.ID, entry); err != nil {
				return err
			}
		}

		// A malformed word-guess slot skips this branch only; the quiz and
		// video branches still commit.
		if staged.WordGuess != nil {
			if staged.WordGuess.Valid() {
				if err := s.upsertWordGuessAttempt(tx, progress.ID, *staged.WordGuess); err != nil {
					return err
				}
			} else {
				logger.Log.Warn("skipping malformed staged word-guess payload",
					zap.Uint("userId", userID), zap.Uint("kabanataId", kabanataID))
			}
		}

		if staged.Video != nil && staged.Video.VideoID != 0 {
			if err := s.upsertVideoProgress(tx, progress.ID, *staged.Video); err != nil {
				return err
			}
		}

		quizScore, err := s.QuizRepo.SumScores(tx, progress.ID)
		if err != nil {
			return err
		}
		wordGuessScore := 0
		if best, err := s.GuessWordRepo.FindBestAttempt(tx, progress.ID); err == nil {
			wordGuessScore = best.TotalScore
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		progress.Progress = ClampProgress(quizScore + wordGuessScore)
		if stars := CalculateStars(wordGuessScore); stars > progress.Stars {
			progress.Stars = stars
		}
		progress.Unlocked = true
		if err := tx.Save(progress).Error; err != nil {
			return err
		}

		result.Progress = progress.Progress
		result.Stars = progress.Stars
		result.QuizScore = quizScore
		result.WordGuessScore = wordGuessScore
		result.Perfect = wordGuessScore == PerfectWordGuessScore

		// Chain unlock: the next ordinal, if it exists. End of the novel is a
		// no-op, never an error.
		var next model.Kabanata
		err = tx.Where("number = ?", kabanata.Number+1).First(&next).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		nextProgress, err := s.ProgressRepo.GetOrCreate(tx, userID, next.ID)
		if err != nil {
			return err
		}
		if !nextProgress.Unlocked {
			nextProgress.Unlocked = true
			if err := tx.Save(nextProgress).Error; err != nil {
				return err
			}
		}
		result.NextKabanataID = &next.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Staging is cleared unconditionally after a successful commit, even when
	// every branch above was a no-op.
	if err := s.Stager.Clear(ctx, userID, kabanataID); err != nil {
		logger.Log.Error("failed to clear staged activities",
			zap.Uint("userId", userID), zap.Uint("kabanataId", kabanataID), zap.Error(err))
	}

	monitoring.ChapterCompletions.WithLabelValues(boolLabel(result.Perfect)).Inc()

	// Best effort: an unlock notice that fails to send must never claw back
	// committed progress.
	if result.Perfect && s.Notifications != nil {
		if err := s.Notifications.NotifyImageUnlock(userID, kabanataID); err != nil {
			logger.Log.Error("gallery unlock notification failed",
				zap.Uint("userId", userID), zap.Uint("kabanataId", kabanataID), zap.Error(err))
		}
	}

	return result, nil
}

// upsertQuizAttempt keeps the single best quiz row: insert when absent,
// overwrite in place only on a strictly higher score.
func (s *ProgressService) upsertQuizAttempt(tx *gorm.DB, progressID uint, entry QuizStage) error {
	existing, err := s.QuizRepo.FindAttempt(tx, progressID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		attempt := model.QuizAttempt{
			KabanataProgressID: progressID,
			QuizID:             entry.QuizID,
			SelectedAnswer:     entry.SelectedAnswer,
			IsCorrect:          entry.IsCorrect,
			Score:              entry.Score,
			QuestionNumber:     entry.QuestionNumber,
			TotalQuestions:     entry.TotalQuestions,
			Completed:          entry.Completed,
		}
		return tx.Create(&attempt).Error
	}

	if entry.Score <= existing.Score {
		return nil
	}

	existing.QuizID = entry.QuizID
	existing.SelectedAnswer = entry.SelectedAnswer
	existing.IsCorrect = entry.IsCorrect
	existing.Score = entry.Score
	existing.QuestionNumber = entry.QuestionNumber
	existing.TotalQuestions = entry.TotalQuestions
	existing.Completed = entry.Completed
	return tx.Save(existing).Error
}

// upsertWordGuessAttempt applies the same keep-best rule, compared by
// total score. A tie or worse run is discarded silently.
func (s *ProgressService) upsertWordGuessAttempt(tx *gorm.DB, progressID uint, stage WordGuessStage) error {
	existing, err := s.GuessWordRepo.FindBestAttempt(tx, progressID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		attempt := model.WordGuessAttempt{
			KabanataProgressID: progressID,
			CharacterID:        stage.CharacterID,
			GuessWordID:        stage.GuessWordID,
			CurrentIndex:       stage.CurrentIndex,
			Completed:          stage.Completed,
			TotalScore:         stage.TotalScore,
		}
		return tx.Create(&attempt).Error
	}

	if stage.TotalScore <= existing.TotalScore {
		return nil
	}

	existing.CharacterID = stage.CharacterID
	existing.GuessWordID = stage.GuessWordID
	existing.CurrentIndex = stage.CurrentIndex
	existing.Completed = stage.Completed
	existing.TotalScore = stage.TotalScore
	return tx.Save(existing).Error
}

// upsertVideoProgress always overwrites: watch state is last-write-wins.
func (s *ProgressService) upsertVideoProgress(tx *gorm.DB, progressID uint, stage VideoStage) error {
	existing, err := s.VideoRepo.FindProgress(tx, progressID, stage.VideoID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		vp := model.VideoProgress{
			KabanataProgressID: progressID,
			VideoID:            stage.VideoID,
			Completed:          stage.Completed,
			SecondsWatched:     stage.SecondsWatched,
			PerfectScore:       stage.PerfectScore,
		}
		return tx.Create(&vp).Error
	}

	existing.Completed = stage.Completed
	existing.SecondsWatched = stage.SecondsWatched
	existing.PerfectScore = stage.PerfectScore
	return tx.Save(existing).Error
}

// ResetKabanata wipes the user's attempts for a chapter and zeroes the
// aggregate, locking it again. Staged state goes with it.
func (s *ProgressService) ResetKabanata(ctx context.Context, userID, kabanataID uint) error {
	progress, err := s.ProgressRepo.Find(userID, kabanataID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrProgressNotFound
		}
		return err
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.QuizRepo.DeleteAttempts(tx, progress.ID); err != nil {
			return err
		}
		if err := s.GuessWordRepo.DeleteAttempts(tx, progress.ID); err != nil {
			return err
		}
		if err := s.VideoRepo.DeleteProgress(tx, progress.ID); err != nil {
			return err
		}

		progress.Progress = 0
		progress.Stars = 0
		progress.Unlocked = false
		return tx.Save(progress).Error
	})
	if err != nil {
		return err
	}

	if err := s.Stager.Clear(ctx, userID, kabanataID); err != nil {
		logger.Log.Error("failed to clear staged activities on reset",
			zap.Uint("userId", userID), zap.Uint("kabanataId", kabanataID), zap.Error(err))
	}
	return nil
}

func boolLabel(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
