package service

import (
	"rizhub_backend/internal/model"
	"rizhub_backend/internal/repository"
	"rizhub_backend/internal/util"
)

type KabanataService struct {
	KabanataRepo  *repository.KabanataRepository
	QuizRepo      *repository.QuizRepository
	GuessWordRepo *repository.GuessWordRepository
	VideoRepo     *repository.VideoRepository
	ProgressRepo  *repository.ProgressRepository
}

func NewKabanataService(
	kabanataRepo *repository.KabanataRepository,
	quizRepo *repository.QuizRepository,
	guessWordRepo *repository.GuessWordRepository,
	videoRepo *repository.VideoRepository,
	progressRepo *repository.ProgressRepository,
) *KabanataService {
	return &KabanataService{
		KabanataRepo:  kabanataRepo,
		QuizRepo:      quizRepo,
		GuessWordRepo: guessWordRepo,
		VideoRepo:     videoRepo,
		ProgressRepo:  progressRepo,
	}
}

// ChallengeItem is one chapter card on the challenge screen.
type ChallengeItem struct {
	ID       uint   `json:"id"`
	Number   int    `json:"number"`
	Title    string `json:"title"`
	Summary  string `json:"summary"`
	Progress int    `json:"progress"`
	Stars    int    `json:"stars"`
	Unlocked bool   `json:"unlocked"`
}

// ChallengeList returns the paginated chapter list with the caller's progress
// merged in. Display progress is re-derived from the attempt rows rather than
// read off the cached aggregate, so a half-committed session still shows the
// truth. Chapter one is always open.
func (s *KabanataService) ChallengeList(userID uint, page, limit int) ([]ChallengeItem, int64, error) {
	kabanatas, total, err := s.KabanataRepo.FindPage(page, limit)
	if err != nil {
		return nil, 0, err
	}

	progressByKabanata, err := s.ProgressRepo.FindAllForUser(userID)
	if err != nil {
		return nil, 0, err
	}

	progressIDs := make([]uint, 0, len(progressByKabanata))
	for _, row := range progressByKabanata {
		progressIDs = append(progressIDs, row.ID)
	}
	childScores, err := s.ProgressRepo.ChildScores(progressIDs)
	if err != nil {
		return nil, 0, err
	}

	items := make([]ChallengeItem, 0, len(kabanatas))
	for _, k := range kabanatas {
		item := ChallengeItem{
			ID:       k.ID,
			Number:   k.Number,
			Title:    k.Title,
			Summary:  k.Summary,
			Unlocked: k.Number == 1,
		}
		if row, ok := progressByKabanata[k.ID]; ok {
			scores := childScores[row.ID]
			item.Progress = ClampProgress(scores.QuizScore + scores.WordGuessScore)
			item.Stars = row.Stars
			item.Unlocked = item.Unlocked || row.Unlocked
		}
		items = append(items, item)
	}
	return items, total, nil
}

// KabanataDetail bundles a chapter with its study material. Quiz and
// word-guess answers never serialize, so handing the whole struct to the
// client is safe.
type KabanataDetail struct {
	Kabanata   *model.Kabanata   `json:"kabanata"`
	Videos     []model.Video     `json:"videos"`
	Quizzes    []model.Quiz      `json:"quizzes"`
	GuessWords []model.GuessWord `json:"guessWords"`
	Progress   int               `json:"progress"`
	Stars      int               `json:"stars"`
	Unlocked   bool              `json:"unlocked"`
}

// List returns the bare chapter index in reading order.
func (s *KabanataService) List() ([]model.Kabanata, error) {
	return s.KabanataRepo.FindAll()
}

func (s *KabanataService) Quizzes(kabanataID uint) ([]model.Quiz, error) {
	if _, err := s.KabanataRepo.FindByID(kabanataID); err != nil {
		return nil, util.ErrKabanataNotFound
	}
	return s.QuizRepo.FindByKabanata(kabanataID)
}

func (s *KabanataService) GuessWords(kabanataID uint) ([]model.GuessWord, error) {
	if _, err := s.KabanataRepo.FindByID(kabanataID); err != nil {
		return nil, util.ErrKabanataNotFound
	}
	return s.GuessWordRepo.FindByKabanata(kabanataID)
}

func (s *KabanataService) Videos(kabanataID uint) ([]model.Video, error) {
	if _, err := s.KabanataRepo.FindByID(kabanataID); err != nil {
		return nil, util.ErrKabanataNotFound
	}
	return s.VideoRepo.FindByKabanata(kabanataID)
}

func (s *KabanataService) Detail(userID, kabanataID uint) (*KabanataDetail, error) {
	kabanata, err := s.KabanataRepo.FindByID(kabanataID)
	if err != nil {
		return nil, util.ErrKabanataNotFound
	}

	videos, err := s.VideoRepo.FindByKabanata(kabanataID)
	if err != nil {
		return nil, err
	}
	quizzes, err := s.QuizRepo.FindByKabanata(kabanataID)
	if err != nil {
		return nil, err
	}
	words, err := s.GuessWordRepo.FindByKabanata(kabanataID)
	if err != nil {
		return nil, err
	}

	detail := &KabanataDetail{
		Kabanata:   kabanata,
		Videos:     videos,
		Quizzes:    quizzes,
		GuessWords: words,
		Unlocked:   kabanata.Number == 1,
	}
	if row, err := s.ProgressRepo.Find(userID, kabanataID); err == nil {
		detail.Progress = row.Progress
		detail.Stars = row.Stars
		detail.Unlocked = detail.Unlocked || row.Unlocked
	}
	return detail, nil
}
