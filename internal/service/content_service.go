package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"rizhub_backend/internal/model"
	"rizhub_backend/internal/repository"
	"rizhub_backend/internal/util"
	"rizhub_backend/pkg/logger"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ContentService is the admin side: creating chapters, questions, gallery
// images and uploading lesson videos. Students never reach these paths.
type ContentService struct {
	KabanataRepo  *repository.KabanataRepository
	QuizRepo      *repository.QuizRepository
	GuessWordRepo *repository.GuessWordRepository
	VideoRepo     *repository.VideoRepository
	GalleryRepo   *repository.GalleryRepository
	Storage       StorageProvider
	DB            *gorm.DB
}

func NewContentService(
	kabanataRepo *repository.KabanataRepository,
	quizRepo *repository.QuizRepository,
	guessWordRepo *repository.GuessWordRepository,
	videoRepo *repository.VideoRepository,
	galleryRepo *repository.GalleryRepository,
	storage StorageProvider,
	db *gorm.DB,
) *ContentService {
	return &ContentService{
		KabanataRepo:  kabanataRepo,
		QuizRepo:      quizRepo,
		GuessWordRepo: guessWordRepo,
		VideoRepo:     videoRepo,
		GalleryRepo:   galleryRepo,
		Storage:       storage,
		DB:            db,
	}
}

type CreateKabanataRequest struct {
	Number  int    `json:"number" binding:"required,min=1"`
	Title   string `json:"title" binding:"required,max=200"`
	Summary string `json:"summary"`
}

func (s *ContentService) CreateKabanata(req CreateKabanataRequest) (*model.Kabanata, error) {
	if _, err := s.KabanataRepo.FindByNumber(req.Number); err == nil {
		return nil, fmt.Errorf("kabanata %d already exists", req.Number)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	kabanata := &model.Kabanata{Number: req.Number, Title: req.Title, Summary: req.Summary}
	if err := s.KabanataRepo.Create(kabanata); err != nil {
		return nil, err
	}
	return kabanata, nil
}

type CreateQuizRequest struct {
	KabanataID uint   `json:"kabanata_id" binding:"required"`
	Question   string `json:"question" binding:"required"`
	ChoiceA    string `json:"choice_a" binding:"required"`
	ChoiceB    string `json:"choice_b" binding:"required"`
	ChoiceC    string `json:"choice_c" binding:"required"`
	Answer     string `json:"answer" binding:"required,oneof=A B C"`
	Position   int    `json:"position"`
}

func (s *ContentService) CreateQuiz(req CreateQuizRequest) (*model.Quiz, error) {
	if _, err := s.KabanataRepo.FindByID(req.KabanataID); err != nil {
		return nil, util.ErrKabanataNotFound
	}

	quiz := &model.Quiz{
		KabanataID: req.KabanataID,
		Question:   req.Question,
		ChoiceA:    req.ChoiceA,
		ChoiceB:    req.ChoiceB,
		ChoiceC:    req.ChoiceC,
		Answer:     strings.ToUpper(req.Answer),
		Position:   req.Position,
	}
	if err := s.QuizRepo.Create(quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

type CreateGuessWordRequest struct {
	KabanataID  uint   `json:"kabanata_id" binding:"required"`
	CharacterID uint   `json:"character_id" binding:"required"`
	Clue        string `json:"clue" binding:"required"`
	Answer      string `json:"answer" binding:"required,max=100"`
	Position    int    `json:"position"`
}

func (s *ContentService) CreateGuessWord(req CreateGuessWordRequest) (*model.GuessWord, error) {
	if _, err := s.KabanataRepo.FindByID(req.KabanataID); err != nil {
		return nil, util.ErrKabanataNotFound
	}
	if _, err := s.GuessWordRepo.FindCharacter(req.CharacterID); err != nil {
		return nil, util.ErrGuessWordNotFound
	}

	word := &model.GuessWord{
		KabanataID:  req.KabanataID,
		CharacterID: req.CharacterID,
		Clue:        req.Clue,
		Answer:      strings.TrimSpace(req.Answer),
		Position:    req.Position,
	}
	if err := s.GuessWordRepo.Create(word); err != nil {
		return nil, err
	}
	return word, nil
}

type CreateCharacterRequest struct {
	Name   string `json:"name" binding:"required,max=100"`
	Avatar string `json:"avatar"`
}

func (s *ContentService) CreateCharacter(req CreateCharacterRequest) (*model.GuessCharacter, error) {
	character := &model.GuessCharacter{Name: req.Name, Avatar: req.Avatar}
	if err := s.GuessWordRepo.CreateCharacter(character); err != nil {
		return nil, err
	}
	return character, nil
}

type CreateGalleryImageRequest struct {
	KabanataID  uint   `json:"kabanata_id" binding:"required"`
	Title       string `json:"title" binding:"required,max=200"`
	URL         string `json:"url" binding:"required"`
	Description string `json:"description"`
}

func (s *ContentService) CreateGalleryImage(req CreateGalleryImageRequest) (*model.GalleryImage, error) {
	if _, err := s.KabanataRepo.FindByID(req.KabanataID); err != nil {
		return nil, util.ErrKabanataNotFound
	}

	image := &model.GalleryImage{
		KabanataID:  req.KabanataID,
		Title:       req.Title,
		URL:         req.URL,
		Description: req.Description,
	}
	if err := s.GalleryRepo.Create(image); err != nil {
		return nil, err
	}
	return image, nil
}

// UploadVideo stores a lesson video: spool the upload to a temp file, probe it
// for duration, grab a thumbnail frame, then push both to storage.
func (s *ContentService) UploadVideo(ctx context.Context, kabanataID uint, title string, file *multipart.FileHeader) (*model.Video, error) {
	if _, err := s.KabanataRepo.FindByID(kabanataID); err != nil {
		return nil, util.ErrKabanataNotFound
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	switch ext {
	case ".mp4", ".webm", ".mov":
	default:
		return nil, errors.New("unsupported video format")
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	tmp, err := os.CreateTemp("", "rizhub-upload-*"+ext)
	if err != nil {
		return nil, err
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		return nil, err
	}
	tmp.Close()

	info, err := util.GetVideoInfo(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("failed to probe uploaded video: %w", err)
	}

	id := uuid.New().String()
	videoObject := fmt.Sprintf("videos/%d/%s%s", kabanataID, id, ext)
	thumbObject := fmt.Sprintf("videos/%d/%s.jpg", kabanataID, id)

	videoFile, err := os.Open(tmpPath)
	if err != nil {
		return nil, err
	}
	defer videoFile.Close()

	videoURL, err := s.Storage.Upload(ctx, videoObject, videoFile, info.Size, "video/"+strings.TrimPrefix(ext, "."))
	if err != nil {
		return nil, err
	}

	// A missing thumbnail is cosmetic; the lesson still plays.
	thumbnailURL := ""
	thumbPath := tmpPath + ".jpg"
	if err := util.GenerateThumbnail(tmpPath, thumbPath, "00:00:01"); err != nil {
		logger.Log.Warn("thumbnail generation failed",
			zap.Uint("kabanataId", kabanataID), zap.Error(err))
	} else {
		defer os.Remove(thumbPath)
		if thumbFile, err := os.Open(thumbPath); err == nil {
			if stat, statErr := thumbFile.Stat(); statErr == nil {
				if url, upErr := s.Storage.Upload(ctx, thumbObject, thumbFile, stat.Size(), "image/jpeg"); upErr == nil {
					thumbnailURL = url
				}
			}
			thumbFile.Close()
		}
	}

	video := &model.Video{
		KabanataID: kabanataID,
		Title:      title,
		URL:        videoURL,
		Thumbnail:  thumbnailURL,
		Duration:   info.Duration,
	}
	if err := s.VideoRepo.Create(video); err != nil {
		return nil, err
	}
	return video, nil
}
