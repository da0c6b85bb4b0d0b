package service

import (
	"rizhub_backend/internal/model"
	"rizhub_backend/internal/repository"

	"gorm.io/gorm"
)

type GalleryService struct {
	GalleryRepo  *repository.GalleryRepository
	ProgressRepo *repository.ProgressRepository
	DB           *gorm.DB
}

func NewGalleryService(galleryRepo *repository.GalleryRepository, progressRepo *repository.ProgressRepository, db *gorm.DB) *GalleryService {
	return &GalleryService{GalleryRepo: galleryRepo, ProgressRepo: progressRepo, DB: db}
}

// GalleryItem is an image plus whether this user has earned it. Locked images
// still list, but without their URL.
type GalleryItem struct {
	ID          uint   `json:"id"`
	KabanataID  uint   `json:"kabanataId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url,omitempty"`
	Unlocked    bool   `json:"unlocked"`
}

// List derives unlock state from the attempt rows: a chapter's images open
// once its word-guess run finished with a perfect score. Nothing is stored
// per image, so reset and replay always agree with the gallery.
func (s *GalleryService) List(userID uint) ([]GalleryItem, error) {
	images, err := s.GalleryRepo.FindAll()
	if err != nil {
		return nil, err
	}

	unlocked, err := s.perfectKabanatas(userID)
	if err != nil {
		return nil, err
	}

	items := make([]GalleryItem, 0, len(images))
	for _, image := range images {
		item := GalleryItem{
			ID:          image.ID,
			KabanataID:  image.KabanataID,
			Title:       image.Title,
			Description: image.Description,
			Unlocked:    unlocked[image.KabanataID],
		}
		if item.Unlocked {
			item.URL = image.URL
		}
		items = append(items, item)
	}
	return items, nil
}

// perfectKabanatas returns the set of chapter ids where the user's word-guess
// attempt is both completed and perfect.
func (s *GalleryService) perfectKabanatas(userID uint) (map[uint]bool, error) {
	progress, err := s.ProgressRepo.FindAllForUser(userID)
	if err != nil {
		return nil, err
	}
	if len(progress) == 0 {
		return map[uint]bool{}, nil
	}

	kabanataByProgress := make(map[uint]uint, len(progress))
	progressIDs := make([]uint, 0, len(progress))
	for kabanataID, row := range progress {
		kabanataByProgress[row.ID] = kabanataID
		progressIDs = append(progressIDs, row.ID)
	}

	var attempts []model.WordGuessAttempt
	err = s.DB.Where("kabanata_progress_id IN ? AND completed = ? AND total_score = ?",
		progressIDs, true, PerfectWordGuessScore).Find(&attempts).Error
	if err != nil {
		return nil, err
	}

	unlocked := make(map[uint]bool, len(attempts))
	for _, attempt := range attempts {
		unlocked[kabanataByProgress[attempt.KabanataProgressID]] = true
	}
	return unlocked, nil
}
