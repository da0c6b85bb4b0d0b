package repository

import (
	"rizhub_backend/internal/model"

	"gorm.io/gorm"
)

type VideoRepository struct {
	DB *gorm.DB
}

func NewVideoRepository(db *gorm.DB) *VideoRepository {
	return &VideoRepository{DB: db}
}

func (r *VideoRepository) FindByID(id uint) (*model.Video, error) {
	var video model.Video
	err := r.DB.First(&video, id).Error
	if err != nil {
		return nil, err
	}
	return &video, nil
}

func (r *VideoRepository) FindByKabanata(kabanataID uint) ([]model.Video, error) {
	var videos []model.Video
	err := r.DB.Where("kabanata_id = ?", kabanataID).Find(&videos).Error
	return videos, err
}

func (r *VideoRepository) Create(video *model.Video) error {
	return r.DB.Create(video).Error
}

func (r *VideoRepository) FindProgress(tx *gorm.DB, progressID, videoID uint) (*model.VideoProgress, error) {
	var vp model.VideoProgress
	err := tx.Where("kabanata_progress_id = ? AND video_id = ?", progressID, videoID).
		First(&vp).Error
	if err != nil {
		return nil, err
	}
	return &vp, nil
}

func (r *VideoRepository) DeleteProgress(tx *gorm.DB, progressID uint) error {
	return tx.Unscoped().Where("kabanata_progress_id = ?", progressID).
		Delete(&model.VideoProgress{}).Error
}
