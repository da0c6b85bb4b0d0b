package repository

import (
	"rizhub_backend/internal/model"

	"gorm.io/gorm"
)

type GalleryRepository struct {
	DB *gorm.DB
}

func NewGalleryRepository(db *gorm.DB) *GalleryRepository {
	return &GalleryRepository{DB: db}
}

func (r *GalleryRepository) FindAll() ([]model.GalleryImage, error) {
	var images []model.GalleryImage
	err := r.DB.Order("kabanata_id ASC, id ASC").Find(&images).Error
	return images, err
}

func (r *GalleryRepository) FindByKabanata(kabanataID uint) ([]model.GalleryImage, error) {
	var images []model.GalleryImage
	err := r.DB.Where("kabanata_id = ?", kabanataID).Find(&images).Error
	return images, err
}

func (r *GalleryRepository) Create(image *model.GalleryImage) error {
	return r.DB.Create(image).Error
}
