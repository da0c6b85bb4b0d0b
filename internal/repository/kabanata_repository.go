package repository

import (
	"rizhub_backend/internal/model"

	"gorm.io/gorm"
)

type KabanataRepository struct {
	DB *gorm.DB
}

func NewKabanataRepository(db *gorm.DB) *KabanataRepository {
	return &KabanataRepository{DB: db}
}

func (r *KabanataRepository) FindByID(id uint) (*model.Kabanata, error) {
	var kabanata model.Kabanata
	err := r.DB.First(&kabanata, id).Error
	if err != nil {
		return nil, err
	}
	return &kabanata, nil
}

// FindByNumber resolves a chapter by its ordinal. Returns gorm.ErrRecordNotFound
// past the end of content.
func (r *KabanataRepository) FindByNumber(number int) (*model.Kabanata, error) {
	var kabanata model.Kabanata
	err := r.DB.Where("number = ?", number).First(&kabanata).Error
	if err != nil {
		return nil, err
	}
	return &kabanata, nil
}

func (r *KabanataRepository) FindAll() ([]model.Kabanata, error) {
	var kabanatas []model.Kabanata
	err := r.DB.Order("number ASC").Find(&kabanatas).Error
	return kabanatas, err
}

func (r *KabanataRepository) FindPage(page, limit int) ([]model.Kabanata, int64, error) {
	var kabanatas []model.Kabanata
	var total int64

	if err := r.DB.Model(&model.Kabanata{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := r.DB.Order("number ASC").Offset(offset).Limit(limit).Find(&kabanatas).Error
	return kabanatas, total, err
}

func (r *KabanataRepository) Create(kabanata *model.Kabanata) error {
	return r.DB.Create(kabanata).Error
}
