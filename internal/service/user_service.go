package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"rizhub_backend/internal/model"
	"rizhub_backend/internal/repository"
	"rizhub_backend/internal/util"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	UserRepo     *repository.UserRepository
	ProgressRepo *repository.ProgressRepository
	Storage      StorageProvider
	DB           *gorm.DB
}

func NewUserService(userRepo *repository.UserRepository, progressRepo *repository.ProgressRepository, storage StorageProvider, db *gorm.DB) *UserService {
	return &UserService{UserRepo: userRepo, ProgressRepo: progressRepo, Storage: storage, DB: db}
}

// ProfileResponse is the user plus the headline numbers the profile screen shows.
type ProfileResponse struct {
	User              *model.User `json:"user"`
	TotalStars        int         `json:"totalStars"`
	CompletedChapters int         `json:"completedChapters"`
	UnlockedChapters  int         `json:"unlockedChapters"`
}

func (s *UserService) Profile(userID uint) (*ProfileResponse, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, util.ErrUserNotFound
	}

	progress, err := s.ProgressRepo.FindAllForUser(userID)
	if err != nil {
		return nil, err
	}

	resp := &ProfileResponse{User: user}
	for _, row := range progress {
		resp.TotalStars += row.Stars
		if row.Unlocked {
			resp.UnlockedChapters++
		}
		if row.Progress >= MaxChapterProgress {
			resp.CompletedChapters++
		}
	}
	return resp, nil
}

type UpdateProfileRequest struct {
	Name string `json:"name" binding:"required,min=2,max=100"`
}

func (s *UserService) UpdateProfile(userID uint, req UpdateProfileRequest) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, util.ErrUserNotFound
	}

	user.Name = req.Name
	if err := s.UserRepo.Save(user); err != nil {
		return nil, err
	}
	return user, nil
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

func (s *UserService) ChangePassword(userID uint, req ChangePasswordRequest) error {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return util.ErrUserNotFound
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)) != nil {
		return util.ErrWrongPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashed)
	return s.UserRepo.Save(user)
}

// UploadAvatar stores the image and records its URL on the user.
func (s *UserService) UploadAvatar(ctx context.Context, userID uint, file *multipart.FileHeader) (string, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return "", util.ErrUserNotFound
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
	default:
		return "", errors.New("unsupported image format")
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	objectName := fmt.Sprintf("avatars/%d/%s%s", userID, uuid.New().String(), ext)
	url, err := s.Storage.Upload(ctx, objectName, src, file.Size, file.Header.Get("Content-Type"))
	if err != nil {
		return "", err
	}

	user.Avatar = url
	if err := s.UserRepo.Save(user); err != nil {
		return "", err
	}
	return url, nil
}

// DeleteAccount removes the user and everything hanging off them: progress
// rows, attempt rows, notifications. One transaction, no orphans.
func (s *UserService) DeleteAccount(userID uint) error {
	if _, err := s.UserRepo.FindByID(userID); err != nil {
		return util.ErrUserNotFound
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		var progressIDs []uint
		if err := tx.Model(&model.KabanataProgress{}).
			Where("user_id = ?", userID).Pluck("id", &progressIDs).Error; err != nil {
			return err
		}

		if len(progressIDs) > 0 {
			if err := tx.Unscoped().Where("kabanata_progress_id IN ?", progressIDs).
				Delete(&model.QuizAttempt{}).Error; err != nil {
				return err
			}
			if err := tx.Unscoped().Where("kabanata_progress_id IN ?", progressIDs).
				Delete(&model.WordGuessAttempt{}).Error; err != nil {
				return err
			}
			if err := tx.Unscoped().Where("kabanata_progress_id IN ?", progressIDs).
				Delete(&model.VideoProgress{}).Error; err != nil {
				return err
			}
			if err := tx.Unscoped().Where("user_id = ?", userID).
				Delete(&model.KabanataProgress{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Unscoped().Where("user_id = ?", userID).
			Delete(&model.Notification{}).Error; err != nil {
			return err
		}

		return tx.Unscoped().Delete(&model.User{}, userID).Error
	})
}
