package service

import (
	"fmt"
	"rizhub_backend/internal/model"
	"rizhub_backend/internal/repository"
	"rizhub_backend/internal/util"
	"rizhub_backend/pkg/logger"

	"go.uber.org/zap"
)

// NotificationService writes in-app notices and, when mail is configured,
// mirrors unlock notices to the user's inbox.
type NotificationService struct {
	Repo         *repository.NotificationRepository
	GalleryRepo  *repository.GalleryRepository
	UserRepo     *repository.UserRepository
	KabanataRepo *repository.KabanataRepository
	Mailer       Mailer // nil disables email delivery
}

func NewNotificationService(
	repo *repository.NotificationRepository,
	galleryRepo *repository.GalleryRepository,
	userRepo *repository.UserRepository,
	kabanataRepo *repository.KabanataRepository,
	mailer Mailer,
) *NotificationService {
	return &NotificationService{
		Repo:         repo,
		GalleryRepo:  galleryRepo,
		UserRepo:     userRepo,
		KabanataRepo: kabanataRepo,
		Mailer:       mailer,
	}
}

// NotifyImageUnlock records one unlock notice per newly unlocked image of the
// chapter. Images the user was already told about are skipped, so replaying a
// perfect completion stays quiet.
func (s *NotificationService) NotifyImageUnlock(userID, kabanataID uint) error {
	kabanata, err := s.KabanataRepo.FindByID(kabanataID)
	if err != nil {
		return err
	}
	images, err := s.GalleryRepo.FindByKabanata(kabanataID)
	if err != nil {
		return err
	}
	if len(images) == 0 {
		return nil
	}

	var created []model.Notification
	for i := range images {
		image := images[i]
		exists, err := s.Repo.UnlockExists(userID, image.ID)
		if err != nil {
			return err
		}
		if exists {
			continue
		}

		n := model.Notification{
			UserID:         userID,
			Type:           model.NotificationImageUnlock,
			Title:          "Bagong larawan sa galerya!",
			Message:        fmt.Sprintf("Nakuha mo ang perpektong iskor sa %s. Na-unlock mo ang \"%s\".", kabanata.Title, image.Title),
			KabanataID:     &image.KabanataID,
			GalleryImageID: &image.ID,
		}
		if err := s.Repo.Create(&n); err != nil {
			return err
		}
		created = append(created, n)
	}

	if len(created) > 0 {
		s.sendUnlockMail(userID, kabanata.Title, len(created))
	}
	return nil
}

// sendUnlockMail fires the email in the background. A dead relay only ever
// costs us a log line.
func (s *NotificationService) sendUnlockMail(userID uint, kabanataTitle string, count int) {
	if s.Mailer == nil {
		return
	}
	user, err := s.UserRepo.FindByID(userID)
	if err != nil || user.Email == "" {
		return
	}

	to := user.Email
	subject := "RizHub: may bago kang gallery reward"
	body := fmt.Sprintf(
		"Kumusta %s,\n\nNakuha mo ang perpektong iskor sa %s at na-unlock mo ang %d larawan sa galerya. Buksan ang RizHub para makita ang mga ito.\n\n- RizHub",
		user.Name, kabanataTitle, count)

	go func() {
		if err := s.Mailer.Send(to, subject, body); err != nil {
			logger.Log.Warn("unlock email delivery failed",
				zap.String("to", to), zap.Error(err))
		}
	}()
}

// Send records a generic in-app notice.
func (s *NotificationService) Send(userID uint, title, message string) error {
	return s.Repo.Create(&model.Notification{
		UserID:  userID,
		Type:    model.NotificationGeneric,
		Title:   title,
		Message: message,
	})
}

func (s *NotificationService) List(userID uint) ([]model.Notification, error) {
	return s.Repo.FindByUser(userID)
}

func (s *NotificationService) MarkRead(userID, notificationID uint) error {
	return s.setRead(userID, notificationID, true)
}

func (s *NotificationService) MarkUnread(userID, notificationID uint) error {
	return s.setRead(userID, notificationID, false)
}

func (s *NotificationService) setRead(userID, notificationID uint, read bool) error {
	rows, err := s.Repo.SetRead(userID, notificationID, read)
	if err != nil {
		return err
	}
	if rows == 0 {
		// A missing row and someone else's row look the same to the caller.
		return util.ErrNotificationNotFound
	}
	return nil
}

func (s *NotificationService) MarkAllRead(userID uint) error {
	return s.Repo.MarkAllRead(userID)
}

func (s *NotificationService) Delete(userID, notificationID uint) error {
	rows, err := s.Repo.Delete(userID, notificationID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return util.ErrNotificationNotFound
	}
	return nil
}

func (s *NotificationService) DeleteAll(userID uint) error {
	return s.Repo.DeleteAll(userID)
}
