package service

import (
	"errors"
	"rizhub_backend/internal/model"
	"rizhub_backend/internal/repository"
	"rizhub_backend/internal/util"
	"testing"

	"gorm.io/gorm"
)

func newNotificationService(t *testing.T) (*NotificationService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := NewNotificationService(
		repository.NewNotificationRepository(db),
		repository.NewGalleryRepository(db),
		repository.NewUserRepository(db),
		repository.NewKabanataRepository(db),
		nil,
	)
	return svc, db
}

func TestNotifyImageUnlockIsIdempotent(t *testing.T) {
	svc, db := newNotificationService(t)

	kabanata := model.Kabanata{Number: 1, Title: "Isang Pagtitipon"}
	if err := db.Create(&kabanata).Error; err != nil {
		t.Fatal(err)
	}
	images := []model.GalleryImage{
		{KabanataID: kabanata.ID, Title: "Unang Larawan", URL: "/uploads/a.jpg"},
		{KabanataID: kabanata.ID, Title: "Pangalawang Larawan", URL: "/uploads/b.jpg"},
	}
	if err := db.Create(&images).Error; err != nil {
		t.Fatal(err)
	}

	const userID = 7
	if err := svc.NotifyImageUnlock(userID, kabanata.ID); err != nil {
		t.Fatalf("NotifyImageUnlock failed: %v", err)
	}

	var count int64
	db.Model(&model.Notification{}).Where("user_id = ?", userID).Count(&count)
	if count != 2 {
		t.Fatalf("notifications = %d, want one per image", count)
	}

	if err := svc.NotifyImageUnlock(userID, kabanata.ID); err != nil {
		t.Fatal(err)
	}
	db.Model(&model.Notification{}).Where("user_id = ?", userID).Count(&count)
	if count != 2 {
		t.Errorf("notifications after replay = %d, want 2", count)
	}
}

func TestNotifyImageUnlockWithoutImages(t *testing.T) {
	svc, db := newNotificationService(t)

	kabanata := model.Kabanata{Number: 1, Title: "Isang Pagtitipon"}
	if err := db.Create(&kabanata).Error; err != nil {
		t.Fatal(err)
	}

	if err := svc.NotifyImageUnlock(1, kabanata.ID); err != nil {
		t.Fatalf("a chapter without gallery images should be a no-op: %v", err)
	}

	var count int64
	db.Model(&model.Notification{}).Count(&count)
	if count != 0 {
		t.Errorf("notifications = %d, want 0", count)
	}
}

func TestNotificationOwnershipScoping(t *testing.T) {
	svc, db := newNotificationService(t)

	n := model.Notification{UserID: 1, Title: "Kumusta", Message: "Maligayang pagdating sa RizHub"}
	if err := db.Create(&n).Error; err != nil {
		t.Fatal(err)
	}

	// Another user cannot touch it.
	if err := svc.MarkRead(2, n.ID); !errors.Is(err, util.ErrNotificationNotFound) {
		t.Errorf("MarkRead by stranger = %v, want not-found", err)
	}
	if err := svc.Delete(2, n.ID); !errors.Is(err, util.ErrNotificationNotFound) {
		t.Errorf("Delete by stranger = %v, want not-found", err)
	}

	// The owner can.
	if err := svc.MarkRead(1, n.ID); err != nil {
		t.Fatalf("MarkRead by owner failed: %v", err)
	}
	var reloaded model.Notification
	db.First(&reloaded, n.ID)
	if !reloaded.IsRead {
		t.Error("notification should be marked read")
	}

	if err := svc.MarkUnread(1, n.ID); err != nil {
		t.Fatal(err)
	}
	db.First(&reloaded, n.ID)
	if reloaded.IsRead {
		t.Error("notification should be marked unread")
	}

	if err := svc.Delete(1, n.ID); err != nil {
		t.Fatalf("Delete by owner failed: %v", err)
	}
}

func TestMarkAllReadAndDeleteAll(t *testing.T) {
	svc, db := newNotificationService(t)

	for i := 0; i < 3; i++ {
		if err := svc.Send(1, "Paalala", "May bagong kabanata"); err != nil {
			t.Fatal(err)
		}
	}
	if err := svc.Send(2, "Paalala", "Sa ibang user ito"); err != nil {
		t.Fatal(err)
	}

	if err := svc.MarkAllRead(1); err != nil {
		t.Fatal(err)
	}
	var unread int64
	db.Model(&model.Notification{}).Where("user_id = ? AND is_read = ?", 1, false).Count(&unread)
	if unread != 0 {
		t.Errorf("unread after MarkAllRead = %d", unread)
	}

	if err := svc.DeleteAll(1); err != nil {
		t.Fatal(err)
	}
	var remaining int64
	db.Model(&model.Notification{}).Count(&remaining)
	if remaining != 1 {
		t.Errorf("rows after DeleteAll = %d, want the other user's 1", remaining)
	}
}
