package service

import (
	"context"
	"rizhub_backend/internal/repository"
	"testing"
)

func TestGalleryUnlockIsDerived(t *testing.T) {
	f := newProgressFixture(t)
	svc := NewGalleryService(repository.NewGalleryRepository(f.db), repository.NewProgressRepository(f.db), f.db)
	ctx := context.Background()
	const userID = 1

	// Locked before any play.
	items, err := svc.List(userID)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 {
		t.Fatalf("gallery items = %d, want 1", len(items))
	}
	if items[0].Unlocked || items[0].URL != "" {
		t.Errorf("locked image leaked: %+v", items[0])
	}

	// An imperfect run keeps it locked.
	f.stage(t, userID, 4, 4)
	if _, err := f.svc.CompleteKabanata(ctx, userID, f.kabanata1.ID); err != nil {
		t.Fatal(err)
	}
	items, _ = svc.List(userID)
	if items[0].Unlocked {
		t.Error("a word-guess score of 4 should not unlock the gallery")
	}

	// A perfect run opens it, URL included.
	f.stage(t, userID, 4, 5)
	if _, err := f.svc.CompleteKabanata(ctx, userID, f.kabanata1.ID); err != nil {
		t.Fatal(err)
	}
	items, _ = svc.List(userID)
	if !items[0].Unlocked || items[0].URL == "" {
		t.Errorf("perfect run should unlock the image: %+v", items[0])
	}

	// Reset locks it again, nothing stored to clean up.
	if err := f.svc.ResetKabanata(ctx, userID, f.kabanata1.ID); err != nil {
		t.Fatal(err)
	}
	items, _ = svc.List(userID)
	if items[0].Unlocked {
		t.Error("reset should lock the gallery again")
	}
}
