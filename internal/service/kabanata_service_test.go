package service

import (
	"context"
	"rizhub_backend/internal/model"
	"rizhub_backend/internal/repository"
	"testing"
)

func newKabanataService(f *progressFixture) *KabanataService {
	return NewKabanataService(
		repository.NewKabanataRepository(f.db),
		repository.NewQuizRepository(f.db),
		repository.NewGuessWordRepository(f.db),
		repository.NewVideoRepository(f.db),
		repository.NewProgressRepository(f.db),
	)
}

func TestChallengeListForNewUser(t *testing.T) {
	f := newProgressFixture(t)
	svc := newKabanataService(f)

	items, total, err := svc.ChallengeList(1, 1, 10)
	if err != nil {
		t.Fatal(err)
	}
	if total != 2 || len(items) != 2 {
		t.Fatalf("list = %d items, total %d, want 2/2", len(items), total)
	}

	if !items[0].Unlocked {
		t.Error("chapter one should be open to a new user")
	}
	if items[1].Unlocked {
		t.Error("chapter two should be locked for a new user")
	}
	if items[0].Progress != 0 || items[0].Stars != 0 {
		t.Errorf("new user progress = %+v", items[0])
	}
}

func TestChallengeListDerivesProgressFromAttempts(t *testing.T) {
	f := newProgressFixture(t)
	svc := newKabanataService(f)
	ctx := context.Background()
	const userID = 1

	f.stage(t, userID, 4, 3)
	if _, err := f.svc.CompleteKabanata(ctx, userID, f.kabanata1.ID); err != nil {
		t.Fatal(err)
	}

	// Corrupt the cached aggregate; the list must not echo it.
	f.db.Model(&model.KabanataProgress{}).
		Where("user_id = ? AND kabanata_id = ?", userID, f.kabanata1.ID).
		Update("progress", 1)

	items, _, err := svc.ChallengeList(userID, 1, 10)
	if err != nil {
		t.Fatal(err)
	}
	if items[0].Progress != 7 {
		t.Errorf("derived progress = %d, want 7", items[0].Progress)
	}
	if !items[1].Unlocked {
		t.Error("chapter two should be unlocked after completing chapter one")
	}
}

func TestKabanataDetail(t *testing.T) {
	f := newProgressFixture(t)
	svc := newKabanataService(f)

	detail, err := svc.Detail(1, f.kabanata1.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(detail.Quizzes) != 1 || len(detail.GuessWords) != 1 || len(detail.Videos) != 1 {
		t.Errorf("detail content = %d quizzes, %d words, %d videos",
			len(detail.Quizzes), len(detail.GuessWords), len(detail.Videos))
	}
	if !detail.Unlocked {
		t.Error("chapter one detail should be unlocked by default")
	}

	if _, err := svc.Detail(1, 9999); err == nil {
		t.Error("expected an error for an unknown chapter")
	}
}
