package service

import (
	"context"
	"rizhub_backend/internal/model"
	"rizhub_backend/internal/repository"
	"testing"

	"gorm.io/gorm"
)

type progressFixture struct {
	svc    *ProgressService
	stager *mapStager
	db     *gorm.DB

	kabanata1 model.Kabanata
	kabanata2 model.Kabanata
	quiz      model.Quiz
	word      model.GuessWord
	video     model.Video
	image     model.GalleryImage
}

func newProgressFixture(t *testing.T) *progressFixture {
	t.Helper()
	db := newTestDB(t)

	f := &progressFixture{db: db, stager: newMapStager()}

	f.kabanata1 = model.Kabanata{Number: 1, Title: "Isang Pagtitipon"}
	f.kabanata2 = model.Kabanata{Number: 2, Title: "Si Crisostomo Ibarra"}
	if err := db.Create(&f.kabanata1).Error; err != nil {
		t.Fatal(err)
	}
	if err := db.Create(&f.kabanata2).Error; err != nil {
		t.Fatal(err)
	}

	character := model.GuessCharacter{Name: "Kapitan Tiago"}
	if err := db.Create(&character).Error; err != nil {
		t.Fatal(err)
	}

	f.quiz = model.Quiz{KabanataID: f.kabanata1.ID, Question: "Sino ang nag-anyaya?", ChoiceA: "Kapitan Tiago", ChoiceB: "Padre Damaso", ChoiceC: "Elias", Answer: "A"}
	if err := db.Create(&f.quiz).Error; err != nil {
		t.Fatal(err)
	}

	f.word = model.GuessWord{KabanataID: f.kabanata1.ID, CharacterID: character.ID, Clue: "May-ari ng bahay.", Answer: "Kapitan Tiago"}
	if err := db.Create(&f.word).Error; err != nil {
		t.Fatal(err)
	}

	f.video = model.Video{KabanataID: f.kabanata1.ID, Title: "Lesson 1", URL: "/uploads/videos/1.mp4"}
	if err := db.Create(&f.video).Error; err != nil {
		t.Fatal(err)
	}

	f.image = model.GalleryImage{KabanataID: f.kabanata1.ID, Title: "Ang Salusalo", URL: "/uploads/gallery/1.jpg"}
	if err := db.Create(&f.image).Error; err != nil {
		t.Fatal(err)
	}

	notificationRepo := repository.NewNotificationRepository(db)
	galleryRepo := repository.NewGalleryRepository(db)
	userRepo := repository.NewUserRepository(db)
	kabanataRepo := repository.NewKabanataRepository(db)
	notifications := NewNotificationService(notificationRepo, galleryRepo, userRepo, kabanataRepo, nil)

	f.svc = NewProgressService(
		repository.NewProgressRepository(db),
		repository.NewQuizRepository(db),
		repository.NewGuessWordRepository(db),
		repository.NewVideoRepository(db),
		kabanataRepo,
		f.stager,
		notifications,
		db,
	)
	return f
}

func (f *progressFixture) stage(t *testing.T, userID uint, quizScore, wordScore int) {
	t.Helper()
	ctx := context.Background()

	err := f.stager.StageQuiz(ctx, userID, f.kabanata1.ID, QuizStage{
		QuizID:         f.quiz.ID,
		SelectedAnswer: "A",
		IsCorrect:      true,
		Score:          quizScore,
		QuestionNumber: 5,
		TotalQuestions: 5,
		Completed:      true,
		ShouldSave:     true,
	})
	if err != nil {
		t.Fatal(err)
	}

	err = f.stager.StageWordGuess(ctx, userID, f.kabanata1.ID, WordGuessStage{
		CharacterID: f.word.CharacterID,
		GuessWordID: f.word.ID,
		Completed:   true,
		TotalScore:  wordScore,
	})
	if err != nil {
		t.Fatal(err)
	}
}

func (f *progressFixture) progressRow(t *testing.T, userID, kabanataID uint) model.KabanataProgress {
	t.Helper()
	var row model.KabanataProgress
	err := f.db.Where("user_id = ? AND kabanata_id = ?", userID, kabanataID).First(&row).Error
	if err != nil {
		t.Fatalf("progress row not found: %v", err)
	}
	return row
}

func TestCompleteKabanataFirstRun(t *testing.T) {
	f := newProgressFixture(t)
	ctx := context.Background()
	const userID = 1

	f.stage(t, userID, 4, 3)
	err := f.stager.StageVideo(ctx, userID, f.kabanata1.ID, VideoStage{
		VideoID: f.video.ID, Completed: true, SecondsWatched: 120,
	})
	if err != nil {
		t.Fatal(err)
	}

	result, err := f.svc.CompleteKabanata(ctx, userID, f.kabanata1.ID)
	if err != nil {
		t.Fatalf("CompleteKabanata failed: %v", err)
	}

	if result.Progress != 7 {
		t.Errorf("progress = %d, want 7", result.Progress)
	}
	if result.Stars != 1 {
		t.Errorf("stars = %d, want 1", result.Stars)
	}
	if result.Perfect {
		t.Error("run should not be perfect")
	}
	if result.NextKabanataID == nil || *result.NextKabanataID != f.kabanata2.ID {
		t.Error("expected next chapter to be reported")
	}

	row := f.progressRow(t, userID, f.kabanata1.ID)
	if row.Progress != 7 || row.Stars != 1 || !row.Unlocked {
		t.Errorf("stored aggregate = %+v", row)
	}

	next := f.progressRow(t, userID, f.kabanata2.ID)
	if !next.Unlocked {
		t.Error("next chapter should be unlocked")
	}

	var quizCount, wordCount, videoCount int64
	f.db.Model(&model.QuizAttempt{}).Where("kabanata_progress_id = ?", row.ID).Count(&quizCount)
	f.db.Model(&model.WordGuessAttempt{}).Where("kabanata_progress_id = ?", row.ID).Count(&wordCount)
	f.db.Model(&model.VideoProgress{}).Where("kabanata_progress_id = ?", row.ID).Count(&videoCount)
	if quizCount != 1 || wordCount != 1 || videoCount != 1 {
		t.Errorf("attempt rows = %d/%d/%d, want 1/1/1", quizCount, wordCount, videoCount)
	}

	if !f.stager.empty(userID, f.kabanata1.ID) {
		t.Error("staging should be cleared after completion")
	}
}

func TestCompleteKabanataKeepsBestAttempts(t *testing.T) {
	f := newProgressFixture(t)
	ctx := context.Background()
	const userID = 1

	// First run sets the bar.
	f.stage(t, userID, 5, 4)
	if _, err := f.svc.CompleteKabanata(ctx, userID, f.kabanata1.ID); err != nil {
		t.Fatal(err)
	}

	// A worse replay must not lower anything.
	f.stage(t, userID, 2, 1)
	result, err := f.svc.CompleteKabanata(ctx, userID, f.kabanata1.ID)
	if err != nil {
		t.Fatal(err)
	}
	if result.QuizScore != 5 || result.WordGuessScore != 4 {
		t.Errorf("scores after worse replay = %d/%d, want 5/4", result.QuizScore, result.WordGuessScore)
	}
	if result.Stars != 2 {
		t.Errorf("stars = %d, want 2", result.Stars)
	}

	// A better replay overwrites in place, still one row each.
	f.stage(t, userID, 6, 5)
	result, err = f.svc.CompleteKabanata(ctx, userID, f.kabanata1.ID)
	if err != nil {
		t.Fatal(err)
	}
	if result.QuizScore != 6 || result.WordGuessScore != 5 {
		t.Errorf("scores after better replay = %d/%d, want 6/5", result.QuizScore, result.WordGuessScore)
	}

	row := f.progressRow(t, userID, f.kabanata1.ID)
	var quizCount, wordCount int64
	f.db.Model(&model.QuizAttempt{}).Where("kabanata_progress_id = ?", row.ID).Count(&quizCount)
	f.db.Model(&model.WordGuessAttempt{}).Where("kabanata_progress_id = ?", row.ID).Count(&wordCount)
	if quizCount != 1 || wordCount != 1 {
		t.Errorf("attempt rows = %d/%d, want 1/1", quizCount, wordCount)
	}
}

func TestStarsNeverDecrease(t *testing.T) {
	f := newProgressFixture(t)
	ctx := context.Background()
	const userID = 1

	f.stage(t, userID, 3, 5)
	result, err := f.svc.CompleteKabanata(ctx, userID, f.kabanata1.ID)
	if err != nil {
		t.Fatal(err)
	}
	if result.Stars != 3 {
		t.Fatalf("stars = %d, want 3", result.Stars)
	}

	// Force the stored word-guess attempt down to simulate content edits, then
	// replay a weak run; the star rating must hold.
	f.db.Model(&model.WordGuessAttempt{}).Where("1 = 1").Update("total_score", 2)
	f.stage(t, userID, 3, 2)
	result, err = f.svc.CompleteKabanata(ctx, userID, f.kabanata1.ID)
	if err != nil {
		t.Fatal(err)
	}
	if result.Stars != 3 {
		t.Errorf("stars dropped to %d after weak replay", result.Stars)
	}
}

func TestProgressClampsAtMax(t *testing.T) {
	f := newProgressFixture(t)
	const userID = 1

	f.stage(t, userID, 8, 5)
	result, err := f.svc.CompleteKabanata(context.Background(), userID, f.kabanata1.ID)
	if err != nil {
		t.Fatal(err)
	}
	if result.Progress != MaxChapterProgress {
		t.Errorf("progress = %d, want %d", result.Progress, MaxChapterProgress)
	}
	if !result.Perfect {
		t.Error("word-guess score of 5 should report perfect")
	}
}

func TestPerfectRunCreatesUnlockNotificationsOnce(t *testing.T) {
	f := newProgressFixture(t)
	ctx := context.Background()
	const userID = 1

	f.stage(t, userID, 4, 5)
	if _, err := f.svc.CompleteKabanata(ctx, userID, f.kabanata1.ID); err != nil {
		t.Fatal(err)
	}

	var count int64
	f.db.Model(&model.Notification{}).
		Where("user_id = ? AND type = ?", userID, model.NotificationImageUnlock).
		Count(&count)
	if count != 1 {
		t.Fatalf("unlock notifications = %d, want 1", count)
	}

	// Replaying the perfect run must stay quiet.
	f.stage(t, userID, 4, 5)
	if _, err := f.svc.CompleteKabanata(ctx, userID, f.kabanata1.ID); err != nil {
		t.Fatal(err)
	}
	f.db.Model(&model.Notification{}).
		Where("user_id = ? AND type = ?", userID, model.NotificationImageUnlock).
		Count(&count)
	if count != 1 {
		t.Errorf("unlock notifications after replay = %d, want 1", count)
	}
}

func TestCompleteWithEmptyStaging(t *testing.T) {
	f := newProgressFixture(t)
	const userID = 1

	result, err := f.svc.CompleteKabanata(context.Background(), userID, f.kabanata1.ID)
	if err != nil {
		t.Fatalf("empty completion failed: %v", err)
	}
	if result.Progress != 0 || result.Stars != 0 {
		t.Errorf("empty completion result = %+v", result)
	}

	row := f.progressRow(t, userID, f.kabanata1.ID)
	if !row.Unlocked {
		t.Error("completion should unlock the chapter even with nothing staged")
	}
}

func TestCompleteLastChapterHasNoNext(t *testing.T) {
	f := newProgressFixture(t)
	const userID = 1

	result, err := f.svc.CompleteKabanata(context.Background(), userID, f.kabanata2.ID)
	if err != nil {
		t.Fatalf("completing the last chapter failed: %v", err)
	}
	if result.NextKabanataID != nil {
		t.Error("no next chapter expected at end of content")
	}
}

func TestCompleteUnknownKabanata(t *testing.T) {
	f := newProgressFixture(t)

	if _, err := f.svc.CompleteKabanata(context.Background(), 1, 9999); err == nil {
		t.Error("expected an error for an unknown chapter")
	}
}

func TestMalformedWordGuessPayloadIsSkipped(t *testing.T) {
	f := newProgressFixture(t)
	ctx := context.Background()
	const userID = 1

	err := f.stager.StageQuiz(ctx, userID, f.kabanata1.ID, QuizStage{
		QuizID: f.quiz.ID, SelectedAnswer: "A", IsCorrect: true, Score: 4, Completed: true, ShouldSave: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	// Missing character and question ids.
	err = f.stager.StageWordGuess(ctx, userID, f.kabanata1.ID, WordGuessStage{TotalScore: 5, Completed: true})
	if err != nil {
		t.Fatal(err)
	}

	result, err := f.svc.CompleteKabanata(ctx, userID, f.kabanata1.ID)
	if err != nil {
		t.Fatalf("completion should survive a malformed payload: %v", err)
	}
	if result.QuizScore != 4 {
		t.Errorf("quiz branch should still commit, got score %d", result.QuizScore)
	}
	if result.WordGuessScore != 0 {
		t.Errorf("malformed word-guess payload leaked a score of %d", result.WordGuessScore)
	}

	row := f.progressRow(t, userID, f.kabanata1.ID)
	var wordCount int64
	f.db.Model(&model.WordGuessAttempt{}).Where("kabanata_progress_id = ?", row.ID).Count(&wordCount)
	if wordCount != 0 {
		t.Error("no word-guess row should exist")
	}
}

func TestSkippedQuizEntriesAreNotCommitted(t *testing.T) {
	f := newProgressFixture(t)
	ctx := context.Background()
	const userID = 1

	err := f.stager.StageQuiz(ctx, userID, f.kabanata1.ID, QuizStage{
		QuizID: f.quiz.ID, SelectedAnswer: "B", Score: 2, Completed: true, ShouldSave: false,
	})
	if err != nil {
		t.Fatal(err)
	}

	result, err := f.svc.CompleteKabanata(ctx, userID, f.kabanata1.ID)
	if err != nil {
		t.Fatal(err)
	}
	if result.QuizScore != 0 {
		t.Errorf("entry flagged should_save=false committed a score of %d", result.QuizScore)
	}
}

func TestResetKabanata(t *testing.T) {
	f := newProgressFixture(t)
	ctx := context.Background()
	const userID = 1

	f.stage(t, userID, 5, 4)
	if _, err := f.svc.CompleteKabanata(ctx, userID, f.kabanata1.ID); err != nil {
		t.Fatal(err)
	}

	if err := f.svc.ResetKabanata(ctx, userID, f.kabanata1.ID); err != nil {
		t.Fatalf("reset failed: %v", err)
	}

	row := f.progressRow(t, userID, f.kabanata1.ID)
	if row.Progress != 0 || row.Stars != 0 || row.Unlocked {
		t.Errorf("aggregate after reset = %+v", row)
	}

	var quizCount, wordCount int64
	f.db.Model(&model.QuizAttempt{}).Where("kabanata_progress_id = ?", row.ID).Count(&quizCount)
	f.db.Model(&model.WordGuessAttempt{}).Where("kabanata_progress_id = ?", row.ID).Count(&wordCount)
	if quizCount != 0 || wordCount != 0 {
		t.Errorf("attempt rows after reset = %d/%d, want 0/0", quizCount, wordCount)
	}
}

func TestResetWithoutProgress(t *testing.T) {
	f := newProgressFixture(t)

	if err := f.svc.ResetKabanata(context.Background(), 1, f.kabanata1.ID); err == nil {
		t.Error("expected an error when nothing was ever recorded")
	}
}

func TestStageQuizAnswerShouldSave(t *testing.T) {
	f := newProgressFixture(t)
	ctx := context.Background()
	const userID = 1

	// First-ever attempt always saves.
	isCorrect, err := f.svc.StageQuizAnswer(ctx, userID, QuizProgressRequest{
		KabanataID: f.kabanata1.ID, QuizID: f.quiz.ID, SelectedAnswer: "a", Score: 3,
	})
	if err != nil {
		t.Fatal(err)
	}
	if !isCorrect {
		t.Error("normalized answer should be correct")
	}
	staged := f.stager.quiz[stagedKey{userID, f.kabanata1.ID}][f.quiz.ID]
	if !staged.ShouldSave {
		t.Error("first attempt should be flagged for saving")
	}

	// Persist a better attempt, then stage a worse one.
	f.stage(t, userID, 5, 0)
	if _, err := f.svc.CompleteKabanata(ctx, userID, f.kabanata1.ID); err != nil {
		t.Fatal(err)
	}

	if _, err := f.svc.StageQuizAnswer(ctx, userID, QuizProgressRequest{
		KabanataID: f.kabanata1.ID, QuizID: f.quiz.ID, SelectedAnswer: "B", Score: 3,
	}); err != nil {
		t.Fatal(err)
	}
	staged = f.stager.quiz[stagedKey{userID, f.kabanata1.ID}][f.quiz.ID]
	if staged.ShouldSave {
		t.Error("a run below the persisted best should not be flagged")
	}

	if _, err := f.svc.StageQuizAnswer(ctx, userID, QuizProgressRequest{
		KabanataID: f.kabanata1.ID, QuizID: f.quiz.ID, SelectedAnswer: "A", Score: 7,
	}); err != nil {
		t.Fatal(err)
	}
	staged = f.stager.quiz[stagedKey{userID, f.kabanata1.ID}][f.quiz.ID]
	if !staged.ShouldSave {
		t.Error("a run above the persisted best should be flagged")
	}
}

func TestStageWordGuessEvaluates(t *testing.T) {
	f := newProgressFixture(t)
	ctx := context.Background()

	isCorrect, err := f.svc.StageWordGuess(ctx, 1, WordGuessProgressRequest{
		KabanataID: f.kabanata1.ID, CharacterID: f.word.CharacterID, QuestionID: f.word.ID,
		Guess: "Kapitan Tiago", TotalScore: 5, Completed: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if !isCorrect {
		t.Error("exact guess should be correct")
	}

	isCorrect, err = f.svc.StageWordGuess(ctx, 1, WordGuessProgressRequest{
		KabanataID: f.kabanata1.ID, CharacterID: f.word.CharacterID, QuestionID: f.word.ID,
		Guess: "kapitan tiago", TotalScore: 0,
	})
	if err != nil {
		t.Fatal(err)
	}
	if isCorrect {
		t.Error("word-guess matching is case sensitive")
	}
}

func TestStageVideoRejectsForeignVideo(t *testing.T) {
	f := newProgressFixture(t)

	err := f.svc.StageVideo(context.Background(), 1, VideoProgressRequest{
		KabanataID: f.kabanata2.ID, VideoID: f.video.ID, Completed: true,
	})
	if err == nil {
		t.Error("a video from another chapter should be rejected")
	}
}
