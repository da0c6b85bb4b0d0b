package service

import (
	"context"
	"errors"
	"rizhub_backend/internal/model"
	"rizhub_backend/internal/repository"
	"rizhub_backend/internal/util"
	"testing"
)

func newUserService(f *progressFixture) *UserService {
	return NewUserService(
		repository.NewUserRepository(f.db),
		repository.NewProgressRepository(f.db),
		nil,
		f.db,
	)
}

func createTestUser(t *testing.T, f *progressFixture) *model.User {
	t.Helper()
	svc := NewAuthService(repository.NewUserRepository(f.db), testAuthConfig())
	user, err := svc.Register(RegisterRequest{Name: "Juan", Email: "juan@example.com", Password: "mahiwaga123"})
	if err != nil {
		t.Fatal(err)
	}
	return user
}

func TestProfileAggregatesProgress(t *testing.T) {
	f := newProgressFixture(t)
	svc := newUserService(f)
	user := createTestUser(t, f)
	ctx := context.Background()

	f.stage(t, user.ID, 5, 5)
	if _, err := f.svc.CompleteKabanata(ctx, user.ID, f.kabanata1.ID); err != nil {
		t.Fatal(err)
	}

	profile, err := svc.Profile(user.ID)
	if err != nil {
		t.Fatal(err)
	}
	if profile.TotalStars != 3 {
		t.Errorf("total stars = %d, want 3", profile.TotalStars)
	}
	if profile.CompletedChapters != 1 {
		t.Errorf("completed chapters = %d, want 1", profile.CompletedChapters)
	}
	// Chapter one plus the chained unlock of chapter two.
	if profile.UnlockedChapters != 2 {
		t.Errorf("unlocked chapters = %d, want 2", profile.UnlockedChapters)
	}
}

func TestChangePassword(t *testing.T) {
	f := newProgressFixture(t)
	svc := newUserService(f)
	user := createTestUser(t, f)

	err := svc.ChangePassword(user.ID, ChangePasswordRequest{
		CurrentPassword: "maling-password",
		NewPassword:     "bagong-password",
	})
	if !errors.Is(err, util.ErrWrongPassword) {
		t.Errorf("wrong current password = %v, want ErrWrongPassword", err)
	}

	err = svc.ChangePassword(user.ID, ChangePasswordRequest{
		CurrentPassword: "mahiwaga123",
		NewPassword:     "bagong-password",
	})
	if err != nil {
		t.Fatalf("ChangePassword failed: %v", err)
	}

	auth := NewAuthService(repository.NewUserRepository(f.db), testAuthConfig())
	if _, err := auth.Login(LoginRequest{Email: "juan@example.com", Password: "bagong-password"}); err != nil {
		t.Errorf("login with new password failed: %v", err)
	}
}

func TestDeleteAccountRemovesEverything(t *testing.T) {
	f := newProgressFixture(t)
	svc := newUserService(f)
	user := createTestUser(t, f)
	ctx := context.Background()

	f.stage(t, user.ID, 5, 5)
	if _, err := f.svc.CompleteKabanata(ctx, user.ID, f.kabanata1.ID); err != nil {
		t.Fatal(err)
	}

	if err := svc.DeleteAccount(user.ID); err != nil {
		t.Fatalf("DeleteAccount failed: %v", err)
	}

	tables := map[string]interface{}{
		"progress":      &model.KabanataProgress{},
		"quiz attempts": &model.QuizAttempt{},
		"word attempts": &model.WordGuessAttempt{},
		"notifications": &model.Notification{},
	}
	for name, m := range tables {
		var count int64
		f.db.Model(m).Count(&count)
		if count != 0 {
			t.Errorf("%s rows left after account deletion: %d", name, count)
		}
	}

	var users int64
	f.db.Model(&model.User{}).Count(&users)
	if users != 0 {
		t.Errorf("user row left after deletion")
	}
}
