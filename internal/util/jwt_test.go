package util

import (
	"rizhub_backend/internal/model"
	"testing"
	"time"
)

func TestGenerateAndParseJWT(t *testing.T) {
	user := &model.User{Email: "juan@example.com", Role: model.Student}
	user.ID = 42

	token, err := GenerateJWT(user, "secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT failed: %v", err)
	}

	claims, err := ParseJWT(token, "secret")
	if err != nil {
		t.Fatalf("ParseJWT failed: %v", err)
	}
	if claims.UserID != 42 || claims.Email != "juan@example.com" || claims.Role != model.Student {
		t.Errorf("claims = %+v", claims)
	}
}

func TestParseJWTRejectsWrongSecret(t *testing.T) {
	user := &model.User{Email: "juan@example.com"}
	user.ID = 1

	token, err := GenerateJWT(user, "secret", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ParseJWT(token, "ibang-secret"); err == nil {
		t.Error("token signed with another secret should not parse")
	}
}

func TestParseJWTRejectsExpiredToken(t *testing.T) {
	user := &model.User{}
	user.ID = 1

	token, err := GenerateJWT(user, "secret", -time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ParseJWT(token, "secret"); err == nil {
		t.Error("expired token should not parse")
	}
}
