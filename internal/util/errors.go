package util

import "errors"

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrEmailRegistered   = errors.New("email already registered")
	ErrWrongCredentials  = errors.New("invalid email or password")
	ErrWrongPassword     = errors.New("current password is incorrect")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrKabanataNotFound  = errors.New("kabanata not found")
	ErrQuizNotFound      = errors.New("quiz not found")
	ErrGuessWordNotFound = errors.New("guess word not found")
	ErrVideoNotFound     = errors.New("video not found")
	ErrProgressNotFound  = errors.New("no progress recorded for this kabanata")

	ErrNotificationNotFound = errors.New("notification not found")
)
