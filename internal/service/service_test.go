package service

import (
	"context"
	"rizhub_backend/internal/model"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Shared test plumbing: an in-memory database and a map-backed stager.

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.Kabanata{},
		&model.Video{},
		&model.Quiz{},
		&model.GuessCharacter{},
		&model.GuessWord{},
		&model.GalleryImage{},
		&model.KabanataProgress{},
		&model.QuizAttempt{},
		&model.WordGuessAttempt{},
		&model.VideoProgress{},
		&model.Notification{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

type stagedKey struct {
	userID     uint
	kabanataID uint
}

// mapStager is an in-memory ActivityStager for tests.
type mapStager struct {
	quiz      map[stagedKey]map[uint]QuizStage
	wordGuess map[stagedKey]*WordGuessStage
	video     map[stagedKey]*VideoStage
}

func newMapStager() *mapStager {
	return &mapStager{
		quiz:      make(map[stagedKey]map[uint]QuizStage),
		wordGuess: make(map[stagedKey]*WordGuessStage),
		video:     make(map[stagedKey]*VideoStage),
	}
}

func (m *mapStager) StageQuiz(_ context.Context, userID, kabanataID uint, entry QuizStage) error {
	key := stagedKey{userID, kabanataID}
	if m.quiz[key] == nil {
		m.quiz[key] = make(map[uint]QuizStage)
	}
	m.quiz[key][entry.QuizID] = entry
	return nil
}

func (m *mapStager) StageWordGuess(_ context.Context, userID, kabanataID uint, stage WordGuessStage) error {
	m.wordGuess[stagedKey{userID, kabanataID}] = &stage
	return nil
}

func (m *mapStager) StageVideo(_ context.Context, userID, kabanataID uint, stage VideoStage) error {
	m.video[stagedKey{userID, kabanataID}] = &stage
	return nil
}

func (m *mapStager) ReadAll(_ context.Context, userID, kabanataID uint) (*StagedActivities, error) {
	key := stagedKey{userID, kabanataID}
	return &StagedActivities{
		Quiz:      m.quiz[key],
		WordGuess: m.wordGuess[key],
		Video:     m.video[key],
	}, nil
}

func (m *mapStager) Clear(_ context.Context, userID, kabanataID uint) error {
	key := stagedKey{userID, kabanataID}
	delete(m.quiz, key)
	delete(m.wordGuess, key)
	delete(m.video, key)
	return nil
}

func (m *mapStager) empty(userID, kabanataID uint) bool {
	key := stagedKey{userID, kabanataID}
	return m.quiz[key] == nil && m.wordGuess[key] == nil && m.video[key] == nil
}
