package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Staged attempt payloads. These live in Redis only: in-flight game state is
// throwaway until a complete call reconciles it into the progress tables.
// Losing it early just means the chapter gets replayed.

// QuizStage is one staged quiz answer. ShouldSave is decided at staging time
// by comparing against the persisted best attempt; the commit path re-checks
// the same keep-best rule.
type QuizStage struct {
	QuizID         uint   `json:"quiz_id"`
	SelectedAnswer string `json:"selected_answer"`
	IsCorrect      bool   `json:"is_correct"`
	Score          int    `json:"score"`
	QuestionNumber int    `json:"question_number"`
	TotalQuestions int    `json:"total_questions"`
	Completed      bool   `json:"completed"`
	ShouldSave     bool   `json:"should_save"`
}

type WordGuessStage struct {
	CharacterID  uint `json:"character_id"`
	GuessWordID  uint `json:"question_id"`
	CurrentIndex int  `json:"current_index"`
	Completed    bool `json:"completed"`
	TotalScore   int  `json:"total_score"`
	IsCorrect    bool `json:"is_correct"`
}

// Valid reports whether a staged word-guess payload carries the keys the
// reconciliation branch needs. A malformed slot is skipped, never fatal.
func (s *WordGuessStage) Valid() bool {
	return s != nil && s.CharacterID != 0 && s.GuessWordID != 0 &&
		s.TotalScore >= 0 && s.TotalScore <= PerfectWordGuessScore
}

type VideoStage struct {
	VideoID        uint `json:"video_id"`
	Completed      bool `json:"completed"`
	SecondsWatched int  `json:"seconds_watched"`
	PerfectScore   bool `json:"perfect_score"`
}

// StagedActivities is the snapshot ReadAll returns: one slot per activity,
// nil/empty when nothing was staged.
type StagedActivities struct {
	Quiz      map[uint]QuizStage
	WordGuess *WordGuessStage
	Video     *VideoStage
}

// ActivityStager is the staging area contract the reconciliation engine
// depends on. Every stage call fully replaces the prior payload for its key.
type ActivityStager interface {
	StageQuiz(ctx context.Context, userID, kabanataID uint, entry QuizStage) error
	StageWordGuess(ctx context.Context, userID, kabanataID uint, stage WordGuessStage) error
	StageVideo(ctx context.Context, userID, kabanataID uint, stage VideoStage) error
	ReadAll(ctx context.Context, userID, kabanataID uint) (*StagedActivities, error)
	Clear(ctx context.Context, userID, kabanataID uint) error
}

// stagingTTL bounds abandoned sessions. Long enough for a slow study session,
// short enough that stale state never survives a school day.
const stagingTTL = 24 * time.Hour

const (
	activityQuiz      = "quiz_progress"
	activityWordGuess = "guessword_progress"
	activityVideo     = "video_progress"
)

// RedisStagingStore keeps staged attempts in Redis under typed keys of the
// shape rizhub:{activity}:{userID}:{kabanataID}.
type RedisStagingStore struct {
	Redis *redis.Client
}

func NewRedisStagingStore(rdb *redis.Client) *RedisStagingStore {
	return &RedisStagingStore{Redis: rdb}
}

func stagingKey(activity string, userID, kabanataID uint) string {
	return fmt.Sprintf("rizhub:%s:%d:%d", activity, userID, kabanataID)
}

func (s *RedisStagingStore) StageQuiz(ctx context.Context, userID, kabanataID uint, entry QuizStage) error {
	key := stagingKey(activityQuiz, userID, kabanataID)

	// The quiz slot is a map keyed by quiz id; merge this answer in and write
	// the whole payload back (last write per question wins).
	entries := make(map[uint]QuizStage)
	val, err := s.Redis.Get(ctx, key).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	if err == nil {
		if err := json.Unmarshal([]byte(val), &entries); err != nil {
			// Unreadable staged state is treated as absent.
			entries = make(map[uint]QuizStage)
		}
	}

	entries[entry.QuizID] = entry

	payload, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return s.Redis.Set(ctx, key, payload, stagingTTL).Err()
}

func (s *RedisStagingStore) StageWordGuess(ctx context.Context, userID, kabanataID uint, stage WordGuessStage) error {
	return s.setJSON(ctx, stagingKey(activityWordGuess, userID, kabanataID), stage)
}

func (s *RedisStagingStore) StageVideo(ctx context.Context, userID, kabanataID uint, stage VideoStage) error {
	return s.setJSON(ctx, stagingKey(activityVideo, userID, kabanataID), stage)
}

func (s *RedisStagingStore) setJSON(ctx context.Context, key string, v interface{}) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.Redis.Set(ctx, key, payload, stagingTTL).Err()
}

func (s *RedisStagingStore) ReadAll(ctx context.Context, userID, kabanataID uint) (*StagedActivities, error) {
	staged := &StagedActivities{}

	val, err := s.Redis.Get(ctx, stagingKey(activityQuiz, userID, kabanataID)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, err
	}
	if err == nil {
		entries := make(map[uint]QuizStage)
		if jsonErr := json.Unmarshal([]byte(val), &entries); jsonErr == nil {
			staged.Quiz = entries
		}
	}

	val, err = s.Redis.Get(ctx, stagingKey(activityWordGuess, userID, kabanataID)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, err
	}
	if err == nil {
		var stage WordGuessStage
		if jsonErr := json.Unmarshal([]byte(val), &stage); jsonErr == nil {
			staged.WordGuess = &stage
		}
	}

	val, err = s.Redis.Get(ctx, stagingKey(activityVideo, userID, kabanataID)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, err
	}
	if err == nil {
		var stage VideoStage
		if jsonErr := json.Unmarshal([]byte(val), &stage); jsonErr == nil {
			staged.Video = &stage
		}
	}

	return staged, nil
}

func (s *RedisStagingStore) Clear(ctx context.Context, userID, kabanataID uint) error {
	return s.Redis.Del(ctx,
		stagingKey(activityQuiz, userID, kabanataID),
		stagingKey(activityWordGuess, userID, kabanataID),
		stagingKey(activityVideo, userID, kabanataID),
	).Err()
}
