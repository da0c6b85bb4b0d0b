package service

import "strings"

// Pure scoring rules for the two games. No state, no side effects; request
// shape validation happens at the binding layer before these run.

// EvaluateQuizAnswer checks a selected choice letter (A, B or C) against the
// stored correct letter. Letters are normalized, the comparison is exact.
func EvaluateQuizAnswer(selected, correct string) bool {
	selected = strings.ToUpper(strings.TrimSpace(selected))
	correct = strings.ToUpper(strings.TrimSpace(correct))
	if selected == "" || correct == "" {
		return false
	}
	return selected == correct
}

// EvaluateWordGuess checks a submitted word against the stored answer.
// Case sensitive after trimming; "Sisa" is right, "sisa" is not.
func EvaluateWordGuess(submitted, answer string) bool {
	submitted = strings.TrimSpace(submitted)
	answer = strings.TrimSpace(answer)
	if submitted == "" || answer == "" {
		return false
	}
	return submitted == answer
}

// CalculateStars maps a word-guess total score (0-5) to a star rating.
func CalculateStars(wordGuessScore int) int {
	switch {
	case wordGuessScore >= 5:
		return 3
	case wordGuessScore == 4:
		return 2
	case wordGuessScore == 3:
		return 1
	default:
		return 0
	}
}

// MaxChapterProgress caps the combined quiz + word-guess score per kabanata.
const MaxChapterProgress = 10

// PerfectWordGuessScore unlocks the chapter's gallery images.
const PerfectWordGuessScore = 5

// ClampProgress bounds a combined score to [0, MaxChapterProgress].
func ClampProgress(total int) int {
	if total < 0 {
		return 0
	}
	if total > MaxChapterProgress {
		return MaxChapterProgress
	}
	return total
}
