package service

import "testing"

func TestEvaluateQuizAnswer(t *testing.T) {
	cases := []struct {
		name     string
		selected string
		correct  string
		want     bool
	}{
		{"exact match", "A", "A", true},
		{"lowercase selection", "b", "B", true},
		{"whitespace around selection", " C ", "C", true},
		{"wrong letter", "A", "B", false},
		{"empty selection", "", "A", false},
		{"empty correct answer", "A", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := EvaluateQuizAnswer(tc.selected, tc.correct); got != tc.want {
				t.Errorf("EvaluateQuizAnswer(%q, %q) = %v, want %v", tc.selected, tc.correct, got, tc.want)
			}
		})
	}
}

func TestEvaluateWordGuess(t *testing.T) {
	cases := []struct {
		name      string
		submitted string
		answer    string
		want      bool
	}{
		{"exact match", "Maria Clara", "Maria Clara", true},
		{"trimmed match", "  Sisa ", "Sisa", true},
		{"case matters", "sisa", "Sisa", false},
		{"wrong word", "Elias", "Sisa", false},
		{"empty guess", "", "Sisa", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := EvaluateWordGuess(tc.submitted, tc.answer); got != tc.want {
				t.Errorf("EvaluateWordGuess(%q, %q) = %v, want %v", tc.submitted, tc.answer, got, tc.want)
			}
		})
	}
}

func TestCalculateStars(t *testing.T) {
	cases := []struct {
		score int
		want  int
	}{
		{0, 0},
		{1, 0},
		{2, 0},
		{3, 1},
		{4, 2},
		{5, 3},
		{7, 3},
	}

	for _, tc := range cases {
		if got := CalculateStars(tc.score); got != tc.want {
			t.Errorf("CalculateStars(%d) = %d, want %d", tc.score, got, tc.want)
		}
	}
}

func TestClampProgress(t *testing.T) {
	cases := []struct {
		total int
		want  int
	}{
		{-1, 0},
		{0, 0},
		{7, 7},
		{10, 10},
		{13, 10},
	}

	for _, tc := range cases {
		if got := ClampProgress(tc.total); got != tc.want {
			t.Errorf("ClampProgress(%d) = %d, want %d", tc.total, got, tc.want)
		}
	}
}

func TestWordGuessStageValid(t *testing.T) {
	valid := WordGuessStage{CharacterID: 1, GuessWordID: 2, TotalScore: 4}
	if !valid.Valid() {
		t.Error("expected complete payload to be valid")
	}

	cases := []struct {
		name  string
		stage WordGuessStage
	}{
		{"missing character", WordGuessStage{GuessWordID: 2, TotalScore: 4}},
		{"missing question", WordGuessStage{CharacterID: 1, TotalScore: 4}},
		{"score above cap", WordGuessStage{CharacterID: 1, GuessWordID: 2, TotalScore: 6}},
		{"negative score", WordGuessStage{CharacterID: 1, GuessWordID: 2, TotalScore: -1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.stage.Valid() {
				t.Error("expected payload to be invalid")
			}
		})
	}
}

func TestStagingKeyShape(t *testing.T) {
	got := stagingKey(activityQuiz, 7, 12)
	want := "rizhub:quiz_progress:7:12"
	if got != want {
		t.Errorf("stagingKey = %q, want %q", got, want)
	}
}
