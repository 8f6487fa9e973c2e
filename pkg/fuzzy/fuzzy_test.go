package fuzzy

import "testing"

func TestLevenshteinDistance(t *testing.T) {
	tests := []struct {
		s1, s2 string
		want   int
	}{
		{"kitten", "sitting", 3},
		{"", "abc", 3},
		{"abc", "", 3},
		{"same", "same", 0},
		{"Homework", "homework", 0}, // case-insensitive
	}
	for _, tt := range tests {
		if got := LevenshteinDistance(tt.s1, tt.s2); got != tt.want {
			t.Fatalf("LevenshteinDistance(%q, %q) = %d, want %d", tt.s1, tt.s2, got, tt.want)
		}
	}
}

func TestTitleScoreWordOrder(t *testing.T) {
	if got := TitleScore("math homework", "Homework Math"); got != 100 {
		t.Fatalf("word order should not matter, got score %d", got)
	}
}

func TestTitleScoreContainment(t *testing.T) {
	if got := TitleScore("essay", "Finish History Essay Draft"); got < 90 {
		t.Fatalf("contained query should score high, got %d", got)
	}
}

func TestBestMatchesDropsLowScores(t *testing.T) {
	titles := []string{
		"Finish Math Homework",
		"Grocery Run",
		"Math Homework 2",
	}
	matches := BestMatches("math homework", titles, 25)
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d: %+v", len(matches), matches)
	}
	if matches[0].Score < matches[1].Score {
		t.Fatal("matches not sorted by score")
	}
	for _, m := range matches {
		if m.Title == "Grocery Run" {
			t.Fatal("unrelated title should be dropped")
		}
	}
}

func TestBestMatchesEmpty(t *testing.T) {
	if got := BestMatches("anything", nil, 25); len(got) != 0 {
		t.Fatalf("expected no matches, got %+v", got)
	}
}
