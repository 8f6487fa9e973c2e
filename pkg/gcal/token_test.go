package gcal

import (
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/oauth2"
)

func TestTokenStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	store := NewTokenStore(path)

	if _, err := store.Load(); err == nil {
		t.Fatal("expected error loading missing token file")
	}

	token := &oauth2.Token{
		AccessToken:  "access",
		RefreshToken: "refresh",
		TokenType:    "Bearer",
		Expiry:       time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := store.Save(token); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.AccessToken != "access" || got.RefreshToken != "refresh" {
		t.Fatalf("unexpected token: %+v", got)
	}
}

func TestTitleCase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  finish math homework ", "Finish Math Homework"},
		{"ESSAY 1", "Essay 1"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := titleCase(tt.in); got != tt.want {
			t.Fatalf("titleCase(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
