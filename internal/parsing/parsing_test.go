package parsing_test

import (
	"strings"
	"testing"
	"ytbatch/internal/errs"
	"ytbatch/internal/parsing"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"intro", "intro"},
		{"  padded  ", "padded"},
		{`a<b>c:d"e/f\g|h?i*j`, "a_b_c_d_e_f_g_h_i_j"},
		{"multi   space\tname", "multi space name"},
		{"trailing dots...", "trailing dots"},
		{"", "video"},
		{"...", "video"},
		{"bell\x07char", "bell_char"},
		{"Ünïcödé ok", "Ünïcödé ok"},
	}

	for _, tt := range tests {
		if got := parsing.SanitizeFilename(tt.in); got != tt.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSanitizeFilename_Length(t *testing.T) {
	long := strings.Repeat("é", 400)
	got := parsing.SanitizeFilename(long)
	if n := len([]rune(got)); n != 180 {
		t.Fatalf("expected 180 runes, got %d", n)
	}
}

func TestValidateURL(t *testing.T) {
	valid := []string{
		"https://youtu.be/abc123",
		"https://www.youtube.com/watch?v=xyz789",
		"http://127.0.0.1:8080/video.mp4",
		"http://localhost/v",
	}
	for _, raw := range valid {
		if _, err := parsing.ValidateURL(raw); err != nil {
			t.Errorf("ValidateURL(%q) unexpected error: %v", raw, err)
		}
	}

	invalid := []string{
		"",
		"youtu.be/abc123",
		"ftp://youtu.be/abc123",
		"https:///path-only",
		"https://com/",
		"::::not-a-url",
	}
	for _, raw := range invalid {
		_, err := parsing.ValidateURL(raw)
		if errs.KindOf(err) != errs.KindInvalidURL {
			t.Errorf("ValidateURL(%q) = %v, want InvalidURLError", raw, err)
		}
	}
}

func TestRegistrableDomain(t *testing.T) {
	tests := map[string]string{
		"https://www.youtube.com/watch?v=x": "youtube.com",
		"https://youtu.be/abc":              "youtu.be",
		"https://music.example.co.uk/a":     "example.co.uk",
		"http://127.0.0.1/a":                "127.0.0.1",
	}
	for in, want := range tests {
		got, err := parsing.RegistrableDomain(in)
		if err != nil {
			t.Errorf("RegistrableDomain(%q) error: %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("RegistrableDomain(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalizeURL(t *testing.T) {
	if got := parsing.NormalizeURL(" https://youtu.be/AbC/ "); got != "youtu.be/AbC" {
		t.Errorf("unexpected normalized URL %q", got)
	}
}
