package weft

import "testing"

func TestLanguageName(t *testing.T) {
	tests := []struct {
		tag  string
		want string
	}{
		{"fr-FR", "French (France)"},
		{"pt-BR", "Portuguese (Brazil)"},
		{"fr", "French"},
		{"fr-CA", "French"},   // base fallback for unlisted region
		{"xx-XX", "xx-XX"},    // unknown tag passes through
		{"pt_BR", "Portuguese"},
	}

	for _, tt := range tests {
		if got := LanguageName(tt.tag); got != tt.want {
			t.Errorf("LanguageName(%q) = %q, want %q", tt.tag, got, tt.want)
		}
	}
}

func TestBaseTag(t *testing.T) {
	tests := []struct {
		tag  string
		want string
	}{
		{"fr-FR", "fr"},
		{"pt_BR", "pt"},
		{"EN", "en"},
		{"zh", "zh"},
	}

	for _, tt := range tests {
		if got := BaseTag(tt.tag); got != tt.want {
			t.Errorf("BaseTag(%q) = %q, want %q", tt.tag, got, tt.want)
		}
	}
}

func TestSameLanguage(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"fr-FR", "fr", true},
		{"pt-BR", "pt-PT", true},
		{"en-US", "de-DE", false},
		{"zh_CN", "zh-TW", true},
	}

	for _, tt := range tests {
		if got := SameLanguage(tt.a, tt.b); got != tt.want {
			t.Errorf("SameLanguage(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
