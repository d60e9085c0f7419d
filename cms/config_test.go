package cms

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if len(cfg.Collections) != 2 {
		t.Fatalf("collection count = %d, want 2", len(cfg.Collections))
	}

	blog, ok := cfg.Match("Blog Posts")
	if !ok {
		t.Fatal("Match(\"Blog Posts\") = false, want the Blog config")
	}
	if blog.ItemIdentifier != "name" {
		t.Errorf("blog identifier = %q, want name", blog.ItemIdentifier)
	}
	if blog.Translate[0] != "disclaimer-2" {
		t.Errorf("blog translate order starts with %q, want disclaimer-2", blog.Translate[0])
	}
}

func TestMatch(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name     string
		wantName string
		wantOK   bool
	}{
		{"Blog", "Blog", true},
		{"blog posts 2024", "Blog", true},
		{"Support Questions", "Support Questions", true},
		{"SUPPORT QUESTIONS (de)", "Support Questions", true},
		{"Team Members", "", false},
	}

	for _, tt := range tests {
		cc, ok := cfg.Match(tt.name)
		if ok != tt.wantOK {
			t.Errorf("Match(%q) ok = %v, want %v", tt.name, ok, tt.wantOK)
			continue
		}
		if ok && cc.Name != tt.wantName {
			t.Errorf("Match(%q) = %q, want %q", tt.name, cc.Name, tt.wantName)
		}
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	// Empty path and missing file both fall back to the defaults.
	for _, path := range []string{"", filepath.Join(t.TempDir(), "absent.yaml")} {
		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig(%q) error = %v", path, err)
		}
		if len(cfg.Collections) != 2 {
			t.Errorf("LoadConfig(%q) collections = %d, want defaults", path, len(cfg.Collections))
		}
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "collections.yaml")
	content := `collections:
  - name: Products
    displayName: Product
    itemIdentifier: title
    translate: [title, description]
    preserve: [slug, sku]
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if len(cfg.Collections) != 1 {
		t.Fatalf("collections = %d, want 1", len(cfg.Collections))
	}
	cc := cfg.Collections[0]
	if cc.Name != "Products" || len(cc.Translate) != 2 || cc.Preserve[1] != "sku" {
		t.Errorf("loaded config = %+v", cc)
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("collections: [broken"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig() error = nil, want parse error")
	}
}
