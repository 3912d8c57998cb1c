package assets

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEmbeddedDefaults(t *testing.T) {
	for _, name := range []string{
		"idle.gif", "walk_left.gif", "walk_right.gif", "reaction.gif",
		"idle_to_sleep.gif", "sleep.gif", "sleep_to_idle.gif",
	} {
		for _, path := range []string{name, "assets/" + name} {
			b, err := Load(path)
			if err != nil {
				t.Fatalf("Load(%q): %v", path, err)
			}
			if len(b) < 6 || string(b[:6]) != "GIF89a" {
				t.Fatalf("Load(%q): not a gif", path)
			}
		}
	}
}

func TestLoadPrefersDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "idle.gif")
	if err := os.WriteFile(path, []byte("disk"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	b, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(b) != "disk" {
		t.Fatalf("expected disk copy, got %q", b)
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load("nope.gif"); err == nil {
		t.Fatalf("expected error for missing sprite")
	}
	if _, err := Load(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestCleanAssetPath(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"idle.gif", "idle.gif"},
		{"assets/idle.gif", "idle.gif"},
		{"/home/me/pet/assets/sleep.gif", "sleep.gif"},
		{"/tmp/other.gif", "other.gif"},
	}
	for _, c := range cases {
		if got := cleanAssetPath(c.in); got != c.want {
			t.Fatalf("cleanAssetPath(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
