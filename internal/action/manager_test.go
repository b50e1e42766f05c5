package action

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestManagerDiscover(t *testing.T) {
	dir := t.TempDir()

	valid := `{"name": "on-swipe", "on": {"type": "gesture", "gesture": "swipe"}, "command": "true"}`
	if err := os.WriteFile(filepath.Join(dir, "swipe.json"), []byte(valid), 0644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{not json"), 0644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "nameless.json"), []byte(`{"command": "true"}`), 0644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("not a binding"), 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	m := NewManager(dir)
	if err := m.Discover(); err != nil {
		t.Fatalf("discover: %v", err)
	}

	if got := len(m.List()); got != 1 {
		t.Fatalf("loaded %d bindings, want 1", got)
	}

	b, err := m.Get("on-swipe")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if b.On.Gesture != "swipe" {
		t.Errorf("trigger gesture = %q, want swipe", b.On.Gesture)
	}
	if b.Path == "" {
		t.Error("binding path not recorded")
	}

	if _, err := m.Get("missing"); !errors.Is(err, ErrBindingNotFound) {
		t.Errorf("get missing: err = %v, want ErrBindingNotFound", err)
	}
}

func TestManagerDiscoverMissingDir(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "does-not-exist"))
	if err := m.Discover(); err != nil {
		t.Errorf("discover on missing dir: %v", err)
	}
	if got := len(m.List()); got != 0 {
		t.Errorf("loaded %d bindings, want 0", got)
	}
}

func TestManagerRediscoverReplaces(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "a.json")
	if err := os.WriteFile(manifest, []byte(`{"name": "a", "command": "true"}`), 0644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}

	m := NewManager(dir)
	if err := m.Discover(); err != nil {
		t.Fatalf("discover: %v", err)
	}
	if err := os.Remove(manifest); err != nil {
		t.Fatalf("remove manifest: %v", err)
	}
	if err := m.Discover(); err != nil {
		t.Fatalf("rediscover: %v", err)
	}
	if got := len(m.List()); got != 0 {
		t.Errorf("stale bindings survived rediscover: %d", got)
	}
}
