package config

import (
	"os"
	"path/filepath"
	"testing"
)

// point the config root at a scratch dir so tests never touch the real
// user profile
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("APPDATA", "")
	t.Setenv("XDG_CONFIG_HOME", dir)
	if err := os.MkdirAll(ConfigsDir(), 0755); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestLoadMerged_DefaultsWhenNoProfile(t *testing.T) {
	isolate(t)

	cfg, used, err := LoadMerged(Options{})
	if err != nil {
		t.Fatalf("LoadMerged: %v", err)
	}
	if used != "" {
		t.Errorf("expected in-memory defaults, got path %q", used)
	}
	if cfg.IndexURL != DefaultIndexURL {
		t.Errorf("unexpected index URL %q", cfg.IndexURL)
	}
	if cfg.Output != "." || cfg.Format != "rtf" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadMerged_FlagsOverrideProfile(t *testing.T) {
	isolate(t)

	profile := DefaultConfig()
	profile.Output = "/srv/books"
	profile.Seconds = 3.5

	if err := SaveYAML(profile, filepath.Join(ConfigsDir(), "Worm.yaml")); err != nil {
		t.Fatalf("SaveYAML: %v", err)
	}
	if err := SwitchConfig("Worm"); err != nil {
		t.Fatalf("SwitchConfig: %v", err)
	}

	cfg, used, err := LoadMerged(Options{Format: "md", Join: true})
	if err != nil {
		t.Fatalf("LoadMerged: %v", err)
	}
	if used == "" {
		t.Fatal("expected a profile path")
	}
	if cfg.Output != "/srv/books" || cfg.Seconds != 3.5 {
		t.Errorf("profile values lost: %+v", cfg)
	}
	if cfg.Format != "md" || !cfg.Join {
		t.Errorf("flag overrides lost: %+v", cfg)
	}
}

func TestLoadMerged_IgnoreConfig(t *testing.T) {
	isolate(t)

	profile := DefaultConfig()
	profile.Output = "/elsewhere"
	if err := SaveYAML(profile, filepath.Join(ConfigsDir(), "Worm.yaml")); err != nil {
		t.Fatal(err)
	}
	if err := SwitchConfig("Worm"); err != nil {
		t.Fatal(err)
	}

	cfg, _, err := LoadMerged(Options{IgnoreConfig: true})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Output != "." {
		t.Errorf("profile leaked through --ignore-config: %+v", cfg)
	}
}

func TestSwitchConfig_UnknownLabel(t *testing.T) {
	isolate(t)
	if err := SwitchConfig("Nope"); err == nil {
		t.Fatal("expected error for unknown label")
	}
}

func TestListConfigs(t *testing.T) {
	isolate(t)

	for _, label := range []string{"B", "A"} {
		if err := SaveYAML(DefaultConfig(), filepath.Join(ConfigsDir(), label+".yaml")); err != nil {
			t.Fatal(err)
		}
	}
	if err := SwitchConfig("A"); err != nil {
		t.Fatal(err)
	}

	list, err := ListConfigs()
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 || list[0].Label != "A" || list[1].Label != "B" {
		t.Fatalf("unexpected listing: %+v", list)
	}
	if !list[0].Active || list[1].Active {
		t.Errorf("active flag wrong: %+v", list)
	}
}
