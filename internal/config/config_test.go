package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestInitialize_CreatesLayout(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "inkpad")

	if err := Initialize(dir); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}

	for _, path := range []string{ConfigDir, SessionFile, SettingsFile} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("expected %s to exist: %v", path, err)
		}
	}

	if KeybindsFile != filepath.Join(dir, "keybinds.json") {
		t.Errorf("KeybindsFile = %s", KeybindsFile)
	}
	if DatabasePath != filepath.Join(dir, "inkpad.db") {
		t.Errorf("DatabasePath = %s", DatabasePath)
	}
}

func TestInitialize_KeepsExistingSession(t *testing.T) {
	dir := t.TempDir()
	sessionPath := filepath.Join(dir, ".session.json")
	existing := []byte(`{"recentFiles":["/tmp/a.md"]}`)
	if err := os.WriteFile(sessionPath, existing, FilePermissions); err != nil {
		t.Fatal(err)
	}

	if err := Initialize(dir); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}

	data, err := os.ReadFile(sessionPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != string(existing) {
		t.Errorf("session file overwritten: %s", data)
	}
}

func TestLoadSettings(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    Settings
		wantErr bool
	}{
		{
			name:    "partial file keeps defaults",
			content: "log_level: DEBUG\nwatch_files: false\n",
			want: Settings{
				LogLevel:             "debug",
				WatchFiles:           false,
				JournalEnabled:       true,
				StatusTimeoutSeconds: 4,
				DefaultExtension:     ".md",
			},
		},
		{
			name:    "extension without dot",
			content: "default_extension: txt\n",
			want: Settings{
				LogLevel:             "info",
				WatchFiles:           true,
				JournalEnabled:       true,
				StatusTimeoutSeconds: 4,
				DefaultExtension:     ".txt",
			},
		},
		{
			name:    "invalid yaml",
			content: "log_level: [",
			want:    DefaultSettings(),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.content), FilePermissions); err != nil {
				t.Fatal(err)
			}

			got, err := LoadSettings(path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("LoadSettings() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("LoadSettings() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestLoadSettings_MissingFile(t *testing.T) {
	got, err := LoadSettings(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != DefaultSettings() {
		t.Errorf("got %+v, want defaults", got)
	}
}

func TestSaveSettings_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	want := DefaultSettings()
	want.StatusTimeoutSeconds = 9

	if err := SaveSettings(path, want); err != nil {
		t.Fatal(err)
	}
	got, err := LoadSettings(path)
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}
