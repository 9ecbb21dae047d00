package platform

import (
	"path/filepath"
	"testing"
)

func TestPathsFor(t *testing.T) {
	cases := []struct {
		name       string
		goos       string
		env        map[string]string
		configDir  string
		dataDir    string
		wantConfig string
		wantData   string
	}{
		{
			name:       "linux xdg",
			goos:       "linux",
			env:        map[string]string{"XDG_CONFIG_HOME": "/xdg/config", "XDG_DATA_HOME": "/xdg/data"},
			configDir:  "/fallback/config",
			dataDir:    "/fallback/data",
			wantConfig: filepath.Join("/xdg/config", "moncal", "config.toml"),
			wantData:   filepath.Join("/xdg/data", "moncal"),
		},
		{
			name:       "linux without xdg",
			goos:       "linux",
			env:        map[string]string{},
			configDir:  "/home/me/.config",
			dataDir:    "/home/me/.local/share",
			wantConfig: filepath.Join("/home/me/.config", "moncal", "config.toml"),
			wantData:   filepath.Join("/home/me/.local/share", "moncal"),
		},
		{
			name:       "windows appdata",
			goos:       "windows",
			env:        map[string]string{"APPDATA": `C:\Users\me\AppData\Roaming`, "LOCALAPPDATA": `C:\Users\me\AppData\Local`},
			configDir:  `C:\fallback\config`,
			dataDir:    `C:\fallback\data`,
			wantConfig: filepath.Join(`C:\Users\me\AppData\Roaming`, "moncal", "config.toml"),
			wantData:   filepath.Join(`C:\Users\me\AppData\Local`, "moncal"),
		},
		{
			name:       "darwin ignores xdg",
			goos:       "darwin",
			env:        map[string]string{"XDG_CONFIG_HOME": "/ignored", "XDG_DATA_HOME": "/ignored"},
			configDir:  "/Users/me/Library/Application Support",
			dataDir:    "/Users/me/Library/Application Support",
			wantConfig: filepath.Join("/Users/me/Library/Application Support", "moncal", "config.toml"),
			wantData:   filepath.Join("/Users/me/Library/Application Support", "moncal"),
		},
		{
			name:       "unknown os",
			goos:       "freebsd",
			env:        map[string]string{},
			configDir:  "/cfg",
			dataDir:    "/data",
			wantConfig: filepath.Join("/cfg", "moncal", "config.toml"),
			wantData:   filepath.Join("/data", "moncal"),
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := PathsFor(tc.goos, tc.env, tc.configDir, tc.dataDir, "moncal")
			if err != nil {
				t.Fatalf("PathsFor() error = %v", err)
			}
			if p.ConfigPath != tc.wantConfig {
				t.Fatalf("unexpected config path %q", p.ConfigPath)
			}
			if p.DataDir != tc.wantData {
				t.Fatalf("unexpected data dir %q", p.DataDir)
			}
			if p.TasksPath != filepath.Join(tc.wantData, TasksFileName) {
				t.Fatalf("unexpected tasks path %q", p.TasksPath)
			}
		})
	}
}

func TestPathsForRejectsEmptyInputs(t *testing.T) {
	if _, err := PathsFor("darwin", nil, "", "/tmp/data", "moncal"); err == nil {
		t.Fatal("expected error for empty dirs")
	}
	if _, err := PathsFor("linux", nil, "/cfg", "/data", "  "); err == nil {
		t.Fatal("expected error for empty app name")
	}
}

func TestDefaultPathsSmoke(t *testing.T) {
	p, err := DefaultPaths()
	if err != nil {
		t.Fatalf("DefaultPaths() error = %v", err)
	}
	if p.ConfigPath == "" || p.TasksPath == "" || p.DataDir == "" {
		t.Fatalf("expected non-empty paths, got %#v", p)
	}
}

func TestDefaultPathsWithOptionsDevMode(t *testing.T) {
	p, err := DefaultPathsWithOptions(Options{AppName: "moncal", DevMode: true})
	if err != nil {
		t.Fatalf("DefaultPathsWithOptions() error = %v", err)
	}
	if filepath.Base(filepath.Dir(p.ConfigPath)) != "moncal-dev" {
		t.Fatalf("expected dev config dir suffix, got %q", p.ConfigPath)
	}
	if filepath.Base(filepath.Dir(p.TasksPath)) != "moncal-dev" {
		t.Fatalf("expected dev data dir, got %q", p.TasksPath)
	}
}
