package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// writeTempConfig 在临时目录写入配置文件并返回路径。
func writeTempConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaultFileConfig(t *testing.T) {
	cfg := defaultFileConfig()
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "info")
	}
	if cfg.Log.Format != "text" {
		t.Errorf("Log.Format = %q, want %q", cfg.Log.Format, "text")
	}
	if cfg.Output != "text" {
		t.Errorf("Output = %q, want %q", cfg.Output, "text")
	}
	if cfg.Raise.Target != 0 {
		t.Errorf("Raise.Target = %d, want 0", cfg.Raise.Target)
	}
	if cfg.Raise.BestEffort {
		t.Error("Raise.BestEffort = true, want false")
	}
}

func TestLoadFileConfigEmptyPath(t *testing.T) {
	cfg, err := loadFileConfig("")
	if err != nil {
		t.Fatalf("loadFileConfig(\"\") error: %v", err)
	}
	if cfg.Log.Level != "info" || cfg.Output != "text" {
		t.Errorf("empty path should return defaults, got %+v", cfg)
	}
}

func TestLoadFileConfigYAML(t *testing.T) {
	path := writeTempConfig(t, "limitctl.yaml", `
log:
  level: debug
  format: json
output: json
raise:
  target: 65536
  best_effort: true
`)

	cfg, err := loadFileConfig(path)
	if err != nil {
		t.Fatalf("loadFileConfig: %v", err)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "debug")
	}
	if cfg.Log.Format != "json" {
		t.Errorf("Log.Format = %q, want %q", cfg.Log.Format, "json")
	}
	if cfg.Output != "json" {
		t.Errorf("Output = %q, want %q", cfg.Output, "json")
	}
	if cfg.Raise.Target != 65536 {
		t.Errorf("Raise.Target = %d, want 65536", cfg.Raise.Target)
	}
	if !cfg.Raise.BestEffort {
		t.Error("Raise.BestEffort = false, want true")
	}
}

func TestLoadFileConfigJSON(t *testing.T) {
	path := writeTempConfig(t, "limitctl.json", `{
  "log": {"level": "warn"},
  "raise": {"target": 10240}
}`)

	cfg, err := loadFileConfig(path)
	if err != nil {
		t.Fatalf("loadFileConfig: %v", err)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "warn")
	}
	if cfg.Raise.Target != 10240 {
		t.Errorf("Raise.Target = %d, want 10240", cfg.Raise.Target)
	}
}

func TestLoadFileConfigPartialKeepsDefaults(t *testing.T) {
	path := writeTempConfig(t, "partial.yaml", "raise:\n  target: 2048\n")

	cfg, err := loadFileConfig(path)
	if err != nil {
		t.Fatalf("loadFileConfig: %v", err)
	}
	if cfg.Raise.Target != 2048 {
		t.Errorf("Raise.Target = %d, want 2048", cfg.Raise.Target)
	}
	// 未出现在文件中的字段保持默认值
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want default %q", cfg.Log.Level, "info")
	}
	if cfg.Output != "text" {
		t.Errorf("Output = %q, want default %q", cfg.Output, "text")
	}
}

func TestLoadFileConfigMissingFile(t *testing.T) {
	_, err := loadFileConfig(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	if err == nil {
		t.Fatal("loadFileConfig with missing file should return error")
	}

	// 文件缺失是运行错误，不是参数错误
	var usageErr *usageError
	if errors.As(err, &usageErr) {
		t.Error("missing file should not be *usageError")
	}
}

func TestLoadFileConfigBadContent(t *testing.T) {
	path := writeTempConfig(t, "bad.yaml", "log: [unclosed\n")

	if _, err := loadFileConfig(path); err == nil {
		t.Fatal("loadFileConfig with malformed YAML should return error")
	}
}

func TestDetectParser(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"yaml", "config.yaml", false},
		{"yml", "config.yml", false},
		{"json", "config.json", false},
		{"upper_case_ext", "config.YAML", false},
		{"toml", "config.toml", true},
		{"no_extension", "config", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := detectParser(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("detectParser(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if err != nil {
				var usageErr *usageError
				if !errors.As(err, &usageErr) {
					t.Errorf("expected *usageError, got %T", err)
				}
			}
		})
	}
}
