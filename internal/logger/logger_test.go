package logger

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// captureLogger points the package logger at a buffer for one test.
func captureLogger(t *testing.T, format string, level slog.Level) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	h, err := newHandler(&buf, format, level)
	if err != nil {
		t.Fatalf("newHandler: %v", err)
	}
	previous := logger
	logger = slog.New(h)
	t.Cleanup(func() { logger = previous })
	return &buf
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"WARNING", slog.LevelWarn},
		{"WARN", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"invalid", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseLogLevel(tt.input); got != tt.expected {
				t.Errorf("parseLogLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig returned error for missing file: %v", err)
	}
	if config != DefaultConfig() {
		t.Errorf("LoadConfig = %+v, want defaults %+v", config, DefaultConfig())
	}
}

func TestLoadConfigFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yamlContent := `http:
  address: ":9000"
logging:
  level: DEBUG
  console_format: json
  file_enabled: true
  file_path: test.log
  file_max_size_mb: 20
`
	if err := os.WriteFile(path, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	if config.Level != "DEBUG" {
		t.Errorf("Level = %q, want %q", config.Level, "DEBUG")
	}
	if !config.ConsoleEnabled {
		t.Error("ConsoleEnabled = false, want the default to survive an absent key")
	}
	if config.ConsoleFormat != "json" {
		t.Errorf("ConsoleFormat = %q, want %q", config.ConsoleFormat, "json")
	}
	if !config.FileEnabled {
		t.Error("FileEnabled = false, want true")
	}
	if config.FilePath != "test.log" {
		t.Errorf("FilePath = %q, want %q", config.FilePath, "test.log")
	}
	if config.FileMaxSizeMB != 20 {
		t.Errorf("FileMaxSizeMB = %d, want 20", config.FileMaxSizeMB)
	}
	if config.FileMaxBackups != 5 {
		t.Errorf("FileMaxBackups = %d, want default 5", config.FileMaxBackups)
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("logging: [not, a, map"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig accepted malformed YAML")
	}
}

func TestEnvVarOverride(t *testing.T) {
	t.Setenv("LOG_LEVEL", "ERROR")
	t.Setenv("LOG_CONSOLE_FORMAT", "json")
	t.Setenv("LOG_FILE_ENABLED", "true")
	t.Setenv("LOG_FILE_PATH", "/custom/path.log")

	config, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	if config.Level != "ERROR" {
		t.Errorf("Level = %q, want %q (from env var)", config.Level, "ERROR")
	}
	if config.ConsoleFormat != "json" {
		t.Errorf("ConsoleFormat = %q, want %q (from env var)", config.ConsoleFormat, "json")
	}
	if !config.FileEnabled {
		t.Error("FileEnabled = false, want true (from env var)")
	}
	if config.FilePath != "/custom/path.log" {
		t.Errorf("FilePath = %q, want %q (from env var)", config.FilePath, "/custom/path.log")
	}
}

func TestEnvVarInvalidBool(t *testing.T) {
	t.Setenv("LOG_FILE_ENABLED", "sometimes")
	if _, err := LoadConfig(""); err == nil {
		t.Error("LoadConfig accepted an invalid LOG_FILE_ENABLED")
	}
}

func TestInitializeRejectsUnknownFormat(t *testing.T) {
	previous := logger
	t.Cleanup(func() { logger = previous })

	config := DefaultConfig()
	config.ConsoleFormat = "xml"
	if err := Initialize(config); err == nil {
		t.Error("Initialize accepted console format xml")
	}
}

func TestInitializeWritesRotatedFile(t *testing.T) {
	previous := logger
	t.Cleanup(func() { logger = previous })

	path := filepath.Join(t.TempDir(), "logs", "house.log")
	config := DefaultConfig()
	config.ConsoleEnabled = false
	config.FileEnabled = true
	config.FilePath = path

	if err := Initialize(config); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	Info("Server started", "port", 8080)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"Server started"`) {
		t.Errorf("log file missing JSON line: %s", data)
	}
}

func TestTextFormat(t *testing.T) {
	buf := captureLogger(t, "text", slog.LevelInfo)

	Info("Test message", "key", "value")
	Debug("This should not appear")

	output := buf.String()
	if !strings.Contains(output, "Test message") {
		t.Errorf("Output missing INFO message: %s", output)
	}
	if !strings.Contains(output, "key=value") {
		t.Errorf("Output missing structured field: %s", output)
	}
	if strings.Contains(output, "This should not appear") {
		t.Errorf("Output contains DEBUG message when level is INFO: %s", output)
	}
}

func TestJSONFormat(t *testing.T) {
	buf := captureLogger(t, "json", slog.LevelInfo)

	Info("JSON test", "field1", "value1", "field2", 42)

	output := buf.String()
	for _, want := range []string{`"msg":"JSON test"`, `"field1":"value1"`, `"field2":42`} {
		if !strings.Contains(output, want) {
			t.Errorf("Output missing %s: %s", want, output)
		}
	}
}

func TestAlwaysBypassesLogLevel(t *testing.T) {
	buf := captureLogger(t, "text", slog.LevelError)

	Debug("Debug message")
	Info("Info message")
	Warning("Warning")
	Error("Error message")
	Always("Always message")

	output := buf.String()
	for _, absent := range []string{"Debug message", "Info message", "Warning"} {
		if strings.Contains(output, absent) {
			t.Errorf("%q appeared when level is ERROR", absent)
		}
	}
	if !strings.Contains(output, "Error message") {
		t.Error("ERROR message missing from output")
	}
	if !strings.Contains(output, "level=ALWAYS") {
		t.Error("ALWAYS level not formatted correctly")
	}
}

func TestFormattedLogging(t *testing.T) {
	buf := captureLogger(t, "text", slog.LevelDebug)

	Debugf("Debug: %d + %d = %d", 1, 2, 3)
	Infof("Info: %s", "test")
	Warningf("Warning: %.2f%%", 99.95)
	Errorf("Error: %v", "failed")
	Alwaysf("Always: %s %d", "count", 5)

	output := buf.String()
	for _, want := range []string{"Debug: 1 + 2 = 3", "Info: test", "Warning: 99.95%", "Error: failed", "Always: count 5"} {
		if !strings.Contains(output, want) {
			t.Errorf("Output missing %q", want)
		}
	}
}

func TestWithAttachesFields(t *testing.T) {
	buf := captureLogger(t, "text", slog.LevelInfo)

	turn := With("request_id", "req-1")
	turn.Info("Turn played", "intent", "ForwardIntent")

	output := buf.String()
	if !strings.Contains(output, "request_id=req-1") || !strings.Contains(output, "intent=ForwardIntent") {
		t.Errorf("child logger lost fields: %s", output)
	}
}

func TestMultiHandler(t *testing.T) {
	var buf1, buf2 bytes.Buffer
	h1 := slog.NewTextHandler(&buf1, &slog.HandlerOptions{Level: slog.LevelInfo})
	h2 := slog.NewTextHandler(&buf2, &slog.HandlerOptions{Level: slog.LevelWarn})

	previous := logger
	t.Cleanup(func() { logger = previous })
	logger = slog.New(newMultiHandler(h1, h2))

	With("session", "s-1").Info("Multi-handler test", "field", "value")

	if !strings.Contains(buf1.String(), "session=s-1") || !strings.Contains(buf1.String(), "field=value") {
		t.Errorf("first handler output = %q", buf1.String())
	}
	if buf2.Len() != 0 {
		t.Errorf("WARN handler received an INFO line: %q", buf2.String())
	}
}

func TestNilLogger(t *testing.T) {
	previous := logger
	t.Cleanup(func() { logger = previous })
	logger = nil

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("Logging with nil logger caused panic: %v", r)
		}
	}()

	Debug("debug")
	Info("info")
	Warning("warning")
	Error("error")
	Always("always")
	With("k", "v").Info("discarded")
}
